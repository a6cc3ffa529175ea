package service

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/highcastle01/WSD-Assignment-03/internal/api/domain"
	"github.com/highcastle01/WSD-Assignment-03/internal/api/model"
)

const (
	defaultJobLimit = 20
	relatedJobLimit = 3
)

var jobSortKeys = []string{"createdAt", "deadline", "viewCount", "requiredCareer", "title", "salary"}

type JobService struct {
	store  JobStore
	cache  CompanyCache
	logger *slog.Logger
	now    func() time.Time
}

func NewJobService(store JobStore, cache CompanyCache, logger *slog.Logger) *JobService {
	return &JobService{store: store, cache: cache, logger: logger, now: time.Now}
}

// JobInput carries create and update fields. Nil means unchanged on update.
type JobInput struct {
	CompanyID      int64
	Title          *string
	Description    *string
	RequiredSkills []string
	RequiredCareer *int
	Salary         *model.Salary
	Location       *string
	JobType        *string
	Deadline       *time.Time
	Status         *string
}

type JobQuery struct {
	Location    string
	MaxCareer   *int
	MinSalary   *int64
	MaxSalary   *int64
	Skills      []string
	Keyword     string
	CompanyName string
	JobType     string
	SortBy      string
	Order       string
	model.Pagination
}

// JobDetail is a posting with other open postings of the same company
type JobDetail struct {
	Job         model.JobListItem
	RelatedJobs []model.Job
}

func (s *JobService) List(ctx context.Context, q JobQuery) (*Page[model.JobListItem], error) {
	if q.SortBy == "" {
		q.SortBy = "createdAt"
	}
	if !slices.Contains(jobSortKeys, q.SortBy) {
		return nil, domain.NewValidation("invalid sort field").
			With("sortBy", q.SortBy).
			With("allowed", jobSortKeys)
	}
	order, ok := normalizeOrder(q.Order)
	if !ok {
		return nil, domain.NewValidation("order must be ASC or DESC").With("order", q.Order)
	}
	if q.JobType != "" && !domain.IsJobType(q.JobType) {
		return nil, domain.NewValidation("invalid job type").With("jobType", q.JobType)
	}

	page := normalizePage(q.Pagination, defaultJobLimit)
	items, total, err := s.store.ListJobs(ctx, model.JobFilter{
		Location:    q.Location,
		MaxCareer:   q.MaxCareer,
		MinSalary:   q.MinSalary,
		MaxSalary:   q.MaxSalary,
		Skills:      q.Skills,
		Keyword:     strings.TrimSpace(q.Keyword),
		CompanyName: q.CompanyName,
		JobType:     q.JobType,
		SortBy:      q.SortBy,
		Order:       order,
		Pagination:  page,
	})
	if err != nil {
		return nil, unexpected("failed to list jobs", err)
	}
	return newPage(items, total, page), nil
}

// Get returns a posting and counts the view
func (s *JobService) Get(ctx context.Context, id int64) (*JobDetail, error) {
	job, err := s.store.GetJob(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "job not found", "failed to load job")
	}

	if err := s.store.IncrementJobViews(ctx, id); err != nil {
		s.logger.Warn("Failed to count job view", slog.Int64("job_id", id), slog.String("error", err.Error()))
	} else {
		job.ViewCount++
	}

	related, err := s.store.ListRelatedJobs(ctx, job.CompanyID, id, relatedJobLimit)
	if err != nil {
		return nil, unexpected("failed to load related jobs", err)
	}
	if related == nil {
		related = []model.Job{}
	}

	return &JobDetail{Job: *job, RelatedJobs: related}, nil
}

func (s *JobService) Create(ctx context.Context, userID int64, in JobInput) (*model.Job, error) {
	if in.CompanyID <= 0 {
		return nil, domain.NewValidation("companyId is required")
	}
	if in.Title == nil || strings.TrimSpace(*in.Title) == "" {
		return nil, domain.NewValidation("title is required")
	}

	company, err := s.store.GetCompanyByID(ctx, in.CompanyID)
	if err != nil {
		return nil, notFoundOr(err, "company not found", "failed to load company")
	}
	if company.OwnerID != userID {
		return nil, domain.NewForbidden("only the company administrator can post jobs")
	}

	job := model.Job{
		CompanyID:      in.CompanyID,
		JobType:        domain.JobTypeFullTime,
		Status:         domain.JobStatusActive,
		RequiredSkills: []string{},
	}
	if err := applyJobInput(&job, in); err != nil {
		return nil, err
	}

	now := s.now()
	job.CreatedAt = now
	job.UpdatedAt = now

	if err := s.store.CreateJob(ctx, &job); err != nil {
		return nil, unexpected("failed to create job", err)
	}
	s.invalidateCompany(ctx, job.CompanyID)

	s.logger.Info("Job created", slog.Int64("job_id", job.ID), slog.Int64("company_id", job.CompanyID))
	return &job, nil
}

func applyJobInput(job *model.Job, in JobInput) error {
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return domain.NewValidation("title must not be empty")
		}
		job.Title = title
	}
	if in.Description != nil {
		job.Description = in.Description
	}
	if in.RequiredSkills != nil {
		job.RequiredSkills = in.RequiredSkills
	}
	if in.RequiredCareer != nil {
		if *in.RequiredCareer < 0 {
			return domain.NewValidation("requiredCareer must not be negative")
		}
		job.RequiredCareer = *in.RequiredCareer
	}
	if in.Salary != nil {
		if in.Salary.Min < 0 || (in.Salary.Max > 0 && in.Salary.Max < in.Salary.Min) {
			return domain.NewValidation("salary range is invalid").
				With("min", in.Salary.Min).
				With("max", in.Salary.Max)
		}
		job.Salary = in.Salary
	}
	if in.Location != nil {
		job.Location = in.Location
	}
	if in.JobType != nil {
		if !domain.IsJobType(*in.JobType) {
			return domain.NewValidation("invalid job type").With("jobType", *in.JobType)
		}
		job.JobType = *in.JobType
	}
	if in.Deadline != nil {
		job.Deadline = in.Deadline
	}
	if in.Status != nil {
		if !domain.IsJobStatus(*in.Status) {
			return domain.NewValidation("invalid job status").With("status", *in.Status)
		}
		job.Status = *in.Status
	}
	return nil
}

// loadOwned returns the job when userID administers its company
func (s *JobService) loadOwned(ctx context.Context, id, userID int64) (*model.JobListItem, error) {
	job, err := s.store.GetJob(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "job not found", "failed to load job")
	}
	if job.CompanyOwnerID != userID {
		return nil, domain.NewForbidden("only the company administrator can modify this job")
	}
	return job, nil
}

func (s *JobService) Update(ctx context.Context, id, userID int64, in JobInput) (*model.Job, error) {
	item, err := s.loadOwned(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	job := item.Job
	if err := applyJobInput(&job, in); err != nil {
		return nil, err
	}
	job.UpdatedAt = s.now()

	if err := s.store.UpdateJob(ctx, &job); err != nil {
		return nil, unexpected("failed to update job", err)
	}
	s.invalidateCompany(ctx, job.CompanyID)
	return &job, nil
}

// Close hides the posting from listings and stops new applications
func (s *JobService) Close(ctx context.Context, id, userID int64) error {
	job, err := s.loadOwned(ctx, id, userID)
	if err != nil {
		return err
	}

	if err := s.store.CloseJob(ctx, id, s.now()); err != nil {
		return unexpected("failed to close job", err)
	}
	s.invalidateCompany(ctx, job.CompanyID)
	return nil
}

func (s *JobService) invalidateCompany(ctx context.Context, companyID int64) {
	if err := s.cache.Invalidate(ctx, companyID); err != nil {
		s.logger.Warn("Company cache invalidation failed",
			slog.Int64("company_id", companyID),
			slog.String("error", err.Error()),
		)
	}
}
