package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/highcastle01/WSD-Assignment-03/internal/api/domain"
	"github.com/highcastle01/WSD-Assignment-03/internal/api/model"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const jobColumns = `j.id, j.company_id, j.title, j.description, j.required_skills, j.required_career,
	j.salary, j.location, j.job_type, j.deadline, j.status, j.view_count, j.created_at, j.updated_at`

var jobSortColumns = map[string]string{
	"createdAt":      "j.created_at",
	"deadline":       "j.deadline",
	"viewCount":      "j.view_count",
	"requiredCareer": "j.required_career",
	"title":          "j.title",
	"salary":         "(j.salary->>'max')::bigint",
}

func (s *Storage) CreateJob(ctx context.Context, job *model.Job) error {
	query := `
		INSERT INTO jobs (
			company_id, title, description, required_skills, required_career, salary,
			location, job_type, deadline, status, view_count, created_at, updated_at
		) VALUES (
			:company_id, :title, :description, :required_skills, :required_career, :salary,
			:location, :job_type, :deadline, :status, 0, :created_at, :updated_at
		)
		RETURNING id
	`

	rows, err := sqlx.NamedQueryContext(ctx, s.db, query, job)
	if err != nil {
		return translate("failed to create job", err)
	}
	defer rows.Close()

	if rows.Next() {
		if err := rows.Scan(&job.ID); err != nil {
			return translate("failed to read job id", err)
		}
	}
	return translate("failed to create job", rows.Err())
}

// JobTitleExists reports whether the company already posted a job titled title
func (s *Storage) JobTitleExists(ctx context.Context, companyID int64, title string) (bool, error) {
	var exists bool
	err := s.db.GetContext(ctx, &exists,
		`SELECT EXISTS(SELECT 1 FROM jobs WHERE company_id = $1 AND title = $2)`, companyID, title)
	if err != nil {
		return false, translate("failed to check job title", err)
	}
	return exists, nil
}

// GetJob returns a job of any status together with its company
func (s *Storage) GetJob(ctx context.Context, id int64) (*model.JobListItem, error) {
	query := `
		SELECT ` + jobColumns + `, c.name AS company_name, c.owner_id AS company_owner_id
		FROM jobs j
		JOIN companies c ON c.id = j.company_id
		WHERE j.id = $1
	`

	var job model.JobListItem
	if err := s.db.GetContext(ctx, &job, query, id); err != nil {
		return nil, translate("failed to get job", err)
	}
	return &job, nil
}

// GetOpenJob returns the job only when it is ACTIVE and its deadline lies after now
func (s *Storage) GetOpenJob(ctx context.Context, id int64, now time.Time) (*model.JobListItem, error) {
	query := `
		SELECT ` + jobColumns + `, c.name AS company_name, c.owner_id AS company_owner_id
		FROM jobs j
		JOIN companies c ON c.id = j.company_id
		WHERE j.id = $1 AND j.status = $2 AND j.deadline > $3
	`

	var job model.JobListItem
	if err := s.db.GetContext(ctx, &job, query, id, domain.JobStatusActive, now); err != nil {
		return nil, translate("failed to get open job", err)
	}
	return &job, nil
}

func (s *Storage) JobExists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := s.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM jobs WHERE id = $1)`, id)
	if err != nil {
		return false, translate("failed to check job", err)
	}
	return exists, nil
}

// ListJobs lists ACTIVE postings
func (s *Storage) ListJobs(ctx context.Context, filter model.JobFilter) ([]model.JobListItem, int, error) {
	where := []string{"j.status = $1"}
	args := []any{domain.JobStatusActive}
	argIdx := 2

	if filter.Location != "" {
		where = append(where, fmt.Sprintf("j.location ILIKE $%d", argIdx))
		args = append(args, "%"+filter.Location+"%")
		argIdx++
	}

	if filter.MaxCareer != nil {
		where = append(where, fmt.Sprintf("j.required_career <= $%d", argIdx))
		args = append(args, *filter.MaxCareer)
		argIdx++
	}

	if filter.MinSalary != nil {
		where = append(where, fmt.Sprintf("(j.salary->>'min')::bigint >= $%d", argIdx))
		args = append(args, *filter.MinSalary)
		argIdx++
	}

	if filter.MaxSalary != nil {
		where = append(where, fmt.Sprintf("(j.salary->>'max')::bigint <= $%d", argIdx))
		args = append(args, *filter.MaxSalary)
		argIdx++
	}

	if len(filter.Skills) > 0 {
		where = append(where, fmt.Sprintf("j.required_skills && $%d", argIdx))
		args = append(args, pq.StringArray(filter.Skills))
		argIdx++
	}

	if filter.Keyword != "" {
		where = append(where, fmt.Sprintf("(j.title ILIKE $%d OR j.description ILIKE $%d)", argIdx, argIdx))
		args = append(args, "%"+filter.Keyword+"%")
		argIdx++
	}

	if filter.CompanyName != "" {
		where = append(where, fmt.Sprintf("c.name ILIKE $%d", argIdx))
		args = append(args, "%"+filter.CompanyName+"%")
		argIdx++
	}

	if filter.JobType != "" {
		where = append(where, fmt.Sprintf("j.job_type = $%d", argIdx))
		args = append(args, filter.JobType)
		argIdx++
	}

	whereSQL := strings.Join(where, " AND ")
	from := ` FROM jobs j JOIN companies c ON c.id = j.company_id WHERE ` + whereSQL

	var total int
	if err := s.db.GetContext(ctx, &total, `SELECT COUNT(*)`+from, args...); err != nil {
		return nil, 0, translate("failed to count jobs", err)
	}

	query := `SELECT ` + jobColumns + `, c.name AS company_name, c.owner_id AS company_owner_id` + from +
		` ORDER BY ` + orderBy(jobSortColumns, filter.SortBy, filter.Order, "j.created_at") + ` NULLS LAST, j.id DESC` +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, filter.Limit, filter.Offset())

	var jobs []model.JobListItem
	if err := s.db.SelectContext(ctx, &jobs, query, args...); err != nil {
		return nil, 0, translate("failed to list jobs", err)
	}

	return jobs, total, nil
}

func (s *Storage) IncrementJobViews(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, `UPDATE jobs SET view_count = view_count + 1 WHERE id = $1`, id)
	return translate("failed to increment job views", err)
}

// ListRelatedJobs returns other ACTIVE postings of the same company
func (s *Storage) ListRelatedJobs(ctx context.Context, companyID, excludeID int64, limit int) ([]model.Job, error) {
	query := `
		SELECT ` + jobColumns + `
		FROM jobs j
		WHERE j.company_id = $1 AND j.id <> $2 AND j.status = $3
		ORDER BY j.created_at DESC
		LIMIT $4
	`

	var jobs []model.Job
	if err := s.db.SelectContext(ctx, &jobs, query, companyID, excludeID, domain.JobStatusActive, limit); err != nil {
		return nil, translate("failed to list related jobs", err)
	}
	return jobs, nil
}

func (s *Storage) UpdateJob(ctx context.Context, job *model.Job) error {
	query := `
		UPDATE jobs
		SET title = :title, description = :description, required_skills = :required_skills,
			required_career = :required_career, salary = :salary, location = :location,
			job_type = :job_type, deadline = :deadline, status = :status, updated_at = :updated_at
		WHERE id = :id
	`

	_, err := s.db.NamedExecContext(ctx, query, job)
	return translate("failed to update job", err)
}

// CloseJob soft-deletes a posting by moving it to CLOSED
func (s *Storage) CloseJob(ctx context.Context, id int64, at time.Time) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE jobs SET status = $1, updated_at = $2 WHERE id = $3`, domain.JobStatusClosed, at, id)
	return translate("failed to close job", err)
}
