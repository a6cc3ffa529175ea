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

var companySortKeys = []string{"createdAt", "name", "foundedYear", "employeeCount"}

type CompanyService struct {
	store    CompanyStore
	cache    CompanyCache
	searches SearchRecorder
	logger   *slog.Logger
	now      func() time.Time
}

func NewCompanyService(store CompanyStore, cache CompanyCache, searches SearchRecorder, logger *slog.Logger) *CompanyService {
	return &CompanyService{
		store:    store,
		cache:    cache,
		searches: searches,
		logger:   logger,
		now:      time.Now,
	}
}

// CompanyInput carries create and update fields. Nil means unchanged on update.
type CompanyInput struct {
	Name          *string
	Industry      *string
	Size          *string
	Location      *string
	EmployeeCount *int
	FoundedYear   *int
	CompanyURL    *string
}

type CompanyQuery struct {
	Keyword  string
	Industry string
	SortBy   string
	Order    string
	model.Pagination
}

func (s *CompanyService) Create(ctx context.Context, ownerID int64, in CompanyInput) (*model.Company, error) {
	if in.Name == nil || strings.TrimSpace(*in.Name) == "" || in.Location == nil || *in.Location == "" {
		return nil, domain.NewValidation("company name and location are required")
	}

	company := model.Company{OwnerID: ownerID}
	if err := s.apply(ctx, &company, in); err != nil {
		return nil, err
	}

	now := s.now()
	company.CreatedAt = now
	company.UpdatedAt = now

	if err := s.store.CreateCompany(ctx, &company); err != nil {
		return nil, unexpected("failed to create company", err)
	}

	s.logger.Info("Company created",
		slog.Int64("company_id", company.ID),
		slog.Int64("owner_id", ownerID),
	)
	return &company, nil
}

// apply validates in and copies the set fields onto company
func (s *CompanyService) apply(ctx context.Context, company *model.Company, in CompanyInput) error {
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return domain.NewValidation("company name must not be empty")
		}
		if name != company.Name {
			taken, err := s.store.CompanyNameTaken(ctx, name, company.ID)
			if err != nil {
				return unexpected("failed to check company name", err)
			}
			if taken {
				return domain.NewDuplicate("company name is already registered").With("name", name)
			}
		}
		company.Name = name
	}

	if in.Location != nil {
		if !domain.IsLocation(*in.Location) {
			return domain.NewValidation("invalid location").
				With("location", *in.Location).
				With("allowed", domain.Locations())
		}
		company.Location = *in.Location
	}

	if in.Industry != nil {
		company.Industry = in.Industry
	}
	if in.Size != nil {
		company.Size = in.Size
	}
	if in.EmployeeCount != nil {
		company.EmployeeCount = in.EmployeeCount
	}
	if in.FoundedYear != nil {
		company.FoundedYear = in.FoundedYear
	}
	if in.CompanyURL != nil {
		company.CompanyURL = in.CompanyURL
	}
	return nil
}

// List searches companies and records the search for userID
func (s *CompanyService) List(ctx context.Context, userID int64, q CompanyQuery) (*Page[model.CompanyWithStats], error) {
	if q.SortBy == "" {
		q.SortBy = "createdAt"
	}
	if !slices.Contains(companySortKeys, q.SortBy) {
		return nil, domain.NewValidation("invalid sort field").
			With("sortBy", q.SortBy).
			With("allowed", companySortKeys)
	}
	order, ok := normalizeOrder(q.Order)
	if !ok {
		return nil, domain.NewValidation("order must be ASC or DESC").With("order", q.Order)
	}

	page := normalizePage(q.Pagination, defaultPageLimit)
	items, total, err := s.store.ListCompanies(ctx, model.CompanyFilter{
		Keyword:    strings.TrimSpace(q.Keyword),
		Industry:   q.Industry,
		SortBy:     q.SortBy,
		Order:      order,
		Pagination: page,
	})
	if err != nil {
		return nil, unexpected("failed to list companies", err)
	}

	var firstID any
	if len(items) > 0 {
		firstID = items[0].ID
	}
	keyword := strings.TrimSpace(q.Keyword)
	if keyword == "" {
		keyword = "companies"
	}
	s.searches.Record(ctx, userID, keyword, map[string]any{
		"source":        "companies",
		"industry":      q.Industry,
		"page":          page.Page,
		"limit":         page.Limit,
		"sortBy":        q.SortBy,
		"order":         order,
		"resultCount":   len(items),
		"firstResultId": firstID,
	})

	return newPage(items, total, page), nil
}

// Get returns the company with its postings, served from cache when possible
func (s *CompanyService) Get(ctx context.Context, id int64) (*model.CompanyDetail, error) {
	cached, err := s.cache.Get(ctx, id)
	if err != nil {
		s.logger.Warn("Company cache read failed",
			slog.Int64("company_id", id),
			slog.String("error", err.Error()),
		)
	}
	if cached != nil {
		return cached, nil
	}

	company, err := s.store.GetCompanyByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "company not found", "failed to load company")
	}

	jobs, err := s.store.ListJobsByCompany(ctx, id)
	if err != nil {
		return nil, unexpected("failed to load company jobs", err)
	}
	if jobs == nil {
		jobs = []model.Job{}
	}

	detail := &model.CompanyDetail{Company: *company, Jobs: jobs, JobCount: len(jobs)}
	if err := s.cache.Set(ctx, detail); err != nil {
		s.logger.Warn("Company cache write failed",
			slog.Int64("company_id", id),
			slog.String("error", err.Error()),
		)
	}
	return detail, nil
}

// loadOwned returns the company when userID administers it
func (s *CompanyService) loadOwned(ctx context.Context, id, userID int64) (*model.Company, error) {
	company, err := s.store.GetCompanyByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "company not found", "failed to load company")
	}
	if company.OwnerID != userID {
		return nil, domain.NewForbidden("only the company administrator can modify this company")
	}
	return company, nil
}

func (s *CompanyService) Update(ctx context.Context, id, userID int64, in CompanyInput) (*model.Company, error) {
	company, err := s.loadOwned(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if err := s.apply(ctx, company, in); err != nil {
		return nil, err
	}
	company.UpdatedAt = s.now()

	if err := s.store.UpdateCompany(ctx, company); err != nil {
		return nil, unexpected("failed to update company", err)
	}
	s.invalidate(ctx, id)
	return company, nil
}

func (s *CompanyService) Delete(ctx context.Context, id, userID int64) error {
	if _, err := s.loadOwned(ctx, id, userID); err != nil {
		return err
	}

	if err := s.store.DeleteCompany(ctx, id); err != nil {
		return unexpected("failed to delete company", err)
	}
	s.invalidate(ctx, id)

	s.logger.Info("Company deleted", slog.Int64("company_id", id), slog.Int64("user_id", userID))
	return nil
}

func (s *CompanyService) invalidate(ctx context.Context, id int64) {
	if err := s.cache.Invalidate(ctx, id); err != nil {
		s.logger.Warn("Company cache invalidation failed",
			slog.Int64("company_id", id),
			slog.String("error", err.Error()),
		)
	}
}
