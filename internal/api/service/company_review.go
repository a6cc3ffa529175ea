package service

import (
	"context"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/highcastle01/WSD-Assignment-03/internal/api/domain"
	"github.com/highcastle01/WSD-Assignment-03/internal/api/model"
)

type CompanyReviewService struct {
	store    CompanyReviewStore
	searches SearchRecorder
	logger   *slog.Logger
	now      func() time.Time
}

func NewCompanyReviewService(store CompanyReviewStore, searches SearchRecorder, logger *slog.Logger) *CompanyReviewService {
	return &CompanyReviewService{store: store, searches: searches, logger: logger, now: time.Now}
}

// CompanyReviewInput carries create and update fields. Nil means unchanged on update.
type CompanyReviewInput struct {
	CompanyID         int64
	Rating            *int
	Title             *string
	Content           *string
	Pros              *string
	Cons              *string
	Position          *string
	WorkPeriod        *string
	IsCurrentEmployee *bool
}

// CompanyReviewPage is one page of a company's reviews with its rating summary
type CompanyReviewPage struct {
	Page[model.CompanyReview]
	Stats model.CompanyReviewStats
}

func (s *CompanyReviewService) Create(ctx context.Context, userID int64, in CompanyReviewInput) (*model.CompanyReview, error) {
	if in.CompanyID <= 0 {
		return nil, domain.NewValidation("companyId is required")
	}
	if in.Rating == nil || in.Title == nil || in.Content == nil {
		return nil, domain.NewValidation("rating, title and content are required")
	}

	exists, err := s.store.CompanyExists(ctx, in.CompanyID)
	if err != nil {
		return nil, unexpected("failed to look up company", err)
	}
	if !exists {
		return nil, domain.NewNotFound("company not found")
	}

	reviewed, err := s.store.CompanyReviewExists(ctx, userID, in.CompanyID)
	if err != nil {
		return nil, unexpected("failed to check existing review", err)
	}
	if reviewed {
		return nil, domain.NewDuplicate("you have already reviewed this company").With("companyId", in.CompanyID)
	}

	review := model.CompanyReview{UserID: userID, CompanyID: in.CompanyID}
	if err := applyCompanyReviewInput(&review, in); err != nil {
		return nil, err
	}

	now := s.now()
	review.CreatedAt = now
	review.UpdatedAt = now

	if err := s.store.CreateCompanyReview(ctx, &review); err != nil {
		return nil, unexpected("failed to create review", err)
	}
	return &review, nil
}

func applyCompanyReviewInput(review *model.CompanyReview, in CompanyReviewInput) error {
	if in.Rating != nil {
		if *in.Rating < 1 || *in.Rating > 5 {
			return domain.NewValidation("rating must be between 1 and 5").With("rating", *in.Rating)
		}
		review.Rating = *in.Rating
	}
	if in.Title != nil {
		if strings.TrimSpace(*in.Title) == "" {
			return domain.NewValidation("title must not be empty")
		}
		review.Title = *in.Title
	}
	if in.Content != nil {
		if strings.TrimSpace(*in.Content) == "" {
			return domain.NewValidation("content must not be empty")
		}
		review.Content = *in.Content
	}
	if in.Pros != nil {
		review.Pros = in.Pros
	}
	if in.Cons != nil {
		review.Cons = in.Cons
	}
	if in.Position != nil {
		review.Position = in.Position
	}
	if in.WorkPeriod != nil {
		review.WorkPeriod = in.WorkPeriod
	}
	if in.IsCurrentEmployee != nil {
		review.IsCurrentEmployee = *in.IsCurrentEmployee
	}
	return nil
}

// List returns every review, newest first
func (s *CompanyReviewService) List(ctx context.Context, page model.Pagination) (*Page[model.CompanyReview], error) {
	return s.list(ctx, 0, 0, page)
}

// ListMine returns the reviews written by userID
func (s *CompanyReviewService) ListMine(ctx context.Context, userID int64, page model.Pagination) (*Page[model.CompanyReview], error) {
	return s.list(ctx, 0, userID, page)
}

func (s *CompanyReviewService) list(ctx context.Context, companyID, userID int64, page model.Pagination) (*Page[model.CompanyReview], error) {
	page = normalizePage(page, defaultPageLimit)
	items, total, err := s.store.ListCompanyReviews(ctx, companyID, userID, page)
	if err != nil {
		return nil, unexpected("failed to list reviews", err)
	}
	return newPage(items, total, page), nil
}

// ListByCompany returns a company's reviews and rating summary, and records
// the lookup in the caller's search history
func (s *CompanyReviewService) ListByCompany(ctx context.Context, userID, companyID int64, page model.Pagination) (*CompanyReviewPage, error) {
	exists, err := s.store.CompanyExists(ctx, companyID)
	if err != nil {
		return nil, unexpected("failed to look up company", err)
	}
	if !exists {
		return nil, domain.NewNotFound("company not found")
	}

	reviews, err := s.list(ctx, companyID, 0, page)
	if err != nil {
		return nil, err
	}

	stats, err := s.store.CompanyReviewStats(ctx, companyID)
	if err != nil {
		return nil, unexpected("failed to load review statistics", err)
	}
	stats.AverageRating = math.Round(stats.AverageRating*10) / 10

	s.searches.Record(ctx, userID, "company reviews", map[string]any{
		"source":      "company_reviews",
		"companyId":   companyID,
		"page":        reviews.Pagination.Page,
		"resultCount": len(reviews.Items),
	})

	return &CompanyReviewPage{Page: *reviews, Stats: *stats}, nil
}

// loadOwned returns the review when userID wrote it
func (s *CompanyReviewService) loadOwned(ctx context.Context, id, userID int64) (*model.CompanyReview, error) {
	review, err := s.store.GetCompanyReview(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "review not found", "failed to load review")
	}
	if review.UserID != userID {
		return nil, domain.NewForbidden("only the author can modify this review")
	}
	return review, nil
}

func (s *CompanyReviewService) Update(ctx context.Context, id, userID int64, in CompanyReviewInput) (*model.CompanyReview, error) {
	review, err := s.loadOwned(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if err := applyCompanyReviewInput(review, in); err != nil {
		return nil, err
	}
	review.UpdatedAt = s.now()

	if err := s.store.UpdateCompanyReview(ctx, review); err != nil {
		return nil, unexpected("failed to update review", err)
	}
	return review, nil
}

func (s *CompanyReviewService) Delete(ctx context.Context, id, userID int64) error {
	if _, err := s.loadOwned(ctx, id, userID); err != nil {
		return err
	}
	if err := s.store.DeleteCompanyReview(ctx, id); err != nil {
		return unexpected("failed to delete review", err)
	}
	return nil
}
