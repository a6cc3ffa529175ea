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

type InterviewReviewService struct {
	store    InterviewReviewStore
	searches SearchRecorder
	logger   *slog.Logger
	now      func() time.Time
}

func NewInterviewReviewService(store InterviewReviewStore, searches SearchRecorder, logger *slog.Logger) *InterviewReviewService {
	return &InterviewReviewService{store: store, searches: searches, logger: logger, now: time.Now}
}

// InterviewReviewInput carries create and update fields. Nil means unchanged on update.
type InterviewReviewInput struct {
	CompanyID     int64
	Difficulty    *int
	Result        *string
	Position      *string
	InterviewDate *time.Time
	Process       *string
	Questions     *string
	Content       *string
	Tips          *string
}

// InterviewReviewPage is one page of a company's interview reviews with statistics
type InterviewReviewPage struct {
	Page[model.InterviewReview]
	Stats model.InterviewReviewStats
}

func (s *InterviewReviewService) Create(ctx context.Context, userID int64, in InterviewReviewInput) (*model.InterviewReview, error) {
	if in.CompanyID <= 0 {
		return nil, domain.NewValidation("companyId is required")
	}
	if in.Difficulty == nil || in.Result == nil || in.Process == nil {
		return nil, domain.NewValidation("difficulty, result and process are required")
	}

	company, err := s.store.GetCompanyByID(ctx, in.CompanyID)
	if err != nil {
		return nil, notFoundOr(err, "company not found", "failed to load company")
	}

	review := model.InterviewReview{
		UserID:      userID,
		CompanyID:   company.ID,
		CompanyName: company.Name,
	}
	if err := applyInterviewReviewInput(&review, in); err != nil {
		return nil, err
	}

	now := s.now()
	review.CreatedAt = now
	review.UpdatedAt = now

	if err := s.store.CreateInterviewReview(ctx, &review); err != nil {
		return nil, unexpected("failed to create interview review", err)
	}
	return &review, nil
}

func applyInterviewReviewInput(review *model.InterviewReview, in InterviewReviewInput) error {
	if in.Difficulty != nil {
		if *in.Difficulty < 1 || *in.Difficulty > 5 {
			return domain.NewValidation("difficulty must be between 1 and 5").With("difficulty", *in.Difficulty)
		}
		review.Difficulty = *in.Difficulty
	}
	if in.Result != nil {
		if !domain.IsReviewResult(*in.Result) {
			return domain.NewValidation("invalid interview result").
				With("result", *in.Result).
				With("allowed", []string{domain.ReviewResultPassed, domain.ReviewResultFailed, domain.ReviewResultPending})
		}
		review.Result = *in.Result
	}
	if in.Process != nil {
		if strings.TrimSpace(*in.Process) == "" {
			return domain.NewValidation("process must not be empty")
		}
		review.Process = *in.Process
	}
	if in.Position != nil {
		review.Position = in.Position
	}
	if in.InterviewDate != nil {
		review.InterviewDate = in.InterviewDate
	}
	if in.Questions != nil {
		review.Questions = in.Questions
	}
	if in.Content != nil {
		review.Content = in.Content
	}
	if in.Tips != nil {
		review.Tips = in.Tips
	}
	return nil
}

// List filters every review and records the query in the caller's history
func (s *InterviewReviewService) List(ctx context.Context, userID int64, filter model.InterviewReviewFilter) (*Page[model.InterviewReview], error) {
	if filter.Result != "" && !domain.IsReviewResult(filter.Result) {
		return nil, domain.NewValidation("invalid interview result").With("result", filter.Result)
	}
	if filter.Difficulty < 0 || filter.Difficulty > 5 {
		return nil, domain.NewValidation("difficulty must be between 1 and 5").With("difficulty", filter.Difficulty)
	}

	filter.Pagination = normalizePage(filter.Pagination, defaultPageLimit)
	items, total, err := s.store.ListInterviewReviews(ctx, filter)
	if err != nil {
		return nil, unexpected("failed to list interview reviews", err)
	}

	var firstID any
	if len(items) > 0 {
		firstID = items[0].ID
	}
	s.searches.Record(ctx, userID, "interview reviews", map[string]any{
		"source":        "interview_reviews",
		"page":          filter.Page,
		"limit":         filter.Limit,
		"companyId":     filter.CompanyID,
		"position":      filter.Position,
		"difficulty":    filter.Difficulty,
		"result":        filter.Result,
		"resultCount":   len(items),
		"firstResultId": firstID,
	})

	return newPage(items, total, filter.Pagination), nil
}

// ListByCompany returns a company's interview reviews with difficulty and
// acceptance statistics over the same filter
func (s *InterviewReviewService) ListByCompany(ctx context.Context, companyID int64, position string, page model.Pagination) (*InterviewReviewPage, error) {
	if _, err := s.store.GetCompanyByID(ctx, companyID); err != nil {
		return nil, notFoundOr(err, "company not found", "failed to load company")
	}

	filter := model.InterviewReviewFilter{
		CompanyID:  companyID,
		Position:   strings.TrimSpace(position),
		Pagination: normalizePage(page, defaultPageLimit),
	}

	items, total, err := s.store.ListInterviewReviews(ctx, filter)
	if err != nil {
		return nil, unexpected("failed to list interview reviews", err)
	}

	stats, err := s.store.InterviewReviewStats(ctx, filter)
	if err != nil {
		return nil, unexpected("failed to load interview review statistics", err)
	}

	return &InterviewReviewPage{
		Page:  *newPage(items, total, filter.Pagination),
		Stats: finishInterviewStats(*stats),
	}, nil
}

// finishInterviewStats rounds to one decimal and derives the acceptance rate
func finishInterviewStats(stats model.InterviewReviewStats) model.InterviewReviewStats {
	stats.AverageDifficulty = math.Round(stats.AverageDifficulty*10) / 10
	if stats.TotalReviews > 0 {
		rate := float64(stats.PassedReviews) / float64(stats.TotalReviews) * 100
		stats.AcceptanceRate = math.Round(rate*10) / 10
	}
	return stats
}

func (s *InterviewReviewService) loadOwned(ctx context.Context, id, userID int64) (*model.InterviewReview, error) {
	review, err := s.store.GetInterviewReview(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "interview review not found", "failed to load interview review")
	}
	if review.UserID != userID {
		return nil, domain.NewForbidden("only the author can modify this review")
	}
	return review, nil
}

func (s *InterviewReviewService) Update(ctx context.Context, id, userID int64, in InterviewReviewInput) (*model.InterviewReview, error) {
	review, err := s.loadOwned(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if err := applyInterviewReviewInput(review, in); err != nil {
		return nil, err
	}
	review.UpdatedAt = s.now()

	if err := s.store.UpdateInterviewReview(ctx, review); err != nil {
		return nil, unexpected("failed to update interview review", err)
	}
	return review, nil
}

func (s *InterviewReviewService) Delete(ctx context.Context, id, userID int64) error {
	if _, err := s.loadOwned(ctx, id, userID); err != nil {
		return err
	}
	if err := s.store.DeleteInterviewReview(ctx, id); err != nil {
		return unexpected("failed to delete interview review", err)
	}
	return nil
}
