package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/highcastle01/WSD-Assignment-03/internal/api/domain"
	"github.com/highcastle01/WSD-Assignment-03/internal/api/model"
	"github.com/jmoiron/sqlx/types"
)

const popularKeywordLimit = 5

type SearchHistoryService struct {
	store  SearchHistoryStore
	logger *slog.Logger
	now    func() time.Time
}

func NewSearchHistoryService(store SearchHistoryStore, logger *slog.Logger) *SearchHistoryService {
	return &SearchHistoryService{store: store, logger: logger, now: time.Now}
}

// SearchPage is the history list plus the caller's most used keywords
type SearchPage struct {
	Page[model.SearchHistory]
	PopularKeywords []model.KeywordCount
}

func (s *SearchHistoryService) Save(ctx context.Context, userID int64, keyword string, filters map[string]any) (*model.SearchHistory, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, domain.NewValidation("keyword is required")
	}
	return s.save(ctx, userID, keyword, filters)
}

func (s *SearchHistoryService) save(ctx context.Context, userID int64, keyword string, filters map[string]any) (*model.SearchHistory, error) {
	if filters == nil {
		filters = map[string]any{}
	}
	raw, err := json.Marshal(filters)
	if err != nil {
		return nil, domain.NewValidation("filters must be a JSON object")
	}

	now := s.now()
	search := model.SearchHistory{
		UserID:     userID,
		Keyword:    keyword,
		Filters:    types.JSONText(raw),
		SearchedAt: now,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.store.CreateSearch(ctx, &search); err != nil {
		return nil, unexpected("failed to save search", err)
	}
	return &search, nil
}

// Record saves a search made through another list endpoint. Failures are
// logged and never surface to the caller.
func (s *SearchHistoryService) Record(ctx context.Context, userID int64, keyword string, filters map[string]any) {
	if userID <= 0 {
		return
	}
	if _, err := s.save(ctx, userID, strings.TrimSpace(keyword), filters); err != nil {
		s.logger.Warn("Failed to record search",
			slog.Int64("user_id", userID),
			slog.String("keyword", keyword),
			slog.String("error", err.Error()),
		)
	}
}

func (s *SearchHistoryService) List(ctx context.Context, userID int64, page model.Pagination) (*SearchPage, error) {
	page = normalizePage(page, defaultPageLimit)

	items, total, err := s.store.ListSearches(ctx, userID, page)
	if err != nil {
		return nil, unexpected("failed to list search history", err)
	}

	popular, err := s.store.PopularKeywords(ctx, userID, popularKeywordLimit)
	if err != nil {
		return nil, unexpected("failed to load popular keywords", err)
	}
	if popular == nil {
		popular = []model.KeywordCount{}
	}

	return &SearchPage{Page: *newPage(items, total, page), PopularKeywords: popular}, nil
}

func (s *SearchHistoryService) Delete(ctx context.Context, id, userID int64) error {
	deleted, err := s.store.DeleteSearch(ctx, id, userID)
	if err != nil {
		return unexpected("failed to delete search", err)
	}
	if !deleted {
		return domain.NewNotFound("search history not found")
	}
	return nil
}

// Clear removes every entry of the caller and returns how many were removed
func (s *SearchHistoryService) Clear(ctx context.Context, userID int64) (int64, error) {
	n, err := s.store.ClearSearches(ctx, userID)
	if err != nil {
		return 0, unexpected("failed to clear search history", err)
	}
	return n, nil
}
