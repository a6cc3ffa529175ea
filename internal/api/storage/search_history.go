package storage

import (
	"context"

	"github.com/highcastle01/WSD-Assignment-03/internal/api/model"
)

func (s *Storage) CreateSearch(ctx context.Context, search *model.SearchHistory) error {
	query := `
		INSERT INTO search_histories (user_id, keyword, filters, searched_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	err := s.db.QueryRowxContext(ctx, query,
		search.UserID,
		search.Keyword,
		search.Filters,
		search.SearchedAt,
		search.CreatedAt,
		search.UpdatedAt,
	).Scan(&search.ID)

	return translate("failed to save search", err)
}

func (s *Storage) ListSearches(ctx context.Context, userID int64, page model.Pagination) ([]model.SearchHistory, int, error) {
	var total int
	if err := s.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM search_histories WHERE user_id = $1`, userID); err != nil {
		return nil, 0, translate("failed to count searches", err)
	}

	query := `
		SELECT id, user_id, keyword, filters, searched_at, created_at, updated_at
		FROM search_histories
		WHERE user_id = $1
		ORDER BY searched_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`

	var searches []model.SearchHistory
	if err := s.db.SelectContext(ctx, &searches, query, userID, page.Limit, page.Offset()); err != nil {
		return nil, 0, translate("failed to list searches", err)
	}
	return searches, total, nil
}

// PopularKeywords returns the user's most searched non-empty keywords
func (s *Storage) PopularKeywords(ctx context.Context, userID int64, limit int) ([]model.KeywordCount, error) {
	query := `
		SELECT keyword, COUNT(*) AS count
		FROM search_histories
		WHERE user_id = $1 AND keyword <> ''
		GROUP BY keyword
		ORDER BY count DESC, keyword ASC
		LIMIT $2
	`

	var keywords []model.KeywordCount
	if err := s.db.SelectContext(ctx, &keywords, query, userID, limit); err != nil {
		return nil, translate("failed to list popular keywords", err)
	}
	return keywords, nil
}

// DeleteSearch reports false when no entry of userID has the id
func (s *Storage) DeleteSearch(ctx context.Context, id, userID int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM search_histories WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return false, translate("failed to delete search", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, translate("failed to read delete result", err)
	}
	return n > 0, nil
}

func (s *Storage) ClearSearches(ctx context.Context, userID int64) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM search_histories WHERE user_id = $1`, userID)
	if err != nil {
		return 0, translate("failed to clear searches", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, translate("failed to read clear result", err)
	}
	return n, nil
}
