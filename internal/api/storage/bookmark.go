package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/highcastle01/WSD-Assignment-03/internal/api/domain"
	"github.com/highcastle01/WSD-Assignment-03/internal/api/model"
	"github.com/jmoiron/sqlx"
)

// BookmarkTargetExists resolves the target variant to its table
func (s *Storage) BookmarkTargetExists(ctx context.Context, target domain.BookmarkTarget) (bool, error) {
	switch t := target.(type) {
	case domain.JobTarget:
		return s.JobExists(ctx, t.ID)
	case domain.CompanyTarget:
		return s.CompanyExists(ctx, t.ID)
	default:
		return false, fmt.Errorf("unknown bookmark target %T", target)
	}
}

// ToggleBookmark deletes the bookmark if present, otherwise inserts it.
// It returns the created row, or nil when the bookmark was removed.
func (s *Storage) ToggleBookmark(ctx context.Context, userID int64, target domain.BookmarkTarget, at time.Time) (*model.Bookmark, error) {
	var created *model.Bookmark

	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx,
			`DELETE FROM bookmarks WHERE user_id = $1 AND target_type = $2 AND target_id = $3`,
			userID, target.Type(), target.TargetID())
		if err != nil {
			return translate("failed to delete bookmark", err)
		}

		removed, err := res.RowsAffected()
		if err != nil {
			return translate("failed to read delete result", err)
		}
		if removed > 0 {
			return nil
		}

		bm := model.Bookmark{
			UserID:     userID,
			TargetType: string(target.Type()),
			TargetID:   target.TargetID(),
			CreatedAt:  at,
			UpdatedAt:  at,
		}

		// a concurrent toggle may have inserted the same row; keep theirs
		query := `
			INSERT INTO bookmarks (user_id, target_type, target_id, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $4)
			ON CONFLICT (user_id, target_type, target_id) DO NOTHING
			RETURNING id
		`
		err = tx.QueryRowxContext(ctx, query, bm.UserID, bm.TargetType, bm.TargetID, at).Scan(&bm.ID)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			if err := tx.GetContext(ctx, &bm,
				`SELECT id, user_id, target_type, target_id, created_at, updated_at
				 FROM bookmarks WHERE user_id = $1 AND target_type = $2 AND target_id = $3`,
				bm.UserID, bm.TargetType, bm.TargetID); err != nil {
				return translate("failed to load bookmark", err)
			}
		case err != nil:
			return translate("failed to create bookmark", err)
		}

		created = &bm
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *Storage) BookmarkExists(ctx context.Context, userID int64, target domain.BookmarkTarget) (bool, error) {
	var exists bool
	err := s.db.GetContext(ctx, &exists,
		`SELECT EXISTS(SELECT 1 FROM bookmarks WHERE user_id = $1 AND target_type = $2 AND target_id = $3)`,
		userID, target.Type(), target.TargetID())
	if err != nil {
		return false, translate("failed to check bookmark", err)
	}
	return exists, nil
}

// ListBookmarks returns the newest bookmarks first with a summary of each target
func (s *Storage) ListBookmarks(ctx context.Context, filter model.BookmarkFilter) ([]model.BookmarkItem, int, error) {
	where := "b.user_id = $1"
	args := []any{filter.UserID}
	argIdx := 2

	if filter.Type != "" {
		where += fmt.Sprintf(" AND b.target_type = $%d", argIdx)
		args = append(args, filter.Type)
		argIdx++
	}

	var total int
	if err := s.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM bookmarks b WHERE `+where, args...); err != nil {
		return nil, 0, translate("failed to count bookmarks", err)
	}

	query := `
		SELECT b.id, b.user_id, b.target_type, b.target_id, b.created_at, b.updated_at,
			j.title AS target_title,
			COALESCE(jc.name, c.name) AS company_name,
			c.industry AS industry
		FROM bookmarks b
		LEFT JOIN jobs j ON b.target_type = 'job' AND j.id = b.target_id
		LEFT JOIN companies jc ON jc.id = j.company_id
		LEFT JOIN companies c ON b.target_type = 'company' AND c.id = b.target_id
		WHERE ` + where + `
		ORDER BY b.created_at DESC, b.id DESC` +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, filter.Limit, filter.Offset())

	var items []model.BookmarkItem
	if err := s.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, 0, translate("failed to list bookmarks", err)
	}
	return items, total, nil
}
