package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/highcastle01/WSD-Assignment-03/internal/api/domain"
	"github.com/highcastle01/WSD-Assignment-03/internal/api/model"
)

const defaultBookmarkLimit = 20

type BookmarkService struct {
	store  BookmarkStore
	logger *slog.Logger
	now    func() time.Time
}

func NewBookmarkService(store BookmarkStore, logger *slog.Logger) *BookmarkService {
	return &BookmarkService{store: store, logger: logger, now: time.Now}
}

// ToggleResult reports which way a toggle went. Bookmark is nil when removed.
type ToggleResult struct {
	Added    bool
	Bookmark *model.Bookmark
}

// Toggle adds the bookmark when absent and removes it when present
func (s *BookmarkService) Toggle(ctx context.Context, userID int64, targetType string, targetID int64) (*ToggleResult, error) {
	target, err := domain.ParseBookmarkTarget(targetType, targetID)
	if err != nil {
		return nil, err
	}

	exists, err := s.store.BookmarkTargetExists(ctx, target)
	if err != nil {
		return nil, unexpected("failed to look up bookmark target", err)
	}
	if !exists {
		return nil, domain.NewNotFound(string(target.Type()) + " not found").
			With("targetType", target.Type()).
			With("targetId", target.TargetID())
	}

	bm, err := s.store.ToggleBookmark(ctx, userID, target, s.now())
	if err != nil {
		return nil, unexpected("failed to toggle bookmark", err)
	}

	s.logger.Debug("Bookmark toggled",
		slog.Int64("user_id", userID),
		slog.String("target_type", string(target.Type())),
		slog.Int64("target_id", target.TargetID()),
		slog.Bool("added", bm != nil),
	)

	return &ToggleResult{Added: bm != nil, Bookmark: bm}, nil
}

// List returns the caller's bookmarks, newest first
func (s *BookmarkService) List(ctx context.Context, userID int64, targetType string, page model.Pagination) (*Page[model.BookmarkItem], error) {
	kind, err := domain.ParseTargetType(targetType)
	if err != nil {
		return nil, err
	}

	page = normalizePage(page, defaultBookmarkLimit)
	items, total, err := s.store.ListBookmarks(ctx, model.BookmarkFilter{
		UserID:     userID,
		Type:       string(kind),
		Pagination: page,
	})
	if err != nil {
		return nil, unexpected("failed to list bookmarks", err)
	}
	return newPage(items, total, page), nil
}

// Check reports whether the caller bookmarked the target
func (s *BookmarkService) Check(ctx context.Context, userID int64, targetType string, targetID int64) (bool, error) {
	target, err := domain.ParseBookmarkTarget(targetType, targetID)
	if err != nil {
		return false, err
	}

	exists, err := s.store.BookmarkExists(ctx, userID, target)
	if err != nil {
		return false, unexpected("failed to check bookmark", err)
	}
	return exists, nil
}
