package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/highcastle01/WSD-Assignment-03/internal/api/model"
	"github.com/jmoiron/sqlx"
)

// Storage handles all database operations for the worker
type Storage struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewStorage creates a new Storage instance
func NewStorage(db *sqlx.DB, logger *slog.Logger) *Storage {
	return &Storage{
		db:     db,
		logger: logger,
	}
}

// RecordStatusChange inserts one history row. It reports false when the
// event id was already recorded.
func (s *Storage) RecordStatusChange(ctx context.Context, entry *model.ApplicationStatusHistory) (bool, error) {
	query := `
		INSERT INTO application_status_histories
			(event_id, application_id, user_id, job_id, event_type, previous_status, new_status, actor_id, occurred_at, created_at)
		VALUES
			(:event_id, :application_id, :user_id, :job_id, :event_type, :previous_status, :new_status, :actor_id, :occurred_at, :created_at)
		ON CONFLICT (event_id) DO NOTHING
	`

	result, err := s.db.NamedExecContext(ctx, query, entry)
	if err != nil {
		return false, fmt.Errorf("failed to insert status history: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		s.logger.Info("Status history already recorded",
			slog.String("event_id", entry.EventID),
		)
		return false, nil
	}

	return true, nil
}
