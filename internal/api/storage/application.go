package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/highcastle01/WSD-Assignment-03/internal/api/domain"
	"github.com/highcastle01/WSD-Assignment-03/internal/api/model"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const applicationColumns = `a.id, a.user_id, a.job_id, a.status, a.cover_letter, a.applied_at,
	a.last_status_update_at, a.created_at, a.updated_at`

const applicationDetailSelect = `
	SELECT ` + applicationColumns + `,
		j.title AS job_title, c.id AS company_id, c.name AS company_name, c.owner_id AS company_owner_id
	FROM applications a
	JOIN jobs j ON j.id = a.job_id
	JOIN companies c ON c.id = j.company_id
`

var applicationSortColumns = map[string]string{
	"appliedAt": "a.applied_at",
	"status":    "a.status",
	"updatedAt": "a.updated_at",
}

// FindActiveApplication returns the non-withdrawn application of user for job
func (s *Storage) FindActiveApplication(ctx context.Context, userID, jobID int64) (*model.Application, error) {
	return findActiveApplication(ctx, s.db, userID, jobID)
}

func findActiveApplication(ctx context.Context, q queryer, userID, jobID int64) (*model.Application, error) {
	query := `
		SELECT ` + applicationColumns + `
		FROM applications a
		WHERE a.user_id = $1 AND a.job_id = $2 AND a.status <> $3
		LIMIT 1
	`

	var app model.Application
	if err := q.GetContext(ctx, &app, query, userID, jobID, domain.ApplicationWithdrawn); err != nil {
		return nil, translate("failed to find active application", err)
	}
	return &app, nil
}

func duplicateApplication(existing *model.Application) *domain.Error {
	return domain.NewDuplicate("you have already applied to this job").
		With("applicationId", existing.ID).
		With("appliedAt", existing.AppliedAt)
}

// CreateApplication re-checks for an active application and inserts inside one
// transaction. A concurrent insert that slips past the check trips the
// partial unique index and is reported the same way.
func (s *Storage) CreateApplication(ctx context.Context, app *model.Application) error {
	return s.withTx(ctx, func(tx *sqlx.Tx) error {
		existing, err := findActiveApplication(ctx, tx, app.UserID, app.JobID)
		switch {
		case err == nil:
			return duplicateApplication(existing)
		case !domain.IsNotFound(err):
			return err
		}

		query := `
			INSERT INTO applications (
				user_id, job_id, status, cover_letter, applied_at, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id
		`

		err = tx.QueryRowxContext(ctx, query,
			app.UserID,
			app.JobID,
			app.Status,
			app.CoverLetter,
			app.AppliedAt,
			app.CreatedAt,
			app.UpdatedAt,
		).Scan(&app.ID)
		if err != nil {
			if isUniqueViolation(err) {
				s.logger.Warn("Concurrent duplicate application rejected by unique index",
					slog.Int64("user_id", app.UserID),
					slog.Int64("job_id", app.JobID),
				)
				return domain.NewDuplicate("you have already applied to this job").
					With("jobId", app.JobID)
			}
			return translate("failed to create application", err)
		}

		return nil
	})
}

func (s *Storage) GetApplicationDetail(ctx context.Context, id int64) (*model.ApplicationDetail, error) {
	var app model.ApplicationDetail
	if err := s.db.GetContext(ctx, &app, applicationDetailSelect+` WHERE a.id = $1`, id); err != nil {
		return nil, translate("failed to get application", err)
	}
	return &app, nil
}

// GetUserApplication returns the application only when userID owns it
func (s *Storage) GetUserApplication(ctx context.Context, id, userID int64) (*model.ApplicationDetail, error) {
	var app model.ApplicationDetail
	err := s.db.GetContext(ctx, &app, applicationDetailSelect+` WHERE a.id = $1 AND a.user_id = $2`, id, userID)
	if err != nil {
		return nil, translate("failed to get application", err)
	}
	return &app, nil
}

func (s *Storage) ListUserApplications(ctx context.Context, filter model.ApplicationFilter) ([]model.ApplicationDetail, int, error) {
	where := "a.user_id = $1"
	args := []any{filter.UserID}
	argIdx := 2

	if filter.Status != "" {
		where += fmt.Sprintf(" AND a.status = $%d", argIdx)
		args = append(args, filter.Status)
		argIdx++
	}

	var total int
	if err := s.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM applications a WHERE `+where, args...); err != nil {
		return nil, 0, translate("failed to count applications", err)
	}

	query := applicationDetailSelect + ` WHERE ` + where +
		` ORDER BY ` + orderBy(applicationSortColumns, filter.SortBy, filter.Order, "a.applied_at") + `, a.id DESC` +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, filter.Limit, filter.Offset())

	var apps []model.ApplicationDetail
	if err := s.db.SelectContext(ctx, &apps, query, args...); err != nil {
		return nil, 0, translate("failed to list applications", err)
	}
	return apps, total, nil
}

// UpdateApplicationStatus sets the status unconditionally and returns the
// previous one
func (s *Storage) UpdateApplicationStatus(ctx context.Context, id int64, status domain.ApplicationStatus, at time.Time) (domain.ApplicationStatus, error) {
	query := `
		UPDATE applications a
		SET status = $1, last_status_update_at = $2, updated_at = $2
		FROM applications prev
		WHERE a.id = $3 AND prev.id = a.id
		RETURNING prev.status
	`

	var previous string
	if err := s.db.GetContext(ctx, &previous, query, status, at, id); err != nil {
		if isUniqueViolation(err) {
			return "", domain.NewConflict("another active application exists for this user and job").
				With("applicationId", id)
		}
		return "", translate("failed to update application status", err)
	}
	return domain.ApplicationStatus(previous), nil
}

// WithdrawApplication moves an editable application to WITHDRAWN. It reports
// false when the row no longer has an editable status.
func (s *Storage) WithdrawApplication(ctx context.Context, id, userID int64, at time.Time) (bool, error) {
	query := `
		UPDATE applications
		SET status = $1, last_status_update_at = $2, updated_at = $2
		WHERE id = $3 AND user_id = $4 AND status = ANY($5)
	`

	res, err := s.db.ExecContext(ctx, query,
		domain.ApplicationWithdrawn,
		at,
		id,
		userID,
		pq.StringArray(domain.StatusStrings(domain.EditableStatuses())),
	)
	if err != nil {
		return false, translate("failed to withdraw application", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, translate("failed to read withdraw result", err)
	}
	return n == 1, nil
}

// UpdateCoverLetter replaces the cover letter while the application is still
// editable. It reports false when the status changed underneath.
func (s *Storage) UpdateCoverLetter(ctx context.Context, id, userID int64, coverLetter string, at time.Time) (bool, error) {
	query := `
		UPDATE applications
		SET cover_letter = $1, updated_at = $2
		WHERE id = $3 AND user_id = $4 AND status = ANY($5)
	`

	res, err := s.db.ExecContext(ctx, query,
		coverLetter,
		at,
		id,
		userID,
		pq.StringArray(domain.StatusStrings(domain.EditableStatuses())),
	)
	if err != nil {
		return false, translate("failed to update cover letter", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, translate("failed to read update result", err)
	}
	return n == 1, nil
}

func (s *Storage) ListStatusHistory(ctx context.Context, applicationID int64) ([]model.ApplicationStatusHistory, error) {
	query := `
		SELECT id, event_id, application_id, user_id, job_id, event_type,
			previous_status, new_status, actor_id, occurred_at, created_at
		FROM application_status_histories
		WHERE application_id = $1
		ORDER BY occurred_at ASC, id ASC
	`

	var history []model.ApplicationStatusHistory
	if err := s.db.SelectContext(ctx, &history, query, applicationID); err != nil {
		return nil, translate("failed to list status history", err)
	}
	return history, nil
}
