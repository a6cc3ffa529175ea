package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/highcastle01/WSD-Assignment-03/internal/api/domain"
	"github.com/highcastle01/WSD-Assignment-03/internal/api/model"
	"github.com/jmoiron/sqlx"
)

const interviewDetailSelect = `
	SELECT i.id, i.application_id, i.company_id, i.user_id, i.schedule_date, i.type, i.location,
		i.interview_link, i.status, i.notes, i.created_at, i.updated_at,
		j.title AS job_title, c.name AS company_name, u.name AS user_name
	FROM interviews i
	JOIN applications a ON a.id = i.application_id
	JOIN jobs j ON j.id = a.job_id
	JOIN companies c ON c.id = i.company_id
	JOIN users u ON u.id = i.user_id
`

// setApplicationStatus updates the status inside tx and returns the previous one
func setApplicationStatus(ctx context.Context, tx *sqlx.Tx, applicationID int64, status domain.ApplicationStatus, at time.Time) (domain.ApplicationStatus, error) {
	var previous string
	if err := tx.GetContext(ctx, &previous,
		`SELECT status FROM applications WHERE id = $1 FOR UPDATE`, applicationID); err != nil {
		return "", translate("failed to lock application", err)
	}

	_, err := tx.ExecContext(ctx,
		`UPDATE applications SET status = $1, last_status_update_at = $2, updated_at = $2 WHERE id = $3`,
		status, at, applicationID)
	if err != nil {
		return "", translate("failed to update application status", err)
	}
	return domain.ApplicationStatus(previous), nil
}

// ScheduleInterview inserts the interview and moves the application to
// INTERVIEW_SCHEDULED in the same transaction
func (s *Storage) ScheduleInterview(ctx context.Context, interview *model.Interview) (domain.ApplicationStatus, error) {
	var previous domain.ApplicationStatus

	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO interviews (
				application_id, company_id, user_id, schedule_date, type, location,
				interview_link, status, notes, created_at, updated_at
			) VALUES (
				:application_id, :company_id, :user_id, :schedule_date, :type, :location,
				:interview_link, :status, :notes, :created_at, :updated_at
			)
			RETURNING id
		`

		rows, err := sqlx.NamedQueryContext(ctx, tx, query, interview)
		if err != nil {
			return translate("failed to create interview", err)
		}
		if rows.Next() {
			if err := rows.Scan(&interview.ID); err != nil {
				rows.Close()
				return translate("failed to read interview id", err)
			}
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return translate("failed to create interview", err)
		}

		previous, err = setApplicationStatus(ctx, tx, interview.ApplicationID, domain.ApplicationInterviewScheduled, interview.CreatedAt)
		return err
	})

	return previous, err
}

func (s *Storage) GetInterview(ctx context.Context, id int64) (*model.InterviewDetail, error) {
	var interview model.InterviewDetail
	if err := s.db.GetContext(ctx, &interview, interviewDetailSelect+` WHERE i.id = $1`, id); err != nil {
		return nil, translate("failed to get interview", err)
	}
	return &interview, nil
}

func (s *Storage) ListUserInterviews(ctx context.Context, filter model.InterviewFilter) ([]model.InterviewDetail, int, error) {
	filter.CompanyID = 0
	return s.listInterviews(ctx, "i.user_id", filter.UserID, filter)
}

func (s *Storage) ListCompanyInterviews(ctx context.Context, filter model.InterviewFilter) ([]model.InterviewDetail, int, error) {
	return s.listInterviews(ctx, "i.company_id", filter.CompanyID, filter)
}

// listInterviews pages through the interviews whose owner column equals id,
// soonest first
func (s *Storage) listInterviews(ctx context.Context, column string, id int64, filter model.InterviewFilter) ([]model.InterviewDetail, int, error) {
	where := " WHERE " + column + " = $1"
	args := []any{id}

	if filter.Status != "" {
		args = append(args, filter.Status)
		where += fmt.Sprintf(" AND i.status = $%d", len(args))
	}

	if filter.Day != nil {
		start := time.Date(filter.Day.Year(), filter.Day.Month(), filter.Day.Day(), 0, 0, 0, 0, filter.Day.Location())
		args = append(args, start, start.AddDate(0, 0, 1))
		where += fmt.Sprintf(" AND i.schedule_date >= $%d AND i.schedule_date < $%d", len(args)-1, len(args))
	}

	var total int
	if err := s.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM interviews i`+where, args...); err != nil {
		return nil, 0, translate("failed to count interviews", err)
	}

	query := interviewDetailSelect + where +
		fmt.Sprintf(" ORDER BY i.schedule_date ASC, i.id ASC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset())

	var interviews []model.InterviewDetail
	if err := s.db.SelectContext(ctx, &interviews, query, args...); err != nil {
		return nil, 0, translate("failed to list interviews", err)
	}
	return interviews, total, nil
}

// UpdateInterviewStatus sets the interview status. When appStatus is not
// empty the application moves to it in the same transaction and the
// previous application status is returned.
func (s *Storage) UpdateInterviewStatus(ctx context.Context, id int64, status string, notes *string, appStatus domain.ApplicationStatus, at time.Time) (domain.ApplicationStatus, error) {
	var previous domain.ApplicationStatus

	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		var applicationID int64
		err := tx.GetContext(ctx, &applicationID, `
			UPDATE interviews
			SET status = $1, notes = COALESCE($2, notes), updated_at = $3
			WHERE id = $4
			RETURNING application_id
		`, status, notes, at, id)
		if err != nil {
			return translate("failed to update interview status", err)
		}

		if appStatus == "" {
			return nil
		}

		previous, err = setApplicationStatus(ctx, tx, applicationID, appStatus, at)
		return err
	})

	return previous, err
}

func (s *Storage) RescheduleInterview(ctx context.Context, interview *model.Interview) error {
	query := `
		UPDATE interviews
		SET schedule_date = :schedule_date, type = :type, location = :location,
			interview_link = :interview_link, notes = :notes, status = :status, updated_at = :updated_at
		WHERE id = :id
	`

	_, err := s.db.NamedExecContext(ctx, query, interview)
	return translate("failed to reschedule interview", err)
}
