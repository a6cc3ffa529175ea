package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/highcastle01/WSD-Assignment-03/internal/api/domain"
	"github.com/highcastle01/WSD-Assignment-03/internal/api/model"
	"github.com/jmoiron/sqlx"
)

const interviewReviewColumns = `id, user_id, company_id, company_name, difficulty, result, position,
	interview_date, process, questions, content, tips, created_at, updated_at`

func (s *Storage) CreateInterviewReview(ctx context.Context, review *model.InterviewReview) error {
	query := `
		INSERT INTO interview_reviews (
			user_id, company_id, company_name, difficulty, result, position, interview_date,
			process, questions, content, tips, created_at, updated_at
		) VALUES (
			:user_id, :company_id, :company_name, :difficulty, :result, :position, :interview_date,
			:process, :questions, :content, :tips, :created_at, :updated_at
		)
		RETURNING id
	`

	rows, err := sqlx.NamedQueryContext(ctx, s.db, query, review)
	if err != nil {
		return translate("failed to create interview review", err)
	}
	defer rows.Close()

	if rows.Next() {
		if err := rows.Scan(&review.ID); err != nil {
			return translate("failed to read interview review id", err)
		}
	}
	return translate("failed to create interview review", rows.Err())
}

func (s *Storage) GetInterviewReview(ctx context.Context, id int64) (*model.InterviewReview, error) {
	var review model.InterviewReview
	err := s.db.GetContext(ctx, &review, `SELECT `+interviewReviewColumns+` FROM interview_reviews WHERE id = $1`, id)
	if err != nil {
		return nil, translate("failed to get interview review", err)
	}
	return &review, nil
}

func interviewReviewWhere(filter model.InterviewReviewFilter) (string, []any) {
	where := []string{"1=1"}
	args := []any{}
	argIdx := 1

	if filter.CompanyID > 0 {
		where = append(where, fmt.Sprintf("company_id = $%d", argIdx))
		args = append(args, filter.CompanyID)
		argIdx++
	}

	if filter.Position != "" {
		where = append(where, fmt.Sprintf("position ILIKE $%d", argIdx))
		args = append(args, "%"+filter.Position+"%")
		argIdx++
	}

	if filter.Difficulty > 0 {
		where = append(where, fmt.Sprintf("difficulty = $%d", argIdx))
		args = append(args, filter.Difficulty)
		argIdx++
	}

	if filter.Result != "" {
		where = append(where, fmt.Sprintf("result = $%d", argIdx))
		args = append(args, filter.Result)
	}

	return strings.Join(where, " AND "), args
}

func (s *Storage) ListInterviewReviews(ctx context.Context, filter model.InterviewReviewFilter) ([]model.InterviewReview, int, error) {
	where, args := interviewReviewWhere(filter)

	var total int
	if err := s.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM interview_reviews WHERE `+where, args...); err != nil {
		return nil, 0, translate("failed to count interview reviews", err)
	}

	query := `SELECT ` + interviewReviewColumns + ` FROM interview_reviews WHERE ` + where +
		fmt.Sprintf(" ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset())

	var reviews []model.InterviewReview
	if err := s.db.SelectContext(ctx, &reviews, query, args...); err != nil {
		return nil, 0, translate("failed to list interview reviews", err)
	}
	return reviews, total, nil
}

// InterviewReviewStats aggregates over the same filter the list uses
func (s *Storage) InterviewReviewStats(ctx context.Context, filter model.InterviewReviewFilter) (*model.InterviewReviewStats, error) {
	where, args := interviewReviewWhere(filter)

	query := fmt.Sprintf(`
		SELECT COALESCE(AVG(difficulty), 0)::float8 AS average_difficulty,
			COUNT(*) AS total_reviews,
			COUNT(*) FILTER (WHERE result = $%d) AS passed_reviews
		FROM interview_reviews
		WHERE %s
	`, len(args)+1, where)
	args = append(args, domain.ReviewResultPassed)

	var stats model.InterviewReviewStats
	if err := s.db.GetContext(ctx, &stats, query, args...); err != nil {
		return nil, translate("failed to get interview review stats", err)
	}
	return &stats, nil
}

func (s *Storage) UpdateInterviewReview(ctx context.Context, review *model.InterviewReview) error {
	query := `
		UPDATE interview_reviews
		SET difficulty = :difficulty, result = :result, position = :position,
			interview_date = :interview_date, process = :process, questions = :questions,
			content = :content, tips = :tips, updated_at = :updated_at
		WHERE id = :id
	`

	_, err := s.db.NamedExecContext(ctx, query, review)
	return translate("failed to update interview review", err)
}

func (s *Storage) DeleteInterviewReview(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM interview_reviews WHERE id = $1`, id)
	return translate("failed to delete interview review", err)
}
