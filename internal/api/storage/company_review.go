package storage

import (
	"context"

	"github.com/highcastle01/WSD-Assignment-03/internal/api/model"
	"github.com/jmoiron/sqlx"
)

const companyReviewColumns = `id, user_id, company_id, rating, title, content, pros, cons, position,
	work_period, is_current_employee, created_at, updated_at`

func (s *Storage) CreateCompanyReview(ctx context.Context, review *model.CompanyReview) error {
	query := `
		INSERT INTO company_reviews (
			user_id, company_id, rating, title, content, pros, cons, position,
			work_period, is_current_employee, created_at, updated_at
		) VALUES (
			:user_id, :company_id, :rating, :title, :content, :pros, :cons, :position,
			:work_period, :is_current_employee, :created_at, :updated_at
		)
		RETURNING id
	`

	rows, err := sqlx.NamedQueryContext(ctx, s.db, query, review)
	if err != nil {
		return translate("failed to create company review", err)
	}
	defer rows.Close()

	if rows.Next() {
		if err := rows.Scan(&review.ID); err != nil {
			return translate("failed to read company review id", err)
		}
	}
	return translate("failed to create company review", rows.Err())
}

func (s *Storage) GetCompanyReview(ctx context.Context, id int64) (*model.CompanyReview, error) {
	var review model.CompanyReview
	err := s.db.GetContext(ctx, &review, `SELECT `+companyReviewColumns+` FROM company_reviews WHERE id = $1`, id)
	if err != nil {
		return nil, translate("failed to get company review", err)
	}
	return &review, nil
}

func (s *Storage) CompanyReviewExists(ctx context.Context, userID, companyID int64) (bool, error) {
	var exists bool
	err := s.db.GetContext(ctx, &exists,
		`SELECT EXISTS(SELECT 1 FROM company_reviews WHERE user_id = $1 AND company_id = $2)`, userID, companyID)
	if err != nil {
		return false, translate("failed to check company review", err)
	}
	return exists, nil
}

// ListCompanyReviews filters by company and/or author when the ids are non-zero
func (s *Storage) ListCompanyReviews(ctx context.Context, companyID, userID int64, page model.Pagination) ([]model.CompanyReview, int, error) {
	where := `($1 = 0 OR company_id = $1) AND ($2 = 0 OR user_id = $2)`

	var total int
	if err := s.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM company_reviews WHERE `+where, companyID, userID); err != nil {
		return nil, 0, translate("failed to count company reviews", err)
	}

	query := `SELECT ` + companyReviewColumns + ` FROM company_reviews WHERE ` + where +
		` ORDER BY created_at DESC, id DESC LIMIT $3 OFFSET $4`

	var reviews []model.CompanyReview
	if err := s.db.SelectContext(ctx, &reviews, query, companyID, userID, page.Limit, page.Offset()); err != nil {
		return nil, 0, translate("failed to list company reviews", err)
	}
	return reviews, total, nil
}

func (s *Storage) CompanyReviewStats(ctx context.Context, companyID int64) (*model.CompanyReviewStats, error) {
	query := `
		SELECT COALESCE(AVG(rating), 0)::float8 AS average_rating, COUNT(*) AS total_reviews
		FROM company_reviews
		WHERE company_id = $1
	`

	var stats model.CompanyReviewStats
	if err := s.db.GetContext(ctx, &stats, query, companyID); err != nil {
		return nil, translate("failed to get company review stats", err)
	}
	return &stats, nil
}

func (s *Storage) UpdateCompanyReview(ctx context.Context, review *model.CompanyReview) error {
	query := `
		UPDATE company_reviews
		SET rating = :rating, title = :title, content = :content, pros = :pros, cons = :cons,
			position = :position, work_period = :work_period,
			is_current_employee = :is_current_employee, updated_at = :updated_at
		WHERE id = :id
	`

	_, err := s.db.NamedExecContext(ctx, query, review)
	return translate("failed to update company review", err)
}

func (s *Storage) DeleteCompanyReview(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM company_reviews WHERE id = $1`, id)
	return translate("failed to delete company review", err)
}
