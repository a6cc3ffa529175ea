package storage

import (
	"context"
	"time"

	"github.com/highcastle01/WSD-Assignment-03/internal/api/model"
)

const userColumns = `id, email, password_hash, name, phone, career, skill_set, last_login_at, created_at, updated_at`

func (s *Storage) CreateUser(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (email, password_hash, name, phone, career, skill_set, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	err := s.db.QueryRowxContext(ctx, query,
		user.Email,
		user.PasswordHash,
		user.Name,
		user.Phone,
		user.Career,
		user.SkillSet,
		user.CreatedAt,
		user.UpdatedAt,
	).Scan(&user.ID)

	return translate("failed to create user", err)
}

func (s *Storage) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	var user model.User
	err := s.db.GetContext(ctx, &user, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	if err != nil {
		return nil, translate("failed to get user", err)
	}
	return &user, nil
}

func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := s.db.GetContext(ctx, &user, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	if err != nil {
		return nil, translate("failed to get user by email", err)
	}
	return &user, nil
}

func (s *Storage) UserExists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := s.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, id)
	if err != nil {
		return false, translate("failed to check user", err)
	}
	return exists, nil
}

func (s *Storage) UpdateUserProfile(ctx context.Context, user *model.User) error {
	query := `
		UPDATE users
		SET name = $1, phone = $2, career = $3, skill_set = $4, updated_at = $5
		WHERE id = $6
	`

	_, err := s.db.ExecContext(ctx, query,
		user.Name,
		user.Phone,
		user.Career,
		user.SkillSet,
		user.UpdatedAt,
		user.ID,
	)

	return translate("failed to update user", err)
}

func (s *Storage) TouchLastLogin(ctx context.Context, id int64, at time.Time) error {
	_, err := s.db.ExecContext(ctx, `UPDATE users SET last_login_at = $1 WHERE id = $2`, at, id)
	return translate("failed to update last login", err)
}
