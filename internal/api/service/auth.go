package service

import (
	"context"
	"errors"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/highcastle01/WSD-Assignment-03/internal/api/auth"
	"github.com/highcastle01/WSD-Assignment-03/internal/api/domain"
	"github.com/highcastle01/WSD-Assignment-03/internal/api/model"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	store      UserStore
	tokens     TokenIssuer
	bcryptCost int
	logger     *slog.Logger
	now        func() time.Time
}

func NewAuthService(store UserStore, tokens TokenIssuer, bcryptCost int, logger *slog.Logger) *AuthService {
	if bcryptCost < bcrypt.MinCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{
		store:      store,
		tokens:     tokens,
		bcryptCost: bcryptCost,
		logger:     logger,
		now:        time.Now,
	}
}

type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Phone    *string
}

type ProfileInput struct {
	Name     *string
	Phone    *string
	Career   *int
	SkillSet []string
}

// LoginResult is the signed-in user and their tokens
type LoginResult struct {
	User   *model.User
	Tokens *auth.TokenPair
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return nil, domain.NewValidation("invalid email format").With("email", in.Email)
	}
	if in.Password == "" {
		return nil, domain.NewValidation("password is required")
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.NewValidation("name is required")
	}

	_, err := s.store.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, domain.NewDuplicate("email is already registered").With("email", email)
	case !domain.IsNotFound(err):
		return nil, unexpected("failed to look up user", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return nil, domain.NewValidation("password cannot be hashed").With("reason", err.Error())
	}

	now := s.now()
	user := model.User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         strings.TrimSpace(in.Name),
		Phone:        in.Phone,
		SkillSet:     []string{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.CreateUser(ctx, &user); err != nil {
		// the unique email index covers a concurrent registration
		return nil, unexpected("failed to create user", err)
	}

	s.logger.Info("User registered", slog.Int64("user_id", user.ID))
	return &user, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	invalid := domain.NewUnauthorized("email or password does not match")

	user, err := s.store.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, invalid
		}
		return nil, unexpected("failed to look up user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, invalid
	}

	tokens, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, unexpected("failed to issue tokens", err)
	}

	now := s.now()
	if err := s.store.TouchLastLogin(ctx, user.ID, now); err != nil {
		s.logger.Warn("Failed to record last login",
			slog.Int64("user_id", user.ID),
			slog.String("error", err.Error()),
		)
	} else {
		user.LastLoginAt = &now
	}

	return &LoginResult{User: user, Tokens: tokens}, nil
}

// Refresh exchanges a refresh token for a new token pair
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*auth.TokenPair, error) {
	if refreshToken == "" {
		return nil, domain.NewValidation("refresh token is required")
	}

	userID, err := s.tokens.ParseRefresh(refreshToken)
	if err != nil {
		if errors.Is(err, auth.ErrExpiredToken) {
			return nil, domain.NewUnauthorized("token expired")
		}
		return nil, domain.NewUnauthorized("invalid token")
	}

	if _, err := s.store.GetUserByID(ctx, userID); err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.NewUnauthorized("invalid token")
		}
		return nil, unexpected("failed to look up user", err)
	}

	tokens, err := s.tokens.Issue(userID)
	if err != nil {
		return nil, unexpected("failed to issue tokens", err)
	}
	return tokens, nil
}

// UpdateProfile changes the fields that are set in in
func (s *AuthService) UpdateProfile(ctx context.Context, userID int64, in ProfileInput) (*model.User, error) {
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, notFoundOr(err, "user not found", "failed to load user")
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.NewValidation("name must not be empty")
		}
		user.Name = name
	}
	if in.Phone != nil {
		user.Phone = in.Phone
	}
	if in.Career != nil {
		if *in.Career < 0 {
			return nil, domain.NewValidation("career must not be negative").With("career", *in.Career)
		}
		user.Career = *in.Career
	}
	if in.SkillSet != nil {
		user.SkillSet = in.SkillSet
	}
	user.UpdatedAt = s.now()

	if err := s.store.UpdateUserProfile(ctx, user); err != nil {
		return nil, unexpected("failed to update profile", err)
	}
	return user, nil
}
