package dto

import "github.com/highcastle01/WSD-Assignment-03/internal/api/model"

type RegisterRequest struct {
	Email    string  `json:"email" binding:"required"`
	Password string  `json:"password" binding:"required"`
	Name     string  `json:"name" binding:"required"`
	Phone    *string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

type ProfileRequest struct {
	Name     *string  `json:"name"`
	Phone    *string  `json:"phone"`
	Career   *int     `json:"career" binding:"omitempty,min=0"`
	SkillSet []string `json:"skillSet"`
}

type TokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int64  `json:"expiresIn"`
}

type LoginResponse struct {
	Message string `json:"message"`
	TokenResponse
	User *model.User `json:"user"`
}
