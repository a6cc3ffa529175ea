package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/highcastle01/WSD-Assignment-03/internal/api/auth"
	"github.com/highcastle01/WSD-Assignment-03/internal/api/dto"
	"github.com/highcastle01/WSD-Assignment-03/internal/api/service"
)

// AuthHandler handles sign-up, sign-in and profile requests
type AuthHandler struct {
	logger *slog.Logger
	svc    AuthService
	resp   responder
}

func NewAuthHandler(deps *Dependencies) *AuthHandler {
	return &AuthHandler{logger: deps.Logger, svc: deps.Auth, resp: deps.responder()}
}

func tokenResponse(pair *auth.TokenPair) dto.TokenResponse {
	return dto.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    int64(pair.ExpiresIn.Seconds()),
	}
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !h.resp.bindJSON(c, &req) {
		return
	}

	user, err := h.svc.Register(c.Request.Context(), service.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Phone:    req.Phone,
	})
	if err != nil {
		h.resp.error(c, err)
		return
	}

	h.logger.Info("User registered", slog.Int64("user_id", user.ID))
	c.JSON(http.StatusCreated, dto.DataResponse{Message: "registration completed", Data: user})
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.resp.bindJSON(c, &req) {
		return
	}

	res, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.resp.error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		Message:       "login successful",
		TokenResponse: tokenResponse(res.Tokens),
		User:          res.User,
	})
}

// Refresh handles POST /auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if !h.resp.bindJSON(c, &req) {
		return
	}

	pair, err := h.svc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		h.resp.error(c, err)
		return
	}
	c.JSON(http.StatusOK, tokenResponse(pair))
}

// UpdateProfile handles PUT /auth/profile
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req dto.ProfileRequest
	if !h.resp.bindJSON(c, &req) {
		return
	}

	user, err := h.svc.UpdateProfile(c.Request.Context(), userID(c), service.ProfileInput{
		Name:     req.Name,
		Phone:    req.Phone,
		Career:   req.Career,
		SkillSet: req.SkillSet,
	})
	if err != nil {
		h.resp.error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.DataResponse{Message: "profile updated", Data: user})
}
