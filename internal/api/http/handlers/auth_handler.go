package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/task-service/internal/api/dto"
	"github.com/spec-kit/task-service/internal/auth"
	"github.com/spec-kit/task-service/internal/service"
	apperrors "github.com/spec-kit/task-service/pkg/util/errorutil"
)

// AuthHandler exposes login, refresh, logout and identity endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Email == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "email and password required")
	}

	user, pair, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return apperrors.NewUnauthorized(err.Error())
		}
		return err
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"user": fiber.Map{
				"id":        user.ID,
				"full_name": user.FullName,
				"email":     user.Email,
				"role":      user.Role,
			},
			"auth": dto.TokenPairResponse{
				Access:  dto.AuthResponse{Token: pair.AccessToken, ExpiresAt: pair.AccessExpiresAt},
				Refresh: dto.AuthResponse{Token: pair.RefreshToken, ExpiresAt: pair.RefreshExpiresAt},
			},
		},
	})
}

// Refresh handles POST /auth/refresh.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	req, err := parseRefreshRequest(c)
	if err != nil {
		return err
	}

	token, exp, err := h.auth.Refresh(c.UserContext(), req.RefreshToken)
	if err != nil {
		return tokenFailure(err)
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// Logout handles POST /auth/logout.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	req, err := parseRefreshRequest(c)
	if err != nil {
		return err
	}
	if err := h.auth.Logout(c.UserContext(), req.RefreshToken); err != nil {
		return tokenFailure(err)
	}
	return c.SendStatus(http.StatusNoContent)
}

// Me handles GET /auth/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("not authenticated")
	}
	return c.JSON(fiber.Map{
		"data": dto.PrincipalResponse{
			Email:    principal.Email,
			UserID:   principal.UserID,
			FullName: principal.FullName,
			Role:     string(principal.Role),
		},
	})
}

func parseRefreshRequest(c *fiber.Ctx) (*dto.RefreshRequest, error) {
	var req dto.RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.RefreshToken == "" {
		return nil, fiber.NewError(http.StatusBadRequest, "refresh_token required")
	}
	return &req, nil
}

func tokenFailure(err error) error {
	var tokenErr *auth.TokenError
	if errors.As(err, &tokenErr) {
		return tokenErr.DomainError()
	}
	return err
}
