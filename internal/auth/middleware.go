package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/task-service/internal/domain"
	apperrors "github.com/spec-kit/task-service/pkg/util/errorutil"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller.
type Principal struct {
	Email    string
	UserID   string
	FullName string
	Role     domain.Role
	TokenID  string
}

// FailureRecorder receives rejected authentication attempts.
type FailureRecorder interface {
	RecordAuthFailure(class, kind string)
}

// AuthMiddleware validates bearer access tokens.
type AuthMiddleware struct {
	tokens  *TokenValidator
	metrics FailureRecorder
}

// NewAuthMiddleware constructs middleware. metrics may be nil.
func NewAuthMiddleware(tokens *TokenValidator, metrics FailureRecorder) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, metrics: metrics}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.ParseAccessClaims(parts[1])
	if err != nil {
		tokenErr := m.tokens.translator.Translate(KeyClassAccess, err)
		if m.metrics != nil {
			m.metrics.RecordAuthFailure(KeyClassAccess.String(), string(tokenErr.Kind))
		}
		return tokenErr.DomainError()
	}

	c.Locals(principalKey, &Principal{
		Email:    claims.Subject,
		UserID:   claims.UserID,
		FullName: claims.FullName,
		Role:     claims.Role,
		TokenID:  claims.ID,
	})
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated caller.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
