package auth

import (
	"context"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/task-service/internal/domain"
	apperrors "github.com/spec-kit/task-service/pkg/util/errorutil"
)

// TaskExecutorChecker answers whether email is the executor of a task.
type TaskExecutorChecker interface {
	IsTaskExecutor(ctx context.Context, taskID, email string) (bool, error)
}

// RequireAuthenticated ensures a principal is present.
func RequireAuthenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := PrincipalFromContext(c); !ok {
			return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
		}
		return c.Next()
	}
}

// RequireRole ensures the principal has one of the allowed roles.
func RequireRole(allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if _, exists := allowedSet[principal.Role]; !exists {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}

// RequireTaskExecutor lets admins through and otherwise asks checker whether
// the caller executes the task named by the route parameter.
func RequireTaskExecutor(checker TaskExecutorChecker, param string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
		}
		if principal.Role == domain.RoleAdmin {
			return c.Next()
		}

		isExecutor, err := checker.IsTaskExecutor(c.UserContext(), c.Params(param), principal.Email)
		if err != nil {
			return err
		}
		if !isExecutor {
			return apperrors.NewForbidden("Only executor and admin have access")
		}
		return c.Next()
	}
}
