package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/task-service/internal/auth"
)

// TaskAccessHandler reports the caller's access to a task. Route guards do
// the actual check; reaching the handler means access is granted.
type TaskAccessHandler struct{}

// NewTaskAccessHandler constructs handler.
func NewTaskAccessHandler() *TaskAccessHandler {
	return &TaskAccessHandler{}
}

// Access handles GET /tasks/:taskID/access.
func (h *TaskAccessHandler) Access(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.ErrUnauthorized
	}
	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"task_id": c.Params("taskID"),
			"email":   principal.Email,
			"access":  true,
		},
	})
}
