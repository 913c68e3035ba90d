package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/spec-kit/task-service/internal/repository"
)

// TaskPermissionChecker decides whether a caller executes a given task.
type TaskPermissionChecker struct {
	tasks repository.TaskRepository
}

// NewTaskPermissionChecker builds the checker.
func NewTaskPermissionChecker(tasks repository.TaskRepository) *TaskPermissionChecker {
	return &TaskPermissionChecker{tasks: tasks}
}

// IsTaskExecutor reports whether email is the executor of taskID.
// A task id that is not a UUID cannot match any task.
func (c *TaskPermissionChecker) IsTaskExecutor(ctx context.Context, taskID, email string) (bool, error) {
	id, err := uuid.Parse(taskID)
	if err != nil {
		return false, nil
	}
	return c.tasks.ExistsByIDAndExecutorEmail(ctx, id, email)
}
