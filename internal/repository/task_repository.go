package repository

import (
	"context"

	"github.com/google/uuid"
)

// TaskRepository answers ownership questions about persisted tasks.
type TaskRepository interface {
	ExistsByIDAndExecutorEmail(ctx context.Context, taskID uuid.UUID, email string) (bool, error)
}

type taskRepository struct {
	db RowQuerier
}

// NewTaskRepository returns a Postgres-backed implementation.
func NewTaskRepository(db RowQuerier) TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) ExistsByIDAndExecutorEmail(ctx context.Context, taskID uuid.UUID, email string) (bool, error) {
	const query = `
        SELECT EXISTS (
            SELECT 1 FROM tasks t
            JOIN users u ON u.id = t.executor_id
            WHERE t.id=$1 AND u.email=$2
        )`

	var exists bool
	if err := r.db.QueryRow(ctx, query, taskID, email).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
