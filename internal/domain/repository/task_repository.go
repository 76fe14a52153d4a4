package repository

import (
	"context"

	"github.com/taskforge/taskforge/internal/domain/models"
)

// TaskRepository is the persistence collaborator for tasks.
type TaskRepository interface {
	// Save persists a new task and fills in generated fields.
	Save(ctx context.Context, task *models.Task) error

	// FindByID returns the task with the given id or a not-found error.
	FindByID(ctx context.Context, id uint) (*models.Task, error)

	// FindByProjectID returns every task belonging to the given project.
	FindByProjectID(ctx context.Context, projectID uint) ([]*models.Task, error)

	// FindByAssignee returns every task assigned to the given username.
	FindByAssignee(ctx context.Context, username string) ([]*models.Task, error)
}
