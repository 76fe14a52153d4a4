// Package repository declares the persistence contracts consumed by the
// application services. Implementations live under
// internal/infrastructure/persistence.
package repository

import (
	"context"

	"github.com/taskforge/taskforge/internal/domain/models"
)

// ProjectRepository is the persistence collaborator for projects.
type ProjectRepository interface {
	// Save persists a new project and fills in generated fields.
	Save(ctx context.Context, project *models.Project) error

	// FindByID returns the project with the given id or a not-found error.
	FindByID(ctx context.Context, id uint) (*models.Project, error)

	// FindByOwner returns every project created by the given username.
	FindByOwner(ctx context.Context, ownerUsername string) ([]*models.Project, error)
}
