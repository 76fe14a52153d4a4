package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/taskforge/taskforge/internal/domain/models"
	"github.com/taskforge/taskforge/internal/domain/repository"
	apperrors "github.com/taskforge/taskforge/pkg/errors"
	"github.com/taskforge/taskforge/pkg/logger"
)

// ProjectRepoImpl implements repository.ProjectRepository using GORM.
type ProjectRepoImpl struct {
	db  *gorm.DB
	log logger.Logger
}

// NewProjectRepository creates the GORM-backed project repository.
func NewProjectRepository(db *gorm.DB, log logger.Logger) repository.ProjectRepository {
	return &ProjectRepoImpl{
		db:  db,
		log: log.WithComponent("project_repo"),
	}
}

// Save persists a new project, stamping its creation time.
func (r *ProjectRepoImpl) Save(ctx context.Context, project *models.Project) error {
	project.CreatedAt = time.Now()

	if err := r.db.WithContext(ctx).Create(project).Error; err != nil {
		r.log.Error(ctx, "Failed to create project", err,
			logger.String("name", project.Name),
			logger.String("owner", project.OwnerUsername),
		)
		return apperrors.ErrInternal("no se pudo guardar el proyecto").WithCause(err)
	}

	r.log.Info(ctx, "Project created",
		logger.Uint("project_id", project.ID),
		logger.String("owner", project.OwnerUsername),
	)
	return nil
}

// FindByID retrieves a project by its identifier.
func (r *ProjectRepoImpl) FindByID(ctx context.Context, id uint) (*models.Project, error) {
	var project models.Project

	err := r.db.WithContext(ctx).First(&project, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.log.Debug(ctx, "Project not found", logger.Uint("project_id", id))
			return nil, apperrors.ErrNotFound("proyecto")
		}
		r.log.Error(ctx, "Failed to retrieve project", err, logger.Uint("project_id", id))
		return nil, apperrors.ErrInternal("no se pudo recuperar el proyecto").WithCause(err)
	}

	return &project, nil
}

// FindByOwner retrieves every project created by the given username.
func (r *ProjectRepoImpl) FindByOwner(ctx context.Context, ownerUsername string) ([]*models.Project, error) {
	var projects []*models.Project

	err := r.db.WithContext(ctx).
		Where("owner_username = ?", ownerUsername).
		Order("created_at DESC").
		Find(&projects).Error
	if err != nil {
		r.log.Error(ctx, "Failed to list projects by owner", err,
			logger.String("owner", ownerUsername),
		)
		return nil, apperrors.ErrInternal("no se pudieron recuperar los proyectos").WithCause(err)
	}

	return projects, nil
}
