// Package service implements the application services between the HTTP
// handlers and the persistence collaborators.
package service

import (
	"context"

	"github.com/taskforge/taskforge/internal/application/dto"
	"github.com/taskforge/taskforge/internal/domain/repository"
	"github.com/taskforge/taskforge/pkg/constants"
	"github.com/taskforge/taskforge/pkg/errors"
	"github.com/taskforge/taskforge/pkg/logger"
)

// ProjectService encapsulates project business logic.
type ProjectService interface {
	// CreateProject persists a new project owned by ownerUsername.
	CreateProject(ctx context.Context, req *dto.ProjectCreateDTO, ownerUsername string) (*dto.ProjectDTO, error)

	// GetProject returns a project by id.
	GetProject(ctx context.Context, id uint) (*dto.ProjectDTO, error)

	// ListByOwner returns every project owned by ownerUsername.
	ListByOwner(ctx context.Context, ownerUsername string) ([]*dto.ProjectDTO, error)
}

type projectService struct {
	repo repository.ProjectRepository
	log  logger.Logger
}

// NewProjectService creates the project application service.
func NewProjectService(repo repository.ProjectRepository, log logger.Logger) ProjectService {
	return &projectService{
		repo: repo,
		log:  log.WithComponent("project_service"),
	}
}

func (s *projectService) CreateProject(ctx context.Context, req *dto.ProjectCreateDTO, ownerUsername string) (*dto.ProjectDTO, error) {
	if req.Status != "" && !constants.ProjectStatus(req.Status).IsValid() {
		return nil, errors.ErrValidationFailure("datos de entrada inválidos", map[string]string{
			"status": "estado de proyecto desconocido: " + req.Status,
		})
	}

	project := dto.ToProjectEntity(req)
	project.OwnerUsername = ownerUsername

	if err := s.repo.Save(ctx, project); err != nil {
		return nil, err
	}

	return dto.FromProjectEntity(project), nil
}

func (s *projectService) GetProject(ctx context.Context, id uint) (*dto.ProjectDTO, error) {
	project, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.FromProjectEntity(project), nil
}

func (s *projectService) ListByOwner(ctx context.Context, ownerUsername string) ([]*dto.ProjectDTO, error) {
	projects, err := s.repo.FindByOwner(ctx, ownerUsername)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.ProjectDTO, 0, len(projects))
	for _, p := range projects {
		result = append(result, dto.FromProjectEntity(p))
	}
	return result, nil
}
