package service

import (
	"context"

	"github.com/taskforge/taskforge/internal/application/dto"
	"github.com/taskforge/taskforge/internal/domain/repository"
	"github.com/taskforge/taskforge/pkg/constants"
	"github.com/taskforge/taskforge/pkg/errors"
	"github.com/taskforge/taskforge/pkg/logger"
)

// TaskService encapsulates task business logic.
type TaskService interface {
	// CreateTask persists a new task inside an existing project. The creator
	// is recorded as the assignee when the payload names nobody.
	CreateTask(ctx context.Context, req *dto.TaskCreateDTO, creator string) (*dto.TaskDTO, error)

	// GetTask returns a task by id.
	GetTask(ctx context.Context, id uint) (*dto.TaskDTO, error)

	// ListByProject returns every task of the given project.
	ListByProject(ctx context.Context, projectID uint) ([]*dto.TaskDTO, error)

	// ListByAssignee returns every task assigned to the given username.
	ListByAssignee(ctx context.Context, username string) ([]*dto.TaskDTO, error)
}

type taskService struct {
	tasks    repository.TaskRepository
	projects repository.ProjectRepository
	log      logger.Logger
}

// NewTaskService creates the task application service.
func NewTaskService(tasks repository.TaskRepository, projects repository.ProjectRepository, log logger.Logger) TaskService {
	return &taskService{
		tasks:    tasks,
		projects: projects,
		log:      log.WithComponent("task_service"),
	}
}

func (s *taskService) CreateTask(ctx context.Context, req *dto.TaskCreateDTO, creator string) (*dto.TaskDTO, error) {
	details := make(map[string]string)
	if !constants.TaskStatus(req.Status).IsValid() {
		details["status"] = "estado de tarea desconocido: " + req.Status
	}
	if !constants.TaskPriority(req.Priority).IsValid() {
		details["priority"] = "prioridad desconocida: " + req.Priority
	}
	if len(details) > 0 {
		return nil, errors.ErrValidationFailure("datos de entrada inválidos", details)
	}

	// The task must hang off an existing project.
	if _, err := s.projects.FindByID(ctx, req.ProjectID); err != nil {
		return nil, err
	}

	task := dto.ToTaskEntity(req)
	if task.AssignedTo == "" {
		task.AssignedTo = creator
	}

	if err := s.tasks.Save(ctx, task); err != nil {
		return nil, err
	}

	return dto.FromTaskEntity(task), nil
}

func (s *taskService) GetTask(ctx context.Context, id uint) (*dto.TaskDTO, error) {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.FromTaskEntity(task), nil
}

func (s *taskService) ListByProject(ctx context.Context, projectID uint) ([]*dto.TaskDTO, error) {
	tasks, err := s.tasks.FindByProjectID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.TaskDTO, 0, len(tasks))
	for _, t := range tasks {
		result = append(result, dto.FromTaskEntity(t))
	}
	return result, nil
}

func (s *taskService) ListByAssignee(ctx context.Context, username string) ([]*dto.TaskDTO, error) {
	tasks, err := s.tasks.FindByAssignee(ctx, username)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.TaskDTO, 0, len(tasks))
	for _, t := range tasks {
		result = append(result, dto.FromTaskEntity(t))
	}
	return result, nil
}
