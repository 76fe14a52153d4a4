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

// TaskRepoImpl implements repository.TaskRepository using GORM.
type TaskRepoImpl struct {
	db  *gorm.DB
	log logger.Logger
}

// NewTaskRepository creates the GORM-backed task repository.
func NewTaskRepository(db *gorm.DB, log logger.Logger) repository.TaskRepository {
	return &TaskRepoImpl{
		db:  db,
		log: log.WithComponent("task_repo"),
	}
}

// Save persists a new task, stamping its creation time.
func (r *TaskRepoImpl) Save(ctx context.Context, task *models.Task) error {
	task.CreatedAt = time.Now()

	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		r.log.Error(ctx, "Failed to create task", err,
			logger.String("title", task.Title),
			logger.Uint("project_id", task.ProjectID),
		)
		return apperrors.ErrInternal("no se pudo guardar la tarea").WithCause(err)
	}

	r.log.Info(ctx, "Task created",
		logger.Uint("task_id", task.ID),
		logger.Uint("project_id", task.ProjectID),
	)
	return nil
}

// FindByID retrieves a task by its identifier.
func (r *TaskRepoImpl) FindByID(ctx context.Context, id uint) (*models.Task, error) {
	var task models.Task

	err := r.db.WithContext(ctx).First(&task, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.log.Debug(ctx, "Task not found", logger.Uint("task_id", id))
			return nil, apperrors.ErrNotFound("tarea")
		}
		r.log.Error(ctx, "Failed to retrieve task", err, logger.Uint("task_id", id))
		return nil, apperrors.ErrInternal("no se pudo recuperar la tarea").WithCause(err)
	}

	return &task, nil
}

// FindByProjectID retrieves every task belonging to the given project.
func (r *TaskRepoImpl) FindByProjectID(ctx context.Context, projectID uint) ([]*models.Task, error) {
	var tasks []*models.Task

	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("position ASC, created_at ASC").
		Find(&tasks).Error
	if err != nil {
		r.log.Error(ctx, "Failed to list tasks by project", err,
			logger.Uint("project_id", projectID),
		)
		return nil, apperrors.ErrInternal("no se pudieron recuperar las tareas").WithCause(err)
	}

	return tasks, nil
}

// FindByAssignee retrieves every task assigned to the given username.
func (r *TaskRepoImpl) FindByAssignee(ctx context.Context, username string) ([]*models.Task, error) {
	var tasks []*models.Task

	err := r.db.WithContext(ctx).
		Where("assigned_to = ?", username).
		Order("created_at ASC").
		Find(&tasks).Error
	if err != nil {
		r.log.Error(ctx, "Failed to list tasks by assignee", err,
			logger.String("assignee", username),
		)
		return nil, apperrors.ErrInternal("no se pudieron recuperar las tareas").WithCause(err)
	}

	return tasks, nil
}
