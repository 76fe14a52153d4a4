package dto

import (
	"time"

	"github.com/taskforge/taskforge/internal/domain/models"
	"github.com/taskforge/taskforge/pkg/constants"
)

// TaskCreateDTO is the payload required to create a task.
type TaskCreateDTO struct {
	Title       string     `json:"title" binding:"required,max=100"`
	Description string     `json:"description" binding:"max=2000"`
	ProjectID   uint       `json:"projectId" binding:"required"`
	AssignedTo  string     `json:"assignedTo"`
	Status      string     `json:"status" binding:"required"`
	Priority    string     `json:"priority" binding:"required"`
	DueDate     *time.Time `json:"dueDate" time_format:"2006-01-02"`
	Position    int        `json:"position"`
	Tags        []string   `json:"tags" binding:"dive,max=20"`
}

// TaskDTO is the full task representation returned by the API.
type TaskDTO struct {
	ID          uint       `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	ProjectID   uint       `json:"projectId"`
	AssignedTo  string     `json:"assignedTo"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"dueDate"`
	CreatedAt   time.Time  `json:"createdAt"`
	Position    int        `json:"position"`
	Tags        []string   `json:"tags"`
}

// ToTaskEntity maps the create DTO to a persistent entity.
func ToTaskEntity(d *TaskCreateDTO) *models.Task {
	return &models.Task{
		Title:       d.Title,
		Description: d.Description,
		ProjectID:   d.ProjectID,
		AssignedTo:  d.AssignedTo,
		Status:      constants.TaskStatus(d.Status),
		Priority:    constants.TaskPriority(d.Priority),
		DueDate:     d.DueDate,
		Position:    d.Position,
		Tags:        d.Tags,
	}
}

// FromTaskEntity maps a persistent entity to its API representation.
func FromTaskEntity(t *models.Task) *TaskDTO {
	return &TaskDTO{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		ProjectID:   t.ProjectID,
		AssignedTo:  t.AssignedTo,
		Status:      string(t.Status),
		Priority:    string(t.Priority),
		DueDate:     t.DueDate,
		CreatedAt:   t.CreatedAt,
		Position:    t.Position,
		Tags:        t.Tags,
	}
}
