package models

import (
	"time"

	"github.com/taskforge/taskforge/pkg/constants"
)

// Task is a unit of work inside a project, with a fixed enumerated status
// and priority. There is no workflow beyond the enumeration itself.
type Task struct {
	ID          uint                   `gorm:"primaryKey" json:"id"`
	Title       string                 `gorm:"not null;size:100" json:"title"`
	Description string                 `gorm:"size:2000" json:"description"`
	ProjectID   uint                   `gorm:"index" json:"projectId"`
	AssignedTo  string                 `gorm:"index;size:100" json:"assignedTo"`
	Status      constants.TaskStatus   `gorm:"not null;size:20" json:"status"`
	Priority    constants.TaskPriority `gorm:"not null;size:20" json:"priority"`
	DueDate     *time.Time             `json:"dueDate"`
	CreatedAt   time.Time              `json:"createdAt"`
	Position    int                    `json:"position"`
	Tags        []string               `gorm:"serializer:json" json:"tags"`
}

// TableName maps the entity to the tasks table.
func (Task) TableName() string {
	return "tasks"
}
