// Package dto defines the request/response payloads of the HTTP surface and
// their mapping to domain entities. Create DTOs omit system-generated fields.
package dto

import (
	"time"

	"github.com/taskforge/taskforge/internal/domain/models"
	"github.com/taskforge/taskforge/pkg/constants"
)

// ProjectCreateDTO is the minimal payload a user sends to create a project.
type ProjectCreateDTO struct {
	Name                 string     `json:"name" form:"name" binding:"required,max=100"`
	Description          string     `json:"description" form:"description" binding:"max=2000"`
	StartDate            *time.Time `json:"startDate" form:"startDate" time_format:"2006-01-02" binding:"required"`
	EstimatedEndDate     *time.Time `json:"estimatedEndDate" form:"estimatedEndDate" time_format:"2006-01-02" binding:"required"`
	EstimatedEffortHours int        `json:"estimatedEffortHours" form:"estimatedEffortHours" binding:"required,min=1"`
	ParticipantsCount    int        `json:"participantsCount" form:"participantsCount" binding:"required,min=1"`
	Status               string     `json:"status" form:"status"`
	Tags                 []string   `json:"tags" form:"tags" binding:"dive,max=20"`
}

// ProjectDTO is the full project representation returned by the API.
type ProjectDTO struct {
	ID                   uint       `json:"id"`
	Name                 string     `json:"name"`
	Description          string     `json:"description"`
	CreatedAt            time.Time  `json:"createdAt"`
	StartDate            *time.Time `json:"startDate"`
	EstimatedEndDate     *time.Time `json:"estimatedEndDate"`
	RealEndDate          *time.Time `json:"realEndDate"`
	EstimatedEffortHours int        `json:"estimatedEffortHours"`
	ActualEffortHours    int        `json:"actualEffortHours"`
	ParticipantsCount    int        `json:"participantsCount"`
	Status               string     `json:"status"`
	OwnerUsername        string     `json:"ownerUsername"`
	Tags                 []string   `json:"tags"`
}

// ToProjectEntity maps the create DTO to a persistent entity. Status defaults
// to PLANNED when the client omits it.
func ToProjectEntity(d *ProjectCreateDTO) *models.Project {
	status := constants.ProjectStatus(d.Status)
	if d.Status == "" {
		status = constants.ProjectStatusPlanned
	}

	return &models.Project{
		Name:                 d.Name,
		Description:          d.Description,
		StartDate:            d.StartDate,
		EstimatedEndDate:     d.EstimatedEndDate,
		EstimatedEffortHours: d.EstimatedEffortHours,
		ParticipantsCount:    d.ParticipantsCount,
		Status:               status,
		Tags:                 d.Tags,
	}
}

// FromProjectEntity maps a persistent entity to its API representation.
func FromProjectEntity(p *models.Project) *ProjectDTO {
	return &ProjectDTO{
		ID:                   p.ID,
		Name:                 p.Name,
		Description:          p.Description,
		CreatedAt:            p.CreatedAt,
		StartDate:            p.StartDate,
		EstimatedEndDate:     p.EstimatedEndDate,
		RealEndDate:          p.RealEndDate,
		EstimatedEffortHours: p.EstimatedEffortHours,
		ActualEffortHours:    p.ActualEffortHours,
		ParticipantsCount:    p.ParticipantsCount,
		Status:               string(p.Status),
		OwnerUsername:        p.OwnerUsername,
		Tags:                 p.Tags,
	}
}
