// Package models defines the persistent domain entities of the TaskForge
// backend and the request-scoped Principal.
package models

import (
	"time"

	"github.com/taskforge/taskforge/pkg/constants"
)

// Project is the main organizational unit; tasks hang off a project.
// Ownership is tracked by username as extracted from the verified token.
type Project struct {
	ID                   uint                    `gorm:"primaryKey" json:"id"`
	Name                 string                  `gorm:"not null;size:100" json:"name"`
	Description          string                  `gorm:"size:2000" json:"description"`
	CreatedAt            time.Time               `json:"createdAt"`
	StartDate            *time.Time              `json:"startDate"`
	EstimatedEndDate     *time.Time              `json:"estimatedEndDate"`
	RealEndDate          *time.Time              `json:"realEndDate"`
	EstimatedEffortHours int                     `json:"estimatedEffortHours"`
	ActualEffortHours    int                     `json:"actualEffortHours"`
	ParticipantsCount    int                     `json:"participantsCount"`
	Status               constants.ProjectStatus `gorm:"not null;size:20" json:"status"`
	OwnerUsername        string                  `gorm:"index;size:100" json:"ownerUsername"`
	Tags                 []string                `gorm:"serializer:json" json:"tags"`
}

// TableName maps the entity to the projects table.
func (Project) TableName() string {
	return "projects"
}
