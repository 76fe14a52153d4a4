// Package constants defines system-wide constants for the TaskForge backend.
package constants

import "time"

// ================================================================================
// Authentication Constants
// ================================================================================

const (
	// BearerPrefix is the exact prefix expected in the Authorization header.
	// Matching is case-sensitive and the prefix length (7) is stripped as-is.
	BearerPrefix = "Bearer "

	// BearerPrefixLen is the number of bytes stripped from the header value.
	BearerPrefixLen = len(BearerPrefix)

	// CookieJWTToken holds the signed token issued by auth-service.
	CookieJWTToken = "JWT_TOKEN"

	// CookieUsername holds the display username. It is never treated as an
	// authentication credential; only the token is verified.
	CookieUsername = "USERNAME"

	// SessionCookieMaxAge is the fixed lifetime of both session cookies.
	SessionCookieMaxAge = int(time.Hour / time.Second)

	// DefaultTokenTTL is the default validity window for issued tokens.
	DefaultTokenTTL = time.Hour
)

// ================================================================================
// Context Keys
// ================================================================================

// ContextKey is a dedicated type for request-scoped context values.
type ContextKey string

const (
	// ContextKeyPrincipal carries the authenticated *models.Principal.
	ContextKeyPrincipal ContextKey = "principal"

	// ContextKeyAuthProcessed marks a request already seen by the
	// authentication gate, guaranteeing the gate runs at most once.
	ContextKeyAuthProcessed ContextKey = "auth_gate_processed"

	// ContextKeyRequestID carries the per-request correlation id.
	ContextKeyRequestID ContextKey = "request_id"
)

// ================================================================================
// Project Status Constants
// ================================================================================

// ProjectStatus represents the lifecycle status of a project.
type ProjectStatus string

const (
	ProjectStatusPlanned   ProjectStatus = "PLANNED"
	ProjectStatusActive    ProjectStatus = "ACTIVE"
	ProjectStatusCompleted ProjectStatus = "COMPLETED"
	ProjectStatusOnHold    ProjectStatus = "ON_HOLD"
	ProjectStatusCancelled ProjectStatus = "CANCELLED"
)

// ValidProjectStatuses lists every accepted project status value.
var ValidProjectStatuses = []ProjectStatus{
	ProjectStatusPlanned,
	ProjectStatusActive,
	ProjectStatusCompleted,
	ProjectStatusOnHold,
	ProjectStatusCancelled,
}

// IsValid reports whether s is one of the enumerated project statuses.
func (s ProjectStatus) IsValid() bool {
	for _, v := range ValidProjectStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// ================================================================================
// Task Status and Priority Constants
// ================================================================================

// TaskStatus represents the fixed enumerated status of a task.
type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "TODO"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusDone       TaskStatus = "DONE"
	TaskStatusBlocked    TaskStatus = "BLOCKED"
)

// ValidTaskStatuses lists every accepted task status value.
var ValidTaskStatuses = []TaskStatus{
	TaskStatusTodo,
	TaskStatusInProgress,
	TaskStatusDone,
	TaskStatusBlocked,
}

// IsValid reports whether s is one of the enumerated task statuses.
func (s TaskStatus) IsValid() bool {
	for _, v := range ValidTaskStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// TaskPriority represents the priority level of a task.
type TaskPriority string

const (
	TaskPriorityLow      TaskPriority = "LOW"
	TaskPriorityMedium   TaskPriority = "MEDIUM"
	TaskPriorityHigh     TaskPriority = "HIGH"
	TaskPriorityCritical TaskPriority = "CRITICAL"
)

// ValidTaskPriorities lists every accepted task priority value.
var ValidTaskPriorities = []TaskPriority{
	TaskPriorityLow,
	TaskPriorityMedium,
	TaskPriorityHigh,
	TaskPriorityCritical,
}

// IsValid reports whether p is one of the enumerated task priorities.
func (p TaskPriority) IsValid() bool {
	for _, v := range ValidTaskPriorities {
		if p == v {
			return true
		}
	}
	return false
}

// ================================================================================
// HTTP Constants
// ================================================================================

const (
	// HeaderRequestID is the inbound/outbound correlation header.
	HeaderRequestID = "X-Request-ID"

	// DefaultHTTPTimeout bounds outbound calls to auth-service.
	DefaultHTTPTimeout = 10 * time.Second
)
