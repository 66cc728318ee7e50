package models

import "time"

// Project lifecycle state. Separate from the kanban workflow status, which
// is a TaskStatus row belonging to the project's work type.
const (
	ProjectActive    = "active"
	ProjectOnHold    = "on_hold"
	ProjectCompleted = "completed"
	ProjectArchived  = "archived"
)

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

type Project struct {
	ID           string     `json:"id"`
	ClientID     string     `json:"clientId"`
	WorkTypeID   string     `json:"workTypeId"`
	Name         string     `json:"name"`
	StatusID     string     `json:"statusId"`
	State        string     `json:"state"`
	Priority     string     `json:"priority"`
	DueDate      *time.Time `json:"dueDate,omitempty"`
	TemplateID   *string    `json:"templateId,omitempty"`
	IsSequential bool       `json:"isSequential"`
	ClientName   string     `json:"clientName,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

func ValidProjectState(s string) bool {
	switch s {
	case ProjectActive, ProjectOnHold, ProjectCompleted, ProjectArchived:
		return true
	}
	return false
}

// HeldState maps a project's lifecycle state when its client is
// deactivated. Only active projects go on hold; on-hold, completed, and
// archived projects keep their state.
func HeldState(state string) (string, bool) {
	if state == ProjectActive {
		return ProjectOnHold, true
	}
	return state, false
}

func ValidPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}
