package models

import "time"

// WorkType is a configurable service category ("Tax Preparation",
// "Bookkeeping") owning its own set of workflow statuses.
type WorkType struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
}

// TaskStatus is one kanban column for a work type. Exactly one status per
// work type carries IsDefault; IsTerminal marks the done column.
type TaskStatus struct {
	ID         string `json:"id"`
	WorkTypeID string `json:"workTypeId"`
	Name       string `json:"name"`
	Color      string `json:"color"`
	Position   int    `json:"position"`
	IsDefault  bool   `json:"isDefault"`
	IsTerminal bool   `json:"isTerminal"`
}
