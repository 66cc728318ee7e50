package models

import "time"

// Checklist item statuses. Pending is the initial state; uploaded is set by
// the upload path only; the client may toggle the other two freely from the
// portal.
const (
	ItemPending         = "pending"
	ItemUploaded        = "uploaded"
	ItemAlreadyProvided = "already_provided"
	ItemNotApplicable   = "not_applicable"
)

type Checklist struct {
	ID          string          `json:"id"`
	ClientID    string          `json:"clientId"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Items       []ChecklistItem `json:"items,omitempty"`
	Progress    map[string]int  `json:"progress,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

type ChecklistItem struct {
	ID          string           `json:"id"`
	ChecklistID string           `json:"checklistId"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Status      string           `json:"status"`
	Position    int              `json:"position"`
	Documents   []ClientDocument `json:"documents,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

func ValidItemStatus(s string) bool {
	switch s {
	case ItemPending, ItemUploaded, ItemAlreadyProvided, ItemNotApplicable:
		return true
	}
	return false
}

// PortalSettableStatus reports whether a client may set this status
// directly. Uploaded is reserved for the upload flow.
func PortalSettableStatus(s string) bool {
	switch s {
	case ItemPending, ItemAlreadyProvided, ItemNotApplicable:
		return true
	}
	return false
}

// Progress summarizes item statuses for dashboards: count per status.
func Progress(items []ChecklistItem) map[string]int {
	counts := map[string]int{
		ItemPending:         0,
		ItemUploaded:        0,
		ItemAlreadyProvided: 0,
		ItemNotApplicable:   0,
	}
	for _, it := range items {
		counts[it.Status]++
	}
	return counts
}
