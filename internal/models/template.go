package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Template struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Description  string         `json:"description"`
	WorkTypeID   string         `json:"workTypeId"`
	IsSequential bool           `json:"isSequential"`
	Tasks        []TemplateTask `json:"tasks,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

type TemplateTask struct {
	ID             string           `json:"id"`
	TemplateID     string           `json:"templateId"`
	Title          string           `json:"title"`
	Description    string           `json:"description"`
	Position       int              `json:"position"`
	EstimatedHours *decimal.Decimal `json:"estimatedHours,omitempty"`
	Priority       string           `json:"priority"`
}
