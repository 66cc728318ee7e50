package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type TimeEntry struct {
	ID          string          `json:"id"`
	UserID      string          `json:"userId"`
	ClientID    string          `json:"clientId"`
	ProjectID   *string         `json:"projectId,omitempty"`
	TaskID      *string         `json:"taskId,omitempty"`
	EntryDate   time.Time       `json:"entryDate"`
	Hours       decimal.Decimal `json:"hours"`
	Billable    bool            `json:"billable"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// TimeReportRow is one aggregation bucket in the time report.
type TimeReportRow struct {
	Key           string          `json:"key"`
	Label         string          `json:"label"`
	TotalHours    decimal.Decimal `json:"totalHours"`
	BillableHours decimal.Decimal `json:"billableHours"`
	EntryCount    int             `json:"entryCount"`
}
