package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/keshav84652/workflow-management/internal/models"
	"github.com/keshav84652/workflow-management/internal/repository"
)

type ReportService struct {
	entries  *repository.TimeEntryRepo
	clients  *repository.ClientRepo
	projects *repository.ProjectRepo
}

func NewReportService(entries *repository.TimeEntryRepo, clients *repository.ClientRepo, projects *repository.ProjectRepo) *ReportService {
	return &ReportService{entries: entries, clients: clients, projects: projects}
}

type TimeEntryInput struct {
	ClientID    string  `json:"clientId"`
	ProjectID   *string `json:"projectId"`
	TaskID      *string `json:"taskId"`
	EntryDate   string  `json:"entryDate"`
	Hours       string  `json:"hours"`
	Billable    bool    `json:"billable"`
	Description string  `json:"description"`
}

const dateLayout = "2006-01-02"

var maxDailyHours = decimal.NewFromInt(24)

func (s *ReportService) CreateEntry(ctx context.Context, userID string, in TimeEntryInput) (*models.TimeEntry, error) {
	if in.ClientID == "" {
		return nil, validationf("clientId is required")
	}
	entryDate, err := time.Parse(dateLayout, in.EntryDate)
	if err != nil {
		return nil, validationf("entryDate must be YYYY-MM-DD")
	}
	hours, err := decimal.NewFromString(in.Hours)
	if err != nil {
		return nil, validationf("hours must be a decimal number")
	}
	if hours.LessThanOrEqual(decimal.Zero) || hours.GreaterThan(maxDailyHours) {
		return nil, validationf("hours must be between 0 and 24")
	}
	if _, err := s.clients.FindByID(ctx, in.ClientID); err != nil {
		return nil, err
	}
	if in.ProjectID != nil {
		project, err := s.projects.FindByID(ctx, *in.ProjectID)
		if err != nil {
			return nil, err
		}
		if project.ClientID != in.ClientID {
			return nil, validationf("project does not belong to the client")
		}
	}

	entry := &models.TimeEntry{
		ID:          uuid.NewString(),
		UserID:      userID,
		ClientID:    in.ClientID,
		ProjectID:   in.ProjectID,
		TaskID:      in.TaskID,
		EntryDate:   entryDate,
		Hours:       hours,
		Billable:    in.Billable,
		Description: in.Description,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.entries.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

type TimeEntryQuery struct {
	UserID   string
	ClientID string
	From     string
	To       string
}

func (s *ReportService) ListEntries(ctx context.Context, q TimeEntryQuery) ([]models.TimeEntry, error) {
	filter := repository.TimeEntryFilter{UserID: q.UserID, ClientID: q.ClientID}
	if q.From != "" {
		from, err := time.Parse(dateLayout, q.From)
		if err != nil {
			return nil, validationf("from must be YYYY-MM-DD")
		}
		filter.From = &from
	}
	if q.To != "" {
		to, err := time.Parse(dateLayout, q.To)
		if err != nil {
			return nil, validationf("to must be YYYY-MM-DD")
		}
		filter.To = &to
	}
	return s.entries.List(ctx, filter)
}

func (s *ReportService) DeleteEntry(ctx context.Context, id string) error {
	return s.entries.Delete(ctx, id)
}

type TimeReportQuery struct {
	From     string
	To       string
	ClientID string
	GroupBy  string
}

// TimeReport aggregates hours over an inclusive date range. GroupBy
// accepts client, project, or user and defaults to client.
func (s *ReportService) TimeReport(ctx context.Context, q TimeReportQuery) ([]models.TimeReportRow, error) {
	groupBy := q.GroupBy
	if groupBy == "" {
		groupBy = "client"
	}
	switch groupBy {
	case "client", "project", "user":
	default:
		return nil, validationf("groupBy must be client, project, or user")
	}
	from, err := time.Parse(dateLayout, q.From)
	if err != nil {
		return nil, validationf("from must be YYYY-MM-DD")
	}
	to, err := time.Parse(dateLayout, q.To)
	if err != nil {
		return nil, validationf("to must be YYYY-MM-DD")
	}
	if to.Before(from) {
		return nil, validationf("to must not be before from")
	}
	return s.entries.Aggregate(ctx, from, to, q.ClientID, groupBy)
}
