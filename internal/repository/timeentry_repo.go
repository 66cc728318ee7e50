package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/keshav84652/workflow-management/internal/models"
)

type TimeEntryRepo struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewTimeEntryRepo(db *pgxpool.Pool, logger *zap.Logger) *TimeEntryRepo {
	return &TimeEntryRepo{db: db, logger: logger}
}

func (r *TimeEntryRepo) Create(ctx context.Context, e *models.TimeEntry) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO time_entries (id, user_id, client_id, project_id, task_id, entry_date, hours, billable, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7::numeric, $8, $9, $10)`,
		e.ID, e.UserID, e.ClientID, e.ProjectID, e.TaskID, e.EntryDate, e.Hours.String(),
		e.Billable, e.Description, e.CreatedAt,
	)
	if err != nil {
		r.logger.Error("insert time entry failed", zap.Error(err), zap.String("user_id", e.UserID))
	}
	return err
}

type TimeEntryFilter struct {
	UserID   string
	ClientID string
	From     *time.Time
	To       *time.Time
}

func (r *TimeEntryRepo) List(ctx context.Context, f TimeEntryFilter) ([]models.TimeEntry, error) {
	query := `
		SELECT id, user_id, client_id, project_id, task_id, entry_date, hours::text, billable, description, created_at
		FROM time_entries WHERE 1=1`
	args := []any{}
	if f.UserID != "" {
		args = append(args, f.UserID)
		query += fmt.Sprintf(` AND user_id = $%d`, len(args))
	}
	if f.ClientID != "" {
		args = append(args, f.ClientID)
		query += fmt.Sprintf(` AND client_id = $%d`, len(args))
	}
	if f.From != nil {
		args = append(args, *f.From)
		query += fmt.Sprintf(` AND entry_date >= $%d`, len(args))
	}
	if f.To != nil {
		args = append(args, *f.To)
		query += fmt.Sprintf(` AND entry_date <= $%d`, len(args))
	}
	query += ` ORDER BY entry_date DESC, created_at DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []models.TimeEntry{}
	for rows.Next() {
		var e models.TimeEntry
		var hours string
		if err := rows.Scan(&e.ID, &e.UserID, &e.ClientID, &e.ProjectID, &e.TaskID,
			&e.EntryDate, &hours, &e.Billable, &e.Description, &e.CreatedAt); err != nil {
			return nil, err
		}
		d, err := decimal.NewFromString(hours)
		if err != nil {
			return nil, fmt.Errorf("parse hours %q: %w", hours, err)
		}
		e.Hours = d
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *TimeEntryRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM time_entries WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Aggregate sums hours between from and to, optionally scoped to one
// client, grouped by client, project, or user.
func (r *TimeEntryRepo) Aggregate(ctx context.Context, from, to time.Time, clientID, groupBy string) ([]models.TimeReportRow, error) {
	var keyCol, labelExpr, joinClause string
	switch groupBy {
	case "project":
		keyCol = "COALESCE(e.project_id::text, '')"
		labelExpr = "COALESCE(p.name, '(no project)')"
		joinClause = "LEFT JOIN projects p ON p.id = e.project_id"
	case "user":
		keyCol = "e.user_id::text"
		labelExpr = "u.name"
		joinClause = "JOIN users u ON u.id = e.user_id"
	default: // client
		keyCol = "e.client_id::text"
		labelExpr = "c.name"
		joinClause = "JOIN clients c ON c.id = e.client_id"
	}

	query := fmt.Sprintf(`
		SELECT %s AS key, %s AS label,
		       COALESCE(sum(e.hours), 0)::text,
		       COALESCE(sum(e.hours) FILTER (WHERE e.billable), 0)::text,
		       count(*)
		FROM time_entries e
		%s
		WHERE e.entry_date >= $1 AND e.entry_date <= $2`, keyCol, labelExpr, joinClause)
	args := []any{from, to}
	if clientID != "" {
		args = append(args, clientID)
		query += fmt.Sprintf(` AND e.client_id = $%d`, len(args))
	}
	query += ` GROUP BY key, label ORDER BY label`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.TimeReportRow{}
	for rows.Next() {
		var row models.TimeReportRow
		var total, billable string
		if err := rows.Scan(&row.Key, &row.Label, &total, &billable, &row.EntryCount); err != nil {
			return nil, err
		}
		if row.TotalHours, err = decimal.NewFromString(total); err != nil {
			return nil, fmt.Errorf("parse total hours: %w", err)
		}
		if row.BillableHours, err = decimal.NewFromString(billable); err != nil {
			return nil, fmt.Errorf("parse billable hours: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
