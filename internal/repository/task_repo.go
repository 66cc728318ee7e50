package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/keshav84652/workflow-management/internal/models"
)

type TaskRepo struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewTaskRepo(db *pgxpool.Pool, logger *zap.Logger) *TaskRepo {
	return &TaskRepo{db: db, logger: logger}
}

const taskColumns = `id, project_id, title, description, status, priority, assignee_id,
	position, due_date, completed_at, created_at, updated_at`

func scanTask(row pgx.Row) (*models.Task, error) {
	var t models.Task
	err := row.Scan(&t.ID, &t.ProjectID, &t.Title, &t.Description, &t.Status, &t.Priority,
		&t.AssigneeID, &t.Position, &t.DueDate, &t.CompletedAt, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TaskRepo) Create(ctx context.Context, t *models.Task) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO tasks (id, project_id, title, description, status, priority, assignee_id,
			position, due_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		t.ID, t.ProjectID, t.Title, t.Description, t.Status, t.Priority, t.AssigneeID,
		t.Position, t.DueDate, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("insert task failed", zap.Error(err), zap.String("title", t.Title))
	}
	return err
}

// CreateBatch inserts template-derived tasks in one transaction so a
// half-instantiated project never exists.
func (r *TaskRepo) CreateBatch(ctx context.Context, tasks []models.Task) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, t := range tasks {
		if _, err := tx.Exec(ctx, `
			INSERT INTO tasks (id, project_id, title, description, status, priority, assignee_id,
				position, due_date, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
			t.ID, t.ProjectID, t.Title, t.Description, t.Status, t.Priority, t.AssigneeID,
			t.Position, t.DueDate, t.CreatedAt, t.UpdatedAt,
		); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *TaskRepo) FindByID(ctx context.Context, id string) (*models.Task, error) {
	row := r.db.QueryRow(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id)
	return scanTask(row)
}

type TaskFilter struct {
	ProjectID  string
	AssigneeID string
	Status     string
	DueBefore  *time.Time
}

func (r *TaskRepo) List(ctx context.Context, f TaskFilter) ([]models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE 1=1`
	args := []any{}
	if f.ProjectID != "" {
		args = append(args, f.ProjectID)
		query += fmt.Sprintf(` AND project_id = $%d`, len(args))
	}
	if f.AssigneeID != "" {
		args = append(args, f.AssigneeID)
		query += fmt.Sprintf(` AND assignee_id = $%d`, len(args))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		query += fmt.Sprintf(` AND status = $%d`, len(args))
	}
	if f.DueBefore != nil {
		args = append(args, *f.DueBefore)
		query += fmt.Sprintf(` AND due_date <= $%d`, len(args))
	}
	query += ` ORDER BY position, created_at`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(&t.ID, &t.ProjectID, &t.Title, &t.Description, &t.Status, &t.Priority,
			&t.AssigneeID, &t.Position, &t.DueDate, &t.CompletedAt, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *TaskRepo) ListByProject(ctx context.Context, projectID string) ([]models.Task, error) {
	return r.List(ctx, TaskFilter{ProjectID: projectID})
}

func (r *TaskRepo) Update(ctx context.Context, t *models.Task) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE tasks
		SET title = $2, description = $3, priority = $4, assignee_id = $5, due_date = $6, updated_at = $7
		WHERE id = $1`,
		t.ID, t.Title, t.Description, t.Priority, t.AssigneeID, t.DueDate, t.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SetStatus writes the new status and maintains completed_at.
func (r *TaskRepo) SetStatus(ctx context.Context, id, status string) error {
	var completedAt *time.Time
	if status == models.TaskCompleted {
		now := time.Now().UTC()
		completedAt = &now
	}
	tag, err := r.db.Exec(ctx, `
		UPDATE tasks SET status = $2, completed_at = $3, updated_at = now() WHERE id = $1`,
		id, status, completedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *TaskRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// CountOpen counts tasks not yet completed, and how many of those are past
// due as of now.
func (r *TaskRepo) CountOpen(ctx context.Context) (open, overdue int, err error) {
	err = r.db.QueryRow(ctx, `
		SELECT count(*),
		       count(*) FILTER (WHERE due_date < CURRENT_DATE)
		FROM tasks WHERE status <> $1`, models.TaskCompleted,
	).Scan(&open, &overdue)
	return open, overdue, err
}
