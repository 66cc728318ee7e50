package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/keshav84652/workflow-management/internal/models"
)

type TemplateRepo struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewTemplateRepo(db *pgxpool.Pool, logger *zap.Logger) *TemplateRepo {
	return &TemplateRepo{db: db, logger: logger}
}

func (r *TemplateRepo) Create(ctx context.Context, t *models.Template) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO templates (id, name, description, work_type_id, is_sequential, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		t.ID, t.Name, t.Description, t.WorkTypeID, t.IsSequential, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("insert template failed", zap.Error(err), zap.String("name", t.Name))
		return err
	}
	if err := insertTemplateTasks(ctx, tx, t.ID, t.Tasks); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// Update rewrites the template row and replaces its task set.
func (r *TemplateRepo) Update(ctx context.Context, t *models.Template) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		UPDATE templates
		SET name = $2, description = $3, work_type_id = $4, is_sequential = $5, updated_at = $6
		WHERE id = $1`,
		t.ID, t.Name, t.Description, t.WorkTypeID, t.IsSequential, t.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	if _, err := tx.Exec(ctx, `DELETE FROM template_tasks WHERE template_id = $1`, t.ID); err != nil {
		return err
	}
	if err := insertTemplateTasks(ctx, tx, t.ID, t.Tasks); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func insertTemplateTasks(ctx context.Context, tx pgx.Tx, templateID string, tasks []models.TemplateTask) error {
	for _, tt := range tasks {
		var hours *string
		if tt.EstimatedHours != nil {
			s := tt.EstimatedHours.String()
			hours = &s
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO template_tasks (id, template_id, title, description, position, estimated_hours, priority)
			VALUES ($1, $2, $3, $4, $5, $6::numeric, $7)`,
			tt.ID, templateID, tt.Title, tt.Description, tt.Position, hours, tt.Priority,
		); err != nil {
			return err
		}
	}
	return nil
}

func (r *TemplateRepo) FindByID(ctx context.Context, id string) (*models.Template, error) {
	var t models.Template
	err := r.db.QueryRow(ctx, `
		SELECT id, name, description, work_type_id, is_sequential, created_at, updated_at
		FROM templates WHERE id = $1`, id,
	).Scan(&t.ID, &t.Name, &t.Description, &t.WorkTypeID, &t.IsSequential, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	tasks, err := r.tasksFor(ctx, id)
	if err != nil {
		return nil, err
	}
	t.Tasks = tasks
	return &t, nil
}

func (r *TemplateRepo) tasksFor(ctx context.Context, templateID string) ([]models.TemplateTask, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, template_id, title, description, position, estimated_hours::text, priority
		FROM template_tasks WHERE template_id = $1 ORDER BY position`, templateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []models.TemplateTask{}
	for rows.Next() {
		var tt models.TemplateTask
		var hours *string
		if err := rows.Scan(&tt.ID, &tt.TemplateID, &tt.Title, &tt.Description, &tt.Position, &hours, &tt.Priority); err != nil {
			return nil, err
		}
		if hours != nil {
			d, err := decimal.NewFromString(*hours)
			if err == nil {
				tt.EstimatedHours = &d
			}
		}
		tasks = append(tasks, tt)
	}
	return tasks, rows.Err()
}

func (r *TemplateRepo) List(ctx context.Context) ([]models.Template, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, description, work_type_id, is_sequential, created_at, updated_at
		FROM templates ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Template{}
	for rows.Next() {
		var t models.Template
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.WorkTypeID, &t.IsSequential, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *TemplateRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM templates WHERE id = $1`, id)
	if isForeignKeyViolation(err) {
		return ErrConflict
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
