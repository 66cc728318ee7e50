package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/keshav84652/workflow-management/internal/models"
)

type ProjectRepo struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewProjectRepo(db *pgxpool.Pool, logger *zap.Logger) *ProjectRepo {
	return &ProjectRepo{db: db, logger: logger}
}

const projectColumns = `p.id, p.client_id, p.work_type_id, p.name, p.status_id, p.state, p.priority,
	p.due_date, p.template_id, p.is_sequential, cl.name, p.created_at, p.updated_at`

func scanProject(row pgx.Row) (*models.Project, error) {
	var p models.Project
	err := row.Scan(&p.ID, &p.ClientID, &p.WorkTypeID, &p.Name, &p.StatusID, &p.State, &p.Priority,
		&p.DueDate, &p.TemplateID, &p.IsSequential, &p.ClientName, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProjectRepo) Create(ctx context.Context, p *models.Project) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO projects (id, client_id, work_type_id, name, status_id, state, priority,
			due_date, template_id, is_sequential, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		p.ID, p.ClientID, p.WorkTypeID, p.Name, p.StatusID, p.State, p.Priority,
		p.DueDate, p.TemplateID, p.IsSequential, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("insert project failed", zap.Error(err), zap.String("name", p.Name))
	}
	return err
}

func (r *ProjectRepo) FindByID(ctx context.Context, id string) (*models.Project, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+projectColumns+`
		FROM projects p JOIN clients cl ON cl.id = p.client_id
		WHERE p.id = $1`, id)
	return scanProject(row)
}

type ProjectFilter struct {
	ClientID   string
	WorkTypeID string
	State      string
	Q          string
}

func (r *ProjectRepo) List(ctx context.Context, f ProjectFilter) ([]models.Project, error) {
	query := `
		SELECT ` + projectColumns + `
		FROM projects p JOIN clients cl ON cl.id = p.client_id
		WHERE 1=1`
	args := []any{}
	if f.ClientID != "" {
		args = append(args, f.ClientID)
		query += fmt.Sprintf(` AND p.client_id = $%d`, len(args))
	}
	if f.WorkTypeID != "" {
		args = append(args, f.WorkTypeID)
		query += fmt.Sprintf(` AND p.work_type_id = $%d`, len(args))
	}
	if f.State != "" {
		args = append(args, f.State)
		query += fmt.Sprintf(` AND p.state = $%d`, len(args))
	}
	if f.Q != "" {
		args = append(args, "%"+f.Q+"%")
		query += fmt.Sprintf(` AND (p.name ILIKE $%d OR cl.name ILIKE $%d)`, len(args), len(args))
	}
	query += ` ORDER BY p.due_date NULLS LAST, p.name`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	projects := []models.Project{}
	for rows.Next() {
		var p models.Project
		if err := rows.Scan(&p.ID, &p.ClientID, &p.WorkTypeID, &p.Name, &p.StatusID, &p.State, &p.Priority,
			&p.DueDate, &p.TemplateID, &p.IsSequential, &p.ClientName, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func (r *ProjectRepo) Update(ctx context.Context, p *models.Project) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE projects
		SET name = $2, priority = $3, due_date = $4, updated_at = $5
		WHERE id = $1`,
		p.ID, p.Name, p.Priority, p.DueDate, p.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// MoveStatus updates the kanban column and, when the lifecycle state
// changes with it (terminal status reached or left), the state too.
func (r *ProjectRepo) MoveStatus(ctx context.Context, id, statusID, state string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE projects SET status_id = $2, state = $3, updated_at = now() WHERE id = $1`,
		id, statusID, state,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ProjectRepo) SetState(ctx context.Context, id, state string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE projects SET state = $2, updated_at = now() WHERE id = $1`, id, state)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// CountByState returns project counts keyed by lifecycle state.
func (r *ProjectRepo) CountByState(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.Query(ctx, `SELECT state, count(*) FROM projects GROUP BY state`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var state string
		var n int
		if err := rows.Scan(&state, &n); err != nil {
			return nil, err
		}
		counts[state] = n
	}
	return counts, rows.Err()
}
