package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/keshav84652/workflow-management/internal/models"
)

type WorkTypeRepo struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewWorkTypeRepo(db *pgxpool.Pool, logger *zap.Logger) *WorkTypeRepo {
	return &WorkTypeRepo{db: db, logger: logger}
}

func (r *WorkTypeRepo) Create(ctx context.Context, wt *models.WorkType) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO work_types (id, name, description, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		wt.ID, wt.Name, wt.Description, wt.IsActive, wt.CreatedAt,
	)
	if isUniqueViolation(err) {
		return ErrConflict
	}
	if err != nil {
		r.logger.Error("insert work type failed", zap.Error(err), zap.String("name", wt.Name))
	}
	return err
}

func (r *WorkTypeRepo) Update(ctx context.Context, wt *models.WorkType) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE work_types SET name = $2, description = $3, is_active = $4 WHERE id = $1`,
		wt.ID, wt.Name, wt.Description, wt.IsActive,
	)
	if isUniqueViolation(err) {
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

func (r *WorkTypeRepo) FindByID(ctx context.Context, id string) (*models.WorkType, error) {
	var wt models.WorkType
	err := r.db.QueryRow(ctx,
		`SELECT id, name, description, is_active, created_at FROM work_types WHERE id = $1`, id,
	).Scan(&wt.ID, &wt.Name, &wt.Description, &wt.IsActive, &wt.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &wt, nil
}

func (r *WorkTypeRepo) List(ctx context.Context) ([]models.WorkType, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, description, is_active, created_at FROM work_types ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.WorkType{}
	for rows.Next() {
		var wt models.WorkType
		if err := rows.Scan(&wt.ID, &wt.Name, &wt.Description, &wt.IsActive, &wt.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, wt)
	}
	return out, rows.Err()
}

const statusColumns = `id, work_type_id, name, color, position, is_default, is_terminal`

func (r *WorkTypeRepo) CreateStatus(ctx context.Context, s *models.TaskStatus) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if s.IsDefault {
		if _, err := tx.Exec(ctx,
			`UPDATE task_statuses SET is_default = false WHERE work_type_id = $1`, s.WorkTypeID); err != nil {
			return err
		}
	}
	_, err = tx.Exec(ctx, `
		INSERT INTO task_statuses (id, work_type_id, name, color, position, is_default, is_terminal)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		s.ID, s.WorkTypeID, s.Name, s.Color, s.Position, s.IsDefault, s.IsTerminal,
	)
	if isUniqueViolation(err) {
		return ErrConflict
	}
	if err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *WorkTypeRepo) UpdateStatus(ctx context.Context, s *models.TaskStatus) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if s.IsDefault {
		if _, err := tx.Exec(ctx,
			`UPDATE task_statuses SET is_default = false WHERE work_type_id = $1 AND id <> $2`,
			s.WorkTypeID, s.ID); err != nil {
			return err
		}
	}
	tag, err := tx.Exec(ctx, `
		UPDATE task_statuses
		SET name = $2, color = $3, position = $4, is_default = $5, is_terminal = $6
		WHERE id = $1`,
		s.ID, s.Name, s.Color, s.Position, s.IsDefault, s.IsTerminal,
	)
	if isUniqueViolation(err) {
		return ErrConflict
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return tx.Commit(ctx)
}

func (r *WorkTypeRepo) FindStatus(ctx context.Context, id string) (*models.TaskStatus, error) {
	var s models.TaskStatus
	err := r.db.QueryRow(ctx,
		`SELECT `+statusColumns+` FROM task_statuses WHERE id = $1`, id,
	).Scan(&s.ID, &s.WorkTypeID, &s.Name, &s.Color, &s.Position, &s.IsDefault, &s.IsTerminal)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *WorkTypeRepo) ListStatuses(ctx context.Context, workTypeID string) ([]models.TaskStatus, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+statusColumns+` FROM task_statuses WHERE work_type_id = $1 ORDER BY position`, workTypeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.TaskStatus{}
	for rows.Next() {
		var s models.TaskStatus
		if err := rows.Scan(&s.ID, &s.WorkTypeID, &s.Name, &s.Color, &s.Position, &s.IsDefault, &s.IsTerminal); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *WorkTypeRepo) DefaultStatus(ctx context.Context, workTypeID string) (*models.TaskStatus, error) {
	var s models.TaskStatus
	err := r.db.QueryRow(ctx,
		`SELECT `+statusColumns+` FROM task_statuses WHERE work_type_id = $1 AND is_default`, workTypeID,
	).Scan(&s.ID, &s.WorkTypeID, &s.Name, &s.Color, &s.Position, &s.IsDefault, &s.IsTerminal)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *WorkTypeRepo) DeleteStatus(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM task_statuses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// StatusInUse reports whether any project currently sits in this status.
func (r *WorkTypeRepo) StatusInUse(ctx context.Context, id string) (bool, error) {
	var inUse bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM projects WHERE status_id = $1)`, id).Scan(&inUse)
	return inUse, err
}

// WorkTypeInUse reports whether any project or template references the
// work type.
func (r *WorkTypeRepo) WorkTypeInUse(ctx context.Context, id string) (bool, error) {
	var inUse bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM projects WHERE work_type_id = $1)
		    OR EXISTS (SELECT 1 FROM templates WHERE work_type_id = $1)`, id).Scan(&inUse)
	return inUse, err
}

// ReorderStatuses rewrites positions to match the given ID order.
func (r *WorkTypeRepo) ReorderStatuses(ctx context.Context, workTypeID string, orderedIDs []string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for pos, id := range orderedIDs {
		tag, err := tx.Exec(ctx,
			`UPDATE task_statuses SET position = $3 WHERE id = $1 AND work_type_id = $2`,
			id, workTypeID, pos)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return ErrNotFound
		}
	}
	return tx.Commit(ctx)
}
