package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/keshav84652/workflow-management/internal/models"
)

type ChecklistRepo struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewChecklistRepo(db *pgxpool.Pool, logger *zap.Logger) *ChecklistRepo {
	return &ChecklistRepo{db: db, logger: logger}
}

// Create inserts the checklist and its initial items in one transaction.
func (r *ChecklistRepo) Create(ctx context.Context, cl *models.Checklist) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO checklists (id, client_id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		cl.ID, cl.ClientID, cl.Name, cl.Description, cl.CreatedAt, cl.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("insert checklist failed", zap.Error(err), zap.String("client_id", cl.ClientID))
		return err
	}
	for _, it := range cl.Items {
		if _, err := tx.Exec(ctx, `
			INSERT INTO checklist_items (id, checklist_id, title, description, status, position, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			it.ID, cl.ID, it.Title, it.Description, it.Status, it.Position, it.CreatedAt, it.UpdatedAt,
		); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *ChecklistRepo) FindByID(ctx context.Context, id string) (*models.Checklist, error) {
	var cl models.Checklist
	err := r.db.QueryRow(ctx, `
		SELECT id, client_id, name, description, created_at, updated_at
		FROM checklists WHERE id = $1`, id,
	).Scan(&cl.ID, &cl.ClientID, &cl.Name, &cl.Description, &cl.CreatedAt, &cl.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	items, err := r.itemsFor(ctx, id)
	if err != nil {
		return nil, err
	}
	cl.Items = items
	return &cl, nil
}

func (r *ChecklistRepo) ListByClient(ctx context.Context, clientID string) ([]models.Checklist, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, client_id, name, description, created_at, updated_at
		FROM checklists WHERE client_id = $1 ORDER BY created_at DESC`, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lists := []models.Checklist{}
	for rows.Next() {
		var cl models.Checklist
		if err := rows.Scan(&cl.ID, &cl.ClientID, &cl.Name, &cl.Description, &cl.CreatedAt, &cl.UpdatedAt); err != nil {
			return nil, err
		}
		lists = append(lists, cl)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range lists {
		items, err := r.itemsFor(ctx, lists[i].ID)
		if err != nil {
			return nil, err
		}
		lists[i].Items = items
	}
	return lists, nil
}

const itemColumns = `id, checklist_id, title, description, status, position, created_at, updated_at`

func (r *ChecklistRepo) itemsFor(ctx context.Context, checklistID string) ([]models.ChecklistItem, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+itemColumns+` FROM checklist_items WHERE checklist_id = $1 ORDER BY position`, checklistID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.ChecklistItem{}
	for rows.Next() {
		var it models.ChecklistItem
		if err := rows.Scan(&it.ID, &it.ChecklistID, &it.Title, &it.Description, &it.Status,
			&it.Position, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *ChecklistRepo) Update(ctx context.Context, cl *models.Checklist) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE checklists SET name = $2, description = $3, updated_at = $4 WHERE id = $1`,
		cl.ID, cl.Name, cl.Description, cl.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ChecklistRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM checklists WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ChecklistRepo) AddItem(ctx context.Context, it *models.ChecklistItem) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO checklist_items (id, checklist_id, title, description, status, position, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		it.ID, it.ChecklistID, it.Title, it.Description, it.Status, it.Position, it.CreatedAt, it.UpdatedAt,
	)
	return err
}

func (r *ChecklistRepo) FindItem(ctx context.Context, id string) (*models.ChecklistItem, error) {
	var it models.ChecklistItem
	err := r.db.QueryRow(ctx,
		`SELECT `+itemColumns+` FROM checklist_items WHERE id = $1`, id,
	).Scan(&it.ID, &it.ChecklistID, &it.Title, &it.Description, &it.Status,
		&it.Position, &it.CreatedAt, &it.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// ClientForItem resolves which client an item ultimately belongs to. The
// portal uses it to enforce tenancy.
func (r *ChecklistRepo) ClientForItem(ctx context.Context, itemID string) (string, error) {
	var clientID string
	err := r.db.QueryRow(ctx, `
		SELECT cl.client_id
		FROM checklist_items it JOIN checklists cl ON cl.id = it.checklist_id
		WHERE it.id = $1`, itemID,
	).Scan(&clientID)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrNotFound
	}
	return clientID, err
}

func (r *ChecklistRepo) SetItemStatus(ctx context.Context, itemID, status string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE checklist_items SET status = $2, updated_at = now() WHERE id = $1`, itemID, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ChecklistRepo) DeleteItem(ctx context.Context, itemID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM checklist_items WHERE id = $1`, itemID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ReorderItems rewrites item positions to match the given ID order.
func (r *ChecklistRepo) ReorderItems(ctx context.Context, checklistID string, orderedIDs []string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for pos, id := range orderedIDs {
		tag, err := tx.Exec(ctx,
			`UPDATE checklist_items SET position = $3, updated_at = now() WHERE id = $1 AND checklist_id = $2`,
			id, checklistID, pos)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return ErrNotFound
		}
	}
	return tx.Commit(ctx)
}

// StatusCounts aggregates item statuses across all checklists.
func (r *ChecklistRepo) StatusCounts(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.Query(ctx, `SELECT status, count(*) FROM checklist_items GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, rows.Err()
}
