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

type ClientRepo struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewClientRepo(db *pgxpool.Pool, logger *zap.Logger) *ClientRepo {
	return &ClientRepo{db: db, logger: logger}
}

const clientColumns = `id, name, entity_type, email, phone, tax_id, notes, is_active, created_at, updated_at`

func scanClient(row pgx.Row) (*models.Client, error) {
	var c models.Client
	err := row.Scan(&c.ID, &c.Name, &c.EntityType, &c.Email, &c.Phone, &c.TaxID,
		&c.Notes, &c.IsActive, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ClientRepo) Create(ctx context.Context, c *models.Client) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO clients (id, name, entity_type, email, phone, tax_id, notes, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		c.ID, c.Name, c.EntityType, c.Email, c.Phone, c.TaxID, c.Notes, c.IsActive, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("insert client failed", zap.Error(err), zap.String("name", c.Name))
	}
	return err
}

func (r *ClientRepo) Update(ctx context.Context, c *models.Client) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE clients
		SET name = $2, entity_type = $3, email = $4, phone = $5, tax_id = $6, notes = $7, updated_at = $8
		WHERE id = $1`,
		c.ID, c.Name, c.EntityType, c.Email, c.Phone, c.TaxID, c.Notes, c.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ClientRepo) FindByID(ctx context.Context, id string) (*models.Client, error) {
	row := r.db.QueryRow(ctx, `SELECT `+clientColumns+` FROM clients WHERE id = $1`, id)
	return scanClient(row)
}

// List filters by free-text q (name/email/tax id) and, when activeOnly is
// set, hides inactive clients.
func (r *ClientRepo) List(ctx context.Context, q string, activeOnly bool) ([]models.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE 1=1`
	args := []any{}
	if activeOnly {
		query += ` AND is_active`
	}
	if q != "" {
		args = append(args, "%"+q+"%")
		query += fmt.Sprintf(` AND (name ILIKE $%d OR email ILIKE $%d OR tax_id ILIKE $%d)`,
			len(args), len(args), len(args))
	}
	query += ` ORDER BY name`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	clients := []models.Client{}
	for rows.Next() {
		var c models.Client
		if err := rows.Scan(&c.ID, &c.Name, &c.EntityType, &c.Email, &c.Phone, &c.TaxID,
			&c.Notes, &c.IsActive, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

// Deactivate marks the client inactive and moves its active projects to
// on_hold in one transaction.
func (r *ClientRepo) Deactivate(ctx context.Context, id string) (heldProjects int64, err error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`UPDATE clients SET is_active = false, updated_at = now() WHERE id = $1 AND is_active`, id)
	if err != nil {
		return 0, err
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM clients WHERE id = $1)`, id).Scan(&exists); err != nil {
			return 0, err
		}
		if !exists {
			return 0, ErrNotFound
		}
		// Already inactive: nothing more to do.
		return 0, tx.Commit(ctx)
	}

	from := models.ProjectActive
	to, _ := models.HeldState(from)
	held, err := tx.Exec(ctx, `
		UPDATE projects SET state = $2, updated_at = now()
		WHERE client_id = $1 AND state = $3`,
		id, to, from,
	)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	r.logger.Info("client deactivated",
		zap.String("client_id", id),
		zap.Int64("projects_held", held.RowsAffected()),
	)
	return held.RowsAffected(), nil
}

func (r *ClientRepo) CountActive(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT count(*) FROM clients WHERE is_active`).Scan(&n)
	return n, err
}

// LinkContact attaches a contact to a client. Promoting a primary demotes
// any existing primary for that client.
func (r *ClientRepo) LinkContact(ctx context.Context, clientID, contactID string, isPrimary bool) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if isPrimary {
		if _, err := tx.Exec(ctx,
			`UPDATE client_contacts SET is_primary = false WHERE client_id = $1`, clientID); err != nil {
			return err
		}
	}
	_, err = tx.Exec(ctx, `
		INSERT INTO client_contacts (client_id, contact_id, is_primary)
		VALUES ($1, $2, $3)
		ON CONFLICT (client_id, contact_id) DO UPDATE SET is_primary = EXCLUDED.is_primary`,
		clientID, contactID, isPrimary,
	)
	if err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *ClientRepo) UnlinkContact(ctx context.Context, clientID, contactID string) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM client_contacts WHERE client_id = $1 AND contact_id = $2`, clientID, contactID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ContactsFor returns the client's contacts with their primary flag.
func (r *ClientRepo) ContactsFor(ctx context.Context, clientID string) ([]models.Contact, []bool, error) {
	rows, err := r.db.Query(ctx, `
		SELECT c.id, c.first_name, c.last_name, c.email, c.phone, c.title, c.created_at, c.updated_at, cc.is_primary
		FROM contacts c
		JOIN client_contacts cc ON cc.contact_id = c.id
		WHERE cc.client_id = $1
		ORDER BY cc.is_primary DESC, c.last_name, c.first_name`,
		clientID,
	)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	contacts := []models.Contact{}
	primary := []bool{}
	for rows.Next() {
		var c models.Contact
		var isPrimary bool
		if err := rows.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Phone, &c.Title,
			&c.CreatedAt, &c.UpdatedAt, &isPrimary); err != nil {
			return nil, nil, err
		}
		contacts = append(contacts, c)
		primary = append(primary, isPrimary)
	}
	return contacts, primary, rows.Err()
}
