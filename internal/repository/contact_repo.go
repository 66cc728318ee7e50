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

type ContactRepo struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewContactRepo(db *pgxpool.Pool, logger *zap.Logger) *ContactRepo {
	return &ContactRepo{db: db, logger: logger}
}

const contactColumns = `id, first_name, last_name, email, phone, title, created_at, updated_at`

func scanContact(row pgx.Row) (*models.Contact, error) {
	var c models.Contact
	err := row.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Phone, &c.Title, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ContactRepo) Create(ctx context.Context, c *models.Contact) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO contacts (id, first_name, last_name, email, phone, title, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		c.ID, c.FirstName, c.LastName, c.Email, c.Phone, c.Title, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("insert contact failed", zap.Error(err))
	}
	return err
}

func (r *ContactRepo) Update(ctx context.Context, c *models.Contact) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE contacts
		SET first_name = $2, last_name = $3, email = $4, phone = $5, title = $6, updated_at = $7
		WHERE id = $1`,
		c.ID, c.FirstName, c.LastName, c.Email, c.Phone, c.Title, c.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ContactRepo) FindByID(ctx context.Context, id string) (*models.Contact, error) {
	row := r.db.QueryRow(ctx, `SELECT `+contactColumns+` FROM contacts WHERE id = $1`, id)
	return scanContact(row)
}

func (r *ContactRepo) List(ctx context.Context, q string) ([]models.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts`
	args := []any{}
	if q != "" {
		args = append(args, "%"+q+"%")
		query += fmt.Sprintf(
			` WHERE first_name ILIKE $%d OR last_name ILIKE $%d OR email ILIKE $%d`,
			len(args), len(args), len(args))
	}
	query += ` ORDER BY last_name, first_name`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	contacts := []models.Contact{}
	for rows.Next() {
		var c models.Contact
		if err := rows.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Phone, &c.Title, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}

func (r *ContactRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM contacts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ClientsFor returns the clients a contact is linked to.
func (r *ContactRepo) ClientsFor(ctx context.Context, contactID string) ([]models.Client, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+prefixedClientColumns("cl")+`
		FROM clients cl
		JOIN client_contacts cc ON cc.client_id = cl.id
		WHERE cc.contact_id = $1
		ORDER BY cl.name`,
		contactID,
	)
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

func prefixedClientColumns(alias string) string {
	return alias + ".id, " + alias + ".name, " + alias + ".entity_type, " + alias + ".email, " +
		alias + ".phone, " + alias + ".tax_id, " + alias + ".notes, " + alias + ".is_active, " +
		alias + ".created_at, " + alias + ".updated_at"
}
