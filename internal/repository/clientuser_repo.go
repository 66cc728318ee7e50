package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/keshav84652/workflow-management/internal/models"
)

type ClientUserRepo struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewClientUserRepo(db *pgxpool.Pool, logger *zap.Logger) *ClientUserRepo {
	return &ClientUserRepo{db: db, logger: logger}
}

const clientUserColumns = `id, client_id, access_code, label, is_active, last_login_at, created_at`

func scanClientUser(row pgx.Row) (*models.ClientUser, error) {
	var cu models.ClientUser
	err := row.Scan(&cu.ID, &cu.ClientID, &cu.AccessCode, &cu.Label, &cu.IsActive, &cu.LastLoginAt, &cu.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &cu, nil
}

func (r *ClientUserRepo) Create(ctx context.Context, cu *models.ClientUser) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO client_users (id, client_id, access_code, label, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		cu.ID, cu.ClientID, cu.AccessCode, cu.Label, cu.IsActive, cu.CreatedAt,
	)
	if isUniqueViolation(err) {
		return ErrConflict
	}
	if err != nil {
		r.logger.Error("insert client user failed", zap.Error(err), zap.String("client_id", cu.ClientID))
	}
	return err
}

// FindByAccessCode only returns active credentials; revoked codes behave
// like unknown ones.
func (r *ClientUserRepo) FindByAccessCode(ctx context.Context, code string) (*models.ClientUser, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+clientUserColumns+` FROM client_users WHERE access_code = $1 AND is_active`, code)
	return scanClientUser(row)
}

func (r *ClientUserRepo) FindByID(ctx context.Context, id string) (*models.ClientUser, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+clientUserColumns+` FROM client_users WHERE id = $1`, id)
	return scanClientUser(row)
}

func (r *ClientUserRepo) ListByClient(ctx context.Context, clientID string) ([]models.ClientUser, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+clientUserColumns+` FROM client_users WHERE client_id = $1 ORDER BY created_at`, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.ClientUser{}
	for rows.Next() {
		var cu models.ClientUser
		if err := rows.Scan(&cu.ID, &cu.ClientID, &cu.AccessCode, &cu.Label, &cu.IsActive, &cu.LastLoginAt, &cu.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, cu)
	}
	return out, rows.Err()
}

func (r *ClientUserRepo) UpdateAccessCode(ctx context.Context, id, code string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE client_users SET access_code = $2 WHERE id = $1`, id, code)
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

func (r *ClientUserRepo) Deactivate(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE client_users SET is_active = false WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ClientUserRepo) TouchLastLogin(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx,
		`UPDATE client_users SET last_login_at = $2 WHERE id = $1`, id, time.Now().UTC())
	return err
}
