package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/keshav84652/workflow-management/internal/models"
)

type DocumentRepo struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewDocumentRepo(db *pgxpool.Pool, logger *zap.Logger) *DocumentRepo {
	return &DocumentRepo{db: db, logger: logger}
}

const documentColumns = `id, item_id, file_name, content_type, size, blob_key, uploaded_by, created_at`

func (r *DocumentRepo) Create(ctx context.Context, d *models.ClientDocument) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO client_documents (id, item_id, file_name, content_type, size, blob_key, uploaded_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		d.ID, d.ItemID, d.FileName, d.ContentType, d.Size, d.BlobKey, d.UploadedBy, d.CreatedAt,
	)
	if err != nil {
		r.logger.Error("insert document failed", zap.Error(err), zap.String("file", d.FileName))
	}
	return err
}

func (r *DocumentRepo) FindByID(ctx context.Context, id string) (*models.ClientDocument, error) {
	var d models.ClientDocument
	err := r.db.QueryRow(ctx,
		`SELECT `+documentColumns+` FROM client_documents WHERE id = $1`, id,
	).Scan(&d.ID, &d.ItemID, &d.FileName, &d.ContentType, &d.Size, &d.BlobKey, &d.UploadedBy, &d.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DocumentRepo) ListByItem(ctx context.Context, itemID string) ([]models.ClientDocument, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+documentColumns+` FROM client_documents WHERE item_id = $1 ORDER BY created_at`, itemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	docs := []models.ClientDocument{}
	for rows.Next() {
		var d models.ClientDocument
		if err := rows.Scan(&d.ID, &d.ItemID, &d.FileName, &d.ContentType, &d.Size, &d.BlobKey, &d.UploadedBy, &d.CreatedAt); err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

// ClientFor resolves the owning client of a document, for portal tenancy
// checks on download.
func (r *DocumentRepo) ClientFor(ctx context.Context, docID string) (string, error) {
	var clientID string
	err := r.db.QueryRow(ctx, `
		SELECT cl.client_id
		FROM client_documents d
		JOIN checklist_items it ON it.id = d.item_id
		JOIN checklists cl ON cl.id = it.checklist_id
		WHERE d.id = $1`, docID,
	).Scan(&clientID)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrNotFound
	}
	return clientID, err
}

func (r *DocumentRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM client_documents WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// CountByItem reports how many documents remain attached to an item.
func (r *DocumentRepo) CountByItem(ctx context.Context, itemID string) (int, error) {
	var n int
	err := r.db.QueryRow(ctx,
		`SELECT count(*) FROM client_documents WHERE item_id = $1`, itemID).Scan(&n)
	return n, err
}

// Recent returns the latest uploads across all clients for the dashboard.
func (r *DocumentRepo) Recent(ctx context.Context, limit int) ([]models.ClientDocument, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+documentColumns+` FROM client_documents ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	docs := []models.ClientDocument{}
	for rows.Next() {
		var d models.ClientDocument
		if err := rows.Scan(&d.ID, &d.ItemID, &d.FileName, &d.ContentType, &d.Size, &d.BlobKey, &d.UploadedBy, &d.CreatedAt); err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}
