package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/keshav84652/workflow-management/internal/blobstore"
	"github.com/keshav84652/workflow-management/internal/metrics"
	"github.com/keshav84652/workflow-management/internal/models"
	"github.com/keshav84652/workflow-management/internal/repository"
)

// MaxUploadSize caps a single portal upload.
const MaxUploadSize = 25 << 20 // 25MB

type DocumentService struct {
	documents  *repository.DocumentRepo
	checklists *repository.ChecklistRepo
	blobs      blobstore.Store
	logger     *zap.Logger
}

func NewDocumentService(
	documents *repository.DocumentRepo,
	checklists *repository.ChecklistRepo,
	blobs blobstore.Store,
	logger *zap.Logger,
) *DocumentService {
	return &DocumentService{documents: documents, checklists: checklists, blobs: blobs, logger: logger}
}

// Upload stores the file and attaches it to the checklist item, moving the
// item to uploaded. uploadedBy is the portal credential ID, nil for staff
// uploads.
func (s *DocumentService) Upload(ctx context.Context, itemID, fileName string, data []byte, contentType string, uploadedBy *string) (*models.ClientDocument, error) {
	if len(data) == 0 {
		return nil, validationf("file is empty")
	}
	if len(data) > MaxUploadSize {
		return nil, validationf("file exceeds the %dMB limit", MaxUploadSize>>20)
	}
	if !AllowedFileName(fileName) {
		return nil, validationf("file type %q is not accepted", filepath.Ext(fileName))
	}
	if _, err := s.checklists.FindItem(ctx, itemID); err != nil {
		return nil, err
	}

	if contentType == "" {
		contentType = DetectContentType(fileName)
	}

	blobKey, err := s.blobs.Put(fileName, data)
	if err != nil {
		return nil, fmt.Errorf("store blob: %w", err)
	}

	doc := &models.ClientDocument{
		ID:          uuid.New().String(),
		ItemID:      itemID,
		FileName:    fileName,
		ContentType: contentType,
		Size:        int64(len(data)),
		BlobKey:     blobKey,
		UploadedBy:  uploadedBy,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.documents.Create(ctx, doc); err != nil {
		s.blobs.Delete(blobKey)
		return nil, err
	}
	if err := s.checklists.SetItemStatus(ctx, itemID, models.ItemUploaded); err != nil {
		return nil, err
	}

	metrics.RecordDocumentUpload(doc.Size)
	s.logger.Info("document uploaded",
		zap.String("item_id", itemID),
		zap.String("file", fileName),
		zap.Int64("size", doc.Size),
	)
	return doc, nil
}

func (s *DocumentService) Download(ctx context.Context, id string) ([]byte, *models.ClientDocument, error) {
	doc, err := s.documents.FindByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	data, err := s.blobs.Get(doc.BlobKey)
	if err != nil {
		return nil, nil, fmt.Errorf("read blob: %w", err)
	}
	return data, doc, nil
}

// Delete removes the record and blob. When the item loses its last
// document and still reads uploaded, it reverts to pending.
func (s *DocumentService) Delete(ctx context.Context, id string) error {
	doc, err := s.documents.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.documents.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.blobs.Delete(doc.BlobKey); err != nil && !errors.Is(err, blobstore.ErrNotFound) {
		s.logger.Warn("blob delete failed", zap.Error(err), zap.String("key", doc.BlobKey))
	}

	remaining, err := s.documents.CountByItem(ctx, doc.ItemID)
	if err != nil {
		return err
	}
	if remaining == 0 {
		item, err := s.checklists.FindItem(ctx, doc.ItemID)
		if err == nil && item.Status == models.ItemUploaded {
			return s.checklists.SetItemStatus(ctx, doc.ItemID, models.ItemPending)
		}
	}
	return nil
}

// ClientFor resolves the client owning a document.
func (s *DocumentService) ClientFor(ctx context.Context, docID string) (string, error) {
	return s.documents.ClientFor(ctx, docID)
}

// allowedExtensions lists the document types a CPA checklist accepts.
var allowedExtensions = map[string]bool{
	".pdf":  true,
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".doc":  true,
	".docx": true,
	".xls":  true,
	".xlsx": true,
	".csv":  true,
	".txt":  true,
}

func AllowedFileName(name string) bool {
	return allowedExtensions[strings.ToLower(filepath.Ext(name))]
}

// DetectContentType maps a filename extension to a MIME type, falling back
// to octet-stream.
func DetectContentType(fileName string) string {
	types := map[string]string{
		".pdf":  "application/pdf",
		".png":  "image/png",
		".jpg":  "image/jpeg",
		".jpeg": "image/jpeg",
		".gif":  "image/gif",
		".doc":  "application/msword",
		".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		".xls":  "application/vnd.ms-excel",
		".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		".csv":  "text/csv",
		".txt":  "text/plain",
	}
	if ct, ok := types[strings.ToLower(filepath.Ext(fileName))]; ok {
		return ct
	}
	return "application/octet-stream"
}
