package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/keshav84652/workflow-management/internal/auth"
	"github.com/keshav84652/workflow-management/internal/cache"
	"github.com/keshav84652/workflow-management/internal/metrics"
	"github.com/keshav84652/workflow-management/internal/models"
	"github.com/keshav84652/workflow-management/internal/repository"
)

var (
	// ErrInvalidAccessCode deliberately covers unknown, malformed, and
	// revoked codes so the login response never leaks which it was.
	ErrInvalidAccessCode = errors.New("invalid access code")
	ErrTooManyAttempts   = errors.New("too many login attempts")
	ErrForbidden         = errors.New("not your document")
)

type PortalService struct {
	clientUsers *repository.ClientUserRepo
	clients     *repository.ClientRepo
	checklists  *repository.ChecklistRepo
	documents   *DocumentService
	limiter     *cache.LoginLimiter
	jwtSecret   string
	logger      *zap.Logger
}

func NewPortalService(
	clientUsers *repository.ClientUserRepo,
	clients *repository.ClientRepo,
	checklists *repository.ChecklistRepo,
	documents *DocumentService,
	limiter *cache.LoginLimiter,
	jwtSecret string,
	logger *zap.Logger,
) *PortalService {
	return &PortalService{
		clientUsers: clientUsers,
		clients:     clients,
		checklists:  checklists,
		documents:   documents,
		limiter:     limiter,
		jwtSecret:   jwtSecret,
		logger:      logger,
	}
}

type PortalSession struct {
	Token      string `json:"token"`
	ClientID   string `json:"clientId"`
	ClientName string `json:"clientName"`
}

// Login exchanges an access code for a portal session token.
func (s *PortalService) Login(ctx context.Context, rawCode string) (*PortalSession, error) {
	code := auth.NormalizeAccessCode(rawCode)
	if !auth.ValidAccessCode(code) {
		metrics.RecordPortalLogin("invalid")
		return nil, ErrInvalidAccessCode
	}
	if !s.limiter.Allow(ctx, code) {
		metrics.RecordPortalLogin("rate_limited")
		s.logger.Warn("portal login rate limited")
		return nil, ErrTooManyAttempts
	}

	cu, err := s.clientUsers.FindByAccessCode(ctx, code)
	if errors.Is(err, repository.ErrNotFound) {
		metrics.RecordPortalLogin("invalid")
		return nil, ErrInvalidAccessCode
	}
	if err != nil {
		return nil, err
	}
	client, err := s.clients.FindByID(ctx, cu.ClientID)
	if err != nil {
		return nil, err
	}
	if !client.IsActive {
		metrics.RecordPortalLogin("invalid")
		return nil, ErrInvalidAccessCode
	}

	token, err := auth.GeneratePortalToken(s.jwtSecret, cu.ID, cu.ClientID)
	if err != nil {
		return nil, err
	}

	s.limiter.Reset(ctx, code)
	if err := s.clientUsers.TouchLastLogin(ctx, cu.ID); err != nil {
		s.logger.Warn("touch last login failed", zap.Error(err))
	}
	metrics.RecordPortalLogin("success")
	s.logger.Info("portal login", zap.String("client_id", cu.ClientID))

	return &PortalSession{Token: token, ClientID: cu.ClientID, ClientName: client.Name}, nil
}

// Checklists returns the authenticated client's checklists with items and
// documents.
func (s *PortalService) Checklists(ctx context.Context, clientID string) ([]models.Checklist, error) {
	lists, err := s.checklists.ListByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	for i := range lists {
		for j := range lists[i].Items {
			docs, err := s.documents.documents.ListByItem(ctx, lists[i].Items[j].ID)
			if err != nil {
				return nil, err
			}
			lists[i].Items[j].Documents = docs
		}
		lists[i].Progress = models.Progress(lists[i].Items)
	}
	return lists, nil
}

// SetItemStatus lets the client toggle an item among the portal-settable
// statuses. The transition itself is unconditional; only the target status
// and item ownership are checked.
func (s *PortalService) SetItemStatus(ctx context.Context, clientID, itemID, status string) (*models.ChecklistItem, error) {
	if !models.PortalSettableStatus(status) {
		return nil, validationf("status %q cannot be set from the portal", status)
	}
	owner, err := s.checklists.ClientForItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if owner != clientID {
		return nil, ErrForbidden
	}
	if err := s.checklists.SetItemStatus(ctx, itemID, status); err != nil {
		return nil, err
	}
	return s.checklists.FindItem(ctx, itemID)
}

// Upload stores a document against the client's own checklist item.
func (s *PortalService) Upload(ctx context.Context, clientID, clientUserID, itemID, fileName string, data []byte, contentType string) (*models.ClientDocument, error) {
	owner, err := s.checklists.ClientForItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if owner != clientID {
		return nil, ErrForbidden
	}
	return s.documents.Upload(ctx, itemID, fileName, data, contentType, &clientUserID)
}

// Download serves a document only to the client it belongs to.
func (s *PortalService) Download(ctx context.Context, clientID, docID string) ([]byte, *models.ClientDocument, error) {
	owner, err := s.documents.ClientFor(ctx, docID)
	if err != nil {
		return nil, nil, err
	}
	if owner != clientID {
		return nil, nil, ErrForbidden
	}
	return s.documents.Download(ctx, docID)
}
