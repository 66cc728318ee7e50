package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/keshav84652/workflow-management/internal/auth"
	"github.com/keshav84652/workflow-management/internal/models"
	"github.com/keshav84652/workflow-management/internal/repository"
)

type ClientService struct {
	clients     *repository.ClientRepo
	clientUsers *repository.ClientUserRepo
	logger      *zap.Logger
}

func NewClientService(clients *repository.ClientRepo, clientUsers *repository.ClientUserRepo, logger *zap.Logger) *ClientService {
	return &ClientService{clients: clients, clientUsers: clientUsers, logger: logger}
}

type ClientInput struct {
	Name       string `json:"name"`
	EntityType string `json:"entityType"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	TaxID      string `json:"taxId"`
	Notes      string `json:"notes"`
}

func (s *ClientService) Create(ctx context.Context, in ClientInput) (*models.Client, error) {
	if in.Name == "" {
		return nil, validationf("client name is required")
	}
	now := time.Now().UTC()
	client := &models.Client{
		ID:         uuid.New().String(),
		Name:       in.Name,
		EntityType: in.EntityType,
		Email:      in.Email,
		Phone:      in.Phone,
		TaxID:      in.TaxID,
		Notes:      in.Notes,
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.clients.Create(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

func (s *ClientService) Update(ctx context.Context, id string, in ClientInput) (*models.Client, error) {
	if in.Name == "" {
		return nil, validationf("client name is required")
	}
	client, err := s.clients.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	client.Name = in.Name
	client.EntityType = in.EntityType
	client.Email = in.Email
	client.Phone = in.Phone
	client.TaxID = in.TaxID
	client.Notes = in.Notes
	client.UpdatedAt = time.Now().UTC()

	if err := s.clients.Update(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

func (s *ClientService) Get(ctx context.Context, id string) (*models.Client, error) {
	return s.clients.FindByID(ctx, id)
}

func (s *ClientService) List(ctx context.Context, q string, activeOnly bool) ([]models.Client, error) {
	return s.clients.List(ctx, q, activeOnly)
}

// Deactivate soft-deletes the client. Active projects move to on_hold.
func (s *ClientService) Deactivate(ctx context.Context, id string) (int64, error) {
	return s.clients.Deactivate(ctx, id)
}

func (s *ClientService) LinkContact(ctx context.Context, clientID, contactID string, isPrimary bool) error {
	if _, err := s.clients.FindByID(ctx, clientID); err != nil {
		return err
	}
	return s.clients.LinkContact(ctx, clientID, contactID, isPrimary)
}

func (s *ClientService) UnlinkContact(ctx context.Context, clientID, contactID string) error {
	return s.clients.UnlinkContact(ctx, clientID, contactID)
}

type LinkedContact struct {
	models.Contact
	IsPrimary bool `json:"isPrimary"`
}

func (s *ClientService) Contacts(ctx context.Context, clientID string) ([]LinkedContact, error) {
	contacts, primary, err := s.clients.ContactsFor(ctx, clientID)
	if err != nil {
		return nil, err
	}
	out := make([]LinkedContact, len(contacts))
	for i := range contacts {
		out[i] = LinkedContact{Contact: contacts[i], IsPrimary: primary[i]}
	}
	return out, nil
}

// CreatePortalUser issues a new access code for the client. Retries on the
// off chance a generated code already exists.
func (s *ClientService) CreatePortalUser(ctx context.Context, clientID, label string) (*models.ClientUser, error) {
	client, err := s.clients.FindByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if !client.IsActive {
		return nil, validationf("cannot issue portal access for an inactive client")
	}

	for attempt := 0; attempt < 3; attempt++ {
		code, err := auth.NewAccessCode()
		if err != nil {
			return nil, err
		}
		cu := &models.ClientUser{
			ID:         uuid.New().String(),
			ClientID:   clientID,
			AccessCode: code,
			Label:      label,
			IsActive:   true,
			CreatedAt:  time.Now().UTC(),
		}
		err = s.clientUsers.Create(ctx, cu)
		if errors.Is(err, repository.ErrConflict) {
			continue
		}
		if err != nil {
			return nil, err
		}
		s.logger.Info("portal access issued", zap.String("client_id", clientID))
		return cu, nil
	}
	return nil, errors.New("could not generate a unique access code")
}

func (s *ClientService) RegeneratePortalCode(ctx context.Context, clientUserID string) (*models.ClientUser, error) {
	for attempt := 0; attempt < 3; attempt++ {
		code, err := auth.NewAccessCode()
		if err != nil {
			return nil, err
		}
		err = s.clientUsers.UpdateAccessCode(ctx, clientUserID, code)
		if errors.Is(err, repository.ErrConflict) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return s.clientUsers.FindByID(ctx, clientUserID)
	}
	return nil, errors.New("could not generate a unique access code")
}

func (s *ClientService) DeactivatePortalUser(ctx context.Context, clientUserID string) error {
	return s.clientUsers.Deactivate(ctx, clientUserID)
}

func (s *ClientService) PortalUsers(ctx context.Context, clientID string) ([]models.ClientUser, error) {
	return s.clientUsers.ListByClient(ctx, clientID)
}
