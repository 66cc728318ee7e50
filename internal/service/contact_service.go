package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/keshav84652/workflow-management/internal/models"
	"github.com/keshav84652/workflow-management/internal/repository"
)

type ContactService struct {
	contacts *repository.ContactRepo
}

func NewContactService(contacts *repository.ContactRepo) *ContactService {
	return &ContactService{contacts: contacts}
}

type ContactInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Title     string `json:"title"`
}

func (s *ContactService) Create(ctx context.Context, in ContactInput) (*models.Contact, error) {
	if in.FirstName == "" {
		return nil, validationf("contact first name is required")
	}
	now := time.Now().UTC()
	contact := &models.Contact{
		ID:        uuid.New().String(),
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Phone:     in.Phone,
		Title:     in.Title,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.contacts.Create(ctx, contact); err != nil {
		return nil, err
	}
	return contact, nil
}

func (s *ContactService) Update(ctx context.Context, id string, in ContactInput) (*models.Contact, error) {
	if in.FirstName == "" {
		return nil, validationf("contact first name is required")
	}
	contact, err := s.contacts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	contact.FirstName = in.FirstName
	contact.LastName = in.LastName
	contact.Email = in.Email
	contact.Phone = in.Phone
	contact.Title = in.Title
	contact.UpdatedAt = time.Now().UTC()

	if err := s.contacts.Update(ctx, contact); err != nil {
		return nil, err
	}
	return contact, nil
}

func (s *ContactService) Get(ctx context.Context, id string) (*models.Contact, error) {
	return s.contacts.FindByID(ctx, id)
}

func (s *ContactService) List(ctx context.Context, q string) ([]models.Contact, error) {
	return s.contacts.List(ctx, q)
}

func (s *ContactService) Delete(ctx context.Context, id string) error {
	return s.contacts.Delete(ctx, id)
}

func (s *ContactService) Clients(ctx context.Context, contactID string) ([]models.Client, error) {
	if _, err := s.contacts.FindByID(ctx, contactID); err != nil {
		return nil, err
	}
	return s.contacts.ClientsFor(ctx, contactID)
}
