package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/keshav84652/workflow-management/internal/models"
	"github.com/keshav84652/workflow-management/internal/repository"
)

type ChecklistService struct {
	checklists *repository.ChecklistRepo
	documents  *repository.DocumentRepo
	clients    *repository.ClientRepo
}

func NewChecklistService(
	checklists *repository.ChecklistRepo,
	documents *repository.DocumentRepo,
	clients *repository.ClientRepo,
) *ChecklistService {
	return &ChecklistService{checklists: checklists, documents: documents, clients: clients}
}

type ChecklistInput struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	ItemTitles  []string `json:"itemTitles"`
}

func (s *ChecklistService) Create(ctx context.Context, clientID string, in ChecklistInput) (*models.Checklist, error) {
	if in.Name == "" {
		return nil, validationf("checklist name is required")
	}
	if _, err := s.clients.FindByID(ctx, clientID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	cl := &models.Checklist{
		ID:          uuid.New().String(),
		ClientID:    clientID,
		Name:        in.Name,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for i, title := range in.ItemTitles {
		if title == "" {
			return nil, validationf("item %d: title is required", i+1)
		}
		cl.Items = append(cl.Items, models.ChecklistItem{
			ID:          uuid.New().String(),
			ChecklistID: cl.ID,
			Title:       title,
			Status:      models.ItemPending,
			Position:    i,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}
	if err := s.checklists.Create(ctx, cl); err != nil {
		return nil, err
	}
	return cl, nil
}

// Get returns the checklist with items and their documents attached.
func (s *ChecklistService) Get(ctx context.Context, id string) (*models.Checklist, error) {
	cl, err := s.checklists.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	for i := range cl.Items {
		docs, err := s.documents.ListByItem(ctx, cl.Items[i].ID)
		if err != nil {
			return nil, err
		}
		cl.Items[i].Documents = docs
	}
	cl.Progress = models.Progress(cl.Items)
	return cl, nil
}

func (s *ChecklistService) ListByClient(ctx context.Context, clientID string) ([]models.Checklist, error) {
	if _, err := s.clients.FindByID(ctx, clientID); err != nil {
		return nil, err
	}
	lists, err := s.checklists.ListByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	for i := range lists {
		lists[i].Progress = models.Progress(lists[i].Items)
	}
	return lists, nil
}

func (s *ChecklistService) Update(ctx context.Context, id, name, description string) (*models.Checklist, error) {
	if name == "" {
		return nil, validationf("checklist name is required")
	}
	cl, err := s.checklists.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	cl.Name = name
	cl.Description = description
	cl.UpdatedAt = time.Now().UTC()
	if err := s.checklists.Update(ctx, cl); err != nil {
		return nil, err
	}
	return cl, nil
}

func (s *ChecklistService) Delete(ctx context.Context, id string) error {
	return s.checklists.Delete(ctx, id)
}

func (s *ChecklistService) AddItem(ctx context.Context, checklistID, title, description string) (*models.ChecklistItem, error) {
	if title == "" {
		return nil, validationf("item title is required")
	}
	cl, err := s.checklists.FindByID(ctx, checklistID)
	if err != nil {
		return nil, err
	}
	position := 0
	for _, it := range cl.Items {
		if it.Position >= position {
			position = it.Position + 1
		}
	}

	now := time.Now().UTC()
	item := &models.ChecklistItem{
		ID:          uuid.New().String(),
		ChecklistID: checklistID,
		Title:       title,
		Description: description,
		Status:      models.ItemPending,
		Position:    position,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.checklists.AddItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// SetItemStatus is the staff-side override: any valid status may be set,
// including uploaded.
func (s *ChecklistService) SetItemStatus(ctx context.Context, itemID, status string) (*models.ChecklistItem, error) {
	if !models.ValidItemStatus(status) {
		return nil, validationf("invalid item status %q", status)
	}
	if err := s.checklists.SetItemStatus(ctx, itemID, status); err != nil {
		return nil, err
	}
	return s.checklists.FindItem(ctx, itemID)
}

func (s *ChecklistService) DeleteItem(ctx context.Context, itemID string) error {
	return s.checklists.DeleteItem(ctx, itemID)
}

func (s *ChecklistService) ReorderItems(ctx context.Context, checklistID string, orderedIDs []string) error {
	cl, err := s.checklists.FindByID(ctx, checklistID)
	if err != nil {
		return err
	}
	if len(orderedIDs) != len(cl.Items) {
		return validationf("expected %d item ids, got %d", len(cl.Items), len(orderedIDs))
	}
	return s.checklists.ReorderItems(ctx, checklistID, orderedIDs)
}
