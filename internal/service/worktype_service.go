package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/keshav84652/workflow-management/internal/models"
	"github.com/keshav84652/workflow-management/internal/repository"
)

type WorkTypeService struct {
	workTypes *repository.WorkTypeRepo
}

func NewWorkTypeService(workTypes *repository.WorkTypeRepo) *WorkTypeService {
	return &WorkTypeService{workTypes: workTypes}
}

type WorkTypeInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (s *WorkTypeService) Create(ctx context.Context, in WorkTypeInput) (*models.WorkType, error) {
	if in.Name == "" {
		return nil, validationf("work type name is required")
	}
	wt := &models.WorkType{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Description: in.Description,
		IsActive:    true,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.workTypes.Create(ctx, wt); err != nil {
		return nil, err
	}
	return wt, nil
}

func (s *WorkTypeService) Update(ctx context.Context, id string, in WorkTypeInput) (*models.WorkType, error) {
	if in.Name == "" {
		return nil, validationf("work type name is required")
	}
	wt, err := s.workTypes.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	wt.Name = in.Name
	wt.Description = in.Description
	if err := s.workTypes.Update(ctx, wt); err != nil {
		return nil, err
	}
	return wt, nil
}

func (s *WorkTypeService) Get(ctx context.Context, id string) (*models.WorkType, error) {
	return s.workTypes.FindByID(ctx, id)
}

func (s *WorkTypeService) List(ctx context.Context) ([]models.WorkType, error) {
	return s.workTypes.List(ctx)
}

// Deactivate hides a work type from new projects. Referenced work types
// are never deleted, only deactivated.
func (s *WorkTypeService) Deactivate(ctx context.Context, id string) error {
	wt, err := s.workTypes.FindByID(ctx, id)
	if err != nil {
		return err
	}
	wt.IsActive = false
	return s.workTypes.Update(ctx, wt)
}

type StatusInput struct {
	Name       string `json:"name"`
	Color      string `json:"color"`
	Position   int    `json:"position"`
	IsDefault  bool   `json:"isDefault"`
	IsTerminal bool   `json:"isTerminal"`
}

func (s *WorkTypeService) CreateStatus(ctx context.Context, workTypeID string, in StatusInput) (*models.TaskStatus, error) {
	if in.Name == "" {
		return nil, validationf("status name is required")
	}
	if _, err := s.workTypes.FindByID(ctx, workTypeID); err != nil {
		return nil, err
	}
	existing, err := s.workTypes.ListStatuses(ctx, workTypeID)
	if err != nil {
		return nil, err
	}
	// First status of a work type becomes the default no matter what.
	isDefault := in.IsDefault || len(existing) == 0

	status := &models.TaskStatus{
		ID:         uuid.New().String(),
		WorkTypeID: workTypeID,
		Name:       in.Name,
		Color:      in.Color,
		Position:   in.Position,
		IsDefault:  isDefault,
		IsTerminal: in.IsTerminal,
	}
	if status.Color == "" {
		status.Color = "#808080"
	}
	if err := s.workTypes.CreateStatus(ctx, status); err != nil {
		return nil, err
	}
	return status, nil
}

func (s *WorkTypeService) UpdateStatus(ctx context.Context, statusID string, in StatusInput) (*models.TaskStatus, error) {
	if in.Name == "" {
		return nil, validationf("status name is required")
	}
	status, err := s.workTypes.FindStatus(ctx, statusID)
	if err != nil {
		return nil, err
	}
	if status.IsDefault && !in.IsDefault {
		return nil, validationf("cannot unset the default status; set another status as default instead")
	}
	status.Name = in.Name
	if in.Color != "" {
		status.Color = in.Color
	}
	status.Position = in.Position
	status.IsDefault = in.IsDefault
	status.IsTerminal = in.IsTerminal

	if err := s.workTypes.UpdateStatus(ctx, status); err != nil {
		return nil, err
	}
	return status, nil
}

func (s *WorkTypeService) ListStatuses(ctx context.Context, workTypeID string) ([]models.TaskStatus, error) {
	if _, err := s.workTypes.FindByID(ctx, workTypeID); err != nil {
		return nil, err
	}
	return s.workTypes.ListStatuses(ctx, workTypeID)
}

func (s *WorkTypeService) DeleteStatus(ctx context.Context, statusID string) error {
	status, err := s.workTypes.FindStatus(ctx, statusID)
	if err != nil {
		return err
	}
	if status.IsDefault {
		return validationf("cannot delete the default status")
	}
	inUse, err := s.workTypes.StatusInUse(ctx, statusID)
	if err != nil {
		return err
	}
	if inUse {
		return validationf("status is in use by projects and cannot be deleted")
	}
	return s.workTypes.DeleteStatus(ctx, statusID)
}

func (s *WorkTypeService) ReorderStatuses(ctx context.Context, workTypeID string, orderedIDs []string) error {
	if len(orderedIDs) == 0 {
		return validationf("status order is required")
	}
	return s.workTypes.ReorderStatuses(ctx, workTypeID, orderedIDs)
}
