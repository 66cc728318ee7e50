package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/keshav84652/workflow-management/internal/models"
	"github.com/keshav84652/workflow-management/internal/repository"
)

type TemplateService struct {
	templates *repository.TemplateRepo
	workTypes *repository.WorkTypeRepo
}

func NewTemplateService(templates *repository.TemplateRepo, workTypes *repository.WorkTypeRepo) *TemplateService {
	return &TemplateService{templates: templates, workTypes: workTypes}
}

type TemplateTaskInput struct {
	Title          string `json:"title"`
	Description    string `json:"description"`
	EstimatedHours string `json:"estimatedHours"`
	Priority       string `json:"priority"`
}

type TemplateInput struct {
	Name         string              `json:"name"`
	Description  string              `json:"description"`
	WorkTypeID   string              `json:"workTypeId"`
	IsSequential bool                `json:"isSequential"`
	Tasks        []TemplateTaskInput `json:"tasks"`
}

func (s *TemplateService) buildTasks(templateID string, inputs []TemplateTaskInput) ([]models.TemplateTask, error) {
	tasks := make([]models.TemplateTask, 0, len(inputs))
	for i, in := range inputs {
		if in.Title == "" {
			return nil, validationf("template task %d: title is required", i+1)
		}
		priority := in.Priority
		if priority == "" {
			priority = models.PriorityMedium
		}
		if !models.ValidPriority(priority) {
			return nil, validationf("template task %d: invalid priority %q", i+1, in.Priority)
		}
		tt := models.TemplateTask{
			ID:          uuid.New().String(),
			TemplateID:  templateID,
			Title:       in.Title,
			Description: in.Description,
			Position:    i,
			Priority:    priority,
		}
		if in.EstimatedHours != "" {
			d, err := decimal.NewFromString(in.EstimatedHours)
			if err != nil || d.IsNegative() {
				return nil, validationf("template task %d: invalid estimated hours %q", i+1, in.EstimatedHours)
			}
			tt.EstimatedHours = &d
		}
		tasks = append(tasks, tt)
	}
	return tasks, nil
}

func (s *TemplateService) Create(ctx context.Context, in TemplateInput) (*models.Template, error) {
	if in.Name == "" {
		return nil, validationf("template name is required")
	}
	if _, err := s.workTypes.FindByID(ctx, in.WorkTypeID); err != nil {
		return nil, validationf("work type not found")
	}

	id := uuid.New().String()
	tasks, err := s.buildTasks(id, in.Tasks)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	t := &models.Template{
		ID:           id,
		Name:         in.Name,
		Description:  in.Description,
		WorkTypeID:   in.WorkTypeID,
		IsSequential: in.IsSequential,
		Tasks:        tasks,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.templates.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TemplateService) Update(ctx context.Context, id string, in TemplateInput) (*models.Template, error) {
	if in.Name == "" {
		return nil, validationf("template name is required")
	}
	t, err := s.templates.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.WorkTypeID != "" && in.WorkTypeID != t.WorkTypeID {
		if _, err := s.workTypes.FindByID(ctx, in.WorkTypeID); err != nil {
			return nil, validationf("work type not found")
		}
		t.WorkTypeID = in.WorkTypeID
	}
	tasks, err := s.buildTasks(id, in.Tasks)
	if err != nil {
		return nil, err
	}

	t.Name = in.Name
	t.Description = in.Description
	t.IsSequential = in.IsSequential
	t.Tasks = tasks
	t.UpdatedAt = time.Now().UTC()

	if err := s.templates.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TemplateService) Get(ctx context.Context, id string) (*models.Template, error) {
	return s.templates.FindByID(ctx, id)
}

func (s *TemplateService) List(ctx context.Context) ([]models.Template, error) {
	return s.templates.List(ctx)
}

func (s *TemplateService) Delete(ctx context.Context, id string) error {
	return s.templates.Delete(ctx, id)
}
