package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/keshav84652/workflow-management/internal/models"
	"github.com/keshav84652/workflow-management/internal/repository"
)

type TaskService struct {
	tasks    *repository.TaskRepo
	projects *repository.ProjectRepo
	logger   *zap.Logger
}

func NewTaskService(tasks *repository.TaskRepo, projects *repository.ProjectRepo, logger *zap.Logger) *TaskService {
	return &TaskService{tasks: tasks, projects: projects, logger: logger}
}

type TaskInput struct {
	ProjectID   string     `json:"projectId"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Priority    string     `json:"priority"`
	AssigneeID  *string    `json:"assigneeId"`
	DueDate     *time.Time `json:"dueDate"`
}

func (s *TaskService) Create(ctx context.Context, in TaskInput) (*models.Task, error) {
	if in.Title == "" {
		return nil, validationf("task title is required")
	}
	if in.ProjectID == "" {
		return nil, validationf("project is required")
	}
	project, err := s.projects.FindByID(ctx, in.ProjectID)
	if err != nil {
		return nil, validationf("project not found")
	}

	priority := in.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}
	if !models.ValidPriority(priority) {
		return nil, validationf("invalid priority %q", in.Priority)
	}

	existing, err := s.tasks.ListByProject(ctx, in.ProjectID)
	if err != nil {
		return nil, err
	}
	position := 0
	for _, t := range existing {
		if t.Position >= position {
			position = t.Position + 1
		}
	}

	now := time.Now().UTC()
	task := &models.Task{
		ID:          uuid.New().String(),
		ProjectID:   in.ProjectID,
		Title:       in.Title,
		Description: in.Description,
		Status:      models.InitialStatus(project.IsSequential, existing),
		Priority:    priority,
		AssigneeID:  in.AssigneeID,
		Position:    position,
		DueDate:     in.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskService) Get(ctx context.Context, id string) (*models.Task, error) {
	return s.tasks.FindByID(ctx, id)
}

func (s *TaskService) List(ctx context.Context, f repository.TaskFilter) ([]models.Task, error) {
	if f.Status != "" && !models.ValidTaskStatus(f.Status) {
		return nil, validationf("invalid status %q", f.Status)
	}
	return s.tasks.List(ctx, f)
}

type TaskUpdate struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Priority    string     `json:"priority"`
	AssigneeID  *string    `json:"assigneeId"`
	DueDate     *time.Time `json:"dueDate"`
}

func (s *TaskService) Update(ctx context.Context, id string, in TaskUpdate) (*models.Task, error) {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Title != "" {
		task.Title = in.Title
	}
	task.Description = in.Description
	if in.Priority != "" {
		if !models.ValidPriority(in.Priority) {
			return nil, validationf("invalid priority %q", in.Priority)
		}
		task.Priority = in.Priority
	}
	task.AssigneeID = in.AssigneeID
	task.DueDate = in.DueDate
	task.UpdatedAt = time.Now().UTC()

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// SetStatus updates a task's status. In sequential projects, completing a
// task unblocks its successor and reopening a completed task re-blocks the
// still-pending tasks after it.
func (s *TaskService) SetStatus(ctx context.Context, id, status string) (*models.Task, error) {
	if !models.ValidTaskStatus(status) {
		return nil, validationf("invalid status %q", status)
	}
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	project, err := s.projects.FindByID(ctx, task.ProjectID)
	if err != nil {
		return nil, err
	}
	if models.TransitionRefused(project.IsSequential, task.Status, status) {
		return nil, validationf("task is blocked until its predecessors complete")
	}

	wasCompleted := task.Status == models.TaskCompleted
	if err := s.tasks.SetStatus(ctx, id, status); err != nil {
		return nil, err
	}

	if project.IsSequential {
		siblings, err := s.tasks.ListByProject(ctx, task.ProjectID)
		if err != nil {
			return nil, err
		}
		switch {
		case status == models.TaskCompleted && !wasCompleted:
			if next := models.NextUnblocked(siblings, task.Position); next != nil {
				if err := s.tasks.SetStatus(ctx, next.ID, models.TaskPending); err != nil {
					return nil, err
				}
				s.logger.Info("sequential task unblocked",
					zap.String("project_id", task.ProjectID),
					zap.String("task_id", next.ID),
				)
			}
		case status != models.TaskCompleted && wasCompleted:
			for _, re := range models.Reblocked(siblings, task.Position) {
				if err := s.tasks.SetStatus(ctx, re.ID, models.TaskBlocked); err != nil {
					return nil, err
				}
			}
		}
	}

	return s.tasks.FindByID(ctx, id)
}

func (s *TaskService) Delete(ctx context.Context, id string) error {
	return s.tasks.Delete(ctx, id)
}
