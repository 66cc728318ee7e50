package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/keshav84652/workflow-management/internal/models"
	"github.com/keshav84652/workflow-management/internal/repository"
)

type ProjectService struct {
	projects  *repository.ProjectRepo
	tasks     *repository.TaskRepo
	workTypes *repository.WorkTypeRepo
	templates *repository.TemplateRepo
	clients   *repository.ClientRepo
	logger    *zap.Logger
}

func NewProjectService(
	projects *repository.ProjectRepo,
	tasks *repository.TaskRepo,
	workTypes *repository.WorkTypeRepo,
	templates *repository.TemplateRepo,
	clients *repository.ClientRepo,
	logger *zap.Logger,
) *ProjectService {
	return &ProjectService{
		projects:  projects,
		tasks:     tasks,
		workTypes: workTypes,
		templates: templates,
		clients:   clients,
		logger:    logger,
	}
}

type ProjectInput struct {
	ClientID   string     `json:"clientId"`
	WorkTypeID string     `json:"workTypeId"`
	Name       string     `json:"name"`
	Priority   string     `json:"priority"`
	DueDate    *time.Time `json:"dueDate"`
	TemplateID string     `json:"templateId"`
}

func (s *ProjectService) Create(ctx context.Context, in ProjectInput) (*models.Project, error) {
	if in.Name == "" {
		return nil, validationf("project name is required")
	}
	if in.ClientID == "" || in.WorkTypeID == "" {
		return nil, validationf("client and work type are required")
	}
	client, err := s.clients.FindByID(ctx, in.ClientID)
	if err != nil {
		return nil, validationf("client not found")
	}
	if !client.IsActive {
		return nil, validationf("cannot create a project for an inactive client")
	}
	workType, err := s.workTypes.FindByID(ctx, in.WorkTypeID)
	if err != nil {
		return nil, validationf("work type not found")
	}
	if !workType.IsActive {
		return nil, validationf("work type %q is inactive", workType.Name)
	}
	defaultStatus, err := s.workTypes.DefaultStatus(ctx, in.WorkTypeID)
	if err != nil {
		return nil, validationf("work type %q has no default status", workType.Name)
	}

	priority := in.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}
	if !models.ValidPriority(priority) {
		return nil, validationf("invalid priority %q", in.Priority)
	}

	now := time.Now().UTC()
	project := &models.Project{
		ID:         uuid.New().String(),
		ClientID:   in.ClientID,
		WorkTypeID: in.WorkTypeID,
		Name:       in.Name,
		StatusID:   defaultStatus.ID,
		State:      models.ProjectActive,
		Priority:   priority,
		DueDate:    in.DueDate,
		ClientName: client.Name,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	var template *models.Template
	if in.TemplateID != "" {
		template, err = s.templates.FindByID(ctx, in.TemplateID)
		if err != nil {
			return nil, validationf("template not found")
		}
		if template.WorkTypeID != in.WorkTypeID {
			return nil, validationf("template %q belongs to a different work type", template.Name)
		}
		project.TemplateID = &template.ID
		project.IsSequential = template.IsSequential
	}

	if err := s.projects.Create(ctx, project); err != nil {
		return nil, err
	}

	if template != nil && len(template.Tasks) > 0 {
		tasks := InstantiateTasks(template, project.ID, now)
		if err := s.tasks.CreateBatch(ctx, tasks); err != nil {
			return nil, err
		}
		s.logger.Info("project instantiated from template",
			zap.String("project_id", project.ID),
			zap.String("template_id", template.ID),
			zap.Int("tasks", len(tasks)),
		)
	}

	return project, nil
}

// InstantiateTasks turns a template's ordered tasks into concrete project
// tasks. In a sequential template everything after the first task starts
// blocked.
func InstantiateTasks(t *models.Template, projectID string, now time.Time) []models.Task {
	tasks := make([]models.Task, 0, len(t.Tasks))
	for i, tt := range t.Tasks {
		status := models.TaskPending
		if t.IsSequential && i > 0 {
			status = models.TaskBlocked
		}
		tasks = append(tasks, models.Task{
			ID:          uuid.New().String(),
			ProjectID:   projectID,
			Title:       tt.Title,
			Description: tt.Description,
			Status:      status,
			Priority:    tt.Priority,
			Position:    i,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}
	return tasks
}

func (s *ProjectService) Get(ctx context.Context, id string) (*models.Project, error) {
	return s.projects.FindByID(ctx, id)
}

func (s *ProjectService) List(ctx context.Context, f repository.ProjectFilter) ([]models.Project, error) {
	if f.State != "" && !models.ValidProjectState(f.State) {
		return nil, validationf("invalid state %q", f.State)
	}
	return s.projects.List(ctx, f)
}

type ProjectUpdate struct {
	Name     string     `json:"name"`
	Priority string     `json:"priority"`
	DueDate  *time.Time `json:"dueDate"`
}

func (s *ProjectService) Update(ctx context.Context, id string, in ProjectUpdate) (*models.Project, error) {
	project, err := s.projects.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != "" {
		project.Name = in.Name
	}
	if in.Priority != "" {
		if !models.ValidPriority(in.Priority) {
			return nil, validationf("invalid priority %q", in.Priority)
		}
		project.Priority = in.Priority
	}
	project.DueDate = in.DueDate
	project.UpdatedAt = time.Now().UTC()

	if err := s.projects.Update(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// MoveStatus is the kanban drag-and-drop operation. The target status must
// belong to the project's work type; landing on a terminal status completes
// the project, leaving one reactivates it.
func (s *ProjectService) MoveStatus(ctx context.Context, projectID, statusID string) (*models.Project, error) {
	project, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	target, err := s.workTypes.FindStatus(ctx, statusID)
	if err != nil {
		return nil, validationf("status not found")
	}
	if target.WorkTypeID != project.WorkTypeID {
		return nil, validationf("status %q belongs to a different work type", target.Name)
	}

	state := NextProjectState(project.State, target.IsTerminal)
	if err := s.projects.MoveStatus(ctx, projectID, statusID, state); err != nil {
		return nil, err
	}
	project.StatusID = statusID
	project.State = state
	return project, nil
}

// NextProjectState decides the lifecycle state after a kanban move.
// Archived and on-hold projects keep their state unless the move completes
// them; leaving a terminal column always reactivates.
func NextProjectState(current string, targetTerminal bool) string {
	if targetTerminal {
		return models.ProjectCompleted
	}
	if current == models.ProjectCompleted {
		return models.ProjectActive
	}
	return current
}

func (s *ProjectService) SetState(ctx context.Context, id, state string) error {
	if !models.ValidProjectState(state) {
		return validationf("invalid state %q", state)
	}
	return s.projects.SetState(ctx, id, state)
}

// Archive is the project's soft delete.
func (s *ProjectService) Archive(ctx context.Context, id string) error {
	return s.projects.SetState(ctx, id, models.ProjectArchived)
}

type KanbanColumn struct {
	Status   models.TaskStatus `json:"status"`
	Projects []models.Project  `json:"projects"`
}

// Kanban returns a work type's board: one column per status in position
// order, each holding its non-archived projects.
func (s *ProjectService) Kanban(ctx context.Context, workTypeID string) ([]KanbanColumn, error) {
	if _, err := s.workTypes.FindByID(ctx, workTypeID); err != nil {
		return nil, err
	}
	statuses, err := s.workTypes.ListStatuses(ctx, workTypeID)
	if err != nil {
		return nil, err
	}
	projects, err := s.projects.List(ctx, repository.ProjectFilter{WorkTypeID: workTypeID})
	if err != nil {
		return nil, err
	}
	return BuildKanban(statuses, projects), nil
}

// BuildKanban groups projects into status columns. Archived projects are
// hidden; empty columns are kept so the board renders every stage.
func BuildKanban(statuses []models.TaskStatus, projects []models.Project) []KanbanColumn {
	columns := make([]KanbanColumn, len(statuses))
	index := make(map[string]int, len(statuses))
	for i, st := range statuses {
		columns[i] = KanbanColumn{Status: st, Projects: []models.Project{}}
		index[st.ID] = i
	}
	for _, p := range projects {
		if p.State == models.ProjectArchived {
			continue
		}
		if i, ok := index[p.StatusID]; ok {
			columns[i].Projects = append(columns[i].Projects, p)
		}
	}
	return columns
}
