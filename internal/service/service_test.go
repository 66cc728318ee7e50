package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keshav84652/workflow-management/internal/models"
)

func TestInstantiateTasksSequential(t *testing.T) {
	tpl := &models.Template{
		ID:           "tpl-1",
		IsSequential: true,
		Tasks: []models.TemplateTask{
			{Title: "Collect documents", Priority: models.PriorityHigh},
			{Title: "Prepare return", Priority: models.PriorityMedium},
			{Title: "Review", Priority: models.PriorityMedium},
		},
	}
	now := time.Now().UTC()

	tasks := InstantiateTasks(tpl, "proj-1", now)
	require.Len(t, tasks, 3)

	assert.Equal(t, models.TaskPending, tasks[0].Status)
	assert.Equal(t, models.TaskBlocked, tasks[1].Status)
	assert.Equal(t, models.TaskBlocked, tasks[2].Status)
	for i, task := range tasks {
		assert.Equal(t, "proj-1", task.ProjectID)
		assert.Equal(t, i, task.Position)
		assert.NotEmpty(t, task.ID)
	}
}

func TestInstantiateTasksParallel(t *testing.T) {
	tpl := &models.Template{
		ID: "tpl-2",
		Tasks: []models.TemplateTask{
			{Title: "Gather W-2s", Priority: models.PriorityMedium},
			{Title: "Gather 1099s", Priority: models.PriorityMedium},
		},
	}

	tasks := InstantiateTasks(tpl, "proj-2", time.Now().UTC())
	require.Len(t, tasks, 2)
	for _, task := range tasks {
		assert.Equal(t, models.TaskPending, task.Status)
	}
}

func TestNextProjectState(t *testing.T) {
	cases := []struct {
		name           string
		current        string
		targetTerminal bool
		want           string
	}{
		{"active to terminal completes", models.ProjectActive, true, models.ProjectCompleted},
		{"active stays active", models.ProjectActive, false, models.ProjectActive},
		{"completed leaving terminal reactivates", models.ProjectCompleted, false, models.ProjectActive},
		{"completed staying terminal", models.ProjectCompleted, true, models.ProjectCompleted},
		{"on hold keeps state", models.ProjectOnHold, false, models.ProjectOnHold},
		{"on hold to terminal completes", models.ProjectOnHold, true, models.ProjectCompleted},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NextProjectState(tc.current, tc.targetTerminal))
		})
	}
}

func TestBuildKanban(t *testing.T) {
	statuses := []models.TaskStatus{
		{ID: "st-1", Name: "Awaiting Documents", Position: 0},
		{ID: "st-2", Name: "In Preparation", Position: 1},
		{ID: "st-3", Name: "Filed", Position: 2, IsTerminal: true},
	}
	projects := []models.Project{
		{ID: "p-1", StatusID: "st-1", State: models.ProjectActive},
		{ID: "p-2", StatusID: "st-1", State: models.ProjectActive},
		{ID: "p-3", StatusID: "st-3", State: models.ProjectCompleted},
		{ID: "p-4", StatusID: "st-2", State: models.ProjectArchived},
	}

	columns := BuildKanban(statuses, projects)
	require.Len(t, columns, 3)

	assert.Len(t, columns[0].Projects, 2)
	assert.Empty(t, columns[1].Projects, "archived projects are hidden")
	require.Len(t, columns[2].Projects, 1)
	assert.Equal(t, "p-3", columns[2].Projects[0].ID)
}

func TestBuildKanbanKeepsEmptyColumns(t *testing.T) {
	statuses := []models.TaskStatus{
		{ID: "st-1", Name: "Awaiting Documents"},
		{ID: "st-2", Name: "Filed", IsTerminal: true},
	}

	columns := BuildKanban(statuses, nil)
	require.Len(t, columns, 2)
	for _, col := range columns {
		assert.NotNil(t, col.Projects)
		assert.Empty(t, col.Projects)
	}
}

func TestBuildTemplateTasks(t *testing.T) {
	svc := &TemplateService{}

	tasks, err := svc.buildTasks("tpl-1", []TemplateTaskInput{
		{Title: "Collect documents", EstimatedHours: "1.5"},
		{Title: "Prepare return", Priority: models.PriorityHigh},
	})
	require.NoError(t, err)
	require.Len(t, tasks, 2)

	assert.Equal(t, 0, tasks[0].Position)
	assert.Equal(t, models.PriorityMedium, tasks[0].Priority)
	require.NotNil(t, tasks[0].EstimatedHours)
	assert.Equal(t, "1.5", tasks[0].EstimatedHours.String())
	assert.Nil(t, tasks[1].EstimatedHours)
	assert.Equal(t, models.PriorityHigh, tasks[1].Priority)
}

func TestBuildTemplateTasksValidation(t *testing.T) {
	svc := &TemplateService{}

	_, err := svc.buildTasks("tpl-1", []TemplateTaskInput{{Title: ""}})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	_, err = svc.buildTasks("tpl-1", []TemplateTaskInput{{Title: "x", Priority: "urgent-ish"}})
	require.ErrorAs(t, err, &verr)

	_, err = svc.buildTasks("tpl-1", []TemplateTaskInput{{Title: "x", EstimatedHours: "-2"}})
	require.ErrorAs(t, err, &verr)

	_, err = svc.buildTasks("tpl-1", []TemplateTaskInput{{Title: "x", EstimatedHours: "abc"}})
	require.ErrorAs(t, err, &verr)
}

func TestAllowedFileName(t *testing.T) {
	assert.True(t, AllowedFileName("w2-2025.pdf"))
	assert.True(t, AllowedFileName("Scan.JPG"))
	assert.True(t, AllowedFileName("ledger.xlsx"))
	assert.False(t, AllowedFileName("payload.exe"))
	assert.False(t, AllowedFileName("archive.zip"))
	assert.False(t, AllowedFileName("noextension"))
}

func TestDetectContentType(t *testing.T) {
	assert.Equal(t, "application/pdf", DetectContentType("return.pdf"))
	assert.Equal(t, "image/jpeg", DetectContentType("scan.JPEG"))
	assert.Equal(t, "text/csv", DetectContentType("transactions.csv"))
	assert.Equal(t, "application/octet-stream", DetectContentType("mystery.bin"))
}
