package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidItemStatus(t *testing.T) {
	for _, s := range []string{ItemPending, ItemUploaded, ItemAlreadyProvided, ItemNotApplicable} {
		assert.True(t, ValidItemStatus(s), s)
	}
	assert.False(t, ValidItemStatus("done"))
	assert.False(t, ValidItemStatus(""))
}

func TestPortalSettableStatus(t *testing.T) {
	assert.True(t, PortalSettableStatus(ItemPending))
	assert.True(t, PortalSettableStatus(ItemAlreadyProvided))
	assert.True(t, PortalSettableStatus(ItemNotApplicable))
	assert.False(t, PortalSettableStatus(ItemUploaded), "uploaded is reserved for the upload flow")
}

func TestProgress(t *testing.T) {
	items := []ChecklistItem{
		{Status: ItemPending},
		{Status: ItemUploaded},
		{Status: ItemUploaded},
		{Status: ItemNotApplicable},
	}
	counts := Progress(items)
	assert.Equal(t, 1, counts[ItemPending])
	assert.Equal(t, 2, counts[ItemUploaded])
	assert.Equal(t, 0, counts[ItemAlreadyProvided])
	assert.Equal(t, 1, counts[ItemNotApplicable])
}

func TestProgressEmpty(t *testing.T) {
	counts := Progress(nil)
	assert.Equal(t, 0, counts[ItemPending])
	assert.Len(t, counts, 4, "all statuses present even with no items")
}

func TestNextUnblocked(t *testing.T) {
	tasks := []Task{
		{ID: "a", Position: 0, Status: TaskCompleted},
		{ID: "b", Position: 1, Status: TaskBlocked},
		{ID: "c", Position: 2, Status: TaskBlocked},
	}
	next := NextUnblocked(tasks, 0)
	require.NotNil(t, next)
	assert.Equal(t, "b", next.ID, "lowest-position blocked task after the completed one")
}

func TestNextUnblockedNothingToDo(t *testing.T) {
	tasks := []Task{
		{ID: "a", Position: 0, Status: TaskCompleted},
		{ID: "b", Position: 1, Status: TaskPending},
	}
	assert.Nil(t, NextUnblocked(tasks, 0))
}

func TestNextUnblockedIgnoresEarlierBlocked(t *testing.T) {
	tasks := []Task{
		{ID: "a", Position: 0, Status: TaskBlocked},
		{ID: "b", Position: 1, Status: TaskCompleted},
		{ID: "c", Position: 2, Status: TaskBlocked},
	}
	next := NextUnblocked(tasks, 1)
	require.NotNil(t, next)
	assert.Equal(t, "c", next.ID)
}

func TestReblocked(t *testing.T) {
	tasks := []Task{
		{ID: "a", Position: 0, Status: TaskCompleted},
		{ID: "b", Position: 1, Status: TaskPending},
		{ID: "c", Position: 2, Status: TaskPending},
		{ID: "d", Position: 3, Status: TaskCompleted},
	}
	re := Reblocked(tasks, 0)
	require.Len(t, re, 2, "pending tasks after the reopened position re-block")
	assert.Equal(t, "b", re[0].ID)
	assert.Equal(t, "c", re[1].ID)
}

func TestInitialStatusSequential(t *testing.T) {
	siblings := []Task{
		{Position: 0, Status: TaskCompleted},
		{Position: 1, Status: TaskBlocked},
	}
	assert.Equal(t, TaskBlocked, InitialStatus(true, siblings),
		"appending behind an incomplete chain starts blocked")

	allDone := []Task{
		{Position: 0, Status: TaskCompleted},
		{Position: 1, Status: TaskCompleted},
	}
	assert.Equal(t, TaskPending, InitialStatus(true, allDone))
	assert.Equal(t, TaskPending, InitialStatus(true, nil), "first task of the chain")
}

func TestInitialStatusParallel(t *testing.T) {
	siblings := []Task{
		{Position: 0, Status: TaskPending},
		{Position: 1, Status: TaskInProgress},
	}
	assert.Equal(t, TaskPending, InitialStatus(false, siblings))
}

func TestTransitionRefused(t *testing.T) {
	assert.True(t, TransitionRefused(true, TaskBlocked, TaskInProgress))
	assert.True(t, TransitionRefused(true, TaskBlocked, TaskCompleted))
	assert.False(t, TransitionRefused(true, TaskBlocked, TaskBlocked))
	assert.False(t, TransitionRefused(true, TaskPending, TaskInProgress))
	assert.False(t, TransitionRefused(false, TaskBlocked, TaskCompleted),
		"blocked is advisory outside sequential projects")
}

func TestHeldState(t *testing.T) {
	state, held := HeldState(ProjectActive)
	assert.Equal(t, ProjectOnHold, state)
	assert.True(t, held)

	for _, s := range []string{ProjectOnHold, ProjectCompleted, ProjectArchived} {
		state, held := HeldState(s)
		assert.Equal(t, s, state, s)
		assert.False(t, held, s)
	}
}

func TestValidTaskStatus(t *testing.T) {
	for _, s := range []string{TaskPending, TaskInProgress, TaskBlocked, TaskCompleted} {
		assert.True(t, ValidTaskStatus(s), s)
	}
	assert.False(t, ValidTaskStatus("cancelled"))
}

func TestValidProjectState(t *testing.T) {
	for _, s := range []string{ProjectActive, ProjectOnHold, ProjectCompleted, ProjectArchived} {
		assert.True(t, ValidProjectState(s), s)
	}
	assert.False(t, ValidProjectState("paused"))
}

func TestValidPriority(t *testing.T) {
	assert.True(t, ValidPriority(PriorityUrgent))
	assert.False(t, ValidPriority("critical"))
}
