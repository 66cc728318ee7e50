package models

import "time"

const (
	TaskPending    = "pending"
	TaskInProgress = "in_progress"
	TaskBlocked    = "blocked"
	TaskCompleted  = "completed"
)

type Task struct {
	ID          string     `json:"id"`
	ProjectID   string     `json:"projectId"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	AssigneeID  *string    `json:"assigneeId,omitempty"`
	Position    int        `json:"position"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func ValidTaskStatus(s string) bool {
	switch s {
	case TaskPending, TaskInProgress, TaskBlocked, TaskCompleted:
		return true
	}
	return false
}

// InitialStatus decides the status a newly added task starts in. On a
// sequential project a new task appends to the end of the chain, so it
// starts blocked unless every existing task is already completed.
func InitialStatus(sequential bool, siblings []Task) string {
	if !sequential {
		return TaskPending
	}
	for _, t := range siblings {
		if t.Status != TaskCompleted {
			return TaskBlocked
		}
	}
	return TaskPending
}

// TransitionRefused reports whether a status change on a blocked task must
// be rejected. In sequential projects unblocking happens only through
// predecessor completion, never by setting the status directly.
func TransitionRefused(sequential bool, current, target string) bool {
	return sequential && current == TaskBlocked && target != TaskBlocked
}

// NextUnblocked returns the task that becomes actionable after completing
// the task at completedPos in a sequential project: the lowest-position
// blocked task after it. Returns nil when nothing needs unblocking.
func NextUnblocked(tasks []Task, completedPos int) *Task {
	var next *Task
	for i := range tasks {
		t := &tasks[i]
		if t.Status != TaskBlocked || t.Position <= completedPos {
			continue
		}
		if next == nil || t.Position < next.Position {
			next = t
		}
	}
	return next
}

// Reblocked returns the tasks that must return to blocked after a task at
// reopenedPos is reopened in a sequential project: every pending task at a
// later position.
func Reblocked(tasks []Task, reopenedPos int) []Task {
	var out []Task
	for _, t := range tasks {
		if t.Position > reopenedPos && t.Status == TaskPending {
			out = append(out, t)
		}
	}
	return out
}
