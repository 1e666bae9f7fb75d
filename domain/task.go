package domain

import "time"

// TaskStatus is the workflow state of a task.
type TaskStatus string

const (
	StatusToDo       TaskStatus = "ToDo"
	StatusInProgress TaskStatus = "InProgress"
	StatusBlocked    TaskStatus = "Blocked"
	StatusCompleted  TaskStatus = "Completed"
)

// ParseTaskStatus accepts only the exact enumeration spellings.
func ParseTaskStatus(raw string) (TaskStatus, error) {
	switch s := TaskStatus(raw); s {
	case StatusToDo, StatusInProgress, StatusBlocked, StatusCompleted:
		return s, nil
	default:
		return "", ErrInvalidStatus
	}
}

// IsOpen reports whether the status counts as outstanding work.
func (s TaskStatus) IsOpen() bool {
	return s != StatusCompleted
}

// Priority ranks a task relative to its siblings.
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

func ParsePriority(raw string) (Priority, error) {
	switch p := Priority(raw); p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return p, nil
	default:
		return "", ErrInvalidPriority
	}
}

const (
	MinComplexity = 1
	MaxComplexity = 5
)

// ParseComplexity checks the estimate lies within [MinComplexity, MaxComplexity].
func ParseComplexity(value int) (int, error) {
	if value < MinComplexity || value > MaxComplexity {
		return 0, ErrInvalidComplexity
	}
	return value, nil
}

// Task is a unit of work inside a project, assigned to one developer.
type Task struct {
	ID                  int64      `json:"taskId"`
	ProjectID           int64      `json:"projectId"`
	Title               string     `json:"title"`
	Description         *string    `json:"description,omitempty"`
	AssigneeID          int64      `json:"assigneeId"`
	AssigneeName        string     `json:"assigneeName"`
	Status              TaskStatus `json:"status"`
	Priority            Priority   `json:"priority"`
	EstimatedComplexity int        `json:"estimatedComplexity"`
	DueDate             time.Time  `json:"dueDate"`
	CompletionDate      *time.Time `json:"completionDate,omitempty"`
	CreatedAt           time.Time  `json:"createdAt"`
}

func (t *Task) IsCompleted() bool {
	return t != nil && t.Status == StatusCompleted
}

// TransitionTo moves the task to status, keeping the completion date set
// exactly while the task is Completed. An existing completion date survives
// a Completed -> Completed update.
func (t *Task) TransitionTo(status TaskStatus, now time.Time) {
	if t == nil {
		return
	}
	t.Status = status
	if status == StatusCompleted {
		if t.CompletionDate == nil {
			completed := now
			t.CompletionDate = &completed
		}
		return
	}
	t.CompletionDate = nil
}
