package transport

import (
	"strings"
	"time"
)

// CreateTaskRequest is the body of POST /api/tasks. Pointer fields are optional.
type CreateTaskRequest struct {
	ProjectID           int64   `json:"projectId"`
	AssigneeID          int64   `json:"assigneeId"`
	Title               string  `json:"title"`
	Description         *string `json:"description"`
	Status              *string `json:"status"`
	Priority            *string `json:"priority"`
	EstimatedComplexity *int    `json:"estimatedComplexity"`
	DueDate             *Date   `json:"dueDate"`
	CompletionDate      *Date   `json:"completionDate"`
}

// UpdateTaskStatusRequest is the body of PUT /api/tasks/{id}/status.
type UpdateTaskStatusRequest struct {
	Status              string  `json:"status"`
	Priority            *string `json:"priority"`
	EstimatedComplexity *int    `json:"estimatedComplexity"`
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02",
}

// Date accepts RFC3339 timestamps, zone-less timestamps (read as UTC) and plain dates.
type Date struct {
	time.Time
}

func (d *Date) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	if raw == "" || raw == "null" {
		d.Time = time.Time{}
		return nil
	}
	var lastErr error
	for _, layout := range dateLayouts {
		parsed, err := time.Parse(layout, raw)
		if err == nil {
			d.Time = parsed
			return nil
		}
		lastErr = err
	}
	return lastErr
}

// Ptr returns nil for a missing or empty date.
func (d *Date) Ptr() *time.Time {
	if d == nil || d.IsZero() {
		return nil
	}
	t := d.Time
	return &t
}
