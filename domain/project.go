package domain

import "time"

type ProjectStatus string

const (
	ProjectPlanned    ProjectStatus = "Planned"
	ProjectInProgress ProjectStatus = "InProgress"
	ProjectCompleted  ProjectStatus = "Completed"
)

func ParseProjectStatus(raw string) (ProjectStatus, error) {
	switch s := ProjectStatus(raw); s {
	case ProjectPlanned, ProjectInProgress, ProjectCompleted:
		return s, nil
	default:
		return "", ErrInvalidProjectStatus
	}
}

// Project groups the tasks delivered for a client.
type Project struct {
	ID         int64         `json:"projectId"`
	Name       string        `json:"name"`
	ClientName string        `json:"clientName"`
	Status     ProjectStatus `json:"status"`
	StartDate  time.Time     `json:"startDate"`
	EndDate    *time.Time    `json:"endDate,omitempty"`
	CreatedAt  time.Time     `json:"createdAt"`
}
