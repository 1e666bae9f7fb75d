package domain

import "time"

// DeveloperWorkload summarises the outstanding work of an active developer.
type DeveloperWorkload struct {
	DeveloperID                int64   `json:"developerId"`
	DeveloperName              string  `json:"developerName"`
	OpenTasksCount             int     `json:"openTasksCount"`
	AverageEstimatedComplexity float64 `json:"averageEstimatedComplexity"`
}

// ProjectHealth counts the tasks of a project by completion state.
type ProjectHealth struct {
	ProjectID      int64         `json:"projectId"`
	ProjectName    string        `json:"projectName"`
	ClientName     string        `json:"clientName"`
	ProjectStatus  ProjectStatus `json:"projectStatus"`
	TotalTasks     int           `json:"totalTasks"`
	OpenTasks      int           `json:"openTasks"`
	CompletedTasks int           `json:"completedTasks"`
}

// ProjectSummary is the project listing shape; it carries the same counts as ProjectHealth.
type ProjectSummary struct {
	ProjectID      int64         `json:"projectId"`
	Name           string        `json:"name"`
	ClientName     string        `json:"clientName"`
	Status         ProjectStatus `json:"status"`
	TotalTasks     int           `json:"totalTasks"`
	OpenTasks      int           `json:"openTasks"`
	CompletedTasks int           `json:"completedTasks"`
}

func (h ProjectHealth) Summary() ProjectSummary {
	return ProjectSummary{
		ProjectID:      h.ProjectID,
		Name:           h.ProjectName,
		ClientName:     h.ClientName,
		Status:         h.ProjectStatus,
		TotalTasks:     h.TotalTasks,
		OpenTasks:      h.OpenTasks,
		CompletedTasks: h.CompletedTasks,
	}
}

// TaskSnapshot is the slice of a task the delay-risk estimator looks at.
type TaskSnapshot struct {
	Status         TaskStatus `json:"status"`
	DueDate        time.Time  `json:"dueDate"`
	CompletionDate *time.Time `json:"completionDate,omitempty"`
}

// DeveloperTaskHistory lists every task assigned to an active developer.
type DeveloperTaskHistory struct {
	DeveloperID   int64          `json:"developerId"`
	DeveloperName string         `json:"developerName"`
	Tasks         []TaskSnapshot `json:"tasks"`
}
