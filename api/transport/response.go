package transport

import "github.com/fastygo/teamtasks/domain"

// ErrorResponse is returned for every non-2xx answer.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func NewError(code domain.ErrorCode, message string) ErrorResponse {
	return ErrorResponse{Code: string(code), Message: message}
}

// DeveloperResponse is the assignee picker entry.
type DeveloperResponse struct {
	DeveloperID int64  `json:"developerId"`
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
}

func NewDeveloperResponses(developers []domain.Developer) []DeveloperResponse {
	out := make([]DeveloperResponse, 0, len(developers))
	for i := range developers {
		out = append(out, DeveloperResponse{
			DeveloperID: developers[i].ID,
			FullName:    developers[i].FullName(),
			Email:       developers[i].Email,
		})
	}
	return out
}

// HealthResponse reports dependency reachability.
type HealthResponse struct {
	Status    string          `json:"status"`
	Timestamp string          `json:"timestamp"`
	Services  map[string]bool `json:"services"`
}
