package domain

import (
	"strings"
	"time"
)

// Developer is a team member tasks can be assigned to.
type Developer struct {
	ID        int64     `json:"developerId"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

// FullName is the display name used across reports and task listings.
func (d *Developer) FullName() string {
	if d == nil {
		return ""
	}
	return strings.TrimSpace(d.FirstName + " " + d.LastName)
}

// CanTakeAssignments reports whether new tasks may be assigned to the developer.
func (d *Developer) CanTakeAssignments() bool {
	return d != nil && d.IsActive
}
