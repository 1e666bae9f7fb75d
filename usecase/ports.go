package usecase

import "context"

// ReportInvalidator evicts cached dashboard reports after task writes.
type ReportInvalidator interface {
	Invalidate(ctx context.Context) error
}
