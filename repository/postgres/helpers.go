package postgres

import (
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/fastygo/teamtasks/domain"
)

const (
	sqlStateForeignKeyViolation = "23503"
	sqlStateUniqueViolation     = "23505"
	sqlStateCheckViolation      = "23514"
)

func nullTime(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t
}

func clampLimit(limit int) int {
	if limit <= 0 || limit > domain.MaxPageSize {
		return domain.MaxPageSize
	}
	return limit
}

// translateWriteError maps constraint violations raised by the store onto domain errors.
func translateWriteError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case sqlStateForeignKeyViolation:
		switch pgErr.ConstraintName {
		case "fk_tasks_project":
			return domain.WrapError(domain.ErrCodeInvalid, "referenced project does not exist", err)
		case "fk_tasks_assignee":
			return domain.WrapError(domain.ErrCodeInvalid, "referenced assignee does not exist", err)
		}
		return domain.WrapError(domain.ErrCodeInvalid, "referenced row does not exist", err)
	case sqlStateCheckViolation:
		return domain.WrapError(domain.ErrCodeInvalid, "value violates constraint "+pgErr.ConstraintName, err)
	case sqlStateUniqueViolation:
		return domain.WrapError(domain.ErrCodeConflict, "duplicate value violates "+pgErr.ConstraintName, err)
	}
	return err
}
