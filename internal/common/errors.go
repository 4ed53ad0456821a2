package common

import (
	"errors"

	"github.com/lib/pq"
)

var (
	ErrRecordNotFound  = errors.New("record not found")
	ErrUnauthenticated = errors.New("token missing or invalid")
	ErrForbidden       = errors.New("forbidden")
)

// ConstraintError reports whether err is a Postgres error with the given code raised by the named constraint.
func ConstraintError(err error, code pq.ErrorCode, name string) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == code && pqErr.Constraint == name
	}

	return false
}

const (
	UniqueViolation     pq.ErrorCode = "23505"
	ForeignKeyViolation pq.ErrorCode = "23503"
	CheckViolation      pq.ErrorCode = "23514"
)
