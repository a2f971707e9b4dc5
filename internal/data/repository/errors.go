package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrDuplicate is matched by any unique constraint violation.
var ErrDuplicate = errors.New("duplicate record")

const uniqueViolation = "23505"

// DuplicateError names the constraint that was violated.
type DuplicateError struct {
	Constraint string
}

func (e *DuplicateError) Error() string {
	return "duplicate record: " + e.Constraint
}

func (e *DuplicateError) Is(target error) bool {
	return target == ErrDuplicate
}

// asDuplicate converts a unique violation into a *DuplicateError and leaves
// other errors unchanged.
func asDuplicate(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return &DuplicateError{Constraint: pgErr.ConstraintName}
	}
	return err
}

// DuplicateConstraint returns the violated constraint, or "" if err is not
// a duplicate.
func DuplicateConstraint(err error) string {
	var dupErr *DuplicateError
	if errors.As(err, &dupErr) {
		return dupErr.Constraint
	}
	return ""
}

// ErrStale is returned when a guarded update matched no row because the
// record changed state since it was read.
var ErrStale = errors.New("record changed concurrently")
