package repository

import (
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

const overlapConstraint = "appointments_no_overlap"

// isExclusionConflict reports a violation of the overlap exclusion
// constraint (SQLSTATE 23P01).
func isExclusionConflict(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23P01" && pgErr.ConstraintName == overlapConstraint
	}
	return false
}

var ErrEmailTaken = errors.New("email already registered")

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// ValidID reports whether id can be compared against a uuid column.
// Lookups short-circuit to "not found" otherwise, since postgres rejects
// the literal with SQLSTATE 22P02.
func ValidID(id string) bool {
	return uuid.Validate(id) == nil
}

// isInvalidText reports SQLSTATE 22P02 (invalid_text_representation).
func isInvalidText(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "22P02"
}
