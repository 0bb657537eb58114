package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// PostgreSQL constraint-violation classes. Services translate these into the
// domain error taxonomy at their boundary; nothing storage-specific crosses
// component boundaries.
const (
	pgExclusionViolation  = "23P01"
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

func pgError(err error) *pgconn.PgError {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr
	}
	return nil
}

// IsOverlapViolation reports whether the insert was rejected by the booking
// range-exclusion constraint. This is the commit-time loser of a race between
// two concurrent creators; callers surface it as the same overlap error the
// pre-check produces.
func IsOverlapViolation(err error) bool {
	if pgErr := pgError(err); pgErr != nil {
		return pgErr.Code == pgExclusionViolation ||
			(pgErr.Code == pgUniqueViolation && pgErr.ConstraintName == "excl_booking_no_overlap")
	}
	return false
}

// IsUniqueViolation reports a unique-constraint rejection, optionally
// restricted to a named constraint. The string fallback covers SQLite.
func IsUniqueViolation(err error, constraint string) bool {
	if pgErr := pgError(err); pgErr != nil {
		if pgErr.Code != pgUniqueViolation {
			return false
		}
		return constraint == "" || pgErr.ConstraintName == constraint
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate")
}

// IsForeignKeyViolation reports a dangling reference (unknown booking, guest
// or room id).
func IsForeignKeyViolation(err error) bool {
	if pgErr := pgError(err); pgErr != nil {
		return pgErr.Code == pgForeignKeyViolation
	}
	return strings.Contains(strings.ToLower(err.Error()), "foreign key")
}

// IsCheckViolation reports a check-constraint rejection.
func IsCheckViolation(err error) bool {
	if pgErr := pgError(err); pgErr != nil {
		return pgErr.Code == pgCheckViolation
	}
	return strings.Contains(strings.ToLower(err.Error()), "check constraint")
}

func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
