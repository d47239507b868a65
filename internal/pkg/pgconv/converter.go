package pgconv

import (
	"time"

	"parking-reservation/internal/pkg/errs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

// SQLSTATE codes the stores branch on.
const (
	CodeUniqueViolation      = "23505"
	CodeForeignKeyViolation  = "23503"
	CodeSerializationFailure = "40001"
	CodeDeadlockDetected     = "40P01"
)

func IsNoRows(err error) bool {
	return errs.Is(err, pgx.ErrNoRows)
}

// PgError unwraps the server-side error, if any.
func PgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errs.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}

func HasCode(err error, code string) bool {
	pgErr, ok := PgError(err)
	return ok && pgErr.Code == code
}

func IsUniqueViolation(err error) bool {
	return HasCode(err, CodeUniqueViolation)
}

// IsUniqueViolationOn narrows a unique violation to a single constraint name.
func IsUniqueViolationOn(err error, constraint string) bool {
	pgErr, ok := PgError(err)
	return ok && pgErr.Code == CodeUniqueViolation && pgErr.ConstraintName == constraint
}

func IsForeignKeyViolation(err error) bool {
	return HasCode(err, CodeForeignKeyViolation)
}

func IsRetryable(err error) bool {
	return HasCode(err, CodeSerializationFailure) || HasCode(err, CodeDeadlockDetected)
}

func DateToPgtype(t time.Time) pgtype.Date {
	return pgtype.Date{Time: t, Valid: true}
}

func TimePtrFromPgtype(pt pgtype.Timestamptz) *time.Time {
	if !pt.Valid {
		return nil
	}
	t := pt.Time.UTC()
	return &t
}

func TimePtrToPgtype(t *time.Time) pgtype.Timestamptz {
	if t == nil {
		return pgtype.Timestamptz{Valid: false}
	}
	return pgtype.Timestamptz{Time: *t, Valid: true}
}
