package repository

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes the domain packages translate.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// pgError unwraps err to a server error carrying code, or nil.
func pgError(err error, code string) *pgconn.PgError {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == code {
		return pgErr
	}
	return nil
}

// MapError swaps sql.ErrNoRows for notFound and a unique violation for
// duplicate. Anything else passes through.
func MapError(err, notFound, duplicate error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrNoRows):
		return notFound
	case pgError(err, codeUniqueViolation) != nil:
		return duplicate
	default:
		return err
	}
}

func IsForeignKeyViolation(err error) bool {
	return pgError(err, codeForeignKeyViolation) != nil
}

// UniqueViolation returns the violated constraint name so callers can tell
// which column collided.
func UniqueViolation(err error) (string, bool) {
	if pgErr := pgError(err, codeUniqueViolation); pgErr != nil {
		return pgErr.ConstraintName, true
	}
	return "", false
}
