package postgres

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"digisign/internal/repository"
)

// PostgreSQL error code for unique constraint violations.
const uniqueViolationCode = "23505"

// mapError translates driver errors into the repository sentinels:
// sql.ErrNoRows -> repository.ErrNotFound, unique violation (23505) ->
// repository.ErrDuplicate. Other errors are returned unchanged.
func mapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return repository.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return repository.ErrDuplicate
	}

	return err
}
