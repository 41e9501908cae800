package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/aistomin/andys-backend/internal/domain"
)

// pgCodes maps SQLSTATE codes onto the domain errors the REST layer knows.
// A foreign key violation means a referenced row (a person, a music sheet,
// a lyrics entry) does not exist.
var pgCodes = map[string]error{
	"23505": domain.ErrAlreadyExists, // unique_violation
	"23503": domain.ErrNotFound,      // foreign_key_violation
	"23514": domain.ErrValidation,    // check_violation
	"23502": domain.ErrValidation,    // not_null_violation
	"22001": domain.ErrValidation,    // string_data_right_truncation
	"40001": domain.ErrConflict,      // serialization_failure
}

// MapError converts pgx and scany errors into domain errors, naming the
// entity and its key (an id, a username, an address) in the message.
// Context errors and unrecognised driver errors keep their identity.
func MapError(err error, entity string, key any) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%s %v: %w", entity, key, err)
	case errors.Is(err, pgx.ErrNoRows), pgxscan.NotFound(err):
		return fmt.Errorf("%s %v: %w", entity, key, domain.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if mapped, ok := pgCodes[pgErr.Code]; ok {
			if pgErr.ConstraintName != "" {
				return fmt.Errorf("%s %v (%s): %w", entity, key, pgErr.ConstraintName, mapped)
			}
			return fmt.Errorf("%s %v: %w", entity, key, mapped)
		}
	}
	return fmt.Errorf("%s %v: %w", entity, key, err)
}
