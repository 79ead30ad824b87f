package services

import (
	"database/sql"
	"errors"

	"shuttle/internal/domain"
	"shuttle/internal/repositories"
)

// storeErr wraps a failed gateway call. Domain errors pass through untouched
// so a transaction callback can return them as-is.
func storeErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if isDomainError(err) {
		return err
	}
	return domain.UnavailableError{Op: op, Err: err}
}

func isDomainError(err error) bool {
	return domain.IsValidation(err) || domain.IsNotFound(err) || domain.IsConflict(err) ||
		domain.IsUnauthorized(err) || domain.IsUnavailable(err) || domain.IsInternal(err)
}

// errorKind is the metrics label for a failed operation.
func errorKind(err error) string {
	switch {
	case errors.Is(err, domain.ErrSeatsExhausted):
		return "seats_exhausted"
	case errors.Is(err, domain.ErrBusNotFound):
		return "bus_not_found"
	case errors.Is(err, domain.ErrPasswordMismatch):
		return "password_mismatch"
	case errors.Is(err, domain.ErrUsernameTaken):
		return "username_taken"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid_credentials"
	case domain.IsUnauthorized(err):
		return "unauthorized"
	case domain.IsValidation(err):
		return "validation"
	case domain.IsNotFound(err):
		return "not_found"
	case domain.IsUnavailable(err):
		return "store_unavailable"
	default:
		return "error"
	}
}

// dbtx avoids handing repositories a typed-nil *sql.DB.
func dbtx(db *sql.DB) repositories.DBTX {
	if db == nil {
		return nil
	}
	return db
}
