package domain

import (
	"errors"
	"fmt"
)

// Sentinel causes carried inside the typed errors below. Callers match them
// with errors.Is; handlers map the wrapping type to an HTTP status.
var (
	ErrSeatsExhausted     = errors.New("kursi sudah habis")
	ErrBusNotFound        = errors.New("bus tidak ditemukan")
	ErrPasswordMismatch   = errors.New("konfirmasi password tidak sama")
	ErrUsernameTaken      = errors.New("username sudah terdaftar")
	ErrInvalidCredentials = errors.New("username atau password salah")
	ErrNotLoggedIn        = errors.New("sesi admin tidak aktif")
	ErrStoreUnavailable   = errors.New("database tidak tersedia")
)

type NotFoundError struct {
	Resource string
	Err      error
}

func (e NotFoundError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e NotFoundError) Unwrap() error { return e.Err }

type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e ValidationError) Error() string {
	if e.Msg == "" && e.Err != nil {
		return e.Err.Error()
	}
	if e.Msg != "" && e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Field != "" {
		return fmt.Sprintf("invalid %s", e.Field)
	}
	return "validation error"
}

func (e ValidationError) Unwrap() error { return e.Err }

type ConflictError struct {
	Resource string
	Msg      string
	Err      error
}

func (e ConflictError) Error() string {
	switch {
	case e.Msg != "" && e.Resource != "":
		return fmt.Sprintf("%s conflict: %s", e.Resource, e.Msg)
	case e.Msg != "":
		return e.Msg
	case e.Err != nil:
		return e.Err.Error()
	case e.Resource != "":
		return fmt.Sprintf("%s conflict", e.Resource)
	default:
		return "conflict"
	}
}

func (e ConflictError) Unwrap() error { return e.Err }

type UnauthorizedError struct {
	Err error
}

func (e UnauthorizedError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unauthorized"
}

func (e UnauthorizedError) Unwrap() error { return e.Err }

// UnavailableError means the store call failed or timed out; nothing was applied.
type UnavailableError struct {
	Op  string
	Err error
}

func (e UnavailableError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s: %v", e.Op, ErrStoreUnavailable)
	}
	return ErrStoreUnavailable.Error()
}

func (e UnavailableError) Unwrap() []error { return []error{ErrStoreUnavailable, e.Err} }

type InternalError struct {
	Msg string
	Err error
}

func (e InternalError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "internal error"
}

func (e InternalError) Unwrap() error { return e.Err }

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsConflict(err error) bool {
	var target ConflictError
	return errors.As(err, &target)
}

func IsUnauthorized(err error) bool {
	var target UnauthorizedError
	return errors.As(err, &target)
}

func IsUnavailable(err error) bool {
	var target UnavailableError
	return errors.As(err, &target)
}

func IsInternal(err error) bool {
	var target InternalError
	return errors.As(err, &target)
}
