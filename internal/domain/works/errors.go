package works

import (
	"errors"
	"fmt"
)

var (
	// input errors, resolved before any remote call
	ErrValidation = errors.New("validation error")

	// lookup by id found nothing
	ErrNotFound = errors.New("not found")

	// transport or service failures
	ErrRemoteWrite = errors.New("remote write failed")
	ErrRemoteRead  = errors.New("remote read failed")
)

// ValidationError names the offending field. errors.Is(err, ErrValidation) holds for every ValidationError.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation error: " + e.Reason
	}
	return fmt.Sprintf("validation error: %s %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// WriteFailed wraps a backend error as ErrRemoteWrite. ErrNotFound passes through unchanged.
func WriteFailed(op string, err error) error {
	if err == nil || errors.Is(err, ErrNotFound) {
		return err
	}
	return fmt.Errorf("%s: %w: %w", op, ErrRemoteWrite, err)
}

// ReadFailed wraps a backend error as ErrRemoteRead. ErrNotFound passes through unchanged.
func ReadFailed(op string, err error) error {
	if err == nil || errors.Is(err, ErrNotFound) {
		return err
	}
	return fmt.Errorf("%s: %w: %w", op, ErrRemoteRead, err)
}
