package errors

import (
	"errors"
	"fmt"
)

// Sentinels describing why a platform call failed. Clients mark their
// errors with one of them; callers branch with Is or KindOf.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrBadRequest   = errors.New("bad request")

	// ErrTransient marks failures worth retrying at the same call site:
	// rate limiting, 5xx responses, dropped connections.
	ErrTransient = errors.New("transient failure")
	// ErrFatal marks failures that will not improve on retry.
	ErrFatal = errors.New("fatal failure")
)

// Kind classifies an error for callers that must treat "not found" as an
// expected answer rather than a failure.
type Kind int

const (
	KindNone Kind = iota
	KindNotFound
	KindTransient
	KindFatal
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindNotFound:
		return "not_found"
	case KindTransient:
		return "transient"
	default:
		return "fatal"
	}
}

// KindOf reports the class of err. Unclassified errors are fatal.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrTransient):
		return KindTransient
	default:
		return KindFatal
	}
}

// Mark wraps err so that errors.Is(err, kind) holds while keeping the
// original chain.
func Mark(err error, kind error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", kind, err)
}

func New(message string) error {
	return errors.New(message)
}

func Is(err, target error) bool {
	return errors.Is(err, target)
}

func As(err error, target any) bool {
	return errors.As(err, target)
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsTransient reports whether err is worth retrying.
func IsTransient(err error) bool {
	return KindOf(err) == KindTransient
}
