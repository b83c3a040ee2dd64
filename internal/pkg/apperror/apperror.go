package apperror

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Kind is the closed set of error categories the platform core produces.
// Controllers map kinds to HTTP status codes at the boundary; nothing else
// in the codebase inspects error strings.
type Kind int

const (
	// KindUnknown covers unclassified internal failures.
	KindUnknown Kind = iota
	// KindNotFound: an entity does not exist for the requesting tenant.
	KindNotFound
	// KindInvalidOperation: the entity exists but the requested transition
	// is not allowed (e.g. cancelling a delivered order).
	KindInvalidOperation
	// KindConfiguration: the process is misconfigured (e.g. missing webhook
	// secret). Distinct from client errors; surfaces as a 500.
	KindConfiguration
	// KindHandlerFailure: a provider-specific webhook handler failed. The
	// failure is recorded on the event; providers still receive a 200.
	KindHandlerFailure
	// KindUnauthorized: missing or invalid credentials.
	KindUnauthorized
)

// Error carries a kind plus a human-readable message.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf creates an error of the given kind with a formatted message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a kind and message to an underlying error.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the kind from err, or KindUnknown.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindUnknown
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// StatusCode maps an error to the HTTP status the controllers respond with.
func StatusCode(err error) int {
	switch KindOf(err) {
	case KindNotFound:
		return fiber.StatusNotFound
	case KindInvalidOperation:
		return fiber.StatusBadRequest
	case KindUnauthorized:
		return fiber.StatusUnauthorized
	case KindConfiguration, KindHandlerFailure, KindUnknown:
		return fiber.StatusInternalServerError
	default:
		return fiber.StatusInternalServerError
	}
}
