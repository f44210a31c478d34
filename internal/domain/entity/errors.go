package entity

import (
	"errors"
	"strings"
)

// Kind classifies a domain error. The HTTP boundary maps every Kind to a status code.
type Kind int

const (
	// KindInternal covers anything unclassified, including unexpected storage failures.
	KindInternal Kind = iota
	// KindValidation means one or more fields failed validation.
	KindValidation
	// KindConflict means a uniqueness rule was violated (duplicate tax ID).
	KindConflict
	// KindNotFound means the addressed record does not exist.
	KindNotFound
	// KindBadRequest means the request payload could not be understood.
	KindBadRequest
)

// String returns the kind name used in logs.
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not_found"
	case KindBadRequest:
		return "bad_request"
	default:
		return "internal"
	}
}

// Error is the single domain error type. Message is safe to show to API clients;
// Err, when set, carries the underlying cause for logging.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

// Error returns the user-facing message.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewValidationError joins the field messages with a single space.
func NewValidationError(messages []string) *Error {
	return &Error{Kind: KindValidation, Message: strings.Join(messages, " ")}
}

// NewConflictError reports a uniqueness violation.
func NewConflictError(message string, cause error) *Error {
	return &Error{Kind: KindConflict, Message: message, Err: cause}
}

// NewNotFoundError reports a missing record.
func NewNotFoundError(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// NewBadRequestError reports a malformed payload.
func NewBadRequestError(message string, cause error) *Error {
	return &Error{Kind: KindBadRequest, Message: message, Err: cause}
}

// KindOf returns the Kind of the first *Error in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}
