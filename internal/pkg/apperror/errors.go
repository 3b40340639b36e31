// Package apperror defines the error taxonomy surfaced at the request boundary.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an application error
type Kind string

const (
	KindValidation        Kind = "validation_error"
	KindClaimRejected     Kind = "claim_rejected"
	KindInvalidTransition Kind = "invalid_state_transition"
	KindInvalidOtp        Kind = "invalid_otp"
	KindConfiguration     Kind = "configuration_error"
	KindNotFound          Kind = "not_found"
	KindAlreadySettled    Kind = "already_settled"
	KindForbidden         Kind = "forbidden"
)

// InvalidOtp reasons let clients choose between "retry" and "resend"
const (
	ReasonWrongCode = "wrong_code"
	ReasonExpired   = "expired"
	ReasonLocked    = "locked"
)

// Error is an application error carrying its taxonomy kind
type Error struct {
	Kind    Kind
	Reason  string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind, and the same reason when the target sets one
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	return t.Reason == "" || t.Reason == e.Reason
}

// Sentinels for errors.Is checks
var (
	ErrValidation        = &Error{Kind: KindValidation}
	ErrClaimRejected     = &Error{Kind: KindClaimRejected}
	ErrInvalidTransition = &Error{Kind: KindInvalidTransition}
	ErrInvalidOtp        = &Error{Kind: KindInvalidOtp}
	ErrConfiguration     = &Error{Kind: KindConfiguration}
	ErrNotFound          = &Error{Kind: KindNotFound}
	ErrAlreadySettled    = &Error{Kind: KindAlreadySettled}
	ErrForbidden         = &Error{Kind: KindForbidden}
)

func Validation(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func ClaimRejected(reason string) *Error {
	return &Error{Kind: KindClaimRejected, Reason: reason, Message: "claim rejected: " + reason}
}

func InvalidTransition(from, to string) *Error {
	return &Error{
		Kind:    KindInvalidTransition,
		Message: fmt.Sprintf("cannot transition from %s to %s", from, to),
	}
}

func InvalidOtp(reason string) *Error {
	return &Error{Kind: KindInvalidOtp, Reason: reason, Message: "invalid otp: " + reason}
}

func Configuration(format string, args ...interface{}) *Error {
	return &Error{Kind: KindConfiguration, Message: fmt.Sprintf(format, args...)}
}

func NotFound(entity, id string) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("%s %s not found", entity, id)}
}

func AlreadySettled(tripID string) *Error {
	return &Error{Kind: KindAlreadySettled, Message: fmt.Sprintf("trip %s already settled", tripID)}
}

func Forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

// As extracts the *Error from err's chain
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// HTTPStatus maps an error to its response status
func HTTPStatus(err error) int {
	appErr, ok := As(err)
	if !ok {
		return http.StatusInternalServerError
	}
	switch appErr.Kind {
	case KindValidation, KindInvalidOtp:
		return http.StatusBadRequest
	case KindClaimRejected, KindInvalidTransition, KindAlreadySettled:
		return http.StatusConflict
	case KindConfiguration:
		return http.StatusUnprocessableEntity
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
