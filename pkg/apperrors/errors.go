package apperrors

import (
	"errors"
	"fmt"
)

// Kind buckets every failure the service surfaces into one of four
// HTTP-mappable classes.
type Kind string

const (
	KindValidation     Kind = "VALIDATION_ERROR"
	KindAuthentication Kind = "AUTHENTICATION_ERROR"
	KindNotFound       Kind = "NOT_FOUND_ERROR"
	KindIntegration    Kind = "INTEGRATION_ERROR"
)

// AuthReason distinguishes authentication failures so each gets its own
// user-displayable message instead of a generic 401.
type AuthReason string

const (
	ReasonInvalidToken        AuthReason = "invalid_token"
	ReasonForbidden           AuthReason = "forbidden"
	ReasonUserNotFound        AuthReason = "user_not_found"
	ReasonProviderUnavailable AuthReason = "provider_unavailable"
)

type AppError struct {
	Kind    Kind
	Reason  AuthReason // set only for KindAuthentication
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func Validation(message string) *AppError {
	return &AppError{Kind: KindValidation, Message: message}
}

func NotFound(message string) *AppError {
	return &AppError{Kind: KindNotFound, Message: message}
}

func Authentication(reason AuthReason, message string) *AppError {
	return &AppError{Kind: KindAuthentication, Reason: reason, Message: message}
}

// Integration wraps an unexpected store/provider failure. The wrapped error
// goes to the log; callers only see Message.
func Integration(message string, err error) *AppError {
	return &AppError{Kind: KindIntegration, Message: message, Err: err}
}

// As extracts an *AppError from an error chain, or nil.
func As(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// StatusCode maps an error to the HTTP status the handlers return.
// Anything that is not an AppError counts as an integration failure.
func StatusCode(err error) int {
	appErr := As(err)
	if appErr == nil {
		return 500
	}
	switch appErr.Kind {
	case KindValidation:
		return 400
	case KindAuthentication:
		return 401
	case KindNotFound:
		return 404
	default:
		return 500
	}
}

// PublicMessage is what the HTTP layer sends back. Integration details stay
// in the log.
func PublicMessage(err error) string {
	appErr := As(err)
	if appErr == nil || appErr.Kind == KindIntegration {
		return "internal error"
	}
	return appErr.Message
}
