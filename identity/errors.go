package identity

import (
	"errors"
	"fmt"
)

// Condition tags a failure raised by the identity provider
type Condition string

const (
	ConditionUsernameExists   Condition = "username_exists"
	ConditionNotAuthorized    Condition = "not_authorized"
	ConditionUserNotConfirmed Condition = "user_not_confirmed"
	ConditionCodeMismatch     Condition = "code_mismatch"
	ConditionExpiredCode      Condition = "expired_code"
	ConditionUnclassified     Condition = "unclassified"
)

// Error is a provider failure tagged with the condition it represents
type Error struct {
	Condition Condition
	Code      string // provider error code, e.g. "InvalidPasswordException"
	Message   string
	Err       error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Condition, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Condition, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error carrying the same condition
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Condition == t.Condition
}

// Description returns the human readable failure text, preferring the
// provider's own message over the wrapped cause.
func (e *Error) Description() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return string(e.Condition)
}

// NewError creates a new tagged provider error
func NewError(condition Condition, message string, err error) *Error {
	return &Error{
		Condition: condition,
		Message:   message,
		Err:       err,
	}
}

var (
	ErrUsernameExists   = NewError(ConditionUsernameExists, "username already exists", nil)
	ErrNotAuthorized    = NewError(ConditionNotAuthorized, "incorrect username or password", nil)
	ErrUserNotConfirmed = NewError(ConditionUserNotConfirmed, "user is not confirmed", nil)
	ErrCodeMismatch     = NewError(ConditionCodeMismatch, "invalid verification code", nil)
	ErrExpiredCode      = NewError(ConditionExpiredCode, "verification code expired", nil)
)

// ConditionOf returns the condition carried by err. Errors that did not come
// from the provider classification are unclassified.
func ConditionOf(err error) Condition {
	var idErr *Error
	if errors.As(err, &idErr) {
		return idErr.Condition
	}
	return ConditionUnclassified
}

// Describe returns the failure text that may be surfaced to a caller
func Describe(err error) string {
	if err == nil {
		return ""
	}
	var idErr *Error
	if errors.As(err, &idErr) {
		return idErr.Description()
	}
	return err.Error()
}

// CodeOf returns the provider's own error code behind err, if it recorded one
func CodeOf(err error) string {
	var idErr *Error
	if errors.As(err, &idErr) {
		return idErr.Code
	}
	return ""
}
