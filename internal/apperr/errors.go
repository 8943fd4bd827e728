package apperr

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across the service. Handlers translate them into
// HTTP responses; nothing below the handler layer speaks HTTP.
var (
	// ErrInvalidCredentials covers both "no such user" and "wrong password"
	// so callers cannot enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInternal is the opaque failure returned when a dependency is
	// missing or a collaborator fails unexpectedly.
	ErrInternal = errors.New("internal server error")
)

// MissingParamError reports an absent required field.
type MissingParamError struct {
	Param string
}

func (e *MissingParamError) Error() string {
	return fmt.Sprintf("missing param: %s", e.Param)
}

// InvalidParamError reports a field that failed validation.
type InvalidParamError struct {
	Param string
}

func (e *InvalidParamError) Error() string {
	return fmt.Sprintf("invalid param: %s", e.Param)
}

// NewMissingParam builds a MissingParamError for the named field.
func NewMissingParam(param string) error {
	return &MissingParamError{Param: param}
}

// NewInvalidParam builds an InvalidParamError for the named field.
func NewInvalidParam(param string) error {
	return &InvalidParamError{Param: param}
}

// IsMissingParam reports whether err is a MissingParamError.
func IsMissingParam(err error) bool {
	var target *MissingParamError
	return errors.As(err, &target)
}

// IsInvalidParam reports whether err is an InvalidParamError.
func IsInvalidParam(err error) bool {
	var target *InvalidParamError
	return errors.As(err, &target)
}

// IsParamError reports whether err is a validation error of either kind.
func IsParamError(err error) bool {
	return IsMissingParam(err) || IsInvalidParam(err)
}
