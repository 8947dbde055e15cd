package validator

import (
	"errors"
	"fmt"
)

// Code identifies why a primitive input was rejected.
type Code string

const (
	CodeRequired           Code = "Required"
	CodeInvalidPhoneFormat Code = "InvalidPhoneFormat"
	CodeInvalidEmail       Code = "InvalidEmail"
	CodeInvalidDate        Code = "InvalidDate"
	CodeEndBeforeStart     Code = "EndBeforeStart"
	CodeInvalidAmount      Code = "InvalidAmount"
	CodeInvalidCurrency    Code = "InvalidCurrency"
	CodeInvalidValue       Code = "InvalidValue"
)

// ErrValidation matches every *ValidationError via errors.Is.
var ErrValidation = errors.New("validation error")

// ValidationError is a user-correctable rejection of a single field.
type ValidationError struct {
	Code    Code
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", e.Field, e.Code, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func newError(code Code, field, msg string) *ValidationError {
	return &ValidationError{Code: code, Field: field, Message: msg}
}

// Required builds a CodeRequired error for field.
func Required(field string) *ValidationError {
	return newError(CodeRequired, field, "is required")
}

// IsCode reports whether err is a *ValidationError with the given code.
func IsCode(err error, code Code) bool {
	var ve *ValidationError
	return errors.As(err, &ve) && ve.Code == code
}
