package jtac

import (
	"errors"
	"fmt"
)

// ErrInvalidInput marks text that cannot be converted into a legal native value.
var ErrInvalidInput = errors.New("jtac: invalid input")

// ErrConfiguration marks programmer errors: bad option values or a native
// value of the wrong type handed to ToString.
var ErrConfiguration = errors.New("jtac: configuration error")

// ErrPrecisionExceeded is returned by Round in RoundReportError mode when the
// value carries more decimal places than allowed.
var ErrPrecisionExceeded = errors.New("jtac: too many decimal places")

// ErrNullValue is returned by Compare when either side resolves to no value.
var ErrNullValue = errors.New("jtac: null value")

var (
	ErrUnknownCulture     = errors.New("jtac: unknown culture")
	ErrUnknownTypeManager = errors.New("jtac: unknown type manager")
	ErrUnknownRegion      = errors.New("jtac: unknown region")
)

// InputError describes text rejected by ToValue. It is recoverable and its
// Reason is suitable for showing to the person who typed Text.
type InputError struct {
	TypeName string
	Text     string
	Reason   string
	Err      error
}

func (e *InputError) Error() string {
	if e.Text == "" {
		return fmt.Sprintf("jtac: %s: %s", e.TypeName, e.Reason)
	}
	return fmt.Sprintf("jtac: %s: %q: %s", e.TypeName, e.Text, e.Reason)
}

// Unwrap exposes ErrInvalidInput and the underlying cause, if any.
func (e *InputError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrInvalidInput}
	}
	return []error{ErrInvalidInput, e.Err}
}

// ConfigurationError describes an illegal option value or misuse of a
// TypeManager by the calling code.
type ConfigurationError struct {
	TypeName string
	Field    string
	Reason   string
	Err      error
}

func (e *ConfigurationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("jtac: %s: %s", e.TypeName, e.Reason)
	}
	return fmt.Sprintf("jtac: %s.%s: %s", e.TypeName, e.Field, e.Reason)
}

// Unwrap exposes ErrConfiguration and the underlying cause, if any.
func (e *ConfigurationError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrConfiguration}
	}
	return []error{ErrConfiguration, e.Err}
}

// IsInputError reports whether err was caused by bad user input.
func IsInputError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsConfigurationError reports whether err signals a programmer error.
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrConfiguration)
}

func inputError(typeName, text, reason string) error {
	return &InputError{TypeName: typeName, Text: text, Reason: reason}
}

func inputErrorf(typeName, text, format string, args ...any) error {
	return &InputError{TypeName: typeName, Text: text, Reason: fmt.Sprintf(format, args...)}
}

func configError(typeName, field, reason string) error {
	return &ConfigurationError{TypeName: typeName, Field: field, Reason: reason}
}

func wrongNativeType(typeName string, value any) error {
	return &ConfigurationError{
		TypeName: typeName,
		Reason:   fmt.Sprintf("unsupported native value of type %T", value),
	}
}
