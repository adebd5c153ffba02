package presets

import (
	"errors"
	"fmt"
)

// PresetError represents a preset store error.
type PresetError struct {
	Code    string
	Service string
	Name    string
	Cause   error
}

func (e *PresetError) Error() string {
	msg := fmt.Sprintf("%s: %s/%q", e.Code, e.Service, e.Name)
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *PresetError) Unwrap() error {
	return e.Cause
}

// Is matches another PresetError by code, so callers can test against the
// sentinel values below with errors.Is.
func (e *PresetError) Is(target error) bool {
	var other *PresetError
	if !errors.As(target, &other) {
		return false
	}
	return other.Code == e.Code
}

// Error codes
const (
	ErrCodeNotFound    = "PRESET_NOT_FOUND"
	ErrCodeInvalidName = "INVALID_PRESET"
	ErrCodeStorage     = "STORAGE_ERROR"
)

// Sentinels for errors.Is.
var (
	ErrNotFound    = &PresetError{Code: ErrCodeNotFound}
	ErrInvalidName = &PresetError{Code: ErrCodeInvalidName}
	ErrStorage     = &PresetError{Code: ErrCodeStorage}
)

// NewPresetError creates a new preset error.
func NewPresetError(code, service, name string, cause error) *PresetError {
	return &PresetError{
		Code:    code,
		Service: service,
		Name:    name,
		Cause:   cause,
	}
}
