package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorType represents different categories of errors.
type ErrorType string

const (
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeNotFound   ErrorType = "not_found"
	ErrorTypeConflict   ErrorType = "conflict"
	ErrorTypeIO         ErrorType = "io"
	ErrorTypeBuild      ErrorType = "build"
	ErrorTypeConfig     ErrorType = "config"
	ErrorTypeInternal   ErrorType = "internal"
)

// Common error codes.
const (
	ErrCodeInvalidScene      = "ERR_INVALID_SCENE"
	ErrCodeInvalidSlot       = "ERR_INVALID_SLOT"
	ErrCodeMissingTiming     = "ERR_MISSING_TIMING"
	ErrCodeTemplateNotFound  = "ERR_TEMPLATE_NOT_FOUND"
	ErrCodeComponentNotFound = "ERR_COMPONENT_NOT_FOUND"
	ErrCodeThemeNotFound     = "ERR_THEME_NOT_FOUND"
	ErrCodeTokenNotFound     = "ERR_TOKEN_NOT_FOUND"
	ErrCodeProjectNotFound   = "ERR_PROJECT_NOT_FOUND"
	ErrCodeProjectExists     = "ERR_PROJECT_EXISTS"
	ErrCodeInvalidName       = "ERR_INVALID_NAME"
	ErrCodeInvalidPath       = "ERR_INVALID_PATH"
	ErrCodeInvalidTheme      = "ERR_INVALID_THEME"
	ErrCodeRenderFailed      = "ERR_RENDER_FAILED"
	ErrCodeWriteFailed       = "ERR_WRITE_FAILED"
	ErrCodeReadFailed        = "ERR_READ_FAILED"
	ErrCodeConfigInvalid     = "ERR_CONFIG_INVALID"
	ErrCodeValidationFailed  = "ERR_VALIDATION_FAILED"
	ErrCodeInternalError     = "ERR_INTERNAL"
)

// ReelError is a structured error type with context.
type ReelError struct {
	Type      ErrorType
	Code      string
	Message   string
	Cause     error
	Context   map[string]interface{}
	Component string
	Path      string
}

// Error implements the error interface.
func (e *ReelError) Error() string {
	var parts []string

	if e.Code != "" {
		parts = append(parts, fmt.Sprintf("[%s]", e.Code))
	}

	if e.Component != "" {
		parts = append(parts, "component:"+e.Component)
	}

	if e.Path != "" {
		parts = append(parts, e.Path)
	}

	parts = append(parts, e.Message)

	result := strings.Join(parts, " ")

	if e.Cause != nil {
		result += fmt.Sprintf(": %v", e.Cause)
	}

	return result
}

// Unwrap returns the underlying cause error.
func (e *ReelError) Unwrap() error {
	return e.Cause
}

// Is implements error comparison on type and code.
func (e *ReelError) Is(target error) bool {
	var t *ReelError
	if errors.As(target, &t) {
		return e.Type == t.Type && e.Code == t.Code
	}

	return false
}

// WithContext adds context information to the error.
func (e *ReelError) WithContext(key string, value interface{}) *ReelError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value

	return e
}

// WithComponent adds component context.
func (e *ReelError) WithComponent(component string) *ReelError {
	e.Component = component

	return e
}

// WithPath records where in a document or filesystem the error occurred.
func (e *ReelError) WithPath(path string) *ReelError {
	e.Path = path

	return e
}

// NewValidationError creates a validation error.
func NewValidationError(code, message string) *ReelError {
	return &ReelError{
		Type:    ErrorTypeValidation,
		Code:    code,
		Message: message,
	}
}

// NewNotFoundError creates a lookup failure error.
func NewNotFoundError(code, message string) *ReelError {
	return &ReelError{
		Type:    ErrorTypeNotFound,
		Code:    code,
		Message: message,
	}
}

// NewConflictError creates an error for resources that already exist.
func NewConflictError(code, message string) *ReelError {
	return &ReelError{
		Type:    ErrorTypeConflict,
		Code:    code,
		Message: message,
	}
}

// NewBuildError creates a build error.
func NewBuildError(code, message string, cause error) *ReelError {
	return &ReelError{
		Type:    ErrorTypeBuild,
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// NewIOError creates an I/O error.
func NewIOError(code, message string, cause error) *ReelError {
	return &ReelError{
		Type:    ErrorTypeIO,
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// NewConfigError creates a configuration error.
func NewConfigError(code, message string) *ReelError {
	return &ReelError{
		Type:    ErrorTypeConfig,
		Code:    code,
		Message: message,
	}
}

// NewInternalError creates an internal error.
func NewInternalError(code, message string, cause error) *ReelError {
	return &ReelError{
		Type:    ErrorTypeInternal,
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// TypeOf reports the ErrorType of err, or the empty string for foreign errors.
func TypeOf(err error) ErrorType {
	var re *ReelError
	if errors.As(err, &re) {
		return re.Type
	}

	return ""
}

// IsNotFound checks if an error is a lookup failure.
func IsNotFound(err error) bool {
	return TypeOf(err) == ErrorTypeNotFound
}

// IsValidation checks if an error is a validation failure.
func IsValidation(err error) bool {
	return TypeOf(err) == ErrorTypeValidation
}

// IsConflict checks if an error reports an existing resource.
func IsConflict(err error) bool {
	return TypeOf(err) == ErrorTypeConflict
}

// IsBuildError checks if an error is build-related.
func IsBuildError(err error) bool {
	return TypeOf(err) == ErrorTypeBuild
}

// Helper functions for common errors

// ErrTemplateNotFound reports a component type without a template.
func ErrTemplateNotFound(componentType string) *ReelError {
	return NewNotFoundError(
		ErrCodeTemplateNotFound,
		fmt.Sprintf("template %s.tsx not found", componentType),
	).WithComponent(componentType)
}

// ErrComponentNotFound reports a component missing from the schema registry.
func ErrComponentNotFound(name string) *ReelError {
	return NewNotFoundError(
		ErrCodeComponentNotFound,
		fmt.Sprintf("component '%s' not found", name),
	).WithComponent(name)
}

// ErrThemeNotFound reports an unknown theme key.
func ErrThemeNotFound(key string) *ReelError {
	return NewNotFoundError(
		ErrCodeThemeNotFound,
		fmt.Sprintf("theme '%s' not found", key),
	).WithContext("theme", key)
}

// ErrProjectNotFound reports an unknown project.
func ErrProjectNotFound(name string) *ReelError {
	return NewNotFoundError(
		ErrCodeProjectNotFound,
		fmt.Sprintf("project '%s' not found", name),
	).WithContext("project", name)
}

// ErrProjectExists reports an attempt to create a project twice.
func ErrProjectExists(name string) *ReelError {
	return NewConflictError(
		ErrCodeProjectExists,
		fmt.Sprintf("project '%s' already exists", name),
	).WithContext("project", name)
}
