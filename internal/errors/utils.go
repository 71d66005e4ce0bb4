package errors

import (
	"errors"
)

// Wrap wraps an error with additional context, creating a ReelError if the input is not already one.
func Wrap(err error, errType ErrorType, code, message string) *ReelError {
	if err == nil {
		return nil
	}

	// Keep the inner error's context so callers can still inspect it
	var re *ReelError
	if errors.As(err, &re) {
		return &ReelError{
			Type:      errType,
			Code:      code,
			Message:   message,
			Cause:     re,
			Context:   re.Context,
			Component: re.Component,
			Path:      re.Path,
		}
	}

	return &ReelError{
		Type:    errType,
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// WrapWithContext wraps an error with context information.
func WrapWithContext(err error, errType ErrorType, code, message string, context map[string]interface{}) *ReelError {
	re := Wrap(err, errType, code, message)
	if re != nil {
		re.Context = context
	}
	return re
}

// WrapBuild wraps an error as a build error with component context.
func WrapBuild(err error, code, message, component string) *ReelError {
	re := Wrap(err, ErrorTypeBuild, code, message)
	if re != nil {
		re.Component = component
	}
	return re
}

// WrapValidation wraps an error as a validation error.
func WrapValidation(err error, code, message string) *ReelError {
	return Wrap(err, ErrorTypeValidation, code, message)
}

// WrapIO wraps an error as an I/O error with the path it concerns.
func WrapIO(err error, code, message, path string) *ReelError {
	re := Wrap(err, ErrorTypeIO, code, message)
	if re != nil {
		re.Path = path
	}
	return re
}

// WrapConfig wraps an error as a configuration error.
func WrapConfig(err error, code, message string) *ReelError {
	return Wrap(err, ErrorTypeConfig, code, message)
}
