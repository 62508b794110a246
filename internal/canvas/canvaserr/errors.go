package canvaserr

import "fmt"

// ErrorCode classifies canvas core errors.
type ErrorCode string

const (
	ErrInvalidColor     ErrorCode = "INVALID_COLOR"
	ErrUnsupportedAlpha ErrorCode = "UNSUPPORTED_ALPHA"
	ErrValidation       ErrorCode = "VALIDATION"
	ErrInvalidShapeType ErrorCode = "INVALID_SHAPE_TYPE"
	ErrShapeNotFound    ErrorCode = "SHAPE_NOT_FOUND"
)

// CanvasError is a structured error with a code and the field that caused it.
// Handlers and the AI tool executor surface Field/Message to the caller; the
// core itself never logs or retries.
type CanvasError struct {
	Code    ErrorCode
	Field   string
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *CanvasError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s: %s", e.Code, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewInvalidColor reports a color expression matching no supported format.
func NewInvalidColor(input string) *CanvasError {
	return &CanvasError{
		Code:    ErrInvalidColor,
		Field:   "color",
		Message: fmt.Sprintf("invalid color: %q", input),
		Details: map[string]any{"input": input},
	}
}

// NewUnsupportedAlpha reports a recognized color format using alpha
// transparency, which canvas fills do not support. Worded separately from
// NewInvalidColor so callers can say "remove transparency" instead of
// "not a color".
func NewUnsupportedAlpha(input string) *CanvasError {
	return &CanvasError{
		Code:    ErrUnsupportedAlpha,
		Field:   "color",
		Message: fmt.Sprintf("alpha transparency not supported: %q", input),
		Details: map[string]any{"input": input},
	}
}

// NewValidation reports a spec field that is missing or out of range.
func NewValidation(field, msg string) *CanvasError {
	return &CanvasError{
		Code:    ErrValidation,
		Field:   field,
		Message: msg,
	}
}

// NewInvalidShapeType reports an unknown shape type after alias resolution.
func NewInvalidShapeType(input string) *CanvasError {
	return &CanvasError{
		Code:    ErrInvalidShapeType,
		Field:   "type",
		Message: fmt.Sprintf("invalid shape type: %q", input),
		Details: map[string]any{"input": input},
	}
}

// NewShapeNotFound reports that a descriptor resolved to no shape in strict mode.
func NewShapeNotFound(descriptor string) *CanvasError {
	return &CanvasError{
		Code:    ErrShapeNotFound,
		Message: fmt.Sprintf("no shape matches %q", descriptor),
		Details: map[string]any{"descriptor": descriptor},
	}
}

// Is checks if an error is a CanvasError with the given code.
func Is(err error, code ErrorCode) bool {
	if cErr, ok := err.(*CanvasError); ok {
		return cErr.Code == code
	}
	return false
}
