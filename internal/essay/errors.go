package essay

import (
	"errors"
	"fmt"
)

// ValidationError reports a missing or invalid required field. It is
// always raised before any external call is made.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Is matches validation errors on field and message so callers can compare
// against the exported sentinels.
func (e *ValidationError) Is(target error) bool {
	t, ok := target.(*ValidationError)
	if !ok {
		return false
	}
	return e.Field == t.Field && e.Message == t.Message
}

var (
	errMissingTopic = &ValidationError{Field: "topic", Message: "missing topic"}
	errMissingStyle = &ValidationError{Field: "style", Message: "missing style"}

	// ErrMissingTopic is returned when the topic is blank
	ErrMissingTopic error = errMissingTopic
	// ErrMissingStyle is returned when no recognised style is set
	ErrMissingStyle error = errMissingStyle
	// ErrNothingToExport is returned when an export is requested with no text
	ErrNothingToExport error = &ValidationError{Field: "body", Message: "nothing to export"}

	// ErrGenerationInProgress rejects a second generate trigger while one
	// call is still pending.
	ErrGenerationInProgress = errors.New("generation already in progress")
)

// GenerationError wraps any failure of the external generation call
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed: %v", e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// ExportError wraps serialization or save failures
type ExportError struct {
	Err error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export failed: %v", e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}

// UserMessage turns any error produced by the composer or exporter into the
// notification shown to the user.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, ErrMissingTopic):
		return "Please enter a subject title"
	case errors.Is(err, ErrMissingStyle):
		return "Please select a writing style"
	case errors.Is(err, ErrNothingToExport):
		return "Please generate an essay first"
	case errors.Is(err, ErrGenerationInProgress):
		return "An essay is already being generated"
	}

	var genErr *GenerationError
	if errors.As(err, &genErr) {
		return "Failed to generate essay. Please try again."
	}
	var expErr *ExportError
	if errors.As(err, &expErr) {
		return "Failed to download essay. Please try again."
	}

	var valErr *ValidationError
	if errors.As(err, &valErr) {
		return valErr.Message
	}
	return "Something went wrong. Please try again."
}
