package bakery

import (
	"errors"
	"fmt"
	"strings"

	"github.com/syssam/bakery/schema"
)

// Standard sentinel errors for the build pipeline.
var (
	// ErrUnknownFieldType is returned when no generator is registered
	// for a field's type tag.
	ErrUnknownFieldType = errors.New("bakery: unknown field type")

	// ErrUnknownField is returned when an override or fill directive
	// names a field absent from the model description.
	ErrUnknownField = errors.New("bakery: unknown field")

	// ErrIncompleteInstance is returned when a required field is still
	// unset after the build pipeline ran.
	ErrIncompleteInstance = errors.New("bakery: incomplete instance")

	// ErrResolution is returned when a dotted-path lookup for a
	// generator or builder fails.
	ErrResolution = errors.New("bakery: resolution failed")
)

// UnknownFieldTypeError reports a field type with no registered generator.
type UnknownFieldTypeError struct {
	Type schema.Type
}

// Error returns the error string.
func (e *UnknownFieldTypeError) Error() string {
	return fmt.Sprintf("bakery: no generator registered for field type %q", e.Type)
}

// Is reports whether the target error matches UnknownFieldTypeError.
// This allows errors.Is(err, ErrUnknownFieldType) to return true.
func (e *UnknownFieldTypeError) Is(err error) bool {
	return err == ErrUnknownFieldType
}

// NewUnknownFieldTypeError returns a new UnknownFieldTypeError for the given type.
func NewUnknownFieldTypeError(t schema.Type) *UnknownFieldTypeError {
	return &UnknownFieldTypeError{Type: t}
}

// IsUnknownFieldType returns true if the error is an UnknownFieldTypeError.
func IsUnknownFieldType(err error) bool {
	if err == nil {
		return false
	}
	var e *UnknownFieldTypeError
	return errors.As(err, &e) || errors.Is(err, ErrUnknownFieldType)
}

// UnknownFieldError reports an override or fill name that does not exist
// on the target model.
type UnknownFieldError struct {
	Model string
	Field string
}

// Error returns the error string.
func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("bakery: model %q has no field or relation %q", e.Model, e.Field)
}

// Is reports whether the target error matches UnknownFieldError.
func (e *UnknownFieldError) Is(err error) bool {
	return err == ErrUnknownField
}

// NewUnknownFieldError returns a new UnknownFieldError for the given model and field.
func NewUnknownFieldError(model, field string) *UnknownFieldError {
	return &UnknownFieldError{Model: model, Field: field}
}

// IsUnknownField returns true if the error is an UnknownFieldError.
func IsUnknownField(err error) bool {
	if err == nil {
		return false
	}
	var e *UnknownFieldError
	return errors.As(err, &e) || errors.Is(err, ErrUnknownField)
}

// IncompleteInstanceError reports required fields left unset by the build
// pipeline. It indicates a registry gap rather than a caller mistake.
type IncompleteInstanceError struct {
	Model  string
	Fields []string
}

// Error returns the error string.
func (e *IncompleteInstanceError) Error() string {
	return fmt.Sprintf("bakery: incomplete %s instance: required fields unset: %s", e.Model, strings.Join(e.Fields, ", "))
}

// Is reports whether the target error matches IncompleteInstanceError.
func (e *IncompleteInstanceError) Is(err error) bool {
	return err == ErrIncompleteInstance
}

// NewIncompleteInstanceError returns a new IncompleteInstanceError.
func NewIncompleteInstanceError(model string, fields ...string) *IncompleteInstanceError {
	return &IncompleteInstanceError{Model: model, Fields: fields}
}

// IsIncompleteInstance returns true if the error is an IncompleteInstanceError.
func IsIncompleteInstance(err error) bool {
	if err == nil {
		return false
	}
	var e *IncompleteInstanceError
	return errors.As(err, &e) || errors.Is(err, ErrIncompleteInstance)
}

// ResolutionError reports a failed dotted-path lookup for a generator or
// a custom builder. Resolution failures are configuration errors and are
// never retried.
type ResolutionError struct {
	Path string
	Err  error
}

// Error returns the error string.
func (e *ResolutionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("bakery: resolve %q: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("bakery: resolve %q failed", e.Path)
}

// Unwrap returns the underlying error.
func (e *ResolutionError) Unwrap() error {
	return e.Err
}

// Is reports whether the target error matches ResolutionError.
func (e *ResolutionError) Is(err error) bool {
	return err == ErrResolution
}

// NewResolutionError returns a new ResolutionError for the given path.
func NewResolutionError(path string, err error) *ResolutionError {
	return &ResolutionError{Path: path, Err: err}
}

// IsResolution returns true if the error is a ResolutionError.
func IsResolution(err error) bool {
	if err == nil {
		return false
	}
	var e *ResolutionError
	return errors.As(err, &e) || errors.Is(err, ErrResolution)
}
