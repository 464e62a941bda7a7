package textify

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is matched by every *ArgumentError.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInvalidTagName is matched by every *TagNameError.
	ErrInvalidTagName = errors.New("invalid tag name")
)

// ArgumentError reports a numeric argument outside its accepted range.
type ArgumentError struct {
	Name    string // Name of the argument, e.g. "count"
	Value   int    // Value that was rejected
	Message string // What the argument expects
}

// Error implements the error interface.
func (e *ArgumentError) Error() string {
	return fmt.Sprintf("invalid argument %s=%d: %s", e.Name, e.Value, e.Message)
}

// Unwrap lets errors.Is match ErrInvalidArgument.
func (e *ArgumentError) Unwrap() error { return ErrInvalidArgument }

// TagNameError reports an ignore-list entry that is not a usable tag name.
type TagNameError struct {
	Name    string // Entry as supplied by the caller
	Message string
}

// Error implements the error interface.
func (e *TagNameError) Error() string {
	return fmt.Sprintf("invalid tag name %q: %s", e.Name, e.Message)
}

// Unwrap lets errors.Is match ErrInvalidTagName.
func (e *TagNameError) Unwrap() error { return ErrInvalidTagName }

// NewArgumentError creates a new ArgumentError.
func NewArgumentError(name string, value int, message string) *ArgumentError {
	return &ArgumentError{Name: name, Value: value, Message: message}
}

// NewTagNameError creates a new TagNameError.
func NewTagNameError(name, message string) *TagNameError {
	return &TagNameError{Name: name, Message: message}
}
