// Package metadata provides the in-memory model describing entity types,
// their properties and relationships during model building, and exposes
// the frozen, read-only view consumed by the relational mapping layer.
package metadata

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure cases.
var (
	// ErrInvalidModel indicates a model definition error.
	ErrInvalidModel = errors.New("efcore: invalid model")
	// ErrFrozenModel indicates a mutation attempt on a finalized model.
	ErrFrozenModel = errors.New("efcore: model is frozen")
	// ErrInvalidProperty indicates a property definition error.
	ErrInvalidProperty = errors.New("efcore: invalid property")
	// ErrInvalidForeignKey indicates a foreign-key definition error.
	ErrInvalidForeignKey = errors.New("efcore: invalid foreign key")
)

// ModelError represents an entity-type or model definition error.
type ModelError struct {
	Type    string // entity type name, if applicable
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ModelError) Error() string {
	var b strings.Builder
	b.WriteString("efcore: model error")
	if e.Type != "" {
		b.WriteString(" on type ")
		b.WriteString(e.Type)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *ModelError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for ModelError.
func (e *ModelError) Is(target error) bool {
	return target == ErrInvalidModel
}

// NewModelError creates a new ModelError.
func NewModelError(typeName, message string, cause error) *ModelError {
	return &ModelError{
		Type:    typeName,
		Message: message,
		Cause:   cause,
	}
}

// PropertyError represents a property definition error.
type PropertyError struct {
	Type     string // declaring entity type name
	Property string
	Message  string
	Cause    error
}

// Error implements the error interface.
func (e *PropertyError) Error() string {
	var b strings.Builder
	b.WriteString("efcore: property error")
	if e.Type != "" {
		b.WriteString(" on type ")
		b.WriteString(e.Type)
	}
	if e.Property != "" {
		b.WriteString(" property ")
		b.WriteString(e.Property)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *PropertyError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for PropertyError.
func (e *PropertyError) Is(target error) bool {
	return target == ErrInvalidProperty
}

// NewPropertyError creates a new PropertyError.
func NewPropertyError(typeName, propName, message string, cause error) *PropertyError {
	return &PropertyError{
		Type:     typeName,
		Property: propName,
		Message:  message,
		Cause:    cause,
	}
}

// ForeignKeyError represents a relationship definition error.
type ForeignKeyError struct {
	Dependent string
	Principal string
	Message   string
	Cause     error
}

// Error implements the error interface.
func (e *ForeignKeyError) Error() string {
	var b strings.Builder
	b.WriteString("efcore: foreign key error")
	if e.Dependent != "" && e.Principal != "" {
		fmt.Fprintf(&b, " (%s -> %s)", e.Dependent, e.Principal)
	} else if e.Dependent != "" {
		b.WriteString(" on type ")
		b.WriteString(e.Dependent)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *ForeignKeyError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for ForeignKeyError.
func (e *ForeignKeyError) Is(target error) bool {
	return target == ErrInvalidForeignKey
}

// NewForeignKeyError creates a new ForeignKeyError.
func NewForeignKeyError(dependent, principal, message string, cause error) *ForeignKeyError {
	return &ForeignKeyError{
		Dependent: dependent,
		Principal: principal,
		Message:   message,
		Cause:     cause,
	}
}
