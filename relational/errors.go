// Package relational maps a finalized metadata model onto relational
// store objects. It resolves the column name, type, nullability, default
// value and other column facets of every property for a given table,
// view, function or SQL query, walking inheritance hierarchies and
// table-sharing relationships to find the authoritative configuration.
//
// All resolvers are pure reads over the frozen model: they recompute
// their answers on every call, never mutate state, and bound every
// traversal with a fixed hop limit.
package relational

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kryptine/efcore/metadata"
)

// Sentinel errors for common failure cases.
var (
	// ErrNotMapped indicates that a property is not mapped to the
	// store object it was queried for.
	ErrNotMapped = errors.New("efcore: property not mapped to store object")
	// ErrValueConversion indicates a configured default value that
	// cannot be converted to the property's declared kind.
	ErrValueConversion = errors.New("efcore: cannot convert default value")
	// ErrInvalidMapping indicates a model that fails relational validation.
	ErrInvalidMapping = errors.New("efcore: invalid relational mapping")
)

// NotMappedError reports a query for the shared-object root of a
// property that does not map to the given store object at all.
type NotMappedError struct {
	Property string
	Type     string
	Object   StoreObject
}

// Error implements the error interface.
func (e *NotMappedError) Error() string {
	return fmt.Sprintf("efcore: property %s of type %s is not mapped to %s",
		e.Property, e.Type, e.Object)
}

// Is reports whether the target matches the sentinel error for NotMappedError.
func (e *NotMappedError) Is(target error) bool {
	return target == ErrNotMapped
}

// ValueConversionError reports a configured default value whose runtime
// type cannot be converted to the property's declared kind.
type ValueConversionError struct {
	Value    any
	Property string
	Type     string
	Kind     metadata.Kind
	Cause    error
}

// Error implements the error interface.
func (e *ValueConversionError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "efcore: default value %v of type %T cannot be converted to kind %s for property %s of type %s",
		e.Value, e.Value, e.Kind, e.Property, e.Type)
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *ValueConversionError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for ValueConversionError.
func (e *ValueConversionError) Is(target error) bool {
	return target == ErrValueConversion
}

// MappingError reports a relational validation failure.
type MappingError struct {
	Object  StoreObject
	Types   []string
	Message string
}

// Error implements the error interface.
func (e *MappingError) Error() string {
	var b strings.Builder
	b.WriteString("efcore: mapping error")
	if e.Object.Valid() {
		b.WriteString(" on ")
		b.WriteString(e.Object.String())
	}
	if len(e.Types) > 0 {
		fmt.Fprintf(&b, " involving %s", strings.Join(e.Types, ", "))
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	return b.String()
}

// Is reports whether the target matches the sentinel error for MappingError.
func (e *MappingError) Is(target error) bool {
	return target == ErrInvalidMapping
}
