package resolve

import (
	"errors"
	"strings"
)

// Sentinel errors for common failure cases.
var (
	// ErrInvalidSchema indicates a relationship declaration error.
	ErrInvalidSchema = errors.New("resolve: invalid schema")
)

// SchemaError represents a relationship declaration error.
type SchemaError struct {
	Entity   string // Entity name.
	Property string // Relationship property name (if applicable).
	Message  string
	Cause    error
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	var b strings.Builder
	b.WriteString("resolve: schema error")
	if e.Entity != "" {
		b.WriteString(" on entity ")
		b.WriteString(e.Entity)
	}
	if e.Property != "" {
		b.WriteString(" relationship ")
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
func (e *SchemaError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for SchemaError.
func (e *SchemaError) Is(err error) bool {
	return err == ErrInvalidSchema
}

// IsSchemaError returns true if the error is a SchemaError.
func IsSchemaError(err error) bool {
	if err == nil {
		return false
	}
	var e *SchemaError
	return errors.As(err, &e) || errors.Is(err, ErrInvalidSchema)
}
