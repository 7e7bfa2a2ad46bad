package relink

import (
	"errors"
	"fmt"
)

// Standard sentinel errors for common operations.
var (
	// ErrNotFound is returned when a requested entity or relationship is not
	// part of the resolved schema.
	ErrNotFound = errors.New("relink: relationship not found")

	// ErrContract is returned when an operation is called in a way that
	// violates its contract, e.g. with a nil entity argument or against the
	// wrong side of a relationship.
	ErrContract = errors.New("relink: contract violation")
)

// NotFoundError represents an error when an entity or one of its
// relationships is not present in the resolved schema.
type NotFoundError struct {
	entity   string
	property string // Optional: the relationship property that was looked up.
}

// Error returns the error string.
func (e *NotFoundError) Error() string {
	if e.property != "" {
		return fmt.Sprintf("relink: relationship %s.%s not found", e.entity, e.property)
	}
	return fmt.Sprintf("relink: entity %s not found", e.entity)
}

// Is reports whether the target error matches NotFoundError.
// This allows errors.Is(notFoundErr, ErrNotFound) to return true.
func (e *NotFoundError) Is(err error) bool {
	return err == ErrNotFound
}

// Entity returns the entity name that was looked up.
func (e *NotFoundError) Entity() string {
	return e.entity
}

// Property returns the relationship property that was looked up, if any.
func (e *NotFoundError) Property() string {
	return e.property
}

// NewNotFoundError returns a new NotFoundError for the given entity.
func NewNotFoundError(entity string) *NotFoundError {
	return &NotFoundError{entity: entity}
}

// NewNotFoundErrorWithProperty returns a new NotFoundError for the given
// relationship property of an entity.
func NewNotFoundErrorWithProperty(entity, property string) *NotFoundError {
	return &NotFoundError{entity: entity, property: property}
}

// IsNotFound returns true if the error is a NotFoundError.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	var e *NotFoundError
	return errors.As(err, &e) || errors.Is(err, ErrNotFound)
}

// ContractError represents a caller contract violation: a nil entity
// argument, or a mutation applied to the wrong relationship side. It is
// reported immediately and never retried or silently ignored.
type ContractError struct {
	op  string // Operation that was called (e.g. "SetRef").
	msg string
}

// Error returns the error string.
func (e *ContractError) Error() string {
	return fmt.Sprintf("relink: %s: %s", e.op, e.msg)
}

// Is reports whether the target error matches ContractError.
// This allows errors.Is(contractErr, ErrContract) to return true.
func (e *ContractError) Is(err error) bool {
	return err == ErrContract
}

// Op returns the operation that was called.
func (e *ContractError) Op() string {
	return e.op
}

// NewContractError returns a new ContractError for the given operation.
func NewContractError(op, format string, args ...any) *ContractError {
	return &ContractError{op: op, msg: fmt.Sprintf(format, args...)}
}

// IsContractError returns true if the error is a ContractError.
func IsContractError(err error) bool {
	if err == nil {
		return false
	}
	var e *ContractError
	return errors.As(err, &e) || errors.Is(err, ErrContract)
}
