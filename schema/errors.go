package schema

import (
	"errors"
	"fmt"
	"strings"
)

// UnsupportedTypeError is returned when the active grammar has no
// mapping for a column's logical type, or when an increment flag is
// set on a non-integer column.
type UnsupportedTypeError struct {
	Dialect string
	Column  string
	Type    Type
}

// Error returns the error string.
func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("schema: dialect %s has no type mapping for %s (column %q)", e.Dialect, e.Type, e.Column)
}

// IsUnsupportedType returns true if the error is an UnsupportedTypeError.
func IsUnsupportedType(err error) bool {
	var e *UnsupportedTypeError
	return errors.As(err, &e)
}

// UnknownColumnError is returned when a command references a column
// name absent from its table.
type UnknownColumnError struct {
	Table  string
	Column string
}

// Error returns the error string.
func (e *UnknownColumnError) Error() string {
	return fmt.Sprintf("schema: table %q has no column %q", e.Table, e.Column)
}

// IsUnknownColumn returns true if the error is an UnknownColumnError.
func IsUnknownColumn(err error) bool {
	var e *UnknownColumnError
	return errors.As(err, &e)
}

// MissingIdentifierError is returned when a constraint or index
// command lacks a required identifier. Which identifies the missing
// field; it is "name" except for SQL Server full-text commands, which
// additionally require "catalog" and "key index" identifiers.
type MissingIdentifierError struct {
	Table string
	Kind  CommandKind
	Which string
}

// Error returns the error string.
func (e *MissingIdentifierError) Error() string {
	return fmt.Sprintf("schema: %s command on table %q requires a %s", e.Kind, e.Table, e.Which)
}

// IsMissingIdentifier returns true if the error is a MissingIdentifierError.
func IsMissingIdentifier(err error) bool {
	var e *MissingIdentifierError
	return errors.As(err, &e)
}

// IncompleteForeignKeyError is returned when a foreign-key command is
// missing its referenced table or columns.
type IncompleteForeignKeyError struct {
	Table   string
	Name    string
	Missing string // "columns", "referenced table" or "referenced columns"
}

// Error returns the error string.
func (e *IncompleteForeignKeyError) Error() string {
	return fmt.Sprintf("schema: foreign key %q on table %q is missing its %s", e.Name, e.Table, e.Missing)
}

// IsIncompleteForeignKey returns true if the error is an IncompleteForeignKeyError.
func IsIncompleteForeignKey(err error) bool {
	var e *IncompleteForeignKeyError
	return errors.As(err, &e)
}

// IdentifierInjectionError is returned when an identifier cannot be
// safely embedded in generated SQL: a quoted identifier containing the
// dialect's closing quote, or an unquoted identifier that is not a
// plain SQL name.
type IdentifierInjectionError struct {
	Dialect string
	Ident   string
}

// Error returns the error string.
func (e *IdentifierInjectionError) Error() string {
	return fmt.Sprintf("schema: identifier %q cannot be safely quoted for dialect %s", e.Ident, e.Dialect)
}

// IsIdentifierInjection returns true if the error is an IdentifierInjectionError.
func IsIdentifierInjection(err error) bool {
	var e *IdentifierInjectionError
	return errors.As(err, &e)
}

// UnsupportedOperationError is returned when a dialect cannot express
// a command kind as DDL at all (for example, SQLite cannot add a
// primary key to an existing table). The refusal is explicit; no
// grammar compiles an unsupported command to empty SQL.
type UnsupportedOperationError struct {
	Dialect string
	Kind    CommandKind
}

// Error returns the error string.
func (e *UnsupportedOperationError) Error() string {
	return fmt.Sprintf("schema: dialect %s does not support %s commands", e.Dialect, e.Kind)
}

// IsUnsupportedOperation returns true if the error is an UnsupportedOperationError.
func IsUnsupportedOperation(err error) bool {
	var e *UnsupportedOperationError
	return errors.As(err, &e)
}

// AggregateError collects the errors of a batch compilation. Batch
// compilation continues past a failed command so that one bad
// migration surfaces every problem, not just the first.
type AggregateError struct {
	Errors []error
}

// Error returns the error string.
func (e *AggregateError) Error() string {
	if len(e.Errors) == 0 {
		return "schema: no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	var sb strings.Builder
	sb.WriteString("schema: multiple errors:")
	for i, err := range e.Errors {
		fmt.Fprintf(&sb, "\n  [%d] %v", i+1, err)
	}
	return sb.String()
}

// Unwrap returns the collected errors.
func (e *AggregateError) Unwrap() []error { return e.Errors }

// NewAggregateError returns nil when errs contains no errors, the
// single error when it contains exactly one, and an AggregateError
// otherwise.
func NewAggregateError(errs ...error) error {
	var filtered []error
	for _, err := range errs {
		if err != nil {
			filtered = append(filtered, err)
		}
	}
	switch len(filtered) {
	case 0:
		return nil
	case 1:
		return filtered[0]
	}
	return &AggregateError{Errors: filtered}
}
