package schema

// A Type is a logical column type, independent of any dialect's
// concrete SQL type name. Every grammar maps every Type.
type Type int

// Logical column types.
const (
	TypeInvalid Type = iota
	TypeBool
	TypeInt
	TypeBigInt
	TypeSmallInt
	TypeFloat
	TypeDecimal
	TypeString
	TypeText
	TypeDate
	TypeTime
	TypeDateTime
	TypeTimestamp
	TypeBinary
	TypeEnum
	TypeJSON
	TypeUUID
	endTypes
)

var typeNames = [...]string{
	TypeInvalid:   "invalid",
	TypeBool:      "boolean",
	TypeInt:       "integer",
	TypeBigInt:    "big_integer",
	TypeSmallInt:  "small_integer",
	TypeFloat:     "float",
	TypeDecimal:   "decimal",
	TypeString:    "string",
	TypeText:      "text",
	TypeDate:      "date",
	TypeTime:      "time",
	TypeDateTime:  "datetime",
	TypeTimestamp: "timestamp",
	TypeBinary:    "binary",
	TypeEnum:      "enum",
	TypeJSON:      "json",
	TypeUUID:      "uuid",
}

// String returns the logical name of the type.
func (t Type) String() string {
	if t < TypeInvalid || t >= endTypes {
		return "invalid"
	}
	return typeNames[t]
}

// Valid reports whether t is one of the enumerated logical types.
func (t Type) Valid() bool {
	return t > TypeInvalid && t < endTypes
}

// Integer reports whether t belongs to the integer family.
func (t Type) Integer() bool {
	switch t {
	case TypeInt, TypeBigInt, TypeSmallInt:
		return true
	}
	return false
}

// Numeric reports whether t is an integer or floating-point family type.
func (t Type) Numeric() bool {
	return t.Integer() || t == TypeFloat || t == TypeDecimal
}

// Types returns all enumerated logical types in declaration order.
// It is used by grammars and tests to cover the full type set.
func Types() []Type {
	ts := make([]Type, 0, int(endTypes)-1)
	for t := TypeInvalid + 1; t < endTypes; t++ {
		ts = append(ts, t)
	}
	return ts
}

// TypeByName resolves a logical type from its name. It returns
// TypeInvalid for unknown names.
func TypeByName(name string) Type {
	for t := TypeInvalid + 1; t < endTypes; t++ {
		if typeNames[t] == name {
			return t
		}
	}
	return TypeInvalid
}

// A Column describes one table column: its logical type, type
// parameters and modifier flags. Columns are value objects; the
// compiler never mutates them.
type Column struct {
	// Name of the column.
	Name string
	// Type is the logical column type.
	Type Type
	// Size is the length of string columns. Zero means the dialect
	// default (255).
	Size int
	// Precision and Scale parameterize decimal columns. Zero values
	// mean the dialect defaults (8 and 2).
	Precision int
	Scale     int
	// Values are the allowed members of enum columns.
	Values []string
	// Nullable renders NULL instead of NOT NULL. Nullability is always
	// rendered explicitly.
	Nullable bool
	// Unsigned marks integer columns as unsigned on dialects that
	// support it. Elsewhere it renders nothing.
	Unsigned bool
	// Increment marks the column as auto-incrementing. It implies an
	// integer-family type and an inline primary key.
	Increment bool
	// Default is the column default. A nil Default means no DEFAULT
	// clause; see the Default type for the NULL and raw variants.
	Default *Default
}

// A Default is the modeled default value of a column. It
// distinguishes three states that a bare interface value cannot:
// no default at all (a nil *Default), an explicit NULL default, and
// a typed value. Raw defaults bypass value quoting for trusted SQL
// expressions such as CURRENT_TIMESTAMP.
type Default struct {
	value any
	null  bool
	raw   bool
}

// DefaultValue returns a Default holding a typed value. String and
// date-like values are single-quoted and escaped when rendered.
func DefaultValue(v any) *Default {
	return &Default{value: v}
}

// DefaultNull returns an explicit NULL default.
func DefaultNull() *Default {
	return &Default{null: true}
}

// DefaultRaw returns a Default whose expression is emitted verbatim.
// The expression is trusted; no quoting or escaping is applied.
func DefaultRaw(expr string) *Default {
	return &Default{value: expr, raw: true}
}

// Null reports whether the default is an explicit NULL.
func (d *Default) Null() bool { return d.null }

// Raw reports whether the default is a trusted raw expression.
func (d *Default) Raw() bool { return d.raw }

// Value returns the default value. It is nil for NULL defaults.
func (d *Default) Value() any { return d.value }
