package schema

import (
	"fmt"
	"strings"
)

// ValidationError describes one problem found in a table description
// before compilation.
type ValidationError struct {
	Table   string
	Column  string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("%s.%s: %s", e.Table, e.Column, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Table, e.Message)
}

// ValidationResult holds the results of a schema validation pass.
type ValidationResult struct {
	Errors []*ValidationError
}

// HasErrors returns true if there are any validation errors.
func (r *ValidationResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// String returns a human-readable summary of the validation result.
func (r *ValidationResult) String() string {
	if !r.HasErrors() {
		return "No issues found"
	}
	var sb strings.Builder
	sb.WriteString("Errors:\n")
	for _, e := range r.Errors {
		sb.WriteString("  - ")
		sb.WriteString(e.Error())
		sb.WriteString("\n")
	}
	return sb.String()
}

func (r *ValidationResult) addf(table, column, format string, args ...any) {
	r.Errors = append(r.Errors, &ValidationError{
		Table:   table,
		Column:  column,
		Message: fmt.Sprintf(format, args...),
	})
}

// ValidateTable checks a single table description: column-name
// uniqueness, type validity, the increment-implies-integer invariant,
// and that every command's column references resolve. It is a
// dialect-independent pre-flight; grammars re-check what they depend
// on during compilation.
func ValidateTable(t *Table) *ValidationResult {
	result := &ValidationResult{}

	colNames := make(map[string]bool, len(t.Columns))
	for _, c := range t.Columns {
		if colNames[c.Name] {
			result.addf(t.Name, c.Name, "duplicate column name")
		}
		colNames[c.Name] = true
		if !c.Type.Valid() {
			result.addf(t.Name, c.Name, "invalid logical type")
		}
		if c.Increment && !c.Type.Integer() {
			result.addf(t.Name, c.Name, "auto-increment requires an integer type, got %s", c.Type)
		}
	}

	names := make(map[string]bool, len(t.Commands))
	for _, cmd := range t.Commands {
		if cmd.Kind.Named() {
			if cmd.Name == "" {
				result.addf(t.Name, "", "%s command has no name", cmd.Kind)
			} else if names[cmd.Name] {
				result.addf(t.Name, "", "duplicate constraint name: %s", cmd.Name)
			}
			names[cmd.Name] = true
		}
		for _, col := range cmd.Columns {
			if !colNames[col] {
				result.addf(t.Name, "", "%s command references non-existent column %q", cmd.Kind, col)
			}
		}
		if cmd.Kind == KindForeign {
			if cmd.RefTable == "" {
				result.addf(t.Name, "", "foreign key %q has no referenced table", cmd.Name)
			}
			if len(cmd.RefColumns) == 0 {
				result.addf(t.Name, "", "foreign key %q has no referenced columns", cmd.Name)
			}
		}
	}

	return result
}

// ValidateTables checks a batch of tables, additionally verifying that
// table names are unique and that foreign keys reference tables known
// to the batch.
func ValidateTables(tables []*Table) *ValidationResult {
	result := &ValidationResult{}

	tableNames := make(map[string]bool, len(tables))
	for _, t := range tables {
		if tableNames[t.Name] {
			result.addf(t.Name, "", "duplicate table name")
		}
		tableNames[t.Name] = true
		result.Errors = append(result.Errors, ValidateTable(t).Errors...)
	}

	for _, t := range tables {
		for _, cmd := range t.Commands {
			if cmd.Kind == KindForeign && cmd.RefTable != "" && !tableNames[cmd.RefTable] {
				result.addf(t.Name, "", "foreign key %q references unknown table %q", cmd.Name, cmd.RefTable)
			}
		}
	}

	return result
}
