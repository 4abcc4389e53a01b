// Package schema compiles abstract table descriptions into concrete
// DDL statements for the supported SQL dialects.
//
// A Table owns an ordered list of Columns and an ordered list of
// Commands. Each Command describes one structural change (create the
// table, add an index, drop a foreign key, ...) and compiles
// independently of the others. Grammars implement the per-dialect
// rules; see Compile.
package schema

// A CommandKind discriminates the structural operations a Command can
// describe.
type CommandKind string

// Command kinds.
const (
	KindCreate       CommandKind = "create"
	KindAdd          CommandKind = "add"
	KindDropColumn   CommandKind = "drop_column"
	KindDropTable    CommandKind = "drop"
	KindRename       CommandKind = "rename"
	KindPrimary      CommandKind = "primary"
	KindDropPrimary  CommandKind = "drop_primary"
	KindUnique       CommandKind = "unique"
	KindDropUnique   CommandKind = "drop_unique"
	KindIndex        CommandKind = "index"
	KindDropIndex    CommandKind = "drop_index"
	KindFulltext     CommandKind = "fulltext"
	KindDropFulltext CommandKind = "drop_fulltext"
	KindForeign      CommandKind = "foreign"
	KindDropForeign  CommandKind = "drop_foreign"
)

// Named reports whether the kind requires a constraint or index
// identifier. Create, column and rename commands address the table
// itself and carry no identifier.
func (k CommandKind) Named() bool {
	switch k {
	case KindCreate, KindAdd, KindDropColumn, KindDropTable, KindRename:
		return false
	}
	return true
}

// ReferenceOption is a referential action for foreign keys.
type ReferenceOption string

// Reference options.
const (
	NoAction   ReferenceOption = "NO ACTION"
	Restrict   ReferenceOption = "RESTRICT"
	Cascade    ReferenceOption = "CASCADE"
	SetNull    ReferenceOption = "SET NULL"
	SetDefault ReferenceOption = "SET DEFAULT"
)

// A Command describes one structural change to a table. Commands
// reference the owning table's columns by name only; the compiler
// resolves the names at compile time and fails on a missing one.
type Command struct {
	// Kind of the command.
	Kind CommandKind
	// Name is the constraint or index identifier. Required for every
	// kind for which Named reports true.
	Name string
	// Columns are the referenced column names, in order.
	Columns []string
	// RefTable and RefColumns name the referenced table and columns of
	// foreign-key commands.
	RefTable   string
	RefColumns []string
	// OnDelete and OnUpdate are optional referential actions of
	// foreign-key commands.
	OnDelete ReferenceOption
	OnUpdate ReferenceOption
	// Catalog is the full-text catalog identifier on SQL Server.
	Catalog string
	// KeyIndex is the unique key index backing a SQL Server full-text
	// index.
	KeyIndex string
	// To is the new table name of rename commands.
	To string
}

// A Table is an ordered collection of columns and the structural
// commands to compile against them. Column names are unique within a
// table. The compiler treats tables as read-only.
type Table struct {
	Name     string
	Columns  []*Column
	Commands []*Command

	columns map[string]*Column
}

// NewTable returns a new table with the given name.
func NewTable(name string) *Table {
	return &Table{
		Name:    name,
		columns: make(map[string]*Column),
	}
}

// AddColumn appends a column to the table. It returns the table for
// chaining.
func (t *Table) AddColumn(c *Column) *Table {
	if t.columns == nil {
		t.columns = make(map[string]*Column)
	}
	t.columns[c.Name] = c
	t.Columns = append(t.Columns, c)
	return t
}

// AddCommand appends a command to the table. It returns the table for
// chaining.
func (t *Table) AddCommand(c *Command) *Table {
	t.Commands = append(t.Commands, c)
	return t
}

// Column returns the column with the given name, if it exists.
func (t *Table) Column(name string) (*Column, bool) {
	if c, ok := t.columns[name]; ok {
		return c, true
	}
	// Columns may have been appended directly to the slice.
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// HasColumn reports whether a column with the given name exists.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.Column(name)
	return ok
}
