package schema

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// A Grammar holds the compilation rules of one dialect: logical-type
// mapping, identifier quoting and per-command statement templates.
// Grammars are stateless values and safe for concurrent use.
type Grammar interface {
	// Dialect returns the dialect name the grammar compiles for.
	Dialect() string

	// TypeSQL maps a column's logical type and parameters to the
	// dialect's SQL type syntax. It fails with an UnsupportedTypeError
	// when no mapping exists.
	TypeSQL(c *Column) (string, error)

	// QuoteIdent wraps an identifier in the dialect's quote pair. It
	// fails with an IdentifierInjectionError when the identifier
	// contains the dialect's closing quote.
	QuoteIdent(name string) (string, error)

	// CompileCommand compiles one command against its table into an
	// ordered sequence of SQL statements. Most kinds yield exactly one
	// statement; SQL Server full-text commands yield two.
	CompileCommand(t *Table, cmd *Command) ([]string, error)
}

// grammar is the package-internal surface shared helpers compile
// against. Every registered Grammar implements it.
type grammar interface {
	Grammar

	// quotes returns the dialect's identifier quote pair.
	quotes() (open, close string)

	// columnSQL builds one column's full definition clause.
	columnSQL(c *Column) (string, error)
}

// ErrUnknownDialect is returned by Lookup for unregistered names.
var ErrUnknownDialect = errors.New("schema: unknown dialect")

// grammars is populated by the dialect files' init functions and
// read-only afterwards.
var grammars = make(map[string]Grammar)

// Register adds a grammar to the registry. It panics on a duplicate
// dialect name; registration happens once at process start.
func Register(g Grammar) {
	name := g.Dialect()
	if _, dup := grammars[name]; dup {
		panic("schema: Register called twice for dialect " + name)
	}
	grammars[name] = g
}

// Lookup resolves a dialect name to its grammar. The returned grammar
// is then passed explicitly into compile calls; nothing resolves it
// again mid-compilation.
func Lookup(name string) (Grammar, error) {
	g, ok := grammars[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownDialect, name)
	}
	return g, nil
}

// Dialects returns the registered dialect names in sorted order.
func Dialects() []string {
	names := make([]string, 0, len(grammars))
	for name := range grammars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// validIdentRe matches identifiers that are safe to emit unquoted:
// index and constraint names, and column references in command
// statements.
var validIdentRe = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// quoteIdent wraps name in the grammar's quote pair, rejecting names
// that embed the closing quote.
func quoteIdent(g grammar, name string) (string, error) {
	open, close := g.quotes()
	if name == "" || strings.Contains(name, close) {
		return "", &IdentifierInjectionError{Dialect: g.Dialect(), Ident: name}
	}
	return open + name + close, nil
}

// safeIdent validates an identifier that is emitted without quoting.
func safeIdent(g grammar, name string) error {
	if !validIdentRe.MatchString(name) {
		return &IdentifierInjectionError{Dialect: g.Dialect(), Ident: name}
	}
	return nil
}

// tableName quotes the table name of a command target.
func tableName(g grammar, t *Table) (string, error) {
	return quoteIdent(g, t.Name)
}

// commandColumns resolves a command's column references against the
// table and returns them comma-joined for embedding in a statement.
// Every name must exist on the table and be a plain SQL identifier.
func commandColumns(g grammar, t *Table, names []string) (string, error) {
	resolved := make([]string, len(names))
	for i, name := range names {
		if !t.HasColumn(name) {
			return "", &UnknownColumnError{Table: t.Name, Column: name}
		}
		if err := safeIdent(g, name); err != nil {
			return "", err
		}
		resolved[i] = name
	}
	return strings.Join(resolved, ", "), nil
}

// columnList validates and joins identifiers that are not required to
// exist on the table, such as the referenced columns of a foreign key.
func columnList(g grammar, names []string) (string, error) {
	for _, name := range names {
		if err := safeIdent(g, name); err != nil {
			return "", err
		}
	}
	return strings.Join(names, ", "), nil
}

// resolveColumns maps a command's column references to the table's
// column definitions, failing on the first missing name.
func resolveColumns(t *Table, names []string) ([]*Column, error) {
	cols := make([]*Column, len(names))
	for i, name := range names {
		c, ok := t.Column(name)
		if !ok {
			return nil, &UnknownColumnError{Table: t.Name, Column: name}
		}
		cols[i] = c
	}
	return cols, nil
}

// indexColumns validates an index-family command (primary, unique,
// index, fulltext) and returns its resolved column list.
func indexColumns(g grammar, t *Table, cmd *Command) (string, error) {
	if err := requireName(g, t, cmd); err != nil {
		return "", err
	}
	if len(cmd.Columns) == 0 {
		return "", &MissingIdentifierError{Table: t.Name, Kind: cmd.Kind, Which: "column list"}
	}
	return commandColumns(g, t, cmd.Columns)
}

// renameTarget validates the new name of a rename command.
func renameTarget(g grammar, t *Table, cmd *Command) (string, error) {
	if cmd.To == "" {
		return "", &MissingIdentifierError{Table: t.Name, Kind: cmd.Kind, Which: "new table name"}
	}
	return quoteIdent(g, cmd.To)
}

// requireName checks the identifier of constraint and index commands.
func requireName(g grammar, t *Table, cmd *Command) error {
	if cmd.Name == "" {
		return &MissingIdentifierError{Table: t.Name, Kind: cmd.Kind, Which: "name"}
	}
	return safeIdent(g, cmd.Name)
}

// validateForeign checks a foreign-key command for completeness before
// any SQL is produced.
func validateForeign(t *Table, cmd *Command) error {
	switch {
	case len(cmd.Columns) == 0:
		return &IncompleteForeignKeyError{Table: t.Name, Name: cmd.Name, Missing: "columns"}
	case cmd.RefTable == "":
		return &IncompleteForeignKeyError{Table: t.Name, Name: cmd.Name, Missing: "referenced table"}
	case len(cmd.RefColumns) == 0:
		return &IncompleteForeignKeyError{Table: t.Name, Name: cmd.Name, Missing: "referenced columns"}
	}
	return nil
}

// compileCreate assembles the CREATE TABLE statement: the quoted table
// name and every column definition in declared order, comma-joined.
// Indexes and constraints are separate commands; the inline primary
// key of an incrementing column is the only constraint emitted here.
func compileCreate(g grammar, t *Table) ([]string, error) {
	table, err := tableName(g, t)
	if err != nil {
		return nil, err
	}
	cols := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		if cols[i], err = g.columnSQL(c); err != nil {
			return nil, err
		}
	}
	return []string{fmt.Sprintf("CREATE TABLE %s (%s)", table, strings.Join(cols, ", "))}, nil
}

// compileForeign assembles the shared ADD CONSTRAINT ... FOREIGN KEY
// statement used by every dialect that supports it.
func compileForeign(g grammar, t *Table, cmd *Command) ([]string, error) {
	if err := requireName(g, t, cmd); err != nil {
		return nil, err
	}
	if err := validateForeign(t, cmd); err != nil {
		return nil, err
	}
	table, err := tableName(g, t)
	if err != nil {
		return nil, err
	}
	cols, err := commandColumns(g, t, cmd.Columns)
	if err != nil {
		return nil, err
	}
	ref, err := quoteIdent(g, cmd.RefTable)
	if err != nil {
		return nil, err
	}
	refCols, err := columnList(g, cmd.RefColumns)
	if err != nil {
		return nil, err
	}
	stmt := fmt.Sprintf("ALTER TABLE %s ADD CONSTRAINT %s FOREIGN KEY (%s) REFERENCES %s (%s)",
		table, cmd.Name, cols, ref, refCols)
	if cmd.OnDelete != "" {
		stmt += " ON DELETE " + string(cmd.OnDelete)
	}
	if cmd.OnUpdate != "" {
		stmt += " ON UPDATE " + string(cmd.OnUpdate)
	}
	return []string{stmt}, nil
}

// nullableSQL renders the explicit nullability clause. There is no
// unspecified state downstream of the clause builder.
func nullableSQL(c *Column) string {
	if c.Nullable {
		return "NULL"
	}
	return "NOT NULL"
}

// checkIncrement guards the invariant that auto-increment implies an
// integer-family type.
func checkIncrement(g grammar, c *Column) error {
	if c.Increment && !c.Type.Integer() {
		return &UnsupportedTypeError{Dialect: g.Dialect(), Column: c.Name, Type: c.Type}
	}
	return nil
}

// defaultSQL renders a column's default value. Typed string values are
// single-quoted with embedded quotes doubled; raw defaults pass
// through verbatim. Defaults declared for uuid columns must parse.
func defaultSQL(c *Column, boolSQL func(bool) string) (string, error) {
	d := c.Default
	switch {
	case d.Null():
		return "NULL", nil
	case d.Raw():
		return fmt.Sprint(d.Value()), nil
	}
	switch v := d.Value().(type) {
	case bool:
		return boolSQL(v), nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case uint:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint64:
		return strconv.FormatUint(v, 10), nil
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case string:
		if c.Type == TypeUUID {
			if _, err := uuid.Parse(v); err != nil {
				return "", fmt.Errorf("schema: invalid uuid default %q for column %q: %w", v, c.Name, err)
			}
		}
		return quoteValue(v), nil
	default:
		return quoteValue(fmt.Sprint(v)), nil
	}
}

// boolAsInt renders booleans as 0/1; used by every dialect but Postgres.
func boolAsInt(v bool) string {
	if v {
		return "1"
	}
	return "0"
}

// boolAsKeyword renders booleans as TRUE/FALSE.
func boolAsKeyword(v bool) string {
	if v {
		return "TRUE"
	}
	return "FALSE"
}

// quoteValue single-quotes a SQL string literal, doubling embedded
// quotes.
func quoteValue(v string) string {
	return "'" + strings.ReplaceAll(v, "'", "''") + "'"
}

// quoteValues renders an enum member list.
func quoteValues(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = quoteValue(v)
	}
	return strings.Join(quoted, ", ")
}

// sizeOr returns the string size or the conventional default.
func sizeOr(c *Column, fallback int) int {
	if c.Size > 0 {
		return c.Size
	}
	return fallback
}

// precisionScale returns the decimal parameters or the conventional
// 8,2 defaults.
func precisionScale(c *Column) (int, int) {
	p, s := c.Precision, c.Scale
	if p == 0 {
		p = 8
	}
	if s == 0 {
		s = 2
	}
	return p, s
}
