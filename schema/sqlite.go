package schema

import (
	"fmt"

	"github.com/syssam/blueprint/dialect"
)

func init() {
	Register(SQLite{})
}

// SQLite is the SQLite grammar. Identifiers are backtick-quoted and
// type names render lowercase, following SQLite's conventional
// affinity spellings. ALTER TABLE is limited to adding and dropping
// single columns and renaming, so primary-key, foreign-key and
// full-text commands against an existing table are refused with a
// typed UnsupportedOperationError rather than compiled to nothing.
type SQLite struct{}

// Dialect returns the dialect name.
func (SQLite) Dialect() string { return dialect.SQLite }

func (SQLite) quotes() (string, string) { return "`", "`" }

// QuoteIdent wraps an identifier in backticks.
func (g SQLite) QuoteIdent(name string) (string, error) {
	return quoteIdent(g, name)
}

// TypeSQL maps a logical type to SQLite column syntax.
func (g SQLite) TypeSQL(c *Column) (string, error) {
	switch c.Type {
	case TypeBool:
		return "tinyint(1)", nil
	case TypeInt, TypeBigInt, TypeSmallInt:
		return "integer", nil
	case TypeFloat, TypeDecimal:
		return "float", nil
	case TypeString:
		return "varchar", nil
	case TypeText:
		return "text", nil
	case TypeDate:
		return "date", nil
	case TypeTime:
		return "time", nil
	case TypeDateTime, TypeTimestamp:
		return "datetime", nil
	case TypeBinary:
		return "blob", nil
	case TypeEnum:
		if err := safeIdent(g, c.Name); err != nil {
			return "", err
		}
		return fmt.Sprintf("varchar CHECK (%s IN (%s))", c.Name, quoteValues(c.Values)), nil
	case TypeJSON:
		return "text", nil
	case TypeUUID:
		return "varchar", nil
	}
	return "", &UnsupportedTypeError{Dialect: g.Dialect(), Column: c.Name, Type: c.Type}
}

// columnSQL orders modifiers as: type, nullability, default,
// PRIMARY KEY AUTOINCREMENT. SQLite couples increment and primary key.
func (g SQLite) columnSQL(c *Column) (string, error) {
	if err := checkIncrement(g, c); err != nil {
		return "", err
	}
	name, err := quoteIdent(g, c.Name)
	if err != nil {
		return "", err
	}
	typ, err := g.TypeSQL(c)
	if err != nil {
		return "", err
	}
	s := name + " " + typ + " " + nullableSQL(c)
	if c.Default != nil {
		d, err := defaultSQL(c, boolAsInt)
		if err != nil {
			return "", err
		}
		s += " DEFAULT " + d
	}
	if c.Increment {
		s += " PRIMARY KEY AUTOINCREMENT"
	}
	return s, nil
}

// CompileCommand dispatches on the command kind. Column additions and
// drops compile to one ALTER TABLE statement per column.
func (g SQLite) CompileCommand(t *Table, cmd *Command) ([]string, error) {
	table, err := tableName(g, t)
	if err != nil {
		return nil, err
	}
	switch cmd.Kind {
	case KindCreate:
		return compileCreate(g, t)
	case KindAdd:
		cols, err := resolveColumns(t, cmd.Columns)
		if err != nil {
			return nil, err
		}
		stmts := make([]string, len(cols))
		for i, c := range cols {
			def, err := g.columnSQL(c)
			if err != nil {
				return nil, err
			}
			stmts[i] = fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s", table, def)
		}
		return stmts, nil
	case KindDropColumn:
		stmts := make([]string, len(cmd.Columns))
		for i, name := range cmd.Columns {
			if !t.HasColumn(name) {
				return nil, &UnknownColumnError{Table: t.Name, Column: name}
			}
			if err := safeIdent(g, name); err != nil {
				return nil, err
			}
			stmts[i] = fmt.Sprintf("ALTER TABLE %s DROP COLUMN %s", table, name)
		}
		return stmts, nil
	case KindDropTable:
		return []string{"DROP TABLE " + table}, nil
	case KindRename:
		to, err := renameTarget(g, t, cmd)
		if err != nil {
			return nil, err
		}
		return []string{fmt.Sprintf("ALTER TABLE %s RENAME TO %s", table, to)}, nil
	case KindUnique:
		cols, err := indexColumns(g, t, cmd)
		if err != nil {
			return nil, err
		}
		return []string{fmt.Sprintf("CREATE UNIQUE INDEX %s ON %s (%s)", cmd.Name, table, cols)}, nil
	case KindIndex:
		cols, err := indexColumns(g, t, cmd)
		if err != nil {
			return nil, err
		}
		return []string{fmt.Sprintf("CREATE INDEX %s ON %s (%s)", cmd.Name, table, cols)}, nil
	case KindDropUnique, KindDropIndex:
		if err := requireName(g, t, cmd); err != nil {
			return nil, err
		}
		return []string{"DROP INDEX " + cmd.Name}, nil
	case KindPrimary, KindDropPrimary, KindFulltext, KindDropFulltext, KindForeign, KindDropForeign:
		return nil, &UnsupportedOperationError{Dialect: g.Dialect(), Kind: cmd.Kind}
	}
	return nil, fmt.Errorf("schema: unknown command kind %q", cmd.Kind)
}
