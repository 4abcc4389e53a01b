package schema

import (
	"fmt"
	"strings"

	"github.com/syssam/blueprint/dialect"
)

func init() {
	Register(Postgres{})
}

// Postgres is the PostgreSQL grammar. Identifiers are double-quoted,
// incrementing columns use the SERIAL family, unique and primary keys
// are table constraints, and full-text indexes compile to GIN indexes
// over to_tsvector expressions.
type Postgres struct{}

// Dialect returns the dialect name.
func (Postgres) Dialect() string { return dialect.Postgres }

func (Postgres) quotes() (string, string) { return `"`, `"` }

// QuoteIdent wraps an identifier in double quotes.
func (g Postgres) QuoteIdent(name string) (string, error) {
	return quoteIdent(g, name)
}

// TypeSQL maps a logical type to PostgreSQL column syntax. An
// incrementing integer column maps to the SERIAL family instead.
func (g Postgres) TypeSQL(c *Column) (string, error) {
	if c.Increment {
		switch c.Type {
		case TypeInt:
			return "SERIAL", nil
		case TypeBigInt:
			return "BIGSERIAL", nil
		case TypeSmallInt:
			return "SMALLSERIAL", nil
		}
	}
	switch c.Type {
	case TypeBool:
		return "BOOLEAN", nil
	case TypeInt:
		return "INTEGER", nil
	case TypeBigInt:
		return "BIGINT", nil
	case TypeSmallInt:
		return "SMALLINT", nil
	case TypeFloat:
		return "DOUBLE PRECISION", nil
	case TypeDecimal:
		p, s := precisionScale(c)
		return fmt.Sprintf("DECIMAL(%d, %d)", p, s), nil
	case TypeString:
		return fmt.Sprintf("VARCHAR(%d)", sizeOr(c, 255)), nil
	case TypeText:
		return "TEXT", nil
	case TypeDate:
		return "DATE", nil
	case TypeTime:
		return "TIME", nil
	case TypeDateTime, TypeTimestamp:
		return "TIMESTAMP", nil
	case TypeBinary:
		return "BYTEA", nil
	case TypeEnum:
		if err := safeIdent(g, c.Name); err != nil {
			return "", err
		}
		return fmt.Sprintf("VARCHAR(255) CHECK (%s IN (%s))", c.Name, quoteValues(c.Values)), nil
	case TypeJSON:
		return "JSON", nil
	case TypeUUID:
		return "UUID", nil
	}
	return "", &UnsupportedTypeError{Dialect: g.Dialect(), Column: c.Name, Type: c.Type}
}

// columnSQL orders modifiers as: type, nullability, default, primary
// key (for incrementing columns). Unsigned has no PostgreSQL
// rendering; its omission is deliberate, not an empty clause.
func (g Postgres) columnSQL(c *Column) (string, error) {
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
	parts := []string{name, typ, nullableSQL(c)}
	if c.Default != nil {
		d, err := defaultSQL(c, boolAsKeyword)
		if err != nil {
			return "", err
		}
		parts = append(parts, "DEFAULT "+d)
	}
	if c.Increment {
		parts = append(parts, "PRIMARY KEY")
	}
	return strings.Join(parts, " "), nil
}

// CompileCommand dispatches on the command kind.
func (g Postgres) CompileCommand(t *Table, cmd *Command) ([]string, error) {
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
		adds := make([]string, len(cols))
		for i, c := range cols {
			def, err := g.columnSQL(c)
			if err != nil {
				return nil, err
			}
			adds[i] = "ADD COLUMN " + def
		}
		return []string{fmt.Sprintf("ALTER TABLE %s %s", table, strings.Join(adds, ", "))}, nil
	case KindDropColumn:
		drops := make([]string, len(cmd.Columns))
		for i, name := range cmd.Columns {
			if !t.HasColumn(name) {
				return nil, &UnknownColumnError{Table: t.Name, Column: name}
			}
			if err := safeIdent(g, name); err != nil {
				return nil, err
			}
			drops[i] = "DROP COLUMN " + name
		}
		return []string{fmt.Sprintf("ALTER TABLE %s %s", table, strings.Join(drops, ", "))}, nil
	case KindDropTable:
		return []string{"DROP TABLE " + table}, nil
	case KindRename:
		to, err := renameTarget(g, t, cmd)
		if err != nil {
			return nil, err
		}
		return []string{fmt.Sprintf("ALTER TABLE %s RENAME TO %s", table, to)}, nil
	case KindPrimary:
		cols, err := indexColumns(g, t, cmd)
		if err != nil {
			return nil, err
		}
		return []string{fmt.Sprintf("ALTER TABLE %s ADD CONSTRAINT %s PRIMARY KEY (%s)", table, cmd.Name, cols)}, nil
	case KindUnique:
		cols, err := indexColumns(g, t, cmd)
		if err != nil {
			return nil, err
		}
		return []string{fmt.Sprintf("ALTER TABLE %s ADD CONSTRAINT %s UNIQUE (%s)", table, cmd.Name, cols)}, nil
	case KindDropPrimary, KindDropUnique, KindDropForeign:
		if err := requireName(g, t, cmd); err != nil {
			return nil, err
		}
		return []string{fmt.Sprintf("ALTER TABLE %s DROP CONSTRAINT %s", table, cmd.Name)}, nil
	case KindIndex:
		cols, err := indexColumns(g, t, cmd)
		if err != nil {
			return nil, err
		}
		return []string{fmt.Sprintf("CREATE INDEX %s ON %s (%s)", cmd.Name, table, cols)}, nil
	case KindFulltext:
		if err := requireName(g, t, cmd); err != nil {
			return nil, err
		}
		if len(cmd.Columns) == 0 {
			return nil, &MissingIdentifierError{Table: t.Name, Kind: cmd.Kind, Which: "column list"}
		}
		vectors := make([]string, len(cmd.Columns))
		for i, name := range cmd.Columns {
			if !t.HasColumn(name) {
				return nil, &UnknownColumnError{Table: t.Name, Column: name}
			}
			if err := safeIdent(g, name); err != nil {
				return nil, err
			}
			vectors[i] = fmt.Sprintf("TO_TSVECTOR('english', %s)", name)
		}
		return []string{fmt.Sprintf("CREATE INDEX %s ON %s USING GIN ((%s))",
			cmd.Name, table, strings.Join(vectors, " || "))}, nil
	case KindDropIndex, KindDropFulltext:
		if err := requireName(g, t, cmd); err != nil {
			return nil, err
		}
		return []string{"DROP INDEX " + cmd.Name}, nil
	case KindForeign:
		return compileForeign(g, t, cmd)
	}
	return nil, fmt.Errorf("schema: unknown command kind %q", cmd.Kind)
}
