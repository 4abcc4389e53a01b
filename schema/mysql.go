package schema

import (
	"fmt"
	"strings"

	"github.com/syssam/blueprint/dialect"
)

func init() {
	Register(MySQL{})
}

// MySQL is the grammar of the MySQL/MariaDB family. Identifiers are
// backtick-quoted; indexes and keys are managed through ALTER TABLE.
type MySQL struct{}

// Dialect returns the dialect name.
func (MySQL) Dialect() string { return dialect.MySQL }

func (MySQL) quotes() (string, string) { return "`", "`" }

// QuoteIdent wraps an identifier in backticks.
func (g MySQL) QuoteIdent(name string) (string, error) {
	return quoteIdent(g, name)
}

// TypeSQL maps a logical type to MySQL column syntax.
func (g MySQL) TypeSQL(c *Column) (string, error) {
	switch c.Type {
	case TypeBool:
		return "TINYINT(1)", nil
	case TypeInt:
		return "INT", nil
	case TypeBigInt:
		return "BIGINT", nil
	case TypeSmallInt:
		return "SMALLINT", nil
	case TypeFloat:
		return "DOUBLE", nil
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
	case TypeDateTime:
		return "DATETIME", nil
	case TypeTimestamp:
		return "TIMESTAMP", nil
	case TypeBinary:
		return "BLOB", nil
	case TypeEnum:
		return fmt.Sprintf("ENUM(%s)", quoteValues(c.Values)), nil
	case TypeJSON:
		return "JSON", nil
	case TypeUUID:
		return "CHAR(36)", nil
	}
	return "", &UnsupportedTypeError{Dialect: g.Dialect(), Column: c.Name, Type: c.Type}
}

// columnSQL orders modifiers as: type, UNSIGNED, nullability, default,
// increment.
func (g MySQL) columnSQL(c *Column) (string, error) {
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
	parts := []string{name, typ}
	if c.Unsigned && c.Type.Numeric() {
		parts = append(parts, "UNSIGNED")
	}
	parts = append(parts, nullableSQL(c))
	if c.Default != nil {
		d, err := defaultSQL(c, boolAsInt)
		if err != nil {
			return "", err
		}
		parts = append(parts, "DEFAULT "+d)
	}
	if c.Increment {
		parts = append(parts, "AUTO_INCREMENT PRIMARY KEY")
	}
	return strings.Join(parts, " "), nil
}

// CompileCommand dispatches on the command kind.
func (g MySQL) CompileCommand(t *Table, cmd *Command) ([]string, error) {
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
			adds[i] = "ADD " + def
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
			drops[i] = "DROP " + name
		}
		return []string{fmt.Sprintf("ALTER TABLE %s %s", table, strings.Join(drops, ", "))}, nil
	case KindDropTable:
		return []string{"DROP TABLE " + table}, nil
	case KindRename:
		to, err := renameTarget(g, t, cmd)
		if err != nil {
			return nil, err
		}
		return []string{fmt.Sprintf("RENAME TABLE %s TO %s", table, to)}, nil
	case KindPrimary:
		cols, err := indexColumns(g, t, cmd)
		if err != nil {
			return nil, err
		}
		return []string{fmt.Sprintf("ALTER TABLE %s ADD PRIMARY KEY (%s)", table, cols)}, nil
	case KindDropPrimary:
		if err := requireName(g, t, cmd); err != nil {
			return nil, err
		}
		return []string{fmt.Sprintf("ALTER TABLE %s DROP PRIMARY KEY", table)}, nil
	case KindUnique:
		cols, err := indexColumns(g, t, cmd)
		if err != nil {
			return nil, err
		}
		return []string{fmt.Sprintf("ALTER TABLE %s ADD UNIQUE %s (%s)", table, cmd.Name, cols)}, nil
	case KindIndex:
		cols, err := indexColumns(g, t, cmd)
		if err != nil {
			return nil, err
		}
		return []string{fmt.Sprintf("ALTER TABLE %s ADD INDEX %s (%s)", table, cmd.Name, cols)}, nil
	case KindFulltext:
		cols, err := indexColumns(g, t, cmd)
		if err != nil {
			return nil, err
		}
		return []string{fmt.Sprintf("ALTER TABLE %s ADD FULLTEXT %s (%s)", table, cmd.Name, cols)}, nil
	case KindDropUnique, KindDropIndex, KindDropFulltext:
		if err := requireName(g, t, cmd); err != nil {
			return nil, err
		}
		return []string{fmt.Sprintf("ALTER TABLE %s DROP INDEX %s", table, cmd.Name)}, nil
	case KindForeign:
		return compileForeign(g, t, cmd)
	case KindDropForeign:
		if err := requireName(g, t, cmd); err != nil {
			return nil, err
		}
		return []string{fmt.Sprintf("ALTER TABLE %s DROP FOREIGN KEY %s", table, cmd.Name)}, nil
	}
	return nil, fmt.Errorf("schema: unknown command kind %q", cmd.Kind)
}
