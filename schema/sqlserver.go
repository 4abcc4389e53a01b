package schema

import (
	"fmt"
	"strings"

	"github.com/syssam/blueprint/dialect"
)

func init() {
	Register(SQLServer{})
}

// SQLServer is the Microsoft SQL Server grammar. Identifiers are
// bracket-quoted, string types use the national (N-prefixed) variants,
// and full-text indexes are backed by a catalog: creation emits the
// catalog statement before the index statement, dropping reverses the
// order since the catalog must outlive the index it backs.
type SQLServer struct{}

// Dialect returns the dialect name.
func (SQLServer) Dialect() string { return dialect.SQLServer }

func (SQLServer) quotes() (string, string) { return "[", "]" }

// QuoteIdent wraps an identifier in brackets.
func (g SQLServer) QuoteIdent(name string) (string, error) {
	return quoteIdent(g, name)
}

// TypeSQL maps a logical type to SQL Server column syntax.
func (g SQLServer) TypeSQL(c *Column) (string, error) {
	switch c.Type {
	case TypeBool:
		return "TINYINT", nil
	case TypeInt:
		return "INT", nil
	case TypeBigInt:
		return "BIGINT", nil
	case TypeSmallInt:
		return "SMALLINT", nil
	case TypeFloat:
		return "FLOAT", nil
	case TypeDecimal:
		p, s := precisionScale(c)
		return fmt.Sprintf("DECIMAL(%d, %d)", p, s), nil
	case TypeString:
		return fmt.Sprintf("NVARCHAR(%d)", sizeOr(c, 255)), nil
	case TypeText:
		return "NVARCHAR(MAX)", nil
	case TypeDate:
		return "DATE", nil
	case TypeTime:
		return "TIME", nil
	case TypeDateTime, TypeTimestamp:
		return "DATETIME", nil
	case TypeBinary:
		return "VARBINARY(MAX)", nil
	case TypeEnum:
		if err := safeIdent(g, c.Name); err != nil {
			return "", err
		}
		return fmt.Sprintf("NVARCHAR(255) CHECK (%s IN (%s))", c.Name, quoteValues(c.Values)), nil
	case TypeJSON:
		return "NVARCHAR(MAX)", nil
	case TypeUUID:
		return "UNIQUEIDENTIFIER", nil
	}
	return "", &UnsupportedTypeError{Dialect: g.Dialect(), Column: c.Name, Type: c.Type}
}

// columnSQL orders modifiers as: type, nullability, IDENTITY PRIMARY
// KEY, default. Unsigned has no SQL Server rendering; its omission is
// deliberate, not an empty clause.
func (g SQLServer) columnSQL(c *Column) (string, error) {
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
	if c.Increment {
		parts = append(parts, "IDENTITY PRIMARY KEY")
	}
	if c.Default != nil {
		d, err := defaultSQL(c, boolAsInt)
		if err != nil {
			return "", err
		}
		parts = append(parts, "DEFAULT "+d)
	}
	return strings.Join(parts, " "), nil
}

// fulltextIdents checks the catalog and key-index identifiers a SQL
// Server full-text command carries in addition to its name.
func (g SQLServer) fulltextIdents(t *Table, cmd *Command) error {
	if cmd.Catalog == "" {
		return &MissingIdentifierError{Table: t.Name, Kind: cmd.Kind, Which: "catalog"}
	}
	if err := safeIdent(g, cmd.Catalog); err != nil {
		return err
	}
	if cmd.Kind == KindFulltext {
		if cmd.KeyIndex == "" {
			return &MissingIdentifierError{Table: t.Name, Kind: cmd.Kind, Which: "key index"}
		}
		return safeIdent(g, cmd.KeyIndex)
	}
	return nil
}

// CompileCommand dispatches on the command kind.
func (g SQLServer) CompileCommand(t *Table, cmd *Command) ([]string, error) {
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
		defs := make([]string, len(cols))
		for i, c := range cols {
			if defs[i], err = g.columnSQL(c); err != nil {
				return nil, err
			}
		}
		return []string{fmt.Sprintf("ALTER TABLE %s ADD %s", table, strings.Join(defs, ", "))}, nil
	case KindDropColumn:
		cols, err := commandColumns(g, t, cmd.Columns)
		if err != nil {
			return nil, err
		}
		return []string{fmt.Sprintf("ALTER TABLE %s DROP COLUMN %s", table, cols)}, nil
	case KindDropTable:
		return []string{"DROP TABLE " + table}, nil
	case KindRename:
		if cmd.To == "" {
			return nil, &MissingIdentifierError{Table: t.Name, Kind: cmd.Kind, Which: "new table name"}
		}
		if err := safeIdent(g, t.Name); err != nil {
			return nil, err
		}
		if err := safeIdent(g, cmd.To); err != nil {
			return nil, err
		}
		return []string{fmt.Sprintf("sp_rename '%s', '%s'", t.Name, cmd.To)}, nil
	case KindPrimary:
		cols, err := indexColumns(g, t, cmd)
		if err != nil {
			return nil, err
		}
		return []string{fmt.Sprintf("ALTER TABLE %s ADD CONSTRAINT %s PRIMARY KEY (%s)", table, cmd.Name, cols)}, nil
	case KindDropPrimary, KindDropForeign:
		if err := requireName(g, t, cmd); err != nil {
			return nil, err
		}
		return []string{fmt.Sprintf("ALTER TABLE %s DROP CONSTRAINT %s", table, cmd.Name)}, nil
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
		return []string{fmt.Sprintf("DROP INDEX %s ON %s", cmd.Name, table)}, nil
	case KindFulltext:
		cols, err := indexColumns(g, t, cmd)
		if err != nil {
			return nil, err
		}
		if err := g.fulltextIdents(t, cmd); err != nil {
			return nil, err
		}
		// Catalog strictly before the index that needs it.
		return []string{
			"CREATE FULLTEXT CATALOG " + cmd.Catalog,
			fmt.Sprintf("CREATE FULLTEXT INDEX ON %s (%s) KEY INDEX %s ON %s", table, cols, cmd.KeyIndex, cmd.Catalog),
		}, nil
	case KindDropFulltext:
		if err := requireName(g, t, cmd); err != nil {
			return nil, err
		}
		if err := g.fulltextIdents(t, cmd); err != nil {
			return nil, err
		}
		// Index strictly before the catalog backing it.
		return []string{
			"DROP FULLTEXT INDEX " + cmd.Name,
			"DROP FULLTEXT CATALOG " + cmd.Catalog,
		}, nil
	case KindForeign:
		return compileForeign(g, t, cmd)
	}
	return nil, fmt.Errorf("schema: unknown command kind %q", cmd.Kind)
}
