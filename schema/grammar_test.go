package schema

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/syssam/blueprint/dialect"
)

func TestLookup(t *testing.T) {
	for _, name := range dialect.All() {
		g, err := Lookup(name)
		require.NoError(t, err)
		require.Equal(t, name, g.Dialect())
	}

	_, err := Lookup("oracle")
	require.Error(t, err)
	require.ErrorIs(t, err, ErrUnknownDialect)
}

func TestDialects(t *testing.T) {
	require.Equal(t, []string{dialect.MySQL, dialect.Postgres, dialect.SQLite, dialect.SQLServer}, Dialects())
}

// TestTypeSQL_FullCoverage enumerates every (dialect, logical type)
// pair: each grammar must map each type to a non-empty type string.
func TestTypeSQL_FullCoverage(t *testing.T) {
	for _, name := range Dialects() {
		g, err := Lookup(name)
		require.NoError(t, err)
		t.Run(name, func(t *testing.T) {
			for _, typ := range Types() {
				c := &Column{Name: "c", Type: typ, Values: []string{"a", "b"}}
				sql, err := g.TypeSQL(c)
				require.NoError(t, err, "dialect %s must map type %s", name, typ)
				require.NotEmpty(t, sql, "dialect %s mapped type %s to empty string", name, typ)
			}
		})
	}
}

func TestTypeSQL_Unsupported(t *testing.T) {
	for _, name := range Dialects() {
		g, err := Lookup(name)
		require.NoError(t, err)
		_, err = g.TypeSQL(&Column{Name: "c", Type: TypeInvalid})
		require.Error(t, err)
		require.True(t, IsUnsupportedType(err))
	}
}

func TestQuoteIdent(t *testing.T) {
	tests := []struct {
		dialect string
		want    string
	}{
		{dialect.MySQL, "`payments`"},
		{dialect.SQLite, "`payments`"},
		{dialect.Postgres, `"payments"`},
		{dialect.SQLServer, "[payments]"},
	}
	for _, tt := range tests {
		t.Run(tt.dialect, func(t *testing.T) {
			g, err := Lookup(tt.dialect)
			require.NoError(t, err)
			got, err := g.QuoteIdent("payments")
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestQuoteIdent_Injection(t *testing.T) {
	tests := []struct {
		dialect string
		ident   string
	}{
		{dialect.MySQL, "users` --"},
		{dialect.SQLite, "a`b"},
		{dialect.Postgres, `users" CASCADE --`},
		{dialect.SQLServer, "users]; DROP TABLE [users"},
		{dialect.MySQL, ""},
	}
	for _, tt := range tests {
		g, err := Lookup(tt.dialect)
		require.NoError(t, err)
		_, err = g.QuoteIdent(tt.ident)
		require.Error(t, err)
		require.True(t, IsIdentifierInjection(err), "expected injection error for %q on %s", tt.ident, tt.dialect)
	}
}

func TestCommandName_Injection(t *testing.T) {
	tbl := NewTable("users").AddColumn(&Column{Name: "email", Type: TypeString})
	for _, name := range Dialects() {
		g, err := Lookup(name)
		require.NoError(t, err)
		_, err = g.CompileCommand(tbl, &Command{
			Kind:    KindIndex,
			Name:    "idx; DROP TABLE users",
			Columns: []string{"email"},
		})
		require.Error(t, err)
		require.True(t, IsIdentifierInjection(err), "dialect %s must reject unsafe index names", name)
	}
}

func TestDefaultSQL(t *testing.T) {
	g, err := Lookup(dialect.MySQL)
	require.NoError(t, err)

	tests := []struct {
		name string
		col  *Column
		want string
	}{
		{
			name: "string",
			col:  &Column{Name: "status", Type: TypeString, Default: DefaultValue("draft")},
			want: "`status` VARCHAR(255) NOT NULL DEFAULT 'draft'",
		},
		{
			name: "string escapes embedded quotes",
			col:  &Column{Name: "note", Type: TypeString, Default: DefaultValue("it's fine")},
			want: "`note` VARCHAR(255) NOT NULL DEFAULT 'it''s fine'",
		},
		{
			name: "integer",
			col:  &Column{Name: "count", Type: TypeInt, Default: DefaultValue(0)},
			want: "`count` INT NOT NULL DEFAULT 0",
		},
		{
			name: "float",
			col:  &Column{Name: "rate", Type: TypeFloat, Default: DefaultValue(2.5)},
			want: "`rate` DOUBLE NOT NULL DEFAULT 2.5",
		},
		{
			name: "bool",
			col:  &Column{Name: "active", Type: TypeBool, Default: DefaultValue(true)},
			want: "`active` TINYINT(1) NOT NULL DEFAULT 1",
		},
		{
			name: "explicit null",
			col:  &Column{Name: "bio", Type: TypeText, Nullable: true, Default: DefaultNull()},
			want: "`bio` TEXT NULL DEFAULT NULL",
		},
		{
			name: "raw expression passes through",
			col:  &Column{Name: "created_at", Type: TypeTimestamp, Default: DefaultRaw("CURRENT_TIMESTAMP")},
			want: "`created_at` TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP",
		},
		{
			name: "no default yields no clause",
			col:  &Column{Name: "email", Type: TypeString},
			want: "`email` VARCHAR(255) NOT NULL",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := g.(MySQL).columnSQL(tt.col)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestDefaultSQL_Bool(t *testing.T) {
	mysql, err := Lookup(dialect.MySQL)
	require.NoError(t, err)
	pg, err := Lookup(dialect.Postgres)
	require.NoError(t, err)

	c := &Column{Name: "active", Type: TypeBool, Default: DefaultValue(false)}
	got, err := mysql.(MySQL).columnSQL(c)
	require.NoError(t, err)
	require.Equal(t, "`active` TINYINT(1) NOT NULL DEFAULT 0", got)

	got, err = pg.(Postgres).columnSQL(c)
	require.NoError(t, err)
	require.Equal(t, `"active" BOOLEAN NOT NULL DEFAULT FALSE`, got)
}

func TestDefaultSQL_UUID(t *testing.T) {
	g, err := Lookup(dialect.Postgres)
	require.NoError(t, err)

	c := &Column{Name: "id", Type: TypeUUID, Default: DefaultValue("550e8400-e29b-41d4-a716-446655440000")}
	got, err := g.(Postgres).columnSQL(c)
	require.NoError(t, err)
	require.Equal(t, `"id" UUID NOT NULL DEFAULT '550e8400-e29b-41d4-a716-446655440000'`, got)

	c = &Column{Name: "id", Type: TypeUUID, Default: DefaultValue("not-a-uuid")}
	_, err = g.(Postgres).columnSQL(c)
	require.Error(t, err)
}

func TestIncrementRequiresInteger(t *testing.T) {
	for _, name := range Dialects() {
		g, err := Lookup(name)
		require.NoError(t, err)
		tbl := NewTable("users").AddColumn(&Column{Name: "id", Type: TypeString, Increment: true})
		_, err = g.CompileCommand(tbl, &Command{Kind: KindCreate})
		require.Error(t, err, "dialect %s must reject incrementing string columns", name)
		require.True(t, IsUnsupportedType(err))
	}
}
