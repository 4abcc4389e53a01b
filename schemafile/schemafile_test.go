package schemafile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/syssam/blueprint/dialect"
	"github.com/syssam/blueprint/schema"
)

const usersDoc = `
tables:
  - table: users
    columns:
      - name: id
        type: big_integer
        unsigned: true
        increment: true
      - name: email
        type: string
      - name: status
        type: enum
        values: [active, disabled]
        default: active
    commands:
      - kind: create
      - kind: unique
        columns: [email]
`

func TestParseAndBuild(t *testing.T) {
	doc, err := Parse([]byte(usersDoc))
	require.NoError(t, err)
	tables, err := doc.Build()
	require.NoError(t, err)
	require.Len(t, tables, 1)

	users := tables[0]
	require.Equal(t, "users", users.Name)
	require.Len(t, users.Columns, 3)

	id, ok := users.Column("id")
	require.True(t, ok)
	require.Equal(t, schema.TypeBigInt, id.Type)
	require.True(t, id.Unsigned)
	require.True(t, id.Increment)

	status, ok := users.Column("status")
	require.True(t, ok)
	require.Equal(t, []string{"active", "disabled"}, status.Values)
	require.Equal(t, "active", status.Default.Value())

	require.Len(t, users.Commands, 2)
	require.Equal(t, schema.KindCreate, users.Commands[0].Kind)
	// Name derived from table, columns and kind.
	require.Equal(t, "users_email_unique", users.Commands[1].Name)
}

func TestBuild_Compiles(t *testing.T) {
	doc, err := Parse([]byte(usersDoc))
	require.NoError(t, err)
	tables, err := doc.Build()
	require.NoError(t, err)

	g, err := schema.Lookup(dialect.MySQL)
	require.NoError(t, err)
	stmts, err := schema.CompileTables(g, tables...)
	require.NoError(t, err)
	require.Equal(t, []string{
		"CREATE TABLE `users` (`id` BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY, `email` VARCHAR(255) NOT NULL, `status` ENUM('active', 'disabled') NOT NULL DEFAULT 'active')",
		"ALTER TABLE `users` ADD UNIQUE users_email_unique (email)",
	}, stmts)
}

// The three default states must survive the YAML round trip: an absent
// key, an explicit null and a typed value are different columns.
func TestDefaultTriState(t *testing.T) {
	doc, err := Parse([]byte(`
tables:
  - table: t
    columns:
      - name: absent
        type: string
      - name: explicit_null
        type: string
        nullable: true
        default: null
      - name: typed
        type: integer
        default: 0
      - name: flag
        type: boolean
        default: false
      - name: rate
        type: float
        default: 2.5
      - name: stamp
        type: timestamp
        default_raw: CURRENT_TIMESTAMP
`))
	require.NoError(t, err)
	tables, err := doc.Build()
	require.NoError(t, err)
	tbl := tables[0]

	c, _ := tbl.Column("absent")
	require.Nil(t, c.Default)

	c, _ = tbl.Column("explicit_null")
	require.NotNil(t, c.Default)
	require.True(t, c.Default.Null())

	c, _ = tbl.Column("typed")
	require.Equal(t, int64(0), c.Default.Value())

	c, _ = tbl.Column("flag")
	require.Equal(t, false, c.Default.Value())

	c, _ = tbl.Column("rate")
	require.Equal(t, 2.5, c.Default.Value())

	c, _ = tbl.Column("stamp")
	require.True(t, c.Default.Raw())
	require.Equal(t, "CURRENT_TIMESTAMP", c.Default.Value())
}

func TestBuild_ForeignKey(t *testing.T) {
	doc, err := Parse([]byte(`
tables:
  - table: posts
    columns:
      - name: user_id
        type: big_integer
    commands:
      - kind: foreign
        columns: [user_id]
        references:
          table: users
          columns: [id]
        on_delete: cascade
        on_update: restrict
`))
	require.NoError(t, err)
	tables, err := doc.Build()
	require.NoError(t, err)

	cmd := tables[0].Commands[0]
	require.Equal(t, "posts_user_id_foreign", cmd.Name)
	require.Equal(t, "users", cmd.RefTable)
	require.Equal(t, []string{"id"}, cmd.RefColumns)
	require.Equal(t, schema.Cascade, cmd.OnDelete)
	require.Equal(t, schema.Restrict, cmd.OnUpdate)
}

func TestBuild_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "unknown type",
			doc: `
tables:
  - table: t
    columns:
      - name: c
        type: varchar
`,
			want: `unknown type "varchar"`,
		},
		{
			name: "nameless table",
			doc: `
tables:
  - columns:
      - name: c
        type: string
`,
			want: "table with no name",
		},
		{
			name: "nameless column",
			doc: `
tables:
  - table: t
    columns:
      - type: string
`,
			want: "column with no name",
		},
		{
			name: "conflicting defaults",
			doc: `
tables:
  - table: t
    columns:
      - name: c
        type: string
        default: a
        default_raw: NOW()
`,
			want: "declares both default and default_raw",
		},
		{
			name: "unknown reference action",
			doc: `
tables:
  - table: t
    columns:
      - name: c
        type: integer
    commands:
      - kind: foreign
        columns: [c]
        references: {table: u, columns: [id]}
        on_delete: explode
`,
			want: `unknown on_delete action "explode"`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse([]byte(tt.doc))
			require.NoError(t, err)
			_, err = doc.Build()
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte("tables: {not: a list}"))
	require.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.yaml")
	require.NoError(t, os.WriteFile(path, []byte(usersDoc), 0o644))

	doc, err := Load(path)
	require.NoError(t, err)
	require.Len(t, doc.Tables, 1)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
