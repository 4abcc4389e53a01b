package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const testDoc = `
tables:
  - table: users
    columns:
      - name: id
        type: integer
        increment: true
      - name: email
        type: string
    commands:
      - kind: create
      - kind: unique
        columns: [email]
`

func writeSchema(t *testing.T, doc string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "schema.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := NewRootCmd()
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return buf.String(), err
}

func TestCompileCommand(t *testing.T) {
	path := writeSchema(t, testDoc)
	out, err := execute(t, "compile", "--dialect", "sqlserver", path)
	require.NoError(t, err)
	require.Equal(t,
		"CREATE TABLE [users] ([id] INT NOT NULL IDENTITY PRIMARY KEY, [email] NVARCHAR(255) NOT NULL);\n"+
			"CREATE UNIQUE INDEX users_email_unique ON [users] (email);\n",
		out)
}

func TestCompileCommand_DefaultDialect(t *testing.T) {
	path := writeSchema(t, testDoc)
	out, err := execute(t, "compile", path)
	require.NoError(t, err)
	require.Contains(t, out, "CREATE TABLE `users`")
}

func TestCompileCommand_OutputFile(t *testing.T) {
	path := writeSchema(t, testDoc)
	outPath := filepath.Join(t.TempDir(), "out.sql")
	_, err := execute(t, "compile", "-d", "postgres", "-o", outPath, path)
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	require.Contains(t, string(data), `CREATE TABLE "users"`)
}

func TestCompileCommand_MultipleFilesInOrder(t *testing.T) {
	first := writeSchema(t, `
tables:
  - table: aaa
    columns: [{name: id, type: integer}]
    commands: [{kind: create}]
`)
	second := writeSchema(t, `
tables:
  - table: bbb
    columns: [{name: id, type: integer}]
    commands: [{kind: create}]
`)
	out, err := execute(t, "compile", "-d", "sqlite", first, second)
	require.NoError(t, err)
	require.Equal(t,
		"CREATE TABLE `aaa` (`id` integer NOT NULL);\n"+
			"CREATE TABLE `bbb` (`id` integer NOT NULL);\n",
		out)
}

func TestCompileCommand_InvalidSchema(t *testing.T) {
	path := writeSchema(t, `
tables:
  - table: users
    columns:
      - name: id
        type: integer
    commands:
      - kind: index
        columns: [missing]
`)
	_, err := execute(t, "compile", path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "non-existent column")
}

func TestCompileCommand_UnknownDialect(t *testing.T) {
	path := writeSchema(t, testDoc)
	_, err := execute(t, "compile", "--dialect", "oracle", path)
	require.Error(t, err)
	require.Contains(t, err.Error(), `unknown dialect "oracle"`)
}

func TestValidateCommand(t *testing.T) {
	path := writeSchema(t, testDoc)
	out, err := execute(t, "validate", path)
	require.NoError(t, err)
	require.Contains(t, out, "No issues found")

	bad := writeSchema(t, `
tables:
  - table: users
    columns:
      - name: id
        type: string
        increment: true
`)
	out, err = execute(t, "validate", bad)
	require.Error(t, err)
	require.Contains(t, out, "auto-increment requires an integer type")
}

func TestDialectsCommand(t *testing.T) {
	out, err := execute(t, "dialects")
	require.NoError(t, err)
	require.Equal(t, "mysql\npostgres\nsqlite\nsqlserver\n", out)
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	require.Contains(t, out, "blueprint v")
}

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)
	require.Equal(t, DefaultDialect, cfg.Dialect)
	require.False(t, cfg.Verbose)
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("BLUEPRINT_DIALECT", "postgres")
	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)
	require.Equal(t, "postgres", cfg.Dialect)
}

func TestLoadConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blueprint.yaml")
	require.NoError(t, os.WriteFile(path, []byte("dialect: sqlite\nverbose: true\n"), 0o644))

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)
	require.Equal(t, "sqlite", cfg.Dialect)
	require.True(t, cfg.Verbose)
}

func TestLoadConfig_RejectsUnknownDialect(t *testing.T) {
	t.Setenv("BLUEPRINT_DIALECT", "oracle")
	_, err := LoadConfig("", nil)
	require.Error(t, err)
}
