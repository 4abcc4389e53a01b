// Package schemafile loads table descriptions and structural commands
// from YAML documents and builds the schema model from them.
//
// A document is a list of tables, each with its columns and the
// commands to compile against it:
//
//	tables:
//	  - table: users
//	    columns:
//	      - name: id
//	        type: integer
//	        increment: true
//	      - name: email
//	        type: string
//	    commands:
//	      - kind: create
//	      - kind: unique
//	        columns: [email]
//
// Index and constraint names may be omitted; the loader derives the
// conventional name from the table, the columns and the command kind
// (users_email_unique above).
package schemafile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/syssam/blueprint/schema"
)

// Document is the top-level structure of a schema file.
type Document struct {
	Tables []*TableSpec `yaml:"tables"`
}

// TableSpec describes one table of a document.
type TableSpec struct {
	Name     string         `yaml:"table"`
	Columns  []*ColumnSpec  `yaml:"columns"`
	Commands []*CommandSpec `yaml:"commands"`
}

// ColumnSpec describes one column. The default value is kept as a raw
// YAML node so that an absent key, an explicit null and a typed value
// stay distinguishable after decoding.
type ColumnSpec struct {
	Name       string     `yaml:"name"`
	Type       string     `yaml:"type"`
	Size       int        `yaml:"size"`
	Precision  int        `yaml:"precision"`
	Scale      int        `yaml:"scale"`
	Values     []string   `yaml:"values"`
	Nullable   bool       `yaml:"nullable"`
	Unsigned   bool       `yaml:"unsigned"`
	Increment  bool       `yaml:"increment"`
	Default    *yaml.Node `yaml:"default"`
	DefaultRaw string     `yaml:"default_raw"`
}

// CommandSpec describes one structural command.
type CommandSpec struct {
	Kind       string         `yaml:"kind"`
	Name       string         `yaml:"name"`
	Columns    []string       `yaml:"columns"`
	References *ReferenceSpec `yaml:"references"`
	OnDelete   string         `yaml:"on_delete"`
	OnUpdate   string         `yaml:"on_update"`
	Catalog    string         `yaml:"catalog"`
	KeyIndex   string         `yaml:"key_index"`
	To         string         `yaml:"to"`
}

// ReferenceSpec names the target of a foreign-key command.
type ReferenceSpec struct {
	Table   string   `yaml:"table"`
	Columns []string `yaml:"columns"`
}

// Parse decodes a YAML schema document.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("schemafile: %w", err)
	}
	return &doc, nil
}

// Load reads and decodes the schema document at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("schemafile: %w", err)
	}
	return Parse(data)
}

// Build converts the document into schema tables, resolving logical
// type names, reference actions and omitted constraint names.
func (d *Document) Build() ([]*schema.Table, error) {
	tables := make([]*schema.Table, 0, len(d.Tables))
	for _, ts := range d.Tables {
		t, err := ts.build()
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return tables, nil
}

func (ts *TableSpec) build() (*schema.Table, error) {
	if ts.Name == "" {
		return nil, fmt.Errorf("schemafile: table with no name")
	}
	t := schema.NewTable(ts.Name)
	for _, cs := range ts.Columns {
		c, err := cs.build(ts.Name)
		if err != nil {
			return nil, err
		}
		t.AddColumn(c)
	}
	for _, cmds := range ts.Commands {
		cmd, err := cmds.build(ts.Name)
		if err != nil {
			return nil, err
		}
		t.AddCommand(cmd)
	}
	return t, nil
}

func (cs *ColumnSpec) build(table string) (*schema.Column, error) {
	if cs.Name == "" {
		return nil, fmt.Errorf("schemafile: table %q has a column with no name", table)
	}
	typ := schema.TypeByName(cs.Type)
	if typ == schema.TypeInvalid {
		return nil, fmt.Errorf("schemafile: column %s.%s has unknown type %q", table, cs.Name, cs.Type)
	}
	c := &schema.Column{
		Name:      cs.Name,
		Type:      typ,
		Size:      cs.Size,
		Precision: cs.Precision,
		Scale:     cs.Scale,
		Values:    cs.Values,
		Nullable:  cs.Nullable,
		Unsigned:  cs.Unsigned,
		Increment: cs.Increment,
	}
	if cs.DefaultRaw != "" {
		if cs.Default != nil {
			return nil, fmt.Errorf("schemafile: column %s.%s declares both default and default_raw", table, cs.Name)
		}
		c.Default = schema.DefaultRaw(cs.DefaultRaw)
		return c, nil
	}
	if cs.Default != nil {
		d, err := decodeDefault(cs.Default)
		if err != nil {
			return nil, fmt.Errorf("schemafile: column %s.%s: %w", table, cs.Name, err)
		}
		c.Default = d
	}
	return c, nil
}

// decodeDefault maps a YAML scalar to the modeled default. An explicit
// null key is an explicit NULL default; an absent key never reaches
// this function.
func decodeDefault(node *yaml.Node) (*schema.Default, error) {
	switch node.Tag {
	case "!!null":
		return schema.DefaultNull(), nil
	case "!!bool":
		var v bool
		if err := node.Decode(&v); err != nil {
			return nil, err
		}
		return schema.DefaultValue(v), nil
	case "!!int":
		var v int64
		if err := node.Decode(&v); err != nil {
			return nil, err
		}
		return schema.DefaultValue(v), nil
	case "!!float":
		var v float64
		if err := node.Decode(&v); err != nil {
			return nil, err
		}
		return schema.DefaultValue(v), nil
	case "!!str":
		return schema.DefaultValue(node.Value), nil
	}
	return nil, fmt.Errorf("unsupported default value kind %s", node.Tag)
}

// derivable are the kinds whose omitted names the loader fills in from
// the table and column names. Drop commands always name an existing
// index or constraint and are never derived.
var derivable = map[schema.CommandKind]bool{
	schema.KindPrimary:  true,
	schema.KindUnique:   true,
	schema.KindIndex:    true,
	schema.KindFulltext: true,
	schema.KindForeign:  true,
}

// refActions maps the document spellings to referential actions.
var refActions = map[string]schema.ReferenceOption{
	"no_action":   schema.NoAction,
	"restrict":    schema.Restrict,
	"cascade":     schema.Cascade,
	"set_null":    schema.SetNull,
	"set_default": schema.SetDefault,
}

func refAction(table, which, name string) (schema.ReferenceOption, error) {
	if name == "" {
		return "", nil
	}
	action, ok := refActions[name]
	if !ok {
		return "", fmt.Errorf("schemafile: table %q has unknown %s action %q", table, which, name)
	}
	return action, nil
}

func (cs *CommandSpec) build(table string) (*schema.Command, error) {
	kind := schema.CommandKind(cs.Kind)
	cmd := &schema.Command{
		Kind:     kind,
		Name:     cs.Name,
		Columns:  cs.Columns,
		Catalog:  cs.Catalog,
		KeyIndex: cs.KeyIndex,
		To:       cs.To,
	}
	if cs.References != nil {
		cmd.RefTable = cs.References.Table
		cmd.RefColumns = cs.References.Columns
	}
	var err error
	if cmd.OnDelete, err = refAction(table, "on_delete", cs.OnDelete); err != nil {
		return nil, err
	}
	if cmd.OnUpdate, err = refAction(table, "on_update", cs.OnUpdate); err != nil {
		return nil, err
	}
	if cmd.Name == "" && derivable[kind] && len(cmd.Columns) > 0 {
		cmd.Name = schema.DefaultName(table, kind, cmd.Columns...)
	}
	return cmd, nil
}
