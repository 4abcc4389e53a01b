package schema

import (
	"strings"

	"github.com/go-openapi/inflect"
)

// kindSuffixes maps index-family command kinds to the conventional
// identifier suffix.
var kindSuffixes = map[CommandKind]string{
	KindPrimary:  "primary",
	KindUnique:   "unique",
	KindIndex:    "index",
	KindFulltext: "fulltext",
	KindForeign:  "foreign",
}

// DefaultName derives the conventional identifier for an index or
// constraint: the table name, the column names and a kind suffix,
// underscore-joined and normalized (e.g. users_email_unique). Loaders
// use it when a schema document omits an explicit name; the compiler
// itself still requires one.
func DefaultName(table string, kind CommandKind, columns ...string) string {
	parts := append([]string{table}, columns...)
	if suffix, ok := kindSuffixes[kind]; ok {
		parts = append(parts, suffix)
	}
	return inflect.Underscore(strings.Join(parts, "_"))
}
