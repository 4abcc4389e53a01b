package schema

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultName(t *testing.T) {
	tests := []struct {
		table   string
		kind    CommandKind
		columns []string
		want    string
	}{
		{"users", KindUnique, []string{"email"}, "users_email_unique"},
		{"users", KindPrimary, []string{"id"}, "users_id_primary"},
		{"posts", KindIndex, []string{"user_id", "created_at"}, "posts_user_id_created_at_index"},
		{"posts", KindFulltext, []string{"body"}, "posts_body_fulltext"},
		{"posts", KindForeign, []string{"user_id"}, "posts_user_id_foreign"},
		{"users", KindIndex, nil, "users_index"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, DefaultName(tt.table, tt.kind, tt.columns...))
	}
}
