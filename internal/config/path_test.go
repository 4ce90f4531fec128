package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	t.Setenv("CLAUSECHECK_TEST_DIR", "/tmp/clausecheck")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"absolute unchanged", "/var/lib/db.sqlite", "/var/lib/db.sqlite"},
		{"tilde prefix", "~/data/db.sqlite", filepath.Join(home, "data/db.sqlite")},
		{"bare tilde", "~", home},
		{"env var", "$CLAUSECHECK_TEST_DIR/db.sqlite", "/tmp/clausecheck/db.sqlite"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.in))
		})
	}
}

func TestDefaultDatabasePath(t *testing.T) {
	path := DefaultDatabasePath()
	assert.True(t, strings.HasSuffix(path, "clausecheck.db"))
	assert.False(t, strings.Contains(path, "$"))
}
