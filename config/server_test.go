package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "library.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Setenv("LIBRARY_DATA", "/var/lib/library")

	path := writeConfig(t, `
port: "9000"
data_dir: ${LIBRARY_DATA}
collections:
  - name: books
    simple_search_fields: [title, author]
    page_size: 12
  - name: sutras
    simple_search_fields: [title, titlePali]
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "/var/lib/library", cfg.DataDir)
	assert.Equal(t, int64(10<<20), cfg.MaxBodyBytes)
	require.Len(t, cfg.Collections, 2)
	assert.Equal(t, 12, cfg.Collections[0].PageSize)
	assert.Equal(t, DefaultPageSize, cfg.Collections[1].PageSize)

	resolved := cfg.ResolveCollections()
	require.Len(t, resolved, 6)
	assert.Equal(t, CollectionBooks, resolved[0].Name)
	assert.Equal(t, []string{"title", "author"}, resolved[0].SimpleSearchFields)
	assert.Equal(t, "sutras", resolved[5].Name)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "port: [unterminated"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, `
collections:
  - name: books
  - name: books
`))
	assert.ErrorContains(t, err, "more than once")

	_, err = Load(writeConfig(t, `
collections:
  - name: books
    sort_order: random
`))
	assert.ErrorContains(t, err, "sort_order")
}

func TestServerConfig_Defaults(t *testing.T) {
	var cfg ServerConfig
	cfg.ApplyDefaults()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "./library_data", cfg.DataDir)
	assert.NoError(t, cfg.Validate())
	assert.Len(t, cfg.ResolveCollections(), 5)
}
