package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"addr": ":9090",
		"extraction": {"min_column_fragments": 12},
		"history": {"capacity": 20}
	}`), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, 12, cfg.Extraction.MinColumnFragments)
	assert.Equal(t, 20, cfg.History.Capacity)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestLoadConfigEmptyPath(t *testing.T) {
	_, err := LoadConfig("")
	assert.Error(t, err)
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := Config{Addr: ":9090"}
	merged := cfg.MergeWithDefaults(Defaults())

	assert.Equal(t, ":9090", merged.Addr)
	assert.Equal(t, "development", merged.Env)
	assert.Equal(t, 0.10, merged.Extraction.ColumnMarginRatio)
	assert.Equal(t, 10, merged.Extraction.MinColumnFragments)
	assert.Equal(t, 50, merged.History.Capacity)
	assert.Equal(t, 1000, merged.History.DebounceMS)
}

func TestValidate(t *testing.T) {
	cfg := Defaults()
	assert.NoError(t, cfg.Validate())

	cfg.Extraction.ColumnMarginRatio = 0.6
	assert.Error(t, cfg.Validate())

	cfg = Defaults()
	cfg.History.Capacity = -1
	assert.Error(t, cfg.Validate())
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("ADDR", ":7070")
	t.Setenv("APP_ENV", "production")

	cfg := Defaults()
	cfg.ApplyEnv()
	assert.Equal(t, ":7070", cfg.Addr)
	assert.Equal(t, "production", cfg.Env)
}
