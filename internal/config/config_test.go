package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeYAML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "grimdark.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const validYAML = `
log:
  level: debug
  format: json
store:
  path: /tmp/gdr/roster.db
reference:
  dir: ./reference
  catalogues: ./wh40k-10e
  vocabulary_file: ./vocab.yaml
limits:
  max_input_bytes: 1048576
  max_depth: 32
`

func TestLoad_ValidYAML(t *testing.T) {
	cfg, err := Load(writeYAML(t, validYAML))
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "/tmp/gdr/roster.db", cfg.Store.Path)
	assert.Equal(t, "./reference", cfg.Reference.Dir)
	assert.Equal(t, "./wh40k-10e", cfg.Reference.Catalogues)
	assert.Equal(t, "./vocab.yaml", cfg.Reference.VocabularyFile)
	assert.Equal(t, int64(1048576), cfg.Limits.MaxInputBytes)
	assert.Equal(t, 32, cfg.Limits.MaxDepth)
}

func TestLoad_ENVOverridesYAML(t *testing.T) {
	path := writeYAML(t, validYAML)
	t.Setenv("GDR_LOG_LEVEL", "warn")
	t.Setenv("GDR_MAX_DEPTH", "8")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, 8, cfg.Limits.MaxDepth)
}

func TestLoad_ConfigEnvNamesFile(t *testing.T) {
	t.Setenv("GDR_CONFIG", writeYAML(t, validYAML))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 32, cfg.Limits.MaxDepth)
}

func TestLoad_NoFile_Defaults(t *testing.T) {
	t.Setenv("GDR_CONFIG", "")
	origDir, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(origDir) })
	require.NoError(t, os.Chdir(t.TempDir()))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, "./data/roster.db", cfg.Store.Path)
	assert.Equal(t, int64(20971520), cfg.Limits.MaxInputBytes)
	assert.Equal(t, 64, cfg.Limits.MaxDepth)
	assert.Empty(t, cfg.Reference.Dir)
}

func TestLoad_ExplicitPathNotFound(t *testing.T) {
	_, err := Load("/nonexistent/grimdark.yaml")
	assert.Error(t, err)
}

func TestLoad_InvalidYAML(t *testing.T) {
	_, err := Load(writeYAML(t, `{{{invalid yaml`))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	valid := func() Config {
		return Config{
			Log:    LogConfig{Level: "info", Format: "console"},
			Store:  StoreConfig{Path: "roster.db"},
			Limits: LimitsConfig{MaxInputBytes: 1, MaxDepth: 1},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "level is case-insensitive", mutate: func(c *Config) { c.Log.Level = "DEBUG" }},
		{name: "bad level", mutate: func(c *Config) { c.Log.Level = "loud" }, wantErr: true},
		{name: "bad format", mutate: func(c *Config) { c.Log.Format = "xml" }, wantErr: true},
		{name: "empty store path", mutate: func(c *Config) { c.Store.Path = " " }, wantErr: true},
		{name: "zero input cap", mutate: func(c *Config) { c.Limits.MaxInputBytes = 0 }, wantErr: true},
		{name: "negative depth", mutate: func(c *Config) { c.Limits.MaxDepth = -1 }, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}
