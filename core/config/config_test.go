package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.True(t, cfg.Server.Metrics)
	assert.Equal(t, "resources", cfg.Storage.Bucket)
	assert.Equal(t, 30, cfg.Storage.TimeoutSeconds)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "dir", cfg.Source.Kind)
	assert.Equal(t, int64(20971520), cfg.Source.MaxSizeBytes)
	assert.Equal(t, "html", cfg.Proc.DefaultExt)
	assert.Equal(t, "text", cfg.Proc.Loader)
	assert.Equal(t, "~", cfg.Proc.ParamSeparator)
	assert.Empty(t, cfg.Proc.Expressions)
	assert.Empty(t, cfg.Integrity.Resources)
	assert.Equal(t, "rendered", cfg.Integrity.PublishPrefix)
	assert.Equal(t, 8, cfg.Integrity.Concurrency)
}

func TestLoadConfig_File(t *testing.T) {
	dir := t.TempDir()
	yaml := `
server:
  port: "9090"
proc:
  default_procedure: revert
  expressions:
    shout: content.upperAscii()
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "revert", cfg.Proc.DefaultProcedure)
	assert.Equal(t, "html", cfg.Proc.DefaultExt)
	assert.Equal(t, map[string]string{"shout": "content.upperAscii()"}, cfg.Proc.Expressions)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("proc:\n  default_ext: md\n"), 0o644))
	t.Setenv("PROC_DEFAULT_EXT", "txt")
	t.Setenv("SOURCE_KIND", "http")
	t.Setenv("INTEGRITY_RESOURCES", "proc!a,proc!b")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "txt", cfg.Proc.DefaultExt)
	assert.Equal(t, "http", cfg.Source.Kind)
	assert.Equal(t, []string{"proc!a", "proc!b"}, cfg.Integrity.Resources)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("LOG_LEVEL=debug\n"), 0o644))
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	// .env overloads the process environment
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadConfig_InvalidFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("server: [\n"), 0o644))

	_, err := LoadConfig(dir)
	assert.Error(t, err)
}
