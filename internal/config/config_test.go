package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	for _, k := range []string{"MATHGEN_DB", "MATHGEN_WORKERS", "MATHGEN_LOG_LEVEL", "MATHGEN_FORMAT", "MATHGEN_SEED", "MATHGEN_LOG_JSON"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)
	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_Env(t *testing.T) {
	isolate(t)
	t.Setenv("MATHGEN_DB", "/tmp/x.db")
	t.Setenv("MATHGEN_WORKERS", "8")
	t.Setenv("MATHGEN_LOG_LEVEL", "debug")

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/x.db", cfg.DBPath)
	assert.Equal(t, 8, cfg.Workers)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_FileThenEnvThenFlags(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "mathgen.yaml")
	require.NoError(t, os.WriteFile(path, []byte("workers: 2\nformat: json\nseed: 99\n"), 0o644))
	t.Setenv("MATHGEN_FORMAT", "yaml")

	v := viper.New()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("workers", 4, "")
	require.NoError(t, flags.Parse([]string{"--workers=6"}))
	require.NoError(t, v.BindPFlag("workers", flags.Lookup("workers")))

	cfg, err := Load(v, path)
	require.NoError(t, err)
	assert.Equal(t, 6, cfg.Workers, "flag wins")
	assert.Equal(t, "yaml", cfg.Format, "env beats file")
	assert.Equal(t, uint64(99), cfg.Seed)
	assert.Equal(t, path, ConfigFile(v))
}

func TestLoad_DefaultLocation(t *testing.T) {
	isolate(t)
	dir := filepath.Join(os.Getenv("XDG_CONFIG_HOME"), "mathgen")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("log-json: true\n"), 0o644))

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)
	assert.True(t, cfg.LogJSON)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	isolate(t)
	_, err := Load(viper.New(), filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	cfg.Workers = 0
	cfg.Format = "xml"
	cfg.LogLevel = "loud"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "workers must be between 1 and 64")
	assert.Contains(t, err.Error(), `format must be one of text, json, yaml, got "xml"`)
	assert.Contains(t, err.Error(), `log-level must be one of`)
}
