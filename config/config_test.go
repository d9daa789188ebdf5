package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate runs the test in an empty directory with no BINDER_* variables set.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	for _, key := range []string{
		"BINDER_OUTPUT_PATH", "BINDER_PACK_BY_VOLUME", "BINDER_ASSUME_YES", "BINDER_LANGUAGE",
		"BINDER_METRICS_FILE", "BINDER_KINDLEGEN_DIR", "BINDER_KINDLEGEN_URL", "BINDER_KINDLEGEN_BINARY",
		"BINDER_LOG_LEVEL", "BINDER_LOG_FORMAT",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	return dir
}

func newFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("config", "", "")
	flags.StringP("output-path", "o", DefaultOutputPath, "")
	flags.Bool("pack-by-volume", false, "")
	flags.BoolP("yes", "y", false, "")
	flags.String("log-level", "info", "")
	flags.String("log-format", "text", "")
	flags.String("metrics-file", "", "")
	return flags
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultOutputPath, cfg.OutputPath)
	assert.False(t, cfg.PackByVolume)
	assert.False(t, cfg.AssumeYes)
	assert.Equal(t, DefaultLanguage, cfg.Language)
	assert.Equal(t, DefaultBinary, cfg.Kindlegen.Binary)
	assert.Empty(t, cfg.Kindlegen.URL)
	assert.NotEmpty(t, cfg.Kindlegen.Dir)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Empty(t, cfg.MetricsFile)
}

func TestLoadEnvironment(t *testing.T) {
	isolate(t)
	t.Setenv("BINDER_OUTPUT_PATH", "/srv/novels")
	t.Setenv("BINDER_PACK_BY_VOLUME", "true")
	t.Setenv("BINDER_KINDLEGEN_DIR", "/opt/kindlegen")
	t.Setenv("BINDER_LOG_FORMAT", "JSON")

	cfg, err := Load(newFlags())
	require.NoError(t, err)

	assert.Equal(t, "/srv/novels", cfg.OutputPath)
	assert.True(t, cfg.PackByVolume)
	assert.Equal(t, "/opt/kindlegen", cfg.Kindlegen.Dir)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadFlagsOverrideEnvironment(t *testing.T) {
	isolate(t)
	t.Setenv("BINDER_OUTPUT_PATH", "/srv/novels")

	flags := newFlags()
	require.NoError(t, flags.Parse([]string{"-o", "/tmp/out", "-y", "--log-level", "debug"}))

	cfg, err := Load(flags)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/out", cfg.OutputPath)
	assert.True(t, cfg.AssumeYes)
	level, err := cfg.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestLoadConfigFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
output_path: ./books
pack_by_volume: true
kindlegen:
  url: https://example.com/kindlegen.zip
log:
  level: warn
`), 0644))

	flags := newFlags()
	require.NoError(t, flags.Parse([]string{"--config", path}))

	cfg, err := Load(flags)
	require.NoError(t, err)

	assert.Equal(t, "./books", cfg.OutputPath)
	assert.True(t, cfg.PackByVolume)
	assert.Equal(t, "https://example.com/kindlegen.zip", cfg.Kindlegen.URL)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadDefaultConfigFile(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName+".yaml"), []byte("language: ja\n"), 0644))

	cfg, err := Load(newFlags())
	require.NoError(t, err)
	assert.Equal(t, "ja", cfg.Language)
}

func TestLoadMissingConfigFile(t *testing.T) {
	dir := isolate(t)
	flags := newFlags()
	require.NoError(t, flags.Parse([]string{"--config", filepath.Join(dir, "absent.yaml")}))

	_, err := Load(flags)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadDotEnv(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("BINDER_LANGUAGE=zh\nBINDER_ASSUME_YES=true\n"), 0644))

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, "zh", cfg.Language)
	assert.True(t, cfg.AssumeYes)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{OutputPath: "out", Log: Log{Level: "info", Format: "text"}}
	}
	require.NoError(t, valid().Validate())

	cfg := valid()
	cfg.OutputPath = ""
	assert.Error(t, cfg.Validate())

	cfg = valid()
	cfg.Log.Level = "verbose"
	assert.ErrorContains(t, cfg.Validate(), "unknown log level")

	cfg = valid()
	cfg.Log.Format = "xml"
	assert.ErrorContains(t, cfg.Validate(), "unknown log format")
}

func TestLoadRejectsInvalidLevel(t *testing.T) {
	isolate(t)
	t.Setenv("BINDER_LOG_LEVEL", "loud")

	_, err := Load(nil)
	assert.ErrorContains(t, err, "unknown log level")
}
