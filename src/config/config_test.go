package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aetherspritee/kibun/src/journal"
)

// isolate runs the test in an empty working directory with no config anywhere.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	for _, key := range []string{EnvConfig, EnvStorePath, EnvLogLevel, EnvLogFile} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	return dir
}

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, journal.DefaultPath, cfg.General.StorePath)
	assert.Equal(t, "warn", cfg.General.LogLevel)
	assert.Contains(t, cfg.String(), "defaults")
}

func TestLoad_WorkingDirFile(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "config.toml"), `
[general]
store_path = "diary/entries.json"
max_column_width = 40
log_level = "DEBUG"

[colors]
mood_low = "#000000"
`)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "config.toml", cfg.Source)
	assert.Equal(t, "diary/entries.json", cfg.General.StorePath)
	assert.Equal(t, 40, cfg.General.MaxColumnWidth)
	assert.Equal(t, "debug", cfg.General.LogLevel)
	assert.Equal(t, "#000000", cfg.Colors.MoodLow)
	// untouched keys keep their defaults
	assert.Equal(t, Default().General.Width, cfg.General.Width)
	assert.Equal(t, Default().Colors.MoodHigh, cfg.Colors.MoodHigh)
}

func TestLoad_XDGFile(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "xdg", "kibun", "config.toml"), "[general]\nwidth = 80\n")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 80, cfg.General.Width)
}

func TestLoad_EnvBeatsFile(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "custom.toml"), "[general]\nstore_path = \"from-file.json\"\nlog_level = \"info\"\n")
	t.Setenv(EnvConfig, filepath.Join(dir, "custom.toml"))
	t.Setenv(EnvStorePath, "from-env.json")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "from-env.json", cfg.General.StorePath)
	assert.Equal(t, "info", cfg.General.LogLevel)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("explicit path missing", func(t *testing.T) {
		dir := isolate(t)
		t.Setenv(EnvConfig, filepath.Join(dir, "nope.toml"))
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("bad toml", func(t *testing.T) {
		dir := isolate(t)
		writeFile(t, filepath.Join(dir, "config.toml"), "[general\nstore_path = ")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("unknown key", func(t *testing.T) {
		dir := isolate(t)
		writeFile(t, filepath.Join(dir, "config.toml"), "[general]\nstore_pth = \"typo.json\"\n")
		_, err := Load()
		assert.Error(t, err)
	})
}

func TestNormalize(t *testing.T) {
	cfg := Normalize(Config{General: General{StorePath: "  ", Width: -1, LogLevel: " Error "}})
	assert.Equal(t, journal.DefaultPath, cfg.General.StorePath)
	assert.Equal(t, Default().General.Width, cfg.General.Width)
	assert.Equal(t, Default().General.MaxColumnWidth, cfg.General.MaxColumnWidth)
	assert.Equal(t, "error", cfg.General.LogLevel)
}

func TestLoadDotEnv(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, ".env.local"), "KIBUN_LOG_FILE=local.log\n")
	writeFile(t, filepath.Join(dir, ".env"), "KIBUN_LOG_FILE=env.log\nKIBUN_LOG_LEVEL=debug\n")
	t.Cleanup(func() {
		_ = os.Unsetenv(EnvLogFile)
		_ = os.Unsetenv(EnvLogLevel)
	})

	loaded, err := LoadDotEnv()
	require.NoError(t, err)
	assert.Equal(t, []string{".env.local", ".env"}, loaded)
	assert.Equal(t, "local.log", os.Getenv(EnvLogFile))
	assert.Equal(t, "debug", os.Getenv(EnvLogLevel))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "local.log", cfg.General.LogFile)
	assert.Equal(t, "debug", cfg.General.LogLevel)
}

func TestLoadDotEnv_Malformed(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, ".env"), "KIBUN_LOG_LEVEL=\"debug\nKIBUN_STORE_PATH=x.json\n")
	t.Cleanup(func() {
		_ = os.Unsetenv(EnvLogLevel)
		_ = os.Unsetenv(EnvStorePath)
	})

	loaded, err := LoadDotEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), ".env")
	assert.Empty(t, loaded)
}

func TestLoadDotEnv_None(t *testing.T) {
	isolate(t)
	loaded, err := LoadDotEnv()
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestPalette(t *testing.T) {
	cfg := Default()
	cfg.Colors.Border = "#123456"
	p := cfg.Palette()
	assert.Equal(t, "#123456", p.Border)
	assert.Equal(t, cfg.Colors.MoodLow, p.MoodLow)
}
