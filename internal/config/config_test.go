package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points XDG lookups at an empty directory and clears env overrides.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("XDG_CONFIG_DIRS", dir)
	for _, k := range []string{"PROJECTHUB_FIXTURE", "PROJECTHUB_LOG_FILE", "PROJECTHUB_LOG_LEVEL", "PROJECTHUB_TODAY", "PROJECTHUB_UPCOMING_DAYS"} {
		t.Setenv(k, "")
	}
	xdg.Reload()
	t.Cleanup(xdg.Reload)
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, DefaultUpcomingDays, cfg.UpcomingDays)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.Fixture)
	assert.Empty(t, cfg.Path)
}

func TestLoad_ExplicitPath(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.yaml")
	writeFile(t, path, "fixture: /tmp/data.yaml\nlog_level: debug\ntoday: 2026-03-20\nupcoming_days: 14\n")

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "/tmp/data.yaml", cfg.Fixture)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "2026-03-20", cfg.Today)
	assert.Equal(t, 14, cfg.UpcomingDays)
	assert.Equal(t, path, cfg.Path)
}

func TestLoad_XDGPath(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, RelPath), "log_file: /tmp/projecthub.log\n")

	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, "/tmp/projecthub.log", cfg.LogFile)
	assert.Equal(t, filepath.Join(dir, RelPath), cfg.Path)
}

func TestLoad_EmptyFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "empty.yaml")
	writeFile(t, path, "")

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, DefaultUpcomingDays, cfg.UpcomingDays)
}

func TestLoad_MissingExplicitPath(t *testing.T) {
	dir := isolate(t)

	_, err := Load(filepath.Join(dir, "nope.yaml"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open config")
}

func TestLoad_UnknownKey(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "bad.yaml")
	writeFile(t, path, "fixtures: oops\n")

	_, err := Load(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode config")
}

func TestLoad_EnvOverrides(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.yaml")
	writeFile(t, path, "log_level: warn\nupcoming_days: 7\n")

	t.Setenv("PROJECTHUB_LOG_LEVEL", "debug")
	t.Setenv("PROJECTHUB_UPCOMING_DAYS", "45")
	t.Setenv("PROJECTHUB_TODAY", "2026-01-31")
	t.Setenv("PROJECTHUB_FIXTURE", "alt.yaml")

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 45, cfg.UpcomingDays)
	assert.Equal(t, "2026-01-31", cfg.Today)
	assert.Equal(t, "alt.yaml", cfg.Fixture)
}

func TestLoad_InvalidToday(t *testing.T) {
	isolate(t)
	t.Setenv("PROJECTHUB_TODAY", "31/01/2026")

	_, err := Load("")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid today setting")
}

func TestLoad_NonPositiveUpcomingDaysFallsBack(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.yaml")
	writeFile(t, path, "upcoming_days: -3\n")

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, DefaultUpcomingDays, cfg.UpcomingDays)
}

func TestClock(t *testing.T) {
	cfg := Default()
	assert.NotNil(t, cfg.Clock())

	cfg.Today = "2026-03-20"
	now := cfg.Clock()()
	assert.Equal(t, 2026, now.Year())
	assert.Equal(t, 20, now.Day())
}
