package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetenv removes a variable for the test's duration; t.Setenv alone
// cannot express "not present".
func unsetenv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	os.Unsetenv(key)
}

func TestLoad_EnvOnly(t *testing.T) {
	t.Setenv("STEMPEL_CONFIG", "")
	t.Setenv("HOME", t.TempDir()) // no config file present
	t.Setenv("STEMPEL_DB", "/tmp/stempel-test.db")
	t.Setenv("STEMPEL_USER", "alice")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/stempel-test.db", cfg.DBPath)
	assert.Equal(t, "alice", cfg.User)
	assert.Equal(t, "Europe/Berlin", cfg.Timezone)
	assert.Equal(t, "Europe/Berlin", cfg.Location.String())
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoad_FileWithEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := "db_path: /data/stempel.db\nuser: bob\ntimezone: UTC\nlog:\n  level: debug\n"
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	t.Setenv("STEMPEL_CONFIG", path)
	unsetenv(t, "STEMPEL_DB")
	t.Setenv("STEMPEL_USER", "carol") // env wins over the file

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/data/stempel.db", cfg.DBPath)
	assert.Equal(t, "carol", cfg.User)
	assert.Equal(t, "UTC", cfg.Timezone)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	t.Setenv("STEMPEL_CONFIG", filepath.Join(t.TempDir(), "nope.yaml"))

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_DefaultDBPathUnderHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("STEMPEL_CONFIG", "")
	t.Setenv("HOME", home)
	t.Setenv("STEMPEL_DB", "")
	t.Setenv("STEMPEL_USER", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".stempel", "stempel.db"), cfg.DBPath)
}

func TestValidate_BadTimezone(t *testing.T) {
	cfg := Config{DBPath: "/tmp/x.db", Timezone: "Mars/Olympus", Log: LogConfig{Level: "warn", Format: "text"}}
	assert.Error(t, cfg.Validate())
}

func TestValidate_BadLogSettings(t *testing.T) {
	cfg := Config{DBPath: "/tmp/x.db", Timezone: "UTC", Log: LogConfig{Level: "loud", Format: "text"}}
	assert.Error(t, cfg.Validate())

	cfg.Log = LogConfig{Level: "info", Format: "xml"}
	assert.Error(t, cfg.Validate())
}
