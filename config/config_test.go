package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mowing.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "mowing.db", cfg.Database.Path)
	assert.True(t, cfg.RefresherEnabled())

	interval, err := cfg.Refresher.Interval()
	require.NoError(t, err)
	assert.Equal(t, time.Hour, interval)
}

func TestLoad_FileOverridesSelectively(t *testing.T) {
	path := writeTempConfig(t, `
server:
  port: 3000
database:
  driver: memory
  seed_demo: true
refresher:
  enabled: false
  check_interval: 30m
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, DriverMemory, cfg.Database.Driver)
	assert.True(t, cfg.Database.SeedDemo)
	assert.False(t, cfg.RefresherEnabled())

	interval, err := cfg.Refresher.Interval()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Minute, interval)
}

func TestLoad_OmittedRefresherEnabledDefaultsTrue(t *testing.T) {
	path := writeTempConfig(t, `
refresher:
  check_interval: 10m
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.RefresherEnabled(), "omitted enabled must default to true")
}

func TestLoad_UnknownDriverRejected(t *testing.T) {
	path := writeTempConfig(t, `
database:
  driver: postgres
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database.driver")
}

func TestLoad_InvalidInterval(t *testing.T) {
	path := writeTempConfig(t, `
refresher:
  check_interval: soon
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "check_interval")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/does/not/exist.yaml")
	require.Error(t, err)
}

func TestValidate_SQLiteNeedsPath(t *testing.T) {
	cfg := Default()
	cfg.Database.Path = ""
	require.Error(t, cfg.Validate())
}

func TestValidate_PortRange(t *testing.T) {
	cfg := Default()
	cfg.Server.Port = 0
	require.Error(t, cfg.Validate())

	cfg.Server.Port = 70000
	require.Error(t, cfg.Validate())
}
