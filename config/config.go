/*
config.go - Server configuration loaded from YAML

PURPOSE:
  Holds the deployable knobs of the scheduling server: HTTP port,
  storage backend, and the background forecast refresher. Everything
  has a working default so the server runs with no config file at all;
  a YAML file overrides selectively.

FORMAT:
  server:
    port: 8080
  database:
    driver: sqlite        # sqlite | memory
    path: ./mowing.db
    seed_demo: false      # memory driver only
  refresher:
    enabled: true
    check_interval: 1h    # Go duration string

PRECEDENCE:
  Command-line flags (cmd/server) beat file values, file values beat
  defaults.

SEE ALSO:
  - cmd/server/main.go: Flag handling and wiring
*/
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	yaml "go.yaml.in/yaml/v3"
)

// Storage driver names accepted in database.driver.
const (
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

// Config is the root of the server configuration file.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Refresher RefresherConfig `yaml:"refresher"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Port int `yaml:"port"`
}

// DatabaseConfig selects and parameterizes the storage backend.
type DatabaseConfig struct {
	Driver string `yaml:"driver"`
	Path   string `yaml:"path"`

	// SeedDemo loads a small demo dataset on startup. Memory driver
	// only; the sqlite store keeps its data across restarts.
	SeedDemo bool `yaml:"seed_demo"`
}

// RefresherConfig controls the background forecast refresh pass.
//
// Enabled is a pointer so an omitted field defaults to true while an
// explicit false still disables the refresher.
type RefresherConfig struct {
	Enabled       *bool  `yaml:"enabled"`
	CheckInterval string `yaml:"check_interval"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Server:   ServerConfig{Port: 8080},
		Database: DatabaseConfig{Driver: DriverSQLite, Path: "mowing.db"},
		Refresher: RefresherConfig{
			CheckInterval: "1h",
		},
	}
}

// Load reads a YAML config file over the defaults. An empty path
// returns the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks field values without touching the filesystem.
func (c Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port: %d out of range", c.Server.Port)
	}

	switch strings.TrimSpace(c.Database.Driver) {
	case DriverSQLite:
		if strings.TrimSpace(c.Database.Path) == "" {
			return fmt.Errorf("database.path: required for the sqlite driver")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("database.driver: unknown driver %q (use sqlite or memory)", c.Database.Driver)
	}

	if _, err := c.Refresher.Interval(); err != nil {
		return err
	}
	return nil
}

// RefresherEnabled reports whether the background refresher should run.
func (c Config) RefresherEnabled() bool {
	if c.Refresher.Enabled == nil {
		return true
	}
	return *c.Refresher.Enabled
}

// Interval parses the check interval, falling back to one hour when
// the field is empty.
func (r RefresherConfig) Interval() (time.Duration, error) {
	raw := strings.TrimSpace(r.CheckInterval)
	if raw == "" {
		return time.Hour, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("refresher.check_interval: invalid duration %q: %w", r.CheckInterval, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("refresher.check_interval: must be positive")
	}
	return d, nil
}
