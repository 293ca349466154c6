// Package config loads dashboard settings from a YAML file, an optional .env file
// and PROJECTHUB_* environment variables, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"github.com/robby/projecthub/internal/calendar"
	"gopkg.in/yaml.v3"
)

// RelPath is the config location below the XDG config directories.
const RelPath = "projecthub/config.yaml"

// DefaultUpcomingDays is how far ahead the dashboard looks for due milestones.
const DefaultUpcomingDays = 30

// Config holds every tunable setting.
type Config struct {
	// Fixture is the path of an alternate YAML fixture. Empty uses the embedded one.
	Fixture  string `yaml:"fixture"`
	LogFile  string `yaml:"log_file"`
	LogLevel string `yaml:"log_level"`
	// Today pins the current date, as YYYY-MM-DD. Empty uses the system clock.
	Today        string `yaml:"today"`
	UpcomingDays int    `yaml:"upcoming_days"`
	BcryptCost   int    `yaml:"bcrypt_cost"`

	// Path is the file the config was read from, empty when defaults were used.
	Path string `yaml:"-"`
}

// Default returns the settings used when no config file exists.
func Default() *Config {
	return &Config{
		LogLevel:     "info",
		UpcomingDays: DefaultUpcomingDays,
	}
}

// Load reads path, or the XDG config file when path is empty. A missing XDG
// file means defaults; a missing explicit path is an error. A .env file in the
// working directory is loaded first so its values take part in env overrides.
func Load(path string) (*Config, error) {
	// .env is optional
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := Default()

	if path == "" {
		if found, err := xdg.SearchConfigFile(RelPath); err == nil {
			path = found
		}
	}

	if path != "" {
		if err := cfg.readFile(path); err != nil {
			return nil, err
		}
	}

	overrideFromEnv(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) readFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open config %s: %w", path, err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to decode config %s: %w", path, err)
	}
	c.Path = path
	return nil
}

func overrideFromEnv(cfg *Config) {
	if v := os.Getenv("PROJECTHUB_FIXTURE"); v != "" {
		cfg.Fixture = v
	}
	if v := os.Getenv("PROJECTHUB_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	if v := os.Getenv("PROJECTHUB_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("PROJECTHUB_TODAY"); v != "" {
		cfg.Today = v
	}
	if v := os.Getenv("PROJECTHUB_UPCOMING_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.UpcomingDays = n
		}
	}
}

func (c *Config) validate() error {
	if c.Today != "" {
		if _, err := calendar.Parse(c.Today); err != nil {
			return fmt.Errorf("invalid today setting: %w", err)
		}
	}
	if c.UpcomingDays <= 0 {
		c.UpcomingDays = DefaultUpcomingDays
	}
	return nil
}

// Clock returns the time source for the dashboard: the pinned Today date when set,
// otherwise time.Now.
func (c *Config) Clock() func() time.Time {
	if c.Today == "" {
		return time.Now
	}
	d, err := calendar.Parse(c.Today)
	if err != nil {
		return time.Now
	}
	pinned := time.Date(d.Year, d.Month, d.Day, 12, 0, 0, 0, time.Local)
	return func() time.Time { return pinned }
}
