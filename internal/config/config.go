// Package config loads backlog configuration: defaults, an optional
// .backlog.yaml overlay, then environment variables (highest precedence).
// A .env file in the working directory is folded into the environment first.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultFile is the optional per-repo config overlay.
const DefaultFile = ".backlog.yaml"

// Config holds all runtime settings.
type Config struct {
	// Repo is the target repository as "owner/name". Empty means the
	// current directory's repository context.
	Repo string

	// ProjectID is the project board's node ID (e.g. "PVT_kwHOABC").
	ProjectID string

	// ProjectNumber is the board's human-visible number.
	ProjectNumber int

	// SyncDelay is the pause after each successful board update.
	SyncDelay time.Duration

	// CreateDelay is the pause between bulk issue creations.
	CreateDelay time.Duration

	// HistoryPath is the local SQLite file recording sync-run summaries.
	HistoryPath string

	// StatusAliases overrides the board option names that satisfy each
	// status label, in resolution order.
	StatusAliases map[string][]string

	// EpicContexts maps epic names to codebase hints used in generated
	// implementation prompts.
	EpicContexts map[string]string
}

// fileConfig is the YAML shape of the overlay file. Durations are strings
// ("750ms", "1s") and converted on load.
type fileConfig struct {
	Repo          string              `yaml:"repo"`
	ProjectID     string              `yaml:"project_id"`
	ProjectNumber int                 `yaml:"project_number"`
	SyncDelay     string              `yaml:"sync_delay"`
	CreateDelay   string              `yaml:"create_delay"`
	HistoryPath   string              `yaml:"history_path"`
	StatusAliases map[string][]string `yaml:"status_aliases"`
	EpicContexts  map[string]string   `yaml:"epic_contexts"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		SyncDelay:   300 * time.Millisecond,
		CreateDelay: 500 * time.Millisecond,
		HistoryPath: ".backlog/history.db",
	}
}

// Load assembles the effective configuration: defaults, then the YAML file
// if present, then environment variables. A missing .env or config file is
// not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if err := cfg.ApplyFile(DefaultFile); err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	cfg.applyEnv()
	return cfg, nil
}

// ApplyFile overlays settings from a YAML file onto the config.
func (c *Config) ApplyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	if fc.Repo != "" {
		c.Repo = fc.Repo
	}
	if fc.ProjectID != "" {
		c.ProjectID = fc.ProjectID
	}
	if fc.ProjectNumber > 0 {
		c.ProjectNumber = fc.ProjectNumber
	}
	if fc.SyncDelay != "" {
		d, err := time.ParseDuration(fc.SyncDelay)
		if err != nil {
			return fmt.Errorf("invalid sync_delay %q in %s: %w", fc.SyncDelay, path, err)
		}
		c.SyncDelay = d
	}
	if fc.CreateDelay != "" {
		d, err := time.ParseDuration(fc.CreateDelay)
		if err != nil {
			return fmt.Errorf("invalid create_delay %q in %s: %w", fc.CreateDelay, path, err)
		}
		c.CreateDelay = d
	}
	if fc.HistoryPath != "" {
		c.HistoryPath = fc.HistoryPath
	}
	if fc.StatusAliases != nil {
		c.StatusAliases = fc.StatusAliases
	}
	if fc.EpicContexts != nil {
		c.EpicContexts = fc.EpicContexts
	}
	return nil
}

// applyEnv overrides settings from BKG_* environment variables.
func (c *Config) applyEnv() {
	if val := os.Getenv("BKG_REPO"); val != "" {
		c.Repo = val
	}

	if val := os.Getenv("BKG_PROJECT_ID"); val != "" {
		c.ProjectID = val
	}

	if val := os.Getenv("BKG_PROJECT_NUMBER"); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n > 0 {
			c.ProjectNumber = n
		}
	}

	if val := os.Getenv("BKG_SYNC_DELAY"); val != "" {
		if d, err := time.ParseDuration(val); err == nil && d >= 0 {
			c.SyncDelay = d
		}
	}

	if val := os.Getenv("BKG_CREATE_DELAY"); val != "" {
		if d, err := time.ParseDuration(val); err == nil && d >= 0 {
			c.CreateDelay = d
		}
	}

	if val := os.Getenv("BKG_HISTORY_PATH"); val != "" {
		c.HistoryPath = val
	}
}
