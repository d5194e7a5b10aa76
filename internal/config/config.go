package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
)

// Config holds the top-level tend configuration.
type Config struct {
	User  UserConfig  `toml:"user"`
	Track TrackConfig `toml:"track"`
	UI    UIConfig    `toml:"ui"`
}

type UserConfig struct {
	Name string `toml:"name"`
}

// TrackConfig controls how activity amounts are recorded and kept.
type TrackConfig struct {
	// RetentionMonths is the trailing window of daily entries kept on load.
	RetentionMonths int `toml:"retention_months"`
	// Granularity is the smallest loggable increment, in hours.
	Granularity float64 `toml:"granularity"`
	// HeatWeeks is the default width of the heatmap, in weeks.
	HeatWeeks int `toml:"heat_weeks"`
	// DayTarget is the daily hours target shown on the dashboard. 0 disables it.
	DayTarget float64 `toml:"day_target"`
}

// UIConfig controls optional terminal output.
type UIConfig struct {
	// Tips controls whether the dashboard shows a usage tip.
	// Defaults to true when not set in config (opt-out model).
	Tips *bool `toml:"tips,omitempty"`
}

// TipsEnabled returns whether dashboard tips are shown.
// Treats nil (missing from config) as true — opt-out, not opt-in.
func (u UIConfig) TipsEnabled() bool {
	if u.Tips == nil {
		return true
	}
	return *u.Tips
}

const (
	DefaultRetentionMonths = 6
	DefaultGranularity     = 0.25
	DefaultHeatWeeks       = 12
)

// Paths returns standard XDG-compliant paths.
type Paths struct {
	ConfigDir  string
	DataDir    string
	CacheDir   string
	StateDir   string
	ConfigFile string
	DBFile     string
}

// pathOverrides are explicit per-app directory overrides, taking precedence
// over the XDG variables.
type pathOverrides struct {
	ConfigDir string `env:"TEND_CONFIG_DIR"`
	DataDir   string `env:"TEND_DATA_DIR"`
}

// GetPaths returns the resolved paths, respecting TEND_* overrides first and
// XDG env vars second.
func GetPaths() Paths {
	home, _ := os.UserHomeDir()

	configDir := envOr("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	dataDir := envOr("XDG_DATA_HOME", filepath.Join(home, ".local", "share"))
	cacheDir := envOr("XDG_CACHE_HOME", filepath.Join(home, ".cache"))
	stateDir := envOr("XDG_STATE_HOME", filepath.Join(home, ".local", "state"))

	tendConfig := filepath.Join(configDir, "tend")
	tendData := filepath.Join(dataDir, "tend")

	var ov pathOverrides
	_ = env.Parse(&ov)
	if ov.ConfigDir != "" {
		tendConfig = ov.ConfigDir
	}
	if ov.DataDir != "" {
		tendData = ov.DataDir
	}

	return Paths{
		ConfigDir:  tendConfig,
		DataDir:    tendData,
		CacheDir:   filepath.Join(cacheDir, "tend"),
		StateDir:   filepath.Join(stateDir, "tend"),
		ConfigFile: filepath.Join(tendConfig, "config.toml"),
		DBFile:     filepath.Join(tendData, "tend.db"),
	}
}

// EnsureDirs creates all required directories.
func (p Paths) EnsureDirs() error {
	dirs := []string{p.ConfigDir, p.DataDir, p.CacheDir, p.StateDir}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return err
		}
	}
	return nil
}

// Load reads config from disk, returning defaults if not found.
func Load() (*Config, error) {
	paths := GetPaths()
	cfg := &Config{}

	data, err := os.ReadFile(paths.ConfigFile)
	if err != nil {
		if os.IsNotExist(err) {
			return defaultConfig(), nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

// Save writes config to disk.
func Save(cfg *Config) error {
	paths := GetPaths()
	if err := paths.EnsureDirs(); err != nil {
		return err
	}

	f, err := os.Create(paths.ConfigFile)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// Initialized returns true if tend has been set up.
func Initialized() bool {
	paths := GetPaths()
	_, err := os.Stat(paths.ConfigFile)
	return err == nil
}

// BoolPtr returns a pointer to a bool value.
func BoolPtr(v bool) *bool {
	return &v
}

func defaultConfig() *Config {
	cfg := &Config{
		UI: UIConfig{
			Tips: BoolPtr(true),
		},
	}
	cfg.applyDefaults()
	return cfg
}

// applyDefaults backfills zero-valued tracking settings. A config written by
// an older build may omit newer keys; missing means default, not zero.
func (c *Config) applyDefaults() {
	if c.Track.RetentionMonths <= 0 {
		c.Track.RetentionMonths = DefaultRetentionMonths
	}
	if c.Track.Granularity <= 0 {
		c.Track.Granularity = DefaultGranularity
	}
	if c.Track.HeatWeeks <= 0 {
		c.Track.HeatWeeks = DefaultHeatWeeks
	}
	if c.Track.DayTarget < 0 {
		c.Track.DayTarget = 0
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
