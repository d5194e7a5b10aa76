package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// KeyType represents the data type of a config key.
type KeyType string

const (
	KeyTypeString KeyType = "string"
	KeyTypeInt    KeyType = "int"
	KeyTypeFloat  KeyType = "float"
	KeyTypeBool   KeyType = "bool"
)

// KeyEntry describes a known, settable config key.
type KeyEntry struct {
	// Type is the value's data type.
	Type KeyType
	// Desc is a human-readable description shown in help output.
	Desc string
	// DefaultStr is the string representation of the default value.
	DefaultStr string

	// get returns the current value as a string.
	get func(*Config) string
	// set validates and applies the value, returning an error on type
	// mismatch or out-of-range input.
	set func(cfg *Config, value string) error
}

// Get returns the current value of the key as a string.
func (e *KeyEntry) Get(cfg *Config) string { return e.get(cfg) }

// Set validates and sets the value, returning a descriptive error on bad input.
func (e *KeyEntry) Set(cfg *Config, value string) error { return e.set(cfg, value) }

// SchemaKeys is the authoritative registry of all settable config keys.
// Keys use dot-notation matching the TOML section structure.
var SchemaKeys = map[string]*KeyEntry{
	"user.name": {
		Type:       KeyTypeString,
		Desc:       "Display name shown on the dashboard",
		DefaultStr: "",
		get:        func(cfg *Config) string { return cfg.User.Name },
		set:        func(cfg *Config, v string) error { cfg.User.Name = v; return nil },
	},
	"track.retention_months": {
		Type:       KeyTypeInt,
		Desc:       "Trailing window of daily entries kept on load",
		DefaultStr: strconv.Itoa(DefaultRetentionMonths),
		get:        func(cfg *Config) string { return strconv.Itoa(cfg.Track.RetentionMonths) },
		set: func(cfg *Config, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil || n < 1 {
				return fmt.Errorf("invalid value %q for track.retention_months (want a positive integer)", v)
			}
			cfg.Track.RetentionMonths = n
			return nil
		},
	},
	"track.granularity": {
		Type:       KeyTypeFloat,
		Desc:       "Smallest loggable increment, in hours",
		DefaultStr: formatFloat(DefaultGranularity),
		get:        func(cfg *Config) string { return formatFloat(cfg.Track.Granularity) },
		set: func(cfg *Config, v string) error {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil || f <= 0 {
				return fmt.Errorf("invalid value %q for track.granularity (want a positive number)", v)
			}
			cfg.Track.Granularity = f
			return nil
		},
	},
	"track.heat_weeks": {
		Type:       KeyTypeInt,
		Desc:       "Default heatmap width, in weeks",
		DefaultStr: strconv.Itoa(DefaultHeatWeeks),
		get:        func(cfg *Config) string { return strconv.Itoa(cfg.Track.HeatWeeks) },
		set: func(cfg *Config, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil || n < 1 {
				return fmt.Errorf("invalid value %q for track.heat_weeks (want a positive integer)", v)
			}
			cfg.Track.HeatWeeks = n
			return nil
		},
	},
	"track.day_target": {
		Type:       KeyTypeFloat,
		Desc:       "Daily hours target shown on the dashboard (0 disables)",
		DefaultStr: "0",
		get:        func(cfg *Config) string { return formatFloat(cfg.Track.DayTarget) },
		set: func(cfg *Config, v string) error {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil || f < 0 {
				return fmt.Errorf("invalid value %q for track.day_target (want a non-negative number)", v)
			}
			cfg.Track.DayTarget = f
			return nil
		},
	},
	"ui.tips": {
		Type:       KeyTypeBool,
		Desc:       "Show a usage tip on the dashboard",
		DefaultStr: "true",
		get:        func(cfg *Config) string { return fmt.Sprintf("%t", cfg.UI.TipsEnabled()) },
		set: func(cfg *Config, v string) error {
			b, err := ParseBoolValue(v)
			if err != nil {
				return fmt.Errorf("invalid value %q for ui.tips: %w", v, err)
			}
			cfg.UI.Tips = BoolPtr(b)
			return nil
		},
	},
}

// ValidKeyNames returns the sorted list of all known config key names.
func ValidKeyNames() []string {
	names := make([]string, 0, len(SchemaKeys))
	for k := range SchemaKeys {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// LookupKey returns the KeyEntry for a known config key.
func LookupKey(key string) (*KeyEntry, bool) {
	entry, ok := SchemaKeys[key]
	return entry, ok
}

// ParseBoolValue accepts common boolean string representations.
// Valid truthy values: true, 1, yes, on.
// Valid falsy values: false, 0, no, off.
func ParseBoolValue(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "on":
		return true, nil
	case "false", "0", "no", "off":
		return false, nil
	default:
		return false, fmt.Errorf("not a boolean: %q (use one of: true/false, 1/0, yes/no, on/off)", s)
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
