package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGetPaths(t *testing.T) {
	paths := GetPaths()

	if paths.ConfigDir == "" {
		t.Fatal("ConfigDir should not be empty")
	}
	if paths.DataDir == "" {
		t.Fatal("DataDir should not be empty")
	}
	if paths.ConfigFile == "" {
		t.Fatal("ConfigFile should not be empty")
	}
	if paths.DBFile == "" {
		t.Fatal("DBFile should not be empty")
	}
}

func TestGetPathsRespectsXDG(t *testing.T) {
	t.Setenv("TEND_CONFIG_DIR", "")
	t.Setenv("TEND_DATA_DIR", "")
	t.Setenv("XDG_CONFIG_HOME", "/tmp/testxdg/config")
	t.Setenv("XDG_DATA_HOME", "/tmp/testxdg/data")

	paths := GetPaths()

	if paths.ConfigDir != "/tmp/testxdg/config/tend" {
		t.Fatalf("expected /tmp/testxdg/config/tend, got %s", paths.ConfigDir)
	}
	if paths.DataDir != "/tmp/testxdg/data/tend" {
		t.Fatalf("expected /tmp/testxdg/data/tend, got %s", paths.DataDir)
	}
}

func TestGetPathsTendOverridesWin(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/testxdg/config")
	t.Setenv("TEND_CONFIG_DIR", "/tmp/explicit/config")
	t.Setenv("TEND_DATA_DIR", "/tmp/explicit/data")

	paths := GetPaths()

	if paths.ConfigDir != "/tmp/explicit/config" {
		t.Fatalf("TEND_CONFIG_DIR ignored, got %s", paths.ConfigDir)
	}
	if paths.DBFile != "/tmp/explicit/data/tend.db" {
		t.Fatalf("TEND_DATA_DIR ignored, got %s", paths.DBFile)
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("TEND_CONFIG_DIR", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Track.RetentionMonths != DefaultRetentionMonths {
		t.Errorf("retention = %d, want %d", cfg.Track.RetentionMonths, DefaultRetentionMonths)
	}
	if cfg.Track.Granularity != DefaultGranularity {
		t.Errorf("granularity = %g, want %g", cfg.Track.Granularity, DefaultGranularity)
	}
	if cfg.Track.HeatWeeks != DefaultHeatWeeks {
		t.Errorf("heat weeks = %d, want %d", cfg.Track.HeatWeeks, DefaultHeatWeeks)
	}
	if !cfg.UI.TipsEnabled() {
		t.Error("tips should default to enabled")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("TEND_CONFIG_DIR", tmp)
	t.Setenv("TEND_DATA_DIR", filepath.Join(tmp, "data"))

	cfg := defaultConfig()
	cfg.User.Name = "Sam"
	cfg.Track.DayTarget = 4
	cfg.UI.Tips = BoolPtr(false)

	if err := Save(cfg); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.User.Name != "Sam" {
		t.Errorf("name = %q, want Sam", loaded.User.Name)
	}
	if loaded.Track.DayTarget != 4 {
		t.Errorf("day target = %g, want 4", loaded.Track.DayTarget)
	}
	if loaded.UI.TipsEnabled() {
		t.Error("tips should be disabled after round trip")
	}
}

func TestApplyDefaultsBackfillsMissingKeys(t *testing.T) {
	// A config written by an older build may omit newer keys entirely.
	tmp := t.TempDir()
	t.Setenv("TEND_CONFIG_DIR", tmp)

	raw := "[user]\nname = \"Sam\"\n"
	if err := os.WriteFile(filepath.Join(tmp, "config.toml"), []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Track.Granularity != DefaultGranularity {
		t.Errorf("granularity = %g, want backfilled default %g", cfg.Track.Granularity, DefaultGranularity)
	}
	if cfg.User.Name != "Sam" {
		t.Errorf("name = %q, want Sam", cfg.User.Name)
	}
}

func TestInitialized(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("TEND_CONFIG_DIR", tmp)
	t.Setenv("TEND_DATA_DIR", filepath.Join(tmp, "data"))

	if Initialized() {
		t.Error("Initialized true before any config written")
	}
	if err := Save(defaultConfig()); err != nil {
		t.Fatal(err)
	}
	if !Initialized() {
		t.Error("Initialized false after Save")
	}
}
