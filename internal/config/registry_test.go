package config

import (
	"sort"
	"testing"
)

func TestValidKeyNames_Sorted(t *testing.T) {
	names := ValidKeyNames()
	if len(names) == 0 {
		t.Fatal("expected non-empty key list")
	}
	if !sort.StringsAreSorted(names) {
		t.Fatalf("expected sorted key names, got %v", names)
	}
}

func TestValidKeyNames_ContainsKnownKeys(t *testing.T) {
	expected := []string{
		"user.name",
		"track.retention_months",
		"track.granularity",
		"track.heat_weeks",
		"track.day_target",
		"ui.tips",
	}
	names := ValidKeyNames()
	nameSet := make(map[string]bool, len(names))
	for _, n := range names {
		nameSet[n] = true
	}
	for _, want := range expected {
		if !nameSet[want] {
			t.Errorf("ValidKeyNames missing expected key %q", want)
		}
	}
}

func TestLookupKey_Unknown(t *testing.T) {
	if _, ok := LookupKey("no.such.key"); ok {
		t.Fatal("unknown key reported as known")
	}
}

func TestRegistry_StringKey(t *testing.T) {
	entry, ok := LookupKey("user.name")
	if !ok {
		t.Fatal("user.name not found")
	}
	cfg := defaultConfig()
	if err := entry.Set(cfg, "Sam"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if got := entry.Get(cfg); got != "Sam" {
		t.Errorf("Get = %q, want Sam", got)
	}
}

func TestRegistry_IntKeyValidation(t *testing.T) {
	entry, _ := LookupKey("track.retention_months")
	cfg := defaultConfig()

	if err := entry.Set(cfg, "12"); err != nil {
		t.Fatalf("Set(12): %v", err)
	}
	if cfg.Track.RetentionMonths != 12 {
		t.Errorf("retention = %d, want 12", cfg.Track.RetentionMonths)
	}

	for _, bad := range []string{"zero", "0", "-3", "1.5"} {
		if err := entry.Set(cfg, bad); err == nil {
			t.Errorf("Set(%q) accepted", bad)
		}
	}
}

func TestRegistry_FloatKeyValidation(t *testing.T) {
	entry, _ := LookupKey("track.granularity")
	cfg := defaultConfig()

	if err := entry.Set(cfg, "0.5"); err != nil {
		t.Fatalf("Set(0.5): %v", err)
	}
	if cfg.Track.Granularity != 0.5 {
		t.Errorf("granularity = %g, want 0.5", cfg.Track.Granularity)
	}

	for _, bad := range []string{"-1", "0", "half an hour"} {
		if err := entry.Set(cfg, bad); err == nil {
			t.Errorf("Set(%q) accepted", bad)
		}
	}
}

func TestRegistry_BoolKey(t *testing.T) {
	entry, _ := LookupKey("ui.tips")
	cfg := defaultConfig()

	if err := entry.Set(cfg, "off"); err != nil {
		t.Fatalf("Set(off): %v", err)
	}
	if cfg.UI.TipsEnabled() {
		t.Error("tips still enabled after Set(off)")
	}
	if got := entry.Get(cfg); got != "false" {
		t.Errorf("Get = %q, want false", got)
	}
	if err := entry.Set(cfg, "sometimes"); err == nil {
		t.Error("Set(sometimes) accepted")
	}
}

func TestParseBoolValue(t *testing.T) {
	truthy := []string{"true", "1", "yes", "on", "TRUE", " On "}
	for _, v := range truthy {
		b, err := ParseBoolValue(v)
		if err != nil || !b {
			t.Errorf("ParseBoolValue(%q) = %v, %v; want true, nil", v, b, err)
		}
	}
	falsy := []string{"false", "0", "no", "off"}
	for _, v := range falsy {
		b, err := ParseBoolValue(v)
		if err != nil || b {
			t.Errorf("ParseBoolValue(%q) = %v, %v; want false, nil", v, b, err)
		}
	}
	if _, err := ParseBoolValue("maybe"); err == nil {
		t.Error("ParseBoolValue(maybe) accepted")
	}
}
