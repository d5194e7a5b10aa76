package cmd

import (
	"testing"

	"github.com/tendhq/tend/internal/activity"
	"github.com/tendhq/tend/internal/tui"
)

func TestApplyHeatEdits(t *testing.T) {
	rec := activity.Record{
		"2026-08-25": 2.0,
		"2026-08-26": 1.0,
	}

	applyHeatEdits(rec, []tui.HeatEdit{
		{Date: "2026-08-25", Remove: true},           // clear: entry gone
		{Date: "2026-08-26", Amount: 0},              // rest day: explicit 0 stays
		{Date: "2026-08-27", Amount: 1.5},            // new entry
	})

	if _, ok := rec["2026-08-25"]; ok {
		t.Error("removed day should have no entry at all")
	}
	if v, ok := rec["2026-08-26"]; !ok || v != 0 {
		t.Errorf("rest day should keep an explicit 0, got %v (present=%v)", v, ok)
	}
	if rec["2026-08-27"] != 1.5 {
		t.Errorf("new entry = %v, want 1.5", rec["2026-08-27"])
	}
}
