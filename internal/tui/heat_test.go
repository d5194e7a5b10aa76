package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tendhq/tend/internal/activity"
)

// Thursday 2026-08-27; the grid anchor Sunday is 2026-08-23.
var heatNow = time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC)

func newHeatForTest(rec activity.Record, weeks int) *HeatModel {
	return NewHeatModel(rec, weeks, 4, 0.25, heatNow)
}

func TestNewHeatModel_CursorStartsOnToday(t *testing.T) {
	m := newHeatForTest(activity.Record{}, 4)

	c := m.cell()
	if c == nil {
		t.Fatal("cursor cell is nil")
	}
	if !c.Today {
		t.Fatalf("cursor should start on today, got %s", c.Date)
	}
	if c.Date != "2026-08-27" {
		t.Fatalf("today cell = %s, want 2026-08-27", c.Date)
	}
}

func TestHeatModel_Navigation(t *testing.T) {
	m := newHeatForTest(activity.Record{}, 4)

	startW, startD := m.cw, m.cd

	// Left moves a week back
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'h'}})
	if m.cw != startW-1 {
		t.Fatalf("h should move week back: cw = %d, want %d", m.cw, startW-1)
	}

	// Right moves forward again
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'l'}})
	if m.cw != startW {
		t.Fatalf("l should move week forward: cw = %d, want %d", m.cw, startW)
	}

	// Up moves a day earlier in the week
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	if m.cd != startD-1 {
		t.Fatalf("k should move day up: cd = %d, want %d", m.cd, startD-1)
	}

	// Down moves back
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	if m.cd != startD {
		t.Fatalf("j should move day down: cd = %d, want %d", m.cd, startD)
	}
}

func TestHeatModel_NavigationClamps(t *testing.T) {
	m := newHeatForTest(activity.Record{}, 2)

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'g'}})
	if m.cw != 0 {
		t.Fatalf("g should jump to oldest week, got %d", m.cw)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'h'}})
	if m.cw != 0 {
		t.Fatalf("h at left edge should clamp, got %d", m.cw)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'G'}})
	if m.cw != m.weeks-1 {
		t.Fatalf("G should jump to newest week, got %d", m.cw)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'l'}})
	if m.cw != m.weeks-1 {
		t.Fatalf("l at right edge should clamp, got %d", m.cw)
	}
}

func TestHeatModel_AdjustRecordsEdit(t *testing.T) {
	m := newHeatForTest(activity.Record{"2026-08-27": 1.0}, 4)

	// +0.25 on today
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'+'}})

	edits := m.Edits()
	if len(edits) != 1 {
		t.Fatalf("expected 1 edit, got %d", len(edits))
	}
	if edits[0].Date != "2026-08-27" {
		t.Errorf("edit date = %s, want 2026-08-27", edits[0].Date)
	}
	if edits[0].Amount != 1.25 {
		t.Errorf("edit amount = %v, want 1.25", edits[0].Amount)
	}
}

func TestHeatModel_AdjustClampsAtZero(t *testing.T) {
	m := newHeatForTest(activity.Record{}, 4)

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'-'}})

	edits := m.Edits()
	if len(edits) != 1 {
		t.Fatalf("expected 1 edit, got %d", len(edits))
	}
	if edits[0].Amount != 0 {
		t.Errorf("subtracting below zero should clamp: got %v", edits[0].Amount)
	}
}

func TestHeatModel_LastEditWins(t *testing.T) {
	m := newHeatForTest(activity.Record{}, 4)

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'+'}})
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'+'}})
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'+'}})

	edits := m.Edits()
	if len(edits) != 1 {
		t.Fatalf("repeat edits on one date should collapse, got %d", len(edits))
	}
	if edits[0].Amount != 0.75 {
		t.Errorf("final amount = %v, want 0.75", edits[0].Amount)
	}
}

func TestHeatModel_ClearRemovesEntry(t *testing.T) {
	m := newHeatForTest(activity.Record{"2026-08-27": 2.5}, 4)

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})

	edits := m.Edits()
	if len(edits) != 1 || !edits[0].Remove {
		t.Fatalf("x should record a removal edit, got %v", edits)
	}
	if c := m.cell(); c.Logged {
		t.Error("cleared cell should no longer read as logged")
	}
}

func TestHeatModel_ZeroKeyLogsRestDay(t *testing.T) {
	m := newHeatForTest(activity.Record{"2026-08-27": 2.5}, 4)

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'0'}})

	edits := m.Edits()
	if len(edits) != 1 || edits[0].Remove || edits[0].Amount != 0 {
		t.Fatalf("0 should record an explicit zero, got %v", edits)
	}
	if c := m.cell(); !c.Logged {
		t.Error("rest day should still read as logged")
	}
}

func TestHeatModel_AdjustAfterClearReplacesRemoval(t *testing.T) {
	m := newHeatForTest(activity.Record{"2026-08-27": 2.5}, 4)

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'+'}})

	edits := m.Edits()
	if len(edits) != 1 || edits[0].Remove {
		t.Fatalf("adjusting after clear should replace the removal, got %v", edits)
	}
	if edits[0].Amount != 0.25 {
		t.Errorf("amount = %v, want 0.25", edits[0].Amount)
	}
}

func TestHeatModel_FutureCellsNotEditable(t *testing.T) {
	m := newHeatForTest(activity.Record{}, 4)

	// Move cursor past today into the future (today is Thursday, day 4;
	// Friday and Saturday of the current week are future).
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	c := m.cell()
	if c == nil || !c.Future {
		t.Fatalf("expected future cell, got %+v", c)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'+'}})
	if len(m.Edits()) != 0 {
		t.Fatal("future cells must not record edits")
	}
}

func TestHeatModel_QuitSetsFlag(t *testing.T) {
	m := newHeatForTest(activity.Record{}, 4)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if !m.quitting {
		t.Fatal("q should set quitting")
	}
	if cmd == nil {
		t.Fatal("q should return tea.Quit command")
	}
}

func TestHeatModel_ViewContainsDayLabelsAndDetail(t *testing.T) {
	m := newHeatForTest(activity.Record{"2026-08-27": 1.5}, 4)

	view := m.View()
	for _, label := range []string{"Sun", "Wed", "Sat"} {
		if !strings.Contains(view, label) {
			t.Errorf("view missing day label %q", label)
		}
	}
	if !strings.Contains(view, "2026-08-27") {
		t.Error("view should show the selected date")
	}
	if !strings.Contains(view, "1.50h") {
		t.Errorf("view should show the selected day's hours; got:\n%s", view)
	}
}
