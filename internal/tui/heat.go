package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tendhq/tend/internal/activity"
	"github.com/tendhq/tend/internal/ui"
)

// HeatEdit is a pending change for one date, recorded while browsing. The
// amount is the final value for that date, not a delta. Remove drops the
// day's entry entirely, which is distinct from an explicit 0 (a rest day).
type HeatEdit struct {
	Date   string
	Amount float64
	Remove bool
}

// HeatModel is the Bubbletea model for the interactive heatmap browser.
// Moving the cursor selects a day; +/- adjust its logged hours by the
// configured granularity. Edits are collected and applied by the caller
// after the program exits.
type HeatModel struct {
	grid        [][]activity.Cell
	weeks       int
	target      float64
	granularity float64

	// cursor position: week index, day index
	cw int
	cd int

	width  int
	height int

	edits map[string]HeatEdit

	quitting bool
}

// NewHeatModel creates a HeatModel over the given record.
func NewHeatModel(rec activity.Record, weeks int, target, granularity float64, now time.Time) *HeatModel {
	if granularity <= 0 {
		granularity = 0.25
	}
	grid := activity.BuildGrid(rec, weeks, now)
	m := &HeatModel{
		grid:        grid,
		weeks:       len(grid),
		target:      target,
		granularity: granularity,
		width:       80,
		height:      24,
		edits:       make(map[string]HeatEdit),
	}
	// Start on today's cell.
	for w := range grid {
		for d := range grid[w] {
			if grid[w][d].Today {
				m.cw, m.cd = w, d
			}
		}
	}
	return m
}

// RunHeat launches the interactive heatmap. Returns edits for the caller to apply.
func RunHeat(rec activity.Record, weeks int, target, granularity float64, now time.Time) ([]HeatEdit, error) {
	m := NewHeatModel(rec, weeks, target, granularity, now)
	prog := tea.NewProgram(m, tea.WithAltScreen())
	result, err := prog.Run()
	if err != nil {
		return nil, fmt.Errorf("heat tui: %w", err)
	}
	final := result.(*HeatModel)
	return final.Edits(), nil
}

// Edits returns the pending edits in grid order.
func (m *HeatModel) Edits() []HeatEdit {
	var out []HeatEdit
	for _, week := range m.grid {
		for _, c := range week {
			if e, ok := m.edits[c.Date]; ok {
				out = append(out, e)
			}
		}
	}
	return out
}

func (m *HeatModel) Init() tea.Cmd {
	return nil
}

func (m *HeatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *HeatModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		m.quitting = true
		return m, tea.Quit

	case "h", "left":
		if m.cw > 0 {
			m.cw--
		}

	case "l", "right":
		if m.cw < m.weeks-1 {
			m.cw++
		}

	case "k", "up":
		if m.cd > 0 {
			m.cd--
		}

	case "j", "down":
		if m.cd < 6 {
			m.cd++
		}

	case "g":
		m.cw = 0

	case "G":
		m.cw = m.weeks - 1

	case "+", "=":
		m.adjust(m.granularity)

	case "-", "_":
		m.adjust(-m.granularity)

	case "0":
		m.setAmount(0)

	case "x":
		m.clearEntry()
	}

	return m, nil
}

// adjust changes the selected day's amount by delta, clamped at zero.
// Future days cannot be edited.
func (m *HeatModel) adjust(delta float64) {
	c := m.cell()
	if c == nil || c.Future {
		return
	}
	amount := c.Amount + delta
	if amount < 0 {
		amount = 0
	}
	m.setAmount(amount)
}

func (m *HeatModel) setAmount(amount float64) {
	c := m.cell()
	if c == nil || c.Future {
		return
	}
	c.Amount = amount
	c.Logged = true
	m.edits[c.Date] = HeatEdit{Date: c.Date, Amount: amount}
}

// clearEntry removes the day's entry outright. Unlike setAmount(0) this
// leaves no record for the day at all, so streak math treats it as a gap
// rather than a logged rest day.
func (m *HeatModel) clearEntry() {
	c := m.cell()
	if c == nil || c.Future {
		return
	}
	c.Amount = 0
	c.Logged = false
	m.edits[c.Date] = HeatEdit{Date: c.Date, Remove: true}
}

func (m *HeatModel) cell() *activity.Cell {
	if m.cw < 0 || m.cw >= len(m.grid) || m.cd < 0 || m.cd >= len(m.grid[m.cw]) {
		return nil
	}
	return &m.grid[m.cw][m.cd]
}

var dayLabels = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

func (m *HeatModel) View() string {
	var b strings.Builder

	// Header
	b.WriteString(ui.Title.Render("  "+ui.IconHeat+" Activity") + "\n\n")

	// Grid: one row per weekday, one column per week.
	for d := 0; d < 7; d++ {
		b.WriteString("  " + ui.Muted.Render(fmt.Sprintf("%-4s", dayLabels[d])))
		for w := 0; w < m.weeks; w++ {
			c := m.grid[w][d]
			b.WriteString(m.renderCell(c, w == m.cw && d == m.cd))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")

	// Selected cell detail
	if c := m.cell(); c != nil {
		detail := fmt.Sprintf("  %s", c.Date)
		switch {
		case c.Future:
			detail += ui.Muted.Render("  (future)")
		case c.Logged:
			detail += ui.ValueStyle.Render(fmt.Sprintf("  %.2fh", c.Amount))
		default:
			detail += ui.Muted.Render("  no entry")
		}
		if c.Today {
			detail += ui.Accent.Render("  ← today")
		}
		if _, edited := m.edits[c.Date]; edited {
			detail += ui.Warning.Render("  (edited)")
		}
		b.WriteString(detail + "\n")
	}

	b.WriteString("\n")
	b.WriteString(ui.Muted.Render("  h/j/k/l move · + add · - subtract · 0 rest day · x clear entry · q save & quit") + "\n")

	return b.String()
}

func (m *HeatModel) renderCell(c activity.Cell, selected bool) string {
	var cell string
	if c.Future {
		cell = ui.FutureCell()
	} else {
		cell = ui.HeatCellLevel(ui.HeatLevel(c.Amount, m.target))
	}
	if selected {
		return lipgloss.NewStyle().Bold(true).Render("[") + cell + lipgloss.NewStyle().Bold(true).Render("]")
	}
	return " " + cell + " "
}
