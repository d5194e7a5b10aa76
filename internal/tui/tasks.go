package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tendhq/tend/internal/task"
	"github.com/tendhq/tend/internal/ui"
)

// TaskAction represents an action taken in the task TUI. Tasks are addressed
// by ID so the caller can resolve positions after earlier actions shift them.
type TaskAction struct {
	Type  string // "toggle", "delete", "add", "quit"
	ID    string
	Title string
}

// TaskModel is a full interactive Bubbletea model for managing a day's tasks.
type TaskModel struct {
	date     string
	tasks    []task.Task
	cursor   int
	filter   string
	filtered []task.Task
	mode     taskMode

	// add mode state
	addInput string

	// terminal dimensions
	width  int
	height int

	// pending actions to apply after quitting
	Actions []TaskAction

	quitting bool
}

type taskMode int

const (
	taskModeNormal taskMode = iota
	taskModeFilter
	taskModeAdd
)

// NewTaskModel creates a new TaskModel for the given day's tasks.
func NewTaskModel(date string, tasks []task.Task) *TaskModel {
	m := &TaskModel{
		date:   date,
		tasks:  tasks,
		width:  80,
		height: 24,
	}
	m.applyFilter()
	return m
}

// RunTasks launches the interactive task TUI. Returns actions for the caller to apply.
func RunTasks(date string, tasks []task.Task) ([]TaskAction, error) {
	m := NewTaskModel(date, tasks)
	prog := tea.NewProgram(m, tea.WithAltScreen())
	result, err := prog.Run()
	if err != nil {
		return nil, fmt.Errorf("task tui: %w", err)
	}
	final := result.(*TaskModel)
	return final.Actions, nil
}

func (m *TaskModel) Init() tea.Cmd {
	return nil
}

func (m *TaskModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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

func (m *TaskModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case taskModeFilter:
		return m.handleFilterKey(msg)
	case taskModeAdd:
		return m.handleAddKey(msg)
	default:
		return m.handleNormalKey(msg)
	}
}

func (m *TaskModel) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		m.quitting = true
		return m, tea.Quit

	case "j", "down":
		if m.cursor < len(m.filtered)-1 {
			m.cursor++
		}

	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}

	case "g":
		m.cursor = 0

	case "G":
		if len(m.filtered) > 0 {
			m.cursor = len(m.filtered) - 1
		}
	case "x", " ", "enter":
		if len(m.filtered) > 0 {
			t := m.filtered[m.cursor]
			m.Actions = append(m.Actions, TaskAction{Type: "toggle", ID: t.ID})
			// Toggle locally for immediate feedback
			for i, item := range m.tasks {
				if item.ID == t.ID {
					m.tasks[i].Done = !m.tasks[i].Done
					break
				}
			}
			m.applyFilter()
			if m.cursor >= len(m.filtered) && m.cursor > 0 {
				m.cursor = len(m.filtered) - 1
			}
		}

	case "d":
		if len(m.filtered) > 0 {
			t := m.filtered[m.cursor]
			m.Actions = append(m.Actions, TaskAction{Type: "delete", ID: t.ID})
			// Remove locally
			for i, item := range m.tasks {
				if item.ID == t.ID {
					m.tasks = append(m.tasks[:i], m.tasks[i+1:]...)
					break
				}
			}
			m.applyFilter()
			if m.cursor >= len(m.filtered) && m.cursor > 0 {
				m.cursor = len(m.filtered) - 1
			}
		}

	case "a":
		m.mode = taskModeAdd
		m.addInput = ""

	case "/":
		m.mode = taskModeFilter
		m.filter = ""
		m.applyFilter()
		m.cursor = 0
	}

	return m, nil
}

func (m *TaskModel) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = taskModeNormal
		m.filter = ""
		m.applyFilter()
		m.cursor = 0

	case "enter":
		m.mode = taskModeNormal

	case "backspace":
		if len(m.filter) > 0 {
			runes := []rune(m.filter)
			m.filter = string(runes[:len(runes)-1])
			m.applyFilter()
			m.cursor = 0
		}

	default:
		if len(msg.String()) == 1 {
			m.filter += msg.String()
			m.applyFilter()
			m.cursor = 0
		}
	}
	return m, nil
}

func (m *TaskModel) handleAddKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = taskModeNormal
		m.addInput = ""

	case "enter":
		text := strings.TrimSpace(m.addInput)
		if text != "" {
			// The temp ID lets the caller resolve later toggles/deletes of a
			// task that was added in this same session.
			tempID := fmt.Sprintf("new-%d", len(m.Actions)+1)
			m.Actions = append(m.Actions, TaskAction{Type: "add", ID: tempID, Title: text})
			m.tasks = append(m.tasks, task.Task{
				ID:        tempID,
				Title:     text,
				CreatedAt: time.Now(),
			})
			m.applyFilter()
			if len(m.filtered) > 0 {
				m.cursor = len(m.filtered) - 1
			} else {
				m.cursor = 0
			}
		}
		m.mode = taskModeNormal
		m.addInput = ""

	case "backspace":
		if len(m.addInput) > 0 {
			runes := []rune(m.addInput)
			m.addInput = string(runes[:len(runes)-1])
		}

	default:
		// Accept printable characters
		if len(msg.Runes) > 0 {
			m.addInput += string(msg.Runes)
		}
	}
	return m, nil
}

func (m *TaskModel) applyFilter() {
	m.filtered = nil
	q := strings.ToLower(m.filter)
	for _, t := range m.tasks {
		if q == "" {
			m.filtered = append(m.filtered, t)
			continue
		}
		if ok, _ := FuzzyMatch(q, t.Title); ok {
			m.filtered = append(m.filtered, t)
		}
	}
}

func (m *TaskModel) View() string {
	var b strings.Builder

	// Header
	header := ui.Title.Render("  " + ui.IconTask + " Tasks " + ui.Muted.Render(m.date))
	if m.filter != "" {
		header += ui.Muted.Render(fmt.Sprintf("  filter: %q", m.filter))
	}
	b.WriteString(header + "\n\n")

	// Item list
	visHeight := m.height - 8 // reserve space for header, input, status bar
	if visHeight < 3 {
		visHeight = 3
	}

	// Calculate scroll offset
	offset := 0
	if m.cursor >= visHeight {
		offset = m.cursor - visHeight + 1
	}

	if len(m.filtered) == 0 {
		if m.filter != "" {
			b.WriteString("  " + ui.Muted.Render("No matches. Press esc to clear filter.") + "\n")
		} else {
			b.WriteString("  " + ui.Muted.Render("No tasks for this day. Press 'a' to add one.") + "\n")
		}
	} else {
		end := offset + visHeight
		if end > len(m.filtered) {
			end = len(m.filtered)
		}
		for i := offset; i < end; i++ {
			t := m.filtered[i]
			selected := i == m.cursor

			line := m.renderTaskItem(i+1, t, selected)
			b.WriteString(line + "\n")
		}
	}

	b.WriteString("\n")

	// Input area (filter or add mode)
	switch m.mode {
	case taskModeFilter:
		prompt := lipgloss.NewStyle().Foreground(ui.Sprout).Bold(true).Render("/")
		b.WriteString("  " + prompt + " " + m.filter + blinkCursor() + "\n")
	case taskModeAdd:
		prompt := lipgloss.NewStyle().Foreground(ui.Leaf).Bold(true).Render("add:")
		b.WriteString("  " + prompt + " " + m.addInput + blinkCursor() + "\n")
	default:
		b.WriteString("\n")
	}

	b.WriteString("\n")

	// Status bar
	open := 0
	for _, t := range m.tasks {
		if !t.Done {
			open++
		}
	}
	countStr := ui.Muted.Render(fmt.Sprintf("  %d/%d shown · %d open", len(m.filtered), len(m.tasks), open))
	b.WriteString(countStr + "\n")

	// Help line
	var help string
	switch m.mode {
	case taskModeFilter:
		help = ui.Muted.Render("  esc clear · enter confirm")
	case taskModeAdd:
		help = ui.Muted.Render("  enter save · esc cancel")
	default:
		help = ui.Muted.Render("  j/k move · x toggle · a add · d delete · / filter · q quit")
	}
	b.WriteString(help + "\n")

	return b.String()
}

func (m *TaskModel) renderTaskItem(n int, t task.Task, selected bool) string {
	pointer := "  "
	titleStyle := lipgloss.NewStyle()

	if selected {
		pointer = ui.Accent.Render(ui.IconArrow + " ")
		titleStyle = lipgloss.NewStyle().Foreground(ui.Sprout).Bold(true)
	}

	// Done marker
	marker := " "
	if t.Done {
		marker = ui.Success.Render("✓")
	}

	num := ui.Muted.Render(fmt.Sprintf("#%-3d", n))
	if strings.HasPrefix(t.ID, "new-") {
		num = ui.Muted.Render("new ")
	}
	title := t.Title
	if t.Done {
		title = ui.Muted.Render(title)
	} else {
		title = titleStyle.Render(title)
	}

	line := fmt.Sprintf("  %s %s %s %s", pointer, marker, num, title)

	// Hours annotation
	if t.Hours > 0 {
		line += ui.Muted.Render(fmt.Sprintf(" (%gh)", t.Hours))
	}

	return line
}

// blinkCursor renders the input-mode cursor block.
func blinkCursor() string {
	return lipgloss.NewStyle().Foreground(ui.Subtle).Render("▌")
}
