package ui

import "github.com/charmbracelet/lipgloss"

// Garden palette shared by every tend command.
var (
	// Primary colors
	Leaf   = lipgloss.Color("#4CAF50")
	Sprout = lipgloss.Color("#8BC34A")
	Moss   = lipgloss.Color("#33691E")
	Earth  = lipgloss.Color("#795548")
	Bloom  = lipgloss.Color("#E91E63")
	Sky    = lipgloss.Color("#03A9F4")
	Sun    = lipgloss.Color("#FFC107")
	Dim    = lipgloss.Color("#666666")
	Bright = lipgloss.Color("#FFFFFF")
	Subtle = lipgloss.Color("#AAAAAA")

	// Semantic styles
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Leaf)

	Subtitle = lipgloss.NewStyle().
			Foreground(Sprout)

	Success = lipgloss.NewStyle().
		Foreground(Leaf)

	Error = lipgloss.NewStyle().
		Foreground(Bloom)

	Warning = lipgloss.NewStyle().
		Foreground(Sun)

	Info = lipgloss.NewStyle().
		Foreground(Sky)

	Muted = lipgloss.NewStyle().
		Foreground(Dim)

	Accent = lipgloss.NewStyle().
		Foreground(Sprout).
		Bold(true)

	// Component styles
	Banner = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Leaf).
		Padding(0, 1)

	Tag = lipgloss.NewStyle().
		Foreground(Bright).
		Background(Moss).
		Padding(0, 1).
		Bold(true)

	KeyStyle = lipgloss.NewStyle().
			Foreground(Sprout).
			Bold(true)

	ValueStyle = lipgloss.NewStyle().
			Foreground(Bright)
)

// Icon constants — consistent emoji language.
const (
	IconTend   = "🌱 "
	IconTask   = "📋"
	IconDone   = "✅"
	IconGoal   = "🎯"
	IconStreak = "🔥"
	IconHeat   = "🟩"
	IconReport = "📝"
	IconBackup = "🔑"
	IconStar   = "⭐"
	IconWarn   = "⚠️ "
	IconError  = "✗ "
	IconOk     = "✓ "
	IconArrow  = "→"
	IconDot    = "·"
)
