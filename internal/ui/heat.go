package ui

import (
	"os"

	"github.com/muesli/termenv"
)

// heatRamp is the five-step green ramp used for activity heatmaps,
// from empty through increasingly intense greens.
var heatRamp = [...]string{
	"#3A3A3A", // level 0: no activity
	"#0E4429",
	"#006D32",
	"#26A641",
	"#39D353", // level 4: most intense
}

// HeatLevels is the number of intensity buckets in the heat ramp.
const HeatLevels = len(heatRamp)

var heatOutput = termenv.NewOutput(os.Stdout)

// HeatLevel buckets an hour amount into a ramp level 0..4.
//
// When target > 0, levels are quartiles of the target: reaching the target
// (or more) is level 4. When no target is set, fixed thresholds apply:
// <1h, <2h, <4h, and 4h+ map to levels 1 through 4.
func HeatLevel(amount, target float64) int {
	if amount <= 0 {
		return 0
	}
	if target > 0 {
		ratio := amount / target
		switch {
		case ratio >= 1.0:
			return 4
		case ratio >= 0.75:
			return 3
		case ratio >= 0.5:
			return 2
		default:
			return 1
		}
	}
	switch {
	case amount >= 4:
		return 4
	case amount >= 2:
		return 3
	case amount >= 1:
		return 2
	default:
		return 1
	}
}

// HeatCell renders a single heatmap cell for the given hour amount,
// colored per the terminal's color profile.
func HeatCell(amount, target float64) string {
	return HeatCellLevel(HeatLevel(amount, target))
}

// HeatCellLevel renders a heatmap cell at an explicit ramp level.
func HeatCellLevel(level int) string {
	if level < 0 {
		level = 0
	}
	if level >= HeatLevels {
		level = HeatLevels - 1
	}
	return heatOutput.String("■").Foreground(heatOutput.Color(heatRamp[level])).String()
}

// FutureCell renders a placeholder cell for days that have not happened yet.
func FutureCell() string {
	return heatOutput.String("·").Foreground(heatOutput.Color("#555555")).String()
}
