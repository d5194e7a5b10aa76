package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/tendhq/tend/internal/activity"
	"github.com/tendhq/tend/internal/config"
	"github.com/tendhq/tend/internal/hook"
	"github.com/tendhq/tend/internal/store"
	"github.com/tendhq/tend/internal/tui"
	"github.com/tendhq/tend/internal/ui"
)

var (
	heatWeeks int
	heatPlain bool
)

var heatCmd = &cobra.Command{
	Use:   "heat",
	Short: "Browse your activity as a heatmap",
	Long: `Show logged hours as a week-by-week heatmap grid.
On a terminal this opens an interactive browser where you can move around
and adjust past days in place; when piped (or with --plain) it prints a
static grid.`,
	RunE: hook.Wrap("heat", runHeat),
}

func init() {
	heatCmd.Flags().IntVarP(&heatWeeks, "weeks", "w", 0, "Number of weeks to show (default from config)")
	heatCmd.Flags().BoolVar(&heatPlain, "plain", false, "Print a static grid instead of the interactive browser")
}

func runHeat(_ *cobra.Command, _ []string) error {
	now := time.Now()
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	weeks := heatWeeks
	if weeks <= 0 {
		weeks = cfg.Track.HeatWeeks
	}

	db, err := store.Open()
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer db.Close()

	rec, err := activity.Load(db, cfg.Track.RetentionMonths, now)
	if err != nil {
		// The browser saves the record back, so it must not run on the
		// empty fallback; show the static grid instead.
		ui.Warn(fmt.Sprintf("could not read activity history: %v (showing an empty grid)", err))
		printHeatGrid(rec, weeks, cfg.Track.DayTarget, now)
		return nil
	}

	if heatPlain || !ui.IsStdoutTTY() {
		printHeatGrid(rec, weeks, cfg.Track.DayTarget, now)
		return nil
	}

	edits, err := tui.RunHeat(rec, weeks, cfg.Track.DayTarget, cfg.Track.Granularity, now)
	if err != nil {
		return err
	}
	if len(edits) == 0 {
		return nil
	}

	applyHeatEdits(rec, edits)
	if err := activity.Save(db, rec); err != nil {
		return fmt.Errorf("saving activity: %w", err)
	}

	ui.Ok(fmt.Sprintf("%d day%s updated", len(edits), plural(len(edits))))
	return nil
}

// applyHeatEdits folds the browser's pending edits into the record. A
// removal deletes the day's entry; setting 0 keeps it as an explicit rest
// day, which counts differently for streaks.
func applyHeatEdits(rec activity.Record, edits []tui.HeatEdit) {
	for _, e := range edits {
		if e.Remove {
			delete(rec, e.Date)
			continue
		}
		rec[e.Date] = e.Amount
	}
}

var heatDayLabels = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// printHeatGrid renders a static heatmap, one row per weekday.
func printHeatGrid(rec activity.Record, weeks int, target float64, now time.Time) {
	grid := activity.BuildGrid(rec, weeks, now)

	ui.Header("Activity")
	for d := 0; d < 7; d++ {
		fmt.Print("  " + ui.Muted.Render(fmt.Sprintf("%-4s", heatDayLabels[d])))
		for w := range grid {
			c := grid[w][d]
			if c.Future {
				fmt.Print(" " + ui.FutureCell())
				continue
			}
			fmt.Print(" " + ui.HeatCell(c.Amount, target))
		}
		fmt.Println()
	}

	// Legend
	fmt.Print("\n  " + ui.Muted.Render("less "))
	for lvl := 0; lvl < ui.HeatLevels; lvl++ {
		fmt.Print(ui.HeatCellLevel(lvl) + " ")
	}
	fmt.Println(ui.Muted.Render("more"))
	fmt.Println()
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
