package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/tendhq/tend/internal/activity"
	"github.com/tendhq/tend/internal/config"
	"github.com/tendhq/tend/internal/hook"
	"github.com/tendhq/tend/internal/store"
	"github.com/tendhq/tend/internal/ui"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Streaks, totals, and consistency",
	RunE:  hook.Wrap("stats", runStats),
}

func runStats(_ *cobra.Command, _ []string) error {
	now := time.Now()
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	db, err := store.Open()
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer db.Close()

	rec := loadActivityOrWarn(db, cfg.Track.RetentionMonths, now)

	streaks := activity.Streaks(rec, now)
	summary := activity.Summary(rec)
	consistency30 := activity.Consistency(rec, 30, now)
	consistency7 := activity.Consistency(rec, 7, now)

	ui.Header("Stats")
	fmt.Println()
	ui.Kv(ui.IconStreak+" Current", fmt.Sprintf("%d day%s", streaks.Current, plural(streaks.Current)))
	ui.Kv(ui.IconStar+" Longest", fmt.Sprintf("%d day%s", streaks.Longest, plural(streaks.Longest)))
	fmt.Println()
	ui.Kv("Total", fmt.Sprintf("%gh over %d entr%s", summary.Total, summary.Entries, plurEntry(summary.Entries)))
	ui.Kv("Average", fmt.Sprintf("%.2fh per logged day", summary.Average))
	ui.Kv("Last 7d", fmt.Sprintf("%.0f%% of days active", consistency7*100))
	ui.Kv("Last 30d", fmt.Sprintf("%.0f%% of days active", consistency30*100))
	fmt.Println()

	if streaks.Current == 0 && summary.Entries > 0 {
		ui.Tip("`tend log 1` to start a new streak today.")
		fmt.Println()
	}
	return nil
}

func plurEntry(n int) string {
	if n == 1 {
		return "y"
	}
	return "ies"
}
