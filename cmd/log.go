package cmd

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"github.com/tendhq/tend/internal/activity"
	"github.com/tendhq/tend/internal/config"
	"github.com/tendhq/tend/internal/hook"
	"github.com/tendhq/tend/internal/store"
	"github.com/tendhq/tend/internal/ui"
)

var logDate string

var logCmd = &cobra.Command{
	Use:   "log [hours]",
	Short: "Record hours of activity for a day",
	Long: `Record how many hours you spent today (or on --date).
Logging a day replaces its previous value; log 0 to mark a deliberate rest day.
Without arguments, shows the most recent days.`,
	Args: cobra.MaximumNArgs(1),
	RunE: hook.Wrap("log", runLog),
}

var logRmCmd = &cobra.Command{
	Use:   "rm",
	Short: "Remove a day's entry entirely",
	Args:  cobra.NoArgs,
	RunE:  hook.Wrap("log.rm", runLogRm),
}

func init() {
	logCmd.Flags().StringVar(&logDate, "date", "", "Day to log (YYYY-MM-DD, default today)")
	logRmCmd.Flags().StringVar(&logDate, "date", "", "Day to remove (YYYY-MM-DD, default today)")
	logCmd.AddCommand(logRmCmd)
}

// resolveDate returns the target date for --date style flags, defaulting to
// today in UTC.
func resolveDate(flag string, now time.Time) (string, error) {
	if flag == "" {
		return now.UTC().Format(activity.DateFormat), nil
	}
	d, err := time.Parse(activity.DateFormat, flag)
	if err != nil {
		return "", fmt.Errorf("invalid date %q (want YYYY-MM-DD)", flag)
	}
	if d.After(now.UTC()) {
		return "", fmt.Errorf("cannot log the future (%s)", flag)
	}
	return d.Format(activity.DateFormat), nil
}

// loadActivityOrWarn reads the activity record for display-only paths. A
// failed read degrades to the empty record with a warning instead of
// blocking the command. Paths that save the record back must not use this:
// proceeding there would overwrite real history with the empty fallback.
func loadActivityOrWarn(kv activity.KV, retentionMonths int, now time.Time) activity.Record {
	rec, err := activity.Load(kv, retentionMonths, now)
	if err != nil {
		ui.Warn(fmt.Sprintf("could not read activity history: %v (showing an empty record)", err))
	}
	return rec
}

func runLog(_ *cobra.Command, args []string) error {
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

	if len(args) == 0 {
		return showRecentDays(loadActivityOrWarn(db, cfg.Track.RetentionMonths, now), now)
	}

	// Logging saves the whole record back, so a failed read aborts here
	// rather than overwriting history with the empty fallback.
	rec, err := activity.Load(db, cfg.Track.RetentionMonths, now)
	if err != nil {
		return fmt.Errorf("loading activity: %w", err)
	}

	amount, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("invalid hours %q (want a number like 1.5)", args[0])
	}
	if err := activity.ValidateAmount(amount, cfg.Track.Granularity); err != nil {
		return err
	}

	date, err := resolveDate(logDate, now)
	if err != nil {
		return err
	}

	rec[date] = amount
	if err := activity.Save(db, rec); err != nil {
		return fmt.Errorf("saving activity: %w", err)
	}

	ui.Ok(fmt.Sprintf("%s: %gh logged", date, amount))

	streaks := activity.Streaks(rec, now)
	if streaks.Current > 1 {
		fmt.Printf("  %s %s\n", ui.IconStreak, ui.Muted.Render(fmt.Sprintf("%d-day streak", streaks.Current)))
	}
	return nil
}

func runLogRm(_ *cobra.Command, _ []string) error {
	now := time.Now()
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	date, err := resolveDate(logDate, now)
	if err != nil {
		return err
	}

	db, err := store.Open()
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer db.Close()

	rec, err := activity.Load(db, cfg.Track.RetentionMonths, now)
	if err != nil {
		return fmt.Errorf("loading activity: %w", err)
	}

	if _, ok := rec[date]; !ok {
		return fmt.Errorf("no entry for %s", date)
	}
	delete(rec, date)

	if err := activity.Save(db, rec); err != nil {
		return fmt.Errorf("saving activity: %w", err)
	}

	ui.Ok(fmt.Sprintf("%s: entry removed", date))
	return nil
}

// showRecentDays prints the last two weeks of entries, newest first.
func showRecentDays(rec activity.Record, now time.Time) error {
	ui.Header("Recent days")

	today := now.UTC()
	shown := 0
	for i := 0; i < 14; i++ {
		day := today.AddDate(0, 0, -i)
		date := day.Format(activity.DateFormat)
		amount, ok := rec[date]
		if !ok {
			continue
		}
		shown++
		label := date
		if i == 0 {
			label += " (today)"
		}
		ui.Kv(label, fmt.Sprintf("%gh", amount))
	}

	if shown == 0 {
		fmt.Println(ui.Muted.Render("  Nothing logged in the last two weeks."))
		ui.Tip("`tend log 1.5` to record today.")
	} else {
		// Oldest retained entries, for context.
		dates := make([]string, 0, len(rec))
		for d := range rec {
			dates = append(dates, d)
		}
		sort.Strings(dates)
		fmt.Println()
		fmt.Println(ui.Muted.Render(fmt.Sprintf("  %d days on record since %s", len(rec), dates[0])))
	}
	fmt.Println()
	return nil
}
