package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/tendhq/tend/internal/config"
	"github.com/tendhq/tend/internal/goal"
	"github.com/tendhq/tend/internal/hook"
	"github.com/tendhq/tend/internal/report"
	"github.com/tendhq/tend/internal/store"
	"github.com/tendhq/tend/internal/task"
	"github.com/tendhq/tend/internal/ui"
)

var (
	reportWeeksAgo int
	reportRaw      bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate a weekly markdown review",
	Long: `Summarize a week: hours per day, tasks completed, and goal progress.
Rendered for the terminal on a TTY; pipe it (or pass --raw) for plain markdown.`,
	RunE: hook.Wrap("report", runReport),
}

func init() {
	reportCmd.Flags().IntVar(&reportWeeksAgo, "weeks-ago", 0, "Report on N weeks back (0 = this week)")
	reportCmd.Flags().BoolVar(&reportRaw, "raw", false, "Print plain markdown without terminal styling")
}

func runReport(_ *cobra.Command, _ []string) error {
	if reportWeeksAgo < 0 {
		return fmt.Errorf("--weeks-ago must not be negative")
	}

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

	weekStart := goal.StartSunday(now).AddDate(0, 0, -7*reportWeeksAgo)

	// Collect the week's task lists.
	ts := task.NewStore(db, cfg.Track.RetentionMonths)
	weekTasks := make(map[string][]task.Task)
	for i := 0; i < 7; i++ {
		date := weekStart.AddDate(0, 0, i).Format(task.DateFormat)
		tasks, err := ts.Day(date, now)
		if err != nil {
			return fmt.Errorf("loading tasks for %s: %w", date, err)
		}
		if len(tasks) > 0 {
			weekTasks[date] = tasks
		}
	}

	gs := goal.NewStore(db)
	goals, err := gs.List()
	if err != nil {
		return fmt.Errorf("loading goals: %w", err)
	}

	md := report.Build(report.Input{
		WeekStart: weekStart,
		Activity:  rec,
		Tasks:     weekTasks,
		Goals:     goals,
	}, now)

	// The writer styles the report on a TTY and passes plain markdown
	// through when piped or when --raw is set.
	out := ui.NewMarkdownWriter(os.Stdout, reportRaw)
	fmt.Fprint(out, md)
	return out.Flush()
}
