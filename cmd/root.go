package cmd

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/tendhq/tend/internal/activity"
	"github.com/tendhq/tend/internal/config"
	"github.com/tendhq/tend/internal/goal"
	"github.com/tendhq/tend/internal/hook"
	"github.com/tendhq/tend/internal/store"
	"github.com/tendhq/tend/internal/task"
	"github.com/tendhq/tend/internal/tips"
	"github.com/tendhq/tend/internal/ui"
	"github.com/tendhq/tend/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "tend",
	Short: "Grow your days, one logged hour at a time",
	Long:  `tend — track daily activity, plan your tasks, and keep multi-week goals on pace.`,
	RunE:  hook.Wrap("tend", runDashboard),
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	// Register user-local hooks at startup.
	// Errors are non-fatal — the CLI should work without hooks.
	if err := hook.RegisterUserHooks(); err != nil {
		log.Printf("warning: loading user hooks: %v", err)
	}

	if err := rootCmd.Execute(); err != nil {
		ui.Err(err.Error())
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(heatCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(taskCmd)
	rootCmd.AddCommand(goalCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(aboutCmd)
	rootCmd.AddCommand(tipsCmd)
}

// runDashboard shows the at-a-glance status when you just type `tend`.
func runDashboard(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	now := time.Now()
	today := now.UTC().Format(activity.DateFormat)

	// Greeting
	fmt.Println(ui.Greet(cfg.User.Name))
	fmt.Println()

	db, err := store.Open()
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer db.Close()

	// Activity summary
	rec := loadActivityOrWarn(db, cfg.Track.RetentionMonths, now)
	streaks := activity.Streaks(rec, now)

	hoursToday := rec[today]
	hoursLine := fmt.Sprintf("%gh logged", hoursToday)
	if cfg.Track.DayTarget > 0 {
		hoursLine += ui.Muted.Render(fmt.Sprintf(" / %g target", cfg.Track.DayTarget))
	}
	ui.Kv(ui.IconHeat+" Today", hoursLine)

	streakLine := fmt.Sprintf("%d day", streaks.Current)
	if streaks.Current != 1 {
		streakLine += "s"
	}
	if streaks.Longest > streaks.Current {
		streakLine += ui.Muted.Render(fmt.Sprintf(" (longest %d)", streaks.Longest))
	}
	ui.Kv(ui.IconStreak+" Streak", streakLine)

	// Task summary
	ts := task.NewStore(db, cfg.Track.RetentionMonths)
	tasks, err := ts.Day(today, now)
	if err != nil {
		return fmt.Errorf("loading tasks: %w", err)
	}
	open, done := 0, 0
	for _, t := range tasks {
		if t.Done {
			done++
		} else {
			open++
		}
	}
	taskLine := fmt.Sprintf("%d open", open)
	if done > 0 {
		taskLine += fmt.Sprintf(" / %d done", done)
	}
	ui.Kv(ui.IconTask+" Tasks", taskLine)

	// Active goals
	gs := goal.NewStore(db)
	goals, err := gs.Active()
	if err != nil {
		return fmt.Errorf("loading goals: %w", err)
	}
	for _, g := range goals {
		p := g.Progress(now)
		line := fmt.Sprintf("%d/%d items", p.Done, p.Total)
		if !p.OnPace {
			line += ui.Warning.Render(" (behind pace)")
		}
		ui.Kv(ui.IconGoal+" "+g.Title, line)
	}

	ui.Kv("  📅 Date", now.Format("Monday, January 2"))
	ui.Kv("  🌿 Tend", version.Short())

	// Tip
	if cfg.UI.TipsEnabled() {
		switch {
		case hoursToday == 0:
			ui.Tip("`tend log 1` to get today on the board.")
		case open > 0:
			ui.Tip("`tend task` to see what's left today.")
		default:
			ui.Tip(tips.Daily(now))
		}
	}

	fmt.Println()
	return nil
}
