package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/tendhq/tend/internal/activity"
	"github.com/tendhq/tend/internal/config"
	"github.com/tendhq/tend/internal/hook"
	"github.com/tendhq/tend/internal/store"
	"github.com/tendhq/tend/internal/task"
	"github.com/tendhq/tend/internal/tui"
	"github.com/tendhq/tend/internal/ui"
)

var (
	taskDate     string
	taskAddHours float64
	taskDoneLog  bool
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage a day's task checklist",
	Long: `Plan a day as a checklist of tasks, each with an optional hour estimate.
Without a subcommand, lists the day's tasks.`,
	RunE: hook.Wrap("task", runTaskList),
}

var taskAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a task to the day's list",
	Args:  cobra.MinimumNArgs(1),
	RunE:  hook.Wrap("task.add", runTaskAdd),
}

var taskDoneCmd = &cobra.Command{
	Use:   "done <n>",
	Short: "Mark the n-th task complete",
	Args:  cobra.ExactArgs(1),
	RunE:  hook.Wrap("task.done", runTaskDone),
}

var taskUndoCmd = &cobra.Command{
	Use:   "undo <n>",
	Short: "Reopen a completed task",
	Args:  cobra.ExactArgs(1),
	RunE:  hook.Wrap("task.undo", runTaskUndo),
}

var taskRmCmd = &cobra.Command{
	Use:   "rm <n>",
	Short: "Remove a task from the list",
	Args:  cobra.ExactArgs(1),
	RunE:  hook.Wrap("task.rm", runTaskRm),
}

var taskHoursCmd = &cobra.Command{
	Use:   "hours <n> <hours>",
	Short: "Set a task's hour estimate",
	Args:  cobra.ExactArgs(2),
	RunE:  hook.Wrap("task.hours", runTaskHours),
}

var taskUICmd = &cobra.Command{
	Use:   "ui",
	Short: "Browse the day's tasks interactively",
	Args:  cobra.NoArgs,
	RunE:  hook.Wrap("task.ui", runTaskUI),
}

func init() {
	taskCmd.PersistentFlags().StringVar(&taskDate, "date", "", "Day to operate on (YYYY-MM-DD, default today)")
	taskAddCmd.Flags().Float64Var(&taskAddHours, "hours", 0, "Hour estimate for the task")
	taskDoneCmd.Flags().BoolVar(&taskDoneLog, "log", false, "Also log the task's hours as activity")

	taskCmd.AddCommand(taskAddCmd)
	taskCmd.AddCommand(taskDoneCmd)
	taskCmd.AddCommand(taskUndoCmd)
	taskCmd.AddCommand(taskRmCmd)
	taskCmd.AddCommand(taskHoursCmd)
	taskCmd.AddCommand(taskUICmd)
}

// resolveTaskDate parses the --date flag for task commands, defaulting to
// today. Unlike activity logging, future dates are allowed: planning
// tomorrow's checklist is the point.
func resolveTaskDate(flag string, now time.Time) (string, error) {
	if flag == "" {
		return now.UTC().Format(task.DateFormat), nil
	}
	d, err := time.Parse(task.DateFormat, flag)
	if err != nil {
		return "", fmt.Errorf("invalid date %q (want YYYY-MM-DD)", flag)
	}
	return d.Format(task.DateFormat), nil
}

// taskContext opens the store and resolves the target date. The caller owns
// closing the returned DB.
func taskContext(now time.Time) (*store.DB, *task.Store, *config.Config, string, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, "", fmt.Errorf("loading config: %w", err)
	}
	date, err := resolveTaskDate(taskDate, now)
	if err != nil {
		return nil, nil, nil, "", err
	}
	db, err := store.Open()
	if err != nil {
		return nil, nil, nil, "", fmt.Errorf("opening store: %w", err)
	}
	return db, task.NewStore(db, cfg.Track.RetentionMonths), cfg, date, nil
}

func parseTaskNumber(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid task number %q (use the number shown by `tend task`)", s)
	}
	return n, nil
}

func runTaskList(_ *cobra.Command, _ []string) error {
	now := time.Now()
	db, ts, _, date, err := taskContext(now)
	if err != nil {
		return err
	}
	defer db.Close()

	tasks, err := ts.Day(date, now)
	if err != nil {
		return err
	}

	ui.Header(ui.IconTask + " Tasks " + date)

	if len(tasks) == 0 {
		fmt.Println(ui.Muted.Render("  Nothing planned."))
		ui.Tip("`tend task add \"first thing\"` to plan the day.")
		fmt.Println()
		return nil
	}

	var doneCount int
	var doneHours float64
	for i, t := range tasks {
		marker := ui.Muted.Render("·")
		title := t.Title
		if t.Done {
			marker = ui.Success.Render("✓")
			title = ui.Muted.Render(title)
			doneCount++
			doneHours += t.Hours
		}
		line := fmt.Sprintf("  %s %s %s", ui.Muted.Render(fmt.Sprintf("%2d", i+1)), marker, title)
		if t.Hours > 0 {
			line += ui.Muted.Render(fmt.Sprintf(" (%gh)", t.Hours))
		}
		fmt.Println(line)
	}

	fmt.Println()
	summary := fmt.Sprintf("  %d/%d done", doneCount, len(tasks))
	if doneHours > 0 {
		summary += fmt.Sprintf(" · %gh completed", doneHours)
	}
	fmt.Println(ui.Muted.Render(summary))
	fmt.Println()
	return nil
}

func runTaskAdd(_ *cobra.Command, args []string) error {
	now := time.Now()
	db, ts, cfg, date, err := taskContext(now)
	if err != nil {
		return err
	}
	defer db.Close()

	if taskAddHours != 0 {
		if err := activity.ValidateAmount(taskAddHours, cfg.Track.Granularity); err != nil {
			return err
		}
	}

	title := strings.Join(args, " ")
	t, err := ts.Add(date, title, taskAddHours, now)
	if err != nil {
		return err
	}

	msg := fmt.Sprintf("added: %s", t.Title)
	if t.Hours > 0 {
		msg += fmt.Sprintf(" (%gh)", t.Hours)
	}
	ui.Ok(msg)
	return nil
}

func runTaskDone(_ *cobra.Command, args []string) error {
	now := time.Now()
	n, err := parseTaskNumber(args[0])
	if err != nil {
		return err
	}

	db, ts, cfg, date, err := taskContext(now)
	if err != nil {
		return err
	}
	defer db.Close()

	t, err := ts.Complete(date, n, now)
	if err != nil {
		return err
	}
	ui.Ok(fmt.Sprintf("done: %s", t.Title))

	if taskDoneLog && t.Hours > 0 {
		// Activity keeps its no-future rule even though task dates don't.
		if _, err := resolveDate(taskDate, now); err != nil {
			return err
		}
		// Logging saves the record back, so a failed read aborts rather than
		// overwriting history with the empty fallback.
		rec, err := activity.Load(db, cfg.Track.RetentionMonths, now)
		if err != nil {
			return fmt.Errorf("loading activity: %w", err)
		}
		rec[date] += t.Hours
		if err := activity.Save(db, rec); err != nil {
			return fmt.Errorf("saving activity: %w", err)
		}
		ui.Inf(fmt.Sprintf("logged %gh → %gh total for %s", t.Hours, rec[date], date))
	}
	return nil
}

func runTaskUndo(_ *cobra.Command, args []string) error {
	now := time.Now()
	n, err := parseTaskNumber(args[0])
	if err != nil {
		return err
	}

	db, ts, _, date, err := taskContext(now)
	if err != nil {
		return err
	}
	defer db.Close()

	t, err := ts.Reopen(date, n, now)
	if err != nil {
		return err
	}
	ui.Ok(fmt.Sprintf("reopened: %s", t.Title))
	return nil
}

func runTaskRm(_ *cobra.Command, args []string) error {
	now := time.Now()
	n, err := parseTaskNumber(args[0])
	if err != nil {
		return err
	}

	db, ts, _, date, err := taskContext(now)
	if err != nil {
		return err
	}
	defer db.Close()

	t, err := ts.Remove(date, n, now)
	if err != nil {
		return err
	}
	ui.Ok(fmt.Sprintf("removed: %s", t.Title))
	return nil
}

func runTaskHours(_ *cobra.Command, args []string) error {
	now := time.Now()
	n, err := parseTaskNumber(args[0])
	if err != nil {
		return err
	}
	hours, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("invalid hours %q (want a number like 1.5)", args[1])
	}

	db, ts, cfg, date, err := taskContext(now)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := activity.ValidateAmount(hours, cfg.Track.Granularity); err != nil {
		return err
	}

	t, err := ts.SetHours(date, n, hours, now)
	if err != nil {
		return err
	}
	ui.Ok(fmt.Sprintf("%s: %gh", t.Title, t.Hours))
	return nil
}

func runTaskUI(_ *cobra.Command, _ []string) error {
	now := time.Now()
	db, ts, _, date, err := taskContext(now)
	if err != nil {
		return err
	}
	defer db.Close()

	tasks, err := ts.Day(date, now)
	if err != nil {
		return err
	}

	actions, err := tui.RunTasks(date, tasks)
	if err != nil {
		return err
	}

	applied := 0
	tempIDs := map[string]string{}
	for _, a := range actions {
		if real, ok := tempIDs[a.ID]; ok {
			a.ID = real
		}
		if a.Type == "add" {
			t, err := ts.Add(date, a.Title, 0, now)
			if err != nil {
				ui.Warn(err.Error())
				continue
			}
			tempIDs[a.ID] = t.ID
			applied++
			continue
		}
		if err := applyTaskAction(ts, date, a, now); err != nil {
			ui.Warn(err.Error())
			continue
		}
		applied++
	}

	if applied > 0 {
		ui.Ok(fmt.Sprintf("%d change%s applied", applied, plural(applied)))
	}
	return nil
}

// applyTaskAction maps a TUI action onto the store. Positions are resolved
// by ID against the current list because earlier actions shift indices.
func applyTaskAction(ts *task.Store, date string, a tui.TaskAction, now time.Time) error {
	switch a.Type {
	case "toggle", "delete":
		tasks, err := ts.Day(date, now)
		if err != nil {
			return err
		}
		for i, t := range tasks {
			if t.ID != a.ID {
				continue
			}
			switch {
			case a.Type == "delete":
				_, err = ts.Remove(date, i+1, now)
			case t.Done:
				_, err = ts.Reopen(date, i+1, now)
			default:
				_, err = ts.Complete(date, i+1, now)
			}
			return err
		}
		return fmt.Errorf("task %q no longer exists", a.ID)

	default:
		return nil
	}
}
