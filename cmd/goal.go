package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/tendhq/tend/internal/goal"
	"github.com/tendhq/tend/internal/hook"
	"github.com/tendhq/tend/internal/store"
	"github.com/tendhq/tend/internal/ui"
)

var (
	goalAddWeeks int
	goalAddStart string
	goalItemWeek int
)

var goalCmd = &cobra.Command{
	Use:   "goal",
	Short: "Plan and track multi-week goals",
	Long: `A goal spans a fixed number of weeks, each with its own checklist.
Without a subcommand, lists your goals and their progress.`,
	RunE: hook.Wrap("goal", runGoalList),
}

var goalAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Start a new goal",
	Args:  cobra.MinimumNArgs(1),
	RunE:  hook.Wrap("goal.add", runGoalAdd),
}

var goalShowCmd = &cobra.Command{
	Use:   "show <goal>",
	Short: "Show a goal's weeks and checklists",
	Args:  cobra.ExactArgs(1),
	RunE:  hook.Wrap("goal.show", runGoalShow),
}

var goalItemsCmd = &cobra.Command{
	Use:   "items <goal> [title]",
	Short: "List this week's checklist, or add an item to it",
	Args:  cobra.MinimumNArgs(1),
	RunE:  hook.Wrap("goal.items", runGoalItems),
}

var goalCheckCmd = &cobra.Command{
	Use:   "check <goal> <week> <item>",
	Short: "Mark a checklist item done",
	Args:  cobra.ExactArgs(3),
	RunE:  hook.Wrap("goal.check", runGoalCheck),
}

var goalUncheckCmd = &cobra.Command{
	Use:   "uncheck <goal> <week> <item>",
	Short: "Clear a checklist item",
	Args:  cobra.ExactArgs(3),
	RunE:  hook.Wrap("goal.uncheck", runGoalUncheck),
}

var goalNoteCmd = &cobra.Command{
	Use:   "note <goal> <text>",
	Short: "Set a goal's notes",
	Args:  cobra.MinimumNArgs(2),
	RunE:  hook.Wrap("goal.note", runGoalNote),
}

var goalArchiveCmd = &cobra.Command{
	Use:   "archive <goal>",
	Short: "Archive a finished goal, keeping its history",
	Args:  cobra.ExactArgs(1),
	RunE:  hook.Wrap("goal.archive", runGoalArchive),
}

var goalRmCmd = &cobra.Command{
	Use:   "rm <goal> [week item]",
	Short: "Remove a goal, or one checklist item",
	Args:  cobra.RangeArgs(1, 3),
	RunE:  hook.Wrap("goal.rm", runGoalRm),
}

func init() {
	goalAddCmd.Flags().IntVar(&goalAddWeeks, "weeks", 4, "Number of weeks the goal spans")
	goalAddCmd.Flags().StringVar(&goalAddStart, "start", "", "Start date (YYYY-MM-DD, default today; snaps to its Sunday)")
	goalItemsCmd.Flags().IntVar(&goalItemWeek, "week", 0, "Week to target (default the current week)")

	goalCmd.AddCommand(goalAddCmd)
	goalCmd.AddCommand(goalShowCmd)
	goalCmd.AddCommand(goalItemsCmd)
	goalCmd.AddCommand(goalCheckCmd)
	goalCmd.AddCommand(goalUncheckCmd)
	goalCmd.AddCommand(goalNoteCmd)
	goalCmd.AddCommand(goalArchiveCmd)
	goalCmd.AddCommand(goalRmCmd)
}

func goalStore() (*store.DB, *goal.Store, error) {
	db, err := store.Open()
	if err != nil {
		return nil, nil, fmt.Errorf("opening store: %w", err)
	}
	return db, goal.NewStore(db), nil
}

func parseIndex(s, what string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid %s number %q", what, s)
	}
	return n, nil
}

func runGoalList(_ *cobra.Command, _ []string) error {
	now := time.Now()
	db, gs, err := goalStore()
	if err != nil {
		return err
	}
	defer db.Close()

	goals, err := gs.List()
	if err != nil {
		return err
	}

	ui.Header(ui.IconGoal + " Goals")

	if len(goals) == 0 {
		fmt.Println(ui.Muted.Render("  No goals yet."))
		ui.Tip("`tend goal add \"learn Go\" --weeks 6` to start one.")
		fmt.Println()
		return nil
	}

	for i, g := range goals {
		p := g.Progress(now)
		title := g.Title
		if g.Archived {
			title = ui.Muted.Render(title + " (archived)")
		}

		status := fmt.Sprintf("%d/%d items", p.Done, p.Total)
		switch {
		case g.Archived:
			// no pace annotation for archived goals
		case p.CurrentWeek < 0:
			status += ui.Muted.Render(fmt.Sprintf(" · starts %s", g.Start))
		case p.CurrentWeek >= len(g.Weeks):
			status += ui.Muted.Render(" · finished")
		case p.OnPace:
			status += ui.Success.Render(" · on pace")
		default:
			status += ui.Warning.Render(" · behind pace")
		}

		fmt.Printf("  %s %s\n", ui.Muted.Render(fmt.Sprintf("%2d", i+1)), title)
		fmt.Printf("     %s\n", ui.Muted.Render(status))
	}
	fmt.Println()
	return nil
}

func runGoalAdd(_ *cobra.Command, args []string) error {
	now := time.Now()
	db, gs, err := goalStore()
	if err != nil {
		return err
	}
	defer db.Close()

	start := goalAddStart
	if start == "" {
		start = now.UTC().Format(goal.DateFormat)
	}

	g, err := gs.Add(strings.Join(args, " "), start, goalAddWeeks, now)
	if err != nil {
		return err
	}

	ui.Ok(fmt.Sprintf("goal started: %s", g.Title))
	ui.Inf(fmt.Sprintf("%d weeks from %s", len(g.Weeks), g.Start))
	ui.Tip(fmt.Sprintf("`tend goal items %d \"first step\"` to plan this week.", mustGoalNumber(gs, g.ID)))
	return nil
}

// mustGoalNumber finds the 1-based position of a goal by ID for display.
func mustGoalNumber(gs *goal.Store, id string) int {
	goals, err := gs.List()
	if err != nil {
		return 1
	}
	for i, g := range goals {
		if g.ID == id {
			return i + 1
		}
	}
	return 1
}

func runGoalShow(_ *cobra.Command, args []string) error {
	now := time.Now()
	n, err := parseIndex(args[0], "goal")
	if err != nil {
		return err
	}

	db, gs, err := goalStore()
	if err != nil {
		return err
	}
	defer db.Close()

	g, err := gs.Get(n)
	if err != nil {
		return err
	}
	p := g.Progress(now)

	ui.Header(ui.IconGoal + " " + g.Title)
	ui.Kv("Start", g.Start)
	ui.Kv("Progress", fmt.Sprintf("%d/%d items (%.0f%%)", p.Done, p.Total, p.Ratio*100))
	if p.CurrentWeek >= 0 && p.CurrentWeek < len(g.Weeks) {
		ui.Kv("Week", fmt.Sprintf("%d of %d (%d left)", p.CurrentWeek+1, len(g.Weeks), p.WeeksLeft))
	}
	fmt.Println()

	for w, week := range g.Weeks {
		label := fmt.Sprintf("Week %d", w+1)
		if w == p.CurrentWeek {
			label = ui.Accent.Render(label + " ← now")
		} else {
			label = ui.KeyStyle.Render(label)
		}
		fmt.Println("  " + label)

		if len(week.Items) == 0 {
			fmt.Println(ui.Muted.Render("     (no items)"))
			continue
		}
		for i, item := range week.Items {
			marker := ui.Muted.Render("·")
			title := item.Title
			if item.Done {
				marker = ui.Success.Render("✓")
				title = ui.Muted.Render(title)
			}
			fmt.Printf("     %s %s %s\n", ui.Muted.Render(fmt.Sprintf("%d", i+1)), marker, title)
		}
	}

	if g.Notes != "" {
		fmt.Println()
		fmt.Println("  " + ui.KeyStyle.Render("Notes"))
		fmt.Println(ui.RenderMarkdown(g.Notes))
	}
	fmt.Println()
	return nil
}

func runGoalItems(_ *cobra.Command, args []string) error {
	now := time.Now()
	n, err := parseIndex(args[0], "goal")
	if err != nil {
		return err
	}

	db, gs, err := goalStore()
	if err != nil {
		return err
	}
	defer db.Close()

	g, err := gs.Get(n)
	if err != nil {
		return err
	}

	// Target week: --week, or the week containing today, clamped into range.
	week := goalItemWeek
	if week == 0 {
		p := g.Progress(now)
		week = p.CurrentWeek + 1
		if week < 1 {
			week = 1
		}
		if week > len(g.Weeks) {
			week = len(g.Weeks)
		}
	}

	if len(args) > 1 {
		title := strings.Join(args[1:], " ")
		item, err := gs.AddItem(n, week, title)
		if err != nil {
			return err
		}
		ui.Ok(fmt.Sprintf("week %d: %s", week, item.Title))
		return nil
	}

	if week < 1 || week > len(g.Weeks) {
		return fmt.Errorf("goal %q has no week %d (spans %d)", g.Title, week, len(g.Weeks))
	}

	ui.Header(fmt.Sprintf("%s — week %d", g.Title, week))
	items := g.Weeks[week-1].Items
	if len(items) == 0 {
		fmt.Println(ui.Muted.Render("  Nothing planned for this week."))
		ui.Tip(fmt.Sprintf("`tend goal items %d \"an item\"` to add one.", n))
	} else {
		for i, item := range items {
			marker := ui.Muted.Render("·")
			title := item.Title
			if item.Done {
				marker = ui.Success.Render("✓")
				title = ui.Muted.Render(title)
			}
			fmt.Printf("  %s %s %s\n", ui.Muted.Render(fmt.Sprintf("%2d", i+1)), marker, title)
		}
	}
	fmt.Println()
	return nil
}

func runGoalCheck(_ *cobra.Command, args []string) error {
	return setGoalItem(args, true)
}

func runGoalUncheck(_ *cobra.Command, args []string) error {
	return setGoalItem(args, false)
}

func setGoalItem(args []string, done bool) error {
	n, err := parseIndex(args[0], "goal")
	if err != nil {
		return err
	}
	w, err := parseIndex(args[1], "week")
	if err != nil {
		return err
	}
	i, err := parseIndex(args[2], "item")
	if err != nil {
		return err
	}

	db, gs, err := goalStore()
	if err != nil {
		return err
	}
	defer db.Close()

	if done {
		err = gs.Check(n, w, i)
	} else {
		err = gs.Uncheck(n, w, i)
	}
	if err != nil {
		return err
	}

	if done {
		ui.Ok(fmt.Sprintf("checked: goal %d, week %d, item %d", n, w, i))
	} else {
		ui.Ok(fmt.Sprintf("unchecked: goal %d, week %d, item %d", n, w, i))
	}
	return nil
}

func runGoalNote(_ *cobra.Command, args []string) error {
	n, err := parseIndex(args[0], "goal")
	if err != nil {
		return err
	}

	db, gs, err := goalStore()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := gs.SetNotes(n, strings.Join(args[1:], " ")); err != nil {
		return err
	}
	ui.Ok(fmt.Sprintf("notes updated for goal %d", n))
	return nil
}

func runGoalArchive(_ *cobra.Command, args []string) error {
	n, err := parseIndex(args[0], "goal")
	if err != nil {
		return err
	}

	db, gs, err := goalStore()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := gs.Archive(n); err != nil {
		return err
	}
	ui.Ok(fmt.Sprintf("goal %d archived", n))
	return nil
}

func runGoalRm(_ *cobra.Command, args []string) error {
	n, err := parseIndex(args[0], "goal")
	if err != nil {
		return err
	}

	db, gs, err := goalStore()
	if err != nil {
		return err
	}
	defer db.Close()

	// Three arguments remove a single checklist item.
	if len(args) == 3 {
		w, err := parseIndex(args[1], "week")
		if err != nil {
			return err
		}
		i, err := parseIndex(args[2], "item")
		if err != nil {
			return err
		}
		if err := gs.RemoveItem(n, w, i); err != nil {
			return err
		}
		ui.Ok(fmt.Sprintf("removed: goal %d, week %d, item %d", n, w, i))
		return nil
	}
	if len(args) == 2 {
		return fmt.Errorf("rm takes a goal, or a goal+week+item triple")
	}

	g, err := gs.Remove(n)
	if err != nil {
		return err
	}
	ui.Ok(fmt.Sprintf("removed goal: %s", g.Title))
	return nil
}
