// Package report assembles the weekly markdown review from the activity
// record, the week's task lists, and goal progress.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/tendhq/tend/internal/activity"
	"github.com/tendhq/tend/internal/goal"
	"github.com/tendhq/tend/internal/task"
)

// Input carries everything a weekly report needs. WeekStart must be a Sunday
// (use goal.StartSunday); Tasks maps ISO dates to that day's list.
type Input struct {
	WeekStart time.Time
	Activity  activity.Record
	Tasks     map[string][]task.Task
	Goals     []goal.Goal
}

// Build renders the report as markdown. Presentation (glamour vs raw) is the
// caller's concern.
func Build(in Input, now time.Time) string {
	var b strings.Builder

	weekEnd := in.WeekStart.AddDate(0, 0, 6)
	fmt.Fprintf(&b, "# Week of %s\n\n", in.WeekStart.Format("January 2, 2006"))

	// Activity: per-day hours for the week plus the week total.
	b.WriteString("## Hours\n\n")
	var weekTotal float64
	daysLogged := 0
	for i := 0; i < 7; i++ {
		day := in.WeekStart.AddDate(0, 0, i)
		date := day.Format(activity.DateFormat)
		amount, logged := in.Activity[date]
		if !logged {
			fmt.Fprintf(&b, "- %s: —\n", day.Format("Mon"))
			continue
		}
		weekTotal += amount
		if amount > 0 {
			daysLogged++
		}
		fmt.Fprintf(&b, "- %s: %gh\n", day.Format("Mon"), amount)
	}
	fmt.Fprintf(&b, "\n**%gh total**, %d active day%s.\n\n", weekTotal, daysLogged, plural(daysLogged))

	streaks := activity.Streaks(in.Activity, now)
	if streaks.Current > 0 {
		fmt.Fprintf(&b, "Current streak: **%d day%s** (longest %d).\n\n",
			streaks.Current, plural(streaks.Current), streaks.Longest)
	}

	// Tasks: completed/total and hours done across the week.
	b.WriteString("## Tasks\n\n")
	var done, total int
	var doneHours float64
	for i := 0; i < 7; i++ {
		date := in.WeekStart.AddDate(0, 0, i).Format(task.DateFormat)
		for _, t := range in.Tasks[date] {
			total++
			if t.Done {
				done++
				doneHours += t.Hours
			}
		}
	}
	if total == 0 {
		b.WriteString("No tasks this week.\n\n")
	} else {
		fmt.Fprintf(&b, "%d of %d done (%gh completed).\n\n", done, total, doneHours)
	}

	// Goals: progress line per active goal.
	b.WriteString("## Goals\n\n")
	activeGoals := 0
	for n, g := range in.Goals {
		if g.Archived {
			continue
		}
		activeGoals++
		p := g.Progress(weekEnd)
		pace := "on pace"
		if !p.OnPace {
			pace = "behind"
		}
		switch {
		case p.CurrentWeek < 0:
			fmt.Fprintf(&b, "%d. **%s** — starts %s\n", n+1, g.Title, g.Start)
		case p.CurrentWeek >= len(g.Weeks):
			fmt.Fprintf(&b, "%d. **%s** — finished, %d/%d items\n", n+1, g.Title, p.Done, p.Total)
		default:
			fmt.Fprintf(&b, "%d. **%s** — week %d of %d, %d/%d items, %s\n",
				n+1, g.Title, p.CurrentWeek+1, len(g.Weeks), p.Done, p.Total, pace)
		}
	}
	if activeGoals == 0 {
		b.WriteString("No active goals.\n")
	}

	return b.String()
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
