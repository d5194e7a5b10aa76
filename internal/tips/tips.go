// Package tips provides actionable tips for tend CLI discovery.
package tips

import "time"

// all is the full tip pool covering all major tend features.
var all = []string{
	"`tend log 1.5` to record an hour and a half of activity for today.",
	"`tend log 2 --date 2026-01-15` to backfill a day you forgot to log.",
	"`tend heat` to see your last twelve weeks as a heatmap grid.",
	"`tend heat --plain` to print the heatmap without the interactive browser.",
	"`tend stats` to check your current streak, longest streak, and totals.",
	"`tend task add \"write weekly report\" --hours 1` to plan today's work.",
	"`tend task done 2` to check off the second task on today's list.",
	"`tend task done 2 --log` to check off a task and log its hours in one step.",
	"`tend task ui` to manage today's tasks interactively.",
	"`tend goal add \"learn Go\" --weeks 6` to start a multi-week goal.",
	"`tend goal items 1 \"finish chapter 3\"` to add a checklist item to this week.",
	"`tend goal check 1 2` to tick the second item of goal one's current week.",
	"`tend report` to generate a markdown summary of your week.",
	"`tend report --weeks-ago 1` to report on a past week.",
	"`tend config set track.day_target 4` to set a daily hour target for the heatmap.",
	"`tend config set track.granularity 0.5` if you log in half-hour blocks.",
	"`tend backup ~/tend.age` to export an encrypted snapshot of all your data.",
	"`tend restore ~/tend.age` to bring a snapshot back on a new machine.",
	"`tend hook create task.add pre` to run a script before every task add.",
	"`tend hook list` to see all active hooks for the command pipeline.",
	"`tend doctor` to check your setup when something seems off.",
	"`tend config set user.name \"Your Name\"` to personalize the dashboard greeting.",
}

// All returns all tips in the pool.
func All() []string {
	return all
}

// Daily returns a deterministic tip for the given day.
// The same tip is returned all day; it changes each day.
func Daily(t time.Time) string {
	dayOfYear := t.YearDay()
	return all[dayOfYear%len(all)]
}

// Random returns a tip based on the current time's minute,
// useful when you want variety within a day.
func Random(t time.Time) string {
	return all[t.Minute()%len(all)]
}
