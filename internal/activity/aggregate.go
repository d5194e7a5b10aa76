package activity

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// StreakInfo holds current and longest streak values.
type StreakInfo struct {
	Current int
	Longest int
}

// SummaryInfo holds linear aggregates over all recorded entries.
type SummaryInfo struct {
	Total   float64
	Average float64
	Entries int
}

// Cell is one day of the heatmap grid. Derived fresh on every render and
// never persisted.
type Cell struct {
	Date   string
	Amount float64
	Logged bool // an entry exists for this date (a logged 0 still counts)
	Today  bool
	Future bool // strictly after today; excluded from interaction
}

// utcDay truncates t to its UTC calendar day at midnight.
func utcDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// Prune returns a new record holding only entries dated within the trailing
// retention window ending today. Malformed date keys and negative or
// non-finite amounts are dropped. The input is never mutated, and applying
// Prune twice yields the same result as once.
func Prune(rec Record, retentionMonths int, now time.Time) Record {
	cutoff := utcDay(now).AddDate(0, -retentionMonths, 0)
	out := make(Record, len(rec))
	for date, amount := range rec {
		d, err := time.Parse(DateFormat, date)
		if err != nil {
			continue
		}
		if amount < 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
			continue
		}
		if d.Before(cutoff) {
			continue
		}
		out[date] = amount
	}
	return out
}

// Streaks computes the current and longest runs of consecutive calendar days
// with a positive logged amount.
//
// The current streak is only alive when the most recent positive day is today
// or yesterday — logging yesterday but not yet today keeps it going, a gap of
// two or more days zeroes it. The longest streak is independent of recency.
func Streaks(rec Record, now time.Time) StreakInfo {
	var dates []string
	for date, amount := range rec {
		if amount > 0 {
			dates = append(dates, date)
		}
	}
	if len(dates) == 0 {
		return StreakInfo{}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))

	utcNow := now.UTC()
	today := utcNow.Format(DateFormat)
	yesterday := utcNow.AddDate(0, 0, -1).Format(DateFormat)

	// Current streak: starting from the most recent positive day, which must
	// be today or yesterday for the streak to be active.
	var current int
	if dates[0] == today || dates[0] == yesterday {
		current = 1
		for i := 1; i < len(dates); i++ {
			prev, _ := time.Parse(DateFormat, dates[i-1])
			curr, _ := time.Parse(DateFormat, dates[i])
			if prev.AddDate(0, 0, -1).Format(DateFormat) == curr.Format(DateFormat) {
				current++
			} else {
				break
			}
		}
	}

	// Longest streak: scan all dates in ascending order.
	asc := make([]string, len(dates))
	for i, d := range dates {
		asc[len(dates)-1-i] = d
	}

	longest := 1
	run := 1
	for i := 1; i < len(asc); i++ {
		prev, _ := time.Parse(DateFormat, asc[i-1])
		curr, _ := time.Parse(DateFormat, asc[i])
		if curr.AddDate(0, 0, -1).Format(DateFormat) == prev.Format(DateFormat) {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 1
		}
	}

	if current > longest {
		longest = current
	}

	return StreakInfo{Current: current, Longest: longest}
}

// Summary totals and averages all recorded entries. Explicit zeros count
// toward both the total and the denominator. An empty record yields an
// average of 0, never NaN.
func Summary(rec Record) SummaryInfo {
	info := SummaryInfo{Entries: len(rec)}
	for _, amount := range rec {
		info.Total += amount
	}
	if info.Entries > 0 {
		info.Average = info.Total / float64(info.Entries)
	}
	return info
}

// Consistency returns the fraction of the trailing windowDays calendar days
// ending today (inclusive) that have a positive logged amount.
func Consistency(rec Record, windowDays int, now time.Time) float64 {
	if windowDays <= 0 {
		return 0
	}
	day := utcDay(now)
	matches := 0
	for i := 0; i < windowDays; i++ {
		date := day.AddDate(0, 0, -i).Format(DateFormat)
		if rec[date] > 0 {
			matches++
		}
	}
	return float64(matches) / float64(windowDays)
}

// BuildGrid produces the heatmap grid for the trailing numWeeks weeks.
//
// The grid anchors on the most recent Sunday-starting week and walks back
// numWeeks−1 further weeks. It is week-major: grid[w][d], where week 0 is the
// oldest week and day 0 is Sunday, so every grid is exactly numWeeks×7 cells
// and every date in the range appears exactly once. Cells dated strictly
// after today are flagged Future.
func BuildGrid(rec Record, numWeeks int, now time.Time) [][]Cell {
	if numWeeks <= 0 {
		return nil
	}
	today := utcDay(now)
	anchor := today.AddDate(0, 0, -int(today.Weekday())) // most recent Sunday
	start := anchor.AddDate(0, 0, -7*(numWeeks-1))

	grid := make([][]Cell, numWeeks)
	for w := 0; w < numWeeks; w++ {
		week := make([]Cell, 7)
		for d := 0; d < 7; d++ {
			day := start.AddDate(0, 0, 7*w+d)
			date := day.Format(DateFormat)
			amount, logged := rec[date]
			week[d] = Cell{
				Date:   date,
				Amount: amount,
				Logged: logged,
				Today:  day.Equal(today),
				Future: day.After(today),
			}
		}
		grid[w] = week
	}
	return grid
}

// ValidateAmount checks a user-supplied hours value at the input boundary:
// it must be finite, non-negative, and a multiple of the configured
// granularity. Invalid input never reaches the aggregator.
func ValidateAmount(amount, granularity float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return fmt.Errorf("amount must be a number")
	}
	if amount < 0 {
		return fmt.Errorf("amount must not be negative")
	}
	if granularity > 0 {
		if r := math.Abs(math.Remainder(amount, granularity)); r > 1e-9 {
			return fmt.Errorf("amount must be a multiple of %g hours", granularity)
		}
	}
	return nil
}
