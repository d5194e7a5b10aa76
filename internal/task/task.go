// Package task manages tend's daily task lists: per-day checklists where
// each task carries an hour duration. Like the activity record, the whole
// document lives under one storage key and is rewritten on every edit.
package task

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

// StorageKey is the fixed key day tasks are stored under.
const StorageKey = "day_tasks"

// SchemaVersion is the current persisted document version.
const SchemaVersion = 1

// DateFormat is the ISO calendar-day layout used for day keys.
const DateFormat = "2006-01-02"

// Task is a single entry in a day's checklist.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Hours       float64    `json:"hours"`
	Done        bool       `json:"done"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// KV is the storage collaborator the Store requires.
type KV interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// Store reads and writes the day-task document.
type Store struct {
	kv              KV
	retentionMonths int
}

// NewStore creates a Store over the given storage. Days older than the
// retention window are pruned on every load, mirroring the activity record.
func NewStore(kv KV, retentionMonths int) *Store {
	return &Store{kv: kv, retentionMonths: retentionMonths}
}

type document struct {
	Version int                        `json:"version"`
	Days    map[string]json.RawMessage `json:"days"`
}

// load decodes and prunes the stored document. Undecodable state resets to
// empty — a corrupt document never blocks the command.
func (s *Store) load(now time.Time) map[string][]Task {
	days := make(map[string][]Task)

	raw, ok, err := s.kv.Get(StorageKey)
	if err != nil || !ok {
		return days
	}

	var doc document
	if err := json.Unmarshal([]byte(raw), &doc); err != nil || doc.Version != SchemaVersion {
		return days
	}

	u := now.UTC()
	cutoff := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC).
		AddDate(0, -s.retentionMonths, 0)

	for date, rawTasks := range doc.Days {
		d, err := time.Parse(DateFormat, date)
		if err != nil || d.Before(cutoff) {
			continue
		}
		var tasks []Task
		if err := json.Unmarshal(rawTasks, &tasks); err != nil {
			continue
		}
		if len(tasks) > 0 {
			days[date] = tasks
		}
	}
	return days
}

// save overwrites the stored document with the full mapping.
func (s *Store) save(days map[string][]Task) error {
	data, err := json.Marshal(struct {
		Version int               `json:"version"`
		Days    map[string][]Task `json:"days"`
	}{Version: SchemaVersion, Days: days})
	if err != nil {
		return fmt.Errorf("serializing tasks: %w", err)
	}
	return s.kv.Set(StorageKey, string(data))
}

// Day returns the task list for a date. The returned slice is the caller's
// to keep; edits only take effect through Store methods.
func (s *Store) Day(date string, now time.Time) ([]Task, error) {
	if err := validDate(date); err != nil {
		return nil, err
	}
	return s.load(now)[date], nil
}

// Days returns all retained dates that have tasks, sorted ascending.
func (s *Store) Days(now time.Time) ([]string, error) {
	days := s.load(now)
	dates := make([]string, 0, len(days))
	for d := range days {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates, nil
}

// Add appends a task to a day's list and returns it.
func (s *Store) Add(date, title string, hours float64, now time.Time) (Task, error) {
	if err := validDate(date); err != nil {
		return Task{}, err
	}
	if title == "" {
		return Task{}, fmt.Errorf("task title must not be empty")
	}

	t := Task{
		ID:        uuid.NewString(),
		Title:     title,
		Hours:     hours,
		CreatedAt: now.UTC(),
	}

	days := s.load(now)
	days[date] = append(days[date], t)
	if err := s.save(days); err != nil {
		return Task{}, err
	}
	return t, nil
}

// Complete marks the n-th task of a day done. n is 1-based.
func (s *Store) Complete(date string, n int, now time.Time) (Task, error) {
	return s.update(date, n, now, func(t *Task) {
		t.Done = true
		at := now.UTC()
		t.CompletedAt = &at
	})
}

// Reopen clears the done state of the n-th task of a day.
func (s *Store) Reopen(date string, n int, now time.Time) (Task, error) {
	return s.update(date, n, now, func(t *Task) {
		t.Done = false
		t.CompletedAt = nil
	})
}

// SetHours changes the duration of the n-th task of a day.
func (s *Store) SetHours(date string, n int, hours float64, now time.Time) (Task, error) {
	return s.update(date, n, now, func(t *Task) {
		t.Hours = hours
	})
}

// Remove deletes the n-th task of a day and returns it.
func (s *Store) Remove(date string, n int, now time.Time) (Task, error) {
	if err := validDate(date); err != nil {
		return Task{}, err
	}
	days := s.load(now)
	list := days[date]
	if n < 1 || n > len(list) {
		return Task{}, fmt.Errorf("no task #%d on %s (%d listed)", n, date, len(list))
	}
	removed := list[n-1]
	list = append(list[:n-1], list[n:]...)
	if len(list) == 0 {
		delete(days, date)
	} else {
		days[date] = list
	}
	if err := s.save(days); err != nil {
		return Task{}, err
	}
	return removed, nil
}

// DoneHours sums the durations of a day's completed tasks.
func (s *Store) DoneHours(date string, now time.Time) (float64, error) {
	tasks, err := s.Day(date, now)
	if err != nil {
		return 0, err
	}
	var total float64
	for _, t := range tasks {
		if t.Done {
			total += t.Hours
		}
	}
	return total, nil
}

func (s *Store) update(date string, n int, now time.Time, fn func(*Task)) (Task, error) {
	if err := validDate(date); err != nil {
		return Task{}, err
	}
	days := s.load(now)
	list := days[date]
	if n < 1 || n > len(list) {
		return Task{}, fmt.Errorf("no task #%d on %s (%d listed)", n, date, len(list))
	}
	fn(&list[n-1])
	days[date] = list
	if err := s.save(days); err != nil {
		return Task{}, err
	}
	return list[n-1], nil
}

func validDate(date string) error {
	if _, err := time.Parse(DateFormat, date); err != nil {
		return fmt.Errorf("invalid date %q (want YYYY-MM-DD)", date)
	}
	return nil
}
