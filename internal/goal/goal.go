// Package goal manages multi-week goals: each goal spans a fixed number of
// weeks anchored on Sundays, and each week carries its own task checklist.
package goal

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// StorageKey is the fixed key goals are stored under.
const StorageKey = "goals"

// SchemaVersion is the current persisted document version.
const SchemaVersion = 1

// DateFormat is the ISO calendar-day layout used for start dates.
const DateFormat = "2006-01-02"

// Item is one checklist entry in a goal week.
type Item struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Done  bool   `json:"done"`
}

// Week is one week's checklist.
type Week struct {
	Items []Item `json:"items"`
}

// Goal is a multi-week plan. Start is normalized to its week's Sunday so the
// goal weeks line up with the heatmap columns.
type Goal struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Start     string    `json:"start"`
	Weeks     []Week    `json:"weeks"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	Archived  bool      `json:"archived,omitempty"`
}

// Progress is the derived completion view of a goal at a point in time.
type Progress struct {
	Done  int
	Total int
	// Ratio is Done/Total, 0 when the goal has no items yet.
	Ratio float64
	// CurrentWeek is the 0-based week index containing today: −1 before the
	// goal starts, len(Weeks) once it has run its course.
	CurrentWeek int
	WeeksLeft   int
	// OnPace reports whether the completion ratio is at least the elapsed
	// fraction of the goal's weeks.
	OnPace  bool
	PerWeek []WeekProgress
}

// WeekProgress is the done/total count for one week.
type WeekProgress struct {
	Done  int
	Total int
}

// StartSunday returns the Sunday beginning the week that contains d.
func StartSunday(d time.Time) time.Time {
	u := d.UTC()
	day := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
	return day.AddDate(0, 0, -int(day.Weekday()))
}

// Progress derives completion counts, the current week index, and the
// on-pace comparison for the goal.
func (g Goal) Progress(now time.Time) Progress {
	p := Progress{PerWeek: make([]WeekProgress, len(g.Weeks))}
	for i, w := range g.Weeks {
		for _, item := range w.Items {
			p.PerWeek[i].Total++
			p.Total++
			if item.Done {
				p.PerWeek[i].Done++
				p.Done++
			}
		}
	}
	if p.Total > 0 {
		p.Ratio = float64(p.Done) / float64(p.Total)
	}

	start, err := time.Parse(DateFormat, g.Start)
	if err != nil {
		// An unparseable start should not happen (Add normalizes it), but a
		// hand-edited document must not crash progress math.
		p.CurrentWeek = -1
		p.WeeksLeft = len(g.Weeks)
		return p
	}

	today := StartSunday(now)
	switch {
	case today.Before(start):
		p.CurrentWeek = -1
	default:
		weeks := int(today.Sub(start).Hours() / (24 * 7))
		if weeks > len(g.Weeks) {
			weeks = len(g.Weeks)
		}
		p.CurrentWeek = weeks
	}

	p.WeeksLeft = len(g.Weeks) - p.CurrentWeek
	if p.WeeksLeft < 0 {
		p.WeeksLeft = 0
	}
	if p.WeeksLeft > len(g.Weeks) {
		p.WeeksLeft = len(g.Weeks)
	}

	// Elapsed fraction: week 0 in progress counts as one elapsed week.
	if len(g.Weeks) > 0 {
		elapsed := p.CurrentWeek + 1
		if elapsed < 0 {
			elapsed = 0
		}
		if elapsed > len(g.Weeks) {
			elapsed = len(g.Weeks)
		}
		p.OnPace = p.Ratio >= float64(elapsed-1)/float64(len(g.Weeks))
	} else {
		p.OnPace = true
	}

	return p
}

// KV is the storage collaborator the Store requires.
type KV interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// Store reads and writes the goals document. Goals are never date-pruned;
// they end by completion or archive.
type Store struct {
	kv KV
}

// NewStore creates a Store over the given storage.
func NewStore(kv KV) *Store {
	return &Store{kv: kv}
}

type document struct {
	Version int    `json:"version"`
	Goals   []Goal `json:"goals"`
}

func (s *Store) load() []Goal {
	raw, ok, err := s.kv.Get(StorageKey)
	if err != nil || !ok {
		return nil
	}
	var doc document
	if err := json.Unmarshal([]byte(raw), &doc); err != nil || doc.Version != SchemaVersion {
		return nil
	}
	return doc.Goals
}

func (s *Store) save(goals []Goal) error {
	if goals == nil {
		goals = []Goal{}
	}
	data, err := json.Marshal(document{Version: SchemaVersion, Goals: goals})
	if err != nil {
		return fmt.Errorf("serializing goals: %w", err)
	}
	return s.kv.Set(StorageKey, string(data))
}

// List returns all goals. Archived goals are included; callers filter.
func (s *Store) List() ([]Goal, error) {
	return s.load(), nil
}

// Active returns all non-archived goals.
func (s *Store) Active() ([]Goal, error) {
	var out []Goal
	for _, g := range s.load() {
		if !g.Archived {
			out = append(out, g)
		}
	}
	return out, nil
}

// Add creates a goal spanning numWeeks weeks. start is normalized to its
// week's Sunday.
func (s *Store) Add(title, start string, numWeeks int, now time.Time) (Goal, error) {
	if title == "" {
		return Goal{}, fmt.Errorf("goal title must not be empty")
	}
	if numWeeks < 1 {
		return Goal{}, fmt.Errorf("a goal needs at least one week")
	}
	startDay, err := time.Parse(DateFormat, start)
	if err != nil {
		return Goal{}, fmt.Errorf("invalid start date %q (want YYYY-MM-DD)", start)
	}

	g := Goal{
		ID:        uuid.NewString(),
		Title:     title,
		Start:     StartSunday(startDay).Format(DateFormat),
		Weeks:     make([]Week, numWeeks),
		CreatedAt: now.UTC(),
	}

	goals := append(s.load(), g)
	if err := s.save(goals); err != nil {
		return Goal{}, err
	}
	return g, nil
}

// AddItem appends a checklist item to a goal week. goalN and weekN are
// 1-based.
func (s *Store) AddItem(goalN, weekN int, title string) (Item, error) {
	if title == "" {
		return Item{}, fmt.Errorf("item title must not be empty")
	}
	var added Item
	err := s.mutate(goalN, func(g *Goal) error {
		if weekN < 1 || weekN > len(g.Weeks) {
			return fmt.Errorf("goal %q has no week %d (spans %d)", g.Title, weekN, len(g.Weeks))
		}
		added = Item{ID: uuid.NewString(), Title: title}
		g.Weeks[weekN-1].Items = append(g.Weeks[weekN-1].Items, added)
		return nil
	})
	return added, err
}

// Check marks a checklist item done. All references are 1-based.
func (s *Store) Check(goalN, weekN, itemN int) error {
	return s.setItemDone(goalN, weekN, itemN, true)
}

// Uncheck clears a checklist item.
func (s *Store) Uncheck(goalN, weekN, itemN int) error {
	return s.setItemDone(goalN, weekN, itemN, false)
}

// RemoveItem deletes a checklist item.
func (s *Store) RemoveItem(goalN, weekN, itemN int) error {
	return s.mutate(goalN, func(g *Goal) error {
		items, err := g.weekItems(weekN)
		if err != nil {
			return err
		}
		if itemN < 1 || itemN > len(items) {
			return fmt.Errorf("week %d has no item %d", weekN, itemN)
		}
		g.Weeks[weekN-1].Items = append(items[:itemN-1], items[itemN:]...)
		return nil
	})
}

// SetNotes replaces a goal's markdown notes.
func (s *Store) SetNotes(goalN int, notes string) error {
	return s.mutate(goalN, func(g *Goal) error {
		g.Notes = notes
		return nil
	})
}

// Archive hides a goal from the active list without deleting its history.
func (s *Store) Archive(goalN int) error {
	return s.mutate(goalN, func(g *Goal) error {
		g.Archived = true
		return nil
	})
}

// Remove deletes a goal entirely.
func (s *Store) Remove(goalN int) (Goal, error) {
	goals := s.load()
	if goalN < 1 || goalN > len(goals) {
		return Goal{}, fmt.Errorf("no goal #%d (%d listed)", goalN, len(goals))
	}
	removed := goals[goalN-1]
	goals = append(goals[:goalN-1], goals[goalN:]...)
	if err := s.save(goals); err != nil {
		return Goal{}, err
	}
	return removed, nil
}

// Get returns the goal at a 1-based position.
func (s *Store) Get(goalN int) (Goal, error) {
	goals := s.load()
	if goalN < 1 || goalN > len(goals) {
		return Goal{}, fmt.Errorf("no goal #%d (%d listed)", goalN, len(goals))
	}
	return goals[goalN-1], nil
}

func (s *Store) setItemDone(goalN, weekN, itemN int, done bool) error {
	return s.mutate(goalN, func(g *Goal) error {
		items, err := g.weekItems(weekN)
		if err != nil {
			return err
		}
		if itemN < 1 || itemN > len(items) {
			return fmt.Errorf("week %d has no item %d", weekN, itemN)
		}
		items[itemN-1].Done = done
		return nil
	})
}

func (s *Store) mutate(goalN int, fn func(*Goal) error) error {
	goals := s.load()
	if goalN < 1 || goalN > len(goals) {
		return fmt.Errorf("no goal #%d (%d listed)", goalN, len(goals))
	}
	if err := fn(&goals[goalN-1]); err != nil {
		return err
	}
	return s.save(goals)
}

func (g *Goal) weekItems(weekN int) ([]Item, error) {
	if weekN < 1 || weekN > len(g.Weeks) {
		return nil, fmt.Errorf("goal %q has no week %d (spans %d)", g.Title, weekN, len(g.Weeks))
	}
	return g.Weeks[weekN-1].Items, nil
}
