package goal

import (
	"testing"
	"time"
)

type fakeKV struct {
	data map[string]string
}

func newFakeKV() *fakeKV { return &fakeKV{data: make(map[string]string)} }

func (f *fakeKV) Get(key string) (string, bool, error) {
	v, ok := f.data[key]
	return v, ok, nil
}

func (f *fakeKV) Set(key, value string) error {
	f.data[key] = value
	return nil
}

func mustDate(s string) time.Time {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestAddNormalizesStartToSunday(t *testing.T) {
	s := NewStore(newFakeKV())
	now := mustDate("2026-08-29")

	// 2026-08-26 is a Wednesday; its week starts Sunday 2026-08-23.
	g, err := s.Add("ship v1", "2026-08-26", 4, now)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if g.Start != "2026-08-23" {
		t.Errorf("start = %s, want 2026-08-23", g.Start)
	}
	if len(g.Weeks) != 4 {
		t.Errorf("weeks = %d, want 4", len(g.Weeks))
	}
}

func TestAddRejectsBadInput(t *testing.T) {
	s := NewStore(newFakeKV())
	now := mustDate("2026-08-29")

	if _, err := s.Add("", "2026-08-23", 4, now); err == nil {
		t.Error("empty title accepted")
	}
	if _, err := s.Add("x", "soon", 4, now); err == nil {
		t.Error("malformed start date accepted")
	}
	if _, err := s.Add("x", "2026-08-23", 0, now); err == nil {
		t.Error("zero weeks accepted")
	}
}

func TestItemsCheckUncheck(t *testing.T) {
	s := NewStore(newFakeKV())
	now := mustDate("2026-08-29")
	s.Add("ship v1", "2026-08-23", 2, now)

	if _, err := s.AddItem(1, 1, "design doc"); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if _, err := s.AddItem(1, 2, "implement"); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if _, err := s.AddItem(1, 3, "out of range"); err == nil {
		t.Error("item added past the goal's last week")
	}

	if err := s.Check(1, 1, 1); err != nil {
		t.Fatalf("Check: %v", err)
	}
	g, _ := s.Get(1)
	if !g.Weeks[0].Items[0].Done {
		t.Error("item not marked done")
	}

	if err := s.Uncheck(1, 1, 1); err != nil {
		t.Fatalf("Uncheck: %v", err)
	}
	g, _ = s.Get(1)
	if g.Weeks[0].Items[0].Done {
		t.Error("item still done after Uncheck")
	}

	if err := s.Check(1, 1, 9); err == nil {
		t.Error("out-of-range item reference accepted")
	}
}

func TestProgressCounts(t *testing.T) {
	s := NewStore(newFakeKV())
	now := mustDate("2026-08-29")
	s.Add("ship v1", "2026-08-23", 4, now)
	s.AddItem(1, 1, "a")
	s.AddItem(1, 1, "b")
	s.AddItem(1, 2, "c")
	s.Check(1, 1, 1)

	g, _ := s.Get(1)
	p := g.Progress(now)

	if p.Done != 1 || p.Total != 3 {
		t.Errorf("done/total = %d/%d, want 1/3", p.Done, p.Total)
	}
	if p.Ratio != 1.0/3.0 {
		t.Errorf("ratio = %g", p.Ratio)
	}
	if p.CurrentWeek != 0 {
		t.Errorf("current week = %d, want 0 (goal started this week)", p.CurrentWeek)
	}
	if p.WeeksLeft != 4 {
		t.Errorf("weeks left = %d, want 4", p.WeeksLeft)
	}
	if len(p.PerWeek) != 4 || p.PerWeek[0].Done != 1 || p.PerWeek[0].Total != 2 {
		t.Errorf("per-week = %+v", p.PerWeek)
	}
}

func TestProgressZeroItemsGuard(t *testing.T) {
	g := Goal{Start: "2026-08-23", Weeks: make([]Week, 2)}
	p := g.Progress(mustDate("2026-08-29"))
	if p.Ratio != 0 {
		t.Errorf("ratio = %g, want 0 for empty goal", p.Ratio)
	}
}

func TestProgressWeekBoundaries(t *testing.T) {
	g := Goal{Start: "2026-08-23", Weeks: make([]Week, 2)}

	before := g.Progress(mustDate("2026-08-20"))
	if before.CurrentWeek != -1 {
		t.Errorf("before start: current week = %d, want -1", before.CurrentWeek)
	}

	second := g.Progress(mustDate("2026-09-02"))
	if second.CurrentWeek != 1 {
		t.Errorf("second week: current week = %d, want 1", second.CurrentWeek)
	}

	after := g.Progress(mustDate("2026-10-15"))
	if after.CurrentWeek != 2 {
		t.Errorf("after end: current week = %d, want len(Weeks)=2", after.CurrentWeek)
	}
	if after.WeeksLeft != 0 {
		t.Errorf("after end: weeks left = %d, want 0", after.WeeksLeft)
	}
}

func TestArchiveAndActive(t *testing.T) {
	s := NewStore(newFakeKV())
	now := mustDate("2026-08-29")
	s.Add("keep", "2026-08-23", 2, now)
	s.Add("shelve", "2026-08-23", 2, now)

	if err := s.Archive(2); err != nil {
		t.Fatalf("Archive: %v", err)
	}

	active, _ := s.Active()
	if len(active) != 1 || active[0].Title != "keep" {
		t.Errorf("active = %+v", active)
	}

	all, _ := s.List()
	if len(all) != 2 {
		t.Errorf("List should include archived goals, got %d", len(all))
	}
}

func TestRemoveGoalAndItem(t *testing.T) {
	s := NewStore(newFakeKV())
	now := mustDate("2026-08-29")
	s.Add("g1", "2026-08-23", 1, now)
	s.AddItem(1, 1, "a")
	s.AddItem(1, 1, "b")

	if err := s.RemoveItem(1, 1, 1); err != nil {
		t.Fatalf("RemoveItem: %v", err)
	}
	g, _ := s.Get(1)
	if len(g.Weeks[0].Items) != 1 || g.Weeks[0].Items[0].Title != "b" {
		t.Errorf("items = %+v", g.Weeks[0].Items)
	}

	removed, err := s.Remove(1)
	if err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if removed.Title != "g1" {
		t.Errorf("removed %q", removed.Title)
	}
	if goals, _ := s.List(); len(goals) != 0 {
		t.Errorf("goals remaining = %+v", goals)
	}
}

func TestSetNotes(t *testing.T) {
	s := NewStore(newFakeKV())
	now := mustDate("2026-08-29")
	s.Add("g1", "2026-08-23", 1, now)

	if err := s.SetNotes(1, "## scope\n- cut nothing"); err != nil {
		t.Fatalf("SetNotes: %v", err)
	}
	g, _ := s.Get(1)
	if g.Notes == "" {
		t.Error("notes not saved")
	}
}

func TestCorruptDocumentResets(t *testing.T) {
	kv := newFakeKV()
	kv.data[StorageKey] = `{"version":99}`
	s := NewStore(kv)

	goals, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(goals) != 0 {
		t.Errorf("unknown version should reset, got %+v", goals)
	}
}
