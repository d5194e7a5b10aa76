package hook

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
)

func passthrough(ctx *Context) (*Context, error) { return ctx, nil }

func TestNewContext(t *testing.T) {
	ctx := NewContext("task.add", []string{"write weekly report"}, map[string]string{"hours": "1.5"})

	if ctx.Command != "task.add" {
		t.Errorf("Command = %q, want %q", ctx.Command, "task.add")
	}
	if len(ctx.Args) != 1 || ctx.Args[0] != "write weekly report" {
		t.Errorf("Args = %v, want [write weekly report]", ctx.Args)
	}
	if ctx.Flags["hours"] != "1.5" {
		t.Errorf("Flags[hours] = %q, want %q", ctx.Flags["hours"], "1.5")
	}
	if ctx.Timestamp == "" {
		t.Error("Timestamp should not be empty")
	}
}

func TestNewContext_NeverNil(t *testing.T) {
	// Hook scripts index into args/flags without nil checks.
	ctx := NewContext("test", nil, nil)
	if ctx.Args == nil || ctx.Flags == nil {
		t.Errorf("NewContext with nils: Args=%v Flags=%v, want empty non-nil", ctx.Args, ctx.Flags)
	}
}

func TestContextJSONRoundTrip(t *testing.T) {
	original := &Context{
		Command:   "task.add",
		Args:      []string{"review goals", "plan week"},
		Flags:     map[string]string{"hours": "0.5", "date": "2026-01-15"},
		Result:    map[string]any{"id": float64(42)},
		Timestamp: "2026-01-01T00:00:00Z",
	}

	data, err := original.JSON()
	if err != nil {
		t.Fatalf("JSON() error: %v", err)
	}

	decoded, err := ParseContext(data)
	if err != nil {
		t.Fatalf("ParseContext() error: %v", err)
	}

	switch {
	case decoded.Command != original.Command:
		t.Errorf("Command = %q, want %q", decoded.Command, original.Command)
	case len(decoded.Args) != 2:
		t.Errorf("Args len = %d, want 2", len(decoded.Args))
	case decoded.Flags["hours"] != "0.5":
		t.Errorf("Flags[hours] = %q, want %q", decoded.Flags["hours"], "0.5")
	case decoded.Timestamp != original.Timestamp:
		t.Errorf("Timestamp = %q, want %q", decoded.Timestamp, original.Timestamp)
	}

	// Result survives as generic JSON.
	res, ok := decoded.Result.(map[string]any)
	if !ok || res["id"] != float64(42) {
		t.Errorf("Result = %#v, want map with id=42", decoded.Result)
	}
}

func TestParseContext_Invalid(t *testing.T) {
	for _, bad := range []string{"not json", "", "[1,2,3]"} {
		if _, err := ParseContext([]byte(bad)); err == nil {
			t.Errorf("ParseContext(%q): expected error", bad)
		}
	}
}

func TestHookMatches(t *testing.T) {
	tests := []struct {
		pattern string
		command string
		want    bool
	}{
		{"task.add", "task.add", true},
		{"task.add", "task.done", false},
		{"task.*", "task.add", true},
		{"task.*", "task.done", true},
		{"task.*", "goal.add", false},
		{"*", "anything", true},
		{"*", "task.add", true},
		{"*.*", "task.add", true},
		{"*.*", "single", false},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+"_"+tt.command, func(t *testing.T) {
			h := Hook{Pattern: tt.pattern}
			if got := h.matches(tt.command); got != tt.want {
				t.Errorf("Hook{Pattern: %q}.matches(%q) = %v, want %v", tt.pattern, tt.command, got, tt.want)
			}
		})
	}
}

func TestRegistryResolve(t *testing.T) {
	reg := &Registry{}
	reg.Register(Hook{Pattern: "task.*", Stage: StagePre, Mode: ModeTransform, Name: "auto-tag", Source: "user", Handler: passthrough})
	reg.Register(Hook{Pattern: "task.add", Stage: StagePre, Mode: ModeTransform, Name: "enrich", Source: "user", Handler: passthrough})
	reg.Register(Hook{Pattern: "task.add", Stage: StageNotify, Mode: ModeNotify, Name: "desktop-notify", Source: "user", Handler: passthrough})

	tests := []struct {
		command string
		stage   Stage
		want    []string // resolved hook names, in order
	}{
		{"task.add", StagePre, []string{"auto-tag", "enrich"}},
		{"task.add", StageNotify, []string{"desktop-notify"}},
		{"task.done", StagePre, []string{"auto-tag"}},
		{"task.done", StageNotify, nil},
		{"goal.add", StagePre, nil},
	}

	for _, tt := range tests {
		t.Run(tt.command+"_"+string(tt.stage), func(t *testing.T) {
			hooks := reg.Resolve(tt.command, tt.stage)
			if len(hooks) != len(tt.want) {
				t.Fatalf("Resolve(%q, %s) returned %d hooks, want %d", tt.command, tt.stage, len(hooks), len(tt.want))
			}
			for i, name := range tt.want {
				if hooks[i].Name != name {
					t.Errorf("hook[%d].Name = %q, want %q", i, hooks[i].Name, name)
				}
			}
		})
	}
}

func TestRegistryUnregister(t *testing.T) {
	reg := &Registry{}
	reg.Register(Hook{Pattern: "task.*", Stage: StageNotify, Mode: ModeNotify, Name: "a", Source: "user"})
	reg.Register(Hook{Pattern: "task.*", Stage: StageNotify, Mode: ModeNotify, Name: "b", Source: "other"})
	reg.Register(Hook{Pattern: "task.*", Stage: StageNotify, Mode: ModeNotify, Name: "c", Source: "user"})

	reg.Unregister("user")

	if got := reg.Count(); got != 1 {
		t.Fatalf("Count() after Unregister(user) = %d, want 1", got)
	}
	if remaining := reg.All(); remaining[0].Name != "b" {
		t.Errorf("remaining hook = %q, want %q", remaining[0].Name, "b")
	}
}

func TestRegistryHasHooks(t *testing.T) {
	reg := &Registry{}
	if reg.HasHooks("task.add") {
		t.Error("empty registry claims hooks for task.add")
	}

	reg.Register(Hook{Pattern: "task.*", Stage: StagePre, Mode: ModeTransform, Name: "test"})

	if !reg.HasHooks("task.add") {
		t.Error("HasHooks(task.add) = false with a task.* hook registered")
	}
	if reg.HasHooks("goal.add") {
		t.Error("HasHooks(goal.add) = true, task.* should not match")
	}
}

// appendTag returns a transform hook that tags the first arg, so chaining
// order is visible in the result.
func appendTag(name, tag string) Hook {
	return Hook{
		Pattern: "test",
		Stage:   StagePre,
		Mode:    ModeTransform,
		Name:    name,
		Handler: func(ctx *Context) (*Context, error) {
			if len(ctx.Args) > 0 {
				ctx.Args[0] += " [" + tag + "]"
			}
			return ctx, nil
		},
	}
}

func TestTransformStageChaining(t *testing.T) {
	reg := &Registry{}
	// Name order decides execution order.
	reg.Register(appendTag("b-upper", "upper"))
	reg.Register(appendTag("a-tagger", "tagged"))

	result, err := runTransformStage(reg, "test", StagePre, NewContext("test", []string{"hello"}, nil))
	if err != nil {
		t.Fatalf("runTransformStage error: %v", err)
	}
	if want := "hello [tagged] [upper]"; result.Args[0] != want {
		t.Errorf("chained result = %q, want %q", result.Args[0], want)
	}
}

func TestTransformStageError(t *testing.T) {
	reg := &Registry{}
	reg.Register(Hook{
		Pattern: "test",
		Stage:   StagePre,
		Mode:    ModeTransform,
		Name:    "failing",
		Handler: func(ctx *Context) (*Context, error) { return nil, errors.New("hook broke") },
	})

	_, err := runTransformStage(reg, "test", StagePre, NewContext("test", nil, nil))
	if err == nil {
		t.Fatal("expected error from failing hook")
	}
	if got := err.Error(); got != `hook "failing" (pre): hook broke` {
		t.Errorf("error = %q, want hook name and stage in message", got)
	}
}

func TestTransformStage_NilResultKeepsContext(t *testing.T) {
	reg := &Registry{}
	reg.Register(Hook{
		Pattern: "test",
		Stage:   StagePre,
		Mode:    ModeTransform,
		Name:    "silent",
		Handler: func(ctx *Context) (*Context, error) { return nil, nil },
	})

	in := NewContext("test", []string{"keep me"}, nil)
	out, err := runTransformStage(reg, "test", StagePre, in)
	if err != nil {
		t.Fatalf("runTransformStage error: %v", err)
	}
	if out != in {
		t.Error("nil hook result should leave the context unchanged")
	}
}

func TestNotifyStageRunsAll(t *testing.T) {
	reg := &Registry{}
	var count atomic.Int32
	for i := 0; i < 5; i++ {
		reg.Register(Hook{
			Pattern: "test",
			Stage:   StageNotify,
			Mode:    ModeNotify,
			Name:    fmt.Sprintf("n%d", i),
			Handler: func(ctx *Context) (*Context, error) {
				count.Add(1)
				return ctx, nil
			},
		})
	}

	runNotifyStage(reg, "test", NewContext("test", nil, nil))

	if got := count.Load(); got != 5 {
		t.Errorf("notify hooks run = %d, want 5", got)
	}
}

func TestNotifyStageSwallowsErrors(t *testing.T) {
	reg := &Registry{}
	reg.Register(Hook{
		Pattern: "test",
		Stage:   StageNotify,
		Mode:    ModeNotify,
		Name:    "failing-notify",
		Handler: func(ctx *Context) (*Context, error) { return nil, errors.New("notify error") },
	})

	// Notify failures are logged, never surfaced.
	runNotifyStage(reg, "test", NewContext("test", nil, nil))
}

func TestContextOmitsEmptyResult(t *testing.T) {
	data, err := NewContext("heat", nil, nil).JSON()
	if err != nil {
		t.Fatalf("JSON() error: %v", err)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if _, ok := raw["result"]; ok {
		t.Error("result key present for context without a result")
	}
}

func TestAllStagesOrder(t *testing.T) {
	want := []Stage{StagePre, StagePost, StageNotify}
	if len(AllStages) != len(want) {
		t.Fatalf("AllStages = %v, want %v", AllStages, want)
	}
	for i := range want {
		if AllStages[i] != want[i] {
			t.Errorf("AllStages[%d] = %q, want %q", i, AllStages[i], want[i])
		}
	}
}
