package hook

import (
	"path/filepath"
	"sort"
	"sync"
)

// DefaultRegistry is the process-wide registry the CLI registers user hooks
// into at startup.
var DefaultRegistry = &Registry{}

// Register adds a hook to the default registry.
func Register(h Hook) {
	DefaultRegistry.Register(h)
}

// Registry holds registered hooks and resolves which apply to a command.
// Safe for concurrent use; notify hooks run on their own goroutines.
type Registry struct {
	mu    sync.RWMutex
	hooks []Hook
}

// Register adds a hook.
func (r *Registry) Register(h Hook) {
	r.mu.Lock()
	r.hooks = append(r.hooks, h)
	r.mu.Unlock()
}

// Unregister drops every hook registered from the given source.
func (r *Registry) Unregister(source string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.hooks[:0]
	for _, h := range r.hooks {
		if h.Source != source {
			kept = append(kept, h)
		}
	}
	r.hooks = kept
}

// Resolve returns the hooks that fire for command at stage, in stable
// name order so multi-hook runs are deterministic.
func (r *Registry) Resolve(command string, stage Stage) []Hook {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Hook
	for _, h := range r.hooks {
		if h.Stage == stage && h.matches(command) {
			out = append(out, h)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// HasHooks reports whether any registered hook fires for command at any
// stage. The pipeline uses it as its fast no-op check.
func (r *Registry) HasHooks(command string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, h := range r.hooks {
		if h.matches(command) {
			return true
		}
	}
	return false
}

// All returns a copy of every registered hook.
func (r *Registry) All() []Hook {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Hook, len(r.hooks))
	copy(out, r.hooks)
	return out
}

// Count returns how many hooks are registered.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.hooks)
}

// matches applies the hook's command pattern. Patterns use dotted command
// paths with shell-style wildcards: "task.add" is exact, "task.*" covers the
// task subcommands, "*" covers everything.
func (h Hook) matches(command string) bool {
	ok, _ := filepath.Match(h.Pattern, command)
	return ok
}
