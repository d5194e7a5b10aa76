package hook

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tendhq/tend/internal/config"
)

// UserHook is a hook script found in the hooks directory.
type UserHook struct {
	Path    string
	Pattern string
	Stage   Stage
	Name    string
}

// HooksDir returns the directory scanned for user hook scripts.
func HooksDir() string {
	return filepath.Join(config.GetPaths().ConfigDir, "hooks")
}

// Discover returns every valid hook script in the hooks directory. Scripts
// are named <command-pattern>.<stage>.<ext>, e.g. task.add.pre.sh,
// task.*.notify.py, *.post.sh. Non-executable files and files that don't
// follow the convention are ignored rather than reported.
func Discover() ([]UserHook, error) {
	dir := HooksDir()
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading hooks dir: %w", err)
	}

	var hooks []UserHook
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		h, err := parseHookFilename(e.Name())
		if err != nil {
			continue
		}
		h.Path = filepath.Join(dir, e.Name())
		if !isExecutable(h.Path) {
			continue
		}
		hooks = append(hooks, h)
	}
	return hooks, nil
}

func isExecutable(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode()&0o111 != 0
}

// parseHookFilename splits <command-pattern>.<stage>.<ext>. The pattern may
// itself contain dots ("task.add"), so the stage is taken from the right:
// the last dot-separated component before the extension.
func parseHookFilename(name string) (UserHook, error) {
	base := strings.TrimSuffix(name, filepath.Ext(name))

	cut := strings.LastIndex(base, ".")
	if cut <= 0 {
		return UserHook{}, fmt.Errorf("hook filename %q: want <pattern>.<stage>.<ext>", name)
	}

	stage, err := parseStage(base[cut+1:])
	if err != nil {
		return UserHook{}, fmt.Errorf("hook filename %q: %w", name, err)
	}

	return UserHook{
		Pattern: base[:cut],
		Stage:   stage,
		Name:    name,
	}, nil
}

// ParseStageStr converts a stage name to a Stage constant. Exported for CLI use.
func ParseStageStr(s string) (Stage, error) {
	return parseStage(s)
}

func parseStage(s string) (Stage, error) {
	switch Stage(s) {
	case StagePre, StagePost, StageNotify:
		return Stage(s), nil
	default:
		return "", fmt.Errorf("unknown stage %q (want pre, post, or notify)", s)
	}
}

// RegisterUserHooks discovers the user's hook scripts and registers each one
// with an exec-backed handler.
func RegisterUserHooks() error {
	hooks, err := Discover()
	if err != nil {
		return err
	}

	for _, h := range hooks {
		mode, timeout := stageDefaults(h.Stage)
		Register(Hook{
			Pattern: h.Pattern,
			Stage:   h.Stage,
			Mode:    mode,
			Name:    h.Name,
			Source:  "user",
			Handler: ExecHandler(h.Path, mode, timeout),
			Timeout: timeout,
		})
	}
	return nil
}

// stageDefaults maps a stage to its execution mode and timeout.
func stageDefaults(s Stage) (Mode, time.Duration) {
	if s == StageNotify {
		return ModeNotify, DefaultNotifyTimeout
	}
	return ModeTransform, DefaultTransformTimeout
}

// CreateHookScript writes a starter script for the pattern+stage and returns
// its path. Refuses to overwrite and refuses patterns that would let the
// filename escape the hooks directory.
func CreateHookScript(pattern string, stage Stage) (string, error) {
	if strings.ContainsAny(pattern, "/\\") {
		return "", fmt.Errorf("pattern %q must not contain path separators", pattern)
	}
	if strings.Contains(pattern, "..") {
		return "", fmt.Errorf("pattern %q must not contain path traversal", pattern)
	}

	dir := HooksDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating hooks dir: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("%s.%s.sh", pattern, stage))

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving hooks dir: %w", err)
	}
	if !strings.HasPrefix(absPath, absDir+string(filepath.Separator)) {
		return "", fmt.Errorf("hook path escapes hooks directory")
	}

	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("hook already exists: %s", path)
	}

	mode, _ := stageDefaults(stage)
	script := fmt.Sprintf(`#!/bin/bash
# tend hook: %s at %s stage (%s mode)
# Created: %s
#
# The invocation context arrives as JSON on stdin:
# {
#   "command": "task.add",
#   "args": ["write weekly report"],
#   "flags": {"hours": "1.5"},
#   "result": null,
#   "timestamp": "2026-01-15T10:30:00Z"
# }
#
# Transform hooks (pre/post) write modified JSON to stdout; empty output
# leaves the context unchanged. Notify hooks may do anything; their output
# is ignored.

CONTEXT=$(cat)

# Example: pull the command name out of the context
COMMAND=$(echo "$CONTEXT" | grep -o '"command":"[^"]*"' | cut -d'"' -f4)
# echo "Hook fired for: $COMMAND" >&2
`, pattern, stage, mode, time.Now().Format("2006-01-02"))

	if stage != StageNotify {
		script += `
# Pass the (possibly modified) context back to tend
echo "$CONTEXT"
`
	}

	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		return "", fmt.Errorf("writing hook script: %w", err)
	}
	return path, nil
}

// TestHook dry-runs a hook script against a sample context and returns what
// it produced.
func TestHook(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("hook not found: %s", path)
	}
	if info.Mode()&0o111 == 0 {
		return "", fmt.Errorf("hook not executable: %s (run: chmod +x %s)", path, path)
	}

	h, err := parseHookFilename(filepath.Base(path))
	if err != nil {
		return "", err
	}

	mode, timeout := stageDefaults(h.Stage)
	ctx := NewContext("test.command", []string{"sample", "args"}, map[string]string{
		"flag1": "value1",
	})

	result, err := ExecHandler(path, mode, timeout)(ctx)
	if err != nil {
		return "", fmt.Errorf("hook execution failed: %w", err)
	}

	if mode == ModeNotify {
		return "Notify hook executed successfully (no output expected)", nil
	}
	data, err := result.JSON()
	if err != nil {
		return "", fmt.Errorf("serializing result: %w", err)
	}
	return string(data), nil
}
