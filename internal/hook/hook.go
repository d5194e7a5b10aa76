// Package hook lets users extend tend commands with their own scripts.
//
// Every wrapped command passes through three stages in order: pre, post,
// notify. Pre and post hooks are transforms — they receive the invocation
// context and may return a modified one. Notify hooks only observe; they
// run concurrently after the command finishes and their output is ignored.
// A command with no matching hooks skips the pipeline entirely.
package hook

import (
	"encoding/json"
	"fmt"
	"time"
)

// Stage names a point in the command lifecycle where hooks run.
type Stage string

const (
	StagePre    Stage = "pre"    // before the command, may rewrite args
	StagePost   Stage = "post"   // after the command succeeds, may rewrite the result
	StageNotify Stage = "notify" // after post, fire-and-forget
)

// AllStages lists the stages in pipeline order.
var AllStages = []Stage{StagePre, StagePost, StageNotify}

// Mode says whether a hook's returned context is fed back into the pipeline.
type Mode string

const (
	// ModeTransform hooks return a context that replaces the current one.
	ModeTransform Mode = "transform"
	// ModeNotify hooks are observers; whatever they return is discarded.
	ModeNotify Mode = "notify"
)

// Default timeouts applied when a Hook's Timeout is zero. Transforms sit on
// the command's critical path so they get a short leash; notifies run off
// to the side and may talk to the network.
const (
	DefaultTransformTimeout = 5 * time.Second
	DefaultNotifyTimeout    = 30 * time.Second
)

// Context is the payload handed to each hook. It is serialized as JSON on
// a hook script's stdin; transform scripts print the (possibly modified)
// JSON back on stdout.
type Context struct {
	Command   string            `json:"command"`
	Args      []string          `json:"args"`
	Flags     map[string]string `json:"flags"`
	Result    any               `json:"result,omitempty"`
	Timestamp string            `json:"timestamp"`
}

// NewContext builds the initial context for a command invocation. Args and
// Flags are never nil so scripts can index into them without checking.
func NewContext(command string, args []string, flags map[string]string) *Context {
	ctx := &Context{
		Command:   command,
		Args:      args,
		Flags:     flags,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	if ctx.Args == nil {
		ctx.Args = []string{}
	}
	if ctx.Flags == nil {
		ctx.Flags = map[string]string{}
	}
	return ctx
}

// JSON renders the context for a hook script's stdin.
func (c *Context) JSON() ([]byte, error) {
	return json.Marshal(c)
}

// ParseContext reads a context back from a transform script's stdout.
func ParseContext(data []byte) (*Context, error) {
	var ctx Context
	if err := json.Unmarshal(data, &ctx); err != nil {
		return nil, fmt.Errorf("parsing hook context: %w", err)
	}
	return &ctx, nil
}

// Handler runs one hook. Transform handlers return the next context; notify
// handlers' return value is ignored.
type Handler func(ctx *Context) (*Context, error)

// Hook is one registered hook.
type Hook struct {
	Pattern string // command pattern, e.g. "task.add", "task.*", "*"
	Stage   Stage
	Mode    Mode
	Name    string
	Source  string // where the hook came from, currently always "user"
	Handler Handler

	// Timeout bounds one execution. Zero picks the stage default.
	Timeout time.Duration
}
