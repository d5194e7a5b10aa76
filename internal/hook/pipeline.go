package hook

import (
	"fmt"
	"log"
	"sync"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// RunE is the cobra command-function shape the pipeline wraps.
type RunE = func(cmd *cobra.Command, args []string) error

// Wrap runs fn through the default registry's hook pipeline.
//
//	var taskAddCmd = &cobra.Command{RunE: hook.Wrap("task.add", runTaskAdd)}
func Wrap(command string, fn RunE) RunE {
	return WrapWith(DefaultRegistry, command, fn)
}

// WrapWith runs fn through a specific registry's pipeline. When nothing is
// registered for the command the wrapper calls fn directly, so unhooked
// commands pay nothing.
func WrapWith(reg *Registry, command string, fn RunE) RunE {
	return func(cmd *cobra.Command, args []string) error {
		if reg.Count() == 0 || !reg.HasHooks(command) {
			return fn(cmd, args)
		}

		ctx := NewContext(command, args, changedFlags(cmd))

		ctx, err := runTransformStage(reg, command, StagePre, ctx)
		if err != nil {
			return fmt.Errorf("hook pre failed: %w", err)
		}

		// Pre hooks may have rewritten the args.
		if err := fn(cmd, ctx.Args); err != nil {
			return err
		}

		ctx, err = runTransformStage(reg, command, StagePost, ctx)
		if err != nil {
			return fmt.Errorf("hook post failed: %w", err)
		}

		runNotifyStage(reg, command, ctx)
		return nil
	}
}

// runTransformStage chains a stage's transform hooks: each receives the
// context left by the previous one. A nil result means "unchanged".
func runTransformStage(reg *Registry, command string, stage Stage, ctx *Context) (*Context, error) {
	for _, h := range reg.Resolve(command, stage) {
		if h.Mode == ModeNotify {
			continue
		}
		out, err := h.Handler(ctx)
		if err != nil {
			return ctx, fmt.Errorf("hook %q (%s): %w", h.Name, stage, err)
		}
		if out != nil {
			ctx = out
		}
	}
	return ctx, nil
}

// runNotifyStage fires the notify hooks concurrently and waits for them.
// Failures are logged via log.Printf — not the ui package, since goroutines
// writing styled output concurrently would interleave — and never fail the
// command.
func runNotifyStage(reg *Registry, command string, ctx *Context) {
	hooks := reg.Resolve(command, StageNotify)
	if len(hooks) == 0 {
		return
	}

	var wg sync.WaitGroup
	for _, h := range hooks {
		wg.Add(1)
		go func(h Hook) {
			defer wg.Done()
			if _, err := h.Handler(ctx); err != nil {
				log.Printf("notify hook %q error: %v", h.Name, err)
			}
		}(h)
	}
	wg.Wait()
}

// changedFlags collects the flags the user actually set on this invocation.
func changedFlags(cmd *cobra.Command) map[string]string {
	flags := make(map[string]string)
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Changed {
			flags[f.Name] = f.Value.String()
		}
	})
	return flags
}
