package hook

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"time"
)

// ExecHandler wraps an external script as a Handler. The script gets the
// invocation Context as JSON on stdin; a transform script prints the new
// Context on stdout (empty output means "unchanged"), a notify script's
// output is ignored.
func ExecHandler(path string, mode Mode, timeout time.Duration) Handler {
	if timeout == 0 {
		if mode == ModeTransform {
			timeout = DefaultTransformTimeout
		} else {
			timeout = DefaultNotifyTimeout
		}
	}

	return func(ctx *Context) (*Context, error) {
		stdout, err := runScript(path, ctx, timeout)
		if err != nil {
			return nil, err
		}
		if mode == ModeNotify || len(stdout) == 0 {
			return ctx, nil
		}

		next, err := ParseContext(stdout)
		if err != nil {
			return nil, fmt.Errorf("parsing hook output: %w", err)
		}
		return next, nil
	}
}

// runScript executes the script with ctx on stdin and returns its stdout.
func runScript(path string, ctx *Context, timeout time.Duration) ([]byte, error) {
	input, err := ctx.JSON()
	if err != nil {
		return nil, fmt.Errorf("serializing context: %w", err)
	}

	execCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(execCtx, path)
	cmd.Stdin = bytes.NewReader(input)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if execCtx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("hook timed out after %s", timeout)
		}
		if msg := stderr.String(); msg != "" {
			return nil, fmt.Errorf("hook failed: %s", msg)
		}
		return nil, fmt.Errorf("hook failed: %w", err)
	}
	return stdout.Bytes(), nil
}
