package ui

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/mattn/go-isatty"
)

// IsStdoutTTY reports whether stdout is a terminal (cygwin pty included).
func IsStdoutTTY() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func newRenderer() (*glamour.TermRenderer, error) {
	return glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
}

// MarkdownWriter buffers markdown written to it and renders the whole
// document with glamour on Flush. Rendering only happens when the target is
// an interactive terminal and raw mode is off; otherwise every Write passes
// straight through, which keeps `tend report > week.md` emitting clean
// markdown.
type MarkdownWriter struct {
	out   io.Writer
	buf   bytes.Buffer
	raw   bool
	isTTY bool
}

// NewMarkdownWriter wraps out. Set raw to force pass-through even on a TTY
// (the --raw flag).
func NewMarkdownWriter(out io.Writer, raw bool) *MarkdownWriter {
	w := &MarkdownWriter{out: out, raw: raw}
	if f, ok := out.(*os.File); ok {
		w.isTTY = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return w
}

func (m *MarkdownWriter) passthrough() bool {
	return m.raw || !m.isTTY
}

func (m *MarkdownWriter) Write(p []byte) (int, error) {
	if m.passthrough() {
		return m.out.Write(p)
	}
	return m.buf.Write(p)
}

// Flush renders the buffered document and writes it out. In pass-through
// mode (or with nothing buffered) it does nothing. When glamour can't render
// the buffer, Flush degrades to the raw text with a note on stderr rather
// than losing the report.
func (m *MarkdownWriter) Flush() error {
	if m.passthrough() || m.buf.Len() == 0 {
		return nil
	}

	rendered, ok := tryRender(m.buf.String())
	if !ok {
		fmt.Fprintln(os.Stderr, Muted.Render("  (markdown rendering unavailable, showing raw output)"))
		_, err := m.out.Write(m.buf.Bytes())
		return err
	}

	_, err := fmt.Fprint(m.out, rendered)
	return err
}

// RenderMarkdown styles a markdown string for terminal display, returning
// the input unchanged if rendering fails.
func RenderMarkdown(md string) string {
	if out, ok := tryRender(md); ok {
		return out
	}
	return md
}

func tryRender(md string) (string, bool) {
	r, err := newRenderer()
	if err != nil {
		return "", false
	}
	out, err := r.Render(md)
	if err != nil {
		return "", false
	}
	return out, true
}
