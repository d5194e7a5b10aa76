package ui

import (
	"fmt"
	"os"
	"strings"
)

// Puts writes one line to stdout.
func Puts(s string) {
	fmt.Println(s)
}

// Putsf writes one formatted line to stdout.
func Putsf(format string, args ...any) {
	fmt.Printf(format+"\n", args...)
}

// Status lines. Ok/Warn go to stdout; Err goes to stderr so failures
// survive piping.

func Ok(msg string) {
	fmt.Println(Success.Render(IconOk + msg))
}

func Warn(msg string) {
	fmt.Println(Warning.Render(IconWarn + msg))
}

func Err(msg string) {
	fmt.Fprintln(os.Stderr, Error.Copy().Bold(true).Render(IconError+msg))
}

func Inf(msg string) {
	fmt.Println(Info.Render("  " + msg))
}

// Header prints a titled section break with an underline rule.
func Header(s string) {
	rule := strings.Repeat("─", len(s)+2)
	fmt.Println()
	fmt.Println(Title.Render(s))
	fmt.Println(Muted.Render(rule))
}

// Tip prints a dimmed one-line suggestion below the main output.
func Tip(msg string) {
	fmt.Println()
	fmt.Println(Muted.Render("  tip: " + msg))
}

// Kv prints an aligned key/value row.
func Kv(key string, value string) {
	k := KeyStyle.Render(fmt.Sprintf("  %-12s", key))
	fmt.Printf("%s %s\n", k, ValueStyle.Render(value))
}

// Greet returns the dashboard greeting, personalized when a name is set.
func Greet(name string) string {
	if name == "" {
		return IconTend + "Hey there!"
	}
	return fmt.Sprintf("%sHey %s!", IconTend, name)
}

// Die prints the message to stderr and exits non-zero.
func Die(msg string) {
	Err(msg)
	os.Exit(1)
}

func Dief(format string, args ...any) {
	Die(fmt.Sprintf(format, args...))
}
