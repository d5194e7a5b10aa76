package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tendhq/tend/internal/hook"
	"github.com/tendhq/tend/internal/ui"
)

var hookCmd = &cobra.Command{
	Use:   "hook",
	Short: "Automate tend with event-driven scripts",
	Long:  `Create scripts that fire before or after any tend command. Drop them in ~/.config/tend/hooks/.`,
	RunE:  hook.Wrap("hook", runHookList),
}

var hookListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List all active hook scripts",
	RunE:    hook.Wrap("hook.list", runHookList),
}

var hookCreateCmd = &cobra.Command{
	Use:     "create <command-pattern> <stage>",
	Aliases: []string{"init"},
	Short:   "Scaffold a new hook script",
	Long: `Create a starter hook script.

Examples:
  tend hook create task.add pre
  tend hook create "task.*" notify
  tend hook create "*" post`,
	Args: cobra.ExactArgs(2),
	RunE: hook.Wrap("hook.create", runHookCreate),
}

var hookTestCmd = &cobra.Command{
	Use:   "test <file>",
	Short: "Dry-run a hook with sample input to verify it works",
	Args:  cobra.ExactArgs(1),
	RunE:  hook.Wrap("hook.test", runHookTest),
}

func init() {
	hookCmd.AddCommand(hookListCmd, hookCreateCmd, hookTestCmd)
	rootCmd.AddCommand(hookCmd)
}

func runHookList(_ *cobra.Command, _ []string) error {
	hooks, err := hook.Discover()
	if err != nil {
		return err
	}

	if len(hooks) == 0 {
		ui.Puts("")
		ui.Inf("No hooks found.")
		ui.Puts("")
		ui.Kv("Directory:", hook.HooksDir())
		ui.Tip("create one with `tend hook create task.add pre`")
		return nil
	}

	ui.Header("User Hooks")
	for _, h := range hooks {
		mode := "transform"
		if h.Stage == hook.StageNotify {
			mode = "notify"
		}
		ui.Putsf("  %s %-20s %s  %s",
			ui.Success.Render("●"),
			ui.Accent.Render(h.Pattern),
			ui.Muted.Render(string(h.Stage)),
			ui.Muted.Render(mode))
	}
	ui.Puts("")
	ui.Inf(fmt.Sprintf("%d hooks in %s", len(hooks), hook.HooksDir()))
	return nil
}

func runHookCreate(_ *cobra.Command, args []string) error {
	stage, err := hook.ParseStageStr(args[1])
	if err != nil {
		return err
	}

	path, err := hook.CreateHookScript(args[0], stage)
	if err != nil {
		return err
	}

	ui.Ok("Created hook: " + path)
	ui.Puts("")
	ui.Kv("Pattern:", args[0])
	ui.Kv("Stage:", string(stage))
	ui.Kv("Edit:", "$EDITOR "+path)
	ui.Kv("Test:", "tend hook test "+path)
	return nil
}

func runHookTest(_ *cobra.Command, args []string) error {
	path := args[0]
	ui.Puts("")
	ui.Kv("Testing:", path)
	ui.Puts("")

	output, err := hook.TestHook(path)
	if err != nil {
		return err
	}

	ui.Ok("Hook executed successfully")
	if output != "" {
		ui.Puts("")
		ui.Inf("Output:")
		ui.Inf(output)
	}
	return nil
}
