package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tendhq/tend/internal/ui"
	"github.com/tendhq/tend/internal/version"
)

var aboutCmd = &cobra.Command{
	Use:   "about",
	Short: "The story, the version, the vibe",
	Long:  "Everything you ever wanted to know about tend — who made it, what it does, and why it exists.",
	Run:   runAbout,
}

func runAbout(_ *cobra.Command, _ []string) {
	fmt.Println()
	fmt.Println(ui.Title.Render("  " + ui.IconTend + "tend"))
	fmt.Println(ui.Muted.Render("  ────────────────────────────────────────────"))
	fmt.Println()
	fmt.Println("  " + ui.Subtitle.Render("Grow your habits one day at a time."))
	fmt.Println()
	fmt.Println(ui.Muted.Render("  Log your hours. Watch the heatmap fill in. Keep the streak alive."))
	fmt.Println(ui.Muted.Render("  Daily tasks. Multi-week goals. Weekly reports. Encrypted backups."))
	fmt.Println()
	ui.Kv("  Version", version.Full())
	ui.Kv("  Repo   ", "https://github.com/tendhq/tend")
	ui.Kv("  License", "MIT")
	fmt.Println()
	fmt.Println(ui.Muted.Render("  Built for people who believe consistency beats intensity."))
	fmt.Println(ui.Muted.Render("  One binary. Your data stays on your machine."))
	fmt.Println()
	ui.Tip("run `tend help` to explore everything tend can do")
	fmt.Println()
}
