package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/tendhq/tend/internal/activity"
	"github.com/tendhq/tend/internal/config"
	"github.com/tendhq/tend/internal/hook"
	"github.com/tendhq/tend/internal/store"
	"github.com/tendhq/tend/internal/ui"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check your tend setup for problems",
	Long:  `Run a suite of health checks and report what's working (and what isn't).`,
	RunE:  hook.Wrap("doctor", runDoctor),
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

// checkResult holds the outcome of a single health check.
type checkResult struct {
	name    string
	ok      bool
	detail  string
	fixHint string
}

func runDoctor(_ *cobra.Command, _ []string) error {
	results := []checkResult{
		checkConfig(),
		checkDataDir(),
		checkStore(),
		checkRecords(),
		checkHooks(),
	}

	fmt.Println()

	allPassed := true
	for _, r := range results {
		printCheck(r)
		if !r.ok {
			allPassed = false
		}
	}

	fmt.Println()

	if !allPassed {
		return fmt.Errorf("one or more checks failed — see suggestions above")
	}
	return nil
}

func printCheck(r checkResult) {
	label := fmt.Sprintf("%-12s", r.name)
	if r.ok {
		icon := ui.Success.Render(ui.IconOk)
		fmt.Printf("  %s %s %s\n", icon, ui.KeyStyle.Render(label), ui.Muted.Render(r.detail))
	} else {
		icon := ui.Error.Render(ui.IconError)
		fmt.Printf("  %s %s %s\n", icon, ui.KeyStyle.Render(label), r.detail)
		if r.fixHint != "" {
			fmt.Printf("  %s %s %s\n", "  ", "            ", ui.Muted.Render("→ "+r.fixHint))
		}
	}
}

func checkConfig() checkResult {
	paths := config.GetPaths()
	if !config.Initialized() {
		return checkResult{
			name:   "Config",
			ok:     true,
			detail: "no config file yet (defaults apply)",
		}
	}
	if _, err := config.Load(); err != nil {
		return checkResult{
			name:    "Config",
			ok:      false,
			detail:  fmt.Sprintf("parse error: %v", err),
			fixHint: fmt.Sprintf("Check %s for syntax errors", paths.ConfigFile),
		}
	}
	return checkResult{
		name:   "Config",
		ok:     true,
		detail: paths.ConfigFile + " found and valid",
	}
}

func checkDataDir() checkResult {
	paths := config.GetPaths()
	if err := paths.EnsureDirs(); err != nil {
		return checkResult{
			name:    "Data dir",
			ok:      false,
			detail:  fmt.Sprintf("cannot create %s: %v", paths.DataDir, err),
			fixHint: "Check directory permissions and disk space",
		}
	}
	if _, err := os.Stat(paths.DataDir); err != nil {
		return checkResult{
			name:    "Data dir",
			ok:      false,
			detail:  fmt.Sprintf("not accessible: %v", err),
			fixHint: "Check directory permissions",
		}
	}
	return checkResult{
		name:   "Data dir",
		ok:     true,
		detail: paths.DataDir + " writable",
	}
}

func checkStore() checkResult {
	db, err := store.Open()
	if err != nil {
		return checkResult{
			name:    "Database",
			ok:      false,
			detail:  fmt.Sprintf("cannot open database: %v", err),
			fixHint: "Check available disk space and file permissions",
		}
	}
	db.Close()
	return checkResult{
		name:   "Database",
		ok:     true,
		detail: "SQLite database opens and responds",
	}
}

// checkRecords verifies the activity record set decodes cleanly.
func checkRecords() checkResult {
	db, err := store.Open()
	if err != nil {
		return checkResult{
			name:   "Records",
			ok:     true,
			detail: "skipped (database unavailable)",
		}
	}
	defer db.Close()

	raw, found, err := db.Get(activity.StorageKey)
	if err != nil {
		return checkResult{
			name:    "Records",
			ok:      false,
			detail:  fmt.Sprintf("cannot read activity log: %v", err),
			fixHint: "The database file may be damaged; restore from a backup",
		}
	}
	if !found {
		return checkResult{
			name:   "Records",
			ok:     true,
			detail: "no activity logged yet",
		}
	}

	rec := activity.Decode([]byte(raw))
	streaks := activity.Streaks(rec, time.Now())
	return checkResult{
		name: "Records",
		ok:   true,
		detail: fmt.Sprintf("%d days on record, %d-day streak",
			len(rec), streaks.Current),
	}
}

func checkHooks() checkResult {
	hooks, err := hook.Discover()
	if err != nil {
		return checkResult{
			name:    "Hooks",
			ok:      false,
			detail:  fmt.Sprintf("cannot scan hooks dir: %v", err),
			fixHint: fmt.Sprintf("Check permissions on %s", hook.HooksDir()),
		}
	}
	if len(hooks) == 0 {
		return checkResult{
			name:   "Hooks",
			ok:     true,
			detail: "none installed",
		}
	}
	return checkResult{
		name:   "Hooks",
		ok:     true,
		detail: fmt.Sprintf("%d active in %s", len(hooks), hook.HooksDir()),
	}
}
