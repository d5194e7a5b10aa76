package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/tendhq/tend/internal/backup"
	"github.com/tendhq/tend/internal/hook"
	"github.com/tendhq/tend/internal/store"
	"github.com/tendhq/tend/internal/ui"
	"golang.org/x/term"
)

var backupCmd = &cobra.Command{
	Use:   "backup <file>",
	Short: "Export an encrypted snapshot of all your data",
	Long: `Write everything tend knows — activity log, task lists, goals — to a
single age-encrypted file. Restore it anywhere with 'tend restore'.`,
	Args: cobra.ExactArgs(1),
	RunE: hook.Wrap("backup", runBackup),
}

var restoreCmd = &cobra.Command{
	Use:   "restore <file>",
	Short: "Restore data from an encrypted snapshot",
	Long: `Decrypt a snapshot created by 'tend backup' and replace the local data
with its contents. The current data is replaced entirely (no merge).`,
	Args: cobra.ExactArgs(1),
	RunE: hook.Wrap("restore", runRestore),
}

func init() {
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(restoreCmd)
}

func runBackup(_ *cobra.Command, args []string) error {
	path := args[0]

	passphrase, err := readBackupPassphrase(true)
	if err != nil {
		return err
	}

	db, err := store.Open()
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer db.Close()

	if err := backup.ExportFile(db, path, passphrase, time.Now()); err != nil {
		return err
	}

	ui.Ok(fmt.Sprintf("Backup written to %s", path))
	ui.Inf("Keep the passphrase safe — the file is useless without it.")
	return nil
}

func runRestore(_ *cobra.Command, args []string) error {
	path := args[0]

	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("backup file not found: %s", path)
	}

	passphrase, err := readBackupPassphrase(false)
	if err != nil {
		return err
	}

	db, err := store.Open()
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer db.Close()

	if err := backup.ImportFile(db, path, passphrase); err != nil {
		return formatBackupError(err)
	}

	ui.Ok("Backup restored — all records replaced")
	return nil
}

// readBackupPassphrase reads the backup passphrase using the following order:
//  1. TEND_BACKUP_PASSPHRASE env var (always wins)
//  2. Interactive TTY prompt
func readBackupPassphrase(confirm bool) (string, error) {
	if p := os.Getenv("TEND_BACKUP_PASSPHRASE"); p != "" {
		return p, nil
	}

	if !term.IsTerminal(int(syscall.Stdin)) {
		return "", fmt.Errorf("backup passphrase required — set %s or run interactively",
			"TEND_BACKUP_PASSPHRASE")
	}

	fmt.Fprint(os.Stderr, ui.Muted.Render("  Backup passphrase: "))
	passBytes, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading passphrase: %w", err)
	}

	passphrase := strings.TrimSpace(string(passBytes))
	if passphrase == "" {
		return "", fmt.Errorf("passphrase can't be empty — set TEND_BACKUP_PASSPHRASE or type it when prompted")
	}

	if confirm {
		fmt.Fprint(os.Stderr, ui.Muted.Render("  Confirm passphrase: "))
		confirmBytes, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", fmt.Errorf("reading passphrase confirmation: %w", err)
		}
		if string(passBytes) != string(confirmBytes) {
			return "", fmt.Errorf("passphrases do not match")
		}
	}

	return passphrase, nil
}

// formatBackupError gives the two common restore failures friendlier messages.
func formatBackupError(err error) error {
	switch {
	case errors.Is(err, backup.ErrWrongPassphrase):
		return fmt.Errorf("wrong passphrase — the file was encrypted with a different one")
	case errors.Is(err, backup.ErrCorruptedBackup):
		return fmt.Errorf("that file doesn't look like a tend backup (corrupted or truncated)")
	default:
		return err
	}
}
