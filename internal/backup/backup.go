// Package backup exports and restores tend's record sets as a single
// age-encrypted snapshot. Snapshots are passphrase-encrypted (age scrypt)
// and ASCII-armored; file writes are atomic: temp file, fsync, rename.
package backup

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"filippo.io/age"
	"filippo.io/age/armor"
)

// ErrWrongPassphrase is returned when decryption fails due to a bad passphrase.
var ErrWrongPassphrase = errors.New("wrong passphrase")

// ErrCorruptedBackup is returned when the snapshot exists but cannot be parsed.
var ErrCorruptedBackup = errors.New("backup file is corrupted or unreadable")

// SnapshotVersion is the current snapshot schema version.
const SnapshotVersion = 1

// RecordKeys are the storage keys a snapshot covers.
var RecordKeys = []string{"activity_log", "day_tasks", "goals"}

// KV is the storage collaborator snapshots read from and restore into.
type KV interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Remove(key string) error
}

// snapshot is the plaintext JSON inside the age file.
type snapshot struct {
	Version   int                        `json:"version"`
	CreatedAt time.Time                  `json:"created_at"`
	Records   map[string]json.RawMessage `json:"records"`
}

// Export encrypts all present record sets to w.
func Export(kv KV, w io.Writer, passphrase string, now time.Time) error {
	snap := snapshot{
		Version:   SnapshotVersion,
		CreatedAt: now.UTC(),
		Records:   make(map[string]json.RawMessage),
	}
	for _, key := range RecordKeys {
		value, ok, err := kv.Get(key)
		if err != nil {
			return fmt.Errorf("reading %q: %w", key, err)
		}
		if !ok {
			continue
		}
		if !json.Valid([]byte(value)) {
			// A record set that no longer parses is not worth carrying into
			// a backup; it would reset on load anyway.
			continue
		}
		snap.Records[key] = json.RawMessage(value)
	}

	raw, err := encryptSnapshot(&snap, passphrase)
	if err != nil {
		return err
	}
	if _, err := w.Write(raw); err != nil {
		return fmt.Errorf("writing backup: %w", err)
	}
	return nil
}

// Import replaces the stored record sets with the snapshot read from r.
// The snapshot is fully decrypted and validated before anything is touched.
func Import(kv KV, r io.Reader, passphrase string) error {
	raw, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("reading backup data: %w", err)
	}

	snap, err := decryptSnapshot(raw, passphrase)
	if err != nil {
		return err
	}

	for _, key := range RecordKeys {
		rec, ok := snap.Records[key]
		if !ok {
			if err := kv.Remove(key); err != nil {
				return fmt.Errorf("clearing %q: %w", key, err)
			}
			continue
		}
		if err := kv.Set(key, string(rec)); err != nil {
			return fmt.Errorf("restoring %q: %w", key, err)
		}
	}
	return nil
}

// ExportFile writes an encrypted snapshot to path atomically.
func ExportFile(kv KV, path, passphrase string, now time.Time) error {
	var buf bytes.Buffer
	if err := Export(kv, &buf, passphrase, now); err != nil {
		return err
	}
	return atomicWrite(path, buf.Bytes())
}

// ImportFile restores record sets from an encrypted snapshot file.
func ImportFile(kv KV, path, passphrase string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening backup: %w", err)
	}
	defer f.Close()
	return Import(kv, f, passphrase)
}

func encryptSnapshot(snap *snapshot, passphrase string) ([]byte, error) {
	jsonBytes, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("serializing snapshot: %w", err)
	}

	recipient, err := age.NewScryptRecipient(passphrase)
	if err != nil {
		return nil, fmt.Errorf("creating age recipient: %w", err)
	}

	var buf bytes.Buffer
	armorWriter := armor.NewWriter(&buf)

	w, err := age.Encrypt(armorWriter, recipient)
	if err != nil {
		return nil, fmt.Errorf("initializing age encryption: %w", err)
	}
	if _, err := w.Write(jsonBytes); err != nil {
		return nil, fmt.Errorf("encrypting snapshot: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("finalizing encryption: %w", err)
	}
	if err := armorWriter.Close(); err != nil {
		return nil, fmt.Errorf("finalizing armor: %w", err)
	}

	return buf.Bytes(), nil
}

func decryptSnapshot(raw []byte, passphrase string) (*snapshot, error) {
	identity, err := age.NewScryptIdentity(passphrase)
	if err != nil {
		return nil, fmt.Errorf("creating age identity: %w", err)
	}

	armorReader := armor.NewReader(bytes.NewReader(raw))
	r, err := age.Decrypt(armorReader, identity)
	if err != nil {
		// age does not export typed errors for wrong passphrase (as of v1.x);
		// match known message substrings. If the wording changes, a wrong
		// passphrase falls through to ErrCorruptedBackup.
		msg := err.Error()
		if strings.Contains(msg, "no identity matched") || strings.Contains(msg, "incorrect") {
			return nil, fmt.Errorf("%w: %v", ErrWrongPassphrase, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrCorruptedBackup, err)
	}

	plaintext, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: reading decrypted data: %v", ErrCorruptedBackup, err)
	}

	var snap snapshot
	if err := json.Unmarshal(plaintext, &snap); err != nil {
		return nil, fmt.Errorf("%w: parsing snapshot JSON: %v", ErrCorruptedBackup, err)
	}
	if snap.Version != SnapshotVersion {
		return nil, fmt.Errorf("%w: unknown snapshot version %d", ErrCorruptedBackup, snap.Version)
	}
	if snap.Records == nil {
		snap.Records = make(map[string]json.RawMessage)
	}
	return &snap, nil
}

// atomicWrite writes data to path atomically: temp file → fsync → rename.
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating backup directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".backup-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpName)
		}
	}()

	if err := os.Chmod(tmpName, 0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("setting temp file permissions: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing backup data: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("fsyncing backup data: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("committing backup file: %w", err)
	}

	success = true
	return nil
}
