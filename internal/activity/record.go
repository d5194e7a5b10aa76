// Package activity holds the daily activity record and the pure aggregation
// functions that derive streaks, summaries, and the heatmap grid from it.
//
// The record is a sparse mapping of UTC calendar days to logged hours. It is
// persisted as one versioned JSON document under a fixed storage key and
// rewritten whole on every edit — there are no partial writes.
package activity

import (
	"encoding/json"
	"math"
	"time"
)

// StorageKey is the fixed key the activity record is stored under.
const StorageKey = "activity_log"

// SchemaVersion is the current persisted document version.
const SchemaVersion = 1

// DateFormat is the ISO calendar-day layout used for all record keys.
const DateFormat = "2006-01-02"

// Record maps ISO dates ("YYYY-MM-DD", UTC calendar days) to logged hours.
// A missing key means "nothing recorded", which is distinct from a logged 0.
type Record map[string]float64

// KV is the storage collaborator Load and Save require. Satisfied by
// store.DB; tests substitute an in-memory map.
type KV interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// envelope is the persisted document shape. Days are kept as raw JSON so a
// single malformed value can be classified out without losing the rest.
type envelope struct {
	Version int                        `json:"version"`
	Days    map[string]json.RawMessage `json:"days"`
}

// Decode parses a persisted activity document into a Record.
//
// Decoding doubles as the schema migration path:
//   - version 1: current schema.
//   - no version tag, bare {date: number} object: legacy v0, migrated whole.
//   - no version tag with a "days" field (the old streak-metadata envelope):
//     the days mapping is salvaged; the stored streak/lastCheckin values are
//     discarded since they are recomputable.
//   - unknown future version, or JSON that parses as none of the above:
//     deterministic reset to the empty record.
//
// Individual day values that are not numeric, have malformed date keys, or
// are negative/non-finite are treated as absent rather than failing the load.
func Decode(data []byte) Record {
	if len(data) == 0 {
		return Record{}
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err == nil && env.Days != nil {
		if env.Version == 0 || env.Version == SchemaVersion {
			return classifyDays(env.Days)
		}
		// A version we don't know how to read — reset rather than guess.
		return Record{}
	}

	// Legacy v0: the document is the bare date→amount map itself.
	var bare map[string]json.RawMessage
	if err := json.Unmarshal(data, &bare); err == nil {
		return classifyDays(bare)
	}

	return Record{}
}

// classifyDays keeps only well-formed entries: a parseable ISO date key and a
// finite, non-negative numeric value.
func classifyDays(days map[string]json.RawMessage) Record {
	rec := make(Record, len(days))
	for date, raw := range days {
		if _, err := time.Parse(DateFormat, date); err != nil {
			continue
		}
		var amount float64
		if err := json.Unmarshal(raw, &amount); err != nil {
			continue
		}
		if amount < 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
			continue
		}
		rec[date] = amount
	}
	return rec
}

// Encode serializes a Record as the current-version document.
func Encode(rec Record) ([]byte, error) {
	if rec == nil {
		rec = Record{}
	}
	return json.Marshal(struct {
		Version int    `json:"version"`
		Days    Record `json:"days"`
	}{Version: SchemaVersion, Days: rec})
}

// Load reads, decodes, and prunes the activity record. A read error is
// returned alongside an empty record: display-only callers warn and proceed
// with the fallback, while callers that save the record back abort instead,
// so a bad read can never be written over real history.
func Load(kv KV, retentionMonths int, now time.Time) (Record, error) {
	raw, ok, err := kv.Get(StorageKey)
	if err != nil {
		return Record{}, err
	}
	if !ok {
		return Record{}, nil
	}
	return Prune(Decode([]byte(raw)), retentionMonths, now), nil
}

// Save overwrites the stored document with the full record.
func Save(kv KV, rec Record) error {
	data, err := Encode(rec)
	if err != nil {
		return err
	}
	return kv.Set(StorageKey, string(data))
}

// Clone returns an independent copy of the record. Edits are applied to a
// fresh copy and the whole thing saved back — callers never mutate a record
// shared with the presentation layer.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
