package history

// This file contains the cross-run trend ledger: a durable,
// size-bounded, time-ordered list of one summary entry per build,
// persisted between process invocations.

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/rs/zerolog"

	"github.com/runledger/runledger/model"
)

// DefaultWindow is the retention window used when none is configured.
const DefaultWindow = 10

// Ledger holds the in-memory view of the persisted trend file. Within
// one run it follows a single-writer load → upsert → normalize →
// persist cycle; concurrent runs writing the same file are not
// supported.
type Ledger struct {
	logger  zerolog.Logger
	path    string
	window  int
	entries []model.HistoryEntry
}

type ledgerFile struct {
	Entries []model.HistoryEntry `json:"entries"`
}

// NewLedger returns a ledger backed by the file at path, bounded to
// window entries.
func NewLedger(logger zerolog.Logger, path string, window int) *Ledger {
	if window < 1 {
		window = DefaultWindow
	}
	return &Ledger{logger: logger, path: path, window: window}
}

// Load reads the persisted entries. History is advisory: a missing,
// unreadable or corrupt file yields an empty ledger with a warning
// rather than an error.
func (l *Ledger) Load() {
	l.entries = nil

	data, err := os.ReadFile(l.path)
	if err != nil {
		if !os.IsNotExist(err) {
			l.logger.Warn().Err(err).Str("path", l.path).Msg("Failed to read history, starting empty")
		}
		return
	}

	var file ledgerFile
	if err := json.Unmarshal(data, &file); err != nil {
		l.logger.Warn().Err(err).Str("path", l.path).Msg("Failed to parse history, starting empty")
		return
	}
	l.entries = file.Entries
}

// Reset discards the persisted ledger, intentionally starting a new
// trend line.
func (l *Ledger) Reset() {
	l.entries = nil
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		l.logger.Warn().Err(err).Str("path", l.path).Msg("Failed to remove history file")
	}
}

// Upsert replaces the entry with the same build identifier, or appends
// when none exists.
func (l *Ledger) Upsert(entry model.HistoryEntry) {
	for i := range l.entries {
		if l.entries[i].BuildID == entry.BuildID {
			l.entries[i] = entry
			return
		}
	}
	l.entries = append(l.entries, entry)
}

// Normalize sorts entries ascending by timestamp and trims from the
// oldest end down to the retention window. The sort is stable so
// same-timestamp entries keep their relative order.
func (l *Ledger) Normalize() {
	sort.SliceStable(l.entries, func(i, j int) bool {
		return l.entries[i].Timestamp.Before(l.entries[j].Timestamp)
	})
	if len(l.entries) > l.window {
		l.entries = l.entries[len(l.entries)-l.window:]
	}
}

// Persist rewrites the ledger file whole, so the on-disk view never
// drifts from memory.
func (l *Ledger) Persist() error {
	if dir := filepath.Dir(l.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create history directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(ledgerFile{Entries: l.entries}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}
	if err := os.WriteFile(l.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write history: %w", err)
	}

	l.logger.Debug().Str("path", l.path).Int("entries", len(l.entries)).Msg("Persisted history")
	return nil
}

// Entries returns a copy of the current entries, oldest first.
func (l *Ledger) Entries() []model.HistoryEntry {
	out := make([]model.HistoryEntry, len(l.entries))
	copy(out, l.entries)
	return out
}
