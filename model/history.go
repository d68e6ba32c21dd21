package model

import "time"

// HistoryEntry summarizes one run for the cross-run trend ledger.
// There is one conceptual entry per distinct build identifier.
type HistoryEntry struct {
	// Build identifier this entry is keyed by
	BuildID string `json:"build_id"`
	// Number of consolidated tests in the run
	TotalTests int `json:"total_tests"`
	// Number of tests that passed
	PassedTests int `json:"passed_tests"`
	// Timestamp of the run, ISO 8601 on the wire
	Timestamp time.Time `json:"timestamp"`
}
