package model

import "time"

// ConsolidatedTestRecord is the single reporting decision for one
// logical test after merging all of its attempts.
type ConsolidatedTestRecord struct {
	// Identity of the test
	Identity TestIdentity `json:"identity"`
	// Final reporting status, after expectation inversion
	Status Status `json:"status"`
	// Number of retries (attempts minus one)
	Retries int `json:"retries"`
	// Total wall time across all attempts
	Duration time.Duration `json:"duration"`
	// Non-empty error messages from every attempt, in attempt order
	Errors []string `json:"errors,omitempty"`
	// Materialized attachments from every attempt, in attempt order
	// then declaration order
	Attachments []MaterializedAttachment `json:"attachments,omitempty"`
	// Normalized step tree of the final attempt only
	Steps []StepNode `json:"steps,omitempty"`
}

// Retried reports whether the test needed more than one attempt,
// irrespective of the final outcome.
func (r ConsolidatedTestRecord) Retried() bool {
	return r.Retries > 0
}

// RunCounters are the aggregate counts over all consolidated records
// of a run. Retried overlaps the other buckets and is not part of the
// total partition.
type RunCounters struct {
	Total   int `json:"total"`
	Passed  int `json:"passed"`
	Failed  int `json:"failed"`
	Skipped int `json:"skipped"`
	Retried int `json:"retried"`
}

// Group is an ordered list of consolidated records sharing one
// partition key (project name).
type Group struct {
	Name    string                   `json:"name"`
	Records []ConsolidatedTestRecord `json:"records"`
}

// RunRecord is the durable structured record of a full run, written at
// run end so the report can be re-rendered later.
type RunRecord struct {
	// Unique ID for this run (UUID)
	ID string `json:"id"`
	// Build identifier this run belongs to, if known
	BuildID string `json:"build_id,omitempty"`
	// Timestamp when the run started
	StartedAt time.Time `json:"started_at"`
	// Wall time of the whole run
	Duration time.Duration `json:"duration"`
	// Aggregate counters
	Counters RunCounters `json:"counters"`
	// Records grouped by project, in first-seen order
	Groups []Group `json:"groups"`
}
