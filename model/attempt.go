package model

import (
	"fmt"
	"time"
)

// Status represents the outcome of a single test attempt as reported
// by the runner.
type Status string

const (
	StatusPassed      Status = "passed"
	StatusFailed      Status = "failed"
	StatusTimedOut    Status = "timedOut"
	StatusSkipped     Status = "skipped"
	StatusInterrupted Status = "interrupted"
)

// Bucket maps a fine-grained status onto the three counting buckets.
// Timeouts and interrupts count as failures; the original status stays
// on the record for display.
func (s Status) Bucket() Status {
	switch s {
	case StatusTimedOut, StatusInterrupted:
		return StatusFailed
	default:
		return s
	}
}

// TestIdentity is the stable key for one logical test across attempts
// within a run. It never changes once assigned.
type TestIdentity struct {
	// Project (suite) the test belongs to; also the partition key
	// used for grouping in reports
	Project string `json:"project"`
	// Source file the test is declared in
	File string `json:"file"`
	// Line within the source file
	Line int `json:"line"`
	// Full test title, including parameterization
	Title string `json:"title"`
}

// Key returns a stable string form of the identity, usable as a map key.
func (id TestIdentity) Key() string {
	return fmt.Sprintf("%s\x00%s\x00%d\x00%s", id.Project, id.File, id.Line, id.Title)
}

// Attempt is one execution of a test. Attempts are produced by the
// runner and never mutated afterwards.
type Attempt struct {
	// Status reported by the runner for this attempt
	Status Status `json:"status"`
	// Wall time of this attempt
	Duration time.Duration `json:"duration"`
	// Error messages captured during this attempt
	Errors []string `json:"errors,omitempty"`
	// Raw artifacts captured during this attempt
	Attachments []RawAttachment `json:"attachments,omitempty"`
	// Step tree reported by the runner
	Steps []Step `json:"steps,omitempty"`
	// Status the test is declared to expect (usually passed;
	// failed marks an expected-to-fail test)
	ExpectedStatus Status `json:"expected_status"`
	// Zero-based retry index of this attempt
	RetryIndex int `json:"retry_index"`
}

// Step is a runner-reported step or substep, before normalization.
type Step struct {
	// Step title as reported, may contain control sequences
	Title string `json:"title"`
	// Error text if the step failed, empty otherwise
	Error string `json:"error,omitempty"`
	// Wall time of the step
	Duration time.Duration `json:"duration"`
	// Nested substeps
	Steps []Step `json:"steps,omitempty"`
}

// StepNode is one node of the normalized pass/fail step tree.
type StepNode struct {
	Title    string        `json:"title"`
	Passed   bool          `json:"passed"`
	Duration time.Duration `json:"duration"`
	Steps    []StepNode    `json:"steps,omitempty"`
}
