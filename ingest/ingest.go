package ingest

// This file reads the attempt event stream produced by the runner
// collaborator: one JSON object per line, one object per attempt.

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/runledger/runledger/model"
)

// Event is one attempt as reported by the runner.
type Event struct {
	// Identity of the logical test this attempt belongs to
	Identity model.TestIdentity `json:"identity"`
	// Attempt status
	Status model.Status `json:"status"`
	// Attempt duration in milliseconds
	DurationMS int64 `json:"duration_ms"`
	// Error messages captured during the attempt
	Errors []string `json:"errors,omitempty"`
	// Raw attachments captured during the attempt
	Attachments []model.RawAttachment `json:"attachments,omitempty"`
	// Step tree reported by the runner
	Steps []model.Step `json:"steps,omitempty"`
	// Declared expectation for the test
	ExpectedStatus model.Status `json:"expected_status"`
	// Zero-based retry index
	RetryIndex int `json:"retry_index"`
}

// Attempt converts the wire event into the internal attempt form.
func (e Event) Attempt() model.Attempt {
	return model.Attempt{
		Status:         e.Status,
		Duration:       time.Duration(e.DurationMS) * time.Millisecond,
		Errors:         e.Errors,
		Attachments:    e.Attachments,
		Steps:          e.Steps,
		ExpectedStatus: e.ExpectedStatus,
		RetryIndex:     e.RetryIndex,
	}
}

// maxEventSize bounds a single event line; screenshots arrive inline
// as base64 so lines can be large.
const maxEventSize = 64 << 20

// Read parses attempt events from r. Malformed lines are skipped with
// a warning so one bad event cannot lose the run.
func Read(logger zerolog.Logger, r io.Reader) ([]Event, error) {
	var events []Event

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxEventSize)

	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}
		var ev Event
		if err := json.Unmarshal(raw, &ev); err != nil {
			logger.Warn().Err(err).Int("line", line).Msg("Skipping malformed attempt event")
			continue
		}
		events = append(events, ev)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read attempt events: %w", err)
	}

	return events, nil
}

// ReadFile parses attempt events from the file at path.
func ReadFile(logger zerolog.Logger, path string) ([]Event, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open events file: %w", err)
	}
	defer f.Close()
	return Read(logger, f)
}
