package aggregate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runledger/runledger/model"
)

func record(project, title string, status model.Status, retries int) model.ConsolidatedTestRecord {
	return model.ConsolidatedTestRecord{
		Identity: model.TestIdentity{Project: project, File: "spec.ts", Line: 1, Title: title},
		Status:   status,
		Retries:  retries,
	}
}

func TestAggregateCounters(t *testing.T) {
	records := []model.ConsolidatedTestRecord{
		record("chromium", "a", model.StatusPassed, 0),
		record("chromium", "b", model.StatusPassed, 2),
		record("chromium", "c", model.StatusFailed, 0),
		record("firefox", "d", model.StatusTimedOut, 1),
		record("firefox", "e", model.StatusInterrupted, 0),
		record("firefox", "f", model.StatusSkipped, 0),
	}

	counters, _ := Aggregate(records)

	assert.Equal(t, 6, counters.Total)
	assert.Equal(t, 2, counters.Passed)
	// timedOut and interrupted bucket as failed
	assert.Equal(t, 3, counters.Failed)
	assert.Equal(t, 1, counters.Skipped)
	// retried overlaps the other buckets
	assert.Equal(t, 2, counters.Retried)

	assert.Equal(t, counters.Total, counters.Passed+counters.Failed+counters.Skipped)
}

func TestAggregateGroupsByProjectInsertionOrder(t *testing.T) {
	records := []model.ConsolidatedTestRecord{
		record("webkit", "a", model.StatusPassed, 0),
		record("chromium", "b", model.StatusPassed, 0),
		record("webkit", "c", model.StatusFailed, 0),
	}

	_, groups := Aggregate(records)

	require.Len(t, groups, 2)
	assert.Equal(t, "webkit", groups[0].Name)
	assert.Equal(t, "chromium", groups[1].Name)

	require.Len(t, groups[0].Records, 2)
	assert.Equal(t, "a", groups[0].Records[0].Identity.Title)
	assert.Equal(t, "c", groups[0].Records[1].Identity.Title)
}

func TestAggregateEmpty(t *testing.T) {
	counters, groups := Aggregate(nil)
	assert.Zero(t, counters)
	assert.Empty(t, groups)
}

func TestHistoryEntry(t *testing.T) {
	at := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	counters := model.RunCounters{Total: 12, Passed: 9, Failed: 2, Skipped: 1, Retried: 3}

	entry := HistoryEntry("build-42", at, counters)

	assert.Equal(t, "build-42", entry.BuildID)
	assert.Equal(t, 12, entry.TotalTests)
	assert.Equal(t, 9, entry.PassedTests)
	assert.True(t, entry.Timestamp.Equal(at))
}
