package aggregate

import (
	"time"

	"github.com/runledger/runledger/model"
)

// Aggregate folds all consolidated records of one run into counters
// and groups them by project, preserving per-group insertion order.
// Timeouts and interrupts count into the failed bucket.
func Aggregate(records []model.ConsolidatedTestRecord) (model.RunCounters, []model.Group) {
	var counters model.RunCounters
	var groups []model.Group
	index := make(map[string]int)

	for _, rec := range records {
		counters.Total++
		switch rec.Status.Bucket() {
		case model.StatusPassed:
			counters.Passed++
		case model.StatusSkipped:
			counters.Skipped++
		default:
			counters.Failed++
		}
		if rec.Retried() {
			counters.Retried++
		}

		name := rec.Identity.Project
		i, ok := index[name]
		if !ok {
			i = len(groups)
			index[name] = i
			groups = append(groups, model.Group{Name: name})
		}
		groups[i].Records = append(groups[i].Records, rec)
	}

	return counters, groups
}

// HistoryEntry summarizes a run's counters as the ledger entry for the
// given build.
func HistoryEntry(buildID string, at time.Time, counters model.RunCounters) model.HistoryEntry {
	return model.HistoryEntry{
		BuildID:     buildID,
		TotalTests:  counters.Total,
		PassedTests: counters.Passed,
		Timestamp:   at,
	}
}
