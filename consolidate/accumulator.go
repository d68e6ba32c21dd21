package consolidate

import "github.com/runledger/runledger/model"

// TestAttempts is the ordered attempt list collected for one identity.
type TestAttempts struct {
	Identity model.TestIdentity
	Attempts []model.Attempt
}

// Accumulator groups incoming attempt events by test identity,
// preserving arrival order. It does not decide verdicts; it is a pure
// append structure owned by a single run.
type Accumulator struct {
	order   []string
	byKey   map[string]int
	entries []TestAttempts
}

// NewAccumulator returns an empty accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{byKey: make(map[string]int)}
}

// Record appends attempt to the list for identity, creating the list
// on first sight. Retries are expected to arrive in increasing retry
// index order; the accumulator does not re-sort.
func (a *Accumulator) Record(identity model.TestIdentity, attempt model.Attempt) {
	key := identity.Key()
	idx, ok := a.byKey[key]
	if !ok {
		idx = len(a.entries)
		a.byKey[key] = idx
		a.order = append(a.order, key)
		a.entries = append(a.entries, TestAttempts{Identity: identity})
	}
	a.entries[idx].Attempts = append(a.entries[idx].Attempts, attempt)
}

// Tests returns the accumulated attempt lists in first-seen identity
// order.
func (a *Accumulator) Tests() []TestAttempts {
	return a.entries
}

// Len returns the number of distinct identities seen so far.
func (a *Accumulator) Len() int {
	return len(a.entries)
}
