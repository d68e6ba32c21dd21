package consolidate

import (
	"sync"

	"github.com/gammazero/workerpool"
	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"

	"github.com/runledger/runledger/model"
)

// Materializer turns one raw attachment into its presentation-ready
// form. Implementations must be safe for concurrent use.
type Materializer interface {
	Materialize(identity model.TestIdentity, retry int, raw model.RawAttachment) (model.MaterializedAttachment, error)
}

// Consolidator merges the ordered attempt list of one test into a
// single consolidated record. Attachment materialization is fanned out
// on a bounded worker pool; the assembled attachment order is always
// attempt order then declaration order, regardless of completion
// order.
type Consolidator struct {
	logger zerolog.Logger
	mat    Materializer
	pool   *workerpool.WorkerPool
}

// NewConsolidator returns a consolidator running at most workers
// materializations concurrently.
func NewConsolidator(logger zerolog.Logger, mat Materializer, workers int) *Consolidator {
	if workers < 1 {
		workers = 1
	}
	return &Consolidator{
		logger: logger,
		mat:    mat,
		pool:   workerpool.New(workers),
	}
}

// Stop releases the worker pool after all submitted work has finished.
func (c *Consolidator) Stop() {
	c.pool.StopWait()
}

type attachmentSlot struct {
	retry int
	raw   model.RawAttachment
}

// Consolidate applies the verdict rules to one identity's attempt
// list. The second return value is false for an empty attempt list,
// which is omitted from output rather than producing a malformed
// record.
func (c *Consolidator) Consolidate(ta TestAttempts) (model.ConsolidatedTestRecord, bool) {
	attempts := ta.Attempts
	if len(attempts) == 0 {
		c.logger.Warn().Str("test", ta.Identity.Title).Msg("Identity with zero attempts, omitting")
		return model.ConsolidatedTestRecord{}, false
	}

	final := attempts[len(attempts)-1]
	status := final.Status
	// A test that was allowed to fail but unexpectedly passed is
	// reported as a failure.
	if final.ExpectedStatus == model.StatusFailed && final.Status == model.StatusPassed {
		status = model.StatusFailed
	}

	rec := model.ConsolidatedTestRecord{
		Identity: ta.Identity,
		Status:   status,
		Retries:  len(attempts) - 1,
		Steps:    NormalizeSteps(final.Steps),
	}

	var slots []attachmentSlot
	for _, attempt := range attempts {
		rec.Duration += attempt.Duration
		for _, msg := range attempt.Errors {
			if msg = stripControl(msg); msg != "" {
				rec.Errors = append(rec.Errors, msg)
			}
		}
		for _, raw := range attempt.Attachments {
			slots = append(slots, attachmentSlot{retry: attempt.RetryIndex, raw: raw})
		}
	}

	rec.Attachments = c.materializeAll(ta.Identity, slots)
	return rec, true
}

// materializeAll runs every materialization on the pool and assembles
// the results back into declaration order. A failed materialization
// degrades that attachment only; siblings are kept and the errors are
// logged as one batch.
func (c *Consolidator) materializeAll(identity model.TestIdentity, slots []attachmentSlot) []model.MaterializedAttachment {
	if len(slots) == 0 {
		return nil
	}

	results := make([]model.MaterializedAttachment, len(slots))
	errs := make([]error, len(slots))

	var wg sync.WaitGroup
	for i, slot := range slots {
		i, slot := i, slot
		wg.Add(1)
		c.pool.Submit(func() {
			defer wg.Done()
			results[i], errs[i] = c.mat.Materialize(identity, slot.retry, slot.raw)
		})
	}
	wg.Wait()

	var merr *multierror.Error
	for _, err := range errs {
		if err != nil {
			merr = multierror.Append(merr, err)
		}
	}
	if merr != nil {
		c.logger.Warn().Err(merr).Str("test", identity.Title).Msg("Some attachments degraded")
	}

	return results
}
