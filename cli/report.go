package cli

// This file wires one run through the pipeline: ingest attempt
// events, consolidate per test, aggregate, materialize attachments,
// persist the run record and fold the run into the trend ledger.

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"

	"github.com/runledger/runledger/aggregate"
	"github.com/runledger/runledger/attach"
	"github.com/runledger/runledger/consolidate"
	"github.com/runledger/runledger/history"
	"github.com/runledger/runledger/ingest"
	"github.com/runledger/runledger/model"
	"github.com/runledger/runledger/runstore"
)

func (a *App) report(ctx *cli.Context) error {
	startTime := time.Now()

	cfg, err := a.loadConfig(ctx)
	if err != nil {
		return err
	}
	if ctx.Bool("reset-history") {
		cfg.History.Reset = true
	}

	eventsPath := ctx.Args().First()
	if eventsPath == "" {
		return fmt.Errorf("no events file specified: please provide the runner's attempt event stream")
	}

	buildID := ctx.String("build")
	if buildID == "" {
		buildID = startTime.Format("20060102-150405")
	}

	events, err := ingest.ReadFile(a.logger, eventsPath)
	if err != nil {
		return err
	}
	a.logger.Debug().Int("events", len(events)).Str("path", eventsPath).Msg("Read attempt events")

	acc := consolidate.NewAccumulator()
	for _, ev := range events {
		acc.Record(ev.Identity, ev.Attempt())
	}

	mat := attach.New(a.logger, attach.Options{
		Mode:           attach.Mode(cfg.Attachments.Mode),
		CompressImages: cfg.Attachments.CompressImages,
		Quality:        cfg.Attachments.ImageQuality,
		OutDir:         cfg.Output.Dir,
	})
	cons := consolidate.NewConsolidator(a.logger, mat, cfg.Workers)
	defer cons.Stop()

	records := make([]model.ConsolidatedTestRecord, 0, acc.Len())
	for _, ta := range acc.Tests() {
		if rec, ok := cons.Consolidate(ta); ok {
			records = append(records, rec)
		}
	}

	counters, groups := aggregate.Aggregate(records)

	record := model.RunRecord{
		ID:        uuid.NewString(),
		BuildID:   buildID,
		StartedAt: startTime,
		Duration:  time.Since(startTime),
		Counters:  counters,
		Groups:    groups,
	}
	if err := runstore.Write(cfg.Output.Dir, record); err != nil {
		return err
	}

	// Fold this run into the trend ledger. History is advisory, so a
	// persistence failure degrades the trend but not the report.
	ledger := history.NewLedger(a.logger, historyPath(cfg), cfg.History.Window)
	if cfg.History.Reset {
		ledger.Reset()
	}
	ledger.Load()
	ledger.Upsert(aggregate.HistoryEntry(buildID, startTime, counters))
	ledger.Normalize()
	if err := ledger.Persist(); err != nil {
		a.logger.Warn().Err(err).Msg("Failed to persist trend ledger")
	}

	a.printRun(record)

	if counters.Failed > 0 {
		return cli.Exit(fmt.Sprintf("%d of %d tests failed", counters.Failed, counters.Total), 1)
	}
	return nil
}

// printRun renders a run record as a terminal summary.
func (a *App) printRun(record model.RunRecord) {
	fmt.Printf("\n=== Test Results (%d total) ===\n\n", record.Counters.Total)

	for _, group := range record.Groups {
		fmt.Printf("%s\n", group.Name)
		for _, rec := range group.Records {
			status := statusGlyph(rec.Status)
			fmt.Printf("  %s %s  [%s]", status, rec.Identity.Title, rec.Duration.Round(time.Millisecond))
			if rec.Retried() {
				fmt.Printf("  (retried %dx)", rec.Retries)
			}
			fmt.Println()
			if rec.Status.Bucket() == model.StatusFailed {
				fmt.Printf("      %s:%d\n", rec.Identity.File, rec.Identity.Line)
			}
		}
		fmt.Println()
	}

	c := record.Counters
	fmt.Printf("%d passed, %d failed, %d skipped", c.Passed, c.Failed, c.Skipped)
	if c.Retried > 0 {
		fmt.Printf(" (%d retried)", c.Retried)
	}
	fmt.Printf("  [%s]\n", record.Duration.Round(time.Millisecond))
}

func statusGlyph(status model.Status) string {
	switch status.Bucket() {
	case model.StatusPassed:
		return "✓"
	case model.StatusSkipped:
		return "-"
	default:
		return "✗"
	}
}
