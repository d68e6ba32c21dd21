package cli

// This file renders the trend ledger: pass-count movement over recent
// builds.

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/runledger/runledger/history"
)

func (a *App) trend(ctx *cli.Context) error {
	cfg, err := a.loadConfig(ctx)
	if err != nil {
		return err
	}

	ledger := history.NewLedger(a.logger, historyPath(cfg), cfg.History.Window)
	ledger.Load()

	entries := ledger.Entries()
	if len(entries) == 0 {
		fmt.Println("No history recorded")
		fmt.Printf("Run `%s report` to record the first entry\n", AppName)
		return nil
	}

	fmt.Printf("\n=== Pass Trend (%d builds) ===\n\n", len(entries))
	for i, entry := range entries {
		delta := ""
		if i > 0 {
			delta = "  " + formatDelta(entry.PassedTests-entries[i-1].PassedTests)
		}
		fmt.Printf("%s  %-20s  %d/%d passed%s\n",
			entry.Timestamp.Format("2006-01-02 15:04:05"),
			entry.BuildID, entry.PassedTests, entry.TotalTests, delta)
	}
	fmt.Println()

	return nil
}

// formatDelta renders the pass-count movement against the previous
// build.
func formatDelta(d int) string {
	switch {
	case d > 0:
		return fmt.Sprintf("+%d", d)
	case d < 0:
		return fmt.Sprintf("%d", d)
	default:
		return "="
	}
}
