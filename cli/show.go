package cli

// This file re-renders a previously recorded run from its durable run
// record.

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/runledger/runledger/runstore"
)

func (a *App) show(ctx *cli.Context) error {
	cfg, err := a.loadConfig(ctx)
	if err != nil {
		return err
	}

	record, err := runstore.Load(cfg.Output.Dir)
	if err != nil {
		return err
	}

	shortID := record.ID
	if len(shortID) > 8 {
		shortID = shortID[:8]
	}
	fmt.Printf("Run %s", shortID)
	if record.BuildID != "" {
		fmt.Printf("  build=%s", record.BuildID)
	}
	fmt.Printf("  started=%s\n", record.StartedAt.Format("2006-01-02 15:04:05"))

	a.printRun(record)
	return nil
}
