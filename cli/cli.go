package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/runledger/runledger/config"
)

const AppName = "runledger"

type App struct {
	logger zerolog.Logger
	cli    *cli.App
}

func New() *App {

	// Set default log level to info
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	logger :=
		log.Output(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339Nano,
		})

	app := &App{
		logger: logger,
		cli: &cli.App{
			Name:  AppName,
			Usage: "Consolidate test runner results and track pass-count trends",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  "verbose",
					Usage: "Enable verbose (debug) logging",
				},
			},
			Before: func(ctx *cli.Context) error {
				if ctx.Bool("verbose") {
					zerolog.SetGlobalLevel(zerolog.DebugLevel)
				}
				return nil
			},
		},
	}
	app.cli.Commands = append(app.cli.Commands, &cli.Command{
		Name:      "report",
		Usage:     "Consolidate an attempt event stream into a report and update the trend ledger",
		ArgsUsage: "EVENTS_FILE",
		Action:    app.report,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to the reporter configuration file",
			},
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Usage:   "Report output directory (overrides config)",
			},
			&cli.StringFlag{
				Name:  "build",
				Usage: "Build identifier for the trend ledger (default: run start timestamp)",
			},
			&cli.BoolFlag{
				Name:  "reset-history",
				Usage: "Discard the persisted trend ledger before this run",
			},
		},
	})
	app.cli.Commands = append(app.cli.Commands, &cli.Command{
		Name:   "trend",
		Usage:  "Show pass-count movement over recent builds",
		Action: app.trend,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to the reporter configuration file",
			},
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Usage:   "Report output directory (overrides config)",
			},
		},
	})
	app.cli.Commands = append(app.cli.Commands, &cli.Command{
		Name:   "show",
		Usage:  "Show the recorded results of the last run",
		Action: app.show,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to the reporter configuration file",
			},
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Usage:   "Report output directory (overrides config)",
			},
		},
	})
	return app
}

func (a *App) Run(args []string) error {
	return a.cli.Run(args)
}

// SetVersion sets the version information for the CLI application
func (a *App) SetVersion(version, commit, date string) {
	a.cli.Version = version
	if commit != "none" && commit != "" {
		a.cli.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version, commit[:8], date)
	}
}

// loadConfig resolves the effective configuration for a command:
// config file if given, defaults otherwise, with flag overrides on
// top. Validation warnings are logged once.
func (a *App) loadConfig(ctx *cli.Context) (*config.Config, error) {
	var cfg *config.Config
	if path := ctx.String("config"); path != "" {
		loaded, warnings, err := config.LoadAndValidate(path)
		if err != nil {
			return nil, err
		}
		for _, w := range warnings {
			a.logger.Warn().Str("config", path).Msg(w)
		}
		cfg = loaded
	} else {
		cfg = config.Default()
	}

	if out := ctx.String("out"); out != "" {
		cfg.Output.Dir = out
	}
	return cfg, nil
}

// historyPath returns the ledger file location, defaulting to a file
// next to the run record.
func historyPath(cfg *config.Config) string {
	if cfg.History.Path != "" {
		return cfg.History.Path
	}
	return filepath.Join(cfg.Output.Dir, "history.json")
}
