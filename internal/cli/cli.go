package cli

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/invertedv/covidstates/analysis"
	"github.com/invertedv/covidstates/internal/logging"
)

// Run runs the analysis command. Exploratory output goes to stdout.
func Run(ctx context.Context, args []string) error {
	return run(ctx, args, os.Stdout, analysis.DefaultConfig())
}

func run(ctx context.Context, args []string, w io.Writer, cfg analysis.Config) error {
	var (
		loggerCfg loggerConfig
		logged    bool
	)

	app := &cli.Command{
		Name:  "covidstates",
		Usage: "Exploratory analysis and charts of per-state COVID-19 metrics",
		Flags: loggerCfg.Flags(),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			logger, err := loggerCfg.Configure(w)
			if err != nil {
				return nil, err
			}

			slog.SetDefault(logger)
			return ctxlog.With(ctx, logger), nil
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := analysis.Run(ctx, cfg, w); err != nil {
				ctxlog.From(ctx).Error("Error: "+err.Error(), "error", err)
				logged = true
				return err
			}

			return nil
		},
	}

	if err := app.Run(ctx, args); err != nil {
		// flag and logger setup errors happen before any logger exists
		if !logged {
			logging.New(slog.LevelError, w, logging.FormatAuto).Error("Error: "+err.Error(), "error", err)
		}

		return goerr.Wrap(err, "covidstates failed")
	}

	return nil
}
