package cli

import (
	"io"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/invertedv/covidstates/internal/logging"
)

type loggerConfig struct {
	Level  string
	Format string
}

func (l *loggerConfig) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "Log level (debug, info, warn, error)",
			Category:    "Logging",
			Value:       "info",
			Destination: &l.Level,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "Log format (console, json, auto)",
			Category:    "Logging",
			Value:       "auto",
			Destination: &l.Format,
		},
	}
}

// Configure builds the logger writing to w.
func (l *loggerConfig) Configure(w io.Writer) (*slog.Logger, error) {
	switch l.Level {
	case "debug", "info", "warn", "error", "":
	default:
		return nil, goerr.New("invalid log level", goerr.V("level", l.Level))
	}

	var format logging.Format
	switch l.Format {
	case "console":
		format = logging.FormatConsole
	case "json":
		format = logging.FormatJSON
	case "auto", "":
		format = logging.FormatAuto
	default:
		return nil, goerr.New("invalid log format", goerr.V("format", l.Format))
	}

	return logging.New(logging.ParseLevel(l.Level), w, format), nil
}
