package analysis

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/invertedv/covidstates/df"
)

// ErrLoad marks a failure to load the input dataset. Nothing after the load runs.
var ErrLoad = errors.New("dataset could not be loaded")

// Config is everything a run needs. The analysis itself has no other settings.
type Config struct {
	InputPath string
	OutputDir string
	// Workbook is the file name of the summary workbook inside OutputDir; empty skips it.
	Workbook string
	HeadRows int
	Charts   []ChartConfig
}

func DefaultConfig() Config {
	return Config{
		InputPath: "COVID19_state.csv",
		OutputDir: "plots",
		Workbook:  "covid_state_summary.xlsx",
		HeadRows:  5,
		Charts:    DefaultCharts(),
	}
}

// Run executes the analysis: output setup, load, explore, derive, charts, workbook. Exploratory
// output goes to w, status goes to the context logger.
func Run(ctx context.Context, cfg Config, w io.Writer) error {
	logger := ctxlog.From(ctx)

	created, e := EnsureDir(cfg.OutputDir)
	if e != nil {
		return e
	}

	if created {
		logger.Info("created a new folder: "+cfg.OutputDir, "dir", cfg.OutputDir)
	}

	var table *df.DF
	if table, e = Load(cfg.InputPath); e != nil {
		return e
	}
	logger.Info("Dataset Loaded successfully", "path", cfg.InputPath,
		"rows", table.RowCount(), "columns", table.ColumnCount())

	if e = Explore(w, table, cfg.HeadRows); e != nil {
		return e
	}

	if e = Derive(table); e != nil {
		return e
	}

	if e = PreviewFeatures(w, table, cfg.HeadRows); e != nil {
		return e
	}

	if e = RenderCharts(ctx, table, cfg.OutputDir, cfg.Charts); e != nil {
		return e
	}

	if cfg.Workbook != "" {
		path := filepath.Join(cfg.OutputDir, cfg.Workbook)
		if e = WriteWorkbook(path, table); e != nil {
			return e
		}
		logger.Info("summary workbook saved", "path", path)
	}

	logger.Info(fmt.Sprintf("Analysis complete. All plots saved to the '%s' directory.", cfg.OutputDir),
		"charts", len(cfg.Charts))

	return nil
}

// EnsureDir creates dir if it doesn't exist. created reports whether it had to.
func EnsureDir(dir string) (created bool, err error) {
	info, e := os.Stat(dir)
	switch {
	case e == nil && info.IsDir():
		return false, nil
	case e == nil:
		return false, goerr.New("output path exists and is not a directory", goerr.V("dir", dir))
	case !errors.Is(e, os.ErrNotExist):
		return false, goerr.Wrap(e, "cannot stat output directory", goerr.V("dir", dir))
	}

	if e := os.MkdirAll(dir, 0o755); e != nil {
		return false, goerr.Wrap(e, "cannot create output directory", goerr.V("dir", dir))
	}

	return true, nil
}

// Load reads the state table from the CSV file at path. Any failure wraps ErrLoad.
func Load(path string) (*df.DF, error) {
	var (
		f     *df.Files
		table *df.DF
		e     error
	)

	if f, e = df.NewFiles(); e != nil {
		return nil, goerr.Wrap(fmt.Errorf("%w: %w", ErrLoad, e), "cannot set up reader", goerr.V("path", path))
	}

	if e = f.Open(path); e != nil {
		return nil, goerr.Wrap(fmt.Errorf("%w: %w", ErrLoad, e), "cannot open dataset", goerr.V("path", path))
	}

	if table, e = df.FileLoad(f); e != nil {
		return nil, goerr.Wrap(fmt.Errorf("%w: %w", ErrLoad, e), "cannot parse dataset", goerr.V("path", path))
	}

	return table, nil
}
