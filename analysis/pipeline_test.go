package analysis

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T, input string) Config {
	cfg := DefaultConfig()
	cfg.InputPath = input
	cfg.OutputDir = filepath.Join(t.TempDir(), "plots")

	return cfg
}

func listFiles(t *testing.T, dir, ext string) []string {
	t.Helper()
	entries, e := os.ReadDir(dir)
	require.Nil(t, e)

	var files []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ext) {
			files = append(files, entry.Name())
		}
	}

	return files
}

func TestRun(t *testing.T) {
	cfg := testConfig(t, writeStates(t, 3))

	var buf bytes.Buffer
	require.Nil(t, Run(context.Background(), cfg, &buf))

	pngs := listFiles(t, cfg.OutputDir, ".png")
	assert.Len(t, pngs, 9)
	for _, c := range cfg.Charts {
		fi, e := os.Stat(filepath.Join(cfg.OutputDir, c.File))
		require.Nil(t, e, c.File)
		assert.Greater(t, fi.Size(), int64(0), c.File)
	}

	assert.Len(t, listFiles(t, cfg.OutputDir, ".xlsx"), 1)
	assert.Contains(t, buf.String(), "---missing values count---")
	assert.Contains(t, buf.String(), MortalityRate)

	// a second run reuses the folder and overwrites the charts
	require.Nil(t, Run(context.Background(), cfg, &buf))
	assert.Len(t, listFiles(t, cfg.OutputDir, ".png"), 9)
}

func TestRunMissingInput(t *testing.T) {
	cfg := testConfig(t, filepath.Join(t.TempDir(), "COVID19_state.csv"))

	var buf bytes.Buffer
	e := Run(context.Background(), cfg, &buf)
	assert.ErrorIs(t, e, ErrLoad)
	assert.Empty(t, buf.String())

	// the folder is made before the load fails, but nothing is drawn
	assert.Empty(t, listFiles(t, cfg.OutputDir, ".png"))
}

func TestRunCanceled(t *testing.T) {
	cfg := testConfig(t, writeStates(t, 3))
	cfg.Workbook = ""

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	assert.ErrorIs(t, Run(ctx, cfg, &buf), context.Canceled)
	assert.Empty(t, listFiles(t, cfg.OutputDir, ".png"))
}

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")

	created, e := EnsureDir(dir)
	require.Nil(t, e)
	assert.True(t, created)

	created, e = EnsureDir(dir)
	require.Nil(t, e)
	assert.False(t, created)

	file := filepath.Join(dir, "taken")
	require.Nil(t, os.WriteFile(file, []byte("x"), 0o644))
	_, e = EnsureDir(file)
	assert.NotNil(t, e)
}

func TestRenderFewStates(t *testing.T) {
	table := loadStates(t, 2)
	require.Nil(t, Derive(table))
	dir := t.TempDir()

	for _, c := range DefaultCharts() {
		require.Nil(t, Render(table, dir, c), c.File)
	}

	assert.Len(t, listFiles(t, dir, ".png"), 9)

	bad := DefaultCharts()[0]
	bad.Value = "nope"
	assert.NotNil(t, Render(table, dir, bad))
}
