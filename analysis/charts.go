package analysis

import (
	"context"
	"path/filepath"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/vg"

	"github.com/invertedv/covidstates/df"
)

// ChartKind is the type of chart a ChartConfig renders.
type ChartKind int

const (
	KindBar ChartKind = iota
	KindHeatMap
	KindScatter
	KindBox
)

func (k ChartKind) String() string {
	switch k {
	case KindBar:
		return "bar"
	case KindHeatMap:
		return "heatmap"
	case KindScatter:
		return "scatter"
	case KindBox:
		return "box"
	default:
		return "unknown"
	}
}

// ChartConfig fixes everything about one chart: data selection, text, size, colors and output file.
type ChartConfig struct {
	Kind   ChartKind
	File   string
	Title  string
	XLabel string
	YLabel string

	// figure size in inches
	Width  float64
	Height float64

	Palette func() palette.ColorMap
	Alpha   float64

	// bar charts: the Top rows by SortBy (descending), showing Value per Category
	Category string
	SortBy   string
	Value    string
	Top      int

	// scatter charts: one point per row, one color per Hue value
	X      string
	Y      string
	Hue    string
	LogX   bool
	Radius float64

	// heat maps and box plots
	Columns []string

	// heat maps: color range and cell annotation format
	ZMin     float64
	ZMax     float64
	Annotate string

	XRotation float64
	Grid      bool
}

func barChart(file, title, ylabel, sortBy, value string, pal func() palette.ColorMap) ChartConfig {
	return ChartConfig{
		Kind: KindBar, File: file, Title: title, XLabel: "State", YLabel: ylabel,
		Width: 14, Height: 8, Palette: pal, Alpha: 1,
		Category: State, SortBy: sortBy, Value: value, Top: 10,
		XRotation: 45,
	}
}

func scatterChart(file, title, xlabel, ylabel, x, y string, logX bool) ChartConfig {
	return ChartConfig{
		Kind: KindScatter, File: file, Title: title, XLabel: xlabel, YLabel: ylabel,
		Width: 10, Height: 7, Palette: moreland.ExtendedKindlmann, Alpha: 0.7,
		X: x, Y: y, Hue: State, LogX: logX, Radius: 5.6, Grid: logX,
	}
}

func smoothBlueRed() palette.ColorMap { return moreland.SmoothBlueRed() }

func smoothBlueTan() palette.ColorMap { return moreland.SmoothBlueTan() }

// DefaultCharts are the charts of the analysis, in render order.
// The deaths chart deliberately shows the states with the most infections, so the two charts line up.
func DefaultCharts() []ChartConfig {
	return []ChartConfig{
		barChart("top_10_infected_states.png", "Top 10 States by Total Infected Cases", "Total Infected Cases",
			Infected, Infected, moreland.Kindlmann),
		barChart("top_10_death_states.png", "Top 10 States by Total Deaths", "Total Deaths",
			Infected, Deaths, moreland.BlackBody),
		barChart("top_10_infection_rate_states.png", "Top 10 States by Infection Rate (%)", "Infection Rate (%)",
			InfectionRate, InfectionRate, moreland.ExtendedBlackBody),
		barChart("top_10_mortality_rate_states.png", "Top 10 States by Mortality Rate (%)", "Mortality Rate (%)",
			MortalityRate, MortalityRate, smoothBlueTan),
		barChart("top_10_test_positivity_rate_states.png", "Top 10 States by Test Positivity Rate (%)",
			"Test Positivity Rate (%)", TestPositivityRate, TestPositivityRate, moreland.ExtendedKindlmann),
		{
			Kind: KindHeatMap, File: "correlation_matrix.png",
			Title: "Correlation Matrix of COVID-19 Metrics and State Factors",
			Width: 18, Height: 15, Palette: smoothBlueRed, Alpha: 1,
			Columns: CorrelationColumns, ZMin: -1, ZMax: 1, Annotate: "%.2f", XRotation: 90,
		},
		scatterChart("pop_density_vs_infection_rate.png", "Population Density vs. Infection Rate",
			"Population Density", "Infection Rate (%)", PopDensity, InfectionRate, true),
		scatterChart("smoking_rate_vs_mortality_rate.png", "Smoking Rate vs. Mortality Rate",
			"Smoking Rate (%)", "Mortality Rate (%)", Smoking, MortalityRate, false),
		{
			Kind: KindBox, File: "rates_distribution_boxplot.png",
			Title: "Distribution of COVID-19 Rates Across States", YLabel: "Percentage (%)",
			Width: 15, Height: 6, Palette: moreland.Kindlmann, Alpha: 1,
			Columns: RateColumns,
		},
	}
}

// RenderCharts renders each chart in turn into outDir. The first failure stops the run; charts
// already written stay on disk.
func RenderCharts(ctx context.Context, table *df.DF, outDir string, charts []ChartConfig) error {
	for _, cfg := range charts {
		if e := ctx.Err(); e != nil {
			return goerr.Wrap(e, "chart rendering interrupted", goerr.V("next", cfg.File))
		}

		if e := Render(table, outDir, cfg); e != nil {
			return e
		}

		ctxlog.From(ctx).Debug("chart saved", "file", cfg.File, "kind", cfg.Kind.String())
	}

	return nil
}

// Render draws one chart from table and writes it to outDir/cfg.File. The figure is released
// before Render returns, whether or not it succeeds.
func Render(table *df.DF, outDir string, cfg ChartConfig) error {
	opts := []df.Opt{
		df.WithWidth(cfg.Width), df.WithHeight(cfg.Height),
		df.WithTitle(cfg.Title), df.WithXlabel(cfg.XLabel), df.WithYlabel(cfg.YLabel),
		df.WithXrotation(cfg.XRotation),
	}

	if cfg.LogX {
		opts = append(opts, df.WithLogX())
	}

	if cfg.Grid {
		opts = append(opts, df.WithGrid())
	}

	if cfg.Kind == KindScatter {
		opts = append(opts, df.WithLegend(true))
	}

	p := df.NewPlot(opts...)
	defer p.Close()

	var e error
	switch cfg.Kind {
	case KindBar:
		e = drawBars(p, table, cfg)
	case KindHeatMap:
		e = drawHeatMap(p, table, cfg)
	case KindScatter:
		e = drawScatter(p, table, cfg)
	case KindBox:
		e = drawBoxes(p, table, cfg)
	default:
		e = goerr.New("unknown chart kind")
	}

	if e != nil {
		return goerr.Wrap(e, "cannot draw chart", goerr.V("file", cfg.File), goerr.V("kind", cfg.Kind.String()))
	}

	if e := p.Save(filepath.Join(outDir, cfg.File), "png"); e != nil {
		return goerr.Wrap(e, "cannot save chart", goerr.V("file", cfg.File))
	}

	return nil
}

// *********** Chart Kinds ***********

// topRows returns the cfg.Top rows of table with the largest cfg.SortBy, largest first, keeping
// only the cfg.Category and cfg.Value columns. table is not modified.
func topRows(table *df.DF, cfg ChartConfig) (*df.DF, error) {
	var (
		view *df.DF
		e    error
	)
	if view, e = table.KeepColumns(cfg.Category, cfg.SortBy); e != nil {
		return nil, e
	}

	if cfg.Value != cfg.SortBy {
		var val df.Column
		if val, e = table.Column(cfg.Value); e != nil {
			return nil, e
		}

		if e = view.AppendColumn(val, false); e != nil {
			return nil, e
		}
	}

	if e = view.Sort(false, cfg.SortBy); e != nil {
		return nil, e
	}

	view = view.Head(cfg.Top)
	if cfg.Value != cfg.SortBy {
		if e = view.DropColumns(cfg.SortBy); e != nil {
			return nil, e
		}
	}

	return view, nil
}

func drawBars(p *df.Plot, table *df.DF, cfg ChartConfig) error {
	var (
		view     *df.DF
		cat, val df.Column
		e        error
	)
	if view, e = topRows(table, cfg); e != nil {
		return e
	}

	if cat, e = view.Column(cfg.Category); e != nil {
		return e
	}

	if val, e = view.Column(cfg.Value); e != nil {
		return e
	}

	return p.PlotBars(cat, val, df.ColorsFrom(cfg.Palette(), view.RowCount(), cfg.Alpha))
}

func drawHeatMap(p *df.Plot, table *df.DF, cfg ChartConfig) error {
	corr, e := table.Corr(cfg.Columns...)
	if e != nil {
		return e
	}

	cm := cfg.Palette()
	cm.SetMin(cfg.ZMin)
	cm.SetMax(cfg.ZMax)

	return p.PlotHeatMap(cfg.Columns, corr, cm.Palette(255), cfg.ZMin, cfg.ZMax, cfg.Annotate)
}

func drawScatter(p *df.Plot, table *df.DF, cfg ChartConfig) error {
	var (
		x, y, hue df.Column
		e         error
	)
	if x, e = table.Column(cfg.X); e != nil {
		return e
	}

	if y, e = table.Column(cfg.Y); e != nil {
		return e
	}

	if hue, e = table.Column(cfg.Hue); e != nil {
		return e
	}

	return p.PlotScatter(x, y, hue, df.ColorsFrom(cfg.Palette(), table.RowCount(), cfg.Alpha), vg.Points(cfg.Radius))
}

func drawBoxes(p *df.Plot, table *df.DF, cfg ChartConfig) error {
	var cols []df.Column
	for _, name := range cfg.Columns {
		col, e := table.Column(name)
		if e != nil {
			return e
		}

		cols = append(cols, col)
	}

	return p.PlotBoxes(df.ColorsFrom(cfg.Palette(), len(cols), cfg.Alpha), cols...)
}
