package df

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

const (
	defaultWidth  = 10.0
	defaultHeight = 7.0
	defaultDPI    = 100
)

// Plot is a single figure. Build it with NewPlot, add data, Save it, then Close it.
type Plot struct {
	Plt *plot.Plot

	width  vg.Length
	height vg.Length
	dpi    int
	logX   bool
	legend bool

	// key is drawn to the right of the data area rather than over it
	key        plot.Legend
	keyEntries int
}

type Opt func(plot *Plot) *Plot

func NewPlot(opt ...Opt) *Plot {
	p := &Plot{
		Plt:    plot.New(),
		width:  defaultWidth * vg.Inch,
		height: defaultHeight * vg.Inch,
		dpi:    defaultDPI,
		legend: true,
		key:    plot.NewLegend(),
	}
	p.key.Top = true
	p.key.Left = true

	for _, o := range opt {
		o(p)
	}

	return p
}

// WithWidth sets the figure width in inches.
func WithWidth(w float64) Opt {
	if w <= 0.0 {
		panic(fmt.Errorf("non-positive width"))
	}
	return func(p *Plot) *Plot {
		p.width = vg.Length(w) * vg.Inch
		return p
	}
}

// WithHeight sets the figure height in inches.
func WithHeight(h float64) Opt {
	if h <= 0.0 {
		panic(fmt.Errorf("non-positive height"))
	}
	return func(p *Plot) *Plot {
		p.height = vg.Length(h) * vg.Inch
		return p
	}
}

func WithDPI(dpi int) Opt {
	if dpi <= 0 {
		panic(fmt.Errorf("non-positive dpi"))
	}
	return func(p *Plot) *Plot {
		p.dpi = dpi
		return p
	}
}

func WithTitle(title string) Opt {
	return func(p *Plot) *Plot {
		p.Plt.Title.Text = title
		p.Plt.Title.TextStyle.Font.Size = vg.Points(16)
		return p
	}
}

func WithXlabel(label string) Opt {
	return func(p *Plot) *Plot { p.Plt.X.Label.Text = label; return p }
}

func WithYlabel(label string) Opt {
	return func(p *Plot) *Plot { p.Plt.Y.Label.Text = label; return p }
}

// WithLegend controls whether scatter points get legend entries. The legend sits right of the data area.
func WithLegend(show bool) Opt {
	return func(p *Plot) *Plot {
		p.legend = show
		return p
	}
}

// WithXrotation rotates the x tick labels by deg degrees. Rotated labels are anchored at their right end.
func WithXrotation(deg float64) Opt {
	return func(p *Plot) *Plot {
		p.Plt.X.Tick.Label.Rotation = deg * math.Pi / 180
		if deg != 0 {
			p.Plt.X.Tick.Label.XAlign = draw.XRight
			p.Plt.X.Tick.Label.YAlign = draw.YCenter
		}
		return p
	}
}

// WithLogX puts the x-axis on a log10 scale. Non-positive x values are left off the plot.
func WithLogX() Opt {
	return func(p *Plot) *Plot {
		p.logX = true
		p.Plt.X.Scale = plot.LogScale{}
		p.Plt.X.Tick.Marker = plot.LogTicks{Prec: -1}
		return p
	}
}

func WithGrid() Opt {
	return func(p *Plot) *Plot {
		p.Plt.Add(plotter.NewGrid())
		return p
	}
}

// *********** Plotting ***********

// PlotBars draws one bar per row of val, labeled by cat. colors are used per bar and recycled.
func (p *Plot) PlotBars(cat, val Column, colors []color.Color) error {
	var (
		y []float64
		e error
	)

	if y, e = Float(val); e != nil {
		return e
	}

	if cat.Len() != len(y) {
		return fmt.Errorf("bar labels (%d) and values (%d) differ in length", cat.Len(), len(y))
	}

	if len(y) == 0 {
		return fmt.Errorf("no bars to plot")
	}

	width := p.width * 6 / 10 / vg.Length(len(y))
	for ind, yv := range y {
		// missing values keep their label but get no bar
		if math.IsNaN(yv) {
			continue
		}

		var bar *plotter.BarChart
		if bar, e = plotter.NewBarChart(plotter.Values{yv}, width); e != nil {
			return fmt.Errorf("bar %d: %w", ind, e)
		}

		bar.XMin = float64(ind)
		bar.LineStyle.Width = vg.Length(0)
		bar.Color = pickColor(colors, ind)
		p.Plt.Add(bar)
	}

	p.Plt.NominalX(Strings(cat)...)

	return nil
}

// PlotScatter draws one point per row, each in its own series named by hue so that it gets a legend entry.
func (p *Plot) PlotScatter(x, y, hue Column, colors []color.Color, radius vg.Length) error {
	var (
		xs, ys []float64
		e      error
	)

	if xs, e = Float(x); e != nil {
		return e
	}

	if ys, e = Float(y); e != nil {
		return e
	}

	if len(xs) != len(ys) || hue.Len() != len(xs) {
		return fmt.Errorf("scatter columns differ in length")
	}

	names := Strings(hue)
	points := 0
	for ind := range xs {
		if math.IsNaN(xs[ind]) || math.IsNaN(ys[ind]) || (p.logX && xs[ind] <= 0) {
			continue
		}

		var sc *plotter.Scatter
		if sc, e = plotter.NewScatter(plotter.XYs{{X: xs[ind], Y: ys[ind]}}); e != nil {
			return fmt.Errorf("point %s: %w", names[ind], e)
		}

		sc.GlyphStyle.Shape = draw.CircleGlyph{}
		sc.GlyphStyle.Radius = radius
		sc.GlyphStyle.Color = pickColor(colors, ind)
		p.Plt.Add(sc)
		if p.legend {
			p.key.Add(names[ind], sc)
			p.keyEntries++
		}
		points++
	}

	if points == 0 {
		return fmt.Errorf("no points to plot for %s vs %s", x.Name(), y.Name())
	}

	// a log axis can't be padded below zero, so widen a degenerate range by a decade each way
	if p.logX && p.Plt.X.Min == p.Plt.X.Max {
		p.Plt.X.Min /= 10
		p.Plt.X.Max *= 10
	}

	if len(names) > 20 {
		p.key.TextStyle.Font.Size = vg.Points(6)
	}

	return nil
}

// PlotBoxes draws a box plot for each column, side by side. NaNs are dropped.
func (p *Plot) PlotBoxes(colors []color.Color, cols ...Column) error {
	if len(cols) == 0 {
		return fmt.Errorf("no columns for box plot")
	}

	width := p.width * 4 / 10 / vg.Length(len(cols))
	var names []string
	for ind, col := range cols {
		var (
			x []float64
			e error
		)

		if x, e = Float(col); e != nil {
			return e
		}

		if x = dropNaN(x); len(x) == 0 {
			return fmt.Errorf("column %s has no values for box plot", col.Name())
		}

		var box *plotter.BoxPlot
		if box, e = plotter.NewBoxPlot(width, float64(ind), plotter.Values(x)); e != nil {
			return fmt.Errorf("box %s: %w", col.Name(), e)
		}

		box.FillColor = pickColor(colors, ind)
		p.Plt.Add(box)
		names = append(names, col.Name())
	}

	p.Plt.NominalX(names...)

	return nil
}

// PlotHeatMap draws the square matrix z with row/column labels names, first row at the top.
// Colors span [zMin, zMax]. If format is not empty each cell is annotated with its value.
func (p *Plot) PlotHeatMap(names []string, z [][]float64, pal palette.Palette, zMin, zMax float64, format string) error {
	n := len(names)
	if n == 0 || len(z) != n {
		return fmt.Errorf("heat map needs a %d x %d matrix", n, n)
	}

	for _, row := range z {
		if len(row) != n {
			return fmt.Errorf("heat map needs a %d x %d matrix", n, n)
		}
	}

	hm := plotter.NewHeatMap(grid{z: z}, pal)
	hm.Min, hm.Max = zMin, zMax
	hm.NaN = color.Gray{Y: 200}
	if cols := pal.Colors(); len(cols) > 0 {
		hm.Underflow, hm.Overflow = cols[0], cols[len(cols)-1]
	}
	p.Plt.Add(hm)

	if format != "" {
		var (
			xys    plotter.XYs
			labels []string
		)

		for r := 0; r < n; r++ {
			for c := 0; c < n; c++ {
				xys = append(xys, plotter.XY{X: float64(c), Y: float64(n - 1 - r)})
				labels = append(labels, fmt.Sprintf(format, z[r][c]))
			}
		}

		lbls, e := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: labels})
		if e != nil {
			return e
		}

		for ind := range lbls.TextStyle {
			lbls.TextStyle[ind].Font.Size = vg.Points(7)
			lbls.TextStyle[ind].XAlign = draw.XCenter
			lbls.TextStyle[ind].YAlign = draw.YCenter
		}

		p.Plt.Add(lbls)
	}

	yNames := make([]string, n)
	for ind, nm := range names {
		yNames[n-1-ind] = nm
	}

	p.Plt.NominalX(names...)
	p.Plt.NominalY(yNames...)

	return nil
}

// *********** Output ***********

// Save draws the plot onto a fresh canvas and writes it to fileName. format is png, jpg or tiff.
func (p *Plot) Save(fileName, format string) error {
	if p.Plt == nil {
		return fmt.Errorf("plot is closed")
	}

	c := vgimg.NewWith(vgimg.UseWH(p.width, p.height), vgimg.UseDPI(p.dpi))
	p.draw(draw.New(c))

	var wt io.WriterTo
	switch strings.ToLower(format) {
	case "png":
		wt = vgimg.PngCanvas{Canvas: c}
	case "jpg", "jpeg":
		wt = vgimg.JpegCanvas{Canvas: c}
	case "tif", "tiff":
		wt = vgimg.TiffCanvas{Canvas: c}
	default:
		return fmt.Errorf("unsupported image format %s", format)
	}

	var (
		f *os.File
		e error
	)
	if f, e = os.Create(fileName); e != nil {
		return e
	}

	if _, e = wt.WriteTo(f); e != nil {
		_ = f.Close()
		return e
	}

	return f.Close()
}

// draw renders the plot onto dc, reserving a strip on the right for the legend if it has entries.
func (p *Plot) draw(dc draw.Canvas) {
	if p.keyEntries == 0 {
		p.Plt.Draw(dc)
		return
	}

	const gap = vg.Length(10)
	r := p.key.Rectangle(dc)
	w := r.Max.X - r.Min.X + 2*gap
	if maxW := (dc.Max.X - dc.Min.X) / 3; w > maxW {
		w = maxW
	}

	p.Plt.Draw(draw.Crop(dc, 0, -w, 0, 0))
	p.key.Draw(draw.Crop(dc, dc.Max.X-dc.Min.X-w+gap, 0, 0, -3*gap))
}

// Close releases the figure. The Plot can't be used after Close.
func (p *Plot) Close() {
	p.Plt = nil
}

// *********** Helpers ***********

// grid adapts a square matrix to plotter.GridXYZ with row 0 drawn at the top.
type grid struct {
	z [][]float64
}

func (g grid) Dims() (c, r int) { return len(g.z[0]), len(g.z) }

func (g grid) Z(c, r int) float64 { return g.z[len(g.z)-1-r][c] }

func (g grid) X(c int) float64 { return float64(c) }

func (g grid) Y(r int) float64 { return float64(r) }

func pickColor(colors []color.Color, ind int) color.Color {
	if len(colors) == 0 {
		return color.Black
	}

	return colors[ind%len(colors)]
}

// ColorsFrom samples n evenly spaced colors from cm, applying alpha (0 to 1).
func ColorsFrom(cm palette.ColorMap, n int, alpha float64) []color.Color {
	if n <= 0 {
		return nil
	}

	cm.SetMin(0)
	cm.SetMax(1)

	m := n
	if m < 2 {
		m = 2
	}

	cols := cm.Palette(m).Colors()[:n]
	if alpha >= 1 {
		return cols
	}

	out := make([]color.Color, n)
	for ind, c := range cols {
		nc := color.NRGBAModel.Convert(c).(color.NRGBA)
		nc.A = uint8(math.Round(alpha * 255))
		out[ind] = nc
	}

	return out
}
