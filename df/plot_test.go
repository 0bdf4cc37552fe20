package df

import (
	"image/color"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/vg"
)

func checkFile(t *testing.T, fileName string) {
	t.Helper()
	fi, e := os.Stat(fileName)
	require.Nil(t, e)
	assert.Greater(t, fi.Size(), int64(0))
}

func TestPlotBars(t *testing.T) {
	dfx := testDF()
	z, _ := dfx.Column("z")
	y, _ := dfx.Column("y")

	p := NewPlot(WithTitle("bars"), WithXlabel("z"), WithYlabel("y"), WithXrotation(45), WithWidth(4), WithHeight(3))
	defer p.Close()
	require.Nil(t, p.PlotBars(z, y, ColorsFrom(moreland.Kindlmann(), 6, 1)))

	fileName := filepath.Join(t.TempDir(), "bars.png")
	require.Nil(t, p.Save(fileName, "png"))
	checkFile(t, fileName)

	assert.NotNil(t, p.Save(filepath.Join(t.TempDir(), "bars.gif"), "gif"))

	// labels can't be numbers of a different length
	short, _ := NewCol([]string{"a"}, ColName("short"))
	assert.NotNil(t, NewPlot().PlotBars(short, y, nil))
	assert.NotNil(t, NewPlot().PlotBars(y, z, nil))
}

func TestPlotScatter(t *testing.T) {
	dfx := testDF()
	x, _ := dfx.Column("x")
	y, _ := dfx.Column("y")
	z, _ := dfx.Column("z")

	p := NewPlot(WithLogX(), WithGrid(), WithDPI(50))
	require.Nil(t, p.PlotScatter(x, y, z, ColorsFrom(moreland.ExtendedKindlmann(), 6, 0.7), vg.Points(4)))
	fileName := filepath.Join(t.TempDir(), "scatter.png")
	require.Nil(t, p.Save(fileName, "png"))
	checkFile(t, fileName)
	p.Close()
	assert.NotNil(t, p.Save(fileName, "png"))

	neg, _ := NewCol([]float64{-1, 0, -3, -4, -5, -6}, ColName("neg"))
	assert.NotNil(t, NewPlot(WithLogX()).PlotScatter(neg, y, z, nil, vg.Points(4)))

	// a single positive point still gets a usable log axis
	one, _ := NewCol([]float64{-1, 0, 5, -4, -5, -6}, ColName("one"))
	p = NewPlot(WithLogX(), WithLegend(false))
	require.Nil(t, p.PlotScatter(one, y, z, nil, vg.Points(4)))
	assert.Less(t, p.Plt.X.Min, p.Plt.X.Max)
	fileName = filepath.Join(t.TempDir(), "one.png")
	require.Nil(t, p.Save(fileName, "png"))
	checkFile(t, fileName)
}

func TestPlotBoxesHeatMap(t *testing.T) {
	dfx := testDF()
	x, _ := dfx.Column("x")
	y, _ := dfx.Column("y")

	p := NewPlot()
	require.Nil(t, p.PlotBoxes(ColorsFrom(moreland.Kindlmann(), 2, 1), x, y))
	fileName := filepath.Join(t.TempDir(), "box.png")
	require.Nil(t, p.Save(fileName, "png"))
	checkFile(t, fileName)

	assert.NotNil(t, NewPlot().PlotBoxes(nil))

	corr, e := dfx.Corr("x", "y")
	require.Nil(t, e)
	corr[0][1] = math.NaN()

	cm := moreland.SmoothBlueRed()
	cm.SetMin(-1)
	cm.SetMax(1)
	p = NewPlot(WithXrotation(90))
	require.Nil(t, p.PlotHeatMap([]string{"x", "y"}, corr, cm.Palette(255), -1, 1, "%.2f"))
	fileName = filepath.Join(t.TempDir(), "heat.png")
	require.Nil(t, p.Save(fileName, "png"))
	checkFile(t, fileName)

	assert.NotNil(t, NewPlot().PlotHeatMap([]string{"x"}, corr, cm.Palette(255), -1, 1, ""))
}

func TestColorsFrom(t *testing.T) {
	assert.Nil(t, ColorsFrom(moreland.Kindlmann(), 0, 1))
	assert.Len(t, ColorsFrom(moreland.Kindlmann(), 1, 1), 1)

	cols := ColorsFrom(moreland.BlackBody(), 10, 0.5)
	assert.Len(t, cols, 10)
	nc := color.NRGBAModel.Convert(cols[3]).(color.NRGBA)
	assert.Equal(t, uint8(128), nc.A)
}

func TestPickColor(t *testing.T) {
	assert.Equal(t, color.Black, pickColor(nil, 3))
	cols := []color.Color{color.White, color.Black}
	assert.Equal(t, color.White, pickColor(cols, 2))
}

func TestSaveFormats(t *testing.T) {
	dfx := testDF()
	z, _ := dfx.Column("z")
	y, _ := dfx.Column("y")

	for _, format := range []string{"jpg", "jpeg", "tiff", "PNG"} {
		p := NewPlot(WithWidth(3), WithHeight(2), WithDPI(40))
		require.Nil(t, p.PlotBars(z, y, nil))
		fileName := filepath.Join(t.TempDir(), "bars."+format)
		require.Nil(t, p.Save(fileName, format), format)
		checkFile(t, fileName)
	}
}

func TestScatterLegend(t *testing.T) {
	dfx := testDF()
	x, _ := dfx.Column("x")
	y, _ := dfx.Column("y")
	z, _ := dfx.Column("z")

	p := NewPlot(WithWidth(4), WithHeight(3))
	require.Nil(t, p.PlotScatter(x, y, z, nil, vg.Points(3)))
	assert.Equal(t, 6, p.keyEntries)
	fileName := filepath.Join(t.TempDir(), "legend.png")
	require.Nil(t, p.Save(fileName, "png"))
	checkFile(t, fileName)

	p = NewPlot(WithLegend(false))
	require.Nil(t, p.PlotScatter(x, y, z, nil, vg.Points(3)))
	assert.Equal(t, 0, p.keyEntries)
}

func TestHeatMapOutOfRange(t *testing.T) {
	cm := moreland.SmoothBlueRed()
	cm.SetMin(-1)
	cm.SetMax(1)
	pal := cm.Palette(255)

	p := NewPlot()
	require.Nil(t, p.PlotHeatMap([]string{"a", "b"}, [][]float64{{1 + 2e-16, -1 - 2e-16}, {-1, 1}}, pal, -1, 1, ""))
	fileName := filepath.Join(t.TempDir(), "heat.png")
	require.Nil(t, p.Save(fileName, "png"))
	checkFile(t, fileName)
}
