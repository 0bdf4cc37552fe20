package df

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDF() *DF {
	x, _ := NewCol([]float64{1, -2, 3, 0, 3, 3.5}, ColName("x"))
	y, _ := NewCol([]int{1, -5, 6, 1, 4, 5}, ColName("y"))
	z, _ := NewCol([]string{"a", "b", "c", "d", "e", "f"}, ColName("z"))
	dfx, e := NewDF(x, y, z)
	if e != nil {
		panic(e)
	}

	return dfx
}

func TestNewDF(t *testing.T) {
	dfx := testDF()
	assert.Equal(t, 6, dfx.RowCount())
	assert.Equal(t, 3, dfx.ColumnCount())
	assert.Equal(t, []string{"x", "y", "z"}, dfx.ColumnNames())

	_, e := NewDF()
	assert.NotNil(t, e)

	short, _ := NewCol([]float64{1}, ColName("short"))
	x, _ := NewCol([]float64{1, 2}, ColName("x"))
	_, e = NewDF(x, short)
	assert.NotNil(t, e)
}

func TestNewCol(t *testing.T) {
	_, e := NewCol([]bool{true})
	assert.NotNil(t, e)

	_, e = NewCol([]int{1}, ColName(" lead"))
	assert.NotNil(t, e)

	c, e := NewCol([]int{1, 2}, ColName("Age 0-25"))
	assert.Nil(t, e)
	assert.Equal(t, DTint, c.DataType())
	assert.NotNil(t, ColName("again")(c))
}

func TestAppendColumn(t *testing.T) {
	dfx := testDF()

	dup, _ := NewCol([]int{0, 0, 0, 0, 0, 0}, ColName("y"))
	assert.NotNil(t, dfx.AppendColumn(dup, false))

	assert.Nil(t, dfx.AppendColumn(dup, true))
	assert.Equal(t, 3, dfx.ColumnCount())
	assert.Equal(t, []string{"x", "y", "z"}, dfx.ColumnNames())
	col, e := dfx.Column("y")
	assert.Nil(t, e)
	assert.Equal(t, []int{0, 0, 0, 0, 0, 0}, col.Data())

	wrongLen, _ := NewCol([]int{1}, ColName("w"))
	assert.NotNil(t, dfx.AppendColumn(wrongLen, false))

	r, _ := NewCol([]int{1, 2, 3, 1, 2, 3}, ColName("r"))
	assert.Nil(t, dfx.AppendColumn(r, false))
	assert.Equal(t, []string{"x", "y", "z", "r"}, dfx.ColumnNames())
}

func TestDropKeep(t *testing.T) {
	dfx := testDF()
	assert.Nil(t, dfx.DropColumns("x"))
	assert.Equal(t, []string{"y", "z"}, dfx.ColumnNames())
	assert.NotNil(t, dfx.DropColumns("nope"))

	kept, e := dfx.KeepColumns("z", "y")
	assert.Nil(t, e)
	assert.Equal(t, []string{"z", "y"}, kept.ColumnNames())

	_, e = dfx.KeepColumns("x")
	assert.NotNil(t, e)

	assert.NotNil(t, kept.DropColumns("z", "y"))
}

func TestNext(t *testing.T) {
	dfx := testDF()
	var names []string
	for c := dfx.Next(true); c != nil; c = dfx.Next(false) {
		names = append(names, c.Name())
	}

	assert.Equal(t, dfx.ColumnNames(), names)
}

func TestSortDescendingStable(t *testing.T) {
	dfx := testDF()
	require.Nil(t, dfx.Sort(false, "x"))

	z, _ := dfx.Column("z")
	// x = 3 for rows c and e: they keep their original order
	assert.Equal(t, []string{"f", "c", "e", "a", "d", "b"}, z.Data())

	x, _ := dfx.Column("x")
	assert.Equal(t, []float64{3.5, 3, 3, 1, 0, -2}, x.Data())
}

func TestSortMultiKey(t *testing.T) {
	dfx := testDF()
	require.Nil(t, dfx.Sort(true, "x", "y"))

	z, _ := dfx.Column("z")
	assert.Equal(t, []string{"b", "d", "a", "e", "c", "f"}, z.Data())

	assert.NotNil(t, dfx.Sort(true))
	assert.NotNil(t, dfx.Sort(true, "missing"))
}

func TestSortNaNLast(t *testing.T) {
	x, _ := NewCol([]float64{1, math.NaN(), 3}, ColName("x"))
	dfx, _ := NewDF(x)

	require.Nil(t, dfx.Sort(false, "x"))
	col, _ := dfx.Column("x")
	v := col.Data().([]float64)
	assert.Equal(t, 3.0, v[0])
	assert.Equal(t, 1.0, v[1])
	assert.True(t, math.IsNaN(v[2]))

	require.Nil(t, dfx.Sort(true, "x"))
	col, _ = dfx.Column("x")
	v = col.Data().([]float64)
	assert.Equal(t, 1.0, v[0])
	assert.True(t, math.IsNaN(v[2]))
}

func TestHeadCopy(t *testing.T) {
	dfx := testDF()

	h := dfx.Head(2)
	assert.Equal(t, 2, h.RowCount())
	assert.Equal(t, 3, h.ColumnCount())

	// fewer rows than asked for
	assert.Equal(t, 6, dfx.Head(10).RowCount())

	cp := dfx.Copy()
	require.Nil(t, cp.Sort(false, "y"))
	z, _ := dfx.Column("z")
	assert.Equal(t, []string{"a", "b", "c", "d", "e", "f"}, z.Data())
}

func TestFloat(t *testing.T) {
	dfx := testDF()
	y, _ := dfx.Column("y")
	f, e := Float(y)
	assert.Nil(t, e)
	assert.Equal(t, []float64{1, -5, 6, 1, 4, 5}, f)

	z, _ := dfx.Column("z")
	_, e = Float(z)
	assert.NotNil(t, e)

	assert.Equal(t, []string{"1", "-5", "6", "1", "4", "5"}, Strings(y))
}

func TestString(t *testing.T) {
	dfx := testDF()
	s := dfx.Head(1).String()
	assert.Contains(t, s, "x")
	assert.Contains(t, s, "a")
	assert.Equal(t, 2, strings.Count(s, "\n"))
}

func TestStringColumnGap(t *testing.T) {
	age, _ := NewCol([]float64{0.29, 0.23}, ColName("Age 55+"))
	closed, _ := NewCol([]string{"3/22/20", "3/16/20"}, ColName("School Closure Date"))
	n, _ := NewCol([]int{1, 2}, ColName("n"))
	dfx, _ := NewDF(age, closed, n)

	lines := strings.Split(strings.TrimRight(dfx.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "Age 55+   School Closure Date")
	assert.Contains(t, lines[1], "0.29   3/22/20")
	assert.Equal(t, []string{"Age", "55+", "School", "Closure", "Date", "n"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"0.23", "3/16/20", "2"}, strings.Fields(lines[2]))
}
