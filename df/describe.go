package df

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// DescribeStats are the rows produced by Describe, in order.
var DescribeStats = []string{"count", "mean", "std", "min", "25%", "50%", "75%", "max"}

// Describe summarizes each numeric column of df. The result has a "stat" column with the
// DescribeStats labels and one float column per numeric column of df. NaNs are ignored.
func (df *DF) Describe() (*DF, error) {
	stats, _ := NewCol(append([]string(nil), DescribeStats...), ColName("stat"))
	out, _ := NewDF(stats)

	for col := df.Next(true); col != nil; col = df.Next(false) {
		if !numeric(col) {
			continue
		}

		var (
			x []float64
			e error
		)
		if x, e = Float(col); e != nil {
			return nil, e
		}

		var summ *Col
		if summ, e = NewCol(describe(x), ColName(col.Name())); e != nil {
			return nil, e
		}

		if e := out.AppendColumn(summ, false); e != nil {
			return nil, e
		}
	}

	if out.ColumnCount() == 1 {
		return nil, fmt.Errorf("no numeric columns to describe")
	}

	return out, nil
}

func describe(xIn []float64) []float64 {
	x := dropNaN(xIn)
	if len(x) == 0 {
		nan := math.NaN()
		return []float64{0, nan, nan, nan, nan, nan, nan, nan}
	}

	sort.Float64s(x)

	return []float64{
		float64(len(x)),
		stat.Mean(x, nil),
		stat.StdDev(x, nil),
		floats.Min(x),
		Quantile(0.25, x),
		Quantile(0.5, x),
		Quantile(0.75, x),
		floats.Max(x),
	}
}

// Quantile returns the p quantile of sorted x, interpolating linearly between order statistics at
// position p*(n-1).
func Quantile(p float64, x []float64) float64 {
	if len(x) == 0 || p < 0 || p > 1 {
		return math.NaN()
	}

	h := p * float64(len(x)-1)
	lo := math.Floor(h)
	indx := int(lo)
	if indx >= len(x)-1 {
		return x[len(x)-1]
	}

	return x[indx] + (h-lo)*(x[indx+1]-x[indx])
}

// NullCounts returns the number of missing values in each column.
func (df *DF) NullCounts() (names []string, counts []int) {
	for col := df.Next(true); col != nil; col = df.Next(false) {
		names = append(names, col.Name())
		counts = append(counts, col.NullCount())
	}

	return names, counts
}

// Info reports the shape of df and, per column, the non-null count and type.
func (df *DF) Info() string {
	var (
		indx     []int
		names    []string
		nonNull  []int
		dts      []string
		dtCounts = make(map[DataTypes]int)
	)

	for col := df.Next(true); col != nil; col = df.Next(false) {
		indx = append(indx, len(indx))
		names = append(names, col.Name())
		nonNull = append(nonNull, col.Len()-col.NullCount())
		dts = append(dts, col.DataType().String())
		dtCounts[col.DataType()]++
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "rows: %d\ncolumns: %d\n", df.RowCount(), df.ColumnCount())
	if names != nil {
		sb.WriteString(prettyPrint([]string{"#", "column", "non-null", "type"}, indx, names, nonNull, dts))
	}

	var summ []string
	for dt := DataTypes(1); dt <= MaxDT; dt++ {
		if n, ok := dtCounts[dt]; ok {
			summ = append(summ, dt.String()+"("+strconv.Itoa(n)+")")
		}
	}
	sb.WriteString("types: " + strings.Join(summ, ", ") + "\n")

	return sb.String()
}

// Corr returns the Pearson correlation matrix of colNames. Each pair uses only the rows where
// both values are present. Pairs with fewer than two such rows or no variance are NaN.
func (df *DF) Corr(colNames ...string) ([][]float64, error) {
	var data [][]float64
	for _, cName := range colNames {
		var (
			col Column
			x   []float64
			e   error
		)

		if col, e = df.Column(cName); e != nil {
			return nil, e
		}

		if x, e = Float(col); e != nil {
			return nil, e
		}

		data = append(data, x)
	}

	corr := make([][]float64, len(data))
	for r := range data {
		corr[r] = make([]float64, len(data))
	}

	for r := 0; r < len(data); r++ {
		for c := r; c < len(data); c++ {
			x, y := pairwise(data[r], data[c])
			rho := math.NaN()
			if len(x) >= 2 {
				// rounding can push a perfectly linear pair just past +/-1
				rho = math.Max(-1, math.Min(1, stat.Correlation(x, y, nil)))
			}

			corr[r][c], corr[c][r] = rho, rho
		}
	}

	return corr, nil
}

func pairwise(xIn, yIn []float64) (x, y []float64) {
	for ind := range xIn {
		if math.IsNaN(xIn[ind]) || math.IsNaN(yIn[ind]) {
			continue
		}

		x = append(x, xIn[ind])
		y = append(y, yIn[ind])
	}

	return x, y
}

func dropNaN(xIn []float64) []float64 {
	x := make([]float64, 0, len(xIn))
	for _, xv := range xIn {
		if !math.IsNaN(xv) {
			x = append(x, xv)
		}
	}

	return x
}
