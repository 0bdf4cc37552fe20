package df

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// DF is the data -- an ordered list of equal-length columns.
type DF struct {
	head    *columnList
	current *columnList
}

type columnList struct {
	col Column

	prior *columnList
	next  *columnList
}

func NewDF(cols ...Column) (*DF, error) {
	if cols == nil {
		return nil, fmt.Errorf("no columns in NewDF")
	}

	df := &DF{}
	for _, col := range cols {
		if e := df.AppendColumn(col, false); e != nil {
			return nil, e
		}
	}

	return df, nil
}

// *********** Iteration ***********

// Next steps through the columns. Returns nil after the last column.
func (df *DF) Next(reset bool) Column {
	if df.head == nil {
		return nil
	}

	if reset || df.current == nil {
		df.current = df.head
		return df.current.col
	}

	if df.current.next == nil {
		df.current = nil
		return nil
	}

	df.current = df.current.next
	return df.current.col
}

// *********** Shape ***********

func (df *DF) RowCount() int {
	if df.head == nil {
		return 0
	}

	return df.head.col.Len()
}

func (df *DF) ColumnCount() int {
	cols := 0
	for c := df.head; c != nil; c = c.next {
		cols++
	}

	return cols
}

func (df *DF) ColumnNames() []string {
	var names []string

	for h := df.head; h != nil; h = h.next {
		names = append(names, h.col.Name())
	}

	return names
}

func (df *DF) Column(colName string) (col Column, err error) {
	var node *columnList
	if node, err = df.node(colName); err != nil {
		return nil, err
	}

	return node.col, nil
}

// *********** Column Manipulation ***********

// AppendColumn adds col to the end of df. If replace is true, an existing column of the same
// name is swapped out in place.
func (df *DF) AppendColumn(col Column, replace bool) error {
	if col == nil {
		return fmt.Errorf("nil column in AppendColumn")
	}

	if !validName(col.Name()) {
		return fmt.Errorf("invalid column name: %q", col.Name())
	}

	if df.head != nil && col.Len() != df.RowCount() {
		return fmt.Errorf("length mismatch: df - %d, append col %s - %d", df.RowCount(), col.Name(), col.Len())
	}

	if node, e := df.node(col.Name()); e == nil {
		if !replace {
			return fmt.Errorf("duplicate column name: %s", col.Name())
		}

		node.col = col
		return nil
	}

	newNode := &columnList{col: col}
	if df.head == nil {
		df.head = newNode
		return nil
	}

	var tail *columnList
	for tail = df.head; tail.next != nil; tail = tail.next {
	}

	newNode.prior = tail
	tail.next = newNode

	return nil
}

func (df *DF) DropColumns(colNames ...string) error {
	for _, cName := range colNames {
		var (
			node *columnList
			e    error
		)

		if node, e = df.node(cName); e != nil {
			return e
		}

		if node == df.head {
			if df.head.next == nil {
				return fmt.Errorf("cannot drop %s: no columns left", cName)
			}

			df.head = df.head.next
			df.head.prior = nil
			continue
		}

		node.prior.next = node.next
		if node.next != nil {
			node.next.prior = node.prior
		}
	}

	df.current = nil

	return nil
}

// KeepColumns returns a new DF with only colNames, in that order. The columns are shared, not copied.
func (df *DF) KeepColumns(colNames ...string) (*DF, error) {
	var cols []Column
	for _, cName := range colNames {
		var (
			col Column
			e   error
		)

		if col, e = df.Column(cName); e != nil {
			return nil, e
		}

		cols = append(cols, col)
	}

	return NewDF(cols...)
}

// Copy returns a deep copy of df.
func (df *DF) Copy() *DF {
	out := &DF{}
	for h := df.head; h != nil; h = h.next {
		// will not fail: names and lengths already checked
		_ = out.AppendColumn(h.col.Copy(), false)
	}

	return out
}

// *********** Rows ***********

// Head returns a copy of the first n rows (all rows if there are fewer than n).
func (df *DF) Head(n int) *DF {
	if n > df.RowCount() {
		n = df.RowCount()
	}

	if n < 0 {
		n = 0
	}

	indx := make([]int, n)
	for ind := range indx {
		indx[ind] = ind
	}

	return df.rows(indx)
}

// Sort reorders the rows of df by keys. Ties keep their current order. NaN sorts last in either direction.
func (df *DF) Sort(ascending bool, keys ...string) error {
	if len(keys) == 0 {
		return fmt.Errorf("no sort keys")
	}

	var by []Column
	for _, key := range keys {
		var (
			col Column
			e   error
		)

		if col, e = df.Column(key); e != nil {
			return e
		}

		by = append(by, col)
	}

	indx := make([]int, df.RowCount())
	for ind := range indx {
		indx[ind] = ind
	}

	sort.SliceStable(indx, func(i, j int) bool {
		for _, col := range by {
			if c := compare(col, indx[i], indx[j], ascending); c != 0 {
				return c < 0
			}
		}

		return false
	})

	sorted := df.rows(indx)
	df.head, df.current = sorted.head, nil

	return nil
}

func (df *DF) rows(indx []int) *DF {
	out := &DF{}
	for h := df.head; h != nil; h = h.next {
		_ = out.AppendColumn(pick(h.col, indx), false)
	}

	return out
}

func (df *DF) String() string {
	var (
		header []string
		cols   []any
	)

	for h := df.head; h != nil; h = h.next {
		header = append(header, h.col.Name())
		cols = append(cols, h.col.Data())
	}

	if header == nil {
		return "empty DF\n"
	}

	return prettyPrint(header, cols...)
}

// *********** Helpers ***********

func (df *DF) node(colName string) (*columnList, error) {
	for h := df.head; h != nil; h = h.next {
		if h.col.Name() == colName {
			return h, nil
		}
	}

	return nil, fmt.Errorf("column %s not found", colName)
}

// compare returns -1 if row i goes before row j, 1 if after and 0 if they tie.
func compare(col Column, i, j int, ascending bool) int {
	sign := 1
	if !ascending {
		sign = -1
	}

	switch x := col.Data().(type) {
	case []float64:
		a, b := x[i], x[j]
		switch {
		case math.IsNaN(a) && math.IsNaN(b):
			return 0
		case math.IsNaN(a):
			return 1
		case math.IsNaN(b):
			return -1
		case a < b:
			return -sign
		case a > b:
			return sign
		}
	case []int:
		switch a, b := x[i], x[j]; {
		case a < b:
			return -sign
		case a > b:
			return sign
		}
	case []string:
		return sign * strings.Compare(x[i], x[j])
	}

	return 0
}
