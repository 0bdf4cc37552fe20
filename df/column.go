package df

import (
	"fmt"
	"math"
	"strings"
)

// Column interface defines the methods the columns of DF must support.
type Column interface {
	Name() string
	DataType() DataTypes
	Len() int
	Data() any
	Element(row int) any
	Copy() Column
	NullCount() int
}

// DataTypes are the types of data that the package supports
type DataTypes uint8

// values of DataTypes
const (
	DTunknown DataTypes = 0 + iota
	DTstring
	DTfloat
	DTint
)

// max value of DataTypes type
const MaxDT = DTint

func (dt DataTypes) String() string {
	switch dt {
	case DTstring:
		return "DTstring"
	case DTfloat:
		return "DTfloat"
	case DTint:
		return "DTint"
	default:
		return "DTunknown"
	}
}

// *********** Col ***********

// Col is the in-memory implementation of Column. data is one of []string, []float64, []int.
type Col struct {
	name string
	dt   DataTypes

	data any
}

type ColOpt func(c *Col) error

func ColName(name string) ColOpt {
	return func(c *Col) error {
		if c == nil {
			return fmt.Errorf("nil column to ColName")
		}

		if c.name != "" {
			return fmt.Errorf("column already named %s", c.name)
		}

		if !validName(name) {
			return fmt.Errorf("invalid column name: %q", name)
		}

		c.name = name

		return nil
	}
}

// NewCol creates a column from a slice. The DataTypes is determined by the slice type.
func NewCol(data any, opts ...ColOpt) (*Col, error) {
	var dt DataTypes
	if dt = WhatAmI(data); dt == DTunknown {
		return nil, fmt.Errorf("unsupported data type %T in NewCol", data)
	}

	c := &Col{dt: dt, data: data}
	for _, opt := range opts {
		if e := opt(c); e != nil {
			return nil, e
		}
	}

	return c, nil
}

// *********** Col - Methods ***********

func (c *Col) Name() string {
	return c.name
}

func (c *Col) DataType() DataTypes {
	return c.dt
}

func (c *Col) Data() any {
	return c.data
}

func (c *Col) Len() int {
	switch x := c.data.(type) {
	case []float64:
		return len(x)
	case []int:
		return len(x)
	case []string:
		return len(x)
	default:
		return -1
	}
}

func (c *Col) Element(row int) any {
	switch x := c.data.(type) {
	case []float64:
		return x[row]
	case []int:
		return x[row]
	case []string:
		return x[row]
	default:
		panic(fmt.Errorf("unsupported data type in Element"))
	}
}

func (c *Col) Copy() Column {
	var copiedData any
	switch x := c.data.(type) {
	case []float64:
		copiedData = append([]float64(nil), x...)
	case []int:
		copiedData = append([]int(nil), x...)
	case []string:
		copiedData = append([]string(nil), x...)
	default:
		panic(fmt.Errorf("unsupported data type in Copy"))
	}

	return &Col{name: c.name, dt: c.dt, data: copiedData}
}

// NullCount is the number of missing entries: NaN for floats, empty for strings. Ints are never missing.
func (c *Col) NullCount() int {
	n := 0
	switch x := c.data.(type) {
	case []float64:
		for _, v := range x {
			if math.IsNaN(v) {
				n++
			}
		}
	case []string:
		for _, v := range x {
			if v == "" {
				n++
			}
		}
	}

	return n
}

func (c *Col) String() string {
	return fmt.Sprintf("column: %s\ntype: %s\n", c.Name(), c.DataType()) + prettyPrint([]string{c.Name()}, c.data)
}

// *********** Accessors ***********

// Float returns the column as float64. Float columns return the underlying slice, which must not be modified.
func Float(c Column) ([]float64, error) {
	switch x := c.Data().(type) {
	case []float64:
		return x, nil
	case []int:
		xOut := make([]float64, len(x))
		for ind, xx := range x {
			xOut[ind] = float64(xx)
		}

		return xOut, nil
	default:
		return nil, fmt.Errorf("column %s is %s, not numeric", c.Name(), c.DataType())
	}
}

// Strings returns the column formatted as strings.
func Strings(c Column) []string {
	if s, ok := c.Data().([]string); ok {
		return s
	}

	out := make([]string, c.Len())
	for ind := 0; ind < c.Len(); ind++ {
		out[ind] = fmt.Sprintf("%v", c.Element(ind))
	}

	return out
}

func numeric(c Column) bool {
	return c.DataType() == DTfloat || c.DataType() == DTint
}

// pick returns a new column holding rows indx of c, in that order.
func pick(c Column, indx []int) Column {
	var data any
	switch x := c.Data().(type) {
	case []float64:
		data = pickSlc(x, indx)
	case []int:
		data = pickSlc(x, indx)
	case []string:
		data = pickSlc(x, indx)
	default:
		panic(fmt.Errorf("unsupported data type in pick"))
	}

	return &Col{name: c.Name(), dt: c.DataType(), data: data}
}

func pickSlc[T float64 | int | string](x []T, indx []int) []T {
	out := make([]T, len(indx))
	for ind, row := range indx {
		out[ind] = x[row]
	}

	return out
}

func validName(name string) bool {
	if name == "" || strings.TrimSpace(name) != name {
		return false
	}

	return !strings.ContainsAny(name, "\n\r\t,\"")
}
