package df

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// *********** Conversions ***********

func toFloat(x string) (float64, bool) {
	if f, e := strconv.ParseFloat(strings.ReplaceAll(x, ",", ""), 64); e == nil {
		return f, true
	}

	return 0, false
}

func toInt(x string) (int, bool) {
	if i, e := strconv.ParseInt(x, 10, 64); e == nil {
		return int(i), true
	}

	return 0, false
}

func WhatAmI(val any) DataTypes {
	switch val.(type) {
	case float64, []float64:
		return DTfloat
	case int, []int:
		return DTint
	case string, []string:
		return DTstring
	default:
		return DTunknown
	}
}

// bestType finds the narrowest type that holds every entry of raw. missing flags entries that are absent.
// Any missing entry rules out DTint since ints have no missing value.
func bestType(raw []string, missing []bool) DataTypes {
	isInt, isFloat := true, true
	anyMissing := false
	for ind, x := range raw {
		if missing[ind] {
			anyMissing = true
			continue
		}

		if isInt {
			_, isInt = toInt(x)
		}

		if isFloat {
			_, isFloat = toFloat(x)
		}

		if !isFloat {
			return DTstring
		}
	}

	if isInt && !anyMissing {
		return DTint
	}

	return DTfloat
}

// toSlc converts raw to a slice of type dt. Missing entries become NaN (floats) or "" (strings).
func toSlc(raw []string, missing []bool, dt DataTypes) (any, error) {
	switch dt {
	case DTint:
		out := make([]int, len(raw))
		for ind, x := range raw {
			var ok bool
			if out[ind], ok = toInt(x); !ok {
				return nil, fmt.Errorf("cannot convert %q to int", x)
			}
		}

		return out, nil
	case DTfloat:
		out := make([]float64, len(raw))
		for ind, x := range raw {
			if missing[ind] {
				out[ind] = math.NaN()
				continue
			}

			var ok bool
			if out[ind], ok = toFloat(x); !ok {
				return nil, fmt.Errorf("cannot convert %q to float", x)
			}
		}

		return out, nil
	case DTstring:
		out := make([]string, len(raw))
		for ind, x := range raw {
			if !missing[ind] {
				out[ind] = x
			}
		}

		return out, nil
	default:
		return nil, fmt.Errorf("cannot convert to %s", dt)
	}
}

// *********** Printing ***********

func prettyPrint(header []string, cols ...any) string {
	var colsS [][]string

	for ind := 0; ind < len(cols); ind++ {
		colsS = append(colsS, stringSlice(header[ind], cols[ind]))
	}

	var sb strings.Builder
	for row := 0; row < len(colsS[0]); row++ {
		for c := 0; c < len(colsS); c++ {
			sb.WriteString(colsS[c][row])
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func stringSlice(header string, inVal any) []string {
	const pad = 3
	c := []string{header}

	var (
		els     []string
		numeric bool
	)
	switch x := inVal.(type) {
	case []float64:
		format := selectFormat(x)
		for _, xv := range x {
			els = append(els, fmt.Sprintf(format, xv))
		}
		numeric = true
	case []int:
		for _, xv := range x {
			els = append(els, strconv.Itoa(xv))
		}
		numeric = true
	case []string:
		els = x
	default:
		panic(fmt.Errorf("unsupported data type"))
	}

	maxLen := len(header)
	for _, el := range els {
		if l := len(el); l > maxLen {
			maxLen = l
		}

		c = append(c, el)
	}

	// every cell leads with the gap so adjacent columns never touch
	gap := strings.Repeat(" ", pad)
	for ind, cx := range c {
		fill := strings.Repeat(" ", maxLen-len(cx))
		if numeric {
			c[ind] = gap + fill + cx
			continue
		}

		c[ind] = gap + cx + fill
	}

	return c
}

// selectFormat picks the number of decimals from the spread of x.
func selectFormat(x []float64) string {
	minX, maxX := math.Inf(1), math.Inf(-1)
	for _, xv := range x {
		if math.IsNaN(xv) || math.IsInf(xv, 0) {
			continue
		}

		xva := math.Abs(xv)
		minX = math.Min(minX, xva)
		maxX = math.Max(maxX, xva)
	}

	if math.IsInf(minX, 1) {
		return "%.1f"
	}

	l := math.Log10(maxX - minX)
	var dp int
	switch {
	case math.IsInf(l, -1):
		dp = 2
	case l < -1:
		dp = int(math.Abs(l)+0.5) + 1
	case l > 3:
		dp = 0
	case l > 1:
		dp = 1
	default:
		dp = 3
	}

	return "%." + strconv.Itoa(dp) + "f"
}

func has[C comparable](needle C, haystack []C) bool {
	return position(needle, haystack) >= 0
}

func position[C comparable](needle C, haystack []C) int {
	for ind, straw := range haystack {
		if needle == straw {
			return ind
		}
	}

	return -1
}
