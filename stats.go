package nimsforestgallery

import (
	"math"
	"strconv"
	"strings"

	"github.com/aclements/go-moremath/stats"
)

// Sum returns the sum of xs.
func Sum(xs []float64) float64 {
	total := 0.0
	for _, x := range xs {
		total += x
	}
	return total
}

// Mean returns the arithmetic mean of xs, or NaN if xs is empty.
func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return math.NaN()
	}
	return stats.Mean(xs)
}

// Bounds returns the smallest and largest values in xs, or NaN, NaN if
// xs is empty.
func Bounds(xs []float64) (min, max float64) {
	if len(xs) == 0 {
		return math.NaN(), math.NaN()
	}
	return stats.Bounds(xs)
}

// ParseNumber converts a cell to a number. Blank cells are zero and
// unparsable cells are NaN.
func ParseNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// StringsToNumbers converts every cell in ss with ParseNumber.
func StringsToNumbers(ss []string) []float64 {
	out := make([]float64, len(ss))
	for i, s := range ss {
		out[i] = ParseNumber(s)
	}
	return out
}

// SliceRowNumbers returns the numeric values of row t from column start
// up to, but not including, column end. An end of zero or less means the
// end of the row.
func SliceRowNumbers(t *Table, row, start, end int) []float64 {
	if row < 0 || row >= t.RowCount() {
		return nil
	}
	cells := t.rows[row]
	if end <= 0 || end > len(cells) {
		end = len(cells)
	}
	if start < 0 {
		start = 0
	}
	if start >= end {
		return nil
	}
	return StringsToNumbers(cells[start:end])
}
