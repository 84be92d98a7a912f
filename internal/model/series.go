package model

import (
	"errors"
	"fmt"
)

// DefaultHorizon is the standard scoring window in fiscal years.
const DefaultHorizon = 10

// ErrSeriesMismatch indicates arithmetic between series that are not aligned
// to the same start year and horizon. This is a caller contract violation,
// not a runtime condition to recover from.
var ErrSeriesMismatch = errors.New("series start year or length mismatch")

// Series is a fixed-length sequence of per-fiscal-year values aligned to a
// start year. All dollar-valued series in this package are in $B (billions of
// nominal dollars) unless a field comment says otherwise.
type Series struct {
	StartYear int
	Values    []float64
}

// NewSeries returns an all-zero series of the given horizon.
func NewSeries(startYear, horizon int) Series {
	return Series{StartYear: startYear, Values: make([]float64, horizon)}
}

// SeriesOf wraps an existing value slice. The slice is not copied.
func SeriesOf(startYear int, values []float64) Series {
	return Series{StartYear: startYear, Values: values}
}

func (s Series) Len() int { return len(s.Values) }

// Year returns the fiscal year at index i.
func (s Series) Year(i int) int { return s.StartYear + i }

// Years returns the ordered fiscal years the series covers.
func (s Series) Years() []int {
	out := make([]int, len(s.Values))
	for i := range out {
		out[i] = s.StartYear + i
	}
	return out
}

// At returns the value for a fiscal year, or 0 if the year is outside the
// series window.
func (s Series) At(year int) float64 {
	i := year - s.StartYear
	if i < 0 || i >= len(s.Values) {
		return 0
	}
	return s.Values[i]
}

// Clone returns a deep copy with its own backing array.
func (s Series) Clone() Series {
	out := Series{StartYear: s.StartYear, Values: make([]float64, len(s.Values))}
	copy(out.Values, s.Values)
	return out
}

// Aligned reports whether two series share a start year and horizon.
func (s Series) Aligned(o Series) bool {
	return s.StartYear == o.StartYear && len(s.Values) == len(o.Values)
}

// Add returns s + o element-wise. The inputs must be aligned.
func (s Series) Add(o Series) (Series, error) {
	if !s.Aligned(o) {
		return Series{}, fmt.Errorf("%w: (%d,%d) vs (%d,%d)",
			ErrSeriesMismatch, s.StartYear, len(s.Values), o.StartYear, len(o.Values))
	}
	out := s.Clone()
	for i, v := range o.Values {
		out.Values[i] += v
	}
	return out, nil
}

// Sub returns s - o element-wise. The inputs must be aligned.
func (s Series) Sub(o Series) (Series, error) {
	if !s.Aligned(o) {
		return Series{}, fmt.Errorf("%w: (%d,%d) vs (%d,%d)",
			ErrSeriesMismatch, s.StartYear, len(s.Values), o.StartYear, len(o.Values))
	}
	out := s.Clone()
	for i, v := range o.Values {
		out.Values[i] -= v
	}
	return out, nil
}

// Scale returns s with every value multiplied by f.
func (s Series) Scale(f float64) Series {
	out := s.Clone()
	for i := range out.Values {
		out.Values[i] *= f
	}
	return out
}

// Sum returns the total over the full window (the "10-year number").
func (s Series) Sum() float64 {
	total := 0.0
	for _, v := range s.Values {
		total += v
	}
	return total
}

// Mean returns the average annual value, or 0 for an empty series.
func (s Series) Mean() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	return s.Sum() / float64(len(s.Values))
}

// IsZero reports whether every value is exactly zero.
func (s Series) IsZero() bool {
	for _, v := range s.Values {
		if v != 0 {
			return false
		}
	}
	return true
}
