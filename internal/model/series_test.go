package model

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeries_AddSub(t *testing.T) {
	a := SeriesOf(2026, []float64{1, 2, 3})
	b := SeriesOf(2026, []float64{10, 20, 30})

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, []float64{11, 22, 33}, sum.Values)

	diff, err := b.Sub(a)
	require.NoError(t, err)
	assert.Equal(t, []float64{9, 18, 27}, diff.Values)

	// Inputs are untouched.
	assert.Equal(t, []float64{1, 2, 3}, a.Values)
}

func TestSeries_MisalignedArithmeticFails(t *testing.T) {
	a := SeriesOf(2026, []float64{1, 2, 3})
	shifted := SeriesOf(2027, []float64{1, 2, 3})
	short := SeriesOf(2026, []float64{1, 2})

	_, err := a.Add(shifted)
	assert.ErrorIs(t, err, ErrSeriesMismatch)

	_, err = a.Sub(short)
	assert.ErrorIs(t, err, ErrSeriesMismatch)
}

func TestSeries_AtOutsideWindowIsZero(t *testing.T) {
	s := SeriesOf(2026, []float64{5, 6})
	assert.Equal(t, 5.0, s.At(2026))
	assert.Equal(t, 6.0, s.At(2027))
	assert.Equal(t, 0.0, s.At(2025))
	assert.Equal(t, 0.0, s.At(2028))
}

func TestSeries_CloneIsIndependent(t *testing.T) {
	s := SeriesOf(2026, []float64{1, 2})
	c := s.Clone()
	c.Values[0] = 99
	assert.Equal(t, 1.0, s.Values[0])
	if diff := cmp.Diff(s.Years(), c.Years()); diff != "" {
		t.Errorf("clone years mismatch (-want +got):\n%s", diff)
	}
}

func TestSeries_Aggregates(t *testing.T) {
	s := SeriesOf(2026, []float64{1, 2, 3, 4})
	assert.Equal(t, 10.0, s.Sum())
	assert.Equal(t, 2.5, s.Mean())
	assert.Equal(t, []float64{2, 4, 6, 8}, s.Scale(2).Values)
	assert.False(t, s.IsZero())
	assert.True(t, NewSeries(2026, 4).IsZero())
	assert.Equal(t, 0.0, Series{}.Mean())
}
