package data

import (
	"errors"
	"path/filepath"
	"testing"

	"fiscal-score/internal/baseline"
	"fiscal-score/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSnapshot() *model.StatSnapshot {
	return &model.StatSnapshot{
		Revenue: []model.RevenueObservation{
			{Year: 2025, AmountBillions: 2_600},
		},
		GDP: []model.GDPObservation{
			{Year: 2025, AmountBillions: 29_000},
		},
		Filers: []model.FilerSummary{
			{Year: 2025, IncomeThreshold: 200_000, FilerCount: 12e6, AvgTaxableIncome: 310_000},
			{Year: 2025, IncomeThreshold: 400_000, FilerCount: 2e6, AvgTaxableIncome: 600_000},
		},
	}
}

func TestSnapshot_SaveLoadRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache", "snapshot.json")
	require.NoError(t, SaveSnapshot(sampleSnapshot(), path))

	snap, err := LoadSnapshot(path)
	require.NoError(t, err)
	assert.Equal(t, sampleSnapshot(), snap)
}

func TestSnapshotSource_ScalarQueries(t *testing.T) {
	src := NewSnapshotSource(sampleSnapshot())

	rev, err := src.TotalIndividualIncomeTax(2025)
	require.NoError(t, err)
	assert.Equal(t, 2_600.0, rev)

	gdp, err := src.NominalGDP(2025)
	require.NoError(t, err)
	assert.Equal(t, 29_000.0, gdp)
}

func TestSnapshotSource_MissingYearIsTypedError(t *testing.T) {
	src := NewSnapshotSource(sampleSnapshot())

	_, err := src.NominalGDP(2019)
	var apiErr *FiscalDataError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "SERIES_NOT_AVAILABLE", apiErr.Code)
}

func TestSnapshotSource_FilersClosestThresholdAtOrBelow(t *testing.T) {
	src := NewSnapshotSource(sampleSnapshot())

	// Exact match
	f, err := src.FilersAboveThreshold(400_000, 2025)
	require.NoError(t, err)
	assert.Equal(t, 400_000.0, f.IncomeThreshold)

	// Between stored thresholds: the closest at or below wins.
	f, err = src.FilersAboveThreshold(350_000, 2025)
	require.NoError(t, err)
	assert.Equal(t, 200_000.0, f.IncomeThreshold)

	// Below every stored threshold.
	_, err = src.FilersAboveThreshold(50_000, 2025)
	assert.True(t, errors.As(err, new(*FiscalDataError)))
}

func TestSnapshotSource_FeedsBaselineGenerator(t *testing.T) {
	// A snapshot satisfies the generator's statistical interface, so an
	// offline build behaves exactly like a live one.
	src := NewSnapshotSource(sampleSnapshot())
	gen := baseline.New(model.DefaultAssumptions(2026), src)

	proj, source := gen.Build(2026, true)
	assert.Equal(t, baseline.SourceStatistical, source)
	assert.Positive(t, proj.NominalGDP.Values[0])
}
