package data

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"fiscal-score/internal/model"
)

// LoadSnapshot reads a saved statistical-data response from disk, so the
// CLI can score offline against previously fetched data.
func LoadSnapshot(path string) (*model.StatSnapshot, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var snap model.StatSnapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot: %w", err)
	}
	return &snap, nil
}

// SaveSnapshot writes a snapshot to disk, creating the directory if needed.
func SaveSnapshot(snap *model.StatSnapshot, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	raw, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	return os.WriteFile(path, raw, 0644)
}

// SnapshotSource serves the baseline generator's statistical queries from a
// snapshot instead of the network.
type SnapshotSource struct {
	Snapshot *model.StatSnapshot
}

func NewSnapshotSource(snap *model.StatSnapshot) *SnapshotSource {
	return &SnapshotSource{Snapshot: snap}
}

func (s *SnapshotSource) TotalIndividualIncomeTax(year int) (float64, error) {
	for _, obs := range s.Snapshot.Revenue {
		if obs.Year == year {
			return obs.AmountBillions, nil
		}
	}
	return 0, &FiscalDataError{
		Code:    "SERIES_NOT_AVAILABLE",
		Message: fmt.Sprintf("snapshot has no revenue observation for %d", year),
	}
}

func (s *SnapshotSource) NominalGDP(year int) (float64, error) {
	for _, obs := range s.Snapshot.GDP {
		if obs.Year == year {
			return obs.AmountBillions, nil
		}
	}
	return 0, &FiscalDataError{
		Code:    "SERIES_NOT_AVAILABLE",
		Message: fmt.Sprintf("snapshot has no GDP observation for %d", year),
	}
}

// FilersAboveThreshold returns the closest stored filer summary at or below
// the requested threshold for the year, if any.
func (s *SnapshotSource) FilersAboveThreshold(threshold float64, year int) (*model.FilerSummary, error) {
	var best *model.FilerSummary
	for i := range s.Snapshot.Filers {
		f := &s.Snapshot.Filers[i]
		if f.Year != year || f.IncomeThreshold > threshold {
			continue
		}
		if best == nil || f.IncomeThreshold > best.IncomeThreshold {
			best = f
		}
	}
	if best == nil {
		return nil, &FiscalDataError{
			Code:    "SERIES_NOT_AVAILABLE",
			Message: fmt.Sprintf("snapshot has no filer summary for %d at threshold %.0f", year, threshold),
		}
	}
	return best, nil
}
