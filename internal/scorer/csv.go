package scorer

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
)

// WriteLedgerCSV writes per-year ledger rows to a CSV file, creating parent
// directories as needed.
func WriteLedgerCSV(path string, rows []LedgerRow) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"year",
		"static_revenue",
		"static_spending",
		"static_deficit",
		"behavioral_offset",
		"revenue_feedback",
		"final_deficit",
		"low",
		"high",
		"cum_final_deficit",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range rows {
		row := []string{
			strconv.Itoa(r.Year),
			fmtFloat(r.StaticRevenue),
			fmtFloat(r.StaticSpending),
			fmtFloat(r.StaticDeficit),
			fmtFloat(r.BehavioralOffset),
			fmtFloat(r.RevenueFeedback),
			fmtFloat(r.FinalDeficit),
			fmtFloat(r.Low),
			fmtFloat(r.High),
			fmtFloat(r.CumFinalDeficit),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 4, 64)
}
