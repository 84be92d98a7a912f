package scorer

import "fiscal-score/internal/model"

// ScoringResult is the scorer's output record. All dollar series are in $B;
// deficit-side series are positive when the policy raises the deficit.
// Derived totals are computed on demand, never cached.
type ScoringResult struct {
	// Policy is the scored policy, or nil for a package result.
	Policy      *model.Policy
	PackageName string

	// Baseline is the projection the policy was scored against.
	Baseline *model.BaselineProjection

	StaticRevenue    model.Series
	StaticSpending   model.Series
	StaticDeficit    model.Series
	BehavioralOffset model.Series

	// Dynamic is nil when dynamic scoring was not requested.
	Dynamic *model.DynamicEffects

	// FinalDeficit is the post-feedback deficit effect.
	FinalDeficit model.Series

	// Low/High are the uncertainty band; equal to FinalDeficit when
	// uncertainty was not requested.
	Low  model.Series
	High model.Series
}

// Years returns the fiscal years the result covers.
func (r *ScoringResult) Years() []int { return r.FinalDeficit.Years() }

// TotalDeficitEffect is the 10-year sum of the final deficit effect.
func (r *ScoringResult) TotalDeficitEffect() float64 { return r.FinalDeficit.Sum() }

// AverageAnnualCost is the mean annual final deficit effect.
func (r *ScoringResult) AverageAnnualCost() float64 { return r.FinalDeficit.Mean() }

// LedgerRow is one fiscal year of a result, the primary per-year artifact
// for export and display.
type LedgerRow struct {
	Year int `json:"year"`

	StaticRevenue    float64 `json:"static_revenue"`
	StaticSpending   float64 `json:"static_spending"`
	StaticDeficit    float64 `json:"static_deficit"`
	BehavioralOffset float64 `json:"behavioral_offset"`
	RevenueFeedback  float64 `json:"revenue_feedback"`
	FinalDeficit     float64 `json:"final_deficit"`
	Low              float64 `json:"low"`
	High             float64 `json:"high"`
	CumFinalDeficit  float64 `json:"cum_final_deficit"`
}

// Rows flattens the result into per-year ledger rows.
func (r *ScoringResult) Rows() []LedgerRow {
	n := r.FinalDeficit.Len()
	rows := make([]LedgerRow, 0, n)
	cum := 0.0
	for i := 0; i < n; i++ {
		cum += r.FinalDeficit.Values[i]
		row := LedgerRow{
			Year:             r.FinalDeficit.Year(i),
			StaticRevenue:    r.StaticRevenue.Values[i],
			StaticSpending:   r.StaticSpending.Values[i],
			StaticDeficit:    r.StaticDeficit.Values[i],
			BehavioralOffset: r.BehavioralOffset.Values[i],
			FinalDeficit:     r.FinalDeficit.Values[i],
			Low:              r.Low.Values[i],
			High:             r.High.Values[i],
			CumFinalDeficit:  cum,
		}
		if r.Dynamic != nil {
			row.RevenueFeedback = r.Dynamic.RevenueFeedback.Values[i]
		}
		rows = append(rows, row)
	}
	return rows
}
