package stats

import (
	"math"

	"pedidos/internal/core"
)

// Trend is the signed direction of period-over-period spend change.
type Trend string

const (
	TrendUp   Trend = "up"
	TrendDown Trend = "down"
)

// Comparison holds period-over-period deltas for the weekly summary.
type Comparison struct {
	// SpentDeltaPct is the rounded percentage change in total spend.
	// Defined as 0 when there was no prior spend, to avoid a misleading
	// spike on the first recorded week.
	SpentDeltaPct int `json:"spent"`
	// OrdersDelta is the signed difference in order count.
	OrdersDelta int   `json:"orders"`
	Trend       Trend `json:"trend"`
}

// Compare derives the deltas between the current and the immediately
// preceding period. Zero change is classified as TrendUp; that quirk is
// long-standing observed behavior and is kept on purpose.
func Compare(curSpent core.Money, curOrders int, prevSpent core.Money, prevOrders int) Comparison {
	pct := 0
	if prevSpent.Cents > 0 {
		pct = int(math.Round(float64(curSpent.Cents-prevSpent.Cents) / float64(prevSpent.Cents) * 100))
	}
	trend := TrendDown
	if pct >= 0 {
		trend = TrendUp
	}
	return Comparison{
		SpentDeltaPct: pct,
		OrdersDelta:   curOrders - prevOrders,
		Trend:         trend,
	}
}
