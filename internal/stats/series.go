package stats

import (
	"fmt"
	"time"

	"pedidos/internal/core"
	"pedidos/internal/format"
)

// MonthlySeries returns total spend per month over the trailing monthsBack
// months, oldest first, current month last. Values are whole Reais, half-up
// rounded, to keep the chart axis readable. Months without purchases appear
// as zero.
func MonthlySeries(purchases []core.Purchase, now time.Time, monthsBack int) []ChartPoint {
	out := make([]ChartPoint, 0, monthsBack)
	for i := monthsBack - 1; i >= 0; i-- {
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -i, 0)
		r := Range{Start: first, End: first.AddDate(0, 1, -1)}
		spent := TotalSpent(FilterRange(purchases, r))
		out = append(out, ChartPoint{
			Label: format.MonthAbbrev(first.Month()),
			Value: int((spent.Cents + 50) / 100),
		})
	}
	return out
}

// WeeksOfMonth splits the month containing now into calendar weeks starting
// on the Sunday on or before the 1st, and returns the spend per week in
// whole Reais. A month never yields more than five buckets.
func WeeksOfMonth(purchases []core.Purchase, now time.Time) []ChartPoint {
	month := Resolve(core.Monthly, now)
	inMonth := FilterRange(purchases, month)
	var out []ChartPoint
	start := startOfWeek(month.Start)
	for i := 0; i < 5 && !start.After(month.End); i++ {
		end := start.AddDate(0, 0, 6)
		spent := TotalSpent(FilterRange(inMonth, Range{Start: start, End: end}))
		out = append(out, ChartPoint{
			Label: fmt.Sprintf("Sem %d", i+1),
			Value: int((spent.Cents + 50) / 100),
		})
		start = start.AddDate(0, 0, 7)
	}
	return out
}
