package stats

import (
	"time"

	"pedidos/internal/core"
	"pedidos/internal/format"
)

// WeeklyStats summarizes the current calendar week and its week-over-week
// comparison, ready for the weekly summary card.
type WeeklyStats struct {
	TotalSpent    core.Money `json:"totalSpent"`
	Orders        int        `json:"orders"`
	AverageTicket core.Money `json:"averageTicket"`
	Comparison    Comparison `json:"comparison"`
	WeekRange     string     `json:"weekRange"`
}

// MonthlyStats summarizes the current calendar month.
type MonthlyStats struct {
	TotalSpent    core.Money `json:"totalSpent"`
	Orders        int        `json:"orders"`
	AverageTicket core.Money `json:"averageTicket"`
}

// TotalSpent sums the paid amount over all purchases.
func TotalSpent(purchases []core.Purchase) core.Money {
	var cents int64
	for _, p := range purchases {
		cents += p.Paid.Cents
	}
	return core.Money{Cents: cents}
}

// OrderCount returns the number of purchases.
func OrderCount(purchases []core.Purchase) int {
	return len(purchases)
}

// AverageTicket returns the mean paid amount per order, half-up rounded to
// the cent. An empty set yields zero, never an error.
func AverageTicket(purchases []core.Purchase) core.Money {
	n := int64(len(purchases))
	if n == 0 {
		return core.Money{}
	}
	total := TotalSpent(purchases).Cents
	return core.Money{Cents: (total + n/2) / n}
}

// Weekly computes the current week's totals and the comparison against the
// immediately preceding week.
func Weekly(purchases []core.Purchase, now time.Time) WeeklyStats {
	week := Resolve(core.Weekly, now)
	prevWeek := ResolvePrevious(core.Weekly, now)

	current := FilterRange(purchases, week)
	previous := FilterRange(purchases, prevWeek)

	spent := TotalSpent(current)
	return WeeklyStats{
		TotalSpent:    spent,
		Orders:        len(current),
		AverageTicket: AverageTicket(current),
		Comparison:    Compare(spent, len(current), TotalSpent(previous), len(previous)),
		WeekRange:     format.DayMonthRange(week.Start, week.End),
	}
}

// Monthly computes the current month's totals.
func Monthly(purchases []core.Purchase, now time.Time) MonthlyStats {
	month := FilterRange(purchases, Resolve(core.Monthly, now))
	return MonthlyStats{
		TotalSpent:    TotalSpent(month),
		Orders:        len(month),
		AverageTicket: AverageTicket(month),
	}
}
