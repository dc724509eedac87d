package stats

import (
	"math"
	"sort"
	"time"

	"pedidos/internal/core"
	"pedidos/internal/format"
)

// ChartPoint is one slice or bar of a breakdown chart. Emoji and Color are
// only set for breakdowns that carry presentation hints.
type ChartPoint struct {
	Label string `json:"label"`
	Value int    `json:"value"`
	Emoji string `json:"emoji,omitempty"`
	Color string `json:"color,omitempty"`
}

// CategoryBreakdown returns the share of orders per category as rounded
// percentages, largest first. Purchases referencing a category absent from
// categories still count toward the total but produce no entry, so the
// percentages of the listed slices may sum below 100.
func CategoryBreakdown(purchases []core.Purchase, categories []core.Category) []ChartPoint {
	total := len(purchases)
	if total == 0 {
		return nil
	}
	counts := make(map[string]int, len(categories))
	for _, p := range purchases {
		counts[p.CategoryID]++
	}
	var out []ChartPoint
	for _, c := range categories {
		pct := int(math.Round(float64(counts[c.ID]) / float64(total) * 100))
		if pct > 0 {
			out = append(out, ChartPoint{Label: c.Label, Value: pct, Emoji: c.Emoji, Color: c.Color})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Value > out[j].Value })
	return out
}

type timeOfDayBucket struct {
	label string
	emoji string
	color string
	from  int // inclusive hour
	to    int // exclusive hour; 0 means wrap-around remainder
}

var timeOfDayBuckets = [...]timeOfDayBucket{
	{label: "Manhã", emoji: "☀️", color: "#f59e0b", from: 5, to: 12},
	{label: "Tarde", emoji: "🌤️", color: "#f97316", from: 12, to: 18},
	{label: "Noite", emoji: "🌙", color: "#6366f1"},
}

// TimeOfDayBreakdown buckets orders into morning (05-12h), afternoon
// (12-18h) and night (the rest). Purchases with a malformed time land in the
// night bucket. Empty buckets are omitted.
func TimeOfDayBreakdown(purchases []core.Purchase) []ChartPoint {
	var counts [len(timeOfDayBuckets)]int
	for _, p := range purchases {
		h := p.Time.Hour()
		switch {
		case h >= 5 && h < 12:
			counts[0]++
		case h >= 12 && h < 18:
			counts[1]++
		default:
			counts[2]++
		}
	}
	var out []ChartPoint
	for i, b := range timeOfDayBuckets {
		if counts[i] > 0 {
			out = append(out, ChartPoint{Label: b.label, Value: counts[i], Emoji: b.emoji, Color: b.color})
		}
	}
	return out
}

// WeekdayBreakdown counts orders per day of week. The result always has
// seven entries, Sunday first, zero-filled.
func WeekdayBreakdown(purchases []core.Purchase) []ChartPoint {
	var counts [7]int
	for _, p := range purchases {
		counts[int(p.Date.Weekday())]++
	}
	out := make([]ChartPoint, 7)
	for i := range out {
		out[i] = ChartPoint{Label: format.WeekdayAbbrev(time.Weekday(i)), Value: counts[i]}
	}
	return out
}

// CategoryTicket is the average paid amount for one category.
type CategoryTicket struct {
	Label   string     `json:"label"`
	Average core.Money `json:"average"`
}

// AverageTicketByCategory groups purchases by resolved category label and
// computes the mean ticket of each group, highest average first. Unknown
// category ids group under the fallback label (the raw id).
func AverageTicketByCategory(purchases []core.Purchase, categories []core.Category) []CategoryTicket {
	type acc struct {
		cents int64
		n     int64
	}
	sums := make(map[string]*acc)
	var order []string
	for _, p := range purchases {
		label := core.ResolveCategory(categories, p.CategoryID).Label
		a, ok := sums[label]
		if !ok {
			a = &acc{}
			sums[label] = a
			order = append(order, label)
		}
		a.cents += p.Paid.Cents
		a.n++
	}
	out := make([]CategoryTicket, 0, len(order))
	for _, label := range order {
		a := sums[label]
		out = append(out, CategoryTicket{
			Label:   label,
			Average: core.Money{Cents: (a.cents + a.n/2) / a.n},
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Average.Cents > out[j].Average.Cents })
	return out
}
