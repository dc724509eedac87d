package stats

import (
	"time"

	"pedidos/internal/core"
)

// FilterRange selects the purchases whose date falls within r, inclusive on
// both bounds. Time of day is ignored: a purchase at any hour of a boundary
// day is included.
func FilterRange(purchases []core.Purchase, r Range) []core.Purchase {
	var out []core.Purchase
	for _, p := range purchases {
		if r.Contains(p.Date.Time) {
			out = append(out, p)
		}
	}
	return out
}

// FilterPeriod selects the purchases falling in the period of the given kind
// containing now.
func FilterPeriod(purchases []core.Purchase, kind core.Period, now time.Time) []core.Purchase {
	return FilterRange(purchases, Resolve(kind, now))
}

// CountAlone returns how many of the purchases were solo orders.
func CountAlone(purchases []core.Purchase) int {
	n := 0
	for _, p := range purchases {
		if p.IsAlone {
			n++
		}
	}
	return n
}
