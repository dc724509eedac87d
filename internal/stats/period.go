// Package stats is the analytics engine: pure functions turning a snapshot
// of purchases into period-scoped totals, breakdowns and series. Every
// function takes the reference instant explicitly and never mutates its
// inputs, so concurrent calls are safe.
package stats

import (
	"time"

	"pedidos/internal/core"
)

// Range is an inclusive calendar interval. Membership is decided by
// calendar day only; the time-of-day of the bounds is irrelevant.
type Range struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether the calendar day of t falls within the range,
// inclusive on both ends.
func (r Range) Contains(t time.Time) bool {
	o := dayOrdinal(t)
	return o >= dayOrdinal(r.Start) && o <= dayOrdinal(r.End)
}

func dayOrdinal(t time.Time) int {
	y, m, d := t.Date()
	return y*10000 + int(m)*100 + d
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// startOfWeek returns the Sunday on or before t. Weeks start on Sunday,
// matching the client's locale.
func startOfWeek(t time.Time) time.Time {
	return startOfDay(t).AddDate(0, 0, -int(t.Weekday()))
}

// Resolve returns the bounds of the calendar period of the given kind that
// contains now. Always resolvable; unknown kinds fall back to yearly.
func Resolve(kind core.Period, now time.Time) Range {
	switch kind {
	case core.Weekly:
		start := startOfWeek(now)
		return Range{Start: start, End: start.AddDate(0, 0, 6)}
	case core.Monthly:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return Range{Start: start, End: start.AddDate(0, 1, -1)}
	case core.Quarterly:
		firstMonth := time.Month((int(now.Month())-1)/3*3 + 1)
		start := time.Date(now.Year(), firstMonth, 1, 0, 0, 0, 0, now.Location())
		return Range{Start: start, End: start.AddDate(0, 3, -1)}
	default:
		start := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
		return Range{Start: start, End: time.Date(now.Year(), time.December, 31, 0, 0, 0, 0, now.Location())}
	}
}

// ResolvePrevious returns the same-kind period immediately preceding the one
// containing now.
func ResolvePrevious(kind core.Period, now time.Time) Range {
	current := Resolve(kind, now)
	return Resolve(kind, current.Start.AddDate(0, 0, -1))
}
