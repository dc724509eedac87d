package core

// Period identifies a calendar-aligned aggregation window.
type Period string

const (
	Weekly    Period = "weekly"
	Monthly   Period = "monthly"
	Quarterly Period = "quarterly"
	Yearly    Period = "yearly"
)

// Valid reports whether p is one of the supported period kinds.
func (p Period) Valid() bool {
	switch p {
	case Weekly, Monthly, Quarterly, Yearly:
		return true
	}
	return false
}
