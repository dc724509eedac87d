package google

import "testing"

func TestYearPrefixedName(t *testing.T) {
	tests := []struct {
		name string
		base string
		year int
		want string
	}{
		{name: "plain base gets year", base: "Pedidos", year: 2026, want: "2026 Pedidos"},
		{name: "already prefixed", base: "2025 Pedidos", year: 2026, want: "2025 Pedidos"},
		{name: "whitespace trimmed", base: "  Pedidos  ", year: 2026, want: "2026 Pedidos"},
		{name: "empty stays empty", base: "", year: 2026, want: ""},
		{name: "numeric-ish but not a year", base: "12345", year: 2026, want: "2026 12345"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := yearPrefixedName(tt.base, tt.year); got != tt.want {
				t.Errorf("yearPrefixedName(%q, %d) = %q, want %q", tt.base, tt.year, got, tt.want)
			}
		})
	}
}

func TestBoolCell(t *testing.T) {
	if got := boolCell(true); got != "sim" {
		t.Errorf("boolCell(true) = %q, want %q", got, "sim")
	}
	if got := boolCell(false); got != "não" {
		t.Errorf("boolCell(false) = %q, want %q", got, "não")
	}
}
