package stats

import (
	"testing"
	"time"

	"pedidos/internal/core"
)

func categorized(dateD int, categoryID string, paidCents int64) core.Purchase {
	p := purchase(2026, time.August, dateD, paidCents)
	p.CategoryID = categoryID
	return p
}

func TestCategoryBreakdown(t *testing.T) {
	categories := core.DefaultCategories(0)

	t.Run("empty", func(t *testing.T) {
		if got := CategoryBreakdown(nil, categories); got != nil {
			t.Errorf("CategoryBreakdown(nil) = %v, want nil", got)
		}
	})

	t.Run("percentages largest first", func(t *testing.T) {
		purchases := []core.Purchase{
			categorized(1, "fast-food", 1000),
			categorized(2, "fast-food", 1000),
			categorized(3, "fast-food", 1000),
			categorized(4, "japonesa", 1000),
		}
		got := CategoryBreakdown(purchases, categories)
		if len(got) != 2 {
			t.Fatalf("CategoryBreakdown() returned %d entries, want 2", len(got))
		}
		if got[0].Label != "Fast Food" || got[0].Value != 75 {
			t.Errorf("first entry = %+v, want Fast Food 75", got[0])
		}
		if got[1].Label != "Japonesa" || got[1].Value != 25 {
			t.Errorf("second entry = %+v, want Japonesa 25", got[1])
		}
		if got[0].Emoji != "🍔" || got[0].Color != "#ea1d2c" {
			t.Errorf("first entry presentation = %q %q", got[0].Emoji, got[0].Color)
		}
	})

	t.Run("deleted category counts toward total but gets no entry", func(t *testing.T) {
		purchases := []core.Purchase{
			categorized(1, "fast-food", 1000),
			categorized(2, "extinta", 1000),
		}
		got := CategoryBreakdown(purchases, categories)
		if len(got) != 1 {
			t.Fatalf("CategoryBreakdown() returned %d entries, want 1", len(got))
		}
		if got[0].Label != "Fast Food" || got[0].Value != 50 {
			t.Errorf("entry = %+v, want Fast Food 50", got[0])
		}
	})

	t.Run("ties keep category order", func(t *testing.T) {
		purchases := []core.Purchase{
			categorized(1, "japonesa", 1000),
			categorized(2, "fast-food", 1000),
		}
		got := CategoryBreakdown(purchases, categories)
		if len(got) != 2 || got[0].Label != "Fast Food" || got[1].Label != "Japonesa" {
			t.Errorf("CategoryBreakdown() = %+v, want category order on ties", got)
		}
	})
}

func TestTimeOfDayBreakdown(t *testing.T) {
	at := func(clock core.ClockTime) core.Purchase {
		p := purchase(2026, time.August, 10, 1000)
		p.Time = clock
		return p
	}

	purchases := []core.Purchase{
		at("08:00"), // morning
		at("05:00"), // morning boundary
		at("12:00"), // afternoon boundary
		at("17:59"), // afternoon
		at("21:00"), // night
		at("04:59"), // night
		at("oops"),  // malformed lands in night
	}

	got := TimeOfDayBreakdown(purchases)
	if len(got) != 3 {
		t.Fatalf("TimeOfDayBreakdown() returned %d buckets, want 3", len(got))
	}
	want := []struct {
		label string
		value int
	}{
		{"Manhã", 2},
		{"Tarde", 2},
		{"Noite", 3},
	}
	for i, w := range want {
		if got[i].Label != w.label || got[i].Value != w.value {
			t.Errorf("bucket %d = %+v, want %s=%d", i, got[i], w.label, w.value)
		}
	}

	t.Run("empty buckets omitted", func(t *testing.T) {
		got := TimeOfDayBreakdown([]core.Purchase{at("09:00")})
		if len(got) != 1 || got[0].Label != "Manhã" {
			t.Errorf("TimeOfDayBreakdown() = %+v, want single Manhã bucket", got)
		}
	})
}

func TestWeekdayBreakdown(t *testing.T) {
	purchases := []core.Purchase{
		purchase(2026, time.August, 9, 1000),  // sunday
		purchase(2026, time.August, 9, 1000),  // sunday
		purchase(2026, time.August, 12, 1000), // wednesday
	}

	got := WeekdayBreakdown(purchases)
	if len(got) != 7 {
		t.Fatalf("WeekdayBreakdown() returned %d entries, want 7", len(got))
	}
	if got[0].Label != "Dom" || got[6].Label != "Sáb" {
		t.Errorf("labels = %q..%q, want Dom..Sáb", got[0].Label, got[6].Label)
	}
	wantCounts := [7]int{2, 0, 0, 1, 0, 0, 0}
	for i, want := range wantCounts {
		if got[i].Value != want {
			t.Errorf("entry %s = %d, want %d", got[i].Label, got[i].Value, want)
		}
	}
}

func TestAverageTicketByCategory(t *testing.T) {
	categories := core.DefaultCategories(0)
	purchases := []core.Purchase{
		categorized(1, "fast-food", 2000),
		categorized(2, "fast-food", 3000),
		categorized(3, "japonesa", 8000),
		categorized(4, "extinta", 1000),
	}

	got := AverageTicketByCategory(purchases, categories)
	if len(got) != 3 {
		t.Fatalf("AverageTicketByCategory() returned %d entries, want 3", len(got))
	}
	if got[0].Label != "Japonesa" || got[0].Average.Cents != 8000 {
		t.Errorf("first = %+v, want Japonesa 8000", got[0])
	}
	if got[1].Label != "Fast Food" || got[1].Average.Cents != 2500 {
		t.Errorf("second = %+v, want Fast Food 2500", got[1])
	}
	// Unknown ids group under the raw id label.
	if got[2].Label != "extinta" || got[2].Average.Cents != 1000 {
		t.Errorf("third = %+v, want extinta 1000", got[2])
	}
}
