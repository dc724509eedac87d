package stats

import (
	"testing"
	"time"

	"pedidos/internal/core"
)

func TestMonthlySeries(t *testing.T) {
	now := day(2026, time.August, 15)

	t.Run("six months oldest first", func(t *testing.T) {
		series := MonthlySeries(nil, now, 6)
		if len(series) != 6 {
			t.Fatalf("MonthlySeries() returned %d entries, want 6", len(series))
		}
		wantLabels := []string{"mar", "abr", "mai", "jun", "jul", "ago"}
		for i, want := range wantLabels {
			if series[i].Label != want {
				t.Errorf("entry %d label = %q, want %q", i, series[i].Label, want)
			}
			if series[i].Value != 0 {
				t.Errorf("entry %d value = %d, want 0", i, series[i].Value)
			}
		}
	})

	t.Run("buckets spend into the right month in whole reais", func(t *testing.T) {
		purchases := []core.Purchase{
			purchase(2026, time.August, 1, 3550),  // current month
			purchase(2026, time.August, 20, 1000), // current month
			purchase(2026, time.July, 31, 9990),   // previous month
			purchase(2026, time.February, 1, 5000), // outside the window
		}
		series := MonthlySeries(purchases, now, 6)
		if got := series[5].Value; got != 46 { // 45.50 rounds half-up
			t.Errorf("august value = %d, want 46", got)
		}
		if got := series[4].Value; got != 100 { // 99.90 rounds up
			t.Errorf("july value = %d, want 100", got)
		}
		if got := series[0].Value; got != 0 {
			t.Errorf("march value = %d, want 0", got)
		}
	})

	t.Run("window crosses year boundary", func(t *testing.T) {
		series := MonthlySeries(nil, day(2026, time.January, 10), 3)
		wantLabels := []string{"nov", "dez", "jan"}
		for i, want := range wantLabels {
			if series[i].Label != want {
				t.Errorf("entry %d label = %q, want %q", i, series[i].Label, want)
			}
		}
	})
}

func TestWeeksOfMonth(t *testing.T) {
	// August 2026: the 1st is a Saturday, so the first bucket starts on
	// Sunday July 26 and the month spans six calendar weeks; the cap keeps
	// the last partial week out.
	now := day(2026, time.August, 15)

	purchases := []core.Purchase{
		purchase(2026, time.August, 1, 2000),  // week 1 (Jul 26 - Aug 1)
		purchase(2026, time.July, 31, 5000),   // same calendar week but out of month
		purchase(2026, time.August, 12, 3000), // week 3 (Aug 9 - 15)
	}

	got := WeeksOfMonth(purchases, now)
	if len(got) != 5 {
		t.Fatalf("WeeksOfMonth() returned %d buckets, want 5", len(got))
	}
	wantLabels := []string{"Sem 1", "Sem 2", "Sem 3", "Sem 4", "Sem 5"}
	for i, want := range wantLabels {
		if got[i].Label != want {
			t.Errorf("bucket %d label = %q, want %q", i, got[i].Label, want)
		}
	}
	if got[0].Value != 20 {
		t.Errorf("week 1 value = %d, want 20 (out-of-month purchase excluded)", got[0].Value)
	}
	if got[2].Value != 30 {
		t.Errorf("week 3 value = %d, want 30", got[2].Value)
	}
	if got[1].Value != 0 || got[3].Value != 0 || got[4].Value != 0 {
		t.Errorf("empty weeks should be zero: %+v", got)
	}
}

func TestWeeksOfMonth_ShortMonth(t *testing.T) {
	// February 2026 starts on a Sunday and has exactly four calendar weeks.
	got := WeeksOfMonth(nil, day(2026, time.February, 10))
	if len(got) != 4 {
		t.Fatalf("WeeksOfMonth() returned %d buckets, want 4", len(got))
	}
}
