package core

import (
	"errors"
	"testing"
)

func validPurchase() Purchase {
	return Purchase{
		ID:         "p-1",
		Dish:       "Combo X-Burger",
		Restaurant: "Lanchonete do Zé",
		Paid:       Money{Cents: 3550},
		Date:       NewDate(2026, 8, 12),
		Time:       "12:30",
		CategoryID: "fast-food",
	}
}

func TestPurchase_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Purchase)
		wantErr error
	}{
		{name: "valid", mutate: func(*Purchase) {}},
		{name: "empty dish", mutate: func(p *Purchase) { p.Dish = "  " }, wantErr: ErrEmptyDish},
		{name: "empty restaurant", mutate: func(p *Purchase) { p.Restaurant = "" }, wantErr: ErrEmptyRestaurant},
		{name: "zero paid", mutate: func(p *Purchase) { p.Paid = Money{} }, wantErr: ErrInvalidAmount},
		{name: "negative paid", mutate: func(p *Purchase) { p.Paid = Money{Cents: -100} }, wantErr: ErrInvalidAmount},
		{name: "zero date", mutate: func(p *Purchase) { p.Date = Date{} }, wantErr: ErrInvalidDate},
		{name: "malformed time", mutate: func(p *Purchase) { p.Time = "25:99" }, wantErr: ErrInvalidTime},
		{name: "missing time", mutate: func(p *Purchase) { p.Time = "" }, wantErr: ErrInvalidTime},
		{name: "empty category", mutate: func(p *Purchase) { p.CategoryID = "" }, wantErr: ErrEmptyCategory},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validPurchase()
			tt.mutate(&p)
			err := p.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}

	t.Run("total below paid rejected", func(t *testing.T) {
		p := validPurchase()
		p.Total = Money{Cents: p.Paid.Cents - 1}
		if err := p.Validate(); err == nil {
			t.Error("Validate() should reject total below paid")
		}
	})

	t.Run("total equal to paid accepted", func(t *testing.T) {
		p := validPurchase()
		p.Total = p.Paid
		if err := p.Validate(); err != nil {
			t.Errorf("Validate() = %v, want nil", err)
		}
	})
}

func TestPurchase_Discount(t *testing.T) {
	tests := []struct {
		name        string
		paid, total int64
		wantAmount  int64
		wantPct     int
		wantOK      bool
	}{
		{name: "no total recorded", paid: 3000, total: 0, wantOK: false},
		{name: "total equals paid", paid: 3000, total: 3000, wantOK: false},
		{name: "half off", paid: 2500, total: 5000, wantAmount: 2500, wantPct: 50, wantOK: true},
		{name: "rounding up", paid: 6650, total: 9950, wantAmount: 3300, wantPct: 33, wantOK: true},
		{name: "small discount", paid: 9900, total: 10000, wantAmount: 100, wantPct: 1, wantOK: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validPurchase()
			p.Paid = Money{Cents: tt.paid}
			p.Total = Money{Cents: tt.total}
			amount, pct, ok := p.Discount()
			if ok != tt.wantOK {
				t.Fatalf("Discount() ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if amount.Cents != tt.wantAmount {
				t.Errorf("Discount() amount = %d, want %d", amount.Cents, tt.wantAmount)
			}
			if pct != tt.wantPct {
				t.Errorf("Discount() percent = %d, want %d", pct, tt.wantPct)
			}
		})
	}
}

func TestClockTime_Hour(t *testing.T) {
	tests := []struct {
		value ClockTime
		want  int
	}{
		{"00:00", 0},
		{"05:00", 5},
		{"12:30", 12},
		{"23:59", 23},
		{"24:00", -1},
		{"12:60", -1},
		{"nope", -1},
		{"", -1},
	}
	for _, tt := range tests {
		t.Run(string(tt.value), func(t *testing.T) {
			if got := tt.value.Hour(); got != tt.want {
				t.Errorf("ClockTime(%q).Hour() = %d, want %d", tt.value, got, tt.want)
			}
		})
	}
}

func TestResolveCategory(t *testing.T) {
	categories := DefaultCategories(0)

	t.Run("known id", func(t *testing.T) {
		got := ResolveCategory(categories, "japonesa")
		if got.Label != "Japonesa" || got.Emoji != "🍣" {
			t.Errorf("ResolveCategory() = %+v", got)
		}
	})

	t.Run("unknown id falls back", func(t *testing.T) {
		got := ResolveCategory(categories, "extinta")
		if got.Label != "extinta" {
			t.Errorf("fallback label = %q, want raw id", got.Label)
		}
		if got.Emoji != FallbackEmoji || got.Color != FallbackColor {
			t.Errorf("fallback presentation = %q %q", got.Emoji, got.Color)
		}
	})
}

func TestDefaultCategories(t *testing.T) {
	categories := DefaultCategories(42)
	if len(categories) != 6 {
		t.Fatalf("DefaultCategories() returned %d entries, want 6", len(categories))
	}
	for i, c := range categories {
		if !c.IsDefault {
			t.Errorf("category %s should be default", c.ID)
		}
		if c.Order != i+1 {
			t.Errorf("category %s order = %d, want %d", c.ID, c.Order, i+1)
		}
		if c.CreatedAt != 42 {
			t.Errorf("category %s createdAt = %d, want 42", c.ID, c.CreatedAt)
		}
	}
	if categories[0].Label != "Fast Food" || categories[5].Label != "Outras" {
		t.Errorf("unexpected ordering: first=%q last=%q", categories[0].Label, categories[5].Label)
	}
}
