// Package insights evaluates the weekly habit rules and produces the
// coaching cards shown on the dashboard. Rules are evaluated in a fixed
// order against the current calendar week.
package insights

import (
	"fmt"
	"strings"
	"time"

	"pedidos/internal/core"
	"pedidos/internal/format"
	"pedidos/internal/stats"
)

// Severity classifies how an insight should be presented.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityDanger  Severity = "danger"
	SeverityInfo    Severity = "info"
)

// Insight is one coaching card.
type Insight struct {
	ID       string   `json:"id"`
	Severity Severity `json:"type"`
	Title    string   `json:"title"`
	Message  string   `json:"message"`
	Emoji    string   `json:"emoji"`
}

// Weekly habit limits.
const (
	maxOrdersPerWeek        = 3
	maxAloneOrdersPerWeek   = 1
	maxFastfoodLunchPerWeek = 1
	highSpendingCents       = 100_00
)

var fastFoodAliases = []string{"fast food", "fastfood", "fast-food"}

// weekFacts is the digest of the current week the rules run against.
type weekFacts struct {
	orders        int
	aloneOrders   int
	fastfoodLunch int
	spent         core.Money
}

// rule pairs a firing condition with its card. The weekly status rule
// additionally requires that no earlier rule has fired, which is what the
// emitted argument carries.
type rule struct {
	applies func(f weekFacts, emitted int) bool
	build   func(f weekFacts) Insight
}

var rules = []rule{
	{
		applies: func(f weekFacts, _ int) bool { return f.orders >= maxOrdersPerWeek },
		build: func(f weekFacts) Insight {
			return Insight{
				ID:       "max-orders-reached",
				Severity: SeverityDanger,
				Title:    "Limite da semana atingido!",
				Message:  fmt.Sprintf("Você já fez %d pedidos esta semana. Que tal cozinhar ou preparar uma marmita? 🥘", f.orders),
				Emoji:    "🚨",
			}
		},
	},
	{
		applies: func(f weekFacts, _ int) bool { return f.orders == maxOrdersPerWeek-1 },
		build: func(f weekFacts) Insight {
			return Insight{
				ID:       "max-orders-warning",
				Severity: SeverityWarning,
				Title:    "Penúltimo pedido da semana",
				Message:  fmt.Sprintf("Você fez %d de %d pedidos permitidos. Só mais 1 esta semana! 🎯", f.orders, maxOrdersPerWeek),
				Emoji:    "⚠️",
			}
		},
	},
	{
		applies: func(f weekFacts, _ int) bool { return f.aloneOrders >= maxAloneOrdersPerWeek },
		build: func(f weekFacts) Insight {
			return Insight{
				ID:       "max-alone-orders",
				Severity: SeverityDanger,
				Title:    "Limite de pedidos sozinho atingido",
				Message:  fmt.Sprintf("Você já pediu sozinho %dx esta semana. Próximos pedidos devem ser acompanhados! 👥", f.aloneOrders),
				Emoji:    "🚫",
			}
		},
	},
	{
		applies: func(f weekFacts, _ int) bool { return f.fastfoodLunch >= maxFastfoodLunchPerWeek },
		build: func(f weekFacts) Insight {
			return Insight{
				ID:       "max-fastfood-lunch",
				Severity: SeverityWarning,
				Title:    "Fast food no almoço já foi!",
				Message:  fmt.Sprintf("Você já comeu fast food no almoço %dx esta semana. Que tal algo mais saudável? 🥗", f.fastfoodLunch),
				Emoji:    "🍔",
			}
		},
	},
	{
		applies: func(f weekFacts, _ int) bool { return f.orders == 0 },
		build: func(weekFacts) Insight {
			return Insight{
				ID:       "no-orders-yet",
				Severity: SeveritySuccess,
				Title:    "Semana impecável! 🎉",
				Message:  "Você ainda não pediu delivery esta semana. Continue assim!",
				Emoji:    "✨",
			}
		},
	},
	{
		applies: func(f weekFacts, _ int) bool {
			return f.orders > 0 && f.orders < maxOrdersPerWeek && f.aloneOrders == 0
		},
		build: func(f weekFacts) Insight {
			return Insight{
				ID:       "good-behavior",
				Severity: SeveritySuccess,
				Title:    "Você está indo bem!",
				Message:  fmt.Sprintf("%d pedidos esta semana, todos acompanhados. Ótima escolha! 👏", f.orders),
				Emoji:    "💚",
			}
		},
	},
	{
		applies: func(f weekFacts, emitted int) bool {
			return emitted == 0 && f.orders > 0 && f.orders < maxOrdersPerWeek
		},
		build: func(f weekFacts) Insight {
			remaining := maxOrdersPerWeek - f.orders
			aloneHint := " (apenas acompanhados)"
			if left := maxAloneOrdersPerWeek - f.aloneOrders; left > 0 {
				aloneHint = fmt.Sprintf(" (%d pode ser sozinho)", left)
			}
			return Insight{
				ID:       "weekly-status",
				Severity: SeverityInfo,
				Title:    "Status da semana",
				Message:  fmt.Sprintf("%d/%d pedidos feitos. Restam %d pedidos%s.", f.orders, maxOrdersPerWeek, remaining, aloneHint),
				Emoji:    "📊",
			}
		},
	},
	{
		applies: func(f weekFacts, _ int) bool { return f.spent.Cents > highSpendingCents },
		build: func(f weekFacts) Insight {
			return Insight{
				ID:       "high-spending",
				Severity: SeverityWarning,
				Title:    "Gastos altos esta semana",
				Message:  fmt.Sprintf("Você já gastou %s esta semana. Fique de olho! 💰", format.Currency(f.spent)),
				Emoji:    "💸",
			}
		},
	},
}

// Generate evaluates every rule against the calendar week containing now
// and returns the cards that fired, in rule order. The result may be empty
// only in theory; in practice the zero-order week always yields the success
// card.
func Generate(purchases []core.Purchase, categories []core.Category, now time.Time) []Insight {
	week := stats.FilterPeriod(purchases, core.Weekly, now)
	facts := weekFacts{
		orders:      len(week),
		aloneOrders: stats.CountAlone(week),
		spent:       stats.TotalSpent(week),
	}
	for _, p := range week {
		if isFastFood(categoryLabel(categories, p.CategoryID)) && isLunchTime(p.Time) {
			facts.fastfoodLunch++
		}
	}

	var out []Insight
	for _, r := range rules {
		if r.applies(facts, len(out)) {
			out = append(out, r.build(facts))
		}
	}
	return out
}

// categoryLabel returns the label of the matching category, or "" when the
// id is unknown. Unknown categories can never be fast food.
func categoryLabel(categories []core.Category, id string) string {
	for _, c := range categories {
		if c.ID == id {
			return c.Label
		}
	}
	return ""
}

func isFastFood(label string) bool {
	lower := strings.ToLower(label)
	for _, alias := range fastFoodAliases {
		if strings.Contains(lower, alias) {
			return true
		}
	}
	return false
}

// isLunchTime reports whether the order was placed between 11h and 15h.
func isLunchTime(t core.ClockTime) bool {
	h := t.Hour()
	return h >= 11 && h < 15
}
