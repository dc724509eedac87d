package http

import (
	"net/http"
	"time"

	"pedidos/internal/core"
	"pedidos/internal/format"
	"pedidos/internal/insights"
	"pedidos/internal/log"
	"pedidos/internal/stats"
)

// monthsOfEvolution is how far back the spending evolution chart reaches,
// current month included.
const monthsOfEvolution = 6

// periodParam reads ?period=, defaulting to yearly like the dashboard.
func periodParam(r *http.Request) core.Period {
	kind := core.Period(r.URL.Query().Get("period"))
	if !kind.Valid() {
		return core.Yearly
	}
	return kind
}

// snapshot loads the full purchase set; the analytics functions do the
// period scoping themselves.
func (s *Server) snapshot(r *http.Request) ([]core.Purchase, bool) {
	purchases, err := s.store.ListPurchases(r.Context())
	if err != nil {
		log.FromContext(r.Context()).Error("Load purchases for stats failed", "error", err)
		return nil, false
	}
	return purchases, true
}

func (s *Server) handleWeeklyStats(w http.ResponseWriter, r *http.Request) {
	purchases, ok := s.snapshot(r)
	if !ok {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, stats.Weekly(purchases, time.Now()))
}

func (s *Server) handleMonthlyStats(w http.ResponseWriter, r *http.Request) {
	purchases, ok := s.snapshot(r)
	if !ok {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, stats.Monthly(purchases, time.Now()))
}

func (s *Server) handleCategoryBreakdown(w http.ResponseWriter, r *http.Request) {
	purchases, ok := s.snapshot(r)
	if !ok {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	categories, err := s.store.ListCategories(r.Context())
	if err != nil {
		log.FromContext(r.Context()).Error("Load categories for stats failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	scoped := stats.FilterPeriod(purchases, periodParam(r), time.Now())
	writeJSON(w, http.StatusOK, emptyAsList(stats.CategoryBreakdown(scoped, categories)))
}

func (s *Server) handleTimeOfDayBreakdown(w http.ResponseWriter, r *http.Request) {
	purchases, ok := s.snapshot(r)
	if !ok {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	scoped := stats.FilterPeriod(purchases, periodParam(r), time.Now())
	writeJSON(w, http.StatusOK, emptyAsList(stats.TimeOfDayBreakdown(scoped)))
}

func (s *Server) handleWeekdayBreakdown(w http.ResponseWriter, r *http.Request) {
	purchases, ok := s.snapshot(r)
	if !ok {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	scoped := stats.FilterPeriod(purchases, periodParam(r), time.Now())
	writeJSON(w, http.StatusOK, stats.WeekdayBreakdown(scoped))
}

func (s *Server) handleMonthlySeries(w http.ResponseWriter, r *http.Request) {
	purchases, ok := s.snapshot(r)
	if !ok {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, stats.MonthlySeries(purchases, time.Now(), monthsOfEvolution))
}

func (s *Server) handleWeeksOfMonth(w http.ResponseWriter, r *http.Request) {
	purchases, ok := s.snapshot(r)
	if !ok {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, stats.WeeksOfMonth(purchases, time.Now()))
}

func (s *Server) handleTicketsByCategory(w http.ResponseWriter, r *http.Request) {
	purchases, ok := s.snapshot(r)
	if !ok {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	categories, err := s.store.ListCategories(r.Context())
	if err != nil {
		log.FromContext(r.Context()).Error("Load categories for stats failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	scoped := stats.FilterPeriod(purchases, periodParam(r), time.Now())
	writeJSON(w, http.StatusOK, emptyAsList(stats.AverageTicketByCategory(scoped, categories)))
}

func (s *Server) handlePeriodLabel(w http.ResponseWriter, r *http.Request) {
	kind := periodParam(r)
	now := time.Now()
	rng := stats.Resolve(kind, now)
	writeJSON(w, http.StatusOK, map[string]string{
		"period": string(kind),
		"label":  format.PeriodLabel(kind, rng.Start, rng.End, now),
	})
}

func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	purchases, ok := s.snapshot(r)
	if !ok {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	categories, err := s.store.ListCategories(r.Context())
	if err != nil {
		log.FromContext(r.Context()).Error("Load categories for insights failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, insights.Generate(purchases, categories, time.Now()))
}

// emptyAsList keeps empty chart responses as [] instead of null.
func emptyAsList[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}
