package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"pedidos/internal/core"
	"pedidos/internal/format"
	"pedidos/internal/store"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeStoreError maps store sentinel errors to HTTP statuses.
func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, store.ErrDefaultCategory):
		writeError(w, http.StatusUnprocessableEntity, store.ErrDefaultCategory.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}

// purchasePayload is the wire shape of a purchase, matching the client's
// field names.
type purchasePayload struct {
	ID            string     `json:"id,omitempty"`
	Dish          string     `json:"dish"`
	Restaurant    string     `json:"restaurant"`
	Paid          core.Money `json:"valuePaid"`
	Total         core.Money `json:"valueTotal,omitempty"`
	Date          string     `json:"date"`
	Time          string     `json:"time"`
	CategoryID    string     `json:"category"`
	IsEvent       bool       `json:"isEvent"`
	IsAlone       bool       `json:"isAlone"`
	CreatedAt     int64      `json:"createdAt,omitempty"`
	FormattedDate string     `json:"formattedDate,omitempty"`
}

func (p purchasePayload) toDomain(id string, createdAt int64) (core.Purchase, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(p.Date))
	if err != nil {
		return core.Purchase{}, core.ErrInvalidDate
	}
	purchase := core.Purchase{
		ID:         id,
		Dish:       sanitizeInput(p.Dish),
		Restaurant: sanitizeInput(p.Restaurant),
		Paid:       p.Paid,
		Total:      p.Total,
		Date:       core.Date{Time: t},
		Time:       core.ClockTime(strings.TrimSpace(p.Time)),
		CategoryID: strings.TrimSpace(p.CategoryID),
		IsEvent:    p.IsEvent,
		IsAlone:    p.IsAlone,
		CreatedAt:  createdAt,
	}
	if err := purchase.Validate(); err != nil {
		return core.Purchase{}, err
	}
	return purchase, nil
}

func toPurchasePayload(p core.Purchase, now time.Time) purchasePayload {
	return purchasePayload{
		ID:            p.ID,
		Dish:          p.Dish,
		Restaurant:    p.Restaurant,
		Paid:          p.Paid,
		Total:         p.Total,
		Date:          p.Date.Format("2006-01-02"),
		Time:          string(p.Time),
		CategoryID:    p.CategoryID,
		IsEvent:       p.IsEvent,
		IsAlone:       p.IsAlone,
		CreatedAt:     p.CreatedAt,
		FormattedDate: format.RelativeDate(p.Date, p.Time, now),
	}
}

// categoryPayload is the wire shape of a category.
type categoryPayload struct {
	ID        string `json:"id,omitempty"`
	Label     string `json:"label"`
	Emoji     string `json:"emoji"`
	Color     string `json:"color"`
	Order     int    `json:"order"`
	IsDefault bool   `json:"isDefault,omitempty"`
	CreatedAt int64  `json:"createdAt,omitempty"`
}

func (c categoryPayload) toDomain(id string, isDefault bool, createdAt int64) (core.Category, error) {
	category := core.Category{
		ID:        id,
		Label:     sanitizeInput(c.Label),
		Emoji:     strings.TrimSpace(c.Emoji),
		Color:     strings.TrimSpace(c.Color),
		Order:     c.Order,
		IsDefault: isDefault,
		CreatedAt: createdAt,
	}
	if category.Emoji == "" {
		category.Emoji = core.FallbackEmoji
	}
	if category.Color == "" {
		category.Color = core.FallbackColor
	}
	if err := category.Validate(); err != nil {
		return core.Category{}, err
	}
	return category, nil
}

func toCategoryPayload(c core.Category) categoryPayload {
	return categoryPayload{
		ID:        c.ID,
		Label:     c.Label,
		Emoji:     c.Emoji,
		Color:     c.Color,
		Order:     c.Order,
		IsDefault: c.IsDefault,
		CreatedAt: c.CreatedAt,
	}
}
