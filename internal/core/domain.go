package core

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

type (
	Date struct {
		time.Time
	}

	// ClockTime is a local time of day in "HH:MM" form.
	ClockTime string

	Money struct {
		Cents int64
	}

	Purchase struct {
		ID         string
		Dish       string
		Restaurant string
		Paid       Money
		// Total is the full order value before any split or discount.
		// Zero means "not provided".
		Total      Money
		Date       Date
		Time       ClockTime
		CategoryID string
		IsEvent    bool
		IsAlone    bool
		// CreatedAt is the record-creation timestamp in epoch millis.
		// Used for audit display only, never for period bucketing.
		CreatedAt int64
	}

	Category struct {
		ID        string
		Label     string
		Emoji     string
		Color     string
		Order     int
		IsDefault bool
		CreatedAt int64
	}
)

var (
	ErrEmptyDish       = errors.New("empty dish")
	ErrEmptyRestaurant = errors.New("empty restaurant")
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrInvalidDate     = errors.New("invalid date")
	ErrInvalidTime     = errors.New("invalid time")
	ErrEmptyCategory   = errors.New("empty category")
	ErrEmptyLabel      = errors.New("empty label")
)

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// SameDay reports whether both dates fall on the same calendar day.
func (d Date) SameDay(other time.Time) bool {
	y1, m1, d1 := d.Date()
	y2, m2, d2 := other.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// Hour returns the hour component, or -1 if the value is malformed.
func (t ClockTime) Hour() int {
	h, _, err := t.parts()
	if err != nil {
		return -1
	}
	return h
}

func (t ClockTime) Validate() error {
	_, _, err := t.parts()
	return err
}

func (t ClockTime) parts() (hour, minute int, err error) {
	s := string(t)
	sep := strings.IndexByte(s, ':')
	if sep < 0 {
		return 0, 0, ErrInvalidTime
	}
	hour, err = strconv.Atoi(s[:sep])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, ErrInvalidTime
	}
	minute, err = strconv.Atoi(s[sep+1:])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, ErrInvalidTime
	}
	return hour, minute, nil
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (p Purchase) Validate() error {
	if len(strings.TrimSpace(p.Dish)) == 0 {
		return ErrEmptyDish
	}
	if len(p.Dish) > 200 {
		return errors.New("dish too long (max 200 characters)")
	}
	if len(strings.TrimSpace(p.Restaurant)) == 0 {
		return ErrEmptyRestaurant
	}
	if len(p.Restaurant) > 200 {
		return errors.New("restaurant too long (max 200 characters)")
	}
	if err := p.Paid.Validate(); err != nil {
		return err
	}
	// Total below Paid is a data-entry defect; reject it at the boundary.
	if p.Total.Cents != 0 && p.Total.Cents < p.Paid.Cents {
		return errors.New("total below paid amount")
	}
	if err := p.Date.Validate(); err != nil {
		return err
	}
	if err := p.Time.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(p.CategoryID) == "" {
		return ErrEmptyCategory
	}
	return nil
}

// Discount returns the amount saved and the rounded percentage of the total
// when the order was shared or discounted. ok is false when no total was
// recorded or the total does not exceed the paid amount.
func (p Purchase) Discount() (amount Money, percent int, ok bool) {
	if p.Total.Cents <= p.Paid.Cents {
		return Money{}, 0, false
	}
	amount = Money{Cents: p.Total.Cents - p.Paid.Cents}
	percent = int((amount.Cents*100 + p.Total.Cents/2) / p.Total.Cents)
	return amount, percent, true
}

func (c Category) Validate() error {
	if len(strings.TrimSpace(c.Label)) == 0 {
		return ErrEmptyLabel
	}
	if len(c.Label) > 100 {
		return errors.New("label too long (max 100 characters)")
	}
	return nil
}
