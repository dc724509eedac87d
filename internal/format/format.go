// Package format renders money, dates and period labels as pt-BR display
// strings. Nothing here feeds back into computations.
package format

import (
	"fmt"
	"strconv"
	"time"

	"pedidos/internal/core"
)

var monthAbbrevs = [...]string{
	"jan", "fev", "mar", "abr", "mai", "jun",
	"jul", "ago", "set", "out", "nov", "dez",
}

var monthNames = [...]string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

var weekdayAbbrevs = [...]string{"Dom", "Seg", "Ter", "Qua", "Qui", "Sex", "Sáb"}

var weekdayNames = [...]string{
	"Domingo", "Segunda", "Terça", "Quarta", "Quinta", "Sexta", "Sábado",
}

// MonthAbbrev returns the lowercase three-letter month abbreviation.
func MonthAbbrev(m time.Month) string {
	return monthAbbrevs[int(m)-1]
}

// MonthName returns the full lowercase month name.
func MonthName(m time.Month) string {
	return monthNames[int(m)-1]
}

// WeekdayAbbrev returns the short weekday name, Sunday first.
func WeekdayAbbrev(d time.Weekday) string {
	return weekdayAbbrevs[int(d)]
}

// WeekdayName returns the full weekday name, Sunday first.
func WeekdayName(d time.Weekday) string {
	return weekdayNames[int(d)]
}

// Currency formats cents as a Reais currency string (e.g. "R$ 12,34").
func Currency(m core.Money) string {
	cents := m.Cents
	neg := cents < 0
	if neg {
		cents = -cents
	}
	s := strconv.FormatInt(cents/100, 10) + "," + fmt.Sprintf("%02d", cents%100)
	if neg {
		return "-R$ " + s
	}
	return "R$ " + s
}

// RelativeDate renders a purchase date and time the way the client lists
// orders: "Hoje, 12:30" for today, "Ontem, 12:30" for yesterday, and
// "05 ago, 12:30" otherwise. Comparison is by local calendar day.
func RelativeDate(d core.Date, t core.ClockTime, now time.Time) string {
	if d.SameDay(now) {
		return "Hoje, " + string(t)
	}
	if d.SameDay(now.AddDate(0, 0, -1)) {
		return "Ontem, " + string(t)
	}
	return fmt.Sprintf("%02d %s, %s", d.Day(), MonthAbbrev(d.Month()), t)
}

// DayRange renders an inclusive date range as "dd/MM - dd/MM".
func DayRange(start, end time.Time) string {
	return fmt.Sprintf("%02d/%02d - %02d/%02d",
		start.Day(), int(start.Month()), end.Day(), int(end.Month()))
}

// DayMonthRange renders an inclusive date range as "dd abr - dd abr".
func DayMonthRange(start, end time.Time) string {
	return fmt.Sprintf("%02d %s - %02d %s",
		start.Day(), MonthAbbrev(start.Month()), end.Day(), MonthAbbrev(end.Month()))
}

// PeriodLabel renders the human label for the period containing now:
// a date range for weeks, "agosto de 2026" for months, "3º Trimestre de
// 2026" for quarters and the bare year otherwise.
func PeriodLabel(kind core.Period, start, end time.Time, now time.Time) string {
	switch kind {
	case core.Weekly:
		return DayRange(start, end)
	case core.Monthly:
		return MonthName(now.Month()) + " de " + strconv.Itoa(now.Year())
	case core.Quarterly:
		quarter := (int(now.Month())-1)/3 + 1
		return fmt.Sprintf("%dº Trimestre de %d", quarter, now.Year())
	default:
		return strconv.Itoa(now.Year())
	}
}
