package schema

import (
	"strconv"
	"strings"
	"time"
)

// ticketDateFormats lists the date layouts the helpdesk export is known to emit.
var ticketDateFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"1/2/2006 15:04",
	"1/2/2006",
}

// ParseTicketDate parses a ticket date string. It returns false when the
// string is empty or matches none of the known layouts.
func ParseTicketDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range ticketDateFormats {
		if d, err := time.Parse(layout, s); err == nil {
			return d, true
		}
	}
	return time.Time{}, false
}

// ParseTicketNumber parses the "No." field. Non-numeric values sort as 0.
func ParseTicketNumber(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

// ParseSurveyRating parses a survey response. Only integer values from 1 to 5
// count as a valid response; everything else means "no survey".
func ParseSurveyRating(s string) (int, bool) {
	r, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || r < 1 || r > 5 {
		return 0, false
	}
	return r, true
}

// IsResolved reports whether a status counts as resolved.
func IsResolved(status string) bool {
	return status == StatusClosed || status == StatusResolved
}

// IsUnresolved reports whether a ticket is still awaiting resolution.
// Cancelled tickets are neither resolved nor unresolved.
func IsUnresolved(status string) bool {
	return !IsResolved(status) && status != StatusCancelled
}

// IsPendingStatus reports whether a status falls into the pending bucket,
// which is everything outside the four primary states.
func IsPendingStatus(status string) bool {
	switch status {
	case StatusOpen, StatusClosed, StatusResolved, StatusCancelled:
		return false
	}
	return true
}

// DisplayStatus maps a raw status to the numbered display bucket used by
// the status distribution charts.
func DisplayStatus(status string) string {
	switch {
	case status == StatusOpen:
		return "(4) Abierto"
	case IsResolved(status):
		return "(1) Cerrado"
	case status == StatusCancelled:
		return "(2) Cancelado"
	default:
		return "(3) Pendiente"
	}
}

// DisplayStatusColor returns the chart color for a display status bucket.
func DisplayStatusColor(displayStatus string) ColorKey {
	switch displayStatus {
	case "(4) Abierto":
		return ColorOpen
	case "(1) Cerrado":
		return ColorClosed
	case "(2) Cancelado":
		return ColorCancelled
	case "(3) Pendiente":
		return ColorPending
	}
	return ColorSurveyed
}

// StallReason maps an unresolved status to the reason shown for aging tickets.
func StallReason(status string) string {
	switch status {
	case StatusOpen:
		return "Sin asignar o en cola de atención"
	case StatusInProgress:
		return "En proceso de resolución"
	case StatusPending:
		return "Esperando respuesta del cliente"
	case StatusOnHold:
		return "En espera de repuestos o terceros"
	case StatusEscalated:
		return "Escalado a nivel superior"
	case StatusReview:
		return "En revisión de calidad"
	case StatusBlocked:
		return "Bloqueado por dependencia externa"
	default:
		return "Pendiente de seguimiento"
	}
}

// spanishMonthShort holds the uppercase short month labels used on charts.
var spanishMonthShort = [...]string{
	time.January:   "ENE",
	time.February:  "FEB",
	time.March:     "MAR",
	time.April:     "ABR",
	time.May:       "MAY",
	time.June:      "JUN",
	time.July:      "JUL",
	time.August:    "AGO",
	time.September: "SEP",
	time.October:   "OCT",
	time.November:  "NOV",
	time.December:  "DIC",
}

// spanishMonthFull holds the capitalized month names used on monthly tables.
var spanishMonthFull = [...]string{
	time.January:   "Enero",
	time.February:  "Febrero",
	time.March:     "Marzo",
	time.April:     "Abril",
	time.May:       "Mayo",
	time.June:      "Junio",
	time.July:      "Julio",
	time.August:    "Agosto",
	time.September: "Septiembre",
	time.October:   "Octubre",
	time.November:  "Noviembre",
	time.December:  "Diciembre",
}

// MonthShortLabel returns the uppercase Spanish short label, e.g. "OCT".
func MonthShortLabel(m time.Month) string {
	return spanishMonthShort[m]
}

// MonthLabel returns the capitalized Spanish month name, e.g. "Octubre".
func MonthLabel(m time.Month) string {
	return spanishMonthFull[m]
}

// DayOfWeekOrder lists day labels Monday through Sunday, the order used on
// the day-of-week distribution chart.
var DayOfWeekOrder = []string{"LUN", "MAR", "MIÉ", "JUE", "VIE", "SÁB", "DOM"}

// DayOfWeekLabel returns the Spanish label for a weekday.
func DayOfWeekLabel(d time.Weekday) string {
	switch d {
	case time.Monday:
		return "LUN"
	case time.Tuesday:
		return "MAR"
	case time.Wednesday:
		return "MIÉ"
	case time.Thursday:
		return "JUE"
	case time.Friday:
		return "VIE"
	case time.Saturday:
		return "SÁB"
	default:
		return "DOM"
	}
}
