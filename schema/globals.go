package schema

import "time"

// DefaultTechnicians is the production allow-list of raw technician
// identifiers. The garbled "Jos�" entry is intentional: the upstream export
// delivers that exact byte sequence and exact matching must honor it.
var DefaultTechnicians = []string{
	"Jose Castro [jose.castro]",
	"Jos� Morales [jose.morales]",
	"Rolando Lopez [rolando.lopez]",
	"Fernando Velasquez +50254892327 [fernando.velasquez]",
	"Byron Borrayo +50254287799 [Byron.Borrayo]",
	"Juan Jose Gomez +50242105695 [Juanj.gomez]",
	"Saul Recinos [saul.recinos]",
}

// DefaultAliases maps raw technician identifiers to display names.
var DefaultAliases = map[string]string{
	"Jose Castro [jose.castro]":                            "José Castro",
	"Jos� Morales [jose.morales]":                          "José Morales",
	"Rolando Lopez [rolando.lopez]":                        "Rolando López",
	"Fernando Velasquez +50254892327 [fernando.velasquez]": "Fernando Velásquez",
	"Byron Borrayo +50254287799 [Byron.Borrayo]":           "Byron Borrayo",
	"Juan Jose Gomez +50242105695 [Juanj.gomez]":           "Juan José Gomez",
	"Saul Recinos [saul.recinos]":                          "Saúl Recinos",
}

// DefaultWeekTable returns the literal week boundaries for the October 2025
// report. The five ranges are contiguous, non-overlapping, and their union
// covers the whole month; the edge weeks spill into adjacent months.
func DefaultWeekTable() []WeekRange {
	day := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}
	return []WeekRange{
		{Label: "Semana 1", Start: day(2025, time.October, 1), End: day(2025, time.October, 5)},
		{Label: "Semana 2", Start: day(2025, time.October, 5), End: day(2025, time.October, 12)},
		{Label: "Semana 3", Start: day(2025, time.October, 12), End: day(2025, time.October, 19)},
		{Label: "Semana 4", Start: day(2025, time.October, 19), End: day(2025, time.October, 26)},
		{Label: "Semana 5", Start: day(2025, time.October, 26), End: day(2025, time.November, 2)},
	}
}

// DefaultMonthTable returns the report month plus the two months before it,
// newest first, labeled with Spanish month names.
func DefaultMonthTable(year int, month time.Month) []MonthRange {
	months := make([]MonthRange, 0, 3)
	anchor := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		m := anchor.AddDate(0, -i, 0)
		months = append(months, MonthRange{
			Label: MonthLabel(m.Month()),
			Year:  m.Year(),
			Month: m.Month(),
		})
	}
	return months
}
