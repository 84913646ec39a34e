// Package schema has configs, models and global variables for all parts of deskmetrics.
package schema

import "time"

// Ticket represents a single helpdesk ticket as delivered by the REST API.
// JSON tags match the upstream payload field names, including the awkward
// "No." key that the export layer produces.
type Ticket struct {
	No           string `json:"No."`
	Date         string `json:"Date"`
	Status       string `json:"Status"`
	Tech         string `json:"Tech"`
	TechAssigned string `json:"Tecnico Asignado"`
	Client       string `json:"Client"`
	Location     string `json:"Location"`
	Subject      string `json:"Subject"`
	Survey       string `json:"Encuesta"`
}

// AssignedTech returns the effective technician identifier. Some data-source
// variants fill "Tecnico Asignado" instead of "Tech"; when both carry a
// value, "Tecnico Asignado" wins.
func (t Ticket) AssignedTech() string {
	if t.TechAssigned != "" {
		return t.TechAssigned
	}
	return t.Tech
}

// ParsedDate returns the ticket date as a time.Time.
// The second return value is false when the date is missing or unparseable.
func (t Ticket) ParsedDate() (time.Time, bool) {
	return ParseTicketDate(t.Date)
}

// Number returns the ticket number as an integer, or 0 when it is not numeric.
func (t Ticket) Number() int {
	return ParseTicketNumber(t.No)
}

// SurveyRating returns the survey rating as an integer in [1,5].
// The second return value is false when no valid survey response exists.
func (t Ticket) SurveyRating() (int, bool) {
	return ParseSurveyRating(t.Survey)
}

// LoginResult is the response payload of a successful login call.
type LoginResult struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

// WeekRange is a labeled half-open time interval [Start, End) used for
// weekly bucketing. Ranges in a week table must be contiguous and
// non-overlapping, and together cover the whole report month.
type WeekRange struct {
	Label string    `json:"label" mapstructure:"label"`
	Start time.Time `json:"start" mapstructure:"start"`
	End   time.Time `json:"end" mapstructure:"end"`
}

// Contains reports whether d falls inside the week range.
func (w WeekRange) Contains(d time.Time) bool {
	return !d.Before(w.Start) && d.Before(w.End)
}

// MonthRange identifies a labeled calendar month.
type MonthRange struct {
	Label string     `json:"label"`
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
}

// Contains reports whether d falls inside the month, inclusive of the
// first and last instant of the month.
func (m MonthRange) Contains(d time.Time) bool {
	first := time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, d.Location())
	next := first.AddDate(0, 1, 0)
	return !d.Before(first) && d.Before(next)
}
