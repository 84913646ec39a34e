package schema

// ScopeMetrics holds the per-technician counters and derived metrics for a
// single time scope (a month, a week, or the rolling current/previous pair).
type ScopeMetrics struct {
	Label string `json:"label,omitempty"`

	Assigned    int    `json:"assigned"`
	Resolved    int    `json:"resolved"`
	Pending     int    `json:"pending"`
	SurveyCount int    `json:"survey_count"`
	Histogram   [5]int `json:"rating_histogram"` // index 0 holds rating 1

	// Derived values, rounded to two decimals.
	WeightedRating float64 `json:"weighted_rating"`
	ResponseRate   float64 `json:"response_rate"` // may exceed 100
	ResolutionRate float64 `json:"resolution_rate"`
}

// SLAMetrics holds the service-level block computed over the report month.
type SLAMetrics struct {
	Assigned      int     `json:"assigned"`
	IdealPercent  float64 `json:"sla_ideal"`      // assigned / expected monthly total
	IdealPerTech  float64 `json:"ideal_per_tech"` // team total / headcount
	Participation float64 `json:"participation"`  // assigned / ideal per tech
}

// TechMetrics aggregates everything known about one technician.
type TechMetrics struct {
	Tech string `json:"tech"` // display alias
	Raw  string `json:"raw"`  // raw identifier from the feed

	Current  ScopeMetrics `json:"current"`
	Previous ScopeMetrics `json:"previous"`

	Weeks  []ScopeMetrics `json:"weeks"`
	Months []ScopeMetrics `json:"months"`

	DailyAverage int        `json:"daily_average"`
	SLA          SLAMetrics `json:"sla"`
}

// Summary holds the team-wide roll-up across all allowed technicians.
type Summary struct {
	TotalAssigned int `json:"total_assigned"`
	TotalResolved int `json:"total_resolved"`
	TotalSurveys  int `json:"total_surveys"`

	AvgAssigned      float64 `json:"avg_assigned"`
	AvgRating        float64 `json:"avg_rating"`
	AvgSLAIdeal      float64 `json:"avg_sla_ideal"`
	AvgParticipation float64 `json:"avg_participation"`

	// PercentSurveyed is surveys over assigned, rounded to a whole percent.
	PercentSurveyed int `json:"percent_surveyed"`
}

// ChartPoint is one labeled segment of a derived chart series.
type ChartPoint struct {
	Label string   `json:"label"`
	Value float64  `json:"value"`
	Color ColorKey `json:"color"`
}

// StatusGroup is a labeled group of chart points, used for the
// month-by-status matrix.
type StatusGroup struct {
	Group  string       `json:"group"`
	Points []ChartPoint `json:"points"`
}

// BoardStats holds the control-panel status counters.
type BoardStats struct {
	Total      int     `json:"total"`
	Open       int     `json:"open"`
	Closed     int     `json:"closed"` // includes resolved
	Pending    int     `json:"pending"`
	Cancelled  int     `json:"cancelled"`
	OldestOpen *Ticket `json:"oldest_open,omitempty"`

	ByMonth       []ChartPoint  `json:"by_month"`
	ByWeek        []ChartPoint  `json:"by_week"`
	ByDayOfWeek   []ChartPoint  `json:"by_day_of_week"`
	ByMonthStatus []StatusGroup `json:"by_month_status"`
}

// UnresolvedTicket is one row of the aging-ticket report.
type UnresolvedTicket struct {
	Rank        int    `json:"rank"`
	Ticket      Ticket `json:"ticket"`
	DaysOpen    int    `json:"days_open"`
	Urgent      bool   `json:"urgent"`
	StallReason string `json:"stall_reason"`
}

// MonthReport holds the single-month status and survey breakdown.
type MonthReport struct {
	Month         MonthRange   `json:"month"`
	Assigned      int          `json:"assigned"`
	Resolved      int          `json:"resolved"`
	Surveys       int          `json:"surveys"`
	StatusSeries  []ChartPoint `json:"status_series"`
	SurveySeries  []ChartPoint `json:"survey_series"`
	SurveyTickets []Ticket     `json:"survey_tickets"`
	Tickets       []Ticket     `json:"tickets"`
}
