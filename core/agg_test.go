package core

import (
	"testing"
	"time"

	"github.com/drojas/deskmetrics/internal/contract"
	"github.com/drojas/deskmetrics/schema"
	"github.com/stretchr/testify/assert"
)

// testConfig returns a validated-looking config pinned to October 2025.
func testConfig() *contract.Config {
	return &contract.Config{
		Now:                  time.Date(2025, time.October, 15, 12, 0, 0, 0, time.UTC),
		ReportYear:           2025,
		ReportMonth:          time.October,
		Technicians:          schema.DefaultTechnicians,
		Aliases:              schema.DefaultAliases,
		Weeks:                schema.DefaultWeekTable(),
		Months:               schema.DefaultMonthTable(2025, time.October),
		ExpectedMonthlyTotal: contract.DefaultExpectedMonthlyTotal,
		Headcount:            contract.DefaultHeadcount,
		WorkdaysPerWeek:      contract.DefaultWorkdaysPerWeek,
		Limit:                contract.DefaultResultLimit,
	}
}

func castroTicket(no, date, status, survey string) schema.Ticket {
	return schema.Ticket{
		No:     no,
		Date:   date,
		Status: status,
		Tech:   "Jose Castro [jose.castro]",
		Survey: survey,
	}
}

func TestAggregateTicketsSingleTech(t *testing.T) {
	cfg := testConfig()
	roster := NewRoster(cfg.Technicians, cfg.Aliases)

	tickets := []schema.Ticket{
		castroTicket("101", "2025-10-02", schema.StatusResolved, "5"),
		castroTicket("102", "2025-10-07", schema.StatusClosed, "5"),
		castroTicket("103", "2025-10-20", schema.StatusOpen, "4"),
	}

	results, summary := AggregateTickets(tickets, roster, cfg)
	assert.Len(t, results, 1)

	tm := results[0]
	assert.Equal(t, "José Castro", tm.Tech)
	assert.Equal(t, "Jose Castro [jose.castro]", tm.Raw)

	report := tm.Months[0]
	assert.Equal(t, "Octubre", report.Label)
	assert.Equal(t, 3, report.Assigned)
	assert.Equal(t, 2, report.Resolved)
	assert.Equal(t, 1, report.Pending)
	assert.Equal(t, 3, report.SurveyCount)
	assert.InDelta(t, 4.67, report.WeightedRating, 0.001)
	assert.InDelta(t, 150.00, report.ResponseRate, 0.001)
	assert.InDelta(t, 66.67, report.ResolutionRate, 0.001)

	// Week buckets filled in the same pass.
	assert.Equal(t, 1, tm.Weeks[0].Assigned) // Oct 2
	assert.Equal(t, 1, tm.Weeks[1].Assigned) // Oct 7
	assert.Equal(t, 1, tm.Weeks[3].Assigned) // Oct 20
	assert.Equal(t, 0, tm.Weeks[2].Assigned)

	// Rolling current month matches the injected clock.
	assert.Equal(t, 3, tm.Current.Assigned)
	assert.Equal(t, 0, tm.Previous.Assigned)

	assert.Equal(t, 1, tm.DailyAverage) // round(3/5)
	assert.InDelta(t, 0.81, tm.SLA.IdealPercent, 0.001)

	assert.Equal(t, 3, summary.TotalAssigned)
	assert.Equal(t, 2, summary.TotalResolved)
	assert.Equal(t, 3, summary.TotalSurveys)
	assert.Equal(t, 100, summary.PercentSurveyed)
}

func TestAggregateTicketsSkipsUnknownAndUndated(t *testing.T) {
	cfg := testConfig()
	roster := NewRoster(cfg.Technicians, cfg.Aliases)

	tickets := []schema.Ticket{
		{No: "1", Date: "2025-10-02", Status: schema.StatusOpen, Tech: "Maria Lopez [maria.lopez]"},
		{No: "2", Date: "not-a-date", Status: schema.StatusOpen, Tech: "Jose Castro [jose.castro]"},
		castroTicket("3", "2025-10-03", schema.StatusOpen, ""),
	}

	results, summary := AggregateTickets(tickets, roster, cfg)
	assert.Len(t, results, 1)
	assert.Equal(t, 1, results[0].Months[0].Assigned)
	assert.Equal(t, 1, summary.TotalAssigned)
	assert.Equal(t, 0, summary.TotalSurveys)
}

func TestAggregateTicketsEmpty(t *testing.T) {
	cfg := testConfig()
	roster := NewRoster(cfg.Technicians, cfg.Aliases)

	results, summary := AggregateTickets(nil, roster, cfg)
	assert.Empty(t, results)
	assert.Equal(t, schema.Summary{}, summary)
}

func TestAggregateTicketsPreviousMonthScope(t *testing.T) {
	cfg := testConfig()
	roster := NewRoster(cfg.Technicians, cfg.Aliases)

	tickets := []schema.Ticket{
		castroTicket("1", "2025-09-10", schema.StatusResolved, "3"),
		castroTicket("2", "2025-10-10", schema.StatusOpen, ""),
	}

	results, summary := AggregateTickets(tickets, roster, cfg)
	tm := results[0]

	assert.Equal(t, 1, tm.Previous.Assigned)
	assert.Equal(t, 1, tm.Previous.Resolved)
	assert.Equal(t, 1, tm.Current.Assigned)

	// September shows in the named month table too, but not in the
	// report-month totals.
	assert.Equal(t, 1, tm.Months[1].Assigned)
	assert.Equal(t, 1, summary.TotalAssigned)
	assert.Equal(t, 0, summary.TotalResolved)
}

func TestAggregateParticipation(t *testing.T) {
	cfg := testConfig()
	roster := NewRoster(cfg.Technicians, cfg.Aliases)

	tickets := []schema.Ticket{
		castroTicket("1", "2025-10-01", schema.StatusOpen, ""),
		castroTicket("2", "2025-10-02", schema.StatusOpen, ""),
		castroTicket("3", "2025-10-03", schema.StatusOpen, ""),
		{No: "4", Date: "2025-10-04", Status: schema.StatusOpen, Tech: "Saul Recinos [saul.recinos]"},
	}

	results, _ := AggregateTickets(tickets, roster, cfg)
	assert.Len(t, results, 2)

	// Team total 4, headcount 7, ideal per tech 4/7.
	assert.InDelta(t, 0.57, results[0].SLA.IdealPerTech, 0.001)
	assert.InDelta(t, 525.0, results[0].SLA.Participation, 0.5)
	assert.InDelta(t, 175.0, results[1].SLA.Participation, 0.5)
}

func TestWeightedAverage(t *testing.T) {
	assert.Equal(t, 0.0, weightedAverage([5]int{}))
	assert.InDelta(t, 4.67, weightedAverage([5]int{0, 0, 0, 1, 2}), 0.001)
	assert.InDelta(t, 1.0, weightedAverage([5]int{3, 0, 0, 0, 0}), 0.001)
}
