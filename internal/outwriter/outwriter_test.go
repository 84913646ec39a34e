package outwriter

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/drojas/deskmetrics/core"
	"github.com/drojas/deskmetrics/internal/contract"
	"github.com/drojas/deskmetrics/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func textConfig() *contract.Config {
	return &contract.Config{
		Output:       schema.TextOut,
		Precision:    2,
		Color:        false,
		Width:        120,
		CacheBackend: schema.SQLiteBackend,
	}
}

func sampleTechMetrics() []schema.TechMetrics {
	return []schema.TechMetrics{
		{
			Tech: "Carlos Castro",
			Raw:  "Carlos Castro [carlos.castro]",
			Months: []schema.ScopeMetrics{
				{
					Label:          "2025-10",
					Assigned:       42,
					Resolved:       38,
					Pending:        4,
					SurveyCount:    12,
					WeightedRating: 4.67,
					ResponseRate:   31.58,
					ResolutionRate: 90.48,
				},
			},
			Weeks: []schema.ScopeMetrics{
				{Label: "Semana 1", Assigned: 10, Resolved: 9, Pending: 1},
			},
			DailyAverage: 8,
			SLA: schema.SLAMetrics{
				Assigned:      42,
				IdealPercent:  11.29,
				IdealPerTech:  53.14,
				Participation: 79.03,
			},
		},
	}
}

func sampleSummary() schema.Summary {
	return schema.Summary{
		TotalAssigned:    42,
		TotalResolved:    38,
		TotalSurveys:     12,
		AvgAssigned:      42,
		AvgRating:        4.67,
		AvgSLAIdeal:      1.61,
		AvgParticipation: 79.03,
		PercentSurveyed:  29,
	}
}

func sampleTickets() []schema.Ticket {
	return []schema.Ticket{
		{No: "1001", Date: "01/10/2025 09:00", Status: "Cerrado", Tech: "Carlos Castro [carlos.castro]", Client: "Acme", Location: "Tienda Centro", Subject: "Impresora no responde", Survey: "5"},
		{No: "1002", Date: "02/10/2025 10:30", Status: "Abierto", Tech: "Carlos Castro [carlos.castro]", Client: "Acme", Location: "Tienda Norte", Subject: "Sin acceso a correo"},
	}
}

func TestWriteTechTable(t *testing.T) {
	cfg := textConfig()
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	var buf bytes.Buffer
	err := writeTechTable(sampleTechMetrics(), sampleSummary(), cfg, fmtFloat, intFmt, 5*time.Millisecond, &buf)
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "Carlos Castro")
	assert.Contains(t, output, "4.67")
	assert.Contains(t, output, "Team: 42 assigned, 38 resolved, 12 surveys (29% surveyed)")
	assert.Contains(t, output, "Cache backend: sqlite")
}

func TestWriteTechCSV(t *testing.T) {
	fmtFloat, intFmt := createFormatters(2)

	var buf bytes.Buffer
	err := writeTechCSV(&buf, sampleTechMetrics(), fmtFloat, intFmt)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3) // header + one month row + one week row

	assert.Contains(t, lines[0], "tech")
	assert.Contains(t, lines[0], "period")
	assert.Contains(t, lines[1], "2025-10")
	assert.Contains(t, lines[2], "Semana 1")
}

func TestWriteTechResultsJSON(t *testing.T) {
	results := sampleTechMetrics()
	summary := sampleSummary()

	var buf bytes.Buffer
	err := writeJSON(&buf, techResultsPayload{
		Technicians:    results,
		Summary:        summary,
		Workload:       map[string][]schema.ChartPoint{results[0].Tech: core.BuildTechSeries(results[0])},
		SurveyCoverage: core.BuildSurveyCoverage(summary),
	})
	require.NoError(t, err)

	var result map[string]any
	err = json.Unmarshal(buf.Bytes(), &result)
	require.NoError(t, err)

	assert.Contains(t, result, "technicians")
	assert.Contains(t, result, "summary")

	workload, ok := result["workload"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, workload, "Carlos Castro")

	coverage, ok := result["survey_coverage"].([]any)
	require.True(t, ok)
	require.Len(t, coverage, 2)
}

func TestWriteBoardTable(t *testing.T) {
	oldest := sampleTickets()[1]
	stats := schema.BoardStats{
		Total:      10,
		Open:       3,
		Closed:     5,
		Pending:    1,
		Cancelled:  1,
		OldestOpen: &oldest,
		ByMonth: []schema.ChartPoint{
			{Label: "OCT 2025", Value: 10, Color: schema.ColorNeutral},
		},
		ByDayOfWeek: []schema.ChartPoint{
			{Label: "LUN", Value: 4, Color: schema.ColorNeutral},
			{Label: "MAR", Value: 6, Color: schema.ColorNeutral},
		},
		ByMonthStatus: []schema.StatusGroup{
			{Group: "OCT 2025", Points: []schema.ChartPoint{
				{Label: "(1) Cerrado", Value: 5},
				{Label: "(4) Abierto", Value: 3},
			}},
		},
	}

	var buf bytes.Buffer
	err := writeBoardTable(stats, textConfig(), 3*time.Millisecond, &buf)
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "Total: 10 | Abiertos: 3 | Cerrados: 5 | Pendientes: 1 | Cancelados: 1")
	assert.Contains(t, output, "Oldest open ticket: #1002")
	assert.Contains(t, output, "By month")
	assert.Contains(t, output, "By day of week")
	assert.Contains(t, output, "OCT 2025")
	assert.NotContains(t, output, "By week") // empty series is skipped
}

func TestWriteBoardCSV(t *testing.T) {
	stats := schema.BoardStats{
		Total:  2,
		Open:   1,
		Closed: 1,
		ByWeek: []schema.ChartPoint{
			{Label: "10 - S2", Value: 2, Color: schema.ColorNeutral},
		},
	}

	var buf bytes.Buffer
	err := writeBoardCSV(&buf, stats)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 7) // header + 5 totals + 1 week row

	assert.Contains(t, lines[0], "series")
	assert.Contains(t, lines[1], "totals,total,2")
	assert.Contains(t, lines[6], "by_week,10 - S2,2")
}

func TestWriteMonthText(t *testing.T) {
	report := schema.MonthReport{
		Month:    schema.MonthRange{Label: "Octubre", Year: 2025, Month: time.October},
		Assigned: 2,
		Resolved: 1,
		Surveys:  1,
		StatusSeries: []schema.ChartPoint{
			{Label: "Cerrado", Value: 1},
			{Label: "Abierto", Value: 1},
		},
		SurveySeries: []schema.ChartPoint{
			{Label: "Con encuesta", Value: 1, Color: schema.ColorSurveyed},
			{Label: "Sin encuesta", Value: 1, Color: schema.ColorNotSurveyed},
		},
		SurveyTickets: sampleTickets()[:1],
		Tickets:       sampleTickets(),
	}

	var buf bytes.Buffer
	err := writeMonthText(report, textConfig(), 2*time.Millisecond, &buf)
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "Octubre 2025: 2 assigned, 1 resolved, 1 surveys")
	assert.Contains(t, output, "Status distribution:")
	assert.Contains(t, output, "Survey coverage:")
	assert.Contains(t, output, "#1001 01/10/2025 09:00 [5]")
}

func TestWriteMonthCSV(t *testing.T) {
	report := schema.MonthReport{Tickets: sampleTickets()}

	var buf bytes.Buffer
	err := writeMonthCSV(&buf, report)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "no,date,status")
	assert.Contains(t, lines[1], "1001")
	assert.Contains(t, lines[2], "1002")
}

func TestWriteTicketTable(t *testing.T) {
	var buf bytes.Buffer
	err := writeTicketTable(sampleTickets(), textConfig(), time.Millisecond, &buf)
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "1001")
	assert.Contains(t, output, "Cerrado")
	assert.Contains(t, output, "Showing 2 tickets.")
}

func TestWriteTicketCSV(t *testing.T) {
	var buf bytes.Buffer
	err := writeTicketCSV(&buf, sampleTickets())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[1], "Impresora no responde")
}

func TestWriteUnresolvedTable(t *testing.T) {
	tickets := []schema.UnresolvedTicket{
		{Rank: 1, Ticket: sampleTickets()[1], DaysOpen: 30, Urgent: true, StallReason: "Sin actividad reciente"},
		{Rank: 2, Ticket: sampleTickets()[0], DaysOpen: 12, Urgent: false, StallReason: "En cola de atención"},
	}

	var buf bytes.Buffer
	err := writeUnresolvedTable(tickets, textConfig(), time.Millisecond, &buf)
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "1 !") // urgent marker without colors
	assert.Contains(t, output, "Sin actividad reciente")
	assert.Contains(t, output, "Showing 2 unresolved tickets (1 urgent).")
}

func TestWriteUnresolvedCSV(t *testing.T) {
	tickets := []schema.UnresolvedTicket{
		{Rank: 1, Ticket: sampleTickets()[1], DaysOpen: 30, Urgent: true, StallReason: "Sin actividad reciente"},
	}

	var buf bytes.Buffer
	err := writeUnresolvedCSV(&buf, tickets)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "days_open")
	assert.Contains(t, lines[1], "1,1002")
	assert.Contains(t, lines[1], "true")
}

func TestGetMaxTableSubjectWidth(t *testing.T) {
	tests := []struct {
		name  string
		width int
		want  int
	}{
		{"narrow terminal clamps to minimum", 60, 15},
		{"wide terminal clamps to maximum", 200, 70},
		{"mid-range uses available space", 100, 35},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &contract.Config{Width: tc.width}
			assert.Equal(t, tc.want, getMaxTableSubjectWidth(cfg))
		})
	}
}
