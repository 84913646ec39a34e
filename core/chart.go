package core

import (
	"fmt"
	"sort"
	"time"

	"github.com/drojas/deskmetrics/schema"
)

// BuildBoardStats computes the control-panel counters and distribution
// series over the full ticket feed. Tickets with unparseable dates still
// count toward the status totals but are left out of the time series.
func BuildBoardStats(tickets []schema.Ticket) schema.BoardStats {
	var stats schema.BoardStats
	var oldest *schema.Ticket
	var oldestDate time.Time

	monthCounts := make(map[int]int)
	weekCounts := make(map[string]int)
	dayCounts := make(map[string]int)
	monthStatus := make(map[int]map[string]int)

	for i := range tickets {
		t := tickets[i]
		stats.Total++
		switch {
		case t.Status == schema.StatusOpen:
			stats.Open++
		case schema.IsResolved(t.Status):
			stats.Closed++
		case t.Status == schema.StatusCancelled:
			stats.Cancelled++
		default:
			stats.Pending++
		}

		d, ok := t.ParsedDate()
		if !ok {
			continue
		}
		if t.Status == schema.StatusOpen && (oldest == nil || d.Before(oldestDate)) {
			oldest = &tickets[i]
			oldestDate = d
		}

		mk := monthKey(d)
		monthCounts[mk]++
		weekCounts[fmt.Sprintf("%d - S%d", d.Year(), weekOfMonth(d))]++
		dayCounts[schema.DayOfWeekLabel(d.Weekday())]++

		if monthStatus[mk] == nil {
			monthStatus[mk] = make(map[string]int)
		}
		monthStatus[mk][schema.DisplayStatus(t.Status)]++
	}

	stats.OldestOpen = oldest
	stats.ByMonth = monthSeries(monthCounts)
	stats.ByWeek = labelSeries(weekCounts)
	stats.ByDayOfWeek = daySeries(dayCounts)
	stats.ByMonthStatus = monthStatusSeries(monthStatus)
	return stats
}

// monthKey flattens a date to a sortable year-month integer.
func monthKey(d time.Time) int {
	return d.Year()*12 + int(d.Month()) - 1
}

// monthKeyLabel renders a month key as "OCT 2025".
func monthKeyLabel(key int) string {
	year, month := key/12, time.Month(key%12+1)
	return fmt.Sprintf("%s %d", schema.MonthShortLabel(month), year)
}

func monthSeries(counts map[int]int) []schema.ChartPoint {
	keys := make([]int, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	points := make([]schema.ChartPoint, 0, len(keys))
	for _, k := range keys {
		points = append(points, schema.ChartPoint{
			Label: monthKeyLabel(k),
			Value: float64(counts[k]),
			Color: schema.ColorNeutral,
		})
	}
	return points
}

func labelSeries(counts map[string]int) []schema.ChartPoint {
	labels := make([]string, 0, len(counts))
	for l := range counts {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	points := make([]schema.ChartPoint, 0, len(labels))
	for _, l := range labels {
		points = append(points, schema.ChartPoint{Label: l, Value: float64(counts[l]), Color: schema.ColorNeutral})
	}
	return points
}

// daySeries keeps the Monday-through-Sunday order regardless of counts.
func daySeries(counts map[string]int) []schema.ChartPoint {
	points := make([]schema.ChartPoint, 0, len(schema.DayOfWeekOrder))
	for _, label := range schema.DayOfWeekOrder {
		points = append(points, schema.ChartPoint{
			Label: label,
			Value: float64(counts[label]),
			Color: schema.ColorNeutral,
		})
	}
	return points
}

// monthStatusSeries builds one group per month, chronological, with the
// numbered status buckets in display order inside each group.
func monthStatusSeries(monthStatus map[int]map[string]int) []schema.StatusGroup {
	keys := make([]int, 0, len(monthStatus))
	for k := range monthStatus {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	groups := make([]schema.StatusGroup, 0, len(keys))
	for _, k := range keys {
		statuses := make([]string, 0, len(monthStatus[k]))
		for s := range monthStatus[k] {
			statuses = append(statuses, s)
		}
		sort.Strings(statuses) // "(1) ..." through "(4) ..."

		group := schema.StatusGroup{Group: monthKeyLabel(k)}
		for _, s := range statuses {
			group.Points = append(group.Points, schema.ChartPoint{
				Label: s,
				Value: float64(monthStatus[k][s]),
				Color: schema.DisplayStatusColor(s),
			})
		}
		groups = append(groups, group)
	}
	return groups
}

// BuildMonthReport computes the status and survey breakdown for the tickets
// of one calendar month.
func BuildMonthReport(tickets []schema.Ticket, month schema.MonthRange) schema.MonthReport {
	report := schema.MonthReport{Month: month}
	statusCounts := make(map[string]int)

	for _, t := range tickets {
		d, ok := t.ParsedDate()
		if !ok || !month.Contains(d) {
			continue
		}
		report.Tickets = append(report.Tickets, t)
		report.Assigned++
		if schema.IsResolved(t.Status) {
			report.Resolved++
		}
		statusCounts[schema.DisplayStatus(t.Status)]++
		if _, ok := t.SurveyRating(); ok {
			report.Surveys++
			report.SurveyTickets = append(report.SurveyTickets, t)
		}
	}

	statuses := make([]string, 0, len(statusCounts))
	for s := range statusCounts {
		statuses = append(statuses, s)
	}
	sort.Strings(statuses)
	for _, s := range statuses {
		report.StatusSeries = append(report.StatusSeries, schema.ChartPoint{
			Label: s,
			Value: float64(statusCounts[s]),
			Color: schema.DisplayStatusColor(s),
		})
	}

	report.SurveySeries = []schema.ChartPoint{
		{Label: "Con encuesta", Value: float64(report.Surveys), Color: schema.ColorSurveyed},
		{Label: "Sin encuesta", Value: float64(report.Assigned - report.Surveys), Color: schema.ColorNotSurveyed},
	}
	return report
}

// BuildTechSeries renders one technician's report-month workload as a
// resolved-versus-assigned pair.
func BuildTechSeries(tm schema.TechMetrics) []schema.ChartPoint {
	report := tm.Months[0]
	return []schema.ChartPoint{
		{Label: "Resueltos", Value: float64(report.Resolved), Color: schema.ColorResolved},
		{Label: "Asignados", Value: float64(report.Assigned), Color: schema.ColorAssigned},
	}
}

// BuildSurveyCoverage renders the team survey coverage as a surveyed
// versus not-surveyed percentage pair.
func BuildSurveyCoverage(summary schema.Summary) []schema.ChartPoint {
	return []schema.ChartPoint{
		{Label: "Encuestados", Value: float64(summary.PercentSurveyed), Color: schema.ColorSurveyed},
		{Label: "No encuestados", Value: float64(100 - summary.PercentSurveyed), Color: schema.ColorNotSurveyed},
	}
}
