package core

import (
	"math"

	"github.com/drojas/deskmetrics/internal/contract"
	"github.com/drojas/deskmetrics/schema"
)

// techAccumulator collects raw counters for one technician while the
// ticket slice is walked. Derived metrics are filled in afterwards.
type techAccumulator struct {
	raw    string
	alias  string
	scopes []*schema.ScopeMetrics // current, previous, weeks..., months...
}

// AggregateTickets walks the ticket slice exactly once and fills every
// requested scope at the same time: the rolling current/previous pair, the
// named week table, and the named month table. Tickets from technicians
// outside the allow-list are skipped entirely.
func AggregateTickets(tickets []schema.Ticket, roster *Roster, cfg *contract.Config) ([]schema.TechMetrics, schema.Summary) {
	current, previous := RollingPair(cfg.Now)

	// Scope layout per technician: 0 current, 1 previous, then weeks, then months.
	weekBase := 2
	monthBase := weekBase + len(cfg.Weeks)
	scopeCount := monthBase + len(cfg.Months)

	accs := make(map[string]*techAccumulator)
	var order []string

	for _, t := range tickets {
		tech := t.AssignedTech()
		if !roster.Allowed(tech) {
			continue
		}
		d, ok := t.ParsedDate()
		if !ok {
			continue
		}

		acc := accs[tech]
		if acc == nil {
			acc = &techAccumulator{
				raw:    tech,
				alias:  roster.Resolve(tech),
				scopes: newScopes(scopeCount, current, previous, cfg),
			}
			accs[tech] = acc
			order = append(order, tech)
		}

		// One containment check per scope family, all in the same pass.
		if current.Contains(d) {
			recordTicket(acc.scopes[0], t)
		} else if previous.Contains(d) {
			recordTicket(acc.scopes[1], t)
		}
		if wi := WeekFor(cfg.Weeks, d); wi >= 0 {
			recordTicket(acc.scopes[weekBase+wi], t)
		}
		if mi := MonthFor(cfg.Months, d); mi >= 0 {
			recordTicket(acc.scopes[monthBase+mi], t)
		}
	}

	results := make([]schema.TechMetrics, 0, len(order))
	for _, raw := range order {
		acc := accs[raw]
		for _, s := range acc.scopes {
			finalizeScope(s)
		}

		tm := schema.TechMetrics{
			Tech:     acc.alias,
			Raw:      acc.raw,
			Current:  *acc.scopes[0],
			Previous: *acc.scopes[1],
		}
		for i := range cfg.Weeks {
			tm.Weeks = append(tm.Weeks, *acc.scopes[weekBase+i])
		}
		for i := range cfg.Months {
			tm.Months = append(tm.Months, *acc.scopes[monthBase+i])
		}

		reportAssigned := tm.Months[0].Assigned
		tm.DailyAverage = int(math.Round(float64(reportAssigned) / cfg.WorkdaysPerWeek))
		tm.SLA = schema.SLAMetrics{
			Assigned:     reportAssigned,
			IdealPercent: round2(float64(reportAssigned) / cfg.ExpectedMonthlyTotal * 100),
		}
		results = append(results, tm)
	}

	fillParticipation(results, cfg)
	summary := buildSummary(results, cfg)
	return results, summary
}

// newScopes allocates the scope slice for one technician with labels set.
func newScopes(count int, current, previous schema.MonthRange, cfg *contract.Config) []*schema.ScopeMetrics {
	scopes := make([]*schema.ScopeMetrics, count)
	scopes[0] = &schema.ScopeMetrics{Label: current.Label}
	scopes[1] = &schema.ScopeMetrics{Label: previous.Label}
	for i, w := range cfg.Weeks {
		scopes[2+i] = &schema.ScopeMetrics{Label: w.Label}
	}
	for i, m := range cfg.Months {
		scopes[2+len(cfg.Weeks)+i] = &schema.ScopeMetrics{Label: m.Label}
	}
	return scopes
}

// recordTicket bumps the raw counters of one scope for one ticket.
func recordTicket(s *schema.ScopeMetrics, t schema.Ticket) {
	s.Assigned++
	if schema.IsResolved(t.Status) {
		s.Resolved++
	}
	if rating, ok := t.SurveyRating(); ok {
		s.SurveyCount++
		s.Histogram[rating-1]++
	}
}

// finalizeScope computes the derived metrics from the raw counters.
// The weighted rating is always recomputed from the histogram, never kept
// as a running average, so re-aggregation is idempotent.
func finalizeScope(s *schema.ScopeMetrics) {
	s.Pending = s.Assigned - s.Resolved
	s.WeightedRating = weightedAverage(s.Histogram)
	if s.Resolved > 0 {
		// Surveys over resolved can exceed 100 when surveys arrive for
		// tickets resolved in an earlier period. Preserved, not clamped.
		s.ResponseRate = round2(float64(s.SurveyCount) / float64(s.Resolved) * 100)
	}
	if s.Assigned > 0 {
		s.ResolutionRate = round2(float64(s.Resolved) / float64(s.Assigned) * 100)
	}
}

// weightedAverage computes sum(rating*count)/sum(count) from a histogram,
// rounded to two decimals. Empty histograms yield 0.
func weightedAverage(hist [5]int) float64 {
	total := 0
	weighted := 0
	for i, count := range hist {
		total += count
		weighted += (i + 1) * count
	}
	if total == 0 {
		return 0
	}
	return round2(float64(weighted) / float64(total))
}

// fillParticipation computes the team-relative participation percentages,
// which need the team total and so cannot be filled during the main pass.
func fillParticipation(results []schema.TechMetrics, cfg *contract.Config) {
	teamTotal := 0
	for i := range results {
		teamTotal += results[i].SLA.Assigned
	}
	idealPerTech := float64(teamTotal) / cfg.Headcount
	for i := range results {
		results[i].SLA.IdealPerTech = round2(idealPerTech)
		if idealPerTech > 0 {
			results[i].SLA.Participation = round2(float64(results[i].SLA.Assigned) / idealPerTech * 100)
		}
	}
}

// buildSummary rolls the per-technician report-month numbers up to the team.
func buildSummary(results []schema.TechMetrics, cfg *contract.Config) schema.Summary {
	var sum schema.Summary
	ratingTotal := 0.0
	for _, tm := range results {
		report := tm.Months[0]
		sum.TotalAssigned += report.Assigned
		sum.TotalResolved += report.Resolved
		sum.TotalSurveys += report.SurveyCount
		ratingTotal += report.WeightedRating
	}
	if len(results) > 0 {
		sum.AvgAssigned = math.Round(float64(sum.TotalAssigned) / float64(len(results)))
	}
	sum.AvgRating = round2(ratingTotal / cfg.Headcount)
	sum.AvgSLAIdeal = round2(float64(sum.TotalAssigned) / (cfg.ExpectedMonthlyTotal * cfg.Headcount) * 100)
	if sum.TotalAssigned > 0 {
		idealPerTech := float64(sum.TotalAssigned) / cfg.Headcount
		sum.AvgParticipation = round2(float64(sum.TotalAssigned) / idealPerTech / cfg.Headcount * 100)
		sum.PercentSurveyed = int(math.Round(float64(sum.TotalSurveys) / float64(sum.TotalAssigned) * 100))
	}
	return sum
}

// round2 rounds to two decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
