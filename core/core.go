package core

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/drojas/deskmetrics/internal/contract"
	"github.com/drojas/deskmetrics/schema"
)

// SnapshotKey is the snapshot store key under which the last good ticket
// payload is kept.
const SnapshotKey = "tickets:last"

// SnapshotVersion tracks the serialized snapshot layout.
const SnapshotVersion = 1

// FetchTickets retrieves the ticket feed, preferring a live fetch. A
// successful fetch refreshes the snapshot store; a failed one falls back to
// the last snapshot so offline runs still produce a dashboard.
func FetchTickets(ctx context.Context, cfg *contract.Config, client contract.TicketClient, mgr contract.CacheManager) ([]schema.Ticket, error) {
	tickets, fetchErr := client.FetchTickets(ctx)
	if fetchErr == nil {
		saveSnapshot(mgr, tickets)
		return tickets, nil
	}
	contract.LogWarn("fetching tickets, falling back to snapshot", fetchErr)

	cached, err := loadSnapshot(mgr)
	if err != nil {
		return nil, fmt.Errorf("fetch failed (%w) and no usable snapshot: %w", fetchErr, err)
	}
	return cached, nil
}

// saveSnapshot persists the fetched payload. Failures are warnings, never
// fatal, since the live data is already in hand.
func saveSnapshot(mgr contract.CacheManager, tickets []schema.Ticket) {
	data, err := json.Marshal(tickets)
	if err != nil {
		contract.LogWarn("encoding ticket snapshot", err)
		return
	}
	store := mgr.GetSnapshotStore()
	if err := store.Set(SnapshotKey, data, SnapshotVersion, time.Now().Unix()); err != nil {
		contract.LogWarn("saving ticket snapshot", err)
	}
}

func loadSnapshot(mgr contract.CacheManager) ([]schema.Ticket, error) {
	data, _, _, err := mgr.GetSnapshotStore().Get(SnapshotKey)
	if err != nil {
		return nil, err
	}
	var tickets []schema.Ticket
	if err := json.Unmarshal(data, &tickets); err != nil {
		return nil, fmt.Errorf("decoding ticket snapshot: %w", err)
	}
	return tickets, nil
}

// ExecuteBoard fetches the feed, applies the roster allow-list and the
// active filters, and computes the control-panel statistics.
func ExecuteBoard(ctx context.Context, cfg *contract.Config, client contract.TicketClient, mgr contract.CacheManager) (schema.BoardStats, error) {
	tickets, err := FetchTickets(ctx, cfg, client, mgr)
	if err != nil {
		return schema.BoardStats{}, err
	}
	roster := NewRoster(cfg.Technicians, cfg.Aliases)
	filters, err := NewFilters(cfg, roster)
	if err != nil {
		return schema.BoardStats{}, err
	}
	return BuildBoardStats(filters.Apply(roster.FilterAllowed(tickets))), nil
}

// ExecuteTechs fetches the feed and runs the full multi-scope aggregation.
// Every run is recorded in the history store for trend analysis.
func ExecuteTechs(ctx context.Context, cfg *contract.Config, client contract.TicketClient, mgr contract.CacheManager) ([]schema.TechMetrics, schema.Summary, error) {
	start := time.Now()
	tickets, err := FetchTickets(ctx, cfg, client, mgr)
	if err != nil {
		return nil, schema.Summary{}, err
	}
	roster := NewRoster(cfg.Technicians, cfg.Aliases)
	results, summary := AggregateTickets(tickets, roster, cfg)
	recordRun(mgr, cfg, start, results, len(tickets))

	// The search term narrows the displayed technicians only; the summary
	// and the recorded run always cover the whole roster.
	if cfg.Search != "" {
		matcher := compileSearch(cfg.Search)
		kept := make([]schema.TechMetrics, 0, len(results))
		for _, tm := range results {
			if matcher.matches(tm.Raw) || matcher.matches(tm.Tech) {
				kept = append(kept, tm)
			}
		}
		results = kept
	}
	return results, summary, nil
}

// ExecuteMonth fetches the feed and builds the single-month breakdown. The
// month argument wins over the configured report month.
func ExecuteMonth(ctx context.Context, cfg *contract.Config, client contract.TicketClient, mgr contract.CacheManager) (schema.MonthReport, error) {
	tickets, err := FetchTickets(ctx, cfg, client, mgr)
	if err != nil {
		return schema.MonthReport{}, err
	}

	month := cfg.Months[0]
	if cfg.MonthArg != "" {
		parsed, err := time.Parse("2006-01", cfg.MonthArg)
		if err != nil {
			return schema.MonthReport{}, fmt.Errorf("invalid month %q, expected YYYY-MM: %w", cfg.MonthArg, err)
		}
		month = schema.MonthRange{
			Label: schema.MonthLabel(parsed.Month()),
			Year:  parsed.Year(),
			Month: parsed.Month(),
		}
	}

	roster := NewRoster(cfg.Technicians, cfg.Aliases)
	filters, err := NewFilters(cfg, roster)
	if err != nil {
		return schema.MonthReport{}, err
	}
	return BuildMonthReport(filters.Apply(roster.FilterAllowed(tickets)), month), nil
}

// ExecuteResolved fetches the feed and returns the resolved tickets that
// pass the active filters, sorted by the configured key.
func ExecuteResolved(ctx context.Context, cfg *contract.Config, client contract.TicketClient, mgr contract.CacheManager) ([]schema.Ticket, error) {
	tickets, err := FetchTickets(ctx, cfg, client, mgr)
	if err != nil {
		return nil, err
	}
	roster := NewRoster(cfg.Technicians, cfg.Aliases)
	filters, err := NewFilters(cfg, roster)
	if err != nil {
		return nil, err
	}

	resolved := make([]schema.Ticket, 0, len(tickets))
	for _, t := range filters.Apply(roster.FilterAllowed(tickets)) {
		if schema.IsResolved(t.Status) {
			resolved = append(resolved, t)
		}
	}
	SortTickets(resolved, cfg.SortBy, cfg.SortDesc)
	return resolved, nil
}

// ExecuteUnresolved fetches the feed and returns the oldest unresolved
// tickets up to the configured limit.
func ExecuteUnresolved(ctx context.Context, cfg *contract.Config, client contract.TicketClient, mgr contract.CacheManager) ([]schema.UnresolvedTicket, error) {
	tickets, err := FetchTickets(ctx, cfg, client, mgr)
	if err != nil {
		return nil, err
	}
	roster := NewRoster(cfg.Technicians, cfg.Aliases)
	filters, err := NewFilters(cfg, roster)
	if err != nil {
		return nil, err
	}
	return TopUnresolved(filters.Apply(roster.FilterAllowed(tickets)), cfg.Limit, cfg.Now), nil
}

// recordRun persists one aggregation run and its per-technician report-month
// rows. History failures are warnings only.
func recordRun(mgr contract.CacheManager, cfg *contract.Config, start time.Time, results []schema.TechMetrics, ticketCount int) {
	store := mgr.GetHistoryStore()
	runID, err := store.BeginRun(start, map[string]any{
		"report_month": fmt.Sprintf("%04d-%02d", cfg.ReportYear, int(cfg.ReportMonth)),
		"technicians":  len(cfg.Technicians),
	})
	if err != nil {
		contract.LogWarn("recording run start", err)
		return
	}

	now := time.Now()
	for _, tm := range results {
		report := tm.Months[0]
		rec := schema.TechMetricsRecord{
			RunID:          runID,
			Tech:           tm.Tech,
			PeriodLabel:    report.Label,
			RecordTime:     now,
			Assigned:       int32(report.Assigned),
			Resolved:       int32(report.Resolved),
			Pending:        int32(report.Pending),
			Surveys:        int32(report.SurveyCount),
			WeightedRating: report.WeightedRating,
			ResponseRate:   report.ResponseRate,
			SLAIdeal:       tm.SLA.IdealPercent,
			Participation:  tm.SLA.Participation,
		}
		if err := store.RecordTechMetrics(rec); err != nil {
			contract.LogWarn("recording technician metrics", err)
		}
	}

	if err := store.EndRun(runID, time.Now(), ticketCount); err != nil {
		contract.LogWarn("recording run end", err)
	}
}
