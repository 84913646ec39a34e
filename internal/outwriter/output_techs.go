package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/drojas/deskmetrics/core"
	"github.com/drojas/deskmetrics/internal/contract"
	"github.com/drojas/deskmetrics/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// techResultsPayload is the JSON envelope for the technician report. The
// workload and survey coverage series feed the dashboard charts directly.
type techResultsPayload struct {
	Technicians    []schema.TechMetrics           `json:"technicians"`
	Summary        schema.Summary                 `json:"summary"`
	Workload       map[string][]schema.ChartPoint `json:"workload"`
	SurveyCoverage []schema.ChartPoint            `json:"survey_coverage"`
}

// WriteTechResults outputs the technician metrics, dispatching based on the output format configured.
func WriteTechResults(results []schema.TechMetrics, summary schema.Summary, cfg *contract.Config, duration time.Duration) error {
	// Create formatters using helper
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		workload := make(map[string][]schema.ChartPoint, len(results))
		for _, tm := range results {
			workload[tm.Tech] = core.BuildTechSeries(tm)
		}
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, techResultsPayload{
				Technicians:    results,
				Summary:        summary,
				Workload:       workload,
				SurveyCoverage: core.BuildSurveyCoverage(summary),
			})
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeTechCSV(w, results, fmtFloat, intFmt)
		}, "Wrote CSV")
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeTechTable(results, summary, cfg, fmtFloat, intFmt, duration, w)
		}, "Wrote table")
	}
}

// writeTechTable generates and writes the human-readable table.
func writeTechTable(results []schema.TechMetrics, summary schema.Summary, cfg *contract.Config, fmtFloat func(float64) string, intFmt string, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	table.Header([]string{"Tech", "Assigned", "Resolved", "Pending", "Surveys", "Rating", "Label", "Resp%", "SLA%", "Part%", "Daily"})

	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, tm := range results {
		report := tm.Months[0]
		row := []string{
			tm.Tech,
			fmt.Sprintf(intFmt, report.Assigned),
			fmt.Sprintf(intFmt, report.Resolved),
			fmt.Sprintf(intFmt, report.Pending),
			fmt.Sprintf(intFmt, report.SurveyCount),
			fmtFloat(report.WeightedRating),
			ratingLabel(report.WeightedRating, cfg),
			fmtFloat(report.ResponseRate),
			percentLabel(tm.SLA.IdealPercent, 100, fmtFloat, cfg),
			percentLabel(tm.SLA.Participation, 100, fmtFloat, cfg),
			fmt.Sprintf(intFmt, tm.DailyAverage),
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(writer, "Team: %d assigned, %d resolved, %d surveys (%d%% surveyed)\n",
		summary.TotalAssigned, summary.TotalResolved, summary.TotalSurveys, summary.PercentSurveyed); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Averages: %s assigned/tech, %s rating, %s%% SLA, %s%% participation\n",
		fmtFloat(summary.AvgAssigned), fmtFloat(summary.AvgRating), fmtFloat(summary.AvgSLAIdeal), fmtFloat(summary.AvgParticipation)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Report completed in %v. Cache backend: %s\n", duration, cfg.CacheBackend); err != nil {
		return err
	}
	return nil
}

// writeTechCSV writes the technician metrics in CSV format, one row per
// technician per scope so spreadsheets can pivot on the period label.
func writeTechCSV(w io.Writer, results []schema.TechMetrics, fmtFloat func(float64) string, intFmt string) error {
	header := []string{
		"tech",
		"period",
		"assigned",
		"resolved",
		"pending",
		"surveys",
		"rating",
		"label",
		"response_rate",
		"resolution_rate",
		"sla_ideal",
		"participation",
		"daily_average",
	}

	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for _, tm := range results {
			scopes := append(append([]schema.ScopeMetrics{}, tm.Months...), tm.Weeks...)
			for _, s := range scopes {
				row := []string{
					tm.Tech,
					s.Label,
					fmt.Sprintf(intFmt, s.Assigned),
					fmt.Sprintf(intFmt, s.Resolved),
					fmt.Sprintf(intFmt, s.Pending),
					fmt.Sprintf(intFmt, s.SurveyCount),
					fmtFloat(s.WeightedRating),
					contract.GetPlainRatingLabel(s.WeightedRating),
					fmtFloat(s.ResponseRate),
					fmtFloat(s.ResolutionRate),
					fmtFloat(tm.SLA.IdealPercent),
					fmtFloat(tm.SLA.Participation),
					strconv.Itoa(tm.DailyAverage),
				}
				if err := csvWriter.Write(row); err != nil {
					return fmt.Errorf("failed to write CSV row: %w", err)
				}
			}
		}
		return nil
	})
}

// ratingLabel picks the colored or plain rating label based on config.
func ratingLabel(rating float64, cfg *contract.Config) string {
	if cfg.Color {
		return contract.GetColorRatingLabel(rating)
	}
	return contract.GetPlainRatingLabel(rating)
}

// percentLabel formats a percentage, colored against a target when enabled.
func percentLabel(value, target float64, fmtFloat func(float64) string, cfg *contract.Config) string {
	formatted := fmtFloat(value)
	if cfg.Color {
		return contract.GetColorPercent(value, target, formatted)
	}
	return formatted
}
