package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/drojas/deskmetrics/internal/contract"
	"github.com/drojas/deskmetrics/schema"
)

// WriteMonthReport outputs the single-month breakdown, dispatching based on the output format configured.
func WriteMonthReport(report schema.MonthReport, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, report)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeMonthCSV(w, report)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeMonthText(report, cfg, duration, w)
		}, "Wrote table")
	}
}

// writeMonthText generates the human-readable month summary.
func writeMonthText(report schema.MonthReport, cfg *contract.Config, duration time.Duration, writer io.Writer) error {
	if _, err := fmt.Fprintf(writer, "%s %d: %d assigned, %d resolved, %d surveys\n",
		report.Month.Label, report.Month.Year, report.Assigned, report.Resolved, report.Surveys); err != nil {
		return err
	}

	if len(report.StatusSeries) > 0 {
		if _, err := fmt.Fprintln(writer, "\nStatus distribution:"); err != nil {
			return err
		}
		if err := writeSeriesTable(report.StatusSeries, writer); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintln(writer, "\nSurvey coverage:"); err != nil {
		return err
	}
	if err := writeSeriesTable(report.SurveySeries, writer); err != nil {
		return err
	}

	if len(report.SurveyTickets) > 0 {
		if _, err := fmt.Fprintln(writer, "\nSurveyed tickets:"); err != nil {
			return err
		}
		for _, t := range report.SurveyTickets {
			if _, err := fmt.Fprintf(writer, "  #%s %s [%s] %s\n",
				t.No, t.Date, t.Survey, contract.TruncateText(t.Subject, getMaxTableSubjectWidth(cfg))); err != nil {
				return err
			}
		}
	}

	if _, err := fmt.Fprintf(writer, "\nReport completed in %v. Cache backend: %s\n", duration, cfg.CacheBackend); err != nil {
		return err
	}
	return nil
}

// writeMonthCSV writes the month breakdown as ticket rows.
func writeMonthCSV(w io.Writer, report schema.MonthReport) error {
	header := []string{"no", "date", "status", "tech", "client", "location", "subject", "survey"}

	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for _, t := range report.Tickets {
			row := []string{t.No, t.Date, t.Status, t.AssignedTech(), t.Client, t.Location, t.Subject, t.Survey}
			if err := csvWriter.Write(row); err != nil {
				return fmt.Errorf("failed to write CSV row: %w", err)
			}
		}
		return nil
	})
}
