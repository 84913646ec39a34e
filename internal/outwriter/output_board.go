package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/drojas/deskmetrics/internal/contract"
	"github.com/drojas/deskmetrics/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteBoardStats outputs the control-panel statistics, dispatching based on the output format configured.
func WriteBoardStats(stats schema.BoardStats, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, stats)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeBoardCSV(w, stats)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeBoardTable(stats, cfg, duration, w)
		}, "Wrote table")
	}
}

// writeBoardTable generates and writes the human-readable board view.
func writeBoardTable(stats schema.BoardStats, cfg *contract.Config, duration time.Duration, writer io.Writer) error {
	if _, err := fmt.Fprintf(writer, "Total: %d | Abiertos: %d | Cerrados: %d | Pendientes: %d | Cancelados: %d\n",
		stats.Total, stats.Open, stats.Closed, stats.Pending, stats.Cancelled); err != nil {
		return err
	}

	if stats.OldestOpen != nil {
		t := stats.OldestOpen
		if _, err := fmt.Fprintf(writer, "Oldest open ticket: #%s (%s) %s\n",
			t.No, t.Date, contract.TruncateText(t.Subject, getMaxTableSubjectWidth(cfg))); err != nil {
			return err
		}
	}

	sections := []struct {
		title  string
		points []schema.ChartPoint
	}{
		{"By month", stats.ByMonth},
		{"By week", stats.ByWeek},
		{"By day of week", stats.ByDayOfWeek},
	}
	for _, section := range sections {
		if len(section.points) == 0 {
			continue
		}
		if _, err := fmt.Fprintf(writer, "\n%s:\n", section.title); err != nil {
			return err
		}
		if err := writeSeriesTable(section.points, writer); err != nil {
			return err
		}
	}

	if len(stats.ByMonthStatus) > 0 {
		if _, err := fmt.Fprintln(writer, "\nBy month and status:"); err != nil {
			return err
		}
		table := tablewriter.NewWriter(writer)
		table.Header([]string{"Month", "Status", "Count"})
		table.Configure(func(tcfg *tablewriter.Config) {
			tcfg.Row.Alignment.Global = tw.AlignRight
		})
		var data [][]string
		for _, group := range stats.ByMonthStatus {
			for _, p := range group.Points {
				data = append(data, []string{group.Group, p.Label, strconv.Itoa(int(p.Value))})
			}
		}
		if err := table.Bulk(data); err != nil {
			return err
		}
		if err := table.Render(); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(writer, "\nBoard refreshed in %v. Cache backend: %s\n", duration, cfg.CacheBackend); err != nil {
		return err
	}
	return nil
}

// writeSeriesTable renders one chart series as a label/count table.
func writeSeriesTable(points []schema.ChartPoint, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Label", "Count"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})
	var data [][]string
	for _, p := range points {
		data = append(data, []string{p.Label, strconv.Itoa(int(p.Value))})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeBoardCSV writes every board series as label/value rows with a series
// discriminator column.
func writeBoardCSV(w io.Writer, stats schema.BoardStats) error {
	header := []string{"series", "label", "value", "color"}

	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		write := func(series string, points []schema.ChartPoint) error {
			for _, p := range points {
				row := []string{series, p.Label, strconv.Itoa(int(p.Value)), string(p.Color)}
				if err := csvWriter.Write(row); err != nil {
					return fmt.Errorf("failed to write CSV row: %w", err)
				}
			}
			return nil
		}

		totals := []schema.ChartPoint{
			{Label: "total", Value: float64(stats.Total)},
			{Label: "open", Value: float64(stats.Open)},
			{Label: "closed", Value: float64(stats.Closed)},
			{Label: "pending", Value: float64(stats.Pending)},
			{Label: "cancelled", Value: float64(stats.Cancelled)},
		}
		if err := write("totals", totals); err != nil {
			return err
		}
		if err := write("by_month", stats.ByMonth); err != nil {
			return err
		}
		if err := write("by_week", stats.ByWeek); err != nil {
			return err
		}
		if err := write("by_day_of_week", stats.ByDayOfWeek); err != nil {
			return err
		}
		for _, group := range stats.ByMonthStatus {
			if err := write("by_month_status:"+group.Group, group.Points); err != nil {
				return err
			}
		}
		return nil
	})
}
