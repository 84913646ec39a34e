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

// WriteTicketResults outputs a ticket listing, dispatching based on the output format configured.
func WriteTicketResults(tickets []schema.Ticket, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, tickets)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeTicketCSV(w, tickets)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeTicketTable(tickets, cfg, duration, w)
		}, "Wrote table")
	}
}

// writeTicketTable generates and writes the human-readable ticket listing.
func writeTicketTable(tickets []schema.Ticket, cfg *contract.Config, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)
	table.Header([]string{"No", "Date", "Status", "Tech", "Location", "Subject"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignLeft
	})

	subjectWidth := getMaxTableSubjectWidth(cfg)
	var data [][]string
	for _, t := range tickets {
		data = append(data, []string{
			t.No,
			t.Date,
			t.Status,
			contract.TruncateText(t.AssignedTech(), 30),
			contract.TruncateText(t.Location, 25),
			contract.TruncateText(t.Subject, subjectWidth),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(writer, "Showing %d tickets. Completed in %v\n", len(tickets), duration); err != nil {
		return err
	}
	return nil
}

// writeTicketCSV writes the ticket listing in CSV format.
func writeTicketCSV(w io.Writer, tickets []schema.Ticket) error {
	header := []string{"no", "date", "status", "tech", "client", "location", "subject", "survey"}

	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for _, t := range tickets {
			row := []string{t.No, t.Date, t.Status, t.AssignedTech(), t.Client, t.Location, t.Subject, t.Survey}
			if err := csvWriter.Write(row); err != nil {
				return fmt.Errorf("failed to write CSV row: %w", err)
			}
		}
		return nil
	})
}

// WriteUnresolvedResults outputs the aging-ticket report, dispatching based on the output format configured.
func WriteUnresolvedResults(tickets []schema.UnresolvedTicket, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, tickets)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeUnresolvedCSV(w, tickets)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeUnresolvedTable(tickets, cfg, duration, w)
		}, "Wrote table")
	}
}

// writeUnresolvedTable generates and writes the human-readable aging report.
func writeUnresolvedTable(tickets []schema.UnresolvedTicket, cfg *contract.Config, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Rank", "No", "Date", "Days", "Status", "Reason", "Subject"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	subjectWidth := getMaxTableSubjectWidth(cfg)
	var data [][]string
	urgentCount := 0
	for _, ut := range tickets {
		rank := strconv.Itoa(ut.Rank)
		if ut.Urgent {
			urgentCount++
			if cfg.Color {
				rank = contract.PoorColor.Sprint(rank + " !")
			} else {
				rank += " !"
			}
		}
		data = append(data, []string{
			rank,
			ut.Ticket.No,
			ut.Ticket.Date,
			strconv.Itoa(ut.DaysOpen),
			ut.Ticket.Status,
			ut.StallReason,
			contract.TruncateText(ut.Ticket.Subject, subjectWidth),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(writer, "Showing %d unresolved tickets (%d urgent). Completed in %v\n",
		len(tickets), urgentCount, duration); err != nil {
		return err
	}
	return nil
}

// writeUnresolvedCSV writes the aging report in CSV format.
func writeUnresolvedCSV(w io.Writer, tickets []schema.UnresolvedTicket) error {
	header := []string{"rank", "no", "date", "days_open", "urgent", "status", "reason", "tech", "subject"}

	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for _, ut := range tickets {
			row := []string{
				strconv.Itoa(ut.Rank),
				ut.Ticket.No,
				ut.Ticket.Date,
				strconv.Itoa(ut.DaysOpen),
				strconv.FormatBool(ut.Urgent),
				ut.Ticket.Status,
				ut.StallReason,
				ut.Ticket.AssignedTech(),
				ut.Ticket.Subject,
			}
			if err := csvWriter.Write(row); err != nil {
				return fmt.Errorf("failed to write CSV row: %w", err)
			}
		}
		return nil
	})
}
