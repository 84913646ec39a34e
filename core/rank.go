package core

import (
	"sort"
	"time"

	"github.com/drojas/deskmetrics/schema"
)

// UrgentRanks marks how many of the oldest unresolved tickets get flagged
// as urgent in the top-N view.
const UrgentRanks = 3

// SortTickets orders tickets in place by the given key. The "no" key sorts
// numerically on the ticket number, the date key chronologically with
// unparseable dates first, and every other key lexicographically on the
// raw field value. The sort is stable so feed order breaks ties.
func SortTickets(tickets []schema.Ticket, key schema.SortKey, desc bool) {
	var less func(a, b schema.Ticket) bool
	switch key {
	case schema.SortByDate:
		less = func(a, b schema.Ticket) bool {
			return ticketTime(a).Before(ticketTime(b))
		}
	case schema.SortByStatus:
		less = func(a, b schema.Ticket) bool { return a.Status < b.Status }
	case schema.SortByTech:
		less = func(a, b schema.Ticket) bool { return a.AssignedTech() < b.AssignedTech() }
	case schema.SortByClient:
		less = func(a, b schema.Ticket) bool { return a.Client < b.Client }
	case schema.SortByLocation:
		less = func(a, b schema.Ticket) bool { return a.Location < b.Location }
	case schema.SortBySubject:
		less = func(a, b schema.Ticket) bool { return a.Subject < b.Subject }
	default: // SortByNumber
		less = func(a, b schema.Ticket) bool { return a.Number() < b.Number() }
	}

	sort.SliceStable(tickets, func(i, j int) bool {
		if desc {
			return less(tickets[j], tickets[i])
		}
		return less(tickets[i], tickets[j])
	})
}

// ticketTime returns the parsed ticket date, or the zero time when the
// date cannot be parsed so such tickets sort first in ascending order.
func ticketTime(t schema.Ticket) time.Time {
	d, _ := t.ParsedDate()
	return d
}

// TopUnresolved selects the oldest unresolved tickets, oldest first, up to
// the limit. Cancelled tickets are not unresolved. The first UrgentRanks
// entries are flagged urgent, and every entry gets a rank, an age in whole
// days, and a stall reason derived from its status.
func TopUnresolved(tickets []schema.Ticket, limit int, now time.Time) []schema.UnresolvedTicket {
	open := make([]schema.Ticket, 0, len(tickets))
	for _, t := range tickets {
		if schema.IsUnresolved(t.Status) {
			open = append(open, t)
		}
	}
	SortTickets(open, schema.SortByDate, false)

	if limit > 0 && len(open) > limit {
		open = open[:limit]
	}

	out := make([]schema.UnresolvedTicket, 0, len(open))
	for i, t := range open {
		days := 0
		if d, ok := t.ParsedDate(); ok {
			days = DaysOpen(d, now)
		}
		out = append(out, schema.UnresolvedTicket{
			Rank:        i + 1,
			Ticket:      t,
			DaysOpen:    days,
			Urgent:      i < UrgentRanks,
			StallReason: schema.StallReason(t.Status),
		})
	}
	return out
}
