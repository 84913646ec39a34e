package core

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/drojas/deskmetrics/internal/contract"
	"github.com/drojas/deskmetrics/schema"
)

// PendingFilter is the synthetic status value that selects every ticket
// whose status falls outside the four primary ones.
const PendingFilter = "Pendiente"

// searchMatcher is the compiled form of a search term. Exactly one of
// pattern and substring is active.
type searchMatcher struct {
	pattern   *regexp.Regexp
	substring string
	invalid   bool
}

// Filters holds the compiled ticket predicates for one command invocation.
type Filters struct {
	roster *Roster

	search  *searchMatcher
	status  string
	tech    string
	store   string
	brand   string
	month   *schema.MonthRange
	ratings map[int]struct{}
	from    *time.Time
	to      *time.Time
}

// NewFilters compiles the filter settings from a validated config. An
// unparseable month argument is reported; a malformed wildcard pattern is
// not an error, it simply matches nothing.
func NewFilters(cfg *contract.Config, roster *Roster) (*Filters, error) {
	f := &Filters{
		roster: roster,
		status: cfg.Status,
		tech:   cfg.TechFilter,
		store:  cfg.StoreFilter,
		brand:  cfg.BrandFilter,
	}
	if cfg.Search != "" {
		f.search = compileSearch(cfg.Search)
	}
	if cfg.MonthArg != "" {
		parsed, err := time.Parse("2006-01", cfg.MonthArg)
		if err != nil {
			return nil, fmt.Errorf("invalid month %q, expected YYYY-MM: %w", cfg.MonthArg, err)
		}
		f.month = &schema.MonthRange{
			Label: schema.MonthLabel(parsed.Month()),
			Year:  parsed.Year(),
			Month: parsed.Month(),
		}
	}
	if len(cfg.Ratings) > 0 {
		f.ratings = make(map[int]struct{}, len(cfg.Ratings))
		for _, r := range cfg.Ratings {
			f.ratings[r] = struct{}{}
		}
	}
	if cfg.FromArg != "" {
		parsed, err := time.Parse("2006-01-02", cfg.FromArg)
		if err != nil {
			return nil, fmt.Errorf("invalid from date %q, expected YYYY-MM-DD: %w", cfg.FromArg, err)
		}
		f.from = &parsed
	}
	if cfg.ToArg != "" {
		parsed, err := time.Parse("2006-01-02", cfg.ToArg)
		if err != nil {
			return nil, fmt.Errorf("invalid to date %q, expected YYYY-MM-DD: %w", cfg.ToArg, err)
		}
		// Inclusive upper bound: the whole named day counts.
		end := parsed.AddDate(0, 0, 1)
		f.to = &end
	}
	return f, nil
}

// compileSearch lowercases the term and, when it carries a '*' wildcard,
// turns it into an anchored case-insensitive regexp. Literal dots are
// escaped before the wildcard expansion so the '.' of '.*' survives.
func compileSearch(term string) *searchMatcher {
	term = strings.ToLower(term)
	if !strings.Contains(term, "*") {
		return &searchMatcher{substring: term}
	}
	pattern := strings.ReplaceAll(term, ".", `\.`)
	pattern = strings.ReplaceAll(pattern, "*", ".*")
	re, err := regexp.Compile("(?i)^" + pattern + "$")
	if err != nil {
		return &searchMatcher{invalid: true}
	}
	return &searchMatcher{pattern: re}
}

// matches tests one candidate string against the compiled term.
func (m *searchMatcher) matches(candidate string) bool {
	if m.invalid {
		return false
	}
	if m.pattern != nil {
		return m.pattern.MatchString(candidate)
	}
	return strings.Contains(strings.ToLower(candidate), m.substring)
}

// Matches reports whether a single ticket passes every active filter.
func (f *Filters) Matches(t schema.Ticket) bool {
	if f.status != "" && !f.statusMatches(t.Status) {
		return false
	}
	tech := t.AssignedTech()
	if f.tech != "" && f.roster.Resolve(tech) != f.tech && tech != f.tech {
		return false
	}
	if f.store != "" && !strings.Contains(strings.ToLower(t.Location), strings.ToLower(f.store)) {
		return false
	}
	if f.brand != "" && !strings.Contains(strings.ToLower(t.Client), strings.ToLower(f.brand)) {
		return false
	}
	if f.month != nil {
		d, ok := t.ParsedDate()
		if !ok || !f.month.Contains(d) {
			return false
		}
	}
	if f.from != nil || f.to != nil {
		d, ok := t.ParsedDate()
		if !ok {
			return false
		}
		if f.from != nil && d.Before(*f.from) {
			return false
		}
		if f.to != nil && !d.Before(*f.to) {
			return false
		}
	}
	if f.ratings != nil {
		// Tickets without a valid survey carry the 0 sentinel, so a rating
		// set of {0} selects exactly the unsurveyed ones.
		rating, ok := t.SurveyRating()
		if !ok {
			rating = 0
		}
		if _, selected := f.ratings[rating]; !selected {
			return false
		}
	}
	if f.search != nil {
		// Search runs against both the raw feed identifier and its alias,
		// so "jo*" finds "Jose Castro [jose.castro]" either way.
		if !f.search.matches(tech) && !f.search.matches(f.roster.Resolve(tech)) {
			return false
		}
	}
	return true
}

// statusMatches handles the Pendiente pseudo-status alongside literal ones.
func (f *Filters) statusMatches(status string) bool {
	if f.status == PendingFilter {
		return schema.IsPendingStatus(status)
	}
	return status == f.status
}

// Apply returns the tickets that pass every filter, preserving feed order.
func (f *Filters) Apply(tickets []schema.Ticket) []schema.Ticket {
	out := make([]schema.Ticket, 0, len(tickets))
	for _, t := range tickets {
		if f.Matches(t) {
			out = append(out, t)
		}
	}
	return out
}

// DistinctStatuses returns the sorted set of literal status values present
// in the slice, with the Pendiente pseudo-status appended when any ticket
// would match it.
func DistinctStatuses(tickets []schema.Ticket) []string {
	seen := make(map[string]struct{})
	pending := false
	for _, t := range tickets {
		seen[t.Status] = struct{}{}
		if schema.IsPendingStatus(t.Status) {
			pending = true
		}
	}
	out := make([]string, 0, len(seen)+1)
	for s := range seen {
		out = append(out, s)
	}
	sort.Strings(out)
	if pending {
		out = append(out, PendingFilter)
	}
	return out
}

// DistinctTechs returns the sorted set of resolved technician aliases for
// tickets whose technician is on the roster.
func DistinctTechs(tickets []schema.Ticket, roster *Roster) []string {
	seen := make(map[string]struct{})
	for _, t := range tickets {
		if !roster.Allowed(t.AssignedTech()) {
			continue
		}
		seen[roster.Resolve(t.AssignedTech())] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
