// Package core has core logic for ticket aggregation, filtering and ranking.
package core

import (
	"sort"
	"strings"

	"github.com/drojas/deskmetrics/schema"
)

// Roster resolves raw technician identifiers against the configured
// allow-list and alias map. The raw feed mixes formats (plain names, names
// with phone suffixes, names with bracketed usernames, and at least one
// mojibake variant), so matching happens in two tiers: exact first, then a
// substring check on the name portion of each known identifier.
type Roster struct {
	allowed    []string
	allowedSet map[string]struct{}
	aliases    map[string]string
	aliasOrder []string
}

// NewRoster builds a roster from an allow-list and alias map.
func NewRoster(allowList []string, aliases map[string]string) *Roster {
	r := &Roster{
		allowed:    append([]string(nil), allowList...),
		allowedSet: make(map[string]struct{}, len(allowList)),
		aliases:    make(map[string]string, len(aliases)),
	}
	for _, id := range allowList {
		r.allowedSet[id] = struct{}{}
	}
	for k, v := range aliases {
		r.aliases[k] = v
	}

	// Alias fallback matching iterates in allow-list order so results are
	// deterministic; alias keys outside the allow-list come last, sorted.
	seen := make(map[string]struct{}, len(aliases))
	for _, id := range allowList {
		if _, ok := r.aliases[id]; ok {
			r.aliasOrder = append(r.aliasOrder, id)
			seen[id] = struct{}{}
		}
	}
	var extras []string
	for k := range r.aliases {
		if _, ok := seen[k]; !ok {
			extras = append(extras, k)
		}
	}
	sort.Strings(extras)
	r.aliasOrder = append(r.aliasOrder, extras...)
	return r
}

// namePortion strips the " +phone" suffix and then the " [username]" suffix
// from a known identifier, leaving just the human name.
func namePortion(id string) string {
	name, _, _ := strings.Cut(id, " +")
	name, _, _ = strings.Cut(name, " [")
	return name
}

// Allowed reports whether a raw identifier belongs to a tracked technician.
// An empty identifier never matches. Beyond exact membership, a raw value
// that contains the full name portion of an allowed identifier matches too,
// which absorbs feed variants with different phone or username decorations.
func (r *Roster) Allowed(raw string) bool {
	if raw == "" {
		return false
	}
	if _, ok := r.allowedSet[raw]; ok {
		return true
	}
	for _, id := range r.allowed {
		if strings.Contains(raw, namePortion(id)) {
			return true
		}
	}
	return false
}

// Resolve maps a raw identifier to its display alias. Exact alias hits win;
// otherwise the first alias whose name portion appears inside the raw value
// is used. Unknown identifiers come back unchanged.
func (r *Roster) Resolve(raw string) string {
	if alias, ok := r.aliases[raw]; ok {
		return alias
	}
	for _, key := range r.aliasOrder {
		if strings.Contains(raw, namePortion(key)) {
			return r.aliases[key]
		}
	}
	return raw
}

// Identifiers returns the allow-list in configuration order.
func (r *Roster) Identifiers() []string {
	return append([]string(nil), r.allowed...)
}

// FilterAllowed returns the tickets whose effective technician is on the
// allow-list, preserving feed order. Every view runs its tickets through
// this before any counting or filtering, so off-roster technicians never
// reach a metric or listing.
func (r *Roster) FilterAllowed(tickets []schema.Ticket) []schema.Ticket {
	out := make([]schema.Ticket, 0, len(tickets))
	for _, t := range tickets {
		if r.Allowed(t.AssignedTech()) {
			out = append(out, t)
		}
	}
	return out
}
