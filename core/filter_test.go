package core

import (
	"testing"

	"github.com/drojas/deskmetrics/schema"
	"github.com/stretchr/testify/assert"
)

func TestSearchSubstring(t *testing.T) {
	cfg := testConfig()
	cfg.Search = "castro"
	roster := NewRoster(cfg.Technicians, cfg.Aliases)
	f, err := NewFilters(cfg, roster)
	assert.NoError(t, err)

	assert.True(t, f.Matches(castroTicket("1", "2025-10-02", schema.StatusOpen, "")))
	assert.False(t, f.Matches(schema.Ticket{Tech: "Saul Recinos [saul.recinos]"}))
}

func TestSearchWildcard(t *testing.T) {
	cfg := testConfig()
	cfg.Search = "jo*"
	roster := NewRoster(cfg.Technicians, cfg.Aliases)
	f, err := NewFilters(cfg, roster)
	assert.NoError(t, err)

	// Anchored pattern: matches the raw identifier from the start.
	assert.True(t, f.Matches(castroTicket("1", "2025-10-02", schema.StatusOpen, "")))
	assert.False(t, f.Matches(schema.Ticket{Tech: "Byron Borrayo +50254287799 [Byron.Borrayo]"}))
}

func TestSearchWildcardEscapesDots(t *testing.T) {
	// The dot in "jose.castro" must stay literal, so "jose_castro" style
	// raw values do not match a dotted pattern.
	m := compileSearch("*jose.castro*")
	assert.True(t, m.matches("Jose Castro [jose.castro]"))
	assert.False(t, m.matches("Jose Castro [joseXcastro]"))
}

func TestSearchInvalidPatternMatchesNothing(t *testing.T) {
	m := compileSearch("val(*")
	assert.False(t, m.matches("val("))
	assert.False(t, m.matches("anything"))
}

func TestStatusFilterPending(t *testing.T) {
	cfg := testConfig()
	cfg.Status = PendingFilter
	roster := NewRoster(cfg.Technicians, cfg.Aliases)
	f, err := NewFilters(cfg, roster)
	assert.NoError(t, err)

	assert.True(t, f.Matches(schema.Ticket{Status: schema.StatusInProgress}))
	assert.True(t, f.Matches(schema.Ticket{Status: "Algo raro"}))
	assert.False(t, f.Matches(schema.Ticket{Status: schema.StatusOpen}))
	assert.False(t, f.Matches(schema.Ticket{Status: schema.StatusResolved}))
	assert.False(t, f.Matches(schema.Ticket{Status: schema.StatusCancelled}))
}

func TestStoreAndBrandFilters(t *testing.T) {
	cfg := testConfig()
	cfg.StoreFilter = "zona 10"
	cfg.BrandFilter = "acme"
	roster := NewRoster(cfg.Technicians, cfg.Aliases)
	f, err := NewFilters(cfg, roster)
	assert.NoError(t, err)

	assert.True(t, f.Matches(schema.Ticket{Location: "Tienda Zona 10", Client: "ACME Retail"}))
	assert.False(t, f.Matches(schema.Ticket{Location: "Tienda Zona 10", Client: "Otro"}))
	assert.False(t, f.Matches(schema.Ticket{Location: "Centro", Client: "ACME Retail"}))
}

func TestMonthFilter(t *testing.T) {
	cfg := testConfig()
	cfg.MonthArg = "2025-09"
	roster := NewRoster(cfg.Technicians, cfg.Aliases)
	f, err := NewFilters(cfg, roster)
	assert.NoError(t, err)

	assert.True(t, f.Matches(schema.Ticket{Date: "2025-09-30"}))
	assert.False(t, f.Matches(schema.Ticket{Date: "2025-10-01"}))
	assert.False(t, f.Matches(schema.Ticket{Date: "garbage"}))
}

func TestMonthFilterInvalidArg(t *testing.T) {
	cfg := testConfig()
	cfg.MonthArg = "September"
	roster := NewRoster(cfg.Technicians, cfg.Aliases)
	_, err := NewFilters(cfg, roster)
	assert.Error(t, err)
}

func TestRatingSetFilter(t *testing.T) {
	cfg := testConfig()
	cfg.Ratings = []int{5, 0}
	roster := NewRoster(cfg.Technicians, cfg.Aliases)
	f, err := NewFilters(cfg, roster)
	assert.NoError(t, err)

	assert.True(t, f.Matches(schema.Ticket{Survey: "5"}))
	// No survey and out-of-range values both carry the 0 sentinel.
	assert.True(t, f.Matches(schema.Ticket{}))
	assert.True(t, f.Matches(schema.Ticket{Survey: "9"}))
	assert.False(t, f.Matches(schema.Ticket{Survey: "3"}))
}

func TestRatingSetEmptyMatchesAll(t *testing.T) {
	cfg := testConfig()
	roster := NewRoster(cfg.Technicians, cfg.Aliases)
	f, err := NewFilters(cfg, roster)
	assert.NoError(t, err)

	assert.True(t, f.Matches(schema.Ticket{Survey: "1"}))
	assert.True(t, f.Matches(schema.Ticket{}))
}

func TestDateRangeFilter(t *testing.T) {
	cfg := testConfig()
	cfg.FromArg = "2025-10-05"
	cfg.ToArg = "2025-10-10"
	roster := NewRoster(cfg.Technicians, cfg.Aliases)
	f, err := NewFilters(cfg, roster)
	assert.NoError(t, err)

	// Both bounds are inclusive, down to the last instant of the to-day.
	assert.True(t, f.Matches(schema.Ticket{Date: "2025-10-05"}))
	assert.True(t, f.Matches(schema.Ticket{Date: "2025-10-10 23:59:59"}))
	assert.False(t, f.Matches(schema.Ticket{Date: "2025-10-04"}))
	assert.False(t, f.Matches(schema.Ticket{Date: "2025-10-11"}))
	assert.False(t, f.Matches(schema.Ticket{Date: "garbage"}))
}

func TestDateRangeFilterOpenEnds(t *testing.T) {
	cfg := testConfig()
	cfg.FromArg = "2025-10-05"
	roster := NewRoster(cfg.Technicians, cfg.Aliases)
	f, err := NewFilters(cfg, roster)
	assert.NoError(t, err)

	// A missing bound removes that constraint.
	assert.True(t, f.Matches(schema.Ticket{Date: "2030-01-01"}))
	assert.False(t, f.Matches(schema.Ticket{Date: "2025-10-04"}))

	cfg = testConfig()
	cfg.ToArg = "2025-10-05"
	f, err = NewFilters(cfg, roster)
	assert.NoError(t, err)
	assert.True(t, f.Matches(schema.Ticket{Date: "2020-01-01"}))
	assert.False(t, f.Matches(schema.Ticket{Date: "2025-10-06"}))
}

func TestDateRangeFilterInvalidArg(t *testing.T) {
	cfg := testConfig()
	cfg.FromArg = "05/10/2025"
	roster := NewRoster(cfg.Technicians, cfg.Aliases)
	_, err := NewFilters(cfg, roster)
	assert.Error(t, err)

	cfg = testConfig()
	cfg.ToArg = "October"
	_, err = NewFilters(cfg, roster)
	assert.Error(t, err)
}

func TestTechFilterUsesAssignedField(t *testing.T) {
	cfg := testConfig()
	cfg.TechFilter = "José Castro"
	roster := NewRoster(cfg.Technicians, cfg.Aliases)
	f, err := NewFilters(cfg, roster)
	assert.NoError(t, err)

	// "Tecnico Asignado" wins over "Tech" when both are present.
	assert.True(t, f.Matches(schema.Ticket{
		Tech:         "Otro Nombre",
		TechAssigned: "Jose Castro [jose.castro]",
	}))
	assert.False(t, f.Matches(schema.Ticket{
		Tech:         "Jose Castro [jose.castro]",
		TechAssigned: "Saul Recinos [saul.recinos]",
	}))
}

func TestApplyPreservesOrder(t *testing.T) {
	cfg := testConfig()
	cfg.Status = schema.StatusOpen
	roster := NewRoster(cfg.Technicians, cfg.Aliases)
	f, err := NewFilters(cfg, roster)
	assert.NoError(t, err)

	tickets := []schema.Ticket{
		{No: "3", Status: schema.StatusOpen},
		{No: "1", Status: schema.StatusClosed},
		{No: "2", Status: schema.StatusOpen},
	}
	got := f.Apply(tickets)
	assert.Len(t, got, 2)
	assert.Equal(t, "3", got[0].No)
	assert.Equal(t, "2", got[1].No)
}

func TestDistinctStatuses(t *testing.T) {
	tickets := []schema.Ticket{
		{Status: schema.StatusOpen},
		{Status: schema.StatusClosed},
		{Status: schema.StatusInProgress},
		{Status: schema.StatusOpen},
	}
	got := DistinctStatuses(tickets)
	assert.Equal(t, []string{schema.StatusOpen, schema.StatusClosed, schema.StatusInProgress, PendingFilter}, got)
}

func TestDistinctTechs(t *testing.T) {
	roster := defaultRoster()
	tickets := []schema.Ticket{
		{Tech: "Jose Castro [jose.castro]"},
		{Tech: "Jose Castro [jcastro2]"},
		{Tech: "Maria Lopez [maria.lopez]"},
		{Tech: "Saul Recinos [saul.recinos]"},
	}
	got := DistinctTechs(tickets, roster)
	assert.Equal(t, []string{"José Castro", "Saúl Recinos"}, got)
}
