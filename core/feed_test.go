package core

import (
	"context"
	_ "embed"
	"encoding/json"
	"testing"

	"github.com/drojas/deskmetrics/internal/contract"
	"github.com/drojas/deskmetrics/internal/iocache"
	"github.com/drojas/deskmetrics/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

//go:embed testdata/ticket_feed.json
var ticketFeedFixture []byte

// fixtureClient returns a client serving the embedded feed fixture.
func fixtureClient(t *testing.T) *contract.MockTicketClient {
	t.Helper()
	var tickets []schema.Ticket
	require.NoError(t, json.Unmarshal(ticketFeedFixture, &tickets))

	client := &contract.MockTicketClient{}
	client.On("FetchTickets", mock.Anything).Return(tickets, nil)
	return client
}

func fixtureManager() *iocache.MockCacheManager {
	snapshot := &iocache.MockSnapshotStore{}
	snapshot.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()

	history := &iocache.MockHistoryStore{}
	history.On("BeginRun", mock.Anything, mock.Anything).Return(int64(1), nil).Maybe()
	history.On("RecordTechMetrics", mock.Anything).Return(nil).Maybe()
	history.On("EndRun", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()

	return mockManager(snapshot, history)
}

func TestExecuteBoardOverFeedFixture(t *testing.T) {
	stats, err := ExecuteBoard(context.Background(), testConfig(), fixtureClient(t), fixtureManager())
	assert.NoError(t, err)

	// The off-roster "Practicante Externo" ticket never reaches the counters.
	assert.Equal(t, 7, stats.Total)
	assert.Equal(t, 1, stats.Open)
	assert.Equal(t, 3, stats.Closed) // Cerrado + Resuelto
	assert.Equal(t, 2, stats.Pending)
	assert.Equal(t, 1, stats.Cancelled)

	if assert.NotNil(t, stats.OldestOpen) {
		assert.Equal(t, "1002", stats.OldestOpen.No)
	}
}

func TestExecuteTechsOverFeedFixture(t *testing.T) {
	results, summary, err := ExecuteTechs(context.Background(), testConfig(), fixtureClient(t), fixtureManager())
	assert.NoError(t, err)

	// The off-roster "Practicante Externo" ticket is excluded.
	assert.Len(t, results, 4)
	assert.Equal(t, 6, summary.TotalAssigned)
	assert.Equal(t, 2, summary.TotalResolved)
	assert.Equal(t, 2, summary.TotalSurveys)

	byTech := make(map[string]schema.TechMetrics, len(results))
	for _, tm := range results {
		byTech[tm.Tech] = tm
	}

	castro := byTech["José Castro"]
	assert.Equal(t, 3, castro.Months[0].Assigned)
	assert.Equal(t, 1, castro.Months[0].Resolved)
	assert.Equal(t, 5.0, castro.Months[0].WeightedRating)

	// The mojibake roster entry still aggregates under its clean alias.
	morales := byTech["José Morales"]
	assert.Equal(t, 1, morales.Months[0].Assigned)

	// The September ticket lands in the second month scope, not the first.
	lopez := byTech["Rolando López"]
	assert.Equal(t, 1, lopez.Months[0].Assigned)
	assert.Equal(t, 1, lopez.Months[1].Assigned)
	assert.Equal(t, 1, lopez.Months[1].SurveyCount)
}

func TestExecuteTechsSearchNarrowsResults(t *testing.T) {
	cfg := testConfig()
	cfg.Search = "jo*"

	results, summary, err := ExecuteTechs(context.Background(), cfg, fixtureClient(t), fixtureManager())
	assert.NoError(t, err)

	// Wildcard search keeps the two Jos* technicians but the summary still
	// covers the whole roster.
	assert.Len(t, results, 2)
	assert.Equal(t, 6, summary.TotalAssigned)
}
