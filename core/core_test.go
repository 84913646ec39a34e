package core

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"

	"github.com/drojas/deskmetrics/internal/contract"
	"github.com/drojas/deskmetrics/internal/iocache"
	"github.com/drojas/deskmetrics/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func mockManager(snapshot *iocache.MockSnapshotStore, history *iocache.MockHistoryStore) *iocache.MockCacheManager {
	mgr := &iocache.MockCacheManager{}
	mgr.On("GetSnapshotStore").Return(snapshot).Maybe()
	mgr.On("GetHistoryStore").Return(history).Maybe()
	return mgr
}

func TestFetchTicketsLiveRefreshesSnapshot(t *testing.T) {
	tickets := []schema.Ticket{castroTicket("1", "2025-10-02", schema.StatusOpen, "")}

	client := &contract.MockTicketClient{}
	client.On("FetchTickets", mock.Anything).Return(tickets, nil)

	snapshot := &iocache.MockSnapshotStore{}
	snapshot.On("Set", SnapshotKey, mock.Anything, SnapshotVersion, mock.Anything).Return(nil)

	got, err := FetchTickets(context.Background(), testConfig(), client, mockManager(snapshot, nil))
	assert.NoError(t, err)
	assert.Equal(t, tickets, got)
	snapshot.AssertCalled(t, "Set", SnapshotKey, mock.Anything, SnapshotVersion, mock.Anything)
}

func TestFetchTicketsFallsBackToSnapshot(t *testing.T) {
	cached := []schema.Ticket{castroTicket("7", "2025-10-02", schema.StatusOpen, "")}
	data, err := json.Marshal(cached)
	assert.NoError(t, err)

	client := &contract.MockTicketClient{}
	client.On("FetchTickets", mock.Anything).Return(nil, assert.AnError)

	snapshot := &iocache.MockSnapshotStore{}
	snapshot.On("Get", SnapshotKey).Return(data, SnapshotVersion, int64(100), nil)

	got, err := FetchTickets(context.Background(), testConfig(), client, mockManager(snapshot, nil))
	assert.NoError(t, err)
	assert.Equal(t, cached, got)
}

func TestFetchTicketsNoFallbackAvailable(t *testing.T) {
	client := &contract.MockTicketClient{}
	client.On("FetchTickets", mock.Anything).Return(nil, assert.AnError)

	snapshot := &iocache.MockSnapshotStore{}
	snapshot.On("Get", SnapshotKey).Return(nil, 0, int64(0), sql.ErrNoRows)

	_, err := FetchTickets(context.Background(), testConfig(), client, mockManager(snapshot, nil))
	assert.Error(t, err)
}

func TestExecuteTechsRecordsRun(t *testing.T) {
	tickets := []schema.Ticket{
		castroTicket("1", "2025-10-02", schema.StatusResolved, "5"),
		castroTicket("2", "2025-10-03", schema.StatusOpen, ""),
	}

	client := &contract.MockTicketClient{}
	client.On("FetchTickets", mock.Anything).Return(tickets, nil)

	snapshot := &iocache.MockSnapshotStore{}
	snapshot.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	history := &iocache.MockHistoryStore{}
	history.On("BeginRun", mock.Anything, mock.Anything).Return(int64(5), nil)
	history.On("RecordTechMetrics", mock.MatchedBy(func(rec schema.TechMetricsRecord) bool {
		return rec.RunID == 5 && rec.Tech == "José Castro" && rec.Assigned == 2
	})).Return(nil)
	history.On("EndRun", int64(5), mock.Anything, 2).Return(nil)

	results, summary, err := ExecuteTechs(context.Background(), testConfig(), client, mockManager(snapshot, history))
	assert.NoError(t, err)
	assert.Len(t, results, 1)
	assert.Equal(t, 2, summary.TotalAssigned)
	history.AssertExpectations(t)
}

func TestExecuteBoardExcludesOffRosterTech(t *testing.T) {
	tickets := []schema.Ticket{
		castroTicket("1", "2025-10-02", schema.StatusOpen, ""),
		{No: "2", Date: "2025-10-01", Status: schema.StatusOpen, Tech: "Practicante Externo"},
	}

	client := &contract.MockTicketClient{}
	client.On("FetchTickets", mock.Anything).Return(tickets, nil)

	snapshot := &iocache.MockSnapshotStore{}
	snapshot.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	stats, err := ExecuteBoard(context.Background(), testConfig(), client, mockManager(snapshot, nil))
	assert.NoError(t, err)

	// The off-roster ticket never reaches a counter, even though its date
	// would make it the oldest open one.
	assert.Equal(t, 1, stats.Total)
	assert.Equal(t, 1, stats.Open)
	if assert.NotNil(t, stats.OldestOpen) {
		assert.Equal(t, "1", stats.OldestOpen.No)
	}
}

func TestExecuteUnresolvedExcludesOffRosterTech(t *testing.T) {
	tickets := []schema.Ticket{
		{No: "9", Date: "2025-09-01", Status: schema.StatusOpen, Tech: "Practicante Externo"},
		castroTicket("1", "2025-10-02", schema.StatusOpen, ""),
	}

	client := &contract.MockTicketClient{}
	client.On("FetchTickets", mock.Anything).Return(tickets, nil)

	snapshot := &iocache.MockSnapshotStore{}
	snapshot.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	top, err := ExecuteUnresolved(context.Background(), testConfig(), client, mockManager(snapshot, nil))
	assert.NoError(t, err)
	assert.Len(t, top, 1)
	assert.Equal(t, "1", top[0].Ticket.No)
}

func TestExecuteUnresolvedHonorsLimit(t *testing.T) {
	tickets := []schema.Ticket{
		castroTicket("1", "2025-10-01", schema.StatusOpen, ""),
		castroTicket("2", "2025-10-02", schema.StatusOpen, ""),
		castroTicket("3", "2025-10-03", schema.StatusOpen, ""),
	}

	client := &contract.MockTicketClient{}
	client.On("FetchTickets", mock.Anything).Return(tickets, nil)

	snapshot := &iocache.MockSnapshotStore{}
	snapshot.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	cfg := testConfig()
	cfg.Limit = 2

	top, err := ExecuteUnresolved(context.Background(), cfg, client, mockManager(snapshot, nil))
	assert.NoError(t, err)
	assert.Len(t, top, 2)
	assert.Equal(t, "1", top[0].Ticket.No)
}

func TestExecuteMonthWithArg(t *testing.T) {
	tickets := []schema.Ticket{
		castroTicket("1", "2025-09-10", schema.StatusResolved, "4"),
		castroTicket("2", "2025-10-10", schema.StatusOpen, ""),
	}

	client := &contract.MockTicketClient{}
	client.On("FetchTickets", mock.Anything).Return(tickets, nil)

	snapshot := &iocache.MockSnapshotStore{}
	snapshot.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	cfg := testConfig()
	cfg.MonthArg = "2025-09"

	report, err := ExecuteMonth(context.Background(), cfg, client, mockManager(snapshot, nil))
	assert.NoError(t, err)
	assert.Equal(t, "Septiembre", report.Month.Label)
	assert.Equal(t, 1, report.Assigned)
	assert.Equal(t, 1, report.Surveys)
}
