package contract

import (
	"context"

	"github.com/drojas/deskmetrics/schema"
	"github.com/stretchr/testify/mock"
)

// MockTicketClient is a mock implementation of TicketClient for testing.
type MockTicketClient struct {
	mock.Mock
}

var _ TicketClient = &MockTicketClient{} // Compile-time check

// FetchTickets implements the TicketClient interface.
func (m *MockTicketClient) FetchTickets(ctx context.Context) ([]schema.Ticket, error) {
	args := m.Called(ctx)
	tickets, _ := args.Get(0).([]schema.Ticket)
	return tickets, args.Error(1)
}

// Login implements the TicketClient interface.
func (m *MockTicketClient) Login(ctx context.Context, username, password string) (schema.LoginResult, error) {
	args := m.Called(ctx, username, password)
	return args.Get(0).(schema.LoginResult), args.Error(1)
}

// Logout implements the TicketClient interface.
func (m *MockTicketClient) Logout(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
