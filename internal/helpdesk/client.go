// Package helpdesk implements the REST client for the ticket service.
package helpdesk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/drojas/deskmetrics/internal/contract"
	"github.com/drojas/deskmetrics/schema"
)

// DefaultTimeout bounds every request to the helpdesk service.
const DefaultTimeout = 30 * time.Second

// Client talks to the helpdesk REST API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

var _ contract.TicketClient = &Client{} // Compile-time check

// NewClient creates a helpdesk client for the given base URL. The token may
// be empty for endpoints that do not require a session.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
}

// FetchTickets retrieves the full ticket feed. Cache-busting headers force
// intermediaries to hand back fresh data on every poll.
func (c *Client) FetchTickets(ctx context.Context) ([]schema.Ticket, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/encargados", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Cache-Control", "no-store")
	req.Header.Set("Pragma", "no-cache")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching tickets: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("ticket feed returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading ticket feed: %w", err)
	}

	var tickets []schema.Ticket
	if err := json.Unmarshal(body, &tickets); err != nil {
		return nil, fmt.Errorf("ticket feed is not a JSON array: %w", err)
	}
	return tickets, nil
}

// Login exchanges credentials for a session token and role.
func (c *Client) Login(ctx context.Context, username, password string) (schema.LoginResult, error) {
	payload, err := json.Marshal(map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return schema.LoginResult{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/solarwinds-login", bytes.NewReader(payload))
	if err != nil {
		return schema.LoginResult{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return schema.LoginResult{}, fmt.Errorf("logging in: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusUnauthorized {
		return schema.LoginResult{}, fmt.Errorf("invalid credentials")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return schema.LoginResult{}, fmt.Errorf("login returned status %d", resp.StatusCode)
	}

	var result schema.LoginResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return schema.LoginResult{}, fmt.Errorf("decoding login response: %w", err)
	}
	if result.Token == "" {
		return schema.LoginResult{}, fmt.Errorf("login response carried no token")
	}
	return result, nil
}

// Logout invalidates the current session. Best effort: a missing logout
// endpoint is not an error since tokens expire server-side anyway.
func (c *Client) Logout(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/logout", nil)
	if err != nil {
		return err
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("logging out: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("logout returned status %d", resp.StatusCode)
	}
	return nil
}
