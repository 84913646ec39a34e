// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/drojas/deskmetrics/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the Deskmetrics MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, client contract.TicketClient, mgr contract.CacheManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Deskmetrics Ticket Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		client:  client,
		mgr:     mgr,
	}

	// --- 1. Tool: get_board_summary ---
	s.AddTool(mcp.NewTool("get_board_summary",
		mcp.WithDescription("Summarize the helpdesk ticket board: status counters plus per-month, per-week, and per-day distributions."),
		mcp.WithString("search", mcp.Description("Search term matched against technician names. Supports '*' wildcards.")),
		mcp.WithString("status", mcp.Description("Filter tickets by status. 'Pendiente' matches every non-primary status.")),
		mcp.WithString("month", mcp.Description("Restrict tickets to a calendar month in YYYY-MM form.")),
	), h.handleGetBoardSummary)

	// --- 2. Tool: get_tech_metrics ---
	s.AddTool(mcp.NewTool("get_tech_metrics",
		mcp.WithDescription("Compute per-technician metrics for the report month: assignments, resolutions, survey ratings, SLA and participation."),
		mcp.WithString("tech", mcp.Description("Restrict the report to one technician by alias or raw name.")),
		mcp.WithString("month", mcp.Description("Restrict tickets to a calendar month in YYYY-MM form.")),
	), h.handleGetTechMetrics)

	// --- 3. Tool: get_filter_options ---
	s.AddTool(mcp.NewTool("get_filter_options",
		mcp.WithDescription("List the status and technician values present in the current feed, for building filter dropdowns."),
	), h.handleGetFilterOptions)

	// --- 4. Tool: get_top_unresolved ---
	s.AddTool(mcp.NewTool("get_top_unresolved",
		mcp.WithDescription("List the oldest unresolved tickets, ranked by age with stall reasons."),
		mcp.WithNumber("limit", mcp.Description("Limit the number of results returned.")),
		mcp.WithString("tech", mcp.Description("Restrict the report to one technician by alias or raw name.")),
	), h.handleGetTopUnresolved)

	return s
}

// StartMCPServer starts the Deskmetrics MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, client contract.TicketClient, mgr contract.CacheManager) error {
	s := NewMCPServer(baseCfg, client, mgr)
	return server.ServeStdio(s)
}
