package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/drojas/deskmetrics/core"
	"github.com/drojas/deskmetrics/internal/contract"
	"github.com/drojas/deskmetrics/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	client  contract.TicketClient
	mgr     contract.CacheManager
}

func (h *toolHandler) handleGetBoardSummary(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.Search = request.GetString("search", cfg.Search)
	cfg.Status = request.GetString("status", cfg.Status)
	cfg.MonthArg = request.GetString("month", cfg.MonthArg)

	stats, err := core.ExecuteBoard(ctx, cfg, h.client, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("board summary failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(stats, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetTechMetrics(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.TechFilter = request.GetString("tech", cfg.TechFilter)
	if m := request.GetString("month", ""); m != "" {
		parsed, err := time.Parse("2006-01", m)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid month %q, expected YYYY-MM", m)), nil
		}
		cfg.ReportYear = parsed.Year()
		cfg.ReportMonth = parsed.Month()
		cfg.Months = schema.DefaultMonthTable(cfg.ReportYear, cfg.ReportMonth)
	}

	results, summary, err := core.ExecuteTechs(ctx, cfg, h.client, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("technician metrics failed: %v", err)), nil
	}
	if cfg.TechFilter != "" {
		kept := results[:0]
		for _, tm := range results {
			if tm.Tech == cfg.TechFilter || tm.Raw == cfg.TechFilter {
				kept = append(kept, tm)
			}
		}
		results = kept
	}

	payload := struct {
		Technicians any `json:"technicians"`
		Summary     any `json:"summary"`
	}{results, summary}
	jsonData, _ := json.MarshalIndent(payload, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetFilterOptions(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tickets, err := h.client.FetchTickets(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("ticket fetch failed: %v", err)), nil
	}
	roster := core.NewRoster(h.baseCfg.Technicians, h.baseCfg.Aliases)
	tickets = roster.FilterAllowed(tickets)

	payload := struct {
		Statuses    []string `json:"statuses"`
		Technicians []string `json:"technicians"`
	}{core.DistinctStatuses(tickets), core.DistinctTechs(tickets, roster)}
	jsonData, _ := json.MarshalIndent(payload, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetTopUnresolved(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.Limit = l
	}
	cfg.TechFilter = request.GetString("tech", cfg.TechFilter)

	ranked, err := core.ExecuteUnresolved(ctx, cfg, h.client, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("unresolved listing failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(ranked, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
