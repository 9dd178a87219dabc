package handlers

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/Sideko-Inc/insurance-api-demo/client"
)

// InsightsHandler exposes risk, fraud, analytics and audit tools.
type InsightsHandler struct {
	client *client.Client
}

func NewInsightsHandler(c *client.Client) *InsightsHandler { return &InsightsHandler{client: c} }

func (ih *InsightsHandler) RegisterTools(s *server.MCPServer) error {
	s.AddTool(mcp.NewTool("getRiskAssessmentByPolicyId",
		mcp.WithDescription("Get the risk assessment for a specific policy"),
		mcp.WithString("policyId", mcp.Required(), mcp.Description("The policy ID")),
	), ih.handleRiskByPolicy)
	s.AddTool(mcp.NewTool("analyzeClaimFraud",
		mcp.WithDescription("Score a claim for fraud indicators and store the analysis"),
		mcp.WithString("claimId", mcp.Required(), mcp.Description("The claim ID")),
	), ih.handleAnalyzeFraud)
	s.AddTool(mcp.NewTool("listFraudReports",
		mcp.WithDescription("List stored fraud analyses"),
	), ih.get("fraud-detection/reports"))
	s.AddTool(mcp.NewTool("getClaimsSummary",
		mcp.WithDescription("Aggregate claim counts and amounts"),
	), ih.get("analytics/claims-summary"))
	s.AddTool(mcp.NewTool("getPoliciesSummary",
		mcp.WithDescription("Aggregate policy counts and premium revenue"),
	), ih.get("analytics/policies-summary"))
	s.AddTool(mcp.NewTool("getLossRatio",
		mcp.WithDescription("Approved claim payouts as a percentage of premiums written"),
	), ih.get("analytics/loss-ratio"))
	s.AddTool(mcp.NewTool("getAuditTrail",
		mcp.WithDescription("List audit log entries, newest first"),
		mcp.WithString("entityType", mcp.Description("Filter by entity type, e.g. policy")),
		mcp.WithString("entityId", mcp.Description("Filter by entity ID")),
	), ih.handleAuditTrail)
	return nil
}

func (ih *InsightsHandler) handleRiskByPolicy(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	policyID, err := req.RequireString("policyId")
	if err != nil {
		return mcp.NewToolResultError("Error: " + err.Error()), nil
	}
	start := time.Now()
	raw, err := ih.client.Query(ctx, client.RiskAssessments+"/"+url.PathEscape(policyID), nil)
	return finish(req, start, raw, err), nil
}

func (ih *InsightsHandler) handleAnalyzeFraud(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	claimID, err := req.RequireString("claimId")
	if err != nil {
		return mcp.NewToolResultError("Error: " + err.Error()), nil
	}
	start := time.Now()
	raw, err := ih.client.Action(ctx, http.MethodPost, "fraud-detection/analyze", map[string]string{"claimId": claimID})
	return finish(req, start, raw, err), nil
}

func (ih *InsightsHandler) handleAuditTrail(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	q := url.Values{}
	if v := req.GetString("entityType", ""); v != "" {
		q.Set("entityType", v)
	}
	if v := req.GetString("entityId", ""); v != "" {
		q.Set("entityId", v)
	}
	start := time.Now()
	raw, err := ih.client.Query(ctx, "audit-trail", q)
	return finish(req, start, raw, err), nil
}

func (ih *InsightsHandler) get(path string) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()
		raw, err := ih.client.Query(ctx, path, nil)
		return finish(req, start, raw, err), nil
	}
}
