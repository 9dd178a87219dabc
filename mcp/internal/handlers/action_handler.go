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

// ActionHandler exposes the status-transition tools and the by-policy lookups.
type ActionHandler struct {
	client *client.Client
}

func NewActionHandler(c *client.Client) *ActionHandler { return &ActionHandler{client: c} }

func (ah *ActionHandler) RegisterTools(s *server.MCPServer) error {
	s.AddTool(mcp.NewTool("approveClaim",
		mcp.WithDescription("Approve a pending insurance claim"),
		mcp.WithString("id", mcp.Required(), mcp.Description("The claim ID")),
		mcp.WithString("notes", mcp.Description("Optional approval notes")),
	), ah.claimDecision("approve"))
	s.AddTool(mcp.NewTool("rejectClaim",
		mcp.WithDescription("Reject an insurance claim"),
		mcp.WithString("id", mcp.Required(), mcp.Description("The claim ID")),
		mcp.WithString("notes", mcp.Description("Optional rejection reason")),
	), ah.claimDecision("reject"))
	s.AddTool(mcp.NewTool("convertQuote",
		mcp.WithDescription("Convert an approved quote into an active policy"),
		mcp.WithString("id", mcp.Required(), mcp.Description("The quote ID")),
	), ah.post(client.Quotes, "convert"))
	s.AddTool(mcp.NewTool("approveRenewal",
		mcp.WithDescription("Approve a pending policy renewal"),
		mcp.WithString("id", mcp.Required(), mcp.Description("The renewal ID")),
	), ah.post(client.Renewals, "approve"))
	s.AddTool(mcp.NewTool("completeInspection",
		mcp.WithDescription("Record the outcome of a scheduled inspection"),
		mcp.WithString("id", mcp.Required(), mcp.Description("The inspection ID")),
		mcp.WithString("findings", mcp.Required(), mcp.Description("Inspector findings")),
		mcp.WithBoolean("approved", mcp.Required(), mcp.Description("Whether the inspection passed")),
	), ah.completeInspection)
	s.AddTool(mcp.NewTool("getPaymentsByPolicyId",
		mcp.WithDescription("List payments recorded against a policy"),
		mcp.WithString("policyId", mcp.Required(), mcp.Description("The policy ID")),
	), ah.byPolicy("payments/policy/"))
	s.AddTool(mcp.NewTool("getTelematicsByPolicyId",
		mcp.WithDescription("List telematics data recorded for a policy"),
		mcp.WithString("policyId", mcp.Required(), mcp.Description("The policy ID")),
	), ah.byPolicy("telematics/policy/"))
	return nil
}

func (ah *ActionHandler) claimDecision(decision string) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := req.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError("Error: " + err.Error()), nil
		}
		var body any
		if notes := req.GetString("notes", ""); notes != "" {
			body = map[string]string{"notes": notes}
		}
		start := time.Now()
		raw, err := ah.client.Action(ctx, http.MethodPost, client.Claims+"/"+url.PathEscape(id)+"/"+decision, body)
		return finish(req, start, raw, err), nil
	}
}

func (ah *ActionHandler) post(resource, action string) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := req.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError("Error: " + err.Error()), nil
		}
		start := time.Now()
		raw, err := ah.client.Action(ctx, http.MethodPost, resource+"/"+url.PathEscape(id)+"/"+action, nil)
		return finish(req, start, raw, err), nil
	}
}

func (ah *ActionHandler) completeInspection(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("Error: " + err.Error()), nil
	}
	findings, err := req.RequireString("findings")
	if err != nil {
		return mcp.NewToolResultError("Error: " + err.Error()), nil
	}
	approved, err := req.RequireBool("approved")
	if err != nil {
		return mcp.NewToolResultError("Error: " + err.Error()), nil
	}
	body := map[string]any{"findings": findings, "approved": approved}
	start := time.Now()
	raw, err := ah.client.Action(ctx, http.MethodPost, client.Inspections+"/"+url.PathEscape(id)+"/complete", body)
	return finish(req, start, raw, err), nil
}

func (ah *ActionHandler) byPolicy(prefix string) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		policyID, err := req.RequireString("policyId")
		if err != nil {
			return mcp.NewToolResultError("Error: " + err.Error()), nil
		}
		start := time.Now()
		raw, err := ah.client.Query(ctx, prefix+url.PathEscape(policyID), nil)
		return finish(req, start, raw, err), nil
	}
}
