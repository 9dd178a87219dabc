package handlers

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog/log"

	"github.com/Sideko-Inc/insurance-api-demo/client"
)

// resourceTools describes the CRUD tool set of one API resource.
type resourceTools struct {
	path     string // client resource path, e.g. client.Policies
	singular string // tool name fragment, e.g. "Policy"
	plural   string // tool name fragment, e.g. "Policies"
	noun     string // used in descriptions

	// createFields lists the create tool's parameters. Nil means the tool
	// takes a single "data" object.
	createFields []mcp.ToolOption
	// listCreateOnly resources have no id-addressed endpoints.
	listCreateOnly bool
}

var resources = []resourceTools{
	{path: client.Policies, singular: "Policy", plural: "Policies", noun: "insurance policy", createFields: policyFields()},
	{path: client.Claims, singular: "Claim", plural: "Claims", noun: "insurance claim", createFields: claimFields()},
	{path: client.Customers, singular: "Customer", plural: "Customers", noun: "customer"},
	{path: client.Quotes, singular: "Quote", plural: "Quotes", noun: "insurance quote"},
	{path: client.Payments, singular: "Payment", plural: "Payments", noun: "premium payment"},
	{path: client.Agents, singular: "Agent", plural: "Agents", noun: "insurance agent"},
	{path: client.Beneficiaries, singular: "Beneficiary", plural: "Beneficiaries", noun: "policy beneficiary"},
	{path: client.Documents, singular: "Document", plural: "Documents", noun: "document"},
	{path: client.Renewals, singular: "Renewal", plural: "Renewals", noun: "policy renewal"},
	{path: client.Endorsements, singular: "Endorsement", plural: "Endorsements", noun: "policy endorsement"},
	{path: client.Reinsurance, singular: "Reinsurance", plural: "Reinsurance", noun: "reinsurance treaty"},
	{path: client.Notifications, singular: "Notification", plural: "Notifications", noun: "notification"},
	{path: client.Telematics, singular: "Telematics", plural: "Telematics", noun: "telematics record"},
	{path: client.Inspections, singular: "Inspection", plural: "Inspections", noun: "inspection"},
	{path: client.Subrogation, singular: "Subrogation", plural: "Subrogation", noun: "subrogation case"},
	{path: client.RiskAssessments, singular: "RiskAssessment", plural: "RiskAssessments", noun: "risk assessment", createFields: riskAssessmentFields(), listCreateOnly: true},
}

// ResourceHandler exposes list/get/create/update/delete tools for every resource.
type ResourceHandler struct {
	client *client.Client
}

func NewResourceHandler(c *client.Client) *ResourceHandler { return &ResourceHandler{client: c} }

func (rh *ResourceHandler) RegisterTools(s *server.MCPServer) error {
	for _, res := range resources {
		s.AddTool(mcp.NewTool("list"+res.plural,
			mcp.WithDescription("List all "+res.noun+" records"),
		), rh.list(res))

		createOpts := []mcp.ToolOption{mcp.WithDescription("Create a new " + res.noun)}
		if res.createFields != nil {
			createOpts = append(createOpts, res.createFields...)
		} else {
			createOpts = append(createOpts, mcp.WithObject("data", mcp.Required(), mcp.Description("Fields of the new "+res.noun)))
		}
		s.AddTool(mcp.NewTool("create"+res.singular, createOpts...), rh.create(res))

		if res.listCreateOnly {
			continue
		}

		s.AddTool(mcp.NewTool("get"+res.singular+"ById",
			mcp.WithDescription("Get a specific "+res.noun+" by ID"),
			mcp.WithString("id", mcp.Required(), mcp.Description("The "+res.noun+" ID")),
		), rh.get(res))
		s.AddTool(mcp.NewTool("update"+res.singular,
			mcp.WithDescription("Update an existing "+res.noun),
			mcp.WithString("id", mcp.Required(), mcp.Description("The "+res.noun+" ID")),
			mcp.WithObject("updates", mcp.Required(), mcp.Description("Fields to update")),
		), rh.update(res))
		s.AddTool(mcp.NewTool("delete"+res.singular,
			mcp.WithDescription("Delete a "+res.noun),
			mcp.WithString("id", mcp.Required(), mcp.Description("The "+res.noun+" ID")),
		), rh.delete(res))
	}
	return nil
}

func (rh *ResourceHandler) list(res resourceTools) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()
		raw, err := rh.client.List(ctx, res.path)
		return finish(req, start, raw, err), nil
	}
}

func (rh *ResourceHandler) get(res resourceTools) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := req.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError("Error: " + err.Error()), nil
		}
		start := time.Now()
		raw, err := rh.client.Get(ctx, res.path, id)
		return finish(req, start, raw, err), nil
	}
}

func (rh *ResourceHandler) create(res resourceTools) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		body := req.GetArguments()
		if res.createFields == nil {
			data, err := objectArg(req, "data")
			if err != nil {
				return mcp.NewToolResultError("Error: " + err.Error()), nil
			}
			body = data
		}
		start := time.Now()
		raw, err := rh.client.Create(ctx, res.path, body)
		return finish(req, start, raw, err), nil
	}
}

func (rh *ResourceHandler) update(res resourceTools) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := req.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError("Error: " + err.Error()), nil
		}
		updates, err := objectArg(req, "updates")
		if err != nil {
			return mcp.NewToolResultError("Error: " + err.Error()), nil
		}
		start := time.Now()
		raw, err := rh.client.Update(ctx, res.path, id, updates)
		return finish(req, start, raw, err), nil
	}
}

func (rh *ResourceHandler) delete(res resourceTools) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := req.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError("Error: " + err.Error()), nil
		}
		start := time.Now()
		raw, err := rh.client.Action(ctx, http.MethodDelete, res.path+"/"+url.PathEscape(id), nil)
		return finish(req, start, raw, err), nil
	}
}

// finish logs the call outcome and converts it into a tool result.
func finish(req mcp.CallToolRequest, start time.Time, raw []byte, err error) *mcp.CallToolResult {
	elapsed := time.Since(start)
	if err != nil {
		log.Error().Err(err).Str("tool", req.Params.Name).Dur("elapsed", elapsed).Msg("tool call failed")
		return errorResult(err)
	}
	log.Debug().Str("tool", req.Params.Name).Dur("elapsed", elapsed).Msg("tool call completed")
	return jsonResult(raw)
}

func policyFields() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString("policyNumber", mcp.Required(), mcp.Description("Unique policy number")),
		mcp.WithString("policyType", mcp.Required(), mcp.Enum("auto", "home", "life", "health"), mcp.Description("Line of business")),
		mcp.WithString("holderName", mcp.Required(), mcp.Description("Policy holder's full name")),
		mcp.WithString("holderEmail", mcp.Required(), mcp.Description("Policy holder's email address")),
		mcp.WithNumber("premium", mcp.Required(), mcp.Description("Premium amount, must be positive")),
		mcp.WithNumber("coverageAmount", mcp.Required(), mcp.Description("Coverage amount, must be positive")),
		mcp.WithString("startDate", mcp.Required(), mcp.Description("ISO 8601 start date")),
		mcp.WithString("endDate", mcp.Required(), mcp.Description("ISO 8601 end date")),
		mcp.WithString("status", mcp.Required(), mcp.Enum("active", "expired", "cancelled"), mcp.Description("Policy status")),
	}
}

func claimFields() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString("claimNumber", mcp.Required(), mcp.Description("Unique claim number")),
		mcp.WithString("policyId", mcp.Required(), mcp.Description("ID of the policy the claim is filed against")),
		mcp.WithString("claimType", mcp.Required(), mcp.Enum("accident", "theft", "damage", "medical", "other"), mcp.Description("Kind of loss")),
		mcp.WithString("description", mcp.Required(), mcp.Description("What happened")),
		mcp.WithNumber("claimAmount", mcp.Required(), mcp.Description("Amount claimed, must be positive")),
		mcp.WithString("status", mcp.Required(), mcp.Enum("pending", "approved", "rejected", "processing"), mcp.Description("Claim status")),
		mcp.WithString("filedDate", mcp.Required(), mcp.Description("ISO 8601 filing date")),
		mcp.WithString("processedDate", mcp.Description("ISO 8601 processing date")),
		mcp.WithString("notes", mcp.Description("Free-form notes")),
	}
}

func riskAssessmentFields() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString("policyId", mcp.Required(), mcp.Description("ID of the assessed policy")),
		mcp.WithNumber("riskScore", mcp.Required(), mcp.Description("Risk score between 0 and 100")),
		mcp.WithString("riskLevel", mcp.Required(), mcp.Enum("low", "medium", "high", "critical"), mcp.Description("Risk band")),
		mcp.WithArray("factors", mcp.Required(), mcp.Items(map[string]any{"type": "string"}), mcp.Description("Contributing risk factors")),
		mcp.WithString("assessmentDate", mcp.Required(), mcp.Description("ISO 8601 assessment date")),
		mcp.WithString("assessedBy", mcp.Required(), mcp.Description("Assessor name")),
		mcp.WithString("notes", mcp.Description("Free-form notes")),
	}
}
