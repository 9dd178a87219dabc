package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sideko-Inc/insurance-api-demo/client"
)

type recorded struct {
	method string
	path   string
	query  string
	body   map[string]any
}

// stubAPI answers every request with status and reply, recording what it saw.
func stubAPI(t *testing.T, status int, reply string) (*client.Client, *[]recorded) {
	t.Helper()
	var seen []recorded
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := recorded{method: r.Method, path: r.URL.EscapedPath(), query: r.URL.RawQuery}
		if raw, _ := io.ReadAll(r.Body); len(raw) > 0 {
			_ = json.Unmarshal(raw, &rec.body)
		}
		seen = append(seen, rec)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(reply))
	}))
	t.Cleanup(ts.Close)

	sdk, err := client.NewWithDevMode(ts.URL)
	require.NoError(t, err)
	return sdk, &seen
}

func callRequest(name string, args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{Name: name, Arguments: args},
	}
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected TextContent, got %T", res.Content[0])
	return text.Text
}

func findResource(t *testing.T, path string) resourceTools {
	t.Helper()
	for _, r := range resources {
		if r.path == path {
			return r
		}
	}
	t.Fatalf("no resource %q", path)
	return resourceTools{}
}

func TestListReturnsIndentedJSON(t *testing.T) {
	sdk, seen := stubAPI(t, http.StatusOK, `[{"id":"POL-1"}]`)
	rh := NewResourceHandler(sdk)

	res, err := rh.list(findResource(t, client.Policies))(context.Background(), callRequest("listPolicies", nil))
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.Equal(t, "[\n  {\n    \"id\": \"POL-1\"\n  }\n]", resultText(t, res))
	assert.Equal(t, "/api/policies", (*seen)[0].path)
}

func TestCreateWithDataObject(t *testing.T) {
	sdk, seen := stubAPI(t, http.StatusCreated, `{"id":"CUST-1"}`)
	rh := NewResourceHandler(sdk)

	args := map[string]any{"data": map[string]any{"firstName": "Ada", "lastName": "Lovelace"}}
	res, err := rh.create(findResource(t, client.Customers))(context.Background(), callRequest("createCustomer", args))
	require.NoError(t, err)
	assert.False(t, res.IsError)

	require.Len(t, *seen, 1)
	assert.Equal(t, http.MethodPost, (*seen)[0].method)
	assert.Equal(t, "/api/customers", (*seen)[0].path)
	assert.Equal(t, "Ada", (*seen)[0].body["firstName"])
}

func TestCreateWithFieldsSendsArguments(t *testing.T) {
	sdk, seen := stubAPI(t, http.StatusCreated, `{"id":"POL-1"}`)
	rh := NewResourceHandler(sdk)

	args := map[string]any{"policyNumber": "P-1", "premium": 1200.0}
	_, err := rh.create(findResource(t, client.Policies))(context.Background(), callRequest("createPolicy", args))
	require.NoError(t, err)
	assert.Equal(t, "P-1", (*seen)[0].body["policyNumber"])
	assert.Equal(t, 1200.0, (*seen)[0].body["premium"])
}

func TestCreateRequiresDataObject(t *testing.T) {
	sdk, seen := stubAPI(t, http.StatusCreated, `{}`)
	rh := NewResourceHandler(sdk)

	res, err := rh.create(findResource(t, client.Agents))(context.Background(), callRequest("createAgent", map[string]any{"data": "nope"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Empty(t, *seen)
}

func TestUpdateSendsUpdatesObject(t *testing.T) {
	sdk, seen := stubAPI(t, http.StatusOK, `{"id":"CLM-1","status":"processing"}`)
	rh := NewResourceHandler(sdk)

	args := map[string]any{"id": "CLM-1", "updates": map[string]any{"status": "processing"}}
	res, err := rh.update(findResource(t, client.Claims))(context.Background(), callRequest("updateClaim", args))
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.Equal(t, http.MethodPut, (*seen)[0].method)
	assert.Equal(t, "/api/claims/CLM-1", (*seen)[0].path)
	assert.Equal(t, map[string]any{"status": "processing"}, (*seen)[0].body)
}

func TestServerErrorBecomesErrorResult(t *testing.T) {
	sdk, _ := stubAPI(t, http.StatusNotFound, `{"error":"Not Found","code":404,"message":"Policy not found"}`)
	rh := NewResourceHandler(sdk)

	res, err := rh.get(findResource(t, client.Policies))(context.Background(), callRequest("getPolicyById", map[string]any{"id": "nope"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Equal(t, "Error: Policy not found", resultText(t, res))
}

func TestMissingIDIsRejectedLocally(t *testing.T) {
	sdk, seen := stubAPI(t, http.StatusOK, `{}`)
	rh := NewResourceHandler(sdk)

	res, err := rh.delete(findResource(t, client.Policies))(context.Background(), callRequest("deletePolicy", nil))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Empty(t, *seen)
}

func TestClaimDecisionForwardsNotes(t *testing.T) {
	sdk, seen := stubAPI(t, http.StatusOK, `{"id":"CLM-1","status":"approved"}`)
	ah := NewActionHandler(sdk)

	_, err := ah.claimDecision("approve")(context.Background(), callRequest("approveClaim", map[string]any{"id": "CLM-1", "notes": "ok"}))
	require.NoError(t, err)
	_, err = ah.claimDecision("reject")(context.Background(), callRequest("rejectClaim", map[string]any{"id": "CLM-2"}))
	require.NoError(t, err)

	require.Len(t, *seen, 2)
	assert.Equal(t, "/api/claims/CLM-1/approve", (*seen)[0].path)
	assert.Equal(t, "ok", (*seen)[0].body["notes"])
	assert.Equal(t, "/api/claims/CLM-2/reject", (*seen)[1].path)
	assert.Nil(t, (*seen)[1].body)
}

func TestCompleteInspection(t *testing.T) {
	sdk, seen := stubAPI(t, http.StatusOK, `{"id":"INSP-1","status":"completed"}`)
	ah := NewActionHandler(sdk)

	args := map[string]any{"id": "INSP-1", "findings": "roof ok", "approved": true}
	res, err := ah.completeInspection(context.Background(), callRequest("completeInspection", args))
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.Equal(t, "/api/inspections/INSP-1/complete", (*seen)[0].path)
	assert.Equal(t, map[string]any{"findings": "roof ok", "approved": true}, (*seen)[0].body)
}

func TestByPolicyLookups(t *testing.T) {
	sdk, seen := stubAPI(t, http.StatusOK, `[]`)
	ah := NewActionHandler(sdk)
	ih := NewInsightsHandler(sdk)
	args := map[string]any{"policyId": "POL-1"}

	_, err := ah.byPolicy("payments/policy/")(context.Background(), callRequest("getPaymentsByPolicyId", args))
	require.NoError(t, err)
	_, err = ih.handleRiskByPolicy(context.Background(), callRequest("getRiskAssessmentByPolicyId", args))
	require.NoError(t, err)

	assert.Equal(t, "/api/payments/policy/POL-1", (*seen)[0].path)
	assert.Equal(t, "/api/risk-assessment/POL-1", (*seen)[1].path)
}

func TestAnalyzeFraudAndAuditTrail(t *testing.T) {
	sdk, seen := stubAPI(t, http.StatusOK, `{}`)
	ih := NewInsightsHandler(sdk)

	_, err := ih.handleAnalyzeFraud(context.Background(), callRequest("analyzeClaimFraud", map[string]any{"claimId": "CLM-1"}))
	require.NoError(t, err)
	_, err = ih.handleAuditTrail(context.Background(), callRequest("getAuditTrail", map[string]any{"entityType": "policy"}))
	require.NoError(t, err)

	assert.Equal(t, "/api/fraud-detection/analyze", (*seen)[0].path)
	assert.Equal(t, "CLM-1", (*seen)[0].body["claimId"])
	assert.Equal(t, "/api/audit-trail", (*seen)[1].path)
	assert.Equal(t, "entityType=policy", (*seen)[1].query)
}
