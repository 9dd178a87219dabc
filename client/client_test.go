package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sideko-Inc/insurance-api-demo/devmode"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestClientSendsAPIKey(t *testing.T) {
	var gotKey, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get(devmode.HeaderName)
		gotPath = r.URL.Path
		writeJSON(w, http.StatusOK, []Policy{{ID: "POL-1", PolicyNumber: "P-1"}})
	}))
	defer srv.Close()

	c, err := NewWithDevMode(srv.URL)
	require.NoError(t, err)

	policies, err := c.ListPolicies(context.Background())
	require.NoError(t, err)
	require.Len(t, policies, 1)
	assert.Equal(t, "POL-1", policies[0].ID)
	assert.Equal(t, devmode.DemoAPIKey, gotKey)
	assert.Equal(t, "/api/policies", gotPath)
}

func TestClientRetriesReadsOnServerError(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			writeJSON(w, http.StatusServiceUnavailable, map[string]any{"error": "Service Unavailable", "code": 503, "message": "busy"})
			return
		}
		writeJSON(w, http.StatusOK, Claim{ID: "CLM-1", Status: "pending"})
	}))
	defer srv.Close()

	c, err := New(srv.URL, "k", WithRetry(5*time.Second))
	require.NoError(t, err)

	claim, err := c.GetClaim(context.Background(), "CLM-1")
	require.NoError(t, err)
	assert.Equal(t, "CLM-1", claim.ID)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestClientDoesNotRetryWrites(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "Internal Server Error", "code": 500, "message": "Failed to create policy"})
	}))
	defer srv.Close()

	c, err := New(srv.URL, "k", WithRetry(5*time.Second))
	require.NoError(t, err)

	_, err = c.CreatePolicy(context.Background(), Policy{PolicyNumber: "P-1"})
	require.Error(t, err)
	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "Failed to create policy", apiErr.Message)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestClientDoesNotRetryClientErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		writeJSON(w, http.StatusNotFound, map[string]any{"error": "Not Found", "code": 404, "message": "Policy not found"})
	}))
	defer srv.Close()

	c, err := New(srv.URL, "k", WithRetry(5*time.Second))
	require.NoError(t, err)

	_, err = c.GetPolicy(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.False(t, IsUnauthorized(err))
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestClaimDecisionSendsNotes(t *testing.T) {
	var body map[string]string
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &body)
		writeJSON(w, http.StatusOK, Claim{ID: "CLM-1", Status: "rejected", Notes: body["notes"]})
	}))
	defer srv.Close()

	c, err := New(srv.URL, "k")
	require.NoError(t, err)

	claim, err := c.RejectClaim(context.Background(), "CLM-1", "duplicate")
	require.NoError(t, err)
	assert.Equal(t, "/api/claims/CLM-1/reject", path)
	assert.Equal(t, "duplicate", body["notes"])
	assert.Equal(t, "rejected", claim.Status)
}

func TestGenericCRUDPaths(t *testing.T) {
	type seen struct{ method, path, query string }
	var got []seen
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = append(got, seen{r.Method, r.URL.EscapedPath(), r.URL.RawQuery})
		writeJSON(w, http.StatusOK, map[string]any{"message": "ok"})
	}))
	defer srv.Close()

	c, err := New(srv.URL, "k")
	require.NoError(t, err)
	ctx := context.Background()

	_, err = c.Get(ctx, Agents, "AGT 1")
	require.NoError(t, err)
	_, err = c.Update(ctx, Agents, "AGT-1", map[string]any{"status": "inactive"})
	require.NoError(t, err)
	require.NoError(t, c.Delete(ctx, Agents, "AGT-1"))
	_, err = c.Query(ctx, "audit-trail", map[string][]string{"entityType": {"policy"}})
	require.NoError(t, err)

	assert.Equal(t, []seen{
		{http.MethodGet, "/api/agents/AGT%201", ""},
		{http.MethodPut, "/api/agents/AGT-1", ""},
		{http.MethodDelete, "/api/agents/AGT-1", ""},
		{http.MethodGet, "/api/audit-trail", "entityType=policy"},
	}, got)
}

func TestUnauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"error": "Unauthorized", "code": 401, "message": "Valid API key required"})
	}))
	defer srv.Close()

	c, err := New(srv.URL, "wrong")
	require.NoError(t, err)
	_, err = c.ValidateKey(context.Background())
	assert.True(t, IsUnauthorized(err))
}
