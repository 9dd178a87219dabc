package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
)

// Resource paths accepted by the generic CRUD methods.
const (
	Policies        = "policies"
	Claims          = "claims"
	Customers       = "customers"
	Quotes          = "quotes"
	Payments        = "payments"
	Agents          = "agents"
	Beneficiaries   = "beneficiaries"
	Documents       = "documents"
	Renewals        = "renewals"
	Endorsements    = "endorsements"
	Reinsurance     = "reinsurance"
	Notifications   = "notifications"
	Telematics      = "telematics"
	Inspections     = "inspections"
	Subrogation     = "subrogation"
	RiskAssessments = "risk-assessment"
)

// List returns every record of resource as a raw JSON array.
func (c *Client) List(ctx context.Context, resource string) (json.RawMessage, error) {
	return c.call(ctx, http.MethodGet, resource, nil, nil)
}

// Get returns a single record by id.
func (c *Client) Get(ctx context.Context, resource, id string) (json.RawMessage, error) {
	return c.call(ctx, http.MethodGet, resource+"/"+url.PathEscape(id), nil, nil)
}

// Create posts fields as a new record and returns the stored record.
func (c *Client) Create(ctx context.Context, resource string, fields any) (json.RawMessage, error) {
	return c.call(ctx, http.MethodPost, resource, nil, fields)
}

// Update merges patch into the record and returns the result.
func (c *Client) Update(ctx context.Context, resource, id string, patch any) (json.RawMessage, error) {
	return c.call(ctx, http.MethodPut, resource+"/"+url.PathEscape(id), nil, patch)
}

// Delete removes a record.
func (c *Client) Delete(ctx context.Context, resource, id string) error {
	_, err := c.call(ctx, http.MethodDelete, resource+"/"+url.PathEscape(id), nil, nil)
	return err
}

// Action invokes an arbitrary endpoint under /api, e.g. "claims/CLM-1/approve".
// Callers are responsible for escaping path segments.
func (c *Client) Action(ctx context.Context, method, path string, body any) (json.RawMessage, error) {
	return c.call(ctx, method, path, nil, body)
}

// Query issues a GET to path under /api with the given query string.
func (c *Client) Query(ctx context.Context, path string, query url.Values) (json.RawMessage, error) {
	return c.call(ctx, http.MethodGet, path, query, nil)
}
