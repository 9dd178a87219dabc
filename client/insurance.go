package client

import (
	"context"
	"net/http"
	"net/url"
)

// ListPolicies returns all policies.
func (c *Client) ListPolicies(ctx context.Context) ([]Policy, error) {
	var out []Policy
	if err := c.decode(ctx, http.MethodGet, Policies, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetPolicy returns a policy by id.
func (c *Client) GetPolicy(ctx context.Context, id string) (*Policy, error) {
	var out Policy
	if err := c.decode(ctx, http.MethodGet, Policies+"/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreatePolicy stores p and returns the record with its generated id.
func (c *Client) CreatePolicy(ctx context.Context, p Policy) (*Policy, error) {
	var out Policy
	if err := c.decode(ctx, http.MethodPost, Policies, nil, p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListClaims returns all claims.
func (c *Client) ListClaims(ctx context.Context) ([]Claim, error) {
	var out []Claim
	if err := c.decode(ctx, http.MethodGet, Claims, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetClaim returns a claim by id.
func (c *Client) GetClaim(ctx context.Context, id string) (*Claim, error) {
	var out Claim
	if err := c.decode(ctx, http.MethodGet, Claims+"/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ApproveClaim moves a claim to approved. notes is optional.
func (c *Client) ApproveClaim(ctx context.Context, id, notes string) (*Claim, error) {
	return c.decideClaim(ctx, id, "approve", notes)
}

// RejectClaim moves a claim to rejected. notes is optional.
func (c *Client) RejectClaim(ctx context.Context, id, notes string) (*Claim, error) {
	return c.decideClaim(ctx, id, "reject", notes)
}

func (c *Client) decideClaim(ctx context.Context, id, decision, notes string) (*Claim, error) {
	var body any
	if notes != "" {
		body = map[string]string{"notes": notes}
	}
	var out Claim
	if err := c.decode(ctx, http.MethodPost, Claims+"/"+url.PathEscape(id)+"/"+decision, nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ConvertQuote turns an approved quote into an active policy.
func (c *Client) ConvertQuote(ctx context.Context, quoteID string) (*Policy, error) {
	var out Policy
	if err := c.decode(ctx, http.MethodPost, Quotes+"/"+url.PathEscape(quoteID)+"/convert", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AnalyzeClaimFraud scores a claim and stores the analysis.
func (c *Client) AnalyzeClaimFraud(ctx context.Context, claimID string) (*FraudAnalysis, error) {
	var out FraudAnalysis
	body := map[string]string{"claimId": claimID}
	if err := c.decode(ctx, http.MethodPost, "fraud-detection/analyze", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ClaimsSummary(ctx context.Context) (*ClaimsSummary, error) {
	var out ClaimsSummary
	if err := c.decode(ctx, http.MethodGet, "analytics/claims-summary", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) PoliciesSummary(ctx context.Context) (*PoliciesSummary, error) {
	var out PoliciesSummary
	if err := c.decode(ctx, http.MethodGet, "analytics/policies-summary", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) LossRatio(ctx context.Context) (*LossRatio, error) {
	var out LossRatio
	if err := c.decode(ctx, http.MethodGet, "analytics/loss-ratio", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ValidateKey checks the configured API key against the server.
func (c *Client) ValidateKey(ctx context.Context) (*Message, error) {
	var out Message
	if err := c.decode(ctx, http.MethodPost, "auth/validate", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
