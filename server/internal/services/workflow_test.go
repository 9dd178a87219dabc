package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sideko-Inc/insurance-api-demo/server/internal/model"
)

func createClaim(t *testing.T, f *fixture, c *model.Claim) *model.Claim {
	t.Helper()
	out, err := f.claims.Insert(context.Background(), c)
	require.NoError(t, err)
	return out
}

func TestClaimService_ApproveReject(t *testing.T) {
	f := newFixture(t)
	svc := NewClaimService(f.claims)
	ctx := context.Background()

	c := createClaim(t, f, &model.Claim{ClaimNumber: "C-1", Status: model.StatusPending})

	approved, err := svc.Approve(ctx, c.ID, model.ClaimDecisionRequest{Notes: "verified"})
	require.NoError(t, err)
	assert.Equal(t, model.StatusApproved, approved.Status)
	assert.Equal(t, "2024-06-01T12:00:00.000Z", approved.ProcessedDate)
	assert.Equal(t, "verified", approved.Notes)

	rejected, err := svc.Reject(ctx, c.ID, model.ClaimDecisionRequest{})
	require.NoError(t, err)
	assert.Equal(t, model.StatusRejected, rejected.Status)
	assert.Equal(t, "verified", rejected.Notes, "empty notes keep the previous value")

	_, err = svc.Approve(ctx, "CLM-missing", model.ClaimDecisionRequest{})
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestQuoteService_Convert(t *testing.T) {
	f := newFixture(t)
	svc := NewQuoteService(f.quotes, f.policies)
	ctx := context.Background()

	q, err := f.quotes.Create(ctx, map[string]any{
		"policyType":     "home",
		"coverageAmount": 250000.0,
		"customerEmail":  "sam@example.com",
		"customerName":   "Sam Lee",
	})
	require.NoError(t, err)

	_, err = svc.Convert(ctx, q.ID)
	assert.ErrorIs(t, err, model.ErrValidation, "pending quotes cannot convert")

	_, err = f.quotes.Update(ctx, q.ID, map[string]any{"status": "approved"})
	require.NoError(t, err)

	p, err := svc.Convert(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, "INS-2024-000001", p.PolicyNumber)
	assert.Equal(t, "home", p.PolicyType)
	assert.Equal(t, "Sam Lee", p.HolderName)
	assert.Equal(t, "sam@example.com", p.HolderEmail)
	assert.Equal(t, 750.0, p.Premium)
	assert.Equal(t, 250000.0, p.CoverageAmount)
	assert.Equal(t, model.StatusActive, p.Status)
	assert.Equal(t, "2025-06-01T12:00:00.000Z", p.EndDate)

	stored, err := f.quotes.Get(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusConverted, stored.Status)
	assert.Equal(t, p.ID, stored.PolicyID)

	_, err = svc.Convert(ctx, "QUO-missing")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestPolicyNumber(t *testing.T) {
	assert.Equal(t, "INS-2031-000042", PolicyNumber(time.Date(2031, 1, 1, 0, 0, 0, 0, time.UTC), 42))
}

func TestRenewalService_Approve(t *testing.T) {
	f := newFixture(t)
	renewals := NewResourceService(f.docs, Resource[*model.Renewal]{Name: "Renewal", Collection: "renewals", Prefix: "REN"}, f.audit)
	svc := NewRenewalService(renewals)
	ctx := context.Background()

	r, err := renewals.Insert(ctx, &model.Renewal{PolicyID: "POL-1", Status: model.StatusPending})
	require.NoError(t, err)

	approved, err := svc.Approve(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusApproved, approved.Status)
	assert.NotEmpty(t, approved.ApprovedDate)
}

func TestInspectionService_Complete(t *testing.T) {
	f := newFixture(t)
	inspections := NewResourceService(f.docs, Resource[*model.Inspection]{Name: "Inspection", Collection: "inspections", Prefix: "INS"}, f.audit)
	svc := NewInspectionService(inspections)
	ctx := context.Background()

	in, err := inspections.Insert(ctx, &model.Inspection{PolicyID: "POL-1", Status: model.StatusScheduled})
	require.NoError(t, err)

	_, err = svc.Complete(ctx, in.ID, model.CompleteInspectionRequest{})
	assert.ErrorIs(t, err, model.ErrValidation)

	// Findings alone are not enough; the outcome must be stated
	_, err = svc.Complete(ctx, in.ID, model.CompleteInspectionRequest{Findings: "ok"})
	assert.ErrorIs(t, err, model.ErrValidation)
	assert.ErrorContains(t, err, "approved is required")
	untouched, err := inspections.Get(ctx, in.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusScheduled, untouched.Status)
	assert.Nil(t, untouched.Approved)

	approved := true
	done, err := svc.Complete(ctx, in.ID, model.CompleteInspectionRequest{Findings: "Vehicle in good condition", Approved: &approved})
	require.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, done.Status)
	require.NotNil(t, done.Approved)
	assert.True(t, *done.Approved)
	assert.Equal(t, "Vehicle in good condition", done.Findings)
	assert.NotEmpty(t, done.CompletedDate)
}

func TestRiskService_ByPolicy(t *testing.T) {
	f := newFixture(t)
	assessments := NewResourceService(f.docs, Resource[*model.RiskAssessment]{
		Name: "Risk assessment", Collection: "risk-assessments", Prefix: "RISK", NoUpdatedAt: true,
	}, f.audit)
	svc := NewRiskService(assessments)
	ctx := context.Background()

	first, err := assessments.Insert(ctx, &model.RiskAssessment{PolicyID: "POL-1", RiskScore: 40, RiskLevel: "medium"})
	require.NoError(t, err)
	assert.Empty(t, first.UpdatedAt)
	_, err = assessments.Insert(ctx, &model.RiskAssessment{PolicyID: "POL-1", RiskScore: 90, RiskLevel: "critical"})
	require.NoError(t, err)

	got, err := svc.ByPolicy(ctx, "POL-1")
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)

	_, err = svc.ByPolicy(ctx, "POL-2")
	assert.ErrorIs(t, err, model.ErrNotFound)
}
