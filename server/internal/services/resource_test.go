package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sideko-Inc/insurance-api-demo/server/internal/model"
)

func TestResourceService_CreateAssignsIDAndTimestamps(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p, err := f.policies.Create(ctx, policyFields())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(p.ID, "POL-"), p.ID)
	assert.Equal(t, "2024-06-01T12:00:00.000Z", p.CreatedAt)
	assert.Equal(t, p.CreatedAt, p.UpdatedAt)
	assert.Equal(t, "P-100", p.PolicyNumber)

	got, err := f.policies.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestResourceService_CreateIgnoresClientIdentity(t *testing.T) {
	f := newFixture(t)
	fields := policyFields()
	fields["id"] = "POL-mine"
	fields["createdAt"] = "1999-01-01T00:00:00Z"

	p, err := f.policies.Create(context.Background(), fields)
	require.NoError(t, err)
	assert.NotEqual(t, "POL-mine", p.ID)
	assert.Equal(t, "2024-06-01T12:00:00.000Z", p.CreatedAt)
}

func TestResourceService_CreateValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	fields := policyFields()
	delete(fields, "policyNumber")
	_, err := f.policies.Create(ctx, fields)
	assert.ErrorIs(t, err, model.ErrValidation)

	fields = policyFields()
	fields["premium"] = "not a number"
	_, err = f.policies.Create(ctx, fields)
	assert.ErrorIs(t, err, model.ErrValidation)

	_, err = f.policies.Create(ctx, nil)
	assert.ErrorIs(t, err, model.ErrValidation)

	items, err := f.policies.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, items, "rejected input must not be persisted")
}

func TestResourceService_CreateAppliesDefaultsOverInput(t *testing.T) {
	f := newFixture(t)
	q, err := f.quotes.Create(context.Background(), map[string]any{
		"policyType": "home",
		"status":     "approved",
		"premium":    1.0,
	})
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, q.Status)
	assert.Equal(t, 750.0, q.Premium)
}

func TestResourceService_UpdateMergesPartialFields(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p, err := f.policies.Create(ctx, policyFields())
	require.NoError(t, err)

	f.now = f.now.Add(time.Minute)
	updated, err := f.policies.Update(ctx, p.ID, map[string]any{
		"premium":   1500.0,
		"id":        "POL-hijack",
		"createdAt": "1999-01-01T00:00:00Z",
	})
	require.NoError(t, err)

	assert.Equal(t, p.ID, updated.ID)
	assert.Equal(t, p.CreatedAt, updated.CreatedAt)
	assert.Equal(t, "2024-06-01T12:01:00.000Z", updated.UpdatedAt)
	assert.Equal(t, 1500.0, updated.Premium)
	assert.Equal(t, p.HolderName, updated.HolderName)
	assert.Equal(t, p.PolicyNumber, updated.PolicyNumber)

	got, err := f.policies.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, updated, got)
}

func TestResourceService_UpdateRejectsInvalidMerge(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p, err := f.policies.Create(ctx, policyFields())
	require.NoError(t, err)

	_, err = f.policies.Update(ctx, p.ID, map[string]any{"premium": -5.0})
	assert.ErrorIs(t, err, model.ErrValidation)

	got, err := f.policies.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1200.0, got.Premium)
}

func TestResourceService_NotFound(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.policies.Get(ctx, "POL-missing")
	assert.ErrorIs(t, err, model.ErrNotFound)

	_, err = f.policies.Update(ctx, "POL-missing", map[string]any{"premium": 1.0})
	assert.ErrorIs(t, err, model.ErrNotFound)

	assert.ErrorIs(t, f.policies.Delete(ctx, "POL-missing"), model.ErrNotFound)
}

func TestResourceService_DeleteThenGet(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a, err := f.policies.Create(ctx, policyFields())
	require.NoError(t, err)
	b, err := f.policies.Create(ctx, policyFields())
	require.NoError(t, err)
	require.NotEqual(t, a.ID, b.ID)

	require.NoError(t, f.policies.Delete(ctx, a.ID))

	_, err = f.policies.Get(ctx, a.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)

	items, err := f.policies.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, b.ID, items[0].ID)
}

func TestResourceService_FilterAndAudit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p, err := f.policies.Create(ctx, policyFields())
	require.NoError(t, err)
	_, err = f.policies.Update(ctx, p.ID, map[string]any{"status": "cancelled"})
	require.NoError(t, err)

	cancelled, err := f.policies.Filter(ctx, func(p *model.Policy) bool { return p.Status == "cancelled" })
	require.NoError(t, err)
	assert.Len(t, cancelled, 1)

	trail, err := f.audit.Trail(ctx, model.AuditFilter{EntityType: "Policy", EntityID: p.ID})
	require.NoError(t, err)
	require.Len(t, trail, 2)
	assert.Equal(t, ActionUpdate, trail[0].Action)
	assert.Equal(t, ActionCreate, trail[1].Action)
	assert.Equal(t, "anonymous", trail[0].PerformedBy)
}

func TestAuditService_TrailNewestFirstOnSameTimestamp(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// The fixture clock is frozen, so every entry shares one timestamp.
	f.audit.Record(ctx, "Claim", "CLM-1", ActionCreate, nil)
	f.audit.Record(ctx, "Claim", "CLM-1", ActionUpdate, nil)
	f.audit.Record(ctx, "Policy", "POL-1", ActionCreate, nil)
	f.audit.Record(ctx, "Claim", "CLM-1", ActionApprove, nil)

	trail, err := f.audit.Trail(ctx, model.AuditFilter{EntityType: "claim", EntityID: "CLM-1"})
	require.NoError(t, err)
	require.Len(t, trail, 3)
	assert.Equal(t, trail[0].Timestamp, trail[2].Timestamp)
	assert.Equal(t, []string{ActionApprove, ActionUpdate, ActionCreate},
		[]string{trail[0].Action, trail[1].Action, trail[2].Action})

	all, err := f.audit.Trail(ctx, model.AuditFilter{})
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, ActionApprove, all[0].Action)
	assert.Equal(t, "POL-1", all[1].EntityID)
}
