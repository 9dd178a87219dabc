package services

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/Sideko-Inc/insurance-api-demo/server/internal/model"
	"github.com/Sideko-Inc/insurance-api-demo/server/internal/store"
	"github.com/Sideko-Inc/insurance-api-demo/server/internal/store/memstore"
)

// fixture wires services over an in-memory store with a frozen clock.
type fixture struct {
	docs     *store.Documents
	audit    *AuditService
	policies *ResourceService[*model.Policy]
	claims   *ResourceService[*model.Claim]
	quotes   *ResourceService[*model.Quote]
	now      time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		docs: store.NewDocuments(memstore.New()),
		now:  time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	clock := func() time.Time { return f.now }

	f.audit = NewAuditService(f.docs, zerolog.Nop())
	f.audit.now = clock

	f.policies = NewResourceService(f.docs, Resource[*model.Policy]{
		Name: "Policy", Collection: "policies", Prefix: "POL",
		Validate: func(p *model.Policy) error {
			if p.PolicyNumber == "" {
				return errors.New("policyNumber is required")
			}
			if p.Premium <= 0 {
				return errors.New("premium must be positive")
			}
			return nil
		},
	}, f.audit)
	f.policies.now = clock

	f.claims = NewResourceService(f.docs, Resource[*model.Claim]{
		Name: "Claim", Collection: "claims", Prefix: "CLM",
	}, f.audit)
	f.claims.now = clock

	f.quotes = NewResourceService(f.docs, Resource[*model.Quote]{
		Name: "Quote", Collection: "quotes", Prefix: "QUO",
		Defaults: func(q *model.Quote, now time.Time) {
			q.Status = model.StatusPending
			q.Premium = 750
		},
	}, f.audit)
	f.quotes.now = clock

	return f
}

func policyFields() map[string]any {
	return map[string]any{
		"policyNumber":   "P-100",
		"policyType":     "auto",
		"holderName":     "Jane Doe",
		"holderEmail":    "jane@example.com",
		"premium":        1200.0,
		"coverageAmount": 50000.0,
		"startDate":      "2024-01-01T00:00:00Z",
		"endDate":        "2025-01-01T00:00:00Z",
		"status":         "active",
	}
}
