package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestResourceLifecycle runs create, read, partial update and delete through
// the router for every id-addressed resource.
func TestResourceLifecycle(t *testing.T) {
	cases := []struct {
		path      string
		body      map[string]any
		patch     map[string]any
		untouched string // a field the patch must leave alone
	}{
		{"/api/policies", policyBody(), map[string]any{"premium": 1500}, "holderName"},
		{"/api/claims", claimBody(500), map[string]any{"description": "Side mirror only"}, "claimNumber"},
		{"/api/customers", map[string]any{
			"firstName": "Ada", "lastName": "Lovelace", "email": "ada@example.com", "phone": "555-0100",
		}, map[string]any{"phone": "555-0200"}, "email"},
		{"/api/quotes", map[string]any{
			"policyType": "home", "coverageAmount": 250000, "customerEmail": "sam@example.com", "customerName": "Sam",
		}, map[string]any{"customerName": "Sam Quinn"}, "premium"},
		{"/api/payments", map[string]any{
			"policyId": "POL-1", "amount": 100, "paymentMethod": "card",
		}, map[string]any{"paymentMethod": "ach"}, "amount"},
		{"/api/agents", map[string]any{
			"firstName": "Lee", "lastName": "Park", "email": "lee@example.com", "licenseNumber": "LIC-42",
		}, map[string]any{"territory": "West"}, "licenseNumber"},
		{"/api/beneficiaries", map[string]any{
			"policyId": "POL-1", "firstName": "Kim", "lastName": "Doe", "relationship": "spouse", "percentage": 50,
		}, map[string]any{"percentage": 60}, "relationship"},
		{"/api/documents", map[string]any{
			"entityType": "claim", "entityId": "CLM-1", "documentType": "photo", "fileName": "damage.jpg",
		}, map[string]any{"fileUrl": "https://files.example.com/damage.jpg"}, "fileName"},
		{"/api/renewals", map[string]any{
			"policyId": "POL-1", "renewalDate": "2025-01-01T00:00:00Z", "newPremium": 1300,
		}, map[string]any{"newPremium": 1350}, "renewalDate"},
		{"/api/endorsements", map[string]any{
			"policyId": "POL-1", "endorsementType": "add-driver", "description": "Add teen driver",
		}, map[string]any{"premiumChange": 200}, "description"},
		{"/api/reinsurance", map[string]any{
			"treatyName": "Cat XL 2024", "reinsurer": "Global Re", "cededPercentage": 40,
		}, map[string]any{"premiumCeded": 10000}, "reinsurer"},
		{"/api/notifications", map[string]any{
			"recipientEmail": "jane@example.com", "type": "email", "subject": "Renewal due", "message": "Your policy renews soon",
		}, map[string]any{"subject": "Renewal reminder"}, "message"},
		{"/api/telematics", map[string]any{
			"policyId": "POL-1", "recordDate": "2024-05-01T00:00:00Z", "mileage": 12.5,
		}, map[string]any{"speed": 55}, "mileage"},
		{"/api/inspections", map[string]any{
			"policyId": "POL-1", "inspectionType": "property", "scheduledDate": "2024-07-01T09:00:00Z", "inspector": "Alex",
		}, map[string]any{"inspector": "Blake"}, "inspectionType"},
		{"/api/subrogation", map[string]any{
			"claimId": "CLM-1", "thirdParty": "Acme Trucking", "amountSought": 5000,
		}, map[string]any{"notes": "Demand letter sent"}, "thirdParty"},
	}

	for _, c := range cases {
		t.Run(c.path, func(t *testing.T) {
			s := newTestServer(t)

			rr := s.do(http.MethodPost, c.path, c.body)
			require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
			created := decode[map[string]any](t, rr)
			id, _ := created["id"].(string)
			require.NotEmpty(t, id)
			require.Contains(t, created, c.untouched)

			rr = s.do(http.MethodGet, c.path+"/"+id, nil)
			require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
			assert.Equal(t, created, decode[map[string]any](t, rr))

			rr = s.do(http.MethodPut, c.path+"/"+id, c.patch)
			require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
			updated := decode[map[string]any](t, rr)
			for k, v := range c.patch {
				assert.EqualValues(t, v, updated[k], k)
			}
			assert.Equal(t, created[c.untouched], updated[c.untouched])
			assert.Equal(t, id, updated["id"])
			assert.Equal(t, created["createdAt"], updated["createdAt"])

			rr = s.do(http.MethodGet, c.path+"/"+id, nil)
			require.Equal(t, http.StatusOK, rr.Code)
			assert.Equal(t, updated, decode[map[string]any](t, rr))

			rr = s.do(http.MethodDelete, c.path+"/"+id, nil)
			require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
			assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, c.path+"/"+id, nil).Code)
			assert.Equal(t, http.StatusNotFound, s.do(http.MethodDelete, c.path+"/"+id, nil).Code)
		})
	}
}

func TestTrailingDataAfterBodyIsRejected(t *testing.T) {
	s := newTestServer(t)

	rr := s.do(http.MethodPost, "/api/fraud-detection/analyze", `{"claimId":"CLM-1"} trailing`)
	require.Equal(t, http.StatusBadRequest, rr.Code, rr.Body.String())
	assert.Equal(t, "Invalid JSON", decode[map[string]any](t, rr)["message"])

	rr = s.do(http.MethodPost, "/api/policies", `{} {}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = s.do(http.MethodPost, "/api/claims/CLM-1/approve", `{"notes":"ok"}[]`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	// Trailing whitespace is fine
	rr = s.do(http.MethodPost, "/api/fraud-detection/analyze", "{\"claimId\":\"CLM-1\"}\n  ")
	assert.NotEqual(t, http.StatusBadRequest, rr.Code, rr.Body.String())
}
