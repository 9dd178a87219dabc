package api

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/rs/zerolog"

	"github.com/Sideko-Inc/insurance-api-demo/server/internal/api/validate"
	"github.com/Sideko-Inc/insurance-api-demo/server/internal/model"
	"github.com/Sideko-Inc/insurance-api-demo/server/internal/services"
	"github.com/Sideko-Inc/insurance-api-demo/server/internal/store"
)

const quoteValidity = 30 * 24 * time.Hour

// Services bundles every domain service exposed over HTTP.
type Services struct {
	Policies      *services.ResourceService[*model.Policy]
	Claims        *services.ClaimService
	Customers     *services.ResourceService[*model.Customer]
	Quotes        *services.QuoteService
	Payments      *services.ResourceService[*model.Payment]
	Agents        *services.ResourceService[*model.Agent]
	Beneficiaries *services.ResourceService[*model.Beneficiary]
	Documents     *services.ResourceService[*model.Document]
	Renewals      *services.RenewalService
	Endorsements  *services.ResourceService[*model.Endorsement]
	Reinsurance   *services.ResourceService[*model.Reinsurance]
	Notifications *services.ResourceService[*model.Notification]
	Telematics    *services.ResourceService[*model.TelematicsData]
	Inspections   *services.InspectionService
	Subrogation   *services.ResourceService[*model.Subrogation]
	Risk          *services.RiskService
	Fraud         *services.FraudService
	Analytics     *services.AnalyticsService
	Audit         *services.AuditService
}

// NewServices binds every resource to its collection in docs.
func NewServices(docs *store.Documents, log zerolog.Logger) *Services {
	audit := services.NewAuditService(docs, log)

	policies := services.NewResourceService(docs, services.Resource[*model.Policy]{
		Name: "Policy", Collection: "policies", Prefix: "POL",
		Validate: validate.Policy,
	}, audit)

	claims := services.NewResourceService(docs, services.Resource[*model.Claim]{
		Name: "Claim", Collection: "claims", Prefix: "CLM",
		Validate: validate.Claim,
	}, audit)

	quotes := services.NewResourceService(docs, services.Resource[*model.Quote]{
		Name: "Quote", Collection: "quotes", Prefix: "QUO",
		Defaults: func(q *model.Quote, now time.Time) {
			q.Status = model.StatusPending
			q.Premium = quotePremium()
			q.ValidUntil = model.Timestamp(now.Add(quoteValidity))
			q.PolicyID = ""
		},
		Validate: validate.Quote,
	}, audit)

	renewals := services.NewResourceService(docs, services.Resource[*model.Renewal]{
		Name: "Renewal", Collection: "renewals", Prefix: "REN",
		Defaults: func(r *model.Renewal, _ time.Time) {
			r.Status = model.StatusPending
			r.ApprovedDate = ""
		},
		Validate: validate.Renewal,
	}, audit)

	inspections := services.NewResourceService(docs, services.Resource[*model.Inspection]{
		Name: "Inspection", Collection: "inspections", Prefix: "INS",
		Defaults: func(in *model.Inspection, _ time.Time) {
			in.Status = model.StatusScheduled
			in.Findings = ""
			in.Approved = nil
			in.CompletedDate = ""
		},
		Validate: validate.Inspection,
	}, audit)

	assessments := services.NewResourceService(docs, services.Resource[*model.RiskAssessment]{
		Name: "Risk assessment", Collection: "risk-assessments", Prefix: "RISK",
		Validate:    validate.RiskAssessment,
		NoUpdatedAt: true,
	}, audit)

	return &Services{
		Policies: policies,
		Claims:   services.NewClaimService(claims),
		Customers: services.NewResourceService(docs, services.Resource[*model.Customer]{
			Name: "Customer", Collection: "customers", Prefix: "CUS",
			Defaults: func(c *model.Customer, _ time.Time) {
				if c.Status == "" {
					c.Status = model.StatusActive
				}
			},
			Validate: validate.Customer,
		}, audit),
		Quotes: services.NewQuoteService(quotes, policies),
		Payments: services.NewResourceService(docs, services.Resource[*model.Payment]{
			Name: "Payment", Collection: "payments", Prefix: "PAY",
			Defaults: func(p *model.Payment, now time.Time) {
				p.Status = model.StatusPending
				p.PaymentDate = model.Timestamp(now)
			},
			Validate: validate.Payment,
		}, audit),
		Agents: services.NewResourceService(docs, services.Resource[*model.Agent]{
			Name: "Agent", Collection: "agents", Prefix: "AGE",
			Defaults: func(a *model.Agent, _ time.Time) {
				a.Status = model.StatusActive
			},
			Validate: validate.Agent,
		}, audit),
		Beneficiaries: services.NewResourceService(docs, services.Resource[*model.Beneficiary]{
			Name: "Beneficiary", Collection: "beneficiaries", Prefix: "BEN",
			Validate: validate.Beneficiary,
		}, audit),
		Documents: services.NewResourceService(docs, services.Resource[*model.Document]{
			Name: "Document", Collection: "documents", Prefix: "DOC",
			Defaults: func(d *model.Document, now time.Time) {
				d.UploadedAt = model.Timestamp(now)
			},
			Validate: validate.Document,
		}, audit),
		Renewals: services.NewRenewalService(renewals),
		Endorsements: services.NewResourceService(docs, services.Resource[*model.Endorsement]{
			Name: "Endorsement", Collection: "endorsements", Prefix: "END",
			Defaults: func(e *model.Endorsement, _ time.Time) {
				if e.Status == "" {
					e.Status = model.StatusPending
				}
			},
			Validate: validate.Endorsement,
		}, audit),
		Reinsurance: services.NewResourceService(docs, services.Resource[*model.Reinsurance]{
			Name: "Reinsurance", Collection: "reinsurance", Prefix: "REI",
			Defaults: func(r *model.Reinsurance, _ time.Time) {
				if r.Status == "" {
					r.Status = model.StatusActive
				}
			},
			Validate: validate.Reinsurance,
		}, audit),
		Notifications: services.NewResourceService(docs, services.Resource[*model.Notification]{
			Name: "Notification", Collection: "notifications", Prefix: "NOT",
			Defaults: func(n *model.Notification, _ time.Time) {
				n.Status = model.StatusPending
				n.SentAt = ""
			},
			Validate: validate.Notification,
		}, audit),
		Telematics: services.NewResourceService(docs, services.Resource[*model.TelematicsData]{
			Name: "Telematics data", Collection: "telematics", Prefix: "TEL",
			Validate: validate.Telematics,
		}, audit),
		Inspections: services.NewInspectionService(inspections),
		Subrogation: services.NewResourceService(docs, services.Resource[*model.Subrogation]{
			Name: "Subrogation", Collection: "subrogation", Prefix: "SUB",
			Defaults: func(s *model.Subrogation, _ time.Time) {
				s.Status = model.StatusInitiated
			},
			Validate: validate.Subrogation,
		}, audit),
		Risk:      services.NewRiskService(assessments),
		Fraud:     services.NewFraudService(docs, claims, audit),
		Analytics: services.NewAnalyticsService(claims, policies),
		Audit:     audit,
	}
}

// quotePremium prices a quote uniformly between 500 and 1500, in cents.
func quotePremium() float64 {
	return math.Round((500+rand.Float64()*1000)*100) / 100
}
