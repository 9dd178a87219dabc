package validate

import "github.com/Sideko-Inc/insurance-api-demo/server/internal/model"

// -------- Resource validators ----------
//
// Each validator checks a complete record, after defaults on create or after
// the patch has been merged on update.

func Policy(p *model.Policy) error {
	var e Errors
	e.NonEmpty("policyNumber", p.PolicyNumber)
	e.OneOf("policyType", p.PolicyType, model.PolicyTypes)
	e.NonEmpty("holderName", p.HolderName)
	e.Email("holderEmail", p.HolderEmail)
	e.Positive("premium", p.Premium)
	e.Positive("coverageAmount", p.CoverageAmount)
	e.DateTime("startDate", p.StartDate)
	e.DateTime("endDate", p.EndDate)
	e.OneOf("status", p.Status, model.PolicyStatuses)
	return e.Err()
}

func Claim(c *model.Claim) error {
	var e Errors
	e.NonEmpty("claimNumber", c.ClaimNumber)
	e.NonEmpty("policyId", c.PolicyID)
	e.OneOf("claimType", c.ClaimType, model.ClaimTypes)
	e.NonEmpty("description", c.Description)
	e.Positive("claimAmount", c.ClaimAmount)
	e.OneOf("status", c.Status, model.ClaimStatuses)
	e.DateTime("filedDate", c.FiledDate)
	e.OptionalDateTime("processedDate", c.ProcessedDate)
	return e.Err()
}

func Customer(c *model.Customer) error {
	var e Errors
	e.NonEmpty("firstName", c.FirstName)
	e.NonEmpty("lastName", c.LastName)
	e.Email("email", c.Email)
	e.NonEmpty("phone", c.Phone)
	e.NonEmpty("status", c.Status)
	return e.Err()
}

func Quote(q *model.Quote) error {
	var e Errors
	e.OneOf("policyType", q.PolicyType, model.PolicyTypes)
	e.Positive("coverageAmount", q.CoverageAmount)
	e.Email("customerEmail", q.CustomerEmail)
	e.NonEmpty("customerName", q.CustomerName)
	e.Positive("premium", q.Premium)
	e.DateTime("validUntil", q.ValidUntil)
	e.NonEmpty("status", q.Status)
	return e.Err()
}

func Payment(p *model.Payment) error {
	var e Errors
	e.NonEmpty("policyId", p.PolicyID)
	e.Positive("amount", p.Amount)
	e.NonEmpty("paymentMethod", p.PaymentMethod)
	e.DateTime("paymentDate", p.PaymentDate)
	e.NonEmpty("status", p.Status)
	return e.Err()
}

func Agent(a *model.Agent) error {
	var e Errors
	e.NonEmpty("firstName", a.FirstName)
	e.NonEmpty("lastName", a.LastName)
	e.Email("email", a.Email)
	e.NonEmpty("licenseNumber", a.LicenseNumber)
	e.NonNegative("commissionRate", a.CommissionRate)
	e.NonEmpty("status", a.Status)
	return e.Err()
}

func Beneficiary(b *model.Beneficiary) error {
	var e Errors
	e.NonEmpty("policyId", b.PolicyID)
	e.NonEmpty("firstName", b.FirstName)
	e.NonEmpty("lastName", b.LastName)
	e.NonEmpty("relationship", b.Relationship)
	e.Percentage("percentage", b.Percentage)
	return e.Err()
}

func Document(d *model.Document) error {
	var e Errors
	e.NonEmpty("entityType", d.EntityType)
	e.NonEmpty("entityId", d.EntityID)
	e.NonEmpty("documentType", d.DocumentType)
	e.NonEmpty("fileName", d.FileName)
	e.DateTime("uploadedAt", d.UploadedAt)
	return e.Err()
}

func Renewal(r *model.Renewal) error {
	var e Errors
	e.NonEmpty("policyId", r.PolicyID)
	e.DateTime("renewalDate", r.RenewalDate)
	e.Positive("newPremium", r.NewPremium)
	e.NonNegative("newCoverageAmount", r.NewCoverageAmount)
	e.NonEmpty("status", r.Status)
	e.OptionalDateTime("approvedDate", r.ApprovedDate)
	return e.Err()
}

func Endorsement(en *model.Endorsement) error {
	var e Errors
	e.NonEmpty("policyId", en.PolicyID)
	e.NonEmpty("endorsementType", en.EndorsementType)
	e.NonEmpty("description", en.Description)
	e.OptionalDateTime("effectiveDate", en.EffectiveDate)
	e.NonEmpty("status", en.Status)
	return e.Err()
}

func Reinsurance(r *model.Reinsurance) error {
	var e Errors
	e.NonEmpty("treatyName", r.TreatyName)
	e.NonEmpty("reinsurer", r.Reinsurer)
	e.Percentage("cededPercentage", r.CededPercentage)
	e.NonNegative("premiumCeded", r.PremiumCeded)
	e.NonEmpty("status", r.Status)
	return e.Err()
}

func Notification(n *model.Notification) error {
	var e Errors
	e.Email("recipientEmail", n.RecipientEmail)
	e.OneOf("type", n.Type, model.NotificationTypes)
	e.NonEmpty("subject", n.Subject)
	e.NonEmpty("message", n.Message)
	e.NonEmpty("status", n.Status)
	e.OptionalDateTime("sentAt", n.SentAt)
	return e.Err()
}

func Telematics(t *model.TelematicsData) error {
	var e Errors
	e.NonEmpty("policyId", t.PolicyID)
	e.DateTime("recordDate", t.RecordDate)
	e.NonNegative("mileage", t.Mileage)
	e.NonNegative("speed", t.Speed)
	e.NonNegative("hardBraking", float64(t.HardBraking))
	e.NonNegative("hardAcceleration", float64(t.HardAcceleration))
	e.NonNegative("nightDriving", t.NightDriving)
	return e.Err()
}

func Inspection(in *model.Inspection) error {
	var e Errors
	e.NonEmpty("policyId", in.PolicyID)
	e.NonEmpty("inspectionType", in.InspectionType)
	e.DateTime("scheduledDate", in.ScheduledDate)
	e.NonEmpty("inspector", in.Inspector)
	e.NonEmpty("status", in.Status)
	e.OptionalDateTime("completedDate", in.CompletedDate)
	return e.Err()
}

func Subrogation(s *model.Subrogation) error {
	var e Errors
	e.NonEmpty("claimId", s.ClaimID)
	e.NonEmpty("thirdParty", s.ThirdParty)
	e.Positive("amountSought", s.AmountSought)
	e.NonEmpty("status", s.Status)
	return e.Err()
}

func RiskAssessment(r *model.RiskAssessment) error {
	var e Errors
	e.NonEmpty("policyId", r.PolicyID)
	e.Range("riskScore", r.RiskScore, 0, 100)
	e.OneOf("riskLevel", r.RiskLevel, model.RiskLevels)
	if r.Factors == nil {
		e.add("factors is required")
	}
	e.DateTime("assessmentDate", r.AssessmentDate)
	e.NonEmpty("assessedBy", r.AssessedBy)
	return e.Err()
}
