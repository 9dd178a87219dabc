package model

// Meta carries the server-managed identity and timestamps shared by every record.
type Meta struct {
	ID        string `json:"id"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// Base exposes the embedded metadata so generic services can stamp records.
func (m *Meta) Base() *Meta { return m }

// Record is implemented by every stored resource via the embedded Meta.
type Record interface {
	Base() *Meta
}

// Policy is an issued insurance policy.
type Policy struct {
	Meta
	PolicyNumber   string  `json:"policyNumber"`
	PolicyType     string  `json:"policyType"`
	HolderName     string  `json:"holderName"`
	HolderEmail    string  `json:"holderEmail"`
	Premium        float64 `json:"premium"`
	CoverageAmount float64 `json:"coverageAmount"`
	StartDate      string  `json:"startDate"`
	EndDate        string  `json:"endDate"`
	Status         string  `json:"status"`
}

// Claim is a request for payout filed against a policy.
type Claim struct {
	Meta
	ClaimNumber   string  `json:"claimNumber"`
	PolicyID      string  `json:"policyId"`
	ClaimType     string  `json:"claimType"`
	Description   string  `json:"description"`
	ClaimAmount   float64 `json:"claimAmount"`
	Status        string  `json:"status"`
	FiledDate     string  `json:"filedDate"`
	ProcessedDate string  `json:"processedDate,omitempty"`
	Notes         string  `json:"notes,omitempty"`
}

// Address is a postal address embedded in customer records.
type Address struct {
	Street  string `json:"street,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	ZipCode string `json:"zipCode,omitempty"`
	Country string `json:"country,omitempty"`
}

// Customer is a prospective or existing policy holder.
type Customer struct {
	Meta
	FirstName   string   `json:"firstName"`
	LastName    string   `json:"lastName"`
	Email       string   `json:"email"`
	Phone       string   `json:"phone"`
	DateOfBirth string   `json:"dateOfBirth,omitempty"`
	Address     *Address `json:"address,omitempty"`
	Status      string   `json:"status"`
}

// Quote is a priced offer that can be converted into a Policy once approved.
type Quote struct {
	Meta
	PolicyType     string  `json:"policyType"`
	CoverageAmount float64 `json:"coverageAmount"`
	CustomerEmail  string  `json:"customerEmail"`
	CustomerName   string  `json:"customerName"`
	Premium        float64 `json:"premium"`
	ValidUntil     string  `json:"validUntil"`
	Status         string  `json:"status"`
	PolicyID       string  `json:"policyId,omitempty"`
}

// Payment is a premium payment made against a policy.
type Payment struct {
	Meta
	PolicyID      string  `json:"policyId"`
	Amount        float64 `json:"amount"`
	PaymentMethod string  `json:"paymentMethod"`
	PaymentDate   string  `json:"paymentDate"`
	Status        string  `json:"status"`
}

// Agent is a licensed sales agent.
type Agent struct {
	Meta
	FirstName      string  `json:"firstName"`
	LastName       string  `json:"lastName"`
	Email          string  `json:"email"`
	Phone          string  `json:"phone,omitempty"`
	LicenseNumber  string  `json:"licenseNumber"`
	CommissionRate float64 `json:"commissionRate,omitempty"`
	Territory      string  `json:"territory,omitempty"`
	Status         string  `json:"status"`
}

// Beneficiary receives a share of a policy payout.
type Beneficiary struct {
	Meta
	PolicyID     string  `json:"policyId"`
	FirstName    string  `json:"firstName"`
	LastName     string  `json:"lastName"`
	Relationship string  `json:"relationship"`
	Percentage   float64 `json:"percentage"`
}

// Document is metadata for a file attached to any entity.
type Document struct {
	Meta
	EntityType   string `json:"entityType"`
	EntityID     string `json:"entityId"`
	DocumentType string `json:"documentType"`
	FileName     string `json:"fileName"`
	FileURL      string `json:"fileUrl,omitempty"`
	UploadedAt   string `json:"uploadedAt"`
}

// Renewal proposes new terms for an existing policy.
type Renewal struct {
	Meta
	PolicyID          string  `json:"policyId"`
	RenewalDate       string  `json:"renewalDate"`
	NewPremium        float64 `json:"newPremium"`
	NewCoverageAmount float64 `json:"newCoverageAmount,omitempty"`
	Status            string  `json:"status"`
	ApprovedDate      string  `json:"approvedDate,omitempty"`
}

// Endorsement amends the terms of a policy mid-term.
type Endorsement struct {
	Meta
	PolicyID        string  `json:"policyId"`
	EndorsementType string  `json:"endorsementType"`
	Description     string  `json:"description"`
	PremiumChange   float64 `json:"premiumChange,omitempty"`
	EffectiveDate   string  `json:"effectiveDate,omitempty"`
	Status          string  `json:"status"`
}

// Reinsurance is a treaty ceding part of the risk to a reinsurer.
type Reinsurance struct {
	Meta
	TreatyName      string  `json:"treatyName"`
	Reinsurer       string  `json:"reinsurer"`
	PolicyID        string  `json:"policyId,omitempty"`
	CededPercentage float64 `json:"cededPercentage"`
	PremiumCeded    float64 `json:"premiumCeded,omitempty"`
	Status          string  `json:"status"`
}

// Notification is an outbound message to a customer or agent.
type Notification struct {
	Meta
	RecipientEmail string `json:"recipientEmail"`
	Type           string `json:"type"`
	Subject        string `json:"subject"`
	Message        string `json:"message"`
	Status         string `json:"status"`
	SentAt         string `json:"sentAt,omitempty"`
}

// TelematicsData is a driving-behaviour sample uploaded for an auto policy.
type TelematicsData struct {
	Meta
	PolicyID         string  `json:"policyId"`
	RecordDate       string  `json:"recordDate"`
	Mileage          float64 `json:"mileage"`
	Speed            float64 `json:"speed,omitempty"`
	HardBraking      int     `json:"hardBraking,omitempty"`
	HardAcceleration int     `json:"hardAcceleration,omitempty"`
	NightDriving     float64 `json:"nightDriving,omitempty"`
}

// Inspection is a scheduled property or vehicle inspection.
type Inspection struct {
	Meta
	PolicyID       string `json:"policyId"`
	InspectionType string `json:"inspectionType"`
	ScheduledDate  string `json:"scheduledDate"`
	Inspector      string `json:"inspector"`
	Status         string `json:"status"`
	Findings       string `json:"findings,omitempty"`
	Approved       *bool  `json:"approved,omitempty"`
	CompletedDate  string `json:"completedDate,omitempty"`
}

// Subrogation is a recovery action against a liable third party.
type Subrogation struct {
	Meta
	ClaimID      string  `json:"claimId"`
	ThirdParty   string  `json:"thirdParty"`
	AmountSought float64 `json:"amountSought"`
	Status       string  `json:"status"`
	Notes        string  `json:"notes,omitempty"`
}

// RiskAssessment scores the risk of a policy. It is never updated in place.
type RiskAssessment struct {
	Meta
	PolicyID       string   `json:"policyId"`
	RiskScore      float64  `json:"riskScore"`
	RiskLevel      string   `json:"riskLevel"`
	Factors        []string `json:"factors"`
	AssessmentDate string   `json:"assessmentDate"`
	AssessedBy     string   `json:"assessedBy"`
	Notes          string   `json:"notes,omitempty"`
}

// FraudAnalysis is the persisted outcome of a fraud check on a claim.
type FraudAnalysis struct {
	ID              string   `json:"id"`
	ClaimID         string   `json:"claimId"`
	RiskScore       int      `json:"riskScore"`
	FraudIndicators []string `json:"fraudIndicators"`
	Recommendation  string   `json:"recommendation"`
	AnalyzedAt      string   `json:"analyzedAt"`
}

// AuditLog records a single mutation performed through the API.
type AuditLog struct {
	ID          string         `json:"id"`
	EntityType  string         `json:"entityType"`
	EntityID    string         `json:"entityId"`
	Action      string         `json:"action"`
	PerformedBy string         `json:"performedBy"`
	Timestamp   string         `json:"timestamp"`
	Changes     map[string]any `json:"changes,omitempty"`
}

// ClaimsSummary aggregates claim counts and amounts.
type ClaimsSummary struct {
	TotalClaims        int     `json:"totalClaims"`
	ApprovedClaims     int     `json:"approvedClaims"`
	RejectedClaims     int     `json:"rejectedClaims"`
	PendingClaims      int     `json:"pendingClaims"`
	TotalClaimAmount   float64 `json:"totalClaimAmount"`
	AverageClaimAmount float64 `json:"averageClaimAmount"`
}

// PoliciesSummary aggregates policy counts and premium revenue.
type PoliciesSummary struct {
	TotalPolicies       int     `json:"totalPolicies"`
	ActivePolicies      int     `json:"activePolicies"`
	ExpiredPolicies     int     `json:"expiredPolicies"`
	CancelledPolicies   int     `json:"cancelledPolicies"`
	TotalPremiumRevenue float64 `json:"totalPremiumRevenue"`
	AveragePremium      float64 `json:"averagePremium"`
}

// LossRatio compares approved claim payouts to premiums written.
type LossRatio struct {
	LossRatio     float64 `json:"lossRatio"`
	TotalClaims   float64 `json:"totalClaims"`
	TotalPremiums float64 `json:"totalPremiums"`
	PeriodStart   string  `json:"periodStart"`
	PeriodEnd     string  `json:"periodEnd"`
}

// CompleteInspectionRequest is the body of the inspection completion action.
type CompleteInspectionRequest struct {
	Findings string `json:"findings"`
	Approved *bool  `json:"approved"`
}

// ClaimDecisionRequest is the optional body of the claim approve/reject actions.
type ClaimDecisionRequest struct {
	Notes string `json:"notes,omitempty"`
}

// FraudAnalysisRequest is the body of the fraud analysis endpoint.
type FraudAnalysisRequest struct {
	ClaimID string `json:"claimId"`
}

// AuditFilter narrows the audit trail to one entity type and/or id.
type AuditFilter struct {
	EntityType string
	EntityID   string
}
