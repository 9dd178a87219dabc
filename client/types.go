package client

// Policy is an insurance contract.
type Policy struct {
	ID             string  `json:"id,omitempty"`
	PolicyNumber   string  `json:"policyNumber"`
	PolicyType     string  `json:"policyType"`
	HolderName     string  `json:"holderName"`
	HolderEmail    string  `json:"holderEmail"`
	Premium        float64 `json:"premium"`
	CoverageAmount float64 `json:"coverageAmount"`
	StartDate      string  `json:"startDate"`
	EndDate        string  `json:"endDate"`
	Status         string  `json:"status"`
	CreatedAt      string  `json:"createdAt,omitempty"`
	UpdatedAt      string  `json:"updatedAt,omitempty"`
}

// Claim is a payout request filed against a policy.
type Claim struct {
	ID            string  `json:"id,omitempty"`
	ClaimNumber   string  `json:"claimNumber"`
	PolicyID      string  `json:"policyId"`
	ClaimType     string  `json:"claimType"`
	Description   string  `json:"description"`
	ClaimAmount   float64 `json:"claimAmount"`
	Status        string  `json:"status"`
	FiledDate     string  `json:"filedDate"`
	ProcessedDate string  `json:"processedDate,omitempty"`
	Notes         string  `json:"notes,omitempty"`
	CreatedAt     string  `json:"createdAt,omitempty"`
	UpdatedAt     string  `json:"updatedAt,omitempty"`
}

// FraudAnalysis is the result of scoring a claim for fraud.
type FraudAnalysis struct {
	ID              string   `json:"id"`
	ClaimID         string   `json:"claimId"`
	RiskScore       int      `json:"riskScore"`
	FraudIndicators []string `json:"fraudIndicators"`
	Recommendation  string   `json:"recommendation"`
	AnalyzedAt      string   `json:"analyzedAt"`
}

type ClaimsSummary struct {
	TotalClaims        int     `json:"totalClaims"`
	ApprovedClaims     int     `json:"approvedClaims"`
	RejectedClaims     int     `json:"rejectedClaims"`
	PendingClaims      int     `json:"pendingClaims"`
	TotalClaimAmount   float64 `json:"totalClaimAmount"`
	AverageClaimAmount float64 `json:"averageClaimAmount"`
}

type PoliciesSummary struct {
	TotalPolicies       int     `json:"totalPolicies"`
	ActivePolicies      int     `json:"activePolicies"`
	ExpiredPolicies     int     `json:"expiredPolicies"`
	CancelledPolicies   int     `json:"cancelledPolicies"`
	TotalPremiumRevenue float64 `json:"totalPremiumRevenue"`
	AveragePremium      float64 `json:"averagePremium"`
}

type LossRatio struct {
	LossRatio     float64 `json:"lossRatio"`
	TotalClaims   float64 `json:"totalClaims"`
	TotalPremiums float64 `json:"totalPremiums"`
	PeriodStart   string  `json:"periodStart"`
	PeriodEnd     string  `json:"periodEnd"`
}

// Message is the {message, data} reply of delete and key validation calls.
type Message struct {
	Message string         `json:"message"`
	Data    map[string]any `json:"data,omitempty"`
}
