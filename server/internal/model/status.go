package model

// PolicyTypes is shared by policies and quotes.
var PolicyTypes = []string{"auto", "home", "life", "health"}

var (
	PolicyStatuses    = []string{"active", "expired", "cancelled"}
	ClaimTypes        = []string{"accident", "theft", "damage", "medical", "other"}
	ClaimStatuses     = []string{"pending", "approved", "rejected", "processing"}
	RiskLevels        = []string{"low", "medium", "high", "critical"}
	NotificationTypes = []string{"email", "sms", "push"}
)

const (
	StatusActive     = "active"
	StatusExpired    = "expired"
	StatusCancelled  = "cancelled"
	StatusPending    = "pending"
	StatusApproved   = "approved"
	StatusRejected   = "rejected"
	StatusProcessing = "processing"
	StatusConverted  = "converted"
	StatusScheduled  = "scheduled"
	StatusCompleted  = "completed"
	StatusInitiated  = "initiated"
	StatusSent       = "sent"
	StatusFailed     = "failed"
)

// Fraud recommendations.
const (
	RecommendApprove = "approve"
	RecommendReview  = "review"
	RecommendReject  = "reject"
)
