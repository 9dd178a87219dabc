package services

import (
	"context"
	"fmt"
	"time"

	"github.com/go-openapi/strfmt"

	"github.com/Sideko-Inc/insurance-api-demo/server/internal/model"
	"github.com/Sideko-Inc/insurance-api-demo/server/internal/store"
)

const fraudCollection = "fraud-analyses"

// Fraud rule thresholds.
const (
	highClaimAmount      = 10000
	delayedReportingDays = 30

	highAmountWeight       = 30
	incompleteDocsWeight   = 20
	delayedReportingWeight = 25

	reviewThreshold = 30
	rejectThreshold = 60
)

// Fraud indicators.
const (
	IndicatorHighAmount       = "High claim amount"
	IndicatorIncompleteDocs   = "Incomplete documentation"
	IndicatorDelayedReporting = "Delayed reporting"
)

// FraudService scores claims with fixed threshold rules and keeps the results.
type FraudService struct {
	claims   *ResourceService[*model.Claim]
	analyses *store.Collection[*model.FraudAnalysis]
	audit    *AuditService
	now      func() time.Time
}

func NewFraudService(docs *store.Documents, claims *ResourceService[*model.Claim], audit *AuditService) *FraudService {
	return &FraudService{
		claims:   claims,
		analyses: store.CollectionOf[*model.FraudAnalysis](docs, fraudCollection),
		audit:    audit,
		now:      time.Now,
	}
}

// Analyze scores the claim, persists the analysis and returns it.
func (s *FraudService) Analyze(ctx context.Context, req model.FraudAnalysisRequest) (*model.FraudAnalysis, error) {
	if req.ClaimID == "" {
		return nil, fmt.Errorf("%w: claimId is required", model.ErrValidation)
	}
	claim, err := s.claims.Get(ctx, req.ClaimID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	score, indicators := ScoreClaim(claim, now)
	analysis := &model.FraudAnalysis{
		ID:              model.NewID("FRD", now),
		ClaimID:         claim.ID,
		RiskScore:       score,
		FraudIndicators: indicators,
		Recommendation:  Recommend(score),
		AnalyzedAt:      model.Timestamp(now),
	}
	err = s.analyses.Update(ctx, func(items []*model.FraudAnalysis) ([]*model.FraudAnalysis, error) {
		return append(items, analysis), nil
	})
	if err != nil {
		return nil, err
	}
	s.audit.Record(ctx, "Claim", claim.ID, ActionAnalyze, map[string]any{
		"riskScore":      score,
		"recommendation": analysis.Recommendation,
	})
	return analysis, nil
}

// Reports returns every stored analysis.
func (s *FraudService) Reports(ctx context.Context) ([]*model.FraudAnalysis, error) {
	return s.analyses.Load(ctx)
}

// ScoreClaim applies the fraud rules to c as of now.
func ScoreClaim(c *model.Claim, now time.Time) (int, []string) {
	score := 0
	indicators := []string{}

	if c.ClaimAmount > highClaimAmount {
		indicators = append(indicators, IndicatorHighAmount)
		score += highAmountWeight
	}
	if c.Status == model.StatusPending && c.Notes == "" {
		indicators = append(indicators, IndicatorIncompleteDocs)
		score += incompleteDocsWeight
	}
	// An unparseable filedDate never counts as delayed.
	if filed, err := strfmt.ParseDateTime(c.FiledDate); err == nil {
		days := int(now.Sub(time.Time(filed)).Hours() / 24)
		if days > delayedReportingDays {
			indicators = append(indicators, IndicatorDelayedReporting)
			score += delayedReportingWeight
		}
	}
	return score, indicators
}

// Recommend maps a fraud score to approve, review or reject.
func Recommend(score int) string {
	switch {
	case score < reviewThreshold:
		return model.RecommendApprove
	case score < rejectThreshold:
		return model.RecommendReview
	default:
		return model.RecommendReject
	}
}
