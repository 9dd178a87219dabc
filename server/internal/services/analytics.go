package services

import (
	"context"
	"time"

	"github.com/Sideko-Inc/insurance-api-demo/server/internal/model"
)

// AnalyticsService computes portfolio summaries from the claim and policy collections.
type AnalyticsService struct {
	claims   *ResourceService[*model.Claim]
	policies *ResourceService[*model.Policy]
	now      func() time.Time
}

func NewAnalyticsService(claims *ResourceService[*model.Claim], policies *ResourceService[*model.Policy]) *AnalyticsService {
	return &AnalyticsService{claims: claims, policies: policies, now: time.Now}
}

// ClaimsSummary counts claims by status. Processing claims count as pending.
func (s *AnalyticsService) ClaimsSummary(ctx context.Context) (*model.ClaimsSummary, error) {
	claims, err := s.claims.List(ctx)
	if err != nil {
		return nil, err
	}
	out := &model.ClaimsSummary{TotalClaims: len(claims)}
	for _, c := range claims {
		switch c.Status {
		case model.StatusApproved:
			out.ApprovedClaims++
		case model.StatusRejected:
			out.RejectedClaims++
		case model.StatusPending, model.StatusProcessing:
			out.PendingClaims++
		}
		out.TotalClaimAmount += c.ClaimAmount
	}
	out.AverageClaimAmount = average(out.TotalClaimAmount, len(claims))
	return out, nil
}

// PoliciesSummary counts policies by status and totals premiums.
func (s *AnalyticsService) PoliciesSummary(ctx context.Context) (*model.PoliciesSummary, error) {
	policies, err := s.policies.List(ctx)
	if err != nil {
		return nil, err
	}
	out := &model.PoliciesSummary{TotalPolicies: len(policies)}
	for _, p := range policies {
		switch p.Status {
		case model.StatusActive:
			out.ActivePolicies++
		case model.StatusExpired:
			out.ExpiredPolicies++
		case model.StatusCancelled:
			out.CancelledPolicies++
		}
		out.TotalPremiumRevenue += p.Premium
	}
	out.AveragePremium = average(out.TotalPremiumRevenue, len(policies))
	return out, nil
}

// LossRatio divides approved claim amounts by total premiums over the trailing year window.
func (s *AnalyticsService) LossRatio(ctx context.Context) (*model.LossRatio, error) {
	claims, err := s.claims.List(ctx)
	if err != nil {
		return nil, err
	}
	policies, err := s.policies.List(ctx)
	if err != nil {
		return nil, err
	}

	var paid, premiums float64
	for _, c := range claims {
		if c.Status == model.StatusApproved {
			paid += c.ClaimAmount
		}
	}
	for _, p := range policies {
		premiums += p.Premium
	}

	now := s.now()
	out := &model.LossRatio{
		TotalClaims:   paid,
		TotalPremiums: premiums,
		PeriodStart:   model.Timestamp(now.AddDate(-1, 0, 0)),
		PeriodEnd:     model.Timestamp(now),
	}
	if premiums > 0 {
		out.LossRatio = paid / premiums * 100
	}
	return out, nil
}

func average(total float64, n int) float64 {
	if n == 0 {
		return 0
	}
	return total / float64(n)
}
