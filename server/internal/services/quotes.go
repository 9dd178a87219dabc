package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Sideko-Inc/insurance-api-demo/server/internal/model"
)

const policyTerm = 365 * 24 * time.Hour

// QuoteService converts approved quotes into policies.
type QuoteService struct {
	*ResourceService[*model.Quote]
	policies *ResourceService[*model.Policy]
}

func NewQuoteService(quotes *ResourceService[*model.Quote], policies *ResourceService[*model.Policy]) *QuoteService {
	return &QuoteService{ResourceService: quotes, policies: policies}
}

// Convert issues a policy from an approved quote and marks the quote converted.
// The quotes lock is taken before the policies lock.
func (s *QuoteService) Convert(ctx context.Context, id string) (*model.Policy, error) {
	var policy *model.Policy
	_, err := s.Modify(ctx, id, ActionConvert, func(q *model.Quote, now time.Time) error {
		if q.Status != model.StatusApproved {
			return fmt.Errorf("%w: Only approved quotes can be converted", model.ErrValidation)
		}
		p, err := s.policies.InsertWith(ctx, func(existing []*model.Policy) (*model.Policy, error) {
			return &model.Policy{
				PolicyNumber:   PolicyNumber(now, len(existing)+1),
				PolicyType:     q.PolicyType,
				HolderName:     q.CustomerName,
				HolderEmail:    q.CustomerEmail,
				Premium:        q.Premium,
				CoverageAmount: q.CoverageAmount,
				StartDate:      model.Timestamp(now),
				EndDate:        model.Timestamp(now.Add(policyTerm)),
				Status:         model.StatusActive,
			}, nil
		})
		if err != nil {
			return err
		}
		policy = p
		q.Status = model.StatusConverted
		q.PolicyID = p.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return policy, nil
}

// PolicyNumber formats the n-th policy issued in now's year, e.g. INS-2024-000042.
func PolicyNumber(now time.Time, n int) string {
	return fmt.Sprintf("INS-%d-%06d", now.Year(), n)
}
