package services

import (
	"context"
	"time"

	"github.com/Sideko-Inc/insurance-api-demo/server/internal/model"
)

// ClaimService adds the approve/reject decisions on top of claim CRUD.
type ClaimService struct {
	*ResourceService[*model.Claim]
}

func NewClaimService(claims *ResourceService[*model.Claim]) *ClaimService {
	return &ClaimService{ResourceService: claims}
}

// Approve marks the claim approved and stamps processedDate.
func (s *ClaimService) Approve(ctx context.Context, id string, req model.ClaimDecisionRequest) (*model.Claim, error) {
	return s.decide(ctx, id, model.StatusApproved, ActionApprove, req)
}

// Reject marks the claim rejected and stamps processedDate.
func (s *ClaimService) Reject(ctx context.Context, id string, req model.ClaimDecisionRequest) (*model.Claim, error) {
	return s.decide(ctx, id, model.StatusRejected, ActionReject, req)
}

func (s *ClaimService) decide(ctx context.Context, id, status, action string, req model.ClaimDecisionRequest) (*model.Claim, error) {
	return s.Modify(ctx, id, action, func(c *model.Claim, now time.Time) error {
		c.Status = status
		c.ProcessedDate = model.Timestamp(now)
		if req.Notes != "" {
			c.Notes = req.Notes
		}
		return nil
	})
}
