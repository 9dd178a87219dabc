package services

import (
	"context"
	"fmt"

	"github.com/Sideko-Inc/insurance-api-demo/server/internal/model"
)

// RiskService stores risk assessments and looks them up by policy.
type RiskService struct {
	*ResourceService[*model.RiskAssessment]
}

func NewRiskService(assessments *ResourceService[*model.RiskAssessment]) *RiskService {
	return &RiskService{ResourceService: assessments}
}

// ByPolicy returns the first assessment recorded for policyID.
func (s *RiskService) ByPolicy(ctx context.Context, policyID string) (*model.RiskAssessment, error) {
	items, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		if it.PolicyID == policyID {
			return it, nil
		}
	}
	return nil, fmt.Errorf("%w: Risk assessment not found for this policy", model.ErrNotFound)
}
