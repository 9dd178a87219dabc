package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Sideko-Inc/insurance-api-demo/server/internal/model"
)

// RenewalService adds the approval step to renewal CRUD.
type RenewalService struct {
	*ResourceService[*model.Renewal]
}

func NewRenewalService(renewals *ResourceService[*model.Renewal]) *RenewalService {
	return &RenewalService{ResourceService: renewals}
}

// Approve marks the renewal approved.
func (s *RenewalService) Approve(ctx context.Context, id string) (*model.Renewal, error) {
	return s.Modify(ctx, id, ActionApprove, func(r *model.Renewal, now time.Time) error {
		r.Status = model.StatusApproved
		r.ApprovedDate = model.Timestamp(now)
		return nil
	})
}

// InspectionService adds the completion step to inspection CRUD.
type InspectionService struct {
	*ResourceService[*model.Inspection]
}

func NewInspectionService(inspections *ResourceService[*model.Inspection]) *InspectionService {
	return &InspectionService{ResourceService: inspections}
}

// Complete records the findings and outcome of an inspection.
func (s *InspectionService) Complete(ctx context.Context, id string, req model.CompleteInspectionRequest) (*model.Inspection, error) {
	var problems []string
	if req.Findings == "" {
		problems = append(problems, "findings is required")
	}
	if req.Approved == nil {
		problems = append(problems, "approved is required")
	}
	if len(problems) > 0 {
		return nil, fmt.Errorf("%w: %s", model.ErrValidation, strings.Join(problems, "; "))
	}
	return s.Modify(ctx, id, ActionComplete, func(in *model.Inspection, now time.Time) error {
		approved := *req.Approved
		in.Status = model.StatusCompleted
		in.Findings = req.Findings
		in.Approved = &approved
		in.CompletedDate = model.Timestamp(now)
		return nil
	})
}
