package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sideko-Inc/insurance-api-demo/server/internal/model"
)

func TestScoreClaim(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	recent := model.Timestamp(now.AddDate(0, 0, -2))
	old := model.Timestamp(now.AddDate(0, 0, -45))

	tests := []struct {
		name       string
		claim      model.Claim
		score      int
		indicators []string
		rec        string
	}{
		{
			name:       "clean claim",
			claim:      model.Claim{ClaimAmount: 500, Status: model.StatusApproved, FiledDate: recent},
			score:      0,
			indicators: []string{},
			rec:        model.RecommendApprove,
		},
		{
			name:       "high amount",
			claim:      model.Claim{ClaimAmount: 15000, Status: model.StatusProcessing, FiledDate: recent},
			score:      30,
			indicators: []string{IndicatorHighAmount},
			rec:        model.RecommendReview,
		},
		{
			name:       "pending without notes",
			claim:      model.Claim{ClaimAmount: 100, Status: model.StatusPending, FiledDate: recent},
			score:      20,
			indicators: []string{IndicatorIncompleteDocs},
			rec:        model.RecommendApprove,
		},
		{
			name:       "pending with notes",
			claim:      model.Claim{ClaimAmount: 100, Status: model.StatusPending, Notes: "photos attached", FiledDate: recent},
			score:      0,
			indicators: []string{},
			rec:        model.RecommendApprove,
		},
		{
			name:       "all rules",
			claim:      model.Claim{ClaimAmount: 20000, Status: model.StatusPending, FiledDate: old},
			score:      75,
			indicators: []string{IndicatorHighAmount, IndicatorIncompleteDocs, IndicatorDelayedReporting},
			rec:        model.RecommendReject,
		},
		{
			name:       "unparseable filed date",
			claim:      model.Claim{ClaimAmount: 100, Status: model.StatusApproved, FiledDate: "yesterday"},
			score:      0,
			indicators: []string{},
			rec:        model.RecommendApprove,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := tt.claim
			score, indicators := ScoreClaim(&c, now)
			assert.Equal(t, tt.score, score)
			assert.Equal(t, tt.indicators, indicators)
			assert.Equal(t, tt.rec, Recommend(score))
		})
	}
}

func TestRecommendBoundaries(t *testing.T) {
	assert.Equal(t, model.RecommendApprove, Recommend(29))
	assert.Equal(t, model.RecommendReview, Recommend(30))
	assert.Equal(t, model.RecommendReview, Recommend(59))
	assert.Equal(t, model.RecommendReject, Recommend(60))
}

func TestFraudService_AnalyzePersists(t *testing.T) {
	f := newFixture(t)
	svc := NewFraudService(f.docs, f.claims, f.audit)
	svc.now = func() time.Time { return f.now }
	ctx := context.Background()

	c := createClaim(t, f, &model.Claim{
		ClaimNumber: "C-9",
		ClaimAmount: 12000,
		Status:      model.StatusApproved,
		FiledDate:   model.Timestamp(f.now),
	})

	a, err := svc.Analyze(ctx, model.FraudAnalysisRequest{ClaimID: c.ID})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, a.RiskScore, 30)
	assert.Contains(t, a.FraudIndicators, IndicatorHighAmount)
	assert.Regexp(t, `^FRD-`, a.ID)

	reports, err := svc.Reports(ctx)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, a, reports[0])

	_, err = svc.Analyze(ctx, model.FraudAnalysisRequest{ClaimID: "CLM-missing"})
	assert.ErrorIs(t, err, model.ErrNotFound)

	_, err = svc.Analyze(ctx, model.FraudAnalysisRequest{})
	assert.ErrorIs(t, err, model.ErrValidation)
}
