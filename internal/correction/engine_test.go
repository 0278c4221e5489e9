package correction

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fyrsmithlabs/biaslens/internal/bias"
)

func testChain() *bias.ReasoningChain {
	return &bias.ReasoningChain{
		ID: "chain-1",
		Steps: []bias.ReasoningStep{
			{ID: "s1", Content: "I believe the migration will succeed", Kind: bias.StepHypothesis},
			{ID: "s2", Content: "Early benchmarks look good", Kind: bias.StepEvidence},
		},
		Assumptions: []string{"traffic stays flat"},
		Evidence: []bias.Evidence{
			{ID: "e1", Content: "benchmark results", Relevance: bias.Float64Ptr(0.9)},
		},
		Conclusion: "The migration will succeed",
	}
}

func detectedOf(t bias.Type) *bias.Detected {
	return &bias.Detected{
		Type:     t,
		Severity: 0.7,
		Location: bias.Location{StepIndex: 0, Excerpt: "excerpt"},
	}
}

func TestCorrectBias_AllRegisteredStrategies(t *testing.T) {
	e := NewEngine(nil, nil)
	ctx := context.Background()

	registered := []bias.Type{
		bias.Confirmation, bias.Anchoring, bias.Availability, bias.Recency,
		bias.Representativeness, bias.Framing, bias.SunkCost, bias.Attribution,
	}

	for _, typ := range registered {
		t.Run(string(typ), func(t *testing.T) {
			chain := testChain()
			result, err := e.CorrectBias(ctx, detectedOf(typ), chain)
			require.NoError(t, err)

			assert.GreaterOrEqual(t, len(result.CorrectionsApplied), 1)
			assert.GreaterOrEqual(t, result.EffectivenessScore, 0.4)
			assert.Equal(t, result.ImpactReduction, result.EffectivenessScore)
			assert.Equal(t, string(typ)+"_correction", result.Strategy)

			// The correction annotates a clone; the original is intact.
			assert.Same(t, chain, result.Original)
			assert.Len(t, chain.Steps, 2)
			assert.Len(t, chain.Evidence, 1)

			// The clone gained at least one step or evidence item.
			grown := len(result.Corrected.Steps) > len(chain.Steps) ||
				len(result.Corrected.Evidence) > len(chain.Evidence)
			assert.True(t, grown)
		})
	}
}

func TestCorrectBias_BandwagonHasNoStrategy(t *testing.T) {
	e := NewEngine(nil, nil)

	result, err := e.CorrectBias(context.Background(), detectedOf(bias.Bandwagon), testChain())
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrNoStrategy)
}

func TestCorrectBias_NilInputs(t *testing.T) {
	e := NewEngine(nil, nil)
	ctx := context.Background()

	_, err := e.CorrectBias(ctx, nil, testChain())
	assert.ErrorIs(t, err, bias.ErrNilBias)

	_, err = e.CorrectBias(ctx, detectedOf(bias.Framing), nil)
	assert.ErrorIs(t, err, ErrNilChain)
}

func TestCorrectConfirmation_Changes(t *testing.T) {
	e := NewEngine(nil, nil)

	result, err := e.CorrectBias(context.Background(), detectedOf(bias.Confirmation), testChain())
	require.NoError(t, err)

	var kinds []ChangeType
	for _, c := range result.CorrectionsApplied {
		kinds = append(kinds, c.Type)
	}
	assert.Contains(t, kinds, ChangeCounterArgument)
	assert.Contains(t, kinds, ChangeAssumptionChallenged)
	assert.Contains(t, kinds, ChangeAlternativeAdded)

	// Synthetic contradictory evidence and an alternative hypothesis step.
	assert.Len(t, result.Corrected.Evidence, 2)
	assert.Len(t, result.Corrected.Steps, 3)
	assert.Equal(t, 0.5, result.ImpactReduction)
}

func TestCorrectConfirmation_NoAssumptions(t *testing.T) {
	e := NewEngine(nil, nil)
	chain := testChain()
	chain.Assumptions = nil

	result, err := e.CorrectBias(context.Background(), detectedOf(bias.Confirmation), chain)
	require.NoError(t, err)

	for _, c := range result.CorrectionsApplied {
		assert.NotEqual(t, ChangeAssumptionChallenged, c.Type)
	}
}

func TestValidateCorrection(t *testing.T) {
	e := NewEngine(nil, nil)
	ctx := context.Background()

	t.Run("valid correction passes", func(t *testing.T) {
		result, err := e.CorrectBias(ctx, detectedOf(bias.SunkCost), testChain())
		require.NoError(t, err)

		v := e.ValidateCorrection(ctx, result)
		assert.True(t, v.Valid)
		assert.Empty(t, v.Issues)
		assert.Equal(t, 1.0, v.OverallQuality)
	})

	t.Run("unchanged chain fails", func(t *testing.T) {
		chain := testChain()
		corrected := &CorrectedReasoning{
			Original:           chain,
			Corrected:          chain.Clone(),
			CorrectionsApplied: []ReasoningChange{{Type: ChangeEvidenceReweight}},
			EffectivenessScore: 0.5,
		}
		v := e.ValidateCorrection(ctx, corrected)
		assert.False(t, v.Valid)
		require.Len(t, v.Issues, 1)
		assert.InDelta(t, 0.8, v.OverallQuality, 1e-9)
	})

	t.Run("issues stack", func(t *testing.T) {
		chain := testChain()
		corrected := &CorrectedReasoning{
			Original:           chain,
			Corrected:          chain.Clone(),
			EffectivenessScore: 0.1,
		}
		v := e.ValidateCorrection(ctx, corrected)
		assert.False(t, v.Valid)
		assert.Len(t, v.Issues, 3)
		assert.InDelta(t, 0.4, v.OverallQuality, 1e-9)
	})
}
