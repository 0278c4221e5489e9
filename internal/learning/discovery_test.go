package learning

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fyrsmithlabs/biaslens/internal/bias"
)

func TestLearnNewPattern(t *testing.T) {
	s := NewService(nil, nil)

	t.Run("too little feedback", func(t *testing.T) {
		batch := []bias.Feedback{*feedbackOf("u1", bias.Framing, false)}
		_, err := s.LearnNewPattern(batch)
		assert.ErrorIs(t, err, ErrInsufficientFeedback)
	})

	t.Run("repeated misdetections surface", func(t *testing.T) {
		batch := []bias.Feedback{
			*feedbackOf("u1", bias.Framing, false),
			*feedbackOf("u2", bias.Framing, false),
			*feedbackOf("u1", bias.Anchoring, true),
		}
		p, err := s.LearnNewPattern(batch)
		require.NoError(t, err)
		require.NotNil(t, p)
		assert.Equal(t, bias.Framing, p.Type)
		assert.Equal(t, 2, p.Frequency)
		assert.Equal(t, 0.6, p.AverageSeverity)
	})

	t.Run("scattered misdetections do not qualify", func(t *testing.T) {
		batch := []bias.Feedback{
			*feedbackOf("u1", bias.Framing, false),
			*feedbackOf("u1", bias.Anchoring, false),
			*feedbackOf("u1", bias.Recency, true),
		}
		p, err := s.LearnNewPattern(batch)
		require.NoError(t, err)
		assert.Nil(t, p)
	})

	t.Run("canonical order breaks ties", func(t *testing.T) {
		batch := []bias.Feedback{
			*feedbackOf("u1", bias.SunkCost, false),
			*feedbackOf("u1", bias.SunkCost, false),
			*feedbackOf("u1", bias.Confirmation, false),
			*feedbackOf("u1", bias.Confirmation, false),
		}
		p, err := s.LearnNewPattern(batch)
		require.NoError(t, err)
		require.NotNil(t, p)
		assert.Equal(t, bias.Confirmation, p.Type)
	})
}

func TestPruneIneffectivePatterns(t *testing.T) {
	ctx := context.Background()

	t.Run("mostly-wrong types are decayed", func(t *testing.T) {
		s := NewService(nil, nil)
		require.NoError(t, s.IntegrateFeedback(ctx, feedbackOf("u1", bias.Framing, false)))
		require.NoError(t, s.IntegrateFeedback(ctx, feedbackOf("u1", bias.Framing, true)))
		require.NoError(t, s.IntegrateFeedback(ctx, feedbackOf("u1", bias.Anchoring, true)))

		weightBefore := s.Weight(bias.Framing)

		pruned := s.PruneIneffectivePatterns()
		assert.Equal(t, []bias.Type{bias.Framing}, pruned)
		assert.InDelta(t, weightBefore*0.8, s.Weight(bias.Framing), 1e-9)

		// Accurate types keep their weight.
		assert.InDelta(t, 1.1, s.Weight(bias.Anchoring), 1e-9)
	})

	t.Run("decay floors at the weight minimum", func(t *testing.T) {
		s := NewService(nil, nil)
		for i := 0; i < 30; i++ {
			require.NoError(t, s.IntegrateFeedback(ctx, feedbackOf("u1", bias.Recency, false)))
		}
		for i := 0; i < 20; i++ {
			s.PruneIneffectivePatterns()
		}
		assert.InDelta(t, 0.1, s.Weight(bias.Recency), 1e-9)
	})

	t.Run("no feedback prunes nothing", func(t *testing.T) {
		s := NewService(nil, nil)
		assert.Empty(t, s.PruneIneffectivePatterns())
	})
}
