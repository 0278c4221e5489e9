package learning

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fyrsmithlabs/biaslens/internal/bias"
)

func feedbackAt(ts time.Time, t bias.Type, correct bool) *bias.Feedback {
	f := feedbackOf("u1", t, correct)
	f.Timestamp = ts
	return f
}

func TestAccuracyMetrics(t *testing.T) {
	s := NewService(nil, nil)
	ctx := context.Background()

	require.NoError(t, s.IntegrateFeedback(ctx, feedbackOf("u1", bias.Confirmation, true)))
	require.NoError(t, s.IntegrateFeedback(ctx, feedbackOf("u1", bias.Confirmation, true)))
	require.NoError(t, s.IntegrateFeedback(ctx, feedbackOf("u1", bias.Confirmation, false)))
	require.NoError(t, s.IntegrateFeedback(ctx, feedbackOf("u1", bias.Anchoring, false)))

	t.Run("overall", func(t *testing.T) {
		r := s.AccuracyMetrics()
		assert.Equal(t, 2, r.TruePositives)
		assert.Equal(t, 2, r.FalsePositives)
		assert.Equal(t, 0, r.TrueNegatives)
		assert.Equal(t, 0, r.FalseNegatives)
		assert.InDelta(t, 0.5, r.Precision, 1e-9)

		// Recall mirrors precision: feedback never carries negative
		// detections, so the denominators are identical.
		assert.Equal(t, r.Precision, r.Recall)
		assert.InDelta(t, 0.5, r.F1, 1e-9)
	})

	t.Run("filtered by type", func(t *testing.T) {
		r := s.AccuracyMetrics(bias.Confirmation)
		assert.Equal(t, 2, r.TruePositives)
		assert.Equal(t, 1, r.FalsePositives)
		assert.InDelta(t, 2.0/3.0, r.Precision, 1e-9)
	})

	t.Run("empty history", func(t *testing.T) {
		r := NewService(nil, nil).AccuracyMetrics()
		assert.Zero(t, r.Precision)
		assert.Zero(t, r.F1)
	})
}

func TestImprovementRate(t *testing.T) {
	now := time.Date(2026, 4, 15, 12, 0, 0, 0, time.UTC)
	newClockService := func() *Service {
		return NewService(nil, nil, WithClock(func() time.Time { return now }))
	}
	ctx := context.Background()

	t.Run("short history reports zero", func(t *testing.T) {
		s := newClockService()
		for i := 0; i < 5; i++ {
			require.NoError(t, s.IntegrateFeedback(ctx, feedbackAt(now.Add(-time.Hour), bias.Framing, true)))
		}
		assert.Zero(t, s.ImprovementRate(PeriodWeek))
	})

	t.Run("improving accuracy within a week", func(t *testing.T) {
		s := newClockService()
		early := now.Add(-14 * 24 * time.Hour)
		recent := now.Add(-24 * time.Hour)

		// Early half 40% accurate, recent half 80% accurate.
		for i := 0; i < 5; i++ {
			require.NoError(t, s.IntegrateFeedback(ctx, feedbackAt(early, bias.Framing, i < 2)))
		}
		for i := 0; i < 5; i++ {
			require.NoError(t, s.IntegrateFeedback(ctx, feedbackAt(recent, bias.Framing, i < 4)))
		}

		assert.InDelta(t, 0.4, s.ImprovementRate(PeriodWeek), 1e-9)
	})

	t.Run("declining accuracy floors at zero", func(t *testing.T) {
		s := newClockService()
		early := now.Add(-14 * 24 * time.Hour)
		recent := now.Add(-24 * time.Hour)

		for i := 0; i < 5; i++ {
			require.NoError(t, s.IntegrateFeedback(ctx, feedbackAt(early, bias.Framing, true)))
		}
		for i := 0; i < 5; i++ {
			require.NoError(t, s.IntegrateFeedback(ctx, feedbackAt(recent, bias.Framing, false)))
		}

		assert.Zero(t, s.ImprovementRate(PeriodWeek))
	})

	t.Run("one-sided split reports zero", func(t *testing.T) {
		s := newClockService()
		recent := now.Add(-time.Hour)
		for i := 0; i < 10; i++ {
			require.NoError(t, s.IntegrateFeedback(ctx, feedbackAt(recent, bias.Framing, true)))
		}
		assert.Zero(t, s.ImprovementRate(PeriodWeek))
	})

	t.Run("all splits at the median", func(t *testing.T) {
		s := newClockService()
		early := now.Add(-60 * 24 * time.Hour)
		recent := now.Add(-24 * time.Hour)

		for i := 0; i < 5; i++ {
			require.NoError(t, s.IntegrateFeedback(ctx, feedbackAt(early, bias.Framing, false)))
		}
		for i := 0; i < 5; i++ {
			require.NoError(t, s.IntegrateFeedback(ctx, feedbackAt(recent, bias.Framing, true)))
		}

		assert.InDelta(t, 1.0, s.ImprovementRate(PeriodAll), 1e-9)
	})
}

func TestMetricsSnapshot(t *testing.T) {
	s := NewService(nil, nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, s.IntegrateFeedback(ctx, feedbackOf("u1", bias.Confirmation, true)))
	}

	m := s.Metrics()
	assert.Equal(t, 3, m.TotalFeedback)
	assert.Equal(t, 1, m.Profiles)
	assert.InDelta(t, 1.3, m.Weights[bias.Confirmation], 1e-9)
	assert.Equal(t, 3, m.Accuracy.TruePositives)

	// The snapshot's weight map is a copy.
	m.Weights[bias.Confirmation] = 0
	assert.InDelta(t, 1.3, s.Weight(bias.Confirmation), 1e-9)
}
