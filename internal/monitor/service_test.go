package monitor

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"

	"github.com/fyrsmithlabs/biaslens/internal/bias"
	"github.com/fyrsmithlabs/biaslens/internal/config"
	"github.com/fyrsmithlabs/biaslens/internal/recognizer"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	return NewService(nil, nil, recognizer.New(nil, nil))
}

// sunkCostChain triggers exactly one detector, at severity 0.7.
func sunkCostChain(id string) *bias.ReasoningChain {
	return &bias.ReasoningChain{
		ID: id,
		Steps: []bias.ReasoningStep{
			{ID: "s1", Content: "We have invested two years in this platform", Kind: bias.StepEvidence},
		},
		Conclusion: "We must continue",
	}
}

func cleanChain(id string) *bias.ReasoningChain {
	return &bias.ReasoningChain{
		ID: id,
		Steps: []bias.ReasoningStep{
			{ID: "s1", Content: "The measurements were collected over a full quarter", Kind: bias.StepEvidence},
		},
		Conclusion: "More data is needed",
	}
}

func TestMonitor_CountsAndCaches(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	s.Monitor(ctx, sunkCostChain("c1"))
	s.Monitor(ctx, cleanChain("c2"))

	m := s.Metrics()
	assert.Equal(t, int64(2), m.TotalChains)
	assert.Equal(t, int64(1), m.TotalBiases)
	assert.GreaterOrEqual(t, m.MeanProcessingTime, time.Microsecond)
	assert.True(t, m.Running)
}

func TestMonitor_NilAndUnidentifiedChains(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	s.Monitor(ctx, nil)
	s.Monitor(ctx, sunkCostChain(""))

	// Counters advance even when nothing can be cached.
	m := s.Metrics()
	assert.Equal(t, int64(2), m.TotalChains)

	assert.Empty(t, s.GenerateAlerts(ctx, sunkCostChain("")))
}

func TestMonitor_CanceledContext(t *testing.T) {
	s := newTestService(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s.Monitor(ctx, sunkCostChain("c1"))

	m := s.Metrics()
	assert.Equal(t, int64(0), m.TotalChains)
	assert.Empty(t, s.GenerateAlerts(context.Background(), sunkCostChain("c1")))
}

func TestStop_IsOneWay(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	s.Monitor(ctx, sunkCostChain("c1"))
	s.Stop()
	assert.False(t, s.Running())

	before := s.Metrics()
	s.Monitor(ctx, sunkCostChain("c2"))
	s.Stop() // second stop is a no-op
	after := s.Metrics()

	assert.Equal(t, before.TotalChains, after.TotalChains)
	assert.Equal(t, before.TotalBiases, after.TotalBiases)
	assert.False(t, after.Running)
}

func TestMonitor_WindowIsBounded(t *testing.T) {
	cfg := config.Default().Monitor
	cfg.WindowSize = 5
	s := NewService(&cfg, nil, recognizer.New(nil, nil))
	ctx := context.Background()

	for i := 0; i < 20; i++ {
		s.Monitor(ctx, cleanChain("c"))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	assert.Len(t, s.samples, 5)
}
