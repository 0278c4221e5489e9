package correction

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/biaslens/internal/bias"
	"github.com/fyrsmithlabs/biaslens/internal/config"
)

const instrumentationName = "github.com/fyrsmithlabs/biaslens/internal/correction"

// strategyFunc annotates a cloned chain to counter one bias and returns
// the changes it made. Strategies mutate only the clone they are given.
type strategyFunc func(e *Engine, d *bias.Detected, clone *bias.ReasoningChain) []ReasoningChange

// Engine applies per-type correction strategies to reasoning chains.
type Engine struct {
	cfg    config.CorrectionConfig
	logger *zap.Logger

	strategies map[bias.Type]strategyFunc

	meter              metric.Meter
	correctionsCounter metric.Int64Counter
	validationCounter  metric.Int64Counter
}

// NewEngine creates a correction engine. A nil cfg uses the reference
// defaults; a nil logger is replaced with a no-op logger.
func NewEngine(cfg *config.CorrectionConfig, logger *zap.Logger) *Engine {
	if cfg == nil {
		defaults := config.Default()
		cfg = &defaults.Correction
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	e := &Engine{
		cfg:        *cfg,
		logger:     logger,
		strategies: buildStrategies(),
		meter:      otel.Meter(instrumentationName),
	}
	e.initMetrics()
	return e
}

// buildStrategies returns the dispatch table. Bandwagon is intentionally
// absent; see the package documentation.
func buildStrategies() map[bias.Type]strategyFunc {
	return map[bias.Type]strategyFunc{
		bias.Confirmation:       (*Engine).correctConfirmation,
		bias.Anchoring:          (*Engine).correctAnchoring,
		bias.Availability:       (*Engine).correctAvailability,
		bias.Recency:            (*Engine).correctRecency,
		bias.Representativeness: (*Engine).correctRepresentativeness,
		bias.Framing:            (*Engine).correctFraming,
		bias.SunkCost:           (*Engine).correctSunkCost,
		bias.Attribution:        (*Engine).correctAttribution,
	}
}

func (e *Engine) initMetrics() {
	var err error

	e.correctionsCounter, err = e.meter.Int64Counter(
		"biaslens.correction.corrections_total",
		metric.WithDescription("Total number of correction strategies applied"),
		metric.WithUnit("{correction}"),
	)
	if err != nil {
		e.logger.Warn("failed to create corrections counter", zap.Error(err))
	}

	e.validationCounter, err = e.meter.Int64Counter(
		"biaslens.correction.validation_failures_total",
		metric.WithDescription("Total number of corrections that failed validation"),
		metric.WithUnit("{validation}"),
	)
	if err != nil {
		e.logger.Warn("failed to create validation counter", zap.Error(err))
	}
}

// CorrectBias applies the strategy registered for the detection's type
// to a deep copy of the chain. The original chain is never modified.
// Returns ErrNoStrategy (wrapped) for types without a registered
// strategy, currently only bandwagon and unknown future types.
func (e *Engine) CorrectBias(ctx context.Context, d *bias.Detected, chain *bias.ReasoningChain) (*CorrectedReasoning, error) {
	if d == nil {
		return nil, bias.ErrNilBias
	}
	if chain == nil {
		return nil, ErrNilChain
	}

	apply, ok := e.strategies[d.Type]
	if !ok {
		return nil, fmt.Errorf("%w for bias type %q", ErrNoStrategy, d.Type)
	}

	impact, ok := e.cfg.Reduction(string(d.Type))
	if !ok {
		return nil, fmt.Errorf("%w for bias type %q", ErrNoStrategy, d.Type)
	}

	clone := chain.Clone()
	changes := apply(e, d, clone)

	result := &CorrectedReasoning{
		Original:           chain,
		Corrected:          clone,
		Strategy:           strategyName(d.Type),
		CorrectionsApplied: changes,
		ImpactReduction:    impact,
		// One correction per call, so the overall score is the
		// single correction's impact reduction.
		EffectivenessScore: impact,
	}

	e.logger.Debug("correction applied",
		zap.String("chain_id", chain.ID),
		zap.String("bias_type", string(d.Type)),
		zap.String("strategy", result.Strategy),
		zap.Int("changes", len(changes)),
		zap.Float64("impact_reduction", impact))

	if e.correctionsCounter != nil {
		e.correctionsCounter.Add(ctx, 1)
	}

	return result, nil
}

func strategyName(t bias.Type) string {
	return string(t) + "_correction"
}
