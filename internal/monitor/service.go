package monitor

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/biaslens/internal/bias"
	"github.com/fyrsmithlabs/biaslens/internal/config"
	"github.com/fyrsmithlabs/biaslens/internal/recognizer"
)

const instrumentationName = "github.com/fyrsmithlabs/biaslens/internal/monitor"

// minSample is the floor for a recorded processing-time sample, so
// sub-resolution detections still count toward the mean.
const minSample = time.Microsecond

// Service is the continuous bias monitor. Construct with NewService;
// the zero value is not usable.
type Service struct {
	cfg        config.MonitorConfig
	logger     *zap.Logger
	recognizer *recognizer.Recognizer

	mu      sync.Mutex
	stopped bool

	totalChains int64
	totalBiases int64
	totalAlerts int64

	// samples is a rolling window of per-chain processing times.
	samples []time.Duration

	// budgetExceeded counts samples over the soft time budget. The
	// budget never aborts detection; it only marks slow chains.
	budgetExceeded int64

	// results caches detections by chain id for pull-based alerting.
	results map[string][]bias.Detected

	// emitted holds every alert id ever produced, for deduplication.
	emitted map[string]bool

	alertsByType     map[bias.Type]int64
	alertsByPriority map[bias.AlertPriority]int64

	now func() time.Time

	meter         metric.Meter
	chainsCounter metric.Int64Counter
	biasesCounter metric.Int64Counter
	alertsCounter metric.Int64Counter
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the wall clock used for timing samples.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a monitor around the given recognizer. A nil cfg
// uses the reference defaults; a nil logger is replaced with a no-op
// logger. The recognizer must not be nil.
func NewService(cfg *config.MonitorConfig, logger *zap.Logger, rec *recognizer.Recognizer, opts ...Option) *Service {
	if cfg == nil {
		defaults := config.Default()
		cfg = &defaults.Monitor
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Service{
		cfg:              *cfg,
		logger:           logger,
		recognizer:       rec,
		results:          make(map[string][]bias.Detected),
		emitted:          make(map[string]bool),
		alertsByType:     make(map[bias.Type]int64),
		alertsByPriority: make(map[bias.AlertPriority]int64),
		now:              time.Now,
		meter:            otel.Meter(instrumentationName),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.initMetrics()
	return s
}

func (s *Service) initMetrics() {
	var err error

	s.chainsCounter, err = s.meter.Int64Counter(
		"biaslens.monitor.chains_total",
		metric.WithDescription("Total reasoning chains monitored"),
		metric.WithUnit("{chain}"),
	)
	if err != nil {
		s.logger.Warn("failed to create chains counter", zap.Error(err))
	}

	s.biasesCounter, err = s.meter.Int64Counter(
		"biaslens.monitor.biases_total",
		metric.WithDescription("Total biases detected during monitoring"),
		metric.WithUnit("{bias}"),
	)
	if err != nil {
		s.logger.Warn("failed to create biases counter", zap.Error(err))
	}

	s.alertsCounter, err = s.meter.Int64Counter(
		"biaslens.monitor.alerts_total",
		metric.WithDescription("Total alerts emitted"),
		metric.WithUnit("{alert}"),
	)
	if err != nil {
		s.logger.Warn("failed to create alerts counter", zap.Error(err))
	}
}

// Monitor analyzes one chain without ever surfacing a failure to the
// caller. It yields to the scheduler and honors context cancellation
// before detection starts; after that the chain is processed to
// completion. Counters and the timing window always advance, even when
// detection panics, but results are cached only for successful runs on
// chains that carry an id. Calling Monitor after Stop is a no-op.
func (s *Service) Monitor(ctx context.Context, chain *bias.ReasoningChain) {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	// Sole yield point: give the host a chance to cancel or reschedule
	// before any detection work happens.
	select {
	case <-ctx.Done():
		return
	default:
	}

	start := s.now()
	detections, ok := s.detect(chain)
	elapsed := s.now().Sub(start)
	if elapsed < minSample {
		elapsed = minSample
	}

	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.totalChains++
	s.totalBiases += int64(len(detections))
	s.samples = append(s.samples, elapsed)
	if len(s.samples) > s.cfg.WindowSize {
		s.samples = s.samples[len(s.samples)-s.cfg.WindowSize:]
	}
	if elapsed > s.cfg.SoftTimeBudget {
		s.budgetExceeded++
	}
	if ok && chain != nil && chain.ID != "" {
		s.results[chain.ID] = detections
	}
	s.mu.Unlock()

	if s.chainsCounter != nil {
		s.chainsCounter.Add(ctx, 1)
	}
	if s.biasesCounter != nil && len(detections) > 0 {
		s.biasesCounter.Add(ctx, int64(len(detections)))
	}
}

// detect runs the recognizer, converting panics into an unsuccessful
// (but logged) result. Monitoring must never crash the host.
func (s *Service) detect(chain *bias.ReasoningChain) (detections []bias.Detected, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Warn("detection panicked during monitoring",
				zap.Any("panic", r),
				zap.String("chain_id", chainID(chain)))
			detections, ok = nil, false
		}
	}()

	if chain == nil {
		return nil, false
	}
	return s.recognizer.DetectBiases(chain), true
}

// Stop halts monitoring permanently. Chains submitted afterwards change
// no metric, and a stopped service cannot be restarted.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	s.stopped = true
	s.logger.Info("monitoring stopped",
		zap.Int64("total_chains", s.totalChains),
		zap.Int64("total_biases", s.totalBiases))
}

// Running reports whether the service still accepts chains.
func (s *Service) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.stopped
}

func chainID(chain *bias.ReasoningChain) string {
	if chain == nil {
		return ""
	}
	return chain.ID
}
