package learning

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/biaslens/internal/bias"
	"github.com/fyrsmithlabs/biaslens/internal/config"
)

const instrumentationName = "github.com/fyrsmithlabs/biaslens/internal/learning"

// ErrInsufficientFeedback is returned when an operation needs more
// feedback history than it was given.
var ErrInsufficientFeedback = errors.New("insufficient feedback")

// Service is the feedback learning loop. The zero value is not usable;
// construct with NewService.
type Service struct {
	cfg    config.LearningConfig
	logger *zap.Logger

	mu       sync.Mutex
	history  []bias.Feedback
	weights  map[bias.Type]float64
	profiles map[string]*bias.SensitivityProfile

	now func() time.Time

	meter           metric.Meter
	feedbackCounter metric.Int64Counter
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the wall clock, for tests that exercise
// time-windowed metrics.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a learning service with every bias type weighted
// at the neutral 1.0. A nil cfg uses the reference defaults; a nil
// logger is replaced with a no-op logger.
func NewService(cfg *config.LearningConfig, logger *zap.Logger, opts ...Option) *Service {
	if cfg == nil {
		defaults := config.Default()
		cfg = &defaults.Learning
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	weights := make(map[bias.Type]float64, len(bias.AllTypes()))
	for _, t := range bias.AllTypes() {
		weights[t] = 1.0
	}

	s := &Service{
		cfg:      *cfg,
		logger:   logger,
		weights:  weights,
		profiles: make(map[string]*bias.SensitivityProfile),
		now:      time.Now,
		meter:    otel.Meter(instrumentationName),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.initMetrics()
	return s
}

func (s *Service) initMetrics() {
	var err error
	s.feedbackCounter, err = s.meter.Int64Counter(
		"biaslens.learning.feedback_total",
		metric.WithDescription("Total feedback events integrated"),
		metric.WithUnit("{feedback}"),
	)
	if err != nil {
		s.logger.Warn("failed to create feedback counter", zap.Error(err))
	}
}

// IntegrateFeedback records one judgment and adjusts learned state:
// the bias type's weight moves by the configured step (up when judged
// correct, down otherwise) within [WeightMin, WeightMax], and the
// user's sensitivity for that type is re-evaluated once the user has
// enough history for it. Invalid feedback is rejected without touching
// any state.
func (s *Service) IntegrateFeedback(ctx context.Context, f *bias.Feedback) error {
	if f == nil {
		return bias.ErrNilBias
	}
	if err := f.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.history = append(s.history, *f)

	t := f.Bias.Type
	step := s.cfg.WeightStep
	if !f.Correct {
		step = -step
	}
	s.weights[t] = bias.ClampRange(s.weights[t]+step, s.cfg.WeightMin, s.cfg.WeightMax)

	s.adjustSensitivityLocked(f.UserID, t)

	s.logger.Debug("feedback integrated",
		zap.String("user_id", f.UserID),
		zap.String("bias_type", string(t)),
		zap.Bool("correct", f.Correct),
		zap.Float64("weight", s.weights[t]))

	if s.feedbackCounter != nil {
		s.feedbackCounter.Add(ctx, 1)
	}
	return nil
}

// adjustSensitivityLocked re-evaluates one user's sensitivity for one
// bias type from their accumulated feedback. High accuracy over the
// subset raises sensitivity, low accuracy lowers it, both clamped to
// [0,1]. Below the minimum feedback count nothing changes.
func (s *Service) adjustSensitivityLocked(userID string, t bias.Type) {
	var total, correct int
	for i := range s.history {
		f := &s.history[i]
		if f.UserID == userID && f.Bias.Type == t {
			total++
			if f.Correct {
				correct++
			}
		}
	}
	if total < s.cfg.MinFeedbackForSensitivity {
		return
	}

	accuracy := float64(correct) / float64(total)

	var delta float64
	switch {
	case accuracy > s.cfg.SensitivityHighAccuracy:
		delta = s.cfg.SensitivityStep
	case accuracy < s.cfg.SensitivityLowAccuracy:
		delta = -s.cfg.SensitivityStep
	default:
		return
	}

	profile, ok := s.profiles[userID]
	if !ok {
		profile = &bias.SensitivityProfile{
			UserID:      userID,
			Sensitivity: make(map[bias.Type]float64),
		}
		s.profiles[userID] = profile
	}
	current, ok := profile.Sensitivity[t]
	if !ok {
		current = bias.DefaultSensitivity
	}
	profile.Sensitivity[t] = bias.Clamp01(current + delta)
	profile.UpdatedAt = s.now()
}

// UpdatePatternWeights applies a direct accuracy-based adjustment to
// one type's weight, independent of the per-feedback nudging: high
// accuracy boosts it, low accuracy penalizes it harder. The same
// [WeightMin, WeightMax] bounds apply.
func (s *Service) UpdatePatternWeights(t bias.Type, accuracy float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w := s.weights[t]
	switch {
	case accuracy > s.cfg.DirectHighAccuracy:
		w += s.cfg.DirectBoost
	case accuracy < s.cfg.DirectLowAccuracy:
		w -= s.cfg.DirectPenalty
	default:
		return
	}
	s.weights[t] = bias.ClampRange(w, s.cfg.WeightMin, s.cfg.WeightMax)
}

// Weight returns the current weight for a bias type.
func (s *Service) Weight(t bias.Type) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.weights[t]
}

// Sensitivity returns the user's learned sensitivity for a bias type,
// or the default when no adjustment has occurred yet.
func (s *Service) Sensitivity(userID string, t bias.Type) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if profile, ok := s.profiles[userID]; ok {
		if v, ok := profile.Sensitivity[t]; ok {
			return v
		}
	}
	return bias.DefaultSensitivity
}

// Profile returns a copy of the user's sensitivity profile, or nil if
// no adjustment has ever been made for the user.
func (s *Service) Profile(userID string) *bias.SensitivityProfile {
	s.mu.Lock()
	defer s.mu.Unlock()

	profile, ok := s.profiles[userID]
	if !ok {
		return nil
	}
	out := &bias.SensitivityProfile{
		UserID:      profile.UserID,
		Sensitivity: make(map[bias.Type]float64, len(profile.Sensitivity)),
		UpdatedAt:   profile.UpdatedAt,
	}
	for t, v := range profile.Sensitivity {
		out.Sensitivity[t] = v
	}
	return out
}
