package learning

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/fyrsmithlabs/biaslens/internal/bias"
)

// discoveredSeverity is assigned to patterns surfaced from repeated
// misdetections; the true severity is unknown at discovery time.
const discoveredSeverity = 0.6

// minDiscoveryFeedback is the least feedback LearnNewPattern accepts.
const minDiscoveryFeedback = 3

// minIncorrectForPattern is how many incorrect judgments of one type
// mark it as a misdetection pattern.
const minIncorrectForPattern = 2

// DiscoveredPattern describes a bias type the detectors keep getting
// wrong, surfaced from feedback. It is a discovery heuristic, not a
// classification.
type DiscoveredPattern struct {
	// Type is the repeatedly misdetected bias type.
	Type bias.Type `json:"type"`

	// Frequency is the number of incorrect judgments observed.
	Frequency int `json:"frequency"`

	// AverageSeverity is a fixed placeholder at discovery time.
	AverageSeverity float64 `json:"average_severity"`
}

// LearnNewPattern scans a feedback batch for a bias type whose
// detections were repeatedly judged incorrect. Types are scanned in the
// canonical order, so the result is deterministic. Returns nil (no
// error) when no type qualifies.
func (s *Service) LearnNewPattern(feedback []bias.Feedback) (*DiscoveredPattern, error) {
	if len(feedback) < minDiscoveryFeedback {
		return nil, fmt.Errorf("%w: need at least %d items, got %d",
			ErrInsufficientFeedback, minDiscoveryFeedback, len(feedback))
	}

	incorrect := make(map[bias.Type]int)
	for i := range feedback {
		f := &feedback[i]
		if f.Bias == nil || f.Correct {
			continue
		}
		incorrect[f.Bias.Type]++
	}

	for _, t := range bias.AllTypes() {
		if n := incorrect[t]; n >= minIncorrectForPattern {
			return &DiscoveredPattern{
				Type:            t,
				Frequency:       n,
				AverageSeverity: discoveredSeverity,
			}, nil
		}
	}
	return nil, nil
}

// PruneIneffectivePatterns decays the weight of every bias type whose
// feedback history is mostly wrong: types with an incorrect fraction
// above the prune threshold have their weight multiplied by the prune
// factor, floored at the weight minimum. Returns the decayed types.
func (s *Service) PruneIneffectivePatterns() []bias.Type {
	s.mu.Lock()
	defer s.mu.Unlock()

	type tally struct{ total, incorrect int }
	counts := make(map[bias.Type]*tally)
	for i := range s.history {
		f := &s.history[i]
		c, ok := counts[f.Bias.Type]
		if !ok {
			c = &tally{}
			counts[f.Bias.Type] = c
		}
		c.total++
		if !f.Correct {
			c.incorrect++
		}
	}

	var pruned []bias.Type
	for _, t := range bias.AllTypes() {
		c, ok := counts[t]
		if !ok || c.total == 0 {
			continue
		}
		fraction := float64(c.incorrect) / float64(c.total)
		if fraction <= s.cfg.PruneThreshold {
			continue
		}
		decayed := s.weights[t] * s.cfg.PruneFactor
		if decayed < s.cfg.WeightMin {
			decayed = s.cfg.WeightMin
		}
		s.weights[t] = decayed
		pruned = append(pruned, t)
	}

	if len(pruned) > 0 {
		names := make([]string, len(pruned))
		for i, t := range pruned {
			names[i] = string(t)
		}
		s.logger.Info("pruned ineffective detection weights", zap.Strings("types", names))
	}
	return pruned
}
