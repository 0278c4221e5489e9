package learning

import (
	"time"

	"github.com/fyrsmithlabs/biaslens/internal/bias"
)

// Period selects the window for improvement-rate computation.
type Period string

const (
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodAll   Period = "all"
)

// AccuracyReport summarizes detection accuracy from feedback. Feedback
// only ever judges detections that were made, so true and false
// negatives are structurally zero and recall always equals precision.
// Callers that need real recall must supply negative-detection signals
// through a different contract.
type AccuracyReport struct {
	TruePositives  int     `json:"true_positives"`
	FalsePositives int     `json:"false_positives"`
	TrueNegatives  int     `json:"true_negatives"`
	FalseNegatives int     `json:"false_negatives"`
	Precision      float64 `json:"precision"`
	Recall         float64 `json:"recall"`
	F1             float64 `json:"f1"`
}

// Metrics is a point-in-time snapshot of the learning state.
type Metrics struct {
	// TotalFeedback is the feedback history length.
	TotalFeedback int `json:"total_feedback"`

	// Weights is a copy of the per-type weight map.
	Weights map[bias.Type]float64 `json:"weights"`

	// Profiles is the number of users with a learned profile.
	Profiles int `json:"profiles"`

	// Accuracy covers the whole history.
	Accuracy AccuracyReport `json:"accuracy"`
}

// AccuracyMetrics computes precision/recall/F1 over the feedback
// history, optionally filtered to the given bias types. Correct
// judgments count as true positives, incorrect as false positives.
func (s *Service) AccuracyMetrics(types ...bias.Type) AccuracyReport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accuracyLocked(types...)
}

func (s *Service) accuracyLocked(types ...bias.Type) AccuracyReport {
	include := func(t bias.Type) bool {
		if len(types) == 0 {
			return true
		}
		for _, want := range types {
			if t == want {
				return true
			}
		}
		return false
	}

	var report AccuracyReport
	for i := range s.history {
		f := &s.history[i]
		if !include(f.Bias.Type) {
			continue
		}
		if f.Correct {
			report.TruePositives++
		} else {
			report.FalsePositives++
		}
	}

	total := report.TruePositives + report.FalsePositives
	if total > 0 {
		report.Precision = float64(report.TruePositives) / float64(total)
		report.Recall = report.Precision
	}
	if report.Precision+report.Recall > 0 {
		report.F1 = 2 * report.Precision * report.Recall / (report.Precision + report.Recall)
	}
	return report
}

// ImprovementRate reports how much detection accuracy improved within
// the period: feedback is split at a cutoff (now minus the period, or
// the median timestamp for PeriodAll) and the result is
// max(0, recentAccuracy - earlyAccuracy). Returns 0 when the history is
// shorter than the configured minimum or either side of the split is
// empty.
func (s *Service) ImprovementRate(period Period) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.history) < s.cfg.MinHistoryForImprovement {
		return 0
	}

	cutoff := s.cutoffLocked(period)

	var earlyTotal, earlyCorrect, recentTotal, recentCorrect int
	for i := range s.history {
		f := &s.history[i]
		if f.Timestamp.Before(cutoff) {
			earlyTotal++
			if f.Correct {
				earlyCorrect++
			}
		} else {
			recentTotal++
			if f.Correct {
				recentCorrect++
			}
		}
	}
	if earlyTotal == 0 || recentTotal == 0 {
		return 0
	}

	early := float64(earlyCorrect) / float64(earlyTotal)
	recent := float64(recentCorrect) / float64(recentTotal)
	if recent <= early {
		return 0
	}
	return recent - early
}

func (s *Service) cutoffLocked(period Period) time.Time {
	now := s.now()
	switch period {
	case PeriodDay:
		return now.Add(-24 * time.Hour)
	case PeriodWeek:
		return now.Add(-7 * 24 * time.Hour)
	case PeriodMonth:
		return now.Add(-30 * 24 * time.Hour)
	default:
		// Median timestamp splits the whole history into halves.
		return s.history[len(s.history)/2].Timestamp
	}
}

// Metrics returns a snapshot of the learning state.
func (s *Service) Metrics() Metrics {
	s.mu.Lock()
	defer s.mu.Unlock()

	weights := make(map[bias.Type]float64, len(s.weights))
	for t, w := range s.weights {
		weights[t] = w
	}
	return Metrics{
		TotalFeedback: len(s.history),
		Weights:       weights,
		Profiles:      len(s.profiles),
		Accuracy:      s.accuracyLocked(),
	}
}
