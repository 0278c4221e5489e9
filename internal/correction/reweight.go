package correction

import (
	"strings"
	"time"

	"github.com/fyrsmithlabs/biaslens/internal/bias"
)

// containsFold is a case-insensitive substring check.
func containsFold(text, sub string) bool {
	return strings.Contains(strings.ToLower(text), sub)
}

// reweightBoost is added to the relevance and reliability of targeted
// evidence items, clamped to 1.0.
const reweightBoost = 0.2

// memorableAge separates recent (memorable) evidence from older
// material during availability reweighting.
const memorableAge = 7 * 24 * time.Hour

// ReweightEvidence returns a copy of the evidence list with targeted
// items boosted to counter the given bias:
//
//   - confirmation: contradictory-labeled items gain relevance and
//     reliability, so dismissed counter-evidence gets weighed.
//   - availability: non-recent and non-anecdotal items gain weight, so
//     measured data competes with memorable examples.
//
// Non-targeted items and all other fields are returned unchanged, and
// the list length is always preserved. Biases without a reweighting
// rule return an unmodified copy.
func (e *Engine) ReweightEvidence(evidence []bias.Evidence, d *bias.Detected) []bias.Evidence {
	out := make([]bias.Evidence, len(evidence))
	now := time.Now()

	for i := range evidence {
		item := evidence[i]
		if e.isReweightTarget(&item, d, now) {
			item = boost(item)
		}
		out[i] = item
	}
	return out
}

func (e *Engine) isReweightTarget(item *bias.Evidence, d *bias.Detected, now time.Time) bool {
	switch d.Type {
	case bias.Confirmation:
		return containsFold(item.Content, "contradict") || containsFold(item.Content, "against")
	case bias.Availability:
		if age, ok := item.AgeAt(now); ok && age >= memorableAge {
			return true
		}
		return containsFold(item.Content, "statistic") ||
			containsFold(item.Content, "base rate") ||
			containsFold(item.Content, "study")
	default:
		return false
	}
}

// boost raises relevance and reliability by reweightBoost, clamped.
// Unset scores are treated as the neutral 0.5 before boosting.
func boost(item bias.Evidence) bias.Evidence {
	item.Relevance = bias.Float64Ptr(bias.Clamp01(item.RelevanceOr(0.5) + reweightBoost))
	item.Reliability = bias.Float64Ptr(bias.Clamp01(item.ReliabilityOr(0.5) + reweightBoost))
	return item
}
