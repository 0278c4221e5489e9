package monitor

import (
	"context"
	"fmt"
	"sort"

	"github.com/fyrsmithlabs/biaslens/internal/bias"
	"github.com/fyrsmithlabs/biaslens/internal/corrector"
)

// excerptPrefixLen bounds the location text folded into an alert id,
// so minor excerpt differences deep in a step do not defeat
// deduplication.
const excerptPrefixLen = 20

// GenerateAlerts builds alerts from the cached detections for a chain.
// It is pull-based: a chain never passed to Monitor (or monitored
// without an id) yields no alerts. Detections below the alert threshold
// are skipped, each alert id is emitted at most once for the life of
// the service, and recommendations are attached only above the
// recommendation threshold. The result is sorted most urgent first.
func (s *Service) GenerateAlerts(ctx context.Context, chain *bias.ReasoningChain) []bias.Alert {
	if chain == nil || chain.ID == "" {
		return []bias.Alert{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	detections := s.results[chain.ID]
	alerts := make([]bias.Alert, 0, len(detections))

	for _, d := range detections {
		if d.Severity < s.cfg.AlertThreshold {
			continue
		}

		id := alertID(chain.ID, &d)
		if s.emitted[id] {
			continue
		}
		s.emitted[id] = true

		priority := s.priorityFor(d.Severity)
		alert := bias.Alert{
			ID:       id,
			Bias:     d,
			Severity: d.Severity,
			Priority: priority,
			Message: fmt.Sprintf("%s bias detected in chain %s (severity %.2f)",
				d.Type, chain.ID, d.Severity),
		}
		if d.Severity >= s.cfg.RecommendThreshold {
			alert.Recommendations = corrector.GetSuggestion(d.Type).Techniques
			alert.Actionable = len(alert.Recommendations) > 0
		}

		alerts = append(alerts, alert)
		s.totalAlerts++
		s.alertsByType[d.Type]++
		s.alertsByPriority[priority]++
	}

	sort.SliceStable(alerts, func(i, j int) bool {
		return alerts[i].Priority.Rank() > alerts[j].Priority.Rank()
	})

	if s.alertsCounter != nil && len(alerts) > 0 {
		s.alertsCounter.Add(ctx, int64(len(alerts)))
	}
	return alerts
}

// priorityFor buckets a severity into an alert priority.
func (s *Service) priorityFor(severity float64) bias.AlertPriority {
	switch {
	case severity >= s.cfg.CriticalSeverity:
		return bias.PriorityCritical
	case severity >= s.cfg.HighSeverity:
		return bias.PriorityHigh
	case severity >= s.cfg.MediumSeverity:
		return bias.PriorityMedium
	default:
		return bias.PriorityLow
	}
}

// alertID builds a deterministic id from the chain, bias type and
// detection site, so the same finding never alerts twice.
func alertID(chainID string, d *bias.Detected) string {
	excerpt := d.Location.Excerpt
	if len(excerpt) > excerptPrefixLen {
		excerpt = excerpt[:excerptPrefixLen]
	}
	return fmt.Sprintf("%s:%s:%d:%s", chainID, d.Type, d.Location.StepIndex, excerpt)
}
