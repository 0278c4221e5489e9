package monitor

import (
	"time"

	"github.com/fyrsmithlabs/biaslens/internal/bias"
)

// Metrics is a point-in-time snapshot of monitoring activity.
type Metrics struct {
	// TotalChains is the number of chains processed.
	TotalChains int64 `json:"total_chains"`

	// TotalBiases is the number of detections across all chains.
	TotalBiases int64 `json:"total_biases"`

	// TotalAlerts is the number of alerts emitted.
	TotalAlerts int64 `json:"total_alerts"`

	// MeanProcessingTime averages the rolling timing window.
	MeanProcessingTime time.Duration `json:"mean_processing_time"`

	// BudgetExceeded counts windowed-or-not samples over the soft time
	// budget.
	BudgetExceeded int64 `json:"budget_exceeded"`

	// AlertsByType counts emitted alerts per bias type.
	AlertsByType map[bias.Type]int64 `json:"alerts_by_type"`

	// AlertsByPriority counts emitted alerts per priority bucket.
	AlertsByPriority map[bias.AlertPriority]int64 `json:"alerts_by_priority"`

	// OverheadPercentage estimates monitoring's own share of measured
	// time. It is a configured heuristic, not an instrumented value.
	OverheadPercentage float64 `json:"overhead_percentage"`

	// Running reports whether the service still accepts chains.
	Running bool `json:"running"`
}

// Metrics returns a snapshot of monitoring activity. The maps are
// copies; mutating them does not affect the service.
func (s *Service) Metrics() Metrics {
	s.mu.Lock()
	defer s.mu.Unlock()

	var mean time.Duration
	if len(s.samples) > 0 {
		var total time.Duration
		for _, sample := range s.samples {
			total += sample
		}
		mean = total / time.Duration(len(s.samples))
	}

	byType := make(map[bias.Type]int64, len(s.alertsByType))
	for t, n := range s.alertsByType {
		byType[t] = n
	}
	byPriority := make(map[bias.AlertPriority]int64, len(s.alertsByPriority))
	for p, n := range s.alertsByPriority {
		byPriority[p] = n
	}

	return Metrics{
		TotalChains:        s.totalChains,
		TotalBiases:        s.totalBiases,
		TotalAlerts:        s.totalAlerts,
		MeanProcessingTime: mean,
		BudgetExceeded:     s.budgetExceeded,
		AlertsByType:       byType,
		AlertsByPriority:   byPriority,
		OverheadPercentage: s.cfg.OverheadFactor * 100,
		Running:            !s.stopped,
	}
}
