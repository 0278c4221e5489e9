package monitor

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/fyrsmithlabs/biaslens/internal/bias"
)

// FormatLatency formats a duration as "X.Xms" or "X.Xs"
func FormatLatency(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%.1fms", float64(d)/float64(time.Millisecond))
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}

// FormatPercentage formats a ratio (0-100) as "X.X%"
func FormatPercentage(pct float64) string {
	return fmt.Sprintf("%.1f%%", pct)
}

// FormatMetrics renders a metrics snapshot as a plain-text report.
func FormatMetrics(m Metrics) string {
	var b strings.Builder

	status := "running"
	if !m.Running {
		status = "stopped"
	}
	fmt.Fprintf(&b, "Monitoring [%s]\n", status)
	fmt.Fprintf(&b, "  Chains:     %d\n", m.TotalChains)
	fmt.Fprintf(&b, "  Biases:     %d\n", m.TotalBiases)
	fmt.Fprintf(&b, "  Alerts:     %d\n", m.TotalAlerts)
	fmt.Fprintf(&b, "  Mean time:  %s\n", FormatLatency(m.MeanProcessingTime))
	fmt.Fprintf(&b, "  Over budget: %d\n", m.BudgetExceeded)
	fmt.Fprintf(&b, "  Overhead:   %s\n", FormatPercentage(m.OverheadPercentage))

	if len(m.AlertsByPriority) > 0 {
		b.WriteString("  Alerts by priority:\n")
		for _, p := range []bias.AlertPriority{
			bias.PriorityCritical, bias.PriorityHigh, bias.PriorityMedium, bias.PriorityLow,
		} {
			if n, ok := m.AlertsByPriority[p]; ok {
				fmt.Fprintf(&b, "    %-8s %d\n", p, n)
			}
		}
	}

	if len(m.AlertsByType) > 0 {
		types := make([]string, 0, len(m.AlertsByType))
		for t := range m.AlertsByType {
			types = append(types, string(t))
		}
		sort.Strings(types)
		b.WriteString("  Alerts by type:\n")
		for _, t := range types {
			fmt.Fprintf(&b, "    %-18s %d\n", t, m.AlertsByType[bias.Type(t)])
		}
	}

	return b.String()
}

// FormatAlert renders one alert as a single line suitable for logs.
func FormatAlert(a bias.Alert) string {
	line := fmt.Sprintf("[%s] %s", strings.ToUpper(string(a.Priority)), a.Message)
	if a.Actionable {
		line += fmt.Sprintf(" (%d recommendations)", len(a.Recommendations))
	}
	return line
}
