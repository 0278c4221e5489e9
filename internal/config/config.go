// Package config provides configuration loading for the biaslens core.
//
// Every severity, confidence and adjustment constant used by the pipeline
// is exposed here with the reference defaults, so deployments can tune
// detection strictness without code changes. Values are loaded from an
// optional YAML file and overridden by BIASLENS_-prefixed environment
// variables.
package config

import (
	"fmt"
	"time"
)

// Config is the root configuration for the bias-analysis pipeline.
type Config struct {
	Recognizer RecognizerConfig `koanf:"recognizer"`
	Correction CorrectionConfig `koanf:"correction"`
	Learning   LearningConfig   `koanf:"learning"`
	Monitor    MonitorConfig    `koanf:"monitor"`
	Logging    LoggingConfig    `koanf:"logging"`
}

// DetectorParams holds the tunable scores for one structural detector.
// Primary values apply to the detector's main trigger; Alt values apply
// to its weaker secondary trigger where one exists.
type DetectorParams struct {
	Severity      float64 `koanf:"severity"`
	Confidence    float64 `koanf:"confidence"`
	AltSeverity   float64 `koanf:"alt_severity"`
	AltConfidence float64 `koanf:"alt_confidence"`
}

// RecognizerConfig configures the pattern recognizer.
type RecognizerConfig struct {
	// Detectors maps bias type name to its score parameters.
	Detectors map[string]DetectorParams `koanf:"detectors"`

	// TextMatchNudge is added to text-detection severity and confidence
	// per corroborating match (capped by clamping to 1.0).
	TextMatchNudge float64 `koanf:"text_match_nudge"`

	// EvidenceWeight is the per-item severity contribution in
	// AssessSeverity.
	EvidenceWeight float64 `koanf:"evidence_weight"`

	// EvidenceCap bounds the total evidence contribution in
	// AssessSeverity.
	EvidenceCap float64 `koanf:"evidence_cap"`

	// SupportingRelevance is the relevance threshold above which
	// evidence counts as supporting.
	SupportingRelevance float64 `koanf:"supporting_relevance"`

	// ContradictoryRelevance is the relevance threshold below which
	// evidence counts as contradictory.
	ContradictoryRelevance float64 `koanf:"contradictory_relevance"`

	// RecentEvidenceAge separates recent from historical evidence.
	RecentEvidenceAge time.Duration `koanf:"recent_evidence_age"`
}

// CorrectionConfig configures the correction engine.
type CorrectionConfig struct {
	// ImpactReduction maps bias type name to the estimated fraction by
	// which its strategy reduces the bias's effect.
	ImpactReduction map[string]float64 `koanf:"impact_reduction"`

	// MinEffectiveness is the validation floor for a correction's
	// effectiveness score.
	MinEffectiveness float64 `koanf:"min_effectiveness"`

	// QualityPenalty is subtracted from overall quality per validation
	// issue.
	QualityPenalty float64 `koanf:"quality_penalty"`

	// LowStepConfidence flags steps below this confidence as weaknesses
	// during devil's-advocate analysis.
	LowStepConfidence float64 `koanf:"low_step_confidence"`
}

// LearningConfig configures the feedback learning loop.
type LearningConfig struct {
	// WeightStep is the per-feedback weight nudge.
	WeightStep float64 `koanf:"weight_step"`

	// WeightMin and WeightMax bound per-type pattern weights.
	WeightMin float64 `koanf:"weight_min"`
	WeightMax float64 `koanf:"weight_max"`

	// DirectBoost and DirectPenalty are the adjustments applied by the
	// direct (non-incremental) weight updater.
	DirectBoost   float64 `koanf:"direct_boost"`
	DirectPenalty float64 `koanf:"direct_penalty"`

	// DirectHighAccuracy and DirectLowAccuracy are the accuracy bounds
	// that trigger the direct adjustments.
	DirectHighAccuracy float64 `koanf:"direct_high_accuracy"`
	DirectLowAccuracy  float64 `koanf:"direct_low_accuracy"`

	// SensitivityStep is the per-adjustment sensitivity change.
	SensitivityStep float64 `koanf:"sensitivity_step"`

	// SensitivityHighAccuracy raises sensitivity above it;
	// SensitivityLowAccuracy lowers it below it.
	SensitivityHighAccuracy float64 `koanf:"sensitivity_high_accuracy"`
	SensitivityLowAccuracy  float64 `koanf:"sensitivity_low_accuracy"`

	// MinFeedbackForSensitivity is the per-user-per-type feedback count
	// required before sensitivity adjusts.
	MinFeedbackForSensitivity int `koanf:"min_feedback_for_sensitivity"`

	// PruneThreshold is the incorrect fraction above which a type's
	// weight is decayed; PruneFactor is the decay multiplier.
	PruneThreshold float64 `koanf:"prune_threshold"`
	PruneFactor    float64 `koanf:"prune_factor"`

	// MinHistoryForImprovement is the feedback count required before an
	// improvement rate is reported.
	MinHistoryForImprovement int `koanf:"min_history_for_improvement"`
}

// MonitorConfig configures continuous monitoring and alerting.
type MonitorConfig struct {
	// AlertThreshold is the minimum severity that produces an alert.
	AlertThreshold float64 `koanf:"alert_threshold"`

	// RecommendThreshold is the minimum severity at which alerts carry
	// recommendations.
	RecommendThreshold float64 `koanf:"recommend_threshold"`

	// Critical/High/MediumSeverity bucket alert priority.
	CriticalSeverity float64 `koanf:"critical_severity"`
	HighSeverity     float64 `koanf:"high_severity"`
	MediumSeverity   float64 `koanf:"medium_severity"`

	// WindowSize is the processing-time rolling window length.
	WindowSize int `koanf:"window_size"`

	// SoftTimeBudget is recorded for telemetry when exceeded. It never
	// aborts in-flight detection.
	SoftTimeBudget time.Duration `koanf:"soft_time_budget"`

	// OverheadFactor is the assumed fraction of measured time spent in
	// monitoring itself, used for the self-reported overhead estimate.
	OverheadFactor float64 `koanf:"overhead_factor"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level       string `koanf:"level"`
	Format      string `koanf:"format"`
	Development bool   `koanf:"development"`
}

// Default returns the reference configuration. The detector and impact
// values have no stated derivation beyond behavioral parity with the
// canonical rule set, which is why they live here rather than in
// control flow.
func Default() *Config {
	return &Config{
		Recognizer: RecognizerConfig{
			Detectors: map[string]DetectorParams{
				"confirmation":       {Severity: 0.7, Confidence: 0.75, AltSeverity: 0.6, AltConfidence: 0.75},
				"anchoring":          {Severity: 0.7, Confidence: 0.8, AltSeverity: 0.6, AltConfidence: 0.7},
				"availability":       {Severity: 0.65, Confidence: 0.7, AltSeverity: 0.65, AltConfidence: 0.7},
				"recency":            {Severity: 0.65, Confidence: 0.7, AltSeverity: 0.6, AltConfidence: 0.75},
				"representativeness": {Severity: 0.65, Confidence: 0.7, AltSeverity: 0.7, AltConfidence: 0.75},
				"framing":            {Severity: 0.6, Confidence: 0.7, AltSeverity: 0.6, AltConfidence: 0.7},
				"sunk_cost":          {Severity: 0.7, Confidence: 0.75, AltSeverity: 0.65, AltConfidence: 0.7},
				"attribution":        {Severity: 0.65, Confidence: 0.7, AltSeverity: 0.65, AltConfidence: 0.7},
				"bandwagon":          {Severity: 0.65, Confidence: 0.75, AltSeverity: 0.55, AltConfidence: 0.65},
			},
			TextMatchNudge:         0.05,
			EvidenceWeight:         0.1,
			EvidenceCap:            0.3,
			SupportingRelevance:    0.7,
			ContradictoryRelevance: 0.3,
			RecentEvidenceAge:      7 * 24 * time.Hour,
		},
		Correction: CorrectionConfig{
			ImpactReduction: map[string]float64{
				"confirmation":       0.5,
				"anchoring":          0.45,
				"availability":       0.48,
				"recency":            0.42,
				"representativeness": 0.46,
				"framing":            0.44,
				"sunk_cost":          0.5,
				"attribution":        0.43,
			},
			MinEffectiveness:  0.4,
			QualityPenalty:    0.2,
			LowStepConfidence: 0.5,
		},
		Learning: LearningConfig{
			WeightStep:                0.1,
			WeightMin:                 0.1,
			WeightMax:                 2.0,
			DirectBoost:               0.1,
			DirectPenalty:             0.15,
			DirectHighAccuracy:        0.8,
			DirectLowAccuracy:         0.6,
			SensitivityStep:           0.05,
			SensitivityHighAccuracy:   0.8,
			SensitivityLowAccuracy:    0.5,
			MinFeedbackForSensitivity: 3,
			PruneThreshold:            0.3,
			PruneFactor:               0.8,
			MinHistoryForImprovement:  10,
		},
		Monitor: MonitorConfig{
			AlertThreshold:     0.5,
			RecommendThreshold: 0.6,
			CriticalSeverity:   0.8,
			HighSeverity:       0.6,
			MediumSeverity:     0.4,
			WindowSize:         100,
			SoftTimeBudget:     100 * time.Millisecond,
			OverheadFactor:     0.1,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Validate checks the configuration for internally consistent values.
func (c *Config) Validate() error {
	for name, p := range c.Recognizer.Detectors {
		if !inUnit(p.Severity) || !inUnit(p.Confidence) ||
			!inUnit(p.AltSeverity) || !inUnit(p.AltConfidence) {
			return fmt.Errorf("recognizer.detectors.%s: scores must be in [0,1]", name)
		}
	}
	if !inUnit(c.Recognizer.TextMatchNudge) {
		return fmt.Errorf("recognizer.text_match_nudge must be in [0,1]")
	}
	if c.Recognizer.SupportingRelevance <= c.Recognizer.ContradictoryRelevance {
		return fmt.Errorf("recognizer.supporting_relevance must exceed contradictory_relevance")
	}
	for name, v := range c.Correction.ImpactReduction {
		if !inUnit(v) {
			return fmt.Errorf("correction.impact_reduction.%s must be in [0,1]", name)
		}
	}
	if c.Learning.WeightMin <= 0 || c.Learning.WeightMax <= c.Learning.WeightMin {
		return fmt.Errorf("learning: weight bounds must satisfy 0 < min < max")
	}
	if c.Learning.MinFeedbackForSensitivity < 1 {
		return fmt.Errorf("learning.min_feedback_for_sensitivity must be >= 1")
	}
	if c.Monitor.WindowSize < 1 {
		return fmt.Errorf("monitor.window_size must be >= 1")
	}
	if !(c.Monitor.MediumSeverity < c.Monitor.HighSeverity &&
		c.Monitor.HighSeverity < c.Monitor.CriticalSeverity) {
		return fmt.Errorf("monitor: severity buckets must be strictly increasing")
	}
	switch c.Logging.Format {
	case "json", "console", "":
	default:
		return fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format)
	}
	return nil
}

func inUnit(v float64) bool { return v >= 0 && v <= 1 }

// Params returns the detector parameters for the named bias type,
// falling back to the reference defaults for unknown names.
func (rc *RecognizerConfig) Params(name string) DetectorParams {
	if p, ok := rc.Detectors[name]; ok {
		return p
	}
	return Default().Recognizer.Detectors[name]
}

// Reduction returns the impact reduction for the named bias type and
// whether a strategy value is registered for it.
func (cc *CorrectionConfig) Reduction(name string) (float64, bool) {
	v, ok := cc.ImpactReduction[name]
	return v, ok
}
