package recognizer

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/fyrsmithlabs/biaslens/internal/bias"
	"github.com/fyrsmithlabs/biaslens/internal/config"
)

// structuralRule pairs a bias type with its chain detector. The table is
// evaluated in order by DetectBiases; each detector returns nil when its
// trigger conditions are not met.
type structuralRule struct {
	biasType bias.Type
	detect   func(*Recognizer, *bias.ReasoningChain) *bias.Detected
}

// Recognizer detects cognitive biases in reasoning chains and raw text.
//
// The recognizer is stateless after construction; any number of callers
// may invoke it concurrently without coordination.
type Recognizer struct {
	cfg    config.RecognizerConfig
	logger *zap.Logger

	rules     []structuralRule
	textRules []textRule

	// now is injectable for deterministic evidence-age tests.
	now func() time.Time
}

// Option configures a Recognizer.
type Option func(*Recognizer)

// WithClock overrides the time source used for evidence-age checks.
func WithClock(now func() time.Time) Option {
	return func(r *Recognizer) { r.now = now }
}

// New creates a Recognizer. A nil cfg uses the reference defaults; a nil
// logger is replaced with a no-op logger.
func New(cfg *config.RecognizerConfig, logger *zap.Logger, opts ...Option) *Recognizer {
	if cfg == nil {
		defaults := config.Default()
		cfg = &defaults.Recognizer
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	r := &Recognizer{
		cfg:       *cfg,
		logger:    logger,
		rules:     buildStructuralRules(),
		textRules: buildTextRules(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// buildStructuralRules returns the detector table in canonical order.
func buildStructuralRules() []structuralRule {
	return []structuralRule{
		{bias.Confirmation, (*Recognizer).detectConfirmation},
		{bias.Anchoring, (*Recognizer).detectAnchoring},
		{bias.Availability, (*Recognizer).detectAvailability},
		{bias.Recency, (*Recognizer).detectRecency},
		{bias.Representativeness, (*Recognizer).detectRepresentativeness},
		{bias.Framing, (*Recognizer).detectFraming},
		{bias.SunkCost, (*Recognizer).detectSunkCost},
		{bias.Attribution, (*Recognizer).detectAttribution},
		{bias.Bandwagon, (*Recognizer).detectBandwagon},
	}
}

// DetectBiases runs every structural detector over the chain and returns
// the non-nil results. A chain with neither steps nor evidence
// short-circuits to an empty list.
func (r *Recognizer) DetectBiases(chain *bias.ReasoningChain) []bias.Detected {
	if chain.Empty() {
		return []bias.Detected{}
	}

	detected := make([]bias.Detected, 0, len(r.rules))
	for _, rule := range r.rules {
		if d := rule.detect(r, chain); d != nil {
			detected = append(detected, *d)
		}
	}

	r.logger.Debug("structural detection completed",
		zap.String("chain_id", chain.ID),
		zap.Int("steps", len(chain.Steps)),
		zap.Int("detections", len(detected)))

	return detected
}

// DetectFromText applies the phrase/keyword library directly to
// unstructured text and returns one detection per matching category.
// Severity and confidence are nudged upward per corroborating match.
func (r *Recognizer) DetectFromText(text string) []bias.Detected {
	if strings.TrimSpace(text) == "" {
		return []bias.Detected{}
	}

	tokens := tokenize(text)
	now := r.now()

	var detected []bias.Detected
	for _, rule := range r.textRules {
		var signals []string
		for _, phrase := range rule.phrases {
			if containsAny(text, phrase) {
				signals = append(signals, fmt.Sprintf("phrase %q", phrase))
			}
		}
		for _, set := range rule.keywordSets {
			if allWordsPresent(tokens, set) {
				signals = append(signals, fmt.Sprintf("keywords %q", strings.Join(set, " ")))
			}
		}
		if len(signals) == 0 {
			continue
		}

		nudge := r.cfg.TextMatchNudge * float64(len(signals))
		detected = append(detected, bias.Detected{
			Type:       rule.biasType,
			Severity:   bias.Clamp01(rule.severity + nudge),
			Confidence: bias.Clamp01(rule.confidence + nudge),
			Evidence:   signals,
			Location: bias.Location{
				StepIndex: -1,
				Excerpt:   excerpt(text),
				Context:   "text",
			},
			Explanation: rule.explanation,
			DetectedAt:  now,
		})
	}

	if detected == nil {
		return []bias.Detected{}
	}
	return detected
}

// AssessSeverity combines a detection's severity, confidence and
// corroborating evidence count into one score in [0,1]. The evidence
// contribution is capped so long signal lists saturate rather than
// dominate.
func (r *Recognizer) AssessSeverity(d *bias.Detected) float64 {
	contribution := r.cfg.EvidenceWeight * float64(len(d.Evidence))
	if contribution > r.cfg.EvidenceCap {
		contribution = r.cfg.EvidenceCap
	}
	return bias.Clamp01(d.Severity*d.Confidence + contribution)
}

// detection assembles a Detected with the recognizer's clock.
func (r *Recognizer) detection(t bias.Type, severity, confidence float64, loc bias.Location, explanation string, evidence []string) *bias.Detected {
	return &bias.Detected{
		Type:        t,
		Severity:    severity,
		Confidence:  confidence,
		Evidence:    evidence,
		Location:    loc,
		Explanation: explanation,
		DetectedAt:  r.now(),
	}
}

// excerpt truncates text for use in a detection location.
func excerpt(text string) string {
	const max = 120
	text = strings.TrimSpace(text)
	if len(text) <= max {
		return text
	}
	return text[:max]
}
