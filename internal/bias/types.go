package bias

import (
	"errors"
	"time"
)

// Common errors for bias domain values.
var (
	ErrNilBias        = errors.New("detected bias cannot be nil")
	ErrEmptyUserID    = errors.New("user ID cannot be empty")
	ErrUnknownType    = errors.New("unknown bias type")
	ErrEmptyChainID   = errors.New("chain ID cannot be empty")
	ErrZeroTimestamp  = errors.New("timestamp cannot be zero")
	ErrInvalidPercent = errors.New("value must be between 0.0 and 1.0")
)

// Type identifies one of the nine canonical cognitive-bias categories.
type Type string

const (
	// Confirmation is the tendency to favor evidence supporting an
	// existing hypothesis while ignoring contradicting evidence.
	Confirmation Type = "confirmation"

	// Anchoring is over-reliance on the first value encountered.
	Anchoring Type = "anchoring"

	// Availability is overweighting recent or easily recalled examples.
	Availability Type = "availability"

	// Recency is dismissing older information as no longer relevant.
	Recency Type = "recency"

	// Representativeness is judging by resemblance to a stereotype
	// while neglecting base rates.
	Representativeness Type = "representativeness"

	// Framing is sensitivity to how equivalent options are phrased.
	Framing Type = "framing"

	// SunkCost is continuing a course because of past investment.
	SunkCost Type = "sunk_cost"

	// Attribution is crediting others' failures to character and one's
	// own to circumstance.
	Attribution Type = "attribution"

	// Bandwagon is adopting a position because of its popularity.
	Bandwagon Type = "bandwagon"
)

// AllTypes lists every bias type in a stable order.
func AllTypes() []Type {
	return []Type{
		Confirmation,
		Anchoring,
		Availability,
		Recency,
		Representativeness,
		Framing,
		SunkCost,
		Attribution,
		Bandwagon,
	}
}

// Valid reports whether t is one of the nine known bias types.
func (t Type) Valid() bool {
	switch t {
	case Confirmation, Anchoring, Availability, Recency,
		Representativeness, Framing, SunkCost, Attribution, Bandwagon:
		return true
	}
	return false
}

// StepKind classifies a reasoning step.
type StepKind string

const (
	StepHypothesis StepKind = "hypothesis"
	StepEvidence   StepKind = "evidence"
	StepInference  StepKind = "inference"
	StepConclusion StepKind = "conclusion"
	StepAssumption StepKind = "assumption"
)

// ReasoningStep is a single step in a reasoning chain.
type ReasoningStep struct {
	// ID is the caller-assigned step identifier.
	ID string `json:"id"`

	// Content is the step text.
	Content string `json:"content"`

	// Kind classifies the step.
	Kind StepKind `json:"kind"`

	// Confidence is an optional caller-supplied certainty in [0,1].
	Confidence *float64 `json:"confidence,omitempty"`
}

// Evidence is a piece of supporting or contradicting material attached
// to a reasoning chain.
type Evidence struct {
	// ID is the caller-assigned evidence identifier.
	ID string `json:"id"`

	// Content is the evidence text.
	Content string `json:"content"`

	// Source describes where the evidence came from.
	Source string `json:"source,omitempty"`

	// Reliability is an optional trust score in [0,1].
	Reliability *float64 `json:"reliability,omitempty"`

	// Relevance is an optional topical fit score in [0,1].
	Relevance *float64 `json:"relevance,omitempty"`

	// Timestamp is when the evidence was gathered, if known.
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

// ReasoningChain is the structured artifact the detectors and correctors
// operate on. The caller owns it; the core only reads it.
type ReasoningChain struct {
	// ID identifies the chain. Chains without an ID can still be
	// analyzed, but monitoring cannot cache or alert on them.
	ID string `json:"id"`

	// Steps is the ordered list of reasoning steps.
	Steps []ReasoningStep `json:"steps"`

	// Branches holds ids of alternative chains explored from this one.
	Branches []string `json:"branches,omitempty"`

	// Assumptions are explicit unproven premises.
	Assumptions []string `json:"assumptions,omitempty"`

	// Inferences are derived intermediate statements.
	Inferences []string `json:"inferences,omitempty"`

	// Evidence is the supporting material.
	Evidence []Evidence `json:"evidence,omitempty"`

	// Conclusion is the chain's final statement.
	Conclusion string `json:"conclusion"`

	// Confidence is an optional overall certainty in [0,1].
	Confidence *float64 `json:"confidence,omitempty"`
}

// Location pinpoints where in a chain a bias was detected.
type Location struct {
	// StepIndex is the index of the triggering step, or -1 when the
	// bias was detected from evidence or the conclusion.
	StepIndex int `json:"step_index"`

	// Excerpt is the reasoning text that triggered detection.
	Excerpt string `json:"excerpt"`

	// Context optionally names the surrounding structure
	// (e.g. "conclusion", "evidence").
	Context string `json:"context,omitempty"`
}

// Detected is a single bias detection result. Detections are ephemeral:
// created per call, returned to the caller, never persisted by the core.
type Detected struct {
	// Type is the detected bias category.
	Type Type `json:"type"`

	// Severity estimates how strongly the bias distorts the reasoning,
	// in [0,1].
	Severity float64 `json:"severity"`

	// Confidence is the detector's certainty in [0,1], independent of
	// severity.
	Confidence float64 `json:"confidence"`

	// Evidence lists the textual signals that triggered detection.
	Evidence []string `json:"evidence,omitempty"`

	// Location pinpoints the detection site.
	Location Location `json:"location"`

	// Explanation is a human-readable account of the detection.
	Explanation string `json:"explanation"`

	// DetectedAt is when the detection was made.
	DetectedAt time.Time `json:"detected_at"`
}

// Feedback is a caller judgment on a previous detection.
type Feedback struct {
	// Bias is the detection being judged.
	Bias *Detected `json:"bias"`

	// Correct reports whether the detection was judged accurate.
	Correct bool `json:"correct"`

	// UserID identifies who gave the judgment.
	UserID string `json:"user_id"`

	// Timestamp is when the judgment was made.
	Timestamp time.Time `json:"timestamp"`
}

// Validate checks the feedback has everything the learning loop needs.
func (f *Feedback) Validate() error {
	if f.Bias == nil {
		return ErrNilBias
	}
	if !f.Bias.Type.Valid() {
		return ErrUnknownType
	}
	if f.UserID == "" {
		return ErrEmptyUserID
	}
	if f.Timestamp.IsZero() {
		return ErrZeroTimestamp
	}
	return nil
}

// SensitivityProfile holds a user's per-type detection strictness,
// learned from feedback. Created lazily on first adjustment.
type SensitivityProfile struct {
	// UserID identifies the profile owner.
	UserID string `json:"user_id"`

	// Sensitivity maps bias type to strictness in [0,1].
	Sensitivity map[Type]float64 `json:"sensitivity"`

	// UpdatedAt is when the profile last changed.
	UpdatedAt time.Time `json:"updated_at"`
}

// DefaultSensitivity is the starting strictness for a new profile entry.
const DefaultSensitivity = 0.5

// AlertPriority buckets alert urgency.
type AlertPriority string

const (
	PriorityLow      AlertPriority = "low"
	PriorityMedium   AlertPriority = "medium"
	PriorityHigh     AlertPriority = "high"
	PriorityCritical AlertPriority = "critical"
)

// rank orders priorities for sorting; higher is more urgent.
func (p AlertPriority) Rank() int {
	switch p {
	case PriorityCritical:
		return 3
	case PriorityHigh:
		return 2
	case PriorityMedium:
		return 1
	default:
		return 0
	}
}

// Alert is a deduplicated monitoring alert for a detected bias.
type Alert struct {
	// ID is a deterministic function of chain id, bias type and
	// location. Once emitted for a chain it is never re-emitted.
	ID string `json:"id"`

	// Bias is the detection that produced the alert.
	Bias Detected `json:"bias"`

	// Severity mirrors the detection severity.
	Severity float64 `json:"severity"`

	// Priority buckets the severity.
	Priority AlertPriority `json:"priority"`

	// Message is a short human-readable summary.
	Message string `json:"message"`

	// Actionable reports whether recommendations are attached.
	Actionable bool `json:"actionable"`

	// Recommendations are type-specific next steps, present only for
	// severity >= 0.6 detections.
	Recommendations []string `json:"recommendations,omitempty"`
}

// Clamp01 clamps v to [0,1].
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// ClampRange clamps v to [lo, hi].
func ClampRange(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Float64Ptr returns a pointer to v. Convenience for optional scores.
func Float64Ptr(v float64) *float64 { return &v }
