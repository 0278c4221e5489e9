package correction

import (
	"errors"

	"github.com/fyrsmithlabs/biaslens/internal/bias"
)

// Common errors for correction operations.
var (
	// ErrNoStrategy is returned when no correction strategy is
	// registered for the detected bias type.
	ErrNoStrategy = errors.New("no correction strategy registered")

	ErrNilChain = errors.New("reasoning chain cannot be nil")
)

// ChangeType classifies a single correction change.
type ChangeType string

const (
	// ChangeEvidenceReweight marks relevance/reliability adjustments.
	ChangeEvidenceReweight ChangeType = "evidence_reweight"

	// ChangeAlternativeAdded marks an added alternative reasoning step.
	ChangeAlternativeAdded ChangeType = "alternative_added"

	// ChangeCounterArgument marks added counter-evidence or arguments.
	ChangeCounterArgument ChangeType = "counter_argument"

	// ChangeAssumptionChallenged marks a challenged assumption.
	ChangeAssumptionChallenged ChangeType = "assumption_challenged"
)

// ReasoningChange records one modification made by a strategy.
type ReasoningChange struct {
	// Type classifies the change.
	Type ChangeType `json:"type"`

	// Before is the relevant text prior to the change, empty for pure
	// additions.
	Before string `json:"before,omitempty"`

	// After is the added or modified text.
	After string `json:"after"`

	// Rationale explains why the change counters the bias.
	Rationale string `json:"rationale"`
}

// CorrectedReasoning wraps an original chain and its corrected copy,
// together with what was done and how effective it is estimated to be.
//
// Invariant: when CorrectionsApplied is non-empty, Corrected differs
// observably from Original (extra steps or evidence).
type CorrectedReasoning struct {
	// Original is the caller's chain, untouched.
	Original *bias.ReasoningChain `json:"original"`

	// Corrected is the cloned-and-annotated chain.
	Corrected *bias.ReasoningChain `json:"corrected"`

	// Strategy names the applied correction strategy.
	Strategy string `json:"strategy"`

	// CorrectionsApplied lists the individual changes.
	CorrectionsApplied []ReasoningChange `json:"corrections_applied"`

	// ImpactReduction estimates the fraction of the bias's effect
	// removed by this correction.
	ImpactReduction float64 `json:"impact_reduction"`

	// EffectivenessScore is the overall effectiveness. The engine
	// applies exactly one correction per call, so this equals
	// ImpactReduction; sequential application across multiple biases
	// is the caller's responsibility.
	EffectivenessScore float64 `json:"effectiveness_score"`
}

// AlternativePerspective is one devil's-advocate angle on a chain.
type AlternativePerspective struct {
	// Title names the perspective.
	Title string `json:"title"`

	// Description explains what is being questioned.
	Description string `json:"description"`

	// CounterArguments are the specific challenges raised.
	CounterArguments []string `json:"counter_arguments"`
}

// ValidationResult reports whether a correction holds up.
type ValidationResult struct {
	// Valid is false when any issue was found.
	Valid bool `json:"valid"`

	// Issues lists what failed.
	Issues []string `json:"issues,omitempty"`

	// OverallQuality is 1.0 minus a fixed penalty per issue,
	// floored at 0.
	OverallQuality float64 `json:"overall_quality"`
}
