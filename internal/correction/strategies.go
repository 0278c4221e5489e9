package correction

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/fyrsmithlabs/biaslens/internal/bias"
)

// syntheticRelevance is assigned to evidence items the strategies add.
// High enough to be weighed seriously, below certainty.
const syntheticRelevance = 0.8

// correctConfirmation appends a synthetic contradictory evidence item
// and an alternative-hypothesis step, challenging an assumption when
// one exists.
func (e *Engine) correctConfirmation(d *bias.Detected, clone *bias.ReasoningChain) []ReasoningChange {
	var changes []ReasoningChange

	contradictory := bias.Evidence{
		ID:        uuid.New().String(),
		Content:   fmt.Sprintf("Contradictory consideration: evidence against %q should be sought and weighed on merit", clone.Conclusion),
		Source:    "correction_engine",
		Relevance: bias.Float64Ptr(syntheticRelevance),
	}
	clone.Evidence = append(clone.Evidence, contradictory)
	changes = append(changes, ReasoningChange{
		Type:      ChangeCounterArgument,
		After:     contradictory.Content,
		Rationale: "Confirmation bias starves the chain of contradicting evidence; a placeholder forces it into view",
	})

	if len(clone.Assumptions) > 0 {
		challenged := clone.Assumptions[0]
		changes = append(changes, ReasoningChange{
			Type:      ChangeAssumptionChallenged,
			Before:    challenged,
			After:     fmt.Sprintf("Assumption %q may not hold; verify independently of the hypothesis", challenged),
			Rationale: "Hypothesis-driven reasoning tends to leave its assumptions untested",
		})
	}

	alt := e.appendStep(clone, bias.StepHypothesis,
		fmt.Sprintf("Alternative hypothesis: the available evidence may be equally consistent with the opposite of %q", clone.Conclusion))
	changes = append(changes, ReasoningChange{
		Type:      ChangeAlternativeAdded,
		After:     alt.Content,
		Rationale: "A live rival hypothesis forces evidence to discriminate rather than confirm",
	})

	return changes
}

// correctAnchoring appends an alternative-starting-point step.
func (e *Engine) correctAnchoring(d *bias.Detected, clone *bias.ReasoningChain) []ReasoningChange {
	step := e.appendStep(clone, bias.StepHypothesis,
		"Alternative starting point: re-derive the estimate from an independent reference class before reconciling with the initial figure")
	return []ReasoningChange{{
		Type:      ChangeAlternativeAdded,
		Before:    d.Location.Excerpt,
		After:     step.Content,
		Rationale: "A second independent anchor exposes how much the first one pulled the conclusion",
	}}
}

// correctAvailability appends a broader statistical-evidence item.
func (e *Engine) correctAvailability(d *bias.Detected, clone *bias.ReasoningChain) []ReasoningChange {
	broader := bias.Evidence{
		ID:        uuid.New().String(),
		Content:   "Broader statistical context: consult measured base rates for this event instead of recalled examples",
		Source:    "correction_engine",
		Relevance: bias.Float64Ptr(syntheticRelevance),
	}
	clone.Evidence = append(clone.Evidence, broader)
	return []ReasoningChange{{
		Type:      ChangeCounterArgument,
		Before:    d.Location.Excerpt,
		After:     broader.Content,
		Rationale: "Measured frequency replaces ease of recall as the likelihood signal",
	}}
}

// correctRecency appends a historical-evidence step.
func (e *Engine) correctRecency(d *bias.Detected, clone *bias.ReasoningChain) []ReasoningChange {
	step := e.appendStep(clone, bias.StepEvidence,
		"Historical context: weigh older evidence on the same relevance scale as recent evidence before discounting it")
	return []ReasoningChange{{
		Type:      ChangeAlternativeAdded,
		After:     step.Content,
		Rationale: "Age alone is not a relevance signal; the long-run record belongs in the chain",
	}}
}

// correctRepresentativeness appends a base-rate-reasoning step.
func (e *Engine) correctRepresentativeness(d *bias.Detected, clone *bias.ReasoningChain) []ReasoningChange {
	step := e.appendStep(clone, bias.StepInference,
		"Base-rate check: state how common this category is in the relevant population before judging by resemblance")
	return []ReasoningChange{{
		Type:      ChangeAlternativeAdded,
		Before:    d.Location.Excerpt,
		After:     step.Content,
		Rationale: "Resemblance to a typical case says nothing about frequency",
	}}
}

// correctFraming appends an alternate-framing step.
func (e *Engine) correctFraming(d *bias.Detected, clone *bias.ReasoningChain) []ReasoningChange {
	step := e.appendStep(clone, bias.StepInference,
		"Alternate framing: restate the outcome in the opposite frame and check whether the preference survives")
	return []ReasoningChange{{
		Type:      ChangeAlternativeAdded,
		Before:    d.Location.Excerpt,
		After:     step.Content,
		Rationale: "A preference that flips with the frame is about wording, not substance",
	}}
}

// correctSunkCost appends a future-value-focus step.
func (e *Engine) correctSunkCost(d *bias.Detected, clone *bias.ReasoningChain) []ReasoningChange {
	step := e.appendStep(clone, bias.StepInference,
		"Future value focus: compare expected value of continuing against the best alternative use of remaining resources, ignoring what is already spent")
	return []ReasoningChange{{
		Type:      ChangeAlternativeAdded,
		Before:    d.Location.Excerpt,
		After:     step.Content,
		Rationale: "Past investment is identical across all options and cannot discriminate between them",
	}}
}

// correctAttribution appends a situational-factors step.
func (e *Engine) correctAttribution(d *bias.Detected, clone *bias.ReasoningChain) []ReasoningChange {
	step := e.appendStep(clone, bias.StepInference,
		"Situational factors: list the circumstances that could have produced this behavior before any character explanation")
	return []ReasoningChange{{
		Type:      ChangeAlternativeAdded,
		Before:    d.Location.Excerpt,
		After:     step.Content,
		Rationale: "Symmetric explanation standards for self and others remove the attribution asymmetry",
	}}
}

// appendStep adds a generated step to the clone and returns it.
func (e *Engine) appendStep(clone *bias.ReasoningChain, kind bias.StepKind, content string) bias.ReasoningStep {
	step := bias.ReasoningStep{
		ID:      uuid.New().String(),
		Content: content,
		Kind:    kind,
	}
	clone.Steps = append(clone.Steps, step)
	return step
}
