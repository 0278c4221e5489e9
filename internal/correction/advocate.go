package correction

import (
	"fmt"

	"github.com/fyrsmithlabs/biaslens/internal/bias"
)

// ApplyDevilsAdvocate builds alternative perspectives against a chain:
// counter-arguments to its conclusion, one challenge per explicit
// assumption, and a bundle of detected structural weaknesses. It never
// modifies the chain.
func (e *Engine) ApplyDevilsAdvocate(chain *bias.ReasoningChain) ([]AlternativePerspective, error) {
	if chain == nil {
		return nil, ErrNilChain
	}

	perspectives := []AlternativePerspective{{
		Title:            "Counter-arguments to the conclusion",
		Description:      fmt.Sprintf("Challenges to %q", chain.Conclusion),
		CounterArguments: generateCounterArguments(chain),
	}}

	for _, assumption := range chain.Assumptions {
		perspectives = append(perspectives, AlternativePerspective{
			Title:       "Challenged assumption",
			Description: assumption,
			CounterArguments: []string{
				fmt.Sprintf("What if this assumption is false: %q - which steps still hold?", assumption),
			},
		})
	}

	if weaknesses := detectWeaknesses(chain, e.cfg.LowStepConfidence); len(weaknesses) > 0 {
		perspectives = append(perspectives, AlternativePerspective{
			Title:            "Structural weaknesses",
			Description:      "Gaps in the reasoning structure itself",
			CounterArguments: weaknesses,
		})
	}

	return perspectives, nil
}

// generateCounterArguments produces challenges against the chain's main
// conclusion.
func generateCounterArguments(chain *bias.ReasoningChain) []string {
	conclusion := chain.Conclusion
	args := []string{
		fmt.Sprintf("The opposite of %q may be true; what evidence rules it out?", conclusion),
		fmt.Sprintf("The evidence behind %q may equally support a different conclusion", conclusion),
		"The strongest objection a well-informed skeptic would raise has not been addressed",
	}
	if len(chain.Evidence) > 0 {
		args = append(args,
			fmt.Sprintf("If the most relevant evidence item were unreliable, would %q survive?", conclusion))
	}
	return args
}

// detectWeaknesses lists structural gaps: too few steps, low-confidence
// steps, missing evidence, missing assumptions.
func detectWeaknesses(chain *bias.ReasoningChain, lowConfidence float64) []string {
	var weaknesses []string

	if len(chain.Steps) < 2 {
		weaknesses = append(weaknesses, "Fewer than two reasoning steps; the conclusion is nearly unsupported")
	}
	for i, s := range chain.Steps {
		if s.Confidence != nil && *s.Confidence < lowConfidence {
			weaknesses = append(weaknesses,
				fmt.Sprintf("Step %d carries low confidence (%.2f): %s", i, *s.Confidence, s.Content))
		}
	}
	if len(chain.Evidence) == 0 {
		weaknesses = append(weaknesses, "No evidence is attached to the chain")
	}
	if len(chain.Assumptions) == 0 {
		weaknesses = append(weaknesses, "No explicit assumptions; hidden premises cannot be challenged")
	}

	return weaknesses
}
