// Package corrector maps each bias type to remediation guidance: a
// suggestion sentence, debiasing techniques, and challenge questions.
//
// The table is static and the package holds no state; it is safe for
// unrestricted concurrent use.
package corrector

import (
	"fmt"
	"strings"

	"github.com/fyrsmithlabs/biaslens/internal/bias"
)

// Suggestion is the remediation guidance for one bias type.
type Suggestion struct {
	// Type is the bias being remediated.
	Type bias.Type `json:"type"`

	// Suggestion is a single corrective sentence.
	Suggestion string `json:"suggestion"`

	// Techniques are concrete debiasing practices.
	Techniques []string `json:"techniques"`

	// Challenges are questions to ask of the reasoning.
	Challenges []string `json:"challenges"`
}

// WithCorrection pairs a detection with its remediation guidance.
type WithCorrection struct {
	Bias       bias.Detected `json:"bias"`
	Suggestion Suggestion    `json:"suggestion"`
}

// GetSuggestion returns the guidance for the given type. Unknown types
// get a generic fallback rather than an error, so callers can render
// something useful for future or custom categories.
func GetSuggestion(t bias.Type) Suggestion {
	if s, ok := suggestions[t]; ok {
		return s
	}
	return Suggestion{
		Type:       t,
		Suggestion: "Re-examine this reasoning for systematic distortion and seek an independent review.",
		Techniques: []string{
			"Ask a colleague to critique the reasoning without seeing your conclusion",
			"Write down the strongest case against your position",
			"List what evidence would change your mind",
		},
		Challenges: []string{
			"What would someone who disagrees say?",
			"Which of these premises is least certain?",
			"What evidence am I not looking at?",
		},
	}
}

// AddCorrections pairs each detection with its suggestion, preserving
// input order.
func AddCorrections(detections []bias.Detected) []WithCorrection {
	out := make([]WithCorrection, len(detections))
	for i, d := range detections {
		out[i] = WithCorrection{
			Bias:       d,
			Suggestion: GetSuggestion(d.Type),
		}
	}
	return out
}

// FormatCorrection renders a suggestion as plain text with labeled
// sections and bullet markers. The layout is fixed; presentation layers
// wanting richer output should format the struct themselves.
func FormatCorrection(s Suggestion) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Bias: %s\n", s.Type)
	fmt.Fprintf(&b, "Suggestion: %s\n", s.Suggestion)

	b.WriteString("Techniques:\n")
	for _, t := range s.Techniques {
		fmt.Fprintf(&b, "  - %s\n", t)
	}

	b.WriteString("Challenge questions:\n")
	for _, q := range s.Challenges {
		fmt.Fprintf(&b, "  - %s\n", q)
	}

	return b.String()
}
