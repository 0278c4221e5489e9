package recognizer

import (
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/fyrsmithlabs/biaslens/internal/bias"
)

// HistoryEntry is one analyzed chain in a detection history.
type HistoryEntry struct {
	// ChainID identifies the analyzed chain.
	ChainID string `json:"chain_id"`

	// Context optionally describes where the chain came from
	// (e.g. a task or session label).
	Context string `json:"context,omitempty"`

	// Detections are the biases found in the chain.
	Detections []bias.Detected `json:"detections"`
}

// Pattern is a recurring combination of bias types across chains.
type Pattern struct {
	// ID is a generated pattern identifier.
	ID string `json:"id"`

	// Signature is the sorted bias-type combination, joined with "+".
	Signature string `json:"signature"`

	// Types are the bias types in the signature, sorted.
	Types []bias.Type `json:"types"`

	// Frequency is how many chains exhibited this combination.
	Frequency int `json:"frequency"`

	// Contexts are the deduplicated contexts the pattern appeared in.
	Contexts []string `json:"contexts,omitempty"`

	// AverageSeverity is the running mean severity across occurrences.
	AverageSeverity float64 `json:"average_severity"`
}

// IdentifyPatterns groups past chains by the sorted signature of their
// detected bias types. Frequency, contexts and the mean severity update
// incrementally per occurrence, so the mining cost stays linear in the
// history length. Chains with no detections are skipped.
func (r *Recognizer) IdentifyPatterns(history []HistoryEntry) []Pattern {
	bySignature := make(map[string]*Pattern)

	for _, entry := range history {
		if len(entry.Detections) == 0 {
			continue
		}

		types, meanSeverity := summarize(entry.Detections)
		signature := signatureOf(types)

		p, ok := bySignature[signature]
		if !ok {
			p = &Pattern{
				ID:        uuid.New().String(),
				Signature: signature,
				Types:     types,
			}
			bySignature[signature] = p
		}

		p.Frequency++
		// Incremental mean over occurrences.
		p.AverageSeverity += (meanSeverity - p.AverageSeverity) / float64(p.Frequency)

		if entry.Context != "" && !containsString(p.Contexts, entry.Context) {
			p.Contexts = append(p.Contexts, entry.Context)
		}
	}

	patterns := make([]Pattern, 0, len(bySignature))
	for _, p := range bySignature {
		patterns = append(patterns, *p)
	}

	// Most frequent first; ties broken by severity, then signature for
	// a deterministic order.
	sort.Slice(patterns, func(i, j int) bool {
		if patterns[i].Frequency != patterns[j].Frequency {
			return patterns[i].Frequency > patterns[j].Frequency
		}
		if patterns[i].AverageSeverity != patterns[j].AverageSeverity {
			return patterns[i].AverageSeverity > patterns[j].AverageSeverity
		}
		return patterns[i].Signature < patterns[j].Signature
	})

	return patterns
}

// summarize returns the deduplicated sorted types and the mean severity
// of a chain's detections.
func summarize(detections []bias.Detected) ([]bias.Type, float64) {
	seen := make(map[bias.Type]bool)
	var types []bias.Type
	total := 0.0
	for _, d := range detections {
		total += d.Severity
		if !seen[d.Type] {
			seen[d.Type] = true
			types = append(types, d.Type)
		}
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types, total / float64(len(detections))
}

func signatureOf(types []bias.Type) string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}
	return strings.Join(names, "+")
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
