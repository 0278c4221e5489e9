package bias

import "time"

// Clone returns a deep copy of the chain. All list fields are copied
// independently so the copy can be extended without touching the original.
// Optional pointer fields are duplicated, not shared.
func (c *ReasoningChain) Clone() *ReasoningChain {
	if c == nil {
		return nil
	}

	clone := &ReasoningChain{
		ID:         c.ID,
		Conclusion: c.Conclusion,
	}
	if c.Confidence != nil {
		v := *c.Confidence
		clone.Confidence = &v
	}

	if c.Steps != nil {
		clone.Steps = make([]ReasoningStep, len(c.Steps))
		for i, s := range c.Steps {
			clone.Steps[i] = s.clone()
		}
	}
	if c.Evidence != nil {
		clone.Evidence = make([]Evidence, len(c.Evidence))
		for i, e := range c.Evidence {
			clone.Evidence[i] = e.clone()
		}
	}
	clone.Branches = copyStrings(c.Branches)
	clone.Assumptions = copyStrings(c.Assumptions)
	clone.Inferences = copyStrings(c.Inferences)

	return clone
}

func (s ReasoningStep) clone() ReasoningStep {
	out := s
	if s.Confidence != nil {
		v := *s.Confidence
		out.Confidence = &v
	}
	return out
}

func (e Evidence) clone() Evidence {
	out := e
	if e.Reliability != nil {
		v := *e.Reliability
		out.Reliability = &v
	}
	if e.Relevance != nil {
		v := *e.Relevance
		out.Relevance = &v
	}
	if e.Timestamp != nil {
		t := *e.Timestamp
		out.Timestamp = &t
	}
	return out
}

func copyStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

// Empty reports whether the chain has neither steps nor evidence.
// Detection short-circuits on empty chains.
func (c *ReasoningChain) Empty() bool {
	return c == nil || (len(c.Steps) == 0 && len(c.Evidence) == 0)
}

// RelevanceOr returns the evidence relevance, or fallback when unset.
func (e *Evidence) RelevanceOr(fallback float64) float64 {
	if e.Relevance == nil {
		return fallback
	}
	return *e.Relevance
}

// ReliabilityOr returns the evidence reliability, or fallback when unset.
func (e *Evidence) ReliabilityOr(fallback float64) float64 {
	if e.Reliability == nil {
		return fallback
	}
	return *e.Reliability
}

// AgeAt returns how old the evidence was at the reference time, and
// whether a timestamp was present to measure against.
func (e *Evidence) AgeAt(ref time.Time) (time.Duration, bool) {
	if e.Timestamp == nil {
		return 0, false
	}
	return ref.Sub(*e.Timestamp), true
}
