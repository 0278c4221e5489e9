package recognizer

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/fyrsmithlabs/biaslens/internal/bias"
)

// relevanceGap is the recent-vs-historical average relevance difference
// above which the recency detector fires its evidence-based trigger.
const relevanceGap = 0.3

// anchorChangeRatio is the relative change below which a conclusion is
// considered stuck to its anchor.
const anchorChangeRatio = 0.10

// numberPattern extracts the first numeric token, optionally
// dollar-prefixed, from a piece of reasoning text.
var numberPattern = regexp.MustCompile(`\$?\d+(?:\.\d+)?`)

var (
	positiveFramePattern = regexp.MustCompile(`(?i)\d+%\s*success`)
	negativeFramePattern = regexp.MustCompile(`(?i)\d+%\s*failure`)
)

// detectConfirmation fires when reasoning is hypothesis-driven with only
// supporting evidence, or when contradicting evidence is present but
// dismissed with low relevance.
func (r *Recognizer) detectConfirmation(chain *bias.ReasoningChain) *bias.Detected {
	p := r.cfg.Params("confirmation")

	supporting, contradictory := 0, 0
	for i := range chain.Evidence {
		e := &chain.Evidence[i]
		if e.Relevance == nil {
			continue
		}
		if *e.Relevance > r.cfg.SupportingRelevance {
			supporting++
		}
		if *e.Relevance < r.cfg.ContradictoryRelevance {
			contradictory++
		}
	}

	hypoIdx := -1
	for i, s := range chain.Steps {
		if s.Kind == bias.StepHypothesis && containsAny(s.Content, "believe", "think") {
			hypoIdx = i
			break
		}
	}

	if supporting > 0 && contradictory == 0 && hypoIdx >= 0 {
		return r.detection(bias.Confirmation, p.Severity, p.Confidence,
			bias.Location{StepIndex: hypoIdx, Excerpt: chain.Steps[hypoIdx].Content},
			"Hypothesis-driven reasoning backed exclusively by supporting evidence",
			[]string{
				fmt.Sprintf("%d supporting evidence items, 0 contradictory", supporting),
				"hypothesis stated as belief",
			})
	}

	if supporting > 0 {
		for i := range chain.Evidence {
			e := &chain.Evidence[i]
			if containsAny(e.Content, "contradicting", "against") &&
				e.RelevanceOr(1) < r.cfg.ContradictoryRelevance {
				return r.detection(bias.Confirmation, p.AltSeverity, p.AltConfidence,
					bias.Location{StepIndex: -1, Excerpt: e.Content, Context: "evidence"},
					"Contradicting evidence present but assigned dismissively low relevance",
					[]string{fmt.Sprintf("dismissed evidence %q", e.ID)})
			}
		}
	}

	return nil
}

// detectAnchoring compares the first numeric value in an anchor-setting
// hypothesis against the conclusion's first numeric value.
func (r *Recognizer) detectAnchoring(chain *bias.ReasoningChain) *bias.Detected {
	p := r.cfg.Params("anchoring")

	anchorIdx := -1
	for i, s := range chain.Steps {
		if s.Kind == bias.StepHypothesis && containsAny(s.Content, "initial", "estimate", "starting") {
			anchorIdx = i
			break
		}
	}

	if anchorIdx >= 0 {
		anchor, okA := firstNumber(chain.Steps[anchorIdx].Content)
		final, okF := firstNumber(chain.Conclusion)
		if okA && okF && anchor != 0 {
			change := math.Abs(final-anchor) / math.Abs(anchor)
			if change < anchorChangeRatio {
				return r.detection(bias.Anchoring, p.Severity, p.Confidence,
					bias.Location{StepIndex: anchorIdx, Excerpt: chain.Steps[anchorIdx].Content},
					fmt.Sprintf("Conclusion moved only %.1f%% from the initial anchor value", change*100),
					[]string{
						fmt.Sprintf("anchor value %.2f", anchor),
						fmt.Sprintf("final value %.2f", final),
					})
			}
		}
	}

	for i, s := range chain.Steps {
		if containsAny(s.Content, "starting point", "baseline", "adjusting from") {
			return r.detection(bias.Anchoring, p.AltSeverity, p.AltConfidence,
				bias.Location{StepIndex: i, Excerpt: s.Content},
				"Reasoning adjusts from a stated reference point rather than re-deriving",
				[]string{"explicit reference-point language"})
		}
	}

	return nil
}

// detectAvailability fires on anecdotal language combined with fresh
// evidence, or with dismissed statistical evidence.
func (r *Recognizer) detectAvailability(chain *bias.ReasoningChain) *bias.Detected {
	p := r.cfg.Params("availability")
	now := r.now()

	anecdoteIdx := -1
	for i, s := range chain.Steps {
		if containsAny(s.Content, "i know", "i heard", "recent") {
			anecdoteIdx = i
			break
		}
	}
	if anecdoteIdx < 0 {
		return nil
	}

	hasFreshEvidence := false
	for i := range chain.Evidence {
		if age, ok := chain.Evidence[i].AgeAt(now); ok && age < r.cfg.RecentEvidenceAge {
			hasFreshEvidence = true
			break
		}
	}

	statsDismissed := false
	for i := range chain.Evidence {
		e := &chain.Evidence[i]
		if containsAny(e.Content, "statistic", "odds", "probability") &&
			e.RelevanceOr(1) < r.cfg.ContradictoryRelevance {
			statsDismissed = true
			break
		}
	}

	if hasFreshEvidence || statsDismissed {
		explanation := "Anecdotal recall paired with recent evidence outweighs broader data"
		if statsDismissed {
			explanation = "Anecdotal recall favored while statistical evidence is assigned low relevance"
		}
		return r.detection(bias.Availability, p.Severity, p.Confidence,
			bias.Location{StepIndex: anecdoteIdx, Excerpt: chain.Steps[anecdoteIdx].Content},
			explanation,
			[]string{"anecdotal recall language"})
	}

	return nil
}

// detectRecency fires on explicit dismissal of older information, or
// when recent evidence is rated much more relevant than historical.
func (r *Recognizer) detectRecency(chain *bias.ReasoningChain) *bias.Detected {
	p := r.cfg.Params("recency")
	now := r.now()

	for i, s := range chain.Steps {
		if containsAny(s.Content, "no longer relevant", "outdated", "latest") {
			return r.detection(bias.Recency, p.Severity, p.Confidence,
				bias.Location{StepIndex: i, Excerpt: s.Content},
				"Older information dismissed on age rather than merit",
				[]string{"dismissal language in steps"})
		}
	}
	if containsAny(chain.Conclusion, "no longer relevant", "outdated", "latest") {
		return r.detection(bias.Recency, p.Severity, p.Confidence,
			bias.Location{StepIndex: -1, Excerpt: chain.Conclusion, Context: "conclusion"},
			"Older information dismissed on age rather than merit",
			[]string{"dismissal language in conclusion"})
	}

	if len(chain.Evidence) < 2 {
		return nil
	}

	var recentSum, histSum float64
	var recentN, histN int
	for i := range chain.Evidence {
		e := &chain.Evidence[i]
		age, ok := e.AgeAt(now)
		if !ok {
			continue
		}
		if age < r.cfg.RecentEvidenceAge {
			recentSum += e.RelevanceOr(0.5)
			recentN++
		} else {
			histSum += e.RelevanceOr(0.5)
			histN++
		}
	}
	if recentN == 0 || histN == 0 {
		return nil
	}

	recentAvg := recentSum / float64(recentN)
	histAvg := histSum / float64(histN)
	if recentAvg-histAvg > relevanceGap {
		return r.detection(bias.Recency, p.AltSeverity, p.AltConfidence,
			bias.Location{StepIndex: -1, Excerpt: chain.Conclusion, Context: "evidence"},
			fmt.Sprintf("Recent evidence rated %.2f average relevance vs %.2f historical", recentAvg, histAvg),
			[]string{
				fmt.Sprintf("%d recent evidence items", recentN),
				fmt.Sprintf("%d historical evidence items", histN),
			})
	}

	return nil
}

// detectRepresentativeness fires on stereotype matching, or on base-rate
// evidence carrying dismissively low relevance.
func (r *Recognizer) detectRepresentativeness(chain *bias.ReasoningChain) *bias.Detected {
	p := r.cfg.Params("representativeness")

	for i, s := range chain.Steps {
		if containsAny(s.Content, "stereotype", "typical", "fits") {
			return r.detection(bias.Representativeness, p.Severity, p.Confidence,
				bias.Location{StepIndex: i, Excerpt: s.Content},
				"Judgment by resemblance to a typical case",
				[]string{"stereotype-matching language"})
		}
	}

	for i := range chain.Evidence {
		e := &chain.Evidence[i]
		if containsAny(e.Content, "base rate", "prevalence") &&
			e.RelevanceOr(1) < r.cfg.ContradictoryRelevance {
			return r.detection(bias.Representativeness, p.AltSeverity, p.AltConfidence,
				bias.Location{StepIndex: -1, Excerpt: e.Content, Context: "evidence"},
				"Base-rate evidence present but assigned dismissively low relevance",
				[]string{fmt.Sprintf("dismissed base-rate evidence %q", e.ID)})
		}
	}

	return nil
}

// detectFraming fires when exactly one frame polarity is present across
// the steps. Both frames present means the reasoning is balanced.
func (r *Recognizer) detectFraming(chain *bias.ReasoningChain) *bias.Detected {
	p := r.cfg.Params("framing")

	positive, negative := false, false
	firstIdx := -1
	for i, s := range chain.Steps {
		pos := positiveFramePattern.MatchString(s.Content) || containsAny(s.Content, "effective", "works")
		neg := negativeFramePattern.MatchString(s.Content) || containsAny(s.Content, "risky", "fails")
		if (pos || neg) && firstIdx < 0 {
			firstIdx = i
		}
		positive = positive || pos
		negative = negative || neg
	}

	if positive == negative {
		// Neither frame, or both: balanced.
		return nil
	}

	frame := "positive"
	if negative {
		frame = "negative"
	}
	return r.detection(bias.Framing, p.Severity, p.Confidence,
		bias.Location{StepIndex: firstIdx, Excerpt: chain.Steps[firstIdx].Content},
		fmt.Sprintf("Only the %s frame of the outcome is considered", frame),
		[]string{frame + " frame cues"})
}

// detectSunkCost fires when past-investment language feeds a commitment
// conclusion, or appears without any forward-looking language.
func (r *Recognizer) detectSunkCost(chain *bias.ReasoningChain) *bias.Detected {
	p := r.cfg.Params("sunk_cost")

	investIdx := -1
	for i, s := range chain.Steps {
		if containsAny(s.Content, "invested", "spent", "already") {
			investIdx = i
			break
		}
	}
	if investIdx < 0 {
		return nil
	}

	if containsAny(chain.Conclusion, "continue", "must", "can't abandon", "waste") {
		return r.detection(bias.SunkCost, p.Severity, p.Confidence,
			bias.Location{StepIndex: investIdx, Excerpt: chain.Steps[investIdx].Content},
			"Past investment drives the decision to continue",
			[]string{"investment language in steps", "commitment language in conclusion"})
	}

	forwardLooking := false
	for _, s := range chain.Steps {
		if containsAny(s.Content, "future", "expected value", "prospects") {
			forwardLooking = true
			break
		}
	}
	if !forwardLooking {
		return r.detection(bias.SunkCost, p.AltSeverity, p.AltConfidence,
			bias.Location{StepIndex: investIdx, Excerpt: chain.Steps[investIdx].Content},
			"Past investment considered without any forward-looking analysis",
			[]string{"investment language without future-value language"})
	}

	return nil
}

// detectAttribution fires on internal attribution of others' failures or
// external attribution of one's own, unless balanced-attribution
// language is present anywhere in the steps.
func (r *Recognizer) detectAttribution(chain *bias.ReasoningChain) *bias.Detected {
	p := r.cfg.Params("attribution")

	for _, s := range chain.Steps {
		if containsAny(s.Content, "both", "multiple factors", "circumstances") {
			return nil
		}
	}

	for i, s := range chain.Steps {
		lower := strings.ToLower(s.Content)
		othersInternal := (strings.Contains(lower, "they") || strings.Contains(lower, "their")) &&
			containsAny(s.Content, "incompetent", "lazy", "flaws")
		selfExternal := (strings.Contains(lower, "i ") || strings.Contains(lower, "my ")) &&
			containsAny(s.Content, "luck", "circumstances", "situation")

		if othersInternal {
			return r.detection(bias.Attribution, p.Severity, p.Confidence,
				bias.Location{StepIndex: i, Excerpt: s.Content},
				"Others' failures attributed to character rather than situation",
				[]string{"internal attribution of others' behavior"})
		}
		if selfExternal {
			return r.detection(bias.Attribution, p.Severity, p.Confidence,
				bias.Location{StepIndex: i, Excerpt: s.Content},
				"Own failures attributed to circumstance rather than behavior",
				[]string{"external attribution of own behavior"})
		}
	}

	return nil
}

// detectBandwagon fires when popularity language appears without merit
// evaluation, or heavily outnumbers it.
func (r *Recognizer) detectBandwagon(chain *bias.ReasoningChain) *bias.Detected {
	p := r.cfg.Params("bandwagon")

	bandwagonCount, meritCount := 0, 0
	firstIdx := -1
	for i, s := range chain.Steps {
		n := countAny(s.Content, bandwagonSignals...)
		if n > 0 && firstIdx < 0 {
			firstIdx = i
		}
		bandwagonCount += n
		meritCount += countAny(s.Content, meritSignals...)
	}
	bandwagonCount += countAny(chain.Conclusion, bandwagonSignals...)
	meritCount += countAny(chain.Conclusion, meritSignals...)

	if bandwagonCount == 0 {
		return nil
	}

	loc := bias.Location{StepIndex: firstIdx}
	if firstIdx >= 0 {
		loc.Excerpt = chain.Steps[firstIdx].Content
	} else {
		loc.Excerpt = chain.Conclusion
		loc.Context = "conclusion"
	}

	if meritCount == 0 {
		return r.detection(bias.Bandwagon, p.Severity, p.Confidence, loc,
			"Position adopted on popularity with no merit evaluation present",
			[]string{fmt.Sprintf("%d popularity signals, no merit signals", bandwagonCount)})
	}
	if bandwagonCount > 2*meritCount {
		return r.detection(bias.Bandwagon, p.AltSeverity, p.AltConfidence, loc,
			"Popularity signals heavily outnumber merit evaluation",
			[]string{fmt.Sprintf("%d popularity signals vs %d merit signals", bandwagonCount, meritCount)})
	}

	return nil
}

// firstNumber extracts the first numeric token from text, stripping an
// optional leading dollar sign.
func firstNumber(text string) (float64, bool) {
	match := numberPattern.FindString(text)
	if match == "" {
		return 0, false
	}
	match = strings.TrimPrefix(match, "$")
	v, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
