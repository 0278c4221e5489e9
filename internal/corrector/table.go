package corrector

import "github.com/fyrsmithlabs/biaslens/internal/bias"

// suggestions is the canonical remediation table. Every one of the nine
// types has an entry with at least three techniques and three challenge
// questions, including bandwagon, which has guidance here even though
// the correction engine registers no automated strategy for it.
var suggestions = map[bias.Type]Suggestion{
	bias.Confirmation: {
		Type:       bias.Confirmation,
		Suggestion: "Actively seek disconfirming evidence and weight it on merit before settling on a conclusion.",
		Techniques: []string{
			"Search specifically for evidence against the hypothesis before reading more support",
			"Assign relevance scores to evidence before knowing which side it supports",
			"Have someone argue the opposite position using the same evidence",
			"Track the ratio of supporting to contradicting sources you consulted",
		},
		Challenges: []string{
			"What evidence would prove this hypothesis wrong?",
			"Did I rate contradicting evidence lower because of its content or its conclusion?",
			"Would I accept this quality of evidence if it opposed my view?",
		},
	},
	bias.Anchoring: {
		Type:       bias.Anchoring,
		Suggestion: "Re-derive the estimate from independent starting points before reconciling with the initial figure.",
		Techniques: []string{
			"Estimate from scratch without looking at the initial number",
			"Generate estimates from at least two unrelated reference classes",
			"Have a second person estimate independently and compare",
		},
		Challenges: []string{
			"Where did the initial number come from, and is that source authoritative?",
			"Would my conclusion differ if the first figure I saw had been half or double?",
			"How far did I actually move from the starting point, and why so little?",
		},
	},
	bias.Availability: {
		Type:       bias.Availability,
		Suggestion: "Replace ease of recall with measured frequency: look up the actual rates before judging likelihood.",
		Techniques: []string{
			"Find base-rate statistics for the event being judged",
			"List examples of the opposite outcome until recall feels balanced",
			"Weight evidence by sample size rather than vividness",
		},
		Challenges: []string{
			"Am I judging probability by how easily examples come to mind?",
			"Is the example I keep thinking of representative or just memorable?",
			"What do the actual numbers say?",
		},
	},
	bias.Recency: {
		Type:       bias.Recency,
		Suggestion: "Weight evidence by quality and relevance, not by age; recent data is not automatically better data.",
		Techniques: []string{
			"Compare recent and historical evidence on the same relevance scale",
			"Check whether the underlying conditions actually changed",
			"Look for long-run trends that the latest data point may deviate from",
		},
		Challenges: []string{
			"What makes the older information actually obsolete, beyond its date?",
			"Would I trust the recent data if it were the older of the two?",
			"Is the latest data point a trend or an outlier?",
		},
	},
	bias.Representativeness: {
		Type:       bias.Representativeness,
		Suggestion: "Check the base rate first: resemblance to a typical case is not evidence about frequency.",
		Techniques: []string{
			"State the base rate explicitly before judging the specific case",
			"Separate similarity judgments from probability judgments",
			"Ask how many non-typical cases would produce the same impression",
		},
		Challenges: []string{
			"How common is this category in the relevant population?",
			"Am I pattern-matching on surface features?",
			"What would Bayes' rule say given the base rate?",
		},
	},
	bias.Framing: {
		Type:       bias.Framing,
		Suggestion: "Restate the decision in the opposite frame and check whether the preference survives.",
		Techniques: []string{
			"Rewrite every gain statement as the equivalent loss statement and compare reactions",
			"Present both frames side by side to stakeholders",
			"Convert percentages to absolute counts and re-read",
		},
		Challenges: []string{
			"Does a 90% success rate feel different from a 10% failure rate here?",
			"Who chose this framing, and what do they want?",
			"Would the decision change if the numbers were framed the other way?",
		},
	},
	bias.SunkCost: {
		Type:       bias.SunkCost,
		Suggestion: "Decide on future costs and future value only; what is already spent is spent either way.",
		Techniques: []string{
			"Evaluate the decision as if starting today with zero history",
			"Compare expected value of continuing versus the best alternative use of remaining resources",
			"Have someone uninvolved in the original investment make the call",
		},
		Challenges: []string{
			"If I were starting fresh today, would I choose this course?",
			"What are the prospects from here, ignoring what it took to get here?",
			"Is 'not wasting' the investment actually wasting what remains?",
		},
	},
	bias.Attribution: {
		Type:       bias.Attribution,
		Suggestion: "Apply the same explanation standard to others' behavior that you apply to your own: consider their situation first.",
		Techniques: []string{
			"List three situational explanations before any character explanation",
			"Swap actors: would the explanation hold if you had done the same thing?",
			"Gather context about constraints the other party was under",
		},
		Challenges: []string{
			"What circumstances could have produced this behavior in a competent person?",
			"When I did something similar, how did I explain it?",
			"Am I judging them by outcomes and myself by intentions?",
		},
	},
	bias.Bandwagon: {
		Type:       bias.Bandwagon,
		Suggestion: "Evaluate the option against your own requirements; adoption by others is evidence about their needs, not yours.",
		Techniques: []string{
			"Write down your requirements before looking at what others chose",
			"Identify at least one successful organization that chose differently",
			"Separate 'popular' from 'proven for our use case' in the analysis",
		},
		Challenges: []string{
			"Does popularity among others tell me anything about my constraints?",
			"What do the adopters have in common, and do we share it?",
			"If nobody else used this, would I still choose it on merit?",
		},
	},
}
