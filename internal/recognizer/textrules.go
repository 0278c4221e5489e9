package recognizer

import "github.com/fyrsmithlabs/biaslens/internal/bias"

// textRule is the canonical text-detection entry for one bias type:
// phrases are matched as case-insensitive substrings, keyword sets match
// when every word appears in the text's token set (order-independent).
//
// This is the single source of truth for text detection. Earlier
// iterations of the pipeline carried divergent copies of this library
// with conflicting constants; keep additions here.
type textRule struct {
	biasType bias.Type

	phrases     []string
	keywordSets [][]string

	severity    float64
	confidence  float64
	explanation string
}

// buildTextRules returns the phrase/keyword library for all nine types.
func buildTextRules() []textRule {
	return []textRule{
		{
			biasType: bias.Confirmation,
			phrases: []string{
				"i knew it", "as i expected", "proves my point", "just as i thought",
				"confirms what", "exactly what i predicted", "i was right",
				"validates my", "supports my view",
			},
			keywordSets: [][]string{
				{"only", "supporting", "evidence"},
				{"ignore", "contradicting"},
				{"cherry", "picked"},
			},
			severity:    0.6,
			confidence:  0.65,
			explanation: "Language suggests seeking or favoring confirming evidence",
		},
		{
			biasType: bias.Anchoring,
			phrases: []string{
				"initial estimate", "starting point", "first offer", "original price",
				"baseline figure", "opening bid", "adjusting from",
			},
			keywordSets: [][]string{
				{"anchored", "number"},
				{"first", "impression", "stuck"},
			},
			severity:    0.55,
			confidence:  0.6,
			explanation: "Language suggests over-reliance on an initial reference value",
		},
		{
			biasType: bias.Availability,
			phrases: []string{
				"i just heard", "recently saw", "in the news", "everyone i know",
				"i remember when", "happened to a friend", "saw it on",
				"fresh in my mind",
			},
			keywordSets: [][]string{
				{"vivid", "example"},
				{"recent", "story"},
			},
			severity:    0.55,
			confidence:  0.6,
			explanation: "Language suggests overweighting recent or memorable examples",
		},
		{
			biasType: bias.Recency,
			phrases: []string{
				"no longer relevant", "outdated", "the latest", "old news",
				"that was then", "things have changed", "newest data",
			},
			keywordSets: [][]string{
				{"ignore", "historical"},
				{"only", "recent", "matters"},
			},
			severity:    0.55,
			confidence:  0.6,
			explanation: "Language suggests dismissing older information outright",
		},
		{
			biasType: bias.Representativeness,
			phrases: []string{
				"typical case", "fits the profile", "classic example", "looks like a",
				"just like every", "textbook case", "stereotypical",
			},
			keywordSets: [][]string{
				{"ignores", "base", "rate"},
				{"small", "sample"},
			},
			severity:    0.6,
			confidence:  0.65,
			explanation: "Language suggests judging by resemblance while neglecting base rates",
		},
		{
			biasType: bias.Framing,
			phrases: []string{
				"success rate", "failure rate", "glass half", "on the bright side",
				"worst case only", "silver lining", "spin it as",
			},
			keywordSets: [][]string{
				{"percent", "survive"},
				{"percent", "die"},
			},
			severity:    0.5,
			confidence:  0.6,
			explanation: "Language suggests a one-sided frame of equivalent outcomes",
		},
		{
			biasType: bias.SunkCost,
			phrases: []string{
				"already invested", "come this far", "can't stop now", "too much to quit",
				"wasted if we stop", "in too deep", "spent so much",
			},
			keywordSets: [][]string{
				{"invested", "continue"},
				{"spent", "abandon"},
			},
			severity:    0.6,
			confidence:  0.65,
			explanation: "Language suggests continuing because of past investment",
		},
		{
			biasType: bias.Attribution,
			phrases: []string{
				"they are lazy", "they are incompetent", "bad luck on my part",
				"circumstances beyond my control", "their own fault", "i was unlucky",
			},
			keywordSets: [][]string{
				{"their", "character", "flaw"},
				{"my", "situation", "forced"},
			},
			severity:    0.55,
			confidence:  0.6,
			explanation: "Language attributes others' failures to character and one's own to circumstance",
		},
		{
			biasType: bias.Bandwagon,
			phrases: []string{
				"everyone is doing", "everyone uses", "industry standard",
				"most popular", "market leader", "all our competitors",
				"everybody agrees", "common wisdom", "best practice everywhere",
				"all the big players", "trending",
			},
			keywordSets: [][]string{
				{"popular", "choice"},
				{"majority", "adopted"},
				{"everyone", "else"},
			},
			severity:    0.55,
			confidence:  0.65,
			explanation: "Language suggests adopting a position because of its popularity",
		},
	}
}

// meritSignals are evaluation phrases whose presence indicates a
// position was examined on its merits rather than its popularity.
var meritSignals = []string{
	"evaluated", "analyzed", "analysed", "assessed", "requirements",
	"pros and cons", "trade-off", "tradeoff", "benchmark", "compared",
	"criteria", "measured",
}

// bandwagonSignals are the popularity and social-proof cues used by the
// structural bandwagon detector over steps and conclusions.
var bandwagonSignals = []string{
	"everyone", "everybody", "popular", "industry standard", "market leader",
	"competitor", "competitors", "all the others", "most companies",
	"most teams", "widely adopted", "common practice", "trending",
	"social proof", "majority",
}
