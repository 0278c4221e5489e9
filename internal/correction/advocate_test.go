package correction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fyrsmithlabs/biaslens/internal/bias"
)

func TestApplyDevilsAdvocate(t *testing.T) {
	e := NewEngine(nil, nil)

	t.Run("nil chain", func(t *testing.T) {
		_, err := e.ApplyDevilsAdvocate(nil)
		assert.ErrorIs(t, err, ErrNilChain)
	})

	t.Run("counter-arguments plus assumption challenges", func(t *testing.T) {
		chain := testChain()
		perspectives, err := e.ApplyDevilsAdvocate(chain)
		require.NoError(t, err)

		// Conclusion counter-arguments always come first.
		require.NotEmpty(t, perspectives)
		assert.Equal(t, "Counter-arguments to the conclusion", perspectives[0].Title)
		assert.NotEmpty(t, perspectives[0].CounterArguments)

		var challenged int
		for _, p := range perspectives {
			if p.Title == "Challenged assumption" {
				challenged++
				require.Len(t, p.CounterArguments, 1)
				assert.Contains(t, p.CounterArguments[0], "What if this assumption is false")
			}
		}
		assert.Equal(t, len(chain.Assumptions), challenged)
	})

	t.Run("structural weaknesses", func(t *testing.T) {
		chain := &bias.ReasoningChain{
			Steps: []bias.ReasoningStep{
				{ID: "s1", Content: "single shaky step", Confidence: bias.Float64Ptr(0.2)},
			},
			Conclusion: "done",
		}

		perspectives, err := e.ApplyDevilsAdvocate(chain)
		require.NoError(t, err)

		var weaknesses []string
		for _, p := range perspectives {
			if p.Title == "Structural weaknesses" {
				weaknesses = p.CounterArguments
			}
		}
		// Too few steps, a low-confidence step, no evidence, no assumptions.
		require.Len(t, weaknesses, 4)
	})

	t.Run("solid chain has no weakness bundle", func(t *testing.T) {
		chain := testChain()
		chain.Steps[0].Confidence = bias.Float64Ptr(0.9)

		perspectives, err := e.ApplyDevilsAdvocate(chain)
		require.NoError(t, err)
		for _, p := range perspectives {
			assert.NotEqual(t, "Structural weaknesses", p.Title)
		}
	})

	t.Run("never modifies the chain", func(t *testing.T) {
		chain := testChain()
		snapshot := chain.Clone()
		_, err := e.ApplyDevilsAdvocate(chain)
		require.NoError(t, err)
		assert.Equal(t, snapshot, chain)
	})
}
