package lead_test

import (
	"testing"

	"go-crm/internal/lead"

	"github.com/stretchr/testify/assert"
)

func rule(category string, weight int, enabled bool, conds ...lead.ScoringCondition) lead.ScoringRule {
	return lead.ScoringRule{
		Category:   category,
		Weight:     weight,
		Enabled:    enabled,
		Conditions: conds,
	}
}

func TestComputeScore(t *testing.T) {
	t.Run("contains condition weighted by rule weight", func(t *testing.T) {
		// 25 poin di rule berbobot 20 -> kontribusi 25 * 0.20 = 5.
		rules := []lead.ScoringRule{
			rule("Engagement", 20, true,
				lead.ScoringCondition{Field: "stage", Operator: "contains", Value: "follow", Points: 25},
			),
		}
		res := lead.ComputeScore(lead.Lead{Stage: "Follow Up Required"}, rules)

		assert.Equal(t, 5, res.Score)
		assert.Equal(t, 5, res.Probability)
		assert.Equal(t, lead.PriorityLow, res.Priority)
	})

	t.Run("sums matched conditions across rules", func(t *testing.T) {
		rules := []lead.ScoringRule{
			rule("Contactability", 80, true,
				lead.ScoringCondition{Field: "email", Operator: "not_null", Points: 20},
				lead.ScoringCondition{Field: "phone", Operator: "not_null", Points: 15},
			),
			rule("Deal Size", 60, true,
				lead.ScoringCondition{Field: "deal_amount", Operator: "greater_than", Value: "10000", Points: 15},
			),
		}
		l := lead.Lead{Email: "x@example.com", Phone: "98765", DealAmount: 20000}

		// 20*0.8 + 15*0.8 + 15*0.6 = 16 + 12 + 9 = 37
		res := lead.ComputeScore(l, rules)
		assert.Equal(t, 37, res.Score)
		assert.Equal(t, 37, res.Probability)
		assert.Equal(t, lead.PriorityLow, res.Priority)
	})

	t.Run("disabled rules are skipped", func(t *testing.T) {
		rules := []lead.ScoringRule{
			rule("Engagement", 100, false,
				lead.ScoringCondition{Field: "stage", Operator: "equals", Value: "converted", Points: 40},
			),
		}
		res := lead.ComputeScore(lead.Lead{Stage: "Converted"}, rules)
		assert.Equal(t, 0, res.Score)
	})

	t.Run("equals is case-insensitive", func(t *testing.T) {
		rules := []lead.ScoringRule{
			rule("Source Quality", 100, true,
				lead.ScoringCondition{Field: "source", Operator: "equals", Value: "referral", Points: 30},
			),
		}
		res := lead.ComputeScore(lead.Lead{Source: "Referral"}, rules)
		assert.Equal(t, 30, res.Score)
	})

	t.Run("probability clamped to floor and ceiling", func(t *testing.T) {
		none := lead.ComputeScore(lead.Lead{}, nil)
		assert.Equal(t, 0, none.Score)
		assert.Equal(t, 5, none.Probability)

		rules := []lead.ScoringRule{
			rule("Stacked", 100, true,
				lead.ScoringCondition{Field: "name", Operator: "not_null", Points: 120},
			),
		}
		high := lead.ComputeScore(lead.Lead{Name: "Big"}, rules)
		assert.Equal(t, 120, high.Score)
		assert.Equal(t, 95, high.Probability)
		assert.Equal(t, lead.PriorityHigh, high.Priority)
	})

	t.Run("priority thresholds", func(t *testing.T) {
		mk := func(points float64) lead.ScoreResult {
			rules := []lead.ScoringRule{
				rule("T", 100, true,
					lead.ScoringCondition{Field: "name", Operator: "not_null", Points: points},
				),
			}
			return lead.ComputeScore(lead.Lead{Name: "x"}, rules)
		}
		assert.Equal(t, lead.PriorityLow, mk(39).Priority)
		assert.Equal(t, lead.PriorityMedium, mk(40).Priority)
		assert.Equal(t, lead.PriorityMedium, mk(69).Priority)
		assert.Equal(t, lead.PriorityHigh, mk(70).Priority)
	})

	t.Run("missing fields never error, just skip", func(t *testing.T) {
		rules := []lead.ScoringRule{
			rule("Weird", 100, true,
				lead.ScoringCondition{Field: "deal_amount", Operator: "greater_than", Value: "abc", Points: 50},
				lead.ScoringCondition{Field: "nonexistent", Operator: "not_null", Points: 50},
				lead.ScoringCondition{Field: "deal_amount", Operator: "not_null", Points: 10},
			),
		}
		// deal_amount 0 dianggap kosong untuk not_null
		res := lead.ComputeScore(lead.Lead{}, rules)
		assert.Equal(t, 0, res.Score)
	})
}

func TestStageIsWon(t *testing.T) {
	assert.True(t, lead.StageIsWon("Won"))
	assert.True(t, lead.StageIsWon("  CONVERTED "))
	assert.False(t, lead.StageIsWon("Follow Up Required"))
	assert.False(t, lead.StageIsWon(""))
}
