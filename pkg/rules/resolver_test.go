package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MaratAhmetzyanov83/ElTool-sub000/pkg/rules"
	"github.com/MaratAhmetzyanov83/ElTool-sub000/pkg/types"
)

func TestMatches(t *testing.T) {
	tests := []struct {
		name string
		rule types.SelectorRule
		sig  types.DeviceSignature
		want bool
	}{
		{
			name: "exact match",
			rule: types.SelectorRule{SourceBlockName: "QF", VisibilityValue: "2P"},
			sig:  types.DeviceSignature{SourceBlockName: "QF", VisibilityValue: "2P"},
			want: true,
		},
		{
			name: "case insensitive source and visibility",
			rule: types.SelectorRule{SourceBlockName: "qf", VisibilityValue: "2p"},
			sig:  types.DeviceSignature{SourceBlockName: "QF", VisibilityValue: "2P"},
			want: true,
		},
		{
			name: "wildcard visibility matches any variant",
			rule: types.SelectorRule{SourceBlockName: "QF"},
			sig:  types.DeviceSignature{SourceBlockName: "QF", VisibilityValue: "4P"},
			want: true,
		},
		{
			name: "wildcard visibility matches missing variant",
			rule: types.SelectorRule{SourceBlockName: "QF"},
			sig:  types.DeviceSignature{SourceBlockName: "QF"},
			want: true,
		},
		{
			name: "different source block",
			rule: types.SelectorRule{SourceBlockName: "KM"},
			sig:  types.DeviceSignature{SourceBlockName: "QF"},
			want: false,
		},
		{
			name: "explicit visibility does not match different variant",
			rule: types.SelectorRule{SourceBlockName: "QF", VisibilityValue: "2P"},
			sig:  types.DeviceSignature{SourceBlockName: "QF", VisibilityValue: "4P"},
			want: false,
		},
		{
			name: "explicit visibility does not match missing variant",
			rule: types.SelectorRule{SourceBlockName: "QF", VisibilityValue: "2P"},
			sig:  types.DeviceSignature{SourceBlockName: "QF"},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rules.Matches(tt.rule, tt.sig))
		})
	}
}

func TestResolveSelectorRule_NoMatch(t *testing.T) {
	ruleSet := []types.SelectorRule{
		{Priority: 10, SourceBlockName: "KM", LayoutBlockName: "L_KM"},
	}

	rule, ambiguity := rules.ResolveSelectorRule(
		types.DeviceSignature{SourceBlockName: "QF", VisibilityValue: "2P"}, ruleSet)

	assert.Nil(t, rule)
	assert.Equal(t, 0, ambiguity)
}

func TestResolveSelectorRule_MinPriorityWins(t *testing.T) {
	ruleSet := []types.SelectorRule{
		{Priority: 20, SourceBlockName: "QF", LayoutBlockName: "B"},
		{Priority: 10, SourceBlockName: "QF", LayoutBlockName: "A"},
		{Priority: 30, SourceBlockName: "QF", LayoutBlockName: "C"},
	}

	rule, ambiguity := rules.ResolveSelectorRule(
		types.DeviceSignature{SourceBlockName: "QF"}, ruleSet)

	require.NotNil(t, rule)
	assert.Equal(t, "A", rule.LayoutBlockName)
	assert.Equal(t, 1, ambiguity)
}

func TestResolveSelectorRule_SpecificityTieBreak(t *testing.T) {
	// Same priority: the rule with an explicit visibility value is more
	// specific and must beat the wildcard.
	ruleSet := []types.SelectorRule{
		{Priority: 10, SourceBlockName: "QF", LayoutBlockName: "A"},
		{Priority: 10, SourceBlockName: "QF", VisibilityValue: "2P", LayoutBlockName: "B"},
	}

	rule, ambiguity := rules.ResolveSelectorRule(
		types.DeviceSignature{SourceBlockName: "QF", VisibilityValue: "2P"}, ruleSet)

	require.NotNil(t, rule)
	assert.Equal(t, "B", rule.LayoutBlockName)
	assert.Equal(t, 1, ambiguity)
}

func TestResolveSelectorRule_SpecificWinsRegardlessOfInputOrder(t *testing.T) {
	specific := types.SelectorRule{Priority: 10, SourceBlockName: "QF", VisibilityValue: "2P", LayoutBlockName: "B"}
	wildcard := types.SelectorRule{Priority: 10, SourceBlockName: "QF", LayoutBlockName: "A"}
	sig := types.DeviceSignature{SourceBlockName: "QF", VisibilityValue: "2P"}

	for _, ruleSet := range [][]types.SelectorRule{
		{specific, wildcard},
		{wildcard, specific},
	} {
		rule, _ := rules.ResolveSelectorRule(sig, ruleSet)
		require.NotNil(t, rule)
		assert.Equal(t, "B", rule.LayoutBlockName)
	}
}

func TestResolveSelectorRule_AmbiguityCounted(t *testing.T) {
	// Two equally specific rules at equal priority: the resolver must pick
	// one deterministically and report the tie.
	ruleSet := []types.SelectorRule{
		{Priority: 10, SourceBlockName: "QF", VisibilityValue: "2P", LayoutBlockName: "Z"},
		{Priority: 10, SourceBlockName: "qf", VisibilityValue: "2p", LayoutBlockName: "A"},
	}

	rule, ambiguity := rules.ResolveSelectorRule(
		types.DeviceSignature{SourceBlockName: "QF", VisibilityValue: "2P"}, ruleSet)

	require.NotNil(t, rule)
	assert.Equal(t, 2, ambiguity)
	// First in sorted order: visibility "2P" vs "2p" compare equal after
	// lowering, so the stable sort keeps input order within the tie.
	assert.Equal(t, "Z", rule.LayoutBlockName)
}

func TestResolveSelectorRule_WildcardTieNotCountedAgainstSpecificWinner(t *testing.T) {
	ruleSet := []types.SelectorRule{
		{Priority: 10, SourceBlockName: "QF", LayoutBlockName: "A"},
		{Priority: 10, SourceBlockName: "QF", VisibilityValue: "2P", LayoutBlockName: "B"},
		{Priority: 10, SourceBlockName: "QF", LayoutBlockName: "C", VisibilityValue: ""},
	}

	rule, ambiguity := rules.ResolveSelectorRule(
		types.DeviceSignature{SourceBlockName: "QF", VisibilityValue: "2P"}, ruleSet)

	require.NotNil(t, rule)
	assert.Equal(t, "B", rule.LayoutBlockName)
	assert.Equal(t, 1, ambiguity)
}

func TestResolveSelectorRule_Deterministic(t *testing.T) {
	ruleSet := []types.SelectorRule{
		{Priority: 5, SourceBlockName: "QF", VisibilityValue: "2P", LayoutBlockName: "B"},
		{Priority: 5, SourceBlockName: "QF", VisibilityValue: "4P", LayoutBlockName: "C"},
		{Priority: 5, SourceBlockName: "QF", LayoutBlockName: "A"},
		{Priority: 1, SourceBlockName: "KM", LayoutBlockName: "K"},
	}
	sig := types.DeviceSignature{SourceBlockName: "QF", VisibilityValue: "4P"}

	first, firstCount := rules.ResolveSelectorRule(sig, ruleSet)
	second, secondCount := rules.ResolveSelectorRule(sig, ruleSet)

	require.NotNil(t, first)
	require.NotNil(t, second)
	assert.Equal(t, *first, *second)
	assert.Equal(t, firstCount, secondCount)
}

func TestSortRules_TotalOrder(t *testing.T) {
	ruleSet := []types.SelectorRule{
		{Priority: 10, SourceBlockName: "qf", VisibilityValue: "4P"},
		{Priority: 1, SourceBlockName: "XT"},
		{Priority: 10, SourceBlockName: "QF", VisibilityValue: "2P"},
		{Priority: 10, SourceBlockName: "KM"},
	}

	sorted := rules.SortRules(ruleSet)

	require.Len(t, sorted, 4)
	assert.Equal(t, "XT", sorted[0].SourceBlockName)
	assert.Equal(t, "KM", sorted[1].SourceBlockName)
	assert.Equal(t, "2P", sorted[2].VisibilityValue)
	assert.Equal(t, "4P", sorted[3].VisibilityValue)

	// Input slice untouched
	assert.Equal(t, "qf", ruleSet[0].SourceBlockName)
}
