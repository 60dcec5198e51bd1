package rules

import (
	"sort"
	"strings"

	"github.com/MaratAhmetzyanov83/ElTool-sub000/pkg/types"
)

// Matches reports whether a selector rule applies to a device signature.
// The source block name must match case-insensitively, and the rule's
// visibility value must either be a wildcard or match the signature's
// variant case-insensitively.
func Matches(rule types.SelectorRule, sig types.DeviceSignature) bool {
	if !strings.EqualFold(rule.SourceBlockName, sig.SourceBlockName) {
		return false
	}
	if rule.Wildcard() {
		return true
	}
	return strings.EqualFold(rule.VisibilityValue, sig.VisibilityValue)
}

// SortRules returns a copy of the rule set sorted by (priority, source
// block name, visibility value), names compared case-insensitively. This
// total order is what makes same-priority/same-specificity ties resolve
// the same way on every run regardless of input order.
func SortRules(ruleSet []types.SelectorRule) []types.SelectorRule {
	sorted := make([]types.SelectorRule, len(ruleSet))
	copy(sorted, ruleSet)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Priority != b.Priority {
			return a.Priority < b.Priority
		}
		as, bs := strings.ToLower(a.SourceBlockName), strings.ToLower(b.SourceBlockName)
		if as != bs {
			return as < bs
		}
		return strings.ToLower(a.VisibilityValue) < strings.ToLower(b.VisibilityValue)
	})
	return sorted
}

// ResolveSelectorRule picks the winning rule for a signature, or nil when
// nothing matches. Among all matches the minimum priority wins; on a
// priority tie an explicit visibility value beats a wildcard; a remaining
// tie goes to the first rule in sorted order. The returned count is the
// number of rules tied for the winning slot: a value above 1 means the
// rule set is ambiguous for this signature and the caller must surface a
// configuration warning.
func ResolveSelectorRule(sig types.DeviceSignature, ruleSet []types.SelectorRule) (*types.SelectorRule, int) {
	sorted := SortRules(ruleSet)

	var winner *types.SelectorRule
	ambiguity := 0
	for i := range sorted {
		rule := &sorted[i]
		if !Matches(*rule, sig) {
			continue
		}
		switch {
		case winner == nil:
			winner = rule
			ambiguity = 1
		case beats(rule, winner):
			winner = rule
			ambiguity = 1
		case ties(rule, winner):
			ambiguity++
		}
	}
	return winner, ambiguity
}

// beats reports whether a later match outranks the current winner: a
// strictly lower priority, or an explicit visibility against a wildcard at
// the same priority.
func beats(rule, winner *types.SelectorRule) bool {
	if rule.Priority != winner.Priority {
		return rule.Priority < winner.Priority
	}
	return !rule.Wildcard() && winner.Wildcard()
}

// ties reports whether two matches are equally specific at equal priority.
func ties(rule, winner *types.SelectorRule) bool {
	return rule.Priority == winner.Priority && rule.Wildcard() == winner.Wildcard()
}
