package rulestore

import (
	"fmt"
	"strings"

	"github.com/MaratAhmetzyanov83/ElTool-sub000/pkg/rules"
	"github.com/MaratAhmetzyanov83/ElTool-sub000/pkg/types"
)

// Normalize converts a raw document into the rule set the layout engine
// consumes: names trimmed, unusable rules dropped, negative priorities
// clamped to 0, fallback counts forced to positive-or-absent. Warnings
// describe every adjustment so `rules check` can surface them.
func Normalize(doc Document) (RuleSet, []string) {
	var set RuleSet
	var warnings []string

	for i, rec := range doc.Rules {
		rule := types.SelectorRule{
			Priority:        rec.Priority,
			SourceBlockName: strings.TrimSpace(rec.SourceBlockName),
			VisibilityValue: strings.TrimSpace(rec.VisibilityValue),
			LayoutBlockName: strings.TrimSpace(rec.LayoutBlockName),
			FallbackModules: rec.FallbackModules,
		}
		if rule.SourceBlockName == "" {
			warnings = append(warnings, fmt.Sprintf("rule %d: empty SourceBlockName, dropped", i+1))
			continue
		}
		if rule.LayoutBlockName == "" {
			warnings = append(warnings, fmt.Sprintf("rule %d (%s): empty LayoutBlockName, dropped", i+1, rule.SourceBlockName))
			continue
		}
		if rule.Priority < 0 {
			warnings = append(warnings, fmt.Sprintf("rule %d (%s): negative priority %d clamped to 0", i+1, rule.SourceBlockName, rule.Priority))
			rule.Priority = 0
		}
		if rule.FallbackModules < 0 {
			warnings = append(warnings, fmt.Sprintf("rule %d (%s): negative FallbackModules discarded", i+1, rule.SourceBlockName))
			rule.FallbackModules = 0
		}
		set.Selector = append(set.Selector, rule)
	}

	for i, rec := range doc.LegacyRules {
		rule := types.LegacyRule{
			DeviceKey:       strings.TrimSpace(rec.DeviceKey),
			LayoutBlockName: strings.TrimSpace(rec.LayoutBlockName),
			FallbackModules: rec.FallbackModules,
		}
		if rule.DeviceKey == "" {
			warnings = append(warnings, fmt.Sprintf("legacy rule %d: empty DeviceKey, dropped", i+1))
			continue
		}
		if rule.LayoutBlockName == "" {
			warnings = append(warnings, fmt.Sprintf("legacy rule %d (%s): empty LayoutBlockName, dropped", i+1, rule.DeviceKey))
			continue
		}
		if rule.FallbackModules < 0 {
			warnings = append(warnings, fmt.Sprintf("legacy rule %d (%s): negative FallbackModules discarded", i+1, rule.DeviceKey))
			rule.FallbackModules = 0
		}
		set.Legacy = append(set.Legacy, rule)
	}

	return set, warnings
}

// DuplicateLegacyKeys returns the normalized keys that appear more than
// once in the legacy rule list. Only the first rule per key is ever used;
// duplicates usually indicate a stale configuration.
func DuplicateLegacyKeys(legacy []types.LegacyRule) []string {
	seen := map[string]int{}
	var order []string
	for _, rule := range legacy {
		key := rules.NormalizeKey(rule.DeviceKey)
		if key == "" {
			continue
		}
		seen[key]++
		if seen[key] == 2 {
			order = append(order, key)
		}
	}
	return order
}
