package rules

import (
	"strings"

	"github.com/MaratAhmetzyanov83/ElTool-sub000/pkg/types"
)

// LegacyIndex is the device-key keyed lookup over the legacy rule list.
// It is built once per layout run and consulted only when no selector
// rule matched, or to borrow a fallback module count for a selector rule
// that carries none.
type LegacyIndex struct {
	byKey map[string]types.LegacyRule
}

// NormalizeKey canonicalizes a device key for lookup.
func NormalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

// NewLegacyIndex builds the index from the legacy rule list. The first
// rule per normalized key wins, later duplicates are ignored.
func NewLegacyIndex(legacyRules []types.LegacyRule) LegacyIndex {
	byKey := make(map[string]types.LegacyRule, len(legacyRules))
	for _, rule := range legacyRules {
		key := NormalizeKey(rule.DeviceKey)
		if key == "" {
			continue
		}
		if _, exists := byKey[key]; exists {
			continue
		}
		byKey[key] = rule
	}
	return LegacyIndex{byKey: byKey}
}

// Lookup finds the legacy rule for a device key, if any.
func (ix LegacyIndex) Lookup(deviceKey string) (types.LegacyRule, bool) {
	rule, ok := ix.byKey[NormalizeKey(deviceKey)]
	return rule, ok
}

// Len returns the number of distinct keys in the index.
func (ix LegacyIndex) Len() int {
	return len(ix.byKey)
}
