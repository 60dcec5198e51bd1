package types

// SelectorRule maps a device signature to a panel-visualization block.
// Rules form an ordered set: lower Priority wins, and among rules at the
// same priority an explicit VisibilityValue is more specific than a
// wildcard.
type SelectorRule struct {
	// Priority orders the rule set, lower values win; never negative
	Priority int

	// SourceBlockName is matched case-insensitively against the device
	// signature's source block name
	SourceBlockName string

	// VisibilityValue is matched case-insensitively against the device
	// signature's variant; empty acts as a wildcard
	VisibilityValue string

	// LayoutBlockName is the visualization block placed on the panel
	LayoutBlockName string

	// FallbackModules is the module width used when the device declares
	// none; 0 means the rule carries no fallback
	FallbackModules int
}

// Wildcard reports whether the rule matches any visibility variant.
func (r SelectorRule) Wildcard() bool {
	return r.VisibilityValue == ""
}

// LegacyRule is the older device-key-to-layout-block mapping retained for
// backward compatibility. Keys are compared case-insensitively after
// trimming; the first rule per key wins.
type LegacyRule struct {
	DeviceKey       string
	LayoutBlockName string
	FallbackModules int
}

// ResolutionKind tags the outcome of rule resolution for one device.
type ResolutionKind int

const (
	// ResolutionUnresolved means no selector or legacy rule matched
	ResolutionUnresolved ResolutionKind = iota

	// ResolutionSelector means a selector rule won the match
	ResolutionSelector

	// ResolutionLegacy means the legacy device-key lookup supplied the
	// layout block
	ResolutionLegacy
)

// String returns the resolution kind name for logging.
func (k ResolutionKind) String() string {
	switch k {
	case ResolutionSelector:
		return "selector"
	case ResolutionLegacy:
		return "legacy"
	default:
		return "unresolved"
	}
}

// Resolution is the outcome of resolving rules for one device. Exactly one
// of Selector or Legacy is set, matching Kind; both are nil when
// unresolved.
type Resolution struct {
	Kind     ResolutionKind
	Selector *SelectorRule
	Legacy   *LegacyRule

	// Ambiguity counts the rules tied for the winning (priority,
	// specificity) slot; a value above 1 must be surfaced as a
	// configuration warning by the caller
	Ambiguity int
}
