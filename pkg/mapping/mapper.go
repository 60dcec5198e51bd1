// Package mapping turns raw devices from a drawing selection into mapped
// devices ready for placement, by resolving selector rules, the legacy
// device-key fallback, and the effective module count per device.
package mapping

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/MaratAhmetzyanov83/ElTool-sub000/pkg/issues"
	"github.com/MaratAhmetzyanov83/ElTool-sub000/pkg/logging"
	"github.com/MaratAhmetzyanov83/ElTool-sub000/pkg/rules"
	"github.com/MaratAhmetzyanov83/ElTool-sub000/pkg/types"
)

// Ambiguity records a device whose signature matched several equally
// specific rules at the same priority. The resolver still picks one rule
// deterministically; callers surface these as configuration warnings.
type Ambiguity struct {
	DeviceID  string
	DeviceKey string
	Signature types.DeviceSignature
	Matches   int
}

// Mapper resolves rules for raw devices in input order. The input order is
// the drawing selection's (-Y, X) sort and is load-bearing for placement,
// so the mapper never re-sorts devices.
type Mapper struct {
	logger   zerolog.Logger
	selector []types.SelectorRule
	legacy   rules.LegacyIndex
	strict   bool
}

// Option configures a Mapper.
type Option func(*Mapper)

// WithStrictMode turns the silent drop of no-rule/no-key/no-modules blocks
// into a diagnostic. Default behavior treats such blocks as decorative
// noise and drops them without a trace.
func WithStrictMode(strict bool) Option {
	return func(m *Mapper) { m.strict = strict }
}

// NewMapper creates a mapper over the given rule sets.
func NewMapper(selectorRules []types.SelectorRule, legacyRules []types.LegacyRule, opts ...Option) *Mapper {
	m := &Mapper{
		logger:   logging.GetLogger("mapping.mapper"),
		selector: rules.SortRules(selectorRules),
		legacy:   rules.NewLegacyIndex(legacyRules),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Resolve runs rule resolution for one device: selector rules first, then
// the legacy device-key lookup when no selector rule matched.
func (m *Mapper) Resolve(dev types.RawDevice) types.Resolution {
	rule, ambiguity := rules.ResolveSelectorRule(dev.Signature, m.selector)
	if rule != nil {
		return types.Resolution{Kind: types.ResolutionSelector, Selector: rule, Ambiguity: ambiguity}
	}
	if key := strings.TrimSpace(dev.DeviceKey); key != "" {
		if legacyRule, ok := m.legacy.Lookup(key); ok {
			return types.Resolution{Kind: types.ResolutionLegacy, Legacy: &legacyRule, Ambiguity: 1}
		}
	}
	return types.Resolution{Kind: types.ResolutionUnresolved}
}

// MapDevices maps each raw device to a MappedDevice or a skip diagnostic,
// preserving input order. Ambiguous resolutions are collected for the
// caller to surface as configuration warnings.
func (m *Mapper) MapDevices(devices []types.RawDevice, rep *issues.Reporter) ([]types.MappedDevice, []Ambiguity) {
	mapped := make([]types.MappedDevice, 0, len(devices))
	var ambiguities []Ambiguity

	for _, dev := range devices {
		res := m.Resolve(dev)
		if res.Ambiguity > 1 {
			m.logger.Warn().
				Str("id", dev.ID).
				Str("signature", dev.Signature.Key()).
				Int("matches", res.Ambiguity).
				Msg("Multiple equally specific rules match, using first in rule order")
			ambiguities = append(ambiguities, Ambiguity{
				DeviceID:  dev.ID,
				DeviceKey: dev.DeviceKey,
				Signature: dev.Signature,
				Matches:   res.Ambiguity,
			})
		}

		var layoutBlock string
		var fallback int
		switch res.Kind {
		case types.ResolutionSelector:
			layoutBlock = res.Selector.LayoutBlockName
			fallback = res.Selector.FallbackModules
			// Compatibility exception: a selector rule without a fallback
			// count may borrow one (never the layout block) from the
			// legacy rule for the device's key.
			if fallback <= 0 && strings.TrimSpace(dev.DeviceKey) != "" {
				if legacyRule, ok := m.legacy.Lookup(dev.DeviceKey); ok {
					fallback = legacyRule.FallbackModules
				}
			}
		case types.ResolutionLegacy:
			layoutBlock = res.Legacy.LayoutBlockName
			fallback = res.Legacy.FallbackModules
		case types.ResolutionUnresolved:
			if strings.TrimSpace(dev.DeviceKey) == "" && dev.DeclaredModules <= 0 {
				// Block with no rule, no designation and no module count:
				// a decorative artifact, dropped without a diagnostic
				// unless strict mode is on.
				if m.strict {
					rep.SkipDevice(dev, fmt.Sprintf("no rule for SOURCE=%s and no device data", dev.Signature.Key()))
				} else {
					m.logger.Debug().
						Str("id", dev.ID).
						Str("signature", dev.Signature.Key()).
						Msg("Dropping non-device block silently")
				}
				continue
			}
			rep.SkipDevice(dev, fmt.Sprintf("no rule for SOURCE=%s", dev.Signature.Key()))
			continue
		}

		modules := rules.ResolveModuleCount(dev.DeclaredModules, fallback)
		if modules == 0 {
			rep.SkipDevice(dev, "no module count and no fallback")
			continue
		}

		mapped = append(mapped, types.MappedDevice{
			ID:              dev.ID,
			SourceBlockName: dev.Signature.SourceBlockName,
			DeviceKey:       dev.DeviceKey,
			DisplayLabel:    displayLabel(dev),
			LayoutBlockName: layoutBlock,
			Modules:         modules,
			Group:           dev.Group,
			Note:            dev.Note,
		})
	}

	m.logger.Info().
		Int("devices", len(devices)).
		Int("mapped", len(mapped)).
		Int("skipped", len(devices)-len(mapped)).
		Msg("Device mapping complete")

	return mapped, ambiguities
}

// displayLabel builds what the panel visualization shows for a device: the
// trimmed device key when present, otherwise "source|visibility".
func displayLabel(dev types.RawDevice) string {
	if key := strings.TrimSpace(dev.DeviceKey); key != "" {
		return key
	}
	vis := dev.Signature.VisibilityValue
	if vis == "" {
		vis = "*"
	}
	return dev.Signature.SourceBlockName + "|" + vis
}

// MapDevices is the package-level convenience over a one-shot mapper. It
// returns the mapped devices and the accumulated skip diagnostics.
func MapDevices(devices []types.RawDevice, selectorRules []types.SelectorRule, legacyRules []types.LegacyRule) ([]types.MappedDevice, []types.SkippedDeviceIssue) {
	rep := issues.NewReporter()
	mapped, _ := NewMapper(selectorRules, legacyRules).MapDevices(devices, rep)
	return mapped, rep.Issues()
}
