package types

import "strings"

// DeviceSignature identifies a device's visual template: the name of the
// source block in the one-line diagram plus the optional dynamic-block
// visibility variant. Signatures are compared case-insensitively.
type DeviceSignature struct {
	// SourceBlockName is the block name the device was drawn with
	SourceBlockName string

	// VisibilityValue is the dynamic-block variant, empty when the block
	// has no visibility parameter
	VisibilityValue string
}

// Key returns the lower-cased "source|visibility" form used for logging
// and display labels. A missing visibility renders as "*".
func (s DeviceSignature) Key() string {
	vis := s.VisibilityValue
	if vis == "" {
		vis = "*"
	}
	return strings.ToLower(s.SourceBlockName) + "|" + strings.ToLower(vis)
}

// RawDevice is one device pulled from the drawing selection. It is created
// by the selection provider and read-only to the layout engine.
type RawDevice struct {
	// ID is the opaque entity handle from the drawing
	ID string

	// Signature identifies the device's visual template
	Signature DeviceSignature

	// DeviceKey is the schematic designation (e.g. "QF1"), may be empty
	DeviceKey string

	// DeclaredModules is the module width declared on the device's
	// attributes; 0 or negative means not declared
	DeclaredModules int

	// Group is an optional panel group the device belongs to
	Group string

	// Note is free-form text carried through to the placement
	Note string

	// X, Y is the insertion point in the drawing; the provider sorts the
	// selection by descending Y then ascending X before handing it over
	X float64
	Y float64
}
