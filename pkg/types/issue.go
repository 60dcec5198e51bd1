package types

// SkippedDeviceIssue is the diagnostic shape shared by every non-fatal
// failure in the layout run: unresolved rules, zero module counts, and
// render-time missing visualization blocks all use it.
type SkippedDeviceIssue struct {
	// ID is the drawing entity handle of the affected device
	ID string

	// Reason is a human-readable description of why the device was
	// dropped
	Reason string

	// DeviceKey is the schematic designation when known
	DeviceKey string

	// SourceBlockName is the device's source block when known
	SourceBlockName string
}
