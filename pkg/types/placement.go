package types

// MappedDevice is a device that passed rule resolution: it knows which
// visualization block represents it and how many modules it occupies.
// Created by the mapper, consumed once by the packer.
type MappedDevice struct {
	// ID is the originating drawing entity handle
	ID string

	// SourceBlockName is carried over from the device signature
	SourceBlockName string

	// DeviceKey is the schematic designation, may be empty
	DeviceKey string

	// DisplayLabel is what the panel visualization shows: the trimmed
	// device key when present, otherwise "source|visibility"
	DisplayLabel string

	// LayoutBlockName is the visualization block resolved from rules
	LayoutBlockName string

	// Modules is the resolved module width, always positive
	Modules int

	Group string
	Note  string
}

// PlacementRow is one placed segment: a contiguous run of slots in one DIN
// row representing part (or all) of a single device. A device that does not
// fit the remaining row capacity is split across rows into several
// segments sharing the same SegmentCount.
type PlacementRow struct {
	// ID is the originating drawing entity handle
	ID string

	// DinRow is the 1-based rail number
	DinRow int

	// SlotStart and SlotEnd are the 1-based inclusive slot range;
	// SlotEnd-SlotStart+1 == ModuleCount
	SlotStart int
	SlotEnd   int

	// LayoutBlockName is the visualization block drawn for this segment
	LayoutBlockName string

	// Label is the display label, shared by all segments of a device
	Label string

	// ModuleCount is the width of this segment in modules
	ModuleCount int

	// SegmentIndex runs 1..SegmentCount in placement order
	SegmentIndex int

	// SegmentCount is the total number of segments the device was split
	// into; 1 for devices that fit a single row
	SegmentCount int

	Group string
	Note  string
}

// Split reports whether this segment belongs to a multi-row device.
func (p PlacementRow) Split() bool {
	return p.SegmentCount > 1
}
