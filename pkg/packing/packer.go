// Package packing bin-packs mapped devices onto fixed-capacity DIN rails.
//
// Placement is strictly greedy, single-pass and order-preserving: devices
// fill the current rail left to right, a device that overflows the
// remaining capacity is split across rail boundaries into labeled
// segments, and a rail is never revisited once passed. This is a
// scheduling policy, not an optimizer — identical input always produces
// identical placement.
package packing

import (
	"github.com/MaratAhmetzyanov83/ElTool-sub000/pkg/logging"
	"github.com/MaratAhmetzyanov83/ElTool-sub000/pkg/types"
)

// DefaultModulesPerRow is the rail capacity used when the caller passes a
// non-positive value.
const DefaultModulesPerRow = 24

// cursor tracks the fill position on the panel: the current rail and the
// slots already occupied on it. It is local to one PackLayout invocation
// and must not be reused across unrelated layout runs.
type cursor struct {
	row      int
	occupied int
}

// segment is one contiguous chunk produced by a fill step.
type segment struct {
	row       int
	slotStart int
	count     int
}

// step places the next chunk of a device, advancing to the next rail when
// the current one is full. The same stepping function drives both the
// dry-run segment count and the real fill, so the two can never disagree.
func step(cur *cursor, remaining, perRow int) segment {
	if cur.occupied >= perRow {
		cur.row++
		cur.occupied = 0
	}
	free := perRow - cur.occupied
	chunk := remaining
	if chunk > free {
		chunk = free
	}
	seg := segment{row: cur.row, slotStart: cur.occupied + 1, count: chunk}
	cur.occupied += chunk
	return seg
}

// segmentCount dry-runs the fill for one device from a copy of the cursor.
// The count must be known before the first segment is emitted, because
// every segment is stamped with the device's final SegmentCount.
func segmentCount(cur cursor, modules, perRow int) int {
	count := 0
	for remaining := modules; remaining > 0; count++ {
		seg := step(&cur, remaining, perRow)
		remaining -= seg.count
	}
	return count
}

// PackLayout places the ordered mapped devices onto DIN rails of the given
// capacity and returns one PlacementRow per emitted segment. A
// non-positive modulesPerRow falls back to DefaultModulesPerRow. Module
// counts below 1 are normalized to 1.
func PackLayout(devices []types.MappedDevice, modulesPerRow int) []types.PlacementRow {
	logger := logging.GetLogger("packing.packer")

	perRow := modulesPerRow
	if perRow <= 0 {
		perRow = DefaultModulesPerRow
	}

	cur := cursor{row: 1}
	rows := make([]types.PlacementRow, 0, len(devices))

	for _, dev := range devices {
		modules := dev.Modules
		if modules < 1 {
			modules = 1
		}

		total := segmentCount(cur, modules, perRow)
		if total > 1 {
			logger.Debug().
				Str("id", dev.ID).
				Str("label", dev.DisplayLabel).
				Int("modules", modules).
				Int("segments", total).
				Msg("Device split across rail boundary")
		}

		index := 1
		for remaining := modules; remaining > 0; index++ {
			seg := step(&cur, remaining, perRow)
			remaining -= seg.count
			rows = append(rows, types.PlacementRow{
				ID:              dev.ID,
				DinRow:          seg.row,
				SlotStart:       seg.slotStart,
				SlotEnd:         seg.slotStart + seg.count - 1,
				LayoutBlockName: dev.LayoutBlockName,
				Label:           dev.DisplayLabel,
				ModuleCount:     seg.count,
				SegmentIndex:    index,
				SegmentCount:    total,
				Group:           dev.Group,
				Note:            dev.Note,
			})
		}
	}

	logger.Info().
		Int("devices", len(devices)).
		Int("segments", len(rows)).
		Int("modulesPerRow", perRow).
		Msg("Layout packing complete")

	return rows
}
