// Package devices implements the drawing selection provider contract over
// a JSON export: it loads raw devices and applies the placement contract
// sort of descending Y then ascending X, so devices stream into the layout
// engine top-to-bottom, left-to-right as they appear on the one-line
// diagram.
package devices

import (
	"encoding/json"
	"io"
	"os"
	"sort"

	"github.com/MaratAhmetzyanov83/ElTool-sub000/pkg/errors"
	"github.com/MaratAhmetzyanov83/ElTool-sub000/pkg/logging"
	"github.com/MaratAhmetzyanov83/ElTool-sub000/pkg/types"
)

// Record mirrors one device entry in the selection export.
type Record struct {
	Handle          string  `json:"Handle"`
	SourceBlockName string  `json:"SourceBlockName"`
	VisibilityValue string  `json:"VisibilityValue,omitempty"`
	DeviceKey       string  `json:"DeviceKey,omitempty"`
	Modules         int     `json:"Modules,omitempty"`
	Group           string  `json:"Group,omitempty"`
	Note            string  `json:"Note,omitempty"`
	X               float64 `json:"X"`
	Y               float64 `json:"Y"`
}

// File is the selection export document.
type File struct {
	Devices []Record `json:"Devices"`
}

// Load reads a selection export and returns the devices in contract order.
func Load(path string) ([]types.RawDevice, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrDeviceLoad, "failed to open device file %s", path)
	}
	defer func() { _ = f.Close() }()

	devs, err := LoadReader(f)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrDeviceParse, "failed to parse device file %s", path)
	}

	logger := logging.GetLogger("devices.provider")
	logger.Info().
		Str("path", path).
		Int("devices", len(devs)).
		Msg("Device selection loaded")

	return devs, nil
}

// LoadReader decodes a selection export and returns the devices in
// contract order.
func LoadReader(r io.Reader) ([]types.RawDevice, error) {
	var doc File
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, err
	}

	devs := make([]types.RawDevice, 0, len(doc.Devices))
	for _, rec := range doc.Devices {
		devs = append(devs, types.RawDevice{
			ID: rec.Handle,
			Signature: types.DeviceSignature{
				SourceBlockName: rec.SourceBlockName,
				VisibilityValue: rec.VisibilityValue,
			},
			DeviceKey:       rec.DeviceKey,
			DeclaredModules: rec.Modules,
			Group:           rec.Group,
			Note:            rec.Note,
			X:               rec.X,
			Y:               rec.Y,
		})
	}
	Sort(devs)
	return devs, nil
}

// Sort orders devices by descending Y then ascending X, in place. The sort
// is stable so coincident insertion points keep their selection order.
func Sort(devs []types.RawDevice) {
	sort.SliceStable(devs, func(i, j int) bool {
		if devs[i].Y != devs[j].Y {
			return devs[i].Y > devs[j].Y
		}
		return devs[i].X < devs[j].X
	})
}
