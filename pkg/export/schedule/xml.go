// Package schedule exports a packed panel layout as an XML panel-schedule
// document for downstream tooling. One <rail> element per DIN row, one
// <device> element per placed segment, in placement order.
package schedule

import (
	"fmt"
	"io"
	"os"

	"github.com/beevik/etree"

	"github.com/MaratAhmetzyanov83/ElTool-sub000/pkg/errors"
	"github.com/MaratAhmetzyanov83/ElTool-sub000/pkg/logging"
	"github.com/MaratAhmetzyanov83/ElTool-sub000/pkg/types"
)

// Build constructs the schedule document without writing it out.
func Build(rows []types.PlacementRow, modulesPerRow int) *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	panel := doc.CreateElement("panelSchedule")
	panel.CreateAttr("modulesPerRow", fmt.Sprintf("%d", modulesPerRow))

	var rail *etree.Element
	currentRail := 0
	for _, row := range rows {
		if row.DinRow != currentRail {
			currentRail = row.DinRow
			rail = panel.CreateElement("rail")
			rail.CreateAttr("number", fmt.Sprintf("%d", currentRail))
		}

		dev := rail.CreateElement("device")
		dev.CreateAttr("id", row.ID)
		dev.CreateAttr("label", row.Label)
		dev.CreateAttr("layoutBlock", row.LayoutBlockName)
		dev.CreateAttr("slotStart", fmt.Sprintf("%d", row.SlotStart))
		dev.CreateAttr("slotEnd", fmt.Sprintf("%d", row.SlotEnd))
		dev.CreateAttr("modules", fmt.Sprintf("%d", row.ModuleCount))
		if row.Split() {
			dev.CreateAttr("segment", fmt.Sprintf("%d", row.SegmentIndex))
			dev.CreateAttr("segmentCount", fmt.Sprintf("%d", row.SegmentCount))
		}
		if row.Group != "" {
			dev.CreateAttr("group", row.Group)
		}
		if row.Note != "" {
			dev.CreateElement("note").SetText(row.Note)
		}
	}

	doc.Indent(2)
	return doc
}

// Write renders the schedule document to a writer.
func Write(w io.Writer, rows []types.PlacementRow, modulesPerRow int) error {
	doc := Build(rows, modulesPerRow)
	if _, err := doc.WriteTo(w); err != nil {
		return errors.Wrap(err, errors.ErrExportWrite, "failed to write panel schedule")
	}
	return nil
}

// WriteFile renders the schedule document to a file.
func WriteFile(path string, rows []types.PlacementRow, modulesPerRow int) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, errors.ErrExportWrite, "failed to create schedule file %s", path)
	}
	defer func() { _ = f.Close() }()

	if err := Write(f, rows, modulesPerRow); err != nil {
		return err
	}

	logger := logging.GetLogger("export.schedule")
	logger.Info().
		Str("path", path).
		Int("segments", len(rows)).
		Msg("Panel schedule exported")
	return nil
}
