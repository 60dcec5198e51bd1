// Package issues accumulates the non-fatal diagnostics of a layout run.
// Every stage reports through the same SkippedDeviceIssue shape: the
// mapper for unresolved rules and missing module counts, and the renderer
// for layout blocks with no visual template.
package issues

import (
	"github.com/rs/zerolog"

	"github.com/MaratAhmetzyanov83/ElTool-sub000/pkg/logging"
	"github.com/MaratAhmetzyanov83/ElTool-sub000/pkg/types"
)

// Reporter collects skip and placement diagnostics in insertion order for
// the caller to surface. It is scoped to one layout run.
type Reporter struct {
	issues []types.SkippedDeviceIssue
	logger zerolog.Logger
}

// NewReporter creates an empty reporter.
func NewReporter() *Reporter {
	return &Reporter{
		logger: logging.GetLogger("issues.reporter"),
	}
}

// Report records one diagnostic.
func (r *Reporter) Report(issue types.SkippedDeviceIssue) {
	r.logger.Debug().
		Str("id", issue.ID).
		Str("deviceKey", issue.DeviceKey).
		Str("source", issue.SourceBlockName).
		Str("reason", issue.Reason).
		Msg("Device issue reported")
	r.issues = append(r.issues, issue)
}

// SkipDevice records a dropped device with the given reason.
func (r *Reporter) SkipDevice(dev types.RawDevice, reason string) {
	r.Report(types.SkippedDeviceIssue{
		ID:              dev.ID,
		Reason:          reason,
		DeviceKey:       dev.DeviceKey,
		SourceBlockName: dev.Signature.SourceBlockName,
	})
}

// MissingTemplate records a render-time failure: a placed segment whose
// layout block has no matching visual template. The renderer cannot draw
// it, but the layout itself stays valid.
func (r *Reporter) MissingTemplate(row types.PlacementRow) {
	r.Report(types.SkippedDeviceIssue{
		ID:              row.ID,
		Reason:          "no visual template for layout block " + row.LayoutBlockName,
		DeviceKey:       row.Label,
		SourceBlockName: row.LayoutBlockName,
	})
}

// Issues returns the accumulated diagnostics in insertion order.
func (r *Reporter) Issues() []types.SkippedDeviceIssue {
	return r.issues
}

// Count returns the number of accumulated diagnostics.
func (r *Reporter) Count() int {
	return len(r.issues)
}
