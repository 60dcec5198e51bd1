// Package text renders a packed panel layout as a per-rail slot diagram
// for the terminal. Rendering is a read-only view over placement rows: a
// segment whose layout block has no visual template is still listed, but
// flagged and reported through the shared issue shape.
package text

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/rs/zerolog"

	"github.com/MaratAhmetzyanov83/ElTool-sub000/pkg/issues"
	"github.com/MaratAhmetzyanov83/ElTool-sub000/pkg/logging"
	"github.com/MaratAhmetzyanov83/ElTool-sub000/pkg/types"
)

// TemplateSet is the set of layout block names the renderer can draw,
// compared case-insensitively. A nil set accepts every block.
type TemplateSet map[string]struct{}

// NewTemplateSet builds a template set from block names.
func NewTemplateSet(names ...string) TemplateSet {
	set := make(TemplateSet, len(names))
	for _, name := range names {
		set[strings.ToLower(name)] = struct{}{}
	}
	return set
}

// Has reports whether a layout block has a visual template.
func (ts TemplateSet) Has(name string) bool {
	if ts == nil {
		return true
	}
	_, ok := ts[strings.ToLower(name)]
	return ok
}

// Renderer draws placement rows as text.
type Renderer struct {
	logger zerolog.Logger

	railStyle    lipgloss.Style
	labelStyle   lipgloss.Style
	blockStyle   lipgloss.Style
	splitStyle   lipgloss.Style
	missingStyle lipgloss.Style
}

// NewRenderer creates a renderer writing through the given writer's color
// capabilities. colorMode is "auto", "always" or "never".
func NewRenderer(w io.Writer, colorMode string) *Renderer {
	lip := lipgloss.NewRenderer(w)
	switch colorMode {
	case "always":
		lip.SetColorProfile(termenv.ANSI256)
	case "never":
		lip.SetColorProfile(termenv.Ascii)
	default:
		if f, ok := w.(*os.File); !ok || !isatty.IsTerminal(f.Fd()) {
			lip.SetColorProfile(termenv.Ascii)
		}
	}

	return &Renderer{
		logger:       logging.GetLogger("render.text"),
		railStyle:    lip.NewStyle().Bold(true),
		labelStyle:   lip.NewStyle().Foreground(lipgloss.Color("6")),
		blockStyle:   lip.NewStyle().Faint(true),
		splitStyle:   lip.NewStyle().Foreground(lipgloss.Color("3")),
		missingStyle: lip.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
	}
}

// RenderPanel renders the placement rows rail by rail. Segments whose
// layout block is missing from the template set are flagged in the output
// and reported to the issue reporter.
func (r *Renderer) RenderPanel(rows []types.PlacementRow, modulesPerRow int, templates TemplateSet, rep *issues.Reporter) string {
	if len(rows) == 0 {
		return "Empty panel: no devices placed"
	}

	var out strings.Builder
	currentRail := 0
	for _, row := range rows {
		if row.DinRow != currentRail {
			if currentRail != 0 {
				out.WriteString("\n")
			}
			currentRail = row.DinRow
			out.WriteString(r.railStyle.Render(fmt.Sprintf("Rail %d", currentRail)))
			out.WriteString(r.blockStyle.Render(fmt.Sprintf("  (%d modules)", modulesPerRow)))
			out.WriteString("\n")
		}
		out.WriteString(r.renderSegment(row, templates, rep))
		out.WriteString("\n")
	}
	return strings.TrimRight(out.String(), "\n")
}

func (r *Renderer) renderSegment(row types.PlacementRow, templates TemplateSet, rep *issues.Reporter) string {
	slots := fmt.Sprintf("[%02d-%02d]", row.SlotStart, row.SlotEnd)
	label := r.labelStyle.Render(fmt.Sprintf("%-12s", row.Label))

	var suffix string
	if row.Split() {
		suffix = " " + r.splitStyle.Render(fmt.Sprintf("(part %d/%d)", row.SegmentIndex, row.SegmentCount))
	}

	block := row.LayoutBlockName
	if !templates.Has(row.LayoutBlockName) {
		r.logger.Warn().
			Str("id", row.ID).
			Str("layoutBlock", row.LayoutBlockName).
			Msg("No visual template for layout block")
		rep.MissingTemplate(row)
		return fmt.Sprintf("  %s %s %s%s", slots, label,
			r.missingStyle.Render("! missing template "+block), suffix)
	}

	return fmt.Sprintf("  %s %s %s%s", slots, label, r.blockStyle.Render(block), suffix)
}

// RenderIssues renders the accumulated diagnostics as a list.
func (r *Renderer) RenderIssues(skipped []types.SkippedDeviceIssue) string {
	if len(skipped) == 0 {
		return ""
	}
	var out strings.Builder
	out.WriteString(r.railStyle.Render(fmt.Sprintf("Skipped (%d)", len(skipped))))
	out.WriteString("\n")
	for _, issue := range skipped {
		ref := issue.DeviceKey
		if ref == "" {
			ref = issue.SourceBlockName
		}
		out.WriteString(fmt.Sprintf("  %s %s: %s\n",
			r.missingStyle.Render("✗"), ref, issue.Reason))
	}
	return strings.TrimRight(out.String(), "\n")
}
