package text_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MaratAhmetzyanov83/ElTool-sub000/pkg/issues"
	"github.com/MaratAhmetzyanov83/ElTool-sub000/pkg/render/text"
	"github.com/MaratAhmetzyanov83/ElTool-sub000/pkg/types"
)

func plainRenderer() *text.Renderer {
	return text.NewRenderer(&strings.Builder{}, "never")
}

func TestRenderPanel_GroupsByRail(t *testing.T) {
	rows := []types.PlacementRow{
		{ID: "h1", DinRow: 1, SlotStart: 1, SlotEnd: 2, Label: "QF1", LayoutBlockName: "L_QF", ModuleCount: 2, SegmentIndex: 1, SegmentCount: 1},
		{ID: "h2", DinRow: 1, SlotStart: 3, SlotEnd: 6, Label: "KM1", LayoutBlockName: "L_KM", ModuleCount: 4, SegmentIndex: 1, SegmentCount: 1},
		{ID: "h3", DinRow: 2, SlotStart: 1, SlotEnd: 4, Label: "XT1", LayoutBlockName: "L_XT", ModuleCount: 4, SegmentIndex: 1, SegmentCount: 1},
	}
	rep := issues.NewReporter()

	out := plainRenderer().RenderPanel(rows, 24, nil, rep)

	assert.Contains(t, out, "Rail 1")
	assert.Contains(t, out, "Rail 2")
	assert.Contains(t, out, "[01-02]")
	assert.Contains(t, out, "[03-06]")
	assert.Contains(t, out, "QF1")
	assert.Contains(t, out, "L_KM")
	assert.Equal(t, 0, rep.Count())
}

func TestRenderPanel_MarksSplits(t *testing.T) {
	rows := []types.PlacementRow{
		{ID: "h1", DinRow: 1, SlotStart: 1, SlotEnd: 24, Label: "QF1", LayoutBlockName: "L_QF", ModuleCount: 24, SegmentIndex: 1, SegmentCount: 2},
		{ID: "h1", DinRow: 2, SlotStart: 1, SlotEnd: 6, Label: "QF1", LayoutBlockName: "L_QF", ModuleCount: 6, SegmentIndex: 2, SegmentCount: 2},
	}
	rep := issues.NewReporter()

	out := plainRenderer().RenderPanel(rows, 24, nil, rep)

	assert.Contains(t, out, "(part 1/2)")
	assert.Contains(t, out, "(part 2/2)")
}

func TestRenderPanel_ReportsMissingTemplate(t *testing.T) {
	rows := []types.PlacementRow{
		{ID: "h1", DinRow: 1, SlotStart: 1, SlotEnd: 2, Label: "QF1", LayoutBlockName: "L_KNOWN", ModuleCount: 2, SegmentIndex: 1, SegmentCount: 1},
		{ID: "h2", DinRow: 1, SlotStart: 3, SlotEnd: 4, Label: "KM1", LayoutBlockName: "L_UNKNOWN", ModuleCount: 2, SegmentIndex: 1, SegmentCount: 1},
	}
	templates := text.NewTemplateSet("l_known")
	rep := issues.NewReporter()

	out := plainRenderer().RenderPanel(rows, 24, templates, rep)

	assert.Contains(t, out, "missing template L_UNKNOWN")
	require.Equal(t, 1, rep.Count())
	issue := rep.Issues()[0]
	assert.Equal(t, "h2", issue.ID)
	assert.Contains(t, issue.Reason, "L_UNKNOWN")
}

func TestRenderPanel_Empty(t *testing.T) {
	out := plainRenderer().RenderPanel(nil, 24, nil, issues.NewReporter())
	assert.Contains(t, out, "Empty panel")
}

func TestTemplateSet_CaseInsensitive(t *testing.T) {
	templates := text.NewTemplateSet("L_QF_2P")

	assert.True(t, templates.Has("l_qf_2p"))
	assert.True(t, templates.Has("L_QF_2P"))
	assert.False(t, templates.Has("L_KM"))
}

func TestTemplateSet_NilAcceptsEverything(t *testing.T) {
	var templates text.TemplateSet
	assert.True(t, templates.Has("anything"))
}

func TestRenderIssues(t *testing.T) {
	skipped := []types.SkippedDeviceIssue{
		{ID: "h1", DeviceKey: "QF9", Reason: "no rule for SOURCE=qf|2p"},
		{ID: "h2", SourceBlockName: "KM", Reason: "no module count and no fallback"},
	}

	out := plainRenderer().RenderIssues(skipped)

	assert.Contains(t, out, "Skipped (2)")
	assert.Contains(t, out, "QF9")
	assert.Contains(t, out, "no module count and no fallback")
}

func TestRenderIssues_EmptyIsSilent(t *testing.T) {
	assert.Empty(t, plainRenderer().RenderIssues(nil))
}
