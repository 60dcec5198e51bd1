package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MaratAhmetzyanov83/ElTool-sub000/pkg/types"
)

func TestDeviceSignatureKey(t *testing.T) {
	tests := []struct {
		name string
		sig  types.DeviceSignature
		want string
	}{
		{
			name: "with visibility",
			sig:  types.DeviceSignature{SourceBlockName: "QF", VisibilityValue: "2P"},
			want: "qf|2p",
		},
		{
			name: "without visibility",
			sig:  types.DeviceSignature{SourceBlockName: "KM"},
			want: "km|*",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.sig.Key())
		})
	}
}

func TestSelectorRuleWildcard(t *testing.T) {
	assert.True(t, types.SelectorRule{SourceBlockName: "QF"}.Wildcard())
	assert.False(t, types.SelectorRule{SourceBlockName: "QF", VisibilityValue: "2P"}.Wildcard())
}

func TestPlacementRowSplit(t *testing.T) {
	assert.False(t, types.PlacementRow{SegmentCount: 1}.Split())
	assert.True(t, types.PlacementRow{SegmentCount: 2}.Split())
}

func TestResolutionKindString(t *testing.T) {
	assert.Equal(t, "selector", types.ResolutionSelector.String())
	assert.Equal(t, "legacy", types.ResolutionLegacy.String())
	assert.Equal(t, "unresolved", types.ResolutionUnresolved.String())
}
