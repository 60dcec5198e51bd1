// Package pipeline ties the layout stages together: rule resolution,
// device mapping and DIN-row packing, with one issue reporter spanning
// the whole run. This is the single entry point the CLI calls.
package pipeline

import (
	"github.com/MaratAhmetzyanov83/ElTool-sub000/pkg/issues"
	"github.com/MaratAhmetzyanov83/ElTool-sub000/pkg/logging"
	"github.com/MaratAhmetzyanov83/ElTool-sub000/pkg/mapping"
	"github.com/MaratAhmetzyanov83/ElTool-sub000/pkg/packing"
	"github.com/MaratAhmetzyanov83/ElTool-sub000/pkg/rulestore"
	"github.com/MaratAhmetzyanov83/ElTool-sub000/pkg/types"
)

// Options configures one layout run.
type Options struct {
	// ModulesPerRow is the rail capacity; non-positive falls back to the
	// packer default
	ModulesPerRow int

	// Strict reports blocks that would otherwise be dropped silently
	Strict bool
}

// Result is the outcome of one layout run.
type Result struct {
	// Mapped are the devices that passed rule resolution, in input order
	Mapped []types.MappedDevice

	// Rows are the placed segments, in placement order
	Rows []types.PlacementRow

	// Issues are the skip diagnostics accumulated across all stages
	Issues []types.SkippedDeviceIssue

	// Ambiguities are rule-set configuration warnings: devices whose
	// signature matched several equally specific rules
	Ambiguities []mapping.Ambiguity

	// Reporter stays open so later stages (the renderer) can append
	// diagnostics to the same run
	Reporter *issues.Reporter
}

// Run maps the ordered raw devices through the rule set and packs them
// onto DIN rails. Nothing here is fatal: unresolvable devices become
// diagnostics and the rest of the batch still produces placements.
func Run(rawDevices []types.RawDevice, set rulestore.RuleSet, opts Options) Result {
	logger := logging.GetLogger("pipeline")

	rep := issues.NewReporter()
	mapper := mapping.NewMapper(set.Selector, set.Legacy, mapping.WithStrictMode(opts.Strict))

	mapped, ambiguities := mapper.MapDevices(rawDevices, rep)
	rows := packing.PackLayout(mapped, opts.ModulesPerRow)

	logger.Info().
		Int("devices", len(rawDevices)).
		Int("mapped", len(mapped)).
		Int("segments", len(rows)).
		Int("issues", rep.Count()).
		Int("ambiguities", len(ambiguities)).
		Msg("Layout run complete")

	return Result{
		Mapped:      mapped,
		Rows:        rows,
		Issues:      rep.Issues(),
		Ambiguities: ambiguities,
		Reporter:    rep,
	}
}
