package eltool

import (
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/MaratAhmetzyanov83/ElTool-sub000/pkg/config"
	"github.com/MaratAhmetzyanov83/ElTool-sub000/pkg/devices"
	"github.com/MaratAhmetzyanov83/ElTool-sub000/pkg/export/schedule"
	"github.com/MaratAhmetzyanov83/ElTool-sub000/pkg/packing"
	"github.com/MaratAhmetzyanov83/ElTool-sub000/pkg/pipeline"
	"github.com/MaratAhmetzyanov83/ElTool-sub000/pkg/render/text"
	"github.com/MaratAhmetzyanov83/ElTool-sub000/pkg/rulestore"
)

func newLayoutCmd() *cobra.Command {
	var (
		rulesPath     string
		devicesPath   string
		schedulePath  string
		colorMode     string
		modulesPerRow int
		strict        bool
	)

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Resolve rules and place devices on DIN rails",
		Long: `layout loads a rule file and a drawing selection export, maps each
device to its panel-visualization block, packs the devices onto DIN rails
and prints the resulting panel. Unresolvable devices become diagnostics,
never errors: the rest of the batch is still placed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load("")
			if err != nil {
				return err
			}
			if modulesPerRow <= 0 {
				modulesPerRow = cfg.Layout.ModulesPerRow
			}
			if modulesPerRow <= 0 {
				modulesPerRow = packing.DefaultModulesPerRow
			}
			if colorMode == "" {
				colorMode = cfg.Output.Color
			}
			strictMode := strict || cfg.Layout.Strict

			set, warnings, err := rulestore.Load(rulesPath)
			if err != nil {
				return err
			}
			for _, warning := range warnings {
				pterm.Warning.Println("rule file: " + warning)
			}

			rawDevices, err := devices.Load(devicesPath)
			if err != nil {
				return err
			}

			result := pipeline.Run(rawDevices, set, pipeline.Options{
				ModulesPerRow: modulesPerRow,
				Strict:        strictMode,
			})

			for _, amb := range result.Ambiguities {
				pterm.Warning.Printfln(
					"ambiguous rules for %s: %d equally specific matches, using first in rule order",
					amb.Signature.Key(), amb.Matches)
			}

			renderer := text.NewRenderer(os.Stdout, colorMode)
			fmt.Fprintln(cmd.OutOrStdout(), renderer.RenderPanel(result.Rows, modulesPerRow, nil, result.Reporter))

			if schedulePath != "" {
				if err := schedule.WriteFile(schedulePath, result.Rows, modulesPerRow); err != nil {
					return err
				}
				pterm.Success.Printfln("Panel schedule written to %s", schedulePath)
			}

			if skipped := result.Reporter.Issues(); len(skipped) > 0 {
				fmt.Fprintln(cmd.OutOrStdout())
				fmt.Fprintln(cmd.OutOrStdout(), renderer.RenderIssues(skipped))
			}

			pterm.Info.Printfln("%d of %d devices placed (%d segments, %d skipped)",
				len(result.Mapped), len(rawDevices), len(result.Rows), result.Reporter.Count())
			return nil
		},
	}

	cmd.Flags().StringVarP(&rulesPath, "rules", "r", "rules.json", "Rule file (json, toml or yaml)")
	cmd.Flags().StringVarP(&devicesPath, "devices", "d", "devices.json", "Drawing selection export")
	cmd.Flags().StringVarP(&schedulePath, "schedule", "s", "", "Write an XML panel schedule to this path")
	cmd.Flags().IntVarP(&modulesPerRow, "modules-per-row", "m", 0, "DIN rail capacity (overrides configuration)")
	cmd.Flags().BoolVar(&strict, "strict", false, "Report blocks that would be dropped silently")
	cmd.Flags().StringVar(&colorMode, "color", "", "Color output: auto, always or never")

	return cmd
}
