package eltool

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/MaratAhmetzyanov83/ElTool-sub000/pkg/errors"
	"github.com/MaratAhmetzyanov83/ElTool-sub000/pkg/rulestore"
	"github.com/MaratAhmetzyanov83/ElTool-sub000/pkg/types"
)

func newRulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Inspect and maintain rule configuration",
	}
	cmd.AddCommand(newRulesCheckCmd(), newRulesConvertCmd())
	return cmd
}

func newRulesCheckCmd() *cobra.Command {
	var failOnWarning bool

	cmd := &cobra.Command{
		Use:   "check <rule-file>",
		Short: "Lint a rule file",
		Long: `check normalizes a rule file and reports everything a layout run
would warn about: dropped or adjusted rules, duplicate legacy device keys,
and selector rule pairs that tie ambiguously (same priority, same source
block, same specificity).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			set, warnings, err := rulestore.Load(args[0])
			if err != nil {
				return err
			}

			total := 0
			for _, warning := range warnings {
				pterm.Warning.Println(warning)
				total++
			}

			for _, key := range rulestore.DuplicateLegacyKeys(set.Legacy) {
				pterm.Warning.Printfln("duplicate legacy device key %q: only the first rule is used", key)
				total++
			}

			for _, group := range ambiguousGroups(set.Selector) {
				pterm.Warning.Printfln("ambiguous selector rules: %d rules tie for %s", group.count, group.slot)
				total++
			}

			if total == 0 {
				pterm.Success.Printfln("%d selector rules, %d legacy rules, no findings",
					len(set.Selector), len(set.Legacy))
				return nil
			}

			pterm.Info.Printfln("%d findings", total)
			if failOnWarning {
				return errors.Newf(errors.ErrRuleInvalid, "rule file has %d findings", total)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&failOnWarning, "fail-on-warning", false, "Exit non-zero when findings exist")
	return cmd
}

type ambiguousGroup struct {
	slot  string
	count int
}

// ambiguousGroups finds selector rules that would tie during resolution:
// same priority, same source block and same visibility value (including
// two wildcards) can never be told apart by the tie-break policy.
func ambiguousGroups(selector []types.SelectorRule) []ambiguousGroup {
	counts := map[string]int{}
	var order []string
	for _, rule := range selector {
		vis := strings.ToLower(rule.VisibilityValue)
		if rule.Wildcard() {
			vis = "*"
		}
		slot := fmt.Sprintf("priority=%d source=%s visibility=%s",
			rule.Priority, strings.ToLower(rule.SourceBlockName), vis)
		counts[slot]++
		if counts[slot] == 2 {
			order = append(order, slot)
		}
	}

	groups := make([]ambiguousGroup, 0, len(order))
	for _, slot := range order {
		groups = append(groups, ambiguousGroup{slot: slot, count: counts[slot]})
	}
	return groups
}

func newRulesConvertCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "convert <in> <out>",
		Short: "Convert a rule file between json, toml and yaml",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			set, warnings, err := rulestore.Load(args[0])
			if err != nil {
				return err
			}
			for _, warning := range warnings {
				pterm.Warning.Println(warning)
			}
			if err := rulestore.Save(args[1], set); err != nil {
				return err
			}
			pterm.Success.Printfln("Wrote %s", args[1])
			return nil
		},
	}
}
