package eltool

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MaratAhmetzyanov83/ElTool-sub000/pkg/config"
)

func newGenConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "genconfig",
		Short: "Print the default configuration",
		Long: `genconfig prints the embedded default configuration. Redirect it to
eltool.toml in the project directory to start customizing.`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), config.GetDefaultConfigContent())
		},
	}
}
