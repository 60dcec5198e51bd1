package main

import (
	"os"

	"github.com/pterm/pterm"

	eltool "github.com/MaratAhmetzyanov83/ElTool-sub000/cmd/eltool"
)

func main() {
	rootCmd := eltool.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}
