package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/termfolio"
	"github.com/aretw0/termfolio/internal/presentation/tui"
	"github.com/aretw0/termfolio/pkg/content"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of termfolio",
	Run: func(cmd *cobra.Command, args []string) {
		if catalog, err := content.Load(); err == nil {
			tui.PrintBanner(cmd.OutOrStdout(), catalog.Banner)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "termfolio version %s\n", termfolio.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
