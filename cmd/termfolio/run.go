package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/termfolio/internal/cli"
	"github.com/aretw0/termfolio/pkg/content"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the portfolio in this terminal",
	Long: `Starts the full-screen portfolio when stdout is a terminal, or the line-mode shell
otherwise (or with --line).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		catalog, err := content.Load()
		if err != nil {
			return err
		}
		line, _ := cmd.Flags().GetBool("line")

		return cli.Execute(cmd.Context(), catalog, cli.RunOptions{
			Config: cfg,
			Debug:  debugFlag(cmd),
			Line:   line,
		})
	},
}

func addSessionFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("skip-boot", false, "Skip the boot sequence")
	cmd.Flags().String("locale", "", "Answer the language question in advance (en, fr)")
}

func init() {
	rootCmd.AddCommand(runCmd)

	addSessionFlags(runCmd)
	runCmd.Flags().Bool("line", false, "Force the line-mode shell")

	// 'run' is the default when no command is provided.
	addSessionFlags(rootCmd)
	rootCmd.Flags().Bool("line", false, "Force the line-mode shell")
	rootCmd.RunE = runCmd.RunE
}
