package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/termfolio/pkg/content"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the embedded content for consistency",
	Long: `Loads the boot script, language screen and locale tables and reports every command that
points nowhere, every missing view and every help entry without a command.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := content.Load()
		if err == nil {
			err = content.Validate(catalog)
		}
		if err != nil {
			errs := content.ValidationErrors(err)
			if len(errs) == 0 {
				return err
			}
			for _, e := range errs {
				fmt.Fprintf(cmd.ErrOrStderr(), "  - %v\n", e)
			}
			return fmt.Errorf("validation failed: %d problem(s)", len(errs))
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Content is valid! ✅")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
