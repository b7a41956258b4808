package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/termfolio/internal/presentation/graph"
	"github.com/aretw0/termfolio/internal/presentation/tui"
	"github.com/aretw0/termfolio/pkg/content"
	"github.com/aretw0/termfolio/pkg/domain"
)

var commandsCmd = &cobra.Command{
	Use:   "commands",
	Short: "Print the command table of a locale",
	Long: `Renders the shell commands of a locale as a Markdown table, or as a Mermaid diagram
(graph LR) of which tokens open which views with --format mermaid.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		localeCode, _ := cmd.Flags().GetString("locale")
		format, _ := cmd.Flags().GetString("format")

		locale, err := domain.ParseLocale(localeCode)
		if err != nil {
			return err
		}
		catalog, err := content.Load()
		if err != nil {
			return err
		}
		table, err := catalog.Table(locale)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		switch format {
		case "mermaid":
			fmt.Fprint(out, graph.GenerateMermaid(table, nil))
		case "markdown":
			fmt.Fprint(out, tui.CommandsMarkdown(table))
		case "", "pretty":
			rendered, err := tui.NewRenderer()(tui.CommandsMarkdown(table))
			if err != nil {
				return err
			}
			fmt.Fprint(out, rendered)
		default:
			return fmt.Errorf("unknown format %q (want pretty, markdown or mermaid)", format)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(commandsCmd)
	commandsCmd.Flags().StringP("locale", "l", string(domain.DefaultLocale), "Locale of the command table")
	commandsCmd.Flags().StringP("format", "f", "pretty", "Output format: pretty, markdown or mermaid")
}
