package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/termfolio/internal/cli"
	"github.com/aretw0/termfolio/pkg/content"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Exposes the portfolio as a JSON API: stateless content endpoints, session-backed
terminals, server-sent events and Prometheus metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		catalog, err := content.Load()
		if err != nil {
			return err
		}
		return cli.Serve(cmd.Context(), catalog, cli.ServeOptions{
			Config: cfg,
			Debug:  debugFlag(cmd),
		})
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on")
	serveCmd.Flags().String("redis-url", "", "Store sessions in Redis (default: in memory)")
	serveCmd.Flags().Duration("session-ttl", 0, "Expire idle Redis sessions after this long (0 keeps them)")
	serveCmd.Flags().Bool("redact", false, "Mask e-mails and phone numbers in stored history")
}
