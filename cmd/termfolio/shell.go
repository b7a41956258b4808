package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/termfolio/internal/cli"
	"github.com/aretw0/termfolio/pkg/content"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Run the line-mode shell",
	Long: `Drives the portfolio over plain stdin/stdout. With --json every output is a JSON line
and every input line may be a JSON string. With --session the terminal state survives restarts.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		catalog, err := content.Load()
		if err != nil {
			return err
		}
		jsonMode, _ := cmd.Flags().GetBool("json")
		sessionID, _ := cmd.Flags().GetString("session")

		return cli.RunShell(cmd.Context(), catalog, cli.RunOptions{
			Config:    cfg,
			Debug:     debugFlag(cmd),
			Line:      true,
			JSON:      jsonMode,
			SessionID: sessionID,
		})
	},
}

func init() {
	rootCmd.AddCommand(shellCmd)

	addSessionFlags(shellCmd)
	shellCmd.Flags().Bool("json", false, "Run in JSON mode (NDJSON input/output)")
	shellCmd.Flags().StringP("session", "s", "", "Persist the terminal under this session ID")
	shellCmd.Flags().String("session-dir", "", "Directory of the file session store")
	shellCmd.Flags().String("redis-url", "", "Store sessions in Redis instead of files")
	shellCmd.Flags().Bool("redact", false, "Mask e-mails and phone numbers in stored history")
}
