package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/gmsa-cli/gmsa/internal/google"
	"github.com/gmsa-cli/gmsa/internal/logging"
)

// rootCmd represents the base command for the gmsa application
var rootCmd = &cobra.Command{
	Use:   "gmsa",
	Short: "Simple Gmail operations from the command line",
	Long: `gmsa authenticates against the Gmail API with OAuth2 and performs
simplified mail operations: searching and reading messages, sending,
replying and forwarding, label management, and attachment handling.

It can run as:
  - A standalone CLI tool (default)
  - An MCP (Model Context Protocol) server for AI assistants`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Move any legacy single-account token file to the per-account layout
		if err := google.MigrateDefaultToken(); err != nil {
			slog.Warn("failed to migrate legacy token file", logging.Err(err))
		}
	},
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "gmsa version %s\n" .Version}}`)

	// If no subcommand is provided, list messages by default
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "messages")
	}

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newAuthCmd())
	rootCmd.AddCommand(newMessagesCmd())
	rootCmd.AddCommand(newReadCmd())
	rootCmd.AddCommand(newThreadCmd())
	rootCmd.AddCommand(newSendCmd())
	rootCmd.AddCommand(newReplyCmd())
	rootCmd.AddCommand(newForwardCmd())
	rootCmd.AddCommand(newLabelsCmd())
	rootCmd.AddCommand(newModifyCmd())
	rootCmd.AddCommand(newMarkCmd())
	rootCmd.AddCommand(newStarCmd(), newUnstarCmd())
	rootCmd.AddCommand(newArchiveCmd(), newUnarchiveCmd())
	rootCmd.AddCommand(newTrashCmd(), newUntrashCmd())
	rootCmd.AddCommand(newAttachmentsCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newGenerateDocsCmd())
	rootCmd.AddCommand(newVersionCmd())
}
