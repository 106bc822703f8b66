package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gmsa-cli/gmsa/internal/gmail"
)

func newThreadCmd() *cobra.Command {
	var (
		account string
		format  string
	)

	cmd := &cobra.Command{
		Use:   "thread <threadID>",
		Short: "Print every message in a thread",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "text" && format != "html" {
				return fmt.Errorf("invalid --format %q, must be 'text' or 'html'", format)
			}

			client, err := gmail.NewClientForAccount(cmd.Context(), account)
			if err != nil {
				return err
			}

			messages, err := client.GetThreadMessages(args[0], gmail.AttachmentsReference)
			if err != nil {
				return fmt.Errorf("failed to get thread: %w", err)
			}

			fmt.Printf("Thread %s (%d messages)\n", args[0], len(messages))
			for i, msg := range messages {
				fmt.Printf("\n--- Message %d of %d ---\n", i+1, len(messages))
				printMessage(msg, format, false)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&account, "account", "default", "Account to use")
	cmd.Flags().StringVar(&format, "format", "text", "Body format: text or html")

	return cmd
}
