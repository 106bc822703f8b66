package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gmsa-cli/gmsa/internal/gmail"
)

func newForwardCmd() *cobra.Command {
	var (
		account string
		to      []string
		cc      []string
		bcc     []string
		body    string
	)

	cmd := &cobra.Command{
		Use:   "forward <messageID>",
		Short: "Forward a message to new recipients",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := gmail.NewClientForAccount(cmd.Context(), account)
			if err != nil {
				return err
			}

			forwardID, err := client.ForwardEmail(args[0], to, cc, bcc, body, false)
			if err != nil {
				return fmt.Errorf("failed to forward: %w", err)
			}

			fmt.Printf("Message forwarded. Message ID: %s\n", forwardID)
			return nil
		},
	}

	cmd.Flags().StringVar(&account, "account", "default", "Account to send from")
	cmd.Flags().StringSliceVar(&to, "to", nil, "Recipient address (repeatable)")
	cmd.Flags().StringSliceVar(&cc, "cc", nil, "Cc address (repeatable)")
	cmd.Flags().StringSliceVar(&bcc, "bcc", nil, "Bcc address (repeatable)")
	cmd.Flags().StringVar(&body, "body", "", "Additional text above the forwarded message")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}
