package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gmsa-cli/gmsa/internal/gmail"
)

func newReplyCmd() *cobra.Command {
	var (
		account     string
		body        string
		bodyHTML    string
		attachments []string
		signature   bool
	)

	cmd := &cobra.Command{
		Use:   "reply <messageID>",
		Short: "Reply to a message",
		Long: `Reply to a message. The reply stays on the original thread, carries
In-Reply-To and References headers, and quotes the original below the
new body.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := gmail.NewClientForAccount(cmd.Context(), account)
			if err != nil {
				return err
			}

			reply := &gmail.EmailMessage{
				Body:            body,
				BodyHTML:        bodyHTML,
				Attachments:     attachments,
				AppendSignature: signature,
			}

			replyID, err := client.ReplyToEmail(args[0], reply)
			if err != nil {
				return fmt.Errorf("failed to reply: %w", err)
			}

			fmt.Printf("Reply sent. Message ID: %s\n", replyID)
			return nil
		},
	}

	cmd.Flags().StringVar(&account, "account", "default", "Account to send from")
	cmd.Flags().StringVar(&body, "body", "", "Plain text reply body")
	cmd.Flags().StringVar(&bodyHTML, "body-html", "", "HTML reply body")
	cmd.Flags().StringSliceVar(&attachments, "attach", nil, "File to attach (repeatable)")
	cmd.Flags().BoolVar(&signature, "signature", false, "Append the account's Gmail signature")

	return cmd
}
