package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gmsa-cli/gmsa/internal/gmail"
)

func newSendCmd() *cobra.Command {
	var (
		account     string
		to          []string
		cc          []string
		bcc         []string
		subject     string
		body        string
		bodyHTML    string
		attachments []string
		signature   bool
	)

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send an email",
		Long: `Send an email. At least one of --body and --body-html is required;
when both are given a multipart/alternative message is sent. Files
given with --attach are added as attachments.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := gmail.NewClientForAccount(cmd.Context(), account)
			if err != nil {
				return err
			}

			msg := &gmail.EmailMessage{
				To:              to,
				Cc:              cc,
				Bcc:             bcc,
				Subject:         subject,
				Body:            body,
				BodyHTML:        bodyHTML,
				Attachments:     attachments,
				AppendSignature: signature,
			}

			messageID, err := client.SendEmail(msg)
			if err != nil {
				return fmt.Errorf("failed to send email: %w", err)
			}

			fmt.Printf("Email sent. Message ID: %s\n", messageID)
			return nil
		},
	}

	cmd.Flags().StringVar(&account, "account", "default", "Account to send from")
	cmd.Flags().StringSliceVar(&to, "to", nil, "Recipient address (repeatable)")
	cmd.Flags().StringSliceVar(&cc, "cc", nil, "Cc address (repeatable)")
	cmd.Flags().StringSliceVar(&bcc, "bcc", nil, "Bcc address (repeatable)")
	cmd.Flags().StringVar(&subject, "subject", "", "Email subject")
	cmd.Flags().StringVar(&body, "body", "", "Plain text body")
	cmd.Flags().StringVar(&bodyHTML, "body-html", "", "HTML body")
	cmd.Flags().StringSliceVar(&attachments, "attach", nil, "File to attach (repeatable)")
	cmd.Flags().BoolVar(&signature, "signature", false, "Append the account's Gmail signature")
	_ = cmd.MarkFlagRequired("to")
	_ = cmd.MarkFlagRequired("subject")

	return cmd
}
