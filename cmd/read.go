package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gmsa-cli/gmsa/internal/gmail"
)

func newReadCmd() *cobra.Command {
	var (
		account string
		format  string
		rawDate bool
	)

	cmd := &cobra.Command{
		Use:   "read <messageID>",
		Short: "Print a message with parsed headers and body",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "text" && format != "html" {
				return fmt.Errorf("invalid --format %q, must be 'text' or 'html'", format)
			}

			client, err := gmail.NewClientForAccount(cmd.Context(), account)
			if err != nil {
				return err
			}

			msg, err := client.GetParsedMessage(args[0], gmail.AttachmentsReference)
			if err != nil {
				return fmt.Errorf("failed to get message: %w", err)
			}

			printMessage(msg, format, rawDate)
			return nil
		},
	}

	cmd.Flags().StringVar(&account, "account", "default", "Account to use")
	cmd.Flags().StringVar(&format, "format", "text", "Body format: text or html")
	cmd.Flags().BoolVar(&rawDate, "raw-date", false, "Print the Date header as received instead of normalized")

	return cmd
}

func printMessage(msg *gmail.Message, format string, rawDate bool) {
	date := msg.Date
	if rawDate {
		if raw := msg.Header("Date"); raw != "" {
			date = raw
		}
	}

	fmt.Printf("Message-ID: %s\nThread-ID:  %s\nFrom:    %s\nTo:      %s\n", msg.ID, msg.ThreadID, msg.From, msg.To)
	if msg.Cc != "" {
		fmt.Printf("Cc:      %s\n", msg.Cc)
	}
	fmt.Printf("Date:    %s\nSubject: %s\n", date, msg.Subject)
	if len(msg.Labels) > 0 {
		fmt.Printf("Labels:  %s\n", strings.Join(msg.Labels, ", "))
	}
	if len(msg.Attachments) > 0 {
		fmt.Println("Attachments:")
		for _, att := range msg.Attachments {
			fmt.Printf("  - %s (%s, %d bytes) [id: %s]\n", att.Filename, att.MimeType, att.Size, att.AttachmentID)
		}
	}

	body := msg.Body()
	if format == "html" && msg.HTML != "" {
		body = msg.HTML
	}
	fmt.Printf("\n%s\n", body)
}
