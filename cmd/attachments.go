package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gmsa-cli/gmsa/internal/gmail"
)

func newAttachmentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "attachments",
		Short: "List and save message attachments",
	}

	cmd.AddCommand(newAttachmentsListCmd())
	cmd.AddCommand(newAttachmentsSaveCmd())

	return cmd
}

func newAttachmentsListCmd() *cobra.Command {
	var account string

	cmd := &cobra.Command{
		Use:   "list <messageID>",
		Short: "List all attachments in a message",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := gmail.NewClientForAccount(cmd.Context(), account)
			if err != nil {
				return err
			}

			attachments, err := client.ListAttachments(args[0])
			if err != nil {
				return fmt.Errorf("failed to list attachments: %w", err)
			}

			if len(attachments) == 0 {
				fmt.Println("No attachments found.")
				return nil
			}

			for _, att := range attachments {
				fmt.Printf("%s  %s (%s, %d bytes)\n", att.AttachmentID, att.Filename, att.MimeType, att.Size)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&account, "account", "default", "Account to use")

	return cmd
}

func newAttachmentsSaveCmd() *cobra.Command {
	var (
		account      string
		attachmentID string
		outputDir    string
		overwrite    bool
	)

	cmd := &cobra.Command{
		Use:   "save <messageID>",
		Short: "Save message attachments to a directory",
		Long: `Save attachments to a directory. All attachments are saved unless
--attachment-id selects one. Existing files are never overwritten
unless --overwrite is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := gmail.NewClientForAccount(cmd.Context(), account)
			if err != nil {
				return err
			}

			attachments, err := client.ListAttachments(args[0])
			if err != nil {
				return fmt.Errorf("failed to list attachments: %w", err)
			}
			if len(attachments) == 0 {
				return fmt.Errorf("message %s has no attachments", args[0])
			}

			saved := 0
			for _, att := range attachments {
				if attachmentID != "" && att.AttachmentID != attachmentID {
					continue
				}
				path, err := att.SaveTo(outputDir, overwrite)
				if err != nil {
					return fmt.Errorf("failed to save %s: %w", att.Filename, err)
				}
				fmt.Printf("Saved %s\n", path)
				saved++
			}

			if saved == 0 {
				return fmt.Errorf("no attachment with ID %s in message %s", attachmentID, args[0])
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&account, "account", "default", "Account to use")
	cmd.Flags().StringVar(&attachmentID, "attachment-id", "", "Save only this attachment")
	cmd.Flags().StringVarP(&outputDir, "output", "o", ".", "Directory to save into")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing files")

	return cmd
}
