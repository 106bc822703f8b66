package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gmsa-cli/gmsa/internal/gmail"
)

func newModifyCmd() *cobra.Command {
	var (
		account      string
		addLabels    []string
		removeLabels []string
	)

	cmd := &cobra.Command{
		Use:   "modify <messageID>",
		Short: "Add and/or remove labels on a message",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(addLabels) == 0 && len(removeLabels) == 0 {
				return fmt.Errorf("at least one of --add or --remove is required")
			}

			client, err := gmail.NewClientForAccount(cmd.Context(), account)
			if err != nil {
				return err
			}

			add, err := resolveLabels(client, addLabels)
			if err != nil {
				return err
			}
			remove, err := resolveLabels(client, removeLabels)
			if err != nil {
				return err
			}

			if _, err := client.ModifyLabels(args[0], add, remove); err != nil {
				return fmt.Errorf("failed to modify labels: %w", err)
			}

			fmt.Printf("Message %s labels modified.\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&account, "account", "default", "Account to use")
	cmd.Flags().StringSliceVar(&addLabels, "add", nil, "Label name or ID to add (repeatable)")
	cmd.Flags().StringSliceVar(&removeLabels, "remove", nil, "Label name or ID to remove (repeatable)")

	return cmd
}

// resolveLabels maps label names or IDs to label IDs.
func resolveLabels(client *gmail.Client, labels []string) ([]string, error) {
	ids := make([]string, 0, len(labels))
	for _, label := range labels {
		id, err := client.ResolveLabel(label)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// markActions maps the 'mark' subcommand states to client operations.
var markActions = map[string]func(*gmail.Client, string) error{
	"read":          (*gmail.Client).MarkAsRead,
	"unread":        (*gmail.Client).MarkAsUnread,
	"spam":          (*gmail.Client).MarkAsSpam,
	"not-spam":      (*gmail.Client).MarkAsNotSpam,
	"important":     (*gmail.Client).MarkAsImportant,
	"not-important": (*gmail.Client).MarkAsNotImportant,
}

func newMarkCmd() *cobra.Command {
	var account string

	cmd := &cobra.Command{
		Use:   "mark <state> <messageID>",
		Short: "Mark a message read|unread|spam|not-spam|important|not-important",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			action, ok := markActions[args[0]]
			if !ok {
				return fmt.Errorf("unknown state %q, must be one of: read, unread, spam, not-spam, important, not-important", args[0])
			}

			client, err := gmail.NewClientForAccount(cmd.Context(), account)
			if err != nil {
				return err
			}

			if err := action(client, args[1]); err != nil {
				return fmt.Errorf("failed to mark message as %s: %w", args[0], err)
			}

			fmt.Printf("Message %s marked as %s.\n", args[1], args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&account, "account", "default", "Account to use")

	return cmd
}

// newLabelActionCmd builds a single-message label mutation command.
func newLabelActionCmd(use, short string, action func(*gmail.Client, string) error, done string) func() *cobra.Command {
	return func() *cobra.Command {
		var account string

		cmd := &cobra.Command{
			Use:   use + " <messageID>",
			Short: short,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				client, err := gmail.NewClientForAccount(cmd.Context(), account)
				if err != nil {
					return err
				}

				if err := action(client, args[0]); err != nil {
					return fmt.Errorf("failed to %s message: %w", use, err)
				}

				fmt.Printf("Message %s %s.\n", args[0], done)
				return nil
			},
		}

		cmd.Flags().StringVar(&account, "account", "default", "Account to use")

		return cmd
	}
}

var (
	newStarCmd      = newLabelActionCmd("star", "Star a message", (*gmail.Client).Star, "starred")
	newUnstarCmd    = newLabelActionCmd("unstar", "Remove the star from a message", (*gmail.Client).Unstar, "unstarred")
	newArchiveCmd   = newLabelActionCmd("archive", "Remove a message from the inbox", (*gmail.Client).Archive, "archived")
	newUnarchiveCmd = newLabelActionCmd("unarchive", "Move a message back to the inbox", (*gmail.Client).Unarchive, "moved to inbox")
	newTrashCmd     = newLabelActionCmd("trash", "Move a message to the trash", (*gmail.Client).Trash, "moved to trash")
	newUntrashCmd   = newLabelActionCmd("untrash", "Restore a message from the trash", (*gmail.Client).Untrash, "restored from trash")
)
