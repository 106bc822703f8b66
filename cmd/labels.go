package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gmsa-cli/gmsa/internal/gmail"
)

func newLabelsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "labels",
		Short: "Manage Gmail labels",
	}

	cmd.AddCommand(newLabelsListCmd())
	cmd.AddCommand(newLabelsCreateCmd())
	cmd.AddCommand(newLabelsDeleteCmd())

	return cmd
}

func newLabelsListCmd() *cobra.Command {
	var account string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all labels",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := gmail.NewClientForAccount(cmd.Context(), account)
			if err != nil {
				return err
			}

			labels, err := client.ListLabels()
			if err != nil {
				return fmt.Errorf("failed to list labels: %w", err)
			}

			for _, label := range labels {
				fmt.Printf("%-24s %s (%s)\n", label.Id, label.Name, label.Type)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&account, "account", "default", "Account to use")

	return cmd
}

func newLabelsCreateCmd() *cobra.Command {
	var account string

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a new label",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := gmail.NewClientForAccount(cmd.Context(), account)
			if err != nil {
				return err
			}

			label, err := client.CreateLabel(args[0])
			if err != nil {
				return fmt.Errorf("failed to create label: %w", err)
			}

			fmt.Printf("Label created: %s (id: %s)\n", label.Name, label.Id)
			return nil
		},
	}

	cmd.Flags().StringVar(&account, "account", "default", "Account to use")

	return cmd
}

func newLabelsDeleteCmd() *cobra.Command {
	var account string

	cmd := &cobra.Command{
		Use:   "delete <name-or-id>",
		Short: "Delete a label by name or ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := gmail.NewClientForAccount(cmd.Context(), account)
			if err != nil {
				return err
			}

			labelID, err := client.ResolveLabel(args[0])
			if err != nil {
				return err
			}

			if err := client.DeleteLabel(labelID); err != nil {
				return fmt.Errorf("failed to delete label: %w", err)
			}

			fmt.Printf("Label %s deleted.\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&account, "account", "default", "Account to use")

	return cmd
}
