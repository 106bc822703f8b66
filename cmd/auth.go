package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gmsa-cli/gmsa/internal/google"
)

func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage Gmail OAuth tokens",
	}

	cmd.AddCommand(newAuthLoginCmd())
	cmd.AddCommand(newAuthStatusCmd())
	cmd.AddCommand(newAuthLogoutCmd())

	return cmd
}

func newAuthLoginCmd() *cobra.Command {
	var (
		account  string
		readOnly bool
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authorize gmsa to access a Gmail account",
		Long: `Print the OAuth consent URL, then read the authorization code from
stdin and persist the token for the account.

Use --read-only to request the gmail.readonly scope instead of full
mail access.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				authURL string
				err     error
			)
			if readOnly {
				authURL, err = google.GetReadOnlyAuthURLForAccount(account)
			} else {
				authURL, err = google.GetAuthURLForAccount(account)
			}
			if err != nil {
				return err
			}

			fmt.Printf("Visit this URL in your browser to authorize account %q:\n\n  %s\n\n", account, authURL)
			fmt.Print("Enter the authorization code: ")

			reader := bufio.NewReader(os.Stdin)
			code, err := reader.ReadString('\n')
			if err != nil {
				return fmt.Errorf("failed to read authorization code: %w", err)
			}
			code = strings.TrimSpace(code)
			if code == "" {
				return fmt.Errorf("no authorization code provided")
			}

			if readOnly {
				err = google.SaveReadOnlyTokenForAccount(cmd.Context(), account, code)
			} else {
				err = google.SaveTokenForAccount(cmd.Context(), account, code)
			}
			if err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}

			fmt.Printf("Token saved for account %q.\n", account)
			return nil
		},
	}

	cmd.Flags().StringVar(&account, "account", "default", "Account name to authorize")
	cmd.Flags().BoolVar(&readOnly, "read-only", false, "Request read-only Gmail access")

	return cmd
}

func newAuthStatusCmd() *cobra.Command {
	var account string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show whether a cached token exists for an account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if google.HasTokenForAccount(account) {
				fmt.Printf("Account %q: authorized (cached token found)\n", account)
				return nil
			}
			fmt.Printf("Account %q: not authorized. Run 'gmsa auth login --account %s' to authorize.\n", account, account)
			return nil
		},
	}

	cmd.Flags().StringVar(&account, "account", "default", "Account name to check")

	return cmd
}

func newAuthLogoutCmd() *cobra.Command {
	var account string

	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Remove the cached token for an account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := google.RemoveTokenForAccount(account); err != nil {
				return fmt.Errorf("failed to remove token: %w", err)
			}
			fmt.Printf("Token removed for account %q.\n", account)
			return nil
		},
	}

	cmd.Flags().StringVar(&account, "account", "default", "Account name to log out")

	return cmd
}
