package common

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/gmsa-cli/gmsa/internal/gmail"
	"github.com/gmsa-cli/gmsa/internal/google"
	"github.com/gmsa-cli/gmsa/internal/server"
)

// RequireGmailClient returns the Gmail client for the account, creating
// and caching it on first use. When the account has no cached token it
// returns a tool error result carrying the authorization instructions
// instead of a client.
func RequireGmailClient(ctx context.Context, sc *server.ServerContext, account string) (*gmail.Client, *mcp.CallToolResult) {
	client := sc.GmailClientForAccount(account)
	if client != nil {
		return client, nil
	}

	if !gmail.HasTokenForAccount(account) {
		return nil, mcp.NewToolResultError(AuthRequiredMessage(account))
	}

	client, err := gmail.NewClientForAccount(ctx, account)
	if err != nil {
		return nil, mcp.NewToolResultError(fmt.Sprintf("Failed to create Gmail client for account %s: %v", account, err))
	}
	sc.SetGmailClientForAccount(account, client)
	return client, nil
}

// AuthRequiredMessage builds the authorization guidance shown when a
// tool is called for an account without a cached OAuth token.
func AuthRequiredMessage(account string) string {
	authURL, err := google.GetAuthURLForAccount(account)
	if err != nil {
		return fmt.Sprintf("Invalid account %q: %v", account, err)
	}

	return fmt.Sprintf(`Gmail OAuth token not found for account "%s". To authorize access:

1. Visit this URL in your browser:
   %s

2. Sign in with your Google account
3. Grant access to Gmail
4. Copy the authorization code

5. Provide the authorization code to your AI agent
   The agent will use the google_save_auth_code tool with account="%s" to complete authentication.

Note: You only need to authorize once. The tokens will be automatically refreshed.`, account, authURL, account)
}
