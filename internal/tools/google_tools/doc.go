// Package google_tools provides MCP tools for the Google OAuth flow:
// fetching the consent URL for an account and exchanging the pasted
// authorization code for a cached token.
package google_tools
