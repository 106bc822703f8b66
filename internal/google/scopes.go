package google

import gmail "google.golang.org/api/gmail/v1"

// DefaultOAuthScopes are the Google OAuth scopes requested on login.
//
// The scopes provide access to:
//   - Gmail: read, modify, send (full mail scope)
//   - Gmail settings: read-only access to send-as aliases for signatures
var DefaultOAuthScopes = []string{
	gmail.MailGoogleComScope,
	gmail.GmailSettingsBasicScope,
}

// ReadOnlyOAuthScopes are the scopes requested with --read-only login.
// Tokens obtained with these scopes can list and read mail but cannot
// send, modify labels, or trash messages.
var ReadOnlyOAuthScopes = []string{
	gmail.GmailReadonlyScope,
	gmail.GmailSettingsBasicScope,
}
