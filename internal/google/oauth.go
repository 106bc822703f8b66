package google

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/gmsa-cli/gmsa/internal/logging"
)

// accountNamePattern restricts account names to filesystem-safe characters.
var accountNamePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// validateAccountName checks that an account name is safe to use in a file path.
func validateAccountName(account string) error {
	if account == "" {
		return fmt.Errorf("account name must not be empty")
	}
	if !accountNamePattern.MatchString(account) {
		return fmt.Errorf("invalid account name %q: only letters, digits, hyphens and underscores are allowed", account)
	}
	return nil
}

// getTokenFilePath returns the token file path for the given account.
// Tokens are stored per account as google-<account>.token in the cache directory.
func getTokenFilePath(account string) string {
	cacheDir := filepath.Join(userCacheDir(), "gmsa")
	return filepath.Join(cacheDir, fmt.Sprintf("google-%s.token", account))
}

// HasToken checks if a valid OAuth token exists for the default account
func HasToken() bool {
	return HasTokenForAccount("default")
}

// HasTokenForAccount checks if a token file exists for the specified account
func HasTokenForAccount(account string) bool {
	if err := validateAccountName(account); err != nil {
		return false
	}
	_, err := os.ReadFile(getTokenFilePath(account))
	return err == nil
}

// GetAuthURL returns the OAuth URL for user authorization of the default account
func GetAuthURL() string {
	conf := getOAuthConfig(DefaultOAuthScopes)
	return conf.AuthCodeURL("state")
}

// GetAuthURLForAccount returns the OAuth URL for user authorization of the given account
func GetAuthURLForAccount(account string) (string, error) {
	if err := validateAccountName(account); err != nil {
		return "", err
	}
	conf := getOAuthConfig(DefaultOAuthScopes)
	return conf.AuthCodeURL("state"), nil
}

// GetReadOnlyAuthURLForAccount returns an OAuth URL requesting only read scopes.
// Tokens obtained this way cannot send mail or modify labels.
func GetReadOnlyAuthURLForAccount(account string) (string, error) {
	if err := validateAccountName(account); err != nil {
		return "", err
	}
	conf := getOAuthConfig(ReadOnlyOAuthScopes)
	return conf.AuthCodeURL("state"), nil
}

// SaveToken exchanges an authorization code for tokens and saves them for the default account
func SaveToken(ctx context.Context, authCode string) error {
	return SaveTokenForAccount(ctx, "default", authCode)
}

// SaveTokenForAccount exchanges an authorization code and saves the token for the given account
func SaveTokenForAccount(ctx context.Context, account, authCode string) error {
	return saveTokenForAccount(ctx, account, authCode, DefaultOAuthScopes)
}

// SaveReadOnlyTokenForAccount is like SaveTokenForAccount but exchanges a
// code obtained with the read-only consent URL.
func SaveReadOnlyTokenForAccount(ctx context.Context, account, authCode string) error {
	return saveTokenForAccount(ctx, account, authCode, ReadOnlyOAuthScopes)
}

func saveTokenForAccount(ctx context.Context, account, authCode string, scopes []string) error {
	if err := validateAccountName(account); err != nil {
		return err
	}

	conf := getOAuthConfig(scopes)

	t, err := conf.Exchange(ctx, authCode)
	if err != nil {
		return fmt.Errorf("failed to exchange auth code: %w", err)
	}

	tokenFile := getTokenFilePath(account)
	if err := os.MkdirAll(filepath.Dir(tokenFile), 0700); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	tokenData := t.AccessToken + " " + t.RefreshToken
	if err := os.WriteFile(tokenFile, []byte(tokenData), 0600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}

	return nil
}

// RemoveTokenForAccount deletes the cached token for the given account.
// Removing a token that does not exist is not an error.
func RemoveTokenForAccount(account string) error {
	if err := validateAccountName(account); err != nil {
		return err
	}
	if err := os.Remove(getTokenFilePath(account)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove token file: %w", err)
	}
	return nil
}

// MigrateDefaultToken moves a legacy single-account token file (google.token)
// to the per-account layout (google-default.token). It is idempotent and a
// no-op when no legacy file exists or the default token is already present.
func MigrateDefaultToken() error {
	cacheDir := filepath.Join(userCacheDir(), "gmsa")
	oldTokenFile := filepath.Join(cacheDir, "google.token")
	newTokenFile := getTokenFilePath("default")

	if _, err := os.Stat(oldTokenFile); os.IsNotExist(err) {
		return nil
	}
	if _, err := os.Stat(newTokenFile); err == nil {
		// Both exist; keep the new layout and drop the legacy file
		if err := os.Remove(oldTokenFile); err != nil {
			return fmt.Errorf("failed to remove legacy token file: %w", err)
		}
		return nil
	}

	if err := os.Rename(oldTokenFile, newTokenFile); err != nil {
		return fmt.Errorf("failed to migrate token file: %w", err)
	}
	return nil
}

// getOAuthConfig returns the OAuth2 configuration for the Gmail API.
// Client credentials can be overridden via GMSA_GOOGLE_CLIENT_ID and
// GMSA_GOOGLE_CLIENT_SECRET for users who bring their own OAuth client.
func getOAuthConfig(scopes []string) *oauth2.Config {
	const OOB = "urn:ietf:wg:oauth:2.0:oob"

	clientID := os.Getenv("GMSA_GOOGLE_CLIENT_ID")
	if clientID == "" {
		clientID = "407408718192-q6qk2ab5u9mhk0c9jefkdqmc1a0hm59n.apps.googleusercontent.com"
	}
	clientSecret := os.Getenv("GMSA_GOOGLE_CLIENT_SECRET")
	if clientSecret == "" {
		clientSecret = "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"
	}

	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint:     google.Endpoint,
		RedirectURL:  OOB,
		Scopes:       scopes,
	}
}

// GetTokenSource returns an OAuth2 token source for the default account
func GetTokenSource(ctx context.Context) (oauth2.TokenSource, error) {
	return GetTokenSourceForAccount(ctx, "default")
}

// GetTokenSourceForAccount returns an OAuth2 token source for the stored token
// of the given account. Returns an error if no valid token exists.
func GetTokenSourceForAccount(ctx context.Context, account string) (oauth2.TokenSource, error) {
	if err := validateAccountName(account); err != nil {
		return nil, err
	}

	conf := getOAuthConfig(DefaultOAuthScopes)

	slurp, err := os.ReadFile(getTokenFilePath(account))
	if err != nil {
		return nil, fmt.Errorf("no valid Google OAuth token found for account %q", account)
	}

	f := strings.Fields(strings.TrimSpace(string(slurp)))
	if len(f) != 2 {
		return nil, fmt.Errorf("invalid token format for account %q", account)
	}

	ts := conf.TokenSource(ctx, &oauth2.Token{
		AccessToken:  f[0],
		TokenType:    "Bearer",
		RefreshToken: f[1],
		Expiry:       time.Unix(1, 0),
	})

	// Validate the token
	if _, err := ts.Token(); err != nil {
		slog.Warn("cached token invalid", logging.Account(account), logging.Err(err))
		return nil, fmt.Errorf("cached token for account %q is invalid: %w", account, err)
	}

	return ts, nil
}

// GetHTTPClient returns an authenticated HTTP client for the default account
func GetHTTPClient(ctx context.Context) (*http.Client, error) {
	return GetHTTPClientForAccount(ctx, "default")
}

// GetHTTPClientForAccount returns an HTTP client configured with OAuth2 authentication
// The client is configured to use HTTP/1.1 to avoid HTTP/2 protocol errors
func GetHTTPClientForAccount(ctx context.Context, account string) (*http.Client, error) {
	ts, err := GetTokenSourceForAccount(ctx, account)
	if err != nil {
		return nil, err
	}
	return newHTTP1Client(ctx, ts), nil
}

// NewHTTPClientForToken returns an HTTP client that authenticates requests
// with the given token, refreshing it through the standard OAuth config.
func NewHTTPClientForToken(ctx context.Context, token *oauth2.Token) *http.Client {
	conf := getOAuthConfig(DefaultOAuthScopes)
	return newHTTP1Client(ctx, conf.TokenSource(ctx, token))
}

// newHTTP1Client wraps a token source in an HTTP client with HTTP/2 disabled.
func newHTTP1Client(ctx context.Context, ts oauth2.TokenSource) *http.Client {
	client := oauth2.NewClient(ctx, ts)

	transport := client.Transport.(*oauth2.Transport)
	transport.Base = &http.Transport{
		ForceAttemptHTTP2: false,
	}

	return client
}

// GetAuthenticationErrorMessage returns a user-facing message explaining how
// to authenticate the given account.
func GetAuthenticationErrorMessage(account string) string {
	return fmt.Sprintf("No OAuth token found for account %q. "+
		"Run 'gmsa auth login --account %s' and follow the printed URL to authorize access, "+
		"or use the google_get_auth_url and google_save_auth_code tools.", account, account)
}

func userCacheDir() string {
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(homeDir(), "Library", "Caches")
	case "windows":
		for _, ev := range []string{"TEMP", "TMP"} {
			if v := os.Getenv(ev); v != "" {
				return v
			}
		}
		panic("No Windows TEMP or TMP environment variables found")
	}
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return xdg
	}
	return filepath.Join(homeDir(), ".cache")
}

func homeDir() string {
	if runtime.GOOS == "windows" {
		return os.Getenv("HOMEDRIVE") + os.Getenv("HOMEPATH")
	}
	return os.Getenv("HOME")
}
