// Package google handles OAuth2 authentication against Google and the
// per-account token cache used by gmsa.
//
// Tokens are stored as google-<account>.token files under the user cache
// directory. Account names are validated to filesystem-safe characters.
// A legacy single google.token file is migrated transparently.
package google
