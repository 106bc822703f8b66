// Package logging provides structured logging helpers built on log/slog.
//
// It defines canonical attribute keys used across gmsa (operation,
// account, message_id, status, error) plus helpers to anonymize user
// identifiers so that logs can be correlated without exposing PII.
package logging
