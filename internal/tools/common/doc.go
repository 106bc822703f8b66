// Package common provides shared helpers for MCP tool handlers:
// account extraction from request arguments, lazy Gmail client lookup
// with authorization guidance, and instrumentation wrappers.
package common
