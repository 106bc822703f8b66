// Package batch provides helpers for MCP tools that operate on one or
// many IDs: argument parsing for string-or-array parameters, per-item
// execution, and JSON result formatting.
package batch
