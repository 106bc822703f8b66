// Package cmd implements the gmsa command line interface: OAuth
// authentication, message search and reading, composing, label and
// attachment management, and the MCP server mode.
package cmd
