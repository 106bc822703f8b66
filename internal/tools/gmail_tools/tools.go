package gmail_tools

import (
	"fmt"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/gmsa-cli/gmsa/internal/server"
)

// RegisterGmailTools registers all Gmail tools with the MCP server.
// Read tools are always available; write tools (send, reply, forward,
// label mutation, trash, attachment save) are only registered when
// readOnly is false.
func RegisterGmailTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	if err := RegisterMessageTools(s, sc); err != nil {
		return fmt.Errorf("failed to register message tools: %w", err)
	}

	if err := RegisterLabelTools(s, sc, readOnly); err != nil {
		return fmt.Errorf("failed to register label tools: %w", err)
	}

	if err := RegisterAttachmentTools(s, sc, readOnly); err != nil {
		return fmt.Errorf("failed to register attachment tools: %w", err)
	}

	if !readOnly {
		if err := RegisterEmailTools(s, sc); err != nil {
			return fmt.Errorf("failed to register email tools: %w", err)
		}
	}

	return nil
}

// formatSize formats a byte size into human-readable form.
func formatSize(bytes int64) string {
	const (
		KB = 1024
		MB = 1024 * KB
		GB = 1024 * MB
	)

	switch {
	case bytes >= GB:
		return fmt.Sprintf("%.2f GB", float64(bytes)/float64(GB))
	case bytes >= MB:
		return fmt.Sprintf("%.2f MB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.2f KB", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%d bytes", bytes)
	}
}
