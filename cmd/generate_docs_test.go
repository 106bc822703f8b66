package cmd

import (
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
)

func TestGetCategoryFromToolName(t *testing.T) {
	tests := []struct {
		name     string
		toolName string
		expected string
	}{
		{
			name:     "gmail tool",
			toolName: "gmail_list_messages",
			expected: "Gmail Tools",
		},
		{
			name:     "google oauth tool",
			toolName: "google_get_auth_url",
			expected: "Google OAuth Tools",
		},
		{
			name:     "unknown prefix",
			toolName: "weather_forecast",
			expected: "Other",
		},
		{
			name:     "no underscore",
			toolName: "gmail",
			expected: "Gmail Tools",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := getCategoryFromToolName(tt.toolName)
			if got != tt.expected {
				t.Errorf("getCategoryFromToolName(%q) = %q, want %q", tt.toolName, got, tt.expected)
			}
		})
	}
}

func TestGenerateToolMarkdown(t *testing.T) {
	tool := mcp.Tool{
		Name:        "gmail_get_message",
		Description: "Get a single Gmail message by ID",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"messageId": map[string]interface{}{
					"type":        "string",
					"description": "The message ID",
				},
				"account": map[string]interface{}{
					"type":        "string",
					"description": "Account to use",
				},
			},
			Required: []string{"messageId"},
		},
	}

	md := generateToolMarkdown(tool)

	if !strings.Contains(md, "### gmail_get_message") {
		t.Errorf("markdown missing tool heading:\n%s", md)
	}
	if !strings.Contains(md, "Get a single Gmail message by ID") {
		t.Errorf("markdown missing description:\n%s", md)
	}
	if !strings.Contains(md, "`messageId` (required)") {
		t.Errorf("markdown missing required argument:\n%s", md)
	}
	if !strings.Contains(md, "`account` (optional)") {
		t.Errorf("markdown missing optional argument:\n%s", md)
	}
}

func TestGenerateToolsMarkdownGroupsCategories(t *testing.T) {
	tools := []mcp.Tool{
		{Name: "gmail_list_labels", Description: "List labels"},
		{Name: "google_get_auth_url", Description: "Get the OAuth URL"},
	}

	md := generateToolsMarkdown(tools)

	if !strings.Contains(md, "## Gmail Tools") {
		t.Errorf("markdown missing Gmail category:\n%s", md)
	}
	if !strings.Contains(md, "## Google OAuth Tools") {
		t.Errorf("markdown missing Google OAuth category:\n%s", md)
	}
	if !strings.Contains(md, "- [Gmail Tools](#gmail-tools)") {
		t.Errorf("markdown missing table of contents entry:\n%s", md)
	}
	if !strings.Contains(md, "## Multi-Account Support") {
		t.Errorf("markdown missing multi-account section:\n%s", md)
	}
}
