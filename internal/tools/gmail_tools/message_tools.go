package gmail_tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/gmsa-cli/gmsa/internal/gmail"
	"github.com/gmsa-cli/gmsa/internal/instrumentation"
	"github.com/gmsa-cli/gmsa/internal/server"
	"github.com/gmsa-cli/gmsa/internal/tools/common"
)

// RegisterMessageTools registers the read-only message tools.
func RegisterMessageTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	listMessagesTool := mcp.NewTool("gmail_list_messages",
		mcp.WithDescription("List Gmail messages matching a search query"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("query",
			mcp.Description("Gmail search query (e.g., 'is:unread', 'from:user@example.com')"),
		),
		mcp.WithString("labelIds",
			mcp.Description("Label ID (string) or array of label IDs to filter by"),
		),
		mcp.WithNumber("maxResults",
			mcp.Description("Maximum number of messages to return (default: 10)"),
		),
		mcp.WithBoolean("includeSpamTrash",
			mcp.Description("Include messages from SPAM and TRASH (default: false)"),
		),
	)

	s.AddTool(listMessagesTool, common.InstrumentedToolHandlerWithOperation(
		"gmail_list_messages", instrumentation.OperationList, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleListMessages(ctx, request, sc)
		}))

	getMessageTool := mcp.NewTool("gmail_get_message",
		mcp.WithDescription("Get a Gmail message with parsed headers and body"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("messageId",
			mcp.Required(),
			mcp.Description("The ID of the message to fetch"),
		),
		mcp.WithString("format",
			mcp.Description("Body format: 'text' (default) or 'html'"),
		),
	)

	s.AddTool(getMessageTool, common.InstrumentedToolHandlerWithOperation(
		"gmail_get_message", instrumentation.OperationGet, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetMessage(ctx, request, sc)
		}))

	getThreadTool := mcp.NewTool("gmail_get_thread",
		mcp.WithDescription("Get all messages in a Gmail thread"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("threadId",
			mcp.Required(),
			mcp.Description("The ID of the thread to fetch"),
		),
		mcp.WithString("format",
			mcp.Description("Body format: 'text' (default) or 'html'"),
		),
	)

	s.AddTool(getThreadTool, common.InstrumentedToolHandlerWithOperation(
		"gmail_get_thread", instrumentation.OperationGet, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetThread(ctx, request, sc)
		}))

	return nil
}

func handleListMessages(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(args)

	query := ""
	if queryVal, ok := args["query"].(string); ok {
		query = queryVal
	}

	var labelIDs []string
	if labelsVal, ok := args["labelIds"]; ok && labelsVal != nil {
		var err error
		labelIDs, err = parseOptionalStringOrArray(labelsVal, "labelIds")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}

	maxResults := int64(10)
	if maxResultsVal, ok := args["maxResults"].(float64); ok {
		maxResults = int64(maxResultsVal)
	}

	includeSpamTrash := false
	if val, ok := args["includeSpamTrash"].(bool); ok {
		includeSpamTrash = val
	}

	client, errResult := common.RequireGmailClient(ctx, sc, account)
	if errResult != nil {
		return errResult, nil
	}

	messages, err := client.SearchMessages(ctx, query, labelIDs, includeSpamTrash, maxResults, gmail.AttachmentsIgnore)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list messages: %v", err)), nil
	}

	if len(messages) == 0 {
		return mcp.NewToolResultText("No messages found"), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d message(s):\n", len(messages))
	for i, msg := range messages {
		fmt.Fprintf(&b, "%d. ID: %s (Thread: %s)\n   From: %s\n   Subject: %s\n   Date: %s\n   Snippet: %s\n",
			i+1, msg.ID, msg.ThreadID, msg.From, msg.Subject, msg.Date, msg.Snippet)
	}

	return mcp.NewToolResultText(b.String()), nil
}

func handleGetMessage(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(args)

	messageID, ok := args["messageId"].(string)
	if !ok || messageID == "" {
		return mcp.NewToolResultError("messageId is required"), nil
	}

	format := "text"
	if formatVal, ok := args["format"].(string); ok && formatVal != "" {
		format = formatVal
	}
	if format != "text" && format != "html" {
		return mcp.NewToolResultError(fmt.Sprintf("Invalid format '%s', must be 'text' or 'html'", format)), nil
	}

	client, errResult := common.RequireGmailClient(ctx, sc, account)
	if errResult != nil {
		return errResult, nil
	}

	msg, err := client.GetParsedMessage(messageID, gmail.AttachmentsReference)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to get message: %v", err)), nil
	}

	return mcp.NewToolResultText(formatMessage(msg, format)), nil
}

func handleGetThread(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(args)

	threadID, ok := args["threadId"].(string)
	if !ok || threadID == "" {
		return mcp.NewToolResultError("threadId is required"), nil
	}

	format := "text"
	if formatVal, ok := args["format"].(string); ok && formatVal != "" {
		format = formatVal
	}
	if format != "text" && format != "html" {
		return mcp.NewToolResultError(fmt.Sprintf("Invalid format '%s', must be 'text' or 'html'", format)), nil
	}

	client, errResult := common.RequireGmailClient(ctx, sc, account)
	if errResult != nil {
		return errResult, nil
	}

	messages, err := client.GetThreadMessages(threadID, gmail.AttachmentsReference)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to get thread: %v", err)), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Thread %s contains %d message(s):\n\n", threadID, len(messages))
	for i, msg := range messages {
		fmt.Fprintf(&b, "--- Message %d ---\n%s\n", i+1, formatMessage(msg, format))
	}

	return mcp.NewToolResultText(b.String()), nil
}

// formatMessage renders a parsed message for tool output.
func formatMessage(msg *gmail.Message, format string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "ID: %s\nThread: %s\nFrom: %s\nTo: %s\n", msg.ID, msg.ThreadID, msg.From, msg.To)
	if msg.Cc != "" {
		fmt.Fprintf(&b, "Cc: %s\n", msg.Cc)
	}
	fmt.Fprintf(&b, "Date: %s\nSubject: %s\n", msg.Date, msg.Subject)
	if len(msg.Labels) > 0 {
		fmt.Fprintf(&b, "Labels: %s\n", strings.Join(msg.Labels, ", "))
	}
	if len(msg.Attachments) > 0 {
		fmt.Fprintf(&b, "Attachments:\n")
		for _, att := range msg.Attachments {
			fmt.Fprintf(&b, "  - %s (%s, %s) [id: %s]\n", att.Filename, att.MimeType, formatSize(att.Size), att.AttachmentID)
		}
	}

	body := msg.Body()
	if format == "html" && msg.HTML != "" {
		body = msg.HTML
	}
	fmt.Fprintf(&b, "\n%s\n", body)

	return b.String()
}

// parseOptionalStringOrArray is like batch.ParseStringOrArray but treats
// nil as absent rather than an error.
func parseOptionalStringOrArray(param interface{}, paramName string) ([]string, error) {
	switch v := param.(type) {
	case string:
		if v == "" {
			return nil, nil
		}
		return []string{v}, nil
	case []interface{}:
		result := make([]string, 0, len(v))
		for i, item := range v {
			str, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%s[%d] must be a string", paramName, i)
			}
			result = append(result, str)
		}
		return result, nil
	}
	return nil, fmt.Errorf("%s must be a string or array of strings", paramName)
}
