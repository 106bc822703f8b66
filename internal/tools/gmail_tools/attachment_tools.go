package gmail_tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/gmsa-cli/gmsa/internal/instrumentation"
	"github.com/gmsa-cli/gmsa/internal/server"
	"github.com/gmsa-cli/gmsa/internal/tools/common"
)

// RegisterAttachmentTools registers attachment tools. Listing is read-only;
// saving writes to the local filesystem and needs write access.
func RegisterAttachmentTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	listAttachmentsTool := mcp.NewTool("gmail_list_attachments",
		mcp.WithDescription("List all attachments in a Gmail message"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("messageId",
			mcp.Required(),
			mcp.Description("The ID of the Gmail message"),
		),
	)

	s.AddTool(listAttachmentsTool, common.InstrumentedToolHandlerWithOperation(
		"gmail_list_attachments", instrumentation.OperationList, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleListAttachments(ctx, request, sc)
		}))

	if readOnly {
		return nil
	}

	saveAttachmentTool := mcp.NewTool("gmail_save_attachment",
		mcp.WithDescription("Save a Gmail attachment to a local directory"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("messageId",
			mcp.Required(),
			mcp.Description("The ID of the Gmail message"),
		),
		mcp.WithString("attachmentId",
			mcp.Description("The ID of the attachment. When omitted, all attachments are saved."),
		),
		mcp.WithString("outputDir",
			mcp.Description("Directory to save into (default: current directory)"),
		),
		mcp.WithBoolean("overwrite",
			mcp.Description("Overwrite existing files (default: false)"),
		),
	)

	s.AddTool(saveAttachmentTool, common.InstrumentedToolHandlerWithOperation(
		"gmail_save_attachment", instrumentation.OperationGet, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleSaveAttachment(ctx, request, sc)
		}))

	return nil
}

func handleListAttachments(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(args)

	messageID, ok := args["messageId"].(string)
	if !ok || messageID == "" {
		return mcp.NewToolResultError("messageId is required"), nil
	}

	client, errResult := common.RequireGmailClient(ctx, sc, account)
	if errResult != nil {
		return errResult, nil
	}

	attachments, err := client.ListAttachments(messageID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list attachments: %v", err)), nil
	}

	if len(attachments) == 0 {
		return mcp.NewToolResultText("No attachments found in message"), nil
	}

	result := fmt.Sprintf("Found %d attachment(s):\n", len(attachments))
	for i, att := range attachments {
		result += fmt.Sprintf("%d. %s (%s, %s) [id: %s]\n",
			i+1, att.Filename, att.MimeType, formatSize(att.Size), att.AttachmentID)
	}

	return mcp.NewToolResultText(result), nil
}

func handleSaveAttachment(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(args)

	messageID, ok := args["messageId"].(string)
	if !ok || messageID == "" {
		return mcp.NewToolResultError("messageId is required"), nil
	}

	attachmentID, _ := args["attachmentId"].(string)

	outputDir := "."
	if dirVal, ok := args["outputDir"].(string); ok && dirVal != "" {
		outputDir = dirVal
	}

	overwrite := false
	if val, ok := args["overwrite"].(bool); ok {
		overwrite = val
	}

	client, errResult := common.RequireGmailClient(ctx, sc, account)
	if errResult != nil {
		return errResult, nil
	}

	attachments, err := client.ListAttachments(messageID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list attachments: %v", err)), nil
	}
	if len(attachments) == 0 {
		return mcp.NewToolResultError("Message has no attachments"), nil
	}

	saved := make([]string, 0, len(attachments))
	for _, att := range attachments {
		if attachmentID != "" && att.AttachmentID != attachmentID {
			continue
		}
		path, err := att.SaveTo(outputDir, overwrite)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to save attachment %s: %v", att.Filename, err)), nil
		}
		saved = append(saved, path)
	}

	if len(saved) == 0 {
		return mcp.NewToolResultError(fmt.Sprintf("No attachment with ID %s found in message", attachmentID)), nil
	}

	result := fmt.Sprintf("Saved %d attachment(s):\n", len(saved))
	for _, path := range saved {
		result += fmt.Sprintf("- %s\n", path)
	}

	return mcp.NewToolResultText(result), nil
}
