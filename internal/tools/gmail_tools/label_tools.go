package gmail_tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/gmsa-cli/gmsa/internal/instrumentation"
	"github.com/gmsa-cli/gmsa/internal/server"
	"github.com/gmsa-cli/gmsa/internal/tools/batch"
	"github.com/gmsa-cli/gmsa/internal/tools/common"
)

// RegisterLabelTools registers label tools. Listing is always available;
// label mutation, message modification and trashing need write access.
func RegisterLabelTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	listLabelsTool := mcp.NewTool("gmail_list_labels",
		mcp.WithDescription("List all Gmail labels for an account"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
	)

	s.AddTool(listLabelsTool, common.InstrumentedToolHandlerWithOperation(
		"gmail_list_labels", instrumentation.OperationList, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleListLabels(ctx, request, sc)
		}))

	if readOnly {
		return nil
	}

	createLabelTool := mcp.NewTool("gmail_create_label",
		mcp.WithDescription("Create a new Gmail label"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Name for the new label"),
		),
	)

	s.AddTool(createLabelTool, common.InstrumentedToolHandlerWithOperation(
		"gmail_create_label", instrumentation.OperationCreate, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleCreateLabel(ctx, request, sc)
		}))

	deleteLabelTool := mcp.NewTool("gmail_delete_label",
		mcp.WithDescription("Delete a Gmail label by name or ID"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("label",
			mcp.Required(),
			mcp.Description("Label name or ID to delete"),
		),
	)

	s.AddTool(deleteLabelTool, common.InstrumentedToolHandlerWithOperation(
		"gmail_delete_label", instrumentation.OperationDelete, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleDeleteLabel(ctx, request, sc)
		}))

	modifyLabelsTool := mcp.NewTool("gmail_modify_labels",
		mcp.WithDescription("Add and/or remove labels on one or more Gmail messages"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("messageIds",
			mcp.Required(),
			mcp.Description("Message ID (string) or array of message IDs to modify"),
		),
		mcp.WithString("addLabels",
			mcp.Description("Label ID (string) or array of label IDs to add"),
		),
		mcp.WithString("removeLabels",
			mcp.Description("Label ID (string) or array of label IDs to remove"),
		),
	)

	s.AddTool(modifyLabelsTool, common.InstrumentedToolHandlerWithOperation(
		"gmail_modify_labels", instrumentation.OperationModify, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleModifyLabels(ctx, request, sc)
		}))

	trashMessagesTool := mcp.NewTool("gmail_trash_messages",
		mcp.WithDescription("Move one or more Gmail messages to the trash"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("messageIds",
			mcp.Required(),
			mcp.Description("Message ID (string) or array of message IDs to trash"),
		),
	)

	s.AddTool(trashMessagesTool, common.InstrumentedToolHandlerWithOperation(
		"gmail_trash_messages", instrumentation.OperationTrash, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleTrashMessages(ctx, request, sc)
		}))

	return nil
}

func handleListLabels(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(args)

	client, errResult := common.RequireGmailClient(ctx, sc, account)
	if errResult != nil {
		return errResult, nil
	}

	labels, err := client.ListLabels()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list labels: %v", err)), nil
	}

	if len(labels) == 0 {
		return mcp.NewToolResultText("No labels found"), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d label(s):\n", len(labels))
	for _, label := range labels {
		fmt.Fprintf(&b, "- %s (id: %s, type: %s)\n", label.Name, label.Id, label.Type)
	}

	return mcp.NewToolResultText(b.String()), nil
}

func handleCreateLabel(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(args)

	name, ok := args["name"].(string)
	if !ok || name == "" {
		return mcp.NewToolResultError("name is required"), nil
	}

	client, errResult := common.RequireGmailClient(ctx, sc, account)
	if errResult != nil {
		return errResult, nil
	}

	label, err := client.CreateLabel(name)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to create label: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Label created: %s (id: %s)", label.Name, label.Id)), nil
}

func handleDeleteLabel(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(args)

	nameOrID, ok := args["label"].(string)
	if !ok || nameOrID == "" {
		return mcp.NewToolResultError("label is required"), nil
	}

	client, errResult := common.RequireGmailClient(ctx, sc, account)
	if errResult != nil {
		return errResult, nil
	}

	labelID, err := client.ResolveLabel(nameOrID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to resolve label: %v", err)), nil
	}

	if err := client.DeleteLabel(labelID); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to delete label: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Label %s deleted", nameOrID)), nil
}

func handleModifyLabels(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(args)

	messageIDs, err := batch.ParseStringOrArray(args["messageIds"], "messageIds")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var addLabels, removeLabels []string
	if val, ok := args["addLabels"]; ok && val != nil {
		addLabels, err = parseOptionalStringOrArray(val, "addLabels")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}
	if val, ok := args["removeLabels"]; ok && val != nil {
		removeLabels, err = parseOptionalStringOrArray(val, "removeLabels")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}

	if len(addLabels) == 0 && len(removeLabels) == 0 {
		return mcp.NewToolResultError("at least one of addLabels or removeLabels is required"), nil
	}

	client, errResult := common.RequireGmailClient(ctx, sc, account)
	if errResult != nil {
		return errResult, nil
	}

	results := batch.ProcessBatch(messageIDs, func(messageID string) (string, error) {
		if _, err := client.ModifyLabels(messageID, addLabels, removeLabels); err != nil {
			return "", err
		}
		return fmt.Sprintf("Message %s labels modified", messageID), nil
	})

	return mcp.NewToolResultText(batch.FormatResults(results)), nil
}

func handleTrashMessages(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(args)

	messageIDs, err := batch.ParseStringOrArray(args["messageIds"], "messageIds")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	client, errResult := common.RequireGmailClient(ctx, sc, account)
	if errResult != nil {
		return errResult, nil
	}

	results := batch.ProcessBatch(messageIDs, func(messageID string) (string, error) {
		if err := client.Trash(messageID); err != nil {
			return "", err
		}
		return fmt.Sprintf("Message %s moved to trash", messageID), nil
	})

	return mcp.NewToolResultText(batch.FormatResults(results)), nil
}
