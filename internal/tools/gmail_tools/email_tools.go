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

// RegisterEmailTools registers the compose tools (send, reply, forward).
// These are write operations and are only registered in yolo mode.
func RegisterEmailTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	sendMessageTool := mcp.NewTool("gmail_send_message",
		mcp.WithDescription("Send an email through Gmail"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("to",
			mcp.Required(),
			mcp.Description("Recipient email address(es), comma-separated for multiple recipients"),
		),
		mcp.WithString("subject",
			mcp.Required(),
			mcp.Description("Email subject"),
		),
		mcp.WithString("body",
			mcp.Description("Plain text body"),
		),
		mcp.WithString("bodyHtml",
			mcp.Description("HTML body. When both body and bodyHtml are set, a multipart/alternative message is sent."),
		),
		mcp.WithString("cc",
			mcp.Description("CC email address(es), comma-separated"),
		),
		mcp.WithString("bcc",
			mcp.Description("BCC email address(es), comma-separated"),
		),
		mcp.WithBoolean("signature",
			mcp.Description("Append the account's Gmail signature (default: false)"),
		),
	)

	s.AddTool(sendMessageTool, common.InstrumentedToolHandlerWithOperation(
		"gmail_send_message", instrumentation.OperationSend, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleSendMessage(ctx, request, sc)
		}))

	replyMessageTool := mcp.NewTool("gmail_reply_message",
		mcp.WithDescription("Reply to a Gmail message, quoting the original and keeping the thread"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("messageId",
			mcp.Required(),
			mcp.Description("The ID of the message to reply to"),
		),
		mcp.WithString("body",
			mcp.Description("Plain text reply body"),
		),
		mcp.WithString("bodyHtml",
			mcp.Description("HTML reply body"),
		),
		mcp.WithBoolean("signature",
			mcp.Description("Append the account's Gmail signature (default: false)"),
		),
	)

	s.AddTool(replyMessageTool, common.InstrumentedToolHandlerWithOperation(
		"gmail_reply_message", instrumentation.OperationSend, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleReplyMessage(ctx, request, sc)
		}))

	forwardMessageTool := mcp.NewTool("gmail_forward_message",
		mcp.WithDescription("Forward a Gmail message to new recipients"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("messageId",
			mcp.Required(),
			mcp.Description("The ID of the message to forward"),
		),
		mcp.WithString("to",
			mcp.Required(),
			mcp.Description("Recipient email address(es), comma-separated"),
		),
		mcp.WithString("cc",
			mcp.Description("CC email address(es), comma-separated"),
		),
		mcp.WithString("bcc",
			mcp.Description("BCC email address(es), comma-separated"),
		),
		mcp.WithString("body",
			mcp.Description("Additional text to include above the forwarded message"),
		),
	)

	s.AddTool(forwardMessageTool, common.InstrumentedToolHandlerWithOperation(
		"gmail_forward_message", instrumentation.OperationSend, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleForwardMessage(ctx, request, sc)
		}))

	return nil
}

func handleSendMessage(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(args)

	toStr, ok := args["to"].(string)
	if !ok || toStr == "" {
		return mcp.NewToolResultError("'to' field is required"), nil
	}

	subject, ok := args["subject"].(string)
	if !ok || subject == "" {
		return mcp.NewToolResultError("'subject' field is required"), nil
	}

	body, _ := args["body"].(string)
	bodyHTML, _ := args["bodyHtml"].(string)
	if body == "" && bodyHTML == "" {
		return mcp.NewToolResultError("either 'body' or 'bodyHtml' is required"), nil
	}

	ccStr, _ := args["cc"].(string)
	bccStr, _ := args["bcc"].(string)

	signature := false
	if sigVal, ok := args["signature"].(bool); ok {
		signature = sigVal
	}

	client, errResult := common.RequireGmailClient(ctx, sc, account)
	if errResult != nil {
		return errResult, nil
	}

	msg := &gmail.EmailMessage{
		To:              splitEmailAddresses(toStr),
		Cc:              splitEmailAddresses(ccStr),
		Bcc:             splitEmailAddresses(bccStr),
		Subject:         subject,
		Body:            body,
		BodyHTML:        bodyHTML,
		AppendSignature: signature,
	}

	messageID, err := client.SendEmail(msg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to send email: %v", err)), nil
	}

	result := fmt.Sprintf("Email sent successfully!\nMessage ID: %s\nTo: %s\nSubject: %s",
		messageID, strings.Join(msg.To, ", "), subject)
	if len(msg.Cc) > 0 {
		result += fmt.Sprintf("\nCC: %s", strings.Join(msg.Cc, ", "))
	}
	if len(msg.Bcc) > 0 {
		result += fmt.Sprintf("\nBCC: %s", strings.Join(msg.Bcc, ", "))
	}

	return mcp.NewToolResultText(result), nil
}

func handleReplyMessage(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(args)

	messageID, ok := args["messageId"].(string)
	if !ok || messageID == "" {
		return mcp.NewToolResultError("messageId is required"), nil
	}

	body, _ := args["body"].(string)
	bodyHTML, _ := args["bodyHtml"].(string)
	if body == "" && bodyHTML == "" {
		return mcp.NewToolResultError("either 'body' or 'bodyHtml' is required"), nil
	}

	signature := false
	if sigVal, ok := args["signature"].(bool); ok {
		signature = sigVal
	}

	client, errResult := common.RequireGmailClient(ctx, sc, account)
	if errResult != nil {
		return errResult, nil
	}

	reply := &gmail.EmailMessage{
		Body:            body,
		BodyHTML:        bodyHTML,
		AppendSignature: signature,
	}

	replyID, err := client.ReplyToEmail(messageID, reply)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to reply: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Reply sent successfully!\nMessage ID: %s", replyID)), nil
}

func handleForwardMessage(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(args)

	messageID, ok := args["messageId"].(string)
	if !ok || messageID == "" {
		return mcp.NewToolResultError("messageId is required"), nil
	}

	toStr, ok := args["to"].(string)
	if !ok || toStr == "" {
		return mcp.NewToolResultError("'to' field is required"), nil
	}

	ccStr, _ := args["cc"].(string)
	bccStr, _ := args["bcc"].(string)
	body, _ := args["body"].(string)

	client, errResult := common.RequireGmailClient(ctx, sc, account)
	if errResult != nil {
		return errResult, nil
	}

	to := splitEmailAddresses(toStr)
	forwardID, err := client.ForwardEmail(messageID, to, splitEmailAddresses(ccStr), splitEmailAddresses(bccStr), body, false)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to forward: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Message forwarded successfully!\nMessage ID: %s\nTo: %s",
		forwardID, strings.Join(to, ", "))), nil
}

// splitEmailAddresses splits a comma-separated string of email addresses.
func splitEmailAddresses(addresses string) []string {
	if addresses == "" {
		return nil
	}

	parts := strings.Split(addresses, ",")
	result := make([]string, 0, len(parts))
	for _, addr := range parts {
		trimmed := strings.TrimSpace(addr)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
