// Package gmail_tools provides MCP (Model Context Protocol) tools for
// working with Gmail.
//
// Message tools (always available):
//   - gmail_list_messages: search messages with a Gmail query
//   - gmail_get_message: fetch a message with parsed headers and body
//   - gmail_get_thread: fetch every message in a thread
//   - gmail_list_labels: list the account's labels
//   - gmail_list_attachments: list attachments in a message
//
// Write tools (registered only when the server runs with write access):
//   - gmail_send_message, gmail_reply_message, gmail_forward_message
//   - gmail_modify_labels, gmail_trash_messages (single ID or batch)
//   - gmail_create_label, gmail_delete_label
//   - gmail_save_attachment
//
// All tools accept an optional "account" argument to select one of the
// locally authorized Google accounts; clients are created lazily and
// tools return authorization instructions when no token is cached.
package gmail_tools
