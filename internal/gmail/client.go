package gmail

import (
	"context"
	"fmt"
	"strings"

	gmail "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/gmsa-cli/gmsa/internal/google"
)

// Client wraps the Gmail Users service for a single account
type Client struct {
	svc       *gmail.UsersService
	account   string // The account this client is associated with
	signature string // Cached signature for this account
}

// Account returns the account name this client is associated with
func (c *Client) Account() string {
	return c.account
}

// HasTokenForAccount checks if a valid OAuth token exists for the specified account
func HasTokenForAccount(account string) bool {
	return google.HasTokenForAccount(account)
}

// HasToken checks if a valid OAuth token exists for the default account
func HasToken() bool {
	return google.HasToken()
}

// NewClientForAccountWithProvider creates a new Gmail client whose OAuth
// token comes from the given token provider instead of the on-disk cache.
func NewClientForAccountWithProvider(ctx context.Context, account string, tokenProvider google.TokenProvider) (*Client, error) {
	if tokenProvider == nil {
		return nil, fmt.Errorf("token provider cannot be nil")
	}

	token, err := tokenProvider.GetTokenForAccount(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("no valid Google OAuth token found for account %s: %w", account, err)
	}

	svc, err := gmail.NewService(ctx, option.WithHTTPClient(google.NewHTTPClientForToken(ctx, token)))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gmail service: %w", err)
	}

	return &Client{
		svc:     svc.Users,
		account: account,
	}, nil
}

// NewClientForAccount creates a new Gmail client with OAuth2 authentication for a specific account
// Uses the file-based token provider backed by the per-account token cache.
func NewClientForAccount(ctx context.Context, account string) (*Client, error) {
	return NewClientForAccountWithProvider(ctx, account, google.NewFileTokenProvider())
}

// NewClient creates a new Gmail client with OAuth2 authentication for the default account
func NewClient(ctx context.Context) (*Client, error) {
	return NewClientForAccount(ctx, "default")
}

// ListMessages lists message references matching the query with pagination.
// It will fetch up to maxResults references, making multiple API calls if
// necessary. The returned messages carry only Id and ThreadId; use
// FetchMessages or GetMessage to hydrate them.
func (c *Client) ListMessages(q string, labelIDs []string, includeSpamTrash bool, maxResults int64) ([]*gmail.Message, error) {
	var allMessages []*gmail.Message
	pageToken := ""

	for {
		remaining := maxResults - int64(len(allMessages))
		if remaining <= 0 {
			break
		}

		// Fetch in pages of 100, the Gmail API's default page size
		pageSize := remaining
		if pageSize > 100 {
			pageSize = 100
		}

		req := c.svc.Messages.List("me").MaxResults(pageSize)
		if q != "" {
			req = req.Q(q)
		}
		if len(labelIDs) > 0 {
			req = req.LabelIds(labelIDs...)
		}
		if includeSpamTrash {
			req = req.IncludeSpamTrash(true)
		}
		if pageToken != "" {
			req = req.PageToken(pageToken)
		}

		res, err := req.Do()
		if err != nil {
			return nil, fmt.Errorf("failed to list messages: %w", err)
		}

		allMessages = append(allMessages, res.Messages...)

		if res.NextPageToken == "" || int64(len(allMessages)) >= maxResults {
			break
		}

		pageToken = res.NextPageToken
	}

	// Trim to exact maxResults if we got more
	if int64(len(allMessages)) > maxResults {
		allMessages = allMessages[:maxResults]
	}

	return allMessages, nil
}

// ForeachMessage iterates over all message references matching the query
func (c *Client) ForeachMessage(q string, fn func(*gmail.Message) error) error {
	pageToken := ""
	for {
		req := c.svc.Messages.List("me").Q(q)
		if pageToken != "" {
			req.PageToken(pageToken)
		}
		res, err := req.Do()
		if err != nil {
			return err
		}
		for _, m := range res.Messages {
			if err := fn(m); err != nil {
				return err
			}
		}
		if res.NextPageToken == "" {
			return nil
		}
		pageToken = res.NextPageToken
	}
}

// GetMessage retrieves a full Gmail message
func (c *Client) GetMessage(messageID string) (*gmail.Message, error) {
	msg, err := c.svc.Messages.Get("me", messageID).Format("full").Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get message %s: %w", messageID, err)
	}
	return msg, nil
}

// GetThread retrieves a full Gmail thread with all its messages
func (c *Client) GetThread(threadID string) (*gmail.Thread, error) {
	thread, err := c.svc.Threads.Get("me", threadID).Format("full").Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get thread %s: %w", threadID, err)
	}
	return thread, nil
}

// GetThreadMessages retrieves all messages of a thread as parsed messages
func (c *Client) GetThreadMessages(threadID string, mode AttachmentMode) ([]*Message, error) {
	thread, err := c.GetThread(threadID)
	if err != nil {
		return nil, err
	}

	messages := make([]*Message, 0, len(thread.Messages))
	for _, m := range thread.Messages {
		parsed, err := c.ParseMessage(m, mode)
		if err != nil {
			return nil, fmt.Errorf("failed to parse message %s: %w", m.Id, err)
		}
		messages = append(messages, parsed)
	}
	return messages, nil
}

// ModifyLabels adds and removes labels on a message and returns the updated message
func (c *Client) ModifyLabels(messageID string, add, remove []string) (*gmail.Message, error) {
	if messageID == "" {
		return nil, fmt.Errorf("messageID is required")
	}
	if len(add) == 0 && len(remove) == 0 {
		return nil, fmt.Errorf("at least one label to add or remove is required")
	}

	msg, err := c.svc.Messages.Modify("me", messageID, &gmail.ModifyMessageRequest{
		AddLabelIds:    add,
		RemoveLabelIds: remove,
	}).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to modify labels on message %s: %w", messageID, err)
	}
	return msg, nil
}

// MarkAsRead removes the UNREAD label from a message
func (c *Client) MarkAsRead(messageID string) error {
	_, err := c.ModifyLabels(messageID, nil, []string{"UNREAD"})
	return err
}

// MarkAsUnread adds the UNREAD label to a message
func (c *Client) MarkAsUnread(messageID string) error {
	_, err := c.ModifyLabels(messageID, []string{"UNREAD"}, nil)
	return err
}

// MarkAsSpam marks a message as spam, removing it from the inbox
func (c *Client) MarkAsSpam(messageID string) error {
	_, err := c.ModifyLabels(messageID, []string{"SPAM"}, []string{"INBOX"})
	return err
}

// MarkAsNotSpam removes the spam label and moves the message back to the inbox
func (c *Client) MarkAsNotSpam(messageID string) error {
	_, err := c.ModifyLabels(messageID, []string{"INBOX"}, []string{"SPAM"})
	return err
}

// MarkAsImportant adds the IMPORTANT label to a message
func (c *Client) MarkAsImportant(messageID string) error {
	_, err := c.ModifyLabels(messageID, []string{"IMPORTANT"}, nil)
	return err
}

// MarkAsNotImportant removes the IMPORTANT label from a message
func (c *Client) MarkAsNotImportant(messageID string) error {
	_, err := c.ModifyLabels(messageID, nil, []string{"IMPORTANT"})
	return err
}

// Star adds the STARRED label to a message
func (c *Client) Star(messageID string) error {
	_, err := c.ModifyLabels(messageID, []string{"STARRED"}, nil)
	return err
}

// Unstar removes the STARRED label from a message
func (c *Client) Unstar(messageID string) error {
	_, err := c.ModifyLabels(messageID, nil, []string{"STARRED"})
	return err
}

// Archive removes a message from the inbox
func (c *Client) Archive(messageID string) error {
	_, err := c.ModifyLabels(messageID, nil, []string{"INBOX"})
	return err
}

// Unarchive moves a message back to the inbox
func (c *Client) Unarchive(messageID string) error {
	_, err := c.ModifyLabels(messageID, []string{"INBOX"}, nil)
	return err
}

// Trash moves a message to the trash and verifies the TRASH label was applied
func (c *Client) Trash(messageID string) error {
	if messageID == "" {
		return fmt.Errorf("messageID is required")
	}
	res, err := c.svc.Messages.Trash("me", messageID).Do()
	if err != nil {
		return fmt.Errorf("failed to trash message %s: %w", messageID, err)
	}
	if !hasLabel(res.LabelIds, "TRASH") {
		return fmt.Errorf("message %s was not moved to trash", messageID)
	}
	return nil
}

// Untrash restores a message from the trash and verifies the TRASH label was removed
func (c *Client) Untrash(messageID string) error {
	if messageID == "" {
		return fmt.Errorf("messageID is required")
	}
	res, err := c.svc.Messages.Untrash("me", messageID).Do()
	if err != nil {
		return fmt.Errorf("failed to untrash message %s: %w", messageID, err)
	}
	if hasLabel(res.LabelIds, "TRASH") {
		return fmt.Errorf("message %s is still in trash", messageID)
	}
	return nil
}

// ListLabels lists all labels of the mailbox
func (c *Client) ListLabels() ([]*gmail.Label, error) {
	res, err := c.svc.Labels.List("me").Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list labels: %w", err)
	}
	return res.Labels, nil
}

// CreateLabel creates a new user label with the given name
func (c *Client) CreateLabel(name string) (*gmail.Label, error) {
	if name == "" {
		return nil, fmt.Errorf("label name is required")
	}
	label, err := c.svc.Labels.Create("me", &gmail.Label{
		Name:                  name,
		LabelListVisibility:   "labelShow",
		MessageListVisibility: "show",
	}).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create label %q: %w", name, err)
	}
	return label, nil
}

// DeleteLabel deletes a label by ID
func (c *Client) DeleteLabel(labelID string) error {
	if labelID == "" {
		return fmt.Errorf("label ID is required")
	}
	if err := c.svc.Labels.Delete("me", labelID).Do(); err != nil {
		return fmt.Errorf("failed to delete label %s: %w", labelID, err)
	}
	return nil
}

// ResolveLabel resolves a label name or ID to a label ID.
// Names are matched case-insensitively against the mailbox's labels;
// an input that already is a label ID is returned unchanged.
func (c *Client) ResolveLabel(nameOrID string) (string, error) {
	if nameOrID == "" {
		return "", fmt.Errorf("label name or ID is required")
	}

	labels, err := c.ListLabels()
	if err != nil {
		return "", err
	}

	for _, l := range labels {
		if l.Id == nameOrID {
			return l.Id, nil
		}
	}
	for _, l := range labels {
		if strings.EqualFold(l.Name, nameOrID) {
			return l.Id, nil
		}
	}
	return "", fmt.Errorf("no label named %q found", nameOrID)
}

// GetSignature fetches the user's Gmail signature (primary send-as address)
// The signature is cached after the first fetch
func (c *Client) GetSignature() (string, error) {
	// Return cached signature if available
	if c.signature != "" {
		return c.signature, nil
	}

	// Fetch send-as settings to get the signature
	sendAs, err := c.svc.Settings.SendAs.Get("me", "me").Do()
	if err != nil {
		// If we can't fetch the signature, return empty string (not an error)
		// This allows emails to be sent even if signature fetching fails
		return "", nil
	}

	// Cache the signature
	if sendAs.Signature != "" {
		c.signature = sendAs.Signature
	}

	return c.signature, nil
}

// appendSignature adds the user's signature to the email body
func (c *Client) appendSignature(body string, isHTML bool) string {
	signature, err := c.GetSignature()
	if err != nil || signature == "" {
		// No signature or error fetching it, return body as-is
		return body
	}

	if isHTML {
		return body + "<br><br>-- <br>" + signature
	}

	return body + "\n\n-- \n" + signature
}

// HeaderValue returns the value of the named header from a raw Gmail message
func HeaderValue(m *gmail.Message, header string) string {
	mpart := m.Payload
	if mpart == nil {
		return ""
	}
	for _, mph := range mpart.Headers {
		if strings.EqualFold(mph.Name, header) {
			return mph.Value
		}
	}
	return ""
}

func hasLabel(labels []string, label string) bool {
	for _, l := range labels {
		if l == label {
			return true
		}
	}
	return false
}
