package gmail

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// MaxAttachmentSize defines the maximum attachment size in bytes (25MB)
	MaxAttachmentSize = 25 * 1024 * 1024
)

// Attachment represents a message attachment. Content is downloaded lazily
// and cached after the first fetch.
type Attachment struct {
	client *Client

	MessageID    string
	AttachmentID string
	Filename     string
	MimeType     string
	Size         int64

	data []byte
}

// Download fetches the attachment content, caching it for later calls.
func (a *Attachment) Download() ([]byte, error) {
	if a.data != nil {
		return a.data, nil
	}
	if a.client == nil {
		return nil, fmt.Errorf("attachment is not bound to a client")
	}

	data, err := a.client.GetAttachment(a.MessageID, a.AttachmentID)
	if err != nil {
		return nil, err
	}

	a.data = data
	return data, nil
}

// Save writes the attachment to path, downloading it first if necessary.
// An existing file at path is not overwritten unless overwrite is set.
func (a *Attachment) Save(path string, overwrite bool) error {
	if path == "" {
		path = SanitizeFilename(a.Filename)
	}

	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("file %q already exists (use overwrite to replace it)", path)
		}
	}

	data, err := a.Download()
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %q: %w", dir, err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write attachment to %q: %w", path, err)
	}
	return nil
}

// SaveTo writes the attachment into dir using its sanitized filename.
func (a *Attachment) SaveTo(dir string, overwrite bool) (string, error) {
	name := SanitizeFilename(a.Filename)
	if name == "" {
		name = a.AttachmentID
	}
	path := filepath.Join(dir, name)
	if err := a.Save(path, overwrite); err != nil {
		return "", err
	}
	return path, nil
}

// ListAttachments extracts all attachments from a message
func (c *Client) ListAttachments(messageID string) ([]*Attachment, error) {
	msg, err := c.GetParsedMessage(messageID, AttachmentsReference)
	if err != nil {
		return nil, err
	}
	return msg.Attachments, nil
}

// GetAttachment retrieves the content of an attachment
func (c *Client) GetAttachment(messageID, attachmentID string) ([]byte, error) {
	if messageID == "" {
		return nil, fmt.Errorf("messageID is required")
	}
	if attachmentID == "" {
		return nil, fmt.Errorf("attachmentID is required")
	}

	attachment, err := c.svc.Messages.Attachments.Get("me", messageID, attachmentID).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get attachment %s: %w", attachmentID, err)
	}

	// Check size limit
	if attachment.Size > MaxAttachmentSize {
		return nil, fmt.Errorf("attachment size %d exceeds maximum size %d", attachment.Size, MaxAttachmentSize)
	}

	// Decode base64url-encoded data (Gmail API uses RFC 4648 base64url encoding)
	data, err := decodeBase64URL(attachment.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode attachment data: %w", err)
	}

	return data, nil
}

// SanitizeFilename sanitizes a filename to prevent path traversal attacks
func SanitizeFilename(filename string) string {
	// Remove path separators and other potentially dangerous characters
	filename = strings.ReplaceAll(filename, "/", "_")
	filename = strings.ReplaceAll(filename, "\\", "_")
	filename = strings.ReplaceAll(filename, "..", "_")
	return filename
}
