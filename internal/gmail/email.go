package gmail

import (
	"encoding/base64"
	"fmt"
	"mime"
	"mime/multipart"
	"net/mail"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"

	gmail "google.golang.org/api/gmail/v1"
)

// EmailMessage represents an email to be sent
type EmailMessage struct {
	To      []string
	Cc      []string
	Bcc     []string
	Subject string

	// Body is the plain-text body, BodyHTML the HTML alternative.
	// When both are set the message is sent as multipart/alternative.
	Body     string
	BodyHTML string

	// Attachments are paths of local files to attach.
	Attachments []string

	// AppendSignature appends the account's Gmail signature to the body.
	AppendSignature bool
}

// header is an extra RFC 2822 header, used for reply threading.
type header struct {
	name  string
	value string
}

// encodeRFC2047 encodes a string for use in email headers according to RFC 2047
// This is necessary for non-ASCII characters (like German umlauts) in subjects
func encodeRFC2047(s string) string {
	// Check if the string contains only ASCII characters
	needsEncoding := false
	for _, r := range s {
		if r > 127 {
			needsEncoding = true
			break
		}
	}

	// If it's all ASCII, return as-is
	if !needsEncoding {
		return s
	}

	// Use Go's mime package which implements RFC 2047 encoding
	return mime.BEncoding.Encode("UTF-8", s)
}

// formatAddress normalizes a single recipient for a message header.
// Display names are quoted and RFC 2047-encoded as needed, so
// `"Anete Gludīte" <a@example.com>` becomes header-safe ASCII.
// Input that net/mail cannot parse is passed through unchanged.
func formatAddress(addr string) string {
	parsed, err := mail.ParseAddress(addr)
	if err != nil || parsed.Name == "" {
		// Bare addresses stay as given
		return addr
	}
	return parsed.String()
}

// formatAddressList renders recipients as a comma-separated header value.
func formatAddressList(addrs []string) string {
	formatted := make([]string, len(addrs))
	for i, a := range addrs {
		formatted[i] = formatAddress(a)
	}
	return strings.Join(formatted, ", ")
}

// SendEmail sends an email through Gmail API and returns the sent message ID
func (c *Client) SendEmail(msg *EmailMessage) (string, error) {
	if len(msg.To) == 0 {
		return "", fmt.Errorf("at least one recipient is required")
	}
	if msg.Subject == "" {
		return "", fmt.Errorf("subject is required")
	}
	if msg.Body == "" && msg.BodyHTML == "" {
		return "", fmt.Errorf("body is required")
	}

	raw, err := c.buildRawMessage(msg, nil)
	if err != nil {
		return "", err
	}

	sent, err := c.svc.Messages.Send("me", &gmail.Message{Raw: raw}).Do()
	if err != nil {
		return "", fmt.Errorf("failed to send email: %w", err)
	}

	return sent.Id, nil
}

// ReplyToEmail sends a reply to an existing email message. The reply is
// threaded via In-Reply-To/References and quotes the original message.
func (c *Client) ReplyToEmail(messageID string, reply *EmailMessage) (string, error) {
	if messageID == "" {
		return "", fmt.Errorf("messageID is required")
	}
	if reply.Body == "" && reply.BodyHTML == "" {
		return "", fmt.Errorf("body is required")
	}

	// Get the original message to extract headers and the quoted body
	original, err := c.GetParsedMessage(messageID, AttachmentsIgnore)
	if err != nil {
		return "", fmt.Errorf("failed to get original message: %w", err)
	}

	if original.From == "" {
		return "", fmt.Errorf("original message has no From header")
	}

	// Reply to the Reply-To address when the sender set one
	replyTo := original.Header("Reply-To")
	if replyTo == "" {
		replyTo = original.From
	}

	// Build reply subject (add "Re: " if not already present)
	replySubject := original.Subject
	if !strings.HasPrefix(strings.ToLower(replySubject), "re:") {
		replySubject = "Re: " + replySubject
	}

	// Build References header for proper threading
	originalMessageID := original.Header("Message-ID")
	references := original.Header("References")
	if references != "" {
		references = references + " " + originalMessageID
	} else {
		references = originalMessageID
	}

	var extra []header
	if originalMessageID != "" {
		extra = append(extra, header{"In-Reply-To", originalMessageID})
	}
	if references != "" {
		extra = append(extra, header{"References", references})
	}

	out := *reply
	out.Subject = replySubject
	if len(out.To) == 0 {
		out.To = []string{replyTo}
	}
	if out.Body != "" {
		out.Body += "\n\n" + quotePlain(original)
	}
	if out.BodyHTML != "" {
		out.BodyHTML += "<br><br>" + quoteHTML(original)
	}

	raw, err := c.buildRawMessage(&out, extra)
	if err != nil {
		return "", err
	}

	// Send the reply with the thread ID to maintain threading
	sent, err := c.svc.Messages.Send("me", &gmail.Message{
		Raw:      raw,
		ThreadId: original.ThreadID,
	}).Do()
	if err != nil {
		return "", fmt.Errorf("failed to send reply: %w", err)
	}

	return sent.Id, nil
}

// ForwardEmail forwards an existing email message to new recipients
func (c *Client) ForwardEmail(messageID string, to, cc, bcc []string, additionalBody string, isHTML bool) (string, error) {
	if messageID == "" {
		return "", fmt.Errorf("messageID is required")
	}
	if len(to) == 0 {
		return "", fmt.Errorf("at least one recipient is required")
	}

	// Get the original message
	original, err := c.GetParsedMessage(messageID, AttachmentsIgnore)
	if err != nil {
		return "", fmt.Errorf("failed to get original message: %w", err)
	}

	// Build forwarded subject (add "Fwd: " if not already present)
	fwdSubject := original.Subject
	if !strings.HasPrefix(strings.ToLower(fwdSubject), "fwd:") && !strings.HasPrefix(strings.ToLower(fwdSubject), "fw:") {
		fwdSubject = "Fwd: " + fwdSubject
	}

	// Pick the original body matching the requested format
	var originalBody string
	if isHTML {
		originalBody = original.HTML
		if originalBody == "" {
			originalBody = original.Plain
		}
	} else {
		originalBody = original.Plain
		if originalBody == "" {
			originalBody = HTMLToText(original.HTML)
		}
	}

	// Build the forwarded message body
	var forwardedBody string
	if isHTML {
		forwardedBody = additionalBody + "<br><br>"
		forwardedBody += "---------- Forwarded message ---------<br>"
		forwardedBody += fmt.Sprintf("From: %s<br>", original.From)
		forwardedBody += fmt.Sprintf("Date: %s<br>", original.Date)
		forwardedBody += fmt.Sprintf("Subject: %s<br>", original.Subject)
		forwardedBody += fmt.Sprintf("To: %s<br><br>", original.To)
		forwardedBody += originalBody
	} else {
		forwardedBody = additionalBody + "\n\n"
		forwardedBody += "---------- Forwarded message ---------\n"
		forwardedBody += fmt.Sprintf("From: %s\n", original.From)
		forwardedBody += fmt.Sprintf("Date: %s\n", original.Date)
		forwardedBody += fmt.Sprintf("Subject: %s\n", original.Subject)
		forwardedBody += fmt.Sprintf("To: %s\n\n", original.To)
		forwardedBody += originalBody
	}

	msg := &EmailMessage{
		To:      to,
		Cc:      cc,
		Bcc:     bcc,
		Subject: fwdSubject,
	}
	if isHTML {
		msg.BodyHTML = forwardedBody
	} else {
		msg.Body = forwardedBody
	}

	raw, err := c.buildRawMessage(msg, nil)
	if err != nil {
		return "", err
	}

	sent, err := c.svc.Messages.Send("me", &gmail.Message{Raw: raw}).Do()
	if err != nil {
		return "", fmt.Errorf("failed to forward email: %w", err)
	}

	return sent.Id, nil
}

// quotePlain renders the original message as a quoted plain-text block.
func quotePlain(original *Message) string {
	body := original.Plain
	if body == "" {
		body = HTMLToText(original.HTML)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "On %s, %s wrote:\n", original.Date, original.From)
	for _, line := range strings.Split(body, "\n") {
		b.WriteString("> ")
		b.WriteString(line)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// quoteHTML renders the original message as a quoted HTML block.
func quoteHTML(original *Message) string {
	body := original.HTML
	if body == "" {
		body = strings.ReplaceAll(original.Plain, "\n", "<br>")
	}
	return fmt.Sprintf("On %s, %s wrote:<br><blockquote>%s</blockquote>",
		original.Date, escapeHTMLText(original.From), body)
}

func escapeHTMLText(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}

// buildRawMessage assembles an RFC 2822 message and returns it
// base64url-encoded for the Gmail API's Raw field.
func (c *Client) buildRawMessage(msg *EmailMessage, extra []header) (string, error) {
	body := msg.Body
	bodyHTML := msg.BodyHTML
	if msg.AppendSignature {
		if body != "" {
			body = c.appendSignature(body, false)
		}
		if bodyHTML != "" {
			bodyHTML = c.appendSignature(bodyHTML, true)
		}
	}

	var b strings.Builder

	// Add To header (display names are encoded for non-ASCII characters)
	b.WriteString("To: ")
	b.WriteString(formatAddressList(msg.To))
	b.WriteString("\r\n")

	// Add Cc header if present
	if len(msg.Cc) > 0 {
		b.WriteString("Cc: ")
		b.WriteString(formatAddressList(msg.Cc))
		b.WriteString("\r\n")
	}

	// Add Bcc header if present
	if len(msg.Bcc) > 0 {
		b.WriteString("Bcc: ")
		b.WriteString(formatAddressList(msg.Bcc))
		b.WriteString("\r\n")
	}

	// Add Subject (encode for non-ASCII characters like umlauts)
	b.WriteString("Subject: ")
	b.WriteString(encodeRFC2047(msg.Subject))
	b.WriteString("\r\n")

	for _, h := range extra {
		b.WriteString(h.name)
		b.WriteString(": ")
		b.WriteString(h.value)
		b.WriteString("\r\n")
	}

	b.WriteString("MIME-Version: 1.0\r\n")

	switch {
	case len(msg.Attachments) > 0:
		if err := writeMixed(&b, body, bodyHTML, msg.Attachments); err != nil {
			return "", err
		}
	case body != "" && bodyHTML != "":
		if err := writeAlternative(&b, body, bodyHTML); err != nil {
			return "", err
		}
	case bodyHTML != "":
		b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n\r\n")
		b.WriteString(bodyHTML)
	default:
		b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n\r\n")
		b.WriteString(body)
	}

	return base64.URLEncoding.EncodeToString([]byte(b.String())), nil
}

// writeAlternative writes a multipart/alternative section holding the plain
// and HTML bodies.
func writeAlternative(b *strings.Builder, body, bodyHTML string) error {
	w := multipart.NewWriter(b)
	fmt.Fprintf(b, "Content-Type: multipart/alternative; boundary=%q\r\n\r\n", w.Boundary())

	if err := writeTextPart(w, "text/plain", body); err != nil {
		return err
	}
	if err := writeTextPart(w, "text/html", bodyHTML); err != nil {
		return err
	}
	return w.Close()
}

// writeMixed writes a multipart/mixed section holding the body (nested as
// multipart/alternative when both plain and HTML are set) plus attachments.
func writeMixed(b *strings.Builder, body, bodyHTML string, attachments []string) error {
	w := multipart.NewWriter(b)
	fmt.Fprintf(b, "Content-Type: multipart/mixed; boundary=%q\r\n\r\n", w.Boundary())

	switch {
	case body != "" && bodyHTML != "":
		var altBuf strings.Builder
		alt := multipart.NewWriter(&altBuf)
		if err := writeTextPart(alt, "text/plain", body); err != nil {
			return err
		}
		if err := writeTextPart(alt, "text/html", bodyHTML); err != nil {
			return err
		}
		if err := alt.Close(); err != nil {
			return err
		}
		part, err := w.CreatePart(textproto.MIMEHeader{
			"Content-Type": {fmt.Sprintf("multipart/alternative; boundary=%q", alt.Boundary())},
		})
		if err != nil {
			return err
		}
		if _, err := part.Write([]byte(altBuf.String())); err != nil {
			return err
		}
	case bodyHTML != "":
		if err := writeTextPart(w, "text/html", bodyHTML); err != nil {
			return err
		}
	default:
		if err := writeTextPart(w, "text/plain", body); err != nil {
			return err
		}
	}

	for _, path := range attachments {
		if err := writeAttachmentPart(w, path); err != nil {
			return err
		}
	}

	return w.Close()
}

func writeTextPart(w *multipart.Writer, mimeType, content string) error {
	part, err := w.CreatePart(textproto.MIMEHeader{
		"Content-Type": {mimeType + "; charset=\"UTF-8\""},
	})
	if err != nil {
		return err
	}
	_, err = part.Write([]byte(content))
	return err
}

// writeAttachmentPart reads a local file and writes it as a base64-encoded
// attachment part. The content type is derived from the file extension.
func writeAttachmentPart(w *multipart.Writer, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read attachment %q: %w", path, err)
	}

	filename := filepath.Base(path)
	contentType := mime.TypeByExtension(filepath.Ext(filename))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	part, err := w.CreatePart(textproto.MIMEHeader{
		"Content-Type":              {fmt.Sprintf("%s; name=%q", contentType, filename)},
		"Content-Disposition":       {fmt.Sprintf("attachment; filename=%q", filename)},
		"Content-Transfer-Encoding": {"base64"},
	})
	if err != nil {
		return err
	}

	encoded := base64.StdEncoding.EncodeToString(data)
	// Wrap base64 at 76 characters per RFC 2045
	for len(encoded) > 76 {
		if _, err := part.Write([]byte(encoded[:76] + "\r\n")); err != nil {
			return err
		}
		encoded = encoded[76:]
	}
	_, err = part.Write([]byte(encoded))
	return err
}
