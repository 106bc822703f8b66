package gmail

import (
	"encoding/base64"
	"fmt"
	stdhtml "html"
	"net/mail"
	"strings"
	"time"

	htmlparser "golang.org/x/net/html"
	gmail "google.golang.org/api/gmail/v1"
)

// AttachmentMode controls how attachment parts are handled when parsing a message.
type AttachmentMode int

const (
	// AttachmentsIgnore skips attachment parts entirely.
	AttachmentsIgnore AttachmentMode = iota
	// AttachmentsReference records attachment metadata without fetching content.
	AttachmentsReference
	// AttachmentsDownload fetches attachment content while parsing.
	AttachmentsDownload
)

// ParseAttachmentMode parses a mode name as used on the CLI.
func ParseAttachmentMode(s string) (AttachmentMode, error) {
	switch strings.ToLower(s) {
	case "", "ignore":
		return AttachmentsIgnore, nil
	case "reference":
		return AttachmentsReference, nil
	case "download":
		return AttachmentsDownload, nil
	}
	return AttachmentsIgnore, fmt.Errorf("invalid attachment mode %q, must be 'ignore', 'reference' or 'download'", s)
}

// Message is a parsed Gmail message with decoded bodies and headers.
type Message struct {
	ID       string
	ThreadID string

	To      string
	From    string
	Cc      string
	Bcc     string
	Subject string

	// Date is the Date header, normalized to RFC 1123Z when parseable.
	Date string

	Snippet string

	// Plain holds the concatenated text/plain parts, HTML the text/html parts.
	Plain string
	HTML  string

	Labels      []string
	Headers     map[string]string
	Attachments []*Attachment
}

// Header returns the value of a header by name (case-insensitive).
func (m *Message) Header(name string) string {
	for k, v := range m.Headers {
		if strings.EqualFold(k, name) {
			return v
		}
	}
	return ""
}

// Body returns the message body, preferring plain text. When only an HTML
// body exists it is rendered to text.
func (m *Message) Body() string {
	if m.Plain != "" {
		return m.Plain
	}
	if m.HTML != "" {
		return HTMLToText(m.HTML)
	}
	return ""
}

// HasLabel reports whether the message carries the given label ID.
func (m *Message) HasLabel(label string) bool {
	return hasLabel(m.Labels, label)
}

// ParseMessage converts a raw Gmail message into a parsed Message.
// The raw message must have been fetched with format "full".
func (c *Client) ParseMessage(msg *gmail.Message, mode AttachmentMode) (*Message, error) {
	if msg == nil {
		return nil, fmt.Errorf("message is nil")
	}

	m := &Message{
		ID:       msg.Id,
		ThreadID: msg.ThreadId,
		Snippet:  stdhtml.UnescapeString(msg.Snippet),
		Labels:   msg.LabelIds,
		Headers:  make(map[string]string),
	}

	if msg.Payload == nil {
		return m, nil
	}

	for _, h := range msg.Payload.Headers {
		m.Headers[h.Name] = h.Value
		switch strings.ToLower(h.Name) {
		case "to":
			m.To = h.Value
		case "from":
			m.From = h.Value
		case "cc":
			m.Cc = h.Value
		case "bcc":
			m.Bcc = h.Value
		case "subject":
			m.Subject = h.Value
		case "date":
			m.Date = normalizeDate(h.Value)
		}
	}

	if err := c.evaluatePayload(m, msg.Payload, mode); err != nil {
		return nil, err
	}

	return m, nil
}

// GetParsedMessage fetches and parses a message in one step.
func (c *Client) GetParsedMessage(messageID string, mode AttachmentMode) (*Message, error) {
	msg, err := c.GetMessage(messageID)
	if err != nil {
		return nil, err
	}
	return c.ParseMessage(msg, mode)
}

// evaluatePayload recursively walks the payload tree, decoding body parts
// and collecting attachments according to mode.
func (c *Client) evaluatePayload(m *Message, part *gmail.MessagePart, mode AttachmentMode) error {
	if part == nil {
		return nil
	}

	switch {
	case part.Filename != "" && part.Body != nil && part.Body.AttachmentId != "":
		if mode == AttachmentsIgnore {
			break
		}
		att := &Attachment{
			client:       c,
			MessageID:    m.ID,
			AttachmentID: part.Body.AttachmentId,
			Filename:     part.Filename,
			MimeType:     part.MimeType,
			Size:         part.Body.Size,
		}
		if mode == AttachmentsDownload {
			if _, err := att.Download(); err != nil {
				return fmt.Errorf("failed to download attachment %s: %w", part.Filename, err)
			}
		}
		m.Attachments = append(m.Attachments, att)

	case strings.HasPrefix(part.MimeType, "text/") && part.Body != nil && part.Body.Data != "":
		data, err := decodeBase64URL(part.Body.Data)
		if err != nil {
			return fmt.Errorf("failed to decode %s part: %w", part.MimeType, err)
		}
		switch part.MimeType {
		case "text/html":
			body := ExtractHTMLBody(string(data))
			if m.HTML == "" {
				m.HTML = body
			} else {
				m.HTML += "<br/>" + body
			}
		default:
			if m.Plain == "" {
				m.Plain = string(data)
			} else {
				m.Plain += "\n" + string(data)
			}
		}
	}

	for _, sub := range part.Parts {
		if err := c.evaluatePayload(m, sub, mode); err != nil {
			return err
		}
	}
	return nil
}

// decodeBase64URL decodes Gmail's base64url body encoding,
// falling back to standard base64 for non-conforming senders.
func decodeBase64URL(s string) ([]byte, error) {
	data, err := base64.URLEncoding.DecodeString(s)
	if err == nil {
		return data, nil
	}
	if data, err2 := base64.RawURLEncoding.DecodeString(s); err2 == nil {
		return data, nil
	}
	if data, err2 := base64.StdEncoding.DecodeString(s); err2 == nil {
		return data, nil
	}
	return nil, err
}

// normalizeDate normalizes a Date header to RFC 1123Z.
// Unparseable values are returned unchanged.
func normalizeDate(raw string) string {
	t, err := mail.ParseDate(raw)
	if err != nil {
		return raw
	}
	return t.Format(time.RFC1123Z)
}

// ExtractHTMLBody returns the inner HTML of the document's <body> element.
// Input without a body element is returned unchanged.
func ExtractHTMLBody(s string) string {
	doc, err := htmlparser.Parse(strings.NewReader(s))
	if err != nil {
		return s
	}

	body := findElement(doc, "body")
	if body == nil {
		return s
	}

	var b strings.Builder
	for child := body.FirstChild; child != nil; child = child.NextSibling {
		if err := htmlparser.Render(&b, child); err != nil {
			return s
		}
	}
	return strings.TrimSpace(b.String())
}

// HTMLToText renders HTML to plain text for terminal display.
// Block-level elements produce line breaks; script and style content is dropped.
func HTMLToText(s string) string {
	doc, err := htmlparser.Parse(strings.NewReader(s))
	if err != nil {
		return s
	}

	var b strings.Builder
	renderText(&b, doc)

	// Collapse runs of blank lines left behind by nested block elements
	lines := strings.Split(b.String(), "\n")
	var out []string
	blank := false
	for _, line := range lines {
		line = strings.TrimRight(line, " \t")
		if strings.TrimSpace(line) == "" {
			if blank {
				continue
			}
			blank = true
			out = append(out, "")
			continue
		}
		blank = false
		out = append(out, line)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}

var blockElements = map[string]bool{
	"p": true, "div": true, "br": true, "tr": true, "li": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"table": true, "ul": true, "ol": true, "blockquote": true, "pre": true,
}

func renderText(b *strings.Builder, n *htmlparser.Node) {
	if n.Type == htmlparser.ElementNode && (n.Data == "script" || n.Data == "style" || n.Data == "head") {
		return
	}

	if n.Type == htmlparser.TextNode {
		text := strings.TrimSpace(n.Data)
		if text != "" {
			b.WriteString(text)
			b.WriteString(" ")
		}
	}

	for child := n.FirstChild; child != nil; child = child.NextSibling {
		renderText(b, child)
	}

	if n.Type == htmlparser.ElementNode && blockElements[n.Data] {
		b.WriteString("\n")
	}
}

func findElement(n *htmlparser.Node, name string) *htmlparser.Node {
	if n.Type == htmlparser.ElementNode && n.Data == name {
		return n
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if found := findElement(child, name); found != nil {
			return found
		}
	}
	return nil
}
