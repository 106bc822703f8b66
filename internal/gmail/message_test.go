package gmail

import (
	"encoding/base64"
	"strings"
	"testing"

	gmail "google.golang.org/api/gmail/v1"
)

func b64url(s string) string {
	return base64.URLEncoding.EncodeToString([]byte(s))
}

func TestParseAttachmentMode(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    AttachmentMode
		wantErr bool
	}{
		{"empty defaults to ignore", "", AttachmentsIgnore, false},
		{"ignore", "ignore", AttachmentsIgnore, false},
		{"reference", "reference", AttachmentsReference, false},
		{"download", "download", AttachmentsDownload, false},
		{"case insensitive", "Reference", AttachmentsReference, false},
		{"invalid", "inline", AttachmentsIgnore, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAttachmentMode(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseAttachmentMode(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("ParseAttachmentMode(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseMessage(t *testing.T) {
	c := &Client{}

	raw := &gmail.Message{
		Id:       "msg123",
		ThreadId: "thread456",
		Snippet:  "Hello &amp; welcome",
		LabelIds: []string{"INBOX", "UNREAD"},
		Payload: &gmail.MessagePart{
			MimeType: "multipart/mixed",
			Headers: []*gmail.MessagePartHeader{
				{Name: "From", Value: "sender@example.com"},
				{Name: "To", Value: "recipient@example.com"},
				{Name: "Subject", Value: "Test Subject"},
				{Name: "Date", Value: "Fri, 31 Oct 2025 10:00:00 +0000"},
				{Name: "Message-ID", Value: "<abc@example.com>"},
			},
			Parts: []*gmail.MessagePart{
				{
					MimeType: "multipart/alternative",
					Parts: []*gmail.MessagePart{
						{
							MimeType: "text/plain",
							Body:     &gmail.MessagePartBody{Data: b64url("plain body")},
						},
						{
							MimeType: "text/html",
							Body:     &gmail.MessagePartBody{Data: b64url("<html><body><p>html body</p></body></html>")},
						},
					},
				},
				{
					MimeType: "application/pdf",
					Filename: "report.pdf",
					Body:     &gmail.MessagePartBody{AttachmentId: "att1", Size: 1024},
				},
			},
		},
	}

	msg, err := c.ParseMessage(raw, AttachmentsReference)
	if err != nil {
		t.Fatalf("ParseMessage() error = %v", err)
	}

	if msg.ID != "msg123" || msg.ThreadID != "thread456" {
		t.Errorf("ParseMessage() IDs = %v/%v, want msg123/thread456", msg.ID, msg.ThreadID)
	}
	if msg.From != "sender@example.com" {
		t.Errorf("From = %v", msg.From)
	}
	if msg.Subject != "Test Subject" {
		t.Errorf("Subject = %v", msg.Subject)
	}
	// Snippet entities are unescaped
	if msg.Snippet != "Hello & welcome" {
		t.Errorf("Snippet = %q, want unescaped entities", msg.Snippet)
	}
	if msg.Plain != "plain body" {
		t.Errorf("Plain = %q", msg.Plain)
	}
	// HTML bodies have the <body> element extracted
	if msg.HTML != "<p>html body</p>" {
		t.Errorf("HTML = %q, want inner body content", msg.HTML)
	}
	if msg.Header("Message-ID") != "<abc@example.com>" {
		t.Errorf("Header(Message-ID) = %q", msg.Header("Message-ID"))
	}
	if !msg.HasLabel("UNREAD") || msg.HasLabel("TRASH") {
		t.Errorf("HasLabel() mismatch, labels = %v", msg.Labels)
	}

	if len(msg.Attachments) != 1 {
		t.Fatalf("Attachments = %d, want 1", len(msg.Attachments))
	}
	att := msg.Attachments[0]
	if att.Filename != "report.pdf" || att.AttachmentID != "att1" || att.Size != 1024 {
		t.Errorf("Attachment = %+v", att)
	}
}

func TestParseMessageIgnoresAttachments(t *testing.T) {
	c := &Client{}

	raw := &gmail.Message{
		Id: "msg123",
		Payload: &gmail.MessagePart{
			MimeType: "multipart/mixed",
			Parts: []*gmail.MessagePart{
				{
					MimeType: "application/pdf",
					Filename: "report.pdf",
					Body:     &gmail.MessagePartBody{AttachmentId: "att1"},
				},
			},
		},
	}

	msg, err := c.ParseMessage(raw, AttachmentsIgnore)
	if err != nil {
		t.Fatalf("ParseMessage() error = %v", err)
	}
	if len(msg.Attachments) != 0 {
		t.Errorf("Attachments = %d, want 0 in ignore mode", len(msg.Attachments))
	}
}

func TestParseMessageConcatenatesParts(t *testing.T) {
	c := &Client{}

	raw := &gmail.Message{
		Id: "msg123",
		Payload: &gmail.MessagePart{
			MimeType: "multipart/mixed",
			Parts: []*gmail.MessagePart{
				{MimeType: "text/plain", Body: &gmail.MessagePartBody{Data: b64url("first")}},
				{MimeType: "text/plain", Body: &gmail.MessagePartBody{Data: b64url("second")}},
			},
		},
	}

	msg, err := c.ParseMessage(raw, AttachmentsIgnore)
	if err != nil {
		t.Fatalf("ParseMessage() error = %v", err)
	}
	if msg.Plain != "first\nsecond" {
		t.Errorf("Plain = %q, want parts joined with newline", msg.Plain)
	}
}

func TestMessageBody(t *testing.T) {
	tests := []struct {
		name string
		msg  *Message
		want string
	}{
		{
			name: "prefers plain text",
			msg:  &Message{Plain: "plain", HTML: "<p>html</p>"},
			want: "plain",
		},
		{
			name: "renders HTML when no plain part",
			msg:  &Message{HTML: "<p>hello</p><p>world</p>"},
			want: "hello\nworld",
		},
		{
			name: "empty message",
			msg:  &Message{},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.msg.Body(); got != tt.want {
				t.Errorf("Body() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDecodeBase64URL(t *testing.T) {
	content := "hello world?>"

	tests := []struct {
		name    string
		encoded string
	}{
		{"base64url", base64.URLEncoding.EncodeToString([]byte(content))},
		{"raw base64url", base64.RawURLEncoding.EncodeToString([]byte(content))},
		{"standard base64", base64.StdEncoding.EncodeToString([]byte(content))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeBase64URL(tt.encoded)
			if err != nil {
				t.Fatalf("decodeBase64URL() error = %v", err)
			}
			if string(got) != content {
				t.Errorf("decodeBase64URL() = %q, want %q", got, content)
			}
		})
	}

	if _, err := decodeBase64URL("not base64!!!"); err == nil {
		t.Error("decodeBase64URL() should fail for invalid input")
	}
}

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "RFC 2822 date",
			raw:  "Fri, 31 Oct 2025 10:00:00 +0000",
			want: "Fri, 31 Oct 2025 10:00:00 +0000",
		},
		{
			name: "date without weekday",
			raw:  "31 Oct 2025 10:00:00 +0000",
			want: "Fri, 31 Oct 2025 10:00:00 +0000",
		},
		{
			name: "unparseable date returned unchanged",
			raw:  "sometime last week",
			want: "sometime last week",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalizeDate(tt.raw); got != tt.want {
				t.Errorf("normalizeDate(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestExtractHTMLBody(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "full document",
			input: "<html><head><title>t</title></head><body><p>content</p></body></html>",
			want:  "<p>content</p>",
		},
		{
			name:  "fragment gets implicit body",
			input: "<p>content</p>",
			want:  "<p>content</p>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractHTMLBody(tt.input); got != tt.want {
				t.Errorf("ExtractHTMLBody() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHTMLToText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
		skip  []string
	}{
		{
			name:  "paragraphs become lines",
			input: "<p>first</p><p>second</p>",
			want:  []string{"first", "second"},
		},
		{
			name:  "script and style are dropped",
			input: "<style>p{color:red}</style><p>visible</p><script>alert(1)</script>",
			want:  []string{"visible"},
			skip:  []string{"color:red", "alert"},
		},
		{
			name:  "list items",
			input: "<ul><li>one</li><li>two</li></ul>",
			want:  []string{"one", "two"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HTMLToText(tt.input)
			for _, want := range tt.want {
				if !strings.Contains(got, want) {
					t.Errorf("HTMLToText() = %q, missing %q", got, want)
				}
			}
			for _, skip := range tt.skip {
				if strings.Contains(got, skip) {
					t.Errorf("HTMLToText() = %q, should not contain %q", got, skip)
				}
			}
		})
	}
}
