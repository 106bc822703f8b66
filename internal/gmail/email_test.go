package gmail

import (
	"encoding/base64"
	"mime"
	"os"
	"strings"
	"testing"
)

func TestSendEmailValidation(t *testing.T) {
	tests := []struct {
		name        string
		msg         *EmailMessage
		errContains string
	}{
		{
			name:        "missing recipients",
			msg:         &EmailMessage{Subject: "Hi", Body: "Hello"},
			errContains: "at least one recipient is required",
		},
		{
			name:        "missing subject",
			msg:         &EmailMessage{To: []string{"a@example.com"}, Body: "Hello"},
			errContains: "subject is required",
		},
		{
			name:        "missing body",
			msg:         &EmailMessage{To: []string{"a@example.com"}, Subject: "Hi"},
			errContains: "body is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Validation fires before any API call, so a zero client suffices
			c := &Client{}

			_, err := c.SendEmail(tt.msg)
			if err == nil {
				t.Fatal("SendEmail() expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.errContains) {
				t.Errorf("SendEmail() error = %v, should contain %v", err, tt.errContains)
			}
		})
	}
}

func TestReplyToEmailValidation(t *testing.T) {
	tests := []struct {
		name        string
		messageID   string
		reply       *EmailMessage
		errContains string
	}{
		{
			name:        "missing messageID",
			messageID:   "",
			reply:       &EmailMessage{Body: "Reply body"},
			errContains: "messageID is required",
		},
		{
			name:        "missing body",
			messageID:   "msg123",
			reply:       &EmailMessage{},
			errContains: "body is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Client{}

			_, err := c.ReplyToEmail(tt.messageID, tt.reply)
			if err == nil {
				t.Fatal("ReplyToEmail() expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.errContains) {
				t.Errorf("ReplyToEmail() error = %v, should contain %v", err, tt.errContains)
			}
		})
	}
}

func TestForwardEmailValidation(t *testing.T) {
	tests := []struct {
		name        string
		messageID   string
		to          []string
		errContains string
	}{
		{
			name:        "missing messageID",
			messageID:   "",
			to:          []string{"recipient@example.com"},
			errContains: "messageID is required",
		},
		{
			name:        "missing recipients",
			messageID:   "msg123",
			to:          []string{},
			errContains: "at least one recipient is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Client{}

			_, err := c.ForwardEmail(tt.messageID, tt.to, nil, nil, "", false)
			if err == nil {
				t.Fatal("ForwardEmail() expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.errContains) {
				t.Errorf("ForwardEmail() error = %v, should contain %v", err, tt.errContains)
			}
		})
	}
}

func TestBuildRawMessagePlainText(t *testing.T) {
	c := &Client{}
	raw, err := c.buildRawMessage(&EmailMessage{
		To:      []string{"recipient@example.com"},
		Subject: "Test",
		Body:    "Body content",
	}, nil)
	if err != nil {
		t.Fatalf("buildRawMessage() error = %v", err)
	}

	decoded, err := base64.URLEncoding.DecodeString(raw)
	if err != nil {
		t.Fatalf("raw message is not base64url: %v", err)
	}
	content := string(decoded)

	for _, want := range []string{
		"To: recipient@example.com\r\n",
		"Subject: Test\r\n",
		"MIME-Version: 1.0\r\n",
		"Content-Type: text/plain; charset=\"UTF-8\"\r\n",
		"Body content",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("raw message missing %q:\n%s", want, content)
		}
	}
}

func TestBuildRawMessageAlternative(t *testing.T) {
	c := &Client{}
	raw, err := c.buildRawMessage(&EmailMessage{
		To:       []string{"recipient@example.com"},
		Cc:       []string{"cc@example.com"},
		Subject:  "Test",
		Body:     "plain body",
		BodyHTML: "<p>html body</p>",
	}, nil)
	if err != nil {
		t.Fatalf("buildRawMessage() error = %v", err)
	}

	decoded, _ := base64.URLEncoding.DecodeString(raw)
	content := string(decoded)

	for _, want := range []string{
		"Cc: cc@example.com\r\n",
		"multipart/alternative",
		"text/plain; charset=\"UTF-8\"",
		"text/html; charset=\"UTF-8\"",
		"plain body",
		"<p>html body</p>",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("raw message missing %q:\n%s", want, content)
		}
	}
}

func TestBuildRawMessageExtraHeaders(t *testing.T) {
	c := &Client{}
	raw, err := c.buildRawMessage(&EmailMessage{
		To:      []string{"recipient@example.com"},
		Subject: "Re: Test",
		Body:    "reply",
	}, []header{
		{"In-Reply-To", "<abc123@example.com>"},
		{"References", "<ref1@example.com> <abc123@example.com>"},
	})
	if err != nil {
		t.Fatalf("buildRawMessage() error = %v", err)
	}

	decoded, _ := base64.URLEncoding.DecodeString(raw)
	content := string(decoded)

	if !strings.Contains(content, "In-Reply-To: <abc123@example.com>\r\n") {
		t.Errorf("raw message missing In-Reply-To header:\n%s", content)
	}
	if !strings.Contains(content, "References: <ref1@example.com> <abc123@example.com>\r\n") {
		t.Errorf("raw message missing References header:\n%s", content)
	}
}

func TestBuildRawMessageAttachments(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/report.txt"
	if err := os.WriteFile(path, []byte("attachment content"), 0644); err != nil {
		t.Fatal(err)
	}

	c := &Client{}
	raw, err := c.buildRawMessage(&EmailMessage{
		To:          []string{"recipient@example.com"},
		Subject:     "With attachment",
		Body:        "see attached",
		Attachments: []string{path},
	}, nil)
	if err != nil {
		t.Fatalf("buildRawMessage() error = %v", err)
	}

	decoded, _ := base64.URLEncoding.DecodeString(raw)
	content := string(decoded)

	for _, want := range []string{
		"multipart/mixed",
		`attachment; filename="report.txt"`,
		"Content-Transfer-Encoding: base64",
		base64.StdEncoding.EncodeToString([]byte("attachment content")),
	} {
		if !strings.Contains(content, want) {
			t.Errorf("raw message missing %q:\n%s", want, content)
		}
	}
}

func TestBuildRawMessageMissingAttachment(t *testing.T) {
	c := &Client{}
	_, err := c.buildRawMessage(&EmailMessage{
		To:          []string{"recipient@example.com"},
		Subject:     "With attachment",
		Body:        "see attached",
		Attachments: []string{"/nonexistent/file.bin"},
	}, nil)
	if err == nil {
		t.Fatal("buildRawMessage() should fail for missing attachment file")
	}
	if !strings.Contains(err.Error(), "failed to read attachment") {
		t.Errorf("buildRawMessage() error = %v, want read failure", err)
	}
}

func TestReplySubjectFormatting(t *testing.T) {
	tests := []struct {
		name            string
		originalSubject string
		wantPrefix      string
	}{
		{
			name:            "add Re: to subject without Re:",
			originalSubject: "Original Subject",
			wantPrefix:      "re:",
		},
		{
			name:            "don't duplicate Re: in subject",
			originalSubject: "Re: Original Subject",
			wantPrefix:      "re:",
		},
		{
			name:            "case insensitive Re: check",
			originalSubject: "RE: Original Subject",
			wantPrefix:      "re:",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			replySubject := tt.originalSubject
			if !strings.HasPrefix(strings.ToLower(replySubject), "re:") {
				replySubject = "Re: " + replySubject
			}

			if !strings.HasPrefix(strings.ToLower(replySubject), tt.wantPrefix) {
				t.Errorf("Reply subject = %v, want prefix %v", replySubject, tt.wantPrefix)
			}

			lowerSubject := strings.ToLower(replySubject)
			if strings.Count(lowerSubject, "re:") > 1 {
				t.Errorf("Reply subject has multiple Re: prefixes: %v", replySubject)
			}
		})
	}
}

func TestQuotePlain(t *testing.T) {
	original := &Message{
		From:  "sender@example.com",
		Date:  "Mon, 31 Oct 2025 10:00:00 +0000",
		Plain: "first line\nsecond line",
	}

	quoted := quotePlain(original)

	if !strings.HasPrefix(quoted, "On Mon, 31 Oct 2025 10:00:00 +0000, sender@example.com wrote:") {
		t.Errorf("quotePlain() missing attribution line:\n%s", quoted)
	}
	if !strings.Contains(quoted, "> first line") {
		t.Errorf("quotePlain() missing quoted first line:\n%s", quoted)
	}
	if !strings.Contains(quoted, "> second line") {
		t.Errorf("quotePlain() missing quoted second line:\n%s", quoted)
	}
}

func TestQuoteHTML(t *testing.T) {
	original := &Message{
		From: "Sender <sender@example.com>",
		Date: "Mon, 31 Oct 2025 10:00:00 +0000",
		HTML: "<p>original</p>",
	}

	quoted := quoteHTML(original)

	if !strings.Contains(quoted, "<blockquote><p>original</p></blockquote>") {
		t.Errorf("quoteHTML() missing blockquote:\n%s", quoted)
	}
	// Sender display names may contain angle brackets and must be escaped
	if !strings.Contains(quoted, "Sender &lt;sender@example.com&gt;") {
		t.Errorf("quoteHTML() should escape the sender:\n%s", quoted)
	}
}

func TestEncodeRFC2047(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantASCII bool // If true, should return as-is; if false, should be encoded
	}{
		{
			name:      "plain ASCII text",
			input:     "Simple Subject",
			wantASCII: true,
		},
		{
			name:      "German umlauts",
			input:     "Rückerstattung €115 - Überweisung",
			wantASCII: false,
		},
		{
			name:      "French accents",
			input:     "Réponse à votre demande",
			wantASCII: false,
		},
		{
			name:      "Japanese characters",
			input:     "こんにちは",
			wantASCII: false,
		},
		{
			name:      "Emoji",
			input:     "Subject with emoji 🎉",
			wantASCII: false,
		},
		{
			name:      "Empty string",
			input:     "",
			wantASCII: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := encodeRFC2047(tt.input)

			if tt.wantASCII {
				if result != tt.input {
					t.Errorf("encodeRFC2047() = %v, want %v (should not encode ASCII)", result, tt.input)
				}
			} else {
				if !strings.HasPrefix(result, "=?UTF-8?") {
					t.Errorf("encodeRFC2047() = %v, should start with =?UTF-8? for non-ASCII input", result)
				}
				if !strings.HasSuffix(result, "?=") {
					t.Errorf("encodeRFC2047() = %v, should end with ?= for non-ASCII input", result)
				}
			}
		})
	}
}

func TestEncodeRFC2047Roundtrip(t *testing.T) {
	originalSubjects := []string{
		"Rückerstattung €115",
		"Überweisung",
		"Äpfel und Öl",
		"Größe",
	}

	for _, original := range originalSubjects {
		t.Run(original, func(t *testing.T) {
			encoded := encodeRFC2047(original)

			decoder := new(mime.WordDecoder)
			decoded, err := decoder.DecodeHeader(encoded)
			if err != nil {
				t.Fatalf("Failed to decode %v: %v", encoded, err)
			}

			if decoded != original {
				t.Errorf("Roundtrip failed: original=%v, encoded=%v, decoded=%v", original, encoded, decoded)
			}
		})
	}
}

func TestFormatAddress(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "bare address",
			input: "john.doe@example.com",
			want:  "john.doe@example.com",
		},
		{
			name:  "ascii display name",
			input: `"John Doe" <john.doe@example.com>`,
			want:  `"John Doe" <john.doe@example.com>`,
		},
		{
			name:  "non-ascii display name is encoded",
			input: `"Anete Gludīte" <john.doe@example.com>`,
			want:  "=?utf-8?q?Anete_Glud=C4=ABte?= <john.doe@example.com>",
		},
		{
			name:  "unparseable input passes through",
			input: "Anete Gludīte <john.doe@example.com",
			want:  "Anete Gludīte <john.doe@example.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatAddress(tt.input); got != tt.want {
				t.Errorf("formatAddress(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestBuildRawMessageEncodesRecipientNames(t *testing.T) {
	c := &Client{}
	raw, err := c.buildRawMessage(&EmailMessage{
		To:      []string{`"Anete Gludīte" <john.doe@example.com>`, "plain@example.com"},
		Cc:      []string{`"Jürgen Müller" <juergen@example.com>`},
		Subject: "Test",
		Body:    "Body content",
	}, nil)
	if err != nil {
		t.Fatalf("buildRawMessage() error = %v", err)
	}

	decoded, err := base64.URLEncoding.DecodeString(raw)
	if err != nil {
		t.Fatalf("raw message is not base64url: %v", err)
	}
	content := string(decoded)

	headers, _, _ := strings.Cut(content, "\r\n\r\n")
	for _, r := range headers {
		if r > 127 {
			t.Fatalf("headers contain raw non-ASCII character %q:\n%s", r, headers)
		}
	}

	toLine := "To: =?utf-8?q?Anete_Glud=C4=ABte?= <john.doe@example.com>, plain@example.com\r\n"
	if !strings.Contains(content, toLine) {
		t.Errorf("raw message missing encoded To header %q:\n%s", toLine, content)
	}

	// The encoded display name must decode back to the original
	var start, end int
	if start = strings.Index(content, "Cc: "); start < 0 {
		t.Fatalf("raw message missing Cc header:\n%s", content)
	}
	end = strings.Index(content[start:], "\r\n")
	ccValue := content[start+len("Cc: ") : start+end]

	decoder := new(mime.WordDecoder)
	plain, err := decoder.DecodeHeader(ccValue)
	if err != nil {
		t.Fatalf("failed to decode Cc header %q: %v", ccValue, err)
	}
	if !strings.Contains(plain, "Jürgen Müller") {
		t.Errorf("decoded Cc header = %q, want the original display name", plain)
	}
}

func TestAppendSignature(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		signature    string
		isHTML       bool
		wantContains []string
	}{
		{
			name:      "plain text with signature",
			body:      "Hello,\n\nThis is my message.",
			signature: "Best regards,\nSender Name",
			isHTML:    false,
			wantContains: []string{
				"Hello,\n\nThis is my message.",
				"\n\n-- \n",
				"Best regards,\nSender Name",
			},
		},
		{
			name:      "HTML with signature",
			body:      "<p>Hello,</p><p>This is my message.</p>",
			signature: "<p>Best regards,<br>Sender Name</p>",
			isHTML:    true,
			wantContains: []string{
				"<p>Hello,</p><p>This is my message.</p>",
				"<br><br>-- <br>",
				"<p>Best regards,<br>Sender Name</p>",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Client{
				signature: tt.signature,
			}

			result := c.appendSignature(tt.body, tt.isHTML)

			for _, want := range tt.wantContains {
				if !strings.Contains(result, want) {
					t.Errorf("appendSignature() result missing expected content: %v\nGot: %v", want, result)
				}
			}
		})
	}
}
