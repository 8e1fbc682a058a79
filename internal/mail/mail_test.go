// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mail

import (
	"strings"
	"testing"

	"github.com/pdiddy/arxiv-alerter/pkg/types"
)

func TestRender(t *testing.T) {
	msg := Message{
		From:    "alerts@example.com",
		To:      []string{"a@example.com", "b@example.com"},
		Subject: "arXiv digest",
		Body:    "line one\nline two",
	}

	raw := string(Render(msg))
	header, body, found := strings.Cut(raw, "\r\n\r\n")
	if !found {
		t.Fatalf("no header/body separator in %q", raw)
	}

	for _, want := range []string{
		"From: alerts@example.com",
		"To: a@example.com, b@example.com",
		"Subject: arXiv digest",
		"MIME-Version: 1.0",
		`Content-Type: text/plain; charset="utf-8"`,
	} {
		if !strings.Contains(header, want) {
			t.Errorf("header missing %q:\n%s", want, header)
		}
	}

	if body != "line one\r\nline two" {
		t.Errorf("body = %q, want CRLF line endings", body)
	}
}

func TestRenderEncodesSubject(t *testing.T) {
	msg := Message{
		From:    "alerts@example.com",
		To:      []string{"a@example.com"},
		Subject: "新着論文ダイジェスト",
		Body:    "body",
	}

	raw := string(Render(msg))
	if strings.Contains(raw, "Subject: 新着論文ダイジェスト") {
		t.Error("non-ASCII subject sent unencoded")
	}
	if !strings.Contains(raw, "Subject: =?utf-8?") {
		t.Errorf("subject not RFC 2047 encoded:\n%s", raw)
	}
}

func TestSendConnectionRefused(t *testing.T) {
	s := &SMTPSender{Cfg: types.MailConfig{
		Host: "127.0.0.1",
		Port: 1, // nothing listens here
	}}
	if err := s.Send(Message{From: "a@example.com", To: []string{"b@example.com"}}); err == nil {
		t.Error("Send() = nil error, want connection error")
	}
}
