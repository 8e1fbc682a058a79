// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package mail sends the digest as a single plain-text email over SMTP.
// The corpus has no mail dependency to lean on, and the stdlib client
// covers the one message this tool sends: STARTTLS, PLAIN auth, UTF-8 body.
package mail

import (
	"crypto/tls"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strconv"
	"strings"

	"github.com/pdiddy/arxiv-alerter/pkg/types"
)

// Message is one outbound email.
type Message struct {
	From    string
	To      []string
	Subject string
	Body    string
}

// Sender delivers a message. The pipeline depends on this interface so
// tests and preview mode can substitute the SMTP client.
type Sender interface {
	Send(msg Message) error
}

// SMTPSender delivers via an SMTP server using STARTTLS and PLAIN auth.
// Delivery is all-or-nothing for the single message; any failure is fatal
// to the run.
type SMTPSender struct {
	Cfg types.MailConfig
}

// Send connects, upgrades to TLS, authenticates, and submits the message.
func (s *SMTPSender) Send(msg Message) error {
	addr := net.JoinHostPort(s.Cfg.Host, strconv.Itoa(s.Cfg.Port))

	c, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("connecting to SMTP server %s: %w", addr, err)
	}
	defer c.Close()

	ok, _ := c.Extension("STARTTLS")
	if !ok {
		return fmt.Errorf("SMTP server %s does not support STARTTLS", addr)
	}
	if err := c.StartTLS(&tls.Config{ServerName: s.Cfg.Host}); err != nil {
		return fmt.Errorf("STARTTLS with %s: %w", addr, err)
	}

	auth := smtp.PlainAuth("", s.Cfg.Username, s.Cfg.Password, s.Cfg.Host)
	if err := c.Auth(auth); err != nil {
		return fmt.Errorf("SMTP authentication: %w", err)
	}

	if err := c.Mail(msg.From); err != nil {
		return fmt.Errorf("MAIL FROM %s: %w", msg.From, err)
	}
	for _, to := range msg.To {
		if err := c.Rcpt(to); err != nil {
			return fmt.Errorf("RCPT TO %s: %w", to, err)
		}
	}

	wc, err := c.Data()
	if err != nil {
		return fmt.Errorf("starting message body: %w", err)
	}
	if _, err := wc.Write(Render(msg)); err != nil {
		wc.Close()
		return fmt.Errorf("writing message body: %w", err)
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("finishing message body: %w", err)
	}

	return c.Quit()
}

// Render produces the RFC 5322 message bytes: headers with an encoded
// subject, then the UTF-8 plain-text body.
func Render(msg Message) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", msg.From)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(msg.To, ", "))
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", msg.Subject))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	b.WriteString("Content-Transfer-Encoding: 8bit\r\n")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(msg.Body, "\n", "\r\n"))
	return []byte(b.String())
}
