package notify

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net"
	"net/smtp"
	"time"

	"github.com/emersion/go-message/mail"

	"github.com/khsu/projectms/internal/model"
)

// dialTimeout bounds the TCP connection attempt to the SMTP server.
const dialTimeout = 30 * time.Second

// SMTPNotifier sends reminder emails over SMTP, using implicit TLS or
// STARTTLS depending on configuration.
type SMTPNotifier struct {
	cfg model.SMTPConfig
}

// NewSMTPNotifier creates a notifier from SMTP settings. The From
// address defaults to the username when unset.
func NewSMTPNotifier(cfg model.SMTPConfig) *SMTPNotifier {
	if cfg.From == "" {
		cfg.From = cfg.Username
	}
	return &SMTPNotifier{cfg: cfg}
}

// Send composes an RFC 5322 message and transmits it to the recipient.
func (n *SMTPNotifier) Send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg, err := composeMessage(n.cfg.From, to, subject, body)
	if err != nil {
		return fmt.Errorf("composing message: %w", err)
	}

	addr := n.cfg.Host + ":" + n.cfg.Port

	if n.cfg.TLS {
		return sendWithTLS(addr, n.cfg, to, msg)
	}
	return sendWithStartTLS(addr, n.cfg, to, msg)
}

// composeMessage builds a single-part plain-text message.
func composeMessage(from, to, subject, body string) ([]byte, error) {
	var buf bytes.Buffer

	var h mail.Header
	h.SetDate(time.Now())
	h.SetAddressList("From", []*mail.Address{{Address: from}})
	h.SetAddressList("To", []*mail.Address{{Address: to}})
	h.SetSubject(subject)

	w, err := mail.CreateSingleInlineWriter(&buf, h)
	if err != nil {
		return nil, fmt.Errorf("creating message writer: %w", err)
	}
	if _, err := io.WriteString(w, body); err != nil {
		w.Close()
		return nil, fmt.Errorf("writing message body: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("closing message writer: %w", err)
	}

	return buf.Bytes(), nil
}

// sendWithTLS sends a message over an implicit TLS connection.
func sendWithTLS(addr string, cfg model.SMTPConfig, to string, msg []byte) error {
	tlsConfig := &tls.Config{ServerName: cfg.Host}

	conn, err := tls.Dial("tcp", addr, tlsConfig)
	if err != nil {
		return fmt.Errorf("TLS dial to %s: %w", addr, err)
	}

	client, err := smtp.NewClient(conn, cfg.Host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("creating SMTP client: %w", err)
	}
	defer client.Close()

	auth := smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("SMTP auth: %w", err)
	}

	return transmit(client, cfg.From, to, msg)
}

// sendWithStartTLS sends a message using STARTTLS.
func sendWithStartTLS(addr string, cfg model.SMTPConfig, to string, msg []byte) error {
	conn, err := net.DialTimeout("tcp", addr, dialTimeout)
	if err != nil {
		return fmt.Errorf("dial to %s: %w", addr, err)
	}

	client, err := smtp.NewClient(conn, cfg.Host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("creating SMTP client: %w", err)
	}
	defer client.Close()

	tlsConfig := &tls.Config{ServerName: cfg.Host}
	if err := client.StartTLS(tlsConfig); err != nil {
		return fmt.Errorf("SMTP STARTTLS: %w", err)
	}

	auth := smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("SMTP auth: %w", err)
	}

	return transmit(client, cfg.From, to, msg)
}

// transmit runs the MAIL/RCPT/DATA sequence on an authenticated client.
func transmit(client *smtp.Client, from, to string, msg []byte) error {
	if err := client.Mail(from); err != nil {
		return fmt.Errorf("SMTP MAIL FROM: %w", err)
	}

	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("SMTP RCPT TO: %w", err)
	}

	writer, err := client.Data()
	if err != nil {
		return fmt.Errorf("SMTP DATA: %w", err)
	}

	if _, err := writer.Write(msg); err != nil {
		writer.Close()
		return fmt.Errorf("writing SMTP data: %w", err)
	}

	if err := writer.Close(); err != nil {
		return fmt.Errorf("closing SMTP data: %w", err)
	}

	return client.Quit()
}
