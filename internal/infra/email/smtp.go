package email

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/base64"
	"fmt"
	"mime"
	"mime/multipart"
	"net"
	"net/textproto"
	"strings"
	"time"

	"notigate/internal/common"
	"notigate/internal/domain/notification"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
	"github.com/google/uuid"
)

var _ notification.EmailTransport = (*SMTPTransport)(nil)

// SMTPTransport delivers email through an SMTP relay.
type SMTPTransport struct {
	host        string
	port        int
	username    string
	password    string
	startTLS    bool
	fromAddress string
	timeout     time.Duration
}

// NewSMTPTransport creates a new SMTP email transport. fromAddress is the
// configured default sender, used when send options carry no From.
func NewSMTPTransport(host string, port int, username, password string, startTLS bool, fromAddress string) *SMTPTransport {
	return &SMTPTransport{
		host:        host,
		port:        port,
		username:    username,
		password:    password,
		startTLS:    startTLS,
		fromAddress: fromAddress,
		timeout:     30 * time.Second,
	}
}

// Name returns the registry name of this transport.
func (t *SMTPTransport) Name() string {
	return "smtp"
}

// Send builds a MIME message and submits it to the relay. The message id is
// generated locally and the provider response is a plain "accepted" marker:
// the SMTP client API exposes neither a server-side identifier nor the raw
// reply line after a successful DATA exchange.
func (t *SMTPTransport) Send(ctx context.Context, opts notification.SendEmailOptions) (*notification.SendResult, error) {
	from := opts.From
	if from == "" {
		from = t.fromAddress
	}

	messageID := fmt.Sprintf("<%s@%s>", uuid.NewString(), t.host)
	msg, err := buildMessage(messageID, from, opts)
	if err != nil {
		return nil, fmt.Errorf("building message: %w", err)
	}

	addr := net.JoinHostPort(t.host, fmt.Sprintf("%d", t.port))
	dialer := net.Dialer{Timeout: t.timeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, common.NewTransportError("smtp", fmt.Sprintf("connecting to %s: %v", addr, err))
	}

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	} else {
		_ = conn.SetDeadline(time.Now().Add(t.timeout))
	}

	// NewClientStartTLS greets and upgrades the connection in one step, so
	// the explicit Hello belongs to the plaintext path only.
	var c *smtp.Client
	if t.startTLS {
		c, err = smtp.NewClientStartTLS(conn, &tls.Config{ServerName: t.host})
		if err != nil {
			conn.Close()
			return nil, common.NewTransportError("smtp", "STARTTLS failed: "+err.Error())
		}
	} else {
		c = smtp.NewClient(conn)
		if err := c.Hello(t.host); err != nil {
			c.Close()
			return nil, common.NewTransportError("smtp", "HELO failed: "+err.Error())
		}
	}
	defer c.Close()

	if t.username != "" {
		auth := sasl.NewPlainClient("", t.username, t.password)
		if err := c.Auth(auth); err != nil {
			return nil, common.NewTransportError("smtp", "authentication failed: "+err.Error())
		}
	}

	if err := c.SendMail(from, []string{opts.To}, bytes.NewReader(msg)); err != nil {
		return nil, common.NewTransportError("smtp", err.Error())
	}
	_ = c.Quit()

	return &notification.SendResult{
		MessageID:        messageID,
		ProviderResponse: "accepted",
	}, nil
}

// buildMessage assembles the RFC 5322 message. With attach-style attachments
// the body becomes multipart/mixed; link-style attachments are omitted.
func buildMessage(messageID, from string, opts notification.SendEmailOptions) ([]byte, error) {
	var attach []notification.Attachment
	for _, a := range opts.Attachments {
		if a.SendingMethod == notification.SendingMethodAttach {
			attach = append(attach, a)
		}
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "From: %s\r\n", from)
	fmt.Fprintf(&buf, "To: %s\r\n", opts.To)
	fmt.Fprintf(&buf, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", opts.Subject))
	fmt.Fprintf(&buf, "Date: %s\r\n", time.Now().UTC().Format(time.RFC1123Z))
	fmt.Fprintf(&buf, "Message-ID: %s\r\n", messageID)
	buf.WriteString("MIME-Version: 1.0\r\n")

	if len(attach) == 0 {
		buf.WriteString("Content-Type: text/html; charset=utf-8\r\n")
		buf.WriteString("\r\n")
		buf.WriteString(opts.Body)
		return buf.Bytes(), nil
	}

	w := multipart.NewWriter(&buf)
	fmt.Fprintf(&buf, "Content-Type: multipart/mixed; boundary=%q\r\n\r\n", w.Boundary())

	bodyHeader := textproto.MIMEHeader{}
	bodyHeader.Set("Content-Type", "text/html; charset=utf-8")
	bodyPart, err := w.CreatePart(bodyHeader)
	if err != nil {
		return nil, err
	}
	if _, err := bodyPart.Write([]byte(opts.Body)); err != nil {
		return nil, err
	}

	for _, a := range attach {
		header := textproto.MIMEHeader{}
		header.Set("Content-Type", "application/octet-stream")
		header.Set("Content-Transfer-Encoding", "base64")
		header.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", a.Filename))
		part, err := w.CreatePart(header)
		if err != nil {
			return nil, err
		}
		encoded := base64.StdEncoding.EncodeToString(a.Content)
		// 76-character lines per RFC 2045
		for len(encoded) > 0 {
			n := 76
			if len(encoded) < n {
				n = len(encoded)
			}
			if _, err := part.Write([]byte(encoded[:n] + "\r\n")); err != nil {
				return nil, err
			}
			encoded = encoded[n:]
		}
	}

	if err := w.Close(); err != nil {
		return nil, err
	}

	// multipart writes \n line endings within part boundaries; SMTP wants \r\n
	return normalizeCRLF(buf.Bytes()), nil
}

func normalizeCRLF(b []byte) []byte {
	s := strings.ReplaceAll(string(b), "\r\n", "\n")
	return []byte(strings.ReplaceAll(s, "\n", "\r\n"))
}
