package notify

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"time"

	"github.com/wneessen/go-mail"

	"internship-monitor/internal/config"
	"internship-monitor/internal/models"
	"internship-monitor/internal/observability"
)

var (
	ErrNoListings         = errors.New("no listings to notify about")
	ErrMissingCredentials = errors.New("mail credentials not set")
	ErrAuthentication     = errors.New("mail authentication failed")
	ErrTransport          = errors.New("mail transport failed")
)

// Transport delivers a fully formed message.
type Transport interface {
	Send(ctx context.Context, creds config.Credentials, msg []byte) error
}

type Notifier struct {
	creds     config.Credentials
	transport Transport
	logger    *observability.Logger
	now       func() time.Time
}

func NewNotifier(creds config.Credentials, transport Transport, logger *observability.Logger) *Notifier {
	return &Notifier{
		creds:     creds,
		transport: transport,
		logger:    logger,
		now:       time.Now,
	}
}

// Notify mails a digest of listings. Nothing is sent without complete
// credentials or without listings.
func (n *Notifier) Notify(ctx context.Context, listings []models.Listing) error {
	if !n.creds.Complete() {
		n.logger.Error("Email credentials not set",
			"required", []string{config.EnvSenderAddress, config.EnvSenderPassword, config.EnvRecipientAddress},
		)
		return ErrMissingCredentials
	}
	if len(listings) == 0 {
		n.logger.Info("No internships to notify about")
		return ErrNoListings
	}

	body, err := RenderDigest(listings)
	if err != nil {
		return err
	}
	msg, err := n.buildMessage(Subject(len(listings)), body)
	if err != nil {
		return err
	}

	n.logger.Info("Sending email", "recipient", n.creds.Recipient, "listings", len(listings))
	if err := n.transport.Send(ctx, n.creds, msg); err != nil {
		switch {
		case errors.Is(err, ErrAuthentication):
			n.logger.Error("Email authentication failed, check that an app password is used", "error", err.Error())
		case errors.Is(err, ErrTransport):
			n.logger.Error("SMTP error", "error", err.Error())
		default:
			n.logger.Error("Error sending email", "error", err.Error())
		}
		return err
	}

	n.logger.Info("Email notification sent")
	return nil
}

func (n *Notifier) buildMessage(subject, htmlBody string) ([]byte, error) {
	m := mail.NewMsg()
	if err := m.From(n.creds.Sender); err != nil {
		return nil, fmt.Errorf("invalid sender address: %w", err)
	}
	if err := m.To(n.creds.Recipient); err != nil {
		return nil, fmt.Errorf("invalid recipient address: %w", err)
	}
	m.Subject(subject)
	m.SetDateWithValue(n.now())
	m.SetBodyString(mail.TypeTextHTML, htmlBody)

	var buf bytes.Buffer
	if _, err := m.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode message: %w", err)
	}
	return buf.Bytes(), nil
}

// SMTPTransport submits mail over an implicit-TLS connection (port 465).
type SMTPTransport struct {
	Host    string
	Port    int
	Timeout time.Duration

	logger *observability.Logger
	dial   func(ctx context.Context, network, addr string) (net.Conn, error)
}

func NewSMTPTransport(cfg config.MailConfig, timeout time.Duration, logger *observability.Logger) *SMTPTransport {
	t := &SMTPTransport{Host: cfg.Host, Port: cfg.Port, Timeout: timeout, logger: logger}
	dialer := &tls.Dialer{
		NetDialer: &net.Dialer{Timeout: timeout},
		Config:    &tls.Config{ServerName: cfg.Host},
	}
	t.dial = dialer.DialContext
	return t
}

func (t *SMTPTransport) Send(ctx context.Context, creds config.Credentials, msg []byte) error {
	addr := net.JoinHostPort(t.Host, strconv.Itoa(t.Port))
	conn, err := t.dial(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("%w: dial %s: %v", ErrTransport, addr, err)
	}
	if t.Timeout > 0 {
		_ = conn.SetDeadline(time.Now().Add(t.Timeout))
	}

	client, err := smtp.NewClient(conn, t.Host)
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer func() { _ = client.Close() }()

	if err := client.Auth(smtp.PlainAuth("", creds.Sender, creds.Password, t.Host)); err != nil {
		return fmt.Errorf("%w: %v", ErrAuthentication, err)
	}
	if err := client.Mail(creds.Sender); err != nil {
		return fmt.Errorf("%w: MAIL FROM: %v", ErrTransport, err)
	}
	if err := client.Rcpt(creds.Recipient); err != nil {
		return fmt.Errorf("%w: RCPT TO: %v", ErrTransport, err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("%w: DATA: %v", ErrTransport, err)
	}
	if _, err := w.Write(msg); err != nil {
		return fmt.Errorf("%w: write message: %v", ErrTransport, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("%w: end message: %v", ErrTransport, err)
	}

	// The message is accepted once DATA completes.
	if err := client.Quit(); err != nil {
		t.logger.Warn("SMTP QUIT failed after message was accepted", "error", err.Error())
	}
	return nil
}
