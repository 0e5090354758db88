package notifications

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/wneessen/go-mail"
)

// Message is a single outbound HTML email.
type Message struct {
	To      string
	Subject string
	HTML    string
}

// Mailer delivers messages.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// NewMailer returns an SMTP mailer, or a log-only mailer when cfg.Host is empty.
func NewMailer(cfg Config, logger *slog.Logger) Mailer {
	if cfg.Host == "" {
		return &logMailer{logger: logger.With("system", "mailer")}
	}
	return &smtpMailer{cfg: cfg}
}

// Compose renders msg as a quoted-printable HTML message from the given sender.
func Compose(from string, msg Message) (*mail.Msg, error) {
	m := mail.NewMsg(mail.WithEncoding(mail.EncodingQP), mail.WithCharset(mail.CharsetUTF8))
	if err := m.From(from); err != nil {
		return nil, fmt.Errorf("from: %w", err)
	}
	if err := m.To(msg.To); err != nil {
		return nil, fmt.Errorf("to: %w", err)
	}
	m.Subject(msg.Subject)
	m.SetDate()
	m.SetBodyString(mail.TypeTextHTML, msg.HTML)
	return m, nil
}

type smtpMailer struct {
	cfg Config
}

func (m *smtpMailer) Send(ctx context.Context, msg Message) error {
	out, err := Compose(m.cfg.From, msg)
	if err != nil {
		return err
	}

	opts := []mail.Option{
		mail.WithPort(m.cfg.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if m.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(m.cfg.Username),
			mail.WithPassword(m.cfg.Password),
		)
	}

	client, err := mail.NewClient(m.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, out); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

type logMailer struct {
	logger *slog.Logger
}

func (m *logMailer) Send(ctx context.Context, msg Message) error {
	m.logger.InfoContext(ctx, "mail delivery disabled", "to", msg.To, "subject", msg.Subject)
	return nil
}
