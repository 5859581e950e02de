package email

import (
	"context"
	"fmt"
	"time"

	"github.com/SaiYerra0926/pittmetrorealty-sub000/internal/config"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	gomail "github.com/wneessen/go-mail"
	"go.uber.org/zap"
)

// Transport delivers a rendered Message.
type Transport interface {
	Send(ctx context.Context, msg Message) error
	Name() string
}

// NewTransport picks SendGrid when an API key is configured, then SMTP, and
// falls back to LogTransport so startup never fails on missing mail settings.
func NewTransport(cfg *config.Config, logger *zap.Logger) (Transport, error) {
	switch {
	case cfg.SendGridAPIKey != "":
		return NewSendGridTransport(cfg.SendGridAPIKey), nil
	case cfg.SMTPConfigured():
		return NewSMTPTransport(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass)
	default:
		logger.Warn("No SMTP or SendGrid credentials configured; emails will be logged, not delivered")
		return NewLogTransport(logger), nil
	}
}

// SendGridTransport sends through the SendGrid v3 API.
type SendGridTransport struct {
	client *sendgrid.Client
}

func NewSendGridTransport(apiKey string) *SendGridTransport {
	return &SendGridTransport{client: sendgrid.NewSendClient(apiKey)}
}

func (t *SendGridTransport) Name() string { return "sendgrid" }

func (t *SendGridTransport) Send(ctx context.Context, msg Message) error {
	from := sgmail.NewEmail(msg.FromName, msg.FromEmail)
	to := sgmail.NewEmail("", msg.To)
	m := sgmail.NewSingleEmail(from, msg.Subject, to, msg.Text, msg.HTML)
	if msg.ReplyTo != "" {
		m.SetReplyTo(sgmail.NewEmail("", msg.ReplyTo))
	}

	resp, err := t.client.SendWithContext(ctx, m)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid send: status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}

// SMTPTransport sends through an authenticated SMTP relay.
type SMTPTransport struct {
	client *gomail.Client
}

func NewSMTPTransport(host string, port int, username, password string) (*SMTPTransport, error) {
	client, err := gomail.NewClient(host,
		gomail.WithPort(port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(username),
		gomail.WithPassword(password),
		gomail.WithTimeout(15*time.Second),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	)
	if err != nil {
		return nil, fmt.Errorf("smtp client: %w", err)
	}
	return &SMTPTransport{client: client}, nil
}

func (t *SMTPTransport) Name() string { return "smtp" }

func (t *SMTPTransport) Send(ctx context.Context, msg Message) error {
	m := gomail.NewMsg()
	if err := m.FromFormat(msg.FromName, msg.FromEmail); err != nil {
		return fmt.Errorf("smtp from: %w", err)
	}
	if err := m.To(msg.To); err != nil {
		return fmt.Errorf("smtp to: %w", err)
	}
	if msg.ReplyTo != "" {
		if err := m.ReplyTo(msg.ReplyTo); err != nil {
			return fmt.Errorf("smtp reply-to: %w", err)
		}
	}
	m.Subject(msg.Subject)
	m.SetBodyString(gomail.TypeTextPlain, msg.Text)
	m.AddAlternativeString(gomail.TypeTextHTML, msg.HTML)

	if err := t.client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

// LogTransport records messages in the log instead of delivering them.
type LogTransport struct {
	logger *zap.Logger
}

func NewLogTransport(logger *zap.Logger) *LogTransport {
	return &LogTransport{logger: logger.Named("LogTransport")}
}

func (t *LogTransport) Name() string { return "log" }

func (t *LogTransport) Send(_ context.Context, msg Message) error {
	preview := msg.Text
	if len(preview) > 500 {
		preview = preview[:500] + "..."
	}
	t.logger.Info("Email not delivered (no transport configured)",
		zap.String("to", msg.To),
		zap.String("reply_to", msg.ReplyTo),
		zap.String("subject", msg.Subject),
		zap.String("preview", preview),
	)
	return nil
}
