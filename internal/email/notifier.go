package email

import (
	"context"
	"strings"
	"time"

	"github.com/SaiYerra0926/pittmetrorealty-sub000/internal/config"

	"go.uber.org/zap"
)

// Notifier renders inquiry emails and hands them to a Transport. Every
// message goes to the brokerage inbox with Reply-To set to the visitor.
type Notifier struct {
	transport Transport
	brand     string
	fromEmail string
	inbox     string
	now       func() time.Time
	logger    *zap.Logger
}

// NewNotifier creates a notifier that delivers through transport.
func NewNotifier(transport Transport, cfg *config.Config, logger *zap.Logger) *Notifier {
	n := &Notifier{
		transport: transport,
		brand:     cfg.EmailFromName,
		fromEmail: cfg.EmailFrom,
		inbox:     cfg.EmailTo,
		now:       time.Now,
		logger:    logger.Named("EmailNotifier"),
	}
	n.logger.Info("Email notifier ready", zap.String("transport", transport.Name()))
	return n
}

// SendSellInquiry notifies the brokerage of a seller inquiry.
func (n *Notifier) SendSellInquiry(ctx context.Context, in SellInquiry) error {
	subject, text, html, err := RenderSellInquiry(n.brand, in, n.now())
	if err != nil {
		return err
	}
	return n.deliver(ctx, "sell", in.Email, subject, text, html)
}

// SendBuyInquiry notifies the brokerage of a buyer inquiry.
func (n *Notifier) SendBuyInquiry(ctx context.Context, in BuyInquiry) error {
	subject, text, html, err := RenderBuyInquiry(n.brand, in, n.now())
	if err != nil {
		return err
	}
	return n.deliver(ctx, "buy", in.Email, subject, text, html)
}

func (n *Notifier) deliver(ctx context.Context, kind, replyTo, subject, text, html string) error {
	msg := Message{
		FromName:  n.brand,
		FromEmail: n.fromEmail,
		To:        n.inbox,
		ReplyTo:   strings.TrimSpace(replyTo),
		Subject:   subject,
		Text:      text,
		HTML:      html,
	}
	if err := n.transport.Send(ctx, msg); err != nil {
		n.logger.Error("Failed to send inquiry email",
			zap.String("kind", kind),
			zap.String("transport", n.transport.Name()),
			zap.Error(err),
		)
		return err
	}
	n.logger.Info("Inquiry email sent", zap.String("kind", kind), zap.String("transport", n.transport.Name()))
	return nil
}
