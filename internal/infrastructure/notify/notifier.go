package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"go.uber.org/zap"

	"github.com/marketplace/backend/internal/application/notification"
	"github.com/marketplace/backend/internal/infrastructure/config"
)

// SMTPNotifier delivers notifications over plain SMTP
type SMTPNotifier struct {
	cfg    config.SMTPConfig
	logger *zap.Logger
}

// NewSMTPNotifier creates a new SMTPNotifier
func NewSMTPNotifier(cfg config.SMTPConfig, logger *zap.Logger) *SMTPNotifier {
	return &SMTPNotifier{cfg: cfg, logger: logger}
}

// Send delivers one message
func (n *SMTPNotifier) Send(_ context.Context, msg notification.Message) error {
	var body strings.Builder
	fmt.Fprintf(&body, "From: %s\r\n", n.cfg.From)
	fmt.Fprintf(&body, "To: %s\r\n", msg.To)
	fmt.Fprintf(&body, "Subject: %s\r\n", msg.Subject)
	body.WriteString("\r\n")
	body.WriteString(msg.Body)
	body.WriteString("\r\n")

	addr := fmt.Sprintf("%s:%d", n.cfg.Host, n.cfg.Port)
	var auth smtp.Auth
	if n.cfg.User != "" {
		auth = smtp.PlainAuth("", n.cfg.User, n.cfg.Password, n.cfg.Host)
	}

	if err := smtp.SendMail(addr, auth, n.cfg.From, []string{msg.To}, []byte(body.String())); err != nil {
		return fmt.Errorf("failed to send %s notification: %w", msg.Kind, err)
	}

	n.logger.Debug("notification sent",
		zap.String("kind", string(msg.Kind)),
		zap.String("to", msg.To))
	return nil
}

// LogNotifier writes notifications to the log instead of delivering them.
// Used in development and whenever no SMTP host is configured.
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier creates a new LogNotifier
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Send logs the message
func (n *LogNotifier) Send(_ context.Context, msg notification.Message) error {
	n.logger.Info("notification",
		zap.String("kind", string(msg.Kind)),
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.String("body", msg.Body))
	return nil
}

// NewNotifier picks the SMTP sink when a host is configured, the log sink
// otherwise
func NewNotifier(cfg config.SMTPConfig, logger *zap.Logger) notification.Notifier {
	if cfg.Host == "" {
		return NewLogNotifier(logger)
	}
	return NewSMTPNotifier(cfg, logger)
}

var (
	_ notification.Notifier = (*SMTPNotifier)(nil)
	_ notification.Notifier = (*LogNotifier)(nil)
)
