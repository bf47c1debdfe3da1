package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/rs/zerolog"
)

// SMTPConfig holds the mail relay settings.
type SMTPConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	From     string
	// Fallback is used as the recipient when a booking has no email.
	Fallback string
}

type SMTPNotifier struct {
	cfg  SMTPConfig
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewSMTPNotifier(cfg SMTPConfig) *SMTPNotifier {
	return &SMTPNotifier{cfg: cfg, send: smtp.SendMail}
}

func (n *SMTPNotifier) BookingConfirmed(_ context.Context, c Confirmation) error {
	to := c.Email
	if to == "" {
		to = n.cfg.Fallback
	}

	subject := fmt.Sprintf("Your booking for %s is confirmed", c.Treatment)
	body := fmt.Sprintf(
		"Dear %s,\r\n\r\nYour appointment for %s on %s at %s is confirmed.\r\n\r\nPlease visit us on time.\r\n",
		c.PatientName, c.Treatment, c.AppointmentDate, c.Slot)

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", n.cfg.From)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("\r\n")
	msg.WriteString(body)

	var auth smtp.Auth
	if n.cfg.User != "" {
		auth = smtp.PlainAuth("", n.cfg.User, n.cfg.Password, n.cfg.Host)
	}

	addr := n.cfg.Host + ":" + n.cfg.Port
	if err := n.send(addr, auth, n.cfg.From, []string{to}, []byte(msg.String())); err != nil {
		return fmt.Errorf("send confirmation mail: %w", err)
	}
	return nil
}

// ConsoleNotifier logs the confirmation instead of mailing it. Used when no
// SMTP relay is configured.
type ConsoleNotifier struct {
	logger zerolog.Logger
}

func NewConsoleNotifier(logger zerolog.Logger) *ConsoleNotifier {
	return &ConsoleNotifier{logger: logger}
}

func (n *ConsoleNotifier) BookingConfirmed(_ context.Context, c Confirmation) error {
	n.logger.Info().
		Str("email", c.Email).
		Str("treatment", c.Treatment).
		Str("date", c.AppointmentDate).
		Str("slot", c.Slot).
		Msg("booking confirmation")
	return nil
}
