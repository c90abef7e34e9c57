package mail

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/phrazzld/webapp/internal/config"
	gomail "github.com/wneessen/go-mail"
)

// sendTimeout bounds one SMTP conversation.
const sendTimeout = 15 * time.Second

// Mail errors
var (
	// ErrNoSender is returned when neither the message nor the settings name a sender.
	ErrNoSender = errors.New("no sender address configured")

	// ErrNoRecipient is returned for a message without recipients.
	ErrNoRecipient = errors.New("no recipient address")
)

// Message is a plain-text email.
type Message struct {
	From    string
	To      []string
	Subject string
	Body    string
}

// Sender is the interface handlers depend on to send mail.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Mailer sends messages through the configured SMTP server.
type Mailer struct {
	cfg    config.MailSettings
	logger *slog.Logger
}

var _ Sender = (*Mailer)(nil)

// NewMailer creates a Mailer for cfg. No connection is made until Send.
func NewMailer(cfg config.MailSettings, logger *slog.Logger) *Mailer {
	return &Mailer{cfg: cfg, logger: logger}
}

// Send delivers msg, dialing the server for each call.
func (m *Mailer) Send(ctx context.Context, msg Message) error {
	gm, err := m.build(msg)
	if err != nil {
		return err
	}

	client, err := gomail.NewClient(m.cfg.Server, m.clientOptions()...)
	if err != nil {
		return fmt.Errorf("failed to create smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, gm); err != nil {
		return fmt.Errorf("failed to send mail to %d recipient(s): %w", len(msg.To), err)
	}

	m.logger.Info("mail sent",
		slog.String("subject", msg.Subject),
		slog.Int("recipients", len(msg.To)))
	return nil
}

// WriteTo renders msg as it would be transmitted, without sending it.
func (m *Mailer) WriteTo(w io.Writer, msg Message) error {
	gm, err := m.build(msg)
	if err != nil {
		return err
	}
	_, err = gm.WriteTo(w)
	return err
}

func (m *Mailer) build(msg Message) (*gomail.Msg, error) {
	from := msg.From
	if from == "" {
		from = m.cfg.DefaultSender
	}
	if from == "" {
		return nil, ErrNoSender
	}
	if len(msg.To) == 0 {
		return nil, ErrNoRecipient
	}

	gm := gomail.NewMsg()
	if err := gm.From(from); err != nil {
		return nil, fmt.Errorf("invalid sender address: %w", err)
	}
	if err := gm.To(msg.To...); err != nil {
		return nil, fmt.Errorf("invalid recipient address: %w", err)
	}
	gm.Subject(msg.Subject)
	gm.SetBodyString(gomail.TypeTextPlain, msg.Body)
	return gm, nil
}

func (m *Mailer) clientOptions() []gomail.Option {
	opts := []gomail.Option{
		gomail.WithPort(m.cfg.Port),
		gomail.WithTimeout(sendTimeout),
	}
	if m.cfg.UseTLS {
		opts = append(opts, gomail.WithTLSPolicy(gomail.TLSMandatory))
	} else {
		opts = append(opts, gomail.WithTLSPolicy(gomail.NoTLS))
	}
	if m.cfg.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(m.cfg.Username),
			gomail.WithPassword(m.cfg.Password))
	}
	return opts
}
