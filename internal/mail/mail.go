package mail

import (
	"context"

	"github.com/rs/zerolog/log"
	gomail "github.com/wneessen/go-mail"

	"github.com/vitrina-solutions/storefront-service/internal/monitoring"
)

// Config holds the SMTP relay settings, read from the environment.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Sender delivers a single HTML mail. Satisfied by Relay and by test fakes.
type Sender interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// Relay sends HTML mail through an SMTP relay.
type Relay struct {
	client *gomail.Client
	from   string
}

func NewRelay(cfg Config) (*Relay, error) {
	opts := []gomail.Option{
		gomail.WithPort(cfg.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(cfg.Username),
		gomail.WithPassword(cfg.Password),
	}
	client, err := gomail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, err
	}
	return &Relay{client: client, from: cfg.From}, nil
}

// Send delivers one HTML message. Failures are counted; the caller
// decides whether to swallow them.
func (r *Relay) Send(ctx context.Context, to, subject, htmlBody string) error {
	msg := gomail.NewMsg()
	if err := msg.From(r.from); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextHTML, htmlBody)

	if err := r.client.DialAndSendWithContext(ctx, msg); err != nil {
		monitoring.MailDeliveries.WithLabelValues("error").Inc()
		log.Error().Err(err).Str("to", to).Msg("mail delivery failed")
		return err
	}
	monitoring.MailDeliveries.WithLabelValues("ok").Inc()
	return nil
}
