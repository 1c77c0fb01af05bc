package mail

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	gomail "github.com/wneessen/go-mail"

	"order-notifier/internal/notify"
)

var ErrUnknownService = errors.New("unknown mail service")

// Endpoint is an SMTP server address and how to secure the connection to it.
type Endpoint struct {
	Host string
	Port int
	// ImplicitTLS selects SMTPS instead of STARTTLS.
	ImplicitTLS bool
}

// Security is how the connection to the server is encrypted.
type Security int

const (
	SecurityStartTLS Security = iota
	SecurityImplicitTLS
)

func (e Endpoint) Security() Security {
	if e.ImplicitTLS {
		return SecurityImplicitTLS
	}
	return SecurityStartTLS
}

var wellKnown = map[string]Endpoint{
	"gmail":   {Host: "smtp.gmail.com", Port: 587},
	"outlook": {Host: "smtp-mail.outlook.com", Port: 587},
	"hotmail": {Host: "smtp-mail.outlook.com", Port: 587},
	"yahoo":   {Host: "smtp.mail.yahoo.com", Port: 465, ImplicitTLS: true},
}

// ResolveEndpoint maps a service identifier to its SMTP endpoint. A non-empty
// host wins over the service; port 0 keeps the service or submission default.
func ResolveEndpoint(service, host string, port int) (Endpoint, error) {
	if host != "" {
		ep := Endpoint{Host: host, Port: port}
		if ep.Port == 0 {
			ep.Port = 587
		}
		ep.ImplicitTLS = ep.Port == 465
		return ep, nil
	}

	ep, ok := wellKnown[strings.ToLower(strings.TrimSpace(service))]
	if !ok {
		return Endpoint{}, fmt.Errorf("%w: %q", ErrUnknownService, service)
	}
	if port != 0 {
		ep.Port = port
		ep.ImplicitTLS = port == 465
	}
	return ep, nil
}

type SMTPConfig struct {
	Endpoint Endpoint
	Username string
	Password string
	Timeout  time.Duration
}

type smtpSender interface {
	DialAndSendWithContext(ctx context.Context, messages ...*gomail.Msg) error
}

// SMTP sends mail through an authenticated SMTP submission server. The
// underlying client is created once and reused across invocations.
type SMTP struct {
	client   smtpSender
	security Security
}

var _ notify.Mailer = (*SMTP)(nil)

func NewSMTP(cfg SMTPConfig) (*SMTP, error) {
	opts := []gomail.Option{
		gomail.WithPort(cfg.Endpoint.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(cfg.Username),
		gomail.WithPassword(cfg.Password),
	}
	security := cfg.Endpoint.Security()
	switch security {
	case SecurityImplicitTLS:
		opts = append(opts, gomail.WithSSL())
	default:
		opts = append(opts, gomail.WithTLSPortPolicy(gomail.TLSMandatory))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, gomail.WithTimeout(cfg.Timeout))
	}

	client, err := gomail.NewClient(cfg.Endpoint.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create smtp client: %w", err)
	}
	return &SMTP{client: client, security: security}, nil
}

func (s *SMTP) Send(ctx context.Context, msg notify.Message) error {
	m, err := buildMsg(msg)
	if err != nil {
		return err
	}
	if err := s.client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("smtp send to %s: %w", msg.To, err)
	}
	return nil
}

func buildMsg(msg notify.Message) (*gomail.Msg, error) {
	m := gomail.NewMsg()
	if err := m.From(msg.From); err != nil {
		return nil, fmt.Errorf("invalid sender %q: %w", msg.From, err)
	}
	if err := m.To(msg.To); err != nil {
		return nil, fmt.Errorf("invalid recipient %q: %w", msg.To, err)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(gomail.TypeTextPlain, msg.Body)
	return m, nil
}
