// Package mail holds the transports behind notify.Mailer.
package mail

import (
	"context"
	"fmt"
	netmail "net/mail"
	"strings"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"

	"order-notifier/internal/config"
	"order-notifier/internal/notify"
)

// New builds the transport selected by cfg.Transport.
func New(ctx context.Context, cfg config.Mail) (notify.Mailer, error) {
	switch strings.ToLower(cfg.Transport) {
	case "", "smtp":
		ep, err := ResolveEndpoint(cfg.Service, cfg.Host, cfg.Port)
		if err != nil {
			return nil, err
		}
		return NewSMTP(SMTPConfig{
			Endpoint: ep,
			Username: cfg.Username,
			Password: cfg.Password,
			Timeout:  time.Duration(cfg.Timeout) * time.Second,
		})
	case "ses":
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("unable to load SDK config: %w", err)
		}
		return NewSES(awsCfg), nil
	default:
		return nil, fmt.Errorf("unsupported mail transport %q", cfg.Transport)
	}
}

// FromAddress formats the display sender, e.g. "BintaM" <orders@example.com>.
func FromAddress(name, address string) string {
	if address == "" {
		return ""
	}
	return (&netmail.Address{Name: name, Address: address}).String()
}
