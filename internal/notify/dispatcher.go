package notify

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

const (
	subjectCreated = "Confirmation d'une nouvelle commande"
	subjectUpdated = "Notification de changement dans le statut de la commande"

	bodyCreated = "Une nouvelle commande a été effectué! Le numéro de la commande est %s."
	bodyUpdated = "La commande %s a été modifié."
)

var ErrNilMailer = errors.New("notify: nil mailer")

// Mailer delivers one message. Implementations live in internal/mail.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// Options is fixed at cold start. An empty Recipient turns every dispatch
// into a no-op.
type Options struct {
	Recipient string
	From      string
}

// Dispatcher turns change events into order notifications.
type Dispatcher struct {
	mailer Mailer
	opts   Options
	logger *zap.Logger
}

func NewDispatcher(mailer Mailer, opts Options, logger *zap.Logger) (*Dispatcher, error) {
	if mailer == nil {
		return nil, ErrNilMailer
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{mailer: mailer, opts: opts, logger: logger}, nil
}

// BuildMessage renders the notification for ev.
func (d *Dispatcher) BuildMessage(ev ChangeEvent) Message {
	msg := Message{From: d.opts.From, To: d.opts.Recipient}
	if ev.IsNew() {
		msg.Subject = subjectCreated
		msg.Body = fmt.Sprintf(bodyCreated, ev.DocumentID)
	} else {
		msg.Subject = subjectUpdated
		msg.Body = fmt.Sprintf(bodyUpdated, ev.DocumentID)
	}
	return msg
}

// Dispatch sends at most one email for ev. Delivery errors are logged and
// reported in the Result, never returned.
func (d *Dispatcher) Dispatch(ctx context.Context, ev ChangeEvent) Result {
	if d.opts.Recipient == "" {
		d.logger.Debug("no recipient configured, skipping notification",
			zap.String("documentId", ev.DocumentID))
		return Result{Status: StatusSkipped}
	}

	msg := d.BuildMessage(ev)
	if err := d.mailer.Send(ctx, msg); err != nil {
		d.logger.Error("error sending email",
			zap.String("to", msg.To),
			zap.String("documentId", ev.DocumentID),
			zap.String("eventId", ev.EventID),
			zap.Error(err))
		return Result{Status: StatusFailed, Err: err}
	}

	d.logger.Info("email sent",
		zap.String("to", msg.To),
		zap.String("documentId", ev.DocumentID),
		zap.Bool("new", ev.IsNew()))
	return Result{Status: StatusDelivered}
}
