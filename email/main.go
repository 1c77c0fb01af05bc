package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"

	"order-notifier/internal/changes"
	"order-notifier/internal/config"
	"order-notifier/internal/logging"
	"order-notifier/internal/mail"
	"order-notifier/internal/notify"
)

type dispatcher interface {
	Dispatch(ctx context.Context, ev notify.ChangeEvent) notify.Result
}

type emailHandler struct {
	dispatcher dispatcher
	logger     *zap.Logger
}

// handle always returns nil: a failed or malformed notification must never
// make EventBridge redeliver the write.
func (h *emailHandler) handle(ctx context.Context, event events.CloudWatchEvent) error {
	ev, err := changes.DecodeDetail(event.Detail)
	if err != nil {
		h.logger.Error("discarding change event",
			zap.String("id", event.ID),
			zap.String("detailType", event.DetailType),
			zap.Error(err))
		return nil
	}

	res := h.dispatcher.Dispatch(ctx, ev)
	h.logger.Debug("notification handled",
		zap.String("documentId", ev.DocumentID),
		zap.Stringer("result", res.Status))
	return nil
}

func main() {
	ctx := context.Background()

	cfg, err := config.New()
	if err != nil {
		log.Fatalf("unable to load config, %v", err)
	}
	logger := logging.Must(cfg.Log.Level)
	defer logger.Sync() //nolint:errcheck

	mailer, err := mail.New(ctx, cfg.Mail)
	if err != nil {
		logger.Fatal("unable to create mail transport", zap.Error(err))
	}

	d, err := notify.NewDispatcher(mailer, notify.Options{
		Recipient: cfg.Mail.Recipient(),
		From:      mail.FromAddress(cfg.Mail.FromName, cfg.Mail.Username),
	}, logger)
	if err != nil {
		logger.Fatal("unable to create dispatcher", zap.Error(err))
	}

	h := &emailHandler{dispatcher: d, logger: logger}
	lambda.Start(h.handle)
}
