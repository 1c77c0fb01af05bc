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
)

type auditHandler struct {
	logger *zap.Logger
}

// handle writes one audit line per order change seen on the bus.
func (h *auditHandler) handle(_ context.Context, event events.CloudWatchEvent) error {
	ev, err := changes.DecodeDetail(event.Detail)
	if err != nil {
		h.logger.Warn("unreadable change event",
			zap.String("id", event.ID),
			zap.ByteString("detail", event.Detail),
			zap.Error(err))
		return nil
	}

	kind := "updated"
	if ev.IsNew() {
		kind = "created"
	}
	h.logger.Info("order change",
		zap.String("id", event.ID),
		zap.String("collection", ev.Collection),
		zap.String("documentId", ev.DocumentID),
		zap.String("kind", kind),
		zap.Bool("existedBefore", ev.ExistedBefore),
		zap.Bool("existedAfter", ev.ExistedAfter),
		zap.Time("time", event.Time))
	return nil
}

func main() {
	cfg, err := config.New()
	if err != nil {
		log.Fatalf("unable to load config, %v", err)
	}
	logger := logging.Must(cfg.Log.Level)
	defer logger.Sync() //nolint:errcheck

	h := &auditHandler{logger: logger}
	lambda.Start(h.handle)
}
