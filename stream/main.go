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
	"order-notifier/internal/notify"
)

type publisher interface {
	Publish(ctx context.Context, ev notify.ChangeEvent) error
}

type streamHandler struct {
	publisher publisher
	keyName   string
	logger    *zap.Logger
}

// handle forwards every write on the orders table to the event bus. The
// stream mapping has ReportBatchItemFailures enabled: on a publish failure the
// failing record is reported and the rest of the batch is left unprocessed, so
// the stream resumes from that record and never republishes earlier ones.
func (h *streamHandler) handle(ctx context.Context, dynamodbEvent events.DynamoDBEvent) (events.DynamoDBEventResponse, error) {
	h.logger.Debug("lambda handler invoked", zap.Int("records", len(dynamodbEvent.Records)))

	for _, record := range dynamodbEvent.Records {
		ev, err := changes.FromDynamoDBRecord(record, h.keyName)
		if err != nil {
			h.logger.Warn("skipping stream record",
				zap.String("eventId", record.EventID),
				zap.String("eventName", record.EventName),
				zap.Error(err))
			continue
		}

		if err := h.publisher.Publish(ctx, ev); err != nil {
			h.logger.Error("failed to put event",
				zap.String("eventId", record.EventID),
				zap.String("sequenceNumber", record.Change.SequenceNumber),
				zap.String("documentId", ev.DocumentID),
				zap.Error(err))
			return events.DynamoDBEventResponse{
				BatchItemFailures: []events.DynamoDBBatchItemFailure{
					{ItemIdentifier: record.Change.SequenceNumber},
				},
			}, nil
		}
		h.logger.Debug("change event published",
			zap.String("eventId", ev.EventID),
			zap.String("documentId", ev.DocumentID),
			zap.Bool("new", ev.IsNew()))
	}

	h.logger.Info("processing complete", zap.Int("records", len(dynamodbEvent.Records)))
	return events.DynamoDBEventResponse{}, nil
}

func main() {
	cfg, err := config.New()
	if err != nil {
		log.Fatalf("unable to load config, %v", err)
	}
	logger := logging.Must(cfg.Log.Level)
	defer logger.Sync() //nolint:errcheck

	h := &streamHandler{
		publisher: changes.NewPublisherFromSession(cfg.EventBus),
		keyName:   cfg.Orders.KeyName,
		logger:    logger,
	}

	logger.Info("starting stream function", zap.String("bus", cfg.EventBus.Name))
	lambda.Start(h.handle)
}
