package changes

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/eventbridge"
	"github.com/aws/aws-sdk-go/service/eventbridge/eventbridgeiface"

	"order-notifier/internal/config"
	"order-notifier/internal/notify"
)

// Publisher puts change events on the custom event bus that the email and
// logging functions subscribe to.
type Publisher struct {
	client     eventbridgeiface.EventBridgeAPI
	busName    string
	source     string
	detailType string
}

func NewPublisher(client eventbridgeiface.EventBridgeAPI, cfg config.EventBus) *Publisher {
	return &Publisher{
		client:     client,
		busName:    cfg.Name,
		source:     cfg.Source,
		detailType: cfg.DetailType,
	}
}

// NewPublisherFromSession uses the default credential chain of the Lambda
// execution role.
func NewPublisherFromSession(cfg config.EventBus) *Publisher {
	sess := session.Must(session.NewSession())
	return NewPublisher(eventbridge.New(sess), cfg)
}

func (p *Publisher) Publish(ctx context.Context, ev notify.ChangeEvent) error {
	detail, err := MarshalDetail(ev)
	if err != nil {
		return err
	}

	entry := &eventbridge.PutEventsRequestEntry{
		Source:       aws.String(p.source),
		DetailType:   aws.String(p.detailType),
		Detail:       aws.String(detail),
		EventBusName: aws.String(p.busName),
	}

	out, err := p.client.PutEventsWithContext(ctx, &eventbridge.PutEventsInput{
		Entries: []*eventbridge.PutEventsRequestEntry{entry},
	})
	if err != nil {
		return fmt.Errorf("error sending event to EventBridge: %w", err)
	}
	if aws.Int64Value(out.FailedEntryCount) > 0 {
		code, msg := "", ""
		if len(out.Entries) > 0 && out.Entries[0] != nil {
			code = aws.StringValue(out.Entries[0].ErrorCode)
			msg = aws.StringValue(out.Entries[0].ErrorMessage)
		}
		return fmt.Errorf("EventBridge rejected event for %s: %s %s", ev.DocumentID, code, msg)
	}
	return nil
}
