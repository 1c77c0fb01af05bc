// Package changes adapts platform payloads to notify.ChangeEvent and moves
// change events across the EventBridge bus.
package changes

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-lambda-go/events"

	"order-notifier/internal/notify"
)

var ErrInvalidEvent = errors.New("invalid change event")

// DynamoDB stream event names.
const (
	EventInsert = "INSERT"
	EventModify = "MODIFY"
	EventRemove = "REMOVE"
)

// FromDynamoDBRecord converts one stream record into a ChangeEvent. keyName
// is the attribute holding the document identifier.
func FromDynamoDBRecord(record events.DynamoDBEventRecord, keyName string) (notify.ChangeEvent, error) {
	ev := notify.ChangeEvent{
		EventID:    record.EventID,
		Collection: tableFromStreamARN(record.EventSourceArn),
	}

	switch record.EventName {
	case EventInsert:
		ev.ExistedAfter = true
	case EventModify:
		ev.ExistedBefore, ev.ExistedAfter = true, true
	case EventRemove:
		ev.ExistedBefore = true
	default:
		return notify.ChangeEvent{}, fmt.Errorf("%w: unknown event name %q", ErrInvalidEvent, record.EventName)
	}

	id, err := keyValue(record.Change.Keys, keyName)
	if err != nil {
		return notify.ChangeEvent{}, err
	}
	ev.DocumentID = id
	return ev, nil
}

func keyValue(keys map[string]events.DynamoDBAttributeValue, name string) (string, error) {
	attr, ok := keys[name]
	if !ok {
		return "", fmt.Errorf("%w: missing key attribute %q", ErrInvalidEvent, name)
	}

	var v string
	switch attr.DataType() {
	case events.DataTypeString:
		v = attr.String()
	case events.DataTypeNumber:
		v = attr.Number()
	default:
		return "", fmt.Errorf("%w: key attribute %q has unsupported type", ErrInvalidEvent, name)
	}
	if v == "" {
		return "", fmt.Errorf("%w: empty key attribute %q", ErrInvalidEvent, name)
	}
	return v, nil
}

// tableFromStreamARN extracts "orders" from
// arn:aws:dynamodb:eu-west-3:123456789012:table/orders/stream/2024-01-01T00:00:00.000.
func tableFromStreamARN(arn string) string {
	_, rest, ok := strings.Cut(arn, ":table/")
	if !ok {
		return ""
	}
	table, _, _ := strings.Cut(rest, "/")
	return table
}
