package orders

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

var ErrNotFound = errors.New("order not found")

const StatusPending = "pending"

// Order is the document stored in the orders table. Every write to it shows
// up on the table stream.
type Order struct {
	OrderID   string  `json:"orderId"`
	Customer  string  `json:"customer"`
	Status    string  `json:"status"`
	Total     float64 `json:"total"`
	CreatedAt string  `json:"createdAt"`
	UpdatedAt string  `json:"updatedAt"`
}

type dynamoAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// Store wraps the orders table.
type Store struct {
	svc       dynamoAPI
	tableName string
	keyName   string
	now       func() time.Time
	newID     func() string
}

func NewStore(svc dynamoAPI, tableName, keyName string) *Store {
	return &Store{
		svc:       svc,
		tableName: tableName,
		keyName:   keyName,
		now:       time.Now,
		newID:     func() string { return uuid.New().String() },
	}
}

func (s *Store) key(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{s.keyName: &types.AttributeValueMemberS{Value: id}}
}

// Create inserts a new order with a generated id and pending status unless
// one is given.
func (s *Store) Create(ctx context.Context, o Order) (Order, error) {
	ts := s.now().UTC().Format(time.RFC3339)
	o.OrderID = s.newID()
	o.CreatedAt, o.UpdatedAt = ts, ts
	if o.Status == "" {
		o.Status = StatusPending
	}

	_, err := s.svc.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.tableName),
		Item:                s.toItem(o),
		ConditionExpression: aws.String("attribute_not_exists(#k)"),
		ExpressionAttributeNames: map[string]string{
			"#k": s.keyName,
		},
	})
	if err != nil {
		return Order{}, fmt.Errorf("failed to insert order: %w", err)
	}
	return o, nil
}

func (s *Store) Get(ctx context.Context, id string) (Order, error) {
	result, err := s.svc.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.tableName),
		Key:       s.key(id),
	})
	if err != nil {
		return Order{}, fmt.Errorf("failed to get order %s: %w", id, err)
	}
	if result.Item == nil {
		return Order{}, ErrNotFound
	}
	return s.fromItem(result.Item), nil
}

// List scans the whole table, following pagination.
func (s *Store) List(ctx context.Context) ([]Order, error) {
	var (
		out   []Order
		start map[string]types.AttributeValue
	)
	for {
		result, err := s.svc.Scan(ctx, &dynamodb.ScanInput{
			TableName:         aws.String(s.tableName),
			ExclusiveStartKey: start,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to scan orders: %w", err)
		}
		for _, item := range result.Items {
			out = append(out, s.fromItem(item))
		}
		if len(result.LastEvaluatedKey) == 0 {
			return out, nil
		}
		start = result.LastEvaluatedKey
	}
}

// OrderUpdate carries the fields a PUT sent. Nil fields keep their stored
// value.
type OrderUpdate struct {
	Customer *string
	Status   *string
	Total    *float64
}

func (u OrderUpdate) Empty() bool {
	return u.Customer == nil && u.Status == nil && u.Total == nil
}

// Update sets only the fields present in u on an existing order.
func (s *Store) Update(ctx context.Context, id string, u OrderUpdate) (Order, error) {
	updatedAt := s.now().UTC().Format(time.RFC3339)

	sets := []string{"updatedAt = :updatedAt"}
	names := map[string]string{"#k": s.keyName}
	values := map[string]types.AttributeValue{
		":updatedAt": &types.AttributeValueMemberS{Value: updatedAt},
	}
	if u.Customer != nil {
		sets = append(sets, "customer = :customer")
		values[":customer"] = &types.AttributeValueMemberS{Value: *u.Customer}
	}
	if u.Status != nil {
		sets = append(sets, "#status = :status")
		names["#status"] = "status"
		values[":status"] = &types.AttributeValueMemberS{Value: *u.Status}
	}
	if u.Total != nil {
		sets = append(sets, "total = :total")
		values[":total"] = &types.AttributeValueMemberN{Value: formatTotal(*u.Total)}
	}

	result, err := s.svc.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(s.tableName),
		Key:                       s.key(id),
		UpdateExpression:          aws.String("SET " + strings.Join(sets, ", ")),
		ConditionExpression:       aws.String("attribute_exists(#k)"),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		if isConditionFailed(err) {
			return Order{}, ErrNotFound
		}
		return Order{}, fmt.Errorf("failed to update order %s: %w", id, err)
	}
	return s.fromItem(result.Attributes), nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	_, err := s.svc.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:           aws.String(s.tableName),
		Key:                 s.key(id),
		ConditionExpression: aws.String("attribute_exists(#k)"),
		ExpressionAttributeNames: map[string]string{
			"#k": s.keyName,
		},
	})
	if err != nil {
		if isConditionFailed(err) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete order %s: %w", id, err)
	}
	return nil
}

func isConditionFailed(err error) bool {
	var ccf *types.ConditionalCheckFailedException
	return errors.As(err, &ccf)
}

func (s *Store) toItem(o Order) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		s.keyName:   &types.AttributeValueMemberS{Value: o.OrderID}, // Partition Key
		"customer":  &types.AttributeValueMemberS{Value: o.Customer},
		"status":    &types.AttributeValueMemberS{Value: o.Status},
		"total":     &types.AttributeValueMemberN{Value: formatTotal(o.Total)},
		"createdAt": &types.AttributeValueMemberS{Value: o.CreatedAt},
		"updatedAt": &types.AttributeValueMemberS{Value: o.UpdatedAt},
	}
}

func (s *Store) fromItem(item map[string]types.AttributeValue) Order {
	o := Order{
		OrderID:   stringAttr(item, s.keyName),
		Customer:  stringAttr(item, "customer"),
		Status:    stringAttr(item, "status"),
		CreatedAt: stringAttr(item, "createdAt"),
		UpdatedAt: stringAttr(item, "updatedAt"),
	}
	if n, ok := item["total"].(*types.AttributeValueMemberN); ok {
		o.Total, _ = strconv.ParseFloat(n.Value, 64)
	}
	return o
}

func stringAttr(item map[string]types.AttributeValue, name string) string {
	if v, ok := item[name].(*types.AttributeValueMemberS); ok {
		return v.Value
	}
	return ""
}

func formatTotal(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
