package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoAPI is the subset of the DynamoDB client used by the store. Tests
// substitute an in-memory implementation with the same conditional-write and
// transaction semantics.
type DynamoAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	TransactWriteItems(ctx context.Context, params *dynamodb.TransactWriteItemsInput, optFns ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error)
	DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
}

// Store wraps the shared document table. The client and table name are
// process-wide read-only configuration, injected once at construction.
type Store struct {
	client DynamoAPI
	table  string
}

// New creates a store over the given client and table.
func New(client DynamoAPI, table string) *Store {
	return &Store{client: client, table: table}
}

// Client exposes the underlying client for operations that need raw
// update or projection expressions.
func (s *Store) Client() DynamoAPI {
	return s.client
}

// Table returns the table name.
func (s *Store) Table() string {
	return s.table
}

// Get loads the record at key into out. Returns false if the record does
// not exist.
func (s *Store) Get(ctx context.Context, key Key, out interface{}) (bool, error) {
	keyAttrs, err := attributevalue.MarshalMap(key)
	if err != nil {
		return false, fmt.Errorf("marshal key: %w", err)
	}

	resp, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.table),
		Key:       keyAttrs,
	})
	if err != nil {
		return false, fmt.Errorf("get item: %w", err)
	}
	if resp.Item == nil {
		return false, nil
	}

	if err := attributevalue.UnmarshalMap(resp.Item, out); err != nil {
		return false, fmt.Errorf("unmarshal item: %w", err)
	}
	return true, nil
}

// GetRaw loads the record at key as a raw attribute map, or nil if absent.
func (s *Store) GetRaw(ctx context.Context, key Key) (map[string]types.AttributeValue, error) {
	keyAttrs, err := attributevalue.MarshalMap(key)
	if err != nil {
		return nil, fmt.Errorf("marshal key: %w", err)
	}

	resp, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.table),
		Key:       keyAttrs,
	})
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	return resp.Item, nil
}

// Put writes a record unconditionally (last-write-wins).
func (s *Store) Put(ctx context.Context, item interface{}) error {
	attrs, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("marshal item: %w", err)
	}
	return s.PutRaw(ctx, attrs)
}

// PutRaw writes a pre-marshaled record unconditionally.
func (s *Store) PutRaw(ctx context.Context, attrs map[string]types.AttributeValue) error {
	_, err := s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      attrs,
	})
	if err != nil {
		return fmt.Errorf("put item: %w", err)
	}
	return nil
}

// PutIfAbsent writes a record conditioned on the named key attribute not
// already existing. This is the uniqueness-enforcement primitive.
func (s *Store) PutIfAbsent(ctx context.Context, item interface{}, keyAttr string) error {
	attrs, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("marshal item: %w", err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.table),
		Item:                attrs,
		ConditionExpression: aws.String(fmt.Sprintf("attribute_not_exists(%s)", keyAttr)),
	})
	if err != nil {
		return fmt.Errorf("conditional put: %w", err)
	}
	return nil
}

// Delete removes the record at key. Deleting an absent record succeeds.
func (s *Store) Delete(ctx context.Context, key Key) error {
	keyAttrs, err := attributevalue.MarshalMap(key)
	if err != nil {
		return fmt.Errorf("marshal key: %w", err)
	}

	_, err = s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.table),
		Key:       keyAttrs,
	})
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

// QueryPrefix returns all records in partition pk whose sort key starts with
// skPrefix, in the table's native order, as raw attribute maps.
func (s *Store) QueryPrefix(ctx context.Context, pk, skPrefix string) ([]map[string]types.AttributeValue, error) {
	resp, err := s.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.table),
		KeyConditionExpression: aws.String("PK = :pk AND begins_with(SK, :sk)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: pk},
			":sk": &types.AttributeValueMemberS{Value: skPrefix},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("query prefix: %w", err)
	}
	return resp.Items, nil
}

// TransactPut is one conditional put inside an all-or-nothing transaction.
// When ConditionAttr is set the put requires attribute_not_exists(attr).
type TransactPut struct {
	Item          interface{}
	ConditionAttr string
}

// TransactPuts executes up to 25 puts as a single atomic unit. Either every
// put lands or none do; a failed condition cancels the whole transaction.
func (s *Store) TransactPuts(ctx context.Context, puts []TransactPut) error {
	items := make([]types.TransactWriteItem, 0, len(puts))
	for _, p := range puts {
		attrs, err := attributevalue.MarshalMap(p.Item)
		if err != nil {
			return fmt.Errorf("marshal transact item: %w", err)
		}
		put := &types.Put{
			TableName: aws.String(s.table),
			Item:      attrs,
		}
		if p.ConditionAttr != "" {
			put.ConditionExpression = aws.String(fmt.Sprintf("attribute_not_exists(%s)", p.ConditionAttr))
		}
		items = append(items, types.TransactWriteItem{Put: put})
	}

	_, err := s.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: items,
	})
	if err != nil {
		return fmt.Errorf("transact write: %w", err)
	}
	return nil
}

// Ping verifies the table is reachable.
func (s *Store) Ping(ctx context.Context) error {
	_, err := s.client.DescribeTable(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(s.table),
	})
	return err
}

// IsConditionalCheckFailed reports whether err is a failed conditional write.
func IsConditionalCheckFailed(err error) bool {
	var ccf *types.ConditionalCheckFailedException
	return errors.As(err, &ccf)
}

// IsTransactionCanceled reports whether err is a canceled transaction. The
// store reports only the cancellation, not which item's condition failed.
func IsTransactionCanceled(err error) bool {
	var tc *types.TransactionCanceledException
	return errors.As(err, &tc)
}
