package testutils

import (
	"context"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// FakeDynamo is an in-memory stand-in for the DynamoDB client. It honors
// the semantics the repositories depend on: create-if-absent conditional
// puts, all-or-nothing transactions, atomic list appends, and prefix
// queries in insertion order. Safe for concurrent use.
type FakeDynamo struct {
	mu    sync.Mutex
	items map[string]map[string]map[string]types.AttributeValue
	order map[string][]string

	// TransactErr, when set, cancels every transaction after condition
	// validation without applying any write. Used to verify that a failed
	// transaction leaves zero partial records.
	TransactErr error
}

// NewFakeDynamo creates an empty fake store.
func NewFakeDynamo() *FakeDynamo {
	return &FakeDynamo{
		items: make(map[string]map[string]map[string]types.AttributeValue),
		order: make(map[string][]string),
	}
}

func stringAttr(av types.AttributeValue) string {
	if s, ok := av.(*types.AttributeValueMemberS); ok {
		return s.Value
	}
	return ""
}

func itemKey(item map[string]types.AttributeValue) (string, string) {
	return stringAttr(item["PK"]), stringAttr(item["SK"])
}

func copyItem(item map[string]types.AttributeValue) map[string]types.AttributeValue {
	out := make(map[string]types.AttributeValue, len(item))
	for k, v := range item {
		out[k] = v
	}
	return out
}

func (f *FakeDynamo) get(pk, sk string) map[string]types.AttributeValue {
	if part, ok := f.items[pk]; ok {
		if item, ok := part[sk]; ok {
			return item
		}
	}
	return nil
}

func (f *FakeDynamo) put(item map[string]types.AttributeValue) {
	pk, sk := itemKey(item)
	if _, ok := f.items[pk]; !ok {
		f.items[pk] = make(map[string]map[string]types.AttributeValue)
	}
	if _, exists := f.items[pk][sk]; !exists {
		f.order[pk] = append(f.order[pk], sk)
	}
	f.items[pk][sk] = copyItem(item)
}

// conditionHolds evaluates the only condition the store uses:
// attribute_not_exists on a key attribute, meaning the record must not
// already exist.
func (f *FakeDynamo) conditionHolds(cond *string, item map[string]types.AttributeValue) bool {
	if cond == nil {
		return true
	}
	if !strings.HasPrefix(*cond, "attribute_not_exists(") {
		return true
	}
	pk, sk := itemKey(item)
	return f.get(pk, sk) == nil
}

// GetItem implements DynamoAPI
func (f *FakeDynamo) GetItem(_ context.Context, params *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	pk, sk := itemKey(params.Key)
	item := f.get(pk, sk)
	if item == nil {
		return &dynamodb.GetItemOutput{}, nil
	}
	return &dynamodb.GetItemOutput{Item: copyItem(item)}, nil
}

// PutItem implements DynamoAPI
func (f *FakeDynamo) PutItem(_ context.Context, params *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.conditionHolds(params.ConditionExpression, params.Item) {
		return nil, &types.ConditionalCheckFailedException{Message: aws.String("The conditional request failed")}
	}
	f.put(params.Item)
	return &dynamodb.PutItemOutput{}, nil
}

// Query implements DynamoAPI. It supports the prefix pattern
// "PK = :pk AND begins_with(SK, :sk)" with an optional projection.
func (f *FakeDynamo) Query(_ context.Context, params *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	pk := stringAttr(params.ExpressionAttributeValues[":pk"])
	prefix := stringAttr(params.ExpressionAttributeValues[":sk"])

	var out []map[string]types.AttributeValue
	for _, sk := range f.order[pk] {
		if !strings.HasPrefix(sk, prefix) {
			continue
		}
		item := f.items[pk][sk]
		if item == nil {
			continue
		}
		out = append(out, projectItem(item, params.ProjectionExpression, params.ExpressionAttributeNames))
	}
	return &dynamodb.QueryOutput{Items: out, Count: int32(len(out))}, nil
}

func projectItem(item map[string]types.AttributeValue, projection *string, names map[string]string) map[string]types.AttributeValue {
	if projection == nil {
		return copyItem(item)
	}

	out := make(map[string]types.AttributeValue)
	for _, raw := range strings.Split(*projection, ",") {
		attr := strings.TrimSpace(raw)
		if mapped, ok := names[attr]; ok {
			attr = mapped
		}
		if v, ok := item[attr]; ok {
			out[attr] = v
		}
	}
	return out
}

// UpdateItem implements DynamoAPI. It supports the two update expressions
// the repositories use: a single-attribute SET and the atomic
// append-or-initialize list_append.
func (f *FakeDynamo) UpdateItem(_ context.Context, params *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	pk, sk := itemKey(params.Key)
	item := f.get(pk, sk)
	if item == nil {
		// UpdateItem upserts: a missing record is created from the key.
		item = copyItem(params.Key)
	} else {
		item = copyItem(item)
	}

	expr := aws.ToString(params.UpdateExpression)
	switch {
	case strings.Contains(expr, "list_append"):
		attr := resolveAttr(expr, params.ExpressionAttributeNames)
		appended := params.ExpressionAttributeValues[":note"]
		addition, ok := appended.(*types.AttributeValueMemberL)
		if !ok {
			return nil, &types.InternalServerError{Message: aws.String("expected list operand")}
		}

		var current []types.AttributeValue
		if existing, ok := item[attr].(*types.AttributeValueMemberL); ok {
			current = existing.Value
		}
		merged := make([]types.AttributeValue, 0, len(current)+len(addition.Value))
		merged = append(merged, current...)
		merged = append(merged, addition.Value...)
		item[attr] = &types.AttributeValueMemberL{Value: merged}

	default:
		attr := resolveAttr(expr, params.ExpressionAttributeNames)
		for _, v := range params.ExpressionAttributeValues {
			item[attr] = v
		}
	}

	f.put(item)
	return &dynamodb.UpdateItemOutput{}, nil
}

// resolveAttr extracts the target attribute of a "SET #x = ..." expression.
func resolveAttr(expr string, names map[string]string) string {
	rest := strings.TrimPrefix(expr, "SET ")
	placeholder := strings.TrimSpace(strings.SplitN(rest, "=", 2)[0])
	if mapped, ok := names[placeholder]; ok {
		return mapped
	}
	return strings.TrimPrefix(placeholder, "#")
}

// DeleteItem implements DynamoAPI. Deleting an absent record succeeds.
func (f *FakeDynamo) DeleteItem(_ context.Context, params *dynamodb.DeleteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	pk, sk := itemKey(params.Key)
	if part, ok := f.items[pk]; ok {
		if _, existed := part[sk]; existed {
			delete(part, sk)
			kept := f.order[pk][:0]
			for _, s := range f.order[pk] {
				if s != sk {
					kept = append(kept, s)
				}
			}
			f.order[pk] = kept
		}
	}
	return &dynamodb.DeleteItemOutput{}, nil
}

// TransactWriteItems implements DynamoAPI. Conditions are validated first;
// any failure, or an injected TransactErr, cancels the whole transaction
// with no write applied.
func (f *FakeDynamo) TransactWriteItems(_ context.Context, params *dynamodb.TransactWriteItemsInput, _ ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	reasons := make([]types.CancellationReason, len(params.TransactItems))
	failed := false
	for i, ti := range params.TransactItems {
		if ti.Put == nil {
			continue
		}
		if !f.conditionHolds(ti.Put.ConditionExpression, ti.Put.Item) {
			reasons[i] = types.CancellationReason{Code: aws.String("ConditionalCheckFailed")}
			failed = true
		} else {
			reasons[i] = types.CancellationReason{Code: aws.String("None")}
		}
	}
	if failed {
		return nil, &types.TransactionCanceledException{
			Message:             aws.String("Transaction cancelled, please refer cancellation reasons for specific reasons"),
			CancellationReasons: reasons,
		}
	}
	if f.TransactErr != nil {
		return nil, f.TransactErr
	}

	for _, ti := range params.TransactItems {
		if ti.Put != nil {
			f.put(ti.Put.Item)
		}
	}
	return &dynamodb.TransactWriteItemsOutput{}, nil
}

// DescribeTable implements DynamoAPI
func (f *FakeDynamo) DescribeTable(_ context.Context, params *dynamodb.DescribeTableInput, _ ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error) {
	return &dynamodb.DescribeTableOutput{
		Table: &types.TableDescription{TableName: params.TableName},
	}, nil
}

// Item returns the raw record at (pk, sk) for direct store inspection, or
// nil when absent.
func (f *FakeDynamo) Item(pk, sk string) map[string]types.AttributeValue {
	f.mu.Lock()
	defer f.mu.Unlock()

	item := f.get(pk, sk)
	if item == nil {
		return nil
	}
	return copyItem(item)
}

// CountItems returns the total number of records across all partitions.
func (f *FakeDynamo) CountItems() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	n := 0
	for _, part := range f.items {
		n += len(part)
	}
	return n
}
