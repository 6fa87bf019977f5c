package repository

import (
	"context"
	"fmt"

	"pulse-crm-backend/internal/store"
	"pulse-crm-backend/internal/store/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// LeadRepository handles store operations for leads
type LeadRepository struct {
	store *store.Store
}

// NewLeadRepository creates a new lead repository
func NewLeadRepository(s *store.Store) *LeadRepository {
	return &LeadRepository{store: s}
}

// MarshalLead flattens a lead, including its custom attributes, into a raw
// item map.
func MarshalLead(lead *models.Lead) (map[string]types.AttributeValue, error) {
	item, err := attributevalue.MarshalMap(lead)
	if err != nil {
		return nil, fmt.Errorf("marshal lead: %w", err)
	}
	for k, v := range lead.Custom {
		if models.IsCoreLeadAttr(k) {
			continue
		}
		av, err := attributevalue.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("marshal custom attribute %q: %w", k, err)
		}
		item[k] = av
	}
	return item, nil
}

func unmarshalLead(item map[string]types.AttributeValue) (models.Lead, error) {
	var lead models.Lead
	if err := attributevalue.UnmarshalMap(item, &lead); err != nil {
		return lead, fmt.Errorf("unmarshal lead: %w", err)
	}
	for k, av := range item {
		if models.IsCoreLeadAttr(k) {
			continue
		}
		var v interface{}
		if err := attributevalue.Unmarshal(av, &v); err != nil {
			return lead, fmt.Errorf("unmarshal custom attribute %q: %w", k, err)
		}
		if lead.Custom == nil {
			lead.Custom = make(map[string]interface{})
		}
		lead.Custom[k] = v
	}
	if lead.Notes == nil {
		lead.Notes = []models.Note{}
	}
	return lead, nil
}

// Create writes a lead unconditionally. Leads need no uniqueness guarantee,
// so last-write-wins is acceptable here.
func (r *LeadRepository) Create(ctx context.Context, lead *models.Lead) error {
	item, err := MarshalLead(lead)
	if err != nil {
		return err
	}
	if err := r.store.PutRaw(ctx, item); err != nil {
		return fmt.Errorf("create lead: %w", err)
	}
	return nil
}

// List returns all leads of an organization in the table's native order.
func (r *LeadRepository) List(ctx context.Context, orgID string) ([]models.Lead, error) {
	items, err := r.store.QueryPrefix(ctx, store.OrgPartition(orgID), store.PrefixLead)
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}

	leads := make([]models.Lead, 0, len(items))
	for _, item := range items {
		lead, err := unmarshalLead(item)
		if err != nil {
			return nil, err
		}
		leads = append(leads, lead)
	}
	return leads, nil
}

// AddNote appends a note to a lead's notes list with a true atomic
// append-or-initialize at the store layer. Concurrent appends never lose an
// entry because this is not a read-modify-write from the caller.
func (r *LeadRepository) AddNote(ctx context.Context, orgID, leadID string, note models.Note) error {
	key, err := attributevalue.MarshalMap(store.LeadKey(orgID, leadID))
	if err != nil {
		return fmt.Errorf("marshal key: %w", err)
	}
	noteList, err := attributevalue.MarshalList([]models.Note{note})
	if err != nil {
		return fmt.Errorf("marshal note: %w", err)
	}

	_, err = r.store.Client().UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:        aws.String(r.store.Table()),
		Key:              key,
		UpdateExpression: aws.String("SET #notes = list_append(if_not_exists(#notes, :empty), :note)"),
		ExpressionAttributeNames: map[string]string{
			"#notes": "notes",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":note":  &types.AttributeValueMemberL{Value: noteList},
			":empty": &types.AttributeValueMemberL{Value: []types.AttributeValue{}},
		},
	})
	if err != nil {
		return fmt.Errorf("add note: %w", err)
	}
	return nil
}

// UpdateStatus updates only the status attribute of a lead.
func (r *LeadRepository) UpdateStatus(ctx context.Context, orgID, leadID, status string) error {
	key, err := attributevalue.MarshalMap(store.LeadKey(orgID, leadID))
	if err != nil {
		return fmt.Errorf("marshal key: %w", err)
	}

	_, err = r.store.Client().UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:        aws.String(r.store.Table()),
		Key:              key,
		UpdateExpression: aws.String("SET #status = :status"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":status": &types.AttributeValueMemberS{Value: status},
		},
	})
	if err != nil {
		return fmt.Errorf("update lead status: %w", err)
	}
	return nil
}

// Delete removes a lead. Deleting an absent lead succeeds, making retries
// safe for callers.
func (r *LeadRepository) Delete(ctx context.Context, orgID, leadID string) error {
	if err := r.store.Delete(ctx, store.LeadKey(orgID, leadID)); err != nil {
		return fmt.Errorf("delete lead: %w", err)
	}
	return nil
}
