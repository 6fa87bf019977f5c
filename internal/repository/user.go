package repository

import (
	"context"
	"fmt"
	"time"

	apperrors "pulse-crm-backend/internal/errors"
	"pulse-crm-backend/internal/store"
	"pulse-crm-backend/internal/store/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

// UserRepository handles store operations for users and their global email
// locks.
type UserRepository struct {
	store *store.Store
}

// NewUserRepository creates a new user repository
func NewUserRepository(s *store.Store) *UserRepository {
	return &UserRepository{store: s}
}

// RegisterInput describes one identity registration. When Org is non-nil the
// organization record is created in the same transaction (signup create
// path); otherwise the org is presumed to exist already (join path, verified
// by a prior existence check).
type RegisterInput struct {
	OrgID        string
	Email        string
	Name         string
	PasswordHash string
	Role         string
	Org          *models.Organization
}

// Register conditionally creates the user record and the global email lock
// in one all-or-nothing transaction, plus the organization record on the
// create path. Either every write lands or none do: a lost race can never
// leave a dangling lock without a user or vice versa.
//
// Any conditional failure surfaces as ErrEmailAlreadyRegistered; the store
// reports only the cancellation, never which item conflicted.
func (r *UserRepository) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	email := store.NormalizeEmail(in.Email)
	now := time.Now().UTC().Format(time.RFC3339)

	userKey := store.UserKey(in.OrgID, email)
	user := &models.User{
		PK:        userKey.PK,
		SK:        userKey.SK,
		Type:      models.TypeUser,
		UserID:    uuid.NewString(),
		Name:      in.Name,
		Email:     email,
		Password:  in.PasswordHash,
		Role:      in.Role,
		CreatedAt: now,
	}

	lockKey := store.EmailLockKey(email)
	lock := &models.EmailLock{
		PK:        lockKey.PK,
		SK:        lockKey.SK,
		OrgID:     in.OrgID,
		CreatedAt: now,
	}

	puts := make([]store.TransactPut, 0, 3)
	if in.Org != nil {
		puts = append(puts, store.TransactPut{Item: in.Org, ConditionAttr: "PK"})
	}
	puts = append(puts,
		store.TransactPut{Item: user, ConditionAttr: "SK"},
		store.TransactPut{Item: lock, ConditionAttr: "PK"},
	)

	if err := r.store.TransactPuts(ctx, puts); err != nil {
		if store.IsTransactionCanceled(err) {
			return nil, apperrors.ErrEmailAlreadyRegistered
		}
		return nil, fmt.Errorf("register user: %w", err)
	}
	return user, nil
}

// GetByEmail retrieves a user by normalized email within an organization
func (r *UserRepository) GetByEmail(ctx context.Context, orgID, email string) (*models.User, error) {
	var user models.User
	found, err := r.store.Get(ctx, store.UserKey(orgID, email), &user)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if !found {
		return nil, apperrors.ErrUserNotFound
	}
	return &user, nil
}

// List returns all users of an organization in the table's native order.
// The password hash is excluded at the projection level so it never leaves
// the store.
func (r *UserRepository) List(ctx context.Context, orgID string) ([]models.User, error) {
	resp, err := r.store.Client().Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.store.Table()),
		KeyConditionExpression: aws.String("PK = :pk AND begins_with(SK, :sk)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: store.OrgPartition(orgID)},
			":sk": &types.AttributeValueMemberS{Value: store.PrefixUser},
		},
		ProjectionExpression: aws.String("userId, #name, email, #role, createdAt"),
		ExpressionAttributeNames: map[string]string{
			"#name": "name",
			"#role": "role",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	users := make([]models.User, 0, len(resp.Items))
	for _, item := range resp.Items {
		var user models.User
		if err := attributevalue.UnmarshalMap(item, &user); err != nil {
			return nil, fmt.Errorf("unmarshal user: %w", err)
		}
		users = append(users, user)
	}
	return users, nil
}

// Delete removes the user record only. The global email lock is retained
// unless released explicitly via ReleaseEmailLock.
func (r *UserRepository) Delete(ctx context.Context, orgID, email string) error {
	if err := r.store.Delete(ctx, store.UserKey(orgID, email)); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

// ReleaseEmailLock removes the global email lock, allowing the address to
// sign up again.
func (r *UserRepository) ReleaseEmailLock(ctx context.Context, email string) error {
	if err := r.store.Delete(ctx, store.EmailLockKey(email)); err != nil {
		return fmt.Errorf("release email lock: %w", err)
	}
	return nil
}
