package repository

import (
	"context"
	"errors"
	"testing"

	apperrors "pulse-crm-backend/internal/errors"
	"pulse-crm-backend/internal/store"
	"pulse-crm-backend/internal/store/models"
	"pulse-crm-backend/internal/testutils"

	"github.com/stretchr/testify/suite"
)

// UserRepositoryTestSuite tests the UserRepository
type UserRepositoryTestSuite struct {
	suite.Suite
	fake *testutils.FakeDynamo
	repo *UserRepository
	ctx  context.Context
}

// SetupTest runs before each test
func (suite *UserRepositoryTestSuite) SetupTest() {
	suite.fake = testutils.NewFakeDynamo()
	suite.repo = NewUserRepository(store.New(suite.fake, "test-table"))
	suite.ctx = context.Background()
}

func (suite *UserRepositoryTestSuite) registerInput() RegisterInput {
	return RegisterInput{
		OrgID:        "org-1",
		Email:        "Alice@Example.com",
		Name:         "Alice",
		PasswordHash: "$2a$10$hash",
		Role:         models.RoleMember,
	}
}

// TestRegister tests registering a user and its email lock
func (suite *UserRepositoryTestSuite) TestRegister() {
	user, err := suite.repo.Register(suite.ctx, suite.registerInput())
	suite.NoError(err)
	suite.NotNil(user)

	suite.Equal("alice@example.com", user.Email, "email should be normalized")
	suite.NotEmpty(user.UserID)
	suite.Equal(models.RoleMember, user.Role)

	// Both the user record and the global lock must exist.
	suite.NotNil(suite.fake.Item("ORG#org-1", "USER#alice@example.com"))
	suite.NotNil(suite.fake.Item("EMAIL#alice@example.com", "METADATA"))
}

// TestRegisterWithOrg tests the signup create path writing the org in the
// same transaction
func (suite *UserRepositoryTestSuite) TestRegisterWithOrg() {
	org := NewOrganizationRecord("Acme Corp")
	in := suite.registerInput()
	in.OrgID = org.ID
	in.Org = org
	in.Role = models.RoleAdmin

	user, err := suite.repo.Register(suite.ctx, in)
	suite.NoError(err)
	suite.Equal(models.RoleAdmin, user.Role)

	suite.NotNil(suite.fake.Item("ORG#"+org.ID, "METADATA"))
	suite.NotNil(suite.fake.Item("ORG#"+org.ID, "USER#alice@example.com"))
	suite.NotNil(suite.fake.Item("EMAIL#alice@example.com", "METADATA"))
	suite.Equal(3, suite.fake.CountItems())
}

// TestRegisterDuplicateEmail tests that a taken email is rejected
func (suite *UserRepositoryTestSuite) TestRegisterDuplicateEmail() {
	_, err := suite.repo.Register(suite.ctx, suite.registerInput())
	suite.Require().NoError(err)

	_, err = suite.repo.Register(suite.ctx, suite.registerInput())
	suite.Error(err)
	suite.ErrorIs(err, apperrors.ErrEmailAlreadyRegistered)
}

// TestRegisterDuplicateAcrossOrgs tests that the email lock is global: the
// same address cannot register in a different org either
func (suite *UserRepositoryTestSuite) TestRegisterDuplicateAcrossOrgs() {
	_, err := suite.repo.Register(suite.ctx, suite.registerInput())
	suite.Require().NoError(err)

	in := suite.registerInput()
	in.OrgID = "org-2"
	_, err = suite.repo.Register(suite.ctx, in)
	suite.ErrorIs(err, apperrors.ErrEmailAlreadyRegistered)

	suite.Nil(suite.fake.Item("ORG#org-2", "USER#alice@example.com"),
		"conflicting registration must not leave a user record")
}

// TestRegisterCosmeticEmailVariantCollides tests duplicate detection across
// case and whitespace variants of the same address
func (suite *UserRepositoryTestSuite) TestRegisterCosmeticEmailVariantCollides() {
	_, err := suite.repo.Register(suite.ctx, suite.registerInput())
	suite.Require().NoError(err)

	in := suite.registerInput()
	in.Email = "  ALICE@example.COM"
	_, err = suite.repo.Register(suite.ctx, in)
	suite.ErrorIs(err, apperrors.ErrEmailAlreadyRegistered)
}

// TestRegisterAtomicity tests that a failed transaction leaves zero records
func (suite *UserRepositoryTestSuite) TestRegisterAtomicity() {
	suite.fake.TransactErr = errors.New("store unavailable")

	_, err := suite.repo.Register(suite.ctx, suite.registerInput())
	suite.Error(err)
	suite.Equal(0, suite.fake.CountItems(), "no partial records after a failed transaction")
}

// TestGetByEmail tests retrieving a user by normalized email
func (suite *UserRepositoryTestSuite) TestGetByEmail() {
	created, err := suite.repo.Register(suite.ctx, suite.registerInput())
	suite.Require().NoError(err)

	found, err := suite.repo.GetByEmail(suite.ctx, "org-1", " ALICE@EXAMPLE.COM ")
	suite.NoError(err)
	suite.Equal(created.UserID, found.UserID)
	suite.Equal("$2a$10$hash", found.Password)
}

// TestGetByEmailNotFound tests the miss path
func (suite *UserRepositoryTestSuite) TestGetByEmailNotFound() {
	_, err := suite.repo.GetByEmail(suite.ctx, "org-1", "nobody@example.com")
	suite.ErrorIs(err, apperrors.ErrUserNotFound)
}

// TestGetByEmailScopedToOrg tests that lookup never crosses tenants
func (suite *UserRepositoryTestSuite) TestGetByEmailScopedToOrg() {
	_, err := suite.repo.Register(suite.ctx, suite.registerInput())
	suite.Require().NoError(err)

	_, err = suite.repo.GetByEmail(suite.ctx, "org-2", "alice@example.com")
	suite.ErrorIs(err, apperrors.ErrUserNotFound)
}

// TestList tests listing users without exposing password hashes
func (suite *UserRepositoryTestSuite) TestList() {
	_, err := suite.repo.Register(suite.ctx, suite.registerInput())
	suite.Require().NoError(err)
	in := suite.registerInput()
	in.Email = "bob@example.com"
	in.Name = "Bob"
	_, err = suite.repo.Register(suite.ctx, in)
	suite.Require().NoError(err)

	users, err := suite.repo.List(suite.ctx, "org-1")
	suite.NoError(err)
	suite.Len(users, 2)

	for _, user := range users {
		suite.Empty(user.Password, "password hash must not be projected")
		suite.NotEmpty(user.UserID)
		suite.NotEmpty(user.Email)
	}
}

// TestListEmptyOrg tests listing an org with no users
func (suite *UserRepositoryTestSuite) TestListEmptyOrg() {
	users, err := suite.repo.List(suite.ctx, "org-1")
	suite.NoError(err)
	suite.Empty(users)
}

// TestDelete tests that deletion removes the user but retains the lock
func (suite *UserRepositoryTestSuite) TestDelete() {
	_, err := suite.repo.Register(suite.ctx, suite.registerInput())
	suite.Require().NoError(err)

	suite.NoError(suite.repo.Delete(suite.ctx, "org-1", "alice@example.com"))

	suite.Nil(suite.fake.Item("ORG#org-1", "USER#alice@example.com"))
	suite.NotNil(suite.fake.Item("EMAIL#alice@example.com", "METADATA"),
		"email lock is retained on delete")

	// A re-signup with the same address is still blocked.
	_, err = suite.repo.Register(suite.ctx, suite.registerInput())
	suite.ErrorIs(err, apperrors.ErrEmailAlreadyRegistered)
}

// TestDeleteIsIdempotent tests deleting an absent user
func (suite *UserRepositoryTestSuite) TestDeleteIsIdempotent() {
	suite.NoError(suite.repo.Delete(suite.ctx, "org-1", "ghost@example.com"))
}

// TestReleaseEmailLock tests explicit lock release frees the address
func (suite *UserRepositoryTestSuite) TestReleaseEmailLock() {
	_, err := suite.repo.Register(suite.ctx, suite.registerInput())
	suite.Require().NoError(err)

	suite.NoError(suite.repo.Delete(suite.ctx, "org-1", "alice@example.com"))
	suite.NoError(suite.repo.ReleaseEmailLock(suite.ctx, "alice@example.com"))

	_, err = suite.repo.Register(suite.ctx, suite.registerInput())
	suite.NoError(err, "released address can register again")
}

func TestUserRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(UserRepositoryTestSuite))
}
