package service

import (
	"context"
	"testing"

	"pulse-crm-backend/internal/repository"
	"pulse-crm-backend/internal/store"
	"pulse-crm-backend/internal/store/models"
	"pulse-crm-backend/internal/testutils"

	"github.com/stretchr/testify/suite"
)

// SettingsServiceTestSuite tests the SettingsService
type SettingsServiceTestSuite struct {
	suite.Suite
	service *SettingsService
	ctx     context.Context
}

// SetupTest runs before each test
func (suite *SettingsServiceTestSuite) SetupTest() {
	fake := testutils.NewFakeDynamo()
	suite.service = NewSettingsService(repository.NewSettingsRepository(store.New(fake, "test-table")))
	suite.ctx = context.Background()
}

// TestRoundTrip tests saving and reading the field schema
func (suite *SettingsServiceTestSuite) TestRoundTrip() {
	in := []models.Field{{Label: "Industry", Type: "text"}}
	suite.NoError(suite.service.Save(suite.ctx, "org-1", in))

	fields, err := suite.service.Get(suite.ctx, "org-1")
	suite.NoError(err)
	suite.Equal(in, fields)
}

// TestSaveNilNormalizesToEmpty tests that a nil schema is stored as empty
func (suite *SettingsServiceTestSuite) TestSaveNilNormalizesToEmpty() {
	suite.NoError(suite.service.Save(suite.ctx, "org-1", nil))

	fields, err := suite.service.Get(suite.ctx, "org-1")
	suite.NoError(err)
	suite.NotNil(fields)
	suite.Empty(fields)
}

func TestSettingsServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SettingsServiceTestSuite))
}
