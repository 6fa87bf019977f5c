package service

import (
	"context"
	"testing"

	apperrors "pulse-crm-backend/internal/errors"
	"pulse-crm-backend/internal/repository"
	"pulse-crm-backend/internal/store"
	"pulse-crm-backend/internal/testutils"

	"github.com/stretchr/testify/suite"
)

// LeadServiceTestSuite tests the LeadService against the in-memory store
type LeadServiceTestSuite struct {
	suite.Suite
	fake    *testutils.FakeDynamo
	service *LeadService
	ctx     context.Context
}

// SetupTest runs before each test
func (suite *LeadServiceTestSuite) SetupTest() {
	suite.fake = testutils.NewFakeDynamo()
	suite.service = NewLeadService(repository.NewLeadRepository(store.New(suite.fake, "test-table")))
	suite.ctx = context.Background()
}

// TestCreate tests creating a lead from its core fields
func (suite *LeadServiceTestSuite) TestCreate() {
	lead, err := suite.service.Create(suite.ctx, "org-1", map[string]interface{}{
		"name":   "Jane Prospect",
		"email":  "jane@prospect.com",
		"status": "New",
		"value":  float64(2500),
	})
	suite.NoError(err)
	suite.NotEmpty(lead.ID)
	suite.Equal("Jane Prospect", lead.Name)
	suite.Equal(float64(2500), lead.Value)
	suite.NotNil(lead.Notes)
	suite.Empty(lead.Notes)
	suite.NotEmpty(lead.CreatedAt)
}

// TestCreateWithCustomAttributes tests that scalar extension attributes are
// accepted and persisted
func (suite *LeadServiceTestSuite) TestCreateWithCustomAttributes() {
	lead, err := suite.service.Create(suite.ctx, "org-1", map[string]interface{}{
		"name":     "Jane Prospect",
		"industry": "fintech",
		"priority": float64(3),
		"hot":      true,
		"none":     nil,
	})
	suite.NoError(err)
	suite.Equal("fintech", lead.Custom["industry"])

	leads, err := suite.service.List(suite.ctx, "org-1")
	suite.NoError(err)
	suite.Require().Len(leads, 1)
	suite.Equal("fintech", leads[0].Custom["industry"])
	suite.Equal(true, leads[0].Custom["hot"])
}

// TestCreateRejectsNonScalarCustom tests that nested values are rejected
func (suite *LeadServiceTestSuite) TestCreateRejectsNonScalarCustom() {
	_, err := suite.service.Create(suite.ctx, "org-1", map[string]interface{}{
		"name":   "Jane Prospect",
		"nested": map[string]interface{}{"a": 1},
	})
	suite.Error(err)
	suite.ErrorIs(err, &apperrors.ValidationError{})
	suite.Equal(0, suite.fake.CountItems(), "rejected lead must not be written")

	_, err = suite.service.Create(suite.ctx, "org-1", map[string]interface{}{
		"tags": []interface{}{"a", "b"},
	})
	suite.Error(err)
}

// TestCreateIgnoresServerOwnedAttributes tests that callers cannot override
// identity or bookkeeping fields
func (suite *LeadServiceTestSuite) TestCreateIgnoresServerOwnedAttributes() {
	lead, err := suite.service.Create(suite.ctx, "org-1", map[string]interface{}{
		"name":      "Jane Prospect",
		"id":        "forged-id",
		"createdAt": "1999-01-01T00:00:00Z",
		"PK":        "ORG#other",
		"notes":     "not-a-list",
	})
	suite.NoError(err)
	suite.NotEqual("forged-id", lead.ID)
	suite.NotEqual("1999-01-01T00:00:00Z", lead.CreatedAt)
	suite.Empty(lead.Notes)
	suite.NotContains(lead.Custom, "PK")
}

// TestAddNote tests appending a note through the service
func (suite *LeadServiceTestSuite) TestAddNote() {
	lead, err := suite.service.Create(suite.ctx, "org-1", map[string]interface{}{"name": "Jane"})
	suite.Require().NoError(err)

	note, err := suite.service.AddNote(suite.ctx, "org-1", lead.ID, "Called, no answer")
	suite.NoError(err)
	suite.Equal("Called, no answer", note.Content)
	suite.NotEmpty(note.CreatedAt)

	leads, err := suite.service.List(suite.ctx, "org-1")
	suite.NoError(err)
	suite.Require().Len(leads, 1)
	suite.Len(leads[0].Notes, 1)
}

// TestAddNoteRequiresContent tests the empty-note rejection
func (suite *LeadServiceTestSuite) TestAddNoteRequiresContent() {
	_, err := suite.service.AddNote(suite.ctx, "org-1", "lead-1", "")
	suite.Error(err)
	suite.ErrorIs(err, &apperrors.ValidationError{})
}

// TestUpdateStatus tests moving a lead through the pipeline
func (suite *LeadServiceTestSuite) TestUpdateStatus() {
	lead, err := suite.service.Create(suite.ctx, "org-1", map[string]interface{}{
		"name": "Jane", "status": "New",
	})
	suite.Require().NoError(err)

	suite.NoError(suite.service.UpdateStatus(suite.ctx, "org-1", lead.ID, "Qualified"))

	leads, err := suite.service.List(suite.ctx, "org-1")
	suite.NoError(err)
	suite.Require().Len(leads, 1)
	suite.Equal("Qualified", leads[0].Status)
}

// TestUpdateStatusRequiresStatus tests the empty-status rejection
func (suite *LeadServiceTestSuite) TestUpdateStatusRequiresStatus() {
	err := suite.service.UpdateStatus(suite.ctx, "org-1", "lead-1", "")
	suite.Error(err)
	suite.ErrorIs(err, &apperrors.ValidationError{})
}

// TestDelete tests removing a lead
func (suite *LeadServiceTestSuite) TestDelete() {
	lead, err := suite.service.Create(suite.ctx, "org-1", map[string]interface{}{"name": "Jane"})
	suite.Require().NoError(err)

	suite.NoError(suite.service.Delete(suite.ctx, "org-1", lead.ID))

	leads, err := suite.service.List(suite.ctx, "org-1")
	suite.NoError(err)
	suite.Empty(leads)
}

func TestLeadServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LeadServiceTestSuite))
}
