package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"pulse-crm-backend/internal/store"
	"pulse-crm-backend/internal/store/models"
	"pulse-crm-backend/internal/testutils"

	"github.com/stretchr/testify/suite"
)

// LeadRepositoryTestSuite tests the LeadRepository
type LeadRepositoryTestSuite struct {
	suite.Suite
	fake *testutils.FakeDynamo
	repo *LeadRepository
	ctx  context.Context
}

// SetupTest runs before each test
func (suite *LeadRepositoryTestSuite) SetupTest() {
	suite.fake = testutils.NewFakeDynamo()
	suite.repo = NewLeadRepository(store.New(suite.fake, "test-table"))
	suite.ctx = context.Background()
}

func (suite *LeadRepositoryTestSuite) newLead(orgID, leadID string) *models.Lead {
	key := store.LeadKey(orgID, leadID)
	return &models.Lead{
		PK:        key.PK,
		SK:        key.SK,
		Type:      models.TypeLead,
		ID:        leadID,
		Name:      "Jane Prospect",
		Email:     "jane@prospect.com",
		Status:    "New",
		Value:     2500,
		Notes:     []models.Note{},
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
}

// TestCreateAndList tests the round trip of a lead through the store
func (suite *LeadRepositoryTestSuite) TestCreateAndList() {
	lead := suite.newLead("org-1", "lead-1")
	suite.NoError(suite.repo.Create(suite.ctx, lead))

	leads, err := suite.repo.List(suite.ctx, "org-1")
	suite.NoError(err)
	suite.Require().Len(leads, 1)

	suite.Equal("lead-1", leads[0].ID)
	suite.Equal("Jane Prospect", leads[0].Name)
	suite.Equal("New", leads[0].Status)
	suite.Equal(float64(2500), leads[0].Value)
	suite.NotNil(leads[0].Notes)
}

// TestCreatePreservesCustomAttributes tests that free-form attributes are
// stored flat on the record and survive the round trip
func (suite *LeadRepositoryTestSuite) TestCreatePreservesCustomAttributes() {
	lead := suite.newLead("org-1", "lead-1")
	lead.Custom = map[string]interface{}{
		"industry": "fintech",
		"priority": float64(3),
		"hot":      true,
	}
	suite.NoError(suite.repo.Create(suite.ctx, lead))

	leads, err := suite.repo.List(suite.ctx, "org-1")
	suite.NoError(err)
	suite.Require().Len(leads, 1)

	suite.Equal("fintech", leads[0].Custom["industry"])
	suite.Equal(float64(3), leads[0].Custom["priority"])
	suite.Equal(true, leads[0].Custom["hot"])
}

// TestListScopedToOrg tests that listings never cross tenant partitions
func (suite *LeadRepositoryTestSuite) TestListScopedToOrg() {
	suite.NoError(suite.repo.Create(suite.ctx, suite.newLead("org-1", "lead-1")))
	suite.NoError(suite.repo.Create(suite.ctx, suite.newLead("org-2", "lead-2")))

	leads, err := suite.repo.List(suite.ctx, "org-1")
	suite.NoError(err)
	suite.Require().Len(leads, 1)
	suite.Equal("lead-1", leads[0].ID)
}

// TestListEmptyOrg tests listing an org with no leads
func (suite *LeadRepositoryTestSuite) TestListEmptyOrg() {
	leads, err := suite.repo.List(suite.ctx, "org-1")
	suite.NoError(err)
	suite.Empty(leads)
}

// TestAddNote tests appending a note
func (suite *LeadRepositoryTestSuite) TestAddNote() {
	suite.NoError(suite.repo.Create(suite.ctx, suite.newLead("org-1", "lead-1")))

	note := models.Note{Content: "Called, no answer", CreatedAt: time.Now().UTC().Format(time.RFC3339)}
	suite.NoError(suite.repo.AddNote(suite.ctx, "org-1", "lead-1", note))

	leads, err := suite.repo.List(suite.ctx, "org-1")
	suite.NoError(err)
	suite.Require().Len(leads, 1)
	suite.Require().Len(leads[0].Notes, 1)
	suite.Equal("Called, no answer", leads[0].Notes[0].Content)
}

// TestConcurrentAddNotes tests that no appended note is ever lost
func (suite *LeadRepositoryTestSuite) TestConcurrentAddNotes() {
	suite.NoError(suite.repo.Create(suite.ctx, suite.newLead("org-1", "lead-1")))

	const writers = 20
	var wg sync.WaitGroup
	wg.Add(writers)
	for i := 0; i < writers; i++ {
		go func(n int) {
			defer wg.Done()
			note := models.Note{
				Content:   fmt.Sprintf("note %d", n),
				CreatedAt: time.Now().UTC().Format(time.RFC3339),
			}
			suite.NoError(suite.repo.AddNote(suite.ctx, "org-1", "lead-1", note))
		}(i)
	}
	wg.Wait()

	leads, err := suite.repo.List(suite.ctx, "org-1")
	suite.NoError(err)
	suite.Require().Len(leads, 1)
	suite.Len(leads[0].Notes, writers)
}

// TestUpdateStatus tests that only the status attribute changes
func (suite *LeadRepositoryTestSuite) TestUpdateStatus() {
	lead := suite.newLead("org-1", "lead-1")
	suite.NoError(suite.repo.Create(suite.ctx, lead))

	suite.NoError(suite.repo.UpdateStatus(suite.ctx, "org-1", "lead-1", "Qualified"))

	leads, err := suite.repo.List(suite.ctx, "org-1")
	suite.NoError(err)
	suite.Require().Len(leads, 1)
	suite.Equal("Qualified", leads[0].Status)
	suite.Equal("Jane Prospect", leads[0].Name, "other attributes untouched")
}

// TestDelete tests removing a lead
func (suite *LeadRepositoryTestSuite) TestDelete() {
	suite.NoError(suite.repo.Create(suite.ctx, suite.newLead("org-1", "lead-1")))
	suite.NoError(suite.repo.Delete(suite.ctx, "org-1", "lead-1"))

	leads, err := suite.repo.List(suite.ctx, "org-1")
	suite.NoError(err)
	suite.Empty(leads)
}

// TestDeleteIsIdempotent tests deleting an absent lead succeeds
func (suite *LeadRepositoryTestSuite) TestDeleteIsIdempotent() {
	suite.NoError(suite.repo.Delete(suite.ctx, "org-1", "no-such-lead"))
}

func TestLeadRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(LeadRepositoryTestSuite))
}
