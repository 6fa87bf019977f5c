package handlers_test

import (
	"net/http"
	"testing"

	"pulse-crm-backend/internal/api/handlers"
	apperrors "pulse-crm-backend/internal/errors"
	"pulse-crm-backend/internal/mocks"
	"pulse-crm-backend/internal/store/models"
	"pulse-crm-backend/internal/testutils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

// LeadHandlerTestSuite defines the test suite for LeadHandler
type LeadHandlerTestSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	mockService *mocks.MockLeadServiceInterface
	handler     *handlers.LeadHandler
	httpSuite   *testutils.HTTPTestSuite
}

// SetupTest sets up the test suite
func (suite *LeadHandlerTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockService = mocks.NewMockLeadServiceInterface(suite.ctrl)
	suite.handler = handlers.NewLeadHandler(suite.mockService)

	suite.httpSuite = testutils.SetupHTTPTest()

	// Stand-in for the auth middleware: inject the caller's org scope.
	suite.httpSuite.Router.Use(func(c *gin.Context) {
		c.Set("org_id", "org-1")
		c.Next()
	})

	leads := suite.httpSuite.Router.Group("/leads")
	{
		leads.POST("", suite.handler.CreateLead)
		leads.GET("", suite.handler.GetLeads)
		leads.PUT("/:id", suite.handler.UpdateLead)
		leads.DELETE("/:id", suite.handler.DeleteLead)
		leads.POST("/:id/notes", suite.handler.AddNote)
	}
}

// TearDownTest cleans up after each test
func (suite *LeadHandlerTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

// TestCreateLead tests creating a lead including custom fields
func (suite *LeadHandlerTestSuite) TestCreateLead() {
	suite.mockService.EXPECT().
		Create(gomock.Any(), "org-1", gomock.Any()).
		Return(&models.Lead{
			ID:     "lead-1",
			Name:   "Jane Prospect",
			Status: "New",
			Notes:  []models.Note{},
			Custom: map[string]interface{}{"industry": "fintech"},
		}, nil)

	recorder := suite.httpSuite.MakeRequest("POST", "/leads", map[string]interface{}{
		"name": "Jane Prospect", "status": "New", "industry": "fintech",
	})

	var resp map[string]interface{}
	testutils.AssertJSONResponse(suite.T(), recorder, http.StatusOK, &resp)
	suite.Equal("lead-1", resp["id"])
	suite.Equal("fintech", resp["industry"], "custom fields are flattened into the response")
}

// TestCreateLeadRejectsNonScalar tests the validation mapping
func (suite *LeadHandlerTestSuite) TestCreateLeadRejectsNonScalar() {
	suite.mockService.EXPECT().
		Create(gomock.Any(), "org-1", gomock.Any()).
		Return(nil, apperrors.NewValidationError("nested", "custom attributes must be scalar values"))

	recorder := suite.httpSuite.MakeRequest("POST", "/leads", map[string]interface{}{
		"nested": map[string]interface{}{"a": 1},
	})

	testutils.AssertErrorResponse(suite.T(), recorder, http.StatusBadRequest, "scalar")
}

// TestGetLeads tests listing leads
func (suite *LeadHandlerTestSuite) TestGetLeads() {
	suite.mockService.EXPECT().
		List(gomock.Any(), "org-1").
		Return([]models.Lead{
			{ID: "lead-1", Name: "Jane", Notes: []models.Note{}},
			{ID: "lead-2", Name: "John", Notes: []models.Note{}},
		}, nil)

	recorder := suite.httpSuite.MakeRequest("GET", "/leads", nil)

	var resp []map[string]interface{}
	testutils.AssertJSONResponse(suite.T(), recorder, http.StatusOK, &resp)
	suite.Len(resp, 2)
}

// TestAddNote tests appending a note
func (suite *LeadHandlerTestSuite) TestAddNote() {
	suite.mockService.EXPECT().
		AddNote(gomock.Any(), "org-1", "lead-1", "Called, no answer").
		Return(&models.Note{Content: "Called, no answer", CreatedAt: "2026-01-02T15:04:05Z"}, nil)

	recorder := suite.httpSuite.MakeRequest("POST", "/leads/lead-1/notes", map[string]interface{}{
		"content": "Called, no answer",
	})

	var resp models.Note
	testutils.AssertJSONResponse(suite.T(), recorder, http.StatusOK, &resp)
	suite.Equal("Called, no answer", resp.Content)
}

// TestAddNoteMissingContent tests binding rejection of an empty note
func (suite *LeadHandlerTestSuite) TestAddNoteMissingContent() {
	recorder := suite.httpSuite.MakeRequest("POST", "/leads/lead-1/notes", map[string]interface{}{})
	testutils.AssertErrorResponse(suite.T(), recorder, http.StatusBadRequest, "Invalid request body")
}

// TestUpdateLead tests the status update
func (suite *LeadHandlerTestSuite) TestUpdateLead() {
	suite.mockService.EXPECT().
		UpdateStatus(gomock.Any(), "org-1", "lead-1", "Qualified").
		Return(nil)

	recorder := suite.httpSuite.MakeRequest("PUT", "/leads/lead-1", map[string]interface{}{
		"status": "Qualified",
	})

	var resp map[string]interface{}
	testutils.AssertJSONResponse(suite.T(), recorder, http.StatusOK, &resp)
	suite.Equal("Qualified", resp["status"])
}

// TestUpdateLeadMissingStatus tests binding rejection of an empty status
func (suite *LeadHandlerTestSuite) TestUpdateLeadMissingStatus() {
	recorder := suite.httpSuite.MakeRequest("PUT", "/leads/lead-1", map[string]interface{}{})
	testutils.AssertErrorResponse(suite.T(), recorder, http.StatusBadRequest, "Invalid request body")
}

// TestDeleteLead tests deleting a lead
func (suite *LeadHandlerTestSuite) TestDeleteLead() {
	suite.mockService.EXPECT().
		Delete(gomock.Any(), "org-1", "lead-1").
		Return(nil)

	recorder := suite.httpSuite.MakeRequest("DELETE", "/leads/lead-1", nil)
	testutils.AssertJSONResponse(suite.T(), recorder, http.StatusOK, nil)
}

func TestLeadHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(LeadHandlerTestSuite))
}
