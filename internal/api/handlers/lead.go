package handlers

import (
	"errors"
	"net/http"

	"pulse-crm-backend/internal/auth"
	apperrors "pulse-crm-backend/internal/errors"
	"pulse-crm-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// LeadHandler handles HTTP requests for leads
type LeadHandler struct {
	service service.LeadServiceInterface
}

// NewLeadHandler creates a new lead handler
func NewLeadHandler(service service.LeadServiceInterface) *LeadHandler {
	return &LeadHandler{service: service}
}

// AddNoteRequest is the body for appending a note to a lead
type AddNoteRequest struct {
	Content string `json:"content" binding:"required"`
}

// UpdateStatusRequest is the body for moving a lead to a new status
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// CreateLead handles POST /leads
// @Summary Create a lead
// @Description Create a lead with the standard fields plus free-form scalar custom fields
// @Tags leads
// @Accept json
// @Produce json
// @Success 200 {object} models.Lead "Created lead"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Security BearerAuth
// @Router /leads [post]
func (h *LeadHandler) CreateLead(c *gin.Context) {
	orgID, ok := auth.GetOrgID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var input map[string]interface{}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	lead, err := h.service.Create(c.Request.Context(), orgID, input)
	if err != nil {
		if errors.Is(err, &apperrors.ValidationError{}) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create lead", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, lead)
}

// GetLeads handles GET /leads
// @Summary List leads
// @Description List all leads of the caller's organization
// @Tags leads
// @Produce json
// @Success 200 {array} models.Lead "Leads"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Security BearerAuth
// @Router /leads [get]
func (h *LeadHandler) GetLeads(c *gin.Context) {
	orgID, ok := auth.GetOrgID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	leads, err := h.service.List(c.Request.Context(), orgID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list leads", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, leads)
}

// AddNote handles POST /leads/:id/notes
// @Summary Append a note
// @Description Atomically append a note to a lead's notes list
// @Tags leads
// @Accept json
// @Produce json
// @Param id path string true "Lead ID"
// @Param note body AddNoteRequest true "Note content"
// @Success 200 {object} models.Note "Appended note"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /leads/{id}/notes [post]
func (h *LeadHandler) AddNote(c *gin.Context) {
	orgID, ok := auth.GetOrgID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req AddNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	note, err := h.service.AddNote(c.Request.Context(), orgID, c.Param("id"), req.Content)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add note", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, note)
}

// UpdateLead handles PUT /leads/:id
// @Summary Update lead status
// @Description Update only the status attribute of a lead
// @Tags leads
// @Accept json
// @Produce json
// @Param id path string true "Lead ID"
// @Param status body UpdateStatusRequest true "New status"
// @Success 200 {object} map[string]interface{} "Updated"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /leads/{id} [put]
func (h *LeadHandler) UpdateLead(c *gin.Context) {
	orgID, ok := auth.GetOrgID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	leadID := c.Param("id")
	if err := h.service.UpdateStatus(c.Request.Context(), orgID, leadID, req.Status); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update lead", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Lead updated", "id": leadID, "status": req.Status})
}

// DeleteLead handles DELETE /leads/:id
// @Summary Delete a lead
// @Description Delete a lead; deleting a non-existent lead still succeeds
// @Tags leads
// @Produce json
// @Param id path string true "Lead ID"
// @Success 200 {object} map[string]interface{} "Deleted"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /leads/{id} [delete]
func (h *LeadHandler) DeleteLead(c *gin.Context) {
	orgID, ok := auth.GetOrgID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), orgID, c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete lead", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Deleted"})
}
