package handlers

import (
	"net/http"

	"pulse-crm-backend/internal/auth"
	"pulse-crm-backend/internal/service"
	"pulse-crm-backend/internal/store/models"

	"github.com/gin-gonic/gin"
)

// SettingsHandler handles HTTP requests for the custom field schema
type SettingsHandler struct {
	service service.SettingsServiceInterface
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(service service.SettingsServiceInterface) *SettingsHandler {
	return &SettingsHandler{service: service}
}

// GetFields handles GET /settings/fields
// @Summary Get the custom field schema
// @Description Return the org's field schema, empty when none is saved
// @Tags settings
// @Produce json
// @Success 200 {array} models.Field "Fields"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /settings/fields [get]
func (h *SettingsHandler) GetFields(c *gin.Context) {
	orgID, ok := auth.GetOrgID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	fields, err := h.service.Get(c.Request.Context(), orgID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get settings", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, fields)
}

// SaveFields handles POST /settings/fields
// @Summary Save the custom field schema
// @Description Replace the org's field schema in full
// @Tags settings
// @Accept json
// @Produce json
// @Param fields body []models.Field true "Fields"
// @Success 200 {object} map[string]interface{} "Saved"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /settings/fields [post]
func (h *SettingsHandler) SaveFields(c *gin.Context) {
	orgID, ok := auth.GetOrgID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var fields []models.Field
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if err := h.service.Save(c.Request.Context(), orgID, fields); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save settings", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Saved"})
}
