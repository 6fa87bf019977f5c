package handlers

import (
	"net/http"

	"pulse-crm-backend/internal/auth"
	"pulse-crm-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// SeedHandler handles demo data injection
type SeedHandler struct {
	service service.SeedServiceInterface
}

// NewSeedHandler creates a new seed handler
func NewSeedHandler(service service.SeedServiceInterface) *SeedHandler {
	return &SeedHandler{service: service}
}

// Seed handles POST /seed
// @Summary Inject demo data
// @Description Write a handful of random leads and display-only members into the caller's org
// @Tags seed
// @Produce json
// @Success 200 {object} map[string]interface{} "Seeded"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /seed [post]
func (h *SeedHandler) Seed(c *gin.Context) {
	orgID, ok := auth.GetOrgID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.service.Seed(c.Request.Context(), orgID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to seed data", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Test data injected successfully!"})
}
