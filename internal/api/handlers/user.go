package handlers

import (
	"errors"
	"net/http"
	"net/url"

	"pulse-crm-backend/internal/auth"
	apperrors "pulse-crm-backend/internal/errors"
	"pulse-crm-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// UserHandler handles HTTP requests for team members
type UserHandler struct {
	service service.IdentityServiceInterface
}

// NewUserHandler creates a new user handler
func NewUserHandler(service service.IdentityServiceInterface) *UserHandler {
	return &UserHandler{service: service}
}

// GetUsers handles GET /users
// @Summary List team members
// @Description List the org's users; password hashes are never included
// @Tags users
// @Produce json
// @Success 200 {array} models.User "Users"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /users [get]
func (h *UserHandler) GetUsers(c *gin.Context) {
	orgID, ok := auth.GetOrgID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	users, err := h.service.ListUsers(c.Request.Context(), orgID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list users", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, users)
}

// DeleteUser handles DELETE /users/:email (admin only)
// @Summary Delete a team member
// @Description Remove a user from the org; admins cannot delete themselves
// @Tags users
// @Produce json
// @Param email path string true "User email"
// @Success 200 {object} map[string]interface{} "Deleted"
// @Failure 400 {object} map[string]interface{} "Self-deletion"
// @Failure 403 {object} map[string]interface{} "Not an admin"
// @Security BearerAuth
// @Router /users/{email} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	claims, ok := auth.GetClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	email := c.Param("email")
	if decoded, err := url.PathUnescape(email); err == nil {
		email = decoded
	}

	if err := h.service.DeleteUser(c.Request.Context(), claims, email); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrAdminRequired):
			c.JSON(http.StatusForbidden, gin.H{"error": "Access Denied: Only Admins can delete users."})
		case errors.Is(err, apperrors.ErrSelfDelete):
			c.JSON(http.StatusBadRequest, gin.H{"error": "You cannot delete your own account."})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user", "details": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}
