package handlers

import (
	"errors"
	"net/http"

	apperrors "pulse-crm-backend/internal/errors"
	"pulse-crm-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles HTTP requests for signup and login
type AuthHandler struct {
	service service.IdentityServiceInterface
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(service service.IdentityServiceInterface) *AuthHandler {
	return &AuthHandler{service: service}
}

// Signup handles POST /auth/signup
// @Summary Sign up
// @Description Create a new organization workspace or join an existing one
// @Tags auth
// @Accept json
// @Produce json
// @Param signup body service.SignupRequest true "Signup data"
// @Success 201 {object} service.SignupResponse "Account created"
// @Failure 400 {object} map[string]interface{} "Invalid request body"
// @Failure 404 {object} map[string]interface{} "Organization not found"
// @Failure 409 {object} map[string]interface{} "Email already registered"
// @Router /auth/signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var req service.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	resp, err := h.service.Signup(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrOrganizationNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Organization ID not found. Please check and try again."})
		case apperrors.IsDuplicateIdentity(err):
			c.JSON(http.StatusConflict, gin.H{"error": "This email is already registered."})
		case errors.Is(err, &apperrors.ValidationError{}):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Signup failed", "details": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// Login handles POST /auth/login
// @Summary Log in
// @Description Verify credentials and issue a tenant-scoped bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param login body service.LoginRequest true "Login data"
// @Success 200 {object} service.LoginResponse "Token issued"
// @Failure 401 {object} map[string]interface{} "Invalid credentials"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req service.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	resp, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials or Organization ID"})
		case errors.Is(err, &apperrors.ValidationError{}):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}
