package handlers

import (
	"errors"
	"net/http"

	"clinicore/models"
	"clinicore/services/staff"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler exposes staff registration and login.
type AuthHandler struct {
	Svc staff.StaffService
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(svc staff.StaffService) *AuthHandler {
	return &AuthHandler{Svc: svc}
}

// RegisterHandler creates a staff account and returns a signed token.
func (h *AuthHandler) RegisterHandler(c *gin.Context) {
	var req models.RegisterStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	resp, err := h.Svc.Register(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, staff.ErrEmailTaken):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, staff.ErrInvalidRole):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			getLogger(c).Error("staff registration failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
		}
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// LoginHandler verifies credentials and issues a token.
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	resp, err := h.Svc.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, staff.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
			return
		}
		getLogger(c).Error("staff login failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// MeHandler returns the authenticated staff member's profile.
func (h *AuthHandler) MeHandler(c *gin.Context) {
	staffID := c.GetString("staffID")
	if staffID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	member, err := h.Svc.GetByID(c.Request.Context(), staffID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "staff account not found"})
		return
	}
	c.JSON(http.StatusOK, member)
}

// RegisterDeviceTokenHandler stores an FCM device token for the authenticated staff member.
func (h *AuthHandler) RegisterDeviceTokenHandler(c *gin.Context) {
	staffID := c.GetString("staffID")
	if staffID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	var input struct {
		Token string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if err := h.Svc.RegisterDeviceToken(c.Request.Context(), staffID, input.Token); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "staff account not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "registered"})
}
