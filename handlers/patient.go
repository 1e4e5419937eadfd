package handlers

import (
	"net/http"
	"strconv"

	"clinicore/models"
	"clinicore/services/patient"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PatientHandler exposes patient record endpoints.
type PatientHandler struct {
	Svc patient.PatientService
}

// NewPatientHandler constructs a PatientHandler.
func NewPatientHandler(svc patient.PatientService) *PatientHandler {
	return &PatientHandler{Svc: svc}
}

func (h *PatientHandler) CreateHandler(c *gin.Context) {
	var req models.CreatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	p, err := h.Svc.Create(c.Request.Context(), req)
	if err != nil {
		getLogger(c).Error("create patient failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create patient"})
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *PatientHandler) GetHandler(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	p, err := h.Svc.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "patient not found"})
		return
	}
	c.JSON(http.StatusOK, p)
}

// ListHandler searches patients by name prefix; ?search=&limit=
func (h *PatientHandler) ListHandler(c *gin.Context) {
	var limit int64
	if raw := c.Query("limit"); raw != "" {
		limit, _ = strconv.ParseInt(raw, 10, 64)
	}
	patients, err := h.Svc.List(c.Request.Context(), c.Query("search"), limit)
	if err != nil {
		getLogger(c).Error("list patients failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list patients"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"patients": patients})
}

func (h *PatientHandler) UpdateHandler(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req models.UpdatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	p, err := h.Svc.Update(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "patient not found"})
		return
	}
	c.JSON(http.StatusOK, p)
}

// RegisterDeviceTokenHandler stores an FCM device token for reminder pushes.
// POST /api/patients/:id/device-token
func (h *PatientHandler) RegisterDeviceTokenHandler(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var input struct {
		Token string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if err := h.Svc.RegisterDeviceToken(c.Request.Context(), id, input.Token); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "patient not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "registered"})
}

func (h *PatientHandler) DeleteHandler(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "patient not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
