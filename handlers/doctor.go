package handlers

import (
	"errors"
	"net/http"

	"clinicore/models"
	"clinicore/services/doctor"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DoctorHandler exposes doctor profile endpoints.
type DoctorHandler struct {
	Svc doctor.DoctorService
}

// NewDoctorHandler constructs a DoctorHandler.
func NewDoctorHandler(svc doctor.DoctorService) *DoctorHandler {
	return &DoctorHandler{Svc: svc}
}

func (h *DoctorHandler) CreateHandler(c *gin.Context) {
	var req models.CreateDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	doc, err := h.Svc.Create(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, doctor.ErrInvalidWorkday) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		getLogger(c).Error("create doctor failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create doctor"})
		return
	}
	c.JSON(http.StatusCreated, doc)
}

func (h *DoctorHandler) GetHandler(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	doc, err := h.Svc.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "doctor not found"})
		return
	}
	c.JSON(http.StatusOK, doc)
}

// ListHandler lists doctors; ?all=true includes deactivated ones.
func (h *DoctorHandler) ListHandler(c *gin.Context) {
	activeOnly := c.Query("all") != "true"
	docs, err := h.Svc.List(c.Request.Context(), activeOnly)
	if err != nil {
		getLogger(c).Error("list doctors failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list doctors"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"doctors": docs})
}

func (h *DoctorHandler) UpdateHandler(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req models.UpdateDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	doc, err := h.Svc.Update(c.Request.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, doctor.ErrInvalidWorkday):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		case errors.Is(err, doctor.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "doctor not found"})
		default:
			getLogger(c).Error("update doctor failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update doctor"})
		}
		return
	}
	c.JSON(http.StatusOK, doc)
}

func (h *DoctorHandler) DeactivateHandler(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	doc, err := h.Svc.Deactivate(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "doctor not found"})
		return
	}
	c.JSON(http.StatusOK, doc)
}
