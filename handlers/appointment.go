package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"clinicore/models"
	"clinicore/services/appointment"
	"clinicore/services/scheduling"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AppointmentHandler exposes appointment CRUD and lifecycle endpoints.
type AppointmentHandler struct {
	Svc        appointment.AppointmentService
	Scheduling scheduling.Service
}

// NewAppointmentHandler constructs an AppointmentHandler.
func NewAppointmentHandler(svc appointment.AppointmentService, sched scheduling.Service) *AppointmentHandler {
	return &AppointmentHandler{Svc: svc, Scheduling: sched}
}

func parseID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}

// CreateHandler books an appointment. On overlap it answers 409 with the
// advisory conflict result so the client can show alternatives.
func (h *AppointmentHandler) CreateHandler(c *gin.Context) {
	var req models.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	appt, err := h.Svc.Create(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, appointment.ErrOverlappingBooking):
			body := gin.H{"error": err.Error()}
			cand := models.ConflictCandidate{DoctorID: req.DoctorID, Start: req.Start, End: req.End}
			if result, cErr := h.Scheduling.CheckConflict(c.Request.Context(), cand, 0); cErr == nil {
				body["conflict"] = result
			}
			c.JSON(http.StatusConflict, body)
		case errors.Is(err, appointment.ErrDoctorNotFound), errors.Is(err, appointment.ErrPatientNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, appointment.ErrInvalidType),
			errors.Is(err, appointment.ErrPastStart),
			errors.Is(err, models.ErrInvalidInterval),
			errors.Is(err, models.ErrDurationOutOfRange):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			getLogger(c).Error("create appointment failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create appointment"})
		}
		return
	}
	c.JSON(http.StatusCreated, appt)
}

// GetHandler returns one appointment by ID.
func (h *AppointmentHandler) GetHandler(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	appt, err := h.Svc.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "appointment not found"})
		return
	}
	c.JSON(http.StatusOK, appt)
}

// ListByDoctorHandler returns a doctor's appointments in a time range.
// GET /api/appointments/doctor/:doctorID?from=&to= (RFC3339; defaults to the next 7 days)
func (h *AppointmentHandler) ListByDoctorHandler(c *gin.Context) {
	doctorID, ok := parseID(c, "doctorID")
	if !ok {
		return
	}

	now := time.Now().UTC()
	from, to := now, now.AddDate(0, 0, 7)
	var err error
	if raw := c.Query("from"); raw != "" {
		if from, err = time.Parse(time.RFC3339, raw); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "from must be RFC3339"})
			return
		}
	}
	if raw := c.Query("to"); raw != "" {
		if to, err = time.Parse(time.RFC3339, raw); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "to must be RFC3339"})
			return
		}
	}

	appts, err := h.Svc.ListByDoctor(c.Request.Context(), doctorID, from, to)
	if err != nil {
		getLogger(c).Error("list appointments failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list appointments"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointments": appts})
}

// ListByPatientHandler returns all appointments for one patient.
func (h *AppointmentHandler) ListByPatientHandler(c *gin.Context) {
	patientID, ok := parseID(c, "patientID")
	if !ok {
		return
	}
	appts, err := h.Svc.ListByPatient(c.Request.Context(), patientID)
	if err != nil {
		getLogger(c).Error("list patient appointments failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list appointments"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointments": appts})
}

// UpdateHandler patches non-time fields of an appointment.
func (h *AppointmentHandler) UpdateHandler(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req models.UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	appt, err := h.Svc.Update(c.Request.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, appointment.ErrInvalidType):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		case errors.Is(err, appointment.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "appointment not found"})
		default:
			getLogger(c).Error("update appointment failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update appointment"})
		}
		return
	}
	c.JSON(http.StatusOK, appt)
}

// TransitionHandler moves an appointment through its status lifecycle.
// PUT /api/appointments/:id/status
func (h *AppointmentHandler) TransitionHandler(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	appt, err := h.Svc.Transition(c.Request.Context(), id, input.Status)
	if err != nil {
		switch {
		case errors.Is(err, appointment.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "appointment not found"})
		case errors.Is(err, appointment.ErrInvalidTransition):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			getLogger(c).Error("status transition failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to change status"})
		}
		return
	}
	c.JSON(http.StatusOK, appt)
}

// DeleteHandler removes an appointment record entirely. Cancelling is the
// normal path; delete exists for admin cleanup.
func (h *AppointmentHandler) DeleteHandler(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "appointment not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
