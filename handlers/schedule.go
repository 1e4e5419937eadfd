package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"clinicore/models"
	"clinicore/services/scheduling"
	"clinicore/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ScheduleHandler exposes the scheduling core over HTTP: day views, conflict
// checks, slot suggestions and the gesture lifecycle.
type ScheduleHandler struct {
	Svc scheduling.Service
}

// NewScheduleHandler constructs a ScheduleHandler.
func NewScheduleHandler(svc scheduling.Service) *ScheduleHandler {
	return &ScheduleHandler{Svc: svc}
}

// DayViewHandler returns a doctor's day with overlap columns computed.
// GET /api/schedule/day/:doctorID?date=YYYY-MM-DD
func (h *ScheduleHandler) DayViewHandler(c *gin.Context) {
	doctorID, err := strconv.ParseInt(c.Param("doctorID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid doctor id"})
		return
	}
	date := c.Query("date")
	if date == "" {
		date = time.Now().UTC().Format("2006-01-02")
	}

	view, err := h.Svc.DayView(c.Request.Context(), doctorID, date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to build day view", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, view)
}

// CheckConflictHandler runs an advisory conflict check for a candidate interval.
// POST /api/schedule/conflicts
func (h *ScheduleHandler) CheckConflictHandler(c *gin.Context) {
	var req models.ConflictCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	result, err := h.Svc.CheckConflict(c.Request.Context(), req.Candidate, req.ExcludeID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "conflict check failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, result)
}

// SuggestSlotsHandler returns conflict-free alternatives near a requested time.
// GET /api/schedule/suggestions?doctorId=&durationMinutes=&after=&max=
func (h *ScheduleHandler) SuggestSlotsHandler(c *gin.Context) {
	doctorID, err := strconv.ParseInt(c.Query("doctorId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid doctorId"})
		return
	}
	durationMinutes, err := strconv.Atoi(c.Query("durationMinutes"))
	if err != nil || durationMinutes <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid durationMinutes"})
		return
	}
	after := time.Now().UTC()
	if raw := c.Query("after"); raw != "" {
		after, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "after must be RFC3339"})
			return
		}
	}
	max := 3
	if raw := c.Query("max"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			max = n
		}
	}

	slots, err := h.Svc.SuggestSlots(c.Request.Context(), doctorID,
		time.Duration(durationMinutes)*time.Minute, after, max)
	if err != nil {
		if errors.Is(err, scheduling.ErrInvalidSuggestionParams) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		getLogger(c).Error("slot suggestion failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "slot suggestion failed"})
		return
	}
	// An empty list is a valid answer: the calendar may simply be full.
	c.JSON(http.StatusOK, gin.H{"suggestions": slots})
}

// BeginGestureHandler opens a drag or resize session on an appointment.
// POST /api/schedule/gesture
func (h *ScheduleHandler) BeginGestureHandler(c *gin.Context) {
	var req models.BeginGestureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	session, err := h.Svc.BeginGesture(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, scheduling.ErrAppointmentNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "appointment not found"})
		case errors.Is(err, scheduling.ErrUnknownGestureMode), errors.Is(err, scheduling.ErrNotReschedulable):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			getLogger(c).Error("begin gesture failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to start gesture"})
		}
		return
	}
	c.JSON(http.StatusOK, session)
}

// UpdateGestureHandler applies a cumulative pointer delta to an open session.
// PUT /api/schedule/gesture/:sessionID
func (h *ScheduleHandler) UpdateGestureHandler(c *gin.Context) {
	var req models.UpdateGestureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	result, err := h.Svc.UpdateGesture(c.Request.Context(), c.Param("sessionID"), req)
	if err != nil {
		switch {
		case errors.Is(err, scheduling.ErrGestureNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "gesture session not found or expired"})
		case errors.Is(err, scheduling.ErrGestureNotActive):
			c.JSON(http.StatusConflict, gin.H{"error": "gesture is no longer active"})
		default:
			getLogger(c).Error("update gesture failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update gesture"})
		}
		return
	}
	c.JSON(http.StatusOK, result)
}

// CommitGestureHandler persists the candidate interval of an open session.
// POST /api/schedule/gesture/:sessionID/commit
func (h *ScheduleHandler) CommitGestureHandler(c *gin.Context) {
	result, err := h.Svc.CommitGesture(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		switch {
		case errors.Is(err, scheduling.ErrGestureNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "gesture session not found or expired"})
		case errors.Is(err, scheduling.ErrPastStart),
			errors.Is(err, scheduling.ErrDurationOutOfRange):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		case errors.Is(err, scheduling.ErrOverlappingAppointment):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "result": result})
		default:
			getLogger(c).Error("commit gesture failed", zap.Error(err))
			// result may carry the authoritative record for resynchronization.
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to commit gesture", "result": result})
		}
		return
	}
	c.JSON(http.StatusOK, result)
}

// CancelGestureHandler discards an open session without touching the appointment.
// DELETE /api/schedule/gesture/:sessionID
func (h *ScheduleHandler) CancelGestureHandler(c *gin.Context) {
	if err := h.Svc.CancelGesture(c.Request.Context(), c.Param("sessionID")); err != nil {
		if errors.Is(err, scheduling.ErrGestureNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "gesture session not found or expired"})
			return
		}
		getLogger(c).Error("cancel gesture failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to cancel gesture"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}
