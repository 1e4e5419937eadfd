package models

import (
	"errors"
	"fmt"
	"time"
)

// Appointment statuses. Cancelled appointments never count toward conflicts.
const (
	StatusScheduled  = "scheduled"
	StatusConfirmed  = "confirmed"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
	StatusNoShow     = "no_show"
)

// Appointment types.
const (
	TypeConsultation = "consultation"
	TypeFollowUp     = "follow_up"
	TypeProcedure    = "procedure"
	TypeEmergency    = "emergency"
)

// Duration bounds enforced on create and resize.
const (
	MinAppointmentDuration = 15 * time.Minute
	MaxAppointmentDuration = 8 * time.Hour
)

// Appointment occupies the half-open interval [Start, End) on a doctor's calendar.
type Appointment struct {
	ID        int64     `bson:"id" json:"id"`
	DoctorID  int64     `bson:"doctorId" json:"doctorId"`
	PatientID int64     `bson:"patientId" json:"patientId"`
	Start     time.Time `bson:"start" json:"start"`
	End       time.Time `bson:"end" json:"end"`
	Status    string    `bson:"status" json:"status"`
	Type      string    `bson:"type" json:"type"`
	Reason    string    `bson:"reason,omitempty" json:"reason,omitempty"`
	Notes     string    `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Duration returns End - Start.
func (a Appointment) Duration() time.Duration {
	return a.End.Sub(a.Start)
}

// Committed reports whether the appointment occupies calendar time.
func (a Appointment) Committed() bool {
	return a.Status != StatusCancelled
}

// Interval validation errors.
var (
	ErrInvalidInterval    = errors.New("appointment end must be after start")
	ErrDurationOutOfRange = errors.New("appointment duration outside allowed range")
)

// ValidateInterval checks the interval invariants shared by create and reschedule.
func ValidateInterval(start, end time.Time) error {
	if !end.After(start) {
		return fmt.Errorf("%w: start=%s end=%s", ErrInvalidInterval,
			start.Format(time.RFC3339), end.Format(time.RFC3339))
	}
	d := end.Sub(start)
	if d < MinAppointmentDuration || d > MaxAppointmentDuration {
		return fmt.Errorf("%w: %s not in [%s, %s]", ErrDurationOutOfRange,
			d, MinAppointmentDuration, MaxAppointmentDuration)
	}
	return nil
}

// ValidStatus reports whether s is a known appointment status.
func ValidStatus(s string) bool {
	switch s {
	case StatusScheduled, StatusConfirmed, StatusInProgress, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// ValidType reports whether t is a known appointment type.
func ValidType(t string) bool {
	switch t {
	case TypeConsultation, TypeFollowUp, TypeProcedure, TypeEmergency:
		return true
	}
	return false
}

// CreateAppointmentRequest defines the payload for booking an appointment.
type CreateAppointmentRequest struct {
	DoctorID  int64     `json:"doctorId" binding:"required"`
	PatientID int64     `json:"patientId" binding:"required"`
	Start     time.Time `json:"start" binding:"required"`
	End       time.Time `json:"end" binding:"required"`
	Type      string    `json:"type" binding:"required"`
	Reason    string    `json:"reason,omitempty"`
}

// UpdateAppointmentRequest carries optional field updates.
type UpdateAppointmentRequest struct {
	Reason *string `json:"reason,omitempty"`
	Notes  *string `json:"notes,omitempty"`
	Type   *string `json:"type,omitempty"`
}
