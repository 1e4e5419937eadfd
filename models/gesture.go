package models

import "time"

// Gesture modes.
const (
	GestureMove         = "move"
	GestureResizeTop    = "resize_top"
	GestureResizeBottom = "resize_bottom"
)

// Gesture states.
const (
	GestureActive     = "active"
	GestureCommitting = "committing"
)

// GestureSession is the transient state of one drag or resize interaction.
// It lives only in Redis under a TTL; there is no Idle record — absence of a
// session is the idle state, so resizing without a captured original cannot
// be represented. OriginalStart/OriginalEnd are captured once at gesture
// start and never change; the candidate is recomputed from them on every
// update using the cumulative delta.
type GestureSession struct {
	ID             string    `json:"id"`
	AppointmentID  int64     `json:"appointmentId"`
	DoctorID       int64     `json:"doctorId"`
	Mode           string    `json:"mode"`
	State          string    `json:"state"`
	OriginalStart  time.Time `json:"originalStart"`
	OriginalEnd    time.Time `json:"originalEnd"`
	CandidateStart time.Time `json:"candidateStart"`
	CandidateEnd   time.Time `json:"candidateEnd"`
	Generation     int64     `json:"generation"`
	CreatedAt      time.Time `json:"createdAt"`
}

// BeginGestureRequest starts a drag or resize on an appointment.
type BeginGestureRequest struct {
	AppointmentID int64  `json:"appointmentId" binding:"required"`
	Mode          string `json:"mode" binding:"required"`
}

// UpdateGestureRequest carries the cumulative pointer delta since gesture
// start. DeltaPixels is converted to minutes through PixelsPerMinute and
// snapped to the slot grid; DayOffset shifts the calendar date under a move
// while the time of day stays with the original.
type UpdateGestureRequest struct {
	DeltaPixels     float64 `json:"deltaPixels"`
	PixelsPerMinute float64 `json:"pixelsPerMinute"`
	DayOffset       int     `json:"dayOffset,omitempty"`
}

// GestureUpdateResult is returned after each gesture update: the current
// candidate plus an advisory conflict result stamped with the session
// generation it was computed for.
type GestureUpdateResult struct {
	Session  GestureSession `json:"session"`
	Conflict ConflictResult `json:"conflict"`
	Reverted bool           `json:"reverted,omitempty"`
}

// CommitResult reports the outcome of committing a gesture. On persistence
// failure Authoritative carries the appointment re-read from the database so
// callers can resynchronize instead of guessing at rollback.
type CommitResult struct {
	Appointment   *Appointment `json:"appointment,omitempty"`
	Authoritative *Appointment `json:"authoritative,omitempty"`
}
