package scheduling

import "errors"

var (
	ErrAppointmentNotFound     = errors.New("appointment not found")
	ErrDoctorNotFound          = errors.New("doctor not found")
	ErrGestureNotFound         = errors.New("gesture session not found or expired")
	ErrGestureNotActive        = errors.New("gesture session is not active")
	ErrUnknownGestureMode      = errors.New("unknown gesture mode")
	ErrNotReschedulable        = errors.New("appointment cannot be rescheduled in its current status")
	ErrPastStart               = errors.New("appointment cannot be moved into the past")
	ErrDurationOutOfRange      = errors.New("appointment duration outside allowed range")
	ErrOverlappingAppointment  = errors.New("appointment overlaps an existing booking")
	ErrInvalidSuggestionParams = errors.New("invalid slot suggestion parameters")
)
