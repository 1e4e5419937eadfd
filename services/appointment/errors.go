package appointment

import "errors"

var (
	ErrNotFound           = errors.New("appointment not found")
	ErrDoctorNotFound     = errors.New("doctor not found")
	ErrPatientNotFound    = errors.New("patient not found")
	ErrOverlappingBooking = errors.New("requested time overlaps an existing appointment")
	ErrInvalidType        = errors.New("unknown appointment type")
	ErrInvalidTransition  = errors.New("invalid appointment status transition")
	ErrPastStart          = errors.New("appointment cannot start in the past")
)
