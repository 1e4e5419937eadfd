// File: clinicore/handlers/bundle.go
package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Auth endpoints
	RegisterStaffHandler    gin.HandlerFunc
	LoginStaffHandler       gin.HandlerFunc
	StaffMeHandler          gin.HandlerFunc
	StaffDeviceTokenHandler gin.HandlerFunc

	// Doctor endpoints
	CreateDoctorHandler     gin.HandlerFunc
	GetDoctorHandler        gin.HandlerFunc
	ListDoctorsHandler      gin.HandlerFunc
	UpdateDoctorHandler     gin.HandlerFunc
	DeactivateDoctorHandler gin.HandlerFunc

	// Patient endpoints
	CreatePatientHandler      gin.HandlerFunc
	GetPatientHandler         gin.HandlerFunc
	ListPatientsHandler       gin.HandlerFunc
	UpdatePatientHandler      gin.HandlerFunc
	PatientDeviceTokenHandler gin.HandlerFunc
	DeletePatientHandler      gin.HandlerFunc

	// Appointment endpoints
	CreateAppointmentHandler       gin.HandlerFunc
	GetAppointmentHandler          gin.HandlerFunc
	ListDoctorAppointmentsHandler  gin.HandlerFunc
	ListPatientAppointmentsHandler gin.HandlerFunc
	UpdateAppointmentHandler       gin.HandlerFunc
	TransitionAppointmentHandler   gin.HandlerFunc
	DeleteAppointmentHandler       gin.HandlerFunc

	// Schedule endpoints
	DayViewHandler       gin.HandlerFunc
	CheckConflictHandler gin.HandlerFunc
	SuggestSlotsHandler  gin.HandlerFunc
	BeginGestureHandler  gin.HandlerFunc
	UpdateGestureHandler gin.HandlerFunc
	CommitGestureHandler gin.HandlerFunc
	CancelGestureHandler gin.HandlerFunc
}
