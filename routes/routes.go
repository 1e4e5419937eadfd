package routes

import (
	"net/http"
	"time"

	"clinicore/handlers"
	"clinicore/middleware"
	"clinicore/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers staff registration and login endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/staff")
	{
		api.POST("/register", hb.RegisterStaffHandler)
		api.POST("/login", hb.LoginStaffHandler)

		// Protected routes (Require Authentication)
		api.Use(middleware.StaffAuthMiddleware())
		api.GET("/me", hb.StaffMeHandler)
		api.POST("/device-token", hb.StaffDeviceTokenHandler)
	}
}

// RegisterDoctorRoutes registers doctor profile endpoints.
func RegisterDoctorRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/doctors")
	api.Use(middleware.StaffAuthMiddleware())
	{
		api.GET("", hb.ListDoctorsHandler)
		api.GET("/:id", hb.GetDoctorHandler)

		// Profile changes are an admin concern.
		admin := api.Group("")
		admin.Use(middleware.RequireRole(models.RoleAdmin))
		admin.POST("", hb.CreateDoctorHandler)
		admin.PATCH("/:id", hb.UpdateDoctorHandler)
		admin.DELETE("/:id", hb.DeactivateDoctorHandler)
	}
}

// RegisterPatientRoutes registers patient record endpoints.
func RegisterPatientRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/patients")
	api.Use(middleware.StaffAuthMiddleware())
	{
		api.POST("", hb.CreatePatientHandler)
		api.GET("", hb.ListPatientsHandler)
		api.GET("/:id", hb.GetPatientHandler)
		api.PATCH("/:id", hb.UpdatePatientHandler)
		api.POST("/:id/device-token", hb.PatientDeviceTokenHandler)

		admin := api.Group("")
		admin.Use(middleware.RequireRole(models.RoleAdmin))
		admin.DELETE("/:id", hb.DeletePatientHandler)
	}
}

// RegisterAppointmentRoutes registers appointment CRUD and lifecycle endpoints.
func RegisterAppointmentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/appointments")
	api.Use(middleware.StaffAuthMiddleware())
	{
		api.POST("", hb.CreateAppointmentHandler)
		api.GET("/:id", hb.GetAppointmentHandler)
		api.GET("/doctor/:doctorID", hb.ListDoctorAppointmentsHandler)
		api.GET("/patient/:patientID", hb.ListPatientAppointmentsHandler)
		api.PATCH("/:id", hb.UpdateAppointmentHandler)
		api.PUT("/:id/status", hb.TransitionAppointmentHandler)

		admin := api.Group("")
		admin.Use(middleware.RequireRole(models.RoleAdmin))
		admin.DELETE("/:id", hb.DeleteAppointmentHandler)
	}
}

// RegisterScheduleRoutes sets up the endpoints for the scheduling engine:
// day views, conflict checks, suggestions and the gesture lifecycle.
func RegisterScheduleRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	scheduleGroup := r.Group("/api/schedule")
	scheduleGroup.Use(middleware.StaffAuthMiddleware())
	{
		scheduleGroup.GET("/day/:doctorID", hb.DayViewHandler)
		scheduleGroup.POST("/conflicts", hb.CheckConflictHandler)
		scheduleGroup.GET("/suggestions", hb.SuggestSlotsHandler)

		scheduleGroup.POST("/gesture", hb.BeginGestureHandler)
		scheduleGroup.PUT("/gesture/:sessionID", hb.UpdateGestureHandler)
		scheduleGroup.POST("/gesture/:sessionID/commit", hb.CommitGestureHandler)
		scheduleGroup.DELETE("/gesture/:sessionID", hb.CancelGestureHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Clinicore"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAuthRoutes(r, hb)
	RegisterDoctorRoutes(r, hb)
	RegisterPatientRoutes(r, hb)
	RegisterAppointmentRoutes(r, hb)
	RegisterScheduleRoutes(r, hb)
	RegisterHealthRoute(r)
}
