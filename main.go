// File: clinicore/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clinicore/config"
	"clinicore/cron"
	"clinicore/database"
	appointmentRepoPkg "clinicore/database/repository/appointment"
	doctorRepoPkg "clinicore/database/repository/doctor"
	patientRepoPkg "clinicore/database/repository/patient"
	staffRepoPkg "clinicore/database/repository/staff"
	"clinicore/handlers"
	"clinicore/middleware"
	"clinicore/routes"
	"clinicore/services/appointment"
	"clinicore/services/doctor"
	"clinicore/services/notification"
	"clinicore/services/patient"
	"clinicore/services/scheduling"
	"clinicore/services/staff"
	"clinicore/services/tasks"
	"clinicore/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()
	utils.FirebaseInit()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	apptRepo := appointmentRepoPkg.NewMongoAppointmentRepo()
	docRepo := doctorRepoPkg.NewMongoDoctorRepo()
	patRepo := patientRepoPkg.NewMongoPatientRepo()
	stfRepo := staffRepoPkg.NewMongoStaffRepo()

	{
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := apptRepo.EnsureIndexes(ctx); err != nil {
			logger.Sugar().Warnf("main: failed to ensure appointment indexes: %v", err)
		}
		cancel()
	}

	// services.
	notificationService := &notification.DefaultNotificationService{
		Patients: patRepo,
	}
	reminderClient := tasks.NewReminderClient(patRepo, docRepo)

	schedulingService := &scheduling.DefaultSchedulingService{
		Appointments: apptRepo,
		Doctors:      docRepo,
		Gestures:     scheduling.NewRedisGestureStore(utils.GetGestureCacheClient()),
		Reminders:    reminderClient,
		Notification: notificationService,
		Cfg:          scheduling.FromAppConfig(),
	}
	appointmentService := &appointment.DefaultAppointmentService{
		Repo:      apptRepo,
		Doctors:   docRepo,
		Patients:  patRepo,
		Reminders: reminderClient,
		Notifier:  notificationService,
	}
	doctorService := &doctor.DefaultDoctorService{Repo: docRepo}
	patientService := &patient.DefaultPatientService{Repo: patRepo}
	staffService := &staff.DefaultStaffService{Repo: stfRepo}

	// Background workers.
	cron.InitReminderWorker(notificationService)
	cron.InitNoShowSweeper(apptRepo)

	// handlers.
	authHandler := handlers.NewAuthHandler(staffService)
	doctorHandler := handlers.NewDoctorHandler(doctorService)
	patientHandler := handlers.NewPatientHandler(patientService)
	appointmentHandler := handlers.NewAppointmentHandler(appointmentService, schedulingService)
	scheduleHandler := handlers.NewScheduleHandler(schedulingService)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		// Auth endpoints.
		RegisterStaffHandler:    authHandler.RegisterHandler,
		LoginStaffHandler:       authHandler.LoginHandler,
		StaffMeHandler:          authHandler.MeHandler,
		StaffDeviceTokenHandler: authHandler.RegisterDeviceTokenHandler,

		// Doctor endpoints.
		CreateDoctorHandler:     doctorHandler.CreateHandler,
		GetDoctorHandler:        doctorHandler.GetHandler,
		ListDoctorsHandler:      doctorHandler.ListHandler,
		UpdateDoctorHandler:     doctorHandler.UpdateHandler,
		DeactivateDoctorHandler: doctorHandler.DeactivateHandler,

		// Patient endpoints.
		CreatePatientHandler:      patientHandler.CreateHandler,
		GetPatientHandler:         patientHandler.GetHandler,
		ListPatientsHandler:       patientHandler.ListHandler,
		UpdatePatientHandler:      patientHandler.UpdateHandler,
		PatientDeviceTokenHandler: patientHandler.RegisterDeviceTokenHandler,
		DeletePatientHandler:      patientHandler.DeleteHandler,

		// Appointment endpoints.
		CreateAppointmentHandler:       appointmentHandler.CreateHandler,
		GetAppointmentHandler:          appointmentHandler.GetHandler,
		ListDoctorAppointmentsHandler:  appointmentHandler.ListByDoctorHandler,
		ListPatientAppointmentsHandler: appointmentHandler.ListByPatientHandler,
		UpdateAppointmentHandler:       appointmentHandler.UpdateHandler,
		TransitionAppointmentHandler:   appointmentHandler.TransitionHandler,
		DeleteAppointmentHandler:       appointmentHandler.DeleteHandler,

		// Schedule endpoints.
		DayViewHandler:       scheduleHandler.DayViewHandler,
		CheckConflictHandler: scheduleHandler.CheckConflictHandler,
		SuggestSlotsHandler:  scheduleHandler.SuggestSlotsHandler,
		BeginGestureHandler:  scheduleHandler.BeginGestureHandler,
		UpdateGestureHandler: scheduleHandler.UpdateGestureHandler,
		CommitGestureHandler: scheduleHandler.CommitGestureHandler,
		CancelGestureHandler: scheduleHandler.CancelGestureHandler,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
