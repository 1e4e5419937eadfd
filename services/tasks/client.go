package tasks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clinicore/config"
	doctorRepo "clinicore/database/repository/doctor"
	patientRepo "clinicore/database/repository/patient"
	"clinicore/models"
	"clinicore/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func reminderTaskID(appointmentID int64) string {
	return fmt.Sprintf("reminder:%d", appointmentID)
}

// ReminderClient enqueues appointment reminder tasks on the asynq queue.
type ReminderClient struct {
	Client   *asynq.Client
	Patients patientRepo.PatientRepository
	Doctors  doctorRepo.DoctorRepository
	Lead     time.Duration
}

// NewReminderClient builds a ReminderClient against the configured Redis queue.
func NewReminderClient(patients patientRepo.PatientRepository, doctors doctorRepo.DoctorRepository) *ReminderClient {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	}
	return &ReminderClient{
		Client:   asynq.NewClient(redisOpts),
		Patients: patients,
		Doctors:  doctors,
		Lead:     time.Duration(config.AppConfig.ReminderLeadHours) * time.Hour,
	}
}

// ScheduleReminder enqueues a reminder to fire one lead interval before the
// appointment starts. Appointments starting inside the lead window get no
// reminder.
func (c *ReminderClient) ScheduleReminder(ctx context.Context, appt models.Appointment) error {
	fireAt := appt.Start.Add(-c.Lead)
	if !fireAt.After(time.Now()) {
		return nil
	}

	patient, err := c.Patients.GetByID(ctx, appt.PatientID)
	if err != nil {
		return fmt.Errorf("reminder: fetch patient %d: %w", appt.PatientID, err)
	}
	doctor, err := c.Doctors.GetByID(ctx, appt.DoctorID)
	if err != nil {
		return fmt.Errorf("reminder: fetch doctor %d: %w", appt.DoctorID, err)
	}

	payload := models.ReminderPayload{
		AppointmentID: appt.ID,
		PatientID:     patient.ID,
		DoctorName:    doctor.Name,
		PatientName:   patient.Name,
		Start:         appt.Start.Format(time.RFC3339),
		DeviceTokens:  patient.DeviceTokens,
	}
	task, opts, err := NewReminderTask(payload, fireAt)
	if err != nil {
		return fmt.Errorf("reminder: build task: %w", err)
	}

	if _, err := c.Client.EnqueueContext(ctx, task, opts...); err != nil {
		if errors.Is(err, asynq.ErrTaskIDConflict) {
			// A reminder for this appointment is already queued; replace it.
			return c.replaceReminder(ctx, appt.ID, task, opts)
		}
		return fmt.Errorf("reminder: enqueue: %w", err)
	}
	return nil
}

// RescheduleReminder drops any pending reminder for the appointment and
// queues a fresh one for the new start time.
func (c *ReminderClient) RescheduleReminder(ctx context.Context, appt models.Appointment) error {
	return c.ScheduleReminder(ctx, appt)
}

func (c *ReminderClient) replaceReminder(ctx context.Context, appointmentID int64, task *asynq.Task, opts []asynq.Option) error {
	inspector := asynq.NewInspector(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})
	defer inspector.Close()

	if err := inspector.DeleteTask("default", reminderTaskID(appointmentID)); err != nil {
		utils.GetLogger().Warn("reminder: failed to delete stale task",
			zap.Int64("appointmentID", appointmentID), zap.Error(err))
	}
	if _, err := c.Client.EnqueueContext(ctx, task, opts...); err != nil {
		return fmt.Errorf("reminder: re-enqueue: %w", err)
	}
	return nil
}
