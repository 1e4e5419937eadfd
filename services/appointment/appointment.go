package appointment

import (
	"context"
	"fmt"
	"time"

	appointmentRepo "clinicore/database/repository/appointment"
	doctorRepo "clinicore/database/repository/doctor"
	patientRepo "clinicore/database/repository/patient"
	"clinicore/models"
	"clinicore/utils"

	"go.uber.org/zap"
)

// AppointmentService manages the booking lifecycle outside of gestures:
// create, lookup, field updates and status transitions.
type AppointmentService interface {
	Create(ctx context.Context, req models.CreateAppointmentRequest) (*models.Appointment, error)
	GetByID(ctx context.Context, id int64) (*models.Appointment, error)
	ListByDoctor(ctx context.Context, doctorID int64, from, to time.Time) ([]models.Appointment, error)
	ListByPatient(ctx context.Context, patientID int64) ([]models.Appointment, error)
	Update(ctx context.Context, id int64, req models.UpdateAppointmentRequest) (*models.Appointment, error)
	Transition(ctx context.Context, id int64, status string) (*models.Appointment, error)
	Delete(ctx context.Context, id int64) error
}

// ReminderScheduler queues the pre-visit reminder after a booking lands.
type ReminderScheduler interface {
	ScheduleReminder(ctx context.Context, appt models.Appointment) error
}

// Notifier pushes a booking confirmation to the patient.
type Notifier interface {
	NotifyConfirmed(ctx context.Context, appt models.Appointment) error
}

// DefaultAppointmentService is the production implementation.
type DefaultAppointmentService struct {
	Repo      appointmentRepo.AppointmentRepository
	Doctors   doctorRepo.DoctorRepository
	Patients  patientRepo.PatientRepository
	Reminders ReminderScheduler
	Notifier  Notifier
}

// transitions maps each status to the statuses it may move to.
var transitions = map[string][]string{
	models.StatusScheduled:  {models.StatusConfirmed, models.StatusCancelled, models.StatusNoShow},
	models.StatusConfirmed:  {models.StatusInProgress, models.StatusCancelled, models.StatusNoShow},
	models.StatusInProgress: {models.StatusCompleted},
}

func transitionAllowed(from, to string) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Create validates the request, rejects overlapping bookings for the doctor
// and persists the appointment. Reminder scheduling and the confirmation
// push are best-effort follow-ups.
func (s *DefaultAppointmentService) Create(ctx context.Context, req models.CreateAppointmentRequest) (*models.Appointment, error) {
	if err := models.ValidateInterval(req.Start, req.End); err != nil {
		return nil, err
	}
	if !models.ValidType(req.Type) {
		return nil, ErrInvalidType
	}
	if req.Start.Before(time.Now()) {
		return nil, ErrPastStart
	}
	if _, err := s.Doctors.GetByID(ctx, req.DoctorID); err != nil {
		return nil, ErrDoctorNotFound
	}
	if _, err := s.Patients.GetByID(ctx, req.PatientID); err != nil {
		return nil, ErrPatientNotFound
	}

	conflicts, err := s.Repo.ListCommittedOverlapping(ctx, req.DoctorID, req.Start, req.End, 0)
	if err != nil {
		return nil, fmt.Errorf("check overlap: %w", err)
	}
	if len(conflicts) > 0 {
		return nil, ErrOverlappingBooking
	}

	appt := &models.Appointment{
		DoctorID:  req.DoctorID,
		PatientID: req.PatientID,
		Start:     req.Start.UTC(),
		End:       req.End.UTC(),
		Status:    models.StatusScheduled,
		Type:      req.Type,
		Reason:    req.Reason,
	}
	if err := s.Repo.Create(ctx, appt); err != nil {
		return nil, fmt.Errorf("create appointment: %w", err)
	}

	logger := utils.GetLogger()
	if s.Reminders != nil {
		if err := s.Reminders.ScheduleReminder(ctx, *appt); err != nil {
			logger.Warn("failed to schedule reminder", zap.Int64("appointmentID", appt.ID), zap.Error(err))
		}
	}
	if s.Notifier != nil {
		go func(a models.Appointment) {
			if err := s.Notifier.NotifyConfirmed(context.Background(), a); err != nil {
				logger.Warn("failed to send confirmation push", zap.Int64("appointmentID", a.ID), zap.Error(err))
			}
		}(*appt)
	}
	return appt, nil
}

func (s *DefaultAppointmentService) GetByID(ctx context.Context, id int64) (*models.Appointment, error) {
	appt, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	return appt, nil
}

func (s *DefaultAppointmentService) ListByDoctor(ctx context.Context, doctorID int64, from, to time.Time) ([]models.Appointment, error) {
	return s.Repo.ListByDoctorAndRange(ctx, doctorID, from, to)
}

func (s *DefaultAppointmentService) ListByPatient(ctx context.Context, patientID int64) ([]models.Appointment, error) {
	return s.Repo.ListByPatient(ctx, patientID)
}

func (s *DefaultAppointmentService) Update(ctx context.Context, id int64, req models.UpdateAppointmentRequest) (*models.Appointment, error) {
	if req.Type != nil && !models.ValidType(*req.Type) {
		return nil, ErrInvalidType
	}
	appt, err := s.Repo.UpdateFields(ctx, id, req)
	if err != nil {
		return nil, ErrNotFound
	}
	return appt, nil
}

// Transition applies a status change after checking it against the lifecycle map.
func (s *DefaultAppointmentService) Transition(ctx context.Context, id int64, status string) (*models.Appointment, error) {
	if !models.ValidStatus(status) {
		return nil, ErrInvalidTransition
	}
	current, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	if !transitionAllowed(current.Status, status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.Status, status)
	}
	return s.Repo.UpdateStatus(ctx, id, status)
}

func (s *DefaultAppointmentService) Delete(ctx context.Context, id int64) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return ErrNotFound
	}
	return nil
}
