package scheduling

import (
	"context"
	"fmt"
	"time"

	"clinicore/config"
	appointmentRepo "clinicore/database/repository/appointment"
	doctorRepo "clinicore/database/repository/doctor"
	"clinicore/models"
	"clinicore/utils"

	"go.uber.org/zap"
)

// Service exposes the scheduling core: day layout, advisory conflict checks,
// slot suggestions and the drag/resize gesture lifecycle.
type Service interface {
	DayView(ctx context.Context, doctorID int64, date string) (*models.DayView, error)
	CheckConflict(ctx context.Context, cand models.ConflictCandidate, excludeID int64) (*models.ConflictResult, error)
	SuggestSlots(ctx context.Context, doctorID int64, duration time.Duration, after time.Time, max int) ([]models.SuggestedSlot, error)
	BeginGesture(ctx context.Context, req models.BeginGestureRequest) (*models.GestureSession, error)
	UpdateGesture(ctx context.Context, sessionID string, req models.UpdateGestureRequest) (*models.GestureUpdateResult, error)
	CancelGesture(ctx context.Context, sessionID string) error
	CommitGesture(ctx context.Context, sessionID string) (*models.CommitResult, error)
}

// Config carries the scheduling knobs. Zero values fall back to the
// application defaults in FromAppConfig.
type Config struct {
	StepMinutes        int
	WorkdayStartMinute int
	WorkdayEndMinute   int
	SearchDays         int
	MaxSuggestions     int
	GestureTTL         time.Duration
}

// FromAppConfig builds the scheduling config from the loaded viper config.
func FromAppConfig() Config {
	return Config{
		StepMinutes:        config.AppConfig.SlotStepMinutes,
		WorkdayStartMinute: config.AppConfig.WorkdayStartMinute,
		WorkdayEndMinute:   config.AppConfig.WorkdayEndMinute,
		SearchDays:         config.AppConfig.SuggestionSearchDays,
		MaxSuggestions:     3,
		GestureTTL:         time.Duration(config.AppConfig.GestureTTLMinutes) * time.Minute,
	}
}

func (c Config) step() time.Duration {
	if c.StepMinutes <= 0 {
		return 15 * time.Minute
	}
	return time.Duration(c.StepMinutes) * time.Minute
}

func (c Config) searchDays() int {
	if c.SearchDays <= 0 {
		return 14
	}
	return c.SearchDays
}

func (c Config) gestureTTL() time.Duration {
	if c.GestureTTL <= 0 {
		return 10 * time.Minute
	}
	return c.GestureTTL
}

// ReminderScheduler re-schedules the reminder task after a committed move.
type ReminderScheduler interface {
	RescheduleReminder(ctx context.Context, appt models.Appointment) error
}

// Notifier pushes a reschedule notice to the affected patient.
type Notifier interface {
	NotifyRescheduled(ctx context.Context, appt models.Appointment, oldStart time.Time) error
}

// DefaultSchedulingService is the production implementation.
type DefaultSchedulingService struct {
	Appointments appointmentRepo.AppointmentRepository
	Doctors      doctorRepo.DoctorRepository
	Gestures     GestureStore
	Reminders    ReminderScheduler
	Notification Notifier
	Cfg          Config

	// Now is injectable for tests; nil means time.Now.
	Now func() time.Time
}

func (s *DefaultSchedulingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultSchedulingService) logger() *zap.Logger {
	return utils.GetLogger()
}

// DayView returns a doctor's appointments for one UTC day with their
// overlap groups flattened into column assignments, recomputed per call.
func (s *DefaultSchedulingService) DayView(ctx context.Context, doctorID int64, date string) (*models.DayView, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}
	from := day
	to := day.AddDate(0, 0, 1)

	appts, err := s.Appointments.ListByDoctorAndRange(ctx, doctorID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}

	committed := appts[:0:0]
	for _, a := range appts {
		if a.Committed() {
			committed = append(committed, a)
		}
	}

	groups := GroupOverlapping(committed)
	return &models.DayView{
		DoctorID:     doctorID,
		Date:         date,
		Appointments: committed,
		Columns:      AssignColumns(groups),
	}, nil
}

// workdayWindow resolves the working-hours bounds for a doctor, falling back
// to the configured clinic-wide defaults.
func (s *DefaultSchedulingService) workdayWindow(ctx context.Context, doctorID int64) (startMinute, endMinute int) {
	startMinute = s.Cfg.WorkdayStartMinute
	endMinute = s.Cfg.WorkdayEndMinute
	if startMinute <= 0 && endMinute <= 0 {
		startMinute, endMinute = 480, 1080
	}
	if s.Doctors == nil {
		return startMinute, endMinute
	}
	doc, err := s.Doctors.GetByID(ctx, doctorID)
	if err != nil {
		s.logger().Sugar().Debugf("workday window: doctor %d lookup failed: %v", doctorID, err)
		return startMinute, endMinute
	}
	if doc.WorkdayStartMinute > 0 || doc.WorkdayEndMinute > 0 {
		return doc.WorkdayStartMinute, doc.WorkdayEndMinute
	}
	return startMinute, endMinute
}
