package scheduling

import (
	"context"
	"fmt"
	"math"
	"time"

	"clinicore/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// snapDelta rounds a raw minute delta to the nearest grid line.
func snapDelta(deltaMinutes float64, step time.Duration) time.Duration {
	stepMin := step.Minutes()
	snapped := math.Round(deltaMinutes/stepMin) * stepMin
	return time.Duration(snapped * float64(time.Minute))
}

// deltaMinutes converts the cumulative pointer delta to minutes. A
// non-positive scale means the client already sent minutes.
func deltaMinutes(req models.UpdateGestureRequest) float64 {
	if req.PixelsPerMinute <= 0 {
		return req.DeltaPixels
	}
	return req.DeltaPixels / req.PixelsPerMinute
}

// BeginGesture captures the appointment's current interval and opens an
// Active session. The original start/end never change for the life of the
// gesture; every later update recomputes the candidate from them.
func (s *DefaultSchedulingService) BeginGesture(ctx context.Context, req models.BeginGestureRequest) (*models.GestureSession, error) {
	switch req.Mode {
	case models.GestureMove, models.GestureResizeTop, models.GestureResizeBottom:
	default:
		return nil, ErrUnknownGestureMode
	}

	appt, err := s.Appointments.GetByID(ctx, req.AppointmentID)
	if err != nil {
		return nil, ErrAppointmentNotFound
	}
	switch appt.Status {
	case models.StatusScheduled, models.StatusConfirmed:
	default:
		return nil, ErrNotReschedulable
	}

	session := &models.GestureSession{
		ID:             uuid.New().String(),
		AppointmentID:  appt.ID,
		DoctorID:       appt.DoctorID,
		Mode:           req.Mode,
		State:          models.GestureActive,
		OriginalStart:  appt.Start,
		OriginalEnd:    appt.End,
		CandidateStart: appt.Start,
		CandidateEnd:   appt.End,
		Generation:     0,
		CreatedAt:      s.now().UTC(),
	}
	if err := s.Gestures.Save(ctx, session, s.Cfg.gestureTTL()); err != nil {
		return nil, err
	}
	return session, nil
}

// UpdateGesture recomputes the candidate interval from the gesture's
// original interval plus the snapped cumulative delta. Resize updates that
// would leave the duration outside bounds keep the last valid candidate and
// flag the result as reverted. Each update bumps the session generation;
// the advisory conflict result is stamped with it so a result computed for
// an older candidate can never be mistaken for the current one.
func (s *DefaultSchedulingService) UpdateGesture(ctx context.Context, sessionID string, req models.UpdateGestureRequest) (*models.GestureUpdateResult, error) {
	session, err := s.Gestures.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.State != models.GestureActive {
		return nil, ErrGestureNotActive
	}

	snapped := snapDelta(deltaMinutes(req), s.Cfg.step())
	duration := session.OriginalEnd.Sub(session.OriginalStart)

	var candStart, candEnd time.Time
	reverted := false
	switch session.Mode {
	case models.GestureMove:
		// Day moves shift only the calendar date; the time of day rides
		// with the original, then the snapped in-day delta applies.
		candStart = session.OriginalStart.AddDate(0, 0, req.DayOffset).Add(snapped)
		candEnd = candStart.Add(duration)
	case models.GestureResizeTop:
		candStart = session.OriginalStart.Add(snapped)
		candEnd = session.OriginalEnd
	case models.GestureResizeBottom:
		candStart = session.OriginalStart
		candEnd = session.OriginalEnd.Add(snapped)
	default:
		return nil, ErrUnknownGestureMode
	}

	if d := candEnd.Sub(candStart); d < models.MinAppointmentDuration || d > models.MaxAppointmentDuration {
		candStart, candEnd = session.CandidateStart, session.CandidateEnd
		reverted = true
	}

	session.CandidateStart = candStart
	session.CandidateEnd = candEnd
	session.Generation++
	if err := s.Gestures.Save(ctx, session, s.Cfg.gestureTTL()); err != nil {
		return nil, err
	}

	conflicts, err := s.Appointments.ListCommittedOverlapping(ctx, session.DoctorID, candStart, candEnd, session.AppointmentID)
	if err != nil {
		return nil, fmt.Errorf("advisory conflict check: %w", err)
	}

	return &models.GestureUpdateResult{
		Session: *session,
		Conflict: models.ConflictResult{
			HasConflict: len(conflicts) > 0,
			Conflicts:   conflicts,
			Generation:  session.Generation,
		},
		Reverted: reverted,
	}, nil
}

// CancelGesture discards the session without touching the appointment.
func (s *DefaultSchedulingService) CancelGesture(ctx context.Context, sessionID string) error {
	if _, err := s.Gestures.Get(ctx, sessionID); err != nil {
		return err
	}
	return s.Gestures.Delete(ctx, sessionID)
}

// CommitGesture validates the candidate, re-runs the authoritative conflict
// check and persists the new interval. Validation failures leave the
// appointment untouched. When the write itself fails the appointment is
// re-read and returned alongside the error so the caller can resynchronize;
// nothing is retried.
func (s *DefaultSchedulingService) CommitGesture(ctx context.Context, sessionID string) (*models.CommitResult, error) {
	session, err := s.Gestures.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.State != models.GestureActive {
		return nil, ErrGestureNotActive
	}

	candStart, candEnd := session.CandidateStart, session.CandidateEnd
	if candStart.Before(s.now()) {
		return nil, ErrPastStart
	}
	if d := candEnd.Sub(candStart); d < models.MinAppointmentDuration || d > models.MaxAppointmentDuration {
		return nil, ErrDurationOutOfRange
	}

	conflicts, err := s.Appointments.ListCommittedOverlapping(ctx, session.DoctorID, candStart, candEnd, session.AppointmentID)
	if err != nil {
		return nil, fmt.Errorf("commit conflict check: %w", err)
	}
	if len(conflicts) > 0 {
		return nil, ErrOverlappingAppointment
	}

	session.State = models.GestureCommitting
	if err := s.Gestures.Save(ctx, session, s.Cfg.gestureTTL()); err != nil {
		return nil, err
	}

	oldStart := session.OriginalStart
	appt, err := s.Appointments.UpdateTimes(ctx, session.AppointmentID, candStart, candEnd)
	if err != nil {
		authoritative, readErr := s.Appointments.GetByID(ctx, session.AppointmentID)
		if readErr != nil {
			s.logger().Error("commit failed and authoritative re-read failed",
				zap.Int64("appointmentID", session.AppointmentID), zap.Error(readErr))
		}
		_ = s.Gestures.Delete(ctx, sessionID)
		return &models.CommitResult{Authoritative: authoritative}, fmt.Errorf("persist reschedule: %w", err)
	}

	if err := s.Gestures.Delete(ctx, sessionID); err != nil {
		s.logger().Warn("failed to clear gesture session", zap.String("sessionID", sessionID), zap.Error(err))
	}

	if s.Reminders != nil {
		if err := s.Reminders.RescheduleReminder(ctx, *appt); err != nil {
			s.logger().Warn("failed to reschedule reminder", zap.Int64("appointmentID", appt.ID), zap.Error(err))
		}
	}
	if s.Notification != nil {
		go func(a models.Appointment, old time.Time) {
			if err := s.Notification.NotifyRescheduled(context.Background(), a, old); err != nil {
				s.logger().Warn("failed to send reschedule notification", zap.Int64("appointmentID", a.ID), zap.Error(err))
			}
		}(*appt, oldStart)
	}

	return &models.CommitResult{Appointment: appt}, nil
}
