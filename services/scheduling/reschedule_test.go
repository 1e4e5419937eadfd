package scheduling

import (
	"context"
	"errors"
	"testing"
	"time"

	"clinicore/models"
)

type recordingReminder struct {
	rescheduled []int64
}

func (r *recordingReminder) RescheduleReminder(ctx context.Context, appt models.Appointment) error {
	r.rescheduled = append(r.rescheduled, appt.ID)
	return nil
}

func newGestureService(repo *fakeAppointmentRepo) (*DefaultSchedulingService, *memGestureStore, *recordingReminder) {
	store := newMemGestureStore()
	reminders := &recordingReminder{}
	svc := &DefaultSchedulingService{
		Appointments: repo,
		Gestures:     store,
		Reminders:    reminders,
		Cfg:          testConfig(),
		Now:          func() time.Time { return at(0, 8, 0) },
	}
	return svc, store, reminders
}

func TestBeginGesture(t *testing.T) {
	ctx := context.Background()
	repo := newFakeAppointmentRepo(
		appt(1, 1, at(0, 9, 0), at(0, 10, 0), models.StatusScheduled),
		appt(2, 1, at(0, 11, 0), at(0, 12, 0), models.StatusCompleted),
	)
	svc, _, _ := newGestureService(repo)

	t.Run("captures the original interval", func(t *testing.T) {
		session, err := svc.BeginGesture(ctx, models.BeginGestureRequest{AppointmentID: 1, Mode: models.GestureMove})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if session.State != models.GestureActive {
			t.Errorf("state = %q, want active", session.State)
		}
		if !session.OriginalStart.Equal(at(0, 9, 0)) || !session.OriginalEnd.Equal(at(0, 10, 0)) {
			t.Errorf("original interval not captured: %v", session)
		}
		if !session.CandidateStart.Equal(session.OriginalStart) || !session.CandidateEnd.Equal(session.OriginalEnd) {
			t.Errorf("candidate should start equal to original: %v", session)
		}
		if session.Generation != 0 {
			t.Errorf("generation = %d, want 0", session.Generation)
		}
	})

	t.Run("unknown mode", func(t *testing.T) {
		if _, err := svc.BeginGesture(ctx, models.BeginGestureRequest{AppointmentID: 1, Mode: "wiggle"}); !errors.Is(err, ErrUnknownGestureMode) {
			t.Errorf("got %v, want ErrUnknownGestureMode", err)
		}
	})

	t.Run("missing appointment", func(t *testing.T) {
		if _, err := svc.BeginGesture(ctx, models.BeginGestureRequest{AppointmentID: 99, Mode: models.GestureMove}); !errors.Is(err, ErrAppointmentNotFound) {
			t.Errorf("got %v, want ErrAppointmentNotFound", err)
		}
	})

	t.Run("completed appointment is not reschedulable", func(t *testing.T) {
		if _, err := svc.BeginGesture(ctx, models.BeginGestureRequest{AppointmentID: 2, Mode: models.GestureMove}); !errors.Is(err, ErrNotReschedulable) {
			t.Errorf("got %v, want ErrNotReschedulable", err)
		}
	})
}

func TestUpdateGestureMove(t *testing.T) {
	ctx := context.Background()
	repo := newFakeAppointmentRepo(
		appt(1, 1, at(0, 9, 0), at(0, 10, 0), models.StatusScheduled),
		appt(2, 1, at(0, 11, 0), at(0, 12, 0), models.StatusScheduled),
	)
	svc, _, _ := newGestureService(repo)

	session, err := svc.BeginGesture(ctx, models.BeginGestureRequest{AppointmentID: 1, Mode: models.GestureMove})
	if err != nil {
		t.Fatalf("begin: %v", err)
	}

	t.Run("pixel delta converts and snaps to the grid", func(t *testing.T) {
		// 64 px at 2 px/min = 32 min, snapped to 30.
		result, err := svc.UpdateGesture(ctx, session.ID, models.UpdateGestureRequest{DeltaPixels: 64, PixelsPerMinute: 2})
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if !result.Session.CandidateStart.Equal(at(0, 9, 30)) || !result.Session.CandidateEnd.Equal(at(0, 10, 30)) {
			t.Errorf("candidate = [%v, %v), want [9:30, 10:30)", result.Session.CandidateStart, result.Session.CandidateEnd)
		}
		if result.Reverted {
			t.Error("in-bounds move must not revert")
		}
		if result.Conflict.Generation != result.Session.Generation {
			t.Errorf("conflict generation %d != session generation %d", result.Conflict.Generation, result.Session.Generation)
		}
	})

	t.Run("cumulative delta recomputes from the original", func(t *testing.T) {
		// A second update is absolute, not additive: +15 min from the original.
		result, err := svc.UpdateGesture(ctx, session.ID, models.UpdateGestureRequest{DeltaPixels: 15})
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if !result.Session.CandidateStart.Equal(at(0, 9, 15)) {
			t.Errorf("candidate start = %v, want 9:15", result.Session.CandidateStart)
		}
	})

	t.Run("day offset keeps time of day and duration", func(t *testing.T) {
		result, err := svc.UpdateGesture(ctx, session.ID, models.UpdateGestureRequest{DayOffset: 2})
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if !result.Session.CandidateStart.Equal(at(2, 9, 0)) || !result.Session.CandidateEnd.Equal(at(2, 10, 0)) {
			t.Errorf("candidate = [%v, %v), want same time two days later", result.Session.CandidateStart, result.Session.CandidateEnd)
		}
	})

	t.Run("advisory conflict is flagged but not blocking", func(t *testing.T) {
		// Move onto appointment 2 at 11:00.
		result, err := svc.UpdateGesture(ctx, session.ID, models.UpdateGestureRequest{DeltaPixels: 120})
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if !result.Conflict.HasConflict || len(result.Conflict.Conflicts) != 1 || result.Conflict.Conflicts[0].ID != 2 {
			t.Errorf("expected advisory conflict with appointment 2, got %+v", result.Conflict)
		}
	})

	t.Run("generations increase monotonically", func(t *testing.T) {
		first, err := svc.UpdateGesture(ctx, session.ID, models.UpdateGestureRequest{DeltaPixels: 15})
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		second, err := svc.UpdateGesture(ctx, session.ID, models.UpdateGestureRequest{DeltaPixels: 30})
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if second.Session.Generation != first.Session.Generation+1 {
			t.Errorf("generations %d then %d, want +1", first.Session.Generation, second.Session.Generation)
		}
	})

	t.Run("unknown session", func(t *testing.T) {
		if _, err := svc.UpdateGesture(ctx, "nope", models.UpdateGestureRequest{}); !errors.Is(err, ErrGestureNotFound) {
			t.Errorf("got %v, want ErrGestureNotFound", err)
		}
	})
}

func TestUpdateGestureResize(t *testing.T) {
	ctx := context.Background()
	repo := newFakeAppointmentRepo(
		appt(1, 1, at(0, 9, 0), at(0, 10, 0), models.StatusScheduled),
	)
	svc, _, _ := newGestureService(repo)

	t.Run("resize bottom extends the end only", func(t *testing.T) {
		session, _ := svc.BeginGesture(ctx, models.BeginGestureRequest{AppointmentID: 1, Mode: models.GestureResizeBottom})
		result, err := svc.UpdateGesture(ctx, session.ID, models.UpdateGestureRequest{DeltaPixels: 30})
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if !result.Session.CandidateStart.Equal(at(0, 9, 0)) || !result.Session.CandidateEnd.Equal(at(0, 10, 30)) {
			t.Errorf("candidate = [%v, %v), want [9:00, 10:30)", result.Session.CandidateStart, result.Session.CandidateEnd)
		}
	})

	t.Run("resize top moves the start only", func(t *testing.T) {
		session, _ := svc.BeginGesture(ctx, models.BeginGestureRequest{AppointmentID: 1, Mode: models.GestureResizeTop})
		result, err := svc.UpdateGesture(ctx, session.ID, models.UpdateGestureRequest{DeltaPixels: 15})
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if !result.Session.CandidateStart.Equal(at(0, 9, 15)) || !result.Session.CandidateEnd.Equal(at(0, 10, 0)) {
			t.Errorf("candidate = [%v, %v), want [9:15, 10:00)", result.Session.CandidateStart, result.Session.CandidateEnd)
		}
	})

	t.Run("shrinking below the minimum reverts to the last valid candidate", func(t *testing.T) {
		session, _ := svc.BeginGesture(ctx, models.BeginGestureRequest{AppointmentID: 1, Mode: models.GestureResizeBottom})

		// First a valid shrink to 30 minutes.
		result, err := svc.UpdateGesture(ctx, session.ID, models.UpdateGestureRequest{DeltaPixels: -30})
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if result.Reverted {
			t.Fatal("30-minute appointment is within bounds")
		}

		// Then an attempt to collapse the interval entirely.
		result, err = svc.UpdateGesture(ctx, session.ID, models.UpdateGestureRequest{DeltaPixels: -60})
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if !result.Reverted {
			t.Error("expected revert flag for zero-length resize")
		}
		if !result.Session.CandidateEnd.Equal(at(0, 9, 30)) {
			t.Errorf("candidate end = %v, want last valid 9:30", result.Session.CandidateEnd)
		}
	})
}

func TestCancelGesture(t *testing.T) {
	ctx := context.Background()
	repo := newFakeAppointmentRepo(
		appt(1, 1, at(0, 9, 0), at(0, 10, 0), models.StatusScheduled),
	)
	svc, store, _ := newGestureService(repo)

	session, _ := svc.BeginGesture(ctx, models.BeginGestureRequest{AppointmentID: 1, Mode: models.GestureMove})
	if _, err := svc.UpdateGesture(ctx, session.ID, models.UpdateGestureRequest{DeltaPixels: 60}); err != nil {
		t.Fatalf("update: %v", err)
	}

	if err := svc.CancelGesture(ctx, session.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if _, err := store.Get(ctx, session.ID); !errors.Is(err, ErrGestureNotFound) {
		t.Error("session should be gone after cancel")
	}

	// The appointment is untouched.
	a, _ := repo.GetByID(ctx, 1)
	if !a.Start.Equal(at(0, 9, 0)) || !a.End.Equal(at(0, 10, 0)) {
		t.Errorf("cancel must not touch the appointment, got [%v, %v)", a.Start, a.End)
	}

	if err := svc.CancelGesture(ctx, "nope"); !errors.Is(err, ErrGestureNotFound) {
		t.Errorf("got %v, want ErrGestureNotFound", err)
	}
}

func TestCommitGesture(t *testing.T) {
	ctx := context.Background()

	t.Run("persists the candidate and reschedules the reminder", func(t *testing.T) {
		repo := newFakeAppointmentRepo(
			appt(1, 1, at(0, 9, 0), at(0, 10, 0), models.StatusScheduled),
		)
		svc, store, reminders := newGestureService(repo)

		session, _ := svc.BeginGesture(ctx, models.BeginGestureRequest{AppointmentID: 1, Mode: models.GestureMove})
		if _, err := svc.UpdateGesture(ctx, session.ID, models.UpdateGestureRequest{DeltaPixels: 60}); err != nil {
			t.Fatalf("update: %v", err)
		}

		result, err := svc.CommitGesture(ctx, session.ID)
		if err != nil {
			t.Fatalf("commit: %v", err)
		}
		if !result.Appointment.Start.Equal(at(0, 10, 0)) || !result.Appointment.End.Equal(at(0, 11, 0)) {
			t.Errorf("committed interval [%v, %v), want [10:00, 11:00)", result.Appointment.Start, result.Appointment.End)
		}
		if _, err := store.Get(ctx, session.ID); !errors.Is(err, ErrGestureNotFound) {
			t.Error("session should be cleared after commit")
		}
		if len(reminders.rescheduled) != 1 || reminders.rescheduled[0] != 1 {
			t.Errorf("reminder not rescheduled: %v", reminders.rescheduled)
		}
	})

	t.Run("rejects a candidate that starts in the past", func(t *testing.T) {
		repo := newFakeAppointmentRepo(
			appt(1, 1, at(0, 9, 0), at(0, 10, 0), models.StatusScheduled),
		)
		svc, _, _ := newGestureService(repo)
		svc.Now = func() time.Time { return at(0, 12, 0) }

		session, _ := svc.BeginGesture(ctx, models.BeginGestureRequest{AppointmentID: 1, Mode: models.GestureMove})
		if _, err := svc.CommitGesture(ctx, session.ID); !errors.Is(err, ErrPastStart) {
			t.Errorf("got %v, want ErrPastStart", err)
		}
	})

	t.Run("authoritative conflict blocks the commit", func(t *testing.T) {
		repo := newFakeAppointmentRepo(
			appt(1, 1, at(0, 9, 0), at(0, 10, 0), models.StatusScheduled),
			appt(2, 1, at(0, 10, 0), at(0, 11, 0), models.StatusScheduled),
		)
		svc, _, _ := newGestureService(repo)

		session, _ := svc.BeginGesture(ctx, models.BeginGestureRequest{AppointmentID: 1, Mode: models.GestureMove})
		if _, err := svc.UpdateGesture(ctx, session.ID, models.UpdateGestureRequest{DeltaPixels: 30}); err != nil {
			t.Fatalf("update: %v", err)
		}
		if _, err := svc.CommitGesture(ctx, session.ID); !errors.Is(err, ErrOverlappingAppointment) {
			t.Errorf("got %v, want ErrOverlappingAppointment", err)
		}

		// The appointment keeps its stored interval.
		a, _ := repo.GetByID(ctx, 1)
		if !a.Start.Equal(at(0, 9, 0)) {
			t.Errorf("blocked commit must not move the appointment, start = %v", a.Start)
		}
	})

	t.Run("write failure returns the authoritative record", func(t *testing.T) {
		repo := newFakeAppointmentRepo(
			appt(1, 1, at(0, 9, 0), at(0, 10, 0), models.StatusScheduled),
		)
		svc, store, _ := newGestureService(repo)

		session, _ := svc.BeginGesture(ctx, models.BeginGestureRequest{AppointmentID: 1, Mode: models.GestureMove})
		if _, err := svc.UpdateGesture(ctx, session.ID, models.UpdateGestureRequest{DeltaPixels: 60}); err != nil {
			t.Fatalf("update: %v", err)
		}
		repo.failUpdateTimes = true

		result, err := svc.CommitGesture(ctx, session.ID)
		if err == nil {
			t.Fatal("expected error from failed persist")
		}
		if result == nil || result.Authoritative == nil {
			t.Fatal("expected authoritative record alongside the error")
		}
		if !result.Authoritative.Start.Equal(at(0, 9, 0)) {
			t.Errorf("authoritative start = %v, want the stored 9:00", result.Authoritative.Start)
		}
		if _, err := store.Get(ctx, session.ID); !errors.Is(err, ErrGestureNotFound) {
			t.Error("session should be discarded after a failed commit")
		}
	})
}
