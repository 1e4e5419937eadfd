package scheduling

import (
	"context"
	"testing"

	"clinicore/models"
)

func TestDayView(t *testing.T) {
	ctx := context.Background()
	repo := newFakeAppointmentRepo(
		appt(1, 1, at(0, 9, 0), at(0, 10, 0), models.StatusScheduled),
		appt(2, 1, at(0, 9, 30), at(0, 10, 30), models.StatusConfirmed),
		appt(3, 1, at(0, 9, 45), at(0, 10, 15), models.StatusCancelled),
		appt(4, 2, at(0, 9, 0), at(0, 10, 0), models.StatusScheduled),
	)
	svc := &DefaultSchedulingService{Appointments: repo, Cfg: testConfig()}

	view, err := svc.DayView(ctx, 1, "2026-03-02")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Cancelled bookings and other doctors are filtered out.
	if len(view.Appointments) != 2 {
		t.Fatalf("got %d appointments, want 2: %v", len(view.Appointments), view.Appointments)
	}
	for _, a := range view.Appointments {
		if a.ID == 3 || a.DoctorID != 1 {
			t.Errorf("unexpected appointment in view: %+v", a)
		}
	}

	// The two remaining appointments overlap and share one two-column group.
	if len(view.Columns) != 2 {
		t.Fatalf("got %d column assignments, want 2: %v", len(view.Columns), view.Columns)
	}
	for _, c := range view.Columns {
		if c.ColumnCount != 2 {
			t.Errorf("appointment %d: column count %d, want 2", c.AppointmentID, c.ColumnCount)
		}
	}

	if _, err := svc.DayView(ctx, 1, "03/02/2026"); err == nil {
		t.Error("expected error for malformed date")
	}
}
