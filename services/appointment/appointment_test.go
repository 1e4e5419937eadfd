package appointment

import (
	"context"
	"errors"
	"testing"
	"time"

	"clinicore/models"
)

type stubAppointmentRepo struct {
	nextID int64
	appts  map[int64]models.Appointment
}

func newStubAppointmentRepo(appts ...models.Appointment) *stubAppointmentRepo {
	r := &stubAppointmentRepo{appts: make(map[int64]models.Appointment)}
	for _, a := range appts {
		if a.ID > r.nextID {
			r.nextID = a.ID
		}
		r.appts[a.ID] = a
	}
	return r
}

func (r *stubAppointmentRepo) Create(ctx context.Context, appt *models.Appointment) error {
	r.nextID++
	appt.ID = r.nextID
	r.appts[appt.ID] = *appt
	return nil
}

func (r *stubAppointmentRepo) GetByID(ctx context.Context, id int64) (*models.Appointment, error) {
	a, ok := r.appts[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return &a, nil
}

func (r *stubAppointmentRepo) ListByDoctorAndRange(ctx context.Context, doctorID int64, from, to time.Time) ([]models.Appointment, error) {
	return nil, nil
}

func (r *stubAppointmentRepo) ListByPatient(ctx context.Context, patientID int64) ([]models.Appointment, error) {
	return nil, nil
}

func (r *stubAppointmentRepo) ListCommittedOverlapping(ctx context.Context, doctorID int64, start, end time.Time, excludeID int64) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, a := range r.appts {
		if a.DoctorID != doctorID || !a.Committed() {
			continue
		}
		if excludeID != 0 && a.ID == excludeID {
			continue
		}
		if a.Start.Before(end) && start.Before(a.End) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *stubAppointmentRepo) UpdateTimes(ctx context.Context, id int64, start, end time.Time) (*models.Appointment, error) {
	a, ok := r.appts[id]
	if !ok {
		return nil, errors.New("not found")
	}
	a.Start, a.End = start, end
	r.appts[id] = a
	return &a, nil
}

func (r *stubAppointmentRepo) UpdateStatus(ctx context.Context, id int64, status string) (*models.Appointment, error) {
	a, ok := r.appts[id]
	if !ok {
		return nil, errors.New("not found")
	}
	a.Status = status
	r.appts[id] = a
	return &a, nil
}

func (r *stubAppointmentRepo) UpdateFields(ctx context.Context, id int64, req models.UpdateAppointmentRequest) (*models.Appointment, error) {
	a, ok := r.appts[id]
	if !ok {
		return nil, errors.New("not found")
	}
	if req.Reason != nil {
		a.Reason = *req.Reason
	}
	if req.Notes != nil {
		a.Notes = *req.Notes
	}
	if req.Type != nil {
		a.Type = *req.Type
	}
	r.appts[id] = a
	return &a, nil
}

func (r *stubAppointmentRepo) MarkNoShows(ctx context.Context, before time.Time) (int64, error) {
	return 0, nil
}

func (r *stubAppointmentRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.appts[id]; !ok {
		return errors.New("not found")
	}
	delete(r.appts, id)
	return nil
}

func (r *stubAppointmentRepo) EnsureIndexes(ctx context.Context) error { return nil }

type stubDoctorRepo struct{ known map[int64]bool }

func (r *stubDoctorRepo) Create(ctx context.Context, doc *models.Doctor) error { return nil }
func (r *stubDoctorRepo) GetByID(ctx context.Context, id int64) (*models.Doctor, error) {
	if !r.known[id] {
		return nil, errors.New("not found")
	}
	return &models.Doctor{ID: id}, nil
}
func (r *stubDoctorRepo) List(ctx context.Context, activeOnly bool) ([]models.Doctor, error) {
	return nil, nil
}
func (r *stubDoctorRepo) Update(ctx context.Context, id int64, req models.UpdateDoctorRequest) (*models.Doctor, error) {
	return nil, errors.New("not implemented")
}
func (r *stubDoctorRepo) Delete(ctx context.Context, id int64) error { return nil }

type stubPatientRepo struct{ known map[int64]bool }

func (r *stubPatientRepo) Create(ctx context.Context, p *models.Patient) error { return nil }
func (r *stubPatientRepo) GetByID(ctx context.Context, id int64) (*models.Patient, error) {
	if !r.known[id] {
		return nil, errors.New("not found")
	}
	return &models.Patient{ID: id}, nil
}
func (r *stubPatientRepo) List(ctx context.Context, search string, limit int64) ([]models.Patient, error) {
	return nil, nil
}
func (r *stubPatientRepo) Update(ctx context.Context, id int64, req models.UpdatePatientRequest) (*models.Patient, error) {
	return nil, errors.New("not implemented")
}
func (r *stubPatientRepo) AddDeviceToken(ctx context.Context, id int64, token string) error {
	return nil
}
func (r *stubPatientRepo) Delete(ctx context.Context, id int64) error { return nil }

func futureAt(hour int) time.Time {
	return time.Now().UTC().AddDate(0, 1, 0).Truncate(24 * time.Hour).Add(time.Duration(hour) * time.Hour)
}

func newService(repo *stubAppointmentRepo) *DefaultAppointmentService {
	return &DefaultAppointmentService{
		Repo:     repo,
		Doctors:  &stubDoctorRepo{known: map[int64]bool{1: true}},
		Patients: &stubPatientRepo{known: map[int64]bool{7: true}},
	}
}

func TestCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("books a clear interval", func(t *testing.T) {
		repo := newStubAppointmentRepo()
		svc := newService(repo)

		appt, err := svc.Create(ctx, models.CreateAppointmentRequest{
			DoctorID: 1, PatientID: 7,
			Start: futureAt(9), End: futureAt(10),
			Type: models.TypeConsultation,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if appt.ID == 0 || appt.Status != models.StatusScheduled {
			t.Errorf("unexpected appointment: %+v", appt)
		}
	})

	t.Run("rejects an overlapping booking", func(t *testing.T) {
		repo := newStubAppointmentRepo(models.Appointment{
			ID: 1, DoctorID: 1, PatientID: 7,
			Start: futureAt(9), End: futureAt(10),
			Status: models.StatusScheduled, Type: models.TypeConsultation,
		})
		svc := newService(repo)

		_, err := svc.Create(ctx, models.CreateAppointmentRequest{
			DoctorID: 1, PatientID: 7,
			Start: futureAt(9).Add(30 * time.Minute), End: futureAt(10).Add(30 * time.Minute),
			Type: models.TypeConsultation,
		})
		if !errors.Is(err, ErrOverlappingBooking) {
			t.Errorf("got %v, want ErrOverlappingBooking", err)
		}
	})

	t.Run("back to back bookings are allowed", func(t *testing.T) {
		repo := newStubAppointmentRepo(models.Appointment{
			ID: 1, DoctorID: 1, PatientID: 7,
			Start: futureAt(9), End: futureAt(10),
			Status: models.StatusScheduled, Type: models.TypeConsultation,
		})
		svc := newService(repo)

		if _, err := svc.Create(ctx, models.CreateAppointmentRequest{
			DoctorID: 1, PatientID: 7,
			Start: futureAt(10), End: futureAt(11),
			Type: models.TypeConsultation,
		}); err != nil {
			t.Errorf("touching intervals must not conflict: %v", err)
		}
	})

	t.Run("cancelled bookings free the slot", func(t *testing.T) {
		repo := newStubAppointmentRepo(models.Appointment{
			ID: 1, DoctorID: 1, PatientID: 7,
			Start: futureAt(9), End: futureAt(10),
			Status: models.StatusCancelled, Type: models.TypeConsultation,
		})
		svc := newService(repo)

		if _, err := svc.Create(ctx, models.CreateAppointmentRequest{
			DoctorID: 1, PatientID: 7,
			Start: futureAt(9), End: futureAt(10),
			Type: models.TypeConsultation,
		}); err != nil {
			t.Errorf("cancelled booking must not block: %v", err)
		}
	})

	t.Run("validation failures", func(t *testing.T) {
		svc := newService(newStubAppointmentRepo())

		if _, err := svc.Create(ctx, models.CreateAppointmentRequest{
			DoctorID: 1, PatientID: 7,
			Start: futureAt(10), End: futureAt(9),
			Type: models.TypeConsultation,
		}); !errors.Is(err, models.ErrInvalidInterval) {
			t.Errorf("inverted interval: got %v", err)
		}

		if _, err := svc.Create(ctx, models.CreateAppointmentRequest{
			DoctorID: 1, PatientID: 7,
			Start: futureAt(9), End: futureAt(10),
			Type: "walk_in",
		}); !errors.Is(err, ErrInvalidType) {
			t.Errorf("bad type: got %v", err)
		}

		if _, err := svc.Create(ctx, models.CreateAppointmentRequest{
			DoctorID: 2, PatientID: 7,
			Start: futureAt(9), End: futureAt(10),
			Type: models.TypeConsultation,
		}); !errors.Is(err, ErrDoctorNotFound) {
			t.Errorf("unknown doctor: got %v", err)
		}

		past := time.Now().UTC().Add(-24 * time.Hour)
		if _, err := svc.Create(ctx, models.CreateAppointmentRequest{
			DoctorID: 1, PatientID: 7,
			Start: past, End: past.Add(time.Hour),
			Type: models.TypeConsultation,
		}); !errors.Is(err, ErrPastStart) {
			t.Errorf("past start: got %v", err)
		}
	})
}

func TestTransition(t *testing.T) {
	ctx := context.Background()

	allowed := []struct{ from, to string }{
		{models.StatusScheduled, models.StatusConfirmed},
		{models.StatusScheduled, models.StatusCancelled},
		{models.StatusScheduled, models.StatusNoShow},
		{models.StatusConfirmed, models.StatusInProgress},
		{models.StatusConfirmed, models.StatusCancelled},
		{models.StatusConfirmed, models.StatusNoShow},
		{models.StatusInProgress, models.StatusCompleted},
	}
	for _, tc := range allowed {
		t.Run(tc.from+" to "+tc.to, func(t *testing.T) {
			repo := newStubAppointmentRepo(models.Appointment{ID: 1, DoctorID: 1, Status: tc.from})
			svc := newService(repo)
			appt, err := svc.Transition(ctx, 1, tc.to)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if appt.Status != tc.to {
				t.Errorf("status = %q, want %q", appt.Status, tc.to)
			}
		})
	}

	denied := []struct{ from, to string }{
		{models.StatusScheduled, models.StatusInProgress},
		{models.StatusScheduled, models.StatusCompleted},
		{models.StatusInProgress, models.StatusCancelled},
		{models.StatusCompleted, models.StatusScheduled},
		{models.StatusCancelled, models.StatusScheduled},
		{models.StatusNoShow, models.StatusConfirmed},
	}
	for _, tc := range denied {
		t.Run(tc.from+" to "+tc.to+" denied", func(t *testing.T) {
			repo := newStubAppointmentRepo(models.Appointment{ID: 1, DoctorID: 1, Status: tc.from})
			svc := newService(repo)
			if _, err := svc.Transition(ctx, 1, tc.to); !errors.Is(err, ErrInvalidTransition) {
				t.Errorf("got %v, want ErrInvalidTransition", err)
			}
		})
	}

	t.Run("unknown status", func(t *testing.T) {
		repo := newStubAppointmentRepo(models.Appointment{ID: 1, Status: models.StatusScheduled})
		svc := newService(repo)
		if _, err := svc.Transition(ctx, 1, "vanished"); !errors.Is(err, ErrInvalidTransition) {
			t.Errorf("got %v, want ErrInvalidTransition", err)
		}
	})

	t.Run("missing appointment", func(t *testing.T) {
		svc := newService(newStubAppointmentRepo())
		if _, err := svc.Transition(ctx, 42, models.StatusConfirmed); !errors.Is(err, ErrNotFound) {
			t.Errorf("got %v, want ErrNotFound", err)
		}
	})
}
