package scheduling

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"clinicore/models"
)

// fakeAppointmentRepo is an in-memory AppointmentRepository for tests.
type fakeAppointmentRepo struct {
	mu     sync.Mutex
	nextID int64
	appts  map[int64]models.Appointment

	failUpdateTimes bool
}

func newFakeAppointmentRepo(appts ...models.Appointment) *fakeAppointmentRepo {
	r := &fakeAppointmentRepo{appts: make(map[int64]models.Appointment)}
	for _, a := range appts {
		if a.ID == 0 {
			r.nextID++
			a.ID = r.nextID
		} else if a.ID > r.nextID {
			r.nextID = a.ID
		}
		r.appts[a.ID] = a
	}
	return r
}

func (r *fakeAppointmentRepo) Create(ctx context.Context, appt *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	appt.ID = r.nextID
	r.appts[appt.ID] = *appt
	return nil
}

func (r *fakeAppointmentRepo) GetByID(ctx context.Context, id int64) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.appts[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return &a, nil
}

func (r *fakeAppointmentRepo) ListByDoctorAndRange(ctx context.Context, doctorID int64, from, to time.Time) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Appointment
	for _, a := range r.appts {
		if a.DoctorID == doctorID && a.Start.Before(to) && from.Before(a.End) {
			out = append(out, a)
		}
	}
	sortByStart(out)
	return out, nil
}

func (r *fakeAppointmentRepo) ListByPatient(ctx context.Context, patientID int64) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Appointment
	for _, a := range r.appts {
		if a.PatientID == patientID {
			out = append(out, a)
		}
	}
	sortByStart(out)
	return out, nil
}

func (r *fakeAppointmentRepo) ListCommittedOverlapping(ctx context.Context, doctorID int64, start, end time.Time, excludeID int64) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
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
	sortByStart(out)
	return out, nil
}

func (r *fakeAppointmentRepo) UpdateTimes(ctx context.Context, id int64, start, end time.Time) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failUpdateTimes {
		return nil, errors.New("write failed")
	}
	a, ok := r.appts[id]
	if !ok {
		return nil, errors.New("not found")
	}
	a.Start, a.End = start, end
	a.UpdatedAt = time.Now().UTC()
	r.appts[id] = a
	return &a, nil
}

func (r *fakeAppointmentRepo) UpdateStatus(ctx context.Context, id int64, status string) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.appts[id]
	if !ok {
		return nil, errors.New("not found")
	}
	a.Status = status
	r.appts[id] = a
	return &a, nil
}

func (r *fakeAppointmentRepo) UpdateFields(ctx context.Context, id int64, req models.UpdateAppointmentRequest) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
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

func (r *fakeAppointmentRepo) MarkNoShows(ctx context.Context, before time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, a := range r.appts {
		if (a.Status == models.StatusScheduled || a.Status == models.StatusConfirmed) && a.End.Before(before) {
			a.Status = models.StatusNoShow
			r.appts[id] = a
			n++
		}
	}
	return n, nil
}

func (r *fakeAppointmentRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.appts[id]; !ok {
		return errors.New("not found")
	}
	delete(r.appts, id)
	return nil
}

func (r *fakeAppointmentRepo) EnsureIndexes(ctx context.Context) error { return nil }

func sortByStart(appts []models.Appointment) {
	sort.Slice(appts, func(i, j int) bool { return appts[i].Start.Before(appts[j].Start) })
}

// memGestureStore is an in-memory GestureStore for tests. TTLs are ignored.
type memGestureStore struct {
	mu       sync.Mutex
	sessions map[string]models.GestureSession
}

func newMemGestureStore() *memGestureStore {
	return &memGestureStore{sessions: make(map[string]models.GestureSession)}
}

func (s *memGestureStore) Save(ctx context.Context, session *models.GestureSession, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = *session
	return nil
}

func (s *memGestureStore) Get(ctx context.Context, id string) (*models.GestureSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, ErrGestureNotFound
	}
	return &session, nil
}

func (s *memGestureStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

// testConfig keeps suggestion searches short and the grid at 15 minutes.
func testConfig() Config {
	return Config{
		StepMinutes:        15,
		WorkdayStartMinute: 9 * 60,
		WorkdayEndMinute:   17 * 60,
		SearchDays:         3,
		MaxSuggestions:     3,
		GestureTTL:         10 * time.Minute,
	}
}

// at builds a UTC time on a fixed reference day.
func at(day, hour, minute int) time.Time {
	return time.Date(2026, 3, 2+day, hour, minute, 0, 0, time.UTC)
}

func appt(id, doctorID int64, start, end time.Time, status string) models.Appointment {
	return models.Appointment{
		ID:       id,
		DoctorID: doctorID,
		Start:    start,
		End:      end,
		Status:   status,
		Type:     models.TypeConsultation,
	}
}
