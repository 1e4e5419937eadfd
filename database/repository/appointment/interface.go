// File: database/repository/appointment/interface.go
package appointmentRepo

import (
	"context"
	"time"

	"clinicore/database"
	"clinicore/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// AppointmentRepository is the persistence contract for appointments.
// ListCommittedOverlapping is the authoritative conflict query: committed
// (non-cancelled) appointments of one doctor whose half-open interval
// intersects [start, end), minus the appointment being edited.
type AppointmentRepository interface {
	Create(ctx context.Context, appt *models.Appointment) error
	GetByID(ctx context.Context, id int64) (*models.Appointment, error)
	ListByDoctorAndRange(ctx context.Context, doctorID int64, from, to time.Time) ([]models.Appointment, error)
	ListByPatient(ctx context.Context, patientID int64) ([]models.Appointment, error)
	ListCommittedOverlapping(ctx context.Context, doctorID int64, start, end time.Time, excludeID int64) ([]models.Appointment, error)
	UpdateTimes(ctx context.Context, id int64, start, end time.Time) (*models.Appointment, error)
	UpdateStatus(ctx context.Context, id int64, status string) (*models.Appointment, error)
	UpdateFields(ctx context.Context, id int64, req models.UpdateAppointmentRequest) (*models.Appointment, error)
	MarkNoShows(ctx context.Context, before time.Time) (int64, error)
	Delete(ctx context.Context, id int64) error
	EnsureIndexes(ctx context.Context) error
}

type mongoAppointmentRepo struct {
	coll *mongo.Collection
}

// NewMongoAppointmentRepo constructs a new MongoDB AppointmentRepository.
func NewMongoAppointmentRepo() AppointmentRepository {
	return &mongoAppointmentRepo{
		coll: database.DB().Collection("appointments"),
	}
}
