// File: database/repository/appointment/indexes.go
package appointmentRepo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// EnsureIndexes creates the indexes the conflict and range queries depend on.
func (r *mongoAppointmentRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	models := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}},
		{Keys: bson.D{{Key: "doctorId", Value: 1}, {Key: "start", Value: 1}}},
		{Keys: bson.D{{Key: "doctorId", Value: 1}, {Key: "end", Value: 1}}},
		{Keys: bson.D{{Key: "patientId", Value: 1}, {Key: "start", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "end", Value: 1}}},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, models)
	return err
}
