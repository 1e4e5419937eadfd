// File: database/repository/doctor/doctor.go
package doctorRepo

import (
	"context"
	"fmt"
	"time"

	"clinicore/database"
	"clinicore/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DoctorRepository is the persistence contract for doctors.
type DoctorRepository interface {
	Create(ctx context.Context, doc *models.Doctor) error
	GetByID(ctx context.Context, id int64) (*models.Doctor, error)
	List(ctx context.Context, activeOnly bool) ([]models.Doctor, error)
	Update(ctx context.Context, id int64, req models.UpdateDoctorRequest) (*models.Doctor, error)
	Delete(ctx context.Context, id int64) error
}

type mongoDoctorRepo struct {
	coll *mongo.Collection
}

// NewMongoDoctorRepo constructs a new MongoDB DoctorRepository.
func NewMongoDoctorRepo() DoctorRepository {
	return &mongoDoctorRepo{
		coll: database.DB().Collection("doctors"),
	}
}

func (r *mongoDoctorRepo) Create(ctx context.Context, doc *models.Doctor) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if doc.ID == 0 {
		id, err := database.NextSequence(ctx, "doctors")
		if err != nil {
			return fmt.Errorf("allocate doctor id: %w", err)
		}
		doc.ID = id
	}
	now := time.Now().UTC()
	doc.CreatedAt = now
	doc.UpdatedAt = now
	doc.Active = true

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert doctor: %w", err)
	}
	return nil
}

func (r *mongoDoctorRepo) GetByID(ctx context.Context, id int64) (*models.Doctor, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var doc models.Doctor
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *mongoDoctorRepo) List(ctx context.Context, activeOnly bool) ([]models.Doctor, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{}
	if activeOnly {
		filter["active"] = true
	}
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch doctors: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []models.Doctor
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("error decoding doctors: %w", err)
	}
	return docs, nil
}

func (r *mongoDoctorRepo) Update(ctx context.Context, id int64, req models.UpdateDoctorRequest) (*models.Doctor, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	set := bson.M{"updatedAt": time.Now().UTC()}
	if req.Name != nil {
		set["name"] = *req.Name
	}
	if req.Specialty != nil {
		set["specialty"] = *req.Specialty
	}
	if req.Email != nil {
		set["email"] = *req.Email
	}
	if req.WorkdayStartMinute != nil {
		set["workdayStartMinute"] = *req.WorkdayStartMinute
	}
	if req.WorkdayEndMinute != nil {
		set["workdayEndMinute"] = *req.WorkdayEndMinute
	}
	if req.Active != nil {
		set["active"] = *req.Active
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc models.Doctor
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"id": id}, bson.M{"$set": set}, opts).Decode(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *mongoDoctorRepo) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
