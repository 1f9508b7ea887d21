package patientRepo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"consultorio/database"
	"consultorio/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when no patient matches the query.
var ErrNotFound = errors.New("patient not found")

// MongoPatientRepo implements PatientRepository using MongoDB.
type MongoPatientRepo struct {
	coll *mongo.Collection
}

// NewMongoPatientRepo constructs the repository and ensures indexes.
func NewMongoPatientRepo() PatientRepository {
	db := database.MongoClient.Database(database.DatabaseName)
	repo := &MongoPatientRepo{coll: db.Collection("patients")}
	if err := repo.ensureIndexes(); err != nil {
		panic(fmt.Sprintf("patient repo: failed to ensure indexes: %v", err))
	}
	return repo
}

func (r *MongoPatientRepo) Create(ctx context.Context, patient *models.Patient) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, patient); err != nil {
		return fmt.Errorf("error creating patient: %w", err)
	}
	return nil
}

func (r *MongoPatientRepo) findOne(ctx context.Context, filter bson.M) (*models.Patient, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var patient models.Patient
	if err := r.coll.FindOne(ctx, filter).Decode(&patient); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching patient: %w", err)
	}
	return &patient, nil
}

func (r *MongoPatientRepo) GetByID(ctx context.Context, professionalID, id string) (*models.Patient, error) {
	return r.findOne(ctx, bson.M{"id": id, "professionalId": professionalID})
}

func (r *MongoPatientRepo) GetByCedula(ctx context.Context, professionalID, cedula string) (*models.Patient, error) {
	return r.findOne(ctx, bson.M{"cedula": cedula, "professionalId": professionalID})
}

func (r *MongoPatientRepo) GetByEmail(ctx context.Context, professionalID, email string) (*models.Patient, error) {
	return r.findOne(ctx, bson.M{"email": email, "professionalId": professionalID})
}

// List returns one page of the professional's patients, newest first,
// optionally filtered by a case-insensitive match over name/cedula/email.
func (r *MongoPatientRepo) List(ctx context.Context, professionalID, query string, page, perPage int) ([]models.Patient, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"professionalId": professionalID}
	if query != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"name": pattern},
			bson.M{"cedula": pattern},
			bson.M{"email": pattern},
		}
	}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("error counting patients: %w", err)
	}

	if page < 1 {
		page = 1
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((page - 1) * perPage)).
		SetLimit(int64(perPage))

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing patients: %w", err)
	}
	defer cursor.Close(ctx)

	var patients []models.Patient
	if err := cursor.All(ctx, &patients); err != nil {
		return nil, 0, fmt.Errorf("error decoding patients: %w", err)
	}
	return patients, total, nil
}

func (r *MongoPatientRepo) UpdateContact(ctx context.Context, professionalID, id string, cedula, name, phone, email string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": id, "professionalId": professionalID}
	update := bson.M{"$set": bson.M{
		"cedula":    cedula,
		"name":      name,
		"phone":     phone,
		"email":     email,
		"updatedAt": time.Now().UTC(),
	}}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("error updating patient %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoPatientRepo) Delete(ctx context.Context, professionalID, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id, "professionalId": professionalID})
	if err != nil {
		return fmt.Errorf("error deleting patient %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoPatientRepo) Count(ctx context.Context, professionalID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	total, err := r.coll.CountDocuments(ctx, bson.M{"professionalId": professionalID})
	if err != nil {
		return 0, fmt.Errorf("error counting patients: %w", err)
	}
	return total, nil
}

func (r *MongoPatientRepo) AddClinicalRecord(ctx context.Context, professionalID, id string, rec models.ClinicalRecord) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": id, "professionalId": professionalID}
	update := bson.M{
		"$push": bson.M{"clinicalHistory": rec},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("error adding clinical record to %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoPatientRepo) AddFile(ctx context.Context, professionalID, id string, file models.PatientFile) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": id, "professionalId": professionalID}
	update := bson.M{
		"$push": bson.M{"files": file},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("error adding file reference to %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// NamesByIDs fetches patients in bulk for report rendering.
func (r *MongoPatientRepo) NamesByIDs(ctx context.Context, professionalID string, ids []string) (map[string]models.Patient, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"professionalId": professionalID, "id": bson.M{"$in": ids}}
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error fetching patients by ids: %w", err)
	}
	defer cursor.Close(ctx)

	result := make(map[string]models.Patient, len(ids))
	for cursor.Next(ctx) {
		var p models.Patient
		if err := cursor.Decode(&p); err != nil {
			return nil, fmt.Errorf("error decoding patient: %w", err)
		}
		result[p.ID] = p
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return result, nil
}
