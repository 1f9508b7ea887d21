package professionalRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"consultorio/database"
	"consultorio/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound is returned when no professional matches the query.
var ErrNotFound = errors.New("professional not found")

// MongoProfessionalRepo implements ProfessionalRepository using MongoDB.
type MongoProfessionalRepo struct {
	coll *mongo.Collection
}

// NewMongoProfessionalRepo constructs the repository and ensures indexes.
func NewMongoProfessionalRepo() ProfessionalRepository {
	db := database.MongoClient.Database(database.DatabaseName)
	repo := &MongoProfessionalRepo{coll: db.Collection("professionals")}
	if err := repo.ensureIndexes(); err != nil {
		panic(fmt.Sprintf("professional repo: failed to ensure indexes: %v", err))
	}
	return repo
}

func (r *MongoProfessionalRepo) Create(ctx context.Context, prof *models.Professional) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, prof); err != nil {
		return fmt.Errorf("error creating professional: %w", err)
	}
	return nil
}

func (r *MongoProfessionalRepo) findOne(ctx context.Context, filter bson.M) (*models.Professional, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var prof models.Professional
	if err := r.coll.FindOne(ctx, filter).Decode(&prof); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching professional: %w", err)
	}
	return &prof, nil
}

func (r *MongoProfessionalRepo) GetByID(ctx context.Context, id string) (*models.Professional, error) {
	return r.findOne(ctx, bson.M{"id": id})
}

func (r *MongoProfessionalRepo) GetByEmail(ctx context.Context, email string) (*models.Professional, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *MongoProfessionalRepo) GetByTokenHash(ctx context.Context, tokenHash string) (*models.Professional, error) {
	return r.findOne(ctx, bson.M{"security.tokenHash": tokenHash})
}

func (r *MongoProfessionalRepo) UpdateAvailability(ctx context.Context, id string, weekly models.WeeklyAvailability) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"availability": weekly,
		"updatedAt":    time.Now().UTC(),
	}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("error updating availability for %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoProfessionalRepo) SetTokenHash(ctx context.Context, id, tokenHash string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"security.tokenHash": tokenHash}}
	if _, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update); err != nil {
		return fmt.Errorf("error setting token hash for %s: %w", id, err)
	}
	return nil
}

func (r *MongoProfessionalRepo) SetFCMToken(ctx context.Context, id, token string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"security.fcmToken": token}}
	if _, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update); err != nil {
		return fmt.Errorf("error setting fcm token for %s: %w", id, err)
	}
	return nil
}
