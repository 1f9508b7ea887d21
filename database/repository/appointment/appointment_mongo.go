package appointmentRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"consultorio/database"
	"consultorio/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrNotFound is returned when no appointment matches the query.
	ErrNotFound = errors.New("appointment not found")
	// ErrConflict is returned when a candidate interval overlaps an
	// existing non-cancelled appointment.
	ErrConflict = errors.New("appointment interval conflicts with an existing appointment")
)

// MongoAppointmentRepo implements AppointmentRepository using MongoDB.
type MongoAppointmentRepo struct {
	coll *mongo.Collection
}

// NewMongoAppointmentRepo constructs the repository and ensures indexes.
func NewMongoAppointmentRepo() AppointmentRepository {
	db := database.MongoClient.Database(database.DatabaseName)
	repo := &MongoAppointmentRepo{coll: db.Collection("appointments")}
	if err := repo.ensureIndexes(); err != nil {
		panic(fmt.Sprintf("appointment repo: failed to ensure indexes: %v", err))
	}
	return repo
}

// conflictFilter matches non-cancelled appointments of the professional
// whose half-open interval overlaps [start, end): s1 < e2 && s2 < e1.
// Touching endpoints do not match.
func conflictFilter(professionalID string, start, end time.Time) bson.M {
	return bson.M{
		"professionalId": professionalID,
		"status":         bson.M{"$ne": models.StatusCancelled},
		"start":          bson.M{"$lt": end},
		"end":            bson.M{"$gt": start},
	}
}

func (r *MongoAppointmentRepo) HasConflict(ctx context.Context, professionalID string, start, end time.Time) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err := r.coll.FindOne(ctx, conflictFilter(professionalID, start, end)).Err()
	if err == nil {
		return true, nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	return false, fmt.Errorf("error checking for conflicts: %w", err)
}

func (r *MongoAppointmentRepo) GetByID(ctx context.Context, professionalID, id string) (*models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var appt models.Appointment
	filter := bson.M{"id": id, "professionalId": professionalID}
	if err := r.coll.FindOne(ctx, filter).Decode(&appt); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching appointment %s: %w", id, err)
	}
	return &appt, nil
}

func (r *MongoAppointmentRepo) ListByRange(ctx context.Context, professionalID string, from, to time.Time) ([]models.Appointment, error) {
	filter := bson.M{
		"professionalId": professionalID,
		"start":          bson.M{"$gte": from, "$lte": to},
	}
	return r.list(ctx, filter, options.Find().SetSort(bson.D{{Key: "start", Value: 1}}))
}

func (r *MongoAppointmentRepo) BusyIntervals(ctx context.Context, professionalID string) ([]models.CalendarInterval, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"professionalId": professionalID,
		"status":         bson.M{"$ne": models.StatusCancelled},
	}
	opts := options.Find().SetProjection(bson.M{"start": 1, "end": 1, "_id": 0})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching busy intervals: %w", err)
	}
	defer cursor.Close(ctx)

	var intervals []models.CalendarInterval
	for cursor.Next(ctx) {
		var iv models.CalendarInterval
		if err := cursor.Decode(&iv); err != nil {
			return nil, fmt.Errorf("error decoding interval: %w", err)
		}
		intervals = append(intervals, iv)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return intervals, nil
}

func (r *MongoAppointmentRepo) UpdateStatus(ctx context.Context, professionalID, id string, status models.AppointmentStatus) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": id, "professionalId": professionalID}
	update := bson.M{"$set": bson.M{
		"status":    status,
		"updatedAt": time.Now().UTC(),
	}}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("error updating appointment %s status: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// RegisterPayment replaces only the embedded payment document; start, end,
// notes and status stay untouched.
func (r *MongoAppointmentRepo) RegisterPayment(ctx context.Context, professionalID, id string, payment models.Payment) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": id, "professionalId": professionalID}
	update := bson.M{"$set": bson.M{
		"payment":   payment,
		"updatedAt": time.Now().UTC(),
	}}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("error registering payment on appointment %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoAppointmentRepo) ListPaidInRange(ctx context.Context, professionalID string, from, to time.Time) ([]models.Appointment, error) {
	filter := bson.M{
		"professionalId": professionalID,
		"payment.status": models.PaymentPaid,
		"start":          bson.M{"$gte": from, "$lte": to},
	}
	return r.list(ctx, filter, options.Find().SetSort(bson.D{{Key: "start", Value: 1}}))
}

func (r *MongoAppointmentRepo) CountByRange(ctx context.Context, professionalID string, from, to time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"professionalId": professionalID,
		"start":          bson.M{"$gte": from, "$lte": to},
	}
	n, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("error counting appointments: %w", err)
	}
	return n, nil
}

func (r *MongoAppointmentRepo) CountByStatus(ctx context.Context, professionalID string, status models.AppointmentStatus) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"professionalId": professionalID, "status": status}
	n, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("error counting appointments by status: %w", err)
	}
	return n, nil
}

// SumPaidInRange aggregates paid amounts for the dashboard income figure.
func (r *MongoAppointmentRepo) SumPaidInRange(ctx context.Context, professionalID string, from, to time.Time) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{
			"professionalId": professionalID,
			"payment.status": models.PaymentPaid,
			"start":          bson.M{"$gte": from, "$lte": to},
		}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": "$payment.amount"},
		}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("error aggregating paid amounts: %w", err)
	}
	defer cursor.Close(ctx)

	var result struct {
		Total float64 `bson:"total"`
	}
	if cursor.Next(ctx) {
		if err := cursor.Decode(&result); err != nil {
			return 0, fmt.Errorf("error decoding aggregate: %w", err)
		}
	}
	return result.Total, nil
}

func (r *MongoAppointmentRepo) ListUpcoming(ctx context.Context, professionalID string, after time.Time, limit int) ([]models.Appointment, error) {
	filter := bson.M{
		"professionalId": professionalID,
		"start":          bson.M{"$gt": after},
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "start", Value: 1}}).
		SetLimit(int64(limit))
	return r.list(ctx, filter, opts)
}

func (r *MongoAppointmentRepo) list(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing appointments: %w", err)
	}
	defer cursor.Close(ctx)

	var appointments []models.Appointment
	if err := cursor.All(ctx, &appointments); err != nil {
		return nil, fmt.Errorf("error decoding appointments: %w", err)
	}
	return appointments, nil
}
