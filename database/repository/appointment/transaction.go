package appointmentRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"consultorio/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// CreateIfFree runs the conflict check and the insert inside one Mongo
// transaction so two concurrent bookings for overlapping slots cannot both
// commit. The caller may have checked already; the check is repeated here
// because only this one counts.
func (r *MongoAppointmentRepo) CreateIfFree(ctx context.Context, appt *models.Appointment) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		err := r.coll.FindOne(sc, conflictFilter(appt.ProfessionalID, appt.Start, appt.End)).Err()
		if err == nil {
			return ErrConflict
		}
		if !errors.Is(err, mongo.ErrNoDocuments) {
			return fmt.Errorf("conflict check failed: %w", err)
		}
		if _, err := r.coll.InsertOne(sc, appt); err != nil {
			return fmt.Errorf("insert appointment failed: %w", err)
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		if errors.Is(err, ErrConflict) {
			return ErrConflict
		}
		return fmt.Errorf("appointment transaction failed: %w", err)
	}
	return nil
}
