package reservationRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes the engine's queries depend on.
func (repo *MongoReservationRepo) EnsureIndexes(ctx context.Context) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "provider_id", Value: 1}, {Key: "created_at", Value: -1}},
		},
		// Conflict scans hit (service, day, status); the partial unique index
		// on the exact start time is the optimistic backstop under the
		// advisory lock.
		{
			Keys: bson.D{
				{Key: "service_id", Value: 1},
				{Key: "appointment_date", Value: 1},
				{Key: "status", Value: 1},
			},
		},
		{
			Keys: bson.D{
				{Key: "service_id", Value: 1},
				{Key: "appointment_date", Value: 1},
				{Key: "time_slot.start_time", Value: 1},
			},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{
					"kind":   "appointment",
					"status": bson.M{"$in": bson.A{"pending", "confirmed", "in_progress"}},
				}),
		},
	}

	if _, err := repo.coll.Indexes().CreateMany(ctxWithTimeout, indexes); err != nil {
		return fmt.Errorf("error creating reservation indexes: %w", err)
	}
	return nil
}
