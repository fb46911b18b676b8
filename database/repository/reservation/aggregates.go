package reservationRepo

import (
	"context"
	"fmt"
	"time"

	"lavellh/models"

	"go.mongodb.org/mongo-driver/bson"
)

// SetReview attaches a review to a completed, not-yet-reviewed reservation.
func (repo *MongoReservationRepo) SetReview(ctx context.Context, id string, review *models.Review) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"id":     id,
		"status": models.StatusCompleted,
		"review": nil,
	}
	update := bson.M{"$set": bson.M{"review": review, "updated_at": time.Now()}}
	result, err := repo.coll.UpdateOne(ctxWithTimeout, filter, update)
	if err != nil {
		return fmt.Errorf("error attaching review to %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return ErrStaleStatus
	}
	return nil
}

// AggregateServiceRating computes {mean rating, count} over active reviews of
// the listing in a single aggregation. Zero rows yields {0, 0}.
func (repo *MongoReservationRepo) AggregateServiceRating(ctx context.Context, serviceID string) (float64, int, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	pipeline := []bson.M{
		{"$match": bson.M{
			"service_id":               serviceID,
			"review":                   bson.M{"$ne": nil},
			"review.moderation_status": models.ModerationActive,
		}},
		{"$group": bson.M{
			"_id":     nil,
			"average": bson.M{"$avg": "$review.rating"},
			"count":   bson.M{"$sum": 1},
		}},
	}

	cursor, err := repo.coll.Aggregate(ctxWithTimeout, pipeline)
	if err != nil {
		return 0, 0, fmt.Errorf("error aggregating reviews for %s: %w", serviceID, err)
	}
	defer cursor.Close(ctxWithTimeout)

	var rows []struct {
		Average float64 `bson:"average"`
		Count   int     `bson:"count"`
	}
	if err := cursor.All(ctxWithTimeout, &rows); err != nil {
		return 0, 0, fmt.Errorf("error decoding review aggregate: %w", err)
	}
	if len(rows) == 0 {
		return 0, 0, nil
	}
	return rows[0].Average, rows[0].Count, nil
}
