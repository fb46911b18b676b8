package reservationRepo

import (
	"context"
	"fmt"
	"time"

	"lavellh/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ListByUser returns the caller's reservations, newest first, with the total count.
func (repo *MongoReservationRepo) ListByUser(ctx context.Context, userID string, f models.ListFilter) ([]models.Reservation, int64, error) {
	return repo.list(ctx, bson.M{"user_id": userID}, f)
}

// ListByProvider returns the provider's reservations, newest first, with the total count.
func (repo *MongoReservationRepo) ListByProvider(ctx context.Context, providerID string, f models.ListFilter) ([]models.Reservation, int64, error) {
	return repo.list(ctx, bson.M{"provider_id": providerID}, f)
}

func (repo *MongoReservationRepo) list(ctx context.Context, filter bson.M, f models.ListFilter) ([]models.Reservation, int64, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	f.Normalize()
	if f.Kind != "" {
		filter["kind"] = f.Kind
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}

	total, err := repo.coll.CountDocuments(ctxWithTimeout, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("error counting reservations: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((f.Page - 1) * f.Limit)).
		SetLimit(int64(f.Limit))

	cursor, err := repo.coll.Find(ctxWithTimeout, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing reservations: %w", err)
	}
	defer cursor.Close(ctxWithTimeout)

	var results []models.Reservation
	if err := cursor.All(ctxWithTimeout, &results); err != nil {
		return nil, 0, fmt.Errorf("error decoding reservations: %w", err)
	}
	return results, total, nil
}

// FindLiveAppointments returns same-day appointments still occupying a slot.
func (repo *MongoReservationRepo) FindLiveAppointments(ctx context.Context, serviceID, date, excludeID string) ([]models.Reservation, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"kind":             models.KindAppointment,
		"service_id":       serviceID,
		"appointment_date": date,
		"status": bson.M{"$in": []models.ReservationStatus{
			models.StatusPending, models.StatusConfirmed, models.StatusInProgress,
		}},
	}
	if excludeID != "" {
		filter["id"] = bson.M{"$ne": excludeID}
	}

	cursor, err := repo.coll.Find(ctxWithTimeout, filter)
	if err != nil {
		return nil, fmt.Errorf("error querying live appointments: %w", err)
	}
	defer cursor.Close(ctxWithTimeout)

	var results []models.Reservation
	if err := cursor.All(ctxWithTimeout, &results); err != nil {
		return nil, fmt.Errorf("error decoding live appointments: %w", err)
	}
	return results, nil
}
