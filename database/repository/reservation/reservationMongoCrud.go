package reservationRepo

import (
	"context"
	"fmt"
	"time"

	"lavellh/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Create inserts a new reservation document.
func (repo *MongoReservationRepo) Create(ctx context.Context, res *models.Reservation) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := repo.coll.InsertOne(ctxWithTimeout, res)
	if err != nil {
		return fmt.Errorf("error creating reservation: %w", err)
	}
	return nil
}

// GetByID retrieves a reservation by its ID.
func (repo *MongoReservationRepo) GetByID(ctx context.Context, id string) (*models.Reservation, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var res models.Reservation
	err := repo.coll.FindOne(ctxWithTimeout, bson.M{"id": id}).Decode(&res)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching reservation %s: %w", id, err)
	}
	return &res, nil
}

// Update replaces an existing reservation document.
func (repo *MongoReservationRepo) Update(ctx context.Context, res *models.Reservation) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res.UpdatedAt = time.Now()
	filter := bson.M{"id": res.ID}
	result, err := repo.coll.UpdateOne(ctxWithTimeout, filter, bson.M{"$set": res})
	if err != nil {
		return fmt.Errorf("error updating reservation %s: %w", res.ID, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateGuarded replaces the document only while the persisted status is one
// of allowedFrom. The filter on the current value is what makes concurrent
// transitions linearizable: the losing writer matches zero documents.
func (repo *MongoReservationRepo) UpdateGuarded(ctx context.Context, res *models.Reservation, allowedFrom ...models.ReservationStatus) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res.UpdatedAt = time.Now()
	filter := bson.M{
		"id":     res.ID,
		"status": bson.M{"$in": allowedFrom},
	}
	result, err := repo.coll.UpdateOne(ctxWithTimeout, filter, bson.M{"$set": res})
	if err != nil {
		return fmt.Errorf("error updating reservation %s: %w", res.ID, err)
	}
	if result.MatchedCount == 0 {
		return ErrStaleStatus
	}
	return nil
}
