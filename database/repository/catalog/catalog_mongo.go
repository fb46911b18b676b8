package catalogRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lavellh/database"
	"lavellh/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func findIDOnly() *options.FindOneOptions {
	return options.FindOne().SetProjection(bson.M{"id": 1})
}

// ErrListingNotFound marks a missing listing.
var ErrListingNotFound = errors.New("listing not found")

// MongoCatalogRepo reads the catalog/identity collections owned elsewhere.
type MongoCatalogRepo struct {
	listingColl  *mongo.Collection
	providerColl *mongo.Collection
	userColl     *mongo.Collection
}

// NewMongoCatalogRepo creates a MongoCatalogRepo backed by the shared client.
func NewMongoCatalogRepo() *MongoCatalogRepo {
	db := database.DB()
	return &MongoCatalogRepo{
		listingColl:  db.Collection("listings"),
		providerColl: db.Collection("providers"),
		userColl:     db.Collection("users"),
	}
}

// GetListingByID retrieves a listing snapshot by its ID.
func (repo *MongoCatalogRepo) GetListingByID(ctx context.Context, listingID string) (*models.Listing, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var listing models.Listing
	err := repo.listingColl.FindOne(ctxWithTimeout, bson.M{"id": listingID}).Decode(&listing)
	if err == mongo.ErrNoDocuments {
		return nil, ErrListingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching listing %s: %w", listingID, err)
	}
	return &listing, nil
}

// UserExists checks the identity store for a consumer id.
func (repo *MongoCatalogRepo) UserExists(ctx context.Context, userID string) (bool, error) {
	return repo.exists(ctx, repo.userColl, userID)
}

func (repo *MongoCatalogRepo) exists(ctx context.Context, coll *mongo.Collection, id string) (bool, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err := coll.FindOne(ctxWithTimeout, bson.M{"id": id}, findIDOnly()).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("identity lookup failed: %w", err)
	}
	return true, nil
}

// UpdateListingRating persists the recomputed aggregate onto the listing.
func (repo *MongoCatalogRepo) UpdateListingRating(ctx context.Context, listingID string, rating float64, totalReviews int) error {
	return repo.setRating(ctx, repo.listingColl, listingID, rating, totalReviews)
}

// UpdateProviderRating mirrors the aggregate onto the owning provider.
func (repo *MongoCatalogRepo) UpdateProviderRating(ctx context.Context, providerID string, rating float64, totalReviews int) error {
	return repo.setRating(ctx, repo.providerColl, providerID, rating, totalReviews)
}

func (repo *MongoCatalogRepo) setRating(ctx context.Context, coll *mongo.Collection, id string, rating float64, totalReviews int) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"rating":        rating,
		"total_reviews": totalReviews,
		"updated_at":    time.Now(),
	}}
	_, err := coll.UpdateOne(ctxWithTimeout, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("error updating rating for %s: %w", id, err)
	}
	return nil
}
