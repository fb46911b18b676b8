package catalogRepo

import (
	"context"

	"lavellh/models"
)

// Repository exposes the narrow reads the engine needs from the catalog and
// identity stores, plus the single write-back: the aggregate rating.
type Repository interface {
	GetListingByID(ctx context.Context, listingID string) (*models.Listing, error)
	UserExists(ctx context.Context, userID string) (bool, error)
	UpdateListingRating(ctx context.Context, listingID string, rating float64, totalReviews int) error
	UpdateProviderRating(ctx context.Context, providerID string, rating float64, totalReviews int) error
}
