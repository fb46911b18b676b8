package reservationRepo

import (
	"context"
	"errors"

	"lavellh/models"
)

// ErrNotFound marks a missing reservation.
var ErrNotFound = errors.New("reservation not found")

// ErrStaleStatus is returned when a guarded update finds the record no longer
// in an allowed pre-state; the concurrent transition won.
var ErrStaleStatus = errors.New("reservation status changed concurrently")

// Repository is the record store for bookings and appointments.
type Repository interface {
	Create(ctx context.Context, res *models.Reservation) error
	GetByID(ctx context.Context, id string) (*models.Reservation, error)
	ListByUser(ctx context.Context, userID string, f models.ListFilter) ([]models.Reservation, int64, error)
	ListByProvider(ctx context.Context, providerID string, f models.ListFilter) ([]models.Reservation, int64, error)

	// FindLiveAppointments returns appointments for the listing on the given
	// calendar day whose status still occupies the slot. excludeID skips the
	// record being rescheduled; pass "" otherwise.
	FindLiveAppointments(ctx context.Context, serviceID, date, excludeID string) ([]models.Reservation, error)

	// Update replaces the stored record unconditionally.
	Update(ctx context.Context, res *models.Reservation) error

	// UpdateGuarded replaces the stored record only while its persisted status
	// is one of allowedFrom. Returns ErrStaleStatus when the compare-and-set
	// loses.
	UpdateGuarded(ctx context.Context, res *models.Reservation, allowedFrom ...models.ReservationStatus) error

	// SetReview attaches the one review a reservation may carry. The write is
	// conditioned on the record being completed and review-free; a lost race
	// returns ErrStaleStatus.
	SetReview(ctx context.Context, id string, review *models.Review) error

	// AggregateServiceRating recomputes {mean rating, count} over active
	// reviews of the listing in one aggregation round-trip.
	AggregateServiceRating(ctx context.Context, serviceID string) (float64, int, error)
}
