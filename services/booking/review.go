package booking

import (
	"context"
	"errors"
	"math"
	"time"

	reservationRepo "lavellh/database/repository/reservation"
	"lavellh/models"

	"go.uber.org/zap"
)

// Review attaches the single post-completion review and recomputes the
// listing's aggregate rating.
func (s *DefaultReservationService) Review(ctx context.Context, userID, id string, in models.ReviewInput) (*models.Reservation, error) {
	res, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorize(res, userID, models.ActorUser); err != nil {
		return nil, err
	}
	if in.Rating < 1 || in.Rating > 5 {
		return nil, newInvalidArgument("rating must be an integer between 1 and 5")
	}
	if in.Comment == "" || len(in.Comment) > maxNotesLen {
		return nil, newInvalidArgument("comment must be non-empty and at most %d characters", maxNotesLen)
	}
	if res.Status != models.StatusCompleted {
		return nil, newStateInvalid("reviews are only accepted after completion, status is %q", res.Status)
	}
	if res.Review != nil {
		return nil, newStateInvalid("reservation %s has already been reviewed", id)
	}

	review := &models.Review{
		Rating:           in.Rating,
		Comment:          in.Comment,
		ModerationStatus: models.ModerationActive,
		ReviewedAt:       time.Now(),
	}
	err = s.Repo.SetReview(ctx, id, review)
	if errors.Is(err, reservationRepo.ErrStaleStatus) {
		return nil, newStateInvalid("reservation %s has already been reviewed", id)
	}
	if err != nil {
		return nil, newTransient("failed to persist review: %v", err)
	}
	res.Review = review

	s.recomputeAggregate(ctx, res.ServiceID, res.ProviderID)
	return res, nil
}

// recomputeAggregate refreshes the derived rating read model on the listing
// and mirrors it to the provider. The aggregate is rebuilt on the next review
// event if a write fails, so failures only log.
func (s *DefaultReservationService) recomputeAggregate(ctx context.Context, serviceID, providerID string) {
	average, count, err := s.Repo.AggregateServiceRating(ctx, serviceID)
	if err != nil {
		s.Logger.Error("review aggregation failed", zap.String("service", serviceID), zap.Error(err))
		return
	}
	rounded := math.Round(average*10) / 10
	if count == 0 {
		rounded = 0
	}
	if err := s.Catalog.UpdateListingRating(ctx, serviceID, rounded, count); err != nil {
		s.Logger.Error("failed to persist listing rating", zap.String("service", serviceID), zap.Error(err))
	}
	if err := s.Catalog.UpdateProviderRating(ctx, providerID, rounded, count); err != nil {
		s.Logger.Error("failed to mirror provider rating", zap.String("provider", providerID), zap.Error(err))
	}
}
