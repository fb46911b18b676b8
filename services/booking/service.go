package booking

import (
	"context"
	"errors"
	"time"

	catalogRepo "lavellh/database/repository/catalog"
	reservationRepo "lavellh/database/repository/reservation"
	"lavellh/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxNotesLen = 500

// DefaultReservationService is the production lifecycle manager.
type DefaultReservationService struct {
	Repo     reservationRepo.Repository
	Catalog  catalogRepo.Repository
	Payments *PaymentCoordinator
	Detector *ConflictDetector
	Locks    LockManager
	Tasks    TaskScheduler
	Logger   *zap.Logger
}

// CreateBooking reserves a non-appointment listing.
func (s *DefaultReservationService) CreateBooking(ctx context.Context, userID string, in models.CreateBookingInput) (*models.Reservation, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	if len(in.UserNotes) > maxNotesLen {
		return nil, newInvalidArgument("userNotes exceeds %d characters", maxNotesLen)
	}
	when, err := time.Parse(time.RFC3339, in.BookingDate)
	if err != nil {
		return nil, newInvalidArgument("bookingDate must be an RFC 3339 instant")
	}
	if !when.After(time.Now()) {
		return nil, newInvalidArgument("bookingDate must be in the future")
	}

	listing, err := s.fetchListing(ctx, in.ServiceID)
	if err != nil {
		return nil, err
	}
	if listing.AppointmentEnabled {
		return nil, newWrongKind("listing %s requires an appointment", listing.ID)
	}
	if !listing.IsActive {
		return nil, newGone("listing %s is no longer active", listing.ID)
	}

	pricing, _, err := ComputeBreakdown(listing, "")
	if err != nil {
		return nil, err
	}

	now := time.Now()
	res := &models.Reservation{
		ID:            uuid.New().String(),
		Kind:          models.KindBooking,
		UserID:        userID,
		ServiceID:     listing.ID,
		ProviderID:    listing.ProviderID,
		BookingDate:   when,
		Service:       snapshotOf(listing),
		Pricing:       pricing,
		Status:        models.StatusPending,
		PaymentStatus: models.PaymentPending,
		UserNotes:     in.UserNotes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.Repo.Create(ctx, res); err != nil {
		return nil, newTransient("failed to persist booking: %v", err)
	}

	s.requestInitialIntent(ctx, res)
	return res, nil
}

// CreateAppointment reserves a slot on an appointment-enabled listing. The
// conflict check and the insert run under the per-(listing, day) lock so two
// overlapping creations cannot both succeed.
func (s *DefaultReservationService) CreateAppointment(ctx context.Context, userID string, in models.CreateAppointmentInput) (*models.Reservation, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	if len(in.UserNotes) > maxNotesLen {
		return nil, newInvalidArgument("userNotes exceeds %d characters", maxNotesLen)
	}
	if err := validateSlotInput(in.AppointmentDate, in.TimeSlot); err != nil {
		return nil, err
	}

	listing, err := s.fetchListing(ctx, in.ServiceID)
	if err != nil {
		return nil, err
	}
	if !listing.AppointmentEnabled {
		return nil, newWrongKind("listing %s does not take appointments", listing.ID)
	}
	if !listing.IsActive {
		return nil, newGone("listing %s is no longer active", listing.ID)
	}

	pricing, selected, err := ComputeBreakdown(listing, in.SlotID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	slot := in.TimeSlot
	res := &models.Reservation{
		ID:              uuid.New().String(),
		Kind:            models.KindAppointment,
		UserID:          userID,
		ServiceID:       listing.ID,
		ProviderID:      listing.ProviderID,
		AppointmentDate: in.AppointmentDate,
		TimeSlot:        &slot,
		SelectedSlot:    selected,
		Service:         snapshotOf(listing),
		Pricing:         pricing,
		Status:          models.StatusPending,
		PaymentStatus:   models.PaymentPending,
		UserNotes:       in.UserNotes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	err = s.Locks.WithLock(ctx, listingDayLockKey(listing.ID, in.AppointmentDate), func(ctx context.Context) error {
		conflict, err := s.Detector.HasConflict(ctx, listing.ID, in.AppointmentDate, in.TimeSlot, "")
		if err != nil {
			return newTransient("conflict check failed: %v", err)
		}
		if conflict {
			return newConflict("the requested time slot overlaps an existing appointment")
		}
		if err := s.Repo.Create(ctx, res); err != nil {
			return newTransient("failed to persist appointment: %v", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.requestInitialIntent(ctx, res)
	return res, nil
}

// GetReservation loads a record the actor is allowed to see.
func (s *DefaultReservationService) GetReservation(ctx context.Context, actorID, role, id string) (*models.Reservation, error) {
	res, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorize(res, actorID, role); err != nil {
		return nil, err
	}
	return res, nil
}

// ListUserReservations returns the caller's reservations.
func (s *DefaultReservationService) ListUserReservations(ctx context.Context, userID string, f models.ListFilter) ([]models.Reservation, int64, error) {
	results, total, err := s.Repo.ListByUser(ctx, userID, f)
	if err != nil {
		return nil, 0, newTransient("failed to list reservations: %v", err)
	}
	return results, total, nil
}

// ListProviderReservations returns reservations on the provider's listings.
func (s *DefaultReservationService) ListProviderReservations(ctx context.Context, providerID string, f models.ListFilter) ([]models.Reservation, int64, error) {
	results, total, err := s.Repo.ListByProvider(ctx, providerID, f)
	if err != nil {
		return nil, 0, newTransient("failed to list reservations: %v", err)
	}
	return results, total, nil
}

// requestInitialIntent asks the processor for the down-payment intent after
// the record is persisted. A failure is logged and left recoverable: the
// record keeps paymentIntentId empty and the checkout-session route retries.
func (s *DefaultReservationService) requestInitialIntent(ctx context.Context, res *models.Reservation) {
	if _, err := s.Payments.CreateDownPaymentIntent(ctx, res); err != nil {
		s.Logger.Warn("down payment intent creation failed, record stays recoverable",
			zap.String("reservation", res.ID), zap.Error(err))
		return
	}
	if err := s.Repo.Update(ctx, res); err != nil {
		s.Logger.Error("failed to persist down payment intent",
			zap.String("reservation", res.ID), zap.Error(err))
	}
}

func (s *DefaultReservationService) requireUser(ctx context.Context, userID string) error {
	ok, err := s.Catalog.UserExists(ctx, userID)
	if err != nil {
		return newTransient("identity lookup failed: %v", err)
	}
	if !ok {
		return newNotFound("user %s not found", userID)
	}
	return nil
}

func (s *DefaultReservationService) fetchListing(ctx context.Context, serviceID string) (*models.Listing, error) {
	listing, err := s.Catalog.GetListingByID(ctx, serviceID)
	if errors.Is(err, catalogRepo.ErrListingNotFound) {
		return nil, newNotFound("listing %s not found", serviceID)
	}
	if err != nil {
		return nil, newTransient("listing lookup failed: %v", err)
	}
	return listing, nil
}

func (s *DefaultReservationService) load(ctx context.Context, id string) (*models.Reservation, error) {
	res, err := s.Repo.GetByID(ctx, id)
	if errors.Is(err, reservationRepo.ErrNotFound) {
		return nil, newNotFound("reservation %s not found", id)
	}
	if err != nil {
		return nil, newTransient("reservation lookup failed: %v", err)
	}
	return res, nil
}

func snapshotOf(listing *models.Listing) models.ServiceSnapshot {
	return models.ServiceSnapshot{
		Name:       listing.Name,
		Photo:      listing.Photo,
		BasePrice:  listing.BasePrice,
		CategoryID: listing.CategoryID,
	}
}

func validateSlotInput(date string, slot models.TimeSlot) error {
	if !validCalendarDay(date) {
		return newInvalidArgument("appointmentDate must be YYYY-MM-DD")
	}
	if slot.StartTime == "" || slot.EndTime == "" {
		return newInvalidArgument("timeSlot requires both startTime and endTime")
	}
	if !validWallClock(slot.StartTime) || !validWallClock(slot.EndTime) {
		return newInvalidArgument("timeSlot times must be HH:MM wall-clock strings")
	}
	if slot.StartTime >= slot.EndTime {
		return newInvalidArgument("timeSlot startTime must precede endTime")
	}
	day, _ := time.ParseInLocation("2006-01-02", date, time.Local)
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	if day.Before(today) {
		return newInvalidArgument("appointmentDate must not be in the past")
	}
	return nil
}

// authorize checks record-level access per actor role.
func authorize(res *models.Reservation, actorID, role string) error {
	switch role {
	case models.ActorUser:
		if res.UserID == actorID {
			return nil
		}
	case models.ActorProvider:
		if res.ProviderID == actorID {
			return nil
		}
	case models.ActorAdmin:
		return nil
	}
	return newUnauthorized("actor %s may not access reservation %s", actorID, res.ID)
}
