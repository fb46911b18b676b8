package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	reservationRepo "lavellh/database/repository/reservation"
	"lavellh/models"

	"go.uber.org/zap"
)

// Confirm moves a pending reservation to confirmed and schedules the
// implicit start at the reserved instant.
func (s *DefaultReservationService) Confirm(ctx context.Context, providerID, id string) (*models.Reservation, error) {
	res, err := s.loadProviderOwned(ctx, providerID, id)
	if err != nil {
		return nil, err
	}
	if err := s.transition(ctx, res, models.StatusConfirmed); err != nil {
		return nil, err
	}

	if s.Tasks != nil {
		if at, ok := s.startInstant(res); ok {
			if err := s.Tasks.ScheduleAutoStart(res.ID, at); err != nil {
				s.Logger.Warn("failed to schedule auto-start",
					zap.String("reservation", res.ID), zap.Error(err))
			}
		}
	}
	return res, nil
}

// Reject declines a pending reservation with a reason.
func (s *DefaultReservationService) Reject(ctx context.Context, providerID, id, reason string) (*models.Reservation, error) {
	res, err := s.loadProviderOwned(ctx, providerID, id)
	if err != nil {
		return nil, err
	}
	if reason == "" {
		return nil, newInvalidArgument("a rejection reason is required")
	}
	now := time.Now()
	res.CancellationReason = reason
	res.CancelledBy = models.ActorProvider
	res.CancelledAt = &now
	if err := s.transition(ctx, res, models.StatusRejected); err != nil {
		return nil, err
	}
	return res, nil
}

// Start moves a confirmed reservation into service delivery.
func (s *DefaultReservationService) Start(ctx context.Context, providerID, id string) (*models.Reservation, error) {
	res, err := s.loadProviderOwned(ctx, providerID, id)
	if err != nil {
		return nil, err
	}
	if err := s.transition(ctx, res, models.StatusInProgress); err != nil {
		return nil, err
	}
	return res, nil
}

// AutoStart is the worker-driven variant of Start, fired at the reserved
// instant. It is a guarded no-op when the record has already moved on.
func (s *DefaultReservationService) AutoStart(ctx context.Context, id string) error {
	res, err := s.load(ctx, id)
	if err != nil {
		if CodeOf(err) == CodeNotFound {
			return nil
		}
		return err
	}
	if res.Status != models.StatusConfirmed {
		return nil
	}
	res.Status = models.StatusInProgress
	err = s.Repo.UpdateGuarded(ctx, res, models.StatusConfirmed)
	if errors.Is(err, reservationRepo.ErrStaleStatus) {
		return nil
	}
	if err != nil {
		return newTransient("auto-start persist failed: %v", err)
	}
	s.Logger.Info("reservation auto-started", zap.String("reservation", id))
	return nil
}

// Complete closes out service delivery. The payment must have reached a
// terminal state first.
func (s *DefaultReservationService) Complete(ctx context.Context, providerID, id string) (*models.Reservation, error) {
	res, err := s.loadProviderOwned(ctx, providerID, id)
	if err != nil {
		return nil, err
	}
	if !res.PaymentStatus.PaymentSettled() {
		return nil, newPaymentIncomplete("payment is %q; settle the due amount online or mark it offline paid before completing", res.PaymentStatus)
	}
	now := time.Now()
	res.CompletedAt = &now
	if err := s.transition(ctx, res, models.StatusCompleted); err != nil {
		return nil, err
	}
	return res, nil
}

// Cancel ends a non-terminal reservation. Prior payment intents are not
// auto-refunded; refunds are an admin responsibility.
func (s *DefaultReservationService) Cancel(ctx context.Context, actorID, role, id, reason string) (*models.Reservation, error) {
	res, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorize(res, actorID, role); err != nil {
		return nil, err
	}
	if reason == "" {
		return nil, newInvalidArgument("a cancellation reason is required")
	}
	if res.Status.IsTerminal() {
		return nil, newStateInvalid("reservation %s is already %s", id, res.Status)
	}

	now := time.Now()
	res.CancellationReason = reason
	res.CancelledBy = role
	res.CancelledAt = &now
	if err := s.transition(ctx, res, models.StatusCancelled); err != nil {
		return nil, err
	}
	return res, nil
}

// Reschedule moves an in-progress appointment to a new slot, resetting it to
// pending for provider re-confirmation. Payment state carries forward.
func (s *DefaultReservationService) Reschedule(ctx context.Context, userID, id string, in models.RescheduleInput) (*models.Reservation, error) {
	res, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorize(res, userID, models.ActorUser); err != nil {
		return nil, err
	}
	if res.Kind != models.KindAppointment {
		return nil, newWrongKind("reservation %s is not an appointment", id)
	}
	if res.Status != models.StatusInProgress {
		return nil, newStateInvalid("reschedule is only permitted from in_progress, status is %q", res.Status)
	}
	if err := validateSlotInput(in.AppointmentDate, in.TimeSlot); err != nil {
		return nil, err
	}

	oldDate, oldSlot := res.AppointmentDate, *res.TimeSlot
	err = s.Locks.WithLock(ctx, listingDayLockKey(res.ServiceID, in.AppointmentDate), func(ctx context.Context) error {
		conflict, err := s.Detector.HasConflict(ctx, res.ServiceID, in.AppointmentDate, in.TimeSlot, res.ID)
		if err != nil {
			return newTransient("conflict check failed: %v", err)
		}
		if conflict {
			return newConflict("the requested time slot overlaps an existing appointment")
		}

		slot := in.TimeSlot
		res.AppointmentDate = in.AppointmentDate
		res.TimeSlot = &slot
		res.UserNotes = appendNote(res.UserNotes, fmt.Sprintf(
			"Rescheduled from %s %s-%s to %s %s-%s",
			oldDate, oldSlot.StartTime, oldSlot.EndTime,
			in.AppointmentDate, slot.StartTime, slot.EndTime))
		if in.UserNotes != "" {
			res.UserNotes = appendNote(res.UserNotes, in.UserNotes)
		}
		return s.transition(ctx, res, models.StatusPending)
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// transition applies the state-machine table and persists under a
// compare-and-set on the current status.
func (s *DefaultReservationService) transition(ctx context.Context, res *models.Reservation, to models.ReservationStatus) error {
	from := res.Status
	if !canTransition(from, to) {
		return newStateInvalid("cannot move reservation %s from %q to %q", res.ID, from, to)
	}
	res.Status = to
	err := s.Repo.UpdateGuarded(ctx, res, from)
	if errors.Is(err, reservationRepo.ErrStaleStatus) {
		res.Status = from
		return newStateInvalid("reservation %s was modified concurrently, reload and retry", res.ID)
	}
	if err != nil {
		res.Status = from
		return newTransient("failed to persist transition: %v", err)
	}
	s.Logger.Info("reservation transitioned",
		zap.String("reservation", res.ID),
		zap.String("from", string(from)), zap.String("to", string(to)))
	return nil
}

func (s *DefaultReservationService) loadProviderOwned(ctx context.Context, providerID, id string) (*models.Reservation, error) {
	res, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if res.ProviderID != providerID {
		return nil, newUnauthorized("provider %s does not own reservation %s", providerID, id)
	}
	return res, nil
}

// startInstant resolves the absolute instant a reservation is due to begin.
func (s *DefaultReservationService) startInstant(res *models.Reservation) (time.Time, bool) {
	if res.Kind == models.KindBooking {
		return res.BookingDate, !res.BookingDate.IsZero()
	}
	if res.TimeSlot == nil {
		return time.Time{}, false
	}
	at, err := time.ParseInLocation("2006-01-02 15:04", res.AppointmentDate+" "+res.TimeSlot.StartTime, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return at, true
}

func appendNote(notes, line string) string {
	if notes == "" {
		return line
	}
	return notes + "\n" + line
}
