package booking

import (
	"context"
	"time"

	"lavellh/models"

	"go.uber.org/zap"
)

// Intent kinds used for idempotency keys.
const (
	intentKindDown = "down"
	intentKindDue  = "due"
)

// PaymentCoordinator drives the processor lifecycle of a reservation. It is
// stateless: every operation mutates the in-memory record and leaves the
// single store write to the lifecycle manager.
type PaymentCoordinator struct {
	logger    *zap.Logger
	processor PaymentProcessor
	currency  string
}

// NewPaymentCoordinator wires a coordinator to a processor implementation.
func NewPaymentCoordinator(logger *zap.Logger, processor PaymentProcessor, currency string) *PaymentCoordinator {
	return &PaymentCoordinator{
		logger:    logger,
		processor: processor,
		currency:  currency,
	}
}

func idempotencyKey(reservationID, kind string) string {
	return reservationID + ":" + kind
}

// CreateDownPaymentIntent requests an intent for the down payment. Retrying
// on a record that already has one is a no-op returning the existing intent.
func (pc *PaymentCoordinator) CreateDownPaymentIntent(ctx context.Context, res *models.Reservation) (*models.PaymentIntent, error) {
	if res.PaymentIntentID != "" {
		return pc.retrieveWithRetry(ctx, res.PaymentIntentID)
	}
	if res.PaymentStatus != models.PaymentPending {
		return nil, newStateInvalid("down payment intent requires payment status %q, have %q", models.PaymentPending, res.PaymentStatus)
	}

	intent, err := pc.processor.CreateIntent(ctx, res.Pricing.DownPayment, pc.currency,
		idempotencyKey(res.ID, intentKindDown),
		map[string]string{"reservation_id": res.ID, "kind": intentKindDown})
	if err != nil {
		return nil, err
	}

	res.PaymentIntentID = intent.ID
	res.PaymentIntentStatus = intent.Status
	if intent.Status == models.IntentRequiresCapture || intent.Status == models.IntentSucceeded {
		res.PaymentStatus = models.PaymentAuthorized
	}
	pc.logger.Info("down payment intent created",
		zap.String("reservation", res.ID), zap.String("intent", intent.ID))
	return intent, nil
}

// RefreshDownPayment re-reads the down intent and advances the payment
// sub-state on a definitive processor answer.
func (pc *PaymentCoordinator) RefreshDownPayment(ctx context.Context, res *models.Reservation) (*models.PaymentIntent, error) {
	if res.PaymentIntentID == "" {
		return nil, newStateInvalid("reservation %s has no down payment intent", res.ID)
	}
	intent, err := pc.retrieveWithRetry(ctx, res.PaymentIntentID)
	if err != nil {
		return nil, err
	}

	res.PaymentIntentStatus = intent.Status
	switch intent.Status {
	case models.IntentSucceeded:
		if res.Pricing.DueAmount == 0 {
			pc.settle(res, models.PaymentCompleted, models.PaidViaOnline)
			now := time.Now()
			res.DuePaidAt = &now
		} else if canPaymentTransition(res.PaymentStatus, models.PaymentPartial) {
			res.PaymentStatus = models.PaymentPartial
			res.Pricing.RemainingAmount = res.Pricing.DueAmount
		}
	case models.IntentRequiresCapture:
		if canPaymentTransition(res.PaymentStatus, models.PaymentAuthorized) {
			res.PaymentStatus = models.PaymentAuthorized
		}
	}
	return intent, nil
}

// CreateDueIntent opens the second intent for the outstanding due amount.
func (pc *PaymentCoordinator) CreateDueIntent(ctx context.Context, res *models.Reservation) (*models.PaymentIntent, error) {
	if res.DuePaymentIntentID != "" {
		return pc.retrieveWithRetry(ctx, res.DuePaymentIntentID)
	}
	if res.PaymentStatus != models.PaymentPartial {
		return nil, newStateInvalid("due intent requires payment status %q, have %q", models.PaymentPartial, res.PaymentStatus)
	}
	if !reachedInProgress(res.Status) {
		return nil, newStateInvalid("due intent requires the reservation to have started, status is %q", res.Status)
	}
	if res.Pricing.DueAmount <= 0 {
		return nil, newStateInvalid("reservation %s has no due amount outstanding", res.ID)
	}

	intent, err := pc.processor.CreateIntent(ctx, res.Pricing.DueAmount, pc.currency,
		idempotencyKey(res.ID, intentKindDue),
		map[string]string{"reservation_id": res.ID, "kind": intentKindDue})
	if err != nil {
		return nil, err
	}

	now := time.Now()
	res.DuePaymentIntentID = intent.ID
	res.DuePaymentIntentStatus = intent.Status
	res.PaymentStatus = models.PaymentDueRequested
	res.DueRequestedAt = &now
	pc.logger.Info("due payment intent created",
		zap.String("reservation", res.ID), zap.String("intent", intent.ID))
	return intent, nil
}

// GetDueIntent re-reads the due intent without advancing any state.
func (pc *PaymentCoordinator) GetDueIntent(ctx context.Context, res *models.Reservation) (*models.PaymentIntent, error) {
	if res.DuePaymentIntentID == "" {
		return nil, newStateInvalid("reservation %s has no due payment intent", res.ID)
	}
	return pc.retrieveWithRetry(ctx, res.DuePaymentIntentID)
}

// ConfirmDuePayment polls the due intent; on success the payment reaches its
// online terminal state.
func (pc *PaymentCoordinator) ConfirmDuePayment(ctx context.Context, res *models.Reservation) (*models.PaymentIntent, error) {
	if res.DuePaymentIntentID == "" {
		return nil, newStateInvalid("reservation %s has no due payment intent", res.ID)
	}
	intent, err := pc.retrieveWithRetry(ctx, res.DuePaymentIntentID)
	if err != nil {
		return nil, err
	}

	res.DuePaymentIntentStatus = intent.Status
	if intent.Status == models.IntentSucceeded && canPaymentTransition(res.PaymentStatus, models.PaymentCompleted) {
		pc.settle(res, models.PaymentCompleted, models.PaidViaOnline)
		now := time.Now()
		res.DuePaidAt = &now
	}
	return intent, nil
}

// MarkOfflinePaid records that the provider collected the remainder outside
// the processor.
func (pc *PaymentCoordinator) MarkOfflinePaid(ctx context.Context, res *models.Reservation) error {
	if res.PaymentStatus != models.PaymentPartial && res.PaymentStatus != models.PaymentDueRequested {
		return newStateInvalid("offline settlement requires payment status partial or due_requested, have %q", res.PaymentStatus)
	}
	if !reachedInProgress(res.Status) {
		return newStateInvalid("offline settlement requires the reservation to have started, status is %q", res.Status)
	}

	pc.settle(res, models.PaymentOfflinePaid, models.PaidViaOffline)
	now := time.Now()
	res.OfflinePaidAt = &now
	pc.logger.Info("reservation marked offline paid", zap.String("reservation", res.ID))
	return nil
}

func (pc *PaymentCoordinator) settle(res *models.Reservation, status models.PaymentStatus, via string) {
	res.PaymentStatus = status
	res.PaidVia = via
	res.Pricing.RemainingAmount = 0
}

// retrieveWithRetry retries the idempotent processor read once on a
// transport failure.
func (pc *PaymentCoordinator) retrieveWithRetry(ctx context.Context, intentID string) (*models.PaymentIntent, error) {
	intent, err := pc.processor.RetrieveIntent(ctx, intentID)
	if err != nil && CodeOf(err) == CodeTransient {
		pc.logger.Warn("retrying intent retrieval", zap.String("intent", intentID), zap.Error(err))
		intent, err = pc.processor.RetrieveIntent(ctx, intentID)
	}
	return intent, err
}

// reachedInProgress reports whether the lifecycle has passed the start of
// service delivery.
func reachedInProgress(s models.ReservationStatus) bool {
	return s == models.StatusInProgress || s == models.StatusCompleted
}
