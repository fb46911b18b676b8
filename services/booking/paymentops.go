package booking

import (
	"context"
	"time"

	"lavellh/models"

	"go.uber.org/zap"
)

const dueReminderDelay = 24 * time.Hour

// CheckoutSession returns the client secret for the down-payment intent,
// creating a fresh intent when the initial request failed at creation time.
func (s *DefaultReservationService) CheckoutSession(ctx context.Context, userID, id string) (*models.CheckoutSession, error) {
	res, err := s.GetReservation(ctx, userID, models.ActorUser, id)
	if err != nil {
		return nil, err
	}

	var intent *models.PaymentIntent
	if res.PaymentIntentID == "" {
		intent, err = s.Payments.CreateDownPaymentIntent(ctx, res)
	} else {
		intent, err = s.Payments.RefreshDownPayment(ctx, res)
	}
	if err != nil {
		return nil, err
	}
	s.persistPaymentState(ctx, res)

	return &models.CheckoutSession{
		ClientSecret: intent.ClientSecret,
		Amount:       res.Pricing.DownPayment,
		Status:       intent.Status,
	}, nil
}

// DueSession returns the client secret for the due intent. Only valid while
// the provider has requested the due amount.
func (s *DefaultReservationService) DueSession(ctx context.Context, userID, id string) (*models.CheckoutSession, error) {
	res, err := s.GetReservation(ctx, userID, models.ActorUser, id)
	if err != nil {
		return nil, err
	}
	if res.PaymentStatus != models.PaymentDueRequested {
		return nil, newStateInvalid("due payment has not been requested, payment status is %q", res.PaymentStatus)
	}
	intent, err := s.Payments.GetDueIntent(ctx, res)
	if err != nil {
		return nil, err
	}
	return &models.CheckoutSession{
		ClientSecret: intent.ClientSecret,
		Amount:       res.Pricing.DueAmount,
		Status:       intent.Status,
	}, nil
}

// ConfirmDue polls the due intent and advances the payment state when the
// processor reports success.
func (s *DefaultReservationService) ConfirmDue(ctx context.Context, userID, id string) (*models.PaymentView, error) {
	res, err := s.GetReservation(ctx, userID, models.ActorUser, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.Payments.ConfirmDuePayment(ctx, res); err != nil {
		return nil, err
	}
	s.persistPaymentState(ctx, res)
	return paymentViewOf(res), nil
}

// PaymentStatus returns the full payment view, opportunistically refreshing
// both intents.
func (s *DefaultReservationService) PaymentStatus(ctx context.Context, userID, id string) (*models.PaymentView, error) {
	res, err := s.GetReservation(ctx, userID, models.ActorUser, id)
	if err != nil {
		return nil, err
	}
	if res.PaymentIntentID != "" && !res.PaymentStatus.PaymentSettled() {
		if _, err := s.Payments.RefreshDownPayment(ctx, res); err != nil {
			s.Logger.Warn("down intent refresh failed", zap.String("reservation", id), zap.Error(err))
		}
	}
	if res.DuePaymentIntentID != "" && !res.PaymentStatus.PaymentSettled() {
		if _, err := s.Payments.ConfirmDuePayment(ctx, res); err != nil {
			s.Logger.Warn("due intent refresh failed", zap.String("reservation", id), zap.Error(err))
		}
	}
	s.persistPaymentState(ctx, res)
	return paymentViewOf(res), nil
}

// RequestDue opens the due intent on the provider's initiative.
func (s *DefaultReservationService) RequestDue(ctx context.Context, providerID, id string) (*models.CheckoutSession, error) {
	res, err := s.loadProviderOwned(ctx, providerID, id)
	if err != nil {
		return nil, err
	}
	intent, err := s.Payments.CreateDueIntent(ctx, res)
	if err != nil {
		return nil, err
	}
	s.persistPaymentState(ctx, res)

	if s.Tasks != nil {
		if err := s.Tasks.ScheduleDueReminder(res.ID, time.Now().Add(dueReminderDelay)); err != nil {
			s.Logger.Warn("failed to schedule due reminder", zap.String("reservation", id), zap.Error(err))
		}
	}
	return &models.CheckoutSession{
		ClientSecret: intent.ClientSecret,
		Amount:       res.Pricing.DueAmount,
		Status:       intent.Status,
	}, nil
}

// MarkOfflinePaid records offline settlement of the remainder.
func (s *DefaultReservationService) MarkOfflinePaid(ctx context.Context, providerID, id string) (*models.Reservation, error) {
	res, err := s.loadProviderOwned(ctx, providerID, id)
	if err != nil {
		return nil, err
	}
	if err := s.Payments.MarkOfflinePaid(ctx, res); err != nil {
		return nil, err
	}
	if err := s.Repo.Update(ctx, res); err != nil {
		return nil, newTransient("failed to persist offline payment: %v", err)
	}
	return res, nil
}

func (s *DefaultReservationService) persistPaymentState(ctx context.Context, res *models.Reservation) {
	if err := s.Repo.Update(ctx, res); err != nil {
		s.Logger.Error("failed to persist payment state",
			zap.String("reservation", res.ID), zap.Error(err))
	}
}

func paymentViewOf(res *models.Reservation) *models.PaymentView {
	return &models.PaymentView{
		PaymentStatus:          res.PaymentStatus,
		PaidVia:                res.PaidVia,
		Pricing:                res.Pricing,
		PaymentIntentID:        res.PaymentIntentID,
		PaymentIntentStatus:    res.PaymentIntentStatus,
		DuePaymentIntentID:     res.DuePaymentIntentID,
		DuePaymentIntentStatus: res.DuePaymentIntentStatus,
	}
}
