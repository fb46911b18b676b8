package booking

import "lavellh/models"

// reservationTransitions is the allowed-successors table for the lifecycle
// state machine. in_progress → pending is the reschedule path: the provider
// must re-confirm a moved appointment.
var reservationTransitions = map[models.ReservationStatus][]models.ReservationStatus{
	models.StatusPending:    {models.StatusConfirmed, models.StatusRejected, models.StatusCancelled},
	models.StatusConfirmed:  {models.StatusInProgress, models.StatusCancelled},
	models.StatusInProgress: {models.StatusCompleted, models.StatusCancelled, models.StatusPending},
}

// paymentTransitions is the allowed-successors table for the orthogonal
// payment sub-state. authorized/partial → completed covers zero-due totals
// where the down capture settles everything.
var paymentTransitions = map[models.PaymentStatus][]models.PaymentStatus{
	models.PaymentPending:      {models.PaymentAuthorized, models.PaymentPartial},
	models.PaymentAuthorized:   {models.PaymentPartial, models.PaymentCompleted},
	models.PaymentPartial:      {models.PaymentDueRequested, models.PaymentOfflinePaid, models.PaymentCompleted},
	models.PaymentDueRequested: {models.PaymentCompleted, models.PaymentOfflinePaid},
	models.PaymentCompleted:    {models.PaymentRefunded},
	models.PaymentOfflinePaid:  {models.PaymentRefunded},
}

func canTransition(from, to models.ReservationStatus) bool {
	for _, next := range reservationTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func canPaymentTransition(from, to models.PaymentStatus) bool {
	for _, next := range paymentTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
