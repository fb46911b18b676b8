package booking

import (
	"testing"

	"lavellh/models"

	"github.com/stretchr/testify/assert"
)

func TestReservationTransitions(t *testing.T) {
	cases := []struct {
		from, to models.ReservationStatus
		ok       bool
	}{
		{models.StatusPending, models.StatusConfirmed, true},
		{models.StatusPending, models.StatusRejected, true},
		{models.StatusPending, models.StatusCancelled, true},
		{models.StatusPending, models.StatusInProgress, false},
		{models.StatusPending, models.StatusCompleted, false},
		{models.StatusConfirmed, models.StatusInProgress, true},
		{models.StatusConfirmed, models.StatusCancelled, true},
		{models.StatusConfirmed, models.StatusCompleted, false},
		{models.StatusConfirmed, models.StatusRejected, false},
		{models.StatusInProgress, models.StatusCompleted, true},
		{models.StatusInProgress, models.StatusCancelled, true},
		// Reschedule resets a started appointment for re-confirmation.
		{models.StatusInProgress, models.StatusPending, true},
		{models.StatusCompleted, models.StatusCancelled, false},
		{models.StatusCancelled, models.StatusPending, false},
		{models.StatusRejected, models.StatusConfirmed, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.ok, canTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestPaymentTransitions(t *testing.T) {
	cases := []struct {
		from, to models.PaymentStatus
		ok       bool
	}{
		{models.PaymentPending, models.PaymentAuthorized, true},
		{models.PaymentPending, models.PaymentPartial, true},
		{models.PaymentPending, models.PaymentCompleted, false},
		{models.PaymentAuthorized, models.PaymentPartial, true},
		// Zero-due totals settle straight from the down capture.
		{models.PaymentAuthorized, models.PaymentCompleted, true},
		{models.PaymentPartial, models.PaymentDueRequested, true},
		{models.PaymentPartial, models.PaymentOfflinePaid, true},
		{models.PaymentPartial, models.PaymentCompleted, true},
		{models.PaymentDueRequested, models.PaymentCompleted, true},
		{models.PaymentDueRequested, models.PaymentOfflinePaid, true},
		{models.PaymentDueRequested, models.PaymentPartial, false},
		{models.PaymentCompleted, models.PaymentRefunded, true},
		{models.PaymentOfflinePaid, models.PaymentRefunded, true},
		{models.PaymentCompleted, models.PaymentPending, false},
		{models.PaymentRefunded, models.PaymentCompleted, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.ok, canPaymentTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}
