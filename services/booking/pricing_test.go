package booking

import (
	"testing"

	"lavellh/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeBreakdownBooking(t *testing.T) {
	listing := bookingListing()

	breakdown, selected, err := ComputeBreakdown(&listing, "")
	require.NoError(t, err)
	assert.Nil(t, selected)

	assert.Equal(t, models.Amount(10000), breakdown.TotalAmount)
	assert.Equal(t, models.Amount(3000), breakdown.DownPayment)
	assert.Equal(t, models.Amount(1000), breakdown.PlatformFee)
	assert.Equal(t, models.Amount(2000), breakdown.ProviderPayoutFromDownPayment)
	assert.Equal(t, models.Amount(7000), breakdown.DueAmount)
	assert.Equal(t, models.Amount(10000), breakdown.RemainingAmount)
}

func TestComputeBreakdownAppointmentSlot(t *testing.T) {
	listing := appointmentListing()

	breakdown, selected, err := ComputeBreakdown(&listing, "slot-60")
	require.NoError(t, err)
	require.NotNil(t, selected)
	assert.Equal(t, "slot-60", selected.TemplateID)
	assert.Equal(t, models.Amount(18000), selected.Price)
	assert.Equal(t, models.Amount(18000), breakdown.TotalAmount)
	assert.Equal(t, models.Amount(5400), breakdown.DownPayment)
}

func TestComputeBreakdownUnknownSlot(t *testing.T) {
	listing := appointmentListing()

	_, _, err := ComputeBreakdown(&listing, "slot-missing")
	require.Error(t, err)
	assert.Equal(t, CodeNotFound, CodeOf(err))
}

func TestComputeBreakdownRounding(t *testing.T) {
	// 33.33 total: down 10.00 (999.9 rounds up), fee 3.33.
	listing := bookingListing()
	listing.BasePrice = 3333

	breakdown, _, err := ComputeBreakdown(&listing, "")
	require.NoError(t, err)
	assert.Equal(t, models.Amount(1000), breakdown.DownPayment)
	assert.Equal(t, models.Amount(333), breakdown.PlatformFee)
	assert.Equal(t, breakdown.TotalAmount, breakdown.DownPayment+breakdown.DueAmount)
}

func TestComputeBreakdownInvariants(t *testing.T) {
	prices := []models.Amount{1, 99, 100, 101, 4999, 10000, 123456789}
	for _, price := range prices {
		listing := bookingListing()
		listing.BasePrice = price

		breakdown, _, err := ComputeBreakdown(&listing, "")
		require.NoError(t, err)
		assert.Equal(t, breakdown.TotalAmount, breakdown.DownPayment+breakdown.DueAmount,
			"down + due must equal total for price %d", price)
		assert.GreaterOrEqual(t, breakdown.ProviderPayoutFromDownPayment, models.Amount(0))
		assert.Equal(t, breakdown.TotalAmount, breakdown.RemainingAmount)
	}
}
