package booking

import (
	"lavellh/models"
)

// Platform split, in whole percent of the total.
const (
	downPaymentPercent = 30
	platformFeePercent = 10
)

// ComputeBreakdown produces the canonical price split for a listing and, for
// appointment-enabled listings, the selected slot template. All arithmetic is
// in integral cents; rounding is half away from zero.
func ComputeBreakdown(listing *models.Listing, slotID string) (models.PriceBreakdown, *models.SelectedSlot, error) {
	var total models.Amount
	var selected *models.SelectedSlot

	if listing.AppointmentEnabled {
		tmpl := listing.SlotTemplateByID(slotID)
		if tmpl == nil {
			return models.PriceBreakdown{}, nil, newNotFound("slot template %q not found on listing %s", slotID, listing.ID)
		}
		total = tmpl.Price
		selected = &models.SelectedSlot{
			TemplateID:   tmpl.ID,
			Duration:     tmpl.Duration,
			DurationUnit: tmpl.DurationUnit,
			Price:        tmpl.Price,
		}
	} else {
		total = listing.BasePrice
	}

	down := total.Percent(downPaymentPercent)
	fee := total.Percent(platformFeePercent)
	payout := down - fee
	if payout < 0 {
		payout = 0
	}

	return models.PriceBreakdown{
		TotalAmount:                   total,
		DownPayment:                   down,
		PlatformFee:                   fee,
		ProviderPayoutFromDownPayment: payout,
		DueAmount:                     total - down,
		RemainingAmount:               total,
	}, selected, nil
}
