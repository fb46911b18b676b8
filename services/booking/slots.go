package booking

import (
	"context"

	"lavellh/models"
)

// AvailableSlots returns the listing's slot templates together with the
// booked ranges for the day. The caller intersects the two: template-vs-range
// semantics differ across clients, so the engine does not compute the
// difference itself.
func (s *DefaultReservationService) AvailableSlots(ctx context.Context, serviceID, date string) (*models.AvailableSlots, error) {
	if !validCalendarDay(date) {
		return nil, newInvalidArgument("date must be YYYY-MM-DD")
	}
	listing, err := s.fetchListing(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	if !listing.AppointmentEnabled {
		return nil, newWrongKind("listing %s does not take appointments", serviceID)
	}

	live, err := s.Repo.FindLiveAppointments(ctx, serviceID, date, "")
	if err != nil {
		return nil, newTransient("failed to load booked slots: %v", err)
	}
	booked := make([]models.TimeSlot, 0, len(live))
	for i := range live {
		if live[i].TimeSlot != nil {
			booked = append(booked, *live[i].TimeSlot)
		}
	}
	return &models.AvailableSlots{
		Templates: listing.SlotTemplates,
		Booked:    booked,
	}, nil
}
