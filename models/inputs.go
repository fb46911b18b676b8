package models

// CreateBookingInput is the request body for POST /bookings.
type CreateBookingInput struct {
	ServiceID   string `json:"serviceId" binding:"required"`
	BookingDate string `json:"bookingDate" binding:"required"` // RFC 3339 instant
	UserNotes   string `json:"userNotes"`
}

// CreateAppointmentInput is the request body for POST /appointments.
type CreateAppointmentInput struct {
	ServiceID       string   `json:"serviceId" binding:"required"`
	AppointmentDate string   `json:"appointmentDate" binding:"required"` // YYYY-MM-DD
	TimeSlot        TimeSlot `json:"timeSlot" binding:"required"`
	SlotID          string   `json:"slotId" binding:"required"`
	UserNotes       string   `json:"userNotes"`
}

// RescheduleInput is the request body for PATCH /appointments/:id/reschedule.
type RescheduleInput struct {
	AppointmentDate string   `json:"appointmentDate" binding:"required"`
	TimeSlot        TimeSlot `json:"timeSlot" binding:"required"`
	UserNotes       string   `json:"userNotes"`
}

// CancelInput carries the cancellation reason.
type CancelInput struct {
	CancellationReason string `json:"cancellationReason" binding:"required"`
}

// ReviewInput is the request body for POST /.../:id/review.
type ReviewInput struct {
	Rating  int    `json:"rating" binding:"required"`
	Comment string `json:"comment" binding:"required"`
}

// RejectInput carries the provider's rejection reason.
type RejectInput struct {
	Reason string `json:"reason" binding:"required"`
}

// ListFilter narrows paginated reservation listings.
type ListFilter struct {
	Kind   ReservationKind
	Status ReservationStatus
	Page   int
	Limit  int
}

// Normalize clamps pagination to sane bounds.
func (f *ListFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 20
	}
}

// AvailableSlots is the response of the public available-slots query. The
// caller intersects templates with booked ranges; the engine does not compute
// the difference because template-vs-range semantics differ across clients.
type AvailableSlots struct {
	Templates []SlotTemplate `json:"templates"`
	Booked    []TimeSlot     `json:"booked"`
}
