package models

import "time"

// ReservationKind tags the two reservation variants stored in one collection.
type ReservationKind string

const (
	KindBooking     ReservationKind = "booking"
	KindAppointment ReservationKind = "appointment"
)

// ReservationStatus is the lifecycle state shared by bookings and appointments.
type ReservationStatus string

const (
	StatusPending    ReservationStatus = "pending"
	StatusConfirmed  ReservationStatus = "confirmed"
	StatusInProgress ReservationStatus = "in_progress"
	StatusCompleted  ReservationStatus = "completed"
	StatusCancelled  ReservationStatus = "cancelled"
	StatusRejected   ReservationStatus = "rejected"
)

// PaymentStatus is the orthogonal payment sub-state.
type PaymentStatus string

const (
	PaymentPending      PaymentStatus = "pending"
	PaymentAuthorized   PaymentStatus = "authorized"
	PaymentPartial      PaymentStatus = "partial"
	PaymentDueRequested PaymentStatus = "due_requested"
	PaymentCompleted    PaymentStatus = "completed"
	PaymentOfflinePaid  PaymentStatus = "offline_paid"
	PaymentRefunded     PaymentStatus = "refunded"
)

// Actor roles recorded on cancellations.
const (
	ActorUser     = "user"
	ActorProvider = "provider"
	ActorAdmin    = "admin"
)

// PaidVia values.
const (
	PaidViaOnline  = "online"
	PaidViaOffline = "offline"
)

// TimeSlot is a wall-clock range in the listing's local zone, "HH:MM" strings.
type TimeSlot struct {
	StartTime string `bson:"start_time" json:"startTime"`
	EndTime   string `bson:"end_time" json:"endTime"`
}

// SelectedSlot is the slot template resolved at appointment creation.
type SelectedSlot struct {
	TemplateID   string `bson:"template_id" json:"templateId"`
	Duration     int    `bson:"duration" json:"duration"`
	DurationUnit string `bson:"duration_unit" json:"durationUnit"`
	Price        Amount `bson:"price" json:"price"`
}

// ServiceSnapshot freezes listing attributes into the reservation at creation.
// Later listing edits never reach prior reservations.
type ServiceSnapshot struct {
	Name       string `bson:"name" json:"name"`
	Photo      string `bson:"photo" json:"photo"`
	BasePrice  Amount `bson:"base_price" json:"basePrice"`
	CategoryID string `bson:"category_id" json:"categoryId"`
}

// PriceBreakdown is the canonical split produced by the pricing policy.
type PriceBreakdown struct {
	TotalAmount                   Amount `bson:"total_amount" json:"totalAmount"`
	DownPayment                   Amount `bson:"down_payment" json:"downPayment"`
	PlatformFee                   Amount `bson:"platform_fee" json:"platformFee"`
	ProviderPayoutFromDownPayment Amount `bson:"provider_payout_from_down_payment" json:"providerPayoutFromDownPayment"`
	DueAmount                     Amount `bson:"due_amount" json:"dueAmount"`
	RemainingAmount               Amount `bson:"remaining_amount" json:"remainingAmount"`
}

// Review is the single post-completion review embedded on a reservation.
type Review struct {
	Rating           int       `bson:"rating" json:"rating"`
	Comment          string    `bson:"comment" json:"comment"`
	ModerationStatus string    `bson:"moderation_status" json:"moderationStatus"`
	ReviewedAt       time.Time `bson:"reviewed_at" json:"reviewedAt"`
}

// ModerationActive marks a review that counts towards the aggregate rating.
const ModerationActive = "active"

// Reservation is one booking or appointment record. The record store owns it;
// in-memory copies are transient.
type Reservation struct {
	ID         string          `bson:"id" json:"id"`
	Kind       ReservationKind `bson:"kind" json:"kind"`
	UserID     string          `bson:"user_id" json:"userId"`
	ServiceID  string          `bson:"service_id" json:"serviceId"`
	ProviderID string          `bson:"provider_id" json:"providerId"`

	// Booking variant: absolute instant. Appointment variant: calendar day
	// plus wall-clock slot.
	BookingDate     time.Time     `bson:"booking_date,omitempty" json:"bookingDate,omitempty"`
	AppointmentDate string        `bson:"appointment_date,omitempty" json:"appointmentDate,omitempty"`
	TimeSlot        *TimeSlot     `bson:"time_slot,omitempty" json:"timeSlot,omitempty"`
	SelectedSlot    *SelectedSlot `bson:"selected_slot,omitempty" json:"selectedSlot,omitempty"`

	Service ServiceSnapshot `bson:"service" json:"service"`
	Pricing PriceBreakdown  `bson:"pricing" json:"pricing"`

	Status        ReservationStatus `bson:"status" json:"status"`
	PaymentStatus PaymentStatus     `bson:"payment_status" json:"paymentStatus"`
	PaidVia       string            `bson:"paid_via,omitempty" json:"paidVia,omitempty"`

	PaymentIntentID        string     `bson:"payment_intent_id,omitempty" json:"paymentIntentId,omitempty"`
	PaymentIntentStatus    string     `bson:"payment_intent_status,omitempty" json:"paymentIntentStatus,omitempty"`
	DuePaymentIntentID     string     `bson:"due_payment_intent_id,omitempty" json:"duePaymentIntentId,omitempty"`
	DuePaymentIntentStatus string     `bson:"due_payment_intent_status,omitempty" json:"duePaymentIntentStatus,omitempty"`
	DueRequestedAt         *time.Time `bson:"due_requested_at,omitempty" json:"dueRequestedAt,omitempty"`
	DuePaidAt              *time.Time `bson:"due_paid_at,omitempty" json:"duePaidAt,omitempty"`
	OfflinePaidAt          *time.Time `bson:"offline_paid_at,omitempty" json:"offlinePaidAt,omitempty"`

	UserNotes     string `bson:"user_notes,omitempty" json:"userNotes,omitempty"`
	ProviderNotes string `bson:"provider_notes,omitempty" json:"providerNotes,omitempty"`

	CancellationReason string     `bson:"cancellation_reason,omitempty" json:"cancellationReason,omitempty"`
	CancelledBy        string     `bson:"cancelled_by,omitempty" json:"cancelledBy,omitempty"`
	CancelledAt        *time.Time `bson:"cancelled_at,omitempty" json:"cancelledAt,omitempty"`
	CompletedAt        *time.Time `bson:"completed_at,omitempty" json:"completedAt,omitempty"`

	Review *Review `bson:"review,omitempty" json:"review,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// IsTerminal reports whether the lifecycle state admits no further transitions.
func (s ReservationStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusRejected
}

// IsLive reports whether an appointment in this state still occupies its slot.
func (s ReservationStatus) IsLive() bool {
	return s == StatusPending || s == StatusConfirmed || s == StatusInProgress
}

// PaymentSettled reports whether no money remains outstanding.
func (p PaymentStatus) PaymentSettled() bool {
	return p == PaymentCompleted || p == PaymentOfflinePaid
}
