package booking

import (
	"context"
	"time"

	"lavellh/models"
)

// ReservationService is the booking lifecycle manager: it owns every
// mutation of booking and appointment records and coordinates pricing,
// conflict detection and the payment coordinator.
type ReservationService interface {
	// Consumer operations.
	CreateBooking(ctx context.Context, userID string, in models.CreateBookingInput) (*models.Reservation, error)
	CreateAppointment(ctx context.Context, userID string, in models.CreateAppointmentInput) (*models.Reservation, error)
	GetReservation(ctx context.Context, actorID, role, id string) (*models.Reservation, error)
	ListUserReservations(ctx context.Context, userID string, f models.ListFilter) ([]models.Reservation, int64, error)
	Cancel(ctx context.Context, actorID, role, id, reason string) (*models.Reservation, error)
	Reschedule(ctx context.Context, userID, id string, in models.RescheduleInput) (*models.Reservation, error)
	Review(ctx context.Context, userID, id string, in models.ReviewInput) (*models.Reservation, error)
	AvailableSlots(ctx context.Context, serviceID, date string) (*models.AvailableSlots, error)

	// Provider operations.
	ListProviderReservations(ctx context.Context, providerID string, f models.ListFilter) ([]models.Reservation, int64, error)
	Confirm(ctx context.Context, providerID, id string) (*models.Reservation, error)
	Reject(ctx context.Context, providerID, id, reason string) (*models.Reservation, error)
	Start(ctx context.Context, providerID, id string) (*models.Reservation, error)
	Complete(ctx context.Context, providerID, id string) (*models.Reservation, error)
	RequestDue(ctx context.Context, providerID, id string) (*models.CheckoutSession, error)
	MarkOfflinePaid(ctx context.Context, providerID, id string) (*models.Reservation, error)

	// Payment views.
	CheckoutSession(ctx context.Context, userID, id string) (*models.CheckoutSession, error)
	DueSession(ctx context.Context, userID, id string) (*models.CheckoutSession, error)
	ConfirmDue(ctx context.Context, userID, id string) (*models.PaymentView, error)
	PaymentStatus(ctx context.Context, userID, id string) (*models.PaymentView, error)

	// Background transitions.
	AutoStart(ctx context.Context, id string) error
}

// TaskScheduler enqueues deferred lifecycle work; the worker package
// implements it on the task queue.
type TaskScheduler interface {
	ScheduleAutoStart(reservationID string, at time.Time) error
	ScheduleDueReminder(reservationID string, at time.Time) error
}
