package models

// Processor intent statuses the engine observes.
const (
	IntentRequiresPaymentMethod = "requires_payment_method"
	IntentRequiresConfirmation  = "requires_confirmation"
	IntentRequiresAction        = "requires_action"
	IntentRequiresCapture       = "requires_capture"
	IntentProcessing            = "processing"
	IntentSucceeded             = "succeeded"
	IntentCanceled              = "canceled"
)

// PaymentIntent is the engine's view of a processor intent.
type PaymentIntent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"clientSecret"`
	Status       string `json:"status"`
	Amount       Amount `json:"amount"`
}

// CheckoutSession is what a client needs to drive an intent to completion.
type CheckoutSession struct {
	ClientSecret string `json:"clientSecret"`
	Amount       Amount `json:"amount"`
	Status       string `json:"status"`
}

// PaymentView is the full payment state of a reservation.
type PaymentView struct {
	PaymentStatus          PaymentStatus  `json:"paymentStatus"`
	PaidVia                string         `json:"paidVia,omitempty"`
	Pricing                PriceBreakdown `json:"pricing"`
	PaymentIntentID        string         `json:"paymentIntentId,omitempty"`
	PaymentIntentStatus    string         `json:"paymentIntentStatus,omitempty"`
	DuePaymentIntentID     string         `json:"duePaymentIntentId,omitempty"`
	DuePaymentIntentStatus string         `json:"duePaymentIntentStatus,omitempty"`
}
