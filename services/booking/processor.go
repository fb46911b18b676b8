package booking

import (
	"context"
	"errors"
	"time"

	"lavellh/models"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
)

// processorTimeout bounds every external processor call.
const processorTimeout = 10 * time.Second

// PaymentProcessor is the engine's contract with the external payment
// processor. Implementations must be safe for concurrent use.
type PaymentProcessor interface {
	CreateIntent(ctx context.Context, amount models.Amount, currency, idempotencyKey string, metadata map[string]string) (*models.PaymentIntent, error)
	RetrieveIntent(ctx context.Context, id string) (*models.PaymentIntent, error)
	CancelIntent(ctx context.Context, id string) (*models.PaymentIntent, error)
}

// StripeProcessor talks to Stripe payment intents. The API key is set
// globally at startup.
type StripeProcessor struct{}

// CreateIntent requests a new payment intent. The idempotency key guarantees
// a retried request cannot mint a second intent.
func (StripeProcessor) CreateIntent(ctx context.Context, amount models.Amount, currency, idempotencyKey string, metadata map[string]string) (*models.PaymentIntent, error) {
	ctx, cancel := context.WithTimeout(ctx, processorTimeout)
	defer cancel()

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amount.Cents()),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	params.IdempotencyKey = stripe.String(idempotencyKey)
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, classifyProcessorErr(err)
	}
	return fromStripeIntent(pi), nil
}

// RetrieveIntent refreshes the processor's view of an intent.
func (StripeProcessor) RetrieveIntent(ctx context.Context, id string) (*models.PaymentIntent, error) {
	ctx, cancel := context.WithTimeout(ctx, processorTimeout)
	defer cancel()

	params := &stripe.PaymentIntentParams{}
	params.Context = ctx
	pi, err := paymentintent.Get(id, params)
	if err != nil {
		return nil, classifyProcessorErr(err)
	}
	return fromStripeIntent(pi), nil
}

// CancelIntent voids an intent; used by the admin refund flow only.
func (StripeProcessor) CancelIntent(ctx context.Context, id string) (*models.PaymentIntent, error) {
	ctx, cancel := context.WithTimeout(ctx, processorTimeout)
	defer cancel()

	params := &stripe.PaymentIntentCancelParams{}
	params.Context = ctx
	pi, err := paymentintent.Cancel(id, params)
	if err != nil {
		return nil, classifyProcessorErr(err)
	}
	return fromStripeIntent(pi), nil
}

func fromStripeIntent(pi *stripe.PaymentIntent) *models.PaymentIntent {
	return &models.PaymentIntent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Status:       string(pi.Status),
		Amount:       models.Amount(pi.Amount),
	}
}

// classifyProcessorErr splits processor failures into retriable transport
// errors and definitive answers.
func classifyProcessorErr(err error) error {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		if stripeErr.HTTPStatusCode >= 500 {
			return newTransient("processor unavailable: %v", stripeErr.Msg)
		}
		return newProcessorError("processor rejected request: %v", stripeErr.Msg)
	}
	return newTransient("processor call failed: %v", err)
}
