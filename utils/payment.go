// utils/payment.go
package utils

import (
	"os"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/paymentintent"
)

// PaymentProcessor is the payment surface the checkout controller depends on.
// The amount is in minor units (centavos). Only the returned intent's ID and
// Status are read by callers.
type PaymentProcessor interface {
	CreatePaymentIntent(amount int64, paymentMethod, description string) (*stripe.PaymentIntent, error)
}

// StripeService charges payment methods through Stripe. All charges are in
// MXN and confirmed immediately, with redirect-based methods disallowed so
// the synchronous checkout flow never has to hand control to the client.
type StripeService struct{}

// NewStripeService configures the Stripe SDK from the environment.
func NewStripeService() *StripeService {
	key := os.Getenv("STRIPE_SECRET_KEY")
	if key == "" {
		panic("STRIPE_SECRET_KEY is not set in environment variables")
	}
	stripe.Key = key
	return &StripeService{}
}

// CreatePaymentIntent creates and confirms a PaymentIntent in one call.
func (s *StripeService) CreatePaymentIntent(amount int64, paymentMethod, description string) (*stripe.PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:        stripe.Int64(amount),
		Currency:      stripe.String(string(stripe.CurrencyMXN)),
		PaymentMethod: stripe.String(paymentMethod),
		Confirm:       stripe.Bool(true),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled:        stripe.Bool(true),
			AllowRedirects: stripe.String(string(stripe.PaymentIntentAutomaticPaymentMethodsAllowRedirectsNever)),
		},
		Description: stripe.String(description),
	}
	return paymentintent.New(params)
}
