package appointment

import (
	"context"
	"errors"
	"fmt"

	appointmentRepo "consultorio/database/repository/appointment"
	"consultorio/models"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
)

// PaymentIntentResult carries what the client needs to complete a card
// payment against Stripe.
type PaymentIntentResult struct {
	IntentID     string `json:"intentId"`
	ClientSecret string `json:"clientSecret"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
}

// CreateCardPaymentIntent creates a Stripe PaymentIntent for the
// appointment's cost so the patient can pay by card. The intent id is
// stored on the appointment; RegisterPayment later marks it paid.
func (s *DefaultAppointmentService) CreateCardPaymentIntent(ctx context.Context, professionalID, id string) (*PaymentIntentResult, error) {
	appt, err := s.Appointments.GetByID(ctx, professionalID, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrNotFound) {
			return nil, newRuleError(CodeNotFound, "appointment not found")
		}
		return nil, fmt.Errorf("fetching appointment: %w", err)
	}
	if appt.Payment.Status == models.PaymentPaid {
		return nil, newRuleError(CodeInvalidInput, "appointment is already paid")
	}
	if appt.Cost <= 0 {
		return nil, newRuleError(CodeInvalidInput, "appointment has no cost to charge")
	}

	amountCents := int64(appt.Cost * 100)
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountCents),
		Currency: stripe.String(string(stripe.CurrencyUSD)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
		Metadata: map[string]string{
			"appointmentId":  appt.ID,
			"professionalId": professionalID,
		},
	}
	intent, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("creating payment intent: %w", err)
	}

	payment := appt.Payment
	payment.StripeIntentID = intent.ID
	if err := s.Appointments.RegisterPayment(ctx, professionalID, id, payment); err != nil {
		return nil, fmt.Errorf("storing payment intent reference: %w", err)
	}

	return &PaymentIntentResult{
		IntentID:     intent.ID,
		ClientSecret: intent.ClientSecret,
		Amount:       amountCents,
		Currency:     string(stripe.CurrencyUSD),
	}, nil
}
