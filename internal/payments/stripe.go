package payments

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/Philip-Ajayi/SHC/internal/config"
	"github.com/Philip-Ajayi/SHC/internal/metrics"
	"github.com/rs/zerolog"
	stripe "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"
)

// sessionCreator abstracts hosted checkout session creation on the gateway.
type sessionCreator interface {
	New(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
}

// Client creates hosted checkout sessions on the Stripe gateway. Donor name
// and type are attached as opaque metadata for later reconciliation; this
// system does not validate or interpret them further.
type Client struct {
	sessions   sessionCreator
	currency   string
	successURL string
	cancelURL  string
	logger     zerolog.Logger
}

func NewClient(cfg config.PaymentsConfig, baseURL string, logger zerolog.Logger) *Client {
	base := strings.TrimRight(baseURL, "/")
	api := client.New(cfg.SecretKey, nil)
	return &Client{
		sessions:   api.CheckoutSessions,
		currency:   cfg.Currency,
		successURL: base + "/giving?status=success",
		cancelURL:  base + "/giving?status=cancelled",
		logger:     logger.With().Str("component", "payments").Logger(),
	}
}

// CheckoutParams describes a single one-time payment.
type CheckoutParams struct {
	Amount float64
	Name   string
	Email  string
	Type   string
	Event  string
}

// CreateCheckoutSession builds a single line-item payment request and returns
// the gateway's session identifier verbatim.
func (c *Client) CreateCheckoutSession(ctx context.Context, p CheckoutParams) (string, error) {
	if p.Amount <= 0 {
		return "", fmt.Errorf("amount must be positive, got %v", p.Amount)
	}

	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(c.currency),
					UnitAmount: stripe.Int64(MinorUnits(p.Amount)),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(ProductName(p.Type, p.Event)),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(c.successURL),
		CancelURL:  stripe.String(c.cancelURL),
	}
	params.Context = ctx
	if p.Email != "" {
		params.CustomerEmail = stripe.String(p.Email)
	}
	params.AddMetadata("donor_name", p.Name)
	params.AddMetadata("type", p.Type)
	if p.Event != "" {
		params.AddMetadata("event", p.Event)
	}

	session, err := c.sessions.New(params)
	if err != nil {
		metrics.CheckoutSessionsTotal.WithLabelValues("error").Inc()
		return "", fmt.Errorf("create checkout session: %w", err)
	}

	metrics.CheckoutSessionsTotal.WithLabelValues("created").Inc()
	c.logger.Info().
		Str("session_id", session.ID).
		Int64("amount_minor", MinorUnits(p.Amount)).
		Str("type", p.Type).
		Msg("checkout session created")
	return session.ID, nil
}

// MinorUnits converts a major-unit amount to minor currency units, rounded.
func MinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// ProductName branches the line-item description on the payment type:
// event-specific payments carry the event label, everything else is a
// general donation.
func ProductName(paymentType, event string) string {
	if strings.EqualFold(paymentType, "event") && event != "" {
		return fmt.Sprintf("SHC %s Payment", event)
	}
	return "SHC General Donation"
}
