package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/Philip-Ajayi/SHC/internal/api/respond"
	"github.com/Philip-Ajayi/SHC/internal/payments"
)

// CheckoutCreator delegates hosted checkout session creation to the payment
// gateway.
type CheckoutCreator interface {
	CreateCheckoutSession(ctx context.Context, params payments.CheckoutParams) (string, error)
}

type CheckoutHandler struct {
	Payments CheckoutCreator
	Env      string
}

func NewCheckoutHandler(gateway CheckoutCreator, env string) *CheckoutHandler {
	return &CheckoutHandler{Payments: gateway, Env: env}
}

type checkoutRequest struct {
	Amount float64 `json:"amount"`
	Name   string  `json:"name"`
	Email  string  `json:"email"`
	Type   string  `json:"type"`
	Event  string  `json:"event"`
}

// Create returns the gateway's session identifier verbatim. This endpoint
// alone uses an {error} failure body.
func (h *CheckoutHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, r, http.StatusInternalServerError, "Unable to create checkout session", err, h.Env)
		return
	}

	id, err := h.Payments.CreateCheckoutSession(r.Context(), payments.CheckoutParams{
		Amount: req.Amount,
		Name:   req.Name,
		Email:  req.Email,
		Type:   req.Type,
		Event:  req.Event,
	})
	if err != nil {
		respond.Error(w, r, http.StatusInternalServerError, "Unable to create checkout session", err, h.Env)
		return
	}

	respond.JSON(w, http.StatusOK, map[string]string{"id": id})
}
