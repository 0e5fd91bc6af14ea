package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/Philip-Ajayi/SHC/internal/api/respond"
	"github.com/Philip-Ajayi/SHC/internal/email"
)

// ContactSender forwards contact-form submissions to the mail relay.
type ContactSender interface {
	SendContact(ctx context.Context, msg email.ContactMessage) error
}

// ContactHandler is stateless: it selects a template per reason tag and
// forwards to the mail collaborator, with no persistence.
type ContactHandler struct {
	Email ContactSender
	Env   string
}

func NewContactHandler(sender ContactSender, env string) *ContactHandler {
	return &ContactHandler{Email: sender, Env: env}
}

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
	Reason  string `json:"reason"`
}

func (h *ContactHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Message(w, r, http.StatusBadRequest, "Invalid request body", err, h.Env)
		return
	}

	err := h.Email.SendContact(r.Context(), email.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Message: req.Message,
		Reason:  req.Reason,
	})
	if err != nil {
		respond.Message(w, r, http.StatusInternalServerError, "Unable to send message", err, h.Env)
		return
	}

	respond.Message(w, r, http.StatusOK, "Message sent", nil, h.Env)
}
