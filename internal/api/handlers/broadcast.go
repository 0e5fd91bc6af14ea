package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/Philip-Ajayi/SHC/internal/api/respond"
	"github.com/Philip-Ajayi/SHC/internal/domain/attendees"
	"github.com/Philip-Ajayi/SHC/internal/email"
)

// BroadcastSender fans a personalized email out to every recipient.
type BroadcastSender interface {
	SendBroadcast(ctx context.Context, recipients []email.BroadcastRecipient, subject, content string) (int, error)
}

// BroadcastHandler sends caller-supplied HTML to every non-unsubscribed
// attendee. The content is embedded unescaped and must be authored by a
// trusted operator.
type BroadcastHandler struct {
	Service *attendees.Service
	Email   BroadcastSender
	Env     string
}

func NewBroadcastHandler(service *attendees.Service, sender BroadcastSender, env string) *BroadcastHandler {
	return &BroadcastHandler{Service: service, Email: sender, Env: env}
}

type broadcastRequest struct {
	Subject string `json:"subject"`
	Content string `json:"content"`
}

func (h *BroadcastHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req broadcastRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Message(w, r, http.StatusBadRequest, "Invalid request body", err, h.Env)
		return
	}

	subscribed, err := h.Service.Subscribed(r.Context())
	if err != nil {
		respond.Message(w, r, http.StatusInternalServerError, "Unable to load recipients", err, h.Env)
		return
	}
	if len(subscribed) == 0 {
		respond.Message(w, r, http.StatusNotFound, "No subscribed users found", nil, h.Env)
		return
	}

	recipients := make([]email.BroadcastRecipient, 0, len(subscribed))
	for _, a := range subscribed {
		recipients = append(recipients, email.BroadcastRecipient{ID: a.ID, Email: a.Email})
	}

	count, err := h.Email.SendBroadcast(r.Context(), recipients, req.Subject, req.Content)
	if err != nil {
		respond.Message(w, r, http.StatusInternalServerError, "Broadcast failed", err, h.Env)
		return
	}

	respond.JSON(w, http.StatusOK, map[string]int{"count": count})
}
