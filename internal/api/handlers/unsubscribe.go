package handlers

import (
	"errors"
	"fmt"
	"html"
	"net/http"
	"strings"

	"github.com/Philip-Ajayi/SHC/internal/api/respond"
	"github.com/Philip-Ajayi/SHC/internal/domain/attendees"
)

// UnsubscribeHandler flips the unsubscribed flag and returns a small
// human-readable page, since it is reached by direct link-click from an
// email rather than a programmatic call.
type UnsubscribeHandler struct {
	Service *attendees.Service
	Env     string
}

func NewUnsubscribeHandler(service *attendees.Service, env string) *UnsubscribeHandler {
	return &UnsubscribeHandler{Service: service, Env: env}
}

func (h *UnsubscribeHandler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		respond.HTML(w, http.StatusNotFound, unsubscribePage("Not Found", "This unsubscribe link is not valid."))
		return
	}

	err := h.Service.Unsubscribe(r.Context(), id)
	switch {
	case errors.Is(err, attendees.ErrNotFound):
		respond.HTML(w, http.StatusNotFound, unsubscribePage("Not Found", "This unsubscribe link is not valid."))
	case err != nil:
		respond.HTML(w, http.StatusInternalServerError, unsubscribePage("Something Went Wrong", "We could not process your request. Please try again later."))
	default:
		respond.HTML(w, http.StatusOK, unsubscribePage("Unsubscribed", "You have been unsubscribed and will no longer receive emails from us."))
	}
}

func unsubscribePage(title, message string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>%s - SHC</title>
  <style>
    body { font-family: system-ui, -apple-system, sans-serif; max-width: 600px; margin: 4rem auto; padding: 0 1rem; line-height: 1.6; text-align: center; }
    h1 { color: #333; }
    p { color: #555; }
  </style>
</head>
<body>
  <h1>%s</h1>
  <p>%s</p>
</body>
</html>`, html.EscapeString(title), html.EscapeString(title), html.EscapeString(message))
}
