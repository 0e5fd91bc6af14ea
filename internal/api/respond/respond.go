package respond

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
)

// JSON writes a JSON payload with the given status.
func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// Message writes the loose `{"message": ...}` body used by nearly every
// endpoint. Server errors (5xx) are logged at error level, client errors
// (4xx) at warn level, via the request-scoped logger. In development and test
// environments the underlying error is appended to the message; in production
// the caller-supplied message stands alone.
func Message(w http.ResponseWriter, r *http.Request, status int, message string, err error, env string) {
	logFailure(r, status, message, err)

	body := message
	if err != nil && (env == "development" || env == "test") {
		body = message + ": " + err.Error()
	}
	JSON(w, status, map[string]string{"message": body})
}

// Error writes the `{"error": ...}` body used by the checkout endpoint alone.
func Error(w http.ResponseWriter, r *http.Request, status int, message string, err error, env string) {
	logFailure(r, status, message, err)

	body := message
	if err != nil && (env == "development" || env == "test") {
		body = err.Error()
	}
	JSON(w, status, map[string]string{"error": body})
}

// HTML writes a raw HTML fragment; the unsubscribe endpoint is reached by
// direct link-click rather than programmatic call.
func HTML(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func logFailure(r *http.Request, status int, message string, err error) {
	if err == nil || r == nil {
		return
	}
	logger := zerolog.Ctx(r.Context())
	event := logger.Warn()
	if status >= 500 {
		event = logger.Error()
	}
	event.
		Err(err).
		Int("status", status).
		Str("path", r.URL.Path).
		Str("method", r.Method).
		Msg(message)
}
