package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/Philip-Ajayi/SHC/internal/api/respond"
)

// Pinger verifies connectivity to the document store.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Healthz reports process liveness.
func Healthz() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respond.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
}

// Readyz reports readiness: the service is ready once the document store
// responds to a ping.
func Readyz(store Pinger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := store.Ping(ctx); err != nil {
			respond.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
		respond.JSON(w, http.StatusOK, map[string]string{"status": "ready"})
	})
}
