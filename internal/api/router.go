package api

import (
	"net/http"
	"sort"
	"strings"

	"github.com/Philip-Ajayi/SHC/internal/api/handlers"
	"github.com/Philip-Ajayi/SHC/internal/api/middleware"
	"github.com/Philip-Ajayi/SHC/internal/config"
	"github.com/Philip-Ajayi/SHC/internal/domain/attendees"
	"github.com/Philip-Ajayi/SHC/internal/email"
	"github.com/Philip-Ajayi/SHC/internal/metrics"
	"github.com/Philip-Ajayi/SHC/internal/payments"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Dependencies are the collaborator handles, constructed once at process
// start and passed explicitly rather than held as package globals.
type Dependencies struct {
	Attendees *attendees.Service
	Email     *email.Service
	Payments  *payments.Client
	Store     handlers.Pinger
}

func NewRouter(cfg config.Config, logger zerolog.Logger, deps Dependencies) http.Handler {
	attendeesHandler := handlers.NewAttendeesHandler(deps.Attendees, deps.Email, cfg.Environment)
	contactHandler := handlers.NewContactHandler(deps.Email, cfg.Environment)
	broadcastHandler := handlers.NewBroadcastHandler(deps.Attendees, deps.Email, cfg.Environment)
	unsubscribeHandler := handlers.NewUnsubscribeHandler(deps.Attendees, cfg.Environment)
	checkoutHandler := handlers.NewCheckoutHandler(deps.Payments, cfg.Environment)

	mux := http.NewServeMux()
	mux.Handle("/healthz", handlers.Healthz())
	mux.Handle("/readyz", handlers.Readyz(deps.Store))
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	mux.Handle("/api/register", methodMux(map[string]http.Handler{
		http.MethodPost: http.HandlerFunc(attendeesHandler.Register),
	}))
	mux.Handle("/api/mark-attendance", methodMux(map[string]http.Handler{
		http.MethodPost: http.HandlerFunc(attendeesHandler.MarkAttendance),
	}))
	mux.Handle("/api/remove-attendance", methodMux(map[string]http.Handler{
		http.MethodPost: http.HandlerFunc(attendeesHandler.RemoveAttendance),
	}))
	mux.Handle("/api/check-attendance", methodMux(map[string]http.Handler{
		http.MethodGet: http.HandlerFunc(attendeesHandler.CheckAttendance),
	}))
	mux.Handle("/api/attendance/{session}/{year}", http.HandlerFunc(attendeesHandler.BySession))
	mux.Handle("/api/users/{year}", http.HandlerFunc(attendeesHandler.ByYear))
	mux.Handle("/api/users-no-attendance/{year}", http.HandlerFunc(attendeesHandler.NoAttendance))
	mux.Handle("/api/contact", methodMux(map[string]http.Handler{
		http.MethodPost: http.HandlerFunc(contactHandler.Send),
	}))
	mux.Handle("/api/send-user-broadcast", methodMux(map[string]http.Handler{
		http.MethodPost: http.HandlerFunc(broadcastHandler.Send),
	}))
	mux.Handle("/api/create-checkout-session", methodMux(map[string]http.Handler{
		http.MethodPost: http.HandlerFunc(checkoutHandler.Create),
	}))
	mux.Handle("/unsubscribe/{id}", http.HandlerFunc(unsubscribeHandler.Unsubscribe))

	// Everything else is the front-end bundle with an index.html fallback.
	mux.Handle("/", handlers.NewStatic(cfg.Static.Dir))

	var handler http.Handler = mux
	handler = middleware.CORS(cfg.CORS, logger)(handler)
	handler = metrics.HTTPMiddleware(handler)
	handler = middleware.RequestLogging(logger)(handler)
	handler = middleware.Tracing(handler)
	handler = middleware.CorrelationID(logger)(handler)
	return handler
}

func methodMux(handlers map[string]http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if handler, ok := handlers[r.Method]; ok {
			handler.ServeHTTP(w, r)
			return
		}
		w.Header().Set("Allow", allowedMethods(handlers))
		w.WriteHeader(http.StatusMethodNotAllowed)
	})
}

func allowedMethods(handlers map[string]http.Handler) string {
	methods := make([]string, 0, len(handlers))
	for method := range handlers {
		methods = append(methods, method)
	}
	sort.Strings(methods)
	return strings.Join(methods, ", ")
}
