package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Namespace for all SHC metrics
const namespace = "shc"

// Registry is the global Prometheus registry for all metrics
var Registry = prometheus.NewRegistry()

// AppInfo is a gauge that exposes application version information as labels
var AppInfo = promauto.With(Registry).NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "app_info",
		Help:      "Application version information (always set to 1, version info in labels)",
	},
	[]string{"version", "commit", "build_date"},
)

// RegistrationsTotal counts attendee registration attempts by outcome
// (registered, duplicate, error)
var RegistrationsTotal = promauto.With(Registry).NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of attendee registration attempts",
	},
	[]string{"outcome"},
)

// EmailsSentTotal counts email sends by kind (confirmation, contact, broadcast)
// and outcome (sent, error)
var EmailsSentTotal = promauto.With(Registry).NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "emails_sent_total",
		Help:      "Total number of emails handed to the mail relay",
	},
	[]string{"kind", "outcome"},
)

// BroadcastRecipients records the recipient count of each broadcast send
var BroadcastRecipients = promauto.With(Registry).NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "broadcast_recipients",
		Help:      "Number of recipients per broadcast send",
		Buckets:   []float64{1, 5, 10, 50, 100, 500, 1000, 5000},
	},
)

// CheckoutSessionsTotal counts checkout session creation attempts by outcome
var CheckoutSessionsTotal = promauto.With(Registry).NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "checkout_sessions_total",
		Help:      "Total number of payment checkout sessions requested",
	},
	[]string{"outcome"},
)

// Init initializes the metrics registry and sets version information
func Init(version, commit, buildDate string) {
	Registry.MustRegister(collectors.NewGoCollector())
	Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	AppInfo.WithLabelValues(version, commit, buildDate).Set(1)
}
