// Package observability exposes Prometheus metrics for the journal service.
package observability

import "github.com/prometheus/client_golang/prometheus"

var (
	registrationsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "fitjournal",
		Subsystem: "auth",
		Name:      "registrations_total",
		Help:      "Number of successfully registered users.",
	})
	loginsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fitjournal",
		Subsystem: "auth",
		Name:      "logins_total",
		Help:      "Login attempts partitioned by outcome.",
	}, []string{"outcome"})
	resourceWritesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fitjournal",
		Subsystem: "journal",
		Name:      "resource_writes_total",
		Help:      "Create/update/delete operations partitioned by resource kind.",
	}, []string{"kind", "op"})
)

func init() {
	prometheus.MustRegister(registrationsTotal, loginsTotal, resourceWritesTotal)
}

// RecordRegistration counts a successful registration.
func RecordRegistration() {
	registrationsTotal.Inc()
}

// RecordLogin counts a login attempt by outcome.
func RecordLogin(success bool) {
	outcome := "rejected"
	if success {
		outcome = "success"
	}
	loginsTotal.WithLabelValues(outcome).Inc()
}

// RecordResourceWrite counts a mutating operation on a resource kind.
func RecordResourceWrite(kind, op string) {
	resourceWritesTotal.WithLabelValues(kind, op).Inc()
}
