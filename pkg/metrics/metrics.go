package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	ctrlmetrics "sigs.k8s.io/controller-runtime/pkg/metrics"
)

var (
	targetSelections = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "app",
			Subsystem: "publish",
			Name:      "target_selections_total",
			Help:      "Total number of publish targets selected, by repository kind.",
		},
		[]string{"kind"},
	)

	credentialResolutions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "app",
			Subsystem: "publish",
			Name:      "credential_resolutions_total",
			Help:      "Total number of credential lookups, by source and result.",
		},
		[]string{"source", "result"},
	)
)

// Credential resolution results.
const (
	ResultAuthenticated   = "authenticated"
	ResultUnauthenticated = "unauthenticated"
	ResultError           = "error"
)

func init() {
	ctrlmetrics.Registry.MustRegister(targetSelections, credentialResolutions)
}

// RecordSelection increments the selection counter for kind (release or snapshot).
func RecordSelection(kind string) {
	if kind == "" {
		return
	}
	targetSelections.WithLabelValues(kind).Inc()
}

// RecordCredentials increments the credential counter for source and result.
func RecordCredentials(source, result string) {
	if source == "" || result == "" {
		return
	}
	credentialResolutions.WithLabelValues(source, result).Inc()
}

// WriteTextfile dumps every registered metric in the Prometheus text format,
// for node exporter's textfile collector.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, ctrlmetrics.Registry)
}

// Reset clears internal metrics state. It is intended for use in tests only.
func Reset() {
	targetSelections.Reset()
	credentialResolutions.Reset()
}

// TargetSelectionCounter returns the underlying counter for selections.
func TargetSelectionCounter() *prometheus.CounterVec {
	return targetSelections
}

// CredentialResolutionCounter returns the underlying counter for credential lookups.
func CredentialResolutionCounter() *prometheus.CounterVec {
	return credentialResolutions
}
