package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Service provides Prometheus metrics for the lookup client and the
// catalog simulator.
type Service struct {
	// Lookup Metrics
	lookupsTotal   *prometheus.CounterVec
	lookupDuration *prometheus.HistogramVec

	// Signing Metrics
	signaturesGeneratedTotal    prometheus.Counter
	signatureVerificationsTotal *prometheus.CounterVec

	// Simulator Metrics
	simulatorRequestsTotal   *prometheus.CounterVec
	simulatorRequestDuration *prometheus.HistogramVec
}

// NewService creates a new metrics service. Collectors register with
// the default registry, so construct at most one per process.
func NewService() *Service {
	return &Service{
		// Lookup Metrics
		lookupsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "paapi_lookups_total",
				Help: "Total item lookups by outcome (success, empty, upstream_invalid, transport_error, parse_error)",
			},
			[]string{"outcome"},
		),
		lookupDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "paapi_lookup_duration_seconds",
				Help:    "End-to-end lookup time in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"outcome"},
		),

		// Signing Metrics
		signaturesGeneratedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "paapi_signatures_generated_total",
				Help: "Request signatures generated",
			},
		),
		signatureVerificationsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "paapi_signature_verifications_total",
				Help: "Signature verifications by result (ok, mismatch)",
			},
			[]string{"result"},
		),

		// Simulator Metrics
		simulatorRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "paapi_simulator_requests_total",
				Help: "Simulator HTTP requests by path and status",
			},
			[]string{"path", "status"},
		),
		simulatorRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "paapi_simulator_request_duration_seconds",
				Help:    "Simulator request processing time in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"path"},
		),
	}
}

// RecordLookup records one completed lookup by outcome.
func (s *Service) RecordLookup(outcome string) {
	s.lookupsTotal.WithLabelValues(outcome).Inc()
}

// RecordLookupDuration records end-to-end lookup duration.
func (s *Service) RecordLookupDuration(outcome string, duration time.Duration) {
	s.lookupDuration.WithLabelValues(outcome).Observe(duration.Seconds())
}

// RecordSignatureGenerated records a generated request signature.
func (s *Service) RecordSignatureGenerated() {
	s.signaturesGeneratedTotal.Inc()
}

// RecordSignatureVerification records a signature verification result.
func (s *Service) RecordSignatureVerification(result string) {
	s.signatureVerificationsTotal.WithLabelValues(result).Inc()
}

// RecordSimulatorRequest records a simulator HTTP request.
func (s *Service) RecordSimulatorRequest(path, status string) {
	s.simulatorRequestsTotal.WithLabelValues(path, status).Inc()
}

// RecordSimulatorRequestDuration records simulator request duration.
func (s *Service) RecordSimulatorRequestDuration(path string, duration time.Duration) {
	s.simulatorRequestDuration.WithLabelValues(path).Observe(duration.Seconds())
}
