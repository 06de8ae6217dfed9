package metrics

import (
	"context"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Registry is served at /metrics. Kept separate from the default registry
	// so tests can construct routers repeatedly without duplicate registration.
	Registry = prometheus.NewRegistry()

	factory = promauto.With(Registry)

	// Buckets for page renders and remote API calls (the remote API runs on a
	// cold-starting host, so the tail goes up to tens of seconds)
	CustomAPIBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 3, 5, 8, 13, 21, 34, 55}

	// HTTP Metrics
	HTTPRequestDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_server_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: CustomAPIBuckets,
		},
		[]string{"http_request_method", "http_route", "http_response_status_code"},
	)

	HTTPRequestTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_server_request_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"http_request_method", "http_route", "http_response_status_code"},
	)

	ActiveRequests = factory.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "http_server_active_requests",
			Help: "Number of active HTTP requests",
		},
		[]string{"http_request_method"},
	)

	// Remote clinic API client metrics
	APIClientRequestDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_client_request_duration_seconds",
			Help:    "Remote clinic API call duration in seconds",
			Buckets: CustomAPIBuckets,
		},
		[]string{"operation", "status"},
	)

	APIClientRequestTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_client_request_total",
			Help: "Total number of remote clinic API calls",
		},
		[]string{"operation", "status"},
	)

	// 0 closed, 1 half-open, 2 open
	CircuitBreakerState = factory.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "http_client_circuit_breaker_state",
			Help: "State of the circuit breaker guarding remote clinic API calls",
		},
		[]string{"breaker"},
	)

	// Cache Metrics
	CacheHits = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache_name"},
	)

	CacheMisses = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache_name"},
	)

	CacheSize = factory.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_entries",
			Help: "Number of entries in cache",
		},
		[]string{"cache_name"},
	)

	// Access control
	GuardDecisions = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clinic_guard_decisions_total",
			Help: "Route guard decisions by policy and outcome",
		},
		[]string{"policy", "outcome"},
	)

	SessionWrites = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clinic_session_writes_total",
			Help: "Session store writes and clears",
		},
		[]string{"backend", "operation", "status"},
	)

	// Business Metrics
	Logins = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clinic_logins_total",
			Help: "Login attempts by method and outcome",
		},
		[]string{"method", "status"},
	)

	Registrations = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clinic_registrations_total",
			Help: "Patient registration attempts",
		},
		[]string{"status"},
	)

	Bookings = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clinic_appointment_bookings_total",
			Help: "Appointment booking attempts",
		},
		[]string{"status"},
	)

	Cancellations = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clinic_appointment_cancellations_total",
			Help: "Appointment cancellations",
		},
		[]string{"status"},
	)

	ContactFormSubmissions = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clinic_contact_form_submissions_total",
			Help: "Total number of contact form submissions",
		},
		[]string{"status"},
	)

	DoctorChanges = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clinic_doctor_changes_total",
			Help: "Doctor directory changes made from the admin dashboard",
		},
		[]string{"operation", "status"},
	)

	// Infrastructure Metrics
	GoRoutines = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "process_runtime_go_goroutines",
			Help: "Number of goroutines",
		},
	)

	HeapAlloc = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "process_runtime_go_mem_heap_alloc_bytes",
			Help: "Heap allocated bytes",
		},
	)
)

func init() {
	Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
}

// RecordInfrastructureMetrics collects infrastructure metrics until ctx is done
func RecordInfrastructureMetrics(ctx context.Context) {
	ticker := time.NewTicker(15 * time.Second)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				var m runtime.MemStats
				runtime.ReadMemStats(&m)

				GoRoutines.Set(float64(runtime.NumGoroutine()))
				HeapAlloc.Set(float64(m.HeapAlloc))
			}
		}
	}()
}

// MeasureDuration measures the duration of an operation
func MeasureDuration(start time.Time) float64 {
	return time.Since(start).Seconds()
}
