package metrics

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

type Outcome string

const (
	Success                  Outcome       = "success"
	Error                    Outcome       = "error"
	MetricRequestTimeout     time.Duration = 5 * time.Second
	MetricRequestIdleTimeout time.Duration = 10 * time.Second
)

func (O Outcome) String() string {
	return string(O)
}

func outcome(failure bool) Outcome {
	if failure {
		return Error
	}
	return Success
}

var (
	once                           sync.Once
	metricsRouter                  *chi.Mux
	hostClientLatency              *prometheus.HistogramVec
	queueSendErrorCounter          prometheus.Counter
	clientRequestDurationHistogram *prometheus.HistogramVec
	pollerDurationHistogram        *prometheus.HistogramVec
	pollerLastSuccessGauge         *prometheus.GaugeVec
	operationDuration              *prometheus.HistogramVec
	ledgerGauge                    *prometheus.GaugeVec
	burnQueueOccupancyGauge        prometheus.Gauge
	validatorsGauge                *prometheus.GaugeVec
	burnOutcomeCounter             *prometheus.CounterVec
	dbLatency                      *prometheus.HistogramVec
)

// collectors are registered on load so that recording never hits a nil
// collector, Init only exposes them
func init() {
	registerMetrics()
}

// Init starts the metrics server.
func Init(metricsPort int) {
	once.Do(func() {
		initMetricsRouter(metricsPort)
	})
}

// initMetricsRouter initializes the metrics router.
func initMetricsRouter(metricsPort int) {
	metricsRouter = chi.NewRouter()
	metricsRouter.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})
	// Create a custom server with timeout settings
	metricsAddr := fmt.Sprintf(":%d", metricsPort)
	server := &http.Server{
		Addr:         metricsAddr,
		Handler:      metricsRouter,
		ReadTimeout:  MetricRequestTimeout,
		WriteTimeout: MetricRequestTimeout,
		IdleTimeout:  MetricRequestIdleTimeout,
	}

	// Start the server in a separate goroutine
	go func() {
		log.Printf("Starting metrics server on %s", metricsAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msgf("Error starting metrics server on %s", metricsAddr)
		}
	}()
}

// registerMetrics initializes and register the Prometheus metrics.
func registerMetrics() {
	defaultHistogramBucketsSeconds := []float64{0.1, 0.5, 1, 2.5, 5, 10, 30}

	// client requests are the ones sending to other service
	clientRequestDurationHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "client_request_duration_seconds",
			Help:    "Histogram of outgoing client request durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"baseurl", "method", "path", "status"},
	)

	hostClientLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "host_client_latency_seconds",
			Help:    "Histogram of host ledger client durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"method", "status"},
	)

	// add a counter for the number of errors from the fail to push message into queue
	queueSendErrorCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "queue_send_error_count",
			Help: "The total number of errors when sending messages to the queue",
		},
	)

	pollerDurationHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "poller_duration_seconds",
			Help:    "Histogram of poller durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"type", "status"},
	)

	pollerLastSuccessGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "poller_last_success_timestamp_seconds",
			Help: "Unix time of the last successful run of each poller",
		},
		[]string{"type"},
	)

	operationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "protocol_operation_duration_seconds",
			Help:    "Protocol operation duration in seconds, commit included.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"operation", "status"},
	)

	ledgerGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "protocol_ledger",
			Help: "Last committed ledger counters",
		},
		[]string{"counter"},
	)

	burnQueueOccupancyGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "burn_queue_occupancy",
			Help: "Number of occupied burn queue slots",
		},
	)

	validatorsGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "validators_count",
			Help: "Number of registered validators by status",
		},
		[]string{"status"},
	)

	burnOutcomeCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "burn_outcome_count",
			Help: "Burns split by outcome: settled, deferred or exhausted",
		},
		[]string{"outcome"},
	)

	dbLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "db_latency_seconds",
			Help: "DB latency in seconds splitted by method and execution status",
		},
		[]string{"method", "status"},
	)

	prometheus.MustRegister(
		hostClientLatency,
		queueSendErrorCounter,
		clientRequestDurationHistogram,
		pollerDurationHistogram,
		pollerLastSuccessGauge,
		operationDuration,
		ledgerGauge,
		burnQueueOccupancyGauge,
		validatorsGauge,
		burnOutcomeCounter,
		dbLatency,
	)
}

func RecordHostClientLatency(d time.Duration, method string, failure bool) {
	hostClientLatency.WithLabelValues(method, outcome(failure).String()).Observe(d.Seconds())
}

func RecordDbLatency(d time.Duration, method string, failure bool) {
	dbLatency.WithLabelValues(method, outcome(failure).String()).Observe(d.Seconds())
}

func RecordOperationDuration(d time.Duration, operation string, failure bool) {
	operationDuration.WithLabelValues(operation, outcome(failure).String()).Observe(d.Seconds())
}

// RecordLedger publishes the committed ledger counters
func RecordLedger(totalBacking, totalSupply, pegRatio, idleBacking uint64) {
	ledgerGauge.WithLabelValues("total_backing").Set(float64(totalBacking))
	ledgerGauge.WithLabelValues("total_supply").Set(float64(totalSupply))
	ledgerGauge.WithLabelValues("peg_ratio").Set(float64(pegRatio))
	ledgerGauge.WithLabelValues("idle_backing").Set(float64(idleBacking))
}

func RecordBurnQueueOccupancy(n int) {
	burnQueueOccupancyGauge.Set(float64(n))
}

func RecordValidatorsByStatus(counts map[string]int) {
	validatorsGauge.Reset()
	for status, n := range counts {
		validatorsGauge.WithLabelValues(status).Set(float64(n))
	}
}

func IncBurnOutcome(outcome string) {
	burnOutcomeCounter.WithLabelValues(outcome).Inc()
}

// StartClientRequestDurationTimer starts a timer to measure outgoing client request duration.
func StartClientRequestDurationTimer(baseUrl, method, path string) func(statusCode int) {
	startTime := time.Now()
	return func(statusCode int) {
		duration := time.Since(startTime).Seconds()
		clientRequestDurationHistogram.WithLabelValues(
			baseUrl,
			method,
			path,
			fmt.Sprintf("%d", statusCode),
		).Observe(duration)
	}
}

func RecordQueueSendError() {
	queueSendErrorCounter.Inc()
}
