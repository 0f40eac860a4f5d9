package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "playpark_http_requests_total",
			Help: "Total number of HTTP requests by route and status",
		},
		[]string{"method", "route", "status"},
	)

	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "playpark_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	ClientsRegistered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "playpark_clients_registered_total",
			Help: "Total number of registered clients",
		},
		[]string{"kind"},
	)

	QRCodesIssued = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "playpark_qr_codes_issued_total",
			Help: "Total number of QR codes issued",
		},
	)

	CheckIns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "playpark_qr_scans_total",
			Help: "Total number of QR check-ins and check-outs",
		},
		[]string{"action"},
	)

	PlanInstancesCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "playpark_plan_instances_created_total",
			Help: "Total number of plan instances purchased",
		},
		[]string{"payment_method", "payment_type"},
	)

	PaymentsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "playpark_payments_created_total",
			Help: "Total number of payments by method and status",
		},
		[]string{"method", "status"},
	)

	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "playpark_cache_lookups_total",
			Help: "Plan catalog cache lookups by result",
		},
		[]string{"result"},
	)

	JobRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "playpark_job_runs_total",
			Help: "Housekeeping job runs by job and outcome",
		},
		[]string{"job", "outcome"},
	)
)

// Middleware records request counts and latencies per matched route.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		route := c.Route().Path
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		HTTPRequests.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		HTTPDuration.WithLabelValues(c.Method(), route).Observe(time.Since(start).Seconds())
		return err
	}
}

// Handler exposes the default registry in Prometheus text format.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
