// Package metrics collects the service's prometheus metrics on a private
// registry and serves them at /metrics.
package metrics

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sunthewhat/event-cert-api/internal/renderer"
)

const namespace = "eventcert"

type Metrics struct {
	registry *prometheus.Registry

	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
	renders         *prometheus.CounterVec
	renderDuration  prometheus.Histogram
	emails          *prometheus.CounterVec
	tasksProcessed  *prometheus.CounterVec
	tasksFailed     *prometheus.CounterVec
	tasksInProgress *prometheus.GaugeVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "certificate_renders_total",
			Help:      "Certificate renders by result.",
		}, []string{"result"}),
		renderDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "certificate_render_duration_seconds",
			Help:      "Time spent rendering one certificate.",
			Buckets:   []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		emails: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "emails_sent_total",
			Help:      "Emails by template type and result.",
		}, []string{"type", "result"}),
		tasksProcessed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "asynq",
			Name:      "tasks_processed_total",
			Help:      "Queue tasks processed.",
		}, []string{"task_type"}),
		tasksFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "asynq",
			Name:      "tasks_failed_total",
			Help:      "Queue tasks that returned an error.",
		}, []string{"task_type"}),
		tasksInProgress: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "asynq",
			Name:      "tasks_in_progress",
			Help:      "Queue tasks currently running.",
		}, []string{"task_type"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests,
		m.httpDuration,
		m.renders,
		m.renderDuration,
		m.emails,
		m.tasksProcessed,
		m.tasksFailed,
		m.tasksInProgress,
	)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the prometheus text format.
func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}

// Middleware counts requests by their route pattern rather than the raw path.
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			}
		}

		route := c.Route().Path
		m.httpRequests.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		m.httpDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
		return err
	}
}

// ObserveRender has the shape of renderer.Observer.
func (m *Metrics) ObserveRender(kind renderer.Kind, elapsed time.Duration) {
	result := "success"
	switch kind {
	case renderer.KindInvalidInput:
		result = "invalid_input"
	case renderer.KindNotFound:
		result = "not_found"
	case renderer.KindRenderFailure:
		result = "failure"
	}
	m.renders.WithLabelValues(result).Inc()
	m.renderDuration.Observe(elapsed.Seconds())
}

// ObserveEmail has the shape of mailing.Observer.
func (m *Metrics) ObserveEmail(emailType string, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	m.emails.WithLabelValues(emailType, result).Inc()
}

func (m *Metrics) AsynqMiddleware() asynq.MiddlewareFunc {
	return func(next asynq.Handler) asynq.Handler {
		return asynq.HandlerFunc(func(ctx context.Context, task *asynq.Task) error {
			taskType := task.Type()
			m.tasksInProgress.WithLabelValues(taskType).Inc()
			defer m.tasksInProgress.WithLabelValues(taskType).Dec()

			err := next.ProcessTask(ctx, task)
			if err != nil {
				m.tasksFailed.WithLabelValues(taskType).Inc()
			}
			m.tasksProcessed.WithLabelValues(taskType).Inc()
			return err
		})
	}
}
