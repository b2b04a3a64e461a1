package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "targ"

// Metrics holds the HTTP and business collectors on a private registry.
type Metrics struct {
	Registry *prometheus.Registry

	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec

	FavoritesToggled    *prometheus.CounterVec
	PromotionsPurchased *prometheus.CounterVec
	ReportsFiled        prometheus.Counter
	InvoicesIssued      prometheus.Counter
	MessagesSent        prometheus.Counter
	BestEffortFailures  *prometheus.CounterVec
}

func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		Registry: registry,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route and method.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		FavoritesToggled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "favorites_toggled_total",
			Help:      "Favorite toggles by resulting state.",
		}, []string{"state"}),
		PromotionsPurchased: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "promotions_purchased_total",
			Help:      "Promotion purchases by plan.",
		}, []string{"plan"}),
		ReportsFiled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reports_filed_total",
			Help:      "Listing reports filed.",
		}),
		InvoicesIssued: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invoices_issued_total",
			Help:      "Invoices issued.",
		}),
		MessagesSent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_sent_total",
			Help:      "Conversation messages sent.",
		}),
		BestEffortFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "best_effort_failures_total",
			Help:      "Secondary writes that failed without failing the request.",
		}, []string{"step"}),
	}

	registry.MustRegister(
		m.requests,
		m.latency,
		m.FavoritesToggled,
		m.PromotionsPurchased,
		m.ReportsFiled,
		m.InvoicesIssued,
		m.MessagesSent,
		m.BestEffortFailures,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// Middleware records one sample per request, labelled by the matched route.
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if he, ok := err.(*echo.HTTPError); ok {
				status = he.Code
			}
			route := c.Path()
			if route == "" {
				route = "unmatched"
			}

			m.requests.WithLabelValues(route, c.Request().Method, strconv.Itoa(status)).Inc()
			m.latency.WithLabelValues(route, c.Request().Method).Observe(time.Since(start).Seconds())
			return err
		}
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

func (m *Metrics) FavoriteToggled(favorited bool) {
	state := "removed"
	if favorited {
		state = "added"
	}
	m.FavoritesToggled.WithLabelValues(state).Inc()
}

func (m *Metrics) PromotionPurchased(planID string) {
	m.PromotionsPurchased.WithLabelValues(planID).Inc()
}

func (m *Metrics) ReportFiled() { m.ReportsFiled.Inc() }
func (m *Metrics) InvoiceIssued() { m.InvoicesIssued.Inc() }
func (m *Metrics) MessageSent() { m.MessagesSent.Inc() }

func (m *Metrics) BestEffortFailed(step string) {
	m.BestEffortFailures.WithLabelValues(step).Inc()
}
