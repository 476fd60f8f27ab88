package infra

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	// Latency: время обработки HTTP-запроса по шаблону роута
	RequestDuration *prometheus.HistogramVec

	// Traffic/Errors: запросы по роуту и коду ответа
	TotalRequests *prometheus.CounterVec

	// Движок алертов: время Query и Stats без учета имитируемой задержки
	QueryDuration *prometheus.HistogramVec

	// Логины: success, failed, throttled
	LoginAttempts *prometheus.CounterVec

	// Кэш статистики дашборда: hit, miss, error
	StatsCache *prometheus.CounterVec

	// Открытые и закрытые через logout сессии. Истечение по TTL сюда не попадает:
	// в Redis его не видно, поэтому живые сессии отдельным gauge не считаем.
	Sessions *prometheus.CounterVec

	// Saturation: состояние Circuit Breaker (0 - closed, 1 - half-open, 2 - open)
	CircuitBreakerState *prometheus.GaugeVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	// Null Object Pattern - Если рег не передан, используем локальный, который никуда не подключен
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	return &Metrics{
		RequestDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "snortview_http_request_duration_seconds",
			Help:    "Histogram of HTTP request latencies.",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}, []string{"method", "route"}),

		TotalRequests: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "snortview_http_requests_total",
			Help: "Total number of HTTP requests.",
		}, []string{"method", "route", "status"}),

		QueryDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "snortview_alert_engine_duration_seconds",
			Help:    "Time spent in the alert query and aggregation engine.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		}, []string{"op"}),

		LoginAttempts: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "snortview_login_attempts_total",
			Help: "Login attempts by outcome.",
		}, []string{"outcome"}),

		StatsCache: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "snortview_stats_cache_total",
			Help: "Dashboard stats cache lookups by result.",
		}, []string{"result"}),

		Sessions: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "snortview_sessions_total",
			Help: "Sessions opened on login and closed on logout.",
		}, []string{"event"}),

		CircuitBreakerState: promauto.With(reg).NewGaugeVec(prometheus.GaugeOpts{
			Name: "snortview_circuit_breaker_state",
			Help: "Current state of the circuit breaker (0=closed, 1=half-open, 2=open).",
		}, []string{"name"}),
	}
}

// Middleware пишет latency и счетчик по шаблону роута chi, а не по сырому пути
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		m.RequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
		m.TotalRequests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
	})
}
