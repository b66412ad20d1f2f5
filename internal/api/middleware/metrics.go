// metrics.go — Prometheus метрики: HTTP и бизнес-счётчики.
// HTTP: ft_http_requests_total, ft_http_request_duration_seconds.
package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP метрики
var (
	// httpRequestsTotal — общее количество HTTP-запросов.
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ft_http_requests_total",
			Help: "Общее количество HTTP-запросов",
		},
		[]string{"method", "path", "status"},
	)

	// httpRequestDuration — гистограмма длительности HTTP-запросов.
	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ft_http_request_duration_seconds",
			Help:    "Длительность HTTP-запросов в секундах",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)

// Бизнес-метрики
var (
	recordsSaved = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ft_records_saved_total",
			Help: "Количество сохранённых фичей по таблицам",
		},
		[]string{"table"},
	)

	recordsDeleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ft_records_deleted_total",
			Help: "Количество удалённых фичей по таблицам",
		},
		[]string{"table"},
	)

	newsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ft_news_created_total",
			Help: "Количество созданных новостей",
		},
	)

	logins = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ft_logins_total",
			Help: "Попытки входа по результату",
		},
		[]string{"result"},
	)
)

// RecordSaved увеличивает счётчик сохранённых фичей.
func RecordSaved(table string) { recordsSaved.WithLabelValues(table).Inc() }

// RecordDeleted увеличивает счётчик удалённых фичей.
func RecordDeleted(table string) { recordsDeleted.WithLabelValues(table).Inc() }

// NewsCreated увеличивает счётчик новостей.
func NewsCreated() { newsCreated.Inc() }

// LoginAttempt учитывает попытку входа (result: ok, fail).
func LoginAttempt(result string) { logins.WithLabelValues(result).Inc() }

// MetricsMiddleware возвращает HTTP middleware для сбора Prometheus метрик.
func MetricsMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			wrapped := newMetricsResponseWriter(w)
			next.ServeHTTP(wrapped, r)

			// Шаблон маршрута chi известен только после роутинга.
			path := ""
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				path = rctx.RoutePattern()
			}
			if path == "" {
				path = normalizePath(r.URL.Path)
			}

			duration := time.Since(start).Seconds()
			status := strconv.Itoa(wrapped.statusCode)

			httpRequestsTotal.WithLabelValues(r.Method, path, status).Inc()
			httpRequestDuration.WithLabelValues(r.Method, path).Observe(duration)
		})
	}
}

// metricsResponseWriter — обёртка для перехвата статус-кода.
type metricsResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func newMetricsResponseWriter(w http.ResponseWriter) *metricsResponseWriter {
	return &metricsResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}
}

func (rw *metricsResponseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Unwrap позволяет http.ResponseController получить доступ к оригинальному ResponseWriter.
func (rw *metricsResponseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

// normalizePath сводит путь без шаблона chi к ограниченному набору
// лейблов, чтобы не раздувать кардинальность метрик.
// /api/fichas/laptops/12 → /api/fichas/{tabla}/{id}
func normalizePath(path string) string {
	switch path {
	case "/health/live", "/health/ready", "/metrics",
		"/api/login", "/api/registro", "/api/noticias",
		"/api/estadisticas", "/api/test-db", "/api/catalogo":
		return path
	}

	switch {
	case strings.HasPrefix(path, "/img/"):
		return "/img/{name}"
	case strings.HasPrefix(path, "/api/catalogo/"):
		return "/api/catalogo/{id}"
	case strings.HasPrefix(path, "/api/fichas/"):
		rest := strings.Trim(strings.TrimPrefix(path, "/api/fichas/"), "/")
		parts := strings.Split(rest, "/")
		if len(parts) == 1 {
			return "/api/fichas/{tabla}"
		}
		if len(parts) == 2 && isDigits(parts[1]) {
			return "/api/fichas/{tabla}/{id}"
		}
		return "/api/fichas/{group}/{slug}"
	}

	return "other"
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
