package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics 持有服务的 Prometheus 指标，每个实例使用独立的 Registry
type Metrics struct {
	registry *prometheus.Registry

	RequestsTotal        *prometheus.CounterVec
	RequestDuration      *prometheus.HistogramVec
	LoginAttempts        *prometheus.CounterVec
	PhotoCleanupFailures prometheus.Counter
}

// New 创建并注册指标
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "campaign_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "campaign_http_request_duration_seconds",
				Help:    "HTTP request latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		LoginAttempts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "campaign_login_attempts_total",
				Help: "Admin login attempts by result",
			},
			[]string{"result"},
		),
		PhotoCleanupFailures: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "campaign_photo_cleanup_failures_total",
				Help: "Candidate photos that could not be removed from storage",
			},
		),
	}
}

// Middleware 记录请求数与耗时，route 使用 gin 的路由模板避免高基数
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.RequestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.RequestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// Handler 返回 /metrics 处理器
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveLogin 记录一次登录结果
func (m *Metrics) ObserveLogin(result string) {
	if m == nil {
		return
	}
	m.LoginAttempts.WithLabelValues(result).Inc()
}

// ObserveCleanupFailure 记录一次照片清理失败
func (m *Metrics) ObserveCleanupFailure() {
	if m == nil {
		return
	}
	m.PhotoCleanupFailures.Inc()
}
