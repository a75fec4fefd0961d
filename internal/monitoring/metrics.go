package monitoring

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics 监控指标
type Metrics struct {
	// HTTP 请求指标
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	HTTPRequestSize     *prometheus.HistogramVec
	HTTPResponseSize    *prometheus.HistogramVec

	// 检索指标
	SearchesTotal  prometheus.Counter
	SearchDuration prometheus.Histogram
	EmailsViewed   prometheus.Counter

	// 评论指标
	CommentsCreated prometheus.Counter

	// 活动日志指标
	ActivityRecorded     prometheus.Counter
	ActivityQueueDropped prometheus.Counter

	// 用户指标
	UsersRegistered prometheus.Counter
	LoginsTotal     *prometheus.CounterVec

	// 系统指标
	SystemUptime        prometheus.Gauge
	DatabaseConnections prometheus.Gauge
	RedisConnections    prometheus.Gauge
	MemoryUsage         prometheus.Gauge

	// 错误指标
	ErrorsTotal *prometheus.CounterVec
	PanicsTotal prometheus.Counter

	// 限流指标
	RateLimitBlocks *prometheus.CounterVec
}

// NewMetrics 创建监控指标
func NewMetrics() *Metrics {
	return &Metrics{
		// HTTP 请求指标
		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mailarchive_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status_code"},
		),

		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "mailarchive_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),

		HTTPRequestSize: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "mailarchive_http_request_size_bytes",
				Help:    "HTTP request size in bytes",
				Buckets: prometheus.ExponentialBuckets(100, 10, 8),
			},
			[]string{"method", "endpoint"},
		),

		HTTPResponseSize: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "mailarchive_http_response_size_bytes",
				Help:    "HTTP response size in bytes",
				Buckets: prometheus.ExponentialBuckets(100, 10, 8),
			},
			[]string{"method", "endpoint"},
		),

		// 检索指标
		SearchesTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "mailarchive_searches_total",
				Help: "Total number of email searches",
			},
		),

		SearchDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "mailarchive_search_duration_seconds",
				Help:    "Email search duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),

		EmailsViewed: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "mailarchive_emails_viewed_total",
				Help: "Total number of email views",
			},
		),

		// 评论指标
		CommentsCreated: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "mailarchive_comments_created_total",
				Help: "Total number of comments created",
			},
		),

		// 活动日志指标
		ActivityRecorded: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "mailarchive_activity_records_total",
				Help: "Total number of activity records written",
			},
		),

		ActivityQueueDropped: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "mailarchive_activity_queue_dropped_total",
				Help: "Total number of activity records dropped due to a full queue",
			},
		),

		// 用户指标
		UsersRegistered: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "mailarchive_users_registered_total",
				Help: "Total number of users registered",
			},
		),

		LoginsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mailarchive_logins_total",
				Help: "Total number of login attempts",
			},
			[]string{"result"},
		),

		// 系统指标
		SystemUptime: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "mailarchive_system_uptime_seconds",
				Help: "System uptime in seconds",
			},
		),

		DatabaseConnections: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "mailarchive_database_connections",
				Help: "Number of database connections",
			},
		),

		RedisConnections: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "mailarchive_redis_connections",
				Help: "Number of Redis connections",
			},
		),

		MemoryUsage: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "mailarchive_memory_usage_bytes",
				Help: "Memory usage in bytes",
			},
		),

		// 错误指标
		ErrorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mailarchive_errors_total",
				Help: "Total number of errors",
			},
			[]string{"type", "component"},
		),

		PanicsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "mailarchive_panics_total",
				Help: "Total number of panics",
			},
		),

		// 限流指标
		RateLimitBlocks: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mailarchive_rate_limit_blocks_total",
				Help: "Total number of rate limit blocks",
			},
			[]string{"type", "key"},
		),
	}
}

// RecordHTTPRequest 记录 HTTP 请求指标
func (m *Metrics) RecordHTTPRequest(method, endpoint, statusCode string, duration time.Duration, requestSize, responseSize int64) {
	m.HTTPRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
	m.HTTPRequestSize.WithLabelValues(method, endpoint).Observe(float64(requestSize))
	m.HTTPResponseSize.WithLabelValues(method, endpoint).Observe(float64(responseSize))
}

// RecordSearch 记录一次检索
func (m *Metrics) RecordSearch(duration time.Duration) {
	m.SearchesTotal.Inc()
	m.SearchDuration.Observe(duration.Seconds())
}

// RecordEmailViewed 记录邮件查看
func (m *Metrics) RecordEmailViewed() {
	m.EmailsViewed.Inc()
}

// RecordCommentCreated 记录评论创建
func (m *Metrics) RecordCommentCreated() {
	m.CommentsCreated.Inc()
}

// RecordActivity 记录活动日志写入
func (m *Metrics) RecordActivity() {
	m.ActivityRecorded.Inc()
}

// RecordActivityDropped 记录被丢弃的活动日志
func (m *Metrics) RecordActivityDropped() {
	m.ActivityQueueDropped.Inc()
}

// RecordUserRegistered 记录用户注册
func (m *Metrics) RecordUserRegistered() {
	m.UsersRegistered.Inc()
}

// RecordLogin 记录登录尝试，result 为 success 或 failure
func (m *Metrics) RecordLogin(result string) {
	m.LoginsTotal.WithLabelValues(result).Inc()
}

// RecordError 记录错误
func (m *Metrics) RecordError(errorType, component string) {
	m.ErrorsTotal.WithLabelValues(errorType, component).Inc()
}

// RecordPanic 记录 panic
func (m *Metrics) RecordPanic() {
	m.PanicsTotal.Inc()
}

// RecordRateLimitBlock 记录限流阻止
func (m *Metrics) RecordRateLimitBlock(limitType, key string) {
	m.RateLimitBlocks.WithLabelValues(limitType, key).Inc()
}

// UpdateSystemUptime 更新系统运行时间
func (m *Metrics) UpdateSystemUptime(uptime time.Duration) {
	m.SystemUptime.Set(uptime.Seconds())
}

// UpdateDatabaseConnections 更新数据库连接数
func (m *Metrics) UpdateDatabaseConnections(count int) {
	m.DatabaseConnections.Set(float64(count))
}

// UpdateRedisConnections 更新 Redis 连接数
func (m *Metrics) UpdateRedisConnections(count int) {
	m.RedisConnections.Set(float64(count))
}

// UpdateMemoryUsage 更新内存使用量
func (m *Metrics) UpdateMemoryUsage(bytes int64) {
	m.MemoryUsage.Set(float64(bytes))
}

// HTTPHandler 返回 Prometheus HTTP 处理器
func (m *Metrics) HTTPHandler() http.Handler {
	return promhttp.Handler()
}
