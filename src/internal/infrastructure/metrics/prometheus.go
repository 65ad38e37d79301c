package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// ===========================
// HTTP 指標
// ===========================

var HTTPRequestsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests received",
	},
	[]string{"endpoint", "status", "method"},
)

var HTTPRequestDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"endpoint", "method"},
)

var HTTPErrorsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "http_errors_total",
		Help: "Total number of failed HTTP requests (4xx/5xx)",
	},
	[]string{"endpoint", "status", "method"},
)

var HTTPRateLimitRejectionsTotal = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "http_rate_limit_rejections_total",
		Help: "Total number of HTTP requests rejected due to rate limiting",
	},
)

// ===========================
// 業務指標
// ===========================

// CustomerSavesTotal 顧客表寫入次數（result: success / failure）
var CustomerSavesTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "crm_customer_saves_total",
		Help: "Total number of customer table saves",
	},
	[]string{"result"},
)

// BackupFailuresTotal 備份失敗次數（不影響儲存）
var BackupFailuresTotal = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "crm_backup_failures_total",
		Help: "Total number of customer table backups that could not be written",
	},
)

// NotificationsTotal 通知檢查結果（status: sent / failed / skipped / preview）
var NotificationsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "crm_notifications_total",
		Help: "Total number of notification checks by outcome",
	},
	[]string{"status"},
)

// NotificationSendDuration Webhook 呼叫耗時
var NotificationSendDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "crm_notification_send_duration_seconds",
		Help:    "Time taken to deliver a notification to the webhook",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"channel"},
)

const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

var registerOnce sync.Once

// Init 向預設 registry 註冊全部指標（可重複呼叫）
func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			HTTPRequestsTotal,
			HTTPRequestDuration,
			HTTPErrorsTotal,
			HTTPRateLimitRejectionsTotal,
			CustomerSavesTotal,
			BackupFailuresTotal,
			NotificationsTotal,
			NotificationSendDuration,
		)
	})
}
