package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jackyeh168/crm_dashboard/src/internal/domain/notification"
	"github.com/jackyeh168/crm_dashboard/src/internal/infrastructure/metrics"
	"go.uber.org/zap"
)

// ===========================
// WebhookClient Discord Webhook 客戶端
// ===========================

// maxErrorBody 錯誤訊息中保留的回應內容長度
const maxErrorBody = 2048

// WebhookClient 以 Discord Webhook 送出通知
type WebhookClient struct {
	url        string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewWebhookClient 建立客戶端；url 為空時 Send 返回 ErrWebhookNotConfigured
func NewWebhookClient(url string, timeout time.Duration, logger *zap.Logger) *WebhookClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WebhookClient{
		url:        strings.TrimSpace(url),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

var _ notification.Notifier = (*WebhookClient)(nil)

// payload Discord Webhook 請求內容
type payload struct {
	Content  string `json:"content"`
	Username string `json:"username,omitempty"`
}

// Channel 管道名稱
func (c *WebhookClient) Channel() string {
	return notification.ChannelDiscord
}

// Ready 檢查 Webhook URL 是否已設定
func (c *WebhookClient) Ready() error {
	if c.url == "" {
		return notification.ErrWebhookNotConfigured
	}
	return nil
}

// Send 送出訊息；非 2xx 回應返回 ErrWebhookRejected（含狀態與回應內容），不重試
func (c *WebhookClient) Send(ctx context.Context, msg notification.Message) error {
	if err := c.Ready(); err != nil {
		return err
	}

	body, err := json.Marshal(payload{Content: msg.Content, Username: msg.Username})
	if err != nil {
		return fmt.Errorf("failed to encode webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.NotificationSendDuration.WithLabelValues(notification.ChannelDiscord).Observe(time.Since(start).Seconds())
	if err != nil {
		return fmt.Errorf("failed to call discord webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		text, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		c.logger.Warn("discord webhook rejected notification",
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(text)),
		)
		return notification.ErrWebhookRejected.WithContext(
			"status", resp.Status,
			"body", strings.TrimSpace(string(text)),
		)
	}

	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
