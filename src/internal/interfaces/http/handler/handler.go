package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	appcustomer "github.com/jackyeh168/crm_dashboard/src/internal/application/customer"
	"github.com/jackyeh168/crm_dashboard/src/internal/domain/customer"
	"github.com/jackyeh168/crm_dashboard/src/internal/domain/shared"
)

// Handlers 處理器集合
type Handlers struct {
	Customer     *CustomerHandler
	Notification *NotificationHandler
	Template     *TemplateHandler
}

// RouteOptions 路由選項
type RouteOptions struct {
	// NotifyLimiter 套用在通知檢查路由（nil 表示不限制）
	NotifyLimiter gin.HandlerFunc
}

// RegisterRoutes 註冊全部路由
func RegisterRoutes(r *gin.Engine, h *Handlers, opts RouteOptions) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		customers := api.Group("/customers")
		customers.GET("", h.Customer.List)
		customers.POST("", h.Customer.Save)
		customers.GET("/status", h.Customer.Status)
		customers.GET("/stats", h.Customer.Stats)
		customers.PATCH("/:key", h.Customer.Edit)
		customers.POST("/:key/tags/:tag", h.Customer.ToggleTag)
		customers.GET("/:key/messages", h.Template.Compose)

		api.GET("/templates", h.Template.List)

		notifications := api.Group("/notifications")
		check := []gin.HandlerFunc{h.Notification.Check}
		if opts.NotifyLimiter != nil {
			check = append([]gin.HandlerFunc{opts.NotifyLimiter}, check...)
		}
		notifications.GET("/check", check...)
		notifications.POST("/check", check...)
		notifications.GET("/history", h.Notification.History)
	}
}

// ===========================
// 回應格式：{"ok": bool, "message": string, ...data}
// ===========================

// Success 成功回應
func Success(c *gin.Context, message string, data gin.H) {
	respond(c, http.StatusOK, true, message, data)
}

// Error 錯誤回應
func Error(c *gin.Context, status int, message string) {
	respond(c, status, false, message, nil)
}

// BadRequest 參數錯誤回應
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// NotFound 資源不存在回應
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

// InternalError 伺服器錯誤回應
func InternalError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, message)
}

func respond(c *gin.Context, status int, ok bool, message string, data gin.H) {
	body := gin.H{}
	for k, v := range data {
		body[k] = v
	}
	body["ok"] = ok
	body["message"] = message
	c.JSON(status, body)
}

// DomainError 依領域錯誤種類決定狀態碼，訊息使用錯誤本身的說明
func DomainError(c *gin.Context, err error, fallback string) {
	var domainErr *shared.DomainError
	if !errors.As(err, &domainErr) {
		if errors.Is(err, appcustomer.ErrSessionClosed) {
			Error(c, http.StatusServiceUnavailable, fallback)
			return
		}
		InternalError(c, fallback)
		return
	}

	switch {
	case errors.Is(err, customer.ErrInvalidRecordKey), errors.Is(err, customer.ErrRecordNotFound):
		NotFound(c, domainErr.Message)
	case errors.Is(err, customer.ErrUnknownField),
		errors.Is(err, customer.ErrReadOnlyField),
		errors.Is(err, customer.ErrUnknownTag):
		BadRequest(c, domainErr.Message)
	default:
		InternalError(c, fallback)
	}
}
