package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appnotification "github.com/jackyeh168/crm_dashboard/src/internal/application/notification"
)

// MsgCheckFailed 通知檢查失敗（錯誤沒有訊息時使用）
const MsgCheckFailed = "通知チェックに失敗しました"

// NotificationHandler 通知相關 API
type NotificationHandler struct {
	checkDue       *appnotification.CheckDueUseCase
	listDispatches *appnotification.ListDispatchesUseCase
	logger         *zap.Logger
}

// NewNotificationHandler 建構函數
func NewNotificationHandler(
	checkDue *appnotification.CheckDueUseCase,
	listDispatches *appnotification.ListDispatchesUseCase,
	logger *zap.Logger,
) *NotificationHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationHandler{
		checkDue:       checkDue,
		listDispatches: listDispatches,
		logger:         logger,
	}
}

// Check GET|POST /api/notifications/check（?test=true 僅預覽）
func (h *NotificationHandler) Check(c *gin.Context) {
	cmd := appnotification.CheckDueCommand{TestMode: c.Query("test") == "true"}
	if v := c.Query("horizon"); v != "" {
		if days, err := strconv.Atoi(v); err == nil && days >= 0 {
			cmd.HorizonDays = &days
		}
	}

	result, err := h.checkDue.Execute(c.Request.Context(), cmd)
	if err != nil {
		h.logger.Error("Notification check failed", zap.Error(err))
		message := err.Error()
		if message == "" {
			message = MsgCheckFailed
		}
		InternalError(c, message)
		return
	}

	data := gin.H{"customersCount": result.CustomersCount}
	if cmd.TestMode {
		data["customers"] = result.Customers
	} else {
		data["status"] = result.Status
	}
	Success(c, result.Message, data)
}

// History GET /api/notifications/history?limit=N
func (h *NotificationHandler) History(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	dispatches, err := h.listDispatches.Execute(limit)
	if err != nil {
		h.logger.Error("Failed to list dispatches", zap.Error(err))
		InternalError(c, "通知履歴の取得に失敗しました。")
		return
	}

	Success(c, "", gin.H{"dispatches": dispatches})
}
