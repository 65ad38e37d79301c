package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jackyeh168/crm_dashboard/src/internal/application/messaging"
)

// TemplateHandler 範本與訊息 API
type TemplateHandler struct {
	compose *messaging.ComposeMessageUseCase
	list    *messaging.ListTemplatesUseCase
	logger  *zap.Logger
}

// NewTemplateHandler 建構函數
func NewTemplateHandler(
	compose *messaging.ComposeMessageUseCase,
	list *messaging.ListTemplatesUseCase,
	logger *zap.Logger,
) *TemplateHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TemplateHandler{compose: compose, list: list, logger: logger}
}

// List GET /api/templates
func (h *TemplateHandler) List(c *gin.Context) {
	defs, err := h.list.Execute(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to load templates", zap.Error(err))
		InternalError(c, "テンプレートの読み込みに失敗しました。")
		return
	}
	Success(c, "", gin.H{"templates": defs})
}

// Compose GET /api/customers/:key/messages
func (h *TemplateHandler) Compose(c *gin.Context) {
	result, err := h.compose.Execute(c.Request.Context(), messaging.ComposeMessageCommand{Key: c.Param("key")})
	if err != nil {
		DomainError(c, err, "メッセージの作成に失敗しました。")
		return
	}
	Success(c, "", gin.H{"messages": result})
}
