package handler

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appcustomer "github.com/jackyeh168/crm_dashboard/src/internal/application/customer"
	"github.com/jackyeh168/crm_dashboard/src/internal/domain/customer"
)

// 儲存端點的固定訊息
const (
	MsgInvalidRequest = "不正なリクエストです。"
	MsgSaveFailed     = "保存に失敗しました。"
	MsgSaved          = "保存しました。"
	MsgLoadFailed     = "顧客データの読み込みに失敗しました。"
	MsgEditFailed     = "更新に失敗しました。"
)

// sortColumns 查詢參數 sort 對應的欄位
var sortColumns = map[string]int{
	"favorite":         customer.ColumnFavorite,
	"trouble":          customer.ColumnTrouble,
	"customerName":     customer.ColumnCustomerName,
	"nextAction":       customer.ColumnNextAction,
	"contactUrl":       customer.ColumnContactURL,
	"lastContactDate":  customer.ColumnLastContactDate,
	"scheduledDate":    customer.ColumnScheduledDate,
	"transactionCount": customer.ColumnTransactionCount,
	"totalAmount":      customer.ColumnTotalAmount,
	"gender":           customer.ColumnGender,
	"age":              customer.ColumnAge,
	"notes":            customer.ColumnNotes,
}

// CustomerHandler 顧客相關 API
type CustomerHandler struct {
	session   *appcustomer.EditSession
	list      *appcustomer.ListCustomersUseCase
	save      *appcustomer.SaveCustomersUseCase
	edit      *appcustomer.EditCustomerUseCase
	toggleTag *appcustomer.ToggleTagUseCase
	logger    *zap.Logger
}

// NewCustomerHandler 建構函數
func NewCustomerHandler(
	session *appcustomer.EditSession,
	list *appcustomer.ListCustomersUseCase,
	save *appcustomer.SaveCustomersUseCase,
	edit *appcustomer.EditCustomerUseCase,
	toggleTag *appcustomer.ToggleTagUseCase,
	logger *zap.Logger,
) *CustomerHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CustomerHandler{
		session:   session,
		list:      list,
		save:      save,
		edit:      edit,
		toggleTag: toggleTag,
		logger:    logger,
	}
}

// List GET /api/customers
func (h *CustomerHandler) List(c *gin.Context) {
	result, err := h.list.Execute(c.Request.Context(), parseListQuery(c))
	if err != nil {
		h.logger.Error("Failed to list customers", zap.Error(err))
		InternalError(c, MsgLoadFailed)
		return
	}

	Success(c, "", gin.H{
		"records": result.Records,
		"count":   len(result.Records),
		"total":   result.Total,
	})
}

// Stats GET /api/customers/stats（接受與列表相同的篩選參數）
func (h *CustomerHandler) Stats(c *gin.Context) {
	result, err := h.list.Execute(c.Request.Context(), parseListQuery(c))
	if err != nil {
		h.logger.Error("Failed to summarize customers", zap.Error(err))
		InternalError(c, MsgLoadFailed)
		return
	}

	Success(c, "", gin.H{"stats": result.Stats})
}

// saveRequest 整表保存請求
type saveRequest struct {
	Records *[]appcustomer.RecordDTO `json:"records"`
}

// Save POST /api/customers
func (h *CustomerHandler) Save(c *gin.Context) {
	var req saveRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Records == nil {
		BadRequest(c, MsgInvalidRequest)
		return
	}

	result, err := h.save.Execute(c.Request.Context(), appcustomer.SaveCustomersCommand{Records: *req.Records})
	if err != nil {
		h.logger.Error("Failed to save customers", zap.Error(err))
		InternalError(c, MsgSaveFailed)
		return
	}

	Success(c, MsgSaved, gin.H{"count": result.Count})
}

// Status GET /api/customers/status
func (h *CustomerHandler) Status(c *gin.Context) {
	status := h.session.Status()

	data := gin.H{
		"records": status.Records,
		"dirty":   status.Dirty,
		"saving":  status.Saving,
	}
	if !status.LastSavedAt.IsZero() {
		data["lastSavedAt"] = status.LastSavedAt
	}
	if status.LastError != "" {
		data["lastError"] = status.LastError
	}
	Success(c, "", data)
}

// editRequest 行內編輯請求
type editRequest struct {
	Field string                  `json:"field" binding:"required"`
	Value appcustomer.LooseString `json:"value"`
}

// Edit PATCH /api/customers/:key
func (h *CustomerHandler) Edit(c *gin.Context) {
	var req editRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, MsgInvalidRequest)
		return
	}

	record, err := h.edit.Execute(c.Request.Context(), appcustomer.EditCustomerCommand{
		Key:   c.Param("key"),
		Field: req.Field,
		Value: string(req.Value),
	})
	if err != nil {
		h.logger.Warn("Failed to edit customer",
			zap.String("key", c.Param("key")),
			zap.String("field", req.Field),
			zap.Error(err),
		)
		DomainError(c, err, MsgEditFailed)
		return
	}

	Success(c, "", gin.H{"record": record})
}

// ToggleTag POST /api/customers/:key/tags/:tag
func (h *CustomerHandler) ToggleTag(c *gin.Context) {
	record, err := h.toggleTag.Execute(c.Request.Context(), appcustomer.ToggleTagCommand{
		Key: c.Param("key"),
		Tag: c.Param("tag"),
	})
	if err != nil {
		DomainError(c, err, MsgEditFailed)
		return
	}

	Success(c, "", gin.H{"record": record})
}

func parseListQuery(c *gin.Context) appcustomer.ListCustomersQuery {
	query := appcustomer.ListCustomersQuery{
		Filter: customer.Filter{
			Action:          c.Query("action"),
			Search:          c.Query("q"),
			Favorite:        optionalBool(c.Query("favorite")),
			Trouble:         optionalBool(c.Query("trouble")),
			Gender:          c.Query("gender"),
			Age:             c.Query("age"),
			MinTransactions: c.Query("minTransactions"),
		},
	}

	sortParam := c.Query("sort")
	switch {
	case sortParam == "none":
		s := customer.Unsorted()
		query.Sort = &s
	case sortParam != "":
		if column, ok := sortColumns[sortParam]; ok {
			s := customer.SortState{Column: column, Direction: customer.Ascending}
			if strings.EqualFold(c.Query("dir"), string(customer.Descending)) {
				s.Direction = customer.Descending
			}
			query.Sort = &s
		}
	}
	return query
}

// optionalBool 空白或無法解析 → nil（不篩選）
func optionalBool(v string) *bool {
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil
	}
	return &b
}
