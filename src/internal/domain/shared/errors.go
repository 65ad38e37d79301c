package shared

import (
	"fmt"
	"sort"
	"strings"
)

// ===========================
// DomainError 結構化領域錯誤
// ===========================

// ErrorCode 領域錯誤代碼
type ErrorCode string

// DomainError 領域錯誤結構
//
// 設計原則：
// 1. 使用結構化錯誤（ErrorCode + Message + Context）
// 2. errors.Is 以 Code 比較，WithContext 產生的副本仍可匹配原始錯誤
// 3. 錯誤實例定義在各自的 bounded context（customer, notification）
type DomainError struct {
	Code    ErrorCode
	Message string
	Context map[string]interface{}
}

// NewDomainError 建立錯誤模板
func NewDomainError(code ErrorCode, message string) *DomainError {
	return &DomainError{Code: code, Message: message}
}

// Error 實作 error 介面
func (e *DomainError) Error() string {
	if len(e.Context) == 0 {
		return e.Message
	}
	return e.Message + " (context: " + formatContext(e.Context) + ")"
}

// WithContext 添加上下文信息，回傳新的錯誤（原模板不變）
//
// 使用範例：
//
//	return ErrRecordNotFound.WithContext("key", key.String())
func (e *DomainError) WithContext(keyValues ...interface{}) error {
	if len(keyValues)%2 != 0 {
		panic("WithContext requires even number of arguments (key-value pairs)")
	}

	newErr := &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Context: make(map[string]interface{}, len(e.Context)+len(keyValues)/2),
	}
	for k, v := range e.Context {
		newErr.Context[k] = v
	}
	for i := 0; i < len(keyValues); i += 2 {
		key, ok := keyValues[i].(string)
		if !ok {
			panic("WithContext keys must be strings")
		}
		newErr.Context[key] = keyValues[i+1]
	}
	return newErr
}

// Is 實作 errors.Is 比較（以 Code 判斷）
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// formatContext 以固定順序輸出上下文，方便日誌比對
func formatContext(context map[string]interface{}) string {
	keys := make([]string, 0, len(context))
	for k := range context {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, context[k]))
	}
	return strings.Join(parts, ", ")
}
