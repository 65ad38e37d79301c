package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appcustomer "github.com/jackyeh168/crm_dashboard/src/internal/application/customer"
	"github.com/jackyeh168/crm_dashboard/src/internal/application/messaging"
	appnotification "github.com/jackyeh168/crm_dashboard/src/internal/application/notification"
	"github.com/jackyeh168/crm_dashboard/src/internal/domain/customer"
	"github.com/jackyeh168/crm_dashboard/src/internal/domain/notification"
	"github.com/jackyeh168/crm_dashboard/src/internal/domain/shared"
	"github.com/jackyeh168/crm_dashboard/src/internal/domain/template"
)

// ===========================
// 測試替身
// ===========================

var frozenNow = time.Date(2025, 11, 17, 10, 30, 0, 0, time.Local)

type memoryRepository struct {
	mu        sync.Mutex
	records   []customer.Record
	saves     int
	saveError error
	version   int
}

func (m *memoryRepository) Load(ctx context.Context) ([]customer.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]customer.Record(nil), m.records...), nil
}

func (m *memoryRepository) SaveAll(ctx context.Context, records []customer.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	if m.saveError != nil {
		return m.saveError
	}
	m.records = records
	m.version++
	return nil
}

func (m *memoryRepository) Revision(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return strconv.Itoa(m.version), nil
}

type stubNotifier struct {
	ready error
	sent  []notification.Message
}

func (s *stubNotifier) Channel() string {
	return notification.ChannelDiscord
}

func (s *stubNotifier) Ready() error {
	return s.ready
}

func (s *stubNotifier) Send(ctx context.Context, msg notification.Message) error {
	s.sent = append(s.sent, msg)
	return nil
}

type memoryDispatches struct {
	saved []*notification.Dispatch
}

func (m *memoryDispatches) Save(ctx shared.TransactionContext, d *notification.Dispatch) error {
	m.saved = append([]*notification.Dispatch{d}, m.saved...)
	return nil
}

func (m *memoryDispatches) FindRecent(ctx shared.TransactionContext, limit int) ([]*notification.Dispatch, error) {
	return m.saved, nil
}

type directTx struct{}

func (directTx) InTransaction(fn func(ctx shared.TransactionContext) error) error { return fn(nil) }

type staticTemplates []template.Definition

func (s staticTemplates) Load(ctx context.Context) ([]template.Definition, error) { return s, nil }

type testServer struct {
	engine   *gin.Engine
	repo     *memoryRepository
	notifier *stubNotifier
	session  *appcustomer.EditSession
	records  []customer.Record
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	records := []customer.Record{
		{Key: customer.NewRecordKey(), CustomerName: "佐藤", NextAction: customer.ActionFollowUp,
			LastContactDate: customer.FormatDate(frozenNow.AddDate(0, 0, -8)), IsFavorite: true},
		{Key: customer.NewRecordKey(), CustomerName: "田中", NextAction: customer.ActionDone,
			LastContactDate: customer.FormatDate(frozenNow.AddDate(0, 0, -20))},
	}
	repo := &memoryRepository{records: records}
	clock := shared.FixedClock{At: frozenNow}
	calc := customer.NewScheduleCalculator(clock)
	logger := zap.NewNop()
	session := appcustomer.NewEditSession(repo, calc, time.Hour, logger)
	notifier := &stubNotifier{}
	dispatches := &memoryDispatches{}
	templates := staticTemplates{
		{ID: "f", Actions: []string{customer.ActionFollowUp}, Variant: template.VariantFormal, Body: "{{顧客名}}様"},
	}

	h := &Handlers{
		Customer: NewCustomerHandler(
			session,
			appcustomer.NewListCustomersUseCase(session, calc),
			appcustomer.NewSaveCustomersUseCase(session, calc),
			appcustomer.NewEditCustomerUseCase(session),
			appcustomer.NewToggleTagUseCase(session),
			logger,
		),
		Notification: NewNotificationHandler(
			appnotification.NewCheckDueUseCase(session, notifier, dispatches, directTx{}, calc, appnotification.CheckDueConfig{HorizonDays: 1}, logger),
			appnotification.NewListDispatchesUseCase(dispatches),
			logger,
		),
		Template: NewTemplateHandler(
			messaging.NewComposeMessageUseCase(session, templates, template.Profile{}, calc),
			messaging.NewListTemplatesUseCase(templates),
			logger,
		),
	}

	engine := gin.New()
	RegisterRoutes(engine, h, RouteOptions{})
	t.Cleanup(func() { _ = session.Close(context.Background()) })

	return &testServer{engine: engine, repo: repo, notifier: notifier, session: session, records: records}
}

func (s *testServer) do(method, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	var out map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	return w, out
}

// ===========================
// 顧客 API
// ===========================

func TestCustomerHandler_List(t *testing.T) {
	// Arrange
	s := newTestServer(t)

	// Act
	w, body := s.do(http.MethodGet, "/api/customers?favorite=true", "")

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, float64(1), body["count"])
	assert.Equal(t, float64(2), body["total"])
	records := body["records"].([]interface{})
	assert.Equal(t, "佐藤", records[0].(map[string]interface{})["customerName"])
}

func TestCustomerHandler_Stats(t *testing.T) {
	// Arrange
	s := newTestServer(t)

	// Act
	w, body := s.do(http.MethodGet, "/api/customers/stats", "")

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	stats := body["stats"].(map[string]interface{})
	assert.Equal(t, float64(2), stats["totalCustomers"])
	assert.Equal(t, float64(1), stats["urgentCount"])
}

func TestCustomerHandler_Save(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		saveError   error
		wantStatus  int
		wantMessage string
	}{
		{"valid", `{"records":[{"customerName":"佐藤","hasHeart":"true","totalAmount":5000}]}`, nil, http.StatusOK, MsgSaved},
		{"records missing", `{"items":[]}`, nil, http.StatusBadRequest, MsgInvalidRequest},
		{"records not array", `{"records":"x"}`, nil, http.StatusBadRequest, MsgInvalidRequest},
		{"body is array", `[{"customerName":"佐藤"}]`, nil, http.StatusBadRequest, MsgInvalidRequest},
		{"malformed json", `{"records":[`, nil, http.StatusBadRequest, MsgInvalidRequest},
		{"write failure", `{"records":[]}`, assert.AnError, http.StatusInternalServerError, MsgSaveFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			s := newTestServer(t)
			s.repo.saveError = tt.saveError

			// Act
			w, body := s.do(http.MethodPost, "/api/customers", tt.body)

			// Assert
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantStatus == http.StatusOK, body["ok"])
			assert.Equal(t, tt.wantMessage, body["message"])
		})
	}
}

func TestCustomerHandler_Save_PersistsCoercedRecords(t *testing.T) {
	// Arrange
	s := newTestServer(t)

	// Act
	w, _ := s.do(http.MethodPost, "/api/customers", `{"records":[{"customerName":"佐藤","hasHeart":1,"age":null,"transactionCount":3}]}`)

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, s.repo.records, 1)
	saved := s.repo.records[0]
	assert.True(t, saved.HasHeart)
	assert.Equal(t, "", saved.Age)
	assert.Equal(t, "3", saved.TransactionCount)
}

func TestCustomerHandler_Edit(t *testing.T) {
	tests := []struct {
		name       string
		key        func(s *testServer) string
		body       string
		wantStatus int
	}{
		{"edit notes", func(s *testServer) string { return s.records[0].Key.String() }, `{"field":"notes","value":"紹介"}`, http.StatusOK},
		{"numeric value", func(s *testServer) string { return s.records[0].Key.String() }, `{"field":"age","value":42}`, http.StatusOK},
		{"read only field", func(s *testServer) string { return s.records[0].Key.String() }, `{"field":"scheduledDate","value":"2025/12/01"}`, http.StatusBadRequest},
		{"unknown field", func(s *testServer) string { return s.records[0].Key.String() }, `{"field":"email","value":"x"}`, http.StatusBadRequest},
		{"missing field", func(s *testServer) string { return s.records[0].Key.String() }, `{"value":"x"}`, http.StatusBadRequest},
		{"unknown key", func(s *testServer) string { return customer.NewRecordKey().String() }, `{"field":"notes","value":"x"}`, http.StatusNotFound},
		{"invalid key", func(s *testServer) string { return "abc" }, `{"field":"notes","value":"x"}`, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			s := newTestServer(t)

			// Act
			w, body := s.do(http.MethodPatch, "/api/customers/"+tt.key(s), tt.body)

			// Assert
			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusOK {
				assert.NotNil(t, body["record"])
				assert.True(t, s.session.Status().Dirty)
			}
		})
	}
}

func TestCustomerHandler_ToggleTag(t *testing.T) {
	// Arrange
	s := newTestServer(t)
	key := s.records[1].Key.String()

	// Act
	w, body := s.do(http.MethodPost, "/api/customers/"+key+"/tags/heart", "")
	bad, _ := s.do(http.MethodPost, "/api/customers/"+key+"/tags/star", "")

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["record"].(map[string]interface{})["hasHeart"])
	assert.Equal(t, http.StatusBadRequest, bad.Code)
}

func TestCustomerHandler_Status(t *testing.T) {
	// Arrange
	s := newTestServer(t)
	_, _ = s.do(http.MethodPatch, "/api/customers/"+s.records[0].Key.String(), `{"field":"notes","value":"x"}`)

	// Act
	w, body := s.do(http.MethodGet, "/api/customers/status", "")

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["dirty"])
	assert.Equal(t, float64(2), body["records"])
}

// ===========================
// 通知 API
// ===========================

func TestNotificationHandler_Check_TestMode(t *testing.T) {
	// Arrange
	s := newTestServer(t)

	// Act
	w, body := s.do(http.MethodGet, "/api/notifications/check?test=true", "")

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, appnotification.TestModeMessage, body["message"])
	assert.Equal(t, float64(1), body["customersCount"])
	assert.Len(t, body["customers"], 1)
	assert.Empty(t, s.notifier.sent)
}

func TestNotificationHandler_Check_SendsAndRecords(t *testing.T) {
	// Arrange
	s := newTestServer(t)

	// Act
	w, body := s.do(http.MethodPost, "/api/notifications/check", "")
	_, history := s.do(http.MethodGet, "/api/notifications/history", "")

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1件の通知を送信しました", body["message"])
	assert.Len(t, s.notifier.sent, 1)
	assert.Len(t, history["dispatches"], 1)
}

func TestNotificationHandler_Check_NotConfigured(t *testing.T) {
	// Arrange
	s := newTestServer(t)
	s.notifier.ready = notification.ErrWebhookNotConfigured

	// Act
	w, body := s.do(http.MethodGet, "/api/notifications/check", "")

	// Assert
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, false, body["ok"])
	assert.Equal(t, notification.ErrWebhookNotConfigured.Error(), body["message"])
}

// ===========================
// 範本 API
// ===========================

func TestTemplateHandler(t *testing.T) {
	// Arrange
	s := newTestServer(t)

	// Act
	listW, list := s.do(http.MethodGet, "/api/templates", "")
	composeW, composed := s.do(http.MethodGet, "/api/customers/"+s.records[0].Key.String()+"/messages", "")
	missingW, _ := s.do(http.MethodGet, "/api/customers/"+customer.NewRecordKey().String()+"/messages", "")

	// Assert
	require.Equal(t, http.StatusOK, listW.Code)
	assert.Len(t, list["templates"], 1)

	require.Equal(t, http.StatusOK, composeW.Code)
	messages := composed["messages"].(map[string]interface{})
	assert.Equal(t, "佐藤様", messages["formal"].(map[string]interface{})["text"])
	assert.Equal(t, "佐藤様", messages["casual"].(map[string]interface{})["text"], "falls back to any variant")

	assert.Equal(t, http.StatusNotFound, missingW.Code)
}

func TestRegisterRoutes_Health(t *testing.T) {
	// Arrange
	s := newTestServer(t)

	// Act
	w, body := s.do(http.MethodGet, "/health", "")
	metricsW, _ := s.do(http.MethodGet, "/metrics", "")

	// Assert
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, http.StatusOK, metricsW.Code)
}
