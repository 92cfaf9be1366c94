package refund

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vgc-platform/admin-api/internal/clipboard"
	"github.com/vgc-platform/admin-api/internal/email"
	"github.com/vgc-platform/admin-api/internal/middleware"
	"github.com/vgc-platform/admin-api/internal/model"
	refundservice "github.com/vgc-platform/admin-api/internal/service/refund"
	"github.com/vgc-platform/admin-api/pkg/logger"
)

type stubRepo struct {
	refunds map[uuid.UUID]*model.Refund
}

func newStubRepo(refunds ...*model.Refund) *stubRepo {
	m := &stubRepo{refunds: make(map[uuid.UUID]*model.Refund)}
	for _, r := range refunds {
		m.refunds[r.ID] = r
	}
	return m
}

func (m *stubRepo) Create(_ context.Context, refund *model.Refund) error {
	if refund.ID == uuid.Nil {
		refund.ID = uuid.New()
	}
	refund.Status = model.RefundStatusPending
	m.refunds[refund.ID] = refund
	return nil
}

func (m *stubRepo) Get(_ context.Context, id uuid.UUID) (*model.Refund, error) {
	r, ok := m.refunds[id]
	if !ok {
		return nil, fmt.Errorf("refund %s: no rows", id)
	}
	return r, nil
}

func (m *stubRepo) Update(_ context.Context, refund *model.Refund) error {
	m.refunds[refund.ID] = refund
	return nil
}

func (m *stubRepo) List(_ context.Context) ([]*model.Refund, error) {
	out := make([]*model.Refund, 0, len(m.refunds))
	for _, r := range m.refunds {
		out = append(out, r)
	}
	return out, nil
}

func (m *stubRepo) Process(_ context.Context, refund *model.Refund, _ bool, _ *model.OutboxEvent) error {
	m.refunds[refund.ID] = refund
	return nil
}

func newTestRouter(repo *stubRepo) (*gin.Engine, *clipboard.Store) {
	gin.SetMode(gin.TestMode)

	log := logger.New(&logger.Config{Level: "error"})
	svc := refundservice.NewService(repo, email.NoopService{}, log)
	clip := clipboard.NewStore()
	h := NewHandler(svc, clip)

	engine := gin.New()
	engine.Use(middleware.ErrorHandler())
	engine.Use(func(c *gin.Context) {
		c.Set(middleware.ContextUserID, uuid.New().String())
		c.Set(middleware.ContextUserEmail, "admin@example.com")
	})
	h.RegisterRoutes(engine.Group(""))
	return engine, clip
}

// newBareRouter registers the routes without the auth context the middleware
// would normally provide.
func newBareRouter(repo *stubRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)

	log := logger.New(&logger.Config{Level: "error"})
	svc := refundservice.NewService(repo, email.NoopService{}, log)
	h := NewHandler(svc, clipboard.NewStore())

	engine := gin.New()
	engine.Use(middleware.ErrorHandler())
	h.RegisterRoutes(engine.Group(""))
	return engine
}

func doRequest(t *testing.T, engine *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	var decoded map[string]interface{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded))
	}
	return w, decoded
}

func fixtureRefund(status model.RefundStatus, points int, day int) *model.Refund {
	return &model.Refund{
		ID:             uuid.New(),
		Type:           model.RefundTypeDeposit,
		Status:         status,
		Reason:         "duplicate charge",
		TransactionRef: "TXN-1",
		Points:         points,
		UserEmail:      "user@example.com",
		CreatedAt:      time.Date(2024, 11, day, 0, 0, 0, 0, time.UTC),
	}
}

func TestListRefundsFiltersAndStats(t *testing.T) {
	repo := newStubRepo(
		fixtureRefund(model.RefundStatusPending, 500, 1),
		fixtureRefund(model.RefundStatusApproved, 300, 2),
		fixtureRefund(model.RefundStatusApproved, 700, 3),
	)
	engine, _ := newTestRouter(repo)

	w, resp := doRequest(t, engine, http.MethodGet, "/refunds?status=APPROVED&page=1&page_size=10", "")
	require.Equal(t, http.StatusOK, w.Code)

	data := resp["data"].(map[string]interface{})
	page := data["page"].(map[string]interface{})
	assert.Equal(t, float64(2), page["total_count"])

	// Stats cover the full set, not the filtered one.
	stats := data["stats"].(map[string]interface{})
	assert.Equal(t, float64(3), stats["total"])
	assert.Equal(t, float64(1000), stats["sum"])
}

func TestGetFormDefaultsToNewMode(t *testing.T) {
	engine, _ := newTestRouter(newStubRepo())

	w, resp := doRequest(t, engine, http.MethodGet, "/refunds/form", "")
	require.Equal(t, http.StatusOK, w.Code)

	data := resp["data"].(map[string]interface{})
	state := data["state"].(map[string]interface{})
	assert.Equal(t, "new", state["mode"])
	assert.Equal(t, string(model.RefundTypeDeposit), state["type"])
}

func TestCopySessionSeedsForm(t *testing.T) {
	source := fixtureRefund(model.RefundStatusApproved, 300, 2)
	engine, _ := newTestRouter(newStubRepo(source))

	w, _ := doRequest(t, engine, http.MethodPost, "/refunds/"+source.ID.String()+"/copy-session", "")
	require.Equal(t, http.StatusOK, w.Code)

	w, resp := doRequest(t, engine, http.MethodGet, "/refunds/form?copy="+source.ID.String(), "")
	require.Equal(t, http.StatusOK, w.Code)

	data := resp["data"].(map[string]interface{})
	state := data["state"].(map[string]interface{})
	assert.Equal(t, "copy", state["mode"])
	assert.Empty(t, state["source_id"])

	values := state["values"].(map[string]interface{})
	assert.Equal(t, "duplicate charge", values["reason"])
	assert.Equal(t, "300", values["points"])
}

func TestEditSessionRejectsProcessedRefund(t *testing.T) {
	approved := fixtureRefund(model.RefundStatusApproved, 300, 2)
	engine, _ := newTestRouter(newStubRepo(approved))

	w, _ := doRequest(t, engine, http.MethodPost, "/refunds/"+approved.ID.String()+"/edit-session", "")
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestSubmitMissingFieldsReturnsValidationError(t *testing.T) {
	engine, _ := newTestRouter(newStubRepo())

	body := `{"type":"DEPOSIT","values":{"transaction_ref":"TXN-9"}}`
	w, resp := doRequest(t, engine, http.MethodPost, "/refunds", body)
	require.Equal(t, http.StatusBadRequest, w.Code)

	fields, ok := resp["fields"].([]interface{})
	require.True(t, ok)
	assert.Contains(t, fields, "reason")
	assert.Contains(t, fields, "points")
	assert.Contains(t, fields, "agreements")
}

func TestSubmitValidPayloadCreatesRefund(t *testing.T) {
	repo := newStubRepo()
	engine, _ := newTestRouter(repo)

	body := `{"type":"DEPOSIT","values":{
		"reason":"duplicate charge",
		"transaction_ref":"TXN-9",
		"points":"250",
		"deposit_account":"110-220",
		"agree_terms":"yes"
	}}`
	w, resp := doRequest(t, engine, http.MethodPost, "/refunds", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "PENDING", data["status"])
	assert.Len(t, repo.refunds, 1)
}

func TestSubmitWithoutAuthContextIsRefused(t *testing.T) {
	repo := newStubRepo()
	engine := newBareRouter(repo)

	body := `{"type":"DEPOSIT","values":{
		"reason":"duplicate charge",
		"transaction_ref":"TXN-9",
		"points":"250",
		"deposit_account":"110-220",
		"agree_terms":"yes"
	}}`
	w, _ := doRequest(t, engine, http.MethodPost, "/refunds", body)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, repo.refunds)
}

func TestClearClipboard(t *testing.T) {
	source := fixtureRefund(model.RefundStatusPending, 100, 4)
	engine, clip := newTestRouter(newStubRepo(source))

	doRequest(t, engine, http.MethodPost, "/refunds/"+source.ID.String()+"/copy-session", "")
	_, ok := clip.GetCopySource()
	require.True(t, ok)

	w, _ := doRequest(t, engine, http.MethodDelete, "/refunds/clipboard", "")
	require.Equal(t, http.StatusOK, w.Code)

	_, ok = clip.GetCopySource()
	assert.False(t, ok)
}
