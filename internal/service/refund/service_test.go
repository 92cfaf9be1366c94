package refund

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vgc-platform/admin-api/internal/email"
	"github.com/vgc-platform/admin-api/internal/form"
	"github.com/vgc-platform/admin-api/internal/model"
	"github.com/vgc-platform/admin-api/pkg/logger"
)

type mockRefundRepo struct {
	refunds map[uuid.UUID]*model.Refund

	processedRefund *model.Refund
	restoredPoints  bool
	processedEvent  *model.OutboxEvent
}

func newMockRefundRepo() *mockRefundRepo {
	return &mockRefundRepo{refunds: make(map[uuid.UUID]*model.Refund)}
}

func (m *mockRefundRepo) Create(_ context.Context, refund *model.Refund) error {
	if refund.ID == uuid.Nil {
		refund.ID = uuid.New()
	}
	refund.Status = model.RefundStatusPending
	m.refunds[refund.ID] = refund
	return nil
}

func (m *mockRefundRepo) Get(_ context.Context, id uuid.UUID) (*model.Refund, error) {
	refund, ok := m.refunds[id]
	if !ok {
		return nil, assert.AnError
	}
	return refund, nil
}

func (m *mockRefundRepo) Update(_ context.Context, refund *model.Refund) error {
	existing, ok := m.refunds[refund.ID]
	if !ok {
		return assert.AnError
	}
	refund.Status = existing.Status
	m.refunds[refund.ID] = refund
	return nil
}

func (m *mockRefundRepo) List(_ context.Context) ([]*model.Refund, error) {
	out := make([]*model.Refund, 0, len(m.refunds))
	for _, r := range m.refunds {
		out = append(out, r)
	}
	return out, nil
}

func (m *mockRefundRepo) Process(_ context.Context, refund *model.Refund, restorePoints bool, event *model.OutboxEvent) error {
	m.processedRefund = refund
	m.restoredPoints = restorePoints
	m.processedEvent = event
	m.refunds[refund.ID] = refund
	return nil
}

func newTestService(repo *mockRefundRepo) *Service {
	log := logger.New(&logger.Config{Level: "error"})
	return NewService(repo, email.NoopService{}, log)
}

func testUser() *model.User {
	return &model.User{ID: uuid.New(), Email: "user@example.com"}
}

func TestSubmitCreatesRefund(t *testing.T) {
	repo := newMockRefundRepo()
	svc := newTestService(repo)

	payload := &form.Payload{
		Mode: form.ModeNew,
		Type: string(model.RefundTypeDeposit),
		Fields: map[string]string{
			"reason":          "duplicate charge",
			"transaction_ref": "TXN-100",
			"points":          "500",
		},
	}

	created, err := svc.Submit(context.Background(), payload, testUser())
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, model.RefundTypeDeposit, created.Type)
	assert.Equal(t, model.RefundStatusPending, created.Status)
	assert.Equal(t, 500, created.Points)
}

func TestSubmitNonNumericPointsRejected(t *testing.T) {
	repo := newMockRefundRepo()
	svc := newTestService(repo)

	payload := &form.Payload{
		Mode: form.ModeNew,
		Type: string(model.RefundTypeDeposit),
		Fields: map[string]string{
			"reason":          "duplicate charge",
			"transaction_ref": "TXN-100",
			"points":          "abc",
		},
	}

	_, err := svc.Submit(context.Background(), payload, testUser())
	assert.ErrorContains(t, err, "invalid points value")
	assert.Empty(t, repo.refunds)

	payload.Fields["points"] = "-5"
	_, err = svc.Submit(context.Background(), payload, testUser())
	assert.ErrorContains(t, err, "invalid points value")
	assert.Empty(t, repo.refunds)
}

func TestSubmitCopyModeCreatesNewRecord(t *testing.T) {
	repo := newMockRefundRepo()
	svc := newTestService(repo)

	original := &model.Refund{Points: 300, TransactionRef: "TXN-1"}
	require.NoError(t, repo.Create(context.Background(), original))

	payload := &form.Payload{
		Mode: form.ModeCopy,
		Type: string(model.RefundTypeService),
		Fields: map[string]string{
			"reason":          "copied reason",
			"transaction_ref": "TXN-1",
			"points":          "300",
		},
	}

	created, err := svc.Submit(context.Background(), payload, testUser())
	require.NoError(t, err)
	assert.NotEqual(t, original.ID, created.ID)
	assert.Len(t, repo.refunds, 2)
}

func TestSubmitEditModeUpdatesSource(t *testing.T) {
	repo := newMockRefundRepo()
	svc := newTestService(repo)

	original := &model.Refund{Points: 300, TransactionRef: "TXN-1"}
	require.NoError(t, repo.Create(context.Background(), original))

	payload := &form.Payload{
		Mode:     form.ModeEdit,
		SourceID: original.ID.String(),
		Type:     string(model.RefundTypeDeposit),
		Fields: map[string]string{
			"reason":          "corrected reason",
			"transaction_ref": "TXN-1",
			"points":          "450",
		},
	}

	updated, err := svc.Submit(context.Background(), payload, testUser())
	require.NoError(t, err)
	assert.Equal(t, original.ID, updated.ID)
	assert.Equal(t, 450, updated.Points)
	assert.Len(t, repo.refunds, 1)
}

func TestApproveDepositRestoresPoints(t *testing.T) {
	repo := newMockRefundRepo()
	svc := newTestService(repo)

	refund := &model.Refund{Type: model.RefundTypeDeposit, Points: 500, UserID: uuid.New()}
	require.NoError(t, repo.Create(context.Background(), refund))

	processed, err := svc.Approve(context.Background(), refund.ID, &model.ProcessRefundRequest{Notes: "ok"})
	require.NoError(t, err)

	assert.Equal(t, model.RefundStatusApproved, processed.Status)
	assert.NotNil(t, processed.ProcessedAt)
	assert.True(t, repo.restoredPoints)
	require.NotNil(t, repo.processedEvent)
	assert.Equal(t, "refund.APPROVED", repo.processedEvent.EventType)
}

func TestApproveServiceRefundDoesNotRestorePoints(t *testing.T) {
	repo := newMockRefundRepo()
	svc := newTestService(repo)

	refund := &model.Refund{Type: model.RefundTypeService, Points: 200}
	require.NoError(t, repo.Create(context.Background(), refund))

	_, err := svc.Approve(context.Background(), refund.ID, &model.ProcessRefundRequest{})
	require.NoError(t, err)
	assert.False(t, repo.restoredPoints)
}

func TestRejectDoesNotRestorePoints(t *testing.T) {
	repo := newMockRefundRepo()
	svc := newTestService(repo)

	refund := &model.Refund{Type: model.RefundTypeDeposit, Points: 500}
	require.NoError(t, repo.Create(context.Background(), refund))

	processed, err := svc.Reject(context.Background(), refund.ID, &model.ProcessRefundRequest{Notes: "invalid"})
	require.NoError(t, err)

	assert.Equal(t, model.RefundStatusRejected, processed.Status)
	assert.False(t, repo.restoredPoints)
	require.NotNil(t, repo.processedEvent)
	assert.Equal(t, "refund.REJECTED", repo.processedEvent.EventType)
}

func TestProcessAlreadyDecidedRefundFails(t *testing.T) {
	repo := newMockRefundRepo()
	svc := newTestService(repo)

	refund := &model.Refund{Type: model.RefundTypeDeposit, Points: 500}
	require.NoError(t, repo.Create(context.Background(), refund))
	refund.Status = model.RefundStatusApproved

	_, err := svc.Reject(context.Background(), refund.ID, &model.ProcessRefundRequest{})
	assert.ErrorContains(t, err, "already processed")
	assert.Nil(t, repo.processedEvent)
}

func TestFormSchemaResetsReasonOnTypeChange(t *testing.T) {
	schema := FormSchema()
	state := form.NewState(schema, form.Resolution{Mode: form.ModeNew})

	state.Set("reason", "deposit reason")
	state.Set("transaction_ref", "TXN-9")
	state.ApplyTypeChange(string(model.RefundTypeService))

	assert.Empty(t, state.Get("reason"))
	assert.Equal(t, "TXN-9", state.Get("transaction_ref"))
}
