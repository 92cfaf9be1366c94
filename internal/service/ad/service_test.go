package ad

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vgc-platform/admin-api/internal/form"
	"github.com/vgc-platform/admin-api/internal/model"
)

type mockAdRepo struct {
	ads map[uuid.UUID]*model.Ad
}

func newMockAdRepo(ads ...*model.Ad) *mockAdRepo {
	m := &mockAdRepo{ads: make(map[uuid.UUID]*model.Ad)}
	for _, a := range ads {
		m.ads[a.ID] = a
	}
	return m
}

func (m *mockAdRepo) Create(_ context.Context, ad *model.Ad) error {
	if ad.ID == uuid.Nil {
		ad.ID = uuid.New()
	}
	m.ads[ad.ID] = ad
	return nil
}

func (m *mockAdRepo) Get(_ context.Context, id uuid.UUID) (*model.Ad, error) {
	a, ok := m.ads[id]
	if !ok {
		return nil, assert.AnError
	}
	return a, nil
}

func (m *mockAdRepo) Update(_ context.Context, ad *model.Ad) error {
	m.ads[ad.ID] = ad
	return nil
}

func (m *mockAdRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.ads, id)
	return nil
}

func (m *mockAdRepo) List(_ context.Context) ([]*model.Ad, error) {
	out := make([]*model.Ad, 0, len(m.ads))
	for _, a := range m.ads {
		out = append(out, a)
	}
	return out, nil
}

type mockOutboxRepo struct {
	events []*model.OutboxEvent
}

func (m *mockOutboxRepo) Create(_ context.Context, event *model.OutboxEvent) error {
	m.events = append(m.events, event)
	return nil
}

func (m *mockOutboxRepo) GetPendingEvents(context.Context, int) ([]*model.OutboxEvent, error) {
	return m.events, nil
}

func (m *mockOutboxRepo) MarkProcessed(context.Context, uuid.UUID) error { return nil }

func (m *mockOutboxRepo) MarkFailed(context.Context, uuid.UUID, string) error { return nil }

func TestSubmitCreatesDraft(t *testing.T) {
	repo := newMockAdRepo()
	svc := NewService(repo, &mockOutboxRepo{})

	payload := &form.Payload{
		Mode: form.ModeNew,
		Type: string(model.AdCategoryJob),
		Fields: map[string]string{
			"title":        "Kitchen staff wanted",
			"body":         "Weekend shifts.",
			"points":       "100",
			"job_deadline": "2026-09-30",
		},
	}

	created, err := svc.Submit(context.Background(), payload, uuid.New(), "owner@example.com")
	require.NoError(t, err)
	assert.Equal(t, model.AdStatusDraft, created.Status)
	assert.Equal(t, model.AdCategoryJob, created.Category)
	assert.Equal(t, 100, created.Points)
}

func TestSubmitNonNumericPointsRejected(t *testing.T) {
	repo := newMockAdRepo()
	svc := NewService(repo, &mockOutboxRepo{})

	payload := &form.Payload{
		Mode: form.ModeNew,
		Type: string(model.AdCategoryNotice),
		Fields: map[string]string{
			"title":  "Notice",
			"body":   "Some text.",
			"points": "lots",
		},
	}

	_, err := svc.Submit(context.Background(), payload, uuid.New(), "owner@example.com")
	assert.ErrorContains(t, err, "invalid points value")
	assert.Empty(t, repo.ads)
}

func TestSubmitWithoutPointsDefaultsToZero(t *testing.T) {
	repo := newMockAdRepo()
	svc := NewService(repo, &mockOutboxRepo{})

	payload := &form.Payload{
		Mode: form.ModeNew,
		Type: string(model.AdCategoryNotice),
		Fields: map[string]string{
			"title": "Notice",
			"body":  "Some text.",
		},
	}

	created, err := svc.Submit(context.Background(), payload, uuid.New(), "owner@example.com")
	require.NoError(t, err)
	assert.Zero(t, created.Points)
}

func TestPublishDraftSetsExpiryAndEmitsEvent(t *testing.T) {
	draft := &model.Ad{ID: uuid.New(), Status: model.AdStatusDraft, Category: model.AdCategorySale}
	repo := newMockAdRepo(draft)
	outbox := &mockOutboxRepo{}
	svc := NewService(repo, outbox)

	published, err := svc.Publish(context.Background(), draft.ID)
	require.NoError(t, err)

	assert.Equal(t, model.AdStatusPublished, published.Status)
	require.NotNil(t, published.PublishedAt)
	require.NotNil(t, published.ExpiresAt)
	assert.True(t, published.ExpiresAt.After(*published.PublishedAt))

	require.Len(t, outbox.events, 1)
	assert.Equal(t, "ad.published", outbox.events[0].EventType)
}

func TestPublishNonDraftFails(t *testing.T) {
	published := &model.Ad{ID: uuid.New(), Status: model.AdStatusPublished}
	svc := NewService(newMockAdRepo(published), &mockOutboxRepo{})

	_, err := svc.Publish(context.Background(), published.ID)
	assert.ErrorContains(t, err, "only draft ads")
}

func TestSubmitEditUpdatesSourceAd(t *testing.T) {
	existing := &model.Ad{ID: uuid.New(), Status: model.AdStatusDraft, Category: model.AdCategorySale, Title: "Old"}
	repo := newMockAdRepo(existing)
	svc := NewService(repo, &mockOutboxRepo{})

	payload := &form.Payload{
		Mode:     form.ModeEdit,
		SourceID: existing.ID.String(),
		Type:     string(model.AdCategorySale),
		Fields: map[string]string{
			"title":  "New title",
			"body":   "Updated body",
			"points": "50",
			"price":  "1200",
		},
	}

	updated, err := svc.Submit(context.Background(), payload, existing.BusinessID, "owner@example.com")
	require.NoError(t, err)
	assert.Equal(t, existing.ID, updated.ID)
	assert.Equal(t, "New title", updated.Title)
	assert.Equal(t, 50, updated.Points)
	assert.Len(t, repo.ads, 1)
}
