package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/vgc-platform/admin-api/internal/model"
)

type RefundRepository interface {
	Create(ctx context.Context, refund *model.Refund) error
	Get(ctx context.Context, id uuid.UUID) (*model.Refund, error)
	Update(ctx context.Context, refund *model.Refund) error
	List(ctx context.Context) ([]*model.Refund, error)
	// Process applies a refund decision and, within the same transaction,
	// credits points back and records the outbox event.
	Process(ctx context.Context, refund *model.Refund, restorePoints bool, event *model.OutboxEvent) error
}

type AppliedJobRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*model.AppliedJob, error)
	List(ctx context.Context) ([]*model.AppliedJob, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.AppliedJobStatus) error
}

type BusinessRepository interface {
	Create(ctx context.Context, business *model.Business) error
	Get(ctx context.Context, id uuid.UUID) (*model.Business, error)
	Update(ctx context.Context, business *model.Business) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*model.Business, error)
}

type AdRepository interface {
	Create(ctx context.Context, ad *model.Ad) error
	Get(ctx context.Context, id uuid.UUID) (*model.Ad, error)
	Update(ctx context.Context, ad *model.Ad) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*model.Ad, error)
}

type UserRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
}

type OutboxRepository interface {
	Create(ctx context.Context, event *model.OutboxEvent) error
	GetPendingEvents(ctx context.Context, limit int) ([]*model.OutboxEvent, error)
	MarkProcessed(ctx context.Context, id uuid.UUID) error
	MarkFailed(ctx context.Context, id uuid.UUID, errMsg string) error
}
