package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/vgc-platform/admin-api/internal/model"
	"github.com/vgc-platform/admin-api/internal/repository"
)

type refundRepository struct {
	BaseRepository
}

func NewRefundRepository(db *sqlx.DB) repository.RefundRepository {
	return &refundRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *refundRepository) Create(ctx context.Context, refund *model.Refund) error {
	query := `
		INSERT INTO refunds (
			id, type, status, reason, transaction_ref, points,
			user_id, user_email, notes, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	refund.ID = uuid.New()
	refund.Status = model.RefundStatusPending
	refund.CreatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		refund.ID,
		refund.Type,
		refund.Status,
		refund.Reason,
		refund.TransactionRef,
		refund.Points,
		refund.UserID,
		refund.UserEmail,
		refund.Notes,
		refund.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create refund: %w", err)
	}
	return nil
}

func (r *refundRepository) Get(ctx context.Context, id uuid.UUID) (*model.Refund, error) {
	query := `
		SELECT id, type, status, reason, transaction_ref, points,
			   user_id, user_email, notes, created_at, processed_at
		FROM refunds
		WHERE id = $1
	`
	var refund model.Refund
	if err := r.db.GetContext(ctx, &refund, query, id); err != nil {
		return nil, fmt.Errorf("failed to get refund: %w", err)
	}
	return &refund, nil
}

func (r *refundRepository) Update(ctx context.Context, refund *model.Refund) error {
	query := `
		UPDATE refunds
		SET reason = $1, transaction_ref = $2, notes = $3
		WHERE id = $4 AND status = $5
	`
	result, err := r.db.ExecContext(ctx, query,
		refund.Reason,
		refund.TransactionRef,
		refund.Notes,
		refund.ID,
		model.RefundStatusPending,
	)
	if err != nil {
		return fmt.Errorf("failed to update refund: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("refund not found or already processed")
	}
	return nil
}

func (r *refundRepository) List(ctx context.Context) ([]*model.Refund, error) {
	query := `
		SELECT id, type, status, reason, transaction_ref, points,
			   user_id, user_email, notes, created_at, processed_at
		FROM refunds
		ORDER BY created_at DESC
	`
	var refunds []*model.Refund
	if err := r.db.SelectContext(ctx, &refunds, query); err != nil {
		return nil, fmt.Errorf("failed to list refunds: %w", err)
	}
	return refunds, nil
}

func (r *refundRepository) Process(ctx context.Context, refund *model.Refund, restorePoints bool, event *model.OutboxEvent) error {
	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		query := `
			UPDATE refunds
			SET status = $1, notes = $2, processed_at = $3
			WHERE id = $4 AND status = $5
		`
		result, err := tx.ExecContext(ctx, query,
			refund.Status,
			refund.Notes,
			refund.ProcessedAt,
			refund.ID,
			model.RefundStatusPending,
		)
		if err != nil {
			return fmt.Errorf("failed to process refund: %w", err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if rows == 0 {
			return fmt.Errorf("refund not found or already processed")
		}

		if restorePoints {
			pointsQuery := `UPDATE users SET points = points + $1, updated_at = $2 WHERE id = $3`
			if _, err := tx.ExecContext(ctx, pointsQuery, refund.Points, time.Now(), refund.UserID); err != nil {
				return fmt.Errorf("failed to restore points: %w", err)
			}
		}

		eventQuery := `
			INSERT INTO outbox_events (id, event_type, payload, status, retry_count, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`
		if _, err := tx.ExecContext(ctx, eventQuery,
			event.ID,
			event.EventType,
			event.Payload,
			event.Status,
			event.RetryCount,
			event.CreatedAt,
		); err != nil {
			return fmt.Errorf("failed to write outbox event: %w", err)
		}

		return nil
	})
}
