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

type adRepository struct {
	BaseRepository
}

func NewAdRepository(db *sqlx.DB) repository.AdRepository {
	return &adRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *adRepository) Create(ctx context.Context, ad *model.Ad) error {
	query := `
		INSERT INTO ads (
			id, title, category, status, points, body, business_id,
			owner_email, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	ad.ID = uuid.New()
	if ad.Status == "" {
		ad.Status = model.AdStatusDraft
	}
	ad.CreatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		ad.ID,
		ad.Title,
		ad.Category,
		ad.Status,
		ad.Points,
		ad.Body,
		ad.BusinessID,
		ad.OwnerEmail,
		ad.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create ad: %w", err)
	}
	return nil
}

func (r *adRepository) Get(ctx context.Context, id uuid.UUID) (*model.Ad, error) {
	query := `
		SELECT id, title, category, status, points, body, business_id,
			   owner_email, created_at, published_at, expires_at
		FROM ads
		WHERE id = $1
	`
	var ad model.Ad
	if err := r.db.GetContext(ctx, &ad, query, id); err != nil {
		return nil, fmt.Errorf("failed to get ad: %w", err)
	}
	return &ad, nil
}

func (r *adRepository) Update(ctx context.Context, ad *model.Ad) error {
	query := `
		UPDATE ads
		SET title = $1, status = $2, points = $3, body = $4,
			published_at = $5, expires_at = $6
		WHERE id = $7
	`
	result, err := r.db.ExecContext(ctx, query,
		ad.Title,
		ad.Status,
		ad.Points,
		ad.Body,
		ad.PublishedAt,
		ad.ExpiresAt,
		ad.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update ad: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("ad not found")
	}
	return nil
}

func (r *adRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM ads WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete ad: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("ad not found")
	}
	return nil
}

func (r *adRepository) List(ctx context.Context) ([]*model.Ad, error) {
	query := `
		SELECT id, title, category, status, points, body, business_id,
			   owner_email, created_at, published_at, expires_at
		FROM ads
		ORDER BY created_at DESC
	`
	var ads []*model.Ad
	if err := r.db.SelectContext(ctx, &ads, query); err != nil {
		return nil, fmt.Errorf("failed to list ads: %w", err)
	}
	return ads, nil
}
