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

type businessRepository struct {
	BaseRepository
}

func NewBusinessRepository(db *sqlx.DB) repository.BusinessRepository {
	return &businessRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *businessRepository) Create(ctx context.Context, business *model.Business) error {
	query := `
		INSERT INTO businesses (
			id, name, category, status, owner_email, phone, address,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	business.ID = uuid.New()
	business.Status = model.BusinessStatusActive
	business.CreatedAt = time.Now()
	business.UpdatedAt = business.CreatedAt

	_, err := r.db.ExecContext(ctx, query,
		business.ID,
		business.Name,
		business.Category,
		business.Status,
		business.OwnerEmail,
		business.Phone,
		business.Address,
		business.CreatedAt,
		business.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create business: %w", err)
	}
	return nil
}

func (r *businessRepository) Get(ctx context.Context, id uuid.UUID) (*model.Business, error) {
	query := `
		SELECT id, name, category, status, owner_email, phone, address,
			   created_at, updated_at
		FROM businesses
		WHERE id = $1
	`
	var business model.Business
	if err := r.db.GetContext(ctx, &business, query, id); err != nil {
		return nil, fmt.Errorf("failed to get business: %w", err)
	}
	return &business, nil
}

func (r *businessRepository) Update(ctx context.Context, business *model.Business) error {
	query := `
		UPDATE businesses
		SET name = $1, category = $2, status = $3, phone = $4, address = $5, updated_at = $6
		WHERE id = $7
	`
	business.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		business.Name,
		business.Category,
		business.Status,
		business.Phone,
		business.Address,
		business.UpdatedAt,
		business.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update business: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("business not found")
	}
	return nil
}

func (r *businessRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM businesses WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete business: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("business not found")
	}
	return nil
}

func (r *businessRepository) List(ctx context.Context) ([]*model.Business, error) {
	query := `
		SELECT id, name, category, status, owner_email, phone, address,
			   created_at, updated_at
		FROM businesses
		ORDER BY created_at DESC
	`
	var businesses []*model.Business
	if err := r.db.SelectContext(ctx, &businesses, query); err != nil {
		return nil, fmt.Errorf("failed to list businesses: %w", err)
	}
	return businesses, nil
}
