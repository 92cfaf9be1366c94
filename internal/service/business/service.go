package business

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/vgc-platform/admin-api/internal/model"
	"github.com/vgc-platform/admin-api/internal/repository"
)

type Service struct {
	repo repository.BusinessRepository
}

func NewService(repo repository.BusinessRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateBusiness(ctx context.Context, req *model.CreateBusinessRequest) (*model.Business, error) {
	business := &model.Business{
		Name:       req.Name,
		Category:   req.Category,
		OwnerEmail: req.OwnerEmail,
		Phone:      req.Phone,
		Address:    req.Address,
	}

	if err := s.repo.Create(ctx, business); err != nil {
		return nil, fmt.Errorf("failed to create business: %w", err)
	}
	return business, nil
}

func (s *Service) GetBusiness(ctx context.Context, id uuid.UUID) (*model.Business, error) {
	business, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get business: %w", err)
	}
	return business, nil
}

func (s *Service) ListBusinesses(ctx context.Context) ([]*model.Business, error) {
	businesses, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list businesses: %w", err)
	}
	return businesses, nil
}

func (s *Service) UpdateBusiness(ctx context.Context, id uuid.UUID, req *model.UpdateBusinessRequest) (*model.Business, error) {
	business, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get business: %w", err)
	}

	if req.Name != nil {
		business.Name = *req.Name
	}
	if req.Category != nil {
		business.Category = *req.Category
	}
	if req.Status != nil {
		business.Status = *req.Status
	}
	if req.Phone != nil {
		business.Phone = *req.Phone
	}
	if req.Address != nil {
		business.Address = *req.Address
	}

	if err := s.repo.Update(ctx, business); err != nil {
		return nil, fmt.Errorf("failed to update business: %w", err)
	}
	return business, nil
}

func (s *Service) DeleteBusiness(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete business: %w", err)
	}
	return nil
}
