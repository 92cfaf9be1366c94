package ad

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/vgc-platform/admin-api/internal/form"
	"github.com/vgc-platform/admin-api/internal/model"
	"github.com/vgc-platform/admin-api/internal/repository"
)

const publishedAdLifetime = 30 * 24 * time.Hour

type Service struct {
	repo       repository.AdRepository
	outboxRepo repository.OutboxRepository
}

func NewService(repo repository.AdRepository, outboxRepo repository.OutboxRepository) *Service {
	return &Service{repo: repo, outboxRepo: outboxRepo}
}

// FormSchema declares the ad creation form. The field set follows the ad
// category: job ads carry a deadline, sale ads a price, service ads an area.
func FormSchema() form.Schema {
	return form.Schema{
		TypeField: "category",
		Types: []string{
			string(model.AdCategoryJob),
			string(model.AdCategoryService),
			string(model.AdCategorySale),
			string(model.AdCategoryNotice),
		},
		Sections: []form.Section{
			{
				ID:    "basics",
				Title: "Ad basics",
				Fields: []form.Field{
					{Name: "title", Kind: form.KindText, Required: true},
					{Name: "body", Kind: form.KindTextarea, Required: true},
					{Name: "points", Kind: form.KindText},
				},
			},
			{
				ID:    "category_details",
				Title: "Category details",
				Fields: []form.Field{
					{Name: "job_deadline", Kind: form.KindText, Required: true, Types: []string{string(model.AdCategoryJob)}},
					{Name: "price", Kind: form.KindText, Required: true, Types: []string{string(model.AdCategorySale)}},
					{Name: "service_area", Kind: form.KindSelect, Required: true, Types: []string{string(model.AdCategoryService)}},
				},
			},
		},
	}
}

func (s *Service) ListAds(ctx context.Context) ([]*model.Ad, error) {
	ads, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list ads: %w", err)
	}
	return ads, nil
}

func (s *Service) GetAd(ctx context.Context, id uuid.UUID) (*model.Ad, error) {
	ad, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get ad: %w", err)
	}
	return ad, nil
}

// Submit persists a validated form payload as a draft ad, or updates the
// source ad when the payload came from an edit session.
func (s *Service) Submit(ctx context.Context, payload *form.Payload, businessID uuid.UUID, ownerEmail string) (*model.Ad, error) {
	// Points are optional on ads; when present they must be a whole number.
	points := 0
	if raw, ok := payload.Fields["points"]; ok {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			return nil, fmt.Errorf("invalid points value %q", raw)
		}
		points = parsed
	}

	if payload.Mode == form.ModeEdit {
		id, err := uuid.Parse(payload.SourceID)
		if err != nil {
			return nil, fmt.Errorf("invalid ad id: %w", err)
		}
		ad, err := s.repo.Get(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to get ad: %w", err)
		}
		ad.Title = payload.Fields["title"]
		ad.Body = payload.Fields["body"]
		ad.Points = points
		if err := s.repo.Update(ctx, ad); err != nil {
			return nil, fmt.Errorf("failed to update ad: %w", err)
		}
		return ad, nil
	}

	ad := &model.Ad{
		Title:      payload.Fields["title"],
		Category:   model.AdCategory(payload.Type),
		Status:     model.AdStatusDraft,
		Points:     points,
		Body:       payload.Fields["body"],
		BusinessID: businessID,
		OwnerEmail: ownerEmail,
	}

	if err := s.repo.Create(ctx, ad); err != nil {
		return nil, fmt.Errorf("failed to create ad: %w", err)
	}
	return ad, nil
}

func (s *Service) Publish(ctx context.Context, id uuid.UUID) (*model.Ad, error) {
	ad, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get ad: %w", err)
	}
	if ad.Status != model.AdStatusDraft {
		return nil, fmt.Errorf("only draft ads can be published")
	}

	now := time.Now()
	expires := now.Add(publishedAdLifetime)
	ad.Status = model.AdStatusPublished
	ad.PublishedAt = &now
	ad.ExpiresAt = &expires

	if err := s.repo.Update(ctx, ad); err != nil {
		return nil, fmt.Errorf("failed to publish ad: %w", err)
	}

	payload, err := json.Marshal(map[string]interface{}{
		"ad_id":       ad.ID,
		"category":    ad.Category,
		"business_id": ad.BusinessID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode event payload: %w", err)
	}

	if err := s.outboxRepo.Create(ctx, &model.OutboxEvent{
		EventType: "ad.published",
		Payload:   payload,
	}); err != nil {
		return nil, fmt.Errorf("failed to write outbox event: %w", err)
	}

	return ad, nil
}

func (s *Service) UpdateAd(ctx context.Context, id uuid.UUID, req *model.UpdateAdRequest) (*model.Ad, error) {
	ad, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get ad: %w", err)
	}

	if req.Title != nil {
		ad.Title = *req.Title
	}
	if req.Body != nil {
		ad.Body = *req.Body
	}
	if req.Status != nil {
		ad.Status = *req.Status
	}
	if req.Points != nil {
		ad.Points = *req.Points
	}

	if err := s.repo.Update(ctx, ad); err != nil {
		return nil, fmt.Errorf("failed to update ad: %w", err)
	}
	return ad, nil
}

func (s *Service) DeleteAd(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete ad: %w", err)
	}
	return nil
}
