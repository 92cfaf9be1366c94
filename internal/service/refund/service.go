package refund

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/vgc-platform/admin-api/internal/email"
	"github.com/vgc-platform/admin-api/internal/form"
	"github.com/vgc-platform/admin-api/internal/model"
	"github.com/vgc-platform/admin-api/internal/repository"
	"github.com/vgc-platform/admin-api/pkg/logger"
)

type Service struct {
	repo     repository.RefundRepository
	emailSvc email.Service
	validate *validator.Validate
	logger   *logger.Logger
}

func NewService(repo repository.RefundRepository, emailSvc email.Service, log *logger.Logger) *Service {
	return &Service{
		repo:     repo,
		emailSvc: emailSvc,
		validate: validator.New(),
		logger:   log.WithComponent("refund"),
	}
}

// FormSchema declares the refund form: reason options are keyed by the refund
// type, so the reason field resets when the type switches.
func FormSchema() form.Schema {
	return form.Schema{
		TypeField: "type",
		Types:     []string{string(model.RefundTypeDeposit), string(model.RefundTypeService)},
		Sections: []form.Section{
			{
				ID:    "issue",
				Title: "Refund details",
				Fields: []form.Field{
					{Name: "reason", Kind: form.KindSelect, Required: true, DependsOnType: true},
					{Name: "transaction_ref", Kind: form.KindText, Required: true},
					{Name: "points", Kind: form.KindText, Required: true},
					{Name: "deposit_account", Kind: form.KindText, Required: true, Types: []string{string(model.RefundTypeDeposit)}},
					{Name: "service_code", Kind: form.KindSelect, Required: true, Types: []string{string(model.RefundTypeService)}},
				},
			},
			{
				ID:    "confirm",
				Title: "Confirmation",
				Fields: []form.Field{
					{Name: "notes", Kind: form.KindTextarea},
					{Name: "agree_terms", Kind: form.KindCheckbox, Required: true, Group: "agreements"},
					{Name: "agree_policy", Kind: form.KindCheckbox, Required: true, Group: "agreements"},
				},
			},
		},
	}
}

func (s *Service) ListRefunds(ctx context.Context) ([]*model.Refund, error) {
	refunds, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list refunds: %w", err)
	}
	return refunds, nil
}

func (s *Service) GetRefund(ctx context.Context, id uuid.UUID) (*model.Refund, error) {
	refund, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get refund: %w", err)
	}
	return refund, nil
}

// Submit persists a validated form payload. A new-mode or copy-mode payload
// creates a refund; an edit-mode payload updates the pending source record.
func (s *Service) Submit(ctx context.Context, payload *form.Payload, user *model.User) (*model.Refund, error) {
	points, err := strconv.Atoi(payload.Fields["points"])
	if err != nil || points < 0 {
		return nil, fmt.Errorf("invalid points value %q", payload.Fields["points"])
	}

	refund := &model.Refund{
		Type:           model.RefundType(payload.Type),
		Reason:         payload.Fields["reason"],
		TransactionRef: payload.Fields["transaction_ref"],
		Points:         points,
		UserID:         user.ID,
		UserEmail:      user.Email,
		Notes:          payload.Fields["notes"],
	}

	if payload.Mode == form.ModeEdit {
		id, err := uuid.Parse(payload.SourceID)
		if err != nil {
			return nil, fmt.Errorf("invalid refund id: %w", err)
		}
		refund.ID = id
		if err := s.repo.Update(ctx, refund); err != nil {
			return nil, fmt.Errorf("failed to update refund: %w", err)
		}
		return s.repo.Get(ctx, id)
	}

	if err := s.repo.Create(ctx, refund); err != nil {
		return nil, fmt.Errorf("failed to create refund: %w", err)
	}

	if err := s.emailSvc.SendSubmissionReceived(ctx, refund.UserEmail, refund.ID.String()); err != nil {
		s.logger.Error(err, "failed to send submission email", "refund_id", refund.ID)
	}

	return refund, nil
}

func (s *Service) Approve(ctx context.Context, id uuid.UUID, req *model.ProcessRefundRequest) (*model.Refund, error) {
	return s.process(ctx, id, req, model.RefundStatusApproved)
}

func (s *Service) Reject(ctx context.Context, id uuid.UUID, req *model.ProcessRefundRequest) (*model.Refund, error) {
	return s.process(ctx, id, req, model.RefundStatusRejected)
}

func (s *Service) process(ctx context.Context, id uuid.UUID, req *model.ProcessRefundRequest, status model.RefundStatus) (*model.Refund, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}

	refund, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get refund: %w", err)
	}
	if refund.Status != model.RefundStatusPending {
		return nil, fmt.Errorf("refund already processed")
	}

	now := time.Now()
	refund.Status = status
	refund.ProcessedAt = &now
	if req.Notes != "" {
		refund.Notes = req.Notes
	}

	// Points are restored only for approved deposit refunds.
	restorePoints := status == model.RefundStatusApproved && refund.Type == model.RefundTypeDeposit

	event, err := s.decisionEvent(refund)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Process(ctx, refund, restorePoints, event); err != nil {
		return nil, fmt.Errorf("failed to process refund: %w", err)
	}

	approved := status == model.RefundStatusApproved
	if err := s.emailSvc.SendRefundDecision(ctx, refund.UserEmail, refund.ID.String(), approved, refund.Points); err != nil {
		s.logger.Error(err, "failed to send decision email", "refund_id", refund.ID)
	}

	return refund, nil
}

func (s *Service) decisionEvent(refund *model.Refund) (*model.OutboxEvent, error) {
	payload, err := json.Marshal(map[string]interface{}{
		"refund_id": refund.ID,
		"status":    refund.Status,
		"type":      refund.Type,
		"points":    refund.Points,
		"user_id":   refund.UserID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode event payload: %w", err)
	}

	return &model.OutboxEvent{
		ID:        uuid.New(),
		EventType: "refund." + string(refund.Status),
		Payload:   payload,
		Status:    model.OutboxStatusPending,
		CreatedAt: time.Now(),
	}, nil
}
