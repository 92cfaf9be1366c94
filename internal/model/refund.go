package model

import (
	"time"

	"github.com/google/uuid"
)

type RefundType string

const (
	RefundTypeDeposit RefundType = "DEPOSIT"
	RefundTypeService RefundType = "SERVICE"
)

type RefundStatus string

const (
	RefundStatusPending  RefundStatus = "PENDING"
	RefundStatusApproved RefundStatus = "APPROVED"
	RefundStatusRejected RefundStatus = "REJECTED"
)

// Refund is a user's request to get points back for a deposit or a service charge.
type Refund struct {
	ID             uuid.UUID    `db:"id" json:"id"`
	Type           RefundType   `db:"type" json:"type"`
	Status         RefundStatus `db:"status" json:"status"`
	Reason         string       `db:"reason" json:"reason"`
	TransactionRef string       `db:"transaction_ref" json:"transaction_ref"`
	Points         int          `db:"points" json:"points"`
	UserID         uuid.UUID    `db:"user_id" json:"user_id"`
	UserEmail      string       `db:"user_email" json:"user_email"`
	Notes          string       `db:"notes" json:"notes,omitempty"`
	CreatedAt      time.Time    `db:"created_at" json:"created_at"`
	ProcessedAt    *time.Time   `db:"processed_at" json:"processed_at,omitempty"`
}

// List view engine accessors.

func (r *Refund) RecordID() string     { return r.ID.String() }
func (r *Refund) RecordStatus() string { return string(r.Status) }
func (r *Refund) RecordDate() string   { return r.CreatedAt.Format("2006-01-02") }
func (r *Refund) SearchFields() []string {
	return []string{r.Reason, r.UserEmail, r.ID.String()}
}

type CreateRefundRequest struct {
	Type           RefundType        `json:"type" binding:"required,oneof=DEPOSIT SERVICE"`
	Fields         map[string]string `json:"fields" binding:"required"`
	TransactionRef string            `json:"transaction_ref"`
}

type ProcessRefundRequest struct {
	Notes string `json:"notes" validate:"max=1000"`
}
