package model

import (
	"time"

	"github.com/google/uuid"
)

type BusinessStatus string

const (
	BusinessStatusActive    BusinessStatus = "ACTIVE"
	BusinessStatusSuspended BusinessStatus = "SUSPENDED"
	BusinessStatusClosed    BusinessStatus = "CLOSED"
)

type Business struct {
	ID         uuid.UUID      `db:"id" json:"id"`
	Name       string         `db:"name" json:"name"`
	Category   string         `db:"category" json:"category"`
	Status     BusinessStatus `db:"status" json:"status"`
	OwnerEmail string         `db:"owner_email" json:"owner_email"`
	Phone      string         `db:"phone" json:"phone,omitempty"`
	Address    string         `db:"address" json:"address,omitempty"`
	CreatedAt  time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time      `db:"updated_at" json:"updated_at"`
}

func (b *Business) RecordID() string     { return b.ID.String() }
func (b *Business) RecordStatus() string { return string(b.Status) }
func (b *Business) RecordDate() string   { return b.CreatedAt.Format("2006-01-02") }
func (b *Business) SearchFields() []string {
	return []string{b.Name, b.OwnerEmail, b.ID.String()}
}

type CreateBusinessRequest struct {
	Name       string `json:"name" binding:"required"`
	Category   string `json:"category" binding:"required"`
	OwnerEmail string `json:"owner_email" binding:"required,email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
}

type UpdateBusinessRequest struct {
	Name     *string         `json:"name"`
	Category *string         `json:"category"`
	Status   *BusinessStatus `json:"status"`
	Phone    *string         `json:"phone"`
	Address  *string         `json:"address"`
}
