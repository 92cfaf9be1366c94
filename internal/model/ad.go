package model

import (
	"time"

	"github.com/google/uuid"
)

type AdCategory string

const (
	AdCategoryJob     AdCategory = "JOB"
	AdCategoryService AdCategory = "SERVICE"
	AdCategorySale    AdCategory = "SALE"
	AdCategoryNotice  AdCategory = "NOTICE"
)

type AdStatus string

const (
	AdStatusDraft     AdStatus = "DRAFT"
	AdStatusPublished AdStatus = "PUBLISHED"
	AdStatusExpired   AdStatus = "EXPIRED"
	AdStatusRemoved   AdStatus = "REMOVED"
)

// Ad is a classified ad placed by a business on the platform.
type Ad struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	Title       string     `db:"title" json:"title"`
	Category    AdCategory `db:"category" json:"category"`
	Status      AdStatus   `db:"status" json:"status"`
	Points      int        `db:"points" json:"points"`
	Body        string     `db:"body" json:"body,omitempty"`
	BusinessID  uuid.UUID  `db:"business_id" json:"business_id"`
	OwnerEmail  string     `db:"owner_email" json:"owner_email"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	PublishedAt *time.Time `db:"published_at" json:"published_at,omitempty"`
	ExpiresAt   *time.Time `db:"expires_at" json:"expires_at,omitempty"`
}

func (a *Ad) RecordID() string     { return a.ID.String() }
func (a *Ad) RecordStatus() string { return string(a.Status) }
func (a *Ad) RecordDate() string   { return a.CreatedAt.Format("2006-01-02") }
func (a *Ad) SearchFields() []string {
	return []string{a.Title, a.OwnerEmail, a.ID.String()}
}

type CreateAdRequest struct {
	Category   AdCategory        `json:"category" binding:"required,oneof=JOB SERVICE SALE NOTICE"`
	Fields     map[string]string `json:"fields" binding:"required"`
	BusinessID uuid.UUID         `json:"business_id" binding:"required"`
	Points     int               `json:"points" validate:"min=0"`
}

type UpdateAdRequest struct {
	Title  *string   `json:"title"`
	Body   *string   `json:"body"`
	Status *AdStatus `json:"status"`
	Points *int      `json:"points"`
}
