package model

import (
	"time"

	"github.com/google/uuid"
)

type AppliedJobStatus string

const (
	AppliedJobStatusApplied   AppliedJobStatus = "APPLIED"
	AppliedJobStatusReviewing AppliedJobStatus = "REVIEWING"
	AppliedJobStatusAccepted  AppliedJobStatus = "ACCEPTED"
	AppliedJobStatusRejected  AppliedJobStatus = "REJECTED"
)

// AppliedJob is a user's application to a classified job ad.
type AppliedJob struct {
	ID             uuid.UUID        `db:"id" json:"id"`
	AdID           uuid.UUID        `db:"ad_id" json:"ad_id"`
	JobTitle       string           `db:"job_title" json:"job_title"`
	BusinessName   string           `db:"business_name" json:"business_name"`
	Status         AppliedJobStatus `db:"status" json:"status"`
	ApplicantID    uuid.UUID        `db:"applicant_id" json:"applicant_id"`
	ApplicantEmail string           `db:"applicant_email" json:"applicant_email"`
	AppliedAt      time.Time        `db:"applied_at" json:"applied_at"`
	UpdatedAt      time.Time        `db:"updated_at" json:"updated_at"`
}

func (j *AppliedJob) RecordID() string     { return j.ID.String() }
func (j *AppliedJob) RecordStatus() string { return string(j.Status) }
func (j *AppliedJob) RecordDate() string   { return j.AppliedAt.Format("2006-01-02") }
func (j *AppliedJob) SearchFields() []string {
	return []string{j.JobTitle, j.ApplicantEmail, j.ID.String()}
}

type UpdateAppliedJobRequest struct {
	Status AppliedJobStatus `json:"status" binding:"required,oneof=APPLIED REVIEWING ACCEPTED REJECTED"`
}
