// File: /models/event_submission.go
package models

import (
	"time"
)

const (
	SubmissionStatusPending  = "pending"
	SubmissionStatusApproved = "approved"
	SubmissionStatusRejected = "rejected"
)

// CapacityUnlimited is the literal stored when an event has no participant cap.
// Kept as text so the column round-trips both numbers and the literal.
const CapacityUnlimited = "ilimitado"

// EventSubmission is a moderation-queue row for a user-proposed event.
// Approved rows are mirrored into the public MongoDB events collection;
// PublishedAt is set only while that mirror exists.
type EventSubmission struct {
	ID                   string     `json:"id" gorm:"primaryKey;size:64"`
	Title                string     `json:"title" gorm:"not null;type:text"`
	Discipline           string     `json:"discipline" gorm:"not null;size:100"`
	Category             string     `json:"category" gorm:"size:100"`
	Region               string     `json:"region" gorm:"not null;size:100"`
	City                 string     `json:"city" gorm:"not null;size:100"`
	StartDate            time.Time  `json:"start_date" gorm:"not null"`
	EndDate              *time.Time `json:"end_date"`
	ContactName          string     `json:"contact_name" gorm:"size:255"`
	ContactEmail         string     `json:"contact_email" gorm:"not null;size:320"`
	ContactPhone         string     `json:"contact_phone" gorm:"size:50"`
	Website              string     `json:"website" gorm:"type:text"`
	RegistrationURL      string     `json:"registration_url" gorm:"type:text"`
	Description          string     `json:"description" gorm:"type:text"`
	MaxCapacity          string     `json:"max_capacity" gorm:"size:20"` // numeric value or "ilimitado"
	CurrentRegistrations string     `json:"current_registrations" gorm:"size:20;default:'0'"`
	SubmittedBy          *string    `json:"submitted_by" gorm:"size:64"` // nil for system-sourced rows
	Status               string     `json:"status" gorm:"not null;default:'pending';size:20"`
	AdminNotes           string     `json:"admin_notes" gorm:"type:text"`
	ReviewedAt           *time.Time `json:"reviewed_at"`
	ReviewedBy           *string    `json:"reviewed_by" gorm:"size:64"`
	PublishedAt          *time.Time `json:"published_at"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

// IsOwnedBy reports whether the submission belongs to the given user.
func (s *EventSubmission) IsOwnedBy(userID string) bool {
	return s.SubmittedBy != nil && *s.SubmittedBy == userID
}
