// File: /models/public_event.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	EventSourceUserSubmission = "user-submission"
	EventSourceWorldTriathlon = "world-triathlon"
)

// LocalizedText holds per-locale strings. Spanish is always populated;
// English mirrors it until a real translation exists.
type LocalizedText struct {
	Es string `bson:"es" json:"es"`
	En string `bson:"en,omitempty" json:"en,omitempty"`
}

type EventLocation struct {
	City    string `bson:"city" json:"city"`
	Region  string `bson:"region" json:"region"`
	Venue   string `bson:"venue,omitempty" json:"venue,omitempty"`
	Address string `bson:"address,omitempty" json:"address,omitempty"`
}

type EventContact struct {
	Email   string `bson:"email" json:"email"`
	Phone   string `bson:"phone,omitempty" json:"phone,omitempty"`
	Website string `bson:"website,omitempty" json:"website,omitempty"`
}

type EventSEO struct {
	Canonical       string   `bson:"canonical" json:"canonical"`
	Slug            string   `bson:"slug" json:"slug"`
	MetaTitle       string   `bson:"metaTitle" json:"meta_title"`
	MetaDescription string   `bson:"metaDescription" json:"meta_description"`
	Keywords        []string `bson:"keywords,omitempty" json:"keywords,omitempty"`
}

// PublicEvent is the denormalized document served to site visitors.
// Documents have no fixed schema in the collection; optional fields stay
// optional here rather than pretending to a stricter shape.
type PublicEvent struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name                 LocalizedText      `bson:"name" json:"name"`
	Date                 string             `bson:"date" json:"date"` // YYYY-MM-DD
	EndDate              string             `bson:"endDate,omitempty" json:"end_date,omitempty"`
	Location             EventLocation      `bson:"location" json:"location"`
	Discipline           string             `bson:"discipline" json:"discipline"`
	Category             string             `bson:"category,omitempty" json:"category,omitempty"`
	Federation           string             `bson:"federation,omitempty" json:"federation,omitempty"`
	Contact              EventContact       `bson:"contact" json:"contact"`
	Description          LocalizedText      `bson:"description" json:"description"`
	RegistrationURL      string             `bson:"registrationUrl,omitempty" json:"registration_url,omitempty"`
	MaxCapacity          string             `bson:"maxCapacity,omitempty" json:"max_capacity,omitempty"`
	CurrentRegistrations string             `bson:"currentRegistrations,omitempty" json:"current_registrations,omitempty"`
	SEO                  EventSEO           `bson:"seo" json:"seo"`
	Source               string             `bson:"source,omitempty" json:"source,omitempty"`
	SubmissionID         string             `bson:"submissionId,omitempty" json:"submission_id,omitempty"`
	ExternalID           string             `bson:"externalId,omitempty" json:"external_id,omitempty"`
	CreatedAt            time.Time          `bson:"createdAt" json:"created_at"`
	UpdatedAt            time.Time          `bson:"updatedAt" json:"updated_at"`
}

// EventStats summarizes the public calendar for the admin dashboard.
type EventStats struct {
	Total        int64             `json:"total"`
	Upcoming     int64             `json:"upcoming"`
	ByDiscipline []DisciplineCount `json:"by_discipline"`
}

type DisciplineCount struct {
	Discipline string `bson:"_id" json:"discipline"`
	Count      int64  `bson:"count" json:"count"`
}
