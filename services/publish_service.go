// File: /services/publish_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"aquaevents-api/metrics"
	"aquaevents-api/models"
	"aquaevents-api/repositories"

	"gorm.io/gorm"
)

// SubmissionStore is the moderation-queue persistence the workflow needs.
// Missing rows are reported as gorm.ErrRecordNotFound.
type SubmissionStore interface {
	Create(sub *models.EventSubmission) error
	GetByID(id string) (*models.EventSubmission, error)
	Update(id string, updates map[string]interface{}) error
	Delete(id string) error
	List() ([]models.EventSubmission, error)
	ListByStatus(status string) ([]models.EventSubmission, error)
	ListBySubmitter(userID string) ([]models.EventSubmission, error)
}

// EventDocumentStore is the public events collection. Find methods return
// (nil, nil) when no document matches.
type EventDocumentStore interface {
	FindBySubmissionID(ctx context.Context, submissionID string) (*models.PublicEvent, error)
	GetByID(ctx context.Context, id string) (*models.PublicEvent, error)
	Insert(ctx context.Context, event *models.PublicEvent) (string, error)
	Update(ctx context.Context, id string, event *models.PublicEvent) error
	Delete(ctx context.Context, id string) error
}

// PublishResult reports the outcome of a publish or unpublish as a value.
// Business-rule violations (not approved, not found) land here, not in an
// error return; only the caller's own misuse would panic.
type PublishResult struct {
	Success bool   `json:"success"`
	EventID string `json:"event_id,omitempty"`
	Created bool   `json:"created,omitempty"` // false on a republish that updated in place
	Error   string `json:"error,omitempty"`
}

// PublishService projects approved submissions into the public events
// collection, keyed by submission id so republishing updates in place.
type PublishService struct {
	submissions SubmissionStore
	events      EventDocumentStore
	seo         *SEOService
	siteURL     string
}

func NewPublishService(submissions SubmissionStore, events EventDocumentStore, seo *SEOService, siteURL string) *PublishService {
	return &PublishService{
		submissions: submissions,
		events:      events,
		seo:         seo,
		siteURL:     siteURL,
	}
}

// Publish mirrors one approved submission into the document store.
func (s *PublishService) Publish(ctx context.Context, submissionID string) PublishResult {
	sub, err := s.submissions.GetByID(submissionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			metrics.PublishesTotal.WithLabelValues("not_found").Inc()
			return PublishResult{Success: false, Error: "Submission not found"}
		}
		metrics.PublishesTotal.WithLabelValues("failure").Inc()
		return PublishResult{Success: false, Error: fmt.Sprintf("Database error: %v", err)}
	}

	if sub.Status != models.SubmissionStatusApproved {
		metrics.PublishesTotal.WithLabelValues("not_approved").Inc()
		return PublishResult{Success: false, Error: "Only approved submissions can be published"}
	}

	// Enrichment tolerates generator failure internally; the publish never
	// hard-fails because the model was unavailable.
	seoData := s.seo.EnrichEventSEO(ctx, EventSEOInput{
		Title:       sub.Title,
		City:        sub.City,
		Region:      sub.Region,
		Discipline:  sub.Discipline,
		StartDate:   sub.StartDate,
		Description: sub.Description,
		Category:    sub.Category,
	})

	doc := s.buildDocument(sub, seoData)

	existing, err := s.events.FindBySubmissionID(ctx, submissionID)
	if err != nil {
		metrics.PublishesTotal.WithLabelValues("store_unavailable").Inc()
		return PublishResult{Success: false, Error: storeErrorMessage(err)}
	}

	var eventID string
	var created bool
	if existing != nil {
		// Republish: update the same document, never create a duplicate.
		doc.CreatedAt = existing.CreatedAt
		eventID = existing.ID.Hex()
		if err := s.events.Update(ctx, eventID, doc); err != nil {
			metrics.PublishesTotal.WithLabelValues("store_unavailable").Inc()
			return PublishResult{Success: false, Error: storeErrorMessage(err)}
		}
	} else {
		eventID, err = s.events.Insert(ctx, doc)
		if err != nil {
			metrics.PublishesTotal.WithLabelValues("store_unavailable").Inc()
			return PublishResult{Success: false, Error: storeErrorMessage(err)}
		}
		created = true
	}

	if err := s.submissions.Update(submissionID, map[string]interface{}{
		"published_at": time.Now(),
	}); err != nil {
		log.Printf("[Publish] Failed to stamp publishedAt on %s: %v", submissionID, err)
	}

	metrics.PublishesTotal.WithLabelValues("success").Inc()
	return PublishResult{Success: true, EventID: eventID, Created: created}
}

func (s *PublishService) buildDocument(sub *models.EventSubmission, seoData EventSEOData) *models.PublicEvent {
	now := time.Now()

	endDate := ""
	if sub.EndDate != nil {
		endDate = sub.EndDate.Format("2006-01-02")
	}

	registrationURL := sub.RegistrationURL
	if registrationURL == "" {
		registrationURL = sub.Website
	}

	category := sub.Category
	if category == "" {
		category = "General"
	}

	// Both locales carry the enriched Spanish copy until a real translation
	// replaces the English side.
	return &models.PublicEvent{
		Name:        models.LocalizedText{Es: sub.Title, En: sub.Title},
		Date:        sub.StartDate.Format("2006-01-02"),
		EndDate:     endDate,
		Location:    models.EventLocation{City: sub.City, Region: sub.Region},
		Discipline:  sub.Discipline,
		Category:    category,
		Federation:  "Usuario",
		Contact:     models.EventContact{Email: sub.ContactEmail, Phone: sub.ContactPhone, Website: sub.Website},
		Description: models.LocalizedText{Es: seoData.RichDescription, En: seoData.RichDescription},
		RegistrationURL: registrationURL,
		MaxCapacity:          sub.MaxCapacity,
		CurrentRegistrations: sub.CurrentRegistrations,
		SEO: models.EventSEO{
			Canonical:       s.siteURL + "/eventos/" + seoData.Slug,
			Slug:            seoData.Slug,
			MetaTitle:       seoData.MetaTitle,
			MetaDescription: seoData.MetaDescription,
			Keywords:        seoData.Keywords,
		},
		Source:       models.EventSourceUserSubmission,
		SubmissionID: sub.ID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// DeletePublicEvent removes a document by its store id and cascades to the
// originating moderation row when one is referenced. The cascade runs
// store→queue only; deleting a submission never touches its mirror.
func (s *PublishService) DeletePublicEvent(ctx context.Context, eventID string) PublishResult {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return PublishResult{Success: false, Error: storeErrorMessage(err)}
	}
	if event == nil {
		return PublishResult{Success: false, Error: "Event not found"}
	}

	// The caller may pass either a canonical slug or the hex id; delete by
	// the store-assigned id we just resolved.
	eventID = event.ID.Hex()
	if err := s.events.Delete(ctx, eventID); err != nil {
		return PublishResult{Success: false, Error: storeErrorMessage(err)}
	}

	if event.SubmissionID != "" {
		if err := s.submissions.Delete(event.SubmissionID); err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("[Publish] Failed to cascade delete submission %s: %v", event.SubmissionID, err)
		}
	}

	return PublishResult{Success: true, EventID: eventID}
}

func storeErrorMessage(err error) string {
	if errors.Is(err, repositories.ErrEventStoreUnavailable) {
		return "Event store not available"
	}
	return err.Error()
}
