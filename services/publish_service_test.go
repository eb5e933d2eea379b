// File: /services/publish_service_test.go
package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"aquaevents-api/models"

	"github.com/stretchr/testify/require"
)

const testSiteURL = "https://aquaevents.club"

// fallbackSEOService returns an SEOService whose generator always fails, so
// publishing exercises the deterministic fallback path.
func fallbackSEOService(t *testing.T) *SEOService {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(server.Close)
	return NewSEOService(NewLLMClient(server.URL, "key", "model"))
}

func approvedSubmission(id string) *models.EventSubmission {
	owner := "user-1"
	return &models.EventSubmission{
		ID:           id,
		Title:        "V Duatlón Cros Jerez-La Bazana",
		Discipline:   "Duatlón",
		Region:       "Extremadura",
		City:         "Jerez de los Caballeros",
		StartDate:    time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		ContactEmail: "organizador@club.es",
		ContactPhone: "+34 600 000 000",
		Website:      "https://club.es",
		MaxCapacity:  "200",
		SubmittedBy:  &owner,
		Status:       models.SubmissionStatusApproved,
	}
}

func TestPublishCreatesDocument(t *testing.T) {
	subs := newFakeSubmissionStore()
	events := newFakeEventStore()
	svc := NewPublishService(subs, events, fallbackSEOService(t), testSiteURL)

	require.NoError(t, subs.Create(approvedSubmission("sub-1")))

	result := svc.Publish(context.Background(), "sub-1")

	require.True(t, result.Success)
	require.NotEmpty(t, result.EventID)
	require.Equal(t, 1, events.count())

	doc, err := events.GetByID(context.Background(), result.EventID)
	require.NoError(t, err)
	require.NotNil(t, doc)
	require.Equal(t, "V Duatlón Cros Jerez-La Bazana", doc.Name.Es)
	require.Equal(t, "2026-03-15", doc.Date)
	require.Equal(t, models.EventSourceUserSubmission, doc.Source)
	require.Equal(t, "sub-1", doc.SubmissionID)
	require.Equal(t, testSiteURL+"/eventos/v-duatlon-cros-jerez-la-bazana-jerez-de-los-caballeros-2026", doc.SEO.Canonical)
	// No registration URL on the submission; the website stands in.
	require.Equal(t, "https://club.es", doc.RegistrationURL)

	// Publishing stamps the moderation row.
	row, err := subs.GetByID("sub-1")
	require.NoError(t, err)
	require.NotNil(t, row.PublishedAt)
}

func TestPublishedEventResolvableBySlug(t *testing.T) {
	subs := newFakeSubmissionStore()
	events := newFakeEventStore()
	svc := NewPublishService(subs, events, fallbackSEOService(t), testSiteURL)

	require.NoError(t, subs.Create(approvedSubmission("sub-1")))

	result := svc.Publish(context.Background(), "sub-1")
	require.True(t, result.Success)

	// The public event page looks up by the bare URL slug, not the full
	// canonical URL or the store id.
	doc, err := events.GetByID(context.Background(), "v-duatlon-cros-jerez-la-bazana-jerez-de-los-caballeros-2026")
	require.NoError(t, err)
	require.NotNil(t, doc)
	require.Equal(t, "sub-1", doc.SubmissionID)
	require.Equal(t, "v-duatlon-cros-jerez-la-bazana-jerez-de-los-caballeros-2026", doc.SEO.Slug)
	require.Equal(t, testSiteURL+"/eventos/"+doc.SEO.Slug, doc.SEO.Canonical)
}

func TestPublishIsIdempotent(t *testing.T) {
	subs := newFakeSubmissionStore()
	events := newFakeEventStore()
	svc := NewPublishService(subs, events, fallbackSEOService(t), testSiteURL)

	require.NoError(t, subs.Create(approvedSubmission("sub-1")))

	first := svc.Publish(context.Background(), "sub-1")
	require.True(t, first.Success)
	require.True(t, first.Created)

	second := svc.Publish(context.Background(), "sub-1")
	require.True(t, second.Success)
	require.False(t, second.Created)

	require.Equal(t, 1, events.count(), "republishing must update in place, not duplicate")
	require.Equal(t, first.EventID, second.EventID)
}

func TestPublishRejectsNonApprovedStatuses(t *testing.T) {
	for _, status := range []string{models.SubmissionStatusPending, models.SubmissionStatusRejected} {
		t.Run(status, func(t *testing.T) {
			subs := newFakeSubmissionStore()
			events := newFakeEventStore()
			svc := NewPublishService(subs, events, fallbackSEOService(t), testSiteURL)

			sub := approvedSubmission("sub-1")
			sub.Status = status
			require.NoError(t, subs.Create(sub))

			result := svc.Publish(context.Background(), "sub-1")

			require.False(t, result.Success)
			require.Contains(t, result.Error, "approved")
			require.Equal(t, 0, events.count())
		})
	}
}

func TestPublishUnknownSubmission(t *testing.T) {
	svc := NewPublishService(newFakeSubmissionStore(), newFakeEventStore(), fallbackSEOService(t), testSiteURL)

	result := svc.Publish(context.Background(), "missing")

	require.False(t, result.Success)
	require.Equal(t, "Submission not found", result.Error)
}

func TestPublishStoreUnavailable(t *testing.T) {
	subs := newFakeSubmissionStore()
	events := newFakeEventStore()
	events.unavailable = true
	svc := NewPublishService(subs, events, fallbackSEOService(t), testSiteURL)

	require.NoError(t, subs.Create(approvedSubmission("sub-1")))

	result := svc.Publish(context.Background(), "sub-1")

	require.False(t, result.Success)
	require.Equal(t, "Event store not available", result.Error)

	// The row must not look published when nothing reached the store.
	row, err := subs.GetByID("sub-1")
	require.NoError(t, err)
	require.Nil(t, row.PublishedAt)
}

func TestPublishMaxCapacityLiteral(t *testing.T) {
	subs := newFakeSubmissionStore()
	events := newFakeEventStore()
	svc := NewPublishService(subs, events, fallbackSEOService(t), testSiteURL)

	sub := approvedSubmission("sub-1")
	sub.MaxCapacity = models.CapacityUnlimited
	require.NoError(t, subs.Create(sub))

	result := svc.Publish(context.Background(), "sub-1")
	require.True(t, result.Success)

	doc, err := events.GetByID(context.Background(), result.EventID)
	require.NoError(t, err)
	require.Equal(t, "ilimitado", doc.MaxCapacity)
}

func TestDeletePublicEventCascadesToSubmission(t *testing.T) {
	subs := newFakeSubmissionStore()
	events := newFakeEventStore()
	svc := NewPublishService(subs, events, fallbackSEOService(t), testSiteURL)

	require.NoError(t, subs.Create(approvedSubmission("sub-1")))
	published := svc.Publish(context.Background(), "sub-1")
	require.True(t, published.Success)

	result := svc.DeletePublicEvent(context.Background(), published.EventID)

	require.True(t, result.Success)
	require.Equal(t, 0, events.count())

	_, err := subs.GetByID("sub-1")
	require.Error(t, err, "cascade must remove the moderation row")
}

func TestDeletePublicEventNotFound(t *testing.T) {
	svc := NewPublishService(newFakeSubmissionStore(), newFakeEventStore(), fallbackSEOService(t), testSiteURL)

	result := svc.DeletePublicEvent(context.Background(), "64b000000000000000000000")

	require.False(t, result.Success)
	require.Equal(t, "Event not found", result.Error)
}
