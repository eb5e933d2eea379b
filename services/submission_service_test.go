// File: /services/submission_service_test.go
package services

import (
	"context"
	"testing"
	"time"

	"aquaevents-api/models"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func verifiedUser(id string) *models.User {
	return &models.User{
		ID:            id,
		Name:          "Organizador",
		Email:         id + "@club.es",
		Role:          models.RoleUser,
		EmailVerified: true,
	}
}

func adminUser() *models.User {
	u := verifiedUser("admin-1")
	u.Role = models.RoleAdmin
	return u
}

func workflowFixture(t *testing.T) (*SubmissionService, *fakeSubmissionStore, *fakeEventStore, *fakeNotifier) {
	t.Helper()
	svc, subs, events, notifier := workflowFixtureWithSubscribers(t, nil)
	return svc, subs, events, notifier
}

func workflowFixtureWithSubscribers(t *testing.T, users []models.User) (*SubmissionService, *fakeSubmissionStore, *fakeEventStore, *fakeNotifier) {
	t.Helper()
	subs := newFakeSubmissionStore()
	events := newFakeEventStore()
	notifier := &fakeNotifier{}
	publisher := NewPublishService(subs, events, fallbackSEOService(t), testSiteURL)
	svc := NewSubmissionService(subs, publisher, notifier, &fakeSubscriberStore{users: users})
	return svc, subs, events, notifier
}

func submitInput() SubmitInput {
	return SubmitInput{
		Title:        "Travesía a Nado Playa de la Concha",
		Discipline:   "Aguas Abiertas",
		Region:       "País Vasco",
		City:         "San Sebastián",
		StartDate:    "2026-07-12",
		ContactEmail: "info@travesia.es",
		MaxCapacity:  "ilimitado",
	}
}

func TestSubmitCreatesPendingRow(t *testing.T) {
	svc, subs, _, notifier := workflowFixture(t)

	sub, err := svc.Submit(context.Background(), verifiedUser("user-1"), submitInput())
	require.NoError(t, err)

	require.Equal(t, models.SubmissionStatusPending, sub.Status)
	require.NotEmpty(t, sub.ID)
	require.Equal(t, "user-1", *sub.SubmittedBy)
	require.Equal(t, "0", sub.CurrentRegistrations)
	require.Equal(t, 2026, sub.StartDate.Year())

	// "ilimitado" survives the round trip through the store.
	row, err := subs.GetByID(sub.ID)
	require.NoError(t, err)
	require.Equal(t, models.CapacityUnlimited, row.MaxCapacity)

	require.Equal(t, []string{"info@travesia.es"}, notifier.confirmed)
}

func TestSubmitCombinesDateAndTime(t *testing.T) {
	svc, _, _, _ := workflowFixture(t)

	input := submitInput()
	input.StartTime = "09:30"

	sub, err := svc.Submit(context.Background(), verifiedUser("user-1"), input)
	require.NoError(t, err)
	require.Equal(t, 9, sub.StartDate.Hour())
	require.Equal(t, 30, sub.StartDate.Minute())
}

func TestSubmitRequiresVerifiedEmail(t *testing.T) {
	svc, _, _, _ := workflowFixture(t)

	user := verifiedUser("user-1")
	user.EmailVerified = false

	_, err := svc.Submit(context.Background(), user, submitInput())
	require.ErrorIs(t, err, ErrEmailNotVerified)
}

func TestSubmitRejectsBadCapacity(t *testing.T) {
	svc, _, _, _ := workflowFixture(t)

	input := submitInput()
	input.MaxCapacity = "muchos"

	_, err := svc.Submit(context.Background(), verifiedUser("user-1"), input)
	require.Error(t, err)
}

func TestApprovePublishesEndToEnd(t *testing.T) {
	svc, subs, events, notifier := workflowFixture(t)
	ctx := context.Background()

	sub, err := svc.Submit(ctx, verifiedUser("user-1"), submitInput())
	require.NoError(t, err)

	result, err := svc.Approve(ctx, adminUser(), sub.ID, "Looks good")
	require.NoError(t, err)
	require.True(t, result.Success)

	row, err := subs.GetByID(sub.ID)
	require.NoError(t, err)
	require.Equal(t, models.SubmissionStatusApproved, row.Status)
	require.NotNil(t, row.ReviewedAt)
	require.Equal(t, "admin-1", *row.ReviewedBy)
	require.Equal(t, "Looks good", row.AdminNotes)
	require.NotNil(t, row.PublishedAt)

	doc, err := events.GetByID(ctx, result.EventID)
	require.NoError(t, err)
	require.NotNil(t, doc)
	require.Equal(t, "Travesía a Nado Playa de la Concha", doc.Name.Es)
	require.Equal(t, models.EventSourceUserSubmission, doc.Source)
	require.Equal(t, sub.ID, doc.SubmissionID)

	require.Equal(t, []string{"info@travesia.es"}, notifier.approved)
}

func TestApproveAlertsConsentingSubscribers(t *testing.T) {
	consent := time.Now()
	subscribers := []models.User{
		{ID: "sub-all", Email: "all@nadadores.es", EmailConsent: &consent},
		{ID: "sub-match", Email: "abiertas@nadadores.es", EmailConsent: &consent, PreferredDisciplines: models.StringSlice{"Aguas Abiertas"}},
		{ID: "sub-other", Email: "triatlon@nadadores.es", EmailConsent: &consent, PreferredDisciplines: models.StringSlice{"Triatlón"}},
		{ID: "sub-no-consent", Email: "silencio@nadadores.es"},
	}
	svc, _, _, notifier := workflowFixtureWithSubscribers(t, subscribers)
	ctx := context.Background()

	sub, err := svc.Submit(ctx, verifiedUser("user-1"), submitInput())
	require.NoError(t, err)

	result, err := svc.Approve(ctx, adminUser(), sub.ID, "")
	require.NoError(t, err)
	require.True(t, result.Created)

	// Consent plus a matching (or absent) discipline preference gets the
	// alert; everyone else stays quiet.
	require.ElementsMatch(t, []string{"all@nadadores.es", "abiertas@nadadores.es"}, notifier.alerted)
}

func TestReapprovalDoesNotRepeatSubscriberAlerts(t *testing.T) {
	consent := time.Now()
	svc, _, _, notifier := workflowFixtureWithSubscribers(t, []models.User{
		{ID: "sub-all", Email: "all@nadadores.es", EmailConsent: &consent},
	})
	ctx := context.Background()
	owner := verifiedUser("user-1")

	sub, err := svc.Submit(ctx, owner, submitInput())
	require.NoError(t, err)

	first, err := svc.Approve(ctx, adminUser(), sub.ID, "")
	require.NoError(t, err)
	require.True(t, first.Created)

	city := "Donostia"
	_, err = svc.Update(ctx, owner, sub.ID, UpdateInput{City: &city})
	require.NoError(t, err)

	second, err := svc.Approve(ctx, adminUser(), sub.ID, "")
	require.NoError(t, err)
	require.True(t, second.Success)
	require.False(t, second.Created)

	require.Len(t, notifier.alerted, 1, "a republish must not alert subscribers again")
}

func TestApproveRequiresAdmin(t *testing.T) {
	svc, _, _, _ := workflowFixture(t)
	ctx := context.Background()

	sub, err := svc.Submit(ctx, verifiedUser("user-1"), submitInput())
	require.NoError(t, err)

	_, err = svc.Approve(ctx, verifiedUser("user-1"), sub.ID, "")
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestApproveSurvivesPublishFailure(t *testing.T) {
	svc, subs, events, _ := workflowFixture(t)
	ctx := context.Background()

	sub, err := svc.Submit(ctx, verifiedUser("user-1"), submitInput())
	require.NoError(t, err)

	events.unavailable = true

	result, err := svc.Approve(ctx, adminUser(), sub.ID, "")
	require.NoError(t, err, "approval must stand even when publishing fails")
	require.False(t, result.Success)

	row, err := subs.GetByID(sub.ID)
	require.NoError(t, err)
	require.Equal(t, models.SubmissionStatusApproved, row.Status)
	require.Nil(t, row.PublishedAt)
}

func TestRejectStampsReviewAndNotifies(t *testing.T) {
	svc, subs, _, notifier := workflowFixture(t)
	ctx := context.Background()

	sub, err := svc.Submit(ctx, verifiedUser("user-1"), submitInput())
	require.NoError(t, err)

	require.NoError(t, svc.Reject(ctx, adminUser(), sub.ID, "Duplicate event"))

	row, err := subs.GetByID(sub.ID)
	require.NoError(t, err)
	require.Equal(t, models.SubmissionStatusRejected, row.Status)
	require.Equal(t, "Duplicate event", row.AdminNotes)
	require.Equal(t, []string{"info@travesia.es"}, notifier.rejected)
}

func TestUpdatePublishedRowResetsToPending(t *testing.T) {
	svc, subs, _, _ := workflowFixture(t)
	ctx := context.Background()
	owner := verifiedUser("user-1")

	sub, err := svc.Submit(ctx, owner, submitInput())
	require.NoError(t, err)

	_, err = svc.Approve(ctx, adminUser(), sub.ID, "ok")
	require.NoError(t, err)

	newTitle := "Travesía a Nado Playa de la Concha 2026"
	outcome, err := svc.Update(ctx, owner, sub.ID, UpdateInput{Title: &newTitle})
	require.NoError(t, err)
	require.True(t, outcome.RequiresReapproval)

	row, err := subs.GetByID(sub.ID)
	require.NoError(t, err)
	require.Equal(t, newTitle, row.Title)
	require.Equal(t, models.SubmissionStatusPending, row.Status)
	require.Nil(t, row.PublishedAt)
	require.Nil(t, row.ReviewedAt)
	require.Nil(t, row.ReviewedBy)
	require.Empty(t, row.AdminNotes)
}

func TestUpdateUnpublishedRowKeepsStatus(t *testing.T) {
	svc, subs, _, _ := workflowFixture(t)
	ctx := context.Background()
	owner := verifiedUser("user-1")

	sub, err := svc.Submit(ctx, owner, submitInput())
	require.NoError(t, err)

	city := "Donostia"
	outcome, err := svc.Update(ctx, owner, sub.ID, UpdateInput{City: &city})
	require.NoError(t, err)
	require.False(t, outcome.RequiresReapproval)

	row, err := subs.GetByID(sub.ID)
	require.NoError(t, err)
	require.Equal(t, "Donostia", row.City)
	require.Equal(t, models.SubmissionStatusPending, row.Status)
}

func TestUpdateEnforcesOwnership(t *testing.T) {
	svc, _, _, _ := workflowFixture(t)
	ctx := context.Background()

	sub, err := svc.Submit(ctx, verifiedUser("user-1"), submitInput())
	require.NoError(t, err)

	title := "Hijacked"
	_, err = svc.Update(ctx, verifiedUser("user-2"), sub.ID, UpdateInput{Title: &title})
	require.ErrorIs(t, err, ErrUnauthorized)

	// An admin may edit anyone's submission.
	_, err = svc.Update(ctx, adminUser(), sub.ID, UpdateInput{Title: &title})
	require.NoError(t, err)
}

func TestDeleteEnforcesOwnership(t *testing.T) {
	svc, subs, _, _ := workflowFixture(t)
	ctx := context.Background()

	sub, err := svc.Submit(ctx, verifiedUser("user-1"), submitInput())
	require.NoError(t, err)

	require.ErrorIs(t, svc.Delete(ctx, verifiedUser("user-2"), sub.ID), ErrUnauthorized)
	require.NoError(t, svc.Delete(ctx, verifiedUser("user-1"), sub.ID))

	_, err = subs.GetByID(sub.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestDeleteSubmissionLeavesPublishedMirror(t *testing.T) {
	svc, _, events, _ := workflowFixture(t)
	ctx := context.Background()
	owner := verifiedUser("user-1")

	sub, err := svc.Submit(ctx, owner, submitInput())
	require.NoError(t, err)

	_, err = svc.Approve(ctx, adminUser(), sub.ID, "")
	require.NoError(t, err)
	require.Equal(t, 1, events.count())

	require.NoError(t, svc.Delete(ctx, owner, sub.ID))
	require.Equal(t, 1, events.count(), "deleting the queue row must not touch the public mirror")
}

func TestListingsRequireTheRightRole(t *testing.T) {
	svc, _, _, _ := workflowFixture(t)
	ctx := context.Background()

	_, err := svc.Submit(ctx, verifiedUser("user-1"), submitInput())
	require.NoError(t, err)

	_, err = svc.List(verifiedUser("user-1"))
	require.ErrorIs(t, err, ErrUnauthorized)

	pending, err := svc.Pending(adminUser())
	require.NoError(t, err)
	require.Len(t, pending, 1)

	mine, err := svc.MySubmissions(verifiedUser("user-1"))
	require.NoError(t, err)
	require.Len(t, mine, 1)
}
