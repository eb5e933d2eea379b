// File: /services/submission_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"aquaevents-api/models"
	"aquaevents-api/utils"

	"github.com/google/uuid"
)

var (
	// ErrUnauthorized is returned when the actor may not perform the action.
	ErrUnauthorized = errors.New("Unauthorized")
	// ErrEmailNotVerified is returned when a submitter has not verified
	// their contact email yet.
	ErrEmailNotVerified = errors.New("email not verified")
)

// Notifier is the best-effort side channel into the marketing automation
// tool. Implementations never fail the caller; they report a bool that the
// workflow is free to ignore.
type Notifier interface {
	SendEventSubmissionConfirmation(ctx context.Context, email, eventTitle string) bool
	SendEventApprovalNotification(ctx context.Context, email, eventTitle string) bool
	SendEventRejectionNotification(ctx context.Context, email, eventTitle, reason string) bool
	SendNewEventNotification(ctx context.Context, email, eventTitle, discipline string) bool
}

// SubscriberStore lists users who opted in to new-event alerts for a
// discipline.
type SubscriberStore interface {
	ListSubscribers(discipline string) ([]models.User, error)
}

// SubmissionService implements the moderation workflow: CRUD plus the
// pending/approved/rejected lifecycle, auto-publish on approval, and the
// resubmission-for-reapproval rule on edits of published rows.
type SubmissionService struct {
	store       SubmissionStore
	publisher   *PublishService
	notifier    Notifier
	subscribers SubscriberStore
}

func NewSubmissionService(store SubmissionStore, publisher *PublishService, notifier Notifier, subscribers SubscriberStore) *SubmissionService {
	return &SubmissionService{
		store:       store,
		publisher:   publisher,
		notifier:    notifier,
		subscribers: subscribers,
	}
}

type SubmitInput struct {
	Title                string
	Discipline           string
	Category             string
	Region               string
	City                 string
	StartDate            string // YYYY-MM-DD
	StartTime            string // HH:MM, optional
	EndDate              string
	EndTime              string
	ContactName          string
	ContactEmail         string
	ContactPhone         string
	Website              string
	Description          string
	RegistrationURL      string
	MaxCapacity          string
	CurrentRegistrations string
}

// Submit creates a pending moderation row for a verified submitter and fires
// the confirmation notification without waiting on its outcome.
func (s *SubmissionService) Submit(ctx context.Context, actor *models.User, input SubmitInput) (*models.EventSubmission, error) {
	if actor == nil {
		return nil, ErrUnauthorized
	}
	if !actor.EmailVerified {
		return nil, ErrEmailNotVerified
	}
	if !utils.IsValidEmail(input.ContactEmail) {
		return nil, fmt.Errorf("invalid contact email %q", input.ContactEmail)
	}
	if !utils.IsValidCapacity(input.MaxCapacity) {
		return nil, fmt.Errorf("invalid max capacity %q", input.MaxCapacity)
	}

	startDate, err := combineDateTime(input.StartDate, input.StartTime)
	if err != nil {
		return nil, fmt.Errorf("invalid start date: %w", err)
	}

	var endDate *time.Time
	if input.EndDate != "" {
		end, err := combineDateTime(input.EndDate, input.EndTime)
		if err != nil {
			return nil, fmt.Errorf("invalid end date: %w", err)
		}
		endDate = &end
	}

	currentRegistrations := input.CurrentRegistrations
	if currentRegistrations == "" {
		currentRegistrations = "0"
	}

	submitterID := actor.ID
	sub := &models.EventSubmission{
		ID:                   uuid.New().String(),
		Title:                input.Title,
		Discipline:           input.Discipline,
		Category:             input.Category,
		Region:               input.Region,
		City:                 input.City,
		StartDate:            startDate,
		EndDate:              endDate,
		ContactName:          input.ContactName,
		ContactEmail:         input.ContactEmail,
		ContactPhone:         input.ContactPhone,
		Website:              input.Website,
		RegistrationURL:      input.RegistrationURL,
		Description:          input.Description,
		MaxCapacity:          input.MaxCapacity,
		CurrentRegistrations: currentRegistrations,
		SubmittedBy:          &submitterID,
		Status:               models.SubmissionStatusPending,
	}

	if err := s.store.Create(sub); err != nil {
		return nil, fmt.Errorf("failed to create submission: %w", err)
	}

	if s.notifier != nil {
		if !s.notifier.SendEventSubmissionConfirmation(ctx, sub.ContactEmail, sub.Title) {
			log.Printf("[Submissions] Confirmation notification failed for %s", sub.ID)
		}
	}

	return sub, nil
}

// Approve transitions a submission to approved, stamps the review fields,
// and synchronously publishes it. A publish failure leaves the row approved
// but unpublished; an admin retries via the explicit publish action.
func (s *SubmissionService) Approve(ctx context.Context, admin *models.User, id, adminNotes string) (PublishResult, error) {
	if admin == nil || !admin.IsAdmin() {
		return PublishResult{}, ErrUnauthorized
	}

	sub, err := s.store.GetByID(id)
	if err != nil {
		return PublishResult{}, err
	}

	if err := s.store.Update(id, map[string]interface{}{
		"status":      models.SubmissionStatusApproved,
		"reviewed_at": time.Now(),
		"reviewed_by": admin.ID,
		"admin_notes": adminNotes,
	}); err != nil {
		return PublishResult{}, fmt.Errorf("failed to approve submission: %w", err)
	}

	result := s.publisher.Publish(ctx, id)
	if !result.Success {
		log.Printf("[Submissions] Publish after approval failed for %s: %s", id, result.Error)
	}

	if s.notifier != nil {
		if !s.notifier.SendEventApprovalNotification(ctx, sub.ContactEmail, sub.Title) {
			log.Printf("[Submissions] Approval notification failed for %s", id)
		}
	}

	// Alert consenting subscribers the first time an event goes live. A
	// republish updates an existing document and stays silent.
	if result.Success && result.Created {
		s.notifySubscribers(ctx, sub)
	}

	return result, nil
}

func (s *SubmissionService) notifySubscribers(ctx context.Context, sub *models.EventSubmission) {
	if s.subscribers == nil || s.notifier == nil {
		return
	}

	users, err := s.subscribers.ListSubscribers(sub.Discipline)
	if err != nil {
		log.Printf("[Submissions] Failed to list subscribers for %s: %v", sub.Discipline, err)
		return
	}
	for _, user := range users {
		if !s.notifier.SendNewEventNotification(ctx, user.Email, sub.Title, sub.Discipline) {
			log.Printf("[Submissions] New event notification failed for %s", user.Email)
		}
	}
}

// Reject transitions any submission to rejected and fires the rejection
// notification including the reason.
func (s *SubmissionService) Reject(ctx context.Context, admin *models.User, id, adminNotes string) error {
	if admin == nil || !admin.IsAdmin() {
		return ErrUnauthorized
	}

	sub, err := s.store.GetByID(id)
	if err != nil {
		return err
	}

	if err := s.store.Update(id, map[string]interface{}{
		"status":      models.SubmissionStatusRejected,
		"reviewed_at": time.Now(),
		"reviewed_by": admin.ID,
		"admin_notes": adminNotes,
	}); err != nil {
		return fmt.Errorf("failed to reject submission: %w", err)
	}

	if s.notifier != nil {
		if !s.notifier.SendEventRejectionNotification(ctx, sub.ContactEmail, sub.Title, adminNotes) {
			log.Printf("[Submissions] Rejection notification failed for %s", id)
		}
	}

	return nil
}

// Publish re-runs the pipeline for an admin. Used to retry after a failed
// auto-publish without re-approving.
func (s *SubmissionService) Publish(ctx context.Context, admin *models.User, id string) (PublishResult, error) {
	if admin == nil || !admin.IsAdmin() {
		return PublishResult{}, ErrUnauthorized
	}
	return s.publisher.Publish(ctx, id), nil
}

// UpdateInput applies only the fields that are present.
type UpdateInput struct {
	Title                *string
	Discipline           *string
	Category             *string
	Region               *string
	City                 *string
	StartDate            *string // YYYY-MM-DD
	StartTime            *string
	EndDate              *string
	EndTime              *string
	ContactName          *string
	ContactEmail         *string
	ContactPhone         *string
	Website              *string
	Description          *string
	RegistrationURL      *string
	MaxCapacity          *string
	CurrentRegistrations *string
}

// UpdateOutcome reports whether the edit knocked a published row back into
// the moderation queue.
type UpdateOutcome struct {
	RequiresReapproval bool `json:"requires_reapproval"`
}

// Update applies a partial edit for the owner or an admin. Editing a row
// whose PublishedAt is set resets it to pending and clears the review and
// publish stamps in the same write, forcing re-approval before the public
// mirror is refreshed again.
func (s *SubmissionService) Update(ctx context.Context, actor *models.User, id string, input UpdateInput) (*UpdateOutcome, error) {
	if actor == nil {
		return nil, ErrUnauthorized
	}

	sub, err := s.store.GetByID(id)
	if err != nil {
		return nil, err
	}

	if !actor.IsAdmin() && !sub.IsOwnedBy(actor.ID) {
		return nil, ErrUnauthorized
	}

	updates := map[string]interface{}{}

	setString := func(column string, value *string) {
		if value != nil {
			updates[column] = *value
		}
	}
	setString("title", input.Title)
	setString("discipline", input.Discipline)
	setString("category", input.Category)
	setString("region", input.Region)
	setString("city", input.City)
	setString("contact_name", input.ContactName)
	setString("contact_phone", input.ContactPhone)
	setString("website", input.Website)
	setString("description", input.Description)
	setString("registration_url", input.RegistrationURL)
	setString("current_registrations", input.CurrentRegistrations)

	if input.ContactEmail != nil {
		if !utils.IsValidEmail(*input.ContactEmail) {
			return nil, fmt.Errorf("invalid contact email %q", *input.ContactEmail)
		}
		updates["contact_email"] = *input.ContactEmail
	}
	if input.MaxCapacity != nil {
		if !utils.IsValidCapacity(*input.MaxCapacity) {
			return nil, fmt.Errorf("invalid max capacity %q", *input.MaxCapacity)
		}
		updates["max_capacity"] = *input.MaxCapacity
	}
	if input.StartDate != nil {
		startTime := ""
		if input.StartTime != nil {
			startTime = *input.StartTime
		}
		start, err := combineDateTime(*input.StartDate, startTime)
		if err != nil {
			return nil, fmt.Errorf("invalid start date: %w", err)
		}
		updates["start_date"] = start
	}
	if input.EndDate != nil {
		if *input.EndDate == "" {
			updates["end_date"] = nil
		} else {
			endTime := ""
			if input.EndTime != nil {
				endTime = *input.EndTime
			}
			end, err := combineDateTime(*input.EndDate, endTime)
			if err != nil {
				return nil, fmt.Errorf("invalid end date: %w", err)
			}
			updates["end_date"] = end
		}
	}

	outcome := &UpdateOutcome{}
	if len(updates) == 0 {
		return outcome, nil
	}

	// Resubmission-for-reapproval rule: a content edit to a published row
	// pulls it back into the moderation queue atomically with the edit.
	if sub.PublishedAt != nil {
		updates["status"] = models.SubmissionStatusPending
		updates["published_at"] = nil
		updates["reviewed_at"] = nil
		updates["reviewed_by"] = nil
		updates["admin_notes"] = nil
		outcome.RequiresReapproval = true
	}

	if err := s.store.Update(id, updates); err != nil {
		return nil, fmt.Errorf("failed to update submission: %w", err)
	}

	return outcome, nil
}

// Delete removes the moderation row for the owner or an admin. A published
// mirror stays in the document store; removing that is a separate admin
// action against the public calendar.
func (s *SubmissionService) Delete(ctx context.Context, actor *models.User, id string) error {
	if actor == nil {
		return ErrUnauthorized
	}

	sub, err := s.store.GetByID(id)
	if err != nil {
		return err
	}

	if !actor.IsAdmin() && !sub.IsOwnedBy(actor.ID) {
		return ErrUnauthorized
	}

	return s.store.Delete(id)
}

func (s *SubmissionService) List(admin *models.User) ([]models.EventSubmission, error) {
	if admin == nil || !admin.IsAdmin() {
		return nil, ErrUnauthorized
	}
	return s.store.List()
}

func (s *SubmissionService) Pending(admin *models.User) ([]models.EventSubmission, error) {
	if admin == nil || !admin.IsAdmin() {
		return nil, ErrUnauthorized
	}
	return s.store.ListByStatus(models.SubmissionStatusPending)
}

func (s *SubmissionService) MySubmissions(actor *models.User) ([]models.EventSubmission, error) {
	if actor == nil {
		return nil, ErrUnauthorized
	}
	return s.store.ListBySubmitter(actor.ID)
}

// combineDateTime merges separate date and time-of-day inputs into one
// instant. Date-only input means midnight.
func combineDateTime(date, timeOfDay string) (time.Time, error) {
	if timeOfDay == "" {
		return time.Parse("2006-01-02", date)
	}
	return time.Parse("2006-01-02 15:04", date+" "+timeOfDay)
}
