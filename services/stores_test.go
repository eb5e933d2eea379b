// File: /services/stores_test.go
package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"aquaevents-api/models"
	"aquaevents-api/repositories"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"gorm.io/gorm"
)

// fakeSubmissionStore is an in-memory SubmissionStore for workflow tests.
type fakeSubmissionStore struct {
	mu   sync.Mutex
	rows map[string]*models.EventSubmission
}

func newFakeSubmissionStore() *fakeSubmissionStore {
	return &fakeSubmissionStore{rows: make(map[string]*models.EventSubmission)}
}

func (f *fakeSubmissionStore) Create(sub *models.EventSubmission) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	copied := *sub
	if copied.CreatedAt.IsZero() {
		copied.CreatedAt = time.Now()
	}
	f.rows[sub.ID] = &copied
	return nil
}

func (f *fakeSubmissionStore) GetByID(id string) (*models.EventSubmission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	row, ok := f.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *row
	return &copied, nil
}

func (f *fakeSubmissionStore) Update(id string, updates map[string]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	row, ok := f.rows[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}

	for column, value := range updates {
		switch column {
		case "title":
			row.Title = value.(string)
		case "discipline":
			row.Discipline = value.(string)
		case "category":
			row.Category = value.(string)
		case "region":
			row.Region = value.(string)
		case "city":
			row.City = value.(string)
		case "start_date":
			row.StartDate = value.(time.Time)
		case "end_date":
			if value == nil {
				row.EndDate = nil
			} else {
				t := value.(time.Time)
				row.EndDate = &t
			}
		case "contact_name":
			row.ContactName = value.(string)
		case "contact_email":
			row.ContactEmail = value.(string)
		case "contact_phone":
			row.ContactPhone = value.(string)
		case "website":
			row.Website = value.(string)
		case "registration_url":
			row.RegistrationURL = value.(string)
		case "description":
			row.Description = value.(string)
		case "max_capacity":
			row.MaxCapacity = value.(string)
		case "current_registrations":
			row.CurrentRegistrations = value.(string)
		case "status":
			row.Status = value.(string)
		case "admin_notes":
			if value == nil {
				row.AdminNotes = ""
			} else {
				row.AdminNotes = value.(string)
			}
		case "reviewed_at":
			if value == nil {
				row.ReviewedAt = nil
			} else {
				t := value.(time.Time)
				row.ReviewedAt = &t
			}
		case "reviewed_by":
			if value == nil {
				row.ReviewedBy = nil
			} else {
				s := value.(string)
				row.ReviewedBy = &s
			}
		case "published_at":
			if value == nil {
				row.PublishedAt = nil
			} else {
				t := value.(time.Time)
				row.PublishedAt = &t
			}
		}
	}
	row.UpdatedAt = time.Now()
	return nil
}

func (f *fakeSubmissionStore) Delete(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.rows[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.rows, id)
	return nil
}

func (f *fakeSubmissionStore) List() ([]models.EventSubmission, error) {
	return f.listWhere(func(*models.EventSubmission) bool { return true })
}

func (f *fakeSubmissionStore) ListByStatus(status string) ([]models.EventSubmission, error) {
	return f.listWhere(func(s *models.EventSubmission) bool { return s.Status == status })
}

func (f *fakeSubmissionStore) ListBySubmitter(userID string) ([]models.EventSubmission, error) {
	return f.listWhere(func(s *models.EventSubmission) bool {
		return s.SubmittedBy != nil && *s.SubmittedBy == userID
	})
}

func (f *fakeSubmissionStore) listWhere(match func(*models.EventSubmission) bool) ([]models.EventSubmission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []models.EventSubmission
	for _, row := range f.rows {
		if match(row) {
			out = append(out, *row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// fakeEventStore is an in-memory EventDocumentStore. Setting unavailable
// makes every call fail like a down MongoDB.
type fakeEventStore struct {
	mu          sync.Mutex
	docs        map[string]*models.PublicEvent
	unavailable bool
}

func newFakeEventStore() *fakeEventStore {
	return &fakeEventStore{docs: make(map[string]*models.PublicEvent)}
}

func (f *fakeEventStore) FindBySubmissionID(ctx context.Context, submissionID string) (*models.PublicEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.unavailable {
		return nil, repositories.ErrEventStoreUnavailable
	}
	for _, doc := range f.docs {
		if doc.SubmissionID == submissionID {
			copied := *doc
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeEventStore) GetByID(ctx context.Context, id string) (*models.PublicEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.unavailable {
		return nil, repositories.ErrEventStoreUnavailable
	}
	if doc, ok := f.docs[id]; ok {
		copied := *doc
		return &copied, nil
	}
	for _, doc := range f.docs {
		if doc.SEO.Slug == id {
			copied := *doc
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeEventStore) Insert(ctx context.Context, event *models.PublicEvent) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.unavailable {
		return "", repositories.ErrEventStoreUnavailable
	}
	oid := primitive.NewObjectID()
	copied := *event
	copied.ID = oid
	f.docs[oid.Hex()] = &copied
	return oid.Hex(), nil
}

func (f *fakeEventStore) Update(ctx context.Context, id string, event *models.PublicEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.unavailable {
		return repositories.ErrEventStoreUnavailable
	}
	existing, ok := f.docs[id]
	if !ok {
		return repositories.ErrEventStoreUnavailable
	}
	copied := *event
	copied.ID = existing.ID
	f.docs[id] = &copied
	return nil
}

func (f *fakeEventStore) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.unavailable {
		return repositories.ErrEventStoreUnavailable
	}
	if _, ok := f.docs[id]; !ok {
		return repositories.ErrEventStoreUnavailable
	}
	delete(f.docs, id)
	return nil
}

func (f *fakeEventStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.docs)
}

// fakeNotifier records which notifications fired.
type fakeNotifier struct {
	mu        sync.Mutex
	confirmed []string
	approved  []string
	rejected  []string
	alerted   []string
}

func (f *fakeNotifier) SendEventSubmissionConfirmation(ctx context.Context, email, eventTitle string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.confirmed = append(f.confirmed, email)
	return true
}

func (f *fakeNotifier) SendEventApprovalNotification(ctx context.Context, email, eventTitle string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.approved = append(f.approved, email)
	return true
}

func (f *fakeNotifier) SendEventRejectionNotification(ctx context.Context, email, eventTitle, reason string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rejected = append(f.rejected, email)
	return true
}

func (f *fakeNotifier) SendNewEventNotification(ctx context.Context, email, eventTitle, discipline string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.alerted = append(f.alerted, email)
	return true
}

// fakeSubscriberStore filters its users the way the real repository does.
type fakeSubscriberStore struct {
	users []models.User
}

func (f *fakeSubscriberStore) ListSubscribers(discipline string) ([]models.User, error) {
	var matched []models.User
	for _, user := range f.users {
		if user.EmailConsent == nil {
			continue
		}
		if len(user.PreferredDisciplines) == 0 {
			matched = append(matched, user)
			continue
		}
		for _, preferred := range user.PreferredDisciplines {
			if preferred == discipline {
				matched = append(matched, user)
				break
			}
		}
	}
	return matched, nil
}
