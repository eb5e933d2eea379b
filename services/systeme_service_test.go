// File: /services/systeme_service_test.go
package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// systemeStub mimics the contact and tag endpoints the service touches.
type systemeStub struct {
	mu       sync.Mutex
	contacts map[string]int // email -> id
	tags     map[string]int // name -> id
	assigned map[int][]int  // contact id -> tag ids
	methods  []string
	nextID   int
}

func newSystemeStub() *systemeStub {
	return &systemeStub{
		contacts: make(map[string]int),
		tags:     make(map[string]int),
		assigned: make(map[int][]int),
		nextID:   1,
	}
}

func (s *systemeStub) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.methods = append(s.methods, r.Method+" "+r.URL.Path)

		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/contacts":
			email := r.URL.Query().Get("email")
			items := []map[string]interface{}{}
			if id, ok := s.contacts[email]; ok {
				items = append(items, map[string]interface{}{"id": id, "email": email})
			}
			json.NewEncoder(w).Encode(map[string]interface{}{"items": items})

		case r.Method == http.MethodPost && r.URL.Path == "/contacts":
			var body struct {
				Email string `json:"email"`
			}
			json.NewDecoder(r.Body).Decode(&body)
			s.contacts[body.Email] = s.nextID
			s.nextID++
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(map[string]interface{}{"id": s.contacts[body.Email]})

		case r.Method == http.MethodPatch:
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("{}"))

		case r.Method == http.MethodGet && r.URL.Path == "/tags":
			items := []map[string]interface{}{}
			for name, id := range s.tags {
				items = append(items, map[string]interface{}{"id": id, "name": name})
			}
			json.NewEncoder(w).Encode(map[string]interface{}{"items": items})

		case r.Method == http.MethodPost && r.URL.Path == "/tags":
			var body struct {
				Name string `json:"name"`
			}
			json.NewDecoder(r.Body).Decode(&body)
			s.tags[body.Name] = s.nextID
			s.nextID++
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(map[string]interface{}{"id": s.tags[body.Name], "name": body.Name})

		case r.Method == http.MethodPut:
			w.WriteHeader(http.StatusNoContent)

		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
}

func TestCreateOrUpdateContactUpsertsByEmail(t *testing.T) {
	stub := newSystemeStub()
	server := httptest.NewServer(stub.handler())
	defer server.Close()

	svc := NewSystemeService(server.URL, "test-key")
	ctx := context.Background()

	// First call creates the contact.
	require.NoError(t, svc.CreateOrUpdateContact(ctx, "nadador@club.es", "es"))
	require.Contains(t, stub.methods, "POST /contacts")

	// Second call for the same email must update, not create a duplicate.
	stub.mu.Lock()
	stub.methods = nil
	stub.mu.Unlock()

	require.NoError(t, svc.CreateOrUpdateContact(ctx, "nadador@club.es", "es"))

	stub.mu.Lock()
	defer stub.mu.Unlock()
	require.NotContains(t, stub.methods, "POST /contacts")
	require.Len(t, stub.contacts, 1)
}

func TestSendNotificationsAreBestEffort(t *testing.T) {
	// Dead endpoint: every Send* entry point must swallow the failure and
	// report false instead of returning an error or panicking.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	svc := NewSystemeService(server.URL, "test-key")
	ctx := context.Background()

	require.False(t, svc.SendEventSubmissionConfirmation(ctx, "a@b.es", "Evento"))
	require.False(t, svc.SendEventApprovalNotification(ctx, "a@b.es", "Evento"))
	require.False(t, svc.SendEventRejectionNotification(ctx, "a@b.es", "Evento", "razón"))
	require.False(t, svc.SendNewEventNotification(ctx, "a@b.es", "Evento", "Natación"))
}

func TestSendEventApprovalNotificationHappyPath(t *testing.T) {
	stub := newSystemeStub()
	server := httptest.NewServer(stub.handler())
	defer server.Close()

	svc := NewSystemeService(server.URL, "test-key")

	ok := svc.SendEventApprovalNotification(context.Background(), "organizador@club.es", "Travesía")
	require.True(t, ok)

	stub.mu.Lock()
	defer stub.mu.Unlock()
	require.Contains(t, stub.tags, TagEventApproved)
}

func TestRawCallsRequireAPIKey(t *testing.T) {
	svc := NewSystemeService("http://unused", "")
	err := svc.CreateOrUpdateContact(context.Background(), "a@b.es", "es")
	require.Error(t, err)
}
