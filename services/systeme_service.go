// File: /services/systeme_service.go
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"aquaevents-api/metrics"
)

// Lifecycle tags wired to pre-configured automations in the marketing tool.
const (
	TagEventSubmitted = "event-submitted"
	TagEventApproved  = "event-approved"
	TagEventRejected  = "event-rejected"
	TagNewEventAlert  = "new-event-alert"
)

// SystemeService talks to the Systeme.io REST API. Raw API calls surface
// non-2xx responses as errors; the Send* notification entry points catch
// everything and report a bool, so workflow callers can fire and forget.
type SystemeService struct {
	apiBase    string
	apiKey     string
	httpClient *http.Client
}

func NewSystemeService(apiBase, apiKey string) *SystemeService {
	return &SystemeService{
		apiBase: apiBase,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type systemeContact struct {
	Email  string `json:"email"`
	Locale string `json:"locale,omitempty"`
}

type systemeTag struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type systemeList struct {
	Items []json.RawMessage `json:"items"`
}

func (s *SystemeService) request(ctx context.Context, method, endpoint string, payload interface{}, out interface{}) error {
	if s.apiKey == "" {
		return fmt.Errorf("SYSTEME_API_KEY is not set")
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.apiBase+endpoint, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	contentType := "application/json"
	if method == http.MethodPatch {
		contentType = "application/merge-patch+json"
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-API-Key", s.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("systeme.io API error (%d): %s", resp.StatusCode, string(respBody))
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

func (s *SystemeService) findContactID(ctx context.Context, email string) (string, error) {
	var list systemeList
	if err := s.request(ctx, http.MethodGet, "/contacts?email="+url.QueryEscape(email), nil, &list); err != nil {
		return "", err
	}
	if len(list.Items) == 0 {
		return "", nil
	}
	var contact struct {
		ID json.Number `json:"id"`
	}
	if err := json.Unmarshal(list.Items[0], &contact); err != nil {
		return "", fmt.Errorf("failed to decode contact: %w", err)
	}
	return contact.ID.String(), nil
}

// CreateOrUpdateContact upserts a contact by email: PATCH when it exists,
// POST when it does not.
func (s *SystemeService) CreateOrUpdateContact(ctx context.Context, email, locale string) error {
	if locale == "" {
		locale = "es"
	}
	contact := systemeContact{Email: email, Locale: locale}

	contactID, err := s.findContactID(ctx, email)
	if err != nil {
		return err
	}

	if contactID != "" {
		return s.request(ctx, http.MethodPatch, "/contacts/"+contactID, contact, nil)
	}
	return s.request(ctx, http.MethodPost, "/contacts", contact, nil)
}

// AddTagToContact attaches a named tag, creating the tag first if needed.
// Attaching a tag is what triggers the external automation.
func (s *SystemeService) AddTagToContact(ctx context.Context, email, tagName string) error {
	contactID, err := s.findContactID(ctx, email)
	if err != nil {
		return err
	}
	if contactID == "" {
		return fmt.Errorf("contact not found: %s", email)
	}

	tag, err := s.findTag(ctx, tagName)
	if err != nil {
		return err
	}
	if tag == nil {
		var created systemeTag
		if err := s.request(ctx, http.MethodPost, "/tags", systemeTag{Name: tagName}, &created); err != nil {
			return err
		}
		tag = &created
	}

	return s.request(ctx, http.MethodPut, fmt.Sprintf("/contacts/%s/tags/%d", contactID, tag.ID), struct{}{}, nil)
}

// RemoveTagFromContact detaches a tag; a missing tag is not an error.
func (s *SystemeService) RemoveTagFromContact(ctx context.Context, email, tagName string) error {
	contactID, err := s.findContactID(ctx, email)
	if err != nil {
		return err
	}
	if contactID == "" {
		return fmt.Errorf("contact not found: %s", email)
	}

	tag, err := s.findTag(ctx, tagName)
	if err != nil {
		return err
	}
	if tag == nil {
		log.Printf("[Systeme.io] Tag not found: %s", tagName)
		return nil
	}

	return s.request(ctx, http.MethodDelete, fmt.Sprintf("/contacts/%s/tags/%d", contactID, tag.ID), nil, nil)
}

func (s *SystemeService) findTag(ctx context.Context, tagName string) (*systemeTag, error) {
	var list systemeList
	if err := s.request(ctx, http.MethodGet, "/tags", nil, &list); err != nil {
		return nil, err
	}
	for _, raw := range list.Items {
		var tag systemeTag
		if err := json.Unmarshal(raw, &tag); err != nil {
			continue
		}
		if tag.Name == tagName {
			return &tag, nil
		}
	}
	return nil, nil
}

func (s *SystemeService) notify(ctx context.Context, email, tag string) bool {
	if err := s.CreateOrUpdateContact(ctx, email, "es"); err != nil {
		log.Printf("[Systeme.io] Failed to upsert contact %s: %v", email, err)
		metrics.NotificationsTotal.WithLabelValues(tag, "failure").Inc()
		return false
	}
	if err := s.AddTagToContact(ctx, email, tag); err != nil {
		log.Printf("[Systeme.io] Failed to tag contact %s with %s: %v", email, tag, err)
		metrics.NotificationsTotal.WithLabelValues(tag, "failure").Inc()
		return false
	}
	metrics.NotificationsTotal.WithLabelValues(tag, "success").Inc()
	return true
}

// SendEventSubmissionConfirmation triggers the "submission received"
// automation. Best effort: failures are logged and reported as false.
func (s *SystemeService) SendEventSubmissionConfirmation(ctx context.Context, email, eventTitle string) bool {
	ok := s.notify(ctx, email, TagEventSubmitted)
	if ok {
		log.Printf("[Systeme.io] Event submission confirmation triggered for %s (%s)", email, eventTitle)
	}
	return ok
}

func (s *SystemeService) SendEventApprovalNotification(ctx context.Context, email, eventTitle string) bool {
	ok := s.notify(ctx, email, TagEventApproved)
	if ok {
		log.Printf("[Systeme.io] Event approval notification triggered for %s (%s)", email, eventTitle)
	}
	return ok
}

func (s *SystemeService) SendEventRejectionNotification(ctx context.Context, email, eventTitle, reason string) bool {
	ok := s.notify(ctx, email, TagEventRejected)
	if ok {
		log.Printf("[Systeme.io] Event rejection notification triggered for %s (%s): %s", email, eventTitle, reason)
	}
	return ok
}

func (s *SystemeService) SendNewEventNotification(ctx context.Context, email, eventTitle, discipline string) bool {
	ok := s.notify(ctx, email, TagNewEventAlert)
	if ok {
		log.Printf("[Systeme.io] New event notification triggered for %s (%s, %s)", email, eventTitle, discipline)
	}
	return ok
}
