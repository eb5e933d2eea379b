// File: /jobs/event_sync_job.go
package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"aquaevents-api/metrics"
	"aquaevents-api/models"
	"aquaevents-api/repositories"
	"aquaevents-api/services"
)

// EventSyncJob periodically pulls the World Triathlon public calendar and
// mirrors Spanish events into the public events collection. Upserts key on
// the upstream event id, so re-runs refresh instead of duplicating.
type EventSyncJob struct {
	events     *repositories.EventRepository
	translator *services.TranslationService
	apiURL     string
	siteURL    string
	httpClient *http.Client
	ticker     *time.Ticker
	done       chan bool
}

func NewEventSyncJob(events *repositories.EventRepository, translator *services.TranslationService, apiURL, siteURL string, interval time.Duration) *EventSyncJob {
	return &EventSyncJob{
		events:     events,
		translator: translator,
		apiURL:     apiURL,
		siteURL:    siteURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		ticker:     time.NewTicker(interval),
		done:       make(chan bool),
	}
}

// Start begins the sync job
func (j *EventSyncJob) Start() {
	fmt.Println("Event sync job started")

	go func() {
		// Run immediately on start
		j.sync()

		for {
			select {
			case <-j.ticker.C:
				j.sync()
			case <-j.done:
				fmt.Println("Event sync job stopped")
				return
			}
		}
	}()
}

// Stop stops the sync job
func (j *EventSyncJob) Stop() {
	j.ticker.Stop()
	j.done <- true
}

// upstreamEvent is the subset of the World Triathlon API payload we consume.
type upstreamEvent struct {
	EventID        int    `json:"event_id"`
	Title          string `json:"event_title"`
	Date           string `json:"event_date"` // YYYY-MM-DD
	FinishDate     string `json:"event_finish_date"`
	Venue          string `json:"event_venue"`
	Country        string `json:"event_country"`
	Region         string `json:"event_region_name"`
	WebsiteURL     string `json:"event_website_url"`
	CategoryName   string `json:"category_name"`
	SpecificationN string `json:"specification_name"`
}

type upstreamResponse struct {
	Data []upstreamEvent `json:"data"`
}

func (j *EventSyncJob) sync() {
	fmt.Println("Running event sync...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	upstream, err := j.fetch(ctx)
	if err != nil {
		fmt.Printf("Error fetching upstream events: %v\n", err)
		return
	}

	titles := make([]string, 0, len(upstream))
	for _, ev := range upstream {
		titles = append(titles, ev.Title)
	}
	translations := j.translator.TranslateTitlesBatch(ctx, titles, "Spanish")

	var upserted, failed int
	for _, ev := range upstream {
		if err := j.upsert(ctx, ev, translations[ev.Title]); err != nil {
			fmt.Printf("Error syncing event %d: %v\n", ev.EventID, err)
			metrics.SyncUpsertsTotal.WithLabelValues("failure").Inc()
			failed++
			continue
		}
		metrics.SyncUpsertsTotal.WithLabelValues("success").Inc()
		upserted++
	}

	fmt.Printf("Event sync completed: %d upserted, %d failed\n", upserted, failed)
}

func (j *EventSyncJob) fetch(ctx context.Context) ([]upstreamEvent, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, j.apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := j.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("upstream API returned %d", resp.StatusCode)
	}

	var payload upstreamResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return payload.Data, nil
}

func (j *EventSyncJob) upsert(ctx context.Context, ev upstreamEvent, spanishTitle string) error {
	externalID := fmt.Sprintf("wt-%d", ev.EventID)

	if spanishTitle == "" {
		spanishTitle = ev.Title
	}

	startDate, err := time.Parse("2006-01-02", ev.Date)
	if err != nil {
		return fmt.Errorf("invalid event date %q: %w", ev.Date, err)
	}

	discipline := "Triatlón"
	if ev.SpecificationN != "" {
		discipline = ev.SpecificationN
	}

	seoData := services.FallbackSEO(services.EventSEOInput{
		Title:      spanishTitle,
		City:       ev.Venue,
		Region:     ev.Region,
		Discipline: discipline,
		StartDate:  startDate,
	})

	now := time.Now()
	doc := &models.PublicEvent{
		Name:       models.LocalizedText{Es: spanishTitle, En: ev.Title},
		Date:       ev.Date,
		EndDate:    ev.FinishDate,
		Location:   models.EventLocation{City: ev.Venue, Region: ev.Region},
		Discipline: discipline,
		Category:   ev.CategoryName,
		Federation: "World Triathlon",
		Contact:    models.EventContact{Website: ev.WebsiteURL},
		Description: models.LocalizedText{
			Es: seoData.MetaDescription,
			En: fmt.Sprintf("%s in %s. Official World Triathlon event.", ev.Title, ev.Venue),
		},
		RegistrationURL: ev.WebsiteURL,
		SEO: models.EventSEO{
			Canonical:       j.siteURL + "/eventos/" + seoData.Slug,
			Slug:            seoData.Slug,
			MetaTitle:       seoData.MetaTitle,
			MetaDescription: seoData.MetaDescription,
			Keywords:        seoData.Keywords,
		},
		Source:     models.EventSourceWorldTriathlon,
		ExternalID: externalID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	existing, err := j.events.FindByExternalID(ctx, externalID)
	if err != nil {
		return err
	}

	if existing != nil {
		doc.CreatedAt = existing.CreatedAt
		return j.events.Update(ctx, existing.ID.Hex(), doc)
	}
	_, err = j.events.Insert(ctx, doc)
	return err
}
