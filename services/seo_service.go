// File: /services/seo_service.go
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"aquaevents-api/utils"
)

// EventSEOData is the enrichment result attached to a published event.
type EventSEOData struct {
	MetaTitle       string   `json:"metaTitle"`
	MetaDescription string   `json:"metaDescription"`
	RichDescription string   `json:"richDescription"`
	Slug            string   `json:"slug"`
	Keywords        []string `json:"keywords"`
}

// EventSEOInput carries the structured facts the generator works from.
type EventSEOInput struct {
	Title       string
	City        string
	Region      string
	Discipline  string
	StartDate   time.Time
	Description string
	Category    string
}

// SEOService turns sparse event facts into search-optimized copy via the
// generative endpoint, with a deterministic fallback when the call fails.
type SEOService struct {
	llm *LLMClient
}

func NewSEOService(llm *LLMClient) *SEOService {
	return &SEOService{llm: llm}
}

const maxMetaTitleLen = 60
const maxMetaDescriptionLen = 155

// EnrichEventSEO never returns an error: any generator failure falls back to
// templated values derived purely from the input.
func (s *SEOService) EnrichEventSEO(ctx context.Context, event EventSEOInput) EventSEOData {
	data, err := s.generate(ctx, event)
	if err != nil {
		log.Printf("[SEO Enrichment] Error generating SEO metadata: %v", err)
		return FallbackSEO(event)
	}
	log.Printf("[SEO Enrichment] Generated metadata for: %s", event.Title)
	return sanitize(data, event)
}

func (s *SEOService) generate(ctx context.Context, event EventSEOInput) (EventSEOData, error) {
	category := event.Category
	if category == "" {
		category = "General"
	}
	description := event.Description
	if description == "" {
		description = "No disponible"
	}

	prompt := fmt.Sprintf(`Eres un experto en SEO para eventos deportivos acuáticos en España. Genera metadatos SEO optimizados para el siguiente evento:

Título: %s
Ciudad: %s
Región: %s
Disciplina: %s
Fecha: %s
Categoría: %s
Descripción actual: %s

Genera:
1. Meta título (máx. 60 caracteres, incluye ciudad y año)
2. Meta descripción (máx. 155 caracteres, incluye fecha, ciudad, y llamada a la acción)
3. Descripción enriquecida (2-3 párrafos, incluye contexto, importancia, y detalles del evento)
4. Slug SEO-friendly (formato: nombre-evento-ciudad-año)
5. 5-7 palabras clave relevantes

Responde en formato JSON.`,
		event.Title, event.City, event.Region, event.Discipline,
		event.StartDate.Format("2006-01-02"), category, description)

	format := &ResponseFormat{
		Type: "json_schema",
		JSONSchema: &JSONSchema{
			Name:   "event_seo",
			Strict: true,
			Schema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"metaTitle":       map[string]interface{}{"type": "string"},
					"metaDescription": map[string]interface{}{"type": "string"},
					"richDescription": map[string]interface{}{"type": "string"},
					"slug":            map[string]interface{}{"type": "string"},
					"keywords": map[string]interface{}{
						"type":  "array",
						"items": map[string]interface{}{"type": "string"},
					},
				},
				"required":             []string{"metaTitle", "metaDescription", "richDescription", "slug", "keywords"},
				"additionalProperties": false,
			},
		},
	}

	resp, err := s.llm.Invoke(ctx, []ChatMessage{
		{
			Role:    "system",
			Content: "Eres un experto en SEO para eventos deportivos. Generas metadatos optimizados en español para mejorar el posicionamiento en buscadores.",
		},
		{Role: "user", Content: prompt},
	}, format)
	if err != nil {
		return EventSEOData{}, err
	}

	content := resp.Content()
	if content == "" {
		return EventSEOData{}, fmt.Errorf("no valid content in model response")
	}

	var data EventSEOData
	if err := json.Unmarshal([]byte(content), &data); err != nil {
		return EventSEOData{}, fmt.Errorf("failed to parse model response: %w", err)
	}
	return data, nil
}

// sanitize enforces the format constraints the generator is asked for but
// does not always honor.
func sanitize(data EventSEOData, event EventSEOInput) EventSEOData {
	fallback := FallbackSEO(event)

	data.Slug = utils.Slugify(data.Slug)
	if data.Slug == "" {
		data.Slug = fallback.Slug
	}
	if data.MetaTitle == "" {
		data.MetaTitle = fallback.MetaTitle
	}
	if len([]rune(data.MetaTitle)) > maxMetaTitleLen {
		data.MetaTitle = string([]rune(data.MetaTitle)[:maxMetaTitleLen])
	}
	if data.MetaDescription == "" {
		data.MetaDescription = fallback.MetaDescription
	}
	if len([]rune(data.MetaDescription)) > maxMetaDescriptionLen {
		data.MetaDescription = string([]rune(data.MetaDescription)[:maxMetaDescriptionLen])
	}
	if data.RichDescription == "" {
		data.RichDescription = fallback.RichDescription
	}
	if len(data.Keywords) == 0 {
		data.Keywords = fallback.Keywords
	}
	return data
}

// FallbackSEO derives deterministic metadata from the event facts alone.
func FallbackSEO(event EventSEOInput) EventSEOData {
	year := event.StartDate.Year()
	slug := fmt.Sprintf("%s-%s-%d", utils.Slugify(event.Title), utils.Slugify(event.City), year)

	metaTitle := fmt.Sprintf("%s %d - %s, %s", event.Title, year, event.City, event.Region)
	if len([]rune(metaTitle)) > maxMetaTitleLen {
		metaTitle = string([]rune(metaTitle)[:maxMetaTitleLen])
	}

	metaDescription := fmt.Sprintf("%s en %s, %s. Evento de %s. Consulta fechas e inscripciones.",
		event.Title, event.City, event.Region, event.Discipline)
	if len([]rune(metaDescription)) > maxMetaDescriptionLen {
		metaDescription = string([]rune(metaDescription)[:maxMetaDescriptionLen])
	}

	richDescription := event.Description
	if richDescription == "" {
		richDescription = fmt.Sprintf("%s es un evento de %s que se celebrará en %s, %s. Descubre todos los detalles y cómo participar en este evento deportivo acuático.",
			event.Title, event.Discipline, event.City, event.Region)
	}

	return EventSEOData{
		MetaTitle:       metaTitle,
		MetaDescription: metaDescription,
		RichDescription: richDescription,
		Slug:            slug,
		Keywords:        []string{event.Discipline, event.City, event.Region, event.Title, "eventos acuáticos"},
	}
}
