// File: /services/translation_service.go
package services

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"
)

// TranslationService translates event copy from Spanish into a target
// language. Every entry point falls back to the original text on failure;
// translation is decoration, never a hard dependency.
type TranslationService struct {
	llm *LLMClient
}

func NewTranslationService(llm *LLMClient) *TranslationService {
	return &TranslationService{llm: llm}
}

func (s *TranslationService) TranslateTitle(ctx context.Context, spanishTitle, targetLanguage string) string {
	resp, err := s.llm.Invoke(ctx, []ChatMessage{
		{
			Role:    "system",
			Content: fmt.Sprintf("You are a professional translator specializing in aquatic sports events. Translate event titles from Spanish to %s. Keep the translation concise, accurate, and natural. Preserve proper nouns (federation names, cities) but translate event types and categories.", targetLanguage),
		},
		{
			Role:    "user",
			Content: fmt.Sprintf("Translate this event title to %s:\n\n%s\n\nProvide ONLY the translated title, no explanations.", targetLanguage, spanishTitle),
		},
	}, nil)
	if err != nil {
		log.Printf("[Translation] Error translating title: %v", err)
		return spanishTitle
	}

	translation := strings.TrimSpace(resp.Content())
	if translation == "" {
		return spanishTitle
	}
	return translation
}

func (s *TranslationService) TranslateDescription(ctx context.Context, spanishDescription, targetLanguage string) string {
	resp, err := s.llm.Invoke(ctx, []ChatMessage{
		{
			Role:    "system",
			Content: fmt.Sprintf("You are a professional translator specializing in aquatic sports events. Translate event descriptions from Spanish to %s. Maintain the tone, preserve technical terms, and keep the translation natural and engaging.", targetLanguage),
		},
		{
			Role:    "user",
			Content: fmt.Sprintf("Translate this event description to %s:\n\n%s\n\nProvide ONLY the translated description, no explanations.", targetLanguage, spanishDescription),
		},
	}, nil)
	if err != nil {
		log.Printf("[Translation] Error translating description: %v", err)
		return spanishDescription
	}

	translation := strings.TrimSpace(resp.Content())
	if translation == "" {
		return spanishDescription
	}
	return translation
}

var numberedLinePrefix = regexp.MustCompile(`^\d+[\.\)]\s*`)

// TranslateTitlesBatch translates several titles in one call. The model is
// asked for a numbered list; line i maps back to input i. A missing or empty
// line falls back to that item's own original text, never to another item's
// translation.
func (s *TranslationService) TranslateTitlesBatch(ctx context.Context, titles []string, targetLanguage string) map[string]string {
	result := make(map[string]string, len(titles))
	for _, title := range titles {
		result[title] = title
	}
	if len(titles) == 0 {
		return result
	}

	numbered := make([]string, len(titles))
	for i, t := range titles {
		numbered[i] = fmt.Sprintf("%d. %s", i+1, t)
	}

	resp, err := s.llm.Invoke(ctx, []ChatMessage{
		{
			Role:    "system",
			Content: fmt.Sprintf("You are a professional translator specializing in aquatic sports events. Translate event titles from Spanish to %s. Preserve proper nouns but translate event types. Return translations in the same numbered format.", targetLanguage),
		},
		{
			Role:    "user",
			Content: fmt.Sprintf("Translate these event titles to %s:\n\n%s\n\nProvide ONLY the numbered translations, one per line, no explanations.", targetLanguage, strings.Join(numbered, "\n")),
		},
	}, nil)
	if err != nil {
		log.Printf("[Translation] Error in batch translation: %v", err)
		return result
	}

	content := strings.TrimSpace(resp.Content())
	if content == "" {
		return result
	}

	var lines []string
	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}

	for i, original := range titles {
		if i >= len(lines) {
			continue
		}
		translated := strings.TrimSpace(numberedLinePrefix.ReplaceAllString(strings.TrimSpace(lines[i]), ""))
		if translated != "" {
			result[original] = translated
		}
	}

	return result
}
