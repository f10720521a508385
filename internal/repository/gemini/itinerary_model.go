// Package gemini generates structured day-by-day itineraries with the Gemini
// API, constrained to a JSON schema so the output parses directly into
// domain.ItineraryDay values.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"

	"google.golang.org/genai"

	"github.com/voyago/voyago-backend/internal/domain"
)

type ItineraryModel struct {
	apiKey string
	model  string
}

func NewItineraryModel(apiKey, model string) *ItineraryModel {
	return &ItineraryModel{apiKey: apiKey, model: model}
}

var itinerarySchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"itinerary": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"day":  {Type: genai.TypeInteger},
					"date": {Type: genai.TypeString},
					"activities": {
						Type:  genai.TypeArray,
						Items: &genai.Schema{Type: genai.TypeString},
					},
					"suggestions": {Type: genai.TypeString},
				},
				Required: []string{"day", "date", "activities", "suggestions"},
			},
		},
	},
	Required: []string{"itinerary"},
}

func (m *ItineraryModel) GenerateItinerary(ctx context.Context, prompt string) ([]domain.ItineraryDay, error) {
	if m.apiKey == "" {
		return nil, fmt.Errorf("gemini api key not configured")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  m.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}

	resp, err := client.Models.GenerateContent(ctx, m.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   itinerarySchema,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini generate: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return nil, fmt.Errorf("gemini generate: empty response")
	}

	var payload struct {
		Itinerary []domain.ItineraryDay `json:"itinerary"`
	}
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return nil, fmt.Errorf("gemini generate: malformed itinerary: %w", err)
	}
	if len(payload.Itinerary) == 0 {
		return nil, fmt.Errorf("gemini generate: empty itinerary")
	}
	return payload.Itinerary, nil
}
