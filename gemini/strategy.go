// Package gemini provides an AI-assisted extraction strategy backed by
// Google Gemini. It is pluggable: it shares the Strategy contract with
// the deterministic pattern strategies, and any failure (missing
// configuration, transport error, malformed response) is a failure of
// this strategy only, which the chain recovers from by falling through.
package gemini

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/fwojciec/rentsync"
	"google.golang.org/genai"
)

// DefaultModel is the model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// Ensure Strategy implements rentsync.Strategy at compile time.
var _ rentsync.Strategy = (*Strategy)(nil)

// Strategy extracts rental records by sending page text to Gemini and
// parsing its structured response.
type Strategy struct {
	client *genai.Client
	model  string
}

// NewStrategy creates a new Strategy. A nil client is allowed and makes
// every Extract call fail with EUNAVAILABLE, which the chain treats as
// zero records.
func NewStrategy(client *genai.Client, model string) *Strategy {
	if model == "" {
		model = DefaultModel
	}
	return &Strategy{client: client, model: model}
}

// Name returns the strategy's identifier.
func (s *Strategy) Name() string {
	return "gemini"
}

// Extract sends the page text to the model and parses the returned JSON
// array of partial records.
func (s *Strategy) Extract(ctx context.Context, page *rentsync.Page) ([]rentsync.Record, error) {
	if s.client == nil {
		return nil, rentsync.Errorf(rentsync.EUNAVAILABLE, "gemini client not configured")
	}

	text := page.Text
	if text == "" {
		text = page.HTML
	}
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	result, err := s.client.Models.GenerateContent(ctx, s.model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: BuildUserPrompt(text)}},
		}},
		BuildConfig(),
	)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, rentsync.Errorf(rentsync.EINTERNAL, "gemini returned nil result")
	}

	return ParseResponse(result.Text())
}

// BuildConfig returns the GenerateContentConfig for extraction calls.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You are an expert rental property analyst. Extract only currently " +
					"available rental properties from the provided page text. Skip office " +
					"information, sign-in pages, and anything that is not an actual rental " +
					"listing. Each property should have a unique address. Respond with " +
					"valid JSON only.",
			}},
		},
		Temperature:      &temp,
		ResponseMIMEType: "application/json",
	}
}

// BuildUserPrompt builds the user prompt containing the page text and
// the expected response shape.
func BuildUserPrompt(text string) string {
	var sb strings.Builder
	sb.WriteString("Extract all available rental properties from the following page text.\n\n")
	sb.WriteString("<page>\n")
	sb.WriteString(text)
	sb.WriteString("\n</page>\n\n")
	sb.WriteString(`Return a JSON array of rental objects with this exact structure:
[
  {
    "address": "full street address including unit number if available",
    "price": "monthly rent price (e.g., $975, $1,400)",
    "bedrooms": 2,
    "bathrooms": 1,
    "square_feet": "square footage if available",
    "available_date": "when the property becomes available",
    "property_type": "apartment/condo/house/townhouse/studio",
    "description": "short property description",
    "amenities": ["list of amenities if available"]
  }
]

If no rentals are found, return an empty array [].`)
	return sb.String()
}

// wireRecord tolerates the field-type drift models produce (numbers as
// strings, floats for counts).
type wireRecord struct {
	Title         string      `json:"title"`
	Address       string      `json:"address"`
	City          string      `json:"city"`
	State         string      `json:"state"`
	ZipCode       string      `json:"zip_code"`
	Price         string      `json:"price"`
	Bedrooms      json.Number `json:"bedrooms"`
	Bathrooms     json.Number `json:"bathrooms"`
	SquareFeet    string      `json:"square_feet"`
	AvailableDate string      `json:"available_date"`
	PropertyType  string      `json:"property_type"`
	Description   string      `json:"description"`
	Amenities     []string    `json:"amenities"`
}

// ParseResponse parses the model's response into records. Anything
// other than a JSON array of objects is an extraction failure.
func ParseResponse(response string) ([]rentsync.Record, error) {
	payload := stripCodeFence(response)
	if payload == "" {
		return nil, rentsync.Errorf(rentsync.EINVALID, "empty model response")
	}

	var wire []wireRecord
	if err := json.Unmarshal([]byte(payload), &wire); err != nil {
		return nil, rentsync.Errorf(rentsync.EINVALID, "malformed model response: %v", err)
	}

	records := make([]rentsync.Record, 0, len(wire))
	for _, w := range wire {
		rec := rentsync.Record{
			Title:         w.Title,
			Address:       w.Address,
			City:          w.City,
			State:         w.State,
			ZipCode:       w.ZipCode,
			Price:         w.Price,
			SquareFeet:    w.SquareFeet,
			AvailableDate: w.AvailableDate,
			PropertyType:  w.PropertyType,
			Description:   w.Description,
			Amenities:     w.Amenities,
		}
		rec.Bedrooms = asInt(w.Bedrooms)
		rec.Bathrooms = asInt(w.Bathrooms)
		if rec.Title == "" && rec.Address != "" {
			rec.Title = rec.Address
		}
		if !rec.IsZero() {
			records = append(records, rec)
		}
	}

	return records, nil
}

// asInt converts a model-supplied number to an int, truncating floats.
func asInt(n json.Number) int {
	if v, err := n.Int64(); err == nil {
		return int(v)
	}
	if f, err := n.Float64(); err == nil {
		return int(f)
	}
	return 0
}

// stripCodeFence removes a surrounding markdown code fence, which some
// models emit despite the JSON response type.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
