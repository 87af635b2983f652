package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/scootpie/stylist-server/config"
	"github.com/scootpie/stylist-server/models"
	"github.com/scootpie/stylist-server/stylist"
)

const (
	extractModel = "gemini-2.0-flash-exp"
	imageModel   = "gemini-3-pro-image-preview"
)

// GeminiParser extracts structured product attributes from a chat message
// using Gemini. It satisfies stylist.QueryParser.
type GeminiParser struct{}

func (GeminiParser) ExtractQuery(ctx context.Context, message string) (*stylist.ExtractResult, error) {
	if config.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is not set")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(config.GeminiAPIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %v", err)
	}
	defer client.Close()

	model := client.GenerativeModel(extractModel)

	prompt := fmt.Sprintf(`Extract fashion product attributes from this shopping request: "%s"

The request may ask for one product or several. Return ONLY valid JSON, no other text, in this shape:
{"items": [{"brand": "brand name or empty string", "color": "color or empty string", "category": "product type like jacket, jeans, dress, or empty string", "style": ["style descriptors"]}]}

Rules:
- One entry per distinct product requested.
- Use empty strings for attributes not mentioned.
- Category should be a single garment type word.`, message)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %v", err)
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("no content generated")
	}

	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return nil, fmt.Errorf("unexpected part type: %T", resp.Candidates[0].Content.Parts[0])
	}

	return parseExtraction(string(text))
}

// parseExtraction tolerates both the documented {"items": [...]} shape and a
// bare single-item object, with or without markdown code fences.
func parseExtraction(raw string) (*stylist.ExtractResult, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var result stylist.ExtractResult
	if err := json.Unmarshal([]byte(cleaned), &result); err == nil && len(result.Items) > 0 {
		return &result, nil
	}

	var single stylist.ParsedItem
	if err := json.Unmarshal([]byte(cleaned), &single); err != nil {
		return nil, fmt.Errorf("failed to parse extraction response: %v", err)
	}
	if single.Brand == "" && single.Color == "" && single.Category == "" && len(single.Style) == 0 {
		return nil, fmt.Errorf("extraction response contained no attributes")
	}
	return &stylist.ExtractResult{Items: []stylist.ParsedItem{single}}, nil
}

// GenerateOutfitImage renders the outfit items onto the base photo using
// Gemini and returns the raw image bytes.
func GenerateOutfitImage(ctx context.Context, baseImageURL string, items []models.OutfitItem) ([]byte, error) {
	if config.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is not set")
	}
	if baseImageURL == "" {
		return nil, fmt.Errorf("base image URL is empty")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(config.GeminiAPIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %v", err)
	}
	defer client.Close()

	model := client.GenerativeModel(imageModel)

	var names []string
	for _, item := range items {
		names = append(names, item.Name)
	}

	prompt := fmt.Sprintf(`The first image is the person. Each following image is a clothing product.
Show the person wearing these products: %s.
Keep the person's face, body and pose exactly as in the first image.
Replace only the clothing that the products correspond to, keep everything else unchanged.`, strings.Join(names, ", "))

	baseData, err := fetchImage(ctx, baseImageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch base image: %v", err)
	}

	parts := []genai.Part{
		genai.Text(prompt),
		genai.ImageData("jpeg", baseData),
	}
	for _, item := range items {
		if item.ImageURL == "" {
			continue
		}
		// A missing product image degrades the render but should not sink the turn.
		if data, err := fetchImage(ctx, item.ImageURL); err == nil {
			parts = append(parts, genai.ImageData("jpeg", data))
		}
	}

	resp, err := model.GenerateContent(ctx, parts...)
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %v", err)
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("no content generated")
	}

	for _, part := range resp.Candidates[0].Content.Parts {
		if blob, ok := part.(genai.Blob); ok {
			return blob.Data, nil
		}
	}
	return nil, fmt.Errorf("model returned no image data")
}

func fetchImage(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch image, status: %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
