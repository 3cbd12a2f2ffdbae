package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/pratamawijaya/menu-catalog-api/internal/models"
)

const (
	geminiModel       = "gemini-2.5-flash"
	generationTimeout = 30 * time.Second

	failedReasoning = "Failed to generate recommendations"
)

// jsonObjectPattern finds the first brace-delimited JSON object in model
// output, which routinely arrives wrapped in prose or markdown fences.
var jsonObjectPattern = regexp.MustCompile(`(?s)\{.*\}`)

// TextGenerator produces free-form text for a prompt
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// genaiGenerator is the TextGenerator backed by the Gemini API
type genaiGenerator struct {
	client *genai.Client
	model  string
}

func (g *genaiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	return strings.TrimSpace(resp.Text()), nil
}

// Preferences carries the user's recommendation preferences. Dietary
// restrictions and mood are advisory context for the model, not enforced
// against ingredients.
type Preferences struct {
	MaxCalories         int
	Category            string
	DietaryRestrictions []string
	Mood                string
}

// Recommendation is the ranked result of a preference query
type Recommendation struct {
	Recommendations []models.MenuItem `json:"recommendations"`
	Reasoning       string            `json:"reasoning"`
}

// GeminiService handles interactions with the Gemini API
type GeminiService struct {
	generator TextGenerator
	timeout   time.Duration
}

// NewGeminiService creates a new GeminiService instance. The API key must be
// present; construction fails fast otherwise.
func NewGeminiService(apiKey string) (*GeminiService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY must be set")
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &GeminiService{
		generator: &genaiGenerator{client: client, model: geminiModel},
		timeout:   generationTimeout,
	}, nil
}

// NewGeminiServiceWithGenerator creates a GeminiService with a custom
// generator, used by tests to stub out the API.
func NewGeminiServiceWithGenerator(g TextGenerator) *GeminiService {
	return &GeminiService{generator: g, timeout: generationTimeout}
}

// GenerateMenuDescription produces an appetizing description for a menu item.
// On any generation failure it falls back to a deterministic template; the
// caller always receives a description, never an error.
func (s *GeminiService) GenerateMenuDescription(ctx context.Context, name, category string, ingredients []string, calories int) string {
	var b strings.Builder
	b.WriteString("You are a professional food menu writer. Generate an appetizing, concise description (max 2-3 sentences) for a menu item with the following details:\n")
	b.WriteString("Name: " + name + "\n")
	b.WriteString("Category: " + category + "\n")
	b.WriteString("Ingredients: " + strings.Join(ingredients, ", ") + "\n")
	if calories > 0 {
		b.WriteString("Calories: " + strconv.Itoa(calories) + "\n")
	}
	b.WriteString("Write a description that highlights the key flavors, textures, and appeal of this dish. Be creative but professional.")

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	text, err := s.generator.Generate(ctx, b.String())
	if err != nil || text == "" {
		log.Printf("Failed to generate description for %q: %v", name, err)
		return fallbackDescription(name, ingredients)
	}
	return text
}

// MenuRecommendations asks the model to rank the catalog against the given
// preferences and maps the returned 1-based indices back to concrete items.
// Unresolvable indices are silently dropped; the output keeps the model's
// ordering. Any failure degrades to an empty list with a fixed reasoning
// string, never an error.
func (s *GeminiService) MenuRecommendations(ctx context.Context, items []models.MenuItem, prefs Preferences) *Recommendation {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	raw, err := s.generator.Generate(ctx, recommendationPrompt(items, prefs))
	if err != nil {
		log.Printf("Failed to generate recommendations: %v", err)
		return &Recommendation{Recommendations: []models.MenuItem{}, Reasoning: failedReasoning}
	}

	match := jsonObjectPattern.FindString(raw)
	if match == "" {
		log.Printf("No JSON object in recommendation response")
		return &Recommendation{Recommendations: []models.MenuItem{}, Reasoning: failedReasoning}
	}

	var parsed struct {
		Recommendations []int  `json:"recommendations"`
		Reasoning       string `json:"reasoning"`
	}
	if err := json.Unmarshal([]byte(match), &parsed); err != nil {
		log.Printf("Failed to parse recommendation response: %v", err)
		return &Recommendation{Recommendations: []models.MenuItem{}, Reasoning: failedReasoning}
	}

	picked := make([]models.MenuItem, 0, len(parsed.Recommendations))
	for _, idx := range parsed.Recommendations {
		if idx < 1 || idx > len(items) {
			continue
		}
		picked = append(picked, items[idx-1])
	}

	return &Recommendation{Recommendations: picked, Reasoning: parsed.Reasoning}
}

func recommendationPrompt(items []models.MenuItem, prefs Preferences) string {
	summary := make([]string, len(items))
	for i, item := range items {
		summary[i] = fmt.Sprintf("%d. %s (%s) - %d cal, Rp%s - %s",
			i+1, item.Name, item.Category, item.Calories,
			strconv.FormatFloat(float64(item.Price), 'f', -1, 64),
			item.Description)
	}

	var b strings.Builder
	b.WriteString("You are a helpful restaurant AI assistant. Based on the following menu items and user preferences, recommend the TOP 3 menu items and explain why.\n")
	b.WriteString("AVAILABLE MENU:\n")
	b.WriteString(strings.Join(summary, "\n"))
	b.WriteString("\nUSER PREFERENCES:\n")
	if prefs.MaxCalories > 0 {
		b.WriteString("- Maximum calories: " + strconv.Itoa(prefs.MaxCalories) + "\n")
	}
	if prefs.Category != "" {
		b.WriteString("- Preferred category: " + prefs.Category + "\n")
	}
	if len(prefs.DietaryRestrictions) > 0 {
		b.WriteString("- Dietary restrictions: " + strings.Join(prefs.DietaryRestrictions, ", ") + "\n")
	}
	if prefs.Mood != "" {
		b.WriteString("- Current mood/occasion: " + prefs.Mood + "\n")
	}
	b.WriteString("Please respond in JSON format:\n")
	b.WriteString(`{
  "recommendations": [1, 5, 8],
  "reasoning": "Brief explanation of why these items were recommended"
}`)
	return b.String()
}

// fallbackDescription builds the deterministic description used when the model
// is unavailable: the first three ingredients, with "and more" appended when
// the item has additional ones.
func fallbackDescription(name string, ingredients []string) string {
	first := ingredients
	if len(first) > 3 {
		first = first[:3]
	}
	desc := fmt.Sprintf("Delicious %s made with %s", name, strings.Join(first, ", "))
	if len(ingredients) > 3 {
		desc += ", and more"
	}
	return desc + "."
}
