package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/dealdish/backend/config"
	"github.com/dealdish/backend/internal/models"
)

// RecipeData is the structure the model is instructed to return.
type RecipeData struct {
	Title           string         `json:"title"`
	Ingredients     []string       `json:"ingredients"`
	Instructions    []string       `json:"instructions"`
	CookingTime     Minutes        `json:"cookingTime"`
	DifficultyLevel string         `json:"difficultyLevel"`
	Cuisine         string         `json:"cuisine"`
	DealItems       []DealItemData `json:"dealItems"`
}

// DealItemData is one on-sale item in the model output. Pricing fields are
// tolerated but never required; later flyer revisions dropped them.
type DealItemData struct {
	Name          string  `json:"name"`
	Store         string  `json:"store,omitempty"`
	Category      string  `json:"category,omitempty"`
	Unit          string  `json:"unit,omitempty"`
	Price         float64 `json:"price,omitempty"`
	OriginalPrice float64 `json:"originalPrice,omitempty"`
}

// Minutes tolerates both number and numeric-string cooking times in model
// output.
type Minutes int

func (m *Minutes) UnmarshalJSON(data []byte) error {
	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		*m = Minutes(int(num))
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		str = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(str), "minutes"))
		n, err := strconv.Atoi(str)
		if err != nil {
			return fmt.Errorf("invalid cooking time %q", str)
		}
		*m = Minutes(n)
		return nil
	}

	return fmt.Errorf("invalid cooking time format")
}

const basePrompt = "Generate a recipe based on the deals in this image. Identify grocery items on sale and create a recipe."

// systemPrompt pins the output contract. The two worked examples bias the
// model toward the exact field names and tone we parse.
const systemPrompt = `You are a helpful assistant that creates recipes based on grocery deal images. Return only JSON with no explanations or other text.

The JSON object must have this shape:
{
    "title": "Recipe name",
    "ingredients": ["2 lbs chicken thighs", "1 bunch broccoli"],
    "instructions": ["Step 1: ...", "Step 2: ..."],
    "cookingTime": 30,
    "difficultyLevel": "easy",
    "cuisine": "American",
    "dealItems": [{"name": "chicken thighs"}, {"name": "broccoli"}]
}

"cookingTime" is an integer number of minutes. "difficultyLevel" is one of "easy", "medium" or "hard". "dealItems" lists only the grocery items shown on sale in the image.

Example 1:
{
    "title": "Sheet Pan Lemon Chicken with Broccoli",
    "ingredients": ["2 lbs chicken thighs", "1 bunch broccoli", "1 lemon", "3 tbsp olive oil", "2 cloves garlic, minced", "salt and pepper"],
    "instructions": ["Step 1: Preheat the oven to 425F.", "Step 2: Toss the chicken and broccoli with olive oil, garlic, salt and pepper.", "Step 3: Spread on a sheet pan, top with lemon slices and roast for 25 minutes.", "Step 4: Rest 5 minutes and serve."],
    "cookingTime": 35,
    "difficultyLevel": "easy",
    "cuisine": "American",
    "dealItems": [{"name": "chicken thighs"}, {"name": "broccoli"}, {"name": "lemons"}]
}

Example 2:
{
    "title": "Tomato Basil Pasta with Italian Sausage",
    "ingredients": ["1 lb Italian sausage", "1 lb penne pasta", "4 ripe tomatoes, diced", "1/2 cup fresh basil", "1/4 cup grated parmesan", "2 tbsp olive oil"],
    "instructions": ["Step 1: Cook the penne in salted boiling water until al dente.", "Step 2: Brown the sausage in olive oil, breaking it up as it cooks.", "Step 3: Add the tomatoes and simmer for 10 minutes.", "Step 4: Toss with the pasta, basil and parmesan."],
    "cookingTime": 25,
    "difficultyLevel": "medium",
    "cuisine": "Italian",
    "dealItems": [{"name": "Italian sausage"}, {"name": "penne pasta"}, {"name": "tomatoes"}]
}`

// LLMService talks to an OpenRouter-compatible chat-completions gateway.
type LLMService struct {
	apiKey string
	apiURL string
	model  string
	client *http.Client
}

// NewLLMService creates an LLMService from the application config. The API
// key may alternatively come from a file (container secrets).
func NewLLMService(cfg *config.Config) (*LLMService, error) {
	apiKey := cfg.OpenRouterAPIKey
	if apiKey == "" {
		apiKeyFile := os.Getenv("OPENROUTER_API_KEY_FILE")
		if apiKeyFile == "" {
			return nil, fmt.Errorf("OPENROUTER_API_KEY or OPENROUTER_API_KEY_FILE must be set")
		}

		apiKeyBytes, err := os.ReadFile(apiKeyFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read API key file: %w", err)
		}

		apiKey = strings.TrimSpace(string(apiKeyBytes))
		if apiKey == "" {
			return nil, fmt.Errorf("API key file is empty")
		}
	}

	return &LLMService{
		apiKey: apiKey,
		apiURL: cfg.OpenRouterAPIURL,
		model:  cfg.OpenRouterModel,
		client: http.DefaultClient,
	}, nil
}

// Message represents a message in the chat. Content is either a string
// (system) or a list of content parts (user message with an image).
type Message struct {
	Role    string      `json:"role"`
	Content interface{} `json:"content"`
}

// ContentPart is one element of a multimodal user message.
type ContentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *ImageURL `json:"image_url,omitempty"`
}

type ImageURL struct {
	URL string `json:"url"`
}

// Request represents a request to the chat-completions gateway
type Request struct {
	Model          string            `json:"model"`
	Messages       []Message         `json:"messages"`
	ResponseFormat map[string]string `json:"response_format"`
}

// GenerateRecipe sends one flyer image plus the combined prompt to the
// gateway and returns the raw message content, which is expected (but not
// guaranteed) to be the recipe JSON.
func (s *LLMService) GenerateRecipe(ctx context.Context, imageData, customPrompt string) (string, error) {
	prompt := basePrompt
	if customPrompt != "" {
		prompt = basePrompt + " " + customPrompt
	}

	reqBody := Request{
		Model: s.model,
		Messages: []Message{
			{
				Role:    "system",
				Content: systemPrompt,
			},
			{
				Role: "user",
				Content: []ContentPart{
					{Type: "text", Text: prompt},
					{Type: "image_url", ImageURL: &ImageURL{URL: imageData}},
				},
			},
		},
		ResponseFormat: map[string]string{
			"type": "json_object",
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: reading response: %v", ErrTransport, err)
	}

	if resp.StatusCode != http.StatusOK {
		slog.Warn("llm gateway returned error", "status", resp.StatusCode, "body", string(body))
		return "", fmt.Errorf("%w: status %d", ErrTransport, resp.StatusCode)
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}

	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("%w: decoding envelope: %v", ErrParse, err)
	}

	if len(result.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices in response", ErrParse)
	}

	return result.Choices[0].Message.Content, nil
}

// ParseRecipe validates the raw model content against the expected shape.
// Missing dealItems is recovered with an empty list; a missing title,
// ingredient list or instruction list is a parse failure.
func ParseRecipe(content string) (*RecipeData, error) {
	var data RecipeData
	if err := json.Unmarshal([]byte(content), &data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	if data.Title == "" {
		return nil, fmt.Errorf("%w: missing title", ErrParse)
	}
	if len(data.Ingredients) == 0 {
		return nil, fmt.Errorf("%w: missing ingredients", ErrParse)
	}
	if len(data.Instructions) == 0 {
		return nil, fmt.Errorf("%w: missing instructions", ErrParse)
	}
	if data.CookingTime < 0 {
		return nil, fmt.Errorf("%w: negative cooking time", ErrParse)
	}

	switch level := strings.ToLower(data.DifficultyLevel); level {
	case "easy", "medium", "hard":
		data.DifficultyLevel = level
	case "":
		data.DifficultyLevel = "medium"
	default:
		return nil, fmt.Errorf("%w: invalid difficulty level %q", ErrParse, data.DifficultyLevel)
	}

	if data.DealItems == nil {
		data.DealItems = []DealItemData{}
	}

	return &data, nil
}

// DealItemModels converts parsed deal items to the persistence shape.
func (d *RecipeData) DealItemModels() models.DealItems {
	items := make(models.DealItems, 0, len(d.DealItems))
	for _, item := range d.DealItems {
		items = append(items, models.DealItem{
			Name:          item.Name,
			Store:         item.Store,
			Category:      item.Category,
			Unit:          item.Unit,
			Price:         item.Price,
			OriginalPrice: item.OriginalPrice,
		})
	}
	return items
}
