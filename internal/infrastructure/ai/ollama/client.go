// Package ollama provides Ollama integration for local AI inference
// It implements the CompletionService port over the plain HTTP chat API.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/recipeql/v1/internal/infrastructure/config"
	"go.uber.org/zap"
)

// Client implements the CompletionService interface using the Ollama API
type Client struct {
	baseURL     string
	model       string
	temperature float64
	client      *http.Client
	logger      *zap.Logger
}

// NewClient creates a new Ollama client
func NewClient(cfg config.AIConfig, logger *zap.Logger) *Client {
	baseURL := strings.TrimRight(cfg.Host, "/")
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}

	model := cfg.Model
	if model == "" {
		model = "llama3"
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	logger.Info("Ollama client initialized",
		zap.String("base_url", baseURL),
		zap.String("model", model),
		zap.Duration("timeout", timeout))

	return &Client{
		baseURL:     baseURL,
		model:       model,
		temperature: cfg.Temperature,
		client:      &http.Client{Timeout: timeout},
		logger:      logger.Named("ollama-client"),
	}
}

// Ollama API structures
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatRequest struct {
	Model    string                 `json:"model"`
	Messages []ChatMessage          `json:"messages"`
	Stream   bool                   `json:"stream"`
	Options  map[string]interface{} `json:"options,omitempty"`
}

type ChatResponse struct {
	Model        string      `json:"model"`
	Message      ChatMessage `json:"message"`
	Done         bool        `json:"done"`
	EvalCount    int         `json:"eval_count,omitempty"`
	EvalDuration int64       `json:"eval_duration,omitempty"`
}

// HealthCheck verifies that the Ollama service is available.
func (c *Client) HealthCheck(ctx context.Context) error {
	endpoint := c.baseURL + "/api/tags"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create health check request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("ollama health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ollama health check failed with status %d", resp.StatusCode)
	}

	c.logger.Debug("Ollama health check passed")
	return nil
}

// TranslateQuery asks the model to express the question as a query plan.
// The raw reply is returned untouched; parsing and validation happen in the
// query domain.
func (c *Client) TranslateQuery(ctx context.Context, question, schema string) (string, error) {
	systemPrompt := buildTranslateSystemPrompt(schema)
	userPrompt := fmt.Sprintf(
		"Translate this question about the recipe dataset into a query plan: %s\n"+
			"Use case-insensitive \"contains\" when filtering text. "+
			"Put the plan under the top-level \"result\" key.", question)

	return c.chat(ctx, systemPrompt, userPrompt)
}

// SummarizeRows asks the model to extract key insights from result rows.
func (c *Client) SummarizeRows(ctx context.Context, rendered string) (string, error) {
	systemPrompt := "You are an assistant that extracts key information from structured data. " +
		"Summarize key insights from the given dataset."
	userPrompt := "Summarize key insights from this data:\n" + rendered

	return c.chat(ctx, systemPrompt, userPrompt)
}

// GenerateRecipe asks the model for a full recipe when the dataset has none.
func (c *Client) GenerateRecipe(ctx context.Context, question string) (string, error) {
	systemPrompt := "You are an AI assistant that provides detailed and accurate recipe information."
	userPrompt := "Please provide a detailed recipe for: " + question

	return c.chat(ctx, systemPrompt, userPrompt)
}

func buildTranslateSystemPrompt(schema string) string {
	return `You are a query planner for a recipe dataset. Respond with ONLY a valid JSON object, no explanation or markdown formatting.

The JSON object must have a single top-level key "result" holding the query plan:
{
  "result": {
    "filters": [{"column": "Calories", "op": "lt", "value": 500}],
    "columns": ["Name", "Calories"],
    "sort": {"column": "Calories", "desc": false},
    "limit": 20,
    "aggregate": {"fn": "avg", "column": "Calories"}
  }
}

Every field of the plan is optional. Operators for number columns: eq, neq, lt, lte, gt, gte (value must be a number). Operators for text columns: contains, eq, neq, prefix (value must be a string; matching is case-insensitive). Aggregate functions: count, sum, avg, min, max.

The dataset has these columns:
` + schema + `
Rules:
- Use ONLY the columns listed above.
- Do NOT invent operators or plan fields.
- The plan must be under the "result" key.
- Do NOT include explanations or comments.`
}

// chat performs one non-streaming chat completion.
func (c *Client) chat(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	endpoint := c.baseURL + "/api/chat"

	reqBody := ChatRequest{
		Model: c.model,
		Messages: []ChatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Stream: false,
		Options: map[string]interface{}{
			"temperature": c.temperature,
			"num_ctx":     4096,
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API error %d: %s", resp.StatusCode, string(body))
	}

	var chatResp ChatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if !chatResp.Done {
		return "", fmt.Errorf("incomplete response from Ollama")
	}

	c.logger.Debug("Ollama chat completion successful",
		zap.String("model", chatResp.Model),
		zap.Int("eval_count", chatResp.EvalCount),
		zap.Int64("eval_duration", chatResp.EvalDuration))

	return strings.TrimSpace(chatResp.Message.Content), nil
}
