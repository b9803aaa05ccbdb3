package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const systemPrompt = "You are an AWS IAM expert. Given a Terraform resource type and its " +
	"attribute names, respond with a JSON object {\"actions\": [...], \"rationale\": \"...\"} " +
	"listing the minimal IAM actions Terraform needs to manage that resource. " +
	"Respond with JSON only."

// OpenAIClient implements Advisor against any OpenAI-compatible chat
// completions endpoint.
type OpenAIClient struct {
	BaseURL string
	APIKey  string
	Model   string

	httpClient *http.Client
}

// NewOpenAIClient initializes the advisor client. baseURL defaults to
// the public OpenAI API when empty.
func NewOpenAIClient(baseURL, apiKey, model string) *OpenAIClient {
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &OpenAIClient{
		BaseURL:    strings.TrimSuffix(baseURL, "/"),
		APIKey:     apiKey,
		Model:      model,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Suggest asks the model for actions covering one resource type.
func (c *OpenAIClient) Suggest(ctx context.Context, resourceType string, attributes []string) (*Suggestion, error) {
	user := fmt.Sprintf("Resource type: %s\nAttributes: %s", resourceType, strings.Join(attributes, ", "))
	payload, err := json.Marshal(chatRequest{
		Model: c.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: user},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal advisor payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.BaseURL+"/chat/completions", bytes.NewBuffer(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach advisor endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("received non-200 status from advisor: %d", resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode advisor response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return nil, fmt.Errorf("advisor returned no choices")
	}

	var sug Suggestion
	content := stripFences(parsed.Choices[0].Message.Content)
	if err := json.Unmarshal([]byte(content), &sug); err != nil {
		return nil, fmt.Errorf("advisor returned unparseable content: %w", err)
	}
	sug.ResourceType = resourceType
	return &sug, nil
}

// stripFences removes a markdown code fence wrapper, which models emit
// even when told not to.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
