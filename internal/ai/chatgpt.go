package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/example/linguaweb/internal/config"
)

const apiURL = "https://api.openai.com/v1/chat/completions"

// ChatGPT is a client for the OpenAI chat-completions API. It is the word
// generation source for study flows and must be treated as an unreliable
// oracle: responses may contain duplicates, malformed lines, or words from
// the exclusion list.
type ChatGPT struct {
	apiKey      string
	apiURL      string
	model       string
	maxTokens   int
	temperature float64
	httpClient  *http.Client
}

// New creates a new ChatGPT client
func New(cfg config.OpenAIConfig) *ChatGPT {
	return &ChatGPT{
		apiKey:      cfg.APIKey,
		apiURL:      apiURL,
		model:       cfg.Model,
		maxTokens:   500,
		temperature: 0.7,
		httpClient:  &http.Client{Timeout: cfg.Timeout},
	}
}

// Message represents a message in the ChatGPT conversation
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest represents a request to the ChatGPT API
type ChatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
}

// ChatResponse represents a response from the ChatGPT API
type ChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// GenerateWords asks the model for new vocabulary for a topic. The exclusion
// list is advisory only: the model is not guaranteed to honor it, and callers
// must filter the output themselves. The raw multi-line text is returned,
// one candidate per line in the form "word - translation - example sentence".
func (c *ChatGPT) GenerateWords(ctx context.Context, topicName string, exclude []string) (string, error) {
	prompt := fmt.Sprintf(
		"Generate 10 unique Spanish words related to the topic '%s' that are not already learned: %s. "+
			"Each line should follow this format: word - translation - example sentence.",
		topicName, strings.Join(exclude, ", "),
	)

	messages := []Message{
		{Role: "system", Content: "You are a helpful Spanish language tutor."},
		{Role: "user", Content: prompt},
	}

	return c.complete(ctx, messages)
}

// GenerateLessonExamples asks the model for example phrases illustrating a
// grammar lesson. Each line is expected in the stricter nested format
// "word (translation) - spanish - example sentence".
func (c *ChatGPT) GenerateLessonExamples(ctx context.Context, lessonTitle string, exclude []string) (string, error) {
	prompt := fmt.Sprintf(
		"Generate 10 Spanish example phrases illustrating the grammar lesson '%s', avoiding: %s. "+
			"Each line should follow this format: word (translation) - spanish phrase - example sentence.",
		lessonTitle, strings.Join(exclude, ", "),
	)

	messages := []Message{
		{Role: "system", Content: "You are a helpful Spanish grammar tutor."},
		{Role: "user", Content: prompt},
	}

	return c.complete(ctx, messages)
}

// complete performs one chat-completions call and returns the raw text
func (c *ChatGPT) complete(ctx context.Context, messages []Message) (string, error) {
	request := ChatRequest{
		Model:       c.model,
		Messages:    messages,
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
	}

	requestData, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewBuffer(requestData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	var response ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if response.Error != nil {
		return "", fmt.Errorf("API error: %s", response.Error.Message)
	}

	if len(response.Choices) == 0 {
		return "", fmt.Errorf("no response choices returned")
	}

	return strings.TrimSpace(response.Choices[0].Message.Content), nil
}
