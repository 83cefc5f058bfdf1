package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"fertilitycare/internal/config"
	"fertilitycare/internal/logger"
	"fertilitycare/pkg/api"

	"github.com/sirupsen/logrus"
)

const openRouterURL = "https://openrouter.ai/api/v1/chat/completions"

// OpenRouterProvider implements Provider using the OpenRouter chat completions API
type OpenRouterProvider struct {
	config     *config.LLMConfig
	httpClient *http.Client
}

// NewOpenRouterProvider creates a new OpenRouter provider with config
func NewOpenRouterProvider(llmConfig *config.LLMConfig) *OpenRouterProvider {
	return &OpenRouterProvider{
		config:     llmConfig,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

// Close is a no-op for the OpenRouter provider
func (p *OpenRouterProvider) Close() error {
	return nil
}

type openRouterRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Stream      bool      `json:"stream"`
	Temperature *float64  `json:"temperature,omitempty"`
	TopP        *float64  `json:"top_p,omitempty"`
	TopK        *int      `json:"top_k,omitempty"`
	MaxTokens   *int      `json:"max_tokens,omitempty"`
}

type openRouterResponse struct {
	ID      string `json:"id"`
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

// Complete sends the conversation to OpenRouter and returns the reply text
func (p *OpenRouterProvider) Complete(ctx context.Context, history []Message, message string, language api.Language) (string, error) {
	if p.config.OpenRouterAPIKey == "" {
		return "", fmt.Errorf("OPENROUTER_API_KEY is not configured")
	}

	messages := make([]Message, 0, len(history)+2)
	messages = append(messages, Message{Role: "system", Content: SystemInstruction(language)})
	messages = append(messages, history...)
	messages = append(messages, Message{Role: string(api.RoleUser), Content: message})

	reqBody := openRouterRequest{
		Model:       p.config.OpenRouterModel,
		Messages:    messages,
		Stream:      false,
		Temperature: &p.config.Temperature,
		TopP:        &p.config.TopP,
		TopK:        &p.config.TopK,
		MaxTokens:   &p.config.MaxOutputTokens,
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("error marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, openRouterURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.config.OpenRouterAPIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("OpenRouter request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("error reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		logger.Log.WithFields(logrus.Fields{
			"status": resp.StatusCode,
			"body":   string(body),
		}).Error("OpenRouter API error")
		return "", fmt.Errorf("OpenRouter API returned status %d", resp.StatusCode)
	}

	var chatResp openRouterResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", fmt.Errorf("error parsing response: %w", err)
	}

	if len(chatResp.Choices) == 0 || chatResp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("empty response from AI service")
	}

	return chatResp.Choices[0].Message.Content, nil
}
