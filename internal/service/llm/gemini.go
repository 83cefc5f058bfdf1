package llm

import (
	"context"
	"fmt"
	"strings"

	"fertilitycare/internal/config"
	"fertilitycare/internal/logger"
	"fertilitycare/pkg/api"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiProvider implements Provider using the Google Generative AI API
type GeminiProvider struct {
	client *genai.Client
	config *config.LLMConfig
}

// NewGeminiProvider creates a new Gemini provider
func NewGeminiProvider(ctx context.Context, llmConfig *config.LLMConfig) (*GeminiProvider, error) {
	if llmConfig.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is not configured")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(llmConfig.GeminiAPIKey))
	if err != nil {
		return nil, fmt.Errorf("error creating Gemini client: %w", err)
	}

	return &GeminiProvider{
		client: client,
		config: llmConfig,
	}, nil
}

// Close closes the underlying Gemini client
func (g *GeminiProvider) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}

// Complete sends the conversation to Gemini and returns the reply text
func (g *GeminiProvider) Complete(ctx context.Context, history []Message, message string, language api.Language) (string, error) {
	model := g.client.GenerativeModel(g.config.GeminiModel)

	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(SystemInstruction(language))},
	}

	temperature := float32(g.config.Temperature)
	topP := float32(g.config.TopP)
	topK := int32(g.config.TopK)
	maxTokens := int32(g.config.MaxOutputTokens)
	model.GenerationConfig = genai.GenerationConfig{
		Temperature:     &temperature,
		TopP:            &topP,
		TopK:            &topK,
		MaxOutputTokens: &maxTokens,
	}

	model.SafetySettings = []*genai.SafetySetting{
		{Category: genai.HarmCategoryHarassment, Threshold: genai.HarmBlockMediumAndAbove},
		{Category: genai.HarmCategoryHateSpeech, Threshold: genai.HarmBlockMediumAndAbove},
		{Category: genai.HarmCategorySexuallyExplicit, Threshold: genai.HarmBlockMediumAndAbove},
		{Category: genai.HarmCategoryDangerousContent, Threshold: genai.HarmBlockMediumAndAbove},
	}

	chat := model.StartChat()
	chat.History = make([]*genai.Content, 0, len(history))
	for _, turn := range history {
		role := "user"
		if turn.Role == string(api.RoleAssistant) {
			role = "model"
		}
		chat.History = append(chat.History, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(turn.Content)},
		})
	}

	resp, err := chat.SendMessage(ctx, genai.Text(message))
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}

	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from AI service")
	}

	var reply strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			reply.WriteString(string(txt))
		} else {
			logger.Log.Warnf("Gemini response part was not text: %T", part)
		}
	}

	if reply.Len() == 0 {
		return "", fmt.Errorf("empty response from AI service")
	}

	return reply.String(), nil
}
