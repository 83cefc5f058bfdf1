package chat

import (
	"context"
	"fmt"

	"fertilitycare/internal/logger"
	"fertilitycare/internal/repository/db"
	"fertilitycare/internal/service/llm"
	"fertilitycare/pkg/api"

	"github.com/sirupsen/logrus"
)

// RespondRequest contains all the parameters needed to answer a chat turn
type RespondRequest struct {
	ConversationID string
	Message        string
	Language       api.Language
	History        []api.Turn
	UserID         string // Extracted from auth context
}

// ChatService handles the business logic for answering chat turns
type ChatService struct {
	db       db.Database
	provider llm.Provider
}

// NewChatService creates a new ChatService
func NewChatService(database db.Database, provider llm.Provider) *ChatService {
	return &ChatService{
		db:       database,
		provider: provider,
	}
}

// Respond obtains a completion for a chat turn and returns the reply text.
// Message rows are written by the caller through the persistence surface; the
// only durable write here is the first-turn title, which this service owns so
// the client's placeholder can never disagree with it.
func (s *ChatService) Respond(ctx context.Context, req RespondRequest) (string, error) {
	conversation, err := s.db.GetConversation(req.ConversationID)
	if err != nil {
		return "", fmt.Errorf("conversation not found: %w", err)
	}

	// Verify user owns this conversation
	if conversation.UserID != req.UserID {
		return "", fmt.Errorf("unauthorized: user does not own this conversation")
	}

	history := make([]llm.Message, 0, len(req.History))
	for _, turn := range req.History {
		history = append(history, llm.Message{
			Role:    string(turn.Role),
			Content: turn.Content,
		})
	}

	logger.Log.WithFields(logrus.Fields{
		"conversation_id": conversation.ID,
		"history_turns":   len(history),
		"language":        req.Language,
	}).Debug("Prepared model call")

	reply, err := s.provider.Complete(ctx, history, req.Message, req.Language)
	if err != nil {
		return "", fmt.Errorf("AI service error: %w", err)
	}

	// First turn of the conversation: derive the title from the first message
	if len(req.History) == 0 {
		title := api.DeriveTitle(req.Message)
		if err := s.db.UpdateConversationTitle(conversation.ID, title); err != nil {
			logger.Log.WithError(err).Warn("Error setting conversation title")
		}
	}

	return reply, nil
}
