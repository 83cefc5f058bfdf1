package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"fertilitycare/internal/auth"
	"fertilitycare/internal/logger"
	"fertilitycare/internal/repository/db"
	chatService "fertilitycare/internal/service/chat"
	conversationService "fertilitycare/internal/service/conversation"
	"fertilitycare/pkg/api"
	"fertilitycare/pkg/validation"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

// ChatHandlers serves the gateway function and the persistence surface
type ChatHandlers struct {
	db                  db.Database
	validator           *validation.ChatRequestValidator
	chatService         *chatService.ChatService
	conversationService *conversationService.ConversationService
}

// NewChatHandlers creates a new ChatHandlers
func NewChatHandlers(database db.Database, chat *chatService.ChatService, conversations *conversationService.ConversationService) *ChatHandlers {
	return &ChatHandlers{
		db:                  database,
		validator:           validation.NewChatRequestValidator(),
		chatService:         chat,
		conversationService: conversations,
	}
}

// ChatWithAIHandler is the gateway endpoint: it answers one conversation turn
// and returns only the completion text
func (ch *ChatHandlers) ChatWithAIHandler(w http.ResponseWriter, r *http.Request) {
	user, err := ch.getUserFromContext(r)
	if err != nil {
		logger.Log.WithError(err).Error("Error getting user")
		ch.sendError(w, http.StatusNotFound, "User not found")
		return
	}

	var req api.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ch.sendError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := ch.validator.ValidateChatRequest(req); err != nil {
		ch.sendError(w, http.StatusBadRequest, err.Error())
		return
	}

	// Unspecified language falls back to English
	language := req.Language
	if language == "" {
		language = api.DefaultLanguage
	}

	logger.Log.WithFields(logrus.Fields{
		"username":        user.Username,
		"conversation_id": req.ConversationID,
		"language":        language,
		"history_turns":   len(req.ConversationHistory),
	}).Info("Chat request received")

	reply, err := ch.chatService.Respond(r.Context(), chatService.RespondRequest{
		ConversationID: req.ConversationID,
		Message:        req.Message,
		Language:       language,
		History:        req.ConversationHistory,
		UserID:         user.ID,
	})
	if err != nil {
		logger.Log.WithError(err).Error("Error from chat service")
		switch {
		case strings.Contains(err.Error(), "unauthorized"):
			ch.sendError(w, http.StatusForbidden, "Unauthorized")
		case strings.Contains(err.Error(), "not found"):
			ch.sendError(w, http.StatusNotFound, "Conversation not found")
		default:
			ch.sendError(w, http.StatusInternalServerError, "Failed to get AI response")
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(api.ChatResponse{Response: reply})
}

// GetConversationsHandler returns the authenticated user's conversations,
// most recently updated first
func (ch *ChatHandlers) GetConversationsHandler(w http.ResponseWriter, r *http.Request) {
	user, err := ch.getUserFromContext(r)
	if err != nil {
		ch.sendError(w, http.StatusNotFound, "User not found")
		return
	}

	conversations, err := ch.conversationService.GetUserConversations(user.ID)
	if err != nil {
		logger.Log.WithError(err).Error("Error from conversation service")
		ch.sendError(w, http.StatusInternalServerError, "Error retrieving conversations")
		return
	}

	infos := make([]api.Conversation, 0, len(conversations))
	for _, conv := range conversations {
		infos = append(infos, toAPIConversation(conv))
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(api.ConversationsResponse{Conversations: infos})
}

// CreateConversationHandler inserts a conversation owned by the user
func (ch *ChatHandlers) CreateConversationHandler(w http.ResponseWriter, r *http.Request) {
	user, err := ch.getUserFromContext(r)
	if err != nil {
		ch.sendError(w, http.StatusNotFound, "User not found")
		return
	}

	var req api.CreateConversationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ch.sendError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	conversation, err := ch.conversationService.CreateConversation(user.ID, req.Title)
	if err != nil {
		logger.Log.WithError(err).Error("Error from conversation service")
		ch.sendError(w, http.StatusInternalServerError, "Error creating conversation")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(toAPIConversation(*conversation))
}

// GetConversationMessagesHandler returns a conversation's messages, oldest first
func (ch *ChatHandlers) GetConversationMessagesHandler(w http.ResponseWriter, r *http.Request) {
	user, err := ch.getUserFromContext(r)
	if err != nil {
		ch.sendError(w, http.StatusNotFound, "User not found")
		return
	}

	convID := chi.URLParam(r, "id")
	messages, err := ch.conversationService.GetConversationMessages(convID, user.ID)
	if err != nil {
		ch.sendConversationError(w, err)
		return
	}

	data := make([]api.Message, 0, len(messages))
	for _, msg := range messages {
		data = append(data, toAPIMessage(msg))
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(api.MessagesResponse{Messages: data})
}

// AddMessageHandler inserts a message and returns the persisted row
func (ch *ChatHandlers) AddMessageHandler(w http.ResponseWriter, r *http.Request) {
	user, err := ch.getUserFromContext(r)
	if err != nil {
		ch.sendError(w, http.StatusNotFound, "User not found")
		return
	}

	var req api.AddMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ch.sendError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := ch.validator.ValidateMessageRole(req.Role); err != nil {
		ch.sendError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := ch.validator.ValidateMessage(req.Content); err != nil {
		ch.sendError(w, http.StatusBadRequest, err.Error())
		return
	}

	convID := chi.URLParam(r, "id")
	message, err := ch.conversationService.AddMessage(convID, user.ID, string(req.Role), req.Content)
	if err != nil {
		ch.sendConversationError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(toAPIMessage(*message))
}

// Helper methods

func (ch *ChatHandlers) sendError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(api.ErrorResponse{Error: message})
}

// sendConversationError maps conversation-service errors onto HTTP statuses
func (ch *ChatHandlers) sendConversationError(w http.ResponseWriter, err error) {
	logger.Log.WithError(err).Error("Error from conversation service")
	switch {
	case strings.Contains(err.Error(), "unauthorized"):
		ch.sendError(w, http.StatusForbidden, "Unauthorized")
	case strings.Contains(err.Error(), "not found"):
		ch.sendError(w, http.StatusNotFound, "Conversation not found")
	default:
		ch.sendError(w, http.StatusInternalServerError, "Error processing request")
	}
}

// getUserFromContext resolves the authenticated username to a user record
func (ch *ChatHandlers) getUserFromContext(r *http.Request) (*db.User, error) {
	username := r.Context().Value(auth.UserContextKey).(string)
	return ch.db.GetUserByUsername(username)
}

func toAPIConversation(conv db.Conversation) api.Conversation {
	return api.Conversation{
		ID:        conv.ID,
		UserID:    conv.UserID,
		Title:     conv.Title,
		CreatedAt: conv.CreatedAt.Format(time.RFC3339),
		UpdatedAt: conv.UpdatedAt.Format(time.RFC3339),
	}
}

func toAPIMessage(msg db.Message) api.Message {
	return api.Message{
		ID:             msg.ID,
		ConversationID: msg.ConversationID,
		Role:           api.Role(msg.Role),
		Content:        msg.Content,
		CreatedAt:      msg.CreatedAt.Format(time.RFC3339),
	}
}
