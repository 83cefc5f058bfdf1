package conversation

import (
	"fmt"

	"fertilitycare/internal/repository/db"
)

// defaultTitle is the placeholder for conversations created before their first turn.
const defaultTitle = "New Conversation"

// ConversationService handles the business logic for the persistence surface
type ConversationService struct {
	db db.Database
}

// NewConversationService creates a new ConversationService
func NewConversationService(database db.Database) *ConversationService {
	return &ConversationService{
		db: database,
	}
}

// GetUserConversations retrieves all conversations for a user, most recently updated first
func (s *ConversationService) GetUserConversations(userID string) ([]db.Conversation, error) {
	conversations, err := s.db.GetConversationsByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve conversations: %w", err)
	}
	return conversations, nil
}

// CreateConversation creates a conversation owned by the user
func (s *ConversationService) CreateConversation(userID, title string) (*db.Conversation, error) {
	if title == "" {
		title = defaultTitle
	}
	conversation, err := s.db.CreateConversation(userID, title)
	if err != nil {
		return nil, fmt.Errorf("failed to create conversation: %w", err)
	}
	return conversation, nil
}

// GetConversationMessages retrieves a conversation's messages, oldest first
func (s *ConversationService) GetConversationMessages(conversationID, userID string) ([]db.Message, error) {
	if err := s.verifyOwnership(conversationID, userID); err != nil {
		return nil, err
	}

	messages, err := s.db.GetConversationMessages(conversationID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve messages: %w", err)
	}
	return messages, nil
}

// AddMessage appends a message to a conversation the user owns
func (s *ConversationService) AddMessage(conversationID, userID, role, content string) (*db.Message, error) {
	if err := s.verifyOwnership(conversationID, userID); err != nil {
		return nil, err
	}

	message, err := s.db.AddMessage(conversationID, role, content)
	if err != nil {
		return nil, fmt.Errorf("failed to save message: %w", err)
	}
	return message, nil
}

// verifyOwnership checks that the conversation exists and belongs to the user
func (s *ConversationService) verifyOwnership(conversationID, userID string) error {
	conversation, err := s.db.GetConversation(conversationID)
	if err != nil {
		return fmt.Errorf("conversation not found: %w", err)
	}
	if conversation.UserID != userID {
		return fmt.Errorf("unauthorized: user does not own this conversation")
	}
	return nil
}
