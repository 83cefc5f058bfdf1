package postgres

import (
	"database/sql"
	"fmt"
	"time"

	"fertilitycare/internal/logger"
	"fertilitycare/internal/repository/db"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// CreateConversation creates a new conversation for a user
func (p *PostgresDB) CreateConversation(userID, title string) (*db.Conversation, error) {
	convID := uuid.New().String()
	var createdAt, updatedAt time.Time

	query := `
	INSERT INTO conversations (id, user_id, title)
	VALUES ($1, $2, $3)
	RETURNING id, created_at, updated_at
	`

	err := p.conn.QueryRow(query, convID, userID, title).Scan(&convID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("error creating conversation: %w", err)
	}

	logger.Log.WithFields(logrus.Fields{"conversation_id": convID, "user_id": userID}).Info("Created new conversation")

	return &db.Conversation{
		ID:        convID,
		UserID:    userID,
		Title:     title,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}, nil
}

// GetConversationsByUser retrieves all conversations for a user, most recently updated first
func (p *PostgresDB) GetConversationsByUser(userID string) ([]db.Conversation, error) {
	query := `
	SELECT id, user_id, title, created_at, updated_at
	FROM conversations
	WHERE user_id = $1
	ORDER BY updated_at DESC
	`

	rows, err := p.conn.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("error querying conversations: %w", err)
	}
	defer rows.Close()

	var conversations []db.Conversation
	for rows.Next() {
		var conv db.Conversation
		if err := rows.Scan(&conv.ID, &conv.UserID, &conv.Title, &conv.CreatedAt, &conv.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning conversation: %w", err)
		}
		conversations = append(conversations, conv)
	}

	return conversations, rows.Err()
}

// GetConversation retrieves a specific conversation
func (p *PostgresDB) GetConversation(convID string) (*db.Conversation, error) {
	var conv db.Conversation
	query := `
	SELECT id, user_id, title, created_at, updated_at
	FROM conversations
	WHERE id = $1
	`

	err := p.conn.QueryRow(query, convID).Scan(&conv.ID, &conv.UserID, &conv.Title, &conv.CreatedAt, &conv.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("conversation not found")
		}
		return nil, fmt.Errorf("error retrieving conversation: %w", err)
	}

	return &conv, nil
}

// UpdateConversationTitle sets a conversation's title
func (p *PostgresDB) UpdateConversationTitle(convID, title string) error {
	query := `UPDATE conversations SET title = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`
	if _, err := p.conn.Exec(query, title, convID); err != nil {
		return fmt.Errorf("error updating conversation title: %w", err)
	}

	logger.Log.WithFields(logrus.Fields{"conversation_id": convID, "title": title}).Debug("Updated conversation title")
	return nil
}

// AddMessage adds a message to a conversation and bumps the conversation's
// updated_at timestamp
func (p *PostgresDB) AddMessage(conversationID, role, content string) (*db.Message, error) {
	msgID := uuid.New().String()
	var createdAt time.Time

	query := `
	INSERT INTO messages (id, conversation_id, role, content)
	VALUES ($1, $2, $3, $4)
	RETURNING id, created_at
	`

	err := p.conn.QueryRow(query, msgID, conversationID, role, content).Scan(&msgID, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("error adding message: %w", err)
	}

	updateQuery := `UPDATE conversations SET updated_at = CURRENT_TIMESTAMP WHERE id = $1`
	if _, err := p.conn.Exec(updateQuery, conversationID); err != nil {
		logger.Log.WithError(err).Warn("Error updating conversation timestamp")
	}

	logger.Log.WithFields(logrus.Fields{
		"conversation_id": conversationID,
		"role":            role,
		"content_chars":   len(content),
	}).Debug("Added message to conversation")

	return &db.Message{
		ID:             msgID,
		ConversationID: conversationID,
		Role:           role,
		Content:        content,
		CreatedAt:      createdAt,
	}, nil
}

// GetConversationMessages retrieves all messages from a conversation ordered
// by creation time ascending
func (p *PostgresDB) GetConversationMessages(conversationID string) ([]db.Message, error) {
	query := `
	SELECT id, conversation_id, role, content, created_at
	FROM messages
	WHERE conversation_id = $1
	ORDER BY created_at ASC
	`

	rows, err := p.conn.Query(query, conversationID)
	if err != nil {
		return nil, fmt.Errorf("error querying messages: %w", err)
	}
	defer rows.Close()

	var messages []db.Message
	for rows.Next() {
		var msg db.Message
		if err := rows.Scan(&msg.ID, &msg.ConversationID, &msg.Role, &msg.Content, &msg.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning message: %w", err)
		}
		messages = append(messages, msg)
	}

	return messages, rows.Err()
}
