package db

import "time"

// User represents a user in the database
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Conversation represents a titled thread of messages owned by one user.
// Title and UpdatedAt are the only fields mutated after creation.
type Conversation struct {
	ID        string
	UserID    string
	Title     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Message represents a persisted message in a conversation. Role is either
// "user" or "assistant" and is immutable once created.
type Message struct {
	ID             string
	ConversationID string
	Role           string
	Content        string
	CreatedAt      time.Time
}
