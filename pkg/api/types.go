// Package api defines the wire contract shared by the FertilityCare server
// and its clients: the chat gateway request/response, the persistence surface
// payloads, and the conversation title rule.
package api

// Role identifies the author of a conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Valid reports whether the role is one the gateway accepts in history.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAssistant
}

// Turn is a single prior conversation turn as passed to the gateway.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the body of POST /functions/chat-with-ai.
type ChatRequest struct {
	ConversationID      string   `json:"conversationId"`
	Message             string   `json:"message"`
	Language            Language `json:"language"`
	ConversationHistory []Turn   `json:"conversationHistory"`
}

// ChatResponse is the gateway's success body: the assistant's reply text only.
type ChatResponse struct {
	Response string `json:"response"`
}

// ErrorResponse is the body of any non-200 gateway or API response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Conversation is a conversation as returned by the persistence surface.
type Conversation struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	Title     string `json:"title"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// Message is a persisted message as returned by the persistence surface.
type Message struct {
	ID             string `json:"id"`
	ConversationID string `json:"conversation_id"`
	Role           Role   `json:"role"`
	Content        string `json:"content"`
	CreatedAt      string `json:"created_at"`
}

// CreateConversationRequest is the body of POST /api/conversations.
type CreateConversationRequest struct {
	Title string `json:"title"`
}

// AddMessageRequest is the body of POST /api/conversations/{id}/messages.
type AddMessageRequest struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// ConversationsResponse wraps the conversation listing.
type ConversationsResponse struct {
	Conversations []Conversation `json:"conversations"`
}

// MessagesResponse wraps a conversation's message history.
type MessagesResponse struct {
	Messages []Message `json:"messages"`
}
