// Package chatclient implements the client side of the FertilityCare chat:
// the conversation state manager, the send pipeline with optimistic updates,
// quick-reply suggestions, and language preferences.
package chatclient

import (
	"fmt"
	"time"

	"fertilitycare/pkg/api"
)

// MessageState tags a message as optimistic or server-confirmed, so
// reconciliation is exhaustive and no temporary entry can be left behind.
type MessageState int

const (
	// StatePending marks an optimistic message not yet confirmed by the server.
	StatePending MessageState = iota
	// StateConfirmed marks a message backed by a durable server record.
	StateConfirmed
)

// ChatMessage is one message in the open conversation's visible list.
// Pending messages carry a synthetic temp-<role>-<timestamp> id until the
// server-confirmed record patches the same slot.
type ChatMessage struct {
	ID        string
	State     MessageState
	Role      api.Role
	Content   string
	CreatedAt time.Time
}

// tempID builds the synthetic identifier for an optimistic message.
func tempID(role api.Role, now time.Time) string {
	return fmt.Sprintf("temp-%s-%d", role, now.UnixNano())
}
