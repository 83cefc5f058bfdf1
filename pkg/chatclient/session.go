package chatclient

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"fertilitycare/pkg/api"
)

var (
	// ErrEmptyMessage is returned when the input is empty after trimming.
	// Nothing is mutated and no network call is made.
	ErrEmptyMessage = errors.New("message is empty")

	// ErrSendInFlight is returned when a send is invoked while another is in
	// flight. The second invocation is a no-op, not queued.
	ErrSendInFlight = errors.New("a send is already in flight")
)

// Session manages the open conversation: its ordered message list, the
// single-in-flight send pipeline, and the quick-reply suggestions. All
// optimistic mutations patch slots in place; confirmed messages are never
// reordered.
type Session struct {
	store   Store
	gateway Gateway
	prefs   *Preferences

	// sending is the one shared mutable resource requiring exclusion:
	// exactly one send may be in flight at a time.
	sending atomic.Bool

	mu           sync.Mutex
	conversation *api.Conversation
	messages     []ChatMessage
	responding   bool
	replies      []string
	onChange     func()
}

// NewSession creates a session over the given collaborators.
func NewSession(store Store, gateway Gateway, prefs *Preferences) *Session {
	return &Session{
		store:   store,
		gateway: gateway,
		prefs:   prefs,
	}
}

// OnChange registers the callback invoked after every visible state change.
func (s *Session) OnChange(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = fn
}

// Conversation returns the active conversation, or nil before the first send.
func (s *Session) Conversation() *api.Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conversation
}

// Messages returns a copy of the visible message list in order.
func (s *Session) Messages() []ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ChatMessage, len(s.messages))
	copy(out, s.messages)
	return out
}

// Responding reports whether the assistant is currently producing a reply.
func (s *Session) Responding() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.responding
}

// Suggestions returns the current quick-reply prompts, if any.
func (s *Session) Suggestions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.replies))
	copy(out, s.replies)
	return out
}

// Select opens a conversation and loads its full history, oldest first, or
// clears the session when conv is nil. Quick replies are recomputed when the
// most recent message is from the assistant.
func (s *Session) Select(ctx context.Context, conv *api.Conversation) error {
	if conv == nil {
		s.mu.Lock()
		s.conversation = nil
		s.messages = nil
		s.replies = nil
		s.mu.Unlock()
		s.notify()
		return nil
	}

	history, err := s.store.ListMessages(ctx, conv.ID)
	if err != nil {
		return fmt.Errorf("failed to load messages: %w", err)
	}

	messages := make([]ChatMessage, 0, len(history))
	for _, msg := range history {
		messages = append(messages, confirmedMessage(msg))
	}

	var replies []string
	if n := len(messages); n > 0 && messages[n-1].Role == api.RoleAssistant {
		replies = SuggestReplies(messages[n-1].Content, s.prefs.Language())
	}

	s.mu.Lock()
	s.conversation = conv
	s.messages = messages
	s.replies = replies
	s.mu.Unlock()
	s.notify()
	return nil
}

// Send runs one turn of the send pipeline. Quick-reply selection is this same
// call with the canned text as content.
func (s *Session) Send(ctx context.Context, content string) error {
	if strings.TrimSpace(content) == "" {
		return ErrEmptyMessage
	}

	if !s.sending.CompareAndSwap(false, true) {
		return ErrSendInFlight
	}
	// The busy flag is released on every exit path.
	defer s.sending.Store(false)

	s.setReplies(nil)

	// Create the conversation lazily on the first send. The placeholder title
	// uses the same derivation the gateway applies on the first turn.
	conv := s.Conversation()
	if conv == nil {
		created, err := s.store.CreateConversation(ctx, api.DeriveTitle(content))
		if err != nil {
			return fmt.Errorf("conversation could not be started: %w", err)
		}
		conv = created
		s.mu.Lock()
		s.conversation = created
		s.mu.Unlock()
		s.notify()
	}

	// History snapshot from before this turn, reduced to {role, content}.
	history := s.historyTurns()

	// The sender sees their own text immediately.
	userTempID := s.appendPending(api.RoleUser, content)

	saved, err := s.store.AddMessage(ctx, conv.ID, api.RoleUser, content)
	if err != nil {
		// Full rollback: the visible list returns to its pre-send shape.
		s.removeMessage(userTempID)
		return fmt.Errorf("failed to save message: %w", err)
	}
	s.confirmMessage(userTempID, saved)

	s.setResponding(true)

	reply, err := s.gateway.Chat(ctx, api.ChatRequest{
		ConversationID:      conv.ID,
		Message:             content,
		Language:            s.prefs.Language(),
		ConversationHistory: history,
	})
	if err != nil {
		// The user's message stays; it was already persisted.
		s.setResponding(false)
		return fmt.Errorf("failed to get AI response: %w", err)
	}

	s.setResponding(false)

	assistantTempID := s.appendPending(api.RoleAssistant, reply)

	savedReply, err := s.store.AddMessage(ctx, conv.ID, api.RoleAssistant, reply)
	if err != nil {
		// Asymmetric rollback: only the assistant message is removed.
		s.removeMessage(assistantTempID)
		return fmt.Errorf("failed to save AI response: %w", err)
	}
	s.confirmMessage(assistantTempID, savedReply)

	s.setReplies(SuggestReplies(reply, s.prefs.Language()))
	return nil
}

// historyTurns reduces the current message list to {role, content} pairs.
func (s *Session) historyTurns() []api.Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	turns := make([]api.Turn, 0, len(s.messages))
	for _, msg := range s.messages {
		if msg.Role != api.RoleUser && msg.Role != api.RoleAssistant {
			continue
		}
		turns = append(turns, api.Turn{Role: msg.Role, Content: msg.Content})
	}
	return turns
}

// appendPending appends an optimistic message and returns its temporary id.
func (s *Session) appendPending(role api.Role, content string) string {
	now := time.Now()
	id := tempID(role, now)
	s.mu.Lock()
	s.messages = append(s.messages, ChatMessage{
		ID:        id,
		State:     StatePending,
		Role:      role,
		Content:   content,
		CreatedAt: now,
	})
	s.mu.Unlock()
	s.notify()
	return id
}

// confirmMessage patches the pending message's slot with the durable record.
// The slot position is unchanged, so confirmed messages never reorder.
func (s *Session) confirmMessage(tempID string, saved *api.Message) {
	s.mu.Lock()
	for i := range s.messages {
		if s.messages[i].ID == tempID {
			s.messages[i] = confirmedMessage(*saved)
			break
		}
	}
	s.mu.Unlock()
	s.notify()
}

// removeMessage drops a message from the visible list by id.
func (s *Session) removeMessage(id string) {
	s.mu.Lock()
	kept := s.messages[:0]
	for _, msg := range s.messages {
		if msg.ID != id {
			kept = append(kept, msg)
		}
	}
	s.messages = kept
	s.mu.Unlock()
	s.notify()
}

func (s *Session) setResponding(responding bool) {
	s.mu.Lock()
	s.responding = responding
	s.mu.Unlock()
	s.notify()
}

func (s *Session) setReplies(replies []string) {
	s.mu.Lock()
	s.replies = replies
	s.mu.Unlock()
	s.notify()
}

// notify invokes the change callback outside the lock.
func (s *Session) notify() {
	s.mu.Lock()
	fn := s.onChange
	s.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// confirmedMessage converts a durable record into a visible list entry.
func confirmedMessage(msg api.Message) ChatMessage {
	createdAt, err := time.Parse(time.RFC3339, msg.CreatedAt)
	if err != nil {
		createdAt = time.Time{}
	}
	return ChatMessage{
		ID:        msg.ID,
		State:     StateConfirmed,
		Role:      msg.Role,
		Content:   msg.Content,
		CreatedAt: createdAt,
	}
}
