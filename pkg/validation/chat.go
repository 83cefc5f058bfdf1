package validation

import (
	"errors"
	"fmt"
	"strings"

	"fertilitycare/pkg/api"
)

// ChatRequestValidator validates chat gateway requests
type ChatRequestValidator struct{}

// NewChatRequestValidator creates a new ChatRequestValidator
func NewChatRequestValidator() *ChatRequestValidator {
	return &ChatRequestValidator{}
}

// ValidateMessage validates a chat message
func (v *ChatRequestValidator) ValidateMessage(message string) error {
	if strings.TrimSpace(message) == "" {
		return errors.New("message cannot be empty")
	}
	return nil
}

// ValidateConversationID validates the conversation identifier
func (v *ChatRequestValidator) ValidateConversationID(conversationID string) error {
	if conversationID == "" {
		return errors.New("conversationId is required")
	}
	return nil
}

// ValidateLanguage validates the language code; empty is allowed and defaults to "en"
func (v *ChatRequestValidator) ValidateLanguage(language api.Language) error {
	if language == "" {
		return nil
	}
	if !language.Valid() {
		return fmt.Errorf("language must be one of: en, hi, gu; got %s", language)
	}
	return nil
}

// ValidateHistory validates that every prior turn carries a known role and content
func (v *ChatRequestValidator) ValidateHistory(history []api.Turn) error {
	for i, turn := range history {
		if !turn.Role.Valid() {
			return fmt.Errorf("conversationHistory[%d]: role must be user or assistant, got %q", i, turn.Role)
		}
	}
	return nil
}

// ValidateChatRequest validates a complete gateway request
func (v *ChatRequestValidator) ValidateChatRequest(req api.ChatRequest) error {
	if err := v.ValidateConversationID(req.ConversationID); err != nil {
		return err
	}

	if err := v.ValidateMessage(req.Message); err != nil {
		return err
	}

	if err := v.ValidateLanguage(req.Language); err != nil {
		return err
	}

	if err := v.ValidateHistory(req.ConversationHistory); err != nil {
		return err
	}

	return nil
}

// ValidateMessageRole validates a role on the persistence surface
func (v *ChatRequestValidator) ValidateMessageRole(role api.Role) error {
	if !role.Valid() {
		return fmt.Errorf("role must be user or assistant, got %q", role)
	}
	return nil
}
