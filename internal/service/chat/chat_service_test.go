package chat

import (
	"context"
	"errors"
	"strings"
	"testing"

	"fertilitycare/internal/repository/db"
	"fertilitycare/internal/service/llm"
	"fertilitycare/internal/testutil"
	"fertilitycare/pkg/api"
)

func ownedConversation() *db.Conversation {
	return &db.Conversation{ID: "conv-1", UserID: "user-1", Title: "New Conversation"}
}

func TestRespondFirstTurnSetsTitle(t *testing.T) {
	var titleSet string
	mockDB := &testutil.MockDatabase{
		GetConversationFunc: func(id string) (*db.Conversation, error) {
			return ownedConversation(), nil
		},
		UpdateConversationTitleFunc: func(id, title string) error {
			titleSet = title
			return nil
		},
	}
	provider := &testutil.MockProvider{
		CompleteFunc: func(ctx context.Context, history []llm.Message, message string, language api.Language) (string, error) {
			return "Welcome! Ask me anything about fertility.", nil
		},
	}
	service := NewChatService(mockDB, provider)

	reply, err := service.Respond(context.Background(), RespondRequest{
		ConversationID: "conv-1",
		Message:        "Hello",
		Language:       api.LanguageEnglish,
		UserID:         "user-1",
	})
	if err != nil {
		t.Fatalf("Respond failed: %v", err)
	}
	if reply != "Welcome! Ask me anything about fertility." {
		t.Errorf("Unexpected reply: %q", reply)
	}
	if titleSet != "Hello" {
		t.Errorf("Expected title 'Hello', got %q", titleSet)
	}
}

func TestRespondFirstTurnTruncatesTitle(t *testing.T) {
	var titleSet string
	mockDB := &testutil.MockDatabase{
		GetConversationFunc: func(id string) (*db.Conversation, error) {
			return ownedConversation(), nil
		},
		UpdateConversationTitleFunc: func(id, title string) error {
			titleSet = title
			return nil
		},
	}
	provider := &testutil.MockProvider{}
	service := NewChatService(mockDB, provider)

	long := strings.Repeat("x", 60)
	if _, err := service.Respond(context.Background(), RespondRequest{
		ConversationID: "conv-1",
		Message:        long,
		UserID:         "user-1",
	}); err != nil {
		t.Fatalf("Respond failed: %v", err)
	}
	want := strings.Repeat("x", 47) + "..."
	if titleSet != want {
		t.Errorf("Expected truncated title %q, got %q", want, titleSet)
	}
}

func TestRespondLaterTurnLeavesTitle(t *testing.T) {
	titleCalls := 0
	mockDB := &testutil.MockDatabase{
		GetConversationFunc: func(id string) (*db.Conversation, error) {
			return ownedConversation(), nil
		},
		UpdateConversationTitleFunc: func(id, title string) error {
			titleCalls++
			return nil
		},
	}
	provider := &testutil.MockProvider{}
	service := NewChatService(mockDB, provider)

	if _, err := service.Respond(context.Background(), RespondRequest{
		ConversationID: "conv-1",
		Message:        "Second question",
		History: []api.Turn{
			{Role: api.RoleUser, Content: "First question"},
			{Role: api.RoleAssistant, Content: "First answer"},
		},
		UserID: "user-1",
	}); err != nil {
		t.Fatalf("Respond failed: %v", err)
	}
	if titleCalls != 0 {
		t.Errorf("Expected no title update on a later turn, got %d calls", titleCalls)
	}
}

func TestRespondTitleFailureNonFatal(t *testing.T) {
	mockDB := &testutil.MockDatabase{
		GetConversationFunc: func(id string) (*db.Conversation, error) {
			return ownedConversation(), nil
		},
		UpdateConversationTitleFunc: func(id, title string) error {
			return errors.New("database error")
		},
	}
	provider := &testutil.MockProvider{
		CompleteFunc: func(ctx context.Context, history []llm.Message, message string, language api.Language) (string, error) {
			return "reply", nil
		},
	}
	service := NewChatService(mockDB, provider)

	reply, err := service.Respond(context.Background(), RespondRequest{
		ConversationID: "conv-1",
		Message:        "Hello",
		UserID:         "user-1",
	})
	if err != nil {
		t.Fatalf("Expected title failure to be non-fatal, got %v", err)
	}
	if reply != "reply" {
		t.Errorf("Unexpected reply: %q", reply)
	}
}

func TestRespondUnauthorized(t *testing.T) {
	mockDB := &testutil.MockDatabase{
		GetConversationFunc: func(id string) (*db.Conversation, error) {
			return &db.Conversation{ID: "conv-1", UserID: "someone-else"}, nil
		},
	}
	provider := &testutil.MockProvider{
		CompleteFunc: func(ctx context.Context, history []llm.Message, message string, language api.Language) (string, error) {
			t.Fatal("Provider must not be called for an unowned conversation")
			return "", nil
		},
	}
	service := NewChatService(mockDB, provider)

	_, err := service.Respond(context.Background(), RespondRequest{
		ConversationID: "conv-1",
		Message:        "Hello",
		UserID:         "user-1",
	})
	if err == nil || !strings.Contains(err.Error(), "unauthorized") {
		t.Errorf("Expected unauthorized error, got %v", err)
	}
}

func TestRespondConversationNotFound(t *testing.T) {
	mockDB := &testutil.MockDatabase{
		GetConversationFunc: func(id string) (*db.Conversation, error) {
			return nil, errors.New("conversation not found")
		},
	}
	service := NewChatService(mockDB, &testutil.MockProvider{})

	_, err := service.Respond(context.Background(), RespondRequest{
		ConversationID: "missing",
		Message:        "Hello",
		UserID:         "user-1",
	})
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("Expected not found error, got %v", err)
	}
}

func TestRespondProviderFailure(t *testing.T) {
	titleCalls := 0
	mockDB := &testutil.MockDatabase{
		GetConversationFunc: func(id string) (*db.Conversation, error) {
			return ownedConversation(), nil
		},
		UpdateConversationTitleFunc: func(id, title string) error {
			titleCalls++
			return nil
		},
	}
	provider := &testutil.MockProvider{
		CompleteFunc: func(ctx context.Context, history []llm.Message, message string, language api.Language) (string, error) {
			return "", errors.New("model unavailable")
		},
	}
	service := NewChatService(mockDB, provider)

	_, err := service.Respond(context.Background(), RespondRequest{
		ConversationID: "conv-1",
		Message:        "Hello",
		UserID:         "user-1",
	})
	if err == nil || !strings.Contains(err.Error(), "AI service error") {
		t.Errorf("Expected AI service error, got %v", err)
	}
	if titleCalls != 0 {
		t.Error("Expected no title update when the provider fails")
	}
}

func TestRespondForwardsHistoryAndLanguage(t *testing.T) {
	var gotHistory []llm.Message
	var gotMessage string
	var gotLanguage api.Language
	mockDB := &testutil.MockDatabase{
		GetConversationFunc: func(id string) (*db.Conversation, error) {
			return ownedConversation(), nil
		},
	}
	provider := &testutil.MockProvider{
		CompleteFunc: func(ctx context.Context, history []llm.Message, message string, language api.Language) (string, error) {
			gotHistory = history
			gotMessage = message
			gotLanguage = language
			return "reply", nil
		},
	}
	service := NewChatService(mockDB, provider)

	if _, err := service.Respond(context.Background(), RespondRequest{
		ConversationID: "conv-1",
		Message:        "Follow-up",
		Language:       api.LanguageGujarati,
		History: []api.Turn{
			{Role: api.RoleUser, Content: "Q1"},
			{Role: api.RoleAssistant, Content: "A1"},
		},
		UserID: "user-1",
	}); err != nil {
		t.Fatalf("Respond failed: %v", err)
	}

	if gotMessage != "Follow-up" {
		t.Errorf("Expected message 'Follow-up', got %q", gotMessage)
	}
	if gotLanguage != api.LanguageGujarati {
		t.Errorf("Expected language gu, got %s", gotLanguage)
	}
	if len(gotHistory) != 2 || gotHistory[0].Role != "user" || gotHistory[1].Role != "assistant" {
		t.Errorf("Unexpected history: %+v", gotHistory)
	}
}
