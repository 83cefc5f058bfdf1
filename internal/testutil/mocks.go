// Package testutil provides mock implementations shared by service and
// handler tests.
package testutil

import (
	"context"

	"fertilitycare/internal/repository/db"
	"fertilitycare/internal/service/llm"
	"fertilitycare/pkg/api"
)

// MockDatabase implements db.Database with overridable function fields.
// Unset fields return zero values so tests only stub what they exercise.
type MockDatabase struct {
	GetUserByUsernameFunc       func(username string) (*db.User, error)
	CreateUserFunc              func(username, email, password string) (*db.User, error)
	GetConversationFunc         func(id string) (*db.Conversation, error)
	CreateConversationFunc      func(userID, title string) (*db.Conversation, error)
	GetConversationsByUserFunc  func(userID string) ([]db.Conversation, error)
	UpdateConversationTitleFunc func(id, title string) error
	AddMessageFunc              func(conversationID, role, content string) (*db.Message, error)
	GetConversationMessagesFunc func(conversationID string) ([]db.Message, error)
}

var _ db.Database = (*MockDatabase)(nil)

func (m *MockDatabase) GetUserByUsername(username string) (*db.User, error) {
	if m.GetUserByUsernameFunc != nil {
		return m.GetUserByUsernameFunc(username)
	}
	return nil, nil
}

func (m *MockDatabase) CreateUser(username, email, password string) (*db.User, error) {
	if m.CreateUserFunc != nil {
		return m.CreateUserFunc(username, email, password)
	}
	return nil, nil
}

func (m *MockDatabase) GetConversation(id string) (*db.Conversation, error) {
	if m.GetConversationFunc != nil {
		return m.GetConversationFunc(id)
	}
	return nil, nil
}

func (m *MockDatabase) CreateConversation(userID, title string) (*db.Conversation, error) {
	if m.CreateConversationFunc != nil {
		return m.CreateConversationFunc(userID, title)
	}
	return nil, nil
}

func (m *MockDatabase) GetConversationsByUser(userID string) ([]db.Conversation, error) {
	if m.GetConversationsByUserFunc != nil {
		return m.GetConversationsByUserFunc(userID)
	}
	return nil, nil
}

func (m *MockDatabase) UpdateConversationTitle(id, title string) error {
	if m.UpdateConversationTitleFunc != nil {
		return m.UpdateConversationTitleFunc(id, title)
	}
	return nil
}

func (m *MockDatabase) AddMessage(conversationID, role, content string) (*db.Message, error) {
	if m.AddMessageFunc != nil {
		return m.AddMessageFunc(conversationID, role, content)
	}
	return nil, nil
}

func (m *MockDatabase) GetConversationMessages(conversationID string) ([]db.Message, error) {
	if m.GetConversationMessagesFunc != nil {
		return m.GetConversationMessagesFunc(conversationID)
	}
	return nil, nil
}

// MockProvider implements llm.Provider with overridable function fields.
type MockProvider struct {
	CompleteFunc func(ctx context.Context, history []llm.Message, message string, language api.Language) (string, error)
	CloseFunc    func() error
}

var _ llm.Provider = (*MockProvider)(nil)

func (m *MockProvider) Complete(ctx context.Context, history []llm.Message, message string, language api.Language) (string, error) {
	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, history, message, language)
	}
	return "", nil
}

func (m *MockProvider) Close() error {
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}
