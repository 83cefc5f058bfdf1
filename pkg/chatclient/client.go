package chatclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"fertilitycare/pkg/api"
)

// Store is the persistence collaborator the session saves and loads through.
type Store interface {
	CreateConversation(ctx context.Context, title string) (*api.Conversation, error)
	AddMessage(ctx context.Context, conversationID string, role api.Role, content string) (*api.Message, error)
	ListMessages(ctx context.Context, conversationID string) ([]api.Message, error)
	ListConversations(ctx context.Context) ([]api.Conversation, error)
}

// Gateway brokers a conversation turn to the hosted model.
type Gateway interface {
	Chat(ctx context.Context, req api.ChatRequest) (string, error)
}

// Remote-call policies. Neither failure is retried; both are recoverable by
// re-sending.
const (
	storeTimeout   = 15 * time.Second
	gatewayTimeout = 60 * time.Second
)

// Client talks to the FertilityCare server, implementing both Store and
// Gateway over its REST surface and gateway function.
type Client struct {
	baseURL       string
	token         string
	storeClient   *http.Client
	gatewayClient *http.Client
}

var (
	_ Store   = (*Client)(nil)
	_ Gateway = (*Client)(nil)
)

// NewClient creates a client for the server at baseURL, e.g. "http://localhost:8080".
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:       baseURL,
		storeClient:   &http.Client{Timeout: storeTimeout},
		gatewayClient: &http.Client{Timeout: gatewayTimeout},
	}
}

// SetToken installs the bearer session token used on authenticated calls.
func (c *Client) SetToken(token string) {
	c.token = token
}

// Login authenticates and installs the returned session token.
func (c *Client) Login(ctx context.Context, username, password string) error {
	var resp struct {
		Token string `json:"token"`
	}
	body := map[string]string{"username": username, "password": password}
	if err := c.doJSON(ctx, c.storeClient, http.MethodPost, "/api/login", body, &resp); err != nil {
		return err
	}
	c.token = resp.Token
	return nil
}

// Register creates an account and installs the returned session token.
func (c *Client) Register(ctx context.Context, username, email, password string) error {
	var resp struct {
		Token string `json:"token"`
	}
	body := map[string]string{"username": username, "email": email, "password": password}
	if err := c.doJSON(ctx, c.storeClient, http.MethodPost, "/api/register", body, &resp); err != nil {
		return err
	}
	c.token = resp.Token
	return nil
}

// CreateConversation inserts a conversation owned by the session user.
func (c *Client) CreateConversation(ctx context.Context, title string) (*api.Conversation, error) {
	var conv api.Conversation
	req := api.CreateConversationRequest{Title: title}
	if err := c.doJSON(ctx, c.storeClient, http.MethodPost, "/api/conversations", req, &conv); err != nil {
		return nil, err
	}
	return &conv, nil
}

// AddMessage persists one message and returns the durable record.
func (c *Client) AddMessage(ctx context.Context, conversationID string, role api.Role, content string) (*api.Message, error) {
	var msg api.Message
	req := api.AddMessageRequest{Role: role, Content: content}
	path := "/api/conversations/" + conversationID + "/messages"
	if err := c.doJSON(ctx, c.storeClient, http.MethodPost, path, req, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// ListMessages loads a conversation's full history, oldest first.
func (c *Client) ListMessages(ctx context.Context, conversationID string) ([]api.Message, error) {
	var resp api.MessagesResponse
	path := "/api/conversations/" + conversationID + "/messages"
	if err := c.doJSON(ctx, c.storeClient, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Messages, nil
}

// ListConversations loads the user's conversations, most recently updated first.
func (c *Client) ListConversations(ctx context.Context) ([]api.Conversation, error) {
	var resp api.ConversationsResponse
	if err := c.doJSON(ctx, c.storeClient, http.MethodGet, "/api/conversations", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Conversations, nil
}

// Chat sends one turn to the gateway function and returns the reply text.
func (c *Client) Chat(ctx context.Context, req api.ChatRequest) (string, error) {
	var resp api.ChatResponse
	if err := c.doJSON(ctx, c.gatewayClient, http.MethodPost, "/functions/chat-with-ai", req, &resp); err != nil {
		return "", err
	}
	if resp.Response == "" {
		return "", fmt.Errorf("malformed gateway response")
	}
	return resp.Response, nil
}

// doJSON performs one JSON request/response round trip. Non-2xx responses are
// reduced to an error carrying the server's message.
func (c *Client) doJSON(ctx context.Context, client *http.Client, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("error marshaling request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("error reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errResp api.ErrorResponse
		if json.Unmarshal(data, &errResp) == nil && errResp.Error != "" {
			return fmt.Errorf("server returned %d: %s", resp.StatusCode, errResp.Error)
		}
		return fmt.Errorf("server returned %d", resp.StatusCode)
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("error parsing response: %w", err)
		}
	}
	return nil
}
