// Package opencode provides a Go client for the OpenCode AI coding assistant
// server API (sessions, messages, providers, agents, commands).
package opencode

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
)

// ClientInterface defines the operations exposed by the OpenCode server API.
type ClientInterface interface {
	// Session operations
	ListSessions(ctx context.Context) ([]Session, error)
	GetSession(ctx context.Context, sessionID string) (*Session, error)
	CreateSession(ctx context.Context, req *CreateSessionRequest) (*Session, error)
	DeleteSession(ctx context.Context, sessionID string) error
	AbortSession(ctx context.Context, sessionID string) (map[string]any, error)

	// Message operations
	SendMessage(ctx context.Context, sessionID string, req *ChatInput) (*ChatResponse, error)
	SendMessageAsync(ctx context.Context, sessionID string, req *ChatInput) error
	RunCommand(ctx context.Context, sessionID string, req *CommandInput) (*ChatResponse, error)
	RunShell(ctx context.Context, sessionID string, req *ShellInput) (*ChatResponse, error)
	ListMessages(ctx context.Context, sessionID string, limit int) ([]Message, error)
	GetMessage(ctx context.Context, sessionID, messageID string) (*Message, error)

	// Config operations
	ListProviders(ctx context.Context) ([]Provider, error)
	ListAgents(ctx context.Context) ([]Agent, error)
	ListCommands(ctx context.Context) ([]Command, error)

	// Session scoping
	WithSession(ctx context.Context, scope SessionScope, fn SessionFunc) error
}

// ClientConfig holds configuration for the OpenCode client
type ClientConfig struct {
	BaseURL    string
	Username   string
	Password   string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     zerolog.Logger
}

// ClientOption configures a Client
type ClientOption func(*ClientConfig)

func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL: "http://localhost:4096",
		Timeout: 60 * time.Second,
		Logger:  zerolog.Nop(),
	}
}

func WithBaseURL(baseURL string) ClientOption {
	return func(c *ClientConfig) {
		c.BaseURL = baseURL
	}
}

// WithBasicAuth sets the credentials sent with every request. The OpenCode
// server reads these from OPENCODE_SERVER_USERNAME / OPENCODE_SERVER_PASSWORD
// on its side.
func WithBasicAuth(username, password string) ClientOption {
	return func(c *ClientConfig) {
		c.Username = username
		c.Password = password
	}
}

func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *ClientConfig) {
		c.Timeout = timeout
	}
}

func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *ClientConfig) {
		c.HTTPClient = httpClient
	}
}

func WithLogger(logger zerolog.Logger) ClientOption {
	return func(c *ClientConfig) {
		c.Logger = logger
	}
}

// Client provides a high-level interface for the OpenCode server API.
// Every operation makes exactly one attempt; there is no retry policy.
type Client struct {
	config     *ClientConfig
	httpClient *http.Client
}

// NewClient creates a new OpenCode client with the given options
func NewClient(options ...ClientOption) *Client {
	config := DefaultConfig()

	for _, option := range options {
		option(config)
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: config.Timeout,
		}
	}

	return &Client{
		config:     config,
		httpClient: httpClient,
	}
}

// BaseURL returns the configured server URL.
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values, body any) (*http.Response, error) {
	var requestBody io.Reader

	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		requestBody = bytes.NewReader(bodyBytes)
	}

	requestURL := c.config.BaseURL + path
	if len(query) > 0 {
		requestURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, requestBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	if c.config.Username != "" || c.config.Password != "" {
		req.SetBasicAuth(c.config.Username, c.config.Password)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &RequestError{Message: err.Error()}
	}

	return resp, nil
}

func (c *Client) handleResponse(resp *http.Response, result any) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errorResponse struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}

		message := fmt.Sprintf("HTTP %d", resp.StatusCode)

		if json.Unmarshal(body, &errorResponse) == nil {
			if errorResponse.Error != "" {
				message = errorResponse.Error
			} else if errorResponse.Message != "" {
				message = errorResponse.Message
			}
		}

		return &RequestError{
			StatusCode: resp.StatusCode,
			Message:    message,
			Body:       string(body),
		}
	}

	if result != nil && len(body) > 0 {
		if err := json.Unmarshal(body, result); err != nil {
			return fmt.Errorf("failed to unmarshal response: %w", err)
		}
	}

	return nil
}
